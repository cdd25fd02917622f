// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package transactionrecord

import (
	"github.com/bitmark-inc/rcengine/constants"
	"github.com/bitmark-inc/rcengine/fault"
	"github.com/bitmark-inc/rcengine/util"
)

// pack Transfer
//
// Pack Varint64(tag) followed by fields in order as struct above
func (transfer *Transfer) Pack() (Packed, error) {
	if err := checkAccounts(transfer.From, transfer.To); nil != err {
		return nil, err
	}
	if len(transfer.Memo) > maxMemoLength {
		return nil, fault.ErrFieldTooLong
	}

	message := util.ToVarint64(uint64(TransferTag))
	message = appendString(message, transfer.From)
	message = appendString(message, transfer.To)
	message = appendUint64(message, transfer.Amount)
	return appendString(message, transfer.Memo), nil
}

// pack TransferToStake
func (transfer *TransferToStake) Pack() (Packed, error) {
	if err := checkAccounts(transfer.From, transfer.To); nil != err {
		return nil, err
	}

	message := util.ToVarint64(uint64(TransferToStakeTag))
	message = appendString(message, transfer.From)
	message = appendString(message, transfer.To)
	return appendUint64(message, transfer.Amount), nil
}

// pack LimitOrderCreate
func (order *LimitOrderCreate) Pack() (Packed, error) {
	if err := checkAccounts(order.Owner); nil != err {
		return nil, err
	}

	message := util.ToVarint64(uint64(LimitOrderCreateTag))
	message = appendString(message, order.Owner)
	message = appendUint64(message, uint64(order.OrderId))
	message = appendUint64(message, order.AmountToSell)
	message = appendUint64(message, order.MinToReceive)
	message = appendBool(message, order.FillOrKill)
	return appendUint64(message, order.Expiration), nil
}

// pack LimitOrderCancel
func (order *LimitOrderCancel) Pack() (Packed, error) {
	if err := checkAccounts(order.Owner); nil != err {
		return nil, err
	}

	message := util.ToVarint64(uint64(LimitOrderCancelTag))
	message = appendString(message, order.Owner)
	return appendUint64(message, uint64(order.OrderId)), nil
}

// pack AccountCreate
func (create *AccountCreate) Pack() (Packed, error) {
	if err := checkAccounts(create.Creator, create.NewAccount); nil != err {
		return nil, err
	}

	message := util.ToVarint64(uint64(AccountCreateTag))
	message = appendString(message, create.Creator)
	message = appendString(message, create.NewAccount)
	return appendUint64(message, create.Fee), nil
}

// pack AccountCreateWithDelegation
func (create *AccountCreateWithDelegation) Pack() (Packed, error) {
	if err := checkAccounts(create.Creator, create.NewAccount); nil != err {
		return nil, err
	}

	message := util.ToVarint64(uint64(AccountCreateWithDelegationTag))
	message = appendString(message, create.Creator)
	message = appendString(message, create.NewAccount)
	message = appendUint64(message, create.Fee)
	return appendUint64(message, create.Delegation), nil
}

// pack Vote
func (vote *Vote) Pack() (Packed, error) {
	if err := checkAccounts(vote.Voter, vote.Author); nil != err {
		return nil, err
	}
	if vote.Weight < -10000 || vote.Weight > 10000 {
		return nil, fault.ErrInvalidVoteWeight
	}
	if len(vote.Permlink) > maxPermlinkLength {
		return nil, fault.ErrFieldTooLong
	}

	message := util.ToVarint64(uint64(VoteTag))
	message = appendString(message, vote.Voter)
	message = appendString(message, vote.Author)
	message = appendString(message, vote.Permlink)
	return append(message, util.ToSignedVarint64(int64(vote.Weight))...), nil
}

// pack Comment
//
// a top level post has an empty parent author
func (comment *Comment) Pack() (Packed, error) {
	if err := checkAccounts(comment.Author); nil != err {
		return nil, err
	}
	if "" != comment.ParentAuthor {
		if err := checkAccounts(comment.ParentAuthor); nil != err {
			return nil, err
		}
	}
	if len(comment.Permlink) > maxPermlinkLength || len(comment.ParentPermlink) > maxPermlinkLength ||
		len(comment.Title) > maxTitleLength || len(comment.Body) > maxBodyLength {
		return nil, fault.ErrFieldTooLong
	}

	message := util.ToVarint64(uint64(CommentTag))
	message = appendString(message, comment.ParentAuthor)
	message = appendString(message, comment.ParentPermlink)
	message = appendString(message, comment.Author)
	message = appendString(message, comment.Permlink)
	message = appendString(message, comment.Title)
	return appendString(message, comment.Body), nil
}

// pack CustomJSON
//
// at least one account in either list must sign
func (custom *CustomJSON) Pack() (Packed, error) {
	if 0 == len(custom.RequiredAuths)+len(custom.RequiredPostingAuths) {
		return nil, fault.ErrInvalidAccountName
	}
	if len(custom.RequiredAuths) > maxAuths || len(custom.RequiredPostingAuths) > maxAuths {
		return nil, fault.ErrFieldTooLong
	}
	if err := checkAccounts(custom.RequiredAuths...); nil != err {
		return nil, err
	}
	if err := checkAccounts(custom.RequiredPostingAuths...); nil != err {
		return nil, err
	}
	if len(custom.Id) > maxCustomIDLength || len(custom.JSON) > maxJSONLength {
		return nil, fault.ErrFieldTooLong
	}

	message := util.ToVarint64(uint64(CustomJSONTag))
	message = appendStrings(message, custom.RequiredAuths)
	message = appendStrings(message, custom.RequiredPostingAuths)
	message = appendString(message, custom.Id)
	return appendString(message, custom.JSON), nil
}

// pack WithdrawStake
func (withdraw *WithdrawStake) Pack() (Packed, error) {
	if err := checkAccounts(withdraw.Account); nil != err {
		return nil, err
	}

	message := util.ToVarint64(uint64(WithdrawStakeTag))
	message = appendString(message, withdraw.Account)
	return appendUint64(message, withdraw.Amount), nil
}

// pack DelegateStake
func (delegate *DelegateStake) Pack() (Packed, error) {
	if err := checkAccounts(delegate.Delegator, delegate.Delegatee); nil != err {
		return nil, err
	}

	message := util.ToVarint64(uint64(DelegateStakeTag))
	message = appendString(message, delegate.Delegator)
	message = appendString(message, delegate.Delegatee)
	return appendUint64(message, delegate.Amount), nil
}

// pack ClaimAccount
func (claim *ClaimAccount) Pack() (Packed, error) {
	if err := checkAccounts(claim.Creator); nil != err {
		return nil, err
	}

	message := util.ToVarint64(uint64(ClaimAccountTag))
	message = appendString(message, claim.Creator)
	return appendUint64(message, claim.Fee), nil
}

// pack AccountUpdate
func (update *AccountUpdate) Pack() (Packed, error) {
	if err := checkAccounts(update.Account); nil != err {
		return nil, err
	}
	if len(update.JSONMetadata) > maxJSONLength {
		return nil, fault.ErrFieldTooLong
	}

	message := util.ToVarint64(uint64(AccountUpdateTag))
	message = appendString(message, update.Account)
	message = appendBool(message, update.ChangeOwner)
	return appendString(message, update.JSONMetadata), nil
}

// CheckAccountName - names are 1..16 characters of a-z 0-9 '.' '-'
func CheckAccountName(name string) error {
	if 0 == len(name) {
		return fault.ErrInvalidAccountName
	}
	if len(name) > constants.MaximumAccountNameLength {
		return fault.ErrNameTooLong
	}
	for _, c := range name {
		switch {
		case c >= 'a' && c <= 'z':
		case c >= '0' && c <= '9':
		case '.' == c, '-' == c:
		default:
			return fault.ErrInvalidAccountName
		}
	}
	return nil
}

func checkAccounts(names ...string) error {
	for _, name := range names {
		if err := CheckAccountName(name); nil != err {
			return err
		}
	}
	return nil
}

// append a single field to a buffer
//
// the field is prefixed by Varint64(length)
func appendString(buffer Packed, s string) Packed {
	l := util.ToVarint64(uint64(len(s)))
	buffer = append(buffer, l...)
	return append(buffer, s...)
}

// append a list of strings prefixed by Varint64(count)
func appendStrings(buffer Packed, list []string) Packed {
	buffer = appendUint64(buffer, uint64(len(list)))
	for _, s := range list {
		buffer = appendString(buffer, s)
	}
	return buffer
}

// append a bytes to a buffer
//
// the field is prefixed by Varint64(length)
func appendBytes(buffer Packed, data []byte) Packed {
	l := util.ToVarint64(uint64(len(data)))
	buffer = append(buffer, l...)
	buffer = append(buffer, data...)
	return buffer
}

// append a Varint64 to buffer
func appendUint64(buffer Packed, value uint64) Packed {
	valueBytes := util.ToVarint64(value)
	buffer = append(buffer, valueBytes...)
	return buffer
}

// append a single 0/1 byte
func appendBool(buffer Packed, value bool) Packed {
	if value {
		return append(buffer, 1)
	}
	return append(buffer, 0)
}
