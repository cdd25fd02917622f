// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package transactionrecord

import (
	"github.com/bitmark-inc/rcengine/fault"
	"github.com/bitmark-inc/rcengine/util"
)

// Unpack - turn a byte slice into an operation
//
// returns the operation and the number of bytes consumed
//
// must cast result to correct type
//
// e.g.
//   switch op := result.(type) {
//   case *transactionrecord.Transfer:
func (record Packed) Unpack() (o Operation, n int, e error) {

	defer func() {
		if r := recover(); nil != r {
			e = fault.ErrNotTransactionPack
		}
	}()

	recordType, n := util.FromVarint64(record)
	if 0 == n {
		return nil, 0, fault.ErrNotTransactionPack
	}

	var ok bool

unpack_switch:
	switch TagType(recordType) {

	case TransferTag:
		r := &Transfer{}
		if r.From, ok = readString(record, &n, maxMemoLength); !ok {
			break unpack_switch
		}
		if r.To, ok = readString(record, &n, maxMemoLength); !ok {
			break unpack_switch
		}
		if r.Amount, ok = readUint64(record, &n); !ok {
			break unpack_switch
		}
		if r.Memo, ok = readString(record, &n, maxMemoLength); !ok {
			break unpack_switch
		}
		return done(r, n, checkAccounts(r.From, r.To))

	case TransferToStakeTag:
		r := &TransferToStake{}
		if r.From, ok = readString(record, &n, maxMemoLength); !ok {
			break unpack_switch
		}
		if r.To, ok = readString(record, &n, maxMemoLength); !ok {
			break unpack_switch
		}
		if r.Amount, ok = readUint64(record, &n); !ok {
			break unpack_switch
		}
		return done(r, n, checkAccounts(r.From, r.To))

	case LimitOrderCreateTag:
		r := &LimitOrderCreate{}
		if r.Owner, ok = readString(record, &n, maxMemoLength); !ok {
			break unpack_switch
		}
		id, ok := readUint64(record, &n)
		if !ok || id > 0xffffffff {
			break unpack_switch
		}
		r.OrderId = uint32(id)
		if r.AmountToSell, ok = readUint64(record, &n); !ok {
			break unpack_switch
		}
		if r.MinToReceive, ok = readUint64(record, &n); !ok {
			break unpack_switch
		}
		if r.FillOrKill, ok = readBool(record, &n); !ok {
			break unpack_switch
		}
		if r.Expiration, ok = readUint64(record, &n); !ok {
			break unpack_switch
		}
		return done(r, n, checkAccounts(r.Owner))

	case LimitOrderCancelTag:
		r := &LimitOrderCancel{}
		if r.Owner, ok = readString(record, &n, maxMemoLength); !ok {
			break unpack_switch
		}
		id, ok := readUint64(record, &n)
		if !ok || id > 0xffffffff {
			break unpack_switch
		}
		r.OrderId = uint32(id)
		return done(r, n, checkAccounts(r.Owner))

	case AccountCreateTag:
		r := &AccountCreate{}
		if r.Creator, ok = readString(record, &n, maxMemoLength); !ok {
			break unpack_switch
		}
		if r.NewAccount, ok = readString(record, &n, maxMemoLength); !ok {
			break unpack_switch
		}
		if r.Fee, ok = readUint64(record, &n); !ok {
			break unpack_switch
		}
		return done(r, n, checkAccounts(r.Creator, r.NewAccount))

	case AccountCreateWithDelegationTag:
		r := &AccountCreateWithDelegation{}
		if r.Creator, ok = readString(record, &n, maxMemoLength); !ok {
			break unpack_switch
		}
		if r.NewAccount, ok = readString(record, &n, maxMemoLength); !ok {
			break unpack_switch
		}
		if r.Fee, ok = readUint64(record, &n); !ok {
			break unpack_switch
		}
		if r.Delegation, ok = readUint64(record, &n); !ok {
			break unpack_switch
		}
		return done(r, n, checkAccounts(r.Creator, r.NewAccount))

	case VoteTag:
		r := &Vote{}
		if r.Voter, ok = readString(record, &n, maxMemoLength); !ok {
			break unpack_switch
		}
		if r.Author, ok = readString(record, &n, maxMemoLength); !ok {
			break unpack_switch
		}
		if r.Permlink, ok = readString(record, &n, maxPermlinkLength); !ok {
			break unpack_switch
		}
		weight, count := util.FromSignedVarint64(record[n:])
		if 0 == count {
			break unpack_switch
		}
		n += count
		if weight < -10000 || weight > 10000 {
			return nil, 0, fault.ErrInvalidVoteWeight
		}
		r.Weight = int16(weight)
		return done(r, n, checkAccounts(r.Voter, r.Author))

	case CommentTag:
		r := &Comment{}
		if r.ParentAuthor, ok = readString(record, &n, maxMemoLength); !ok {
			break unpack_switch
		}
		if r.ParentPermlink, ok = readString(record, &n, maxPermlinkLength); !ok {
			break unpack_switch
		}
		if r.Author, ok = readString(record, &n, maxMemoLength); !ok {
			break unpack_switch
		}
		if r.Permlink, ok = readString(record, &n, maxPermlinkLength); !ok {
			break unpack_switch
		}
		if r.Title, ok = readString(record, &n, maxTitleLength); !ok {
			break unpack_switch
		}
		if r.Body, ok = readString(record, &n, maxBodyLength); !ok {
			break unpack_switch
		}
		if "" != r.ParentAuthor {
			if err := checkAccounts(r.ParentAuthor); nil != err {
				return nil, 0, err
			}
		}
		return done(r, n, checkAccounts(r.Author))

	case CustomJSONTag:
		r := &CustomJSON{}
		if r.RequiredAuths, ok = readStrings(record, &n); !ok {
			break unpack_switch
		}
		if r.RequiredPostingAuths, ok = readStrings(record, &n); !ok {
			break unpack_switch
		}
		if r.Id, ok = readString(record, &n, maxCustomIDLength); !ok {
			break unpack_switch
		}
		if r.JSON, ok = readString(record, &n, maxJSONLength); !ok {
			break unpack_switch
		}
		if 0 == len(r.RequiredAuths)+len(r.RequiredPostingAuths) {
			return nil, 0, fault.ErrInvalidAccountName
		}
		if err := checkAccounts(r.RequiredAuths...); nil != err {
			return nil, 0, err
		}
		return done(r, n, checkAccounts(r.RequiredPostingAuths...))

	case WithdrawStakeTag:
		r := &WithdrawStake{}
		if r.Account, ok = readString(record, &n, maxMemoLength); !ok {
			break unpack_switch
		}
		if r.Amount, ok = readUint64(record, &n); !ok {
			break unpack_switch
		}
		return done(r, n, checkAccounts(r.Account))

	case DelegateStakeTag:
		r := &DelegateStake{}
		if r.Delegator, ok = readString(record, &n, maxMemoLength); !ok {
			break unpack_switch
		}
		if r.Delegatee, ok = readString(record, &n, maxMemoLength); !ok {
			break unpack_switch
		}
		if r.Amount, ok = readUint64(record, &n); !ok {
			break unpack_switch
		}
		return done(r, n, checkAccounts(r.Delegator, r.Delegatee))

	case ClaimAccountTag:
		r := &ClaimAccount{}
		if r.Creator, ok = readString(record, &n, maxMemoLength); !ok {
			break unpack_switch
		}
		if r.Fee, ok = readUint64(record, &n); !ok {
			break unpack_switch
		}
		return done(r, n, checkAccounts(r.Creator))

	case AccountUpdateTag:
		r := &AccountUpdate{}
		if r.Account, ok = readString(record, &n, maxMemoLength); !ok {
			break unpack_switch
		}
		if r.ChangeOwner, ok = readBool(record, &n); !ok {
			break unpack_switch
		}
		if r.JSONMetadata, ok = readString(record, &n, maxJSONLength); !ok {
			break unpack_switch
		}
		return done(r, n, checkAccounts(r.Account))

	default: // also NullTag
		return nil, 0, fault.ErrUnknownOperation
	}
	return nil, 0, fault.ErrNotTransactionPack
}

// read a Varint64(length) prefixed string, advancing *n
func readString(record Packed, n *int, maximum int) (string, bool) {
	length, count := util.FromVarint64(record[*n:])
	if 0 == count || length > uint64(maximum) {
		return "", false
	}
	start := *n + count
	end := start + int(length)
	if end > len(record) {
		return "", false
	}
	*n = end
	return string(record[start:end]), true
}

// read a Varint64(count) prefixed list of account names
func readStrings(record Packed, n *int) ([]string, bool) {
	count, length := util.FromVarint64(record[*n:])
	if 0 == length || count > maxAuths {
		return nil, false
	}
	*n += length
	if 0 == count {
		return nil, true
	}
	list := make([]string, 0, count)
	for i := uint64(0); i < count; i += 1 {
		s, ok := readString(record, n, maxMemoLength)
		if !ok {
			return nil, false
		}
		list = append(list, s)
	}
	return list, true
}

func readUint64(record Packed, n *int) (uint64, bool) {
	value, count := util.FromVarint64(record[*n:])
	if 0 == count {
		return 0, false
	}
	*n += count
	return value, true
}

func readBool(record Packed, n *int) (bool, bool) {
	if *n >= len(record) {
		return false, false
	}
	b := record[*n]
	if b > 1 {
		return false, false
	}
	*n += 1
	return 1 == b, true
}

// only return the operation when its accounts are valid
func done(op Operation, n int, err error) (Operation, int, error) {
	if nil != err {
		return nil, 0, err
	}
	return op, n, nil
}
