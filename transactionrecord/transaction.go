// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package transactionrecord

import (
	"encoding/hex"

	"github.com/bitmark-inc/rcengine/merkle"
	"github.com/bitmark-inc/rcengine/util"
)

// TagType - type code for operations
type TagType uint64

// enumerate the possible operation types
// this is encoded a Varint64 at start of each packed operation
const (
	// null marks beginning of list - not used as a record type
	NullTag = TagType(iota)

	// valid operation types
	TransferTag                    = TagType(iota) // move liquid balance
	TransferToStakeTag             = TagType(iota) // convert liquid balance to stake
	LimitOrderCreateTag            = TagType(iota) // place market order
	LimitOrderCancelTag            = TagType(iota) // remove market order
	AccountCreateTag               = TagType(iota) // create account paying a fee
	AccountCreateWithDelegationTag = TagType(iota) // create account with fee and delegated stake
	VoteTag                        = TagType(iota) // vote on content
	CommentTag                     = TagType(iota) // post or reply
	CustomJSONTag                  = TagType(iota) // opaque application data
	WithdrawStakeTag               = TagType(iota) // start converting stake to liquid
	DelegateStakeTag               = TagType(iota) // lend stake to another account
	ClaimAccountTag                = TagType(iota) // pay for a future account creation
	AccountUpdateTag               = TagType(iota) // change keys or metadata

	// this item must be last
	InvalidTag = TagType(iota)
)

// Packed - packed records are just a byte slice
type Packed []byte

// Operation - generic operation interface
type Operation interface {
	Pack() (Packed, error)
	Authorities() Authorities
}

// byte sizes for various fields
const (
	maxMemoLength      = 2048
	maxPermlinkLength  = 256
	maxTitleLength     = 256
	maxBodyLength      = 65536
	maxJSONLength      = 8192
	maxCustomIDLength  = 32
	maxSignatureLength = 1024
	maxSignatures      = 16
	maxAuths           = 16
	maxOperations      = 1024
)

// Transfer - the unpacked Transfer structure
type Transfer struct {
	From   string `json:"from"`          // paying account
	To     string `json:"to"`            // receiving account
	Amount uint64 `json:"amount,string"` // smallest currency unit
	Memo   string `json:"memo"`          // utf-8
}

// TransferToStake - the unpacked TransferToStake structure
type TransferToStake struct {
	From   string `json:"from"`
	To     string `json:"to"` // account that receives the stake
	Amount uint64 `json:"amount,string"`
}

// LimitOrderCreate - the unpacked LimitOrderCreate structure
type LimitOrderCreate struct {
	Owner        string `json:"owner"`
	OrderId      uint32 `json:"orderid"`
	AmountToSell uint64 `json:"amount_to_sell,string"`
	MinToReceive uint64 `json:"min_to_receive,string"`
	FillOrKill   bool   `json:"fill_or_kill"`
	Expiration   uint64 `json:"expiration"` // seconds since epoch
}

// LimitOrderCancel - the unpacked LimitOrderCancel structure
type LimitOrderCancel struct {
	Owner   string `json:"owner"`
	OrderId uint32 `json:"orderid"`
}

// AccountCreate - the unpacked AccountCreate structure
type AccountCreate struct {
	Creator    string `json:"creator"`
	NewAccount string `json:"new_account_name"`
	Fee        uint64 `json:"fee,string"` // liquid currency paid by creator
}

// AccountCreateWithDelegation - the unpacked AccountCreateWithDelegation structure
type AccountCreateWithDelegation struct {
	Creator    string `json:"creator"`
	NewAccount string `json:"new_account_name"`
	Fee        uint64 `json:"fee,string"`
	Delegation uint64 `json:"delegation,string"` // stake lent to the new account
}

// Vote - the unpacked Vote structure
type Vote struct {
	Voter    string `json:"voter"`
	Author   string `json:"author"`
	Permlink string `json:"permlink"`
	Weight   int16  `json:"weight"` // -10000..10000
}

// Comment - the unpacked Comment structure
type Comment struct {
	ParentAuthor   string `json:"parent_author"` // empty for a top level post
	ParentPermlink string `json:"parent_permlink"`
	Author         string `json:"author"`
	Permlink       string `json:"permlink"`
	Title          string `json:"title"`
	Body           string `json:"body"`
}

// CustomJSON - the unpacked CustomJSON structure
type CustomJSON struct {
	RequiredAuths        []string `json:"required_auths"`
	RequiredPostingAuths []string `json:"required_posting_auths"`
	Id                   string   `json:"id"`
	JSON                 string   `json:"json"`
}

// WithdrawStake - the unpacked WithdrawStake structure
type WithdrawStake struct {
	Account string `json:"account"`
	Amount  uint64 `json:"amount,string"`
}

// DelegateStake - the unpacked DelegateStake structure
type DelegateStake struct {
	Delegator string `json:"delegator"`
	Delegatee string `json:"delegatee"`
	Amount    uint64 `json:"amount,string"`
}

// ClaimAccount - the unpacked ClaimAccount structure
type ClaimAccount struct {
	Creator string `json:"creator"`
	Fee     uint64 `json:"fee,string"`
}

// AccountUpdate - the unpacked AccountUpdate structure
//
// changing the owner key requires the owner authority
type AccountUpdate struct {
	Account      string `json:"account"`
	ChangeOwner  bool   `json:"change_owner"`
	JSONMetadata string `json:"json_metadata"`
}

// Type - returns the record type code
func (record Packed) Type() TagType {
	recordType, n := util.FromVarint64(record)
	if 0 == n {
		return NullTag
	}
	return TagType(recordType)
}

// RecordName - returns the name of an operation as a string
func RecordName(record interface{}) (string, bool) {
	switch record.(type) {
	case *Transfer, Transfer:
		return "Transfer", true

	case *TransferToStake, TransferToStake:
		return "TransferToStake", true

	case *LimitOrderCreate, LimitOrderCreate:
		return "LimitOrderCreate", true

	case *LimitOrderCancel, LimitOrderCancel:
		return "LimitOrderCancel", true

	case *AccountCreate, AccountCreate:
		return "AccountCreate", true

	case *AccountCreateWithDelegation, AccountCreateWithDelegation:
		return "AccountCreateWithDelegation", true

	case *Vote, Vote:
		return "Vote", true

	case *Comment, Comment:
		return "Comment", true

	case *CustomJSON, CustomJSON:
		return "CustomJSON", true

	case *WithdrawStake, WithdrawStake:
		return "WithdrawStake", true

	case *DelegateStake, DelegateStake:
		return "DelegateStake", true

	case *ClaimAccount, ClaimAccount:
		return "ClaimAccount", true

	case *AccountUpdate, AccountUpdate:
		return "AccountUpdate", true

	default:
		return "*unknown*", false
	}
}

// MakeLink - digest of a packed record
func (record Packed) MakeLink() merkle.Digest {
	return merkle.NewDigest(record)
}

// MarshalText - convert a packed to its hex JSON form
func (record Packed) MarshalText() ([]byte, error) {
	size := hex.EncodedLen(len(record))
	b := make([]byte, size)
	hex.Encode(b, record)
	return b, nil
}

// UnmarshalText - convert a packed to its hex JSON form
func (record *Packed) UnmarshalText(s []byte) error {
	size := hex.DecodedLen(len(s))
	*record = make([]byte, size)
	_, err := hex.Decode(*record, s)
	return err
}
