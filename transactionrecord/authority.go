// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package transactionrecord

// Authorities - the accounts whose keys must sign an operation
type Authorities struct {
	Active  []string `json:"active"`
	Owner   []string `json:"owner"`
	Posting []string `json:"posting"`
}

func active(accounts ...string) Authorities {
	return Authorities{Active: accounts}
}

func posting(accounts ...string) Authorities {
	return Authorities{Posting: accounts}
}

// Authorities - required signers
func (transfer *Transfer) Authorities() Authorities {
	return active(transfer.From)
}

// Authorities - required signers
func (transfer *TransferToStake) Authorities() Authorities {
	return active(transfer.From)
}

// Authorities - required signers
func (order *LimitOrderCreate) Authorities() Authorities {
	return active(order.Owner)
}

// Authorities - required signers
func (order *LimitOrderCancel) Authorities() Authorities {
	return active(order.Owner)
}

// Authorities - required signers
func (create *AccountCreate) Authorities() Authorities {
	return active(create.Creator)
}

// Authorities - required signers
func (create *AccountCreateWithDelegation) Authorities() Authorities {
	return active(create.Creator)
}

// Authorities - required signers
func (vote *Vote) Authorities() Authorities {
	return posting(vote.Voter)
}

// Authorities - required signers
func (comment *Comment) Authorities() Authorities {
	return posting(comment.Author)
}

// Authorities - required signers
func (custom *CustomJSON) Authorities() Authorities {
	return Authorities{
		Active:  custom.RequiredAuths,
		Posting: custom.RequiredPostingAuths,
	}
}

// Authorities - required signers
func (withdraw *WithdrawStake) Authorities() Authorities {
	return active(withdraw.Account)
}

// Authorities - required signers
func (delegate *DelegateStake) Authorities() Authorities {
	return active(delegate.Delegator)
}

// Authorities - required signers
func (claim *ClaimAccount) Authorities() Authorities {
	return active(claim.Creator)
}

// Authorities - required signers
func (update *AccountUpdate) Authorities() Authorities {
	if update.ChangeOwner {
		return Authorities{Owner: []string{update.Account}}
	}
	return active(update.Account)
}
