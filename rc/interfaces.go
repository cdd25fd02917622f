// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rc

import (
	"github.com/bitmark-inc/rcengine/pool"
	"github.com/bitmark-inc/rcengine/rcaccount"
	"github.com/bitmark-inc/rcengine/resource"
)

// Chain - read only view of the host chain state
type Chain interface {
	Stake(account string) (int64, bool)
	StakePrice() rcaccount.Price
	TotalStake() int64
	Accounts() []string
}

// Store - persistent records of the engine
//
// writes are only valid between Begin and Commit/Abort and reads
// must see writes that are not yet committed; InUse reports a batch
// opened by the caller, which the engine then writes into
type Store interface {
	Account(name string) (*rcaccount.Record, bool, error)
	PutAccount(record *rcaccount.Record) error
	DeleteAccount(name string) error
	AccountNames() ([]string, error)
	Pool() (*pool.Pool, error)
	PutPool(p *pool.Pool) error
	Params() (resource.ParamSet, error)
	Begin() error
	Commit() error
	Abort()
	InUse() bool
}
