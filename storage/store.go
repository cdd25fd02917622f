// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"fmt"

	ldb_util "github.com/syndtr/goleveldb/leveldb/util"

	"github.com/bitmark-inc/rcengine/blockrecord"
	"github.com/bitmark-inc/rcengine/fault"
	"github.com/bitmark-inc/rcengine/pool"
	"github.com/bitmark-inc/rcengine/rcaccount"
	"github.com/bitmark-inc/rcengine/resource"
	"github.com/bitmark-inc/rcengine/util"
)

// fixed keys of single record pools
var (
	poolKey      = []byte("pool")
	paramsKey    = []byte("params")
	lastBlockKey = []byte("last")
)

// Store - typed access to the pools
type Store struct{}

// NewStore - typed access to an initialised database
func NewStore() (*Store, error) {
	poolData.RLock()
	defer poolData.RUnlock()

	if nil == poolData.db {
		return nil, fault.ErrNotInitialised
	}
	return &Store{}, nil
}

// Begin - start a batch
func (s *Store) Begin() error {
	return currentAccess().Begin()
}

// Commit - write the batch
func (s *Store) Commit() error {
	return currentAccess().Commit()
}

// Abort - discard the batch
func (s *Store) Abort() {
	currentAccess().Abort()
}

// InUse - true while a batch is open
func (s *Store) InUse() bool {
	return currentAccess().InUse()
}

func currentAccess() Access {
	poolData.RLock()
	defer poolData.RUnlock()
	if nil == poolData.access {
		return closedAccess{}
	}
	return poolData.access
}

// Account - read a record, ok is false if none exists
func (s *Store) Account(name string) (*rcaccount.Record, bool, error) {
	buffer, err := Pool.Accounts.Get([]byte(name))
	if nil != err {
		return nil, false, err
	}
	if nil == buffer {
		return nil, false, nil
	}
	record, err := rcaccount.Unpack(name, buffer)
	fault.PanicIfError(fmt.Sprintf("account: %q  unpack record: %x", name, buffer), err)
	return record, true, nil
}

// PutAccount - queue a record write
func (s *Store) PutAccount(record *rcaccount.Record) error {
	return Pool.Accounts.Put([]byte(record.Account), record.Pack())
}

// DeleteAccount - queue a record removal
func (s *Store) DeleteAccount(name string) error {
	return Pool.Accounts.Delete([]byte(name))
}

// AccountNames - every account with a record, sorted
func (s *Store) AccountNames() ([]string, error) {
	return names(Pool.Accounts)
}

// Pool - read the resource pool
func (s *Store) Pool() (*pool.Pool, error) {
	buffer, err := Pool.Pool.Get(poolKey)
	if nil != err {
		return nil, err
	}
	if nil == buffer {
		return nil, fault.ErrMissingPool
	}
	p, err := pool.Unpack(buffer)
	fault.PanicIfError("unpack pool", err)
	return p, nil
}

// PutPool - queue a pool write
func (s *Store) PutPool(p *pool.Pool) error {
	return Pool.Pool.Put(poolKey, p.Pack())
}

// Params - read the resource parameters
func (s *Store) Params() (resource.ParamSet, error) {
	buffer, err := Pool.Params.Get(paramsKey)
	if nil != err {
		return resource.ParamSet{}, err
	}
	if nil == buffer {
		return resource.ParamSet{}, fault.ErrMissingParameters
	}
	params, err := resource.UnpackParamSet(buffer)
	fault.PanicIfError("unpack parameters", err)
	return params, nil
}

// PutParams - queue a parameter write
func (s *Store) PutParams(params resource.ParamSet) error {
	if err := params.Validate(); nil != err {
		return err
	}
	return Pool.Params.Put(paramsKey, params.Pack())
}

// Stake - stake of an account, ok is false for an unknown account
func (s *Store) Stake(name string) (int64, bool, error) {
	buffer, err := Pool.Stakes.Get([]byte(name))
	if nil != err || nil == buffer {
		return 0, false, err
	}
	stake, n := util.FromSignedVarint64(buffer)
	if 0 == n || n != len(buffer) {
		fault.PanicIfError(fmt.Sprintf("stake: %q  unpack: %x", name, buffer), fault.ErrTruncatedRecord)
	}
	return stake, true, nil
}

// PutStake - queue a stake write
func (s *Store) PutStake(name string, stake int64) error {
	return Pool.Stakes.Put([]byte(name), util.ToSignedVarint64(stake))
}

// StakeNames - every account with a stake, sorted
func (s *Store) StakeNames() ([]string, error) {
	return names(Pool.Stakes)
}

// LastBlock - the last block applied with the transactions that were
// applied from it, ok is false before the first block
func (s *Store) LastBlock() (*blockrecord.Block, bool, error) {
	buffer, err := Pool.Blocks.Get(lastBlockKey)
	if nil != err || nil == buffer {
		return nil, false, err
	}
	block, err := blockrecord.ExtractApplied(buffer)
	fault.PanicIfError("unpack last block", err)
	return block, true, nil
}

// PutLastBlock - queue a write of the last applied block
//
// a producer's block only holds the transactions it accepted
func (s *Store) PutLastBlock(block *blockrecord.Block) error {
	packed, err := block.PackApplied()
	if nil != err {
		return err
	}
	return Pool.Blocks.Put(lastBlockKey, packed)
}

func names(p *PoolHandle) ([]string, error) {
	keys, err := p.Keys()
	if nil != err {
		return nil, err
	}
	result := make([]string, len(keys))
	for i, key := range keys {
		result[i] = string(key)
	}
	return result, nil
}

// used after Finalise
type closedAccess struct{}

func (closedAccess) Abort()                                 {}
func (closedAccess) Begin() error                           { return fault.ErrNotInitialised }
func (closedAccess) Commit() error                          { return fault.ErrNotInitialised }
func (closedAccess) Delete([]byte) error                    { return fault.ErrNotInitialised }
func (closedAccess) Get([]byte) ([]byte, error)             { return nil, fault.ErrNotInitialised }
func (closedAccess) Has([]byte) (bool, error)               { return false, fault.ErrNotInitialised }
func (closedAccess) InUse() bool                            { return false }
func (closedAccess) Keys(*ldb_util.Range) ([][]byte, error) { return nil, fault.ErrNotInitialised }
func (closedAccess) Put([]byte, []byte) error               { return fault.ErrNotInitialised }
