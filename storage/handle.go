// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	ldb_util "github.com/syndtr/goleveldb/leveldb/util"

	"github.com/bitmark-inc/rcengine/fault"
)

// PoolHandle - a prefixed key range of the database
type PoolHandle struct {
	prefix     byte
	limit      []byte
	dataAccess Access
}

// prepend the prefix onto the key
func (p *PoolHandle) prefixKey(key []byte) []byte {
	prefixedKey := make([]byte, 1, len(key)+1)
	prefixedKey[0] = p.prefix
	return append(prefixedKey, key...)
}

// Put - queue a key/value bytes pair
func (p *PoolHandle) Put(key []byte, value []byte) error {
	poolData.RLock()
	defer poolData.RUnlock()
	if nil == p || nil == p.dataAccess {
		return fault.ErrNotInitialised
	}
	return p.dataAccess.Put(p.prefixKey(key), value)
}

// Delete - queue removal of a key
func (p *PoolHandle) Delete(key []byte) error {
	poolData.RLock()
	defer poolData.RUnlock()
	if nil == p || nil == p.dataAccess {
		return fault.ErrNotInitialised
	}
	return p.dataAccess.Delete(p.prefixKey(key))
}

// Get - read a value for a given key
//
// returns nil if the key does not exist
func (p *PoolHandle) Get(key []byte) ([]byte, error) {
	poolData.RLock()
	defer poolData.RUnlock()
	if nil == p || nil == p.dataAccess {
		return nil, fault.ErrNotInitialised
	}
	return p.dataAccess.Get(p.prefixKey(key))
}

// Has - check if a key exists
func (p *PoolHandle) Has(key []byte) (bool, error) {
	poolData.RLock()
	defer poolData.RUnlock()
	if nil == p || nil == p.dataAccess {
		return false, fault.ErrNotInitialised
	}
	return p.dataAccess.Has(p.prefixKey(key))
}

// Keys - all keys of the pool in order, prefix removed
func (p *PoolHandle) Keys() ([][]byte, error) {
	poolData.RLock()
	defer poolData.RUnlock()
	if nil == p || nil == p.dataAccess {
		return nil, fault.ErrNotInitialised
	}

	searchRange := ldb_util.Range{
		Start: []byte{p.prefix},
		Limit: p.limit,
	}
	keys, err := p.dataAccess.Keys(&searchRange)
	if nil != err {
		return nil, err
	}
	for i := range keys {
		keys[i] = keys[i][1:]
	}
	return keys, nil
}
