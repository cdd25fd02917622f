// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"sort"
	"sync"

	"github.com/syndtr/goleveldb/leveldb"
	ldb_util "github.com/syndtr/goleveldb/leveldb/util"

	"github.com/bitmark-inc/rcengine/fault"
)

// Access - batched read/write access to the database
type Access interface {
	Abort()
	Begin() error
	Commit() error
	Delete([]byte) error
	Get([]byte) ([]byte, error)
	Has([]byte) (bool, error)
	InUse() bool
	Keys(*ldb_util.Range) ([][]byte, error)
	Put([]byte, []byte) error
}

// AccessData - leveldb with a write batch and a cache of its contents
type AccessData struct {
	sync.Mutex
	inUse bool
	db    *leveldb.DB
	batch *leveldb.Batch
	cache Cache
}

func newDA(db *leveldb.DB, trx *leveldb.Batch, cache Cache) Access {
	return &AccessData{
		inUse: false,
		db:    db,
		batch: trx,
		cache: cache,
	}
}

// Begin - start collecting writes
func (d *AccessData) Begin() error {
	d.Lock()
	defer d.Unlock()

	if d.inUse {
		return fault.ErrTransactionAlreadyInUse
	}

	d.inUse = true
	return nil
}

// Put - queue a write
func (d *AccessData) Put(key []byte, value []byte) error {
	d.Lock()
	defer d.Unlock()

	if !d.inUse {
		return fault.ErrNoTransactionInProgress
	}
	stored := make([]byte, len(value))
	copy(stored, value)
	d.cache.Set(dbPut, string(key), stored)
	d.batch.Put(key, stored)
	return nil
}

// Delete - queue a removal
func (d *AccessData) Delete(key []byte) error {
	d.Lock()
	defer d.Unlock()

	if !d.inUse {
		return fault.ErrNoTransactionInProgress
	}
	d.cache.Set(dbDelete, string(key), nil)
	d.batch.Delete(key)
	return nil
}

// Commit - write the batch in one step
func (d *AccessData) Commit() error {
	d.Lock()
	defer d.Unlock()

	if !d.inUse {
		return fault.ErrNoTransactionInProgress
	}

	err := d.db.Write(d.batch, nil)
	if nil != err {
		return err
	}
	d.reset()
	return nil
}

// Abort - discard the batch
func (d *AccessData) Abort() {
	d.Lock()
	defer d.Unlock()

	d.reset()
}

func (d *AccessData) reset() {
	d.batch.Reset()
	d.cache.Clear()
	d.inUse = false
}

// InUse - true between Begin and Commit/Abort
func (d *AccessData) InUse() bool {
	d.Lock()
	defer d.Unlock()

	return d.inUse
}

// Get - read a key, pending writes first
//
// returns nil, nil if the key does not exist
func (d *AccessData) Get(key []byte) ([]byte, error) {
	value, found, deleted := d.cache.Get(string(key))
	if deleted {
		return nil, nil
	}
	if found {
		return value, nil
	}

	value, err := d.db.Get(key, nil)
	if leveldb.ErrNotFound == err {
		return nil, nil
	}
	return value, err
}

// Has - check if a key exists
func (d *AccessData) Has(key []byte) (bool, error) {
	_, found, deleted := d.cache.Get(string(key))
	if found {
		return !deleted, nil
	}
	return d.db.Has(key, nil)
}

// Keys - sorted keys in the range including pending writes
func (d *AccessData) Keys(searchRange *ldb_util.Range) ([][]byte, error) {
	live := make(map[string]bool)

	iter := d.db.NewIterator(searchRange, nil)
	for iter.Next() {
		live[string(iter.Key())] = true
	}
	iter.Release()
	if err := iter.Error(); nil != err {
		return nil, err
	}

	for key, isLive := range d.cache.Keys(string(searchRange.Start)) {
		if nil != searchRange.Limit && key >= string(searchRange.Limit) {
			continue
		}
		live[key] = isLive
	}

	names := make([]string, 0, len(live))
	for key, isLive := range live {
		if isLive {
			names = append(names, key)
		}
	}
	sort.Strings(names)

	keys := make([][]byte, len(names))
	for i, name := range names {
		keys[i] = []byte(name)
	}
	return keys, nil
}
