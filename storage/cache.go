// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"strings"

	cache "github.com/patrickmn/go-cache"

	"github.com/bitmark-inc/rcengine/constants"
)

// Cache - pending writes of the current batch
type Cache interface {
	Get(string) (value []byte, found bool, deleted bool)
	Set(int, string, []byte)
	Keys(prefix string) map[string]bool
	Clear()
}

const (
	dbPut = iota
	dbDelete
)

type dbCache struct {
	cache *cache.Cache
}

type cacheData struct {
	op    int
	value []byte
}

func newCache() Cache {
	return &dbCache{
		cache: cache.New(constants.CacheTimeout, constants.CacheExpiration),
	}
}

// Get - found is false if the key has no pending write; a pending
// delete is reported as found and deleted
func (c *dbCache) Get(key string) ([]byte, bool, bool) {
	obj, found := c.cache.Get(key)
	if !found {
		return nil, false, false
	}

	data := obj.(cacheData)
	if dbDelete == data.op {
		return nil, true, true
	}
	return data.value, true, false
}

func (c *dbCache) Set(op int, key string, value []byte) {
	cached := cacheData{
		op:    op,
		value: value,
	}
	c.cache.Set(key, cached, cache.NoExpiration)
}

// Keys - pending keys with the prefix, true if the key is live
func (c *dbCache) Keys(prefix string) map[string]bool {
	keys := make(map[string]bool)
	for key, item := range c.cache.Items() {
		if !strings.HasPrefix(key, prefix) {
			continue
		}
		keys[key] = dbPut == item.Object.(cacheData).op
	}
	return keys
}

func (c *dbCache) Clear() {
	c.cache.Flush()
}
