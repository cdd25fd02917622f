// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package storage - persistent resource credit state
//
// A single leveldb database holds several pools, each a key range
// distinguished by a one byte prefix:
//
//   R<account>  packed rcaccount.Record
//   S<account>  Varint64 stake of an account
//   P"pool"     packed pool.Pool
//   C"params"   packed resource.ParamSet
//
// Writes are collected in a batch between Begin and Commit; reads
// made before Commit see the pending writes through a cache.
package storage
