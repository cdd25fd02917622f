// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package pool - elastic per-resource supply levels
//
// The pool is read by pricing and changed only once per block, after
// every transaction of the block has been charged, using the total
// usage of that block.  Each resource loses a fraction of its level
// (decay), gains a fixed budget and gives up whatever the block used:
//
//   level = level - decay + budget×dt - usage
//
// A level may become negative; the price curve clamps it.
package pool
