// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package rc - resource credit engine
//
// the host calls TransactionApplied once for each transaction in
// chain order and BlockApplied once after the last transaction of each
// block; both must see the same store so replays reach the same state
//
// pool levels are read as they were after the previous block so every
// transaction in a block is priced against the same pool
package rc
