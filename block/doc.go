// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package block - feed blocks through the rc engine and the stake
// ledger in chain order
//
// every transaction is charged before its stake changes are applied,
// so a charge sees the stakes as they were when the transaction was
// signed; the pool is regenerated once the whole block is applied
package block
