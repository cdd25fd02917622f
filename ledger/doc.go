// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package ledger - the stake table the rc engine reads
//
// only the operations that change stake or create accounts are
// applied; liquid balances are not tracked
package ledger
