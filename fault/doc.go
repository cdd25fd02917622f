// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package fault - error instances
//
// Provides a single instance of each error so callers can compare
// errors directly and classify them by type.  FatalError values
// indicate a broken host invariant: processing must stop rather than
// continue with a ledger that could diverge from other nodes.
package fault
