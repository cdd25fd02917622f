// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package rcaccount - per-account resource credit records
//
// A record tracks consumed credit.  Consumption regenerates in
// proportion to stake so that a fully used account recovers in
// constants.RegenerationTime.  The capacity of an account is its
// stake plus any adjustment for the fee it paid when creating
// accounts:
//
//   maximum   = stake + creation adjustment
//   available = maximum - balance
//
// A block producer rejects a transaction whose cost exceeds the
// available credit; a block being replayed is always charged.
package rcaccount
