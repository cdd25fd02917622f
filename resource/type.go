// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package resource

import (
	"fmt"
	"math"

	"github.com/bitmark-inc/rcengine/fault"
)

// Type - index of a metered resource
type Type int

// all resource types - order is significant
const (
	HistoryBytes Type = iota
	NewAccounts
	MarketBytes

	// this item must be last
	NumTypes = iota
)

// Count - one slot of usage per resource type
type Count [NumTypes]int64

// Types - all resource types in index order
func Types() []Type {
	return []Type{HistoryBytes, NewAccounts, MarketBytes}
}

// Valid - check the type is within range
func (t Type) Valid() bool {
	return t >= HistoryBytes && t < NumTypes
}

// String - name as used in configuration files
func (t Type) String() string {
	switch t {
	case HistoryBytes:
		return "history_bytes"
	case NewAccounts:
		return "new_accounts"
	case MarketBytes:
		return "market_bytes"
	default:
		return "*unknown*"
	}
}

// TypeFromString - reverse of String
func TypeFromString(s string) (Type, error) {
	for _, t := range Types() {
		if t.String() == s {
			return t, nil
		}
	}
	return 0, fault.ErrInvalidResourceType
}

// Add - accumulate another count into this one
//
// the receiver is unchanged if any slot would overflow
func (c *Count) Add(other Count) error {
	sum := *c
	for i := range sum {
		v, ok := CheckedAdd(sum[i], other[i])
		if !ok {
			return fault.ErrCurveOverflow
		}
		sum[i] = v
	}
	*c = sum
	return nil
}

// String - compact form for logging
func (c Count) String() string {
	return fmt.Sprintf("[history: %d  accounts: %d  market: %d]", c[HistoryBytes], c[NewAccounts], c[MarketBytes])
}

// CheckedAdd - signed addition reporting overflow
func CheckedAdd(a int64, b int64) (int64, bool) {
	s := a + b
	if (b > 0 && s < a) || (b < 0 && s > a) {
		return 0, false
	}
	return s, true
}

// CheckedSub - signed subtraction reporting overflow
func CheckedSub(a int64, b int64) (int64, bool) {
	s := a - b
	if (b > 0 && s > a) || (b < 0 && s < a) {
		return 0, false
	}
	return s, true
}

// CheckedMul - signed multiplication reporting overflow
func CheckedMul(a int64, b int64) (int64, bool) {
	if 0 == a || 0 == b {
		return 0, true
	}
	if (a == -1 && b == math.MinInt64) || (b == -1 && a == math.MinInt64) {
		return 0, false
	}
	p := a * b
	if p/b != a {
		return 0, false
	}
	return p, true
}
