// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package curve - the elastic price of a resource and the decay of
// its pool
//
// All intermediate values are held in 256 bit unsigned integers so
// that no product of two 64 bit quantities can wrap.
package curve

import (
	"math"

	"github.com/holiman/uint256"

	"github.com/bitmark-inc/rcengine/fault"
	"github.com/bitmark-inc/rcengine/resource"
)

// Price - the credit cost of amount units of a resource when its pool
// holds poolLevel units
//
// a negative amount is a refund and costs exactly the negated price
// of the positive amount; any positive amount costs at least 1
func Price(params resource.CurveParams, poolLevel int64, amount int64) (int64, error) {
	if amount <= 0 {
		if 0 == amount {
			return 0, nil
		}
		if math.MinInt64 == amount {
			return 0, fault.ErrCurveOverflow
		}
		price, err := Price(params, poolLevel, -amount)
		return -price, err
	}

	if 0 == params.CoeffB {
		return 0, fault.ErrInvalidCurveParameters
	}

	numerator := new(uint256.Int).Mul(uint256.NewInt(uint64(amount)), uint256.NewInt(params.CoeffA))
	quotient := numerator.Div(numerator, denominator(params, poolLevel))

	if params.CoeffD >= 0 {
		discount := uint256.NewInt(uint64(params.CoeffD))
		if !quotient.Gt(discount) {
			return 1, nil
		}
		quotient.Sub(quotient, discount)
	} else {
		quotient.Add(quotient, uint256.NewInt(magnitude(params.CoeffD)))
	}

	quotient.Rsh(quotient, uint(params.Shift))

	if !quotient.IsUint64() || quotient.Uint64() > math.MaxInt64 {
		return 0, fault.ErrCurveOverflow
	}
	result := int64(quotient.Uint64())
	if 0 == result {
		return 1, nil
	}
	return result, nil
}

// B adjusted by the pool level; a negative pool lowers it but never
// below one
func denominator(params resource.CurveParams, poolLevel int64) *uint256.Int {
	d := uint256.NewInt(params.CoeffB)
	switch {
	case poolLevel > 0:
		d.Add(d, uint256.NewInt(uint64(poolLevel)))
	case poolLevel < 0:
		drop := magnitude(poolLevel)
		if limit := params.CoeffB - 1; drop > limit {
			drop = limit
		}
		d.Sub(d, uint256.NewInt(drop))
	}
	return d
}

// Decay - the amount removed from a pool over dt time units
//
// non-positive pools do not decay and the result never exceeds the pool
func Decay(params resource.DecayParams, poolLevel int64, dt uint64) int64 {
	if poolLevel <= 0 || 0 == dt {
		return 0
	}

	amount := new(uint256.Int).Mul(uint256.NewInt(uint64(params.DecayPerTimeUnit)), uint256.NewInt(dt))
	amount.Mul(amount, uint256.NewInt(uint64(poolLevel)))
	amount.Rsh(amount, uint(params.DenomShift))

	if !amount.IsUint64() || amount.Uint64() > uint64(poolLevel) {
		return poolLevel
	}
	return int64(amount.Uint64())
}

// absolute value of a negative number, safe for math.MinInt64
func magnitude(n int64) uint64 {
	return uint64(-(n + 1)) + 1
}
