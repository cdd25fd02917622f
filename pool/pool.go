// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package pool

import (
	"math"

	"github.com/holiman/uint256"

	"github.com/bitmark-inc/rcengine/curve"
	"github.com/bitmark-inc/rcengine/fault"
	"github.com/bitmark-inc/rcengine/resource"
)

// Pool - levels of all resources
type Pool struct {
	Levels     [resource.NumTypes]int64 `json:"levels"`
	LastUpdate uint64                   `json:"lastUpdate"`
}

// New - a pool at the level where decay matches budget
func New(params resource.ParamSet, now uint64) *Pool {
	p := &Pool{
		LastUpdate: now,
	}
	for i := range params {
		p.Levels[i] = Equilibrium(params[i])
	}
	return p
}

// Equilibrium - the level at which one time unit of decay equals
// one time unit of budget
//
// zero when the resource does not decay
func Equilibrium(params resource.Params) int64 {
	if 0 == params.Decay.DecayPerTimeUnit || params.BudgetPerTimeUnit <= 0 {
		return 0
	}
	level := new(uint256.Int).Lsh(uint256.NewInt(uint64(params.BudgetPerTimeUnit)), uint(params.Decay.DenomShift))
	level.Div(level, uint256.NewInt(uint64(params.Decay.DecayPerTimeUnit)))
	if !level.IsUint64() || level.Uint64() > math.MaxInt64 {
		return math.MaxInt64
	}
	return int64(level.Uint64())
}

// Regenerate - apply one block of decay, budget and usage
//
// usage is the block total already scaled to resource units; the
// pool is unchanged if any level would overflow
func Regenerate(p *Pool, params resource.ParamSet, usage resource.Count, now uint64) error {
	if now < p.LastUpdate {
		return fault.ErrClockRegression
	}

	levels := p.Levels
	for i := range params {
		dt := uint64(1)
		if resource.Seconds == params[i].TimeUnit {
			dt = now - p.LastUpdate
		}
		if dt > math.MaxInt64 {
			return fault.ErrCurveOverflow
		}

		level := levels[i] - curve.Decay(params[i].Decay, levels[i], dt)

		budget, ok := resource.CheckedMul(params[i].BudgetPerTimeUnit, int64(dt))
		if !ok {
			return fault.ErrCurveOverflow
		}
		level, ok = resource.CheckedAdd(level, budget)
		if !ok {
			return fault.ErrCurveOverflow
		}
		level, ok = resource.CheckedSub(level, usage[i])
		if !ok {
			return fault.ErrCurveOverflow
		}
		levels[i] = level
	}

	p.Levels = levels
	p.LastUpdate = now
	return nil
}
