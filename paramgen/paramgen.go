// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package paramgen - derive curve, decay and budget parameters of a
// resource from human scale targets
//
// the pool equilibrium is budget / decay rate; the curve is chosen so
// that a pool at equilibrium prices a resource at p_0, the price at
// which the whole network's credit would drain the pool in drain time,
// and a full pool never prices below p_min
package paramgen

import (
	"math"

	"github.com/bitmark-inc/rcengine/fault"
	"github.com/bitmark-inc/rcengine/resource"
)

// defaults for optional inputs
const (
	DefaultBlockInterval      = 3.0
	DefaultInelasticityNum    = 1.0
	DefaultInelasticityDenom  = 128.0
	DefaultMinimumPrice       = 50.0
	DefaultSmallStockpileSize = 1 << 32
	DefaultResourceUnitBase   = 10
	DefaultDecayDenomShift    = 36
)

// network wide credit assumed when pricing, in the same units as stake
const (
	globalRegenerationPerSecond = 400 * 1000 * 1000 * 1000
	regenerationSeconds         = 15 * 24 * 60 * 60
)

// Duration - a span of time given in mixed units
type Duration struct {
	Weeks   float64 `json:"weeks"`
	Days    float64 `json:"days"`
	Hours   float64 `json:"hours"`
	Minutes float64 `json:"minutes"`
	Seconds float64 `json:"seconds"`
}

// TotalSeconds - the whole span in seconds
func (d Duration) TotalSeconds() float64 {
	return (((d.Weeks*7+d.Days)*24+d.Hours)*60+d.Minutes)*60 + d.Seconds
}

// Input - targets for one resource, nil fields take their defaults
type Input struct {
	TimeUnit             string   `json:"time_unit"`
	BlockInterval        *float64 `json:"block_interval"`
	BudgetTime           Duration `json:"budget_time"`
	Budget               float64  `json:"budget"`
	HalfLife             Duration `json:"half_life"`
	DrainTime            Duration `json:"drain_time"`
	InelasticityNum      *float64 `json:"inelasticity_threshold_num"`
	InelasticityDenom    *float64 `json:"inelasticity_threshold_denom"`
	MinimumPrice         *float64 `json:"p_min"`
	SmallStockpileSize   *float64 `json:"small_stockpile_size"`
	ResourceUnitBase     *uint8   `json:"resource_unit_base"`
	ResourceUnitExponent *uint8   `json:"resource_unit_exponent"`
	DecayDenomShift      *uint8   `json:"decay_per_time_unit_denom_shift"`
}

// Output - the parameters with the intermediate values that produced them
type Output struct {
	Params          resource.Params `json:"params"`
	PoolEquilibrium float64         `json:"pool_eq"`
	BudgetPerSecond float64         `json:"budget_per_sec"`
	P0              float64         `json:"p_0"`
	PBB             float64         `json:"p_bb"`
	PMin            float64         `json:"p_min"`
	A               float64         `json:"A"`
	B               float64         `json:"B"`
	D               float64         `json:"D"`
}

// Compute - parameters of one resource
func Compute(in Input) (Output, error) {
	timeUnit := resource.Seconds
	if "" != in.TimeUnit {
		u, err := resource.TimeUnitFromString(in.TimeUnit)
		if nil != err {
			return Output{}, err
		}
		timeUnit = u
	}

	timeUnitSeconds := 1.0
	if resource.Blocks == timeUnit {
		timeUnitSeconds = optional(in.BlockInterval, DefaultBlockInterval)
	}

	budgetTime := in.BudgetTime.TotalSeconds()
	halfLife := in.HalfLife.TotalSeconds()
	drainTime := in.DrainTime.TotalSeconds()
	if timeUnitSeconds <= 0 || budgetTime <= 0 || halfLife <= 0 || drainTime <= 0 || in.Budget <= 0 {
		return Output{}, fault.ErrInvalidGeneratorInput
	}

	inelasticity := optional(in.InelasticityNum, DefaultInelasticityNum) / optional(in.InelasticityDenom, DefaultInelasticityDenom)
	minimumPrice := optional(in.MinimumPrice, DefaultMinimumPrice)
	smallStockpile := optional(in.SmallStockpileSize, DefaultSmallStockpileSize)

	// (1-x)^H = 1/2  =>  x = -expm1(-ln(2)/H)
	decayPerSecond := -math.Expm1(-math.Ln2 / halfLife)
	budgetPerSecond := in.Budget / budgetTime

	base := byte(DefaultResourceUnitBase)
	if nil != in.ResourceUnitBase {
		base = *in.ResourceUnitBase
	}
	if base < 2 {
		return Output{}, fault.ErrInvalidResourceUnit
	}

	// smallest exponent that lifts the equilibrium pool above the
	// small stockpile size
	var exponent uint8
	if nil != in.ResourceUnitExponent {
		exponent = *in.ResourceUnitExponent
	} else {
		eq := budgetPerSecond / decayPerSecond
		e := math.Ceil(math.Log(smallStockpile/eq) / math.Log(float64(base)))
		if e > 0 {
			if e > math.MaxUint8 {
				return Output{}, fault.ErrInvalidResourceUnit
			}
			exponent = uint8(e)
		}
	}

	params := resource.Params{
		TimeUnit:             timeUnit,
		ResourceUnitBase:     base,
		ResourceUnitExponent: exponent,
	}
	unit, err := params.ResourceUnit()
	if nil != err {
		return Output{}, err
	}

	minimumPrice /= float64(unit)
	budgetPerSecond *= float64(unit)
	budgetPerTimeUnit := budgetPerSecond * timeUnitSeconds
	poolEquilibrium := budgetPerSecond / decayPerSecond

	// price at which regeneration only covers the budget, raised so
	// that the network drains an equilibrium pool in drain time
	pBB := globalRegenerationPerSecond / (budgetPerSecond * regenerationSeconds)
	p0 := pBB * (1.0 + regenerationSeconds/drainTime)

	B := inelasticity * poolEquilibrium
	D := (B/poolEquilibrium)*(p0-minimumPrice) - minimumPrice
	A := B * (p0 + D)
	if A < 1.0 || B < 1.0 {
		return Output{}, fault.ErrInvalidGeneratorInput
	}

	shift := math.Floor(math.Log2(math.MaxUint64 / A))
	if shift < 0 || shift >= 64 {
		return Output{}, fault.ErrInvalidCurveParameters
	}
	scale := math.Ldexp(1, int(shift))

	decayShift := uint8(DefaultDecayDenomShift)
	if nil != in.DecayDenomShift {
		decayShift = *in.DecayDenomShift
	}
	decay := -math.Expm1(-math.Ln2/(halfLife/timeUnitSeconds)) * math.Ldexp(1, int(decayShift))
	if decay >= math.MaxUint32 || budgetPerTimeUnit+0.5 >= math.MaxInt64 {
		return Output{}, fault.ErrInvalidDecayParameters
	}

	params.Curve = resource.CurveParams{
		CoeffA: toUnsigned(A*scale + 0.5),
		CoeffB: toUnsigned(B + 0.5),
		CoeffD: int64(D*scale + 0.5),
		Shift:  uint8(shift),
	}
	params.Decay = resource.DecayParams{
		DecayPerTimeUnit: uint32(decay),
		DenomShift:       decayShift,
	}
	params.BudgetPerTimeUnit = int64(budgetPerTimeUnit + 0.5)

	if err := params.Validate(); nil != err {
		return Output{}, err
	}

	return Output{
		Params:          params,
		PoolEquilibrium: poolEquilibrium,
		BudgetPerSecond: budgetPerSecond,
		P0:              p0,
		PBB:             pBB,
		PMin:            A/(B+poolEquilibrium) - D,
		A:               A,
		B:               B,
		D:               D,
	}, nil
}

func optional(f *float64, def float64) float64 {
	if nil == f {
		return def
	}
	return *f
}

// float64 to uint64 clamped to the representable range
func toUnsigned(f float64) uint64 {
	switch {
	case f <= 0:
		return 0
	case f >= math.MaxUint64:
		return math.MaxUint64
	default:
		return uint64(f)
	}
}
