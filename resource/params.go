// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package resource

import (
	"github.com/bitmark-inc/rcengine/fault"
)

// TimeUnit - the unit in which pool budget and decay are expressed
type TimeUnit uint8

// possible time units
const (
	Seconds TimeUnit = iota
	Blocks
)

// String - name as used in configuration files
func (u TimeUnit) String() string {
	switch u {
	case Seconds:
		return "seconds"
	case Blocks:
		return "blocks"
	default:
		return "*unknown*"
	}
}

// TimeUnitFromString - reverse of String
func TimeUnitFromString(s string) (TimeUnit, error) {
	switch s {
	case "seconds":
		return Seconds, nil
	case "blocks":
		return Blocks, nil
	default:
		return 0, fault.ErrInvalidTimeUnit
	}
}

// MarshalText - JSON encodes the name
func (u TimeUnit) MarshalText() ([]byte, error) {
	switch u {
	case Seconds, Blocks:
		return []byte(u.String()), nil
	default:
		return nil, fault.ErrInvalidTimeUnit
	}
}

// UnmarshalText - reverse of MarshalText
func (u *TimeUnit) UnmarshalText(s []byte) error {
	t, err := TimeUnitFromString(string(s))
	if nil != err {
		return err
	}
	*u = t
	return nil
}

// CurveParams - coefficients of the elastic price curve
//
//   price = ((amount × A) / (B + pool) − D) >> Shift
type CurveParams struct {
	CoeffA uint64 `json:"coeff_a,string"`
	CoeffB uint64 `json:"coeff_b,string"`
	CoeffD int64  `json:"coeff_d,string"`
	Shift  uint8  `json:"shift"`
}

// DecayParams - fraction of the pool removed per time unit
//
//   decay = (pool × DecayPerTimeUnit × dt) >> DenomShift
type DecayParams struct {
	DecayPerTimeUnit uint32 `json:"decay_per_time_unit"`
	DenomShift       uint8  `json:"decay_per_time_unit_denom_shift"`
}

// Params - everything needed to price and regenerate one resource
type Params struct {
	TimeUnit             TimeUnit    `json:"time_unit"`
	ResourceUnitBase     uint8       `json:"resource_unit_base"`
	ResourceUnitExponent uint8       `json:"resource_unit_exponent"`
	Curve                CurveParams `json:"curve_params"`
	Decay                DecayParams `json:"decay_params"`
	BudgetPerTimeUnit    int64       `json:"budget_per_time_unit"`
}

// ParamSet - parameters of all resources, indexed by Type
type ParamSet [NumTypes]Params

// ResourceUnit - base^exponent, the multiplier from raw usage to
// priced units
func (p Params) ResourceUnit() (int64, error) {
	if 0 == p.ResourceUnitBase {
		return 0, fault.ErrInvalidResourceUnit
	}
	unit := int64(1)
	for i := uint8(0); i < p.ResourceUnitExponent; i += 1 {
		u, ok := CheckedMul(unit, int64(p.ResourceUnitBase))
		if !ok {
			return 0, fault.ErrInvalidResourceUnit
		}
		unit = u
	}
	return unit, nil
}

// Validate - reject parameters the curve and pool cannot evaluate
func (p Params) Validate() error {
	switch p.TimeUnit {
	case Seconds, Blocks:
	default:
		return fault.ErrInvalidTimeUnit
	}
	if _, err := p.ResourceUnit(); nil != err {
		return err
	}
	if 0 == p.Curve.CoeffB || p.Curve.Shift >= 64 {
		return fault.ErrInvalidCurveParameters
	}
	if p.Decay.DenomShift >= 128 {
		return fault.ErrInvalidDecayParameters
	}
	if p.BudgetPerTimeUnit < 0 {
		return fault.ErrInvalidDecayParameters
	}
	return nil
}

// Validate - check every resource's parameters
func (s ParamSet) Validate() error {
	for i := range s {
		if err := s[i].Validate(); nil != err {
			return err
		}
	}
	return nil
}

// Scale - convert raw usage into priced units
func (s ParamSet) Scale(raw Count) (Count, error) {
	scaled := Count{}
	for i := range s {
		unit, err := s[i].ResourceUnit()
		if nil != err {
			return Count{}, err
		}
		v, ok := CheckedMul(raw[i], unit)
		if !ok {
			return Count{}, fault.ErrCurveOverflow
		}
		scaled[i] = v
	}
	return scaled, nil
}
