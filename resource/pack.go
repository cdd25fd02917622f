// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package resource

import (
	"github.com/bitmark-inc/rcengine/fault"
	"github.com/bitmark-inc/rcengine/util"
)

// version of the packed parameter set
const packedParamsVersion = 1

// Pack - persisted form of a parameter set
//
// Varint64(version) followed by each resource in index order:
// time unit, unit base, unit exponent, A, B, D (signed), shift,
// decay per time unit, decay denominator shift, budget (signed)
func (s ParamSet) Pack() []byte {
	buffer := util.ToVarint64(packedParamsVersion)
	for _, p := range s {
		buffer = append(buffer, util.ToVarint64(uint64(p.TimeUnit))...)
		buffer = append(buffer, util.ToVarint64(uint64(p.ResourceUnitBase))...)
		buffer = append(buffer, util.ToVarint64(uint64(p.ResourceUnitExponent))...)
		buffer = append(buffer, util.ToVarint64(p.Curve.CoeffA)...)
		buffer = append(buffer, util.ToVarint64(p.Curve.CoeffB)...)
		buffer = append(buffer, util.ToSignedVarint64(p.Curve.CoeffD)...)
		buffer = append(buffer, util.ToVarint64(uint64(p.Curve.Shift))...)
		buffer = append(buffer, util.ToVarint64(uint64(p.Decay.DecayPerTimeUnit))...)
		buffer = append(buffer, util.ToVarint64(uint64(p.Decay.DenomShift))...)
		buffer = append(buffer, util.ToSignedVarint64(p.BudgetPerTimeUnit)...)
	}
	return buffer
}

// UnpackParamSet - reverse of Pack
func UnpackParamSet(buffer []byte) (ParamSet, error) {
	s := ParamSet{}

	version, n := util.FromVarint64(buffer)
	if 0 == n {
		return s, fault.ErrTruncatedRecord
	}
	if packedParamsVersion != version {
		return s, fault.ErrUnsupportedRecordVersion
	}
	buffer = buffer[n:]

	// read unsigned values, checking each against its field width
	next := func(limit uint64) (uint64, bool) {
		v, n := util.FromVarint64(buffer)
		if 0 == n || v > limit {
			return 0, false
		}
		buffer = buffer[n:]
		return v, true
	}
	nextSigned := func() (int64, bool) {
		v, n := util.FromSignedVarint64(buffer)
		if 0 == n {
			return 0, false
		}
		buffer = buffer[n:]
		return v, true
	}

	for i := range s {
		p := &s[i]
		fields := []struct {
			limit uint64
			set   func(uint64)
		}{
			{0xff, func(v uint64) { p.TimeUnit = TimeUnit(v) }},
			{0xff, func(v uint64) { p.ResourceUnitBase = uint8(v) }},
			{0xff, func(v uint64) { p.ResourceUnitExponent = uint8(v) }},
			{^uint64(0), func(v uint64) { p.Curve.CoeffA = v }},
			{^uint64(0), func(v uint64) { p.Curve.CoeffB = v }},
		}
		for _, f := range fields {
			v, ok := next(f.limit)
			if !ok {
				return ParamSet{}, fault.ErrTruncatedRecord
			}
			f.set(v)
		}

		d, ok := nextSigned()
		if !ok {
			return ParamSet{}, fault.ErrTruncatedRecord
		}
		p.Curve.CoeffD = d

		shift, ok := next(0xff)
		if !ok {
			return ParamSet{}, fault.ErrTruncatedRecord
		}
		p.Curve.Shift = uint8(shift)

		decay, ok := next(0xffffffff)
		if !ok {
			return ParamSet{}, fault.ErrTruncatedRecord
		}
		p.Decay.DecayPerTimeUnit = uint32(decay)

		decayShift, ok := next(0xff)
		if !ok {
			return ParamSet{}, fault.ErrTruncatedRecord
		}
		p.Decay.DenomShift = uint8(decayShift)

		budget, ok := nextSigned()
		if !ok {
			return ParamSet{}, fault.ErrTruncatedRecord
		}
		p.BudgetPerTimeUnit = budget
	}

	if 0 != len(buffer) {
		return ParamSet{}, fault.ErrTruncatedRecord
	}
	return s, nil
}
