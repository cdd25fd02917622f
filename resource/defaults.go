// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package resource

import (
	"github.com/bitmark-inc/rcengine/chain"
	"github.com/bitmark-inc/rcengine/fault"
)

// generated by rc-params from the budgets:
//   history bytes:  43,200,000 bytes per day
//   new accounts:   2,000 accounts per day
//   market bytes:   21,600,000 bytes per day
// with 3 second blocks, a 15 day half-life and a one hour drain time
var defaultParams = ParamSet{
	HistoryBytes: {
		TimeUnit:             Blocks,
		ResourceUnitBase:     10,
		ResourceUnitExponent: 1,
		Curve: CurveParams{
			CoeffA: 13756376801501474816,
			CoeffB: 73036456,
			CoeffD: 1418130268,
			Shift:  23,
		},
		Decay: DecayParams{
			DecayPerTimeUnit: 110260,
			DenomShift:       36,
		},
		BudgetPerTimeUnit: 15000,
	},
	NewAccounts: {
		TimeUnit:             Blocks,
		ResourceUnitBase:     10,
		ResourceUnitExponent: 5,
		Curve: CurveParams{
			CoeffA: 13759463962151120896,
			CoeffB: 33813174,
			CoeffD: 3154461906,
			Shift:  23,
		},
		Decay: DecayParams{
			DecayPerTimeUnit: 110260,
			DenomShift:       36,
		},
		BudgetPerTimeUnit: 6944,
	},
	MarketBytes: {
		TimeUnit:             Blocks,
		ResourceUnitBase:     10,
		ResourceUnitExponent: 1,
		Curve: CurveParams{
			CoeffA: 13757920453291657216,
			CoeffB: 36518228,
			CoeffD: 2878531255,
			Shift:  23,
		},
		Decay: DecayParams{
			DecayPerTimeUnit: 110260,
			DenomShift:       36,
		},
		BudgetPerTimeUnit: 7500,
	},
}

// local chain budgets are a thousand times larger so that a
// development chain does not starve after a burst of test transactions
const localBudgetMultiplier = 1000

// DefaultParams - the parameter set for a chain
func DefaultParams(chainName string) (ParamSet, error) {
	switch chainName {
	case chain.Steem, chain.Testing:
		return defaultParams, nil
	case chain.Local:
		s := defaultParams
		for i := range s {
			s[i].BudgetPerTimeUnit *= localBudgetMultiplier
		}
		return s, nil
	default:
		return ParamSet{}, fault.ErrInvalidChain
	}
}
