// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rc

import (
	"github.com/bitmark-inc/rcengine/resource"
	"github.com/bitmark-inc/rcengine/resourcecount"
	"github.com/bitmark-inc/rcengine/transactionrecord"
)

// Cost - the price of a transaction at the current pool levels
type Cost struct {
	User  string         `json:"user"`
	Usage resource.Count `json:"usage"`
	Costs resource.Count `json:"costs"`
	Total int64          `json:"total"`
}

// Estimate - what a transaction would cost now, nothing is written
func (e *Engine) Estimate(tx *transactionrecord.Transaction, now uint64) (Cost, error) {
	e.Lock()
	defer e.Unlock()

	cost, _, err := e.estimate(tx, now)
	return cost, err
}

func (e *Engine) estimate(tx *transactionrecord.Transaction, now uint64) (Cost, resourcecount.Result, error) {
	result, err := resourcecount.Count(tx)
	if nil != err {
		return Cost{}, resourcecount.Result{}, err
	}

	params, err := e.store.Params()
	if nil != err {
		return Cost{}, resourcecount.Result{}, err
	}

	usage, err := params.Scale(result.Resources)
	if nil != err {
		return Cost{}, resourcecount.Result{}, err
	}

	p, err := e.currentPool(params, now)
	if nil != err {
		return Cost{}, resourcecount.Result{}, err
	}

	costs, total, err := price(params, p, usage)
	if nil != err {
		return Cost{}, resourcecount.Result{}, err
	}

	user, _ := tx.ResourceUser()

	cost := Cost{
		User:  user,
		Usage: usage,
		Costs: costs,
		Total: total,
	}
	return cost, result, nil
}
