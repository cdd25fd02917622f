// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package resourcecount - measure the resources a transaction consumes
package resourcecount

import (
	"github.com/bitmark-inc/rcengine/blockrecord"
	"github.com/bitmark-inc/rcengine/resource"
	"github.com/bitmark-inc/rcengine/transactionrecord"
)

// AccountCreation - an account created by a transaction
type AccountCreation struct {
	Creator string `json:"creator"`
	Created string `json:"created"`
	Fee     uint64 `json:"fee,string"`
}

// Result - raw usage of one transaction or block
type Result struct {
	Resources         resource.Count    `json:"resources"`
	MarketOpCount     int32             `json:"marketOpCount"`
	NewAccountOpCount int32             `json:"newAccountOpCount"`
	Creations         []AccountCreation `json:"creations"`
}

// Count - usage vector and metadata of a transaction
//
// history bytes is the packed size; market bytes repeats the size
// when any operation touches the market
func Count(tx *transactionrecord.Transaction) (Result, error) {
	size, err := tx.Size()
	if nil != err {
		return Result{}, err
	}

	result := Result{}
	result.Resources[resource.HistoryBytes] = size

	for _, op := range tx.Operations {
		switch o := op.(type) {
		case *transactionrecord.Transfer,
			*transactionrecord.TransferToStake,
			*transactionrecord.LimitOrderCreate,
			*transactionrecord.LimitOrderCancel:
			result.MarketOpCount += 1

		case *transactionrecord.AccountCreate:
			result.NewAccountOpCount += 1
			result.Creations = append(result.Creations, AccountCreation{
				Creator: o.Creator,
				Created: o.NewAccount,
				Fee:     o.Fee,
			})

		case *transactionrecord.AccountCreateWithDelegation:
			result.NewAccountOpCount += 1
			result.Creations = append(result.Creations, AccountCreation{
				Creator: o.Creator,
				Created: o.NewAccount,
				Fee:     o.Fee,
			})

		default:
		}
	}

	result.Resources[resource.NewAccounts] = int64(result.NewAccountOpCount)
	if result.MarketOpCount > 0 {
		result.Resources[resource.MarketBytes] = size
	}
	return result, nil
}

// CountBlock - sum of the usage of every transaction in a block
func CountBlock(block *blockrecord.Block) (Result, error) {
	total := Result{}
	for _, tx := range block.Transactions {
		r, err := Count(tx)
		if nil != err {
			return Result{}, err
		}
		err = total.Resources.Add(r.Resources)
		if nil != err {
			return Result{}, err
		}
		total.MarketOpCount += r.MarketOpCount
		total.NewAccountOpCount += r.NewAccountOpCount
		total.Creations = append(total.Creations, r.Creations...)
	}
	return total, nil
}
