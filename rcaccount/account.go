// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rcaccount

import (
	"math"

	"github.com/holiman/uint256"

	"github.com/bitmark-inc/rcengine/constants"
	"github.com/bitmark-inc/rcengine/fault"
	"github.com/bitmark-inc/rcengine/resource"
)

// Record - consumed credit of one account
type Record struct {
	Account               string `json:"account"`
	Balance               int64  `json:"balance"`
	LastUpdate            uint64 `json:"lastUpdate"`
	MaxCreationAdjustment int64  `json:"maxCreationAdjustment"`
}

// Status - regenerated view of a record at some time
type Status struct {
	Balance     int64 `json:"balance"`
	Available   int64 `json:"available"`
	MaxCapacity int64 `json:"maxCapacity"`
}

// Price - exchange rate between liquid currency and stake
type Price struct {
	Stake  int64 `json:"stake"`
	Liquid int64 `json:"liquid"`
}

// New - an unused record, last updated at genesis
func New(account string, genesis uint64) *Record {
	return &Record{
		Account:    account,
		LastUpdate: genesis,
	}
}

// Current - balance after regeneration up to now, with the resulting
// capacity; the record is not modified
func Current(record *Record, stake int64, now uint64) (Status, error) {
	if now < record.LastUpdate {
		return Status{}, fault.ErrClockRegression
	}

	balance := record.Balance
	if balance > 0 && stake > 0 {
		regen := regeneration(now-record.LastUpdate, stake)
		if regen >= uint64(balance) {
			balance = 0
		} else {
			balance -= int64(regen)
		}
	}

	maxCapacity, ok := resource.CheckedAdd(stake, record.MaxCreationAdjustment)
	if !ok {
		return Status{}, fault.ErrCurveOverflow
	}
	available, ok := resource.CheckedSub(maxCapacity, balance)
	if !ok {
		return Status{}, fault.ErrCurveOverflow
	}

	return Status{
		Balance:     balance,
		Available:   available,
		MaxCapacity: maxCapacity,
	}, nil
}

// Charge - regenerate then add cost to the balance
//
// when producing, a cost above the available credit is rejected with
// *fault.InsufficientCredit and the record is left unchanged
func Charge(record *Record, stake int64, cost int64, now uint64, producing bool) error {
	status, err := Current(record, stake, now)
	if nil != err {
		return err
	}

	if producing && cost > status.Available {
		return &fault.InsufficientCredit{
			Account:     record.Account,
			Cost:        cost,
			Available:   status.Available,
			MaxCapacity: status.MaxCapacity,
		}
	}

	balance, ok := resource.CheckedAdd(status.Balance, cost)
	if !ok {
		return fault.ErrCurveOverflow
	}

	record.Balance = balance
	record.LastUpdate = now
	return nil
}

// SetCreationAdjustment - replace the creation adjustment with the
// fee converted to stake
func SetCreationAdjustment(record *Record, fee uint64, price Price) error {
	adjustment, err := price.ToStake(fee)
	if nil != err {
		return err
	}
	record.MaxCreationAdjustment = adjustment
	return nil
}

// ToStake - fee × Stake / Liquid, truncated
func (price Price) ToStake(amount uint64) (int64, error) {
	if price.Liquid <= 0 || price.Stake < 0 {
		return 0, fault.ErrInvalidPrice
	}

	v := new(uint256.Int).Mul(uint256.NewInt(amount), uint256.NewInt(uint64(price.Stake)))
	v.Div(v, uint256.NewInt(uint64(price.Liquid)))
	if !v.IsUint64() || v.Uint64() > math.MaxInt64 {
		return 0, fault.ErrCurveOverflow
	}
	return int64(v.Uint64()), nil
}

// dt × stake / regeneration period, saturating at MaxUint64
func regeneration(dt uint64, stake int64) uint64 {
	regen := new(uint256.Int).Mul(uint256.NewInt(dt), uint256.NewInt(uint64(stake)))
	regen.Div(regen, uint256.NewInt(uint64(constants.RegenerationSeconds)))
	if !regen.IsUint64() {
		return math.MaxUint64
	}
	return regen.Uint64()
}
