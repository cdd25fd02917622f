// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rcaccount_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/rcengine/constants"
	"github.com/bitmark-inc/rcengine/fault"
	"github.com/bitmark-inc/rcengine/rcaccount"
)

const genesis = uint64(1458835200)

var period = uint64(constants.RegenerationSeconds)

func TestNew(t *testing.T) {
	r := rcaccount.New("alice", genesis)
	assert.Equal(t, &rcaccount.Record{Account: "alice", LastUpdate: genesis}, r)
}

func TestRegenerationSaturates(t *testing.T) {
	r := &rcaccount.Record{Account: "alice", Balance: 1000, LastUpdate: genesis}

	err := rcaccount.Charge(r, 30000, 0, genesis+period, true)
	assert.Nil(t, err)
	assert.Equal(t, int64(0), r.Balance, "balance not cleared")
	assert.Equal(t, genesis+period, r.LastUpdate)
}

func TestRegenerationPartial(t *testing.T) {
	r := &rcaccount.Record{Account: "alice", Balance: 1000, LastUpdate: genesis}

	// a stake equal to the period regenerates one unit per second
	status, err := rcaccount.Current(r, constants.RegenerationSeconds, genesis+100)
	assert.Nil(t, err)
	assert.Equal(t, rcaccount.Status{
		Balance:     900,
		Available:   constants.RegenerationSeconds - 900,
		MaxCapacity: constants.RegenerationSeconds,
	}, status)
	assert.Equal(t, int64(1000), r.Balance, "Current modified the record")

	err = rcaccount.Charge(r, constants.RegenerationSeconds, 50, genesis+100, false)
	assert.Nil(t, err)
	assert.Equal(t, int64(950), r.Balance)
}

func TestRegenerationLargeValues(t *testing.T) {
	r := &rcaccount.Record{Account: "whale", Balance: math.MaxInt64, LastUpdate: 0}

	status, err := rcaccount.Current(r, math.MaxInt64, math.MaxUint64)
	assert.Nil(t, err)
	assert.Equal(t, int64(0), status.Balance, "128 bit product mishandled")
}

func TestNegativeBalanceDoesNotRegenerate(t *testing.T) {
	r := &rcaccount.Record{Account: "alice", Balance: -50, LastUpdate: genesis}

	status, err := rcaccount.Current(r, 100000, genesis+period)
	assert.Nil(t, err)
	assert.Equal(t, int64(-50), status.Balance)
	assert.Equal(t, int64(100050), status.Available)
}

func TestGating(t *testing.T) {
	r := &rcaccount.Record{Account: "alice", Balance: 0, LastUpdate: genesis}
	before := *r

	err := rcaccount.Charge(r, 500, 600, genesis+10, true)
	assert.True(t, fault.IsErrInsufficientCredit(err), "expected rejection: %v", err)
	assert.Equal(t, &fault.InsufficientCredit{
		Account:     "alice",
		Cost:        600,
		Available:   500,
		MaxCapacity: 500,
	}, err)
	assert.Equal(t, before, *r, "rejected charge modified record")

	err = rcaccount.Charge(r, 500, 500, genesis+10, true)
	assert.Nil(t, err, "exact credit must be accepted")
	assert.Equal(t, int64(500), r.Balance)
}

func TestReplayIsNeverGated(t *testing.T) {
	r := &rcaccount.Record{Account: "alice", Balance: 0, LastUpdate: genesis}

	err := rcaccount.Charge(r, 500, 600, genesis+10, false)
	assert.Nil(t, err)
	assert.Equal(t, int64(600), r.Balance)
	assert.Equal(t, genesis+10, r.LastUpdate)

	status, err := rcaccount.Current(r, 500, genesis+10)
	assert.Nil(t, err)
	assert.Equal(t, int64(-100), status.Available, "available may go negative")
}

func TestClockRegression(t *testing.T) {
	r := &rcaccount.Record{Account: "alice", Balance: 10, LastUpdate: genesis}
	before := *r

	err := rcaccount.Charge(r, 500, 1, genesis-1, false)
	assert.Equal(t, fault.ErrClockRegression, err)
	assert.True(t, fault.IsErrFatal(err))
	assert.Equal(t, before, *r)
}

func TestChargeOverflow(t *testing.T) {
	r := &rcaccount.Record{Account: "alice", Balance: 1, LastUpdate: genesis}

	err := rcaccount.Charge(r, 0, math.MaxInt64, genesis, false)
	assert.Equal(t, fault.ErrCurveOverflow, err)
	assert.Equal(t, int64(1), r.Balance)

	r = &rcaccount.Record{Account: "alice", MaxCreationAdjustment: math.MaxInt64, LastUpdate: genesis}
	_, err = rcaccount.Current(r, 1, genesis)
	assert.Equal(t, fault.ErrCurveOverflow, err, "capacity overflow")
}

func TestCreationAdjustment(t *testing.T) {
	r := rcaccount.New("alice", genesis)
	price := rcaccount.Price{Stake: 2, Liquid: 1}

	err := rcaccount.SetCreationAdjustment(r, 3000, price)
	assert.Nil(t, err)
	assert.Equal(t, int64(6000), r.MaxCreationAdjustment)

	// last write wins
	err = rcaccount.SetCreationAdjustment(r, 100, price)
	assert.Nil(t, err)
	assert.Equal(t, int64(200), r.MaxCreationAdjustment)

	status, err := rcaccount.Current(r, 1000, genesis)
	assert.Nil(t, err)
	assert.Equal(t, int64(1200), status.MaxCapacity)

	err = rcaccount.SetCreationAdjustment(r, 1, rcaccount.Price{Stake: 1, Liquid: 0})
	assert.Equal(t, fault.ErrInvalidPrice, err)
	assert.Equal(t, int64(200), r.MaxCreationAdjustment, "failed set modified record")
}

func TestPriceToStake(t *testing.T) {
	tests := []struct {
		price  rcaccount.Price
		amount uint64
		stake  int64
		err    error
	}{
		{rcaccount.Price{Stake: 2000, Liquid: 1}, 3, 6000, nil},
		{rcaccount.Price{Stake: 1, Liquid: 3}, 10, 3, nil},
		{rcaccount.Price{Stake: 1, Liquid: 1}, 0, 0, nil},
		{rcaccount.Price{Stake: math.MaxInt64, Liquid: 1}, math.MaxUint64, 0, fault.ErrCurveOverflow},
		{rcaccount.Price{Stake: math.MaxInt64, Liquid: math.MaxInt64}, math.MaxUint64 >> 1, math.MaxInt64, nil},
		{rcaccount.Price{Stake: -1, Liquid: 1}, 1, 0, fault.ErrInvalidPrice},
	}

	for i, item := range tests {
		stake, err := item.price.ToStake(item.amount)
		assert.Equal(t, item.err, err, "%d: error", i)
		assert.Equal(t, item.stake, stake, "%d: stake", i)
	}
}

func TestPackUnpack(t *testing.T) {
	r := &rcaccount.Record{
		Account:               "alice",
		Balance:               -12345,
		LastUpdate:            genesis + 99,
		MaxCreationAdjustment: 6000,
	}
	packed := r.Pack()

	unpacked, err := rcaccount.Unpack("alice", packed)
	assert.Nil(t, err)
	assert.Equal(t, r, unpacked)

	_, err = rcaccount.Unpack("alice", packed[:len(packed)-1])
	assert.Equal(t, fault.ErrTruncatedRecord, err)

	_, err = rcaccount.Unpack("alice", append(packed, 1))
	assert.Equal(t, fault.ErrTruncatedRecord, err)

	_, err = rcaccount.Unpack("alice", []byte{2, 0, 0, 0})
	assert.Equal(t, fault.ErrUnsupportedRecordVersion, err)
}
