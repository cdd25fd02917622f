// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rc_test

import (
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitmark-inc/rcengine/blockrecord"
	"github.com/bitmark-inc/rcengine/fault"
	"github.com/bitmark-inc/rcengine/merkle"
	"github.com/bitmark-inc/rcengine/pool"
	"github.com/bitmark-inc/rcengine/rc"
	"github.com/bitmark-inc/rcengine/rc/mocks"
	"github.com/bitmark-inc/rcengine/rcaccount"
	"github.com/bitmark-inc/rcengine/resource"
	"github.com/bitmark-inc/rcengine/transactionrecord"
)

func TestSkipWithoutStake(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	chain := mocks.NewMockChain(ctl)
	store := mocks.NewMockStore(ctl)

	chain.EXPECT().TotalStake().Return(int64(0)).Times(2)

	e := rc.New(chain, store, genesis)

	tx := makeTransaction(&transactionrecord.Transfer{From: "alice", To: "bob", Amount: 1})
	assert.Nil(t, e.TransactionApplied(tx, genesis, true), "transaction")

	block, err := blockrecord.New(1, merkle.Digest{}, genesis, []*transactionrecord.Transaction{tx})
	require.Nil(t, err)
	assert.Nil(t, e.BlockApplied(block), "block")

	assert.Equal(t, rc.Statistics{}, e.Statistics())
}

func TestInvalidTransaction(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	chain := mocks.NewMockChain(ctl)
	store := mocks.NewMockStore(ctl)

	chain.EXPECT().TotalStake().Return(int64(10))

	e := rc.New(chain, store, genesis)

	// a custom json must name at least one signer
	tx := makeTransaction(&transactionrecord.CustomJSON{Id: "noop", JSON: "{}"})
	assert.Equal(t, fault.ErrInvalidAccountName, e.TransactionApplied(tx, genesis, true))
	assert.Equal(t, rc.Statistics{}, e.Statistics())
}

func TestRejectionAborts(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	chain := mocks.NewMockChain(ctl)
	store := mocks.NewMockStore(ctl)

	p := &pool.Pool{Levels: [resource.NumTypes]int64{initialLevel, initialLevel, initialLevel}, LastUpdate: genesis}
	record := &rcaccount.Record{Account: "alice", Balance: 500, LastUpdate: genesis}

	chain.EXPECT().TotalStake().Return(int64(500)).AnyTimes()
	chain.EXPECT().Stake("alice").Return(int64(500), true)

	gomock.InOrder(
		store.EXPECT().Params().Return(testParams(), nil),
		store.EXPECT().Pool().Return(p, nil),
		store.EXPECT().InUse().Return(false),
		store.EXPECT().Begin().Return(nil),
		store.EXPECT().Account("alice").Return(record, true, nil),
		store.EXPECT().Abort(),
	)

	e := rc.New(chain, store, genesis)

	tx := makeTransaction(&transactionrecord.WithdrawStake{Account: "alice", Amount: 1})
	err := e.TransactionApplied(tx, genesis, true)
	assert.True(t, fault.IsErrInsufficientCredit(err), "not rejected: %v", err)
	assert.Equal(t, int64(500), record.Balance, "record modified")
	assert.Equal(t, rc.Statistics{Rejected: 1}, e.Statistics())
}

func TestStoreErrorAborts(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	chain := mocks.NewMockChain(ctl)
	store := mocks.NewMockStore(ctl)

	p := &pool.Pool{Levels: [resource.NumTypes]int64{initialLevel, initialLevel, initialLevel}, LastUpdate: genesis}

	chain.EXPECT().TotalStake().Return(int64(500)).AnyTimes()
	chain.EXPECT().Stake("alice").Return(int64(500), true)

	gomock.InOrder(
		store.EXPECT().Params().Return(testParams(), nil),
		store.EXPECT().Pool().Return(p, nil),
		store.EXPECT().InUse().Return(false),
		store.EXPECT().Begin().Return(nil),
		store.EXPECT().Account("alice").Return(nil, false, nil),
		store.EXPECT().PutAccount(gomock.Any()).Return(fault.ErrNoTransactionInProgress),
		store.EXPECT().Abort(),
	)

	e := rc.New(chain, store, genesis)

	tx := makeTransaction(&transactionrecord.WithdrawStake{Account: "alice", Amount: 1})
	err := e.TransactionApplied(tx, genesis, false)
	assert.Equal(t, fault.ErrNoTransactionInProgress, err)
	assert.Equal(t, rc.Statistics{}, e.Statistics())
}

func TestBlockWithoutStoredPool(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	chain := mocks.NewMockChain(ctl)
	store := mocks.NewMockStore(ctl)

	params := testParams()
	timestamp := genesis + 3

	var written *pool.Pool

	chain.EXPECT().TotalStake().Return(int64(500))
	gomock.InOrder(
		store.EXPECT().Params().Return(params, nil),
		store.EXPECT().Pool().Return(nil, fault.ErrMissingPool),
		store.EXPECT().InUse().Return(false),
		store.EXPECT().Begin().Return(nil),
		store.EXPECT().PutPool(gomock.Any()).DoAndReturn(func(p *pool.Pool) error {
			written = p
			return nil
		}),
		store.EXPECT().Commit().Return(nil),
	)

	e := rc.New(chain, store, genesis)

	block, err := blockrecord.New(1, merkle.Digest{}, timestamp, nil)
	require.Nil(t, err)
	require.Nil(t, e.BlockApplied(block))

	require.NotNil(t, written, "pool not written")
	assert.Equal(t, timestamp, written.LastUpdate)
	expected := pool.New(params, timestamp)
	assert.Equal(t, expected.Levels, written.Levels, "empty block moved an equilibrium pool")
	assert.Equal(t, uint64(1), e.Statistics().Blocks)
}

func TestBlockClockRegression(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	chain := mocks.NewMockChain(ctl)
	store := mocks.NewMockStore(ctl)

	p := &pool.Pool{Levels: [resource.NumTypes]int64{initialLevel, initialLevel, initialLevel}, LastUpdate: genesis + 10}

	chain.EXPECT().TotalStake().Return(int64(500))
	gomock.InOrder(
		store.EXPECT().Params().Return(testParams(), nil),
		store.EXPECT().Pool().Return(p, nil),
	)

	e := rc.New(chain, store, genesis)

	block, err := blockrecord.New(1, merkle.Digest{}, genesis, nil)
	require.Nil(t, err)
	err = e.BlockApplied(block)
	assert.Equal(t, fault.ErrClockRegression, err)
	assert.True(t, fault.IsErrFatal(err), "regression is not fatal")
}

func TestJoinsOpenBatch(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	chain := mocks.NewMockChain(ctl)
	store := mocks.NewMockStore(ctl)

	p := &pool.Pool{Levels: [resource.NumTypes]int64{initialLevel, initialLevel, initialLevel}, LastUpdate: genesis}

	chain.EXPECT().TotalStake().Return(int64(500)).AnyTimes()
	chain.EXPECT().Stake("alice").Return(int64(500), true)

	var charged *rcaccount.Record

	// no Begin, Commit or Abort: the caller owns the batch
	gomock.InOrder(
		store.EXPECT().Params().Return(testParams(), nil),
		store.EXPECT().Pool().Return(p, nil),
		store.EXPECT().InUse().Return(true),
		store.EXPECT().Account("alice").Return(nil, false, nil),
		store.EXPECT().PutAccount(gomock.Any()).DoAndReturn(func(r *rcaccount.Record) error {
			charged = r
			return nil
		}),
		store.EXPECT().Params().Return(testParams(), nil),
		store.EXPECT().Pool().Return(p, nil),
		store.EXPECT().InUse().Return(true),
		store.EXPECT().PutPool(gomock.Any()).Return(nil),
	)

	e := rc.New(chain, store, genesis)

	tx := makeTransaction(&transactionrecord.WithdrawStake{Account: "alice", Amount: 1})
	require.Nil(t, e.TransactionApplied(tx, genesis+3, false))
	require.NotNil(t, charged, "record not written")
	assert.True(t, charged.Balance > 0, "not charged")

	block, err := blockrecord.New(1, merkle.Digest{}, genesis+3, []*transactionrecord.Transaction{tx})
	require.Nil(t, err)
	assert.Nil(t, e.BlockApplied(block))

	assert.Equal(t, rc.Statistics{Charged: 1, Blocks: 1}, e.Statistics())
}

func TestJoinedRejectionLeavesBatch(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	chain := mocks.NewMockChain(ctl)
	store := mocks.NewMockStore(ctl)

	p := &pool.Pool{Levels: [resource.NumTypes]int64{initialLevel, initialLevel, initialLevel}, LastUpdate: genesis}
	record := &rcaccount.Record{Account: "alice", Balance: 500, LastUpdate: genesis}

	chain.EXPECT().TotalStake().Return(int64(500)).AnyTimes()
	chain.EXPECT().Stake("alice").Return(int64(500), true)

	// the caller's batch is neither written nor aborted
	gomock.InOrder(
		store.EXPECT().Params().Return(testParams(), nil),
		store.EXPECT().Pool().Return(p, nil),
		store.EXPECT().InUse().Return(true),
		store.EXPECT().Account("alice").Return(record, true, nil),
	)

	e := rc.New(chain, store, genesis)

	tx := makeTransaction(&transactionrecord.WithdrawStake{Account: "alice", Amount: 1})
	err := e.TransactionApplied(tx, genesis, true)
	assert.True(t, fault.IsErrInsufficientCredit(err), "not rejected: %v", err)
}
