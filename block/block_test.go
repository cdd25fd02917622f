// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package block_test

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitmark-inc/logger"
	"github.com/bitmark-inc/rcengine/block"
	"github.com/bitmark-inc/rcengine/blockrecord"
	"github.com/bitmark-inc/rcengine/chain"
	"github.com/bitmark-inc/rcengine/fault"
	"github.com/bitmark-inc/rcengine/ledger"
	"github.com/bitmark-inc/rcengine/merkle"
	"github.com/bitmark-inc/rcengine/pool"
	"github.com/bitmark-inc/rcengine/rc"
	"github.com/bitmark-inc/rcengine/rcaccount"
	"github.com/bitmark-inc/rcengine/resource"
	"github.com/bitmark-inc/rcengine/storage"
	"github.com/bitmark-inc/rcengine/transactionrecord"
)

const (
	testingDirName = "testing"
	firstTimestamp = uint64(1600000000)
)

var databaseName = filepath.Join(testingDirName, "block")

func TestMain(m *testing.M) {
	_ = os.RemoveAll(testingDirName)
	_ = os.Mkdir(testingDirName, 0700)

	logging := logger.Configuration{
		Directory: testingDirName,
		File:      "testing.log",
		Size:      1048576,
		Count:     10,
		Console:   false,
		Levels: map[string]string{
			logger.DefaultTag: "critical",
		},
	}
	_ = logger.Initialise(logging)

	rc := m.Run()

	logger.Finalise()
	_ = os.RemoveAll(testingDirName)
	os.Exit(rc)
}

type fixture struct {
	store  *storage.Store
	ledger *ledger.Ledger
	engine *rc.Engine
}

func setup(t *testing.T) fixture {
	_ = os.RemoveAll(databaseName + ".leveldb")
	require.Nil(t, storage.Initialise(databaseName, storage.ReadWrite), "storage initialise")

	s, err := storage.NewStore()
	require.Nil(t, err)

	params, err := resource.DefaultParams(chain.Testing)
	require.Nil(t, err)
	require.Nil(t, s.Begin())
	require.Nil(t, s.PutParams(params))
	require.Nil(t, s.Commit())

	l, err := ledger.New(s, rcaccount.Price{Stake: 1, Liquid: 1})
	require.Nil(t, err)
	require.Nil(t, l.Seed(map[string]int64{
		"alice": 1000000000,
		"bob":   500000000,
	}))

	genesis, _ := chain.GenesisTime(chain.Testing)
	return fixture{
		store:  s,
		ledger: l,
		engine: rc.New(l, s, genesis),
	}
}

func teardown() {
	storage.Finalise()
	_ = os.RemoveAll(databaseName + ".leveldb")
}

func (f fixture) processor(producing bool) *block.Processor {
	return block.New(chain.Testing, f.engine, f.ledger, f.store, func() bool { return producing })
}

func makeTransaction(ops ...transactionrecord.Operation) *transactionrecord.Transaction {
	return &transactionrecord.Transaction{
		RefBlockNumber: 1,
		RefBlockPrefix: 0x12345678,
		Expiration:     firstTimestamp + 3600,
		Operations:     ops,
	}
}

// consecutive blocks starting at number 1, three seconds apart
func makeBlocks(t *testing.T, txs ...[]*transactionrecord.Transaction) []*blockrecord.Block {
	blocks := make([]*blockrecord.Block, 0, len(txs))
	previous := merkle.Digest{}
	for i, list := range txs {
		b, err := blockrecord.New(uint64(i+1), previous, firstTimestamp+3*uint64(i), list)
		require.Nil(t, err, "block: %d", i+1)
		blocks = append(blocks, b)
		previous = b.Digest
	}
	return blocks
}

func TestStoreIncoming(t *testing.T) {
	f := setup(t)
	defer teardown()

	p := f.processor(false)

	height, err := p.Height()
	assert.Nil(t, err)
	assert.Equal(t, uint64(0), height, "height before first block")

	blocks := makeBlocks(t,
		[]*transactionrecord.Transaction{
			makeTransaction(&transactionrecord.Transfer{From: "alice", To: "bob", Amount: 5, Memo: "one"}),
			makeTransaction(&transactionrecord.AccountCreate{Creator: "bob", NewAccount: "carol", Fee: 3000}),
		},
		nil,
		[]*transactionrecord.Transaction{
			makeTransaction(&transactionrecord.TransferToStake{From: "carol", To: "carol", Amount: 700}),
		},
	)

	for _, b := range blocks {
		applied, err := p.StoreIncoming(b)
		require.Nil(t, err, "block: %d", b.Header.Number)
		assert.True(t, applied, "block: %d", b.Header.Number)
	}

	height, err = p.Height()
	assert.Nil(t, err)
	assert.Equal(t, uint64(3), height)

	// charged before the ledger changed
	for _, name := range []string{"alice", "bob", "carol"} {
		record, found, err := f.store.Account(name)
		assert.Nil(t, err)
		assert.True(t, found, "account: %s", name)
		assert.True(t, record.Balance > 0, "account: %s not charged", name)
	}

	stake, ok := f.ledger.Stake("carol")
	assert.True(t, ok, "created account has no stake entry")
	assert.Equal(t, int64(700), stake)

	// replaying an earlier block is ignored
	applied, err := p.StoreIncoming(blocks[1])
	assert.Nil(t, err)
	assert.False(t, applied)

	assert.Equal(t, block.Statistics{Blocks: 3, Skipped: 1, Rejected: 0}, p.Statistics())

	stats := f.engine.Statistics()
	assert.Equal(t, uint64(3), stats.Charged)
	assert.Equal(t, uint64(3), stats.Blocks)
}

func TestOutOfSequence(t *testing.T) {
	f := setup(t)
	defer teardown()

	p := f.processor(false)
	blocks := makeBlocks(t, nil, nil, nil)

	_, err := p.StoreIncoming(blocks[0])
	require.Nil(t, err)

	_, err = p.StoreIncoming(blocks[2])
	assert.Equal(t, fault.ErrBlockNotSequential, err)

	other, err := blockrecord.New(2, merkle.NewDigest([]byte("fork")), firstTimestamp+3, nil)
	require.Nil(t, err)
	_, err = p.StoreIncoming(other)
	assert.Equal(t, fault.ErrPreviousBlockDigestDoesNotMatch, err)

	height, _ := p.Height()
	assert.Equal(t, uint64(1), height, "height moved")
}

// pool after a block with no transactions
func emptyBlockPool(t *testing.T) *pool.Pool {
	f := setup(t)
	defer teardown()

	_, err := f.processor(false).StoreIncoming(makeBlocks(t, nil)[0])
	require.Nil(t, err)

	p, err := f.store.Pool()
	require.Nil(t, err)
	return p
}

func TestProducingRejects(t *testing.T) {
	tx := makeTransaction(&transactionrecord.TransferToStake{From: "ghost", To: "alice", Amount: 10})

	empty := emptyBlockPool(t)

	items := []struct {
		producing bool
		stake     int64
		rejected  uint64
		kept      int
	}{
		{true, 1000000000, 1, 0},
		{false, 1000000010, 0, 1},
	}

	for _, item := range items {
		f := setup(t)
		p := f.processor(item.producing)

		incoming := makeBlocks(t, []*transactionrecord.Transaction{tx})[0]
		_, err := p.StoreIncoming(incoming)
		assert.Nil(t, err, "producing: %v", item.producing)

		stake, _ := f.ledger.Stake("alice")
		assert.Equal(t, item.stake, stake, "producing: %v", item.producing)
		assert.Equal(t, item.rejected, p.Statistics().Rejected, "producing: %v", item.producing)

		last, found, err := f.store.LastBlock()
		assert.Nil(t, err, "producing: %v", item.producing)
		assert.True(t, found, "producing: %v", item.producing)
		assert.Equal(t, incoming.Header, last.Header, "producing: %v", item.producing)
		assert.Equal(t, item.kept, len(last.Transactions), "producing: %v", item.producing)

		levels, err := f.store.Pool()
		assert.Nil(t, err, "producing: %v", item.producing)
		if item.producing {
			// the rejected transaction uses no pool resources
			assert.Equal(t, empty, levels, "producing: %v", item.producing)
		} else {
			assert.NotEqual(t, empty, levels, "producing: %v", item.producing)
		}

		teardown()
	}
}

// fails regeneration while fail is set
type failingEngine struct {
	*rc.Engine
	fail bool
}

func (e *failingEngine) BlockApplied(b *blockrecord.Block) error {
	if e.fail {
		return fault.ErrCurveOverflow
	}
	return e.Engine.BlockApplied(b)
}

func TestFailedBlockRetried(t *testing.T) {
	tx := makeTransaction(&transactionrecord.TransferToStake{From: "alice", To: "alice", Amount: 100})

	// reference: the block applied once
	f := setup(t)
	_, err := f.processor(false).StoreIncoming(makeBlocks(t, []*transactionrecord.Transaction{tx})[0])
	require.Nil(t, err)
	expected, found, err := f.store.Account("alice")
	require.Nil(t, err)
	require.True(t, found)
	expectedPool, err := f.store.Pool()
	require.Nil(t, err)
	teardown()

	f = setup(t)
	defer teardown()

	engine := &failingEngine{Engine: f.engine, fail: true}
	p := block.New(chain.Testing, engine, f.ledger, f.store, func() bool { return false })

	b := makeBlocks(t, []*transactionrecord.Transaction{tx})[0]

	applied, err := p.StoreIncoming(b)
	assert.Equal(t, fault.ErrCurveOverflow, err)
	assert.False(t, applied)

	height, err := p.Height()
	assert.Nil(t, err)
	assert.Equal(t, uint64(0), height, "height moved after failure")

	_, found, err = f.store.Account("alice")
	assert.Nil(t, err)
	assert.False(t, found, "charge kept after failure")

	stake, _ := f.ledger.Stake("alice")
	assert.Equal(t, int64(1000000000), stake, "stake kept after failure")
	assert.Equal(t, int64(1500000000), f.ledger.TotalStake())

	engine.fail = false
	applied, err = p.StoreIncoming(b)
	assert.Nil(t, err)
	assert.True(t, applied)

	record, found, err := f.store.Account("alice")
	assert.Nil(t, err)
	assert.True(t, found)
	assert.Equal(t, expected, record, "charged more than once")

	levels, err := f.store.Pool()
	assert.Nil(t, err)
	assert.Equal(t, expectedPool, levels)

	stake, _ = f.ledger.Stake("alice")
	assert.Equal(t, int64(1000000100), stake, "stake changed more than once")

	assert.Equal(t, block.Statistics{Blocks: 1}, p.Statistics())
}

func TestLedgerBehindChain(t *testing.T) {
	f := setup(t)
	defer teardown()

	p := f.processor(false)

	// the stake withdrawal cannot be applied but the charge stands
	blocks := makeBlocks(t, []*transactionrecord.Transaction{
		makeTransaction(&transactionrecord.WithdrawStake{Account: "bob", Amount: 600000000}),
	})
	applied, err := p.StoreIncoming(blocks[0])
	assert.Nil(t, err)
	assert.True(t, applied)

	stake, _ := f.ledger.Stake("bob")
	assert.Equal(t, int64(500000000), stake)

	record, found, err := f.store.Account("bob")
	assert.Nil(t, err)
	assert.True(t, found)
	assert.True(t, record.Balance > 0)
}

func TestLoadFile(t *testing.T) {
	f := setup(t)
	defer teardown()

	p := f.processor(false)

	blocks := makeBlocks(t,
		[]*transactionrecord.Transaction{
			makeTransaction(&transactionrecord.Vote{Voter: "alice", Author: "bob", Permlink: "post", Weight: 100}),
		},
		nil,
	)
	data, err := blockrecord.PackFile(chain.Testing, blocks)
	require.Nil(t, err)

	fileName := filepath.Join(testingDirName, "0001.blocks")
	require.Nil(t, ioutil.WriteFile(fileName, data, 0600))
	defer os.Remove(fileName)

	n, err := p.LoadFile(fileName)
	assert.Nil(t, err)
	assert.Equal(t, 2, n)

	n, err = p.LoadFile(fileName)
	assert.Nil(t, err)
	assert.Equal(t, 0, n, "blocks applied twice")

	wrong, err := blockrecord.PackFile(chain.Local, blocks)
	require.Nil(t, err)
	require.Nil(t, ioutil.WriteFile(fileName, wrong, 0600))
	_, err = p.LoadFile(fileName)
	assert.Equal(t, fault.ErrWrongNetworkForBlockFile, err)

	_, err = p.LoadFile(filepath.Join(testingDirName, "missing.blocks"))
	assert.True(t, os.IsNotExist(err))
}
