// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package block

import (
	"sync"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/rcengine/blockrecord"
	"github.com/bitmark-inc/rcengine/counter"
	"github.com/bitmark-inc/rcengine/transactionrecord"
)

// Engine - the two accounting hooks
type Engine interface {
	TransactionApplied(tx *transactionrecord.Transaction, blockTime uint64, producing bool) error
	BlockApplied(block *blockrecord.Block) error
}

// Ledger - stake changes of a transaction
//
// Reload discards stake changes whose batch was aborted
type Ledger interface {
	Apply(tx *transactionrecord.Transaction) error
	Reload() error
}

// Store - the position in the chain
//
// a block is written in one batch so the engine and ledger writes
// join it rather than committing their own
type Store interface {
	LastBlock() (*blockrecord.Block, bool, error)
	PutLastBlock(block *blockrecord.Block) error
	Begin() error
	Commit() error
	Abort()
}

// Processor - applies blocks of one chain
type Processor struct {
	sync.Mutex

	log       *logger.L
	chain     string
	engine    Engine
	ledger    Ledger
	store     Store
	producing func() bool

	blocks   counter.Counter
	skipped  counter.Counter
	rejected counter.Counter
}

// Statistics - counts since the processor was created
type Statistics struct {
	Blocks   uint64 `json:"blocks"`
	Skipped  uint64 `json:"skipped"`
	Rejected uint64 `json:"rejected"`
}

// New - a processor for chainName
//
// producing is asked once per block
func New(chainName string, engine Engine, ledger Ledger, store Store, producing func() bool) *Processor {
	return &Processor{
		log:       logger.New("block"),
		chain:     chainName,
		engine:    engine,
		ledger:    ledger,
		store:     store,
		producing: producing,
	}
}

// Height - number of the last block applied, zero before the first
func (p *Processor) Height() (uint64, error) {
	last, found, err := p.store.LastBlock()
	if nil != err || !found {
		return 0, err
	}
	return last.Header.Number, nil
}

// Statistics - current counts
func (p *Processor) Statistics() Statistics {
	return Statistics{
		Blocks:   p.blocks.Uint64(),
		Skipped:  p.skipped.Uint64(),
		Rejected: p.rejected.Uint64(),
	}
}
