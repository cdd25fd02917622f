// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package block

import (
	"github.com/bitmark-inc/rcengine/blockrecord"
	"github.com/bitmark-inc/rcengine/fault"
	"github.com/bitmark-inc/rcengine/transactionrecord"
)

// StoreIncoming - apply a block that must follow the last one
//
// blocks at or below the current height are ignored and reported as
// not applied.  All charges, the pool and the new height are written
// in a single batch, so a block that fails leaves nothing behind and
// can be applied again.
func (p *Processor) StoreIncoming(block *blockrecord.Block) (bool, error) {
	p.Lock()
	defer p.Unlock()

	log := p.log

	last, found, err := p.store.LastBlock()
	if nil != err {
		return false, err
	}
	if found {
		if block.Header.Number <= last.Header.Number {
			log.Debugf("skip block: %d  height: %d", block.Header.Number, last.Header.Number)
			p.skipped.Increment()
			return false, nil
		}
		err := blockrecord.ValidSuccessor(last, &block.Header)
		if nil != err {
			log.Errorf("block: %d  after: %d  error: %s", block.Header.Number, last.Header.Number, err)
			return false, err
		}
	}

	err = p.store.Begin()
	if nil != err {
		return false, err
	}

	applied, rejected, err := p.apply(block)
	if nil != err {
		p.abort(block.Header.Number)
		return false, err
	}

	// a producer regenerates the pool from what it kept, the same
	// block a validator will later receive
	err = p.engine.BlockApplied(applied)
	if nil != err {
		log.Criticalf("block: %d  regenerate error: %s", block.Header.Number, err)
		p.abort(block.Header.Number)
		return false, err
	}

	err = p.store.PutLastBlock(applied)
	if nil != err {
		p.abort(block.Header.Number)
		return false, err
	}
	err = p.store.Commit()
	if nil != err {
		p.abort(block.Header.Number)
		return false, err
	}

	p.blocks.Increment()
	p.rejected.Add(uint64(rejected))
	log.Infof("applied block: %d  transactions: %d  rejected: %d", block.Header.Number, len(applied.Transactions), rejected)
	return true, nil
}

// charge every transaction inside the open batch
//
// returns the block reduced to the accepted transactions
func (p *Processor) apply(block *blockrecord.Block) (*blockrecord.Block, int, error) {
	log := p.log

	producing := p.producing()
	timestamp := block.Header.Timestamp

	accepted := make([]*transactionrecord.Transaction, 0, len(block.Transactions))
	rejected := 0

	for i, tx := range block.Transactions {
		err := p.engine.TransactionApplied(tx, timestamp, producing)
		switch {
		case nil == err:
		case fault.IsErrInsufficientCredit(err), fault.IsErrInvalid(err), fault.IsErrRecord(err):
			log.Warnf("block: %d  transaction: %d  rejected: %s", block.Header.Number, i, err)
			rejected += 1
			continue
		default:
			log.Criticalf("block: %d  transaction: %d  error: %s", block.Header.Number, i, err)
			return nil, 0, err
		}

		// the chain accepted this transaction so a stake error
		// only means the ledger is behind the chain
		err = p.ledger.Apply(tx)
		if nil != err {
			log.Warnf("block: %d  transaction: %d  ledger error: %s", block.Header.Number, i, err)
		}
		accepted = append(accepted, tx)
	}

	if len(accepted) == len(block.Transactions) {
		return block, rejected, nil
	}
	applied := &blockrecord.Block{
		Header:       block.Header,
		Digest:       block.Digest,
		Transactions: accepted,
	}
	return applied, rejected, nil
}

// drop the batch and the stake changes made in it
func (p *Processor) abort(number uint64) {
	p.store.Abort()
	err := p.ledger.Reload()
	if nil != err {
		p.log.Criticalf("block: %d  ledger reload error: %s", number, err)
	}
}
