// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rc

import (
	"sort"
	"sync"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/rcengine/blockrecord"
	"github.com/bitmark-inc/rcengine/counter"
	"github.com/bitmark-inc/rcengine/curve"
	"github.com/bitmark-inc/rcengine/fault"
	"github.com/bitmark-inc/rcengine/pool"
	"github.com/bitmark-inc/rcengine/rcaccount"
	"github.com/bitmark-inc/rcengine/resource"
	"github.com/bitmark-inc/rcengine/resourcecount"
	"github.com/bitmark-inc/rcengine/transactionrecord"
)

// Engine - applies resource credit accounting to a stream of
// transactions and blocks
type Engine struct {
	sync.Mutex

	log     *logger.L
	chain   Chain
	store   Store
	genesis uint64

	charged  counter.Counter
	rejected counter.Counter
	blocks   counter.Counter
}

// Statistics - counts since the engine was created
type Statistics struct {
	Charged  uint64 `json:"charged"`
	Rejected uint64 `json:"rejected"`
	Blocks   uint64 `json:"blocks"`
}

// New - create an engine
//
// genesis is the last update time given to records created on
// first access
func New(chain Chain, store Store, genesis uint64) *Engine {
	return &Engine{
		log:     logger.New("rc"),
		chain:   chain,
		store:   store,
		genesis: genesis,
	}
}

// TransactionApplied - charge the resource user of a transaction
//
// only when producing can a charge fail with *fault.InsufficientCredit,
// in which case nothing is written
//
// writes join a batch the caller already opened, so a whole block can
// be committed in one step
func (e *Engine) TransactionApplied(tx *transactionrecord.Transaction, blockTime uint64, producing bool) error {
	e.Lock()
	defer e.Unlock()

	if e.chain.TotalStake() <= 0 {
		return nil
	}

	estimate, result, err := e.estimate(tx, blockTime)
	if nil != err {
		e.log.Errorf("transaction estimate error: %s", err)
		return err
	}

	own, err := e.begin()
	if nil != err {
		return err
	}

	err = e.apply(result, estimate, blockTime, producing)
	if nil != err {
		if own {
			e.store.Abort()
		}
		switch {
		case fault.IsErrInsufficientCredit(err):
			e.rejected.Increment()
			e.log.Warnf("rejected: %s", err)
		case fault.IsErrFatal(err):
			e.log.Criticalf("transaction charge error: %s", err)
		default:
			e.log.Errorf("transaction charge error: %s", err)
		}
		return err
	}

	if own {
		err = e.store.Commit()
		if nil != err {
			e.log.Criticalf("commit error: %s", err)
			return err
		}
	}

	if "" != estimate.User {
		e.charged.Increment()
	}
	return nil
}

// creation adjustments, eager records and the charge, all in the open batch
func (e *Engine) apply(result resourcecount.Result, estimate Cost, now uint64, producing bool) error {

	records := make(map[string]*rcaccount.Record)

	if result.NewAccountOpCount > 0 {
		price := e.chain.StakePrice()

		for _, creation := range result.Creations {
			record, err := e.record(records, creation.Creator)
			if nil != err {
				return err
			}
			err = rcaccount.SetCreationAdjustment(record, creation.Fee, price)
			if nil != err {
				return err
			}
			e.log.Debugf("creator: %s  fee: %d  adjustment: %d", creation.Creator, creation.Fee, record.MaxCreationAdjustment)
		}

		for _, creation := range result.Creations {
			if _, err := e.record(records, creation.Created); nil != err {
				return err
			}
		}
	}

	if "" == estimate.User {
		e.log.Debug("transaction has no resource user")
	} else {
		stake, found := e.chain.Stake(estimate.User)
		if !found {
			e.log.Warnf("account: %s  has no stake", estimate.User)
		}

		record, err := e.record(records, estimate.User)
		if nil != err {
			return err
		}
		err = rcaccount.Charge(record, stake, estimate.Total, now, producing)
		if nil != err {
			return err
		}
		e.log.Debugf("charged: %s  cost: %d  balance: %d", estimate.User, estimate.Total, record.Balance)
	}

	names := make([]string, 0, len(records))
	for name := range records {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		err := e.store.PutAccount(records[name])
		if nil != err {
			return err
		}
	}
	return nil
}

// record of an account: touched in this batch, stored, or new
func (e *Engine) record(records map[string]*rcaccount.Record, name string) (*rcaccount.Record, error) {
	if record, ok := records[name]; ok {
		return record, nil
	}
	record, found, err := e.store.Account(name)
	if nil != err {
		return nil, err
	}
	if !found {
		record = rcaccount.New(name, e.genesis)
	}
	records[name] = record
	return record, nil
}

// BlockApplied - regenerate the pool from the total usage of a block
//
// block must hold only the transactions that were applied, a
// transaction rejected while producing is not part of the block
func (e *Engine) BlockApplied(block *blockrecord.Block) error {
	e.Lock()
	defer e.Unlock()

	if e.chain.TotalStake() <= 0 {
		return nil
	}

	timestamp := block.Header.Timestamp

	result, err := resourcecount.CountBlock(block)
	if nil != err {
		return err
	}

	params, err := e.store.Params()
	if nil != err {
		return err
	}

	usage, err := params.Scale(result.Resources)
	if nil != err {
		e.log.Criticalf("block: %d  scale error: %s", block.Header.Number, err)
		return err
	}

	p, err := e.currentPool(params, timestamp)
	if nil != err {
		return err
	}

	err = pool.Regenerate(p, params, usage, timestamp)
	if nil != err {
		e.log.Criticalf("block: %d  regenerate error: %s", block.Header.Number, err)
		return err
	}

	own, err := e.begin()
	if nil != err {
		return err
	}
	err = e.store.PutPool(p)
	if nil != err {
		if own {
			e.store.Abort()
		}
		return err
	}
	if own {
		err = e.store.Commit()
		if nil != err {
			e.log.Criticalf("commit error: %s", err)
			return err
		}
	}

	e.blocks.Increment()
	e.log.Debugf("block: %d  usage: %v  pool: %v", block.Header.Number, usage, p.Levels)
	return nil
}

// join the caller's batch when one is open, otherwise open one
//
// own is true when the batch must be committed or aborted here
func (e *Engine) begin() (bool, error) {
	if e.store.InUse() {
		return false, nil
	}
	return true, e.store.Begin()
}

// stored pool, or one at equilibrium if there is none yet
func (e *Engine) currentPool(params resource.ParamSet, now uint64) (*pool.Pool, error) {
	p, err := e.store.Pool()
	if fault.ErrMissingPool == err {
		e.log.Debugf("no stored pool, equilibrium at: %d", now)
		return pool.New(params, now), nil
	}
	return p, err
}

// Reconcile - make the set of records match the chain's accounts
//
// returns the number of records created and deleted
func (e *Engine) Reconcile() (int, int, error) {
	e.Lock()
	defer e.Unlock()

	live := make(map[string]struct{})
	for _, name := range e.chain.Accounts() {
		live[name] = struct{}{}
	}

	stored, err := e.store.AccountNames()
	if nil != err {
		return 0, 0, err
	}
	existing := make(map[string]struct{})
	for _, name := range stored {
		existing[name] = struct{}{}
	}

	err = e.store.Begin()
	if nil != err {
		return 0, 0, err
	}

	created := 0
	deleted := 0

	for _, name := range sortedKeys(live) {
		if _, ok := existing[name]; ok {
			continue
		}
		err = e.store.PutAccount(rcaccount.New(name, e.genesis))
		if nil != err {
			e.store.Abort()
			return 0, 0, err
		}
		created += 1
	}

	for _, name := range sortedKeys(existing) {
		if _, ok := live[name]; ok {
			continue
		}
		err = e.store.DeleteAccount(name)
		if nil != err {
			e.store.Abort()
			return 0, 0, err
		}
		deleted += 1
	}

	err = e.store.Commit()
	if nil != err {
		return 0, 0, err
	}

	e.log.Infof("reconcile: created: %d  deleted: %d", created, deleted)
	return created, deleted, nil
}

// Status - credit of an account at a time
func (e *Engine) Status(account string, now uint64) (rcaccount.Status, error) {
	e.Lock()
	defer e.Unlock()

	record, found, err := e.store.Account(account)
	if nil != err {
		return rcaccount.Status{}, err
	}
	if !found {
		record = rcaccount.New(account, e.genesis)
	}

	stake, _ := e.chain.Stake(account)
	return rcaccount.Current(record, stake, now)
}

// Statistics - current counter values
func (e *Engine) Statistics() Statistics {
	return Statistics{
		Charged:  e.charged.Uint64(),
		Rejected: e.rejected.Uint64(),
		Blocks:   e.blocks.Uint64(),
	}
}

func sortedKeys(m map[string]struct{}) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// price each resource against the pool and sum
func price(params resource.ParamSet, p *pool.Pool, usage resource.Count) (resource.Count, int64, error) {
	costs := resource.Count{}
	total := int64(0)
	for i := range params {
		c, err := curve.Price(params[i].Curve, p.Levels[i], usage[i])
		if nil != err {
			return resource.Count{}, 0, err
		}
		costs[i] = c

		t, ok := resource.CheckedAdd(total, c)
		if !ok {
			return resource.Count{}, 0, fault.ErrCurveOverflow
		}
		total = t
	}
	return costs, total, nil
}
