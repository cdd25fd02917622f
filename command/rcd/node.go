// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/rcengine/block"
	"github.com/bitmark-inc/rcengine/chain"
	"github.com/bitmark-inc/rcengine/configuration"
	"github.com/bitmark-inc/rcengine/fault"
	"github.com/bitmark-inc/rcengine/ledger"
	"github.com/bitmark-inc/rcengine/mode"
	"github.com/bitmark-inc/rcengine/rc"
	"github.com/bitmark-inc/rcengine/resource"
	"github.com/bitmark-inc/rcengine/storage"
)

// the components built on top of an open database
type node struct {
	store     *storage.Store
	ledger    *ledger.Ledger
	engine    *rc.Engine
	processor *block.Processor
}

// wire storage, ledger, engine and block processor
//
// storage must already be initialised
func newNode(log *logger.L, options *configuration.Configuration) (*node, error) {
	store, err := storage.NewStore()
	if nil != err {
		return nil, err
	}

	params, err := options.Parameters()
	if nil != err {
		return nil, err
	}
	if err := setupParams(log, store, params); nil != err {
		return nil, err
	}

	price, err := options.Price()
	if nil != err {
		return nil, err
	}
	l, err := ledger.New(store, price)
	if nil != err {
		return nil, err
	}
	if err := l.Seed(options.Stakes.Genesis); nil != err {
		return nil, err
	}
	log.Infof("accounts: %d  total stake: %d", len(l.Accounts()), l.TotalStake())

	genesis, ok := chain.GenesisTime(options.Chain)
	if !ok {
		return nil, fault.ErrInvalidChain
	}
	engine := rc.New(l, store, genesis)

	created, deleted, err := engine.Reconcile()
	if nil != err {
		return nil, err
	}
	log.Infof("records created: %d  deleted: %d", created, deleted)

	return &node{
		store:     store,
		ledger:    l,
		engine:    engine,
		processor: block.New(options.Chain, engine, l, store, mode.IsProducing),
	}, nil
}

// a fresh database takes the configured parameters, afterwards the
// stored ones are authoritative
func setupParams(log *logger.L, store *storage.Store, params resource.ParamSet) error {
	stored, err := store.Params()
	switch err {
	case nil:
		if stored != params {
			log.Warn("configured resource parameters differ from database: keeping stored values")
		}
		return nil

	case fault.ErrMissingParameters:
		log.Info("storing initial resource parameters")
		if err := store.Begin(); nil != err {
			return err
		}
		if err := store.PutParams(params); nil != err {
			store.Abort()
			return err
		}
		return store.Commit()

	default:
		return err
	}
}
