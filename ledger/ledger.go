// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"math"
	"sort"
	"sync"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/rcengine/fault"
	"github.com/bitmark-inc/rcengine/rcaccount"
	"github.com/bitmark-inc/rcengine/resource"
	"github.com/bitmark-inc/rcengine/transactionrecord"
)

// StakeStore - persistent stake table
type StakeStore interface {
	Stake(name string) (int64, bool, error)
	PutStake(name string, stake int64) error
	StakeNames() ([]string, error)
	Begin() error
	Commit() error
	Abort()
	InUse() bool
}

// Ledger - stake of every live account
//
// all stakes are held in memory and written through to the store
type Ledger struct {
	sync.RWMutex

	log    *logger.L
	store  StakeStore
	stakes map[string]int64
	total  int64
	price  rcaccount.Price
}

// New - load all stakes from the store
func New(store StakeStore, price rcaccount.Price) (*Ledger, error) {
	if price.Liquid <= 0 || price.Stake < 0 {
		return nil, fault.ErrInvalidPrice
	}

	l := &Ledger{
		log:    logger.New("ledger"),
		store:  store,
		stakes: make(map[string]int64),
		price:  price,
	}

	if err := l.load(); nil != err {
		return nil, err
	}
	l.log.Infof("accounts: %d  total stake: %d", len(l.stakes), l.total)
	return l, nil
}

// Reload - replace the stakes in memory with those in the store
//
// used after a batch holding stake changes was aborted
func (l *Ledger) Reload() error {
	l.Lock()
	defer l.Unlock()

	err := l.load()
	if nil != err {
		l.log.Criticalf("reload error: %s", err)
		return err
	}
	l.log.Infof("reloaded accounts: %d  total stake: %d", len(l.stakes), l.total)
	return nil
}

func (l *Ledger) load() error {
	names, err := l.store.StakeNames()
	if nil != err {
		return err
	}

	stakes := make(map[string]int64, len(names))
	total := int64(0)
	for _, name := range names {
		stake, found, err := l.store.Stake(name)
		if nil != err {
			return err
		}
		if !found {
			continue
		}
		t, ok := resource.CheckedAdd(total, stake)
		if !ok {
			return fault.ErrStakeOverflow
		}
		stakes[name] = stake
		total = t
	}

	l.stakes = stakes
	l.total = total
	return nil
}

// Seed - create the genesis accounts that do not exist yet
//
// existing accounts keep their current stake
func (l *Ledger) Seed(genesis map[string]int64) error {
	l.Lock()
	defer l.Unlock()

	changes := make(map[string]int64)
	for name, stake := range genesis {
		if err := transactionrecord.CheckAccountName(name); nil != err {
			return err
		}
		if stake < 0 {
			return fault.ErrInsufficientStake
		}
		if _, ok := l.stakes[name]; ok {
			continue
		}
		changes[name] = stake
	}

	return l.commit(changes)
}

// Apply - update stakes from the operations of a transaction
//
// either all operations apply or none do
func (l *Ledger) Apply(tx *transactionrecord.Transaction) error {
	l.Lock()
	defer l.Unlock()

	changes := make(map[string]int64)

	get := func(name string) (int64, bool) {
		if stake, ok := changes[name]; ok {
			return stake, true
		}
		stake, ok := l.stakes[name]
		return stake, ok
	}

	move := func(from string, to string, amount uint64) error {
		if amount > math.MaxInt64 {
			return fault.ErrStakeOverflow
		}
		a := int64(amount)
		source, ok := get(from)
		if !ok {
			return fault.ErrAccountNotFound
		}
		if source < a {
			return fault.ErrInsufficientStake
		}
		changes[from] = source - a

		destination, ok := get(to)
		if !ok {
			return fault.ErrAccountNotFound
		}
		d, ok := resource.CheckedAdd(destination, a)
		if !ok {
			return fault.ErrStakeOverflow
		}
		changes[to] = d
		return nil
	}

	create := func(creator string, name string) error {
		if _, ok := get(creator); !ok {
			return fault.ErrAccountNotFound
		}
		if _, ok := get(name); ok {
			return fault.ErrDuplicateAccount
		}
		changes[name] = 0
		return nil
	}

	for _, op := range tx.Operations {
		var err error

		switch o := op.(type) {
		case *transactionrecord.AccountCreate:
			err = create(o.Creator, o.NewAccount)

		case *transactionrecord.AccountCreateWithDelegation:
			err = create(o.Creator, o.NewAccount)
			if nil == err {
				err = move(o.Creator, o.NewAccount, o.Delegation)
			}

		case *transactionrecord.TransferToStake:
			if o.Amount > math.MaxInt64 {
				err = fault.ErrStakeOverflow
				break
			}
			stake, ok := get(o.To)
			if !ok {
				err = fault.ErrAccountNotFound
				break
			}
			s, ok := resource.CheckedAdd(stake, int64(o.Amount))
			if !ok {
				err = fault.ErrStakeOverflow
				break
			}
			changes[o.To] = s

		case *transactionrecord.WithdrawStake:
			if o.Amount > math.MaxInt64 {
				err = fault.ErrInsufficientStake
				break
			}
			stake, ok := get(o.Account)
			if !ok {
				err = fault.ErrAccountNotFound
				break
			}
			if stake < int64(o.Amount) {
				err = fault.ErrInsufficientStake
				break
			}
			changes[o.Account] = stake - int64(o.Amount)

		case *transactionrecord.DelegateStake:
			err = move(o.Delegator, o.Delegatee, o.Amount)

		default:
		}

		if nil != err {
			l.log.Warnf("operation: %T  error: %s", op, err)
			return err
		}
	}

	return l.commit(changes)
}

// write changes to the store, then to memory
//
// when the caller holds the batch it must Reload after an abort
func (l *Ledger) commit(changes map[string]int64) error {
	if 0 == len(changes) {
		return nil
	}

	total := l.total
	for name, stake := range changes {
		t, ok := resource.CheckedSub(total, l.stakes[name])
		if ok {
			t, ok = resource.CheckedAdd(t, stake)
		}
		if !ok {
			return fault.ErrStakeOverflow
		}
		total = t
	}

	// join the caller's batch if there is one
	own := !l.store.InUse()
	if own {
		if err := l.store.Begin(); nil != err {
			return err
		}
	}
	for _, name := range sortedNames(changes) {
		err := l.store.PutStake(name, changes[name])
		if nil != err {
			if own {
				l.store.Abort()
			}
			return err
		}
	}
	if own {
		if err := l.store.Commit(); nil != err {
			return err
		}
	}

	for name, stake := range changes {
		l.log.Debugf("account: %s  stake: %d → %d", name, l.stakes[name], stake)
		l.stakes[name] = stake
	}
	l.total = total
	return nil
}

// Stake - stake of an account
func (l *Ledger) Stake(account string) (int64, bool) {
	l.RLock()
	defer l.RUnlock()
	stake, ok := l.stakes[account]
	return stake, ok
}

// StakePrice - fixed conversion from fees to stake
func (l *Ledger) StakePrice() rcaccount.Price {
	return l.price
}

// TotalStake - sum of all stakes
func (l *Ledger) TotalStake() int64 {
	l.RLock()
	defer l.RUnlock()
	return l.total
}

// Accounts - names of all live accounts, sorted
func (l *Ledger) Accounts() []string {
	l.RLock()
	defer l.RUnlock()
	return sortedNames(l.stakes)
}

func sortedNames(m map[string]int64) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
