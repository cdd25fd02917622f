// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package mode

import (
	"sync"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/rcengine/chain"
	"github.com/bitmark-inc/rcengine/fault"
)

// Mode - the role of the node
//
// the rc engine only enforces credit on the transactions of a block
// this node produces; blocks replayed from the chain were already
// accepted by other producers and must never be rejected
type Mode int

// all possible modes
const (
	Stopped Mode = iota
	Replay
	Producing
	maximum
)

// permitted changes, anything may stop and nothing leaves Stopped
// until the next Initialise
var transitions = [maximum][maximum]bool{
	Stopped:   {Stopped: true},
	Replay:    {Stopped: true, Replay: true, Producing: true},
	Producing: {Stopped: true, Replay: true, Producing: true},
}

var globalData struct {
	sync.RWMutex
	log     *logger.L
	mode    Mode
	testing bool
	chain   string

	// set once during initialise
	initialised bool
}

// Initialise - set up the mode system
//
// the node always starts by replaying
func Initialise(chainName string) error {
	globalData.Lock()
	defer globalData.Unlock()

	if globalData.initialised {
		return fault.ErrAlreadyInitialised
	}

	globalData.log = logger.New("mode")
	globalData.log.Info("starting…")

	globalData.chain = chainName
	globalData.testing = false
	globalData.mode = Replay

	switch chainName {
	case chain.Steem:
		// no change
	case chain.Testing, chain.Local:
		globalData.testing = true
	default:
		globalData.log.Criticalf("mode cannot handle chain: '%s'", chainName)
		return fault.ErrInvalidChain
	}

	globalData.initialised = true

	return nil
}

// Finalise - shutdown mode handling
func Finalise() error {

	if !globalData.initialised {
		return fault.ErrNotInitialised
	}

	globalData.log.Info("shutting down…")
	globalData.log.Flush()

	_ = Set(Stopped)

	globalData.initialised = false

	globalData.log.Info("finished")
	globalData.log.Flush()

	return nil
}

// Set - change mode
//
// a producer that falls behind goes back to Replay, so credit is not
// enforced on blocks it receives while catching up.  Once stopped the
// node cannot resume producing, which keeps a block that arrives
// during shutdown from being judged as produced.
func Set(mode Mode) error {
	if mode < Stopped || mode >= maximum {
		globalData.log.Errorf("ignore invalid set: %d", mode)
		return fault.ErrInvalidModeTransition
	}

	globalData.Lock()
	current := globalData.mode
	if !transitions[current][mode] {
		globalData.Unlock()
		globalData.log.Errorf("ignore set: %s  from: %s", mode, current)
		return fault.ErrInvalidModeTransition
	}
	globalData.mode = mode
	globalData.Unlock()

	if current != mode {
		globalData.log.Infof("set: %s  from: %s", mode, current)
	}
	return nil
}

// Is - detect mode
func Is(mode Mode) bool {
	globalData.RLock()
	defer globalData.RUnlock()
	return mode == globalData.mode
}

// IsNot - detect mode
func IsNot(mode Mode) bool {
	globalData.RLock()
	defer globalData.RUnlock()
	return mode != globalData.mode
}

// IsProducing - the flag passed to the rc engine
//
// credit is only enforced on transactions of a block being produced
func IsProducing() bool {
	return Is(Producing)
}

// IsTesting - special for testing
func IsTesting() bool {
	globalData.RLock()
	defer globalData.RUnlock()
	return globalData.testing
}

// ChainName - name of the current chain
func ChainName() string {
	globalData.RLock()
	defer globalData.RUnlock()
	return globalData.chain
}

// String - current mode represented as a string
func String() string {
	globalData.RLock()
	defer globalData.RUnlock()
	return globalData.mode.String()
}

// String - mode represented as a string
func (m Mode) String() string {
	switch m {
	case Stopped:
		return "Stopped"
	case Replay:
		return "Replay"
	case Producing:
		return "Producing"
	default:
		return "*Unknown*"
	}
}
