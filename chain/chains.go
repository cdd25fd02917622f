// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chain

// names of all chains
const (
	Steem   = "steem"
	Testing = "testing"
	Local   = "local"
)

// genesis times in seconds since the epoch
const (
	steemGenesis   = uint64(1458835200) // 2016-03-24T16:00:00Z
	testingGenesis = uint64(1451606400) // 2016-01-01T00:00:00Z
	localGenesis   = uint64(1262304000) // 2010-01-01T00:00:00Z
)

// Valid - validate a chain name
func Valid(name string) bool {
	switch name {
	case Steem, Testing, Local:
		return true
	default:
		return false
	}
}

// GenesisTime - the initial last update time of every new credit record
//
// returns false for an unknown chain
func GenesisTime(name string) (uint64, bool) {
	switch name {
	case Steem:
		return steemGenesis, true
	case Testing:
		return testingGenesis, true
	case Local:
		return localGenesis, true
	default:
		return 0, false
	}
}
