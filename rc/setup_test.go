// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rc_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"

	"github.com/bitmark-inc/logger"
	"github.com/bitmark-inc/rcengine/pool"
	"github.com/bitmark-inc/rcengine/rc/mocks"
	"github.com/bitmark-inc/rcengine/rcaccount"
	"github.com/bitmark-inc/rcengine/resource"
	"github.com/bitmark-inc/rcengine/storage"
	"github.com/bitmark-inc/rcengine/transactionrecord"
)

const (
	testingDirName = "testing"
	genesis        = uint64(1000)
	initialLevel   = int64(1000000)
)

var databaseName = filepath.Join(testingDirName, "rc")

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

// curve with no decay or budget so the pool only moves by usage
func testParams() resource.ParamSet {
	p := resource.Params{
		TimeUnit:             resource.Blocks,
		ResourceUnitBase:     10,
		ResourceUnitExponent: 0,
		Curve: resource.CurveParams{
			CoeffA: 1000000000,
			CoeffB: 1000,
			CoeffD: 0,
			Shift:  0,
		},
		BudgetPerTimeUnit: 0,
	}
	return resource.ParamSet{p, p, p}
}

// fresh database holding the test parameters and a pool at initialLevel
func setupStore(t *testing.T) *storage.Store {
	_ = os.RemoveAll(databaseName + ".leveldb")
	require.Nil(t, storage.Initialise(databaseName, storage.ReadWrite), "storage initialise")

	s, err := storage.NewStore()
	require.Nil(t, err, "new store")

	require.Nil(t, s.Begin())
	require.Nil(t, s.PutParams(testParams()))
	require.Nil(t, s.PutPool(&pool.Pool{
		Levels:     [resource.NumTypes]int64{initialLevel, initialLevel, initialLevel},
		LastUpdate: genesis,
	}))
	require.Nil(t, s.Commit())
	return s
}

func teardownStore() {
	storage.Finalise()
	_ = os.RemoveAll(databaseName + ".leveldb")
}

// chain mock answering from a fixed stake table
func stakeChain(ctl *gomock.Controller, stakes map[string]int64, price rcaccount.Price) *mocks.MockChain {
	chain := mocks.NewMockChain(ctl)

	total := int64(0)
	names := make([]string, 0, len(stakes))
	for name, stake := range stakes {
		total += stake
		names = append(names, name)
	}

	chain.EXPECT().TotalStake().Return(total).AnyTimes()
	chain.EXPECT().StakePrice().Return(price).AnyTimes()
	chain.EXPECT().Accounts().Return(names).AnyTimes()
	chain.EXPECT().Stake(gomock.Any()).DoAndReturn(func(name string) (int64, bool) {
		stake, ok := stakes[name]
		return stake, ok
	}).AnyTimes()

	return chain
}

func makeTransaction(ops ...transactionrecord.Operation) *transactionrecord.Transaction {
	return &transactionrecord.Transaction{
		RefBlockNumber: 1,
		RefBlockPrefix: 0x12345678,
		Expiration:     genesis + 60,
		Operations:     ops,
	}
}

func getRecord(t *testing.T, s *storage.Store, name string) *rcaccount.Record {
	record, found, err := s.Account(name)
	require.Nil(t, err, "account: %s", name)
	require.True(t, found, "account: %s not found", name)
	return record
}
