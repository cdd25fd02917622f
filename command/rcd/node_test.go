// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitmark-inc/logger"
	"github.com/bitmark-inc/rcengine/chain"
	"github.com/bitmark-inc/rcengine/resource"
	"github.com/bitmark-inc/rcengine/storage"
)

const testingDirName = "testing"

var databaseName = filepath.Join(testingDirName, "rcd")

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

func openStore(t *testing.T) *storage.Store {
	_ = os.RemoveAll(databaseName + ".leveldb")
	require.Nil(t, storage.Initialise(databaseName, storage.ReadWrite), "storage initialise")
	s, err := storage.NewStore()
	require.Nil(t, err)
	return s
}

func closeStore() {
	storage.Finalise()
	_ = os.RemoveAll(databaseName + ".leveldb")
}

func TestSetupParams(t *testing.T) {
	s := openStore(t)
	defer closeStore()

	log := logger.New("testing")

	first, err := resource.DefaultParams(chain.Testing)
	require.Nil(t, err)
	require.Nil(t, setupParams(log, s, first), "fresh database")

	stored, err := s.Params()
	assert.Nil(t, err)
	assert.Equal(t, first, stored)

	second, err := resource.DefaultParams(chain.Steem)
	require.Nil(t, err)
	second[resource.HistoryBytes].BudgetPerTimeUnit += 1
	assert.Nil(t, setupParams(log, s, second), "differing configuration")

	stored, err = s.Params()
	assert.Nil(t, err)
	assert.Equal(t, first, stored, "stored parameters replaced")
}

func TestStatusTime(t *testing.T) {
	s := openStore(t)
	defer closeStore()

	now, err := statusTime(s, []string{"1600000000"})
	assert.Nil(t, err)
	assert.Equal(t, uint64(1600000000), now)

	_, err = statusTime(s, []string{"yesterday"})
	assert.NotNil(t, err)

	before := uint64(time.Now().Unix())
	now, err = statusTime(s, nil)
	assert.Nil(t, err)
	assert.True(t, now >= before, "no block so wall clock expected")
}

func TestNamedParams(t *testing.T) {
	set, err := resource.DefaultParams(chain.Local)
	require.Nil(t, err)

	named := namedParams(set)
	require.Equal(t, resource.NumTypes, len(named))
	for i, rt := range resource.Types() {
		assert.Equal(t, rt.String(), named[i][0])
		assert.Equal(t, set[rt], named[i][1])
	}

	var buffer bytes.Buffer
	assert.Nil(t, printJson(&buffer, named))
	assert.Contains(t, buffer.String(), `"history_bytes"`)
}
