// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/bitmark-inc/logger"
	"github.com/bitmark-inc/rcengine/storage"
)

const (
	testingDirName = "testing"
)

var databaseName = filepath.Join(testingDirName, "test")

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

// open a fresh database
func setup(t *testing.T) *storage.Store {
	_ = os.RemoveAll(databaseName + ".leveldb")
	err := storage.Initialise(databaseName, storage.ReadWrite)
	if nil != err {
		t.Fatalf("storage initialise error: %s", err)
	}
	s, err := storage.NewStore()
	if nil != err {
		t.Fatalf("new store error: %s", err)
	}
	return s
}

// post test cleanup
func teardown() {
	storage.Finalise()
	_ = os.RemoveAll(databaseName + ".leveldb")
}
