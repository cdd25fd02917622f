// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package util

import (
	"os"
	"path/filepath"
)

// EnsureAbsolute - ensure the path is absolute
// if not, prepend the directory to make absolute path
func EnsureAbsolute(directory string, filePath string) string {
	if !filepath.IsAbs(filePath) {
		filePath = filepath.Join(directory, filePath)
	}
	return filepath.Clean(filePath)
}

// EnsureDirectory - create the directory (and parents) if missing
// and check that the result really is a directory
func EnsureDirectory(directory string) error {
	if err := os.MkdirAll(directory, 0700); nil != err {
		return err
	}
	fileInfo, err := os.Stat(directory)
	if nil != err {
		return err
	}
	if !fileInfo.IsDir() {
		return &os.PathError{Op: "mkdir", Path: directory, Err: os.ErrExist}
	}
	return nil
}
