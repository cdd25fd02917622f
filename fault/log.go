// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault

import (
	"fmt"
	"time"

	"github.com/bitmark-inc/logger"
)

// channel for the last message before a panic
var log *logger.L

// Initialise - open the PANIC log channel
func Initialise() error {
	if nil != log {
		return ErrAlreadyInitialised
	}
	log = logger.New("PANIC")
	if nil == log {
		return ErrInvalidLoggerChannel
	}
	return nil
}

// Finalise - flush and release the channel
func Finalise() {
	if nil != log {
		log.Flush()
		log = nil
	}
}

// PanicIfError - log then panic when err is set
//
// only for corrupt stored data or programming errors, never for
// anything a block can cause
func PanicIfError(message string, err error) {
	if nil == err {
		return
	}
	s := fmt.Sprintf("%s failed with error: %v", message, err)
	if nil == log {
		fmt.Printf("*** %s\n", s)
	} else {
		log.Critical(s)
		log.Flush()
		time.Sleep(100 * time.Millisecond) // let the writer finish
	}
	panic(s)
}
