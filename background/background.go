// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package background - run long lived goroutines until told to stop
package background

import (
	"sync"
)

// Process - a background task
//
// Run must return soon after shutdown is closed
type Process interface {
	Run(args interface{}, shutdown <-chan struct{})
}

// Processes - list of processes to start
type Processes []Process

// T - handle of a running set of processes
type T struct {
	shutdown []chan struct{}
	wg       sync.WaitGroup
}

// Start - start up a set of background processes
func Start(processes Processes, args interface{}) *T {

	register := &T{
		shutdown: make([]chan struct{}, len(processes)),
	}

	for i, p := range processes {
		shutdown := make(chan struct{})
		register.shutdown[i] = shutdown
		register.wg.Add(1)
		go func(p Process) {
			defer register.wg.Done()
			p.Run(args, shutdown)
		}(p)
	}
	return register
}

// Stop - signal all processes then wait for every one to return
func (t *T) Stop() {
	for _, shutdown := range t.shutdown {
		close(shutdown)
	}
	t.wg.Wait()
}
