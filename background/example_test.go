// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package background_test

import (
	"fmt"

	"github.com/bitmark-inc/rcengine/background"
)

type watcher struct {
	started chan struct{}
}

func (w *watcher) Run(args interface{}, shutdown <-chan struct{}) {
	fmt.Printf("watching: %s\n", args)
	close(w.started)
	<-shutdown
	fmt.Printf("stopped\n")
}

func Example() {
	w := &watcher{
		started: make(chan struct{}),
	}

	p := background.Start(background.Processes{w}, "/var/spool/rcd")
	<-w.started
	p.Stop()

	// Output:
	// watching: /var/spool/rcd
	// stopped
}
