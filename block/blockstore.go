// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package block

import (
	"os"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/rcengine/background"
	"github.com/bitmark-inc/rcengine/fault"
)

// Spool - source of block files
type Spool interface {
	Files() <-chan string
	Done(fileName string) error
}

type blockstore struct {
	log       *logger.L
	processor *Processor
	spool     Spool
	failed    chan<- error
}

// NewBlockstore - background process loading each file from the spool
//
// a fatal error is sent on failed and stops the process; any other
// failure leaves the file in the spool to be retried
func NewBlockstore(processor *Processor, spool Spool, failed chan<- error) background.Process {
	return &blockstore{
		log:       logger.New("blockstore"),
		processor: processor,
		spool:     spool,
		failed:    failed,
	}
}

// wait for new block files
func (blk *blockstore) Run(args interface{}, shutdown <-chan struct{}) {

	log := blk.log

	log.Info("starting…")

	queue := blk.spool.Files()

loop:
	for {
		log.Debug("waiting…")
		select {
		case <-shutdown:
			break loop
		case fileName := <-queue:
			log.Infof("received: %q", fileName)
			if err := blk.process(fileName); nil != err && fault.IsErrFatal(err) {
				select {
				case blk.failed <- err:
				default:
				}
				break loop
			}
		}
	}

	log.Info("shutting down…")
	log.Flush()
}

// process the received file
func (blk *blockstore) process(fileName string) error {

	log := blk.log

	_, err := blk.processor.LoadFile(fileName)
	if nil != err {
		if os.IsNotExist(err) {
			log.Debugf("file: %q already processed", fileName)
			return nil
		}
		log.Errorf("file: %q  error: %s", fileName, err)
		return err
	}
	return blk.spool.Done(fileName)
}
