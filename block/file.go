// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package block

import (
	"io/ioutil"

	"github.com/bitmark-inc/rcengine/blockrecord"
)

// LoadFile - apply every block of a block file
//
// returns the number of blocks applied; blocks already applied are
// skipped so a file can be loaded again after a failure
func (p *Processor) LoadFile(fileName string) (int, error) {
	data, err := ioutil.ReadFile(fileName)
	if nil != err {
		return 0, err
	}

	blocks, err := blockrecord.UnpackFile(p.chain, data)
	if nil != err {
		p.log.Errorf("file: %q  error: %s", fileName, err)
		return 0, err
	}

	applied := 0
	for _, block := range blocks {
		ok, err := p.StoreIncoming(block)
		if nil != err {
			return applied, err
		}
		if ok {
			applied += 1
		}
	}
	p.log.Infof("file: %q  blocks: %d  applied: %d", fileName, len(blocks), applied)
	return applied, nil
}
