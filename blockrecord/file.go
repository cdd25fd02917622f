// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockrecord

import (
	"github.com/bitmark-inc/rcengine/fault"
	"github.com/bitmark-inc/rcengine/util"
)

// PackFile - chain name followed by consecutive packed blocks
func PackFile(chainName string, blocks []*Block) ([]byte, error) {
	buffer := util.ToVarint64(uint64(len(chainName)))
	buffer = append(buffer, chainName...)
	for _, block := range blocks {
		packed, err := block.Pack()
		if nil != err {
			return nil, err
		}
		buffer = append(buffer, packed...)
	}
	return buffer, nil
}

// UnpackFile - reverse of PackFile
//
// blocks in a file must be consecutive
func UnpackFile(chainName string, data []byte) ([]*Block, error) {
	if 0 == len(data) {
		return nil, fault.ErrZeroLengthBlockFile
	}

	length, n := util.ClippedVarint64(data, 1, 64)
	if 0 == n || n+length > len(data) {
		return nil, fault.ErrTruncatedRecord
	}
	if string(data[n:n+length]) != chainName {
		return nil, fault.ErrWrongNetworkForBlockFile
	}
	data = data[n+length:]

	blocks := []*Block{}
	for 0 != len(data) {
		block, rest, err := ExtractBlock(data)
		if nil != err {
			return nil, err
		}
		if 0 != len(blocks) {
			err := ValidSuccessor(blocks[len(blocks)-1], &block.Header)
			if nil != err {
				return nil, err
			}
		}
		blocks = append(blocks, block)
		data = rest
	}
	return blocks, nil
}
