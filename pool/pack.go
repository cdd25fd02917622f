// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package pool

import (
	"github.com/bitmark-inc/rcengine/fault"
	"github.com/bitmark-inc/rcengine/util"
)

// version of the packed pool record
const packVersion = 1

// Pack - Varint64(version), Varint64(last update) then one zig-zag
// Varint64 per level in resource order
func (p *Pool) Pack() []byte {
	buffer := util.ToVarint64(packVersion)
	buffer = append(buffer, util.ToVarint64(p.LastUpdate)...)
	for _, level := range p.Levels {
		buffer = append(buffer, util.ToSignedVarint64(level)...)
	}
	return buffer
}

// Unpack - reverse of Pack
func Unpack(buffer []byte) (*Pool, error) {
	version, n := util.FromVarint64(buffer)
	if 0 == n {
		return nil, fault.ErrTruncatedRecord
	}
	if packVersion != version {
		return nil, fault.ErrUnsupportedRecordVersion
	}

	p := &Pool{}

	lastUpdate, count := util.FromVarint64(buffer[n:])
	if 0 == count {
		return nil, fault.ErrTruncatedRecord
	}
	p.LastUpdate = lastUpdate
	n += count

	for i := range p.Levels {
		level, count := util.FromSignedVarint64(buffer[n:])
		if 0 == count {
			return nil, fault.ErrTruncatedRecord
		}
		p.Levels[i] = level
		n += count
	}

	if n != len(buffer) {
		return nil, fault.ErrTruncatedRecord
	}
	return p, nil
}
