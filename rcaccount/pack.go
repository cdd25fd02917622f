// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rcaccount

import (
	"github.com/bitmark-inc/rcengine/fault"
	"github.com/bitmark-inc/rcengine/util"
)

// version of the packed account record
const packVersion = 1

// Pack - the account name is the storage key so is not included
//
// Varint64(version), zig-zag balance, Varint64(last update), zig-zag
// creation adjustment
func (record *Record) Pack() []byte {
	buffer := util.ToVarint64(packVersion)
	buffer = append(buffer, util.ToSignedVarint64(record.Balance)...)
	buffer = append(buffer, util.ToVarint64(record.LastUpdate)...)
	return append(buffer, util.ToSignedVarint64(record.MaxCreationAdjustment)...)
}

// Unpack - reverse of Pack
func Unpack(account string, buffer []byte) (*Record, error) {
	version, n := util.FromVarint64(buffer)
	if 0 == n {
		return nil, fault.ErrTruncatedRecord
	}
	if packVersion != version {
		return nil, fault.ErrUnsupportedRecordVersion
	}

	balance, count := util.FromSignedVarint64(buffer[n:])
	if 0 == count {
		return nil, fault.ErrTruncatedRecord
	}
	n += count

	lastUpdate, count := util.FromVarint64(buffer[n:])
	if 0 == count {
		return nil, fault.ErrTruncatedRecord
	}
	n += count

	adjustment, count := util.FromSignedVarint64(buffer[n:])
	if 0 == count {
		return nil, fault.ErrTruncatedRecord
	}
	n += count

	if n != len(buffer) {
		return nil, fault.ErrTruncatedRecord
	}

	return &Record{
		Account:               account,
		Balance:               balance,
		LastUpdate:            lastUpdate,
		MaxCreationAdjustment: adjustment,
	}, nil
}
