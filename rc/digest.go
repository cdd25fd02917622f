// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rc

import (
	"sort"

	"github.com/bitmark-inc/rcengine/fault"
	"github.com/bitmark-inc/rcengine/merkle"
	"github.com/bitmark-inc/rcengine/util"
)

// Digest - SHA3-256 of the whole engine state
//
// two stores that processed the same blocks have the same digest
//
//   packed params
//   packed pool, or a single zero byte when there is none
//   for each account in name order:
//     Varint64(len(name)) name Varint64(len(record)) record
func (e *Engine) Digest() (merkle.Digest, error) {
	e.Lock()
	defer e.Unlock()

	params, err := e.store.Params()
	if nil != err {
		return merkle.Digest{}, err
	}
	buffer := params.Pack()

	p, err := e.store.Pool()
	switch err {
	case nil:
		buffer = append(buffer, p.Pack()...)
	case fault.ErrMissingPool:
		buffer = append(buffer, 0x00)
	default:
		return merkle.Digest{}, err
	}

	names, err := e.store.AccountNames()
	if nil != err {
		return merkle.Digest{}, err
	}
	sort.Strings(names)

	for _, name := range names {
		record, found, err := e.store.Account(name)
		if nil != err {
			return merkle.Digest{}, err
		}
		if !found {
			continue
		}
		packed := record.Pack()
		buffer = append(buffer, util.ToVarint64(uint64(len(name)))...)
		buffer = append(buffer, name...)
		buffer = append(buffer, util.ToVarint64(uint64(len(packed)))...)
		buffer = append(buffer, packed...)
	}

	return merkle.NewDigest(buffer), nil
}
