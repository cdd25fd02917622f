// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockrecord

import (
	"github.com/bitmark-inc/rcengine/fault"
)

// ValidSuccessor - header must directly follow previous
//
// number is one more, the link is the previous digest and time does
// not go backwards
func ValidSuccessor(previous *Block, header *Header) error {
	if header.Number != previous.Header.Number+1 {
		return fault.ErrBlockNotSequential
	}
	if header.PreviousBlock != previous.Digest {
		return fault.ErrPreviousBlockDigestDoesNotMatch
	}
	if header.Timestamp < previous.Header.Timestamp {
		return fault.ErrClockRegression
	}
	return nil
}
