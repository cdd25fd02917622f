// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package constants

import (
	"time"
)

// the time for fully consumed credit to regenerate
const (
	RegenerationTime = 15 * 24 * time.Hour
)

// RegenerationSeconds - RegenerationTime in the unit of ledger timestamps
const (
	RegenerationSeconds = int64(RegenerationTime / time.Second)
)

// the longest account name accepted in a transaction record
const (
	MaximumAccountNameLength = 16
)

// expiry of uncommitted entries held by the storage cache
const (
	CacheTimeout    = 1 * time.Minute
	CacheExpiration = 2 * time.Minute
)
