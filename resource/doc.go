// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package resource - the metered resource types and their parameters
//
// Arrays indexed by Type are positional: the persisted layout of usage
// vectors, pool levels and parameter sets depends on the order of the
// constants below and it must never change.
package resource
