// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package curve

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/rcengine/resource"
)

func TestDenominatorClamp(t *testing.T) {
	p := resource.CurveParams{CoeffA: 1, CoeffB: 100}

	tests := []struct {
		pool int64
		d    uint64
	}{
		{0, 100},
		{25, 125},
		{-25, 75},
		{-99, 1},
		{-100, 1},
		{-150, 1},
		{math.MinInt64, 1},
		{math.MaxInt64, 100 + math.MaxInt64},
	}

	for _, item := range tests {
		d := denominator(p, item.pool)
		assert.True(t, d.IsUint64(), "pool: %d", item.pool)
		assert.Equal(t, item.d, d.Uint64(), "pool: %d", item.pool)
	}
}

func TestMagnitude(t *testing.T) {
	assert.Equal(t, uint64(1), magnitude(-1))
	assert.Equal(t, uint64(150), magnitude(-150))
	assert.Equal(t, uint64(1)<<63, magnitude(math.MinInt64))
}
