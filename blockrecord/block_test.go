// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockrecord_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitmark-inc/rcengine/blockrecord"
	"github.com/bitmark-inc/rcengine/chain"
	"github.com/bitmark-inc/rcengine/fault"
	"github.com/bitmark-inc/rcengine/merkle"
	"github.com/bitmark-inc/rcengine/transactionrecord"
)

func transfer(from string, to string, amount uint64) *transactionrecord.Transaction {
	return &transactionrecord.Transaction{
		Expiration: 1600000000,
		Operations: []transactionrecord.Operation{
			&transactionrecord.Transfer{From: from, To: to, Amount: amount},
		},
		Signatures: []transactionrecord.Signature{{0x55, 0xaa}},
	}
}

func makeBlocks(t *testing.T) []*blockrecord.Block {
	first, err := blockrecord.New(10, merkle.Digest{}, 1600000000, []*transactionrecord.Transaction{
		transfer("alice", "bob", 1),
		transfer("bob", "carol", 2),
		transfer("carol", "alice", 3),
	})
	require.Nil(t, err, "first block")

	second, err := blockrecord.New(11, first.Digest, 1600000003, nil)
	require.Nil(t, err, "second block")

	return []*blockrecord.Block{first, second}
}

func TestHeaderPackUnpack(t *testing.T) {
	h := blockrecord.Header{
		Version:          blockrecord.Version,
		TransactionCount: 3,
		Number:           0x0102030405060708,
		PreviousBlock:    merkle.NewDigest([]byte("previous")),
		MerkleRoot:       merkle.NewDigest([]byte("root")),
		Timestamp:        1600000000,
	}
	packed := h.Pack()
	assert.Equal(t, byte(0x08), packed[4], "number is not little endian")

	unpacked, err := packed.Unpack()
	assert.Nil(t, err)
	assert.Equal(t, h, *unpacked, "header changed")

	header, digest, rest, err := blockrecord.ExtractHeader(append(packed[:], 0xff))
	assert.Nil(t, err)
	assert.Equal(t, h, *header)
	assert.Equal(t, packed.Digest(), digest)
	assert.Equal(t, []byte{0xff}, rest)

	_, _, _, err = blockrecord.ExtractHeader(packed[:10])
	assert.Equal(t, fault.ErrInvalidBlockHeaderSize, err)

	h.Version = 9
	_, err = h.Pack().Unpack()
	assert.Equal(t, fault.ErrInvalidBlockHeaderVersion, err)
}

func TestBlockPackExtract(t *testing.T) {
	blocks := makeBlocks(t)

	for _, block := range blocks {
		packed, err := block.Pack()
		assert.Nil(t, err, "pack")

		extracted, rest, err := blockrecord.ExtractBlock(packed)
		assert.Nil(t, err, "extract")
		assert.Equal(t, 0, len(rest), "left over data")
		assert.Equal(t, block.Header, extracted.Header, "header changed")
		assert.Equal(t, block.Digest, extracted.Digest, "digest changed")
		assert.Equal(t, block.Transactions, extracted.Transactions, "transactions changed")
	}
}

func TestBlockMerkleMismatch(t *testing.T) {
	blocks := makeBlocks(t)
	block := blocks[0]
	block.Transactions[0], block.Transactions[1] = block.Transactions[1], block.Transactions[0]

	packed, err := block.Pack()
	require.Nil(t, err)

	_, _, err = blockrecord.ExtractBlock(packed)
	assert.Equal(t, fault.ErrMerkleRootDoesNotMatch, err)
}

func TestFile(t *testing.T) {
	blocks := makeBlocks(t)

	data, err := blockrecord.PackFile(chain.Testing, blocks)
	require.Nil(t, err)

	unpacked, err := blockrecord.UnpackFile(chain.Testing, data)
	assert.Nil(t, err)
	assert.Equal(t, 2, len(unpacked))
	assert.Equal(t, blocks[1].Digest, unpacked[1].Digest)

	_, err = blockrecord.UnpackFile(chain.Steem, data)
	assert.Equal(t, fault.ErrWrongNetworkForBlockFile, err)

	_, err = blockrecord.UnpackFile(chain.Testing, nil)
	assert.Equal(t, fault.ErrZeroLengthBlockFile, err)

	reversed, err := blockrecord.PackFile(chain.Testing, []*blockrecord.Block{blocks[1], blocks[0]})
	require.Nil(t, err)
	_, err = blockrecord.UnpackFile(chain.Testing, reversed)
	assert.Equal(t, fault.ErrBlockNotSequential, err)
}

func TestValidSuccessor(t *testing.T) {
	blocks := makeBlocks(t)
	assert.Nil(t, blockrecord.ValidSuccessor(blocks[0], &blocks[1].Header))

	h := blocks[1].Header
	h.PreviousBlock = merkle.Digest{}
	assert.Equal(t, fault.ErrPreviousBlockDigestDoesNotMatch, blockrecord.ValidSuccessor(blocks[0], &h))

	h = blocks[1].Header
	h.Timestamp = blocks[0].Header.Timestamp - 1
	assert.Equal(t, fault.ErrClockRegression, blockrecord.ValidSuccessor(blocks[0], &h))
}

func TestPackApplied(t *testing.T) {
	block := makeBlocks(t)[0]

	items := [][]*transactionrecord.Transaction{
		block.Transactions,
		block.Transactions[1:2],
		nil,
	}

	for i, txs := range items {
		applied := &blockrecord.Block{
			Header:       block.Header,
			Digest:       block.Digest,
			Transactions: txs,
		}
		packed, err := applied.PackApplied()
		require.Nil(t, err, "%d: pack", i)

		extracted, err := blockrecord.ExtractApplied(packed)
		assert.Nil(t, err, "%d: extract", i)
		assert.Equal(t, block.Header, extracted.Header, "%d: header changed", i)
		assert.Equal(t, block.Digest, extracted.Digest, "%d: digest changed", i)
		assert.Equal(t, txs, extracted.Transactions, "%d: transactions changed", i)

		_, err = blockrecord.ExtractApplied(append(packed, 0x00))
		assert.Equal(t, fault.ErrNotTransactionPack, err, "%d: trailing data", i)
	}

	header := block.Header.Pack()
	_, err := blockrecord.ExtractApplied(header[:])
	assert.Equal(t, fault.ErrTransactionCountOutOfRange, err, "missing count")
}
