// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockrecord

import (
	"github.com/bitmark-inc/rcengine/fault"
	"github.com/bitmark-inc/rcengine/merkle"
	"github.com/bitmark-inc/rcengine/transactionrecord"
	"github.com/bitmark-inc/rcengine/util"
)

// Block - a header and its transactions in canonical order
type Block struct {
	Header       Header                           `json:"header"`
	Digest       merkle.Digest                    `json:"digest"`
	Transactions []*transactionrecord.Transaction `json:"transactions"`
}

// New - assemble a block, filling in count and merkle root
func New(number uint64, previous merkle.Digest, timestamp uint64, txs []*transactionrecord.Transaction) (*Block, error) {
	if len(txs) > MaximumTransactions {
		return nil, fault.ErrTransactionCountOutOfRange
	}

	root, err := merkleRoot(txs)
	if nil != err {
		return nil, err
	}

	header := Header{
		Version:          Version,
		TransactionCount: uint16(len(txs)),
		Number:           number,
		PreviousBlock:    previous,
		MerkleRoot:       root,
		Timestamp:        timestamp,
	}

	return &Block{
		Header:       header,
		Digest:       header.Pack().Digest(),
		Transactions: txs,
	}, nil
}

// Pack - header followed by Varint64(length) prefixed transactions
func (block *Block) Pack() (PackedBlock, error) {
	packedHeader := block.Header.Pack()
	buffer := make(PackedBlock, 0, len(packedHeader)+256*len(block.Transactions))
	buffer = append(buffer, packedHeader[:]...)
	return packTransactions(buffer, block.Transactions)
}

// PackApplied - header, Varint64(count), then the transactions
//
// the transactions are those that were applied, which while producing
// may be fewer than the header counts, so the count is stored
func (block *Block) PackApplied() (PackedBlock, error) {
	packedHeader := block.Header.Pack()
	buffer := make(PackedBlock, 0, len(packedHeader)+8+256*len(block.Transactions))
	buffer = append(buffer, packedHeader[:]...)
	buffer = append(buffer, util.ToVarint64(uint64(len(block.Transactions)))...)
	return packTransactions(buffer, block.Transactions)
}

func packTransactions(buffer PackedBlock, txs []*transactionrecord.Transaction) (PackedBlock, error) {
	for _, tx := range txs {
		packed, err := tx.Pack()
		if nil != err {
			return nil, err
		}
		buffer = append(buffer, util.ToVarint64(uint64(len(packed)))...)
		buffer = append(buffer, packed...)
	}
	return buffer, nil
}

// ExtractBlock - unpack one block from the front of a []byte
//
// returns the block and the remaining data
func ExtractBlock(data []byte) (*Block, []byte, error) {
	header, digest, data, err := ExtractHeader(data)
	if nil != err {
		return nil, nil, err
	}

	txs, data, err := extractTransactions(data, int(header.TransactionCount))
	if nil != err {
		return nil, nil, err
	}

	root, err := merkleRoot(txs)
	if nil != err {
		return nil, nil, err
	}
	if root != header.MerkleRoot {
		return nil, nil, fault.ErrMerkleRootDoesNotMatch
	}

	block := &Block{
		Header:       *header,
		Digest:       digest,
		Transactions: txs,
	}
	return block, data, nil
}

// ExtractApplied - unpack the output of PackApplied
//
// the merkle root is not checked since rejected transactions are absent
func ExtractApplied(data []byte) (*Block, error) {
	header, digest, data, err := ExtractHeader(data)
	if nil != err {
		return nil, err
	}

	count, n := util.ClippedVarint64(data, 0, MaximumTransactions)
	if 0 == n {
		return nil, fault.ErrTransactionCountOutOfRange
	}

	txs, data, err := extractTransactions(data[n:], count)
	if nil != err {
		return nil, err
	}
	if 0 != len(data) {
		return nil, fault.ErrNotTransactionPack
	}

	block := &Block{
		Header:       *header,
		Digest:       digest,
		Transactions: txs,
	}
	return block, nil
}

func extractTransactions(data []byte, count int) ([]*transactionrecord.Transaction, []byte, error) {
	var txs []*transactionrecord.Transaction
	for i := 0; i < count; i += 1 {
		length, n := util.FromVarint64(data)
		if 0 == n || length > uint64(len(data)-n) {
			return nil, nil, fault.ErrTruncatedRecord
		}
		packed := transactionrecord.Packed(data[n : n+int(length)])
		tx, used, err := packed.UnpackTransaction()
		if nil != err {
			return nil, nil, err
		}
		if used != len(packed) {
			return nil, nil, fault.ErrNotTransactionPack
		}
		txs = append(txs, tx)
		data = data[n+int(length):]
	}
	return txs, data, nil
}

func merkleRoot(txs []*transactionrecord.Transaction) (merkle.Digest, error) {
	ids := make([]merkle.Digest, len(txs))
	for i, tx := range txs {
		id, err := tx.Id()
		if nil != err {
			return merkle.Digest{}, err
		}
		ids[i] = id
	}
	return merkle.Root(ids), nil
}
