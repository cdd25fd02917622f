// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package transactionrecord

import (
	"encoding/hex"

	"github.com/bitmark-inc/rcengine/fault"
	"github.com/bitmark-inc/rcengine/merkle"
	"github.com/bitmark-inc/rcengine/util"
)

// Signature - opaque signature bytes, verified by the host ledger
type Signature []byte

// Transaction - an ordered list of operations with their signatures
type Transaction struct {
	RefBlockNumber uint16      `json:"ref_block_num"`
	RefBlockPrefix uint32      `json:"ref_block_prefix"`
	Expiration     uint64      `json:"expiration"` // seconds since epoch
	Operations     []Operation `json:"operations"`
	Signatures     []Signature `json:"signatures"`
}

// Pack - serialise a transaction
//
// Pack Varint64 header fields, Varint64(count) and each packed
// operation, then Varint64(count) and each length prefixed signature
func (tx *Transaction) Pack() (Packed, error) {
	if 0 == len(tx.Operations) {
		return nil, fault.ErrTransactionHasNoOperations
	}
	if len(tx.Operations) > maxOperations || len(tx.Signatures) > maxSignatures {
		return nil, fault.ErrNotTransactionPack
	}

	message := util.ToVarint64(uint64(tx.RefBlockNumber))
	message = appendUint64(message, uint64(tx.RefBlockPrefix))
	message = appendUint64(message, tx.Expiration)
	message = appendUint64(message, uint64(len(tx.Operations)))

	for _, op := range tx.Operations {
		packed, err := op.Pack()
		if nil != err {
			return nil, err
		}
		message = append(message, packed...)
	}

	message = appendUint64(message, uint64(len(tx.Signatures)))
	for _, signature := range tx.Signatures {
		if len(signature) > maxSignatureLength {
			return nil, fault.ErrNotTransactionPack
		}
		message = appendBytes(message, signature)
	}
	return message, nil
}

// Size - number of bytes in the serialised transaction
func (tx *Transaction) Size() (int64, error) {
	packed, err := tx.Pack()
	if nil != err {
		return 0, err
	}
	return int64(len(packed)), nil
}

// Id - digest of the serialised transaction
func (tx *Transaction) Id() (merkle.Digest, error) {
	packed, err := tx.Pack()
	if nil != err {
		return merkle.Digest{}, err
	}
	return packed.MakeLink(), nil
}

// ResourceUser - the account that pays for a transaction
//
// the first operation that needs any authority decides: its first
// active account, else its first owner account, else its first
// posting account
func (tx *Transaction) ResourceUser() (string, bool) {
	for _, op := range tx.Operations {
		a := op.Authorities()
		for _, list := range [][]string{a.Active, a.Owner, a.Posting} {
			if 0 != len(list) {
				return list[0], true
			}
		}
	}
	return "", false
}

// UnpackTransaction - turn a byte slice into a transaction
//
// also returns the number of bytes consumed
func (record Packed) UnpackTransaction() (*Transaction, int, error) {
	n := 0

	refNumber, count := util.FromVarint64(record[n:])
	if 0 == count || refNumber > 0xffff {
		return nil, 0, fault.ErrNotTransactionPack
	}
	n += count

	refPrefix, count := util.FromVarint64(record[n:])
	if 0 == count || refPrefix > 0xffffffff {
		return nil, 0, fault.ErrNotTransactionPack
	}
	n += count

	expiration, count := util.FromVarint64(record[n:])
	if 0 == count {
		return nil, 0, fault.ErrNotTransactionPack
	}
	n += count

	opCount, count := util.ClippedVarint64(record[n:], 1, maxOperations)
	if 0 == count {
		return nil, 0, fault.ErrNotTransactionPack
	}
	n += count

	tx := &Transaction{
		RefBlockNumber: uint16(refNumber),
		RefBlockPrefix: uint32(refPrefix),
		Expiration:     expiration,
		Operations:     make([]Operation, 0, opCount),
	}

	for i := 0; i < opCount; i += 1 {
		op, count, err := record[n:].Unpack()
		if nil != err {
			return nil, 0, err
		}
		n += count
		tx.Operations = append(tx.Operations, op)
	}

	signatureCount, count := util.ClippedVarint64(record[n:], 0, maxSignatures)
	if 0 == count {
		return nil, 0, fault.ErrNotTransactionPack
	}
	n += count

	for i := 0; i < signatureCount; i += 1 {
		length, count := util.ClippedVarint64(record[n:], 1, maxSignatureLength)
		if 0 == count || n+count+length > len(record) {
			return nil, 0, fault.ErrNotTransactionPack
		}
		n += count
		signature := make(Signature, length)
		copy(signature, record[n:n+length])
		n += length
		tx.Signatures = append(tx.Signatures, signature)
	}

	return tx, n, nil
}

// MarshalText - hex form for JSON
func (signature Signature) MarshalText() ([]byte, error) {
	b := make([]byte, hex.EncodedLen(len(signature)))
	hex.Encode(b, signature)
	return b, nil
}

// UnmarshalText - reverse of MarshalText
func (signature *Signature) UnmarshalText(s []byte) error {
	*signature = make([]byte, hex.DecodedLen(len(s)))
	_, err := hex.Decode(*signature, s)
	return err
}
