// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockrecord

import (
	"encoding/binary"

	"github.com/bitmark-inc/rcengine/fault"
	"github.com/bitmark-inc/rcengine/merkle"
)

// PackedHeader - use fix size array to simplify validation
type PackedHeader [totalHeaderSize]byte

// PackedBlock - packed records are just a byte slice
type PackedBlock []byte

// currently supported block version
const (
	Version        = 1
	MinimumVersion = 1
)

// maximum transactions in a block
// limited by uint16 field
const (
	MaximumTransactions = 10000
)

// byte sizes for various fields
const (
	VersionSize          = 2                   // Block version number
	TransactionCountSize = 2                   // Count of transactions
	NumberSize           = 8                   // This block's number
	PreviousBlockSize    = merkle.DigestLength // SHA3 of the previous block header
	MerkleRootSize       = merkle.DigestLength // SHA3 merkle root of all transaction ids
	TimestampSize        = 8                   // seconds since 1970-01-01T00:00 UTC
)

// offsets of the fields
const (
	versionOffset          = 0
	transactionCountOffset = versionOffset + VersionSize
	numberOffset           = transactionCountOffset + TransactionCountSize
	previousBlockOffset    = numberOffset + NumberSize
	merkleRootOffset       = previousBlockOffset + PreviousBlockSize
	timestampOffset        = merkleRootOffset + MerkleRootSize

	// to set size of header array
	totalHeaderSize = timestampOffset + TimestampSize
)

// Header - the unpacked header structure
type Header struct {
	Version          uint16        `json:"version"`
	TransactionCount uint16        `json:"transactionCount"`
	Number           uint64        `json:"number,string"`
	PreviousBlock    merkle.Digest `json:"previousBlock"`
	MerkleRoot       merkle.Digest `json:"merkleRoot"`
	Timestamp        uint64        `json:"timestamp,string"`
}

// ExtractHeader - extract a header from the front of a []byte
//
// returns the header, its digest and the remaining data
func ExtractHeader(block []byte) (*Header, merkle.Digest, []byte, error) {
	if len(block) < totalHeaderSize {
		return nil, merkle.Digest{}, nil, fault.ErrInvalidBlockHeaderSize
	}
	packedHeader := PackedHeader{}
	copy(packedHeader[:], block[:totalHeaderSize])

	header, err := packedHeader.Unpack()
	if nil != err {
		return nil, merkle.Digest{}, nil, err
	}
	return header, packedHeader.Digest(), block[totalHeaderSize:], nil
}

// Unpack - turn a byte slice into a record
func (record PackedHeader) Unpack() (*Header, error) {

	header := &Header{}

	header.Version = binary.LittleEndian.Uint16(record[versionOffset:])
	header.TransactionCount = binary.LittleEndian.Uint16(record[transactionCountOffset:])
	header.Number = binary.LittleEndian.Uint64(record[numberOffset:])

	if header.Version < MinimumVersion || header.Version > Version {
		return nil, fault.ErrInvalidBlockHeaderVersion
	}
	if header.TransactionCount > MaximumTransactions {
		return nil, fault.ErrTransactionCountOutOfRange
	}

	err := merkle.DigestFromBytes(&header.PreviousBlock, record[previousBlockOffset:merkleRootOffset])
	if nil != err {
		return nil, err
	}

	err = merkle.DigestFromBytes(&header.MerkleRoot, record[merkleRootOffset:timestampOffset])
	if nil != err {
		return nil, err
	}

	header.Timestamp = binary.LittleEndian.Uint64(record[timestampOffset:])

	return header, nil
}

// Digest - digest for a packed header
func (record PackedHeader) Digest() merkle.Digest {
	return merkle.NewDigest(record[:])
}

// Pack - turn a record into an array of bytes
func (header *Header) Pack() PackedHeader {
	buffer := PackedHeader{}

	binary.LittleEndian.PutUint16(buffer[versionOffset:], header.Version)
	binary.LittleEndian.PutUint16(buffer[transactionCountOffset:], header.TransactionCount)
	binary.LittleEndian.PutUint64(buffer[numberOffset:], header.Number)

	copy(buffer[previousBlockOffset:], header.PreviousBlock[:])
	copy(buffer[merkleRootOffset:], header.MerkleRoot[:])

	binary.LittleEndian.PutUint64(buffer[timestampOffset:], header.Timestamp)

	return buffer
}
