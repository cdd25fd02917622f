// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault

import (
	"fmt"
)

// GenericError - error base
type GenericError string

// to allow for different classes of errors
type ExistsError GenericError
type FatalError GenericError
type InvalidError GenericError
type NotFoundError GenericError
type ProcessError GenericError
type RecordError GenericError

// common errors - keep in alphabetic order
var (
	ErrAccountNotFound                 = NotFoundError("account not found")
	ErrAlreadyInitialised              = ExistsError("already initialised")
	ErrBlockNotSequential              = InvalidError("block number is not sequential")
	ErrClockRegression                 = FatalError("clock moved backwards")
	ErrCurveOverflow                   = FatalError("resource credit arithmetic overflow")
	ErrDatabaseVersion                 = FatalError("incompatible database version")
	ErrDuplicateAccount                = ExistsError("duplicate account")
	ErrFieldTooLong                    = InvalidError("field too long")
	ErrInsufficientStake               = InvalidError("insufficient stake")
	ErrInvalidAccountName              = InvalidError("invalid account name")
	ErrInvalidBlockHeaderSize          = RecordError("invalid block header size")
	ErrInvalidBlockHeaderVersion       = RecordError("invalid block header version")
	ErrInvalidChain                    = InvalidError("invalid chain")
	ErrInvalidConfiguration            = InvalidError("invalid configuration")
	ErrInvalidCurveParameters          = InvalidError("invalid curve parameters")
	ErrInvalidDecayParameters          = InvalidError("invalid decay parameters")
	ErrInvalidGeneratorInput           = InvalidError("invalid parameter generator input")
	ErrInvalidLoggerChannel            = InvalidError("invalid logger channel")
	ErrInvalidModeTransition           = InvalidError("invalid mode transition")
	ErrInvalidPrice                    = InvalidError("invalid stake price")
	ErrInvalidResourceType             = InvalidError("invalid resource type")
	ErrInvalidResourceUnit             = InvalidError("invalid resource unit")
	ErrInvalidStructPointer            = InvalidError("invalid struct pointer")
	ErrInvalidTimeUnit                 = InvalidError("invalid time unit")
	ErrInvalidVoteWeight               = InvalidError("invalid vote weight")
	ErrMerkleRootDoesNotMatch          = RecordError("merkle root does not match")
	ErrMissingParameters               = NotFoundError("resource parameters not found")
	ErrMissingPool                     = NotFoundError("resource pool not found")
	ErrNameTooLong                     = InvalidError("account name too long")
	ErrNoTransactionInProgress         = ProcessError("no database transaction in progress")
	ErrNotDigest                       = RecordError("not a digest")
	ErrNotInitialised                  = NotFoundError("not initialised")
	ErrNotTransactionPack              = RecordError("not a transaction pack")
	ErrPreviousBlockDigestDoesNotMatch = InvalidError("previous block digest does not match")
	ErrSpoolDirectoryNotADirectory     = InvalidError("spool path is not a directory")
	ErrStakeOverflow                   = InvalidError("stake overflow")
	ErrTransactionAlreadyInUse         = ProcessError("database transaction already in use")
	ErrTransactionCountOutOfRange      = RecordError("transaction count out of range")
	ErrTransactionHasNoOperations      = RecordError("transaction has no operations")
	ErrTruncatedRecord                 = RecordError("truncated record")
	ErrUnknownOperation                = RecordError("unknown operation")
	ErrUnsupportedRecordVersion        = RecordError("unsupported record version")
	ErrWrongNetworkForBlockFile        = InvalidError("block file is for a different chain")
	ErrZeroLengthBlockFile             = InvalidError("block file is empty")
)

// the error interface base method
func (e GenericError) Error() string { return string(e) }

// the error interface methods
func (e ExistsError) Error() string   { return string(e) }
func (e FatalError) Error() string    { return string(e) }
func (e InvalidError) Error() string  { return string(e) }
func (e NotFoundError) Error() string { return string(e) }
func (e ProcessError) Error() string  { return string(e) }
func (e RecordError) Error() string   { return string(e) }

// determine the class of an error
func IsErrExists(e error) bool   { _, ok := e.(ExistsError); return ok }
func IsErrFatal(e error) bool    { _, ok := e.(FatalError); return ok }
func IsErrInvalid(e error) bool  { _, ok := e.(InvalidError); return ok }
func IsErrNotFound(e error) bool { _, ok := e.(NotFoundError); return ok }
func IsErrProcess(e error) bool  { _, ok := e.(ProcessError); return ok }
func IsErrRecord(e error) bool   { _, ok := e.(RecordError); return ok }

// InsufficientCredit - rejection of a transaction from a block being
// produced because the paying account cannot cover the cost
type InsufficientCredit struct {
	Account     string
	Cost        int64
	Available   int64
	MaxCapacity int64
}

// Error - the error interface
func (e *InsufficientCredit) Error() string {
	return fmt.Sprintf("account: %s needs %d RC, but has %d / %d RC", e.Account, e.Cost, e.Available, e.MaxCapacity)
}

// IsErrInsufficientCredit - true if the error is a credit rejection
func IsErrInsufficientCredit(e error) bool {
	_, ok := e.(*InsufficientCredit)
	return ok
}
