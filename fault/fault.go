// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault

// GenericError - error base
type GenericError string

// to allow for different classes of errors
type ExistsError GenericError
type InvalidError GenericError
type LengthError GenericError
type NotFoundError GenericError
type PermissionError GenericError
type ProcessError GenericError
type RecordError GenericError

// common errors - keep in alphabetic order
var (
	AlreadyInitialised                = ExistsError("already initialised")
	BlockAuthorizationCapacityReached = LengthError("block authorization capacity reached")
	BlockNotFound                     = NotFoundError("block not found")
	BlockNotOpen                      = ProcessError("block is not open")
	BlockOutOfSequence                = InvalidError("block out of sequence")
	CannotDecodeAccount               = InvalidError("cannot decode account")
	CannotDecodeSeed                  = InvalidError("cannot decode seed")
	CertificateFileAlreadyExists      = ExistsError("certificate file already exists")
	ChecksumMismatch                  = InvalidError("checksum mismatch")
	ConfigurationFileNotFound         = NotFoundError("configuration file not found")
	DatabaseIsNotSet                  = ProcessError("database is not set")
	EmptyTransaction                  = LengthError("empty transaction")
	IncompatibleDatabaseVersion       = InvalidError("incompatible database version")
	InsufficientAuthorization         = PermissionError("insufficient authorization")
	InvalidAuthorizationAmount        = InvalidError("invalid authorization amount")
	InvalidChain                      = InvalidError("invalid chain")
	InvalidChunkIndex                 = InvalidError("invalid chunk index")
	InvalidChunkSize                  = InvalidError("invalid chunk size")
	InvalidCount                      = InvalidError("invalid count")
	InvalidCursor                     = InvalidError("invalid cursor")
	InvalidDigest                     = InvalidError("invalid digest")
	InvalidExpiry                     = InvalidError("invalid expiry")
	InvalidIpAddress                  = InvalidError("invalid IP address")
	InvalidKeyLength                  = LengthError("invalid key length")
	InvalidKeyType                    = InvalidError("invalid key type")
	InvalidParameters                 = InvalidError("invalid parameters")
	InvalidPrivateKey                 = InvalidError("invalid private key")
	InvalidProof                      = InvalidError("invalid proof")
	InvalidPublicKey                  = InvalidError("invalid public key")
	InvalidRecordReference            = InvalidError("invalid record reference")
	InvalidSeedHeader                 = InvalidError("invalid seed header")
	InvalidStructPointer              = InvalidError("invalid struct pointer")
	InvalidSignature                  = InvalidError("invalid signature")
	InvalidTimestamp                  = InvalidError("invalid timestamp")
	MissingParameters                 = InvalidError("missing parameters")
	NoConfigurationTable              = InvalidError("configuration did not return a table")
	NotInitialised                    = NotFoundError("not initialised")
	NotPrivateKey                     = InvalidError("not a private key")
	NotPublicKey                      = InvalidError("not a public key")
	NotTransactionPack                = RecordError("not transaction pack")
	RateLimiting                      = ProcessError("rate limiting")
	RecordNotFound                    = NotFoundError("record not found")
	TooManyTransactions               = LengthError("too many transactions")
	TransactionTooLarge               = LengthError("transaction too large")
	Unauthorized                      = PermissionError("unauthorized")
	UnexpectedProof                   = ProcessError("unexpected proof")
	UnknownRecordTag                  = RecordError("unknown record tag")
	WrongNetworkForPublicKey          = InvalidError("wrong network for public key")
	TransactionInProgress             = ProcessError("transaction already in progress")
	TransactionNotInProgress          = ProcessError("transaction not in progress")
)

// the error interface base method
func (e GenericError) Error() string { return string(e) }

// the error interface methods
func (e ExistsError) Error() string     { return string(e) }
func (e InvalidError) Error() string    { return string(e) }
func (e LengthError) Error() string     { return string(e) }
func (e NotFoundError) Error() string   { return string(e) }
func (e PermissionError) Error() string { return string(e) }
func (e ProcessError) Error() string    { return string(e) }
func (e RecordError) Error() string     { return string(e) }

// determine the class of an error
func IsErrExists(e error) bool     { _, ok := e.(ExistsError); return ok }
func IsErrInvalid(e error) bool    { _, ok := e.(InvalidError); return ok }
func IsErrLength(e error) bool     { _, ok := e.(LengthError); return ok }
func IsErrNotFound(e error) bool   { _, ok := e.(NotFoundError); return ok }
func IsErrPermission(e error) bool { _, ok := e.(PermissionError); return ok }
func IsErrProcess(e error) bool    { _, ok := e.(ProcessError); return ok }
func IsErrRecord(e error) bool     { _, ok := e.(RecordError); return ok }
