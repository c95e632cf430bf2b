package errors

import (
	stdErrors "errors"
	"fmt"
	"strings"

	"github.com/onflow/flow-signer/model/flow"
)

// CodedError is implemented by every error the signing pipeline reports to callers.
type CodedError interface {
	Code() ErrorCode
	error
}

// EncodingError indicates that a transaction intent is malformed or that one of
// its fields cannot be represented canonically. This error is the result of
// failure in any of the following conditions:
// - a required field is missing or an address is not valid for the chain
// - an argument value exceeds the canonical size limit of its declared type
// - the encoded transaction exceeds the configured byte size or gas limit
// - encoded bytes handed to a decoder are not a canonical encoding
type EncodingError struct {
	Field string
	Err   error
}

// NewEncodingErrorf constructs an EncodingError for the given field.
func NewEncodingErrorf(field string, msg string, args ...interface{}) EncodingError {
	return EncodingError{
		Field: field,
		Err:   fmt.Errorf(msg, args...),
	}
}

func (e EncodingError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%s could not encode transaction: %s", e.Code(), e.Err)
	}
	return fmt.Sprintf("%s could not encode transaction field %s: %s", e.Code(), e.Field, e.Err)
}

// Code returns the error code for this error type
func (e EncodingError) Code() ErrorCode {
	return ErrCodeEncodingError
}

// Unwrap unwraps the error
func (e EncodingError) Unwrap() error {
	return e.Err
}

// SigningError indicates that a key handle could not produce a valid signature.
type SigningError struct {
	Reason SigningFailureReason
	KeyID  string
	Err    error
}

// NewSigningErrorf constructs a SigningError for the key handle with the given ID.
func NewSigningErrorf(reason SigningFailureReason, keyID string, msg string, args ...interface{}) SigningError {
	return SigningError{
		Reason: reason,
		KeyID:  keyID,
		Err:    fmt.Errorf(msg, args...),
	}
}

func (e SigningError) Error() string {
	return fmt.Sprintf("%s signing with key %q failed (%s): %s", e.Code(), e.KeyID, e.Reason, e.Err)
}

// Code returns the error code for this error type
func (e SigningError) Code() ErrorCode {
	return ErrCodeSigningError
}

// Unwrap unwraps the error
func (e SigningError) Unwrap() error {
	return e.Err
}

// MissingAuthorization names a signature the network requires but that was not supplied.
type MissingAuthorization struct {
	Address flow.Address
	Role    string
	// KeyIndex is only set for the proposal key, every other role accepts any key of the account.
	KeyIndex *uint32
}

func (m MissingAuthorization) String() string {
	if m.KeyIndex != nil {
		return fmt.Sprintf("%s %s (key %d)", m.Role, m.Address.Hex(), *m.KeyIndex)
	}
	return fmt.Sprintf("%s %s", m.Role, m.Address.Hex())
}

// IncompleteAuthorizationError indicates that a declared authorizer, the payer or
// the proposer has no corresponding signature slot.
type IncompleteAuthorizationError struct {
	Missing []MissingAuthorization
}

func (e IncompleteAuthorizationError) Error() string {
	missing := make([]string, 0, len(e.Missing))
	for _, m := range e.Missing {
		missing = append(missing, m.String())
	}
	return fmt.Sprintf("%s transaction is missing signatures: %s", e.Code(), strings.Join(missing, ", "))
}

// Code returns the error code for this error type
func (e IncompleteAuthorizationError) Code() ErrorCode {
	return ErrCodeIncompleteAuthorizationError
}

// InternalFault indicates an unexpected invariant violation, such as two
// signature slots for the same account key.
type InternalFault struct {
	Err error
}

// NewInternalFaultf constructs an InternalFault.
func NewInternalFaultf(msg string, args ...interface{}) InternalFault {
	return InternalFault{Err: fmt.Errorf(msg, args...)}
}

func (e InternalFault) Error() string {
	return fmt.Sprintf("%s internal fault: %s", e.Code(), e.Err)
}

// Code returns the error code for this error type
func (e InternalFault) Code() ErrorCode {
	return ErrCodeInternalFault
}

// Unwrap unwraps the error
func (e InternalFault) Unwrap() error {
	return e.Err
}

// Code returns the code of the shallowest CodedError in the chain of err.
// Errors that carry no code are unexpected and classify as ErrCodeInternalFault.
func Code(err error) ErrorCode {
	if err == nil {
		return ErrCodeNone
	}
	var coded CodedError
	if stdErrors.As(err, &coded) {
		return coded.Code()
	}
	return ErrCodeInternalFault
}

// SplitErrorCode returns the error code of err together with the message
// reported to callers.
func SplitErrorCode(err error) (ErrorCode, string) {
	if err == nil {
		return ErrCodeNone, ""
	}
	return Code(err), err.Error()
}

// HasErrorCode returns true if any CodedError in the chain of err has the given code.
func HasErrorCode(err error, code ErrorCode) bool {
	for err != nil {
		if coded, ok := err.(CodedError); ok && coded.Code() == code {
			return true
		}
		err = stdErrors.Unwrap(err)
	}
	return false
}

func IsEncodingError(err error) bool {
	return HasErrorCode(err, ErrCodeEncodingError)
}

func IsSigningError(err error) bool {
	return HasErrorCode(err, ErrCodeSigningError)
}

func IsIncompleteAuthorizationError(err error) bool {
	return HasErrorCode(err, ErrCodeIncompleteAuthorizationError)
}

func IsInternalFault(err error) bool {
	return HasErrorCode(err, ErrCodeInternalFault)
}

// SigningFailure returns the reason of the first SigningError in the chain of err.
func SigningFailure(err error) (SigningFailureReason, bool) {
	var signingErr SigningError
	if stdErrors.As(err, &signingErr) {
		return signingErr.Reason, true
	}
	return ReasonUnknown, false
}
