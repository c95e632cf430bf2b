package errors

import "fmt"

type ErrorCode uint16

func (ec ErrorCode) String() string {
	switch ec {
	case ErrCodeNone:
		return "None"
	case ErrCodeEncodingError:
		return "EncodingError"
	case ErrCodeSigningError:
		return "SigningError"
	case ErrCodeIncompleteAuthorizationError:
		return "IncompleteAuthorizationError"
	case ErrCodeInternalFault:
		return "InternalFault"
	}
	return fmt.Sprintf("[Error Code: %d]", uint16(ec))
}

const (
	// ErrCodeNone is reported by successful signing requests.
	ErrCodeNone ErrorCode = 0

	// input errors 1 - 49
	ErrCodeEncodingError ErrorCode = 1

	// key and signature errors 50 - 99
	ErrCodeSigningError                 ErrorCode = 50
	ErrCodeIncompleteAuthorizationError ErrorCode = 51

	// invariant violations 100+
	ErrCodeInternalFault ErrorCode = 100
)

// SigningFailureReason qualifies a SigningError.
type SigningFailureReason int

const (
	ReasonUnknown SigningFailureReason = iota
	// ReasonKeyUnavailable indicates the key handle is missing or could not produce a signature.
	ReasonKeyUnavailable
	// ReasonCurveMismatch indicates the key handle's curve or hash does not match what the account key requires.
	ReasonCurveMismatch
	// ReasonInternalFault indicates the handle produced a malformed or non-verifying signature.
	ReasonInternalFault
)

func (r SigningFailureReason) String() string {
	switch r {
	case ReasonKeyUnavailable:
		return "KeyUnavailable"
	case ReasonCurveMismatch:
		return "CurveMismatch"
	case ReasonInternalFault:
		return "InternalFault"
	}
	return "Unknown"
}
