package encoder

import (
	"bytes"
	stdErrors "errors"
	"fmt"

	"github.com/hashicorp/go-multierror"

	"github.com/onflow/flow-signer/model/errors"
	"github.com/onflow/flow-signer/model/flow"
	"github.com/onflow/flow-signer/module/arguments"
)

// Limits bound the transactions an Encoder accepts. Zero values disable a limit.
type Limits struct {
	MaxGasLimit            uint64
	MaxTransactionByteSize uint64
	MaxArgumentCount       int
}

// Encoder produces the canonical payload of transaction intents for one chain.
//
// Encoders hold no mutable state and are safe for concurrent use.
type Encoder struct {
	chainID flow.ChainID
	limits  Limits
}

func New(chainID flow.ChainID, limits Limits) *Encoder {
	return &Encoder{
		chainID: chainID,
		limits:  limits,
	}
}

// NewIntent builds a transaction intent for the encoder's chain.
//
// Expected errors during normal operations:
//   - errors.EncodingError if the intent is malformed
func (e *Encoder) NewIntent(untrusted flow.UntrustedTransactionIntent) (*flow.TransactionIntent, error) {
	untrusted.ChainID = e.chainID
	intent, err := flow.NewTransactionIntent(untrusted)
	if err != nil {
		return nil, intentError(err)
	}
	return intent, nil
}

// Encode returns the canonical payload of intent.
//
// The output depends only on the logical fields of the intent: two intents
// with equal fields encode to identical bytes.
//
// Expected errors during normal operations:
//   - errors.EncodingError if an argument cannot be encoded as its declared
//     type or the transaction exceeds a limit
func (e *Encoder) Encode(intent *flow.TransactionIntent) (*flow.CanonicalPayload, error) {
	if intent == nil {
		return nil, errors.NewEncodingErrorf("", "intent must not be nil")
	}
	if intent.ChainID != e.chainID {
		return nil, errors.NewEncodingErrorf(flow.TransactionFieldChainID.String(), "intent for %s cannot be encoded for %s", intent.ChainID, e.chainID)
	}

	err := e.checkLimits(intent)
	if err != nil {
		return nil, err
	}

	args := make([][]byte, len(intent.Arguments))
	for i, arg := range intent.Arguments {
		args[i], err = arguments.Encode(arg, e.chainID)
		if err != nil {
			return nil, errors.EncodingError{Field: argumentField(i), Err: err}
		}
	}

	payload, err := flow.NewCanonicalPayload(intent, args)
	if err != nil {
		return nil, errors.NewEncodingErrorf("", "could not encode payload: %w", err)
	}

	if e.limits.MaxTransactionByteSize > 0 && uint64(payload.ByteSize()) > e.limits.MaxTransactionByteSize {
		return nil, errors.NewEncodingErrorf("", "encoded payload is %d bytes, maximum is %d", payload.ByteSize(), e.limits.MaxTransactionByteSize)
	}

	return payload, nil
}

// Decode parses an encoded payload. Re-encoding the result yields b.
//
// Arguments must be in the form Encode produces them: a payload whose
// arguments are valid JSON-Cadence but spelled differently is rejected.
//
// Expected errors during normal operations:
//   - errors.EncodingError if b is not the canonical encoding of a valid intent
func (e *Encoder) Decode(b []byte) (*flow.CanonicalPayload, error) {
	decoded, err := flow.DecodePayload(b)
	if err != nil {
		return nil, errors.NewEncodingErrorf("", "could not decode payload: %w", err)
	}

	args := make([]flow.Argument, len(decoded.Arguments))
	for i, encoded := range decoded.Arguments {
		args[i], err = arguments.Decode(encoded)
		if err != nil {
			return nil, errors.EncodingError{Field: argumentField(i), Err: err}
		}
	}

	intent, err := e.NewIntent(flow.UntrustedTransactionIntent{
		Script:           decoded.Script,
		Arguments:        args,
		ReferenceBlockID: decoded.ReferenceBlockID,
		GasLimit:         decoded.GasLimit,
		ProposalKey:      decoded.ProposalKey,
		Payer:            decoded.Payer,
		Authorizers:      decoded.Authorizers,
	})
	if err != nil {
		return nil, err
	}

	payload, err := e.Encode(intent)
	if err != nil {
		return nil, err
	}

	if !bytes.Equal(payload.Message(), b) {
		return nil, errors.NewEncodingErrorf("", "payload is not canonically encoded")
	}

	return payload, nil
}

func (e *Encoder) checkLimits(intent *flow.TransactionIntent) error {
	if intent.GasLimit == 0 {
		return errors.NewEncodingErrorf(flow.TransactionFieldGasLimit.String(), "gas limit must be positive")
	}
	if e.limits.MaxGasLimit > 0 && intent.GasLimit > e.limits.MaxGasLimit {
		return errors.NewEncodingErrorf(flow.TransactionFieldGasLimit.String(), "gas limit %d exceeds maximum %d", intent.GasLimit, e.limits.MaxGasLimit)
	}
	if e.limits.MaxArgumentCount > 0 && len(intent.Arguments) > e.limits.MaxArgumentCount {
		return errors.NewEncodingErrorf(flow.TransactionFieldArguments.String(), "%d arguments exceed maximum %d", len(intent.Arguments), e.limits.MaxArgumentCount)
	}
	return nil
}

func argumentField(i int) string {
	return fmt.Sprintf("%s[%d]", flow.TransactionFieldArguments, i)
}

// intentError converts intent construction errors into an EncodingError,
// naming the field when exactly one field is invalid.
func intentError(err error) error {
	field := ""

	var merr *multierror.Error
	if stdErrors.As(err, &merr) && len(merr.Errors) == 1 {
		var fieldErr flow.InvalidFieldError
		if stdErrors.As(merr.Errors[0], &fieldErr) {
			field = fieldErr.Field.String()
		}
	}

	return errors.EncodingError{Field: field, Err: err}
}
