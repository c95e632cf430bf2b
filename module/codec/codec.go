package codec

import (
	"bytes"

	"github.com/onflow/flow-signer/access"
	"github.com/onflow/flow-signer/model/errors"
	"github.com/onflow/flow-signer/model/flow"
	"github.com/onflow/flow-signer/model/signing"
	"github.com/onflow/flow-signer/module/assembler"
	"github.com/onflow/flow-signer/module/encoder"
)

// Codec converts signed envelopes to signing outputs and decodes encoded
// transactions of one chain.
type Codec struct {
	encoder   *encoder.Encoder
	validator *access.TransactionValidator
}

func New(encoder *encoder.Encoder, validator *access.TransactionValidator) *Codec {
	return &Codec{
		encoder:   encoder,
		validator: validator,
	}
}

// ToOutput returns the output of a signing request that ended with envelope
// and err.
//
// A non-nil err always produces an output with empty bytes and the error's
// code. The envelope is validated again before its bytes are exposed: an
// envelope that does not pass is reported as failed.
func (c *Codec) ToOutput(envelope *flow.SignedEnvelope, err error) signing.SigningOutput {
	if err != nil {
		return Failure(err)
	}
	if envelope == nil {
		return Failure(errors.NewInternalFaultf("signing finished without an envelope"))
	}

	err = c.validator.Validate(envelope)
	if err != nil {
		return Failure(err)
	}

	return signing.SigningOutput{
		Encoded:       envelope.Encode(),
		TransactionID: envelope.ID().String(),
		ErrorCode:     errors.ErrCodeNone,
	}
}

// Failure returns the output of a request that failed with err.
func Failure(err error) signing.SigningOutput {
	code, msg := errors.SplitErrorCode(err)
	if code == errors.ErrCodeNone {
		code, msg = errors.ErrCodeInternalFault, "request failed without an error"
	}
	return signing.SigningOutput{
		ErrorCode:    code,
		ErrorMessage: msg,
	}
}

// DecodeTransaction parses an encoded transaction. Encoding the result
// yields encoded.
//
// Expected errors during normal operations:
//   - errors.EncodingError if encoded is not a canonical transaction of the chain
//   - errors.IncompleteAuthorizationError if a required signature is missing
//   - errors.InternalFault if the signatures are inconsistent
func (c *Codec) DecodeTransaction(encoded []byte) (*flow.SignedEnvelope, error) {
	decoded, err := flow.DecodeTransaction(encoded)
	if err != nil {
		return nil, errors.NewEncodingErrorf("", "could not decode transaction: %w", err)
	}

	payload, err := c.encoder.Decode(decoded.Payload)
	if err != nil {
		return nil, err
	}

	signers := payload.Intent().SignerList()
	resolve := func(sigs []flow.TransactionSignature) ([]flow.TransactionSignature, error) {
		for i := range sigs {
			if sigs[i].SignerIndex >= len(signers) {
				return nil, errors.NewEncodingErrorf("", "signer index %d is out of range, transaction has %d signers", sigs[i].SignerIndex, len(signers))
			}
			sigs[i].Address = signers[sigs[i].SignerIndex]
		}
		return sigs, nil
	}

	payloadSigs, err := resolve(decoded.PayloadSignatures)
	if err != nil {
		return nil, err
	}
	envelopeSigs, err := resolve(decoded.EnvelopeSignatures)
	if err != nil {
		return nil, err
	}

	envelope, err := assembler.Assemble(payload, payloadSigs, envelopeSigs)
	if err != nil {
		return nil, err
	}

	err = c.validator.Validate(envelope)
	if err != nil {
		return nil, err
	}

	if !bytes.Equal(envelope.Encode(), encoded) {
		return nil, errors.NewEncodingErrorf("", "transaction is not canonically encoded")
	}

	return envelope, nil
}
