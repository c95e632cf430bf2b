package flow

import (
	"fmt"

	"github.com/onflow/flow-signer/model/fingerprint"
)

// SignedEnvelope is a canonical payload together with every signature the
// network requires to accept it.
//
// Signatures are sorted by signer index, then key index.
//
//structwrite:immutable - mutations allowed only within the constructor
type SignedEnvelope struct {
	Payload *CanonicalPayload

	// List of account signatures excluding signature of the payer account
	PayloadSignatures []TransactionSignature

	// payer signature over the envelope (payload + payload signatures)
	EnvelopeSignatures []TransactionSignature
}

// UntrustedSignedEnvelope is an untrusted input-only representation of a SignedEnvelope,
// used for construction.
//
// An instance of UntrustedSignedEnvelope should be validated and converted into
// a trusted SignedEnvelope using NewSignedEnvelope constructor.
type UntrustedSignedEnvelope SignedEnvelope

// NewSignedEnvelope creates a new instance of SignedEnvelope.
// Construction of SignedEnvelope is allowed only within the constructor.
//
// The constructor checks that every signature belongs to a signer of the
// payload and carries that signer's index. Whether the set of signatures is
// complete is decided by the assembler.
//
// All errors indicate a valid SignedEnvelope cannot be constructed from the input.
func NewSignedEnvelope(untrusted UntrustedSignedEnvelope) (*SignedEnvelope, error) {
	if untrusted.Payload == nil {
		return nil, fmt.Errorf("payload must not be nil")
	}
	if len(untrusted.EnvelopeSignatures) == 0 {
		return nil, fmt.Errorf("envelope signatures must not be empty")
	}

	signers := untrusted.Payload.Intent().SignerList()
	for _, sigs := range [][]TransactionSignature{untrusted.PayloadSignatures, untrusted.EnvelopeSignatures} {
		for _, sig := range sigs {
			if sig.SignerIndex < 0 || sig.SignerIndex >= len(signers) || signers[sig.SignerIndex] != sig.Address {
				return nil, fmt.Errorf("signature (%s) does not match the signer list", sig)
			}
			if len(sig.Signature) == 0 {
				return nil, fmt.Errorf("signature of %s must not be empty", sig.UniqueKeyString())
			}
		}
	}

	return &SignedEnvelope{
		Payload:            untrusted.Payload,
		PayloadSignatures:  SortSignatures(untrusted.PayloadSignatures),
		EnvelopeSignatures: SortSignatures(untrusted.EnvelopeSignatures),
	}, nil
}

func (e *SignedEnvelope) Fingerprint() []byte {
	return fingerprint.Fingerprint(transactionCanonicalForm{
		Payload:            e.Payload.form,
		PayloadSignatures:  signaturesList(e.PayloadSignatures).canonicalForm(),
		EnvelopeSignatures: signaturesList(e.EnvelopeSignatures).canonicalForm(),
	})
}

// Encode returns the encoded transaction as accepted by the network.
func (e *SignedEnvelope) Encode() []byte {
	return e.Fingerprint()
}

// ID returns the transaction ID, the SHA3-256 hash of the encoded transaction.
func (e *SignedEnvelope) ID() Identifier {
	return MakeID(e)
}

// PayloadMessage returns the message signed by payload signers, without domain tag.
func (e *SignedEnvelope) PayloadMessage() []byte {
	return e.Payload.Message()
}

// EnvelopeMessage returns the message signed by the payer, without domain tag.
func (e *SignedEnvelope) EnvelopeMessage() []byte {
	return e.Payload.EnvelopeMessage(e.PayloadSignatures)
}

// ByteSize returns the size of the encoded transaction in bytes.
func (e *SignedEnvelope) ByteSize() uint {
	return uint(len(e.Encode()))
}

func (e *SignedEnvelope) String() string {
	return fmt.Sprintf("Transaction %v paid by %v (block %v)",
		e.ID(), e.Payload.Intent().Payer.Hex(), e.Payload.Intent().ReferenceBlockID)
}
