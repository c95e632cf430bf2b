package module

import (
	"context"

	"github.com/onflow/flow-signer/crypto"
	"github.com/onflow/flow-signer/model/flow"
	"github.com/onflow/flow-signer/model/signing"
	"github.com/onflow/flow-signer/module/digest"
)

// Network is the capability set of a chain sharing the Flow transaction
// format. Each chain provides its own implementation, selected per request.
type Network interface {
	// ChainID returns the chain the network signs for.
	ChainID() flow.ChainID

	// Chain returns the address rules of the network.
	Chain() *flow.Chain

	// NewIntent validates an intent against the network's rules.
	NewIntent(untrusted flow.UntrustedTransactionIntent) (*flow.TransactionIntent, error)

	// Encode returns the canonical payload of intent.
	Encode(intent *flow.TransactionIntent) (*flow.CanonicalPayload, error)

	// DigestFor returns the digest signed in role.
	DigestFor(role digest.Role, payload *flow.CanonicalPayload, payloadSignatures []flow.TransactionSignature) (digest.Digest, error)

	// Sign signs d with key.
	Sign(ctx context.Context, d digest.Digest, key crypto.KeyHandle) ([]byte, error)

	// Assemble combines payload and signatures into a complete envelope.
	Assemble(payload *flow.CanonicalPayload, payloadSignatures []flow.TransactionSignature, envelopeSignatures []flow.TransactionSignature) (*flow.SignedEnvelope, error)

	// Output returns the signing output of envelope, validating it again.
	Output(envelope *flow.SignedEnvelope) signing.SigningOutput

	// DecodeTransaction parses an encoded transaction of the network.
	DecodeTransaction(encoded []byte) (*flow.SignedEnvelope, error)
}
