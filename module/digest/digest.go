package digest

import (
	"fmt"

	"github.com/onflow/crypto/hash"

	"github.com/onflow/flow-signer/crypto"
	"github.com/onflow/flow-signer/model/encoding"
	"github.com/onflow/flow-signer/model/errors"
	"github.com/onflow/flow-signer/model/flow"
)

// Role is the part of a transaction a signature commits to.
type Role int

const (
	RoleUnknown Role = iota
	// RolePayload signatures cover the payload. They are produced by the
	// proposer and the authorizers other than the payer.
	RolePayload
	// RoleEnvelope signatures cover the payload and the payload signatures.
	// They are produced by the payer.
	RoleEnvelope
)

func (r Role) String() string {
	switch r {
	case RolePayload:
		return "payload"
	case RoleEnvelope:
		return "envelope"
	}
	return "unknown"
}

// RoleOf returns the role in which address signs intent.
func RoleOf(intent *flow.TransactionIntent, address flow.Address) Role {
	if intent.IsPayer(address) {
		return RoleEnvelope
	}
	return RolePayload
}

// Digest is the domain tagged message signed in one role.
//
//structwrite:immutable - mutations allowed only within the constructor
type Digest struct {
	role    Role
	message []byte
}

func (d Digest) Role() Role {
	return d.role
}

// Message returns a copy of the domain tagged message.
func (d Digest) Message() []byte {
	message := make([]byte, len(d.message))
	copy(message, d.message)
	return message
}

// Hash hashes the message with the given account key hash algorithm.
func (d Digest) Hash(algo crypto.HashAlgorithm) (hash.Hash, error) {
	hasher, err := crypto.NewHasher(algo)
	if err != nil {
		return nil, err
	}
	return hasher.ComputeHash(d.message), nil
}

// Empty returns true for the zero Digest.
func (d Digest) Empty() bool {
	return len(d.message) == 0
}

// DigestFor returns the digest signed in role for payload.
//
// Envelope digests cover payloadSignatures, which must be payload signatures
// of payload. They are encoded sorted by signer index, then key index.
// payloadSignatures is ignored for RolePayload.
//
// The same domain tag prefixes both roles. The payload message is an RLP list
// of the nine payload fields and the envelope message an RLP list of two
// elements, so the messages of the two roles never coincide.
//
// Expected errors during normal operations:
//   - errors.InternalFault if the role is unknown or a signature does not
//     belong to a payload signer
func DigestFor(role Role, payload *flow.CanonicalPayload, payloadSignatures []flow.TransactionSignature) (Digest, error) {
	if payload == nil {
		return Digest{}, errors.NewInternalFaultf("payload must not be nil")
	}

	var body []byte
	switch role {
	case RolePayload:
		body = payload.Message()
	case RoleEnvelope:
		err := checkPayloadSignatures(payload.Intent(), payloadSignatures)
		if err != nil {
			return Digest{}, errors.InternalFault{Err: err}
		}
		body = payload.EnvelopeMessage(flow.SortSignatures(payloadSignatures))
	default:
		return Digest{}, errors.NewInternalFaultf("unknown signing role %d", role)
	}

	message := make([]byte, 0, encoding.DomainTagLength+len(body))
	message = append(message, encoding.TransactionDomainTag[:]...)
	message = append(message, body...)

	return Digest{
		role:    role,
		message: message,
	}, nil
}

func checkPayloadSignatures(intent *flow.TransactionIntent, sigs []flow.TransactionSignature) error {
	seen := make(map[string]struct{}, len(sigs))
	for _, sig := range sigs {
		index, ok := intent.SignerIndex(sig.Address)
		if !ok || index != sig.SignerIndex {
			return fmt.Errorf("signature (%s) does not belong to a signer", sig)
		}
		if intent.IsPayer(sig.Address) {
			return fmt.Errorf("payer %s cannot sign the payload", sig.Address)
		}
		key := sig.UniqueKeyString()
		if _, ok := seen[key]; ok {
			return fmt.Errorf("duplicate signature for key %s", key)
		}
		seen[key] = struct{}{}
	}
	return nil
}
