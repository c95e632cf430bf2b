package crypto

import (
	"context"
	"encoding/hex"
	"fmt"

	"github.com/onflow/crypto/hash"
)

// KeyHandle is a capability to sign with an account key.
//
// The private key never leaves the handle. Sign receives the full
// domain-tagged message and hashes it with HashAlgorithm before signing, the
// returned signature is the raw r||s form.
type KeyHandle interface {
	// ID identifies the key in logs and errors. It must not reveal key material.
	ID() string
	SignatureAlgorithm() SignatureAlgorithm
	HashAlgorithm() HashAlgorithm
	PublicKey() PublicKey
	Sign(ctx context.Context, message []byte) ([]byte, error)
}

// InMemoryKeyHandle signs with a private key held in process memory.
//
// ECDSA signatures produced by this handle are randomized: signing the same
// message twice yields different, equally valid signatures.
type InMemoryKeyHandle struct {
	id         string
	privateKey PrivateKey
	hashAlgo   HashAlgorithm
}

var _ KeyHandle = (*InMemoryKeyHandle)(nil)

// NewInMemoryKeyHandle returns a handle signing with privateKey and hashAlgo.
//
// Only ECDSA keys on P-256 and secp256k1 combined with SHA2-256 or SHA3-256 are
// accepted, other combinations cannot sign Flow transactions.
func NewInMemoryKeyHandle(privateKey PrivateKey, hashAlgo HashAlgorithm) (*InMemoryKeyHandle, error) {
	if privateKey == nil {
		return nil, fmt.Errorf("private key must not be nil")
	}
	if !IsSupportedSignatureAlgorithm(privateKey.Algorithm()) {
		return nil, NewAlgorithmMismatchErrorf("signature algorithm %s is not supported for transaction signatures", privateKey.Algorithm())
	}
	if !IsSupportedHashAlgorithm(hashAlgo) {
		return nil, NewAlgorithmMismatchErrorf("hash algorithm %s is not supported for transaction signatures", hashAlgo)
	}

	return &InMemoryKeyHandle{
		id:         publicKeyID("memory", privateKey.PublicKey()),
		privateKey: privateKey,
		hashAlgo:   hashAlgo,
	}, nil
}

func (h *InMemoryKeyHandle) ID() string {
	return h.id
}

func (h *InMemoryKeyHandle) SignatureAlgorithm() SignatureAlgorithm {
	return h.privateKey.Algorithm()
}

func (h *InMemoryKeyHandle) HashAlgorithm() HashAlgorithm {
	return h.hashAlgo
}

func (h *InMemoryKeyHandle) PublicKey() PublicKey {
	return h.privateKey.PublicKey()
}

func (h *InMemoryKeyHandle) Sign(ctx context.Context, message []byte) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	hasher, err := NewHasher(h.hashAlgo)
	if err != nil {
		return nil, err
	}

	sig, err := h.privateKey.Sign(message, hasher)
	if err != nil {
		return nil, fmt.Errorf("failed to sign message with key %s: %w", h.id, err)
	}
	return sig, nil
}

// publicKeyID derives a handle ID from the SHA3-256 hash of the public key.
func publicKeyID(prefix string, publicKey PublicKey) string {
	digest := hash.NewSHA3_256().ComputeHash(publicKey.Encode())
	return prefix + ":" + hex.EncodeToString(digest[:8])
}
