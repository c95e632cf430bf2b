package crypto

import (
	"context"
	"fmt"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"
	"github.com/onflow/crypto"
)

// DeterministicSecp256k1KeyHandle signs with an in-memory secp256k1 key using
// RFC6979 nonces: the same key and message always produce the same signature.
type DeterministicSecp256k1KeyHandle struct {
	id         string
	privateKey *secp256k1.PrivateKey
	publicKey  PublicKey
	hashAlgo   HashAlgorithm
}

var _ KeyHandle = (*DeterministicSecp256k1KeyHandle)(nil)

// NewDeterministicSecp256k1KeyHandle returns a handle for the 32 byte secp256k1
// private key raw. raw is copied, the caller may wipe it afterwards.
func NewDeterministicSecp256k1KeyHandle(raw []byte, hashAlgo HashAlgorithm) (*DeterministicSecp256k1KeyHandle, error) {
	if len(raw) != PrKeyLenECDSA {
		return nil, fmt.Errorf("secp256k1 private key must be %d bytes, got %d", PrKeyLenECDSA, len(raw))
	}
	if !IsSupportedHashAlgorithm(hashAlgo) {
		return nil, NewAlgorithmMismatchErrorf("hash algorithm %s is not supported for transaction signatures", hashAlgo)
	}

	var scalar secp256k1.ModNScalar
	if overflow := scalar.SetByteSlice(raw); overflow {
		return nil, fmt.Errorf("secp256k1 private key must be below the group order")
	}
	if scalar.IsZero() {
		return nil, fmt.Errorf("secp256k1 private key must not be zero")
	}
	privateKey := secp256k1.NewPrivateKey(&scalar)

	// uncompressed encoding is 0x04 || x || y
	publicKey, err := crypto.DecodePublicKey(ECDSA_secp256k1, privateKey.PubKey().SerializeUncompressed()[1:])
	if err != nil {
		return nil, fmt.Errorf("could not decode secp256k1 public key: %w", err)
	}

	return &DeterministicSecp256k1KeyHandle{
		id:         publicKeyID("secp256k1", publicKey),
		privateKey: privateKey,
		publicKey:  publicKey,
		hashAlgo:   hashAlgo,
	}, nil
}

// NewDeterministicSecp256k1KeyHandleHex returns a handle for a hex encoded
// secp256k1 private key.
func NewDeterministicSecp256k1KeyHandleHex(s string, hashAlgo HashAlgorithm) (*DeterministicSecp256k1KeyHandle, error) {
	raw, err := decodeHex(s)
	if err != nil {
		return nil, fmt.Errorf("private key is not hex encoded: %w", err)
	}
	defer wipe(raw)
	return NewDeterministicSecp256k1KeyHandle(raw, hashAlgo)
}

func (h *DeterministicSecp256k1KeyHandle) ID() string {
	return h.id
}

func (h *DeterministicSecp256k1KeyHandle) SignatureAlgorithm() SignatureAlgorithm {
	return ECDSA_secp256k1
}

func (h *DeterministicSecp256k1KeyHandle) HashAlgorithm() HashAlgorithm {
	return h.hashAlgo
}

func (h *DeterministicSecp256k1KeyHandle) PublicKey() PublicKey {
	return h.publicKey
}

func (h *DeterministicSecp256k1KeyHandle) Sign(ctx context.Context, message []byte) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	hasher, err := NewHasher(h.hashAlgo)
	if err != nil {
		return nil, err
	}
	digest := hasher.ComputeHash(message)

	sig := ecdsa.Sign(h.privateKey, digest)
	return DERToRawSignature(sig.Serialize())
}
