package crypto

import (
	"fmt"

	"github.com/onflow/crypto"
	"github.com/onflow/crypto/hash"
)

//revive:disable:var-naming

// SignatureAlgorithm is an identifier for a signing algorithm and curve.
type SignatureAlgorithm = crypto.SigningAlgorithm

// HashAlgorithm is an identifier for a hashing algorithm.
type HashAlgorithm = hash.HashingAlgorithm

type PublicKey = crypto.PublicKey

type PrivateKey = crypto.PrivateKey

const (
	UnknownSignatureAlgorithm SignatureAlgorithm = crypto.UnknownSigningAlgorithm
	// ECDSA_P256 is ECDSA on NIST P-256 curve
	ECDSA_P256 = crypto.ECDSAP256
	// ECDSA_secp256k1 is ECDSA on secp256k1 curve
	ECDSA_secp256k1 = crypto.ECDSASecp256k1
)

const (
	UnknownHashAlgorithm HashAlgorithm = hash.UnknownHashingAlgorithm
	SHA2_256                           = hash.SHA2_256
	SHA3_256                           = hash.SHA3_256
)

const (
	// SignatureLenECDSA is the length of a raw r||s ECDSA signature on both supported curves.
	SignatureLenECDSA = 64
	// PubKeyLenECDSA is the length of a raw x||y ECDSA public key on both supported curves.
	PubKeyLenECDSA = 64
	// PrKeyLenECDSA is the length of an encoded ECDSA private key on both supported curves.
	PrKeyLenECDSA = 32
)

// StringToSignatureAlgorithm converts a string to a SignatureAlgorithm.
func StringToSignatureAlgorithm(s string) SignatureAlgorithm {
	switch s {
	case ECDSA_P256.String(), "ECDSA_P256":
		return ECDSA_P256
	case ECDSA_secp256k1.String(), "ECDSA_secp256k1":
		return ECDSA_secp256k1
	default:
		return UnknownSignatureAlgorithm
	}
}

// StringToHashAlgorithm converts a string to a HashAlgorithm.
func StringToHashAlgorithm(s string) HashAlgorithm {
	switch s {
	case SHA2_256.String():
		return SHA2_256
	case SHA3_256.String():
		return SHA3_256
	default:
		return UnknownHashAlgorithm
	}
}

// IsSupportedSignatureAlgorithm returns true for the curves account keys may use.
func IsSupportedSignatureAlgorithm(algo SignatureAlgorithm) bool {
	return algo == ECDSA_P256 || algo == ECDSA_secp256k1
}

// IsSupportedHashAlgorithm returns true for the hashes account keys may use.
func IsSupportedHashAlgorithm(algo HashAlgorithm) bool {
	return algo == SHA2_256 || algo == SHA3_256
}

// NewHasher returns a new hasher for the given algorithm.
//
// Hashers are not safe for concurrent use, a new one is created per signature.
func NewHasher(algo HashAlgorithm) (hash.Hasher, error) {
	switch algo {
	case SHA2_256:
		return hash.NewSHA2_256(), nil
	case SHA3_256:
		return hash.NewSHA3_256(), nil
	default:
		return nil, NewAlgorithmMismatchErrorf("hash algorithm %s is not supported for transaction signatures", algo)
	}
}

// DecodePrivateKeyHex decodes a hex encoded private key of the given algorithm.
func DecodePrivateKeyHex(algo SignatureAlgorithm, s string) (PrivateKey, error) {
	b, err := decodeHex(s)
	if err != nil {
		return nil, fmt.Errorf("private key is not hex encoded: %w", err)
	}
	defer wipe(b)
	return crypto.DecodePrivateKey(algo, b)
}

// DecodePublicKeyHex decodes a hex encoded raw x||y public key of the given algorithm.
func DecodePublicKeyHex(algo SignatureAlgorithm, s string) (PublicKey, error) {
	b, err := decodeHex(s)
	if err != nil {
		return nil, fmt.Errorf("public key is not hex encoded: %w", err)
	}
	return crypto.DecodePublicKey(algo, b)
}
