package unittest

import (
	crand "crypto/rand"
	"testing"

	onflowcrypto "github.com/onflow/crypto"
	"github.com/stretchr/testify/require"

	"github.com/onflow/flow-signer/crypto"
)

// DefaultSeedFixtureLength is the seed length of generated keys.
const DefaultSeedFixtureLength = 64

func SeedFixture(n int) []byte {
	var seed = make([]byte, n)
	_, _ = crand.Read(seed)
	return seed
}

// PrivateKeyFixture returns a random private key on the given curve.
func PrivateKeyFixture(t testing.TB, algo crypto.SignatureAlgorithm) crypto.PrivateKey {
	sk, err := onflowcrypto.GeneratePrivateKey(algo, SeedFixture(DefaultSeedFixtureLength))
	require.NoError(t, err)
	return sk
}

// KeyHandleFixture returns an in-memory key handle for a random key.
func KeyHandleFixture(t testing.TB, algo crypto.SignatureAlgorithm, hashAlgo crypto.HashAlgorithm) *crypto.InMemoryKeyHandle {
	handle, err := crypto.NewInMemoryKeyHandle(PrivateKeyFixture(t, algo), hashAlgo)
	require.NoError(t, err)
	return handle
}

// Secp256k1ScalarFixture is a fixed secp256k1 private key.
const Secp256k1ScalarFixture = "1a2b3c4d5e6f708192a3b4c5d6e7f8091a2b3c4d5e6f708192a3b4c5d6e7f809"

// DeterministicKeyHandleFixture returns an RFC6979 secp256k1 handle for a fixed key.
// Signatures it produces are reproducible.
func DeterministicKeyHandleFixture(t testing.TB, hashAlgo crypto.HashAlgorithm) *crypto.DeterministicSecp256k1KeyHandle {
	handle, err := crypto.NewDeterministicSecp256k1KeyHandleHex(Secp256k1ScalarFixture, hashAlgo)
	require.NoError(t, err)
	return handle
}

func MustDecodePublicKeyHex(algo crypto.SignatureAlgorithm, keyHex string) crypto.PublicKey {
	key, err := crypto.DecodePublicKeyHex(algo, keyHex)
	if err != nil {
		panic(err)
	}
	return key
}
