package crypto_test

import (
	"context"
	"encoding/hex"
	"strings"
	"testing"

	"github.com/onflow/crypto/hash"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/onflow/flow-signer/crypto"
	"github.com/onflow/flow-signer/utils/unittest"
)

func verify(t *testing.T, handle crypto.KeyHandle, sig []byte, message []byte) bool {
	hasher, err := crypto.NewHasher(handle.HashAlgorithm())
	require.NoError(t, err)
	valid, err := handle.PublicKey().Verify(sig, message, hasher)
	require.NoError(t, err)
	return valid
}

func TestInMemoryKeyHandle(t *testing.T) {
	message := []byte("FLOW-V0.0-transaction message")

	for _, algo := range []crypto.SignatureAlgorithm{crypto.ECDSA_P256, crypto.ECDSA_secp256k1} {
		for _, hashAlgo := range []crypto.HashAlgorithm{crypto.SHA2_256, crypto.SHA3_256} {
			t.Run(algo.String()+"/"+hashAlgo.String(), func(t *testing.T) {
				handle := unittest.KeyHandleFixture(t, algo, hashAlgo)
				assert.Equal(t, algo, handle.SignatureAlgorithm())
				assert.Equal(t, hashAlgo, handle.HashAlgorithm())

				sig, err := handle.Sign(context.Background(), message)
				require.NoError(t, err)
				require.Len(t, sig, crypto.SignatureLenECDSA)
				assert.True(t, verify(t, handle, sig, message))
				assert.False(t, verify(t, handle, sig, append(message, '!')))

				// signatures are randomized, both are valid
				again, err := handle.Sign(context.Background(), message)
				require.NoError(t, err)
				assert.NotEqual(t, sig, again)
				assert.True(t, verify(t, handle, again, message))
			})
		}
	}
}

func TestInMemoryKeyHandleRejects(t *testing.T) {
	t.Run("unsupported hash", func(t *testing.T) {
		_, err := crypto.NewInMemoryKeyHandle(unittest.PrivateKeyFixture(t, crypto.ECDSA_P256), hash.SHA3_384)
		require.Error(t, err)
		assert.True(t, crypto.IsAlgorithmMismatchError(err))
	})

	t.Run("nil key", func(t *testing.T) {
		_, err := crypto.NewInMemoryKeyHandle(nil, crypto.SHA3_256)
		require.Error(t, err)
	})

	t.Run("canceled context", func(t *testing.T) {
		handle := unittest.KeyHandleFixture(t, crypto.ECDSA_P256, crypto.SHA3_256)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := handle.Sign(ctx, []byte("message"))
		require.ErrorIs(t, err, context.Canceled)
	})
}

func TestKeyHandleIDHidesKeyMaterial(t *testing.T) {
	sk := unittest.PrivateKeyFixture(t, crypto.ECDSA_P256)
	handle, err := crypto.NewInMemoryKeyHandle(sk, crypto.SHA3_256)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(handle.ID(), "memory:"))
	assert.NotContains(t, handle.ID(), hex.EncodeToString(sk.Encode())[:16])
	assert.NotContains(t, handle.ID(), hex.EncodeToString(sk.PublicKey().Encode())[:16])
}

func TestDeterministicSecp256k1KeyHandle(t *testing.T) {
	handle := unittest.DeterministicKeyHandleFixture(t, crypto.SHA3_256)
	message := []byte("FLOW-V0.0-transaction message")

	sig, err := handle.Sign(context.Background(), message)
	require.NoError(t, err)
	require.Len(t, sig, crypto.SignatureLenECDSA)
	assert.True(t, verify(t, handle, sig, message))

	again, err := handle.Sign(context.Background(), message)
	require.NoError(t, err)
	assert.Equal(t, sig, again)

	other, err := handle.Sign(context.Background(), append(message, '!'))
	require.NoError(t, err)
	assert.NotEqual(t, sig, other)

	// the same scalar loaded into an in-memory handle has the same public key
	sk, err := crypto.DecodePrivateKeyHex(crypto.ECDSA_secp256k1, unittest.Secp256k1ScalarFixture)
	require.NoError(t, err)
	assert.True(t, sk.PublicKey().Equals(handle.PublicKey()))
}

func TestNewDeterministicSecp256k1KeyHandle(t *testing.T) {
	_, err := crypto.NewDeterministicSecp256k1KeyHandle(make([]byte, 31), crypto.SHA3_256)
	require.Error(t, err)

	_, err = crypto.NewDeterministicSecp256k1KeyHandle(make([]byte, 32), crypto.SHA3_256)
	require.Error(t, err)

	_, err = crypto.NewDeterministicSecp256k1KeyHandleHex("zz", crypto.SHA3_256)
	require.Error(t, err)

	_, err = crypto.NewDeterministicSecp256k1KeyHandleHex(unittest.Secp256k1ScalarFixture, hash.Keccak_256)
	require.Error(t, err)

	t.Run("scalars not below the group order", func(t *testing.T) {
		for _, scalar := range []string{
			"fffffffffffffffffffffffffffffffebaaedce6af48a03bbfd25e8cd0364141", // n
			"fffffffffffffffffffffffffffffffebaaedce6af48a03bbfd25e8cd0364142",
			"ffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffff",
		} {
			_, err := crypto.NewDeterministicSecp256k1KeyHandleHex(scalar, crypto.SHA3_256)
			require.Error(t, err, scalar)
		}

		_, err := crypto.NewDeterministicSecp256k1KeyHandleHex("fffffffffffffffffffffffffffffffebaaedce6af48a03bbfd25e8cd0364140", crypto.SHA3_256)
		require.NoError(t, err)
	})
}

func TestAlgorithmNames(t *testing.T) {
	assert.Equal(t, crypto.ECDSA_P256, crypto.StringToSignatureAlgorithm("ECDSA_P256"))
	assert.Equal(t, crypto.ECDSA_secp256k1, crypto.StringToSignatureAlgorithm("ECDSA_secp256k1"))
	assert.Equal(t, crypto.UnknownSignatureAlgorithm, crypto.StringToSignatureAlgorithm("BLS_BLS12_381"))
	assert.Equal(t, crypto.SHA3_256, crypto.StringToHashAlgorithm("SHA3_256"))
	assert.Equal(t, crypto.SHA2_256, crypto.StringToHashAlgorithm("SHA2_256"))
	assert.Equal(t, crypto.UnknownHashAlgorithm, crypto.StringToHashAlgorithm("KECCAK_256"))

	_, err := crypto.NewHasher(crypto.UnknownHashAlgorithm)
	require.Error(t, err)
	assert.True(t, crypto.IsAlgorithmMismatchError(err))
}
