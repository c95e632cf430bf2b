package crypto_test

import (
	"encoding/asn1"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/onflow/flow-signer/crypto"
)

type derSignature struct {
	R, S *big.Int
}

func marshalDER(t *testing.T, r, s *big.Int) []byte {
	der, err := asn1.Marshal(derSignature{R: r, S: s})
	require.NoError(t, err)
	return der
}

func TestDERToRawSignature(t *testing.T) {
	t.Run("scalars are left padded", func(t *testing.T) {
		raw, err := crypto.DERToRawSignature(marshalDER(t, big.NewInt(1), big.NewInt(0x0203)))
		require.NoError(t, err)
		require.Len(t, raw, crypto.SignatureLenECDSA)

		expected := make([]byte, crypto.SignatureLenECDSA)
		expected[31] = 0x01
		expected[62] = 0x02
		expected[63] = 0x03
		assert.Equal(t, expected, raw)
	})

	t.Run("scalars with the high bit set", func(t *testing.T) {
		// DER prefixes these with a zero byte, 33 bytes on the wire
		r := new(big.Int).Lsh(big.NewInt(1), 255)
		raw, err := crypto.DERToRawSignature(marshalDER(t, r, r))
		require.NoError(t, err)
		assert.Equal(t, byte(0x80), raw[0])
		assert.Equal(t, byte(0x80), raw[32])
	})

	t.Run("scalar too large", func(t *testing.T) {
		r := new(big.Int).Lsh(big.NewInt(1), 256)
		_, err := crypto.DERToRawSignature(marshalDER(t, r, big.NewInt(1)))
		require.Error(t, err)
	})

	t.Run("zero or negative scalars", func(t *testing.T) {
		_, err := crypto.DERToRawSignature(marshalDER(t, big.NewInt(0), big.NewInt(1)))
		require.Error(t, err)
		_, err = crypto.DERToRawSignature(marshalDER(t, big.NewInt(1), big.NewInt(-1)))
		require.Error(t, err)
	})

	t.Run("trailing data", func(t *testing.T) {
		der := append(marshalDER(t, big.NewInt(1), big.NewInt(1)), 0x00)
		_, err := crypto.DERToRawSignature(der)
		require.Error(t, err)
	})

	t.Run("not DER", func(t *testing.T) {
		_, err := crypto.DERToRawSignature([]byte{0x01, 0x02})
		require.Error(t, err)
		_, err = crypto.DERToRawSignature(nil)
		require.Error(t, err)
	})
}
