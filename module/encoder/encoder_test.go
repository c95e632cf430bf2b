package encoder_test

import (
	stdErrors "errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/onflow/flow-signer/model/errors"
	"github.com/onflow/flow-signer/model/flow"
	"github.com/onflow/flow-signer/module/encoder"
	"github.com/onflow/flow-signer/utils/unittest"
)

var limits = encoder.Limits{
	MaxGasLimit:            9999,
	MaxTransactionByteSize: 1_500_000,
	MaxArgumentCount:       100,
}

func requireEncodingError(t *testing.T, err error, field string) {
	require.Error(t, err)
	var encodingErr errors.EncodingError
	require.True(t, stdErrors.As(err, &encodingErr), "expected an encoding error, got %v", err)
	assert.Equal(t, field, encodingErr.Field)
}

func TestEncode(t *testing.T) {
	enc := encoder.New(flow.Emulator, limits)
	intent := unittest.IntentFixture(t, unittest.WithArguments(flow.StringArgument("hello"), flow.UInt64Argument(1)))

	payload, err := enc.Encode(intent)
	require.NoError(t, err)
	assert.Len(t, payload.Arguments(), 2)

	again, err := enc.Encode(intent)
	require.NoError(t, err)
	assert.Equal(t, payload.Message(), again.Message())
	assert.Equal(t, payload.ID(), again.ID())
}

func TestEncodeLimits(t *testing.T) {
	t.Run("gas limit above maximum", func(t *testing.T) {
		enc := encoder.New(flow.Emulator, limits)
		intent := unittest.IntentFixture(t, func(intent *flow.UntrustedTransactionIntent) {
			intent.GasLimit = 10_000
		})
		_, err := enc.Encode(intent)
		requireEncodingError(t, err, flow.TransactionFieldGasLimit.String())
	})

	t.Run("zero gas limit", func(t *testing.T) {
		enc := encoder.New(flow.Emulator, encoder.Limits{})
		intent := unittest.IntentFixture(t, func(intent *flow.UntrustedTransactionIntent) {
			intent.GasLimit = 0
		})
		_, err := enc.Encode(intent)
		requireEncodingError(t, err, flow.TransactionFieldGasLimit.String())
	})

	t.Run("too many arguments", func(t *testing.T) {
		enc := encoder.New(flow.Emulator, encoder.Limits{MaxArgumentCount: 1})
		intent := unittest.IntentFixture(t, unittest.WithArguments(flow.BoolArgument(true), flow.BoolArgument(false)))
		_, err := enc.Encode(intent)
		requireEncodingError(t, err, flow.TransactionFieldArguments.String())
	})

	t.Run("oversized payload", func(t *testing.T) {
		enc := encoder.New(flow.Emulator, encoder.Limits{MaxTransactionByteSize: 1024})
		intent := unittest.IntentFixture(t, unittest.WithArguments(flow.StringArgument(strings.Repeat("a", 2048))))
		_, err := enc.Encode(intent)
		requireEncodingError(t, err, "")
	})

	t.Run("zero disables limits", func(t *testing.T) {
		enc := encoder.New(flow.Emulator, encoder.Limits{})
		intent := unittest.IntentFixture(t, func(intent *flow.UntrustedTransactionIntent) {
			intent.GasLimit = 1 << 40
		})
		_, err := enc.Encode(intent)
		require.NoError(t, err)
	})
}

func TestEncodeArgumentErrors(t *testing.T) {
	enc := encoder.New(flow.Emulator, limits)
	intent := unittest.IntentFixture(t, unittest.WithArguments(
		flow.StringArgument("ok"),
		flow.Argument{Type: flow.ArgumentTypeUInt8, Value: "300"},
	))

	_, err := enc.Encode(intent)
	requireEncodingError(t, err, "Arguments[1]")
}

func TestEncodeOtherChain(t *testing.T) {
	enc := encoder.New(flow.Testnet, limits)
	_, err := enc.Encode(unittest.IntentFixture(t))
	requireEncodingError(t, err, flow.TransactionFieldChainID.String())

	_, err = enc.Encode(nil)
	require.Error(t, err)
	assert.True(t, errors.IsEncodingError(err))
}

func TestNewIntent(t *testing.T) {
	enc := encoder.New(flow.Emulator, limits)

	t.Run("single invalid field is named", func(t *testing.T) {
		_, err := enc.NewIntent(flow.UntrustedTransactionIntent{
			Script:           []byte(unittest.DefaultScript),
			ReferenceBlockID: unittest.IdentifierFixture(),
			GasLimit:         100,
			ProposalKey:      flow.ProposalKey{Address: unittest.RandomAddressFixture()},
			Payer:            unittest.InvalidAddressFixture(flow.Emulator),
			Authorizers:      unittest.AddressListFixture(1, flow.Emulator),
		})
		requireEncodingError(t, err, flow.TransactionFieldPayer.String())
	})

	t.Run("several invalid fields are not", func(t *testing.T) {
		_, err := enc.NewIntent(flow.UntrustedTransactionIntent{GasLimit: 100})
		requireEncodingError(t, err, "")
	})

	t.Run("the chain of the encoder is used", func(t *testing.T) {
		account := unittest.RandomAddressFixture()
		intent, err := enc.NewIntent(flow.UntrustedTransactionIntent{
			ChainID:          flow.Mainnet,
			Script:           []byte(unittest.DefaultScript),
			ReferenceBlockID: unittest.IdentifierFixture(),
			GasLimit:         100,
			ProposalKey:      flow.ProposalKey{Address: account},
			Payer:            account,
			Authorizers:      []flow.Address{account},
		})
		require.NoError(t, err)
		assert.Equal(t, flow.Emulator, intent.ChainID)
	})
}

func TestDecode(t *testing.T) {
	enc := encoder.New(flow.Emulator, limits)
	addresses := unittest.AddressListFixture(3, flow.Emulator)
	intent := unittest.IntentFixture(t,
		unittest.WithRoles(addresses[0], 2, addresses[1], addresses[0], addresses[2]),
		unittest.WithArguments(flow.UFix64Argument("1.5"), flow.AddressArgument(addresses[2])),
	)

	payload, err := enc.Encode(intent)
	require.NoError(t, err)

	decoded, err := enc.Decode(payload.Message())
	require.NoError(t, err)
	assert.Equal(t, payload.Message(), decoded.Message())
	assert.Equal(t, intent.Authorizers, decoded.Intent().Authorizers)
	assert.Equal(t, intent.ProposalKey, decoded.Intent().ProposalKey)
	assert.Equal(t, flow.UFix64Argument("1.50000000"), decoded.Intent().Arguments[0])

	t.Run("trailing bytes", func(t *testing.T) {
		_, err := enc.Decode(append(payload.Message(), 0x80))
		require.Error(t, err)
		assert.True(t, errors.IsEncodingError(err))
	})

	t.Run("truncated", func(t *testing.T) {
		message := payload.Message()
		_, err := enc.Decode(message[:len(message)-1])
		require.Error(t, err)
		assert.True(t, errors.IsEncodingError(err))
	})

	t.Run("other chain", func(t *testing.T) {
		_, err := encoder.New(flow.Mainnet, limits).Decode(payload.Message())
		require.Error(t, err)
		assert.True(t, errors.IsEncodingError(err))
	})

	t.Run("limits apply", func(t *testing.T) {
		_, err := encoder.New(flow.Emulator, encoder.Limits{MaxArgumentCount: 1}).Decode(payload.Message())
		requireEncodingError(t, err, flow.TransactionFieldArguments.String())
	})
}

func TestEncodeArgumentSpellings(t *testing.T) {
	enc := encoder.New(flow.Emulator, limits)

	typed, err := enc.Encode(unittest.IntentFixture(t, unittest.WithArguments(flow.StringArgument("hello"))))
	require.NoError(t, err)

	for _, raw := range []string{
		`{"type":"String","value":"hello"}`,
		`{"value":"hello","type":"String"}`,
		` {"type": "String", "value": "hello"} `,
	} {
		payload, err := enc.Encode(unittest.IntentFixture(t, unittest.WithArguments(flow.RawArgument([]byte(raw)))))
		require.NoError(t, err)
		assert.Equal(t, typed.Message(), payload.Message(), raw)
		assert.Equal(t, typed.ID(), payload.ID(), raw)
	}

	t.Run("decode rejects other spellings", func(t *testing.T) {
		intent := unittest.IntentFixture(t, unittest.WithArguments(flow.StringArgument("hello")))
		spelled, err := flow.NewCanonicalPayload(intent, [][]byte{[]byte(`{"value":"hello","type":"String"}`)})
		require.NoError(t, err)

		_, err = enc.Decode(spelled.Message())
		require.Error(t, err)
		assert.True(t, errors.IsEncodingError(err))
	})
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	enc := encoder.New(flow.Emulator, encoder.Limits{})
	chain, err := flow.Emulator.Chain()
	require.NoError(t, err)

	rapid.Check(t, func(t *rapid.T) {
		indices := rapid.SliceOfNDistinct(rapid.Uint64Range(1, 1<<20), 1, 4, rapid.ID[uint64]).Draw(t, "indices")
		addresses := make([]flow.Address, len(indices))
		for i, index := range indices {
			addresses[i], err = chain.AddressAtIndex(index)
			require.NoError(t, err)
		}

		var refBlockID flow.Identifier
		copy(refBlockID[:], rapid.SliceOfN(rapid.Byte(), 32, 32).Draw(t, "ref"))
		refBlockID[0] |= 1

		args := rapid.SliceOfN(rapid.Custom(func(t *rapid.T) flow.Argument {
			return flow.UInt64Argument(rapid.Uint64().Draw(t, "value"))
		}), 0, 4).Draw(t, "args")

		intent, err := enc.NewIntent(flow.UntrustedTransactionIntent{
			Script:           []byte(rapid.StringN(1, 64, -1).Draw(t, "script")),
			Arguments:        args,
			ReferenceBlockID: refBlockID,
			GasLimit:         rapid.Uint64Min(1).Draw(t, "gas"),
			ProposalKey: flow.ProposalKey{
				Address:        addresses[0],
				KeyIndex:       rapid.Uint32().Draw(t, "key"),
				SequenceNumber: rapid.Uint64().Draw(t, "seq"),
			},
			Payer:       addresses[rapid.IntRange(0, len(addresses)-1).Draw(t, "payer")],
			Authorizers: addresses,
		})
		require.NoError(t, err)

		payload, err := enc.Encode(intent)
		require.NoError(t, err)

		decoded, err := enc.Decode(payload.Message())
		require.NoError(t, err)
		assert.Equal(t, payload.Message(), decoded.Message())
		assert.Equal(t, intent.SignerList(), decoded.Intent().SignerList())
	})
}
