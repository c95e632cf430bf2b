package flow_test

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/onflow/flow-signer/model/flow"
)

func TestSignedEnvelopeVector(t *testing.T) {
	payload := vectorPayloadFixture(t)
	payloadSigs, envelopeSigs := vectorSignatures(t, payload.Intent())

	envelope, err := flow.NewSignedEnvelope(flow.UntrustedSignedEnvelope{
		Payload:            payload,
		PayloadSignatures:  payloadSigs,
		EnvelopeSignatures: envelopeSigs,
	})
	require.NoError(t, err)

	assert.Equal(t, vectorTransaction, hex.EncodeToString(envelope.Encode()))
	assert.Equal(t, vectorTransactionID, envelope.ID().String())
	assert.Equal(t, vectorPayload, hex.EncodeToString(envelope.PayloadMessage()))
	assert.Equal(t, vectorEnvelope, hex.EncodeToString(envelope.EnvelopeMessage()))
	assert.Equal(t, uint(len(vectorTransaction)/2), envelope.ByteSize())

	// payload signatures are sorted by signer index
	require.Len(t, envelope.PayloadSignatures, 2)
	assert.Equal(t, vectorA, envelope.PayloadSignatures[0].Address)
	assert.Equal(t, vectorC, envelope.PayloadSignatures[1].Address)
}

func TestDecodeTransaction(t *testing.T) {
	decoded, err := flow.DecodeTransaction(mustDecodeHex(t, vectorTransaction))
	require.NoError(t, err)

	assert.Equal(t, vectorPayload, hex.EncodeToString(decoded.Payload))
	require.Len(t, decoded.PayloadSignatures, 2)
	assert.Equal(t, 0, decoded.PayloadSignatures[0].SignerIndex)
	assert.Equal(t, uint32(1), decoded.PayloadSignatures[0].KeyIndex)
	assert.Equal(t, 2, decoded.PayloadSignatures[1].SignerIndex)
	require.Len(t, decoded.EnvelopeSignatures, 1)
	assert.Equal(t, 1, decoded.EnvelopeSignatures[0].SignerIndex)

	_, err = flow.DecodeTransaction(mustDecodeHex(t, vectorPayload))
	require.Error(t, err)
}

func TestNewSignedEnvelope(t *testing.T) {
	payload := vectorPayloadFixture(t)
	payloadSigs, envelopeSigs := vectorSignatures(t, payload.Intent())

	t.Run("nil payload", func(t *testing.T) {
		_, err := flow.NewSignedEnvelope(flow.UntrustedSignedEnvelope{EnvelopeSignatures: envelopeSigs})
		require.Error(t, err)
	})

	t.Run("no envelope signature", func(t *testing.T) {
		_, err := flow.NewSignedEnvelope(flow.UntrustedSignedEnvelope{
			Payload:           payload,
			PayloadSignatures: payloadSigs,
		})
		require.Error(t, err)
	})

	t.Run("signer index does not match the address", func(t *testing.T) {
		sigs := flow.SortSignatures(payloadSigs)
		sigs[0].SignerIndex = 2

		_, err := flow.NewSignedEnvelope(flow.UntrustedSignedEnvelope{
			Payload:            payload,
			PayloadSignatures:  sigs,
			EnvelopeSignatures: envelopeSigs,
		})
		require.Error(t, err)
	})

	t.Run("empty signature", func(t *testing.T) {
		sigs := flow.SortSignatures(envelopeSigs)
		sigs[0].Signature = nil

		_, err := flow.NewSignedEnvelope(flow.UntrustedSignedEnvelope{
			Payload:            payload,
			PayloadSignatures:  payloadSigs,
			EnvelopeSignatures: sigs,
		})
		require.Error(t, err)
	})
}

// TestSignedEnvelopeOrderRapid checks that the encoding does not depend on
// the order signatures are supplied in.
func TestSignedEnvelopeOrderRapid(t *testing.T) {
	payload := vectorPayloadFixture(t)
	payloadSigs, envelopeSigs := vectorSignatures(t, payload.Intent())

	extra, err := payload.Intent().NewSignature(vectorA, 0, []byte{0x04})
	require.NoError(t, err)
	payloadSigs = append(payloadSigs, extra)

	rapid.Check(t, func(t *rapid.T) {
		shuffled := rapid.Permutation(payloadSigs).Draw(t, "payload-signatures")

		envelope, err := flow.NewSignedEnvelope(flow.UntrustedSignedEnvelope{
			Payload:            payload,
			PayloadSignatures:  shuffled,
			EnvelopeSignatures: envelopeSigs,
		})
		require.NoError(t, err)

		sorted := envelope.PayloadSignatures
		for i := 1; i < len(sorted); i++ {
			prev, cur := sorted[i-1], sorted[i]
			require.True(t, prev.SignerIndex < cur.SignerIndex ||
				(prev.SignerIndex == cur.SignerIndex && prev.KeyIndex < cur.KeyIndex))
		}
		require.Equal(t, payload.EnvelopeMessage(flow.SortSignatures(payloadSigs)), envelope.EnvelopeMessage())
	})
}

func TestSortSignatures(t *testing.T) {
	sigs := []flow.TransactionSignature{
		{SignerIndex: 2, KeyIndex: 0, Signature: []byte{1}},
		{SignerIndex: 0, KeyIndex: 5, Signature: []byte{2}},
		{SignerIndex: 0, KeyIndex: 1, Signature: []byte{3}},
	}

	sorted := flow.SortSignatures(sigs)
	assert.Equal(t, []byte{3}, sorted[0].Signature)
	assert.Equal(t, []byte{2}, sorted[1].Signature)
	assert.Equal(t, []byte{1}, sorted[2].Signature)

	// the input is left untouched
	assert.Equal(t, 2, sigs[0].SignerIndex)
	sorted[0].Signature[0] = 9
	assert.Equal(t, []byte{3}, sigs[2].Signature)
}
