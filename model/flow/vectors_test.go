package flow_test

import (
	"bytes"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/onflow/flow-signer/model/flow"
)

// Reference encodings of a transaction proposed by A with key 1, paid by B
// and authorized by A and C, all emulator accounts.
const (
	vectorArgument = `{"type":"String","value":"hello"}`

	vectorPayload = "f87d8e7472616e73616374696f6e207b7de2a17b2274797065223a22537472696e67222c2276616c7565223a2268656c6c6f227da0f0e4c2f76c58916ec258f246851bea091d14d4247a2fc3e18694461b1816e13b82270f88f8d6e0586b0a20c7012a88ee82856bf20e2aa6d288f8d6e0586b0a20c788e5a8b7f23e8b548f"

	vectorEnvelope = "f9010df87d8e7472616e73616374696f6e207b7de2a17b2274797065223a22537472696e67222c2276616c7565223a2268656c6c6f227da0f0e4c2f76c58916ec258f246851bea091d14d4247a2fc3e18694461b1816e13b82270f88f8d6e0586b0a20c7012a88ee82856bf20e2aa6d288f8d6e0586b0a20c788e5a8b7f23e8b548ff88cf8448001b84001010101010101010101010101010101010101010101010101010101010101010101010101010101010101010101010101010101010101010101010101010101f8440280b84002020202020202020202020202020202020202020202020202020202020202020202020202020202020202020202020202020202020202020202020202020202"

	vectorTransaction = "f90155f87d8e7472616e73616374696f6e207b7de2a17b2274797065223a22537472696e67222c2276616c7565223a2268656c6c6f227da0f0e4c2f76c58916ec258f246851bea091d14d4247a2fc3e18694461b1816e13b82270f88f8d6e0586b0a20c7012a88ee82856bf20e2aa6d288f8d6e0586b0a20c788e5a8b7f23e8b548ff88cf8448001b84001010101010101010101010101010101010101010101010101010101010101010101010101010101010101010101010101010101010101010101010101010101f8440280b84002020202020202020202020202020202020202020202020202020202020202020202020202020202020202020202020202020202020202020202020202020202f846f8440180b84003030303030303030303030303030303030303030303030303030303030303030303030303030303030303030303030303030303030303030303030303030303"

	vectorTransactionID = "f35b10d95c9e952c3867ac158552dfd87a670cd7974fbbcd1f2ff0f37519dea8"

	// proposer, payer and single authorizer are the emulator service account
	vectorSinglePayload = "f8528e7472616e73616374696f6e207b7dc0a0f0e4c2f76c58916ec258f246851bea091d14d4247a2fc3e18694461b1816e13b82270f88f8d6e0586b0a20c7802a88f8d6e0586b0a20c7c988f8d6e0586b0a20c7"
)

var (
	vectorA = flow.HexToAddress("f8d6e0586b0a20c7")
	vectorB = flow.HexToAddress("ee82856bf20e2aa6")
	vectorC = flow.HexToAddress("e5a8b7f23e8b548f")

	vectorRefID = flow.MustHexStringToIdentifier("f0e4c2f76c58916ec258f246851bea091d14d4247a2fc3e18694461b1816e13b")
)

func vectorUntrustedIntent() flow.UntrustedTransactionIntent {
	return flow.UntrustedTransactionIntent{
		ChainID:          flow.Emulator,
		Script:           []byte("transaction {}"),
		Arguments:        []flow.Argument{flow.RawArgument([]byte(vectorArgument))},
		ReferenceBlockID: vectorRefID,
		GasLimit:         9999,
		ProposalKey: flow.ProposalKey{
			Address:        vectorA,
			KeyIndex:       1,
			SequenceNumber: 42,
		},
		Payer:       vectorB,
		Authorizers: []flow.Address{vectorA, vectorC},
	}
}

func vectorPayloadFixture(t *testing.T) *flow.CanonicalPayload {
	intent, err := flow.NewTransactionIntent(vectorUntrustedIntent())
	require.NoError(t, err)

	payload, err := flow.NewCanonicalPayload(intent, [][]byte{[]byte(vectorArgument)})
	require.NoError(t, err)
	return payload
}

// vectorSignatures returns the payload signatures of A (key 1) and C (key 0)
// and the envelope signature of B (key 0).
func vectorSignatures(t *testing.T, intent *flow.TransactionIntent) ([]flow.TransactionSignature, []flow.TransactionSignature) {
	sigA, err := intent.NewSignature(vectorA, 1, bytes.Repeat([]byte{0x01}, 64))
	require.NoError(t, err)
	sigC, err := intent.NewSignature(vectorC, 0, bytes.Repeat([]byte{0x02}, 64))
	require.NoError(t, err)
	sigB, err := intent.NewSignature(vectorB, 0, bytes.Repeat([]byte{0x03}, 64))
	require.NoError(t, err)

	return []flow.TransactionSignature{sigC, sigA}, []flow.TransactionSignature{sigB}
}

func mustDecodeHex(t *testing.T, s string) []byte {
	b, err := hex.DecodeString(s)
	require.NoError(t, err)
	return b
}
