package flow_test

import (
	stdErrors "errors"
	"testing"

	"github.com/hashicorp/go-multierror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/onflow/flow-signer/model/flow"
)

// TestNewTransactionIntent verifies the behavior of the NewTransactionIntent constructor.
//
// Test Cases:
//
// 1. Valid input:
//   - Verifies that a populated UntrustedTransactionIntent results in an intent with equal fields.
//
// 2. Unsupported chain:
//   - Ensures only the chain is reported.
//
// 3. Missing fields:
//   - Ensures every invalid field is reported as an InvalidFieldError.
//
// 4. Addresses of another chain, duplicate authorizers, untyped arguments:
//   - Ensures an error names the offending field.
func TestNewTransactionIntent(t *testing.T) {
	t.Run("valid input", func(t *testing.T) {
		untrusted := vectorUntrustedIntent()
		intent, err := flow.NewTransactionIntent(untrusted)
		require.NoError(t, err)
		require.NotNil(t, intent)

		assert.Equal(t, untrusted.Script, intent.Script)
		assert.Equal(t, untrusted.Arguments, intent.Arguments)
		assert.Equal(t, untrusted.Authorizers, intent.Authorizers)
		assert.Equal(t, untrusted.ProposalKey, intent.ProposalKey)
	})

	t.Run("input slices are copied", func(t *testing.T) {
		untrusted := vectorUntrustedIntent()
		intent, err := flow.NewTransactionIntent(untrusted)
		require.NoError(t, err)

		untrusted.Script[0] = 'X'
		untrusted.Authorizers[0] = vectorB
		untrusted.Arguments[0].Value = "{}"

		assert.Equal(t, "transaction {}", string(intent.Script))
		assert.Equal(t, vectorA, intent.Authorizers[0])
		assert.Equal(t, vectorArgument, intent.Arguments[0].Value)
	})

	t.Run("unsupported chain", func(t *testing.T) {
		untrusted := vectorUntrustedIntent()
		untrusted.ChainID = "flow-unknown"

		intent, err := flow.NewTransactionIntent(untrusted)
		require.Error(t, err)
		require.Nil(t, intent)
		assertInvalidFields(t, err, flow.TransactionFieldChainID)
	})

	t.Run("missing fields", func(t *testing.T) {
		intent, err := flow.NewTransactionIntent(flow.UntrustedTransactionIntent{ChainID: flow.Emulator})
		require.Error(t, err)
		require.Nil(t, intent)
		assertInvalidFields(t, err,
			flow.TransactionFieldScript,
			flow.TransactionFieldRefBlockID,
			flow.TransactionFieldProposalKey,
			flow.TransactionFieldPayer,
			flow.TransactionFieldAuthorizers,
		)
	})

	t.Run("payer of another chain", func(t *testing.T) {
		untrusted := vectorUntrustedIntent()
		untrusted.Payer = flow.HexToAddress("e467b9dd11fa00df")

		_, err := flow.NewTransactionIntent(untrusted)
		require.Error(t, err)
		assertInvalidFields(t, err, flow.TransactionFieldPayer)
	})

	t.Run("proposer of another chain", func(t *testing.T) {
		untrusted := vectorUntrustedIntent()
		untrusted.ProposalKey.Address = flow.HexToAddress("e467b9dd11fa00df")

		_, err := flow.NewTransactionIntent(untrusted)
		require.Error(t, err)
		assertInvalidFields(t, err, flow.TransactionFieldProposalKey)
	})

	t.Run("duplicate authorizer", func(t *testing.T) {
		untrusted := vectorUntrustedIntent()
		untrusted.Authorizers = []flow.Address{vectorA, vectorA}

		_, err := flow.NewTransactionIntent(untrusted)
		require.Error(t, err)
		assertInvalidFields(t, err, flow.TransactionFieldAuthorizers)
		assert.Contains(t, err.Error(), "duplicate authorizer")
	})

	t.Run("untyped argument", func(t *testing.T) {
		untrusted := vectorUntrustedIntent()
		untrusted.Arguments = []flow.Argument{{Value: "1"}}

		_, err := flow.NewTransactionIntent(untrusted)
		require.Error(t, err)
		assertInvalidFields(t, err, flow.TransactionFieldArguments)
	})
}

func assertInvalidFields(t *testing.T, err error, fields ...flow.TransactionField) {
	var merr *multierror.Error
	require.True(t, stdErrors.As(err, &merr), "expected a multierror, got %T", err)

	reported := make([]flow.TransactionField, 0, len(merr.Errors))
	for _, e := range merr.Errors {
		var fieldErr flow.InvalidFieldError
		require.True(t, stdErrors.As(e, &fieldErr), "expected an InvalidFieldError, got %T", e)
		reported = append(reported, fieldErr.Field)
	}
	assert.ElementsMatch(t, fields, reported)
}

func TestSignerList(t *testing.T) {
	t.Run("proposer, payer, then authorizers", func(t *testing.T) {
		intent, err := flow.NewTransactionIntent(vectorUntrustedIntent())
		require.NoError(t, err)
		assert.Equal(t, []flow.Address{vectorA, vectorB, vectorC}, intent.SignerList())
	})

	t.Run("single account", func(t *testing.T) {
		untrusted := vectorUntrustedIntent()
		untrusted.ProposalKey.Address = vectorA
		untrusted.Payer = vectorA
		untrusted.Authorizers = []flow.Address{vectorA}

		intent, err := flow.NewTransactionIntent(untrusted)
		require.NoError(t, err)
		assert.Equal(t, []flow.Address{vectorA}, intent.SignerList())
	})

	t.Run("payer authorizes", func(t *testing.T) {
		untrusted := vectorUntrustedIntent()
		untrusted.Authorizers = []flow.Address{vectorC, vectorB}

		intent, err := flow.NewTransactionIntent(untrusted)
		require.NoError(t, err)
		assert.Equal(t, []flow.Address{vectorA, vectorB, vectorC}, intent.SignerList())

		index, ok := intent.SignerIndex(vectorC)
		require.True(t, ok)
		assert.Equal(t, 2, index)
	})
}

func TestNewSignature(t *testing.T) {
	intent, err := flow.NewTransactionIntent(vectorUntrustedIntent())
	require.NoError(t, err)

	t.Run("signer", func(t *testing.T) {
		raw := []byte{1, 2, 3}
		sig, err := intent.NewSignature(vectorC, 3, raw)
		require.NoError(t, err)
		assert.Equal(t, 2, sig.SignerIndex)
		assert.Equal(t, uint32(3), sig.KeyIndex)

		raw[0] = 9
		assert.Equal(t, []byte{1, 2, 3}, sig.Signature)
	})

	t.Run("not a signer", func(t *testing.T) {
		_, err := intent.NewSignature(flow.HexToAddress("0ae53cb6e3f42a79"), 0, []byte{1})
		require.Error(t, err)
	})
}
