package unittest

import (
	sdk "github.com/onflow/flow-go-sdk"

	"github.com/onflow/flow-signer/model/flow"
)

// ToSDKAddress converts a [flow.Address] to a [sdk.Address].
func ToSDKAddress(addr flow.Address) sdk.Address {
	var sdkAddr sdk.Address
	copy(sdkAddr[:], addr[:])
	return sdkAddr
}

// ToSDKIdentifier converts a [flow.Identifier] to a [sdk.Identifier].
func ToSDKIdentifier(id flow.Identifier) sdk.Identifier {
	var sdkID sdk.Identifier
	copy(sdkID[:], id[:])
	return sdkID
}

// ToSDKTransaction returns the flow-go-sdk transaction with the payload of payload
// and the given signatures.
func ToSDKTransaction(payload *flow.CanonicalPayload, payloadSigs []flow.TransactionSignature, envelopeSigs []flow.TransactionSignature) *sdk.Transaction {
	intent := payload.Intent()

	tx := sdk.NewTransaction().
		SetScript(intent.Script).
		SetReferenceBlockID(ToSDKIdentifier(intent.ReferenceBlockID)).
		SetComputeLimit(intent.GasLimit).
		SetProposalKey(ToSDKAddress(intent.ProposalKey.Address), intent.ProposalKey.KeyIndex, intent.ProposalKey.SequenceNumber).
		SetPayer(ToSDKAddress(intent.Payer))

	for _, authorizer := range intent.Authorizers {
		tx.AddAuthorizer(ToSDKAddress(authorizer))
	}
	tx.Arguments = append(tx.Arguments, payload.Arguments()...)
	for _, sig := range payloadSigs {
		tx.AddPayloadSignature(ToSDKAddress(sig.Address), sig.KeyIndex, sig.Signature)
	}
	for _, sig := range envelopeSigs {
		tx.AddEnvelopeSignature(ToSDKAddress(sig.Address), sig.KeyIndex, sig.Signature)
	}
	return tx
}
