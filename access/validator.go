package access

import (
	"github.com/onflow/crypto"

	"github.com/onflow/flow-signer/model/errors"
	"github.com/onflow/flow-signer/model/flow"
)

type TransactionValidationOptions struct {
	MaxGasLimit            uint64
	MaxTransactionByteSize uint64
}

// TransactionValidator checks signed transactions against the rules an
// access node applies before accepting them.
type TransactionValidator struct {
	chain                 *flow.Chain // for checking validity of addresses
	options               TransactionValidationOptions
	serviceAccountAddress flow.Address
}

func NewTransactionValidator(
	chain *flow.Chain,
	options TransactionValidationOptions,
) *TransactionValidator {
	return &TransactionValidator{
		chain:                 chain,
		options:               options,
		serviceAccountAddress: chain.ServiceAddress(),
	}
}

// Validate checks tx.
//
// Expected errors during normal operations:
//   - errors.EncodingError if a field or the size of tx is not accepted
//   - errors.InternalFault if two signatures share an account key or a
//     signature is not a well formed ECDSA signature
func (v *TransactionValidator) Validate(tx *flow.SignedEnvelope) (err error) {
	err = v.checkTxSizeLimit(tx)
	if err != nil {
		return err
	}

	err = v.checkMissingFields(tx)
	if err != nil {
		return err
	}

	err = v.checkGasLimit(tx)
	if err != nil {
		return err
	}

	err = v.checkAddresses(tx)
	if err != nil {
		return err
	}

	err = v.checkSignatureFormat(tx)
	if err != nil {
		return err
	}

	err = v.checkSignatureDuplications(tx)
	if err != nil {
		return err
	}

	return nil
}

func (v *TransactionValidator) checkTxSizeLimit(tx *flow.SignedEnvelope) error {
	if v.options.MaxTransactionByteSize == 0 {
		return nil
	}
	txSize := uint64(tx.ByteSize())
	if txSize > v.options.MaxTransactionByteSize {
		return errors.NewEncodingErrorf("", "transaction byte size (%d) exceeds the maximum byte size allowed for a transaction (%d)", txSize, v.options.MaxTransactionByteSize)
	}
	return nil
}

func (v *TransactionValidator) checkMissingFields(tx *flow.SignedEnvelope) error {
	intent := tx.Payload.Intent()

	if len(intent.Script) == 0 {
		return errors.NewEncodingErrorf(flow.TransactionFieldScript.String(), "transaction is missing its script")
	}

	if intent.ReferenceBlockID == flow.ZeroID {
		return errors.NewEncodingErrorf(flow.TransactionFieldRefBlockID.String(), "transaction is missing its reference block ID")
	}

	if intent.Payer == flow.EmptyAddress {
		return errors.NewEncodingErrorf(flow.TransactionFieldPayer.String(), "transaction is missing its payer")
	}

	return nil
}

func (v *TransactionValidator) checkGasLimit(tx *flow.SignedEnvelope) error {
	intent := tx.Payload.Intent()

	// if service account is the payer of the transaction accepts any gas limit
	// note that even though we don't enforce any limit here, exec node later
	// enforce a max value for any transaction
	if intent.Payer == v.serviceAccountAddress {
		return nil
	}
	if intent.GasLimit == 0 || (v.options.MaxGasLimit > 0 && intent.GasLimit > v.options.MaxGasLimit) {
		return errors.NewEncodingErrorf(flow.TransactionFieldGasLimit.String(), "transaction gas limit (%d) exceeds the maximum gas limit (%d) or is zero", intent.GasLimit, v.options.MaxGasLimit)
	}

	return nil
}

func (v *TransactionValidator) checkAddresses(tx *flow.SignedEnvelope) error {
	intent := tx.Payload.Intent()

	for _, address := range append(append([]flow.Address{}, intent.Authorizers...), intent.Payer, intent.ProposalKey.Address) {
		// objective validity only, essentially whether or not this
		// is a valid output of the address generator
		if !v.chain.IsValid(address) {
			return errors.NewEncodingErrorf("", "address %s is invalid on %s", address, v.chain.ChainID())
		}
	}

	return nil
}

// every key (account, key index combination) can only be used once for signing
func (v *TransactionValidator) checkSignatureDuplications(tx *flow.SignedEnvelope) error {
	observedSigs := make(map[string]bool)
	for _, sig := range append(append([]flow.TransactionSignature{}, tx.PayloadSignatures...), tx.EnvelopeSignatures...) {
		keyStr := sig.UniqueKeyString()
		if observedSigs[keyStr] {
			return errors.NewInternalFaultf("duplicated signature for key (address: %s, key index: %d)", sig.Address, sig.KeyIndex)
		}
		observedSigs[keyStr] = true
	}
	return nil
}

func (v *TransactionValidator) checkSignatureFormat(tx *flow.SignedEnvelope) error {

	for _, signature := range append(append([]flow.TransactionSignature{}, tx.PayloadSignatures...), tx.EnvelopeSignatures...) {
		// check the format of the signature is valid.
		// a valid signature is an ECDSA signature of either P-256 or secp256k1 curve.
		ecdsaSignature := signature.Signature

		// check if the signature could be a P-256 signature
		valid, err := crypto.SignatureFormatCheck(crypto.ECDSAP256, ecdsaSignature)
		if err != nil {
			return errors.NewInternalFaultf("could not check the signature format (%s): %w", signature, err)
		}
		if valid {
			continue
		}

		// check if the signature could be a secp256k1 signature
		valid, err = crypto.SignatureFormatCheck(crypto.ECDSASecp256k1, ecdsaSignature)
		if err != nil {
			return errors.NewInternalFaultf("could not check the signature format (%s): %w", signature, err)
		}
		if valid {
			continue
		}

		return errors.NewInternalFaultf("invalid signature (%s)", signature)
	}

	return nil
}
