package assembler

import (
	"github.com/onflow/flow-signer/model/errors"
	"github.com/onflow/flow-signer/model/flow"
)

const (
	RoleProposer   = "proposer"
	RolePayer      = "payer"
	RoleAuthorizer = "authorizer"
)

// Assemble combines payload with its payload and envelope signatures.
//
// Signer indices are assigned from the payload's signer list and both
// signature sets are sorted by signer index, then key index, so the
// result does not depend on the order of the inputs. Assembling the same
// signature sets again yields identical bytes.
//
// Expected errors during normal operations:
//   - errors.IncompleteAuthorizationError if the payer has no envelope
//     signature, an authorizer other than the payer has no payload signature
//     or the proposal key has no signature in its role
//   - errors.InternalFault if two signatures share an account key, a
//     signature belongs to an account that is not a signer or is empty, or
//     a signature is in the wrong role
func Assemble(
	payload *flow.CanonicalPayload,
	payloadSignatures []flow.TransactionSignature,
	envelopeSignatures []flow.TransactionSignature,
) (*flow.SignedEnvelope, error) {
	if payload == nil {
		return nil, errors.NewInternalFaultf("payload must not be nil")
	}
	intent := payload.Intent()

	seen := make(map[string]struct{}, len(payloadSignatures)+len(envelopeSignatures))

	resolve := func(sigs []flow.TransactionSignature, envelope bool) ([]flow.TransactionSignature, error) {
		resolved := make([]flow.TransactionSignature, 0, len(sigs))
		for _, sig := range sigs {
			key := sig.UniqueKeyString()
			if _, ok := seen[key]; ok {
				return nil, errors.NewInternalFaultf("duplicate signature for account key %s", key)
			}
			seen[key] = struct{}{}

			if len(sig.Signature) == 0 {
				return nil, errors.NewInternalFaultf("empty signature for account key %s", key)
			}
			if intent.IsPayer(sig.Address) != envelope {
				if envelope {
					return nil, errors.NewInternalFaultf("account %s is not the payer and cannot sign the envelope", sig.Address)
				}
				return nil, errors.NewInternalFaultf("payer %s cannot sign the payload", sig.Address)
			}

			s, err := intent.NewSignature(sig.Address, sig.KeyIndex, sig.Signature)
			if err != nil {
				return nil, errors.InternalFault{Err: err}
			}
			resolved = append(resolved, s)
		}
		return resolved, nil
	}

	payloadSigs, err := resolve(payloadSignatures, false)
	if err != nil {
		return nil, err
	}
	envelopeSigs, err := resolve(envelopeSignatures, true)
	if err != nil {
		return nil, err
	}

	missing := missingAuthorizations(intent, payloadSigs, envelopeSigs)
	if len(missing) > 0 {
		return nil, errors.IncompleteAuthorizationError{Missing: missing}
	}

	envelope, err := flow.NewSignedEnvelope(flow.UntrustedSignedEnvelope{
		Payload:            payload,
		PayloadSignatures:  payloadSigs,
		EnvelopeSignatures: envelopeSigs,
	})
	if err != nil {
		return nil, errors.NewInternalFaultf("could not construct envelope: %w", err)
	}

	return envelope, nil
}

func missingAuthorizations(
	intent *flow.TransactionIntent,
	payloadSigs []flow.TransactionSignature,
	envelopeSigs []flow.TransactionSignature,
) []errors.MissingAuthorization {
	signed := func(sigs []flow.TransactionSignature, address flow.Address) bool {
		for _, sig := range sigs {
			if sig.Address == address {
				return true
			}
		}
		return false
	}
	signedWithKey := func(sigs []flow.TransactionSignature, address flow.Address, keyIndex uint32) bool {
		for _, sig := range sigs {
			if sig.Address == address && sig.KeyIndex == keyIndex {
				return true
			}
		}
		return false
	}

	var missing []errors.MissingAuthorization

	proposal := intent.ProposalKey
	proposerSigs := payloadSigs
	if intent.IsPayer(proposal.Address) {
		proposerSigs = envelopeSigs
	}
	if !signedWithKey(proposerSigs, proposal.Address, proposal.KeyIndex) {
		keyIndex := proposal.KeyIndex
		missing = append(missing, errors.MissingAuthorization{
			Address:  proposal.Address,
			Role:     RoleProposer,
			KeyIndex: &keyIndex,
		})
	}

	if !signed(envelopeSigs, intent.Payer) {
		missing = append(missing, errors.MissingAuthorization{
			Address: intent.Payer,
			Role:    RolePayer,
		})
	}

	for _, authorizer := range intent.Authorizers {
		if intent.IsPayer(authorizer) {
			continue
		}
		if !signed(payloadSigs, authorizer) {
			missing = append(missing, errors.MissingAuthorization{
				Address: authorizer,
				Role:    RoleAuthorizer,
			})
		}
	}

	return missing
}

// CheckCoverage checks that signatures of the given account keys would
// complete intent. Only the addresses and key indices of the signatures are
// read, so it can run before any key signs.
//
// Expected errors during normal operations:
//   - errors.IncompleteAuthorizationError if a required signature is not covered
func CheckCoverage(intent *flow.TransactionIntent, payloadKeys []flow.TransactionSignature, envelopeKeys []flow.TransactionSignature) error {
	missing := missingAuthorizations(intent, payloadKeys, envelopeKeys)
	if len(missing) > 0 {
		return errors.IncompleteAuthorizationError{Missing: missing}
	}
	return nil
}
