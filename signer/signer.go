package signer

import (
	"context"
	"time"

	"github.com/gammazero/workerpool"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/onflow/flow-signer/crypto"
	"github.com/onflow/flow-signer/model/errors"
	"github.com/onflow/flow-signer/model/flow"
	"github.com/onflow/flow-signer/model/signing"
	"github.com/onflow/flow-signer/module"
	"github.com/onflow/flow-signer/module/assembler"
	"github.com/onflow/flow-signer/module/blueprints"
	"github.com/onflow/flow-signer/module/codec"
	"github.com/onflow/flow-signer/module/digest"
	"github.com/onflow/flow-signer/module/signature"
	"github.com/onflow/flow-signer/utils/logging"
)

// Signer turns signing inputs into signed transactions.
//
// A Signer keeps no state between requests and is safe for concurrent use.
// Key handles are only used during the request that carries them.
type Signer struct {
	log      zerolog.Logger
	metrics  module.SigningMetrics
	config   Config
	networks *Networks
}

func New(opts ...Option) (*Signer, error) {
	s := defaultSettings()
	for _, apply := range opts {
		apply(s)
	}

	networks, err := NewNetworks(s.config, s.log, s.metrics, s.networks...)
	if err != nil {
		return nil, err
	}

	return &Signer{
		log:      s.log.With().Str("component", "transaction_signer").Logger(),
		metrics:  s.metrics,
		config:   s.config,
		networks: networks,
	}, nil
}

// Networks returns the networks the signer signs for.
func (s *Signer) Networks() *Networks {
	return s.networks
}

// slot is a key slot resolved against the transaction intent.
type slot struct {
	address  flow.Address
	keyIndex uint32
	role     digest.Role
	handle   crypto.KeyHandle
}

// Sign produces the signed transaction described by input.
//
// The request either yields the full encoded transaction with ErrorCode
// None, or empty bytes with the code of the first stage that failed. Once
// a stage fails, no later stage runs: in particular no key handle signs
// anything if the transaction cannot be encoded.
func (s *Signer) Sign(ctx context.Context, input *signing.SigningInput) signing.SigningOutput {
	start := time.Now()

	chainID := ""
	if input != nil {
		chainID = input.ChainID
	}
	log := s.log.With().Str("chain", chainID).Logger()

	envelope, network, err := s.sign(ctx, log, input)

	var output signing.SigningOutput
	if err != nil {
		output = codec.Failure(err)
	} else {
		output = network.Output(envelope)
	}

	if output.Failed() {
		s.metrics.TransactionSigningFailed(chainID, output.ErrorCode.String())
		log.Warn().
			Str("error_code", output.ErrorCode.String()).
			Str("error", output.ErrorMessage).
			Msg("could not sign transaction")
		return output
	}

	s.metrics.TransactionSigned(chainID, time.Since(start), len(output.Encoded))
	log.Info().
		Str("tx_id", output.TransactionID).
		Int("size", len(output.Encoded)).
		Msg("transaction signed")

	return output
}

func (s *Signer) sign(ctx context.Context, log zerolog.Logger, input *signing.SigningInput) (*flow.SignedEnvelope, module.Network, error) {
	if input == nil {
		return nil, nil, errors.NewEncodingErrorf("", "signing input must not be nil")
	}

	err := input.Validate()
	if err != nil {
		return nil, nil, err
	}

	network, err := s.networks.ByChainID(flow.ChainID(input.ChainID))
	if err != nil {
		return nil, nil, err
	}

	untrusted, err := untrustedIntent(network.Chain(), input)
	if err != nil {
		return nil, nil, err
	}

	intent, err := network.NewIntent(untrusted)
	if err != nil {
		return nil, nil, err
	}

	payload, err := network.Encode(intent)
	if err != nil {
		return nil, nil, err
	}
	log = log.With().Hex("payload_id", payload.ID().Bytes()).Logger()
	log.Debug().
		Str("payer", intent.Payer.Hex()).
		Strs("authorizers", logging.Addresses(intent.Authorizers)).
		Strs("handles", input.HandleIDs()).
		Msg("transaction encoded")

	payloadSlots, envelopeSlots, err := resolveSlots(intent, input.Keys)
	if err != nil {
		return nil, nil, err
	}

	payloadDigest, err := network.DigestFor(digest.RolePayload, payload, nil)
	if err != nil {
		return nil, nil, err
	}
	payloadSigs, err := signSlots(ctx, network, intent, payloadDigest, payloadSlots)
	if err != nil {
		return nil, nil, err
	}
	log.Debug().Int("signatures", len(payloadSigs)).Msg("payload signed")

	envelopeDigest, err := network.DigestFor(digest.RoleEnvelope, payload, payloadSigs)
	if err != nil {
		return nil, nil, err
	}
	envelopeSigs, err := signSlots(ctx, network, intent, envelopeDigest, envelopeSlots)
	if err != nil {
		return nil, nil, err
	}
	log.Debug().Int("signatures", len(envelopeSigs)).Msg("envelope signed")

	envelope, err := network.Assemble(payload, payloadSigs, envelopeSigs)
	if err != nil {
		return nil, nil, err
	}

	return envelope, network, nil
}

// SignBatch signs independent inputs concurrently. The i-th output is the
// output of the i-th input.
func (s *Signer) SignBatch(ctx context.Context, inputs []*signing.SigningInput) []signing.SigningOutput {
	start := time.Now()
	outputs := make([]signing.SigningOutput, len(inputs))
	if len(inputs) == 0 {
		return outputs
	}

	workers := s.config.BatchWorkers
	if workers <= 0 {
		workers = DefaultBatchWorkers
	}

	wp := workerpool.New(workers)
	for i, input := range inputs {
		i, input := i, input
		wp.Submit(func() {
			outputs[i] = s.Sign(ctx, input)
		})
	}
	wp.StopWait()

	s.metrics.BatchSigned(len(inputs), time.Since(start))
	return outputs
}

func untrustedIntent(chain *flow.Chain, input *signing.SigningInput) (flow.UntrustedTransactionIntent, error) {
	var untrusted flow.UntrustedTransactionIntent

	script, args := []byte(input.Script), input.Arguments
	if input.Transfer != nil {
		to, err := flow.StringToAddress(input.Transfer.To)
		if err != nil {
			return untrusted, errors.EncodingError{Field: "transfer.to", Err: err}
		}
		transfer, err := blueprints.TransferTokensScript(chain, input.Transfer.Amount, to)
		if err != nil {
			return untrusted, errors.EncodingError{Field: "transfer", Err: err}
		}
		if len(input.Authorizers) != transfer.Authorizers {
			return untrusted, errors.NewEncodingErrorf(flow.TransactionFieldAuthorizers.String(), "transfer takes %d authorizer, got %d", transfer.Authorizers, len(input.Authorizers))
		}
		script, args = transfer.Code, transfer.Arguments
	}

	refID, err := flow.HexStringToIdentifier(input.ReferenceBlockID)
	if err != nil {
		return untrusted, errors.EncodingError{Field: flow.TransactionFieldRefBlockID.String(), Err: err}
	}

	proposer, err := flow.StringToAddress(input.ProposalKey.Address)
	if err != nil {
		return untrusted, errors.EncodingError{Field: flow.TransactionFieldProposalKey.String(), Err: err}
	}

	payer, err := flow.StringToAddress(input.Payer)
	if err != nil {
		return untrusted, errors.EncodingError{Field: flow.TransactionFieldPayer.String(), Err: err}
	}

	authorizers := make([]flow.Address, len(input.Authorizers))
	for i, a := range input.Authorizers {
		authorizers[i], err = flow.StringToAddress(a)
		if err != nil {
			return untrusted, errors.EncodingError{Field: flow.TransactionFieldAuthorizers.String(), Err: err}
		}
	}

	return flow.UntrustedTransactionIntent{
		ChainID:          chain.ChainID(),
		Script:           script,
		Arguments:        args,
		ReferenceBlockID: refID,
		GasLimit:         input.GasLimit,
		ProposalKey: flow.ProposalKey{
			Address:        proposer,
			KeyIndex:       input.ProposalKey.KeyIndex,
			SequenceNumber: input.ProposalKey.SequenceNumber,
		},
		Payer:       payer,
		Authorizers: authorizers,
	}, nil
}

// resolveSlots splits keys into payload and envelope slots and checks,
// before anything is signed, that the slots are consistent and complete.
//
// Expected errors during normal operations:
//   - errors.InternalFault if two slots share an account key or a slot
//     belongs to an account that is not a signer
//   - errors.SigningError if a handle is missing or uses other algorithms
//     than the account key declares
//   - errors.IncompleteAuthorizationError if a required signature has no slot
func resolveSlots(intent *flow.TransactionIntent, keys []signing.KeySlot) ([]slot, []slot, error) {
	seen := make(map[string]struct{}, len(keys))
	var payloadSlots, envelopeSlots []slot
	var payloadKeys, envelopeKeys []flow.TransactionSignature

	for _, key := range keys {
		address, err := flow.StringToAddress(key.Address)
		if err != nil {
			return nil, nil, errors.EncodingError{Field: "keys.address", Err: err}
		}

		placeholder, err := intent.NewSignature(address, key.KeyIndex, nil)
		if err != nil {
			return nil, nil, errors.InternalFault{Err: err}
		}
		if _, ok := seen[placeholder.UniqueKeyString()]; ok {
			return nil, nil, errors.NewInternalFaultf("duplicate key slot for account key %s", placeholder.UniqueKeyString())
		}
		seen[placeholder.UniqueKeyString()] = struct{}{}

		err = signature.CheckCompatible(
			key.Handle,
			crypto.StringToSignatureAlgorithm(key.SignatureAlgorithm),
			crypto.StringToHashAlgorithm(key.HashAlgorithm),
		)
		if err != nil {
			return nil, nil, err
		}

		s := slot{
			address:  address,
			keyIndex: key.KeyIndex,
			role:     digest.RoleOf(intent, address),
			handle:   key.Handle,
		}
		if s.role == digest.RoleEnvelope {
			envelopeSlots = append(envelopeSlots, s)
			envelopeKeys = append(envelopeKeys, placeholder)
		} else {
			payloadSlots = append(payloadSlots, s)
			payloadKeys = append(payloadKeys, placeholder)
		}
	}

	err := assembler.CheckCoverage(intent, payloadKeys, envelopeKeys)
	if err != nil {
		return nil, nil, err
	}

	return payloadSlots, envelopeSlots, nil
}

// signSlots signs d with every slot concurrently. The signatures are
// returned in slot order.
func signSlots(ctx context.Context, network module.Network, intent *flow.TransactionIntent, d digest.Digest, slots []slot) ([]flow.TransactionSignature, error) {
	sigs := make([]flow.TransactionSignature, len(slots))

	g, gctx := errgroup.WithContext(ctx)
	for i, s := range slots {
		i, s := i, s
		g.Go(func() error {
			sig, err := network.Sign(gctx, d, s.handle)
			if err != nil {
				return err
			}
			sigs[i], err = intent.NewSignature(s.address, s.keyIndex, sig)
			if err != nil {
				return errors.InternalFault{Err: err}
			}
			return nil
		})
	}

	err := g.Wait()
	if err != nil {
		return nil, err
	}
	return sigs, nil
}
