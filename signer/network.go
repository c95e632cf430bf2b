package signer

import (
	"context"

	"github.com/rs/zerolog"
	"golang.org/x/exp/slices"

	"github.com/onflow/flow-signer/access"
	"github.com/onflow/flow-signer/crypto"
	"github.com/onflow/flow-signer/model/errors"
	"github.com/onflow/flow-signer/model/flow"
	"github.com/onflow/flow-signer/model/signing"
	"github.com/onflow/flow-signer/module"
	"github.com/onflow/flow-signer/module/assembler"
	"github.com/onflow/flow-signer/module/codec"
	"github.com/onflow/flow-signer/module/digest"
	"github.com/onflow/flow-signer/module/encoder"
	"github.com/onflow/flow-signer/module/signature"
)

// FlowNetwork signs transactions of one Flow chain.
type FlowNetwork struct {
	chain   *flow.Chain
	encoder *encoder.Encoder
	signer  *signature.Signer
	codec   *codec.Codec
}

var _ module.Network = (*FlowNetwork)(nil)

// NewFlowNetwork returns the network of chainID.
//
// Expected errors during normal operations:
//   - errors.EncodingError if the chain is not supported
func NewFlowNetwork(chainID flow.ChainID, config Config, log zerolog.Logger, metrics module.SigningMetrics) (*FlowNetwork, error) {
	chain, err := chainID.Chain()
	if err != nil {
		return nil, errors.EncodingError{Field: flow.TransactionFieldChainID.String(), Err: err}
	}

	enc := encoder.New(chainID, config.encoderLimits())
	validator := access.NewTransactionValidator(chain, config.validationOptions())

	return &FlowNetwork{
		chain:   chain,
		encoder: enc,
		signer:  signature.NewSigner(log.With().Str("chain", chainID.String()).Logger(), metrics),
		codec:   codec.New(enc, validator),
	}, nil
}

func (n *FlowNetwork) ChainID() flow.ChainID {
	return n.chain.ChainID()
}

func (n *FlowNetwork) Chain() *flow.Chain {
	return n.chain
}

func (n *FlowNetwork) NewIntent(untrusted flow.UntrustedTransactionIntent) (*flow.TransactionIntent, error) {
	return n.encoder.NewIntent(untrusted)
}

func (n *FlowNetwork) Encode(intent *flow.TransactionIntent) (*flow.CanonicalPayload, error) {
	return n.encoder.Encode(intent)
}

func (n *FlowNetwork) DigestFor(role digest.Role, payload *flow.CanonicalPayload, payloadSignatures []flow.TransactionSignature) (digest.Digest, error) {
	return digest.DigestFor(role, payload, payloadSignatures)
}

func (n *FlowNetwork) Sign(ctx context.Context, d digest.Digest, key crypto.KeyHandle) ([]byte, error) {
	return n.signer.Sign(ctx, d, key)
}

func (n *FlowNetwork) Assemble(payload *flow.CanonicalPayload, payloadSignatures []flow.TransactionSignature, envelopeSignatures []flow.TransactionSignature) (*flow.SignedEnvelope, error) {
	return assembler.Assemble(payload, payloadSignatures, envelopeSignatures)
}

func (n *FlowNetwork) Output(envelope *flow.SignedEnvelope) signing.SigningOutput {
	return n.codec.ToOutput(envelope, nil)
}

func (n *FlowNetwork) DecodeTransaction(encoded []byte) (*flow.SignedEnvelope, error) {
	return n.codec.DecodeTransaction(encoded)
}

// Networks holds the network of every supported chain.
type Networks struct {
	networks map[flow.ChainID]module.Network
}

// NewNetworks registers a FlowNetwork for every known chain, then the
// given networks, which replace the built in network of their chain.
func NewNetworks(config Config, log zerolog.Logger, metrics module.SigningMetrics, networks ...module.Network) (*Networks, error) {
	registered := make(map[flow.ChainID]module.Network, len(flow.AllChainIDs())+len(networks))
	for _, chainID := range flow.AllChainIDs() {
		network, err := NewFlowNetwork(chainID, config, log, metrics)
		if err != nil {
			return nil, err
		}
		registered[chainID] = network
	}
	for _, network := range networks {
		registered[network.ChainID()] = network
	}
	return &Networks{networks: registered}, nil
}

// ByChainID returns the network of chainID.
//
// Expected errors during normal operations:
//   - errors.EncodingError if no network is registered for chainID
func (n *Networks) ByChainID(chainID flow.ChainID) (module.Network, error) {
	network, ok := n.networks[chainID]
	if !ok {
		return nil, errors.NewEncodingErrorf(flow.TransactionFieldChainID.String(), "chain ID %q is not supported", chainID)
	}
	return network, nil
}

// ChainIDs returns the chains with a registered network.
func (n *Networks) ChainIDs() []flow.ChainID {
	ids := make([]flow.ChainID, 0, len(n.networks))
	for id := range n.networks {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}
