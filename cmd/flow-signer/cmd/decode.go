package cmd

import (
	"os"
	"strings"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/spf13/cobra"

	"github.com/onflow/flow-signer/model/flow"
	"github.com/onflow/flow-signer/signer"
)

var (
	flagChain   string
	flagEncoded string
)

var decodeCmd = &cobra.Command{
	Use:   "decode",
	Short: "Decode an encoded signed transaction",
	Run:   runDecode,
}

func init() {
	rootCmd.AddCommand(decodeCmd)

	decodeCmd.Flags().StringVar(&flagChain, "chain", flow.Mainnet.String(), "chain ID of the transaction")
	decodeCmd.Flags().StringVar(&flagEncoded, "encoded", "", "hex encoded transaction, read from stdin when empty")
}

type decodedSignature struct {
	Address   string `json:"address"`
	KeyIndex  uint32 `json:"key_index"`
	Signature string `json:"signature"`
}

type decodedProposalKey struct {
	Address        string `json:"address"`
	KeyIndex       uint32 `json:"key_index"`
	SequenceNumber uint64 `json:"sequence_number"`
}

type decodedTransaction struct {
	ID                 string             `json:"id"`
	URL                string             `json:"url"`
	Script             string             `json:"script"`
	Arguments          []flow.Argument    `json:"arguments"`
	ReferenceBlockID   string             `json:"reference_block_id"`
	GasLimit           uint64             `json:"gas_limit"`
	ProposalKey        decodedProposalKey `json:"proposal_key"`
	Payer              string             `json:"payer"`
	Authorizers        []string           `json:"authorizers"`
	PayloadSignatures  []decodedSignature `json:"payload_signatures"`
	EnvelopeSignatures []decodedSignature `json:"envelope_signatures"`
}

func runDecode(*cobra.Command, []string) {
	encoded := flagEncoded
	if encoded == "" {
		encoded = string(readFile("-"))
	}
	encoded = strings.TrimSpace(encoded)
	if !strings.HasPrefix(encoded, "0x") {
		encoded = "0x" + encoded
	}

	b, err := hexutil.Decode(encoded)
	if err != nil {
		log.Fatal().Err(err).Msg("transaction is not hex encoded")
	}

	s, err := signer.New(signer.WithLogger(log), signer.WithConfig(loadConfig()))
	if err != nil {
		log.Fatal().Err(err).Msg("could not create signer")
	}
	network, err := s.Networks().ByChainID(flow.ChainID(flagChain))
	if err != nil {
		log.Fatal().Err(err).Msg("unsupported chain")
	}

	envelope, err := network.DecodeTransaction(b)
	if err != nil {
		log.Fatal().Err(err).Msg("could not decode transaction")
	}

	writeJSON(os.Stdout, describe(envelope))
}

func describe(envelope *flow.SignedEnvelope) decodedTransaction {
	intent := envelope.Payload.Intent()

	authorizers := make([]string, 0, len(intent.Authorizers))
	for _, a := range intent.Authorizers {
		authorizers = append(authorizers, a.Hex())
	}

	id := envelope.ID()
	return decodedTransaction{
		ID:                 id.String(),
		URL:                flow.TransactionURL(id),
		Script:             string(intent.Script),
		Arguments:          intent.Arguments,
		ReferenceBlockID:   intent.ReferenceBlockID.String(),
		GasLimit:           intent.GasLimit,
		ProposalKey: decodedProposalKey{
			Address:        intent.ProposalKey.Address.Hex(),
			KeyIndex:       intent.ProposalKey.KeyIndex,
			SequenceNumber: intent.ProposalKey.SequenceNumber,
		},
		Payer:              intent.Payer.Hex(),
		Authorizers:        authorizers,
		PayloadSignatures:  describeSignatures(envelope.PayloadSignatures),
		EnvelopeSignatures: describeSignatures(envelope.EnvelopeSignatures),
	}
}

func describeSignatures(sigs []flow.TransactionSignature) []decodedSignature {
	described := make([]decodedSignature, 0, len(sigs))
	for _, sig := range sigs {
		described = append(described, decodedSignature{
			Address:   sig.Address.Hex(),
			KeyIndex:  sig.KeyIndex,
			Signature: hexutil.Encode(sig.Signature),
		})
	}
	return described
}
