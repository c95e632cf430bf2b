package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/onflow/flow-signer/model/signing"
	"github.com/onflow/flow-signer/module/metrics"
	"github.com/onflow/flow-signer/signer"
)

var (
	flagInput       string
	flagKeys        string
	flagBatch       bool
	flagMetricsFile string
)

var signCmd = &cobra.Command{
	Use:   "sign",
	Short: "Sign a transaction described by a signing input",
	Long: `Sign reads a JSON signing input and signs it with the keys of the keys file.

The key slots of the input are replaced by the keys of the keys file. With
--batch the input is a JSON array of signing inputs, all signed with the same
keys. The signing output is written to stdout as JSON.`,
	Run: runSign,
}

func init() {
	rootCmd.AddCommand(signCmd)

	signCmd.Flags().StringVar(&flagInput, "input", "-", "path to the JSON signing input, - for stdin")
	signCmd.Flags().StringVar(&flagKeys, "keys", "", "path to the keys file")
	_ = signCmd.MarkFlagRequired("keys")
	signCmd.Flags().BoolVar(&flagBatch, "batch", false, "the input is an array of signing inputs")
	signCmd.Flags().StringVar(&flagMetricsFile, "metrics-file", "", "write signing metrics to this file in the prometheus text format")
}

func runSign(*cobra.Command, []string) {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	specs, err := readKeySpecs(flagKeys)
	if err != nil {
		log.Fatal().Err(err).Msg("could not read keys")
	}
	slots, err := keySlots(ctx, specs)
	if err != nil {
		log.Fatal().Err(err).Msg("could not load keys")
	}

	inputs := readInputs(flagInput, flagBatch)
	for _, input := range inputs {
		input.Keys = slots
	}

	registry := prometheus.NewRegistry()
	s, err := signer.New(
		signer.WithLogger(log),
		signer.WithMetrics(metrics.NewSigningCollector(registry)),
		signer.WithConfig(loadConfig()),
	)
	if err != nil {
		log.Fatal().Err(err).Msg("could not create signer")
	}

	var outputs []signing.SigningOutput
	if flagBatch {
		outputs = s.SignBatch(ctx, inputs)
	} else {
		outputs = []signing.SigningOutput{s.Sign(ctx, inputs[0])}
	}

	if flagMetricsFile != "" {
		if err := prometheus.WriteToTextfile(flagMetricsFile, registry); err != nil {
			log.Error().Err(err).Str("file", flagMetricsFile).Msg("could not write metrics")
		}
	}

	failed := false
	for _, output := range outputs {
		failed = failed || output.Failed()
	}

	if flagBatch {
		writeJSON(os.Stdout, outputs)
	} else {
		writeJSON(os.Stdout, outputs[0])
	}

	if failed {
		os.Exit(1)
	}
}

func readInputs(path string, batch bool) []*signing.SigningInput {
	inputs, err := parseInputs(readFile(path), batch)
	if err != nil {
		log.Fatal().Err(err).Str("path", path).Msg("cannot read signing input")
	}
	return inputs
}

// parseInputs decodes one signing input, or with batch a non-empty array of
// signing inputs without null entries.
func parseInputs(data []byte, batch bool) ([]*signing.SigningInput, error) {
	if !batch {
		var input signing.SigningInput
		if err := json.Unmarshal(data, &input); err != nil {
			return nil, fmt.Errorf("cannot unmarshal signing input: %w", err)
		}
		return []*signing.SigningInput{&input}, nil
	}

	var inputs []*signing.SigningInput
	if err := json.Unmarshal(data, &inputs); err != nil {
		return nil, fmt.Errorf("cannot unmarshal signing inputs: %w", err)
	}
	if len(inputs) == 0 {
		return nil, fmt.Errorf("batch contains no signing inputs")
	}
	for i, input := range inputs {
		if input == nil {
			return nil, fmt.Errorf("batch entry %d is null", i)
		}
	}
	return inputs, nil
}

func readFile(path string) []byte {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		log.Fatal().Err(err).Str("path", path).Msg("cannot read input")
	}
	return data
}

func writeJSON(w io.Writer, v interface{}) {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		log.Fatal().Err(err).Msg("cannot marshal output")
	}
}
