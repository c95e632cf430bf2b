package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/onflow/flow-signer/signer"
)

// envPrefix prefixes the environment variables read for flags, e.g. FLOW_SIGNER_MAX_GAS_LIMIT.
const envPrefix = "FLOW_SIGNER"

var (
	flagConfig   string
	flagLogLevel string
	log          zerolog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "flow-signer",
	Short: "Sign Flow transactions offline",
	PersistentPreRun: func(*cobra.Command, []string) {
		initLogger()
	},
}

var RootCmd = rootCmd

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "path to a config file (json, yaml or toml)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "loglevel", "info", "level for logging output")
	addConfigFlags(rootCmd.PersistentFlags(), signer.DefaultConfig())

	_ = viper.BindPFlags(rootCmd.PersistentFlags())

	log = zerolog.New(zerolog.NewConsoleWriter(func(w *zerolog.ConsoleWriter) { w.Out = os.Stderr })).
		With().Timestamp().Logger()

	cobra.OnInitialize(initConfig)
}

// addConfigFlags registers a flag for every signer config key.
func addConfigFlags(flags *pflag.FlagSet, defaults signer.Config) {
	flags.Uint64("max-gas-limit", defaults.MaxGasLimit, "maximum gas limit of signed transactions")
	flags.Uint64("max-transaction-byte-size", defaults.MaxTransactionByteSize, "maximum size of signed transactions in bytes")
	flags.Int("max-argument-count", defaults.MaxArgumentCount, "maximum number of script arguments")
	flags.Int("batch-workers", defaults.BatchWorkers, "number of transactions of a batch signed at once")
}

func initConfig() {
	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	if flagConfig != "" {
		viper.SetConfigFile(flagConfig)
		if err := viper.ReadInConfig(); err != nil {
			fmt.Fprintf(os.Stderr, "could not read config file %s: %v\n", flagConfig, err)
			os.Exit(1)
		}
	}
}

func initLogger() {
	level, err := zerolog.ParseLevel(strings.ToLower(flagLogLevel))
	if err != nil {
		log.Fatal().Err(err).Str("level", flagLogLevel).Msg("invalid log level")
	}
	log = log.Level(level)
}

// loadConfig returns the signer config from flags, environment and config file.
func loadConfig() signer.Config {
	config := signer.DefaultConfig()
	if err := viper.Unmarshal(&config); err != nil {
		log.Fatal().Err(err).Msg("could not load signer config")
	}
	return config
}
