package signer

import (
	"github.com/rs/zerolog"

	"github.com/onflow/flow-signer/access"
	"github.com/onflow/flow-signer/module"
	"github.com/onflow/flow-signer/module/encoder"
	"github.com/onflow/flow-signer/module/metrics"
)

const (
	// DefaultMaxGasLimit is the largest gas limit access nodes accept.
	DefaultMaxGasLimit = 9999
	// DefaultMaxTransactionByteSize is the largest encoded transaction access nodes accept.
	DefaultMaxTransactionByteSize = 1_500_000
	// DefaultMaxArgumentCount bounds the number of script arguments.
	DefaultMaxArgumentCount = 100
	// DefaultBatchWorkers is the number of requests of a batch signed at once.
	DefaultBatchWorkers = 8
)

// Config bounds the transactions the signer produces.
type Config struct {
	MaxGasLimit            uint64 `mapstructure:"max-gas-limit"`
	MaxTransactionByteSize uint64 `mapstructure:"max-transaction-byte-size"`
	MaxArgumentCount       int    `mapstructure:"max-argument-count"`
	BatchWorkers           int    `mapstructure:"batch-workers"`
}

func DefaultConfig() Config {
	return Config{
		MaxGasLimit:            DefaultMaxGasLimit,
		MaxTransactionByteSize: DefaultMaxTransactionByteSize,
		MaxArgumentCount:       DefaultMaxArgumentCount,
		BatchWorkers:           DefaultBatchWorkers,
	}
}

func (c Config) encoderLimits() encoder.Limits {
	return encoder.Limits{
		MaxGasLimit:            c.MaxGasLimit,
		MaxTransactionByteSize: c.MaxTransactionByteSize,
		MaxArgumentCount:       c.MaxArgumentCount,
	}
}

func (c Config) validationOptions() access.TransactionValidationOptions {
	return access.TransactionValidationOptions{
		MaxGasLimit:                c.MaxGasLimit,
		MaxTransactionByteSize:     c.MaxTransactionByteSize,
	}
}

type settings struct {
	log      zerolog.Logger
	metrics  module.SigningMetrics
	config   Config
	networks []module.Network
}

func defaultSettings() *settings {
	return &settings{
		log:     zerolog.Nop(),
		metrics: metrics.NewNoopCollector(),
		config:  DefaultConfig(),
	}
}

// Option configures a Signer.
type Option func(*settings)

func WithLogger(log zerolog.Logger) Option {
	return func(s *settings) {
		s.log = log
	}
}

func WithMetrics(metrics module.SigningMetrics) Option {
	return func(s *settings) {
		s.metrics = metrics
	}
}

func WithConfig(config Config) Option {
	return func(s *settings) {
		s.config = config
	}
}

// WithNetwork registers network, replacing the built in network of its chain.
func WithNetwork(network module.Network) Option {
	return func(s *settings) {
		s.networks = append(s.networks, network)
	}
}
