package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/onflow/flow-signer/module"
)

// SigningCollector the metrics for the signing pipeline
type SigningCollector struct {
	transactionsSigned     *prometheus.CounterVec
	transactionSigningTime *prometheus.HistogramVec
	transactionByteSize    *prometheus.HistogramVec
	transactionsFailed     *prometheus.CounterVec
	signaturesProduced     *prometheus.CounterVec
	signatureDuration      *prometheus.HistogramVec
	batchSize              prometheus.Histogram
	batchSigningTime       prometheus.Histogram
}

// interface check
var _ module.SigningMetrics = (*SigningCollector)(nil)

// NewSigningCollector creates new instance of SigningCollector, registering its
// metrics with registerer.
func NewSigningCollector(registerer prometheus.Registerer) *SigningCollector {
	factory := promauto.With(registerer)

	return &SigningCollector{
		transactionsSigned: factory.NewCounterVec(prometheus.CounterOpts{
			Name:      "signed_total",
			Namespace: namespaceSigner,
			Subsystem: subsystemTransaction,
			Help:      "counter for the signed transactions",
		}, []string{LabelChain}),
		transactionSigningTime: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:      "signing_duration_seconds",
			Namespace: namespaceSigner,
			Subsystem: subsystemTransaction,
			Help:      "the duration of signing requests that produced a transaction",
			Buckets:   []float64{.001, .005, .01, .05, .1, .5, 1, 5},
		}, []string{LabelChain}),
		transactionByteSize: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:      "size_bytes",
			Namespace: namespaceSigner,
			Subsystem: subsystemTransaction,
			Help:      "the size of encoded signed transactions",
			Buckets:   prometheus.ExponentialBuckets(128, 2, 14),
		}, []string{LabelChain}),
		transactionsFailed: factory.NewCounterVec(prometheus.CounterOpts{
			Name:      "signing_failed_total",
			Namespace: namespaceSigner,
			Subsystem: subsystemTransaction,
			Help:      "counter for the failed signing requests",
		}, []string{LabelChain, LabelErrorCode}),
		signaturesProduced: factory.NewCounterVec(prometheus.CounterOpts{
			Name:      "produced_total",
			Namespace: namespaceSigner,
			Subsystem: subsystemSignature,
			Help:      "counter for the verified signatures",
		}, []string{LabelRole, LabelAlgorithm}),
		signatureDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:      "duration_seconds",
			Namespace: namespaceSigner,
			Subsystem: subsystemSignature,
			Help:      "the duration of a key handle signing and the verification of its signature",
			Buckets:   []float64{.0005, .001, .005, .01, .05, .1, .5, 1},
		}, []string{LabelAlgorithm}),
		batchSize: factory.NewHistogram(prometheus.HistogramOpts{
			Name:      "size",
			Namespace: namespaceSigner,
			Subsystem: subsystemBatch,
			Help:      "the number of requests in signed batches",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 12),
		}),
		batchSigningTime: factory.NewHistogram(prometheus.HistogramOpts{
			Name:      "duration_seconds",
			Namespace: namespaceSigner,
			Subsystem: subsystemBatch,
			Help:      "the duration of signing a batch",
			Buckets:   prometheus.ExponentialBuckets(.001, 4, 10),
		}),
	}
}

// TransactionSigned tracks transactions produced by signing requests
func (sc *SigningCollector) TransactionSigned(chain string, duration time.Duration, byteSize int) {
	sc.transactionsSigned.WithLabelValues(chain).Inc()
	sc.transactionSigningTime.WithLabelValues(chain).Observe(duration.Seconds())
	sc.transactionByteSize.WithLabelValues(chain).Observe(float64(byteSize))
}

// TransactionSigningFailed tracks failed signing requests with their error code
func (sc *SigningCollector) TransactionSigningFailed(chain string, code string) {
	sc.transactionsFailed.WithLabelValues(chain, code).Inc()
}

// SignatureProduced tracks verified signatures
func (sc *SigningCollector) SignatureProduced(role string, algorithm string, duration time.Duration) {
	sc.signaturesProduced.WithLabelValues(role, algorithm).Inc()
	sc.signatureDuration.WithLabelValues(algorithm).Observe(duration.Seconds())
}

// BatchSigned tracks signed batches
func (sc *SigningCollector) BatchSigned(size int, duration time.Duration) {
	sc.batchSize.Observe(float64(size))
	sc.batchSigningTime.Observe(duration.Seconds())
}
