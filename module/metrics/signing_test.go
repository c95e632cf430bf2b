package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSigningCollector(t *testing.T) {
	registry := prometheus.NewRegistry()
	collector := NewSigningCollector(registry)

	collector.TransactionSigned("flow-emulator", 10*time.Millisecond, 512)
	collector.TransactionSigned("flow-emulator", 20*time.Millisecond, 1024)
	collector.TransactionSigningFailed("flow-emulator", "51")
	collector.SignatureProduced("payload", "ECDSA_P256", time.Millisecond)
	collector.SignatureProduced("envelope", "ECDSA_P256", time.Millisecond)
	collector.BatchSigned(2, 30*time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(collector.transactionsSigned.WithLabelValues("flow-emulator")))
	assert.Equal(t, 1.0, testutil.ToFloat64(collector.transactionsFailed.WithLabelValues("flow-emulator", "51")))
	assert.Equal(t, 0.0, testutil.ToFloat64(collector.transactionsFailed.WithLabelValues("flow-emulator", "1")))
	assert.Equal(t, 1.0, testutil.ToFloat64(collector.signaturesProduced.WithLabelValues("envelope", "ECDSA_P256")))

	count, err := testutil.GatherAndCount(registry, "signer_transaction_size_bytes", "signer_batch_size")
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestCollectorsDoNotShareRegistries(t *testing.T) {
	assert.NotPanics(t, func() {
		NewSigningCollector(prometheus.NewRegistry())
		NewSigningCollector(prometheus.NewRegistry())
	})
	assert.Panics(t, func() {
		registry := prometheus.NewRegistry()
		NewSigningCollector(registry)
		NewSigningCollector(registry)
	})
}
