package metrics

import (
	"time"

	"github.com/onflow/flow-signer/module"
)

type NoopCollector struct{}

func NewNoopCollector() *NoopCollector {
	nc := &NoopCollector{}
	return nc
}

var _ module.SigningMetrics = (*NoopCollector)(nil)

func (nc *NoopCollector) TransactionSigned(chain string, duration time.Duration, byteSize int)    {}
func (nc *NoopCollector) TransactionSigningFailed(chain string, code string)                      {}
func (nc *NoopCollector) SignatureProduced(role string, algorithm string, duration time.Duration) {}
func (nc *NoopCollector) BatchSigned(size int, duration time.Duration)                            {}
