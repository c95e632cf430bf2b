package module

import (
	"time"
)

// SigningMetrics tracks the signing pipeline.
type SigningMetrics interface {
	// TransactionSigned reports a signing request that produced a transaction
	// of byteSize bytes in duration.
	TransactionSigned(chain string, duration time.Duration, byteSize int)

	// TransactionSigningFailed reports a failed signing request with the error code
	// it failed with.
	TransactionSigningFailed(chain string, code string)

	// SignatureProduced reports one verified signature in the given role.
	SignatureProduced(role string, algorithm string, duration time.Duration)

	// BatchSigned reports a batch of signing requests and the time it took to sign all of them.
	BatchSigned(size int, duration time.Duration)
}
