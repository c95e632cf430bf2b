package metrics

// Prometheus metric namespaces
const (
	namespaceSigner = "signer"
)

// signer subsystems
const (
	subsystemTransaction = "transaction"
	subsystemSignature   = "signature"
	subsystemBatch       = "batch"
)
