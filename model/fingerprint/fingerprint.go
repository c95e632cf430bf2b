package fingerprint

import (
	"github.com/onflow/flow-signer/model/encoding"
)

// Fingerprinter is implemented by entities that provide their own canonical
// byte representation.
type Fingerprinter interface {
	Fingerprint() []byte
}

// Fingerprint returns the canonical byte representation of entity.
//
// If the entity implements Fingerprinter its fingerprint is used, otherwise
// the entity is encoded with the default canonical encoder.
func Fingerprint(entity interface{}) []byte {
	if fingerprinter, ok := entity.(Fingerprinter); ok {
		return fingerprinter.Fingerprint()
	}

	return encoding.DefaultEncoder.MustEncode(entity)
}
