package flow

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/onflow/crypto/hash"

	"github.com/onflow/flow-signer/model/fingerprint"
)

// IdentifierLen is the size of an Identifier in bytes.
const IdentifierLen = 32

// Identifier represents a 32-byte unique identifier for an entity, such as
// the reference block of a transaction or the transaction itself.
type Identifier [IdentifierLen]byte

// ZeroID is the lowest value in the 32-byte ID space.
var ZeroID = Identifier{}

// HexStringToIdentifier converts a hex string, with or without the 0x prefix, to an identifier.
func HexStringToIdentifier(hexString string) (Identifier, error) {
	var identifier Identifier
	b, err := hex.DecodeString(strings.TrimPrefix(hexString, "0x"))
	if err != nil {
		return identifier, fmt.Errorf("identifier %q is not hex encoded: %w", hexString, err)
	}
	if len(b) != IdentifierLen {
		return identifier, fmt.Errorf("malformed input, expected %d bytes (%d hex chars), decoded %d", IdentifierLen, hex.EncodedLen(IdentifierLen), len(b))
	}
	copy(identifier[:], b)
	return identifier, nil
}

// MustHexStringToIdentifier converts a hex string to an identifier and panics on failure.
func MustHexStringToIdentifier(hexString string) Identifier {
	id, err := HexStringToIdentifier(hexString)
	if err != nil {
		panic(err)
	}
	return id
}

// HashToID converts a 32-byte hash into an identifier.
func HashToID(h []byte) Identifier {
	var id Identifier
	copy(id[:], h)
	return id
}

// MakeID creates an ID from a hash of encoded data. MakeID uses `model.Fingerprint() []byte` to get the byte
// representation of the entity, which uses RLP to encode the data. If the input defines its own canonical encoding
// by implementing Fingerprinter, it uses that instead.
func MakeID(entity interface{}) Identifier {
	return MakeIDFromFingerPrint(fingerprint.Fingerprint(entity))
}

// MakeIDFromFingerPrint hashes a fingerprint with SHA3-256 and returns the digest as an identifier.
func MakeIDFromFingerPrint(fingerPrint []byte) Identifier {
	hasher := hash.NewSHA3_256()
	return HashToID(hasher.ComputeHash(fingerPrint))
}

// String returns the hex string representation of the identifier.
func (id Identifier) String() string {
	return hex.EncodeToString(id[:])
}

// Bytes returns the bytes of the identifier.
func (id Identifier) Bytes() []byte {
	return id[:]
}

func (id Identifier) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

func (id *Identifier) UnmarshalText(text []byte) error {
	var err error
	*id, err = HexStringToIdentifier(string(text))
	return err
}
