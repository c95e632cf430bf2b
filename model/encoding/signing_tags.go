package encoding

// List of domain separation tags for signatures over user transactions.
//
// Each transaction signature involves hashing a transaction message.
// To prevent domain malleability attacks, the hashed message is prefixed with
// a domain tag that specifies the type of the signed object. Account keys are
// shared between Flow transactions and arbitrary user messages, so the tag
// of a transaction must never prefix anything else.

// DomainTagLength is the length of a padded domain tag in bytes.
const DomainTagLength = 32

// Flow protocol version and prefix
const protocolPrefix = "FLOW-V0.0-"

// TransactionTagString is the unpadded transaction domain tag.
const TransactionTagString = protocolPrefix + "transaction"

// TransactionDomainTag prefixes every transaction payload and envelope message before hashing.
var TransactionDomainTag = paddedDomainTag(TransactionTagString)

// paddedDomainTag right-pads s with zero bytes up to DomainTagLength.
func paddedDomainTag(s string) [DomainTagLength]byte {
	var tag [DomainTagLength]byte

	if len(s) > DomainTagLength {
		panic("domain tag cannot be longer than 32 bytes")
	}

	copy(tag[:], s)

	return tag
}
