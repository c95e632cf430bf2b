package flow

import (
	"fmt"

	"golang.org/x/exp/slices"
)

// A TransactionSignature is a signature associated with a specific account key.
type TransactionSignature struct {
	Address     Address
	SignerIndex int
	KeyIndex    uint32
	Signature   []byte
}

// String returns the string representation of a transaction signature.
func (s TransactionSignature) String() string {
	return fmt.Sprintf("Address: %s. SignerIndex: %d. KeyIndex: %d. Signature: %x",
		s.Address, s.SignerIndex, s.KeyIndex, s.Signature)
}

// UniqueKeyString returns constructs an string with combination of address and key
func (s TransactionSignature) UniqueKeyString() string {
	return fmt.Sprintf("%s-%d", s.Address.String(), s.KeyIndex)
}

// ByteSize returns the byte size of the transaction signature
func (s TransactionSignature) ByteSize() int {
	signerIndexLen := 8
	keyIndexLen := 4
	return len(s.Address) + signerIndexLen + keyIndexLen + len(s.Signature)
}

// Copy returns a copy of the signature that shares no memory with s.
func (s TransactionSignature) Copy() TransactionSignature {
	c := s
	c.Signature = make([]byte, len(s.Signature))
	copy(c.Signature, s.Signature)
	return c
}

func (s TransactionSignature) canonicalForm() signatureCanonicalForm {
	return signatureCanonicalForm{
		SignerIndex: uint(s.SignerIndex), // int is not RLP-serializable
		KeyIndex:    uint(s.KeyIndex),
		Signature:   s.Signature,
	}
}

func compareSignatures(sigA, sigB TransactionSignature) int {
	if sigA.SignerIndex == sigB.SignerIndex {
		return int(sigA.KeyIndex) - int(sigB.KeyIndex)
	}

	return sigA.SignerIndex - sigB.SignerIndex
}

// SortSignatures returns a copy of sigs ordered by signer index, then key index.
func SortSignatures(sigs []TransactionSignature) []TransactionSignature {
	sorted := make([]TransactionSignature, len(sigs))
	for i, sig := range sigs {
		sorted[i] = sig.Copy()
	}
	slices.SortStableFunc(sorted, compareSignatures)
	return sorted
}

type signaturesList []TransactionSignature

func (s signaturesList) canonicalForm() []signatureCanonicalForm {
	signatures := make([]signatureCanonicalForm, len(s))

	for i, signature := range s {
		signatures[i] = signature.canonicalForm()
	}

	return signatures
}
