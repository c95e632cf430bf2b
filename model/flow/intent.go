package flow

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
)

// TransactionField represents a field of a transaction intent.
type TransactionField int

const (
	TransactionFieldUnknown TransactionField = iota
	TransactionFieldChainID
	TransactionFieldScript
	TransactionFieldArguments
	TransactionFieldRefBlockID
	TransactionFieldGasLimit
	TransactionFieldProposalKey
	TransactionFieldPayer
	TransactionFieldAuthorizers
)

// String returns the string representation of a transaction field.
func (f TransactionField) String() string {
	return [...]string{"Unknown", "ChainID", "Script", "Arguments", "ReferenceBlockID", "GasLimit", "ProposalKey", "Payer", "Authorizers"}[f]
}

// InvalidFieldError reports a transaction field that failed validation.
type InvalidFieldError struct {
	Field TransactionField
	Err   error
}

func (e InvalidFieldError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Err)
}

func (e InvalidFieldError) Unwrap() error {
	return e.Err
}

func invalidField(field TransactionField, msg string, args ...interface{}) InvalidFieldError {
	return InvalidFieldError{Field: field, Err: fmt.Errorf(msg, args...)}
}

// A ProposalKey is the key that specifies the proposal key and sequence number for a transaction.
type ProposalKey struct {
	Address        Address
	KeyIndex       uint32
	SequenceNumber uint64
}

// ByteSize returns the byte size of the proposal key
func (p ProposalKey) ByteSize() int {
	keyIndexLen := 4
	sequenceNumberLen := 8
	return len(p.Address) + keyIndexLen + sequenceNumberLen
}

// TransactionIntent is the logical content of a transaction to be signed.
//
//structwrite:immutable - mutations allowed only within the constructor
type TransactionIntent struct {
	// Chain the transaction is addressed to. Addresses are checked against its rules.
	ChainID ChainID

	// the transaction script as UTF-8 encoded Cadence source code
	Script []byte

	// arguments passed to the Cadence transaction, in script parameter order
	Arguments []Argument

	// A reference to a previous block
	// A transaction is expired after specific number of blocks (defined by network) counting from this block
	ReferenceBlockID Identifier

	// Max amount of computation which is allowed to be done during this transaction
	GasLimit uint64

	// Account key used to propose the transaction
	ProposalKey ProposalKey

	// Account that pays for this transaction fees
	Payer Address

	// Accounts whose storage the script may access, in declared order.
	// Accounts listed here all have to provide signatures
	Authorizers []Address
}

// UntrustedTransactionIntent is an untrusted input-only representation of a TransactionIntent,
// used for construction.
//
// This type exists to ensure that constructor functions are invoked explicitly
// with named fields, which improves clarity and reduces the risk of incorrect field
// ordering during construction.
//
// An instance of UntrustedTransactionIntent should be validated and converted into
// a trusted TransactionIntent using NewTransactionIntent constructor.
type UntrustedTransactionIntent TransactionIntent

// NewTransactionIntent creates a new instance of TransactionIntent.
// Construction of TransactionIntent is allowed only within the constructor.
//
// All errors indicate a valid TransactionIntent cannot be constructed from the input.
// Every invalid field is reported, each as an InvalidFieldError inside a *multierror.Error.
func NewTransactionIntent(untrusted UntrustedTransactionIntent) (*TransactionIntent, error) {
	var result *multierror.Error

	chain, err := untrusted.ChainID.Chain()
	if err != nil {
		return nil, multierror.Append(result, InvalidFieldError{Field: TransactionFieldChainID, Err: err})
	}

	if len(untrusted.Script) == 0 {
		result = multierror.Append(result, invalidField(TransactionFieldScript, "script must not be empty"))
	}

	if untrusted.ReferenceBlockID == ZeroID {
		result = multierror.Append(result, invalidField(TransactionFieldRefBlockID, "reference block ID must not be empty"))
	}

	if untrusted.ProposalKey.Address == EmptyAddress {
		result = multierror.Append(result, invalidField(TransactionFieldProposalKey, "proposal key address must not be empty"))
	} else if !chain.IsValid(untrusted.ProposalKey.Address) {
		result = multierror.Append(result, invalidField(TransactionFieldProposalKey, "address %s is not valid on %s", untrusted.ProposalKey.Address, chain.ChainID()))
	}

	if untrusted.Payer == EmptyAddress {
		result = multierror.Append(result, invalidField(TransactionFieldPayer, "payer must not be empty"))
	} else if !chain.IsValid(untrusted.Payer) {
		result = multierror.Append(result, invalidField(TransactionFieldPayer, "address %s is not valid on %s", untrusted.Payer, chain.ChainID()))
	}

	if len(untrusted.Authorizers) == 0 {
		result = multierror.Append(result, invalidField(TransactionFieldAuthorizers, "at least one authorizer is required"))
	}
	seen := make(map[Address]struct{}, len(untrusted.Authorizers))
	for _, authorizer := range untrusted.Authorizers {
		if _, ok := seen[authorizer]; ok {
			result = multierror.Append(result, invalidField(TransactionFieldAuthorizers, "duplicate authorizer %s", authorizer))
			continue
		}
		seen[authorizer] = struct{}{}
		if !chain.IsValid(authorizer) {
			result = multierror.Append(result, invalidField(TransactionFieldAuthorizers, "address %s is not valid on %s", authorizer, chain.ChainID()))
		}
	}

	for i, arg := range untrusted.Arguments {
		if arg.Type == "" {
			result = multierror.Append(result, invalidField(TransactionFieldArguments, "argument %d has no type", i))
		}
	}

	if err := result.ErrorOrNil(); err != nil {
		return nil, err
	}

	script := make([]byte, len(untrusted.Script))
	copy(script, untrusted.Script)

	arguments := make([]Argument, len(untrusted.Arguments))
	for i, arg := range untrusted.Arguments {
		arguments[i] = arg.Copy()
	}

	authorizers := make([]Address, len(untrusted.Authorizers))
	copy(authorizers, untrusted.Authorizers)

	return &TransactionIntent{
		ChainID:          untrusted.ChainID,
		Script:           script,
		Arguments:        arguments,
		ReferenceBlockID: untrusted.ReferenceBlockID,
		GasLimit:         untrusted.GasLimit,
		ProposalKey:      untrusted.ProposalKey,
		Payer:            untrusted.Payer,
		Authorizers:      authorizers,
	}, nil
}

// SignerList returns a list of unique accounts required to sign this transaction.
//
// The list is returned in the following order:
// 1. PROPOSER
// 2. PAYER
// 2. AUTHORIZERS (in insertion order)
//
// The only exception to the above ordering is for deduplication; if the same account
// is used in multiple signing roles, only the first occurrence is included in the list.
func (ti *TransactionIntent) SignerList() []Address {
	signers := make([]Address, 0, 2+len(ti.Authorizers))
	seen := make(map[Address]struct{})

	var addSigner = func(address Address) {
		_, ok := seen[address]
		if ok {
			return
		}

		signers = append(signers, address)
		seen[address] = struct{}{}
	}

	addSigner(ti.ProposalKey.Address)
	addSigner(ti.Payer)
	for _, authorizer := range ti.Authorizers {
		addSigner(authorizer)
	}

	return signers
}

// SignerIndex returns the position of address in the signer list.
func (ti *TransactionIntent) SignerIndex(address Address) (int, bool) {
	for i, signer := range ti.SignerList() {
		if signer == address {
			return i, true
		}
	}
	return -1, false
}

// IsPayer returns true if address pays for the transaction.
func (ti *TransactionIntent) IsPayer(address Address) bool {
	return ti.Payer == address
}

// IsAuthorizer returns true if address is a declared authorizer.
func (ti *TransactionIntent) IsAuthorizer(address Address) bool {
	for _, authorizer := range ti.Authorizers {
		if authorizer == address {
			return true
		}
	}
	return false
}

// NewSignature combines a signature with the account key that produced it.
// An error is returned if the account is not a signer of this transaction.
func (ti *TransactionIntent) NewSignature(address Address, keyIndex uint32, sig []byte) (TransactionSignature, error) {
	signerIndex, ok := ti.SignerIndex(address)
	if !ok {
		return TransactionSignature{}, fmt.Errorf("account %s is not a signer of the transaction", address)
	}

	signature := make([]byte, len(sig))
	copy(signature, sig)

	return TransactionSignature{
		Address:     address,
		SignerIndex: signerIndex,
		KeyIndex:    keyIndex,
		Signature:   signature,
	}, nil
}
