package flow

import (
	"fmt"
	"math"

	"github.com/onflow/flow-signer/model/encoding"
	"github.com/onflow/flow-signer/model/encoding/rlp"
	"github.com/onflow/flow-signer/model/fingerprint"
)

// Canonical forms define the RLP lists signed and hashed by the network.
// Field order is part of the protocol: do not reorder struct fields.

type payloadCanonicalForm struct {
	Script                    []byte
	Arguments                 [][]byte
	ReferenceBlockID          []byte
	GasLimit                  uint64
	ProposalKeyAddress        []byte
	ProposalKeyIndex          uint64
	ProposalKeySequenceNumber uint64
	Payer                     []byte
	Authorizers               [][]byte
}

type signatureCanonicalForm struct {
	SignerIndex uint
	KeyIndex    uint
	Signature   []byte
}

type envelopeCanonicalForm struct {
	Payload           payloadCanonicalForm
	PayloadSignatures []signatureCanonicalForm
}

type transactionCanonicalForm struct {
	Payload            payloadCanonicalForm
	PayloadSignatures  []signatureCanonicalForm
	EnvelopeSignatures []signatureCanonicalForm
}

// transactionRawForm decodes a transaction while keeping the payload bytes untouched.
type transactionRawForm struct {
	Payload            rlp.RawValue
	PayloadSignatures  []signatureCanonicalForm
	EnvelopeSignatures []signatureCanonicalForm
}

// CanonicalPayload is the canonical encoding of a transaction intent.
//
//structwrite:immutable - mutations allowed only within the constructor
type CanonicalPayload struct {
	intent    *TransactionIntent
	arguments [][]byte
	form      payloadCanonicalForm
	message   []byte
}

// NewCanonicalPayload encodes intent with the given encoded arguments, one per
// intent argument and in the same order.
//
// All errors indicate the intent cannot be represented canonically.
func NewCanonicalPayload(intent *TransactionIntent, arguments [][]byte) (*CanonicalPayload, error) {
	if intent == nil {
		return nil, fmt.Errorf("intent must not be nil")
	}
	if len(arguments) != len(intent.Arguments) {
		return nil, fmt.Errorf("expected %d encoded arguments, got %d", len(intent.Arguments), len(arguments))
	}

	args := make([][]byte, len(arguments))
	for i, arg := range arguments {
		args[i] = make([]byte, len(arg))
		copy(args[i], arg)
	}

	authorizers := make([][]byte, len(intent.Authorizers))
	for i, auth := range intent.Authorizers {
		authorizers[i] = auth.Bytes()
	}

	form := payloadCanonicalForm{
		Script:                    intent.Script,
		Arguments:                 args,
		ReferenceBlockID:          intent.ReferenceBlockID[:],
		GasLimit:                  intent.GasLimit,
		ProposalKeyAddress:        intent.ProposalKey.Address.Bytes(),
		ProposalKeyIndex:          uint64(intent.ProposalKey.KeyIndex),
		ProposalKeySequenceNumber: intent.ProposalKey.SequenceNumber,
		Payer:                     intent.Payer.Bytes(),
		Authorizers:               authorizers,
	}

	message, err := encoding.DefaultEncoder.Encode(form)
	if err != nil {
		return nil, fmt.Errorf("could not encode payload: %w", err)
	}

	return &CanonicalPayload{
		intent:    intent,
		arguments: args,
		form:      form,
		message:   message,
	}, nil
}

// Intent returns the intent this payload encodes.
func (p *CanonicalPayload) Intent() *TransactionIntent {
	return p.intent
}

// Arguments returns a copy of the JSON-Cadence encoded arguments.
func (p *CanonicalPayload) Arguments() [][]byte {
	args := make([][]byte, len(p.arguments))
	for i, arg := range p.arguments {
		args[i] = make([]byte, len(arg))
		copy(args[i], arg)
	}
	return args
}

// Message returns a copy of the RLP encoded payload, without domain tag.
func (p *CanonicalPayload) Message() []byte {
	message := make([]byte, len(p.message))
	copy(message, p.message)
	return message
}

func (p *CanonicalPayload) Fingerprint() []byte {
	return p.Message()
}

func (p *CanonicalPayload) ID() Identifier {
	return MakeID(p)
}

// EnvelopeMessage returns the RLP encoded envelope covering the payload and
// the given payload signatures, without domain tag.
//
// The signatures are encoded in the order given. Callers pass them sorted.
func (p *CanonicalPayload) EnvelopeMessage(payloadSignatures []TransactionSignature) []byte {
	return fingerprint.Fingerprint(envelopeCanonicalForm{
		Payload:           p.form,
		PayloadSignatures: signaturesList(payloadSignatures).canonicalForm(),
	})
}

// ByteSize returns the size of the encoded payload in bytes.
func (p *CanonicalPayload) ByteSize() uint {
	return uint(len(p.message))
}

// DecodedPayload holds the fields of an encoded payload before validation.
type DecodedPayload struct {
	Script           []byte
	Arguments        [][]byte
	ReferenceBlockID Identifier
	GasLimit         uint64
	ProposalKey      ProposalKey
	Payer            Address
	Authorizers      []Address
}

// DecodePayload decodes a payload canonical form.
//
// The input must be exactly one canonical RLP value and address and identifier
// fields must have their exact sizes.
func DecodePayload(b []byte) (*DecodedPayload, error) {
	var form payloadCanonicalForm
	err := encoding.DefaultEncoder.Decode(b, &form)
	if err != nil {
		return nil, err
	}
	return decodedPayloadFromForm(form)
}

func decodedPayloadFromForm(form payloadCanonicalForm) (*DecodedPayload, error) {
	if len(form.ReferenceBlockID) != IdentifierLen {
		return nil, fmt.Errorf("reference block ID must be %d bytes, got %d", IdentifierLen, len(form.ReferenceBlockID))
	}
	proposer, err := exactAddress(form.ProposalKeyAddress)
	if err != nil {
		return nil, fmt.Errorf("invalid proposal key address: %w", err)
	}
	if form.ProposalKeyIndex > math.MaxUint32 {
		return nil, fmt.Errorf("proposal key index %d exceeds %d", form.ProposalKeyIndex, uint64(math.MaxUint32))
	}
	payer, err := exactAddress(form.Payer)
	if err != nil {
		return nil, fmt.Errorf("invalid payer: %w", err)
	}
	authorizers := make([]Address, len(form.Authorizers))
	for i, auth := range form.Authorizers {
		authorizers[i], err = exactAddress(auth)
		if err != nil {
			return nil, fmt.Errorf("invalid authorizer %d: %w", i, err)
		}
	}

	return &DecodedPayload{
		Script:           form.Script,
		Arguments:        form.Arguments,
		ReferenceBlockID: HashToID(form.ReferenceBlockID),
		GasLimit:         form.GasLimit,
		ProposalKey: ProposalKey{
			Address:        proposer,
			KeyIndex:       uint32(form.ProposalKeyIndex),
			SequenceNumber: form.ProposalKeySequenceNumber,
		},
		Payer:       payer,
		Authorizers: authorizers,
	}, nil
}

// DecodedTransaction holds an encoded transaction split into its payload and
// signatures. Signatures only carry signer and key indices: addresses are
// resolved against the payload signer list.
type DecodedTransaction struct {
	Payload            []byte
	PayloadSignatures  []TransactionSignature
	EnvelopeSignatures []TransactionSignature
}

// DecodeTransaction decodes a transaction canonical form.
func DecodeTransaction(b []byte) (*DecodedTransaction, error) {
	var form transactionRawForm
	err := encoding.DefaultEncoder.Decode(b, &form)
	if err != nil {
		return nil, err
	}

	payloadSigs, err := decodeSignatures(form.PayloadSignatures)
	if err != nil {
		return nil, fmt.Errorf("invalid payload signatures: %w", err)
	}
	envelopeSigs, err := decodeSignatures(form.EnvelopeSignatures)
	if err != nil {
		return nil, fmt.Errorf("invalid envelope signatures: %w", err)
	}

	payload := make([]byte, len(form.Payload))
	copy(payload, form.Payload)

	return &DecodedTransaction{
		Payload:            payload,
		PayloadSignatures:  payloadSigs,
		EnvelopeSignatures: envelopeSigs,
	}, nil
}

func decodeSignatures(forms []signatureCanonicalForm) ([]TransactionSignature, error) {
	sigs := make([]TransactionSignature, len(forms))
	for i, form := range forms {
		if form.SignerIndex > math.MaxInt32 {
			return nil, fmt.Errorf("signer index %d is out of range", form.SignerIndex)
		}
		if form.KeyIndex > math.MaxUint32 {
			return nil, fmt.Errorf("key index %d exceeds %d", form.KeyIndex, uint64(math.MaxUint32))
		}
		sigs[i] = TransactionSignature{
			SignerIndex: int(form.SignerIndex),
			KeyIndex:    uint32(form.KeyIndex),
			Signature:   form.Signature,
		}
	}
	return sigs, nil
}

func exactAddress(b []byte) (Address, error) {
	if len(b) != AddressLength {
		return EmptyAddress, fmt.Errorf("address must be %d bytes, got %d", AddressLength, len(b))
	}
	return BytesToAddress(b), nil
}
