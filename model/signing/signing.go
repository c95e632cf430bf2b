package signing

import (
	"github.com/ethereum/go-ethereum/common/hexutil"

	"github.com/onflow/flow-signer/crypto"
	"github.com/onflow/flow-signer/model/errors"
	"github.com/onflow/flow-signer/model/flow"
)

// SigningInput describes one transaction to sign and the keys to sign it with.
//
// Either Script or Transfer must be set. With Transfer the FLOW token
// transfer script of the chain is used and Arguments must be empty.
type SigningInput struct {
	ChainID          string          `json:"chain_id" validate:"required"`
	Script           string          `json:"script,omitempty" validate:"required_without=Transfer,excluded_with=Transfer"`
	Arguments        []flow.Argument `json:"arguments,omitempty" validate:"excluded_with=Transfer"`
	Transfer         *Transfer       `json:"transfer,omitempty"`
	ReferenceBlockID string          `json:"reference_block_id" validate:"required,flow_identifier"`
	GasLimit         uint64          `json:"gas_limit" validate:"required"`
	ProposalKey      ProposalKey     `json:"proposal_key"`
	Payer            string          `json:"payer" validate:"required,flow_address"`
	Authorizers      []string        `json:"authorizers" validate:"required,min=1,dive,flow_address"`
	Keys             []KeySlot       `json:"keys" validate:"required,min=1,dive"`
}

// Transfer moves Amount FLOW to the account To.
type Transfer struct {
	To string `json:"to" validate:"required,flow_address"`
	// Amount is a decimal number with up to 8 fractional digits.
	Amount string `json:"amount" validate:"required,numeric"`
}

type ProposalKey struct {
	Address        string `json:"address" validate:"required,flow_address"`
	KeyIndex       uint32 `json:"key_index"`
	SequenceNumber uint64 `json:"sequence_number"`
}

// KeySlot binds a key handle to the account key it signs for.
//
// The role of the slot follows from the address: the payer signs the
// envelope, every other account signs the payload.
type KeySlot struct {
	Address  string `json:"address" validate:"required,flow_address"`
	KeyIndex uint32 `json:"key_index"`

	// Declared algorithms of the account key. When set, the handle must use them.
	SignatureAlgorithm string `json:"signature_algorithm,omitempty" validate:"omitempty,oneof=ECDSA_P256 ECDSA_secp256k1"`
	HashAlgorithm      string `json:"hash_algorithm,omitempty" validate:"omitempty,oneof=SHA2_256 SHA3_256"`

	Handle crypto.KeyHandle `json:"-"`
}

// SigningOutput is the result of a signing request.
//
// Encoded is empty whenever ErrorCode is not None.
type SigningOutput struct {
	Encoded       hexutil.Bytes    `json:"encoded"`
	TransactionID string           `json:"transaction_id,omitempty"`
	ErrorCode     errors.ErrorCode `json:"error_code"`
	ErrorMessage  string           `json:"error_message,omitempty"`
}

// Failed returns true if the request did not produce a transaction.
func (o SigningOutput) Failed() bool {
	return o.ErrorCode != errors.ErrCodeNone
}
