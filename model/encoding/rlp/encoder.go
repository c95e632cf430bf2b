package rlp

import (
	"fmt"

	gethrlp "github.com/ethereum/go-ethereum/rlp"
)

// Encoder encodes values with Recursive Length Prefix encoding.
//
// Integers are encoded big endian without leading zeros and the decoder
// rejects any non-canonical integer or string encoding, so every value has
// exactly one accepted byte representation.
type Encoder struct{}

func NewEncoder() *Encoder {
	return &Encoder{}
}

func (e *Encoder) Encode(v interface{}) ([]byte, error) {
	b, err := gethrlp.EncodeToBytes(v)
	if err != nil {
		return nil, fmt.Errorf("could not rlp encode %T: %w", v, err)
	}
	return b, nil
}

// Decode decodes b into v. Trailing bytes after the first value are an error.
func (e *Encoder) Decode(b []byte, v interface{}) error {
	err := gethrlp.DecodeBytes(b, v)
	if err != nil {
		return fmt.Errorf("could not rlp decode into %T: %w", v, err)
	}
	return nil
}

func (e *Encoder) MustEncode(v interface{}) []byte {
	b, err := e.Encode(v)
	if err != nil {
		panic(err)
	}
	return b
}

func (e *Encoder) MustDecode(b []byte, v interface{}) {
	err := e.Decode(b, v)
	if err != nil {
		panic(err)
	}
}

// RawValue holds an already encoded RLP value. Decoding into a RawValue keeps
// the exact input bytes of that value.
type RawValue = gethrlp.RawValue
