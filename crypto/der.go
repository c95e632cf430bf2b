package crypto

import (
	"encoding/hex"
	"fmt"
	"math/big"
	"strings"

	"golang.org/x/crypto/cryptobyte"
	"golang.org/x/crypto/cryptobyte/asn1"
)

const scalarLen = SignatureLenECDSA / 2

// DERToRawSignature converts an ASN.1 DER encoded ECDSA signature
// (SEQUENCE { r INTEGER, s INTEGER }) into the raw r||s form used by Flow,
// each of r and s left padded to 32 bytes.
func DERToRawSignature(der []byte) ([]byte, error) {
	r, s := new(big.Int), new(big.Int)

	input := cryptobyte.String(der)
	var inner cryptobyte.String
	if !input.ReadASN1(&inner, asn1.SEQUENCE) ||
		!input.Empty() ||
		!inner.ReadASN1Integer(r) ||
		!inner.ReadASN1Integer(s) ||
		!inner.Empty() {
		return nil, fmt.Errorf("invalid ASN.1 ECDSA signature")
	}

	if r.Sign() <= 0 || s.Sign() <= 0 {
		return nil, fmt.Errorf("ECDSA signature scalars must be positive")
	}
	if r.BitLen() > scalarLen*8 || s.BitLen() > scalarLen*8 {
		return nil, fmt.Errorf("ECDSA signature scalars exceed %d bytes", scalarLen)
	}

	raw := make([]byte, SignatureLenECDSA)
	r.FillBytes(raw[:scalarLen])
	s.FillBytes(raw[scalarLen:])
	return raw, nil
}

func decodeHex(s string) ([]byte, error) {
	return hex.DecodeString(strings.TrimPrefix(strings.TrimSpace(s), "0x"))
}

// wipe overwrites transient copies of key material.
func wipe(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
