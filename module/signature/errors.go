package signature

import (
	"errors"
)

var (
	ErrInvalidFormat = errors.New("invalid signature format")
	ErrNotVerified   = errors.New("signature does not verify against the key handle's public key")
)
