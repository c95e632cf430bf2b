package unittest

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"

	"github.com/onflow/flow-signer/crypto"
	mockcrypto "github.com/onflow/flow-signer/crypto/mock"
)

// MockKeyHandle returns a mock key handle with the identity and algorithms of
// handle. No Sign call is expected, tests add the Sign behavior they need.
func MockKeyHandle(t testing.TB, handle crypto.KeyHandle) *mockcrypto.KeyHandle {
	m := mockcrypto.NewKeyHandle(t)
	m.On("ID").Return(handle.ID()).Maybe()
	m.On("SignatureAlgorithm").Return(handle.SignatureAlgorithm()).Maybe()
	m.On("HashAlgorithm").Return(handle.HashAlgorithm()).Maybe()
	m.On("PublicKey").Return(handle.PublicKey()).Maybe()
	return m
}

// FailingKeyHandle returns a mock of handle whose Sign fails once with err.
func FailingKeyHandle(t testing.TB, handle crypto.KeyHandle, err error) *mockcrypto.KeyHandle {
	m := MockKeyHandle(t, handle)
	m.On("Sign", mock.Anything, mock.Anything).Return(nil, err).Once()
	return m
}

// ForgingKeyHandle returns a mock of handle whose Sign returns sig once
// instead of signing.
func ForgingKeyHandle(t testing.TB, handle crypto.KeyHandle, sig []byte) *mockcrypto.KeyHandle {
	m := MockKeyHandle(t, handle)
	m.On("Sign", mock.Anything, mock.Anything).Return(sig, nil).Once()
	return m
}

// BlockingKeyHandle returns a mock of handle whose Sign blocks until the
// context is done.
func BlockingKeyHandle(t testing.TB, handle crypto.KeyHandle) *mockcrypto.KeyHandle {
	m := MockKeyHandle(t, handle)
	m.On("Sign", mock.Anything, mock.Anything).
		Return(func(ctx context.Context, _ []byte) ([]byte, error) {
			<-ctx.Done()
			return nil, ctx.Err()
		}).
		Once()
	return m
}
