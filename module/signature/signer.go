package signature

import (
	"context"
	stdErrors "errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/onflow/flow-signer/crypto"
	"github.com/onflow/flow-signer/model/errors"
	"github.com/onflow/flow-signer/module"
	"github.com/onflow/flow-signer/module/digest"
)

// Signer produces transaction signatures with key handles.
//
// A Signer holds no state between calls: it borrows the key handle for the
// duration of Sign and keeps neither the digest nor the signature.
type Signer struct {
	log     zerolog.Logger
	metrics module.SigningMetrics
}

func NewSigner(log zerolog.Logger, metrics module.SigningMetrics) *Signer {
	return &Signer{
		log:     log.With().Str("component", "signer").Logger(),
		metrics: metrics,
	}
}

// Sign signs d with key and verifies the result against the key's public key.
//
// Expected errors during normal operations:
//   - errors.SigningError with ReasonKeyUnavailable if the handle is missing or fails to sign
//   - errors.SigningError with ReasonCurveMismatch if the handle's algorithms cannot sign transactions
//   - errors.SigningError with ReasonInternalFault if the handle returns a malformed or invalid signature
//   - errors.InternalFault if the digest is empty
func (s *Signer) Sign(ctx context.Context, d digest.Digest, key crypto.KeyHandle) ([]byte, error) {
	if key == nil {
		return nil, errors.NewSigningErrorf(errors.ReasonKeyUnavailable, "", "no key handle")
	}
	if d.Empty() {
		return nil, errors.NewInternalFaultf("cannot sign an empty digest")
	}

	keyID := key.ID()
	log := s.log.With().
		Str("key", keyID).
		Str("role", d.Role().String()).
		Logger()

	sigAlgo, hashAlgo := key.SignatureAlgorithm(), key.HashAlgorithm()
	if !crypto.IsSupportedSignatureAlgorithm(sigAlgo) {
		return nil, errors.NewSigningErrorf(errors.ReasonCurveMismatch, keyID, "signature algorithm %s cannot sign transactions", sigAlgo)
	}
	if !crypto.IsSupportedHashAlgorithm(hashAlgo) {
		return nil, errors.NewSigningErrorf(errors.ReasonCurveMismatch, keyID, "hash algorithm %s cannot sign transactions", hashAlgo)
	}

	publicKey := key.PublicKey()
	if publicKey == nil {
		return nil, errors.NewSigningErrorf(errors.ReasonKeyUnavailable, keyID, "key handle has no public key")
	}
	if publicKey.Algorithm() != sigAlgo {
		return nil, errors.NewSigningErrorf(errors.ReasonCurveMismatch, keyID, "public key is a %s key, handle declares %s", publicKey.Algorithm(), sigAlgo)
	}

	start := time.Now()
	message := d.Message()

	sig, err := key.Sign(ctx, message)
	if err != nil {
		if IsCanceled(err) {
			log.Debug().Err(err).Msg("signing canceled")
		} else {
			log.Warn().Err(err).Msg("key handle failed to sign")
		}
		if crypto.IsAlgorithmMismatchError(err) {
			return nil, errors.SigningError{Reason: errors.ReasonCurveMismatch, KeyID: keyID, Err: err}
		}
		return nil, errors.SigningError{Reason: errors.ReasonKeyUnavailable, KeyID: keyID, Err: err}
	}

	if len(sig) != crypto.SignatureLenECDSA {
		return nil, errors.SigningError{
			Reason: errors.ReasonInternalFault,
			KeyID:  keyID,
			Err:    fmt.Errorf("%w: expected %d bytes, got %d", ErrInvalidFormat, crypto.SignatureLenECDSA, len(sig)),
		}
	}

	err = verify(publicKey, hashAlgo, sig, message)
	if err != nil {
		return nil, errors.SigningError{Reason: errors.ReasonInternalFault, KeyID: keyID, Err: err}
	}

	s.metrics.SignatureProduced(d.Role().String(), sigAlgo.String(), time.Since(start))
	log.Debug().Msg("signature produced")

	signature := make([]byte, len(sig))
	copy(signature, sig)
	return signature, nil
}

func verify(publicKey crypto.PublicKey, hashAlgo crypto.HashAlgorithm, sig []byte, message []byte) error {
	hasher, err := crypto.NewHasher(hashAlgo)
	if err != nil {
		return err
	}
	valid, err := publicKey.Verify(sig, message, hasher)
	if err != nil {
		return fmt.Errorf("could not verify signature: %w", err)
	}
	if !valid {
		return ErrNotVerified
	}
	return nil
}

// CheckCompatible checks that key uses the algorithms declared for the
// account key it signs for. Unknown declared algorithms are not checked.
//
// Expected errors during normal operations:
//   - errors.SigningError with ReasonKeyUnavailable if key is nil
//   - errors.SigningError with ReasonCurveMismatch if an algorithm differs
func CheckCompatible(key crypto.KeyHandle, sigAlgo crypto.SignatureAlgorithm, hashAlgo crypto.HashAlgorithm) error {
	if key == nil {
		return errors.NewSigningErrorf(errors.ReasonKeyUnavailable, "", "no key handle")
	}
	if sigAlgo != crypto.UnknownSignatureAlgorithm && key.SignatureAlgorithm() != sigAlgo {
		return errors.NewSigningErrorf(errors.ReasonCurveMismatch, key.ID(), "account key uses %s, key handle signs with %s", sigAlgo, key.SignatureAlgorithm())
	}
	if hashAlgo != crypto.UnknownHashAlgorithm && key.HashAlgorithm() != hashAlgo {
		return errors.NewSigningErrorf(errors.ReasonCurveMismatch, key.ID(), "account key uses %s, key handle hashes with %s", hashAlgo, key.HashAlgorithm())
	}
	return nil
}

// IsCanceled returns true if err was caused by the cancellation of the signing context.
func IsCanceled(err error) bool {
	return stdErrors.Is(err, context.Canceled) || stdErrors.Is(err, context.DeadlineExceeded)
}
