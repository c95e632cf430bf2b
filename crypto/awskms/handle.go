package awskms

import (
	"context"
	"encoding/asn1"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/kms"
	"github.com/aws/aws-sdk-go-v2/service/kms/types"
	flowcrypto "github.com/onflow/crypto"

	"github.com/onflow/flow-signer/crypto"
)

// Client is the subset of the KMS API used by KeyHandle.
type Client interface {
	Sign(ctx context.Context, params *kms.SignInput, optFns ...func(*kms.Options)) (*kms.SignOutput, error)
	GetPublicKey(ctx context.Context, params *kms.GetPublicKeyInput, optFns ...func(*kms.Options)) (*kms.GetPublicKeyOutput, error)
}

var _ Client = (*kms.Client)(nil)

// NewClient returns a KMS client using the default AWS credential chain.
// Empty region or profile leave the SDK defaults in place.
func NewClient(ctx context.Context, region string, profile string) (*kms.Client, error) {
	var options []func(*config.LoadOptions) error

	if profile != "" {
		options = append(options, config.WithSharedConfigProfile(profile))
	}
	if region != "" {
		options = append(options, config.WithRegion(region))
	}

	cfg, err := config.LoadDefaultConfig(ctx, options...)
	if err != nil {
		return nil, fmt.Errorf("could not load aws config: %w", err)
	}
	return kms.NewFromConfig(cfg), nil
}

// KeyHandle signs with an asymmetric AWS KMS key. The private key never
// leaves KMS: the handle sends the message digest and receives a DER signature.
type KeyHandle struct {
	client    Client
	keyID     string
	sigAlgo   crypto.SignatureAlgorithm
	hashAlgo  crypto.HashAlgorithm
	publicKey crypto.PublicKey
}

var _ crypto.KeyHandle = (*KeyHandle)(nil)

// NewKeyHandle resolves the public key and curve of the KMS key keyID.
//
// The key must be a SIGN_VERIFY key with spec ECC_NIST_P256 or ECC_SECG_P256K1.
func NewKeyHandle(ctx context.Context, client Client, keyID string, hashAlgo crypto.HashAlgorithm) (*KeyHandle, error) {
	if !crypto.IsSupportedHashAlgorithm(hashAlgo) {
		return nil, crypto.NewAlgorithmMismatchErrorf("hash algorithm %s is not supported for transaction signatures", hashAlgo)
	}

	out, err := client.GetPublicKey(ctx, &kms.GetPublicKeyInput{
		KeyId: aws.String(keyID),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to get public key of kms key %s: %v", crypto.ErrKeyUnavailable, keyID, err)
	}

	if out.KeyUsage != types.KeyUsageTypeSignVerify {
		return nil, fmt.Errorf("kms key %s has usage %s, expected %s", keyID, out.KeyUsage, types.KeyUsageTypeSignVerify)
	}

	sigAlgo, err := signatureAlgorithm(out.KeySpec)
	if err != nil {
		return nil, fmt.Errorf("kms key %s: %w", keyID, err)
	}

	publicKey, err := parsePublicKey(sigAlgo, out.PublicKey)
	if err != nil {
		return nil, fmt.Errorf("could not parse public key of kms key %s: %w", keyID, err)
	}

	return &KeyHandle{
		client:    client,
		keyID:     keyID,
		sigAlgo:   sigAlgo,
		hashAlgo:  hashAlgo,
		publicKey: publicKey,
	}, nil
}

func (h *KeyHandle) ID() string {
	return "awskms:" + h.keyID
}

func (h *KeyHandle) SignatureAlgorithm() crypto.SignatureAlgorithm {
	return h.sigAlgo
}

func (h *KeyHandle) HashAlgorithm() crypto.HashAlgorithm {
	return h.hashAlgo
}

func (h *KeyHandle) PublicKey() crypto.PublicKey {
	return h.publicKey
}

// Sign hashes message with the handle's hash algorithm and signs the digest in KMS.
func (h *KeyHandle) Sign(ctx context.Context, message []byte) ([]byte, error) {
	hasher, err := crypto.NewHasher(h.hashAlgo)
	if err != nil {
		return nil, err
	}
	digest := hasher.ComputeHash(message)

	// KMS only checks the digest length, so SHA3-256 digests are signed as is.
	out, err := h.client.Sign(ctx, &kms.SignInput{
		KeyId:            aws.String(h.keyID),
		Message:          digest,
		MessageType:      types.MessageTypeDigest,
		SigningAlgorithm: types.SigningAlgorithmSpecEcdsaSha256,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: kms sign with key %s failed: %v", crypto.ErrKeyUnavailable, h.keyID, err)
	}

	return crypto.DERToRawSignature(out.Signature)
}

func signatureAlgorithm(spec types.KeySpec) (crypto.SignatureAlgorithm, error) {
	switch spec {
	case types.KeySpecEccNistP256:
		return crypto.ECDSA_P256, nil
	case types.KeySpecEccSecgP256k1:
		return crypto.ECDSA_secp256k1, nil
	default:
		return crypto.UnknownSignatureAlgorithm, crypto.NewAlgorithmMismatchErrorf("key spec %s cannot sign transactions", spec)
	}
}

type asn1EcPublicKey struct {
	EcPublicKeyInfo asn1EcPublicKeyInfo
	PublicKey       asn1.BitString
}

type asn1EcPublicKeyInfo struct {
	Algorithm  asn1.ObjectIdentifier
	Parameters asn1.ObjectIdentifier
}

// parsePublicKey parses the DER SubjectPublicKeyInfo returned by KMS.
func parsePublicKey(algo crypto.SignatureAlgorithm, der []byte) (crypto.PublicKey, error) {
	var spki asn1EcPublicKey
	rest, err := asn1.Unmarshal(der, &spki)
	if err != nil {
		return nil, fmt.Errorf("failed to parse ASN.1 public key: %w", err)
	}
	if len(rest) != 0 {
		return nil, fmt.Errorf("trailing data after ASN.1 public key")
	}

	point := spki.PublicKey.Bytes
	// uncompressed point: 0x04 || x || y
	if len(point) != crypto.PubKeyLenECDSA+1 || point[0] != 0x04 {
		return nil, fmt.Errorf("public key is not an uncompressed curve point")
	}

	return flowcrypto.DecodePublicKey(algo, point[1:])
}
