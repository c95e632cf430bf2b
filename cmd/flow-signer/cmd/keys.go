package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/viper"

	"github.com/onflow/flow-signer/crypto"
	"github.com/onflow/flow-signer/crypto/awskms"
	"github.com/onflow/flow-signer/model/signing"
)

const (
	keyTypeHex    = "hex"
	keyTypeAWSKMS = "awskms"
)

// keySpec is one entry of a keys file.
//
//	keys:
//	  - address: f8d6e0586b0a20c7
//	    key_index: 0
//	    type: hex
//	    signature_algorithm: ECDSA_P256
//	    hash_algorithm: SHA3_256
//	    private_key: ...
//	  - address: 01cf0e2f2f715450
//	    type: awskms
//	    hash_algorithm: SHA2_256
//	    kms_key_id: arn:aws:kms:...
//	    region: us-west-2
type keySpec struct {
	Address            string `mapstructure:"address"`
	KeyIndex           uint32 `mapstructure:"key_index"`
	Type               string `mapstructure:"type"`
	SignatureAlgorithm string `mapstructure:"signature_algorithm"`
	HashAlgorithm      string `mapstructure:"hash_algorithm"`

	// hex keys
	PrivateKey    string `mapstructure:"private_key"`
	Deterministic bool   `mapstructure:"deterministic"`

	// AWS KMS keys
	KMSKeyID string `mapstructure:"kms_key_id"`
	Region   string `mapstructure:"region"`
	Profile  string `mapstructure:"profile"`
}

// readKeySpecs reads the key specs of a keys file.
func readKeySpecs(path string) ([]keySpec, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("could not read keys file: %w", err)
	}

	var specs []keySpec
	if err := v.UnmarshalKey("keys", &specs); err != nil {
		return nil, fmt.Errorf("could not parse keys file: %w", err)
	}
	if len(specs) == 0 {
		return nil, fmt.Errorf("keys file %s lists no keys", path)
	}
	return specs, nil
}

// keySlots creates the key handles of specs. AWS KMS clients are shared by
// keys of the same region and profile.
func keySlots(ctx context.Context, specs []keySpec) ([]signing.KeySlot, error) {
	clients := make(map[string]awskms.Client)
	slots := make([]signing.KeySlot, 0, len(specs))

	for i, spec := range specs {
		handle, err := keyHandle(ctx, spec, clients)
		if err != nil {
			return nil, fmt.Errorf("could not load key %d (%s/%d): %w", i, spec.Address, spec.KeyIndex, err)
		}
		slots = append(slots, signing.KeySlot{
			Address:            spec.Address,
			KeyIndex:           spec.KeyIndex,
			SignatureAlgorithm: spec.SignatureAlgorithm,
			HashAlgorithm:      spec.HashAlgorithm,
			Handle:             handle,
		})
	}
	return slots, nil
}

func keyHandle(ctx context.Context, spec keySpec, clients map[string]awskms.Client) (crypto.KeyHandle, error) {
	hashAlgo := crypto.StringToHashAlgorithm(spec.HashAlgorithm)
	if !crypto.IsSupportedHashAlgorithm(hashAlgo) {
		return nil, fmt.Errorf("unsupported hash algorithm %q", spec.HashAlgorithm)
	}

	switch spec.Type {
	case keyTypeHex, "":
		sigAlgo := crypto.StringToSignatureAlgorithm(spec.SignatureAlgorithm)
		if !crypto.IsSupportedSignatureAlgorithm(sigAlgo) {
			return nil, fmt.Errorf("unsupported signature algorithm %q", spec.SignatureAlgorithm)
		}
		if spec.Deterministic {
			if sigAlgo != crypto.ECDSA_secp256k1 {
				return nil, fmt.Errorf("deterministic signing is only available for %s keys", crypto.ECDSA_secp256k1)
			}
			return crypto.NewDeterministicSecp256k1KeyHandleHex(spec.PrivateKey, hashAlgo)
		}
		privateKey, err := crypto.DecodePrivateKeyHex(sigAlgo, spec.PrivateKey)
		if err != nil {
			return nil, err
		}
		return crypto.NewInMemoryKeyHandle(privateKey, hashAlgo)

	case keyTypeAWSKMS:
		clientKey := spec.Region + "/" + spec.Profile
		client, ok := clients[clientKey]
		if !ok {
			kmsClient, err := awskms.NewClient(ctx, spec.Region, spec.Profile)
			if err != nil {
				return nil, err
			}
			client = kmsClient
			clients[clientKey] = client
		}
		return awskms.NewKeyHandle(ctx, client, spec.KMSKeyID, hashAlgo)
	}

	return nil, fmt.Errorf("unknown key type %q", spec.Type)
}
