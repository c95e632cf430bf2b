package unittest

import (
	crand "crypto/rand"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/onflow/flow-signer/crypto"
	"github.com/onflow/flow-signer/model/flow"
	"github.com/onflow/flow-signer/model/signing"
)

// returns a deterministic math/rand PRG that can be used for deterministic randomness in tests only.
// The PRG seed is logged in case the test iteration needs to be reproduced.
func GetPRG(t *testing.T) *rand.Rand {
	random := time.Now().UnixNano()
	t.Logf("rng seed is %d", random)
	rng := rand.New(rand.NewSource(random))
	return rng
}

// DefaultScript is a transaction script with a single authorizer and no arguments.
const DefaultScript = `transaction { prepare(signer: &Account) {} }`

func RandomAddressFixture() flow.Address {
	return RandomAddressFixtureForChain(flow.Emulator)
}

func RandomAddressFixtureForChain(chainID flow.ChainID) flow.Address {
	chain, err := chainID.Chain()
	if err != nil {
		panic(err)
	}
	// a 32-bit index is always below the 45-bit range of the address generator,
	// the first indices are left to the system accounts
	addr, err := chain.AddressAtIndex(uint64(rand.Uint32()) + 16)
	if err != nil {
		panic(err)
	}
	return addr
}

// AddressListFixture returns n distinct addresses of the chain.
func AddressListFixture(n int, chainID flow.ChainID) []flow.Address {
	seen := make(map[flow.Address]struct{}, n)
	addresses := make([]flow.Address, 0, n)
	for len(addresses) < n {
		addr := RandomAddressFixtureForChain(chainID)
		if _, ok := seen[addr]; ok {
			continue
		}
		seen[addr] = struct{}{}
		addresses = append(addresses, addr)
	}
	return addresses
}

// InvalidAddressFixture returns an address that is not valid on the chain.
func InvalidAddressFixture(chainID flow.ChainID) flow.Address {
	chain, err := chainID.Chain()
	if err != nil {
		panic(err)
	}
	addr := RandomAddressFixtureForChain(chainID)
	addr[7] ^= 1
	if chain.IsValid(addr) {
		panic("corrupted address is valid")
	}
	return addr
}

func IdentifierFixture() flow.Identifier {
	var id flow.Identifier
	_, _ = crand.Read(id[:])
	// the zero identifier is not a valid reference block
	id[0] |= 1
	return id
}

// IntentFixture returns an emulator intent where one account proposes, pays
// for and authorizes the transaction.
func IntentFixture(t testing.TB, opts ...func(*flow.UntrustedTransactionIntent)) *flow.TransactionIntent {
	account := RandomAddressFixture()
	untrusted := flow.UntrustedTransactionIntent{
		ChainID:          flow.Emulator,
		Script:           []byte(DefaultScript),
		ReferenceBlockID: IdentifierFixture(),
		GasLimit:         9999,
		ProposalKey: flow.ProposalKey{
			Address:        account,
			KeyIndex:       0,
			SequenceNumber: rand.Uint64() % 1000,
		},
		Payer:       account,
		Authorizers: []flow.Address{account},
	}

	for _, apply := range opts {
		apply(&untrusted)
	}

	intent, err := flow.NewTransactionIntent(untrusted)
	require.NoError(t, err)
	return intent
}

// WithArguments sets the arguments of the intent.
func WithArguments(args ...flow.Argument) func(*flow.UntrustedTransactionIntent) {
	return func(intent *flow.UntrustedTransactionIntent) {
		intent.Arguments = args
	}
}

// WithRoles sets the proposer, payer and authorizers of the intent.
func WithRoles(proposer flow.Address, keyIndex uint32, payer flow.Address, authorizers ...flow.Address) func(*flow.UntrustedTransactionIntent) {
	return func(intent *flow.UntrustedTransactionIntent) {
		intent.ProposalKey.Address = proposer
		intent.ProposalKey.KeyIndex = keyIndex
		intent.Payer = payer
		intent.Authorizers = authorizers
	}
}

// AccountKey is the fixture of one account key together with its handle.
type AccountKey struct {
	Address  flow.Address
	KeyIndex uint32
	Handle   crypto.KeyHandle
}

// Slot returns the key slot signing with the account key.
func (k AccountKey) Slot() signing.KeySlot {
	return signing.KeySlot{
		Address:  k.Address.Hex(),
		KeyIndex: k.KeyIndex,
		Handle:   k.Handle,
	}
}

// AccountKeyFixture returns a P-256/SHA3-256 account key at index 0 of a random emulator account.
func AccountKeyFixture(t testing.TB) AccountKey {
	return AccountKey{
		Address: RandomAddressFixture(),
		Handle:  KeyHandleFixture(t, crypto.ECDSA_P256, crypto.SHA3_256),
	}
}

// SigningInputFixture returns an emulator input transferring 10 FLOW from
// the account of key, which proposes, pays for and authorizes the transfer
// with key.
func SigningInputFixture(key AccountKey, opts ...func(*signing.SigningInput)) *signing.SigningInput {
	input := &signing.SigningInput{
		ChainID: flow.Emulator.String(),
		Transfer: &signing.Transfer{
			To:     RandomAddressFixture().Hex(),
			Amount: "10.0",
		},
		ReferenceBlockID: IdentifierFixture().String(),
		GasLimit:         9999,
		ProposalKey: signing.ProposalKey{
			Address:        key.Address.Hex(),
			KeyIndex:       key.KeyIndex,
			SequenceNumber: 7,
		},
		Payer:       key.Address.Hex(),
		Authorizers: []string{key.Address.Hex()},
		Keys:        []signing.KeySlot{key.Slot()},
	}

	for _, apply := range opts {
		apply(input)
	}
	return input
}

// WithScript replaces the transfer of the input with script and args.
func WithScript(script string, args ...flow.Argument) func(*signing.SigningInput) {
	return func(input *signing.SigningInput) {
		input.Transfer = nil
		input.Script = script
		input.Arguments = args
	}
}

// WithKeys replaces the key slots of the input.
func WithKeys(keys ...AccountKey) func(*signing.SigningInput) {
	return func(input *signing.SigningInput) {
		input.Keys = make([]signing.KeySlot, len(keys))
		for i, key := range keys {
			input.Keys[i] = key.Slot()
		}
	}
}
