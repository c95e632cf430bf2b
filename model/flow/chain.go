package flow

import (
	"fmt"
)

// A ChainID is a unique identifier for a specific Flow network instance.
//
// Chain IDs are used to prevent replay attacks and to support network-specific address generation.
type ChainID string

const (
	// Mainnet is the chain ID for the mainnet chain.
	Mainnet ChainID = "flow-mainnet"
	// Testnet is the chain ID for the testnet chain.
	Testnet ChainID = "flow-testnet"
	// Emulator is the chain ID for the emulated chain, which is used for local testing.
	Emulator ChainID = "flow-emulator"
)

// invalid code-words in the [64,45] code
// these constants are used to generate non-Flow-Mainnet addresses
const (
	invalidCodeTestNetwork      = uint64(0x6834ba37b3980209)
	invalidCodeTransientNetwork = uint64(0x1cb159857af02018)
)

const (
	// serviceAccountIndex is the address index of the service account on every chain.
	serviceAccountIndex = 1
	// fungibleTokenAccountIndex is the address index of the account holding the FungibleToken contract.
	fungibleTokenAccountIndex = 2
	// flowTokenAccountIndex is the address index of the account holding the FlowToken contract.
	flowTokenAccountIndex = 3
)

// Chain holds the address generation rules of a Flow network.
type Chain struct {
	id         ChainID
	customizer uint64
}

var chains = map[ChainID]*Chain{
	Mainnet:  {id: Mainnet, customizer: 0},
	Testnet:  {id: Testnet, customizer: invalidCodeTestNetwork},
	Emulator: {id: Emulator, customizer: invalidCodeTransientNetwork},
}

// Chain returns the Chain corresponding to the string input.
func (c ChainID) Chain() (*Chain, error) {
	chain, ok := chains[c]
	if !ok {
		return nil, fmt.Errorf("chain ID %q is not supported", string(c))
	}
	return chain, nil
}

// String returns the string representation of the chain ID.
func (c ChainID) String() string {
	return string(c)
}

// AllChainIDs returns every chain ID known to the signer.
func AllChainIDs() []ChainID {
	return []ChainID{Mainnet, Testnet, Emulator}
}

// ChainID returns the ID of the chain.
func (c *Chain) ChainID() ChainID {
	return c.id
}

// AddressAtIndex returns the address of the account created at the given index.
//
// Indices start at 1: index 0 maps to the zero address, which no account owns.
func (c *Chain) AddressAtIndex(index uint64) (Address, error) {
	if index == 0 || index > maxIndex {
		return EmptyAddress, fmt.Errorf("index must be within [1, %d], got %d", uint64(maxIndex), index)
	}
	return Uint64ToAddress(encodeWord(index) ^ c.customizer), nil
}

// IsValid returns true if a given address is a valid account address on this chain,
// and false otherwise.
//
// This is an off-chain check that only tells whether the address format is
// valid. If the function returns true, this does not mean
// a Flow account with this address has been generated. Such a test would
// require an on-chain check.
func (c *Chain) IsValid(address Address) bool {
	codeWord := address.Uint64() ^ c.customizer
	if codeWord == 0 {
		return false
	}
	return isValidCodeWord(codeWord)
}

// ServiceAddress returns the address of the service account.
func (c *Chain) ServiceAddress() Address {
	return c.mustAddressAtIndex(serviceAccountIndex)
}

// FungibleTokenAddress returns the address of the account holding the FungibleToken contract.
func (c *Chain) FungibleTokenAddress() Address {
	return c.mustAddressAtIndex(fungibleTokenAccountIndex)
}

// FlowTokenAddress returns the address of the account holding the FlowToken contract.
func (c *Chain) FlowTokenAddress() Address {
	return c.mustAddressAtIndex(flowTokenAccountIndex)
}

func (c *Chain) mustAddressAtIndex(index uint64) Address {
	address, err := c.AddressAtIndex(index)
	if err != nil {
		panic(err)
	}
	return address
}
