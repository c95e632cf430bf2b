package blueprints

import (
	"fmt"

	"github.com/onflow/flow-signer/model/flow"
)

const transferTokensTransactionTemplate = `
import FungibleToken from 0x%s
import FlowToken from 0x%s

transaction(amount: UFix64, to: Address) {

    // The Vault resource that holds the tokens that are being transferred
    let sentVault: @{FungibleToken.Vault}

    prepare(signer: auth(BorrowValue) &Account) {

        // Get a reference to the signer's stored vault
        let vaultRef = signer.storage.borrow<auth(FungibleToken.Withdraw) &FlowToken.Vault>(from: /storage/flowTokenVault)
            ?? panic("Could not borrow reference to the owner's Vault!")

        // Withdraw tokens from the signer's stored vault
        self.sentVault <- vaultRef.withdraw(amount: amount)
    }

    execute {

        // Get a reference to the recipient's Receiver
        let receiverRef = getAccount(to)
            .capabilities.borrow<&{FungibleToken.Receiver}>(/public/flowTokenReceiver)
            ?? panic("Could not borrow receiver reference to the recipient's Vault")

        // Deposit the withdrawn tokens in the recipient's receiver
        receiverRef.deposit(from: <-self.sentVault)
    }
}
`

// Script is a transaction script with its arguments.
type Script struct {
	Code      []byte
	Arguments []flow.Argument
	// Authorizers is the number of accounts the prepare block takes.
	Authorizers int
}

// TransferTokensScript returns the transaction moving amount FLOW from the
// single authorizer of the transaction to the account to.
//
// amount is a decimal string with at most 8 fractional digits, its range is
// checked when the arguments are encoded.
func TransferTokensScript(chain *flow.Chain, amount string, to flow.Address) (*Script, error) {
	if !chain.IsValid(to) {
		return nil, fmt.Errorf("recipient %s is not a valid address on %s", to, chain.ChainID())
	}
	if amount == "" {
		return nil, fmt.Errorf("transfer amount must not be empty")
	}

	return &Script{
		Code: []byte(fmt.Sprintf(transferTokensTransactionTemplate, chain.FungibleTokenAddress().Hex(), chain.FlowTokenAddress().Hex())),
		Arguments: []flow.Argument{
			flow.UFix64Argument(amount),
			flow.AddressArgument(to),
		},
		Authorizers: 1,
	}, nil
}
