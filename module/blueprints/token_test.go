package blueprints_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/onflow/flow-signer/model/flow"
	"github.com/onflow/flow-signer/module/blueprints"
	"github.com/onflow/flow-signer/utils/unittest"
)

func TestTransferTokensScript(t *testing.T) {
	for _, chainID := range flow.AllChainIDs() {
		t.Run(chainID.String(), func(t *testing.T) {
			chain, err := chainID.Chain()
			require.NoError(t, err)
			to := unittest.RandomAddressFixtureForChain(chainID)

			script, err := blueprints.TransferTokensScript(chain, "10.5", to)
			require.NoError(t, err)

			code := string(script.Code)
			assert.Contains(t, code, "import FungibleToken from 0x"+chain.FungibleTokenAddress().Hex())
			assert.Contains(t, code, "import FlowToken from 0x"+chain.FlowTokenAddress().Hex())
			assert.Equal(t, []flow.Argument{flow.UFix64Argument("10.5"), flow.AddressArgument(to)}, script.Arguments)
			assert.Equal(t, 1, script.Authorizers)
		})
	}
}

func TestTransferTokensScriptEmulatorContracts(t *testing.T) {
	chain, err := flow.Emulator.Chain()
	require.NoError(t, err)

	script, err := blueprints.TransferTokensScript(chain, "1.0", unittest.RandomAddressFixture())
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(script.Code), "0xee82856bf20e2aa6"))
	assert.True(t, strings.Contains(string(script.Code), "0x0ae53cb6e3f42a79"))
}

func TestTransferTokensScriptRejects(t *testing.T) {
	chain, err := flow.Emulator.Chain()
	require.NoError(t, err)

	_, err = blueprints.TransferTokensScript(chain, "1.0", unittest.RandomAddressFixtureForChain(flow.Mainnet))
	require.Error(t, err)

	_, err = blueprints.TransferTokensScript(chain, "", unittest.RandomAddressFixture())
	require.Error(t, err)
}
