package flow_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/onflow/flow-signer/model/flow"
)

func TestChainSystemAddresses(t *testing.T) {
	cases := []struct {
		chainID       flow.ChainID
		service       string
		fungibleToken string
		flowToken     string
	}{
		{flow.Mainnet, "e467b9dd11fa00df", "f233dcee88fe0abe", "1654653399040a61"},
		{flow.Testnet, "8c5303eaa26202d6", "9a0766d93b6608b7", "7e60df042a9c0868"},
		{flow.Emulator, "f8d6e0586b0a20c7", "ee82856bf20e2aa6", "0ae53cb6e3f42a79"},
	}

	for _, c := range cases {
		t.Run(c.chainID.String(), func(t *testing.T) {
			chain, err := c.chainID.Chain()
			require.NoError(t, err)

			assert.Equal(t, c.service, chain.ServiceAddress().Hex())
			assert.Equal(t, c.fungibleToken, chain.FungibleTokenAddress().Hex())
			assert.Equal(t, c.flowToken, chain.FlowTokenAddress().Hex())
			assert.True(t, chain.IsValid(chain.ServiceAddress()))
		})
	}
}

func TestUnsupportedChain(t *testing.T) {
	_, err := flow.ChainID("flow-unknown").Chain()
	require.Error(t, err)
}

func TestAddressValidity(t *testing.T) {
	mainnet, err := flow.Mainnet.Chain()
	require.NoError(t, err)
	testnet, err := flow.Testnet.Chain()
	require.NoError(t, err)

	t.Run("empty address is never valid", func(t *testing.T) {
		for _, chainID := range flow.AllChainIDs() {
			chain, err := chainID.Chain()
			require.NoError(t, err)
			assert.False(t, chain.IsValid(flow.EmptyAddress))
		}
	})

	t.Run("addresses are only valid on their chain", func(t *testing.T) {
		assert.False(t, testnet.IsValid(mainnet.ServiceAddress()))
		assert.False(t, mainnet.IsValid(testnet.ServiceAddress()))
	})

	t.Run("index zero is rejected", func(t *testing.T) {
		_, err := mainnet.AddressAtIndex(0)
		require.Error(t, err)
	})

	t.Run("index above the code space is rejected", func(t *testing.T) {
		_, err := mainnet.AddressAtIndex(1 << 45)
		require.Error(t, err)
	})
}

// TestAddressAtIndexRapid checks that every generated address is valid on its
// chain only and that a flipped bit always invalidates it.
func TestAddressAtIndexRapid(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		chainID := rapid.SampledFrom(flow.AllChainIDs()).Draw(t, "chain")
		index := rapid.Uint64Range(1, 1<<45-1).Draw(t, "index")
		bit := rapid.IntRange(0, 63).Draw(t, "bit")

		chain, err := chainID.Chain()
		require.NoError(t, err)

		address, err := chain.AddressAtIndex(index)
		require.NoError(t, err)
		require.True(t, chain.IsValid(address))

		// the code has minimum distance 7, a single bit error is always detected
		corrupted := flow.Uint64ToAddress(address.Uint64() ^ (1 << bit))
		require.False(t, chain.IsValid(corrupted))

		for _, other := range flow.AllChainIDs() {
			if other == chainID {
				continue
			}
			otherChain, err := other.Chain()
			require.NoError(t, err)
			require.False(t, otherChain.IsValid(address))
		}
	})
}

func TestStringToAddress(t *testing.T) {
	t.Run("with prefix", func(t *testing.T) {
		address, err := flow.StringToAddress("0xf8d6e0586b0a20c7")
		require.NoError(t, err)
		assert.Equal(t, "f8d6e0586b0a20c7", address.Hex())
		assert.Equal(t, "0xf8d6e0586b0a20c7", address.HexWithPrefix())
	})

	t.Run("short input is left padded", func(t *testing.T) {
		address, err := flow.StringToAddress("1")
		require.NoError(t, err)
		assert.Equal(t, "0000000000000001", address.Hex())
		assert.Equal(t, "01", address.Short())
	})

	t.Run("too long", func(t *testing.T) {
		_, err := flow.StringToAddress("0x01f8d6e0586b0a20c7")
		require.Error(t, err)
	})

	t.Run("not hex", func(t *testing.T) {
		_, err := flow.StringToAddress("f8d6e0586b0a20zz")
		require.Error(t, err)
	})
}

func TestAddressJSON(t *testing.T) {
	address := flow.HexToAddress("f8d6e0586b0a20c7")

	b, err := address.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, `"f8d6e0586b0a20c7"`, string(b))

	var decoded flow.Address
	require.NoError(t, decoded.UnmarshalJSON(b))
	assert.Equal(t, address, decoded)
}

func TestExplorerURLs(t *testing.T) {
	id := flow.MustHexStringToIdentifier("f35b10d95c9e952c3867ac158552dfd87a670cd7974fbbcd1f2ff0f37519dea8")
	assert.Equal(t, "https://flowscan.org/transaction/f35b10d95c9e952c3867ac158552dfd87a670cd7974fbbcd1f2ff0f37519dea8", flow.TransactionURL(id))
	assert.Equal(t, "https://flowscan.org/account/e467b9dd11fa00df", flow.AccountURL(flow.HexToAddress("e467b9dd11fa00df")))
}

func TestHexStringToIdentifier(t *testing.T) {
	_, err := flow.HexStringToIdentifier("0xabcd")
	require.Error(t, err)

	_, err = flow.HexStringToIdentifier("not hex")
	require.Error(t, err)

	id, err := flow.HexStringToIdentifier("0xf0e4c2f76c58916ec258f246851bea091d14d4247a2fc3e18694461b1816e13b")
	require.NoError(t, err)
	assert.Equal(t, "f0e4c2f76c58916ec258f246851bea091d14d4247a2fc3e18694461b1816e13b", id.String())
}
