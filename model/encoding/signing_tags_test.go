package encoding_test

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/onflow/flow-signer/model/encoding"
)

func TestDomainTags(t *testing.T) {
	assert.Equal(t,
		"464c4f572d56302e302d7472616e73616374696f6e0000000000000000000000",
		hex.EncodeToString(encoding.TransactionDomainTag[:]),
	)
	assert.Equal(t, encoding.TransactionTagString, string(encoding.TransactionDomainTag[:len(encoding.TransactionTagString)]))
}
