package logging

import (
	"github.com/onflow/flow-signer/model/flow"
)

func Addresses(addresses []flow.Address) []string {
	ss := make([]string, 0, len(addresses))
	for _, address := range addresses {
		ss = append(ss, address.Hex())
	}
	return ss
}
