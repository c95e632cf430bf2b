package signer_test

import (
	"sort"

	"github.com/onflow/flow-signer/model/flow"
)

func sortedChainIDs(ids []flow.ChainID) []flow.ChainID {
	sorted := append([]flow.ChainID{}, ids...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
	return sorted
}
