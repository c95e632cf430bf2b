package main

import (
	"github.com/onflow/flow-signer/cmd/flow-signer/cmd"
)

func main() {
	cmd.Execute()
}
