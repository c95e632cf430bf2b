package flow

const flowscanURL = "https://flowscan.org"

// TransactionURL returns the block explorer page of a transaction.
func TransactionURL(id Identifier) string {
	return flowscanURL + "/transaction/" + id.String()
}

// AccountURL returns the block explorer page of an account.
func AccountURL(address Address) string {
	return flowscanURL + "/account/" + address.Hex()
}
