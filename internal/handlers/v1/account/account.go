package account

// Account is the API response model for an account.
type Account struct {
	ID             int64  `json:"id" doc:"Account ID"`
	Name           string `json:"name" doc:"Account name"`
	Type           string `json:"type" doc:"Account type label"`
	Currency       string `json:"currency" doc:"ISO 4217 currency code"`
	InitialBalance string `json:"initialBalance" doc:"Decimal balance at opening"`
	Balance        string `json:"balance" doc:"Decimal current balance"`
}
