package account

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/budget-ledger/internal/logging"
	"github.com/carson-networks/budget-ledger/internal/service"
)

// ListAccountsResponseBody is the response body for listing accounts.
type ListAccountsResponseBody struct {
	Accounts       []Account `json:"accounts" doc:"Every account in creation order"`
	OverallBalance string    `json:"overallBalance" doc:"Sum of every account balance"`
}

// ListAccountsOutput is the Huma output for listing accounts.
type ListAccountsOutput struct {
	Body ListAccountsResponseBody
}

// accountLister is the interface for listing accounts.
type accountLister interface {
	ListAccounts(ctx context.Context) ([]service.Account, error)
}

// ListAccountsHandler handles GET /v1/account.
type ListAccountsHandler struct {
	AccountService accountLister
}

// NewListAccountsHandler creates a new ListAccountsHandler.
func NewListAccountsHandler(svc accountLister) *ListAccountsHandler {
	return &ListAccountsHandler{AccountService: svc}
}

// Register registers the list accounts endpoint with the Huma API.
func (h *ListAccountsHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "list-accounts",
		Method:      http.MethodGet,
		Path:        "/v1/account",
		Summary:     "List accounts",
		Description: "Returns every account with its current balance.",
		Tags:        []string{"Accounts"},
	}, h.handle)
}

func (h *ListAccountsHandler) handle(ctx context.Context, input *struct{}) (*ListAccountsOutput, error) {
	logData := logging.GetLogData(ctx)

	accounts, err := h.AccountService.ListAccounts(ctx)
	if err != nil {
		return nil, huma.NewError(http.StatusInternalServerError, "failed to list accounts", err)
	}

	if logData != nil {
		logData.AddData("accountCount", len(accounts))
	}

	resp := ListAccountsResponseBody{
		Accounts: make([]Account, len(accounts)),
	}
	total := service.TotalBalance(accounts)
	for i, account := range accounts {
		resp.Accounts[i] = toResponse(account)
	}
	resp.OverallBalance = total.String()

	return &ListAccountsOutput{Body: resp}, nil
}

func toResponse(account service.Account) Account {
	return Account{
		ID:             account.ID,
		Name:           account.Name,
		Type:           account.Type,
		Currency:       account.Currency,
		InitialBalance: account.InitialBalance.String(),
		Balance:        account.Balance.String(),
	}
}
