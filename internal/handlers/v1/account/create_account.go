package account

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/budget-ledger/internal/handlers/v1/common"
	"github.com/carson-networks/budget-ledger/internal/ledger"
	"github.com/carson-networks/budget-ledger/internal/logging"
	"github.com/carson-networks/budget-ledger/internal/operator/actions"
)

// CreateAccountInput is the Huma input for creating an account.
type CreateAccountInput struct {
	Body CreateAccountBody
}

// CreateAccountBody is the request body fields for creating an account.
type CreateAccountBody struct {
	Name           string `json:"name" minLength:"1" doc:"Account name"`
	Type           string `json:"type,omitempty" doc:"Account type label, defaults to Card"`
	InitialBalance string `json:"initialBalance,omitempty" doc:"Balance at opening (e.g. '0' or '1234.56'), defaults to 0"`
}

// CreateAccountResponse is the response body for creating an account.
type CreateAccountResponse struct {
	Account Account `json:"account" doc:"Created account"`
}

// CreateAccountOutput is the response for creating an account.
type CreateAccountOutput struct {
	Status int
	Body   CreateAccountResponse
}

// CreateAccountHandler handles POST /v1/account.
type CreateAccountHandler struct {
	Operator common.ActionProcessor
}

// NewCreateAccountHandler creates a new CreateAccountHandler.
func NewCreateAccountHandler(op common.ActionProcessor) *CreateAccountHandler {
	return &CreateAccountHandler{Operator: op}
}

// Register registers the create account endpoint with the Huma API.
func (h *CreateAccountHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "create-account",
		Method:      http.MethodPost,
		Path:        "/v1/account",
		Summary:     "Create an account",
		Description: "Creates a new account in the ledger's base currency.",
		Tags:        []string{"Accounts"},
	}, h.handle)
}

func parseCreateAccountInput(input *CreateAccountInput) (*actions.CreateAccount, error) {
	balance, err := parseBalance(input.Body.InitialBalance)
	if err != nil {
		return nil, err
	}

	accountType := input.Body.Type
	if accountType == "" {
		accountType = ledger.DefaultAccountType
	}

	return &actions.CreateAccount{
		Name:           input.Body.Name,
		Type:           accountType,
		InitialBalance: balance,
	}, nil
}

func parseBalance(value string) (decimal.Decimal, error) {
	if value == "" {
		return decimal.Zero, nil
	}
	balance, err := ledger.ParseAmount(value)
	if err != nil {
		return decimal.Zero, huma.NewError(http.StatusBadRequest, "invalid initialBalance", err)
	}
	return balance, nil
}

func (h *CreateAccountHandler) handle(ctx context.Context, input *CreateAccountInput) (*CreateAccountOutput, error) {
	logData := logging.GetLogData(ctx)

	action, err := parseCreateAccountInput(input)
	if err != nil {
		return nil, err
	}

	var stopTimer func()
	if logData != nil {
		stopTimer = logData.AddTiming("createAccountMs")
	}
	err = h.Operator.Process(ctx, action)
	if stopTimer != nil {
		stopTimer()
	}
	if err != nil {
		return nil, common.ProcessError("failed to create account", err)
	}

	if logData != nil {
		logData.AddData("accountID", action.Created.ID)
	}

	return &CreateAccountOutput{
		Status: http.StatusCreated,
		Body: CreateAccountResponse{Account: Account{
			ID:             action.Created.ID,
			Name:           action.Created.Name,
			Type:           action.Created.Type,
			Currency:       action.Created.Currency,
			InitialBalance: action.Created.InitialBalance.String(),
			Balance:        action.Created.InitialBalance.String(),
		}},
	}, nil
}
