package account

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/budget-ledger/internal/handlers/v1/common"
	"github.com/carson-networks/budget-ledger/internal/operator/actions"
)

// UpdateAccountBody is the request body for updating an account.
type UpdateAccountBody struct {
	Name           string `json:"name" minLength:"1" doc:"Account name"`
	Type           string `json:"type" doc:"Account type label"`
	InitialBalance string `json:"initialBalance" doc:"Balance at opening"`
}

// UpdateAccountInput is the Huma input for updating an account.
type UpdateAccountInput struct {
	ID   int64 `path:"id" minimum:"1" doc:"Account ID"`
	Body UpdateAccountBody
}

// UpdateAccountOutput is the Huma output for updating an account.
type UpdateAccountOutput struct {
	Status int
}

// UpdateAccountHandler handles PUT /v1/account/{id}.
type UpdateAccountHandler struct {
	Operator common.ActionProcessor
}

// NewUpdateAccountHandler creates a new UpdateAccountHandler.
func NewUpdateAccountHandler(op common.ActionProcessor) *UpdateAccountHandler {
	return &UpdateAccountHandler{Operator: op}
}

// Register registers the update account endpoint with the Huma API.
func (h *UpdateAccountHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "update-account",
		Method:      http.MethodPut,
		Path:        "/v1/account/{id}",
		Summary:     "Update an account",
		Description: "Replaces the name, type and initial balance of an account. Unknown ids are ignored.",
		Tags:        []string{"Accounts"},
	}, h.handle)
}

func (h *UpdateAccountHandler) handle(ctx context.Context, input *UpdateAccountInput) (*UpdateAccountOutput, error) {
	balance, err := parseBalance(input.Body.InitialBalance)
	if err != nil {
		return nil, err
	}

	action := &actions.UpdateAccount{
		ID:             input.ID,
		Name:           input.Body.Name,
		Type:           input.Body.Type,
		InitialBalance: balance,
	}
	if err := h.Operator.Process(ctx, action); err != nil {
		return nil, common.ProcessError("failed to update account", err)
	}

	return &UpdateAccountOutput{Status: http.StatusNoContent}, nil
}
