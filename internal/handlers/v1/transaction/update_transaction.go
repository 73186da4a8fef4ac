package transaction

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/budget-ledger/internal/handlers/v1/common"
	"github.com/carson-networks/budget-ledger/internal/operator/actions"
)

// UpdateTransactionBody is the request body for updating a transaction.
type UpdateTransactionBody struct {
	AccountID   int64  `json:"accountID" minimum:"1" doc:"Account ID"`
	Amount      string `json:"amount" required:"true" doc:"Signed decimal amount"`
	Category    string `json:"category,omitempty" doc:"Category label"`
	Description string `json:"description,omitempty" doc:"Free-form description"`
}

// UpdateTransactionInput is the Huma input for updating a transaction.
type UpdateTransactionInput struct {
	ID   int64 `path:"id" minimum:"1" doc:"Transaction ID"`
	Body UpdateTransactionBody
}

// UpdateTransactionOutput is the Huma output for updating a transaction.
type UpdateTransactionOutput struct {
	Status int
}

// UpdateTransactionHandler handles PUT /v1/transaction/{id}.
type UpdateTransactionHandler struct {
	Operator common.ActionProcessor
}

// NewUpdateTransactionHandler creates a new UpdateTransactionHandler.
func NewUpdateTransactionHandler(op common.ActionProcessor) *UpdateTransactionHandler {
	return &UpdateTransactionHandler{Operator: op}
}

// Register registers the update transaction endpoint with the Huma API.
func (h *UpdateTransactionHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "update-transaction",
		Method:      http.MethodPut,
		Path:        "/v1/transaction/{id}",
		Summary:     "Update transaction",
		Description: "Replaces account, amount, category and description of a transaction. Unknown ids are ignored.",
		Tags:        []string{"Transactions"},
	}, h.handle)
}

func (h *UpdateTransactionHandler) handle(ctx context.Context, input *UpdateTransactionInput) (*UpdateTransactionOutput, error) {
	amount, err := parseAmount(input.Body.Amount)
	if err != nil {
		return nil, err
	}
	category, description := normalizeFields(amount, input.Body.Category, input.Body.Description)

	action := &actions.UpdateTransaction{
		ID:          input.ID,
		AccountID:   input.Body.AccountID,
		Amount:      amount,
		Category:    category,
		Description: description,
	}
	if err := h.Operator.Process(ctx, action); err != nil {
		return nil, common.ProcessError("failed to update transaction", err)
	}

	return &UpdateTransactionOutput{Status: http.StatusNoContent}, nil
}
