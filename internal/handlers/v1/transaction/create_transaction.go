package transaction

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/budget-ledger/internal/handlers/v1/common"
	"github.com/carson-networks/budget-ledger/internal/ledger"
	"github.com/carson-networks/budget-ledger/internal/logging"
	"github.com/carson-networks/budget-ledger/internal/operator/actions"
)

// CreateTransactionBody is the request body for creating a transaction.
type CreateTransactionBody struct {
	AccountID       int64  `json:"accountID" minimum:"1" doc:"Account ID"`
	Amount          string `json:"amount" required:"true" doc:"Signed decimal amount, negative for expenses"`
	Category        string `json:"category,omitempty" doc:"Category label, defaults to the first category for the amount's sign"`
	Description     string `json:"description,omitempty" doc:"Free-form description"`
	TransactionDate string `json:"transactionDate,omitempty" format:"date-time" doc:"RFC3339 transaction date, defaults to now"`
}

// CreateTransactionInput is the Huma input for creating a transaction.
type CreateTransactionInput struct {
	Body CreateTransactionBody
}

// CreateTransactionOutput is the Huma output for creating a transaction.
type CreateTransactionOutput struct {
	Status int
	Body   Transaction
}

// CreateTransactionHandler handles POST /v1/transaction.
type CreateTransactionHandler struct {
	Operator common.ActionProcessor
}

// NewCreateTransactionHandler creates a new CreateTransactionHandler.
func NewCreateTransactionHandler(op common.ActionProcessor) *CreateTransactionHandler {
	return &CreateTransactionHandler{Operator: op}
}

// Register registers the create transaction endpoint with the Huma API.
func (h *CreateTransactionHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "create-transaction",
		Method:      http.MethodPost,
		Path:        "/v1/transaction",
		Summary:     "Create transaction",
		Description: "Creates a new transaction.",
		Tags:        []string{"Transactions"},
	}, h.handle)
}

func parseAmount(value string) (decimal.Decimal, error) {
	amount, err := ledger.ParseAmount(value)
	if err != nil {
		return decimal.Zero, huma.NewError(http.StatusBadRequest, "invalid amount", err)
	}
	return amount, nil
}

func normalizeFields(amount decimal.Decimal, category, description string) (string, string) {
	if category == "" {
		category = ledger.DefaultCategory(amount)
	}
	description = strings.TrimSpace(description)
	if description == "" {
		description = ledger.EmptyDescription
	}
	return category, description
}

func parseCreateTransactionInput(input *CreateTransactionInput) (*actions.CreateTransaction, error) {
	amount, err := parseAmount(input.Body.Amount)
	if err != nil {
		return nil, err
	}

	var transactionDate time.Time
	if input.Body.TransactionDate != "" {
		transactionDate, err = time.Parse(time.RFC3339, input.Body.TransactionDate)
		if err != nil {
			return nil, huma.NewError(http.StatusBadRequest, "invalid transactionDate", err)
		}
	}

	category, description := normalizeFields(amount, input.Body.Category, input.Body.Description)
	return &actions.CreateTransaction{
		AccountID:   input.Body.AccountID,
		Amount:      amount,
		Category:    category,
		Description: description,
		Timestamp:   transactionDate,
	}, nil
}

func (h *CreateTransactionHandler) handle(ctx context.Context, input *CreateTransactionInput) (*CreateTransactionOutput, error) {
	logData := logging.GetLogData(ctx)

	action, err := parseCreateTransactionInput(input)
	if err != nil {
		return nil, err
	}

	if err := h.Operator.Process(ctx, action); err != nil {
		return nil, common.ProcessError("failed to create transaction", err)
	}

	if logData != nil {
		logData.AddData("transactionID", action.Created.ID)
	}

	return &CreateTransactionOutput{Status: http.StatusCreated, Body: toResponse(action.Created)}, nil
}
