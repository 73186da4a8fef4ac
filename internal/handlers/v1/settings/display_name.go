package settings

import (
	"context"
	"net/http"
	"strings"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/budget-ledger/internal/handlers/v1/common"
	"github.com/carson-networks/budget-ledger/internal/operator/actions"
)

// SetDisplayNameBody is the request body for renaming the ledger.
type SetDisplayNameBody struct {
	DisplayName string `json:"displayName" minLength:"1" doc:"Name shown on summaries"`
}

// SetDisplayNameInput is the Huma input for renaming the ledger.
type SetDisplayNameInput struct {
	Body SetDisplayNameBody
}

// SetDisplayNameOutput is the Huma output for renaming the ledger.
type SetDisplayNameOutput struct {
	Status int
}

// SetDisplayNameHandler handles PUT /v1/settings/display-name.
type SetDisplayNameHandler struct {
	Operator common.ActionProcessor
}

// NewSetDisplayNameHandler creates a new SetDisplayNameHandler.
func NewSetDisplayNameHandler(op common.ActionProcessor) *SetDisplayNameHandler {
	return &SetDisplayNameHandler{Operator: op}
}

// Register registers the display name endpoint with the Huma API.
func (h *SetDisplayNameHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "set-display-name",
		Method:      http.MethodPut,
		Path:        "/v1/settings/display-name",
		Summary:     "Rename the ledger",
		Tags:        []string{"Settings"},
	}, h.handle)
}

func (h *SetDisplayNameHandler) handle(ctx context.Context, input *SetDisplayNameInput) (*SetDisplayNameOutput, error) {
	name := strings.TrimSpace(input.Body.DisplayName)
	if name == "" {
		return nil, huma.NewError(http.StatusBadRequest, "displayName must not be blank")
	}

	if err := h.Operator.Process(ctx, &actions.SetDisplayName{Name: name}); err != nil {
		return nil, common.ProcessError("failed to set display name", err)
	}
	return &SetDisplayNameOutput{Status: http.StatusNoContent}, nil
}
