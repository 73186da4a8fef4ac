package settings

import (
	"context"
	"net/http"
	"testing"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/carson-networks/budget-ledger/internal/operator/actions"
)

type mockProcessor struct {
	mock.Mock
}

func (m *mockProcessor) Process(ctx context.Context, action actions.IAction) error {
	args := m.Called(ctx, action)
	return args.Error(0)
}

func newTestAPI(t *testing.T, op *mockProcessor) humatest.TestAPI {
	t.Helper()
	_, api := humatest.New(t)
	NewSetDisplayNameHandler(op).Register(api)
	return api
}

func TestHTTP_SetDisplayName(t *testing.T) {
	op := new(mockProcessor)
	op.On("Process", mock.Anything, &actions.SetDisplayName{Name: "Acme LLC"}).Return(nil)

	resp := newTestAPI(t, op).Put("/v1/settings/display-name", SetDisplayNameBody{DisplayName: "  Acme LLC "})

	assert.Equal(t, http.StatusNoContent, resp.Code)
	op.AssertExpectations(t)
}

func TestHTTP_SetDisplayName_Blank(t *testing.T) {
	op := new(mockProcessor)

	resp := newTestAPI(t, op).Put("/v1/settings/display-name", SetDisplayNameBody{DisplayName: "   "})

	assert.Equal(t, http.StatusBadRequest, resp.Code)
	op.AssertNotCalled(t, "Process", mock.Anything, mock.Anything)
}
