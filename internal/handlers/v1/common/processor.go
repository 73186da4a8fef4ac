// Package common holds helpers shared by the v1 handlers.
package common

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/budget-ledger/internal/operator"
	"github.com/carson-networks/budget-ledger/internal/operator/actions"
)

// ActionProcessor runs ledger mutations. Implemented by operator.OperatorDelegator.
type ActionProcessor interface {
	Process(ctx context.Context, action actions.IAction) error
}

var _ ActionProcessor = (*operator.OperatorDelegator)(nil)

// ProcessError converts an operator error into a huma error response.
func ProcessError(msg string, err error) error {
	if errors.Is(err, operator.ErrNotPersisted) {
		return huma.NewError(http.StatusInternalServerError, msg+": change kept in memory but not saved", err)
	}
	return huma.NewError(http.StatusInternalServerError, msg, err)
}
