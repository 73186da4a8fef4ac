package status

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/carson-networks/budget-ledger/internal/logging"
)

// persistenceChecker reports the outcome of the ledger's most recent save.
type persistenceChecker interface {
	PersistErr() error
}

type Handler struct {
	ledger persistenceChecker
}

func NewHandler(l persistenceChecker) Handler {
	return Handler{ledger: l}
}

// Handler answers 200 while the ledger is saving, and 503 once a save has failed.
func (h *Handler) Handler(w http.ResponseWriter, req *http.Request, logData *logging.LogData) error {
	if req.Method != http.MethodGet {
		w.WriteHeader(http.StatusBadRequest)
		return errors.New("status: method not GET")
	}

	if err := h.ledger.PersistErr(); err != nil {
		logData.AddData("persisted", false)
		w.WriteHeader(http.StatusServiceUnavailable)
		return fmt.Errorf("status: last save failed: %w", err)
	}

	logData.AddData("persisted", true)
	w.WriteHeader(http.StatusOK)
	return nil
}
