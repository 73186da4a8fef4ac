package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/budget-ledger/internal/ledger"
	"github.com/carson-networks/budget-ledger/internal/operator"
	"github.com/carson-networks/budget-ledger/internal/service"
	"github.com/carson-networks/budget-ledger/internal/storage/memory"
)

func newTestRouter(t *testing.T) (http.Handler, *memory.Store) {
	t.Helper()
	logger := logrus.New()
	logger.Out = io.Discard

	store := memory.NewStore()
	l := ledger.New(store,
		ledger.WithLogger(logger),
		ledger.WithClock(func() time.Time { return time.Date(2025, time.March, 15, 12, 0, 0, 0, time.UTC) }),
	)
	delegator := operator.NewOperatorDelegator(l)
	delegator.Start()
	t.Cleanup(delegator.Stop)

	rest := &Rest{
		Logger:         logger,
		Ledger:         l,
		Service:        service.NewService(l),
		Operator:       delegator,
		ReportFilename: "report.csv",
	}
	return rest.Router(), store
}

func do(t *testing.T, router http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestRouter_Status(t *testing.T) {
	router, _ := newTestRouter(t)

	assert.Equal(t, http.StatusOK, do(t, router, http.MethodGet, "/status", nil).Code)
	assert.Equal(t, http.StatusBadRequest, do(t, router, http.MethodPost, "/status", nil).Code)
}

func TestRouter_TransactionFlow(t *testing.T) {
	router, store := newTestRouter(t)
	savesAfterSeed := store.Saves()

	rec := do(t, router, http.MethodPost, "/v1/transaction", map[string]any{
		"accountID":       1,
		"amount":          "1000",
		"category":        "Services rendered",
		"transactionDate": "2025-03-03T09:00:00Z",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = do(t, router, http.MethodPost, "/v1/transaction", map[string]any{
		"accountID":       1,
		"amount":          "-200,5",
		"description":     "office; March",
		"transactionDate": "2025-03-04T18:05:00Z",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var created map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&created))
	assert.Equal(t, "Transport", created["category"])
	assert.Equal(t, "-200.5", created["amount"])
	assert.Equal(t, savesAfterSeed+2, store.Saves())

	rec = do(t, router, http.MethodPost, "/v1/transaction/list", map[string]any{})
	require.Equal(t, http.StatusOK, rec.Code)
	var list struct {
		Transactions []struct {
			ID int64 `json:"id"`
		} `json:"transactions"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&list))
	require.Len(t, list.Transactions, 2)
	assert.Equal(t, int64(2), list.Transactions[0].ID)

	rec = do(t, router, http.MethodGet, "/v1/summary?month=2025-03", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var summary map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&summary))
	assert.Equal(t, "1000", summary["income"])
	assert.Equal(t, "-200.5", summary["expense"])
	assert.Equal(t, "799.5", summary["net"])
	assert.Equal(t, "Services rendered", summary["topCategory"])
	assert.Equal(t, "799.5", summary["overallBalance"])

	rec = do(t, router, http.MethodGet, "/v1/report", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "2;2025-03-04 18:05;Current account;Transport;office, March;-200.5;RUB\n")

	rec = do(t, router, http.MethodDelete, "/v1/transaction/2", nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = do(t, router, http.MethodGet, "/v1/account", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var accounts map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&accounts))
	assert.Equal(t, "1000", accounts["overallBalance"])
}

func TestRouter_DisplayName(t *testing.T) {
	router, store := newTestRouter(t)

	rec := do(t, router, http.MethodPut, "/v1/settings/display-name", map[string]any{"displayName": "Acme LLC"})
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = do(t, router, http.MethodGet, "/v1/summary", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var summary map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&summary))
	assert.Equal(t, "Acme LLC", summary["displayName"])

	snap, err := store.Load(t.Context())
	require.NoError(t, err)
	assert.Equal(t, "Acme LLC", snap.Settings[ledger.SettingDisplayName])
}
