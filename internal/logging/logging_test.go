package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bufferedLogger(buf *bytes.Buffer) *logrus.Logger {
	logger := SetupLogging()
	logger.Out = buf
	return logger
}

func lastEntry(t *testing.T, buf *bytes.Buffer) map[string]interface{} {
	t.Helper()
	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(lines[len(lines)-1], &entry))
	return entry
}

func TestSetupLoggingWithLevel(t *testing.T) {
	assert.Equal(t, logrus.DebugLevel, SetupLoggingWithLevel("debug").Level)
	assert.Equal(t, logrus.InfoLevel, SetupLoggingWithLevel("nonsense").Level)
	assert.Equal(t, logrus.InfoLevel, SetupLogging().Level)
}

func TestLogData_Log(t *testing.T) {
	var buf bytes.Buffer
	logData := NewLogData(bufferedLogger(&buf))

	logData.AddData("accountID", 3)
	stop := logData.AddTiming("saveMs")
	stop()
	logData.Log().Info("Ledger.Test")

	entry := lastEntry(t, &buf)
	assert.Equal(t, "info", entry["loglevel"])
	assert.Equal(t, "Ledger.Test", entry["msg"])
	assert.Equal(t, float64(3), entry["accountID"])
	assert.Contains(t, entry, "saveMs")
}

func TestLogData_AddToExistingTiming(t *testing.T) {
	var buf bytes.Buffer
	logData := NewLogData(bufferedLogger(&buf))

	logData.AddToExistingTiming("operatorMs")()
	logData.AddToExistingTiming("operatorMs")()
	logData.Log().Info("Operator.Test")

	entry := lastEntry(t, &buf)
	require.Contains(t, entry, "operatorMs")
	assert.GreaterOrEqual(t, entry["operatorMs"], float64(0))
}

func TestWithLogData(t *testing.T) {
	assert.Nil(t, GetLogData(context.Background()))

	logData := NewLogData(SetupLogging())
	ctx := WithLogData(context.Background(), logData)
	assert.Same(t, logData, GetLogData(ctx))
}

func TestLoggingWrapper(t *testing.T) {
	var buf bytes.Buffer
	handler := LoggingWrapper("Test", bufferedLogger(&buf), func(w http.ResponseWriter, req *http.Request, logData *LogData) error {
		assert.Same(t, logData, GetLogData(req.Context()))
		w.WriteHeader(http.StatusTeapot)
		return nil
	})

	w := httptest.NewRecorder()
	handler(w, httptest.NewRequest(http.MethodGet, "/status", nil))

	assert.Equal(t, http.StatusTeapot, w.Code)
	entry := lastEntry(t, &buf)
	assert.Equal(t, "Handler.Test.Complete", entry["msg"])
	assert.NotEmpty(t, entry["requestID"])
	assert.Contains(t, entry, "duration")
}

func TestLoggingWrapper_Error(t *testing.T) {
	var buf bytes.Buffer
	handler := LoggingWrapper("Test", bufferedLogger(&buf), func(http.ResponseWriter, *http.Request, *LogData) error {
		return errors.New("boom")
	})

	handler(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	entry := lastEntry(t, &buf)
	assert.Equal(t, "Handler.Test.Error", entry["msg"])
	assert.Equal(t, "error", entry["loglevel"])
	assert.Equal(t, "boom", entry["error"])
}

func TestMiddleware(t *testing.T) {
	var buf bytes.Buffer
	next := http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		logData := GetLogData(req.Context())
		require.NotNil(t, logData)
		logData.AddData("transactionCount", 2)
		w.WriteHeader(http.StatusOK)
	})

	w := httptest.NewRecorder()
	Middleware(bufferedLogger(&buf))(next).ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/v1/transaction/list", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	entry := lastEntry(t, &buf)
	assert.Equal(t, "Handler.Request.Complete", entry["msg"])
	assert.Equal(t, "POST", entry["method"])
	assert.Equal(t, "/v1/transaction/list", entry["path"])
	assert.Equal(t, float64(2), entry["transactionCount"])
}
