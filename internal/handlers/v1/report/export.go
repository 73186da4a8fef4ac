package report

import (
	"bytes"
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/budget-ledger/internal/logging"
	"github.com/carson-networks/budget-ledger/internal/report"
)

// ExportOutput is the Huma output carrying the rendered report.
type ExportOutput struct {
	ContentType        string `header:"Content-Type"`
	ContentDisposition string `header:"Content-Disposition"`
	Body               []byte
}

// ExportHandler handles GET /v1/report.
type ExportHandler struct {
	Source   report.Source
	Filename string
}

// NewExportHandler creates a new ExportHandler.
func NewExportHandler(src report.Source, filename string) *ExportHandler {
	return &ExportHandler{Source: src, Filename: filename}
}

// Register registers the report endpoint with the Huma API.
func (h *ExportHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "export-report",
		Method:      http.MethodGet,
		Path:        "/v1/report",
		Summary:     "Export report",
		Description: "Returns every transaction as semicolon-delimited text.",
		Tags:        []string{"Report"},
	}, h.handle)
}

func (h *ExportHandler) handle(ctx context.Context, input *struct{}) (*ExportOutput, error) {
	logData := logging.GetLogData(ctx)

	var buf bytes.Buffer
	if err := report.ExportTransactions(h.Source, &buf); err != nil {
		return nil, huma.NewError(http.StatusInternalServerError, "failed to render report", err)
	}

	if logData != nil {
		logData.AddData("reportBytes", buf.Len())
	}

	return &ExportOutput{
		ContentType:        "text/csv; charset=utf-8",
		ContentDisposition: `attachment; filename="` + h.Filename + `"`,
		Body:               buf.Bytes(),
	}, nil
}
