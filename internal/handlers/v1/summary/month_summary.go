package summary

import (
	"context"
	"net/http"
	"sort"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/budget-ledger/internal/service"
)

// MonthLayout is the format of the month query parameter.
const MonthLayout = "2006-01"

// CategoryTotal is the signed total of one category.
type CategoryTotal struct {
	Category string `json:"category" doc:"Category label"`
	Total    string `json:"total" doc:"Signed decimal total"`
}

// MonthSummaryInput is the Huma input for a month summary.
type MonthSummaryInput struct {
	Month string `query:"month" doc:"Month as YYYY-MM, defaults to the current month"`
}

// MonthSummaryResponseBody is the response body for a month summary.
type MonthSummaryResponseBody struct {
	DisplayName    string          `json:"displayName" doc:"Ledger display name"`
	Month          string          `json:"month" doc:"Summarized month as YYYY-MM"`
	Currency       string          `json:"currency" doc:"Base currency"`
	Income         string          `json:"income" doc:"Sum of non-negative amounts"`
	Expense        string          `json:"expense" doc:"Sum of negative amounts"`
	Net            string          `json:"net" doc:"Income plus expense"`
	TopCategory    string          `json:"topCategory,omitempty" doc:"Category with the largest absolute total"`
	ByCategory     []CategoryTotal `json:"byCategory" doc:"Signed totals per category, sorted by label"`
	OverallBalance string          `json:"overallBalance" doc:"Sum of every account balance"`
}

// MonthSummaryOutput is the Huma output for a month summary.
type MonthSummaryOutput struct {
	Body MonthSummaryResponseBody
}

// summarizer is the interface for computing month summaries.
type summarizer interface {
	MonthSummary(ctx context.Context, reference time.Time) (*service.Summary, error)
}

// MonthSummaryHandler handles GET /v1/summary.
type MonthSummaryHandler struct {
	SummaryService summarizer
	now            func() time.Time
}

// NewMonthSummaryHandler creates a new MonthSummaryHandler.
func NewMonthSummaryHandler(svc summarizer) *MonthSummaryHandler {
	return &MonthSummaryHandler{SummaryService: svc, now: time.Now}
}

// Register registers the month summary endpoint with the Huma API.
func (h *MonthSummaryHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "month-summary",
		Method:      http.MethodGet,
		Path:        "/v1/summary",
		Summary:     "Month summary",
		Description: "Returns income, expense and per-category totals for one calendar month.",
		Tags:        []string{"Summary"},
	}, h.handle)
}

func (h *MonthSummaryHandler) reference(month string) (time.Time, error) {
	if month == "" {
		return h.now(), nil
	}
	reference, err := time.ParseInLocation(MonthLayout, month, time.Local)
	if err != nil {
		return time.Time{}, huma.NewError(http.StatusBadRequest, "invalid month, expected YYYY-MM", err)
	}
	return reference, nil
}

func (h *MonthSummaryHandler) handle(ctx context.Context, input *MonthSummaryInput) (*MonthSummaryOutput, error) {
	reference, err := h.reference(input.Month)
	if err != nil {
		return nil, err
	}

	summary, err := h.SummaryService.MonthSummary(ctx, reference)
	if err != nil {
		return nil, huma.NewError(http.StatusInternalServerError, "failed to summarize month", err)
	}

	resp := MonthSummaryResponseBody{
		DisplayName:    summary.DisplayName,
		Month:          summary.Month.Format(MonthLayout),
		Currency:       summary.Currency,
		Income:         summary.Income.String(),
		Expense:        summary.Expense.String(),
		Net:            summary.Net().String(),
		ByCategory:     make([]CategoryTotal, 0, len(summary.ByCategory)),
		OverallBalance: summary.OverallBalance.String(),
	}
	if top, _, ok := summary.TopCategory(); ok {
		resp.TopCategory = top
	}
	for category, total := range summary.ByCategory {
		resp.ByCategory = append(resp.ByCategory, CategoryTotal{Category: category, Total: total.String()})
	}
	sort.Slice(resp.ByCategory, func(i, j int) bool {
		return resp.ByCategory[i].Category < resp.ByCategory[j].Category
	})

	return &MonthSummaryOutput{Body: resp}, nil
}
