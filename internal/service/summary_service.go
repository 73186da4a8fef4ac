package service

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/carson-networks/budget-ledger/internal/ledger"
)

// Summary is a month summary together with the ledger-wide figures shown next to it.
type Summary struct {
	ledger.MonthSummary
	Month          time.Time
	OverallBalance decimal.Decimal
	Currency       string
	DisplayName    string
}

// SummaryService computes month summaries.
type SummaryService struct {
	ledger *ledger.Ledger
}

// NewSummaryService creates a new SummaryService.
func NewSummaryService(l *ledger.Ledger) *SummaryService {
	return &SummaryService{ledger: l}
}

// MonthSummary summarizes the calendar month containing reference.
func (s *SummaryService) MonthSummary(ctx context.Context, reference time.Time) (*Summary, error) {
	return &Summary{
		MonthSummary:   s.ledger.MonthSummary(reference),
		Month:          time.Date(reference.Year(), reference.Month(), 1, 0, 0, 0, 0, reference.Location()),
		OverallBalance: s.ledger.OverallBalance(),
		Currency:       s.ledger.Currency(),
		DisplayName:    s.ledger.DisplayName(),
	}, nil
}
