package service

// TransactionCursor identifies a position in a paginated result set and
// carries the limit and the highest transaction id seen by the first page,
// so transactions added while paging do not shift later pages.
type TransactionCursor struct {
	Position         int
	Limit            int
	MaxTransactionID int64
}

// TransactionFilter narrows a transaction listing.
type TransactionFilter struct {
	AccountID *int64
}
