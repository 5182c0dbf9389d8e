package ports

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/studiolume/pos-backoffice/internal/core/domain"
)

// SaleRepository is the ledger store for sales. It is the only component that
// writes sale rows, and the write is a single transaction: header plus all
// line items commit together or not at all.
type SaleRepository interface {
	// RecordSale inserts the sale header and its line items in one
	// transaction and returns the assigned sale id. Any failure rolls the
	// whole unit of work back; no partial rows are ever visible.
	RecordSale(ctx context.Context, sale *domain.Sale) (string, error)

	// ListHistory returns sale views joined to client, operator, and service
	// type names, newest first (ties in insertion order). When operatorID is
	// non-empty, only that operator's sales are returned.
	ListHistory(ctx context.Context, operatorID string) ([]*domain.SaleView, error)

	// SumTotals returns the sum of total_amount over sales whose created_at
	// falls in [from, to), scoped to operatorID when non-empty. An empty
	// result set sums to zero.
	SumTotals(ctx context.Context, operatorID string, from, to time.Time) (decimal.Decimal, error)
}
