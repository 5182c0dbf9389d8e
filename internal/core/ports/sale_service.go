package ports

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/studiolume/pos-backoffice/internal/core/domain"
)

// SaleItemInput is one line item of a sale as submitted by the operator.
type SaleItemInput struct {
	ServiceTypeID string
	ChargedAmount decimal.Decimal
}

// RecordSaleInput carries all data needed to record a sale.
//
// TotalAmount is taken as submitted and is not reconciled against the item
// amounts; front offices use the override to apply discounts.
type RecordSaleInput struct {
	ClientID    string
	TotalAmount decimal.Decimal
	Items       []SaleItemInput
	// IdempotencyKey, when non-empty, replays the previously recorded sale
	// instead of writing a duplicate.
	IdempotencyKey string
}

// RecordSaleResult is returned after a sale is durably recorded.
type RecordSaleResult struct {
	SaleID    string
	CreatedAt time.Time
	// AlreadyExisted is true when the Idempotency-Key matched an earlier sale.
	AlreadyExisted bool
}

// SaleService records sales and reconstructs history and revenue views on
// behalf of a principal.
type SaleService interface {
	RecordSale(ctx context.Context, principal domain.Principal, input RecordSaleInput) (*RecordSaleResult, error)
	ListHistory(ctx context.Context, principal domain.Principal) ([]*domain.SaleView, error)
	Summarize(ctx context.Context, principal domain.Principal) (*domain.RevenueSummary, error)
}
