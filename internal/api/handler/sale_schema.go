package handler

import (
	"time"

	"github.com/shopspring/decimal"
)

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Request types ---

// Monetary fields bind through decimal.Decimal (accepts JSON numbers and
// strings) and are range-checked in the service layer, where the
// zero-writes-on-violation guarantee lives.

type saleItemRequest struct {
	ServiceTypeID string          `json:"service_type_id" validate:"required"`
	ChargedAmount decimal.Decimal `json:"charged_amount"`
}

type recordSaleRequest struct {
	ClientID    string            `json:"client_id"    validate:"required"`
	TotalAmount decimal.Decimal   `json:"total_amount"`
	Items       []saleItemRequest `json:"items"        validate:"required,min=1,dive"`
}

// --- Response types ---
// Response-only types owned by the transport layer, intentionally separate
// from ports/domain types so the JSON contract is not coupled to internal
// service changes.

type recordSaleResponse struct {
	SaleID         string    `json:"sale_id"`
	CreatedAt      time.Time `json:"created_at,omitzero"`
	AlreadyExisted bool      `json:"already_existed,omitempty"`
}

type saleItemViewResponse struct {
	ID              string          `json:"id"`
	ServiceTypeName string          `json:"service_type_name"`
	ChargedAmount   decimal.Decimal `json:"charged_amount"`
}

type saleViewResponse struct {
	ID           string                 `json:"id"`
	TotalAmount  decimal.Decimal        `json:"total_amount"`
	CreatedAt    time.Time              `json:"created_at"`
	ClientName   string                 `json:"client_name"`
	OperatorName string                 `json:"operator_name,omitempty"`
	Items        []saleItemViewResponse `json:"items"`
}

type revenueSummaryResponse struct {
	RevenueToday decimal.Decimal `json:"revenue_today"`
	RevenueMonth decimal.Decimal `json:"revenue_month"`
}
