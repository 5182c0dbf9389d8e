package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// ErrValidation marks input that fails a precondition check. Handlers map it
// to 400; callers can always recover by fixing the input. Wrap it with
// fmt.Errorf("...: %w", ErrValidation) to carry a field-level message.
var ErrValidation = errors.New("validation failed")

var ErrSaleNotFound = errors.New("sale not found")

// Sale is the header row of one checkout transaction. A Sale exists if and
// only if at least one of its line items exists: both are written in a single
// transaction and the ledger is append-only (no update or delete, ever).
//
// TotalAmount is supplied by the operator and is NOT required to equal the sum
// of the line items' charged amounts; operators use the override for discounts.
type Sale struct {
	ID          string
	ClientID    string
	OperatorID  string
	TotalAmount decimal.Decimal
	CreatedAt   time.Time
	Items       []SaleLineItem
}

// SaleLineItem is one service rendered within a sale. ChargedAmount may
// differ from the service type's default price.
type SaleLineItem struct {
	ID            string
	SaleID        string
	ServiceTypeID string
	ChargedAmount decimal.Decimal
	Position      int
}

// Validate checks the preconditions for recording a sale. It must be called
// before any write; a failure here guarantees zero rows were touched.
func (s *Sale) Validate() error {
	if s.ClientID == "" {
		return fmt.Errorf("client_id is required: %w", ErrValidation)
	}
	if !s.TotalAmount.IsPositive() {
		return fmt.Errorf("total_amount must be positive: %w", ErrValidation)
	}
	if len(s.Items) == 0 {
		return fmt.Errorf("at least one item is required: %w", ErrValidation)
	}
	for i, item := range s.Items {
		if item.ServiceTypeID == "" {
			return fmt.Errorf("item[%d]: service_type_id is required: %w", i, ErrValidation)
		}
	}
	return nil
}

// SaleView is the read model returned by the history listing: a sale header
// joined to its client and operator names, with every line item joined to its
// service type name.
type SaleView struct {
	ID           string             `json:"id"`
	TotalAmount  decimal.Decimal    `json:"total_amount"`
	CreatedAt    time.Time          `json:"created_at"`
	ClientName   string             `json:"client_name"`
	OperatorName string             `json:"operator_name,omitempty"`
	Items        []SaleLineItemView `json:"items"`
}

// SaleLineItemView is one line item as it appears in the history listing.
type SaleLineItemView struct {
	ID              string          `json:"id"`
	ServiceTypeName string          `json:"service_type_name"`
	ChargedAmount   decimal.Decimal `json:"charged_amount"`
}

// RevenueSummary aggregates committed sale totals over the current calendar
// day and calendar month.
type RevenueSummary struct {
	RevenueToday decimal.Decimal `json:"revenue_today"`
	RevenueMonth decimal.Decimal `json:"revenue_month"`
}
