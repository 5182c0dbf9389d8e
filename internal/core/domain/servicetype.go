package domain

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var ErrServiceTypeNotFound = errors.New("service type not found")

// ServiceType is a catalog entry for a service the studio offers. Its
// DefaultPrice is a suggestion; line items carry the price actually charged.
type ServiceType struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	DefaultPrice decimal.Decimal `json:"default_price"`
	CreatedAt    time.Time       `json:"created_at"`
}
