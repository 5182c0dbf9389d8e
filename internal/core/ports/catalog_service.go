package ports

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/studiolume/pos-backoffice/internal/core/domain"
)

// ClientService manages the client roster.
type ClientService interface {
	CreateClient(ctx context.Context, name, phone string) (*domain.Client, error)
	ListClients(ctx context.Context) ([]*domain.Client, error)
}

// ServiceTypeService manages the service catalog.
type ServiceTypeService interface {
	CreateServiceType(ctx context.Context, name string, defaultPrice decimal.Decimal) (*domain.ServiceType, error)
	ListServiceTypes(ctx context.Context) ([]*domain.ServiceType, error)
}
