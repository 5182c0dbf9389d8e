package ports

import (
	"context"

	"github.com/studiolume/pos-backoffice/internal/core/domain"
)

// ClientRepository defines persistence operations for clients.
type ClientRepository interface {
	Create(ctx context.Context, c *domain.Client) error
	// List returns all clients ordered by name.
	List(ctx context.Context) ([]*domain.Client, error)
}

// ServiceTypeRepository defines persistence operations for the service catalog.
type ServiceTypeRepository interface {
	Create(ctx context.Context, st *domain.ServiceType) error
	// List returns all service types ordered by name.
	List(ctx context.Context) ([]*domain.ServiceType, error)
}
