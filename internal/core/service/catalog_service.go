package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/studiolume/pos-backoffice/internal/core/domain"
	"github.com/studiolume/pos-backoffice/internal/core/ports"
)

// ClientService manages the client roster. Thin create/read glue: clients are
// referenced by sales but never mutated by them.
type ClientService struct {
	repo   ports.ClientRepository
	logger zerolog.Logger
}

func NewClientService(repo ports.ClientRepository, logger zerolog.Logger) *ClientService {
	return &ClientService{repo: repo, logger: logger}
}

func (s *ClientService) CreateClient(ctx context.Context, name, phone string) (*domain.Client, error) {
	if name == "" {
		return nil, fmt.Errorf("name is required: %w", domain.ErrValidation)
	}

	client := &domain.Client{
		ID:        uuid.NewString(),
		Name:      name,
		Phone:     phone,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, client); err != nil {
		s.logger.Error().Err(err).Str("name", name).Msg("failed to create client")
		return nil, err
	}
	return client, nil
}

func (s *ClientService) ListClients(ctx context.Context) ([]*domain.Client, error) {
	return s.repo.List(ctx)
}

// ServiceTypeService manages the service catalog.
type ServiceTypeService struct {
	repo   ports.ServiceTypeRepository
	logger zerolog.Logger
}

func NewServiceTypeService(repo ports.ServiceTypeRepository, logger zerolog.Logger) *ServiceTypeService {
	return &ServiceTypeService{repo: repo, logger: logger}
}

func (s *ServiceTypeService) CreateServiceType(ctx context.Context, name string, defaultPrice decimal.Decimal) (*domain.ServiceType, error) {
	if name == "" {
		return nil, fmt.Errorf("name is required: %w", domain.ErrValidation)
	}
	if !defaultPrice.IsPositive() {
		return nil, fmt.Errorf("default_price must be positive: %w", domain.ErrValidation)
	}

	st := &domain.ServiceType{
		ID:           uuid.NewString(),
		Name:         name,
		DefaultPrice: defaultPrice,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, st); err != nil {
		s.logger.Error().Err(err).Str("name", name).Msg("failed to create service type")
		return nil, err
	}
	return st, nil
}

func (s *ServiceTypeService) ListServiceTypes(ctx context.Context) ([]*domain.ServiceType, error) {
	return s.repo.List(ctx)
}
