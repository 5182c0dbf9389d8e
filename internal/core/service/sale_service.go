package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/studiolume/pos-backoffice/internal/core/domain"
	"github.com/studiolume/pos-backoffice/internal/core/ports"
)

// ReplayStore abstracts the idempotency store (Redis). A recorded sale id is
// remembered under the submitted Idempotency-Key so that a retried request
// returns the original id instead of writing a second sale.
type ReplayStore interface {
	Lookup(ctx context.Context, key string) (saleID string, ok bool, err error)
	Remember(ctx context.Context, key, saleID string) error
}

// SaleService implements sale recording, history, and revenue summaries.
type SaleService struct {
	repo   ports.SaleRepository
	replay ReplayStore
	logger zerolog.Logger
}

func NewSaleService(repo ports.SaleRepository, replay ReplayStore, logger zerolog.Logger) *SaleService {
	return &SaleService{repo: repo, replay: replay, logger: logger}
}

// RecordSale validates the input and commits the sale header together with
// all line items in a single transaction. Validation failures happen before
// any store access and leave zero rows behind; store failures roll the whole
// unit of work back.
func (s *SaleService) RecordSale(ctx context.Context, principal domain.Principal, input ports.RecordSaleInput) (*ports.RecordSaleResult, error) {
	sale := &domain.Sale{
		ID:          uuid.NewString(),
		ClientID:    input.ClientID,
		OperatorID:  principal.ID,
		TotalAmount: input.TotalAmount,
		CreatedAt:   time.Now().UTC(),
		Items:       make([]domain.SaleLineItem, 0, len(input.Items)),
	}
	for i, item := range input.Items {
		sale.Items = append(sale.Items, domain.SaleLineItem{
			ID:            uuid.NewString(),
			SaleID:        sale.ID,
			ServiceTypeID: item.ServiceTypeID,
			ChargedAmount: item.ChargedAmount,
			Position:      i,
		})
	}

	if err := sale.Validate(); err != nil {
		return nil, err
	}

	if input.IdempotencyKey != "" && s.replay != nil {
		saleID, ok, err := s.replay.Lookup(ctx, input.IdempotencyKey)
		if err != nil {
			s.logger.Warn().Err(err).Str("idempotency_key", input.IdempotencyKey).Msg("replay lookup failed, recording anyway")
		} else if ok {
			s.logger.Info().Str("idempotency_key", input.IdempotencyKey).Str("sale_id", saleID).Msg("idempotent replay")
			return &ports.RecordSaleResult{SaleID: saleID, AlreadyExisted: true}, nil
		}
	}

	saleID, err := s.repo.RecordSale(ctx, sale)
	if err != nil {
		s.logger.Error().Err(err).Str("client_id", input.ClientID).Msg("failed to record sale")
		return nil, err
	}

	if input.IdempotencyKey != "" && s.replay != nil {
		if err := s.replay.Remember(ctx, input.IdempotencyKey, saleID); err != nil {
			s.logger.Warn().Err(err).Str("idempotency_key", input.IdempotencyKey).Msg("failed to set replay key")
		}
	}

	s.logger.Info().
		Str("sale_id", saleID).
		Str("client_id", input.ClientID).
		Str("operator_id", principal.ID).
		Int("items", len(sale.Items)).
		Str("total_amount", input.TotalAmount.String()).
		Msg("sale recorded")

	return &ports.RecordSaleResult{SaleID: saleID, CreatedAt: sale.CreatedAt}, nil
}

// ListHistory returns the principal's visible sales, newest first.
// Admins see every sale; collaborators only their own.
func (s *SaleService) ListHistory(ctx context.Context, principal domain.Principal) ([]*domain.SaleView, error) {
	views, err := s.repo.ListHistory(ctx, principal.OperatorFilter())
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list sale history")
		return nil, err
	}
	return views, nil
}

// Summarize recomputes today's and this calendar month's revenue from current
// ledger state. Results are never cached; both windows are half-open UTC
// ranges so every committed sale lands in exactly one day and one month.
func (s *SaleService) Summarize(ctx context.Context, principal domain.Principal) (*domain.RevenueSummary, error) {
	operatorID := principal.OperatorFilter()
	now := time.Now().UTC()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)

	today, err := s.repo.SumTotals(ctx, operatorID, dayStart, dayStart.AddDate(0, 0, 1))
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to sum daily revenue")
		return nil, err
	}

	month, err := s.repo.SumTotals(ctx, operatorID, monthStart, monthStart.AddDate(0, 1, 0))
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to sum monthly revenue")
		return nil, err
	}

	return &domain.RevenueSummary{RevenueToday: today, RevenueMonth: month}, nil
}
