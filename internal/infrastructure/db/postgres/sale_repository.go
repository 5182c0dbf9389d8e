package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/studiolume/pos-backoffice/internal/core/domain"
)

// SaleRepository is the PostgreSQL ledger store for sales. Sales are
// append-only: this repository exposes no update or delete.
type SaleRepository struct {
	db *sql.DB
}

func NewSaleRepository(db *sql.DB) *SaleRepository {
	return &SaleRepository{db: db}
}

// RecordSale inserts the sale header and all line items inside one
// transaction. Either every row commits or none does; a failure on any
// insert (or a cancelled context) rolls the whole unit of work back, so
// concurrent readers never observe a header without its items.
func (r *SaleRepository) RecordSale(ctx context.Context, sale *domain.Sale) (string, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("begin sale transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback() // no-op after a successful commit
	}()

	var operatorID sql.NullString
	if sale.OperatorID != "" {
		operatorID = sql.NullString{String: sale.OperatorID, Valid: true}
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO sales (id, client_id, operator_id, total_amount, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, sale.ID, sale.ClientID, operatorID, sale.TotalAmount, sale.CreatedAt)
	if err != nil {
		return "", fmt.Errorf("insert sale: %w", err)
	}

	for _, item := range sale.Items {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO sale_line_items (id, sale_id, service_type_id, charged_amount, position)
			VALUES ($1, $2, $3, $4, $5)
		`, item.ID, sale.ID, item.ServiceTypeID, item.ChargedAmount, item.Position)
		if err != nil {
			return "", fmt.Errorf("insert sale item %d: %w", item.Position, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("commit sale: %w", err)
	}
	return sale.ID, nil
}

// ListHistory returns sale views newest first, ties broken by insertion
// order. Clients and service types are inner-joined: a sale whose referent
// was removed out-of-band drops out of the listing. The operator join is a
// left join so sales recorded without authentication still appear.
func (r *SaleRepository) ListHistory(ctx context.Context, operatorID string) ([]*domain.SaleView, error) {
	query := `
		SELECT s.id, s.total_amount, s.created_at, c.name, COALESCE(u.username, '')
		FROM sales s
		JOIN clients c ON s.client_id = c.id
		LEFT JOIN users u ON s.operator_id = u.id`
	args := []any{}
	if operatorID != "" {
		query += `
		WHERE s.operator_id = $1`
		args = append(args, operatorID)
	}
	query += `
		ORDER BY s.created_at DESC, s.seq ASC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	defer rows.Close()

	views := []*domain.SaleView{}
	for rows.Next() {
		v := &domain.SaleView{}
		if err := rows.Scan(&v.ID, &v.TotalAmount, &v.CreatedAt, &v.ClientName, &v.OperatorName); err != nil {
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		views = append(views, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}

	for _, v := range views {
		items, err := r.listItems(ctx, v.ID)
		if err != nil {
			return nil, err
		}
		v.Items = items
	}
	return views, nil
}

func (r *SaleRepository) listItems(ctx context.Context, saleID string) ([]domain.SaleLineItemView, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT li.id, ts.name, li.charged_amount
		FROM sale_line_items li
		JOIN service_types ts ON li.service_type_id = ts.id
		WHERE li.sale_id = $1
		ORDER BY li.position ASC
	`, saleID)
	if err != nil {
		return nil, fmt.Errorf("list sale items: %w", err)
	}
	defer rows.Close()

	items := []domain.SaleLineItemView{}
	for rows.Next() {
		var item domain.SaleLineItemView
		if err := rows.Scan(&item.ID, &item.ServiceTypeName, &item.ChargedAmount); err != nil {
			return nil, fmt.Errorf("scan sale item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list sale items: %w", err)
	}
	return items, nil
}

// SumTotals sums total_amount over sales created in [from, to). The sum runs
// inside PostgreSQL over NUMERIC values, so no precision is lost; an empty
// result set yields zero.
func (r *SaleRepository) SumTotals(ctx context.Context, operatorID string, from, to time.Time) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(total_amount), 0)
		FROM sales
		WHERE created_at >= $1 AND created_at < $2`
	args := []any{from, to}
	if operatorID != "" {
		query += ` AND operator_id = $3`
		args = append(args, operatorID)
	}

	var total decimal.Decimal
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("sum sale totals: %w", err)
	}
	return total, nil
}
