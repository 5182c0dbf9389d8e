package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/studiolume/pos-backoffice/internal/core/domain"
)

// ClientRepository persists clients in PostgreSQL.
type ClientRepository struct {
	db *sql.DB
}

func NewClientRepository(db *sql.DB) *ClientRepository {
	return &ClientRepository{db: db}
}

func (r *ClientRepository) Create(ctx context.Context, c *domain.Client) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO clients (id, name, phone, created_at)
		VALUES ($1, $2, $3, $4)
	`, c.ID, c.Name, c.Phone, c.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert client: %w", err)
	}
	return nil
}

func (r *ClientRepository) List(ctx context.Context) ([]*domain.Client, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, phone, created_at
		FROM clients
		ORDER BY name ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}
	defer rows.Close()

	clients := []*domain.Client{}
	for rows.Next() {
		c := &domain.Client{}
		if err := rows.Scan(&c.ID, &c.Name, &c.Phone, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan client: %w", err)
		}
		clients = append(clients, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}
	return clients, nil
}

// ServiceTypeRepository persists the service catalog in PostgreSQL.
type ServiceTypeRepository struct {
	db *sql.DB
}

func NewServiceTypeRepository(db *sql.DB) *ServiceTypeRepository {
	return &ServiceTypeRepository{db: db}
}

func (r *ServiceTypeRepository) Create(ctx context.Context, st *domain.ServiceType) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO service_types (id, name, default_price, created_at)
		VALUES ($1, $2, $3, $4)
	`, st.ID, st.Name, st.DefaultPrice, st.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert service type: %w", err)
	}
	return nil
}

func (r *ServiceTypeRepository) List(ctx context.Context) ([]*domain.ServiceType, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, default_price, created_at
		FROM service_types
		ORDER BY name ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("list service types: %w", err)
	}
	defer rows.Close()

	types := []*domain.ServiceType{}
	for rows.Next() {
		st := &domain.ServiceType{}
		if err := rows.Scan(&st.ID, &st.Name, &st.DefaultPrice, &st.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan service type: %w", err)
		}
		types = append(types, st)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list service types: %w", err)
	}
	return types, nil
}
