package repository

import (
	"context"
	"time"

	"github.com/dotr-dev/vehicle-booking/backend/internal/domain"
)

func (r *Repository) GetAllServiceTypes() ([]*domain.ServiceType, error) {
	query := `
		SELECT id, name, display_name, sequence, slot_capacity, created_at, version
		FROM service_types
		ORDER BY sequence
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	serviceTypes := make([]*domain.ServiceType, 0)
	for rows.Next() {
		st := &domain.ServiceType{}
		dst := []any{&st.ID, &st.Name, &st.DisplayName, &st.Sequence, &st.SlotCapacity, &st.CreatedAt, &st.Version}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		serviceTypes = append(serviceTypes, st)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return serviceTypes, nil
}

func (r *Repository) GetServiceTypeByID(id int64) (*domain.ServiceType, error) {
	query := `
		SELECT name, display_name, sequence, slot_capacity, created_at, version
		FROM service_types WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	st := &domain.ServiceType{
		ID: id,
	}

	dst := []any{&st.Name, &st.DisplayName, &st.Sequence, &st.SlotCapacity, &st.CreatedAt, &st.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		return nil, err
	}

	return st, nil
}

func (r *Repository) GetServiceTypeByName(name domain.ServiceName) (*domain.ServiceType, error) {
	query := `
		SELECT id, display_name, sequence, slot_capacity, created_at, version
		FROM service_types WHERE name = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	st := &domain.ServiceType{
		Name: name,
	}

	dst := []any{&st.ID, &st.DisplayName, &st.Sequence, &st.SlotCapacity, &st.CreatedAt, &st.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, name).Scan(dst...); err != nil {
		return nil, err
	}

	return st, nil
}

func (r *Repository) UpdateServiceType(st *domain.ServiceType) error {
	// name and sequence are fixed by the service pipeline; only the
	// presentation name and per-slot capacity are adjustable
	query := `
		UPDATE service_types
		SET
			display_name = $1,
			slot_capacity = $2,
			version = version + 1
		WHERE id = $3 AND version = $4
		RETURNING version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{st.DisplayName, st.SlotCapacity, st.ID, st.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&st.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) CreateServiceType(st *domain.ServiceType) error {
	query := `
		INSERT INTO service_types (name, display_name, sequence, slot_capacity)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{st.Name, st.DisplayName, st.Sequence, st.SlotCapacity}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&st.ID, &st.CreatedAt, &st.Version); err != nil {
		return err
	}

	return nil
}
