package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	"github.com/healthflow/backend/internal/domain/entities"
	"github.com/healthflow/backend/internal/domain/repositories"
	"github.com/healthflow/backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/healthflow/backend/pkg/errors"
)

// ProcedureAdapter implements ProcedureRepository
type ProcedureAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewProcedureAdapter creates a new procedure adapter
func NewProcedureAdapter(client *postgres.Client) repositories.ProcedureRepository {
	return &ProcedureAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// Create inserts a procedure and returns its generated id
func (a *ProcedureAdapter) Create(ctx context.Context, procedure *entities.Procedure) (int, error) {
	record := goqu.Record{
		"name":             procedure.Name,
		"avg_private_cost": procedure.AvgPrivateCost,
		"pmjay_rate":       procedure.PmjayRate,
		"recovery_days":    procedure.RecoveryDays,
	}

	query, args, err := a.db.Insert("procedures").
		Rows(record).
		Returning("id").
		ToSQL()
	if err != nil {
		return 0, apperrors.NewInternalError("failed to build insert query", err)
	}

	var id int
	if err := a.client.DB().QueryRowContext(ctx, query, args...).Scan(&id); err != nil {
		return 0, apperrors.NewInternalError("failed to create procedure", err)
	}

	return id, nil
}

// GetByID retrieves a procedure by ID
func (a *ProcedureAdapter) GetByID(ctx context.Context, id int) (*entities.Procedure, error) {
	query, args, err := a.db.Select(
		"id", "name", "avg_private_cost", "pmjay_rate", "recovery_days",
	).From("procedures").
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	procedure, err := a.scanProcedure(a.client.DB().QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("procedure with id %d not found", id))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get procedure", err)
	}

	return procedure, nil
}

// SearchByName retrieves the first procedure whose name contains the query,
// case-insensitive. Results are ordered by id so the same query always
// resolves to the same row.
func (a *ProcedureAdapter) SearchByName(ctx context.Context, search string) (*entities.Procedure, error) {
	query, args, err := a.db.Select(
		"id", "name", "avg_private_cost", "pmjay_rate", "recovery_days",
	).From("procedures").
		Where(goqu.I("name").ILike(fmt.Sprintf("%%%s%%", search))).
		Order(goqu.I("id").Asc()).
		Limit(1).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build search query", err)
	}

	procedure, err := a.scanProcedure(a.client.DB().QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("no procedure matching %q", search))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to search procedures", err)
	}

	return procedure, nil
}

// List retrieves procedures with filters
func (a *ProcedureAdapter) List(ctx context.Context, filter repositories.ProcedureFilter) ([]*entities.Procedure, error) {
	ds := a.db.Select(
		"id", "name", "avg_private_cost", "pmjay_rate", "recovery_days",
	).From("procedures").
		Order(goqu.I("id").Asc())

	if filter.Limit > 0 {
		ds = ds.Limit(uint(filter.Limit))
	}
	if filter.Offset > 0 {
		ds = ds.Offset(uint(filter.Offset))
	}

	query, args, err := ds.ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build list query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list procedures", err)
	}
	defer rows.Close()

	var procedures []*entities.Procedure
	for rows.Next() {
		procedure := &entities.Procedure{}
		err := rows.Scan(
			&procedure.ID,
			&procedure.Name,
			&procedure.AvgPrivateCost,
			&procedure.PmjayRate,
			&procedure.RecoveryDays,
		)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan procedure", err)
		}
		procedures = append(procedures, procedure)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("error iterating procedures", err)
	}

	return procedures, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (a *ProcedureAdapter) scanProcedure(row rowScanner) (*entities.Procedure, error) {
	procedure := &entities.Procedure{}
	err := row.Scan(
		&procedure.ID,
		&procedure.Name,
		&procedure.AvgPrivateCost,
		&procedure.PmjayRate,
		&procedure.RecoveryDays,
	)
	if err != nil {
		return nil, err
	}
	return procedure, nil
}
