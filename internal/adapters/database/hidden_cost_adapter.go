package database

import (
	"context"

	"github.com/doug-martin/goqu/v9"
	"github.com/healthflow/backend/internal/domain/entities"
	"github.com/healthflow/backend/internal/domain/repositories"
	"github.com/healthflow/backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/healthflow/backend/pkg/errors"
)

// HiddenCostAdapter implements HiddenCostRepository
type HiddenCostAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewHiddenCostAdapter creates a new hidden cost adapter
func NewHiddenCostAdapter(client *postgres.Client) repositories.HiddenCostRepository {
	return &HiddenCostAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// Create inserts a hidden cost linked to a procedure
func (a *HiddenCostAdapter) Create(ctx context.Context, cost *entities.HiddenCost) error {
	record := goqu.Record{
		"procedure_id": cost.ProcedureID,
		"item_name":    cost.ItemName,
		"avg_cost":     cost.AvgCost,
		"description":  cost.Description,
		"is_avoidable": cost.IsAvoidable,
	}

	query, args, err := a.db.Insert("hidden_costs").Rows(record).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build insert query", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewInternalError("failed to create hidden cost", err)
	}

	return nil
}

// ListByProcedure retrieves all hidden costs for a procedure. A procedure
// with no hidden costs yields an empty slice, not nil.
func (a *HiddenCostAdapter) ListByProcedure(ctx context.Context, procedureID int) ([]entities.HiddenCost, error) {
	query, args, err := a.db.Select(
		"id", "procedure_id", "item_name", "avg_cost", "description", "is_avoidable",
	).From("hidden_costs").
		Where(goqu.Ex{"procedure_id": procedureID}).
		Order(goqu.I("id").Asc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build list query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list hidden costs", err)
	}
	defer rows.Close()

	costs := []entities.HiddenCost{}
	for rows.Next() {
		var cost entities.HiddenCost
		err := rows.Scan(
			&cost.ID,
			&cost.ProcedureID,
			&cost.ItemName,
			&cost.AvgCost,
			&cost.Description,
			&cost.IsAvoidable,
		)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan hidden cost", err)
		}
		costs = append(costs, cost)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("error iterating hidden costs", err)
	}

	return costs, nil
}
