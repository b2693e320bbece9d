package repositories

import (
	"context"

	"github.com/healthflow/backend/internal/domain/entities"
)

// ProcedureRepository defines the interface for procedure data operations.
// The serving path is read-only; Create exists for the offline seeder.
type ProcedureRepository interface {
	// Create inserts a procedure and returns its generated id
	Create(ctx context.Context, procedure *entities.Procedure) (int, error)

	// GetByID retrieves a procedure by ID
	GetByID(ctx context.Context, id int) (*entities.Procedure, error)

	// SearchByName retrieves the first procedure whose name contains the
	// query, case-insensitive, ordered by id for deterministic iteration
	SearchByName(ctx context.Context, query string) (*entities.Procedure, error)

	// List retrieves procedures with filters
	List(ctx context.Context, filter ProcedureFilter) ([]*entities.Procedure, error)
}

// ProcedureFilter defines filters for listing procedures
type ProcedureFilter struct {
	Limit  int
	Offset int
}

// HiddenCostRepository defines access to hidden-cost line items.
type HiddenCostRepository interface {
	// Create inserts a hidden cost linked to a procedure
	Create(ctx context.Context, cost *entities.HiddenCost) error

	// ListByProcedure retrieves all hidden costs for a procedure.
	// Returns an empty slice, never nil, when the procedure has none.
	ListByProcedure(ctx context.Context, procedureID int) ([]entities.HiddenCost, error)
}
