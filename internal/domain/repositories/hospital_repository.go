package repositories

import (
	"context"

	"github.com/healthflow/backend/internal/domain/entities"
)

// HospitalRepository defines the interface for hospital data operations.
type HospitalRepository interface {
	// Create inserts a hospital
	Create(ctx context.Context, hospital *entities.Hospital) error

	// List retrieves hospitals with filters
	List(ctx context.Context, filter HospitalFilter) ([]*entities.Hospital, error)
}

// HospitalFilter defines filters for listing hospitals. Income-based
// eligibility is applied by the eligibility filter, not in SQL.
type HospitalFilter struct {
	PmjayOnly bool
	Limit     int
	Offset    int
}
