package database

import (
	"context"

	"github.com/doug-martin/goqu/v9"
	"github.com/healthflow/backend/internal/domain/entities"
	"github.com/healthflow/backend/internal/domain/repositories"
	"github.com/healthflow/backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/healthflow/backend/pkg/errors"
)

// HospitalAdapter implements HospitalRepository
type HospitalAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewHospitalAdapter creates a new hospital adapter
func NewHospitalAdapter(client *postgres.Client) repositories.HospitalRepository {
	return &HospitalAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// Create inserts a hospital
func (a *HospitalAdapter) Create(ctx context.Context, hospital *entities.Hospital) error {
	record := goqu.Record{
		"name":               hospital.Name,
		"location":           hospital.Location,
		"is_pmjay_empaneled": hospital.IsPmjayEmpaneled,
		"rating":             hospital.Rating,
	}

	query, args, err := a.db.Insert("hospitals").Rows(record).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build insert query", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewInternalError("failed to create hospital", err)
	}

	return nil
}

// List retrieves hospitals, ordered by id so the eligibility filter sees a
// stable iteration order.
func (a *HospitalAdapter) List(ctx context.Context, filter repositories.HospitalFilter) ([]*entities.Hospital, error) {
	ds := a.db.Select(
		"id", "name", "location", "is_pmjay_empaneled", "rating",
	).From("hospitals").
		Order(goqu.I("id").Asc())

	if filter.PmjayOnly {
		ds = ds.Where(goqu.Ex{"is_pmjay_empaneled": true})
	}
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
		return nil, apperrors.NewInternalError("failed to list hospitals", err)
	}
	defer rows.Close()

	var hospitals []*entities.Hospital
	for rows.Next() {
		hospital := &entities.Hospital{}
		err := rows.Scan(
			&hospital.ID,
			&hospital.Name,
			&hospital.Location,
			&hospital.IsPmjayEmpaneled,
			&hospital.Rating,
		)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan hospital", err)
		}
		hospitals = append(hospitals, hospital)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("error iterating hospitals", err)
	}

	return hospitals, nil
}
