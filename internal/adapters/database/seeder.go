package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	"github.com/healthflow/backend/internal/catalog"
	"github.com/healthflow/backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/healthflow/backend/pkg/errors"
)

// recovery_days is not present in the reference document; every seeded
// procedure gets this default.
const defaultRecoveryDays = 14

// Seeder loads the reference pricing document into the relational store.
// It runs offline, before the serving process starts, as a single
// transaction: either the whole document lands or none of it does.
type Seeder struct {
	client  *postgres.Client
	dialect goqu.DialectWrapper
}

// NewSeeder creates a new seeder
func NewSeeder(client *postgres.Client) *Seeder {
	return &Seeder{
		client:  client,
		dialect: goqu.Dialect("postgres"),
	}
}

// EnsureSchema creates the three tables if they do not exist.
func (s *Seeder) EnsureSchema(ctx context.Context) error {
	ddl := []string{
		`CREATE TABLE IF NOT EXISTS procedures (
			id SERIAL PRIMARY KEY,
			name TEXT NOT NULL,
			avg_private_cost NUMERIC NOT NULL,
			pmjay_rate NUMERIC NOT NULL,
			recovery_days INT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS hidden_costs (
			id SERIAL PRIMARY KEY,
			procedure_id INT NOT NULL REFERENCES procedures(id) ON DELETE CASCADE,
			item_name TEXT NOT NULL,
			avg_cost NUMERIC NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			is_avoidable BOOLEAN NOT NULL DEFAULT TRUE
		)`,
		`CREATE TABLE IF NOT EXISTS hospitals (
			id SERIAL PRIMARY KEY,
			name TEXT NOT NULL,
			location TEXT NOT NULL,
			is_pmjay_empaneled BOOLEAN NOT NULL DEFAULT FALSE,
			rating NUMERIC NOT NULL DEFAULT 0
		)`,
	}

	for _, stmt := range ddl {
		if _, err := s.client.DB().ExecContext(ctx, stmt); err != nil {
			return apperrors.NewInternalError("failed to ensure schema", err)
		}
	}
	return nil
}

// Seed replaces the store contents with the given reference hierarchy.
func (s *Seeder) Seed(ctx context.Context, countries []catalog.Country) (err error) {
	tx, err := s.client.BeginTx(ctx)
	if err != nil {
		return apperrors.NewInternalError("failed to begin seed transaction", err)
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, "TRUNCATE TABLE hidden_costs, procedures, hospitals RESTART IDENTITY CASCADE"); err != nil {
		return apperrors.NewInternalError("failed to clear existing data", err)
	}

	for _, country := range countries {
		for _, state := range country.States {
			if err = s.seedState(ctx, tx, state); err != nil {
				return err
			}
		}
	}

	if err = tx.Commit(); err != nil {
		return apperrors.NewInternalError("failed to commit seed transaction", err)
	}
	return nil
}

func (s *Seeder) seedState(ctx context.Context, tx *sql.Tx, state catalog.State) error {
	for _, hosp := range state.Hospitals {
		// Government hospitals are assumed PMJAY empaneled
		query, args, err := s.dialect.Insert("hospitals").Rows(goqu.Record{
			"name":               hosp.Name,
			"location":           fmt.Sprintf("%s, %s", hosp.City, state.Name),
			"is_pmjay_empaneled": hosp.Type == "Government",
			"rating":             hosp.Rating,
		}).ToSQL()
		if err != nil {
			return apperrors.NewInternalError("failed to build hospital insert", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return apperrors.NewInternalError(fmt.Sprintf("failed to insert hospital %q", hosp.Name), err)
		}
	}

	for _, proc := range state.Procedures {
		// The government average stands in for the PMJAY rate
		query, args, err := s.dialect.Insert("procedures").Rows(goqu.Record{
			"name":             proc.Name,
			"avg_private_cost": proc.AvgCostPrivate,
			"pmjay_rate":       proc.AvgCostGovt,
			"recovery_days":    defaultRecoveryDays,
		}).Returning("id").ToSQL()
		if err != nil {
			return apperrors.NewInternalError("failed to build procedure insert", err)
		}

		var procedureID int
		if err := tx.QueryRowContext(ctx, query, args...).Scan(&procedureID); err != nil {
			return apperrors.NewInternalError(fmt.Sprintf("failed to insert procedure %q", proc.Name), err)
		}

		for _, hc := range proc.HiddenCosts {
			query, args, err := s.dialect.Insert("hidden_costs").Rows(goqu.Record{
				"procedure_id": procedureID,
				"item_name":    hc.Item,
				"avg_cost":     hc.Cost,
				"description":  hc.Note,
				"is_avoidable": true,
			}).ToSQL()
			if err != nil {
				return apperrors.NewInternalError("failed to build hidden cost insert", err)
			}
			if _, err := tx.ExecContext(ctx, query, args...); err != nil {
				return apperrors.NewInternalError(fmt.Sprintf("failed to insert hidden cost %q", hc.Item), err)
			}
		}
	}

	return nil
}
