package database

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/healthflow/backend/internal/domain/repositories"
	"github.com/healthflow/backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/healthflow/backend/pkg/errors"
)

func newMockClient(t *testing.T) (*postgres.Client, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return postgres.NewClientFromDB(db), mock
}

func procedureRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "name", "avg_private_cost", "pmjay_rate", "recovery_days"})
}

func TestSearchByNameReturnsFirstMatch(t *testing.T) {
	client, mock := newMockClient(t)
	adapter := NewProcedureAdapter(client)

	mock.ExpectQuery(`SELECT .+ FROM "procedures" WHERE .+ILIKE.+ ORDER BY "id" ASC LIMIT 1`).
		WillReturnRows(procedureRows().AddRow(3, "Knee Replacement Surgery", 350000.0, 80000.0, 14))

	procedure, err := adapter.SearchByName(context.Background(), "knee")
	require.NoError(t, err)

	assert.Equal(t, 3, procedure.ID)
	assert.Equal(t, "Knee Replacement Surgery", procedure.Name)
	assert.Equal(t, 350000.0, procedure.AvgPrivateCost)
	assert.Equal(t, 80000.0, procedure.PmjayRate)
	assert.Equal(t, 14, procedure.RecoveryDays)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSearchByNameNotFound(t *testing.T) {
	client, mock := newMockClient(t)
	adapter := NewProcedureAdapter(client)

	mock.ExpectQuery(`SELECT .+ FROM "procedures"`).
		WillReturnError(sql.ErrNoRows)

	_, err := adapter.SearchByName(context.Background(), "appendectomy")
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestSearchByNameStoreFailureIsInternal(t *testing.T) {
	client, mock := newMockClient(t)
	adapter := NewProcedureAdapter(client)

	mock.ExpectQuery(`SELECT .+ FROM "procedures"`).
		WillReturnError(sql.ErrConnDone)

	_, err := adapter.SearchByName(context.Background(), "knee")
	require.Error(t, err)
	assert.False(t, apperrors.IsNotFound(err))

	appErr, ok := err.(*apperrors.AppError)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrorTypeInternal, appErr.Type)
}

func TestGetByIDNotFound(t *testing.T) {
	client, mock := newMockClient(t)
	adapter := NewProcedureAdapter(client)

	mock.ExpectQuery(`SELECT .+ FROM "procedures"`).
		WillReturnError(sql.ErrNoRows)

	_, err := adapter.GetByID(context.Background(), 42)
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestListOrdersByID(t *testing.T) {
	client, mock := newMockClient(t)
	adapter := NewProcedureAdapter(client)

	mock.ExpectQuery(`SELECT .+ FROM "procedures" ORDER BY "id" ASC`).
		WillReturnRows(procedureRows().
			AddRow(1, "Cataract Surgery", 45000.0, 8000.0, 14).
			AddRow(2, "Knee Replacement Surgery", 350000.0, 80000.0, 14))

	procedures, err := adapter.List(context.Background(), repositories.ProcedureFilter{})
	require.NoError(t, err)

	require.Len(t, procedures, 2)
	assert.Equal(t, 1, procedures[0].ID)
	assert.Equal(t, 2, procedures[1].ID)
}
