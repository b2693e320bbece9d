package database

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/healthflow/backend/internal/domain/repositories"
)

func hospitalRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "name", "location", "is_pmjay_empaneled", "rating"})
}

func TestHospitalListReturnsAll(t *testing.T) {
	client, mock := newMockClient(t)
	adapter := NewHospitalAdapter(client)

	mock.ExpectQuery(`SELECT .+ FROM "hospitals" ORDER BY "id" ASC`).
		WillReturnRows(hospitalRows().
			AddRow(1, "Tata Memorial Hospital", "Mumbai, Maharashtra", true, 4.6).
			AddRow(2, "Lilavati Hospital", "Mumbai, Maharashtra", false, 4.4))

	hospitals, err := adapter.List(context.Background(), repositories.HospitalFilter{})
	require.NoError(t, err)

	require.Len(t, hospitals, 2)
	assert.Equal(t, "Tata Memorial Hospital", hospitals[0].Name)
	assert.True(t, hospitals[0].IsPmjayEmpaneled)
	assert.False(t, hospitals[1].IsPmjayEmpaneled)
}

func TestHospitalListPmjayOnlyAddsPredicate(t *testing.T) {
	client, mock := newMockClient(t)
	adapter := NewHospitalAdapter(client)

	mock.ExpectQuery(`SELECT .+ FROM "hospitals" WHERE .+is_pmjay_empaneled.+ ORDER BY "id" ASC`).
		WillReturnRows(hospitalRows().
			AddRow(1, "Tata Memorial Hospital", "Mumbai, Maharashtra", true, 4.6))

	hospitals, err := adapter.List(context.Background(), repositories.HospitalFilter{PmjayOnly: true})
	require.NoError(t, err)

	require.Len(t, hospitals, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}
