package database

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func hiddenCostRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "procedure_id", "item_name", "avg_cost", "description", "is_avoidable"})
}

func TestListByProcedureReturnsRowsInOrder(t *testing.T) {
	client, mock := newMockClient(t)
	adapter := NewHiddenCostAdapter(client)

	mock.ExpectQuery(`SELECT .+ FROM "hidden_costs" WHERE .+procedure_id.+ ORDER BY "id" ASC`).
		WillReturnRows(hiddenCostRows().
			AddRow(1, 3, "Physiotherapy Sessions", 15000.0, "10-12 sessions", true).
			AddRow(2, 3, "Walker and Knee Brace", 4500.0, "", true))

	costs, err := adapter.ListByProcedure(context.Background(), 3)
	require.NoError(t, err)

	require.Len(t, costs, 2)
	assert.Equal(t, "Physiotherapy Sessions", costs[0].ItemName)
	assert.Equal(t, 15000.0, costs[0].AvgCost)
	assert.True(t, costs[0].IsAvoidable)
	assert.Equal(t, "Walker and Knee Brace", costs[1].ItemName)
}

func TestListByProcedureNoRowsIsEmptySlice(t *testing.T) {
	client, mock := newMockClient(t)
	adapter := NewHiddenCostAdapter(client)

	mock.ExpectQuery(`SELECT .+ FROM "hidden_costs"`).
		WillReturnRows(hiddenCostRows())

	costs, err := adapter.ListByProcedure(context.Background(), 99)
	require.NoError(t, err)

	// Empty, never nil: callers serialize this straight to JSON
	assert.NotNil(t, costs)
	assert.Empty(t, costs)
}
