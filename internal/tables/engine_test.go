package tables

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func orderRows() []Row {
	return []Row{
		{"id": "1", "customer": "Ada Lovelace", "status": "pending", "amount": 120.0, "created_at": time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)},
		{"id": "2", "customer": "Grace Hopper", "status": "shipped", "amount": 80.0, "created_at": time.Date(2026, 8, 5, 0, 0, 0, 0, time.UTC)},
		{"id": "3", "customer": "Alan Turing", "status": "pending", "amount": 200.0, "created_at": time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC)},
		{"id": "4", "customer": "Edsger Dijkstra", "status": "cancelled", "amount": 45.0, "created_at": time.Date(2026, 8, 12, 0, 0, 0, 0, time.UTC)},
	}
}

func orderColumns() []ColumnDef {
	return []ColumnDef{
		{Key: "id", Header: "ID"},
		{Key: "customer", Header: "Customer"},
		{Key: "status", Header: "Status"},
		{Key: "amount", Header: "Amount"},
		{Key: "actions", Header: "", Unsortable: true},
	}
}

func orderFilters() []FilterField {
	return []FilterField{
		{Key: "customer", Kind: FilterText},
		{Key: "status", Kind: FilterFacet},
	}
}

func TestFacetFilter(t *testing.T) {
	e := NewEngine(orderColumns(), orderRows(), orderFilters(), []string{"created_at"}, nil)

	e.SetFacet("status", []string{"pending", "cancelled"})
	rows := e.Rows()
	require.Len(t, rows, 3)
	for _, row := range rows {
		assert.Contains(t, []string{"pending", "cancelled"}, row["status"])
	}

	// Clearing the facet restores all rows in original order.
	e.SetFacet("status", nil)
	rows = e.Rows()
	require.Len(t, rows, 4)
	for i, row := range rows {
		assert.Equal(t, orderRows()[i]["id"], row["id"])
	}
}

func TestFacetsCombineAcrossKeys(t *testing.T) {
	filters := append(orderFilters(), FilterField{Key: "customer", Kind: FilterFacet})
	e := NewEngine(orderColumns(), orderRows(), filters, nil, nil)

	e.SetFacet("status", []string{"pending"})
	e.SetFacet("customer", []string{"Alan Turing", "Grace Hopper"})

	rows := e.Rows()
	require.Len(t, rows, 1)
	assert.Equal(t, "3", rows[0]["id"])
}

func TestFacetIgnoresUndeclaredKey(t *testing.T) {
	e := NewEngine(orderColumns(), orderRows(), orderFilters(), nil, nil)
	e.SetFacet("amount", []string{"120"})
	assert.Len(t, e.Rows(), 4)
}

func TestFreeTextSearch(t *testing.T) {
	e := NewEngine(orderColumns(), orderRows(), orderFilters(), nil, nil)
	e.SetSearch("grace")
	rows := e.Rows()
	require.Len(t, rows, 1)
	assert.Equal(t, "Grace Hopper", rows[0]["customer"])
}

func TestDateRangeFilter(t *testing.T) {
	e := NewEngine(orderColumns(), orderRows(), orderFilters(), []string{"created_at"}, nil)
	e.SetDateRange("created_at",
		time.Date(2026, 8, 4, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 8, 11, 0, 0, 0, 0, time.UTC))

	rows := e.Rows()
	require.Len(t, rows, 2)
	assert.Equal(t, "2", rows[0]["id"])
	assert.Equal(t, "3", rows[1]["id"])

	// Open-ended lower bound.
	e.SetDateRange("created_at", time.Time{}, time.Date(2026, 8, 2, 0, 0, 0, 0, time.UTC))
	rows = e.Rows()
	require.Len(t, rows, 1)
	assert.Equal(t, "1", rows[0]["id"])
}

func TestSortStableAndToggleable(t *testing.T) {
	e := NewEngine(orderColumns(), orderRows(), orderFilters(), nil, nil)

	e.SortBy("amount", false)
	rows := e.Rows()
	assert.Equal(t, 45.0, rows[0]["amount"])
	assert.Equal(t, 200.0, rows[3]["amount"])

	e.SortBy("amount", true)
	rows = e.Rows()
	assert.Equal(t, 200.0, rows[0]["amount"])

	// Unsortable column clears the sort; original order returns.
	e.SortBy("actions", false)
	rows = e.Rows()
	assert.Equal(t, "1", rows[0]["id"])
}

func TestHiddenColumnsProjection(t *testing.T) {
	cols := orderColumns()
	e := NewEngine(cols, orderRows(), orderFilters(), nil, []string{"actions", "amount"})

	view := e.View()
	keys := make([]string, 0, len(view.Columns))
	for _, c := range view.Columns {
		keys = append(keys, c.Key)
	}
	assert.Equal(t, []string{"id", "customer", "status"}, keys)

	// The caller's definitions stay intact.
	assert.Len(t, cols, 5)
}

func TestLockedColumnCannotBeHidden(t *testing.T) {
	cols := []ColumnDef{
		{Key: "id", Header: "ID", Locked: true},
		{Key: "name", Header: "Name"},
	}
	e := NewEngine(cols, nil, nil, nil, []string{"id", "name"})
	view := e.View()
	require.Len(t, view.Columns, 1)
	assert.Equal(t, "id", view.Columns[0].Key)
}

func TestCellRendererAppliedInView(t *testing.T) {
	cols := []ColumnDef{
		{Key: "id", Header: "ID"},
		{Key: "total", Header: "Total", Render: func(row Row) string {
			return fmt.Sprintf("%.2f", row["total"])
		}},
	}
	rows := []Row{
		{"id": "1", "total": 12.5},
		{"id": "2", "total": 200.0},
	}
	e := NewEngine(cols, rows, nil, nil, nil)

	view := e.View()
	require.Len(t, view.Rows, 2)
	assert.Equal(t, "12.50", view.Rows[0]["total"])
	assert.Equal(t, "200.00", view.Rows[1]["total"])

	// Sorting still compares the raw values, and the caller's snapshot is
	// never rewritten by rendering.
	e.SortBy("total", true)
	view = e.View()
	assert.Equal(t, "2", view.Rows[0]["id"])
	assert.Equal(t, "200.00", view.Rows[0]["total"])
	assert.Equal(t, 12.5, rows[0]["total"])
}

func TestPagination(t *testing.T) {
	e := NewEngine(orderColumns(), orderRows(), orderFilters(), nil, nil)
	e.SetPage(2, 3)

	view := e.View()
	assert.Equal(t, 4, view.Total)
	require.Len(t, view.Rows, 1)
	assert.Equal(t, "4", view.Rows[0]["id"])

	// Page past the end yields an empty page, not a panic.
	e.SetPage(9, 10)
	assert.Empty(t, e.View().Rows)
}
