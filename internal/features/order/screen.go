package order

import (
	"fmt"

	"go-storefront/internal/tables"
)

func Columns() []tables.ColumnDef {
	return []tables.ColumnDef{
		{Key: "number", Header: "Order", Locked: true},
		{Key: "customer", Header: "Customer"},
		{Key: "total", Header: "Total", Render: func(row tables.Row) string {
			if f, ok := row["total"].(float64); ok {
				return fmt.Sprintf("%.2f", f)
			}
			return ""
		}},
		{Key: "status", Header: "Status"},
		{Key: "createdAt", Header: "Placed"},
		{Key: "actions", Header: "", Unsortable: true},
	}
}

func FilterFields() []tables.FilterField {
	return []tables.FilterField{
		{Key: "number", Kind: tables.FilterText},
		{Key: "customer", Kind: tables.FilterText},
		{Key: "status", Kind: tables.FilterFacet},
		{Key: "createdAt", Kind: tables.FilterDateRange},
	}
}

func TableRows(orders []Order) []tables.Row {
	rows := make([]tables.Row, 0, len(orders))
	for _, o := range orders {
		rows = append(rows, tables.Row{
			"id":        o.ID.Hex(),
			"number":    o.Number,
			"customer":  o.CustomerName,
			"total":     o.Total,
			"status":    o.Status,
			"createdAt": o.CreatedAt,
		})
	}
	return rows
}
