package tables

// Row is one table record. Rows are read-only snapshots supplied by the
// caller; the engine never re-fetches or mutates them.
type Row map[string]interface{}

// ColumnDef declares one column. Columns are sortable and hideable by
// default, so the inverse flags keep the zero value useful.
type ColumnDef struct {
	Key    string `json:"key"`
	Header string `json:"header"`
	// Render overrides the raw cell value in views.
	Render func(Row) string `json:"-"`
	// Unsortable columns ignore SortBy requests.
	Unsortable bool `json:"unsortable,omitempty"`
	// Locked columns ignore hide requests (e.g. the actions column is
	// removed by passing it in hidden, never by locking).
	Locked bool `json:"locked,omitempty"`
}

type FilterKind string

const (
	FilterText      FilterKind = "text"
	FilterFacet     FilterKind = "facet"
	FilterDateRange FilterKind = "dateRange"
)

// FilterField declares which keys the engine accepts filters for.
type FilterField struct {
	Key  string     `json:"key"`
	Kind FilterKind `json:"kind"`
}
