package tables

import (
	"sort"
	"strings"
	"time"

	"go-storefront/pkg/condition"
)

// Engine applies sorting, filtering and pagination to an in-memory row
// snapshot. Filter state is last-write-wins; clearing every filter restores
// the original row order.
type Engine struct {
	columns      []ColumnDef
	rows         []Row
	filterFields []FilterField
	dateKeys     map[string]bool

	sortKey  string
	sortDesc bool
	search   string
	facets   map[string][]string
	ranges   map[string]dateRange

	page     int
	pageSize int
}

type dateRange struct {
	from, to time.Time
}

type TableView struct {
	Columns  []ColumnDef `json:"columns"`
	Rows     []Row       `json:"rows"`
	Total    int         `json:"total"`
	Page     int         `json:"page"`
	PageSize int         `json:"page_size"`
}

// NewEngine projects hidden columns away without touching the caller's
// column definitions. Hidden keys naming a locked column are ignored.
func NewEngine(columns []ColumnDef, rows []Row, filterFields []FilterField, dateKeys []string, hidden []string) *Engine {
	hiddenSet := make(map[string]bool, len(hidden))
	for _, h := range hidden {
		hiddenSet[h] = true
	}

	projected := make([]ColumnDef, 0, len(columns))
	for _, col := range columns {
		if hiddenSet[col.Key] && !col.Locked {
			continue
		}
		projected = append(projected, col)
	}

	dk := make(map[string]bool, len(dateKeys))
	for _, k := range dateKeys {
		dk[k] = true
	}

	return &Engine{
		columns:      projected,
		rows:         rows,
		filterFields: filterFields,
		dateKeys:     dk,
		facets:       make(map[string][]string),
		ranges:       make(map[string]dateRange),
		page:         1,
		pageSize:     10,
	}
}

// SortBy sets the single-column sort. An empty key, an unknown key, or a key
// declared unsortable clears the sort instead.
func (e *Engine) SortBy(key string, desc bool) {
	for _, col := range e.columns {
		if col.Key == key {
			if col.Unsortable {
				break
			}
			e.sortKey = key
			e.sortDesc = desc
			return
		}
	}
	e.sortKey = ""
	e.sortDesc = false
}

func (e *Engine) SetSearch(query string) {
	e.search = strings.TrimSpace(query)
}

// SetFacet replaces the selected values for a facet key. Values are
// OR-combined within the facet and AND-combined across facets. An empty
// selection clears the facet.
func (e *Engine) SetFacet(key string, values []string) {
	if !e.hasFilter(key, FilterFacet) {
		return
	}
	if len(values) == 0 {
		delete(e.facets, key)
		return
	}
	e.facets[key] = values
}

// SetDateRange bounds a date column. Zero times leave that side open.
func (e *Engine) SetDateRange(key string, from, to time.Time) {
	if !e.dateKeys[key] {
		return
	}
	if from.IsZero() && to.IsZero() {
		delete(e.ranges, key)
		return
	}
	e.ranges[key] = dateRange{from: from, to: to}
}

func (e *Engine) ClearFilters() {
	e.search = ""
	e.facets = make(map[string][]string)
	e.ranges = make(map[string]dateRange)
}

func (e *Engine) SetPage(page, size int) {
	if page > 0 {
		e.page = page
	}
	if size > 0 {
		e.pageSize = size
	}
}

// Rows returns the filtered, sorted row set without pagination.
func (e *Engine) Rows() []Row {
	filtered := make([]Row, 0, len(e.rows))
	for _, row := range e.rows {
		if e.matches(row) {
			filtered = append(filtered, row)
		}
	}

	if e.sortKey != "" {
		key, desc := e.sortKey, e.sortDesc
		sort.SliceStable(filtered, func(i, j int) bool {
			c := condition.Compare(filtered[i][key], filtered[j][key])
			if desc {
				return c > 0
			}
			return c < 0
		})
	}

	return filtered
}

// View returns the current page of the filtered, sorted rows. Columns with a
// Render hook have their cells replaced by the rendered string; sorting and
// filtering always see the raw values.
func (e *Engine) View() TableView {
	filtered := e.Rows()
	total := len(filtered)

	start := (e.page - 1) * e.pageSize
	if start > total {
		start = total
	}
	end := start + e.pageSize
	if end > total {
		end = total
	}

	return TableView{
		Columns:  e.columns,
		Rows:     e.renderRows(filtered[start:end]),
		Total:    total,
		Page:     e.page,
		PageSize: e.pageSize,
	}
}

// renderRows applies the per-column Render hooks to a page of rows, copying
// each row so the caller's snapshot stays untouched.
func (e *Engine) renderRows(page []Row) []Row {
	rendered := false
	for _, col := range e.columns {
		if col.Render != nil {
			rendered = true
			break
		}
	}
	if !rendered {
		return page
	}

	out := make([]Row, len(page))
	for i, row := range page {
		copied := make(Row, len(row))
		for k, v := range row {
			copied[k] = v
		}
		for _, col := range e.columns {
			if col.Render != nil {
				copied[col.Key] = col.Render(row)
			}
		}
		out[i] = copied
	}
	return out
}

func (e *Engine) matches(row Row) bool {
	if e.search != "" && !e.matchesSearch(row) {
		return false
	}

	for key, values := range e.facets {
		ok, err := condition.Evaluate(&condition.Group{Rules: []condition.Rule{
			{Field: key, Operator: "in", Value: toAnySlice(values)},
		}}, row)
		if err != nil || !ok {
			return false
		}
	}

	for key, r := range e.ranges {
		var rules []condition.Rule
		if !r.from.IsZero() {
			rules = append(rules, condition.Rule{Field: key, Operator: "gte", Value: r.from})
		}
		if !r.to.IsZero() {
			rules = append(rules, condition.Rule{Field: key, Operator: "lte", Value: r.to})
		}
		ok, err := condition.Evaluate(&condition.Group{Rules: rules}, row)
		if err != nil || !ok {
			return false
		}
	}

	return true
}

// matchesSearch checks the free-text query against every text filter field,
// falling back to all visible columns when none are declared.
func (e *Engine) matchesSearch(row Row) bool {
	keys := make([]string, 0, len(e.filterFields))
	for _, f := range e.filterFields {
		if f.Kind == FilterText {
			keys = append(keys, f.Key)
		}
	}
	if len(keys) == 0 {
		for _, col := range e.columns {
			keys = append(keys, col.Key)
		}
	}

	for _, key := range keys {
		ok, err := condition.Evaluate(&condition.Group{Rules: []condition.Rule{
			{Field: key, Operator: "contains", Value: e.search},
		}}, row)
		if err == nil && ok {
			return true
		}
	}
	return false
}

func (e *Engine) hasFilter(key string, kind FilterKind) bool {
	for _, f := range e.filterFields {
		if f.Key == key && f.Kind == kind {
			return true
		}
	}
	return false
}

func toAnySlice(values []string) []interface{} {
	out := make([]interface{}, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}
