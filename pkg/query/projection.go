// Package query builds parameterized PostgreSQL statements from projection
// maps that translate Go field names into aliased table columns.
package query

import (
	"fmt"
	"strings"
)

// ProjectionMap maps view field names to qualified columns of one table.
type ProjectionMap struct {
	schema  string
	table   string
	alias   string
	columns []string
	lookup  map[string]string
}

// NewProjectionMap creates a projection over schema.table aliased as alias.
func NewProjectionMap(schema, table, alias string) *ProjectionMap {
	return &ProjectionMap{
		schema: schema,
		table:  table,
		alias:  alias,
		lookup: make(map[string]string),
	}
}

// Project maps a column to a view field name. Projection order is column order.
func (p *ProjectionMap) Project(column, view string) *ProjectionMap {
	qualified := fmt.Sprintf("%s.%s", p.alias, column)
	p.columns = append(p.columns, qualified)
	p.lookup[view] = qualified
	return p
}

// Table returns the aliased table reference for a FROM clause.
func (p *ProjectionMap) Table() string {
	return fmt.Sprintf("%s.%s %s", p.schema, p.table, p.alias)
}

// Column returns the qualified column for view, or view itself when unmapped.
func (p *ProjectionMap) Column(view string) string {
	if col, ok := p.lookup[view]; ok {
		return col
	}
	return view
}

// Columns returns the projected columns as a SELECT list.
func (p *ProjectionMap) Columns() string {
	return strings.Join(p.columns, ", ")
}
