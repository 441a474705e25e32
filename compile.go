package simydb

import (
	"sort"
	"strconv"
	"strings"
)

// Statement rendering. Clause order is fixed: SELECT projection FROM table,
// then WHERE, ORDER BY, LIMIT, OFFSET. UPDATE and DELETE render only the
// WHERE clause after the statement head. Rendering is total: every
// combination of accumulated state produces syntactically valid SQL, and the
// number of placeholders always equals the length of the binding list.
//
// Identifiers (table and column names) are interpolated verbatim and must
// come from trusted code. Values are always bound.

func (b *Builder) compileSelect() (string, []any) {
	var sb strings.Builder
	sb.WriteString("SELECT ")
	if len(b.columns) == 0 {
		sb.WriteString("*")
	} else {
		sb.WriteString(strings.Join(b.columns, ", "))
	}
	sb.WriteString(" FROM ")
	sb.WriteString(b.table)

	bindings := b.compileWhere(&sb)

	if len(b.orders) > 0 {
		sb.WriteString(" ORDER BY ")
		parts := make([]string, len(b.orders))
		for i, o := range b.orders {
			parts[i] = o.column + " " + o.direction
		}
		sb.WriteString(strings.Join(parts, ", "))
	}

	// SQLite rejects a bare OFFSET clause, so an offset without a limit
	// renders the unlimited form LIMIT -1.
	switch {
	case b.limit != nil:
		sb.WriteString(" LIMIT ")
		sb.WriteString(strconv.Itoa(*b.limit))
	case b.offset != nil:
		sb.WriteString(" LIMIT -1")
	}
	if b.offset != nil {
		sb.WriteString(" OFFSET ")
		sb.WriteString(strconv.Itoa(*b.offset))
	}

	return sb.String(), bindings
}

func (b *Builder) compileInsert(data map[string]any) (string, []any) {
	keys := make([]string, 0, len(data))
	for k := range data {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	bindings := make([]any, 0, len(keys))
	placeholders := make([]string, len(keys))
	for i, k := range keys {
		placeholders[i] = "?"
		bindings = append(bindings, data[k])
	}

	var sb strings.Builder
	sb.WriteString("INSERT INTO ")
	sb.WriteString(b.table)
	sb.WriteString(" (")
	sb.WriteString(strings.Join(keys, ", "))
	sb.WriteString(") VALUES (")
	sb.WriteString(strings.Join(placeholders, ", "))
	sb.WriteString(")")

	return sb.String(), bindings
}

func (b *Builder) compileUpdate(data map[string]any) (string, []any) {
	keys := make([]string, 0, len(data))
	for k := range data {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var sb strings.Builder
	sb.WriteString("UPDATE ")
	sb.WriteString(b.table)
	sb.WriteString(" SET ")

	bindings := make([]any, 0, len(keys))
	assignments := make([]string, len(keys))
	for i, k := range keys {
		assignments[i] = k + " = ?"
		bindings = append(bindings, data[k])
	}
	sb.WriteString(strings.Join(assignments, ", "))

	bindings = append(bindings, b.compileWhere(&sb)...)
	return sb.String(), bindings
}

func (b *Builder) compileDelete() (string, []any) {
	var sb strings.Builder
	sb.WriteString("DELETE FROM ")
	sb.WriteString(b.table)
	bindings := b.compileWhere(&sb)
	return sb.String(), bindings
}

// compileWhere renders the accumulated predicates into sb and returns their
// bindings in placeholder order. The first predicate introduces the clause:
// its conjunction keyword is always suppressed, whatever was requested.
func (b *Builder) compileWhere(sb *strings.Builder) []any {
	if len(b.wheres) == 0 {
		return nil
	}

	var bindings []any
	sb.WriteString(" WHERE ")
	for i, p := range b.wheres {
		if i > 0 {
			sb.WriteString(" ")
			sb.WriteString(string(p.conj))
			sb.WriteString(" ")
		}
		switch p.kind {
		case predicateComparison:
			sb.WriteString(p.column)
			sb.WriteString(" ")
			sb.WriteString(p.operator)
			sb.WriteString(" ?")
			bindings = append(bindings, p.value)
		case predicateSet:
			placeholders := make([]string, len(p.values))
			for j := range p.values {
				placeholders[j] = "?"
			}
			sb.WriteString(p.column)
			sb.WriteString(" IN (")
			sb.WriteString(strings.Join(placeholders, ", "))
			sb.WriteString(")")
			bindings = append(bindings, p.values...)
		}
	}
	return bindings
}

// normalizeDirection maps a requested sort direction onto ASC or DESC.
// Matching is case-insensitive; unrecognized values fall back to ASC.
func normalizeDirection(dir string) string {
	if strings.EqualFold(dir, "DESC") {
		return "DESC"
	}
	return "ASC"
}
