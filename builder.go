package simydb

import (
	"context"
	"fmt"
)

// Conjunction joins a predicate to the one before it.
type conjunction string

const (
	conjAnd conjunction = "AND"
	conjOr  conjunction = "OR"
)

// predicateKind tags the two filter forms.
type predicateKind int

const (
	predicateComparison predicateKind = iota
	predicateSet
)

// predicate is one accumulated filter. Comparison predicates carry an
// operator and a single value; set predicates carry a value list, one
// placeholder per member. Insertion order determines textual placement:
// there is no parenthetical grouping of mixed AND/OR chains.
type predicate struct {
	kind     predicateKind
	conj     conjunction
	column   string
	operator string
	value    any
	values   []any
}

// orderSpec is one ORDER BY entry.
type orderSpec struct {
	column    string
	direction string
}

// Builder accumulates a single statement's projection, filters, ordering and
// pagination, then renders SQL text plus an ordered binding list. All chain
// methods mutate the receiver and return it. A Builder belongs to the call
// chain that created it and must not be shared across goroutines.
type Builder struct {
	conn    *Conn
	table   string
	columns []string
	wheres  []predicate
	orders  []orderSpec
	limit   *int
	offset  *int

	// err records a malformed chain call; it is surfaced by the next
	// terminal operation. Rendering itself never fails.
	err error
}

func newBuilder(conn *Conn, table string) *Builder {
	return &Builder{conn: conn, table: table}
}

// Select replaces the projection list. Columns are interpolated verbatim, so
// raw aggregate expressions such as "COUNT(*) AS count" are allowed.
func (b *Builder) Select(columns ...string) *Builder {
	b.columns = columns
	return b
}

// Where appends a comparison predicate joined with AND.
//
// Two call forms are supported:
//
//	Where("id", 5)        // operator defaults to "="
//	Where("age", ">", 21) // explicit operator
func (b *Builder) Where(column string, args ...any) *Builder {
	return b.appendComparison(conjAnd, column, args)
}

// OrWhere appends a comparison predicate joined with OR. It accepts the same
// call forms as Where.
func (b *Builder) OrWhere(column string, args ...any) *Builder {
	return b.appendComparison(conjOr, column, args)
}

func (b *Builder) appendComparison(conj conjunction, column string, args []any) *Builder {
	var p predicate
	switch len(args) {
	case 1:
		p = predicate{kind: predicateComparison, conj: conj, column: column, operator: "=", value: args[0]}
	case 2:
		op, ok := args[0].(string)
		if !ok {
			b.fail(fmt.Errorf("where %s: operator must be a string, got %T", column, args[0]))
			return b
		}
		p = predicate{kind: predicateComparison, conj: conj, column: column, operator: op, value: args[1]}
	default:
		b.fail(fmt.Errorf("where %s: expected (value) or (operator, value), got %d arguments", column, len(args)))
		return b
	}
	b.wheres = append(b.wheres, p)
	return b
}

// WhereIn appends a set-membership predicate joined with AND, rendered as
// "column IN (?, ?, ...)" with one placeholder per value. An empty list
// renders "IN ()", which is valid SQLite and matches no rows.
func (b *Builder) WhereIn(column string, values []any) *Builder {
	b.wheres = append(b.wheres, predicate{kind: predicateSet, conj: conjAnd, column: column, values: values})
	return b
}

// OrWhereIn appends a set-membership predicate joined with OR.
func (b *Builder) OrWhereIn(column string, values []any) *Builder {
	b.wheres = append(b.wheres, predicate{kind: predicateSet, conj: conjOr, column: column, values: values})
	return b
}

// OrderBy appends an ORDER BY entry. Direction is optional and
// case-insensitive; anything other than "desc" normalizes to ASC.
func (b *Builder) OrderBy(column string, direction ...string) *Builder {
	dir := ""
	if len(direction) > 0 {
		dir = direction[0]
	}
	b.orders = append(b.orders, orderSpec{column: column, direction: normalizeDirection(dir)})
	return b
}

// Limit sets the row limit. The last call wins; a negative value clears it.
func (b *Builder) Limit(n int) *Builder {
	if n < 0 {
		b.limit = nil
		return b
	}
	b.limit = &n
	return b
}

// Offset sets the row offset. The last call wins; a negative value clears it.
func (b *Builder) Offset(n int) *Builder {
	if n < 0 {
		b.offset = nil
		return b
	}
	b.offset = &n
	return b
}

// Err returns the first malformed chain call recorded on this builder.
func (b *Builder) Err() error {
	return b.err
}

func (b *Builder) fail(err error) {
	if b.err == nil {
		b.err = err
	}
}

// ToSQL renders the SELECT form of the accumulated statement without
// executing it, returning the SQL text and the ordered binding list.
func (b *Builder) ToSQL() (string, []any, error) {
	if b.err != nil {
		return "", nil, b.err
	}
	sqlText, bindings := b.compileSelect()
	return sqlText, bindings, nil
}

// GetContext renders a SELECT and returns all matching rows.
func (b *Builder) GetContext(ctx context.Context) ([]Row, error) {
	sqlText, bindings, err := b.ToSQL()
	if err != nil {
		return nil, err
	}
	return b.conn.Query(ctx, sqlText, bindings...)
}

// Get is GetContext with a background context.
func (b *Builder) Get() ([]Row, error) {
	return b.GetContext(context.Background())
}

// GetIntoContext executes the SELECT and maps the rows onto dest, a pointer
// to a slice of structs or maps. This is a presentation transform over the
// same row data Get returns.
func (b *Builder) GetIntoContext(ctx context.Context, dest any) error {
	rows, err := b.GetContext(ctx)
	if err != nil {
		return err
	}
	return rowsInto(rows, dest)
}

// GetInto is GetIntoContext with a background context.
func (b *Builder) GetInto(dest any) error {
	return b.GetIntoContext(context.Background(), dest)
}

// FirstContext forces a limit of one, executes the SELECT and returns the
// single row. Zero matching rows return (nil, nil), never an error.
func (b *Builder) FirstContext(ctx context.Context) (*Row, error) {
	b.Limit(1)
	rows, err := b.GetContext(ctx)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &rows[0], nil
}

// First is FirstContext with a background context.
func (b *Builder) First() (*Row, error) {
	return b.FirstContext(context.Background())
}

// InsertContext renders and executes an INSERT from data's column/value
// pairs. Keys are rendered in sorted order so output is deterministic.
// Accumulated filters are not consulted.
func (b *Builder) InsertContext(ctx context.Context, data map[string]any) error {
	if b.err != nil {
		return b.err
	}
	sqlText, bindings := b.compileInsert(data)
	return b.conn.Exec(ctx, sqlText, bindings...)
}

// Insert is InsertContext with a background context.
func (b *Builder) Insert(data map[string]any) error {
	return b.InsertContext(context.Background(), data)
}

// UpdateContext renders and executes an UPDATE using the accumulated
// filters. Binding order is SET values first, then filter bindings, matching
// placeholder order in the rendered text.
func (b *Builder) UpdateContext(ctx context.Context, data map[string]any) error {
	if b.err != nil {
		return b.err
	}
	sqlText, bindings := b.compileUpdate(data)
	return b.conn.Exec(ctx, sqlText, bindings...)
}

// Update is UpdateContext with a background context.
func (b *Builder) Update(data map[string]any) error {
	return b.UpdateContext(context.Background(), data)
}

// DeleteContext renders and executes a DELETE using the accumulated filters.
func (b *Builder) DeleteContext(ctx context.Context) error {
	if b.err != nil {
		return b.err
	}
	sqlText, bindings := b.compileDelete()
	return b.conn.Exec(ctx, sqlText, bindings...)
}

// Delete is DeleteContext with a background context.
func (b *Builder) Delete() error {
	return b.DeleteContext(context.Background())
}

// CountContext substitutes the projection with a count aggregate, executes
// the SELECT, restores the original projection and returns the count. A
// result lacking the aggregate counts as zero.
func (b *Builder) CountContext(ctx context.Context) (int64, error) {
	saved := b.columns
	b.columns = []string{"COUNT(*) AS count"}
	rows, err := b.GetContext(ctx)
	b.columns = saved
	if err != nil {
		return 0, err
	}
	if len(rows) == 0 {
		return 0, nil
	}
	return toInt64(rows[0].Value("count")), nil
}

// Count is CountContext with a background context.
func (b *Builder) Count() (int64, error) {
	return b.CountContext(context.Background())
}

func toInt64(v any) int64 {
	switch n := v.(type) {
	case int64:
		return n
	case int:
		return int64(n)
	case float64:
		return int64(n)
	default:
		return 0
	}
}
