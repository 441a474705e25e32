package simydb

import (
	"context"
	"fmt"
	"strings"

	goversion "github.com/hashicorp/go-version"
)

// Schema issues DDL through the connection facade: table and column
// management plus catalog introspection. SQLite has no direct DROP COLUMN;
// DropColumn orchestrates a transactional create-copy-swap instead.
type Schema struct {
	conn *Conn
}

// ColumnSpec is one column in a CREATE TABLE statement. Definition is the
// raw column definition text, e.g. "INTEGER PRIMARY KEY" or
// "TEXT NOT NULL DEFAULT ''".
type ColumnSpec struct {
	Name       string
	Definition string
}

// ColumnInfo is one column's catalog metadata as reported by
// PRAGMA table_info.
type ColumnInfo struct {
	CID        int
	Name       string
	Type       string
	NotNull    bool
	Default    *string
	PrimaryKey bool
}

// definition reconstructs the column's DDL fragment from its metadata.
func (c ColumnInfo) definition() string {
	var sb strings.Builder
	sb.WriteString(c.Name)
	sb.WriteString(" ")
	sb.WriteString(c.Type)
	if c.PrimaryKey {
		sb.WriteString(" PRIMARY KEY")
	}
	if c.NotNull {
		sb.WriteString(" NOT NULL")
	}
	if c.Default != nil {
		sb.WriteString(" DEFAULT ")
		sb.WriteString(*c.Default)
	}
	return sb.String()
}

// ALTER TABLE ... RENAME COLUMN arrived in SQLite 3.25.0.
var minRenameColumnVersion = goversion.Must(goversion.NewVersion("3.25.0"))

// CreateTable creates a table with the given columns, in caller order. It is
// a no-op when the table already exists.
func (s *Schema) CreateTable(ctx context.Context, name string, columns []ColumnSpec) error {
	defs := make([]string, len(columns))
	for i, col := range columns {
		defs[i] = col.Name + " " + col.Definition
	}
	sqlText := fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (%s)", name, strings.Join(defs, ", "))
	return s.conn.Exec(ctx, sqlText)
}

// DropTable drops a table. It is a no-op when the table does not exist.
func (s *Schema) DropTable(ctx context.Context, name string) error {
	return s.conn.Exec(ctx, fmt.Sprintf("DROP TABLE IF EXISTS %s", name))
}

// AddColumn adds a column to an existing table.
func (s *Schema) AddColumn(ctx context.Context, table, column, definition string) error {
	return s.conn.Exec(ctx, fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s %s", table, column, definition))
}

// RenameTable renames a table.
func (s *Schema) RenameTable(ctx context.Context, oldName, newName string) error {
	return s.conn.Exec(ctx, fmt.Sprintf("ALTER TABLE %s RENAME TO %s", oldName, newName))
}

// RenameColumn renames a column in place. It requires SQLite 3.25.0 or
// newer; older engines report a schema error without touching the table.
func (s *Schema) RenameColumn(ctx context.Context, table, oldName, newName string) error {
	if v := s.conn.EngineVersion(); v != nil && v.LessThan(minRenameColumnVersion) {
		return &Error{
			Kind:    KindSchema,
			Message: fmt.Sprintf("rename column requires SQLite >= %s, engine is %s", minRenameColumnVersion, v),
		}
	}
	return s.conn.Exec(ctx, fmt.Sprintf("ALTER TABLE %s RENAME COLUMN %s TO %s", table, oldName, newName))
}

// DropColumn removes a column via a create-copy-swap sequence: inside one
// transaction it introspects the table, creates a shadow table with every
// column except the target (NOT NULL, DEFAULT and PRIMARY KEY modifiers
// reconstructed from metadata), copies all rows with a single
// INSERT ... SELECT, drops the original and renames the shadow into place.
// Any step failure rolls the whole transaction back: no partial schema
// change is observable.
func (s *Schema) DropColumn(ctx context.Context, table, column string) error {
	if err := s.conn.BeginTransaction(ctx); err != nil {
		return err
	}

	if err := s.dropColumnLocked(ctx, table, column); err != nil {
		_ = s.conn.Rollback(ctx)
		return &Error{
			Kind:    KindSchema,
			Message: fmt.Sprintf("failed to drop column %s.%s", table, column),
			Cause:   err,
		}
	}

	return s.conn.Commit(ctx)
}

// dropColumnLocked runs the create-copy-swap steps; the caller owns the
// transaction.
func (s *Schema) dropColumnLocked(ctx context.Context, table, column string) error {
	columns, err := s.Columns(ctx, table)
	if err != nil {
		return err
	}

	kept := make([]ColumnInfo, 0, len(columns))
	found := false
	for _, col := range columns {
		if col.Name == column {
			found = true
			continue
		}
		kept = append(kept, col)
	}
	if !found {
		return fmt.Errorf("column %s does not exist in table %s", column, table)
	}
	if len(kept) == 0 {
		return fmt.Errorf("cannot drop the only column of table %s", table)
	}

	defs := make([]string, len(kept))
	names := make([]string, len(kept))
	for i, col := range kept {
		defs[i] = col.definition()
		names[i] = col.Name
	}

	shadow := table + "_shadow"
	nameList := strings.Join(names, ", ")

	steps := []string{
		fmt.Sprintf("CREATE TABLE %s (%s)", shadow, strings.Join(defs, ", ")),
		fmt.Sprintf("INSERT INTO %s (%s) SELECT %s FROM %s", shadow, nameList, nameList, table),
		fmt.Sprintf("DROP TABLE %s", table),
		fmt.Sprintf("ALTER TABLE %s RENAME TO %s", shadow, table),
	}
	for _, step := range steps {
		if err := s.conn.Exec(ctx, step); err != nil {
			return err
		}
	}
	return nil
}

// TableExists reports whether a table of the given name exists.
func (s *Schema) TableExists(ctx context.Context, name string) (bool, error) {
	rows, err := s.conn.Query(ctx,
		"SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?", name)
	if err != nil {
		return false, err
	}
	return len(rows) > 0, nil
}

// ColumnExists reports whether the table has a column of the given name.
func (s *Schema) ColumnExists(ctx context.Context, table, column string) (bool, error) {
	columns, err := s.Columns(ctx, table)
	if err != nil {
		return false, err
	}
	for _, col := range columns {
		if col.Name == column {
			return true, nil
		}
	}
	return false, nil
}

// Columns reads the table's column metadata from PRAGMA table_info, in
// declaration order.
func (s *Schema) Columns(ctx context.Context, table string) ([]ColumnInfo, error) {
	rows, err := s.conn.Query(ctx, fmt.Sprintf("PRAGMA table_info(%s)", table))
	if err != nil {
		return nil, err
	}

	columns := make([]ColumnInfo, 0, len(rows))
	for _, row := range rows {
		col := ColumnInfo{
			CID:        int(toInt64(row.Value("cid"))),
			Name:       asString(row.Value("name")),
			Type:       asString(row.Value("type")),
			NotNull:    toInt64(row.Value("notnull")) != 0,
			PrimaryKey: toInt64(row.Value("pk")) != 0,
		}
		if v := row.Value("dflt_value"); v != nil {
			def := asString(v)
			col.Default = &def
		}
		columns = append(columns, col)
	}
	return columns, nil
}

func asString(v any) string {
	s, _ := v.(string)
	return s
}
