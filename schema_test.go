package simydb

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCreateAndDropTable(t *testing.T) {
	ctx := context.Background()
	conn := openTestConn(t)
	schema := conn.Schema()

	err := schema.CreateTable(ctx, "notes", []ColumnSpec{
		{Name: "id", Definition: "INTEGER PRIMARY KEY"},
		{Name: "body", Definition: "TEXT NOT NULL"},
	})
	require.NoError(t, err)

	exists, err := schema.TableExists(ctx, "notes")
	require.NoError(t, err)
	require.True(t, exists)

	// IF NOT EXISTS: creating again is a no-op.
	require.NoError(t, schema.CreateTable(ctx, "notes", []ColumnSpec{
		{Name: "id", Definition: "INTEGER PRIMARY KEY"},
	}))

	require.NoError(t, schema.DropTable(ctx, "notes"))
	exists, err = schema.TableExists(ctx, "notes")
	require.NoError(t, err)
	require.False(t, exists)

	// IF EXISTS: dropping again is a no-op.
	require.NoError(t, schema.DropTable(ctx, "notes"))
}

func TestAddColumn(t *testing.T) {
	ctx := context.Background()
	conn := openTestConn(t)
	createUsers(t, conn)
	schema := conn.Schema()

	require.NoError(t, schema.AddColumn(ctx, "users", "age", "INTEGER DEFAULT 0"))

	exists, err := schema.ColumnExists(ctx, "users", "age")
	require.NoError(t, err)
	require.True(t, exists)

	exists, err = schema.ColumnExists(ctx, "users", "nope")
	require.NoError(t, err)
	require.False(t, exists)
}

func TestColumnsMetadata(t *testing.T) {
	ctx := context.Background()
	conn := openTestConn(t)
	schema := conn.Schema()

	require.NoError(t, schema.CreateTable(ctx, "items", []ColumnSpec{
		{Name: "id", Definition: "INTEGER PRIMARY KEY"},
		{Name: "label", Definition: "TEXT NOT NULL DEFAULT 'x'"},
		{Name: "qty", Definition: "INTEGER"},
	}))

	columns, err := schema.Columns(ctx, "items")
	require.NoError(t, err)
	require.Len(t, columns, 3)

	require.Equal(t, "id", columns[0].Name)
	require.True(t, columns[0].PrimaryKey)

	require.Equal(t, "label", columns[1].Name)
	require.True(t, columns[1].NotNull)
	require.NotNil(t, columns[1].Default)
	require.Equal(t, "'x'", *columns[1].Default)

	require.Equal(t, "qty", columns[2].Name)
	require.False(t, columns[2].NotNull)
	require.Nil(t, columns[2].Default)
}

func TestDropColumn(t *testing.T) {
	ctx := context.Background()
	conn := openTestConn(t)
	schema := conn.Schema()

	require.NoError(t, schema.CreateTable(ctx, "people", []ColumnSpec{
		{Name: "id", Definition: "INTEGER PRIMARY KEY"},
		{Name: "name", Definition: "TEXT NOT NULL"},
		{Name: "nickname", Definition: "TEXT"},
	}))
	require.NoError(t, conn.Table("people").Insert(map[string]any{"name": "A", "nickname": "a"}))
	require.NoError(t, conn.Table("people").Insert(map[string]any{"name": "B", "nickname": "b"}))

	require.NoError(t, schema.DropColumn(ctx, "people", "nickname"))

	exists, err := schema.ColumnExists(ctx, "people", "nickname")
	require.NoError(t, err)
	require.False(t, exists)

	// Rows and remaining modifiers survive the swap.
	rows, err := conn.Table("people").OrderBy("id").GetContext(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	require.Equal(t, "A", rows[0].Value("name"))
	require.Equal(t, "B", rows[1].Value("name"))

	columns, err := schema.Columns(ctx, "people")
	require.NoError(t, err)
	require.Len(t, columns, 2)
	require.True(t, columns[0].PrimaryKey)
	require.True(t, columns[1].NotNull)
}

func TestDropColumnMissingColumn(t *testing.T) {
	ctx := context.Background()
	conn := openTestConn(t)
	createUsers(t, conn)

	err := conn.Schema().DropColumn(ctx, "users", "no_such_column")
	require.Error(t, err)
	require.True(t, IsSchema(err))
}

func TestDropColumnFailureLeavesTableIntact(t *testing.T) {
	ctx := context.Background()
	conn := openTestConn(t)
	schema := conn.Schema()
	createUsers(t, conn)
	seedUsers(t, conn, "A", "B", "C")

	// Occupying the shadow name makes the create step fail mid-sequence.
	require.NoError(t, conn.Exec(ctx, "CREATE TABLE users_shadow (x INTEGER)"))

	err := schema.DropColumn(ctx, "users", "name")
	require.Error(t, err)
	require.True(t, IsSchema(err))

	// The original table and its rows are fully intact.
	exists, err := schema.ColumnExists(ctx, "users", "name")
	require.NoError(t, err)
	require.True(t, exists)

	count, err := conn.Table("users").CountContext(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(3), count)
}

func TestDropOnlyColumnRejected(t *testing.T) {
	ctx := context.Background()
	conn := openTestConn(t)
	schema := conn.Schema()

	require.NoError(t, schema.CreateTable(ctx, "single", []ColumnSpec{
		{Name: "id", Definition: "INTEGER PRIMARY KEY"},
	}))

	err := schema.DropColumn(ctx, "single", "id")
	require.Error(t, err)
	require.True(t, IsSchema(err))
}

func TestRenameTable(t *testing.T) {
	ctx := context.Background()
	conn := openTestConn(t)
	schema := conn.Schema()
	createUsers(t, conn)

	require.NoError(t, schema.RenameTable(ctx, "users", "members"))

	exists, err := schema.TableExists(ctx, "members")
	require.NoError(t, err)
	require.True(t, exists)

	exists, err = schema.TableExists(ctx, "users")
	require.NoError(t, err)
	require.False(t, exists)
}

func TestRenameColumn(t *testing.T) {
	ctx := context.Background()
	conn := openTestConn(t)
	schema := conn.Schema()
	createUsers(t, conn)

	if v := conn.EngineVersion(); v != nil && v.LessThan(minRenameColumnVersion) {
		t.Skip("engine too old for RENAME COLUMN")
	}

	require.NoError(t, schema.RenameColumn(ctx, "users", "name", "full_name"))

	exists, err := schema.ColumnExists(ctx, "users", "full_name")
	require.NoError(t, err)
	require.True(t, exists)
}
