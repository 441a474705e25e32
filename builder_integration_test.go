package simydb

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func seedUsers(t *testing.T, conn *Conn, names ...string) {
	t.Helper()
	for _, name := range names {
		require.NoError(t, conn.Table("users").Insert(map[string]any{"name": name}))
	}
}

func TestInsertThenFirst(t *testing.T) {
	ctx := context.Background()
	conn := openTestConn(t)
	createUsers(t, conn)
	seedUsers(t, conn, "A")

	row, err := conn.Table("users").Where("id", 1).FirstContext(ctx)
	require.NoError(t, err)
	require.NotNil(t, row)
	require.Equal(t, int64(1), row.Value("id"))
	require.Equal(t, "A", row.Value("name"))
}

func TestFirstZeroRowsReturnsNil(t *testing.T) {
	conn := openTestConn(t)
	createUsers(t, conn)

	row, err := conn.Table("users").Where("id", 12345).First()
	require.NoError(t, err)
	require.Nil(t, row)
}

func TestWhereInSelectsExactRows(t *testing.T) {
	ctx := context.Background()
	conn := openTestConn(t)
	createUsers(t, conn)
	seedUsers(t, conn, "A", "B", "C")

	rows, err := conn.Table("users").WhereIn("id", []any{1, 3}).GetContext(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	require.Equal(t, int64(1), rows[0].Value("id"))
	require.Equal(t, int64(3), rows[1].Value("id"))
}

func TestWhereInEmptyListMatchesNothing(t *testing.T) {
	conn := openTestConn(t)
	createUsers(t, conn)
	seedUsers(t, conn, "A", "B")

	rows, err := conn.Table("users").WhereIn("id", nil).Get()
	require.NoError(t, err)
	require.Empty(t, rows)
}

func TestUpdateWithFilter(t *testing.T) {
	ctx := context.Background()
	conn := openTestConn(t)
	createUsers(t, conn)
	seedUsers(t, conn, "A", "B")

	err := conn.Table("users").Where("id", 1).UpdateContext(ctx, map[string]any{"name": "X"})
	require.NoError(t, err)

	rows, err := conn.Table("users").OrderBy("id").GetContext(ctx)
	require.NoError(t, err)
	require.Equal(t, "X", rows[0].Value("name"))
	require.Equal(t, "B", rows[1].Value("name"))
}

func TestDeleteWithFilter(t *testing.T) {
	ctx := context.Background()
	conn := openTestConn(t)
	createUsers(t, conn)
	seedUsers(t, conn, "A", "B", "C")

	require.NoError(t, conn.Table("users").Where("id", 2).DeleteContext(ctx))

	rows, err := conn.Table("users").OrderBy("id").GetContext(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	require.Equal(t, "A", rows[0].Value("name"))
	require.Equal(t, "C", rows[1].Value("name"))
}

func TestCountRestoresProjection(t *testing.T) {
	ctx := context.Background()
	conn := openTestConn(t)
	createUsers(t, conn)
	seedUsers(t, conn, "A", "B", "C")

	b := conn.Table("users").Select("name").Where("id", ">", 1)

	count, err := b.CountContext(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(2), count)

	// A subsequent Get on the same builder uses the original columns.
	rows, err := b.GetContext(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	require.Equal(t, []string{"name"}, rows[0].Columns())
}

func TestCountEmptyTable(t *testing.T) {
	conn := openTestConn(t)
	createUsers(t, conn)

	count, err := conn.Table("users").Count()
	require.NoError(t, err)
	require.Zero(t, count)
}

func TestGetIntoStructs(t *testing.T) {
	ctx := context.Background()
	conn := openTestConn(t)
	createUsers(t, conn)
	seedUsers(t, conn, "A", "B")

	type user struct {
		ID   int64  `json:"id"`
		Name string `json:"name"`
	}
	var users []user
	err := conn.Table("users").OrderBy("id").GetIntoContext(ctx, &users)
	require.NoError(t, err)
	require.Equal(t, []user{{ID: 1, Name: "A"}, {ID: 2, Name: "B"}}, users)
}

func TestGetIntoRejectsNonSlicePointer(t *testing.T) {
	conn := openTestConn(t)
	createUsers(t, conn)

	var notASlice int
	err := conn.Table("users").GetInto(&notASlice)
	require.Error(t, err)
}

func TestOrderByLimitOffsetPagination(t *testing.T) {
	ctx := context.Background()
	conn := openTestConn(t)
	createUsers(t, conn)
	seedUsers(t, conn, "A", "B", "C", "D", "E")

	rows, err := conn.Table("users").OrderBy("id", "DESC").Limit(2).Offset(1).GetContext(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	require.Equal(t, int64(4), rows[0].Value("id"))
	require.Equal(t, int64(3), rows[1].Value("id"))
}

func TestMalformedChainFailsAtExecution(t *testing.T) {
	conn := openTestConn(t)
	createUsers(t, conn)

	_, err := conn.Table("users").Where("id").Get()
	require.Error(t, err)

	err = conn.Table("users").Where("id").Delete()
	require.Error(t, err)

	err = conn.Table("users").Where("id").Update(map[string]any{"name": "X"})
	require.Error(t, err)
}
