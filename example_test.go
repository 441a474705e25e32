package simydb_test

import (
	"context"
	"fmt"

	"github.com/almhdy24/simydb"
)

func ExampleBuilder_ToSQL() {
	conn, err := simydb.Open(":memory:")
	if err != nil {
		panic(err)
	}
	defer conn.Close()

	sqlText, bindings, _ := conn.Table("users").
		Select("id", "name").
		Where("status", "active").
		OrWhere("role", "admin").
		OrderBy("name", "desc").
		Limit(10).
		ToSQL()

	fmt.Println(sqlText)
	fmt.Println(bindings)
	// Output:
	// SELECT id, name FROM users WHERE status = ? OR role = ? ORDER BY name DESC LIMIT 10
	// [active admin]
}

func ExampleConn_Table() {
	conn, err := simydb.Open(":memory:")
	if err != nil {
		panic(err)
	}
	defer conn.Close()

	schema := conn.Schema()
	ctx := context.Background()
	if err := schema.CreateTable(ctx, "users", []simydb.ColumnSpec{
		{Name: "id", Definition: "INTEGER PRIMARY KEY"},
		{Name: "name", Definition: "TEXT"},
	}); err != nil {
		panic(err)
	}

	if err := conn.Table("users").Insert(map[string]any{"name": "A"}); err != nil {
		panic(err)
	}

	row, err := conn.Table("users").Where("id", 1).First()
	if err != nil {
		panic(err)
	}
	fmt.Println(row.Value("id"), row.Value("name"))
	// Output:
	// 1 A
}
