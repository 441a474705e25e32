// Package simydb is a thin fluent layer over an embedded SQLite database.
//
// It wraps a single SQLite handle (through github.com/mattn/go-sqlite3) with
// three small pieces:
//
//   - Conn, a connection facade that executes parameterized statements and
//     reports failures as structured *Error values carrying the offending SQL
//     and its bindings.
//   - Builder, a fluent statement builder obtained from Conn.Table, which
//     accumulates projection, filters, ordering and pagination, then renders
//     SQL text plus an ordered binding list for a terminal operation.
//   - Schema, a DDL helper covering table and column management, including a
//     transactional create-copy-swap sequence for DROP COLUMN, which SQLite
//     does not support directly.
//
// A typical round trip:
//
//	conn, err := simydb.Open("app.db")
//	if err != nil {
//		return err
//	}
//	defer conn.Close()
//
//	rows, err := conn.Table("users").
//		Where("status", "active").
//		OrderBy("name").
//		Limit(10).
//		Get(ctx)
//
// Values are always passed as bound parameters. Table and column identifiers,
// by contrast, are interpolated into the SQL text verbatim: they must come
// from trusted code, never from untrusted input.
//
// Conn and Builder are not safe for concurrent use. A Builder belongs to the
// call chain that created it; Conn wraps exactly one engine handle and
// provides no ordering guarantees beyond what SQLite itself gives.
package simydb
