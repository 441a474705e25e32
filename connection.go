package simydb

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	goversion "github.com/hashicorp/go-version"
	sqlite3 "github.com/mattn/go-sqlite3"

	"github.com/almhdy24/simydb/internal/debug"
)

// Conn is the connection facade. It owns exactly one engine handle: the
// underlying pool is pinned to a single connection so that transaction
// control statements issued through Exec stay on the same handle.
//
// Conn is not safe for concurrent use.
type Conn struct {
	db     *sql.DB
	path   string
	logger *slog.Logger
	debug  bool
	closed bool

	// engineVersion is the detected SQLite library version, nil when the
	// version string could not be parsed.
	engineVersion *goversion.Version

	lastSQL      string
	lastBindings []any
	lastInsertID int64
}

// Open opens (or creates) the SQLite database at path and returns a
// connection facade. Foreign-key enforcement is enabled at construction
// unless disabled via WithoutForeignKeys. Use ":memory:" for an in-memory
// database.
func Open(path string, opts ...Option) (*Conn, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	dsn := path
	if cfg.foreignKeys {
		dsn += "?_foreign_keys=on"
	}

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, newError(KindConnection, fmt.Errorf("failed to open database %s: %w", path, err), "", nil)
	}

	// One engine handle, exclusively owned by this facade.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, newError(KindConnection, fmt.Errorf("failed to open database %s: %w", path, err), "", nil)
	}

	c := &Conn{
		db:     db,
		path:   path,
		logger: cfg.logger,
		debug:  cfg.debug,
	}

	libVersion, _, _ := sqlite3.Version()
	if v, err := goversion.NewVersion(libVersion); err == nil {
		c.engineVersion = v
	}

	if cfg.debug && cfg.logger == nil {
		debug.Init(true)
	}

	return c, nil
}

// Path returns the location string the connection was opened with.
func (c *Conn) Path() string {
	return c.path
}

// EngineVersion returns the detected SQLite library version, or nil when it
// could not be determined.
func (c *Conn) EngineVersion() *goversion.Version {
	return c.engineVersion
}

// Exec prepares sqlText, binds args by position and executes it. The
// prepared statement is released on every exit path. Failures carry the
// statement text and bindings.
func (c *Conn) Exec(ctx context.Context, sqlText string, args ...any) error {
	c.track(sqlText, args)

	start := time.Now()
	stmt, err := c.db.PrepareContext(ctx, sqlText)
	if err != nil {
		c.log("exec", sqlText, args, time.Since(start), err)
		return newError(KindPrepare, err, sqlText, args)
	}
	defer stmt.Close()

	res, err := stmt.ExecContext(ctx, args...)
	c.log("exec", sqlText, args, time.Since(start), err)
	if err != nil {
		return newError(KindExecution, err, sqlText, args)
	}

	if id, err := res.LastInsertId(); err == nil {
		c.lastInsertID = id
	}
	return nil
}

// Query prepares sqlText, binds args, executes it and drains the result
// cursor into memory before returning. Cursor and statement are released on
// every exit path.
func (c *Conn) Query(ctx context.Context, sqlText string, args ...any) ([]Row, error) {
	c.track(sqlText, args)

	start := time.Now()
	stmt, err := c.db.PrepareContext(ctx, sqlText)
	if err != nil {
		c.log("query", sqlText, args, time.Since(start), err)
		return nil, newError(KindPrepare, err, sqlText, args)
	}
	defer stmt.Close()

	rows, err := stmt.QueryContext(ctx, args...)
	if err != nil {
		c.log("query", sqlText, args, time.Since(start), err)
		return nil, newError(KindExecution, err, sqlText, args)
	}
	defer rows.Close()

	out, err := scanRows(rows)
	c.log("query", sqlText, args, time.Since(start), err)
	if err != nil {
		return nil, newError(KindResult, err, sqlText, args)
	}
	return out, nil
}

// LastInsertID returns the row identifier generated by the most recent
// insert executed through this connection.
func (c *Conn) LastInsertID() int64 {
	return c.lastInsertID
}

// LastQuery returns the most recently executed statement and a snapshot of
// its bindings, for diagnostics.
func (c *Conn) LastQuery() (string, []any) {
	return c.lastSQL, c.lastBindings
}

// BeginTransaction starts a transaction. It is a plain BEGIN statement: no
// client-side transaction state is tracked and nesting is not validated.
func (c *Conn) BeginTransaction(ctx context.Context) error {
	return c.Exec(ctx, "BEGIN")
}

// Commit commits the current transaction.
func (c *Conn) Commit(ctx context.Context) error {
	return c.Exec(ctx, "COMMIT")
}

// Rollback rolls back the current transaction.
func (c *Conn) Rollback(ctx context.Context) error {
	return c.Exec(ctx, "ROLLBACK")
}

// Transaction runs fn inside a transaction. The transaction is rolled back
// when fn returns an error or panics, and committed otherwise.
func (c *Conn) Transaction(ctx context.Context, fn func() error) error {
	if err := c.BeginTransaction(ctx); err != nil {
		return err
	}

	defer func() {
		if p := recover(); p != nil {
			_ = c.Rollback(ctx)
			panic(p)
		}
	}()

	if err := fn(); err != nil {
		if rbErr := c.Rollback(ctx); rbErr != nil {
			return fmt.Errorf("transaction error: %v, rollback error: %w", err, rbErr)
		}
		return err
	}

	return c.Commit(ctx)
}

// Table starts a fluent statement builder bound to the named table.
func (c *Conn) Table(name string) *Builder {
	return newBuilder(c, name)
}

// Schema returns the DDL helper for this connection.
func (c *Conn) Schema() *Schema {
	return &Schema{conn: c}
}

// Close releases the engine handle. Closing an already closed connection is
// a no-op.
func (c *Conn) Close() error {
	if c.closed {
		return nil
	}
	c.closed = true
	return c.db.Close()
}

func (c *Conn) track(sqlText string, args []any) {
	c.lastSQL = sqlText
	c.lastBindings = append([]any(nil), args...)
}

func (c *Conn) log(op, sqlText string, args []any, d time.Duration, err error) {
	if !c.debug {
		return
	}
	debug.Statement(c.logger, op, sqlText, args, d, err)
}
