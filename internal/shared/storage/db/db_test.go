package db

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"sync"
	"testing"
	"time"
)

// nopDriver is a minimal database/sql/driver implementation so Connect can
// open and ping without a real Postgres server.
type nopDriver struct{}

func (nopDriver) Open(name string) (driver.Conn, error) { return nopConn{}, nil }

type nopConn struct{}

func (nopConn) Prepare(query string) (driver.Stmt, error) { return nopStmt{}, nil }
func (nopConn) Close() error                              { return nil }
func (nopConn) Begin() (driver.Tx, error)                 { return nopTx{}, nil }
func (nopConn) Ping(ctx context.Context) error            { return nil }

type nopStmt struct{}

func (nopStmt) Close() error                                    { return nil }
func (nopStmt) NumInput() int                                   { return 0 }
func (nopStmt) Exec(args []driver.Value) (driver.Result, error) { return nopResult{}, nil }
func (nopStmt) Query(args []driver.Value) (driver.Rows, error)  { return nopRows{}, nil }

type nopTx struct{}

func (nopTx) Commit() error   { return nil }
func (nopTx) Rollback() error { return nil }

type nopResult struct{}

func (nopResult) LastInsertId() (int64, error) { return 0, nil }
func (nopResult) RowsAffected() (int64, error) { return 0, nil }

type nopRows struct{}

func (nopRows) Columns() []string              { return nil }
func (nopRows) Close() error                   { return nil }
func (nopRows) Next(dest []driver.Value) error { return errors.New("no rows") }

var registerNopDriver sync.Once

func withTestDriver(t *testing.T) {
	t.Helper()
	registerNopDriver.Do(func() {
		sql.Register("dbtest", nopDriver{})
	})
	original := openDB
	openDB = func(driverName, dataSourceName string) (*sql.DB, error) {
		return sql.Open("dbtest", dataSourceName)
	}
	t.Cleanup(func() { openDB = original })
}

func TestConnectAppliesServerOptions(t *testing.T) {
	withTestDriver(t)

	database, err := Connect(context.Background(), "postgres://localhost/reviews", DefaultServerOptions())
	if err != nil {
		t.Fatalf("Connect: %v", err)
	}
	defer database.Close()

	if got := database.Stats().MaxOpenConnections; got != 10 {
		t.Fatalf("expected max open conns 10, got %d", got)
	}
}

func TestConnectAppliesMigrateOptions(t *testing.T) {
	withTestDriver(t)

	database, err := Connect(context.Background(), "postgres://localhost/reviews", DefaultMigrateOptions())
	if err != nil {
		t.Fatalf("Connect: %v", err)
	}
	defer database.Close()

	if got := database.Stats().MaxOpenConnections; got != 1 {
		t.Fatalf("expected max open conns 1, got %d", got)
	}
}

func TestConnectRejectsEmptyURL(t *testing.T) {
	if _, err := Connect(context.Background(), "  ", DefaultServerOptions()); err == nil {
		t.Fatal("expected error for empty DATABASE_URL")
	}
}

func TestConnectPropagatesOpenError(t *testing.T) {
	original := openDB
	openDB = func(driverName, dataSourceName string) (*sql.DB, error) {
		return nil, errors.New("bad dsn")
	}
	t.Cleanup(func() { openDB = original })

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if _, err := Connect(ctx, "postgres://localhost/reviews", DefaultServerOptions()); err == nil {
		t.Fatal("expected open error to propagate")
	}
}
