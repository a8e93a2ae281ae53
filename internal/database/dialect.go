// Package database provides per-provider SQL dialects for the classicmodels
// schema: driver selection, identifier rendering, skip-on-conflict insert
// suffixes, and driver error classification.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
)

// ErrorKind is a coarse classification of driver errors. Duplicate keys are
// expected and absorbed by skip-on-conflict inserts; foreign key violations
// abort the enclosing transaction scope.
type ErrorKind int

const (
	ErrOther ErrorKind = iota
	ErrDuplicateKey
	ErrForeignKey
)

type Dialect interface {
	Name() string
	DriverName() string
	Placeholder() squirrel.PlaceholderFormat

	// Table renders the physical, optionally schema-qualified table name.
	Table(name string) string
	// Column maps a logical camelCase column name to its physical form.
	// Identifier casing is a schema convention, not generator behavior.
	Column(name string) string

	// ConflictSuffix is appended to INSERT statements so that rows whose
	// unique key already exists become no-ops instead of errors. keyColumns
	// are the physical unique-key columns, needed by providers that cannot
	// express a bare DO NOTHING.
	ConflictSuffix(keyColumns ...string) string

	// ClassifyError maps a driver error to an ErrorKind.
	ClassifyError(err error) ErrorKind

	// ApplyStatementTimeout bounds query runtime for the session. Used by
	// the report runner only; a zero duration disables the limit.
	ApplyStatementTimeout(ctx context.Context, db *sql.DB, d time.Duration) error
}

// New returns the dialect for a provider name. schemaName qualifies table
// names and may be empty.
func New(provider, schemaName string) (Dialect, error) {
	switch provider {
	case "postgresql", "postgres":
		return &postgresDialect{schema: schemaName}, nil
	case "mysql":
		return &mysqlDialect{}, nil
	case "sqlite", "sqlite3":
		return &sqliteDialect{}, nil
	default:
		return nil, fmt.Errorf("unsupported database provider: %s", provider)
	}
}

// Open connects through database/sql and verifies the connection. The pool is
// capped at one connection: all generator work is sequential by design and
// the session-level statement timeout must survive across statements.
func Open(ctx context.Context, d Dialect, url string) (*sql.DB, error) {
	db, err := sql.Open(d.DriverName(), url)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s connection: %w", d.Name(), err)
	}

	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to %s: %w", d.Name(), err)
	}

	return db, nil
}

// Builder returns a squirrel statement builder using the dialect's
// placeholder format.
func Builder(d Dialect) squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(d.Placeholder())
}
