package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"
)

// SQLSTATE class 23 integrity constraint codes.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

type postgresDialect struct {
	schema string
}

func (p *postgresDialect) Name() string       { return "postgresql" }
func (p *postgresDialect) DriverName() string { return "pgx" }

func (p *postgresDialect) Placeholder() squirrel.PlaceholderFormat {
	return squirrel.Dollar
}

func (p *postgresDialect) Table(name string) string {
	if p.schema == "" {
		return name
	}
	return p.schema + "." + name
}

// Column folds to lower case: the classicmodels DDL on PostgreSQL declares
// unquoted identifiers, which the server stores folded.
func (p *postgresDialect) Column(name string) string {
	return strings.ToLower(name)
}

func (p *postgresDialect) ConflictSuffix(_ ...string) string {
	return "ON CONFLICT DO NOTHING"
}

func (p *postgresDialect) ClassifyError(err error) ErrorKind {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return ErrOther
	}
	switch pgErr.Code {
	case pgUniqueViolation:
		return ErrDuplicateKey
	case pgForeignKeyViolation:
		return ErrForeignKey
	}
	return ErrOther
}

func (p *postgresDialect) ApplyStatementTimeout(ctx context.Context, db *sql.DB, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	_, err := db.ExecContext(ctx, fmt.Sprintf("SET statement_timeout = %d", d.Milliseconds()))
	return err
}
