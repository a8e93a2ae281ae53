package database

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/mattn/go-sqlite3"
)

type sqliteDialect struct{}

func (s *sqliteDialect) Name() string       { return "sqlite" }
func (s *sqliteDialect) DriverName() string { return "sqlite3" }

func (s *sqliteDialect) Placeholder() squirrel.PlaceholderFormat {
	return squirrel.Question
}

func (s *sqliteDialect) Table(name string) string { return name }

func (s *sqliteDialect) Column(name string) string {
	return strings.ToLower(name)
}

func (s *sqliteDialect) ConflictSuffix(_ ...string) string {
	return "ON CONFLICT DO NOTHING"
}

func (s *sqliteDialect) ClassifyError(err error) ErrorKind {
	var sqErr sqlite3.Error
	if !errors.As(err, &sqErr) {
		return ErrOther
	}
	switch sqErr.ExtendedCode {
	case sqlite3.ErrConstraintUnique, sqlite3.ErrConstraintPrimaryKey:
		return ErrDuplicateKey
	case sqlite3.ErrConstraintForeignKey:
		return ErrForeignKey
	}
	return ErrOther
}

// SQLite has no statement timeout; queries run in-process.
func (s *sqliteDialect) ApplyStatementTimeout(_ context.Context, _ *sql.DB, _ time.Duration) error {
	return nil
}
