package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/go-sql-driver/mysql"
)

// MySQL server error numbers for integrity violations.
const (
	myDuplicateEntry   = 1062
	myNoReferencedRow  = 1452
	myRowIsReferenced  = 1451
	myNoReferencedRow2 = 1216
)

type mysqlDialect struct{}

func (m *mysqlDialect) Name() string       { return "mysql" }
func (m *mysqlDialect) DriverName() string { return "mysql" }

func (m *mysqlDialect) Placeholder() squirrel.PlaceholderFormat {
	return squirrel.Question
}

// Table names are unqualified: the DSN selects the database.
func (m *mysqlDialect) Table(name string) string { return name }

// The classicmodels MySQL sample keeps columns in camelCase; lookups are
// case-insensitive either way.
func (m *mysqlDialect) Column(name string) string { return name }

// MySQL has no DO NOTHING clause; assigning a key column to itself makes a
// duplicate insert a no-op.
func (m *mysqlDialect) ConflictSuffix(keyColumns ...string) string {
	if len(keyColumns) == 0 {
		return ""
	}
	return fmt.Sprintf("ON DUPLICATE KEY UPDATE %s = %s", keyColumns[0], keyColumns[0])
}

func (m *mysqlDialect) ClassifyError(err error) ErrorKind {
	var myErr *mysql.MySQLError
	if !errors.As(err, &myErr) {
		return ErrOther
	}
	switch myErr.Number {
	case myDuplicateEntry:
		return ErrDuplicateKey
	case myNoReferencedRow, myRowIsReferenced, myNoReferencedRow2:
		return ErrForeignKey
	}
	return ErrOther
}

func (m *mysqlDialect) ApplyStatementTimeout(ctx context.Context, db *sql.DB, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	_, err := db.ExecContext(ctx, fmt.Sprintf("SET SESSION MAX_EXECUTION_TIME = %d", d.Milliseconds()))
	return err
}
