package report

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"classicseed/internal/database"
)

var matchAnySQL = sqlmock.QueryMatcherFunc(func(expectedSQL, actualSQL string) error {
	return nil
})

func newMockRunner(t *testing.T, opts Options) (*Runner, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(matchAnySQL))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	dialect, err := database.New("postgresql", "classicmodels")
	require.NoError(t, err)

	return NewRunner(db, dialect, opts), mock
}

func twoQueryCatalog() *Catalog {
	return &Catalog{Queries: []Query{
		{Name: "revenue", Title: "Revenue", SQL: "SELECT country, revenue FROM x"},
		{Name: "counts", Title: "Counts", SQL: "SELECT status, n FROM y"},
	}}
}

func TestRunAllContinuesPastFailures(t *testing.T) {
	r, mock := newMockRunner(t, Options{})

	mock.ExpectQuery("SELECT").WillReturnError(fmt.Errorf("relation does not exist"))
	mock.ExpectQuery("SELECT").WillReturnRows(
		sqlmock.NewRows([]string{"status", "n"}).AddRow("Shipped", 12))

	err := r.RunAll(context.Background(), twoQueryCatalog())
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRunAllAppliesTimeout(t *testing.T) {
	r, mock := newMockRunner(t, Options{Timeout: 30 * time.Second})

	mock.ExpectExec("SET statement_timeout").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT").WillReturnRows(sqlmock.NewRows([]string{"country", "revenue"}))
	mock.ExpectQuery("SELECT").WillReturnRows(sqlmock.NewRows([]string{"status", "n"}))

	err := r.RunAll(context.Background(), twoQueryCatalog())
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRunAllTimeoutFailureAborts(t *testing.T) {
	r, mock := newMockRunner(t, Options{Timeout: 30 * time.Second})

	mock.ExpectExec("SET statement_timeout").WillReturnError(fmt.Errorf("permission denied"))

	err := r.RunAll(context.Background(), twoQueryCatalog())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "statement timeout")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRunAllWritesCSV(t *testing.T) {
	dir := t.TempDir()
	r, mock := newMockRunner(t, Options{SaveCSV: true, CSVDir: dir})

	catalog := &Catalog{Queries: []Query{
		{Name: "revenue", Title: "Revenue", SQL: "SELECT country, revenue, note FROM x"},
	}}

	mock.ExpectQuery("SELECT").WillReturnRows(
		sqlmock.NewRows([]string{"country", "revenue", "note"}).
			AddRow("Norway", []byte("1234.50"), nil).
			AddRow("France", []byte("980.00"), "partial"))

	err := r.RunAll(context.Background(), catalog)
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())

	f, err := os.Open(filepath.Join(dir, "revenue.csv"))
	require.NoError(t, err)
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, []string{"country", "revenue", "note"}, records[0])
	assert.Equal(t, []string{"Norway", "1234.50", ""}, records[1])
	assert.Equal(t, []string{"France", "980.00", "partial"}, records[2])
}

func TestStringify(t *testing.T) {
	assert.Equal(t, "", stringify(nil))
	assert.Equal(t, "1234.50", stringify([]byte("1234.50")))
	assert.Equal(t, "hello", stringify("hello"))
	assert.Equal(t, "42", stringify(int64(42)))

	date := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "2025-06-15", stringify(date))

	stamp := time.Date(2025, 6, 15, 14, 30, 5, 0, time.UTC)
	assert.Equal(t, "2025-06-15 14:30:05", stringify(stamp))
}
