package report

import (
	"context"
	"database/sql"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fatih/color"

	"classicseed/internal/database"
)

type Options struct {
	SaveCSV bool
	CSVDir  string
	// Timeout bounds each query via the dialect's session statement timeout;
	// zero disables the limit.
	Timeout time.Duration
}

type Runner struct {
	db      *sql.DB
	dialect database.Dialect
	opts    Options
}

func NewRunner(db *sql.DB, d database.Dialect, opts Options) *Runner {
	return &Runner{db: db, dialect: d, opts: opts}
}

// RunAll executes every catalog query sequentially. A failing query is
// reported and skipped; the remaining catalog continues to run.
func (r *Runner) RunAll(ctx context.Context, catalog *Catalog) error {
	if r.opts.Timeout > 0 {
		if err := r.dialect.ApplyStatementTimeout(ctx, r.db, r.opts.Timeout); err != nil {
			return fmt.Errorf("failed to set statement timeout: %w", err)
		}
	}

	failed := 0
	for _, q := range catalog.Queries {
		if err := r.runOne(ctx, q); err != nil {
			failed++
			color.Red("❌ query %s failed: %v", q.Name, err)
		}
	}

	if failed > 0 {
		color.Yellow("⚠️  %d of %d queries failed", failed, len(catalog.Queries))
	} else {
		color.Green("✅ All %d queries completed", len(catalog.Queries))
	}
	return nil
}

func (r *Runner) runOne(ctx context.Context, q Query) error {
	color.Cyan("\nRunning [%s] ...", q.Name)
	start := time.Now()

	rows, err := r.db.QueryContext(ctx, q.SQL)
	if err != nil {
		return err
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return err
	}

	var table [][]string
	values := make([]any, len(columns))
	scan := make([]any, len(columns))
	for i := range values {
		scan[i] = &values[i]
	}
	for rows.Next() {
		if err := rows.Scan(scan...); err != nil {
			return err
		}
		row := make([]string, len(columns))
		for i, v := range values {
			row[i] = stringify(v)
		}
		table = append(table, row)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	fmt.Printf("Query finished in %.3fs — %d rows\n", time.Since(start).Seconds(), len(table))
	printTable(q.Title, columns, table)

	if r.opts.SaveCSV {
		path, err := writeCSV(r.opts.CSVDir, q.Name, columns, table)
		if err != nil {
			return err
		}
		color.Green("Saved CSV -> %s", path)
	}
	return nil
}

// stringify renders a scanned value for printing and CSV export: decimals as
// decimal strings, NULL as the empty string, dates without a time component.
func stringify(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case []byte:
		return string(val)
	case time.Time:
		if val.Hour() == 0 && val.Minute() == 0 && val.Second() == 0 {
			return val.Format("2006-01-02")
		}
		return val.Format("2006-01-02 15:04:05")
	case string:
		return val
	default:
		return fmt.Sprintf("%v", val)
	}
}

func printTable(title string, columns []string, rows [][]string) {
	fmt.Println(strings.Repeat("=", 80))
	fmt.Println(title)
	fmt.Println(strings.Repeat("-", 80))
	if len(rows) == 0 {
		fmt.Println("(no rows)")
		return
	}

	widths := make([]int, len(columns))
	for i, c := range columns {
		widths[i] = len(c)
	}
	for _, row := range rows {
		for i, cell := range row {
			if len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	header := make([]string, len(columns))
	for i, c := range columns {
		header[i] = fmt.Sprintf("%-*s", widths[i], c)
	}
	fmt.Println(strings.Join(header, " | "))

	total := 0
	for _, w := range widths {
		total += w
	}
	fmt.Println(strings.Repeat("-", total+3*(len(widths)-1)))

	for _, row := range rows {
		cells := make([]string, len(row))
		for i, cell := range row {
			cells[i] = fmt.Sprintf("%-*s", widths[i], cell)
		}
		fmt.Println(strings.Join(cells, " | "))
	}
}

// writeCSV writes one file per query: a header row of column names in result
// order, then one record per result row.
func writeCSV(dir, name string, columns []string, rows [][]string) (string, error) {
	if dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return "", fmt.Errorf("failed to create CSV directory: %w", err)
		}
	}
	path := filepath.Join(dir, name+".csv")

	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create CSV file: %w", err)
	}
	defer file.Close()

	w := csv.NewWriter(file)
	if err := w.Write(columns); err != nil {
		return "", err
	}
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			return "", err
		}
	}
	w.Flush()
	return path, w.Error()
}
