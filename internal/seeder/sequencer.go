// Package seeder generates a referentially consistent synthetic dataset for
// the classicmodels schema and persists it transactionally. Stages run in a
// fixed dependency order so no record ever references an entity that does not
// yet exist.
package seeder

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/fatih/color"

	"classicseed/internal/database"
	"classicseed/internal/gen"
	"classicseed/internal/schema"
)

type Sequencer struct {
	db      *sql.DB
	dialect database.Dialect
	gen     *gen.Generator
	counts  Counts
	now     func() time.Time
}

func New(db *sql.DB, d database.Dialect, g *gen.Generator, counts Counts) *Sequencer {
	g.OnTruncation(func(ev gen.Truncation) {
		color.Yellow("  ✂️  %s: %d -> %d chars (%.40q)", ev.Column, ev.Length, ev.Limit, ev.Value)
	})
	return &Sequencer{
		db:      db,
		dialect: d,
		gen:     g,
		counts:  counts,
		now:     time.Now,
	}
}

// execer is satisfied by *sql.Tx and *sql.DB.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

type queryer interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Run executes the seven generation stages inside one scoped transaction.
// The whole batch commits at the end or rolls back entirely on any stage
// failure; only individual payment inserts are absorbed.
func (s *Sequencer) Run(ctx context.Context) (*Summary, error) {
	if err := s.counts.Validate(); err != nil {
		return nil, err
	}

	color.Cyan("🌱 Seeding classicmodels (%d product lines, %d offices, %d employees, %d products, %d customers, %d orders)...",
		s.counts.ProductLines, s.counts.Offices, s.counts.Employees, s.counts.Products, s.counts.Customers, s.counts.Orders)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	color.Cyan("🔒 Transaction started")

	sum := &Summary{}
	if err := s.runStages(ctx, tx, sum); err != nil {
		color.Yellow("🔄 Rolling back transaction...")
		if rbErr := tx.Rollback(); rbErr != nil {
			return nil, fmt.Errorf("seed failed and rollback failed: %v (original: %w)", rbErr, err)
		}
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	color.Cyan("🔓 Transaction committed")

	sum.Truncations = len(s.gen.Truncations())
	color.Green("✅ Seeding completed: %d rows inserted, %d skipped as duplicates, %d truncations", sum.Inserted, sum.Skipped, sum.Truncations)
	return sum, nil
}

func (s *Sequencer) runStages(ctx context.Context, tx *sql.Tx, sum *Summary) error {
	now := s.now()

	lines := GenerateProductLines(s.counts.ProductLines)
	if err := s.insertProductLines(ctx, tx, sum, lines); err != nil {
		return err
	}

	offices := GenerateOffices(s.gen, s.counts.Offices)
	if err := s.insertOffices(ctx, tx, sum, offices); err != nil {
		return err
	}

	officeCodes := make([]string, len(offices))
	for i, o := range offices {
		officeCodes[i] = o.Code
	}
	employees := GenerateEmployees(s.gen, s.counts.Employees, officeCodes)
	if err := s.insertEmployees(ctx, tx, sum, employees); err != nil {
		return err
	}

	lineNames := make([]string, len(lines))
	for i, l := range lines {
		lineNames[i] = l.Name
	}
	products := GenerateProducts(s.gen, s.counts.Products, lineNames)
	if err := s.insertProducts(ctx, tx, sum, products); err != nil {
		return err
	}

	employeeNumbers := make([]int, len(employees))
	for i, e := range employees {
		employeeNumbers[i] = e.Number
	}
	customers := GenerateCustomers(s.gen, s.counts.Customers, employeeNumbers)
	if err := s.insertCustomers(ctx, tx, sum, customers); err != nil {
		return err
	}

	customerNumbers := make([]int, len(customers))
	for i, c := range customers {
		customerNumbers[i] = c.Number
	}
	refs := make([]ProductRef, len(products))
	for i, p := range products {
		refs[i] = p.Ref()
	}
	orders := GenerateOrders(s.gen, s.counts.Orders, customerNumbers, refs, now)
	if err := s.insertOrders(ctx, tx, sum, orders); err != nil {
		return err
	}

	payments := GeneratePayments(s.gen, customerNumbers, now)
	s.insertPayments(ctx, tx, sum, payments)

	return nil
}

// insert builds and executes a single-row INSERT with the dialect's
// skip-on-conflict suffix. Returns the number of rows actually written (0
// when the unique key already existed).
func (s *Sequencer) insert(ctx context.Context, ex execer, table string, cols []string, vals []any, keyCols ...string) (int64, error) {
	d := s.dialect

	phys := make([]string, len(cols))
	for i, c := range cols {
		phys[i] = d.Column(c)
	}
	physKeys := make([]string, len(keyCols))
	for i, c := range keyCols {
		physKeys[i] = d.Column(c)
	}

	qb := database.Builder(d).
		Insert(d.Table(table)).
		Columns(phys...).
		Values(vals...)
	if suffix := d.ConflictSuffix(physKeys...); suffix != "" {
		qb = qb.Suffix(suffix)
	}

	query, args, err := qb.ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build insert for %s: %w", table, err)
	}

	res, err := ex.ExecContext(ctx, query, args...)
	if err != nil {
		switch d.ClassifyError(err) {
		case database.ErrDuplicateKey:
			return 0, fmt.Errorf("duplicate key: %w", err)
		case database.ErrForeignKey:
			return 0, fmt.Errorf("foreign key violation: %w", err)
		}
		return 0, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read rows affected for %s: %w", table, err)
	}
	return n, nil
}

func (s *Sequencer) count(sum *Summary, n int64) {
	if n > 0 {
		sum.Inserted += n
	} else {
		sum.Skipped++
	}
}

func (s *Sequencer) insertProductLines(ctx context.Context, ex execer, sum *Summary, lines []ProductLine) error {
	color.Cyan("  📝 productlines (%d)...", len(lines))
	for _, pl := range lines {
		n, err := s.insert(ctx, ex, schema.TableProductLines,
			[]string{"productLine", "textDescription"},
			[]any{pl.Name, pl.Description},
			"productLine")
		if err != nil {
			return fmt.Errorf("stage productlines: product line %q: %w", pl.Name, err)
		}
		s.count(sum, n)
	}
	return nil
}

func (s *Sequencer) insertOffices(ctx context.Context, ex execer, sum *Summary, offices []Office) error {
	color.Cyan("  📝 offices (%d)...", len(offices))
	for _, o := range offices {
		n, err := s.insert(ctx, ex, schema.TableOffices,
			[]string{"officeCode", "city", "phone", "addressLine1", "country", "postalCode", "territory"},
			[]any{o.Code, o.City, o.Phone, o.AddressLine1, o.Country, o.PostalCode, o.Territory},
			"officeCode")
		if err != nil {
			return fmt.Errorf("stage offices: office %s: %w", o.Code, err)
		}
		s.count(sum, n)
	}
	return nil
}

func (s *Sequencer) insertEmployees(ctx context.Context, ex execer, sum *Summary, employees []Employee) error {
	color.Cyan("  📝 employees (%d)...", len(employees))
	for _, e := range employees {
		n, err := s.insert(ctx, ex, schema.TableEmployees,
			[]string{"employeeNumber", "lastName", "firstName", "extension", "email", "officeCode", "reportsTo", "jobTitle"},
			[]any{e.Number, e.LastName, e.FirstName, e.Extension, e.Email, e.OfficeCode, e.ReportsTo, e.JobTitle},
			"employeeNumber")
		if err != nil {
			return fmt.Errorf("stage employees: employee %d: %w", e.Number, err)
		}
		s.count(sum, n)
	}
	return nil
}

func (s *Sequencer) insertProducts(ctx context.Context, ex execer, sum *Summary, products []Product) error {
	color.Cyan("  📝 products (%d)...", len(products))
	for _, p := range products {
		n, err := s.insert(ctx, ex, schema.TableProducts,
			[]string{"productCode", "productName", "productLine", "productScale", "productVendor", "productDescription", "quantityInStock", "buyPrice", "MSRP"},
			[]any{p.Code, p.Name, p.Line, p.Scale, p.Vendor, p.Description, p.QuantityInStock, p.BuyPrice, p.ListPrice},
			"productCode")
		if err != nil {
			return fmt.Errorf("stage products: product %s: %w", p.Code, err)
		}
		s.count(sum, n)
	}
	return nil
}

func (s *Sequencer) insertCustomers(ctx context.Context, ex execer, sum *Summary, customers []Customer) error {
	color.Cyan("  📝 customers (%d)...", len(customers))
	for _, c := range customers {
		n, err := s.insert(ctx, ex, schema.TableCustomers,
			[]string{"customerNumber", "customerName", "contactLastName", "contactFirstName", "phone", "addressLine1", "city", "country", "salesRepEmployeeNumber", "creditLimit"},
			[]any{c.Number, c.Name, c.ContactLastName, c.ContactFirstName, c.Phone, c.AddressLine1, c.City, c.Country, c.SalesRepEmployeeNumber, c.CreditLimit},
			"customerNumber")
		if err != nil {
			return fmt.Errorf("stage customers: customer %d: %w", c.Number, err)
		}
		s.count(sum, n)
	}
	return nil
}

func (s *Sequencer) insertOrders(ctx context.Context, ex execer, sum *Summary, orders []Order) error {
	color.Cyan("  📝 orders (%d)...", len(orders))
	for _, o := range orders {
		if err := s.insertOrder(ctx, ex, sum, o); err != nil {
			return err
		}
	}
	return nil
}

// insertOrder writes one order header and its line items.
func (s *Sequencer) insertOrder(ctx context.Context, ex execer, sum *Summary, o Order) error {
	n, err := s.insert(ctx, ex, schema.TableOrders,
		[]string{"orderNumber", "orderDate", "requiredDate", "shippedDate", "status", "comments", "customerNumber"},
		[]any{o.Number, o.OrderDate, o.RequiredDate, o.ShippedDate, o.Status, nil, o.CustomerNumber},
		"orderNumber")
	if err != nil {
		return fmt.Errorf("stage orders: order %d (customer %d): %w", o.Number, o.CustomerNumber, err)
	}
	s.count(sum, n)

	for _, d := range o.Details {
		n, err := s.insert(ctx, ex, schema.TableOrderDetails,
			[]string{"orderNumber", "productCode", "quantityOrdered", "priceEach", "orderLineNumber"},
			[]any{d.OrderNumber, d.ProductCode, d.QuantityOrdered, d.PriceEach, d.OrderLineNumber},
			"orderNumber")
		if err != nil {
			return fmt.Errorf("stage orders: order %d line %d (product %s): %w", d.OrderNumber, d.OrderLineNumber, d.ProductCode, err)
		}
		s.count(sum, n)
	}
	return nil
}

// insertPayments absorbs individual failures: payments are the least
// load-bearing stage for referential integrity, so one bad row is logged and
// generation continues. A savepoint keeps the enclosing transaction usable
// after a failed statement.
func (s *Sequencer) insertPayments(ctx context.Context, tx *sql.Tx, sum *Summary, payments []Payment) {
	color.Cyan("  📝 payments (%d)...", len(payments))
	for _, p := range payments {
		if err := s.insertPayment(ctx, tx, sum, p); err != nil {
			sum.PaymentsFailed++
			color.Yellow("  ⚠️  payment %s (customer %d) failed, continuing: %v", p.CheckNumber, p.CustomerNumber, err)
		}
	}
}

func (s *Sequencer) insertPayment(ctx context.Context, tx *sql.Tx, sum *Summary, p Payment) error {
	if _, err := tx.ExecContext(ctx, "SAVEPOINT sp_payment"); err != nil {
		return err
	}
	n, err := s.insert(ctx, tx, schema.TablePayments,
		[]string{"customerNumber", "checkNumber", "paymentDate", "amount"},
		[]any{p.CustomerNumber, p.CheckNumber, p.PaymentDate, p.Amount},
		"customerNumber")
	if err != nil {
		tx.ExecContext(ctx, "ROLLBACK TO SAVEPOINT sp_payment")
		return err
	}
	if _, err := tx.ExecContext(ctx, "RELEASE SAVEPOINT sp_payment"); err != nil {
		return err
	}
	s.count(sum, n)
	return nil
}

// loadCustomerNumbers reads the customer numbers already present in the
// store; the backfill and appender variants reference only existing rows.
func (s *Sequencer) loadCustomerNumbers(ctx context.Context, q queryer) ([]int, error) {
	d := s.dialect
	query, _, err := database.Builder(d).
		Select(d.Column("customerNumber")).
		From(d.Table(schema.TableCustomers)).
		ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := q.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to load customers: %w", err)
	}
	defer rows.Close()

	var numbers []int
	for rows.Next() {
		var n int
		if err := rows.Scan(&n); err != nil {
			return nil, err
		}
		numbers = append(numbers, n)
	}
	return numbers, rows.Err()
}

func (s *Sequencer) loadProductRefs(ctx context.Context, q queryer) ([]ProductRef, error) {
	d := s.dialect
	query, _, err := database.Builder(d).
		Select(d.Column("productCode"), d.Column("MSRP")).
		From(d.Table(schema.TableProducts)).
		ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := q.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to load products: %w", err)
	}
	defer rows.Close()

	var refs []ProductRef
	for rows.Next() {
		var ref ProductRef
		if err := rows.Scan(&ref.Code, &ref.ListPrice); err != nil {
			return nil, err
		}
		refs = append(refs, ref)
	}
	return refs, rows.Err()
}

// nextOrderNumber returns MAX(orderNumber)+1, or the generator's base when
// the store holds no orders yet.
func (s *Sequencer) nextOrderNumber(ctx context.Context, q queryer) (int, error) {
	d := s.dialect
	query, _, err := database.Builder(d).
		Select("MAX(" + d.Column("orderNumber") + ")").
		From(d.Table(schema.TableOrders)).
		ToSql()
	if err != nil {
		return 0, err
	}
	var max sql.NullInt64
	if err := q.QueryRowContext(ctx, query).Scan(&max); err != nil {
		return 0, fmt.Errorf("failed to load max order number: %w", err)
	}
	if !max.Valid {
		return orderBase + 1, nil
	}
	return int(max.Int64) + 1, nil
}
