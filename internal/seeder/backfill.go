package seeder

import (
	"context"
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/shopspring/decimal"

	"classicseed/internal/gen"
	"classicseed/internal/schema"
)

// BackfillOptions bounds the simulated history range, inclusive on both ends.
type BackfillOptions struct {
	StartYear int
	EndYear   int
}

func (o BackfillOptions) validate() error {
	if o.StartYear <= 0 || o.EndYear <= 0 {
		return fmt.Errorf("backfill years must be positive, got %d..%d", o.StartYear, o.EndYear)
	}
	if o.EndYear < o.StartYear {
		return fmt.Errorf("backfill end year %d precedes start year %d", o.EndYear, o.StartYear)
	}
	return nil
}

// Backfill synthesizes multi-year order history against an already-populated
// store. It commits once per simulated year to bound transaction size: a
// failure mid-year rolls back only that year's uncommitted work, and the
// operator reruns from the last committed year.
func (s *Sequencer) Backfill(ctx context.Context, opts BackfillOptions) (*Summary, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}

	customers, err := s.loadCustomerNumbers(ctx, s.db)
	if err != nil {
		return nil, err
	}
	products, err := s.loadProductRefs(ctx, s.db)
	if err != nil {
		return nil, err
	}
	if len(customers) == 0 || len(products) == 0 {
		return nil, fmt.Errorf("store has no customers or products to reference; run a full seed first")
	}
	orderNumber, err := s.nextOrderNumber(ctx, s.db)
	if err != nil {
		return nil, err
	}

	color.Cyan("🕰️  Backfilling order history %d..%d (starting at order %d)...", opts.StartYear, opts.EndYear, orderNumber)

	sum := &Summary{}
	for year := opts.StartYear; year <= opts.EndYear; year++ {
		if err := s.backfillYear(ctx, sum, year, customers, products, &orderNumber); err != nil {
			return nil, fmt.Errorf("year %d: %w", year, err)
		}
		color.Green("  ✅ %d committed", year)
	}

	sum.Truncations = len(s.gen.Truncations())
	color.Green("✅ Backfill completed: %d rows inserted", sum.Inserted)
	return sum, nil
}

func (s *Sequencer) backfillYear(ctx context.Context, sum *Summary, year int, customers []int, products []ProductRef, orderNumber *int) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	used := make(map[string]bool)
	for month := time.January; month <= time.December; month++ {
		for range s.gen.IntRange(5, 20) {
			*orderNumber++
			if err := s.backfillOrder(ctx, tx, sum, *orderNumber, year, month, customers, products, used); err != nil {
				tx.Rollback()
				return err
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// backfillOrder writes one historical order: header, 1..4 distinct-product
// lines, and a payment covering most of the order total. Historical orders
// are all Shipped. Day stays within 1..28 so every month is valid.
func (s *Sequencer) backfillOrder(ctx context.Context, tx execer, sum *Summary, number, year int, month time.Month, customers []int, products []ProductRef, used map[string]bool) error {
	g := s.gen
	orderDate := time.Date(year, month, g.IntRange(1, 28), 0, 0, 0, 0, time.UTC)
	customer := gen.Pick(g, customers)

	order := Order{
		Number:         number,
		OrderDate:      orderDate,
		RequiredDate:   orderDate.AddDate(0, 0, g.IntRange(7, 21)),
		Status:         "Shipped",
		CustomerNumber: customer,
	}

	total := decimal.Zero
	for i, idx := range g.SampleIndexes(len(products), g.IntRange(1, 4)) {
		p := products[idx]
		qty := g.IntRange(10, 50)
		price := g.RatioOf(p.ListPrice, 0.7, 1.0)
		total = total.Add(price.Mul(decimal.NewFromInt(int64(qty))))
		order.Details = append(order.Details, OrderDetail{
			OrderNumber:     number,
			ProductCode:     p.Code,
			QuantityOrdered: qty,
			PriceEach:       price,
			OrderLineNumber: i + 1,
		})
	}

	if err := s.insertOrder(ctx, tx, sum, order); err != nil {
		return err
	}

	payment := Payment{
		CustomerNumber: customer,
		CheckNumber:    checkNumber(g, "BKF", used),
		PaymentDate:    orderDate,
		Amount:         g.RatioOf(total, 0.9, 1.0),
	}
	n, err := s.insert(ctx, tx, schema.TablePayments,
		[]string{"customerNumber", "checkNumber", "paymentDate", "amount"},
		[]any{payment.CustomerNumber, payment.CheckNumber, payment.PaymentDate, payment.Amount},
		"customerNumber")
	if err != nil {
		return fmt.Errorf("payment %s (customer %d): %w", payment.CheckNumber, payment.CustomerNumber, err)
	}
	s.count(sum, n)

	return nil
}
