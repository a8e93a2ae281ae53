package seeder

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/shopspring/decimal"

	"classicseed/internal/gen"
	"classicseed/internal/schema"
)

// AppendedOrder is the receipt for one appender iteration.
type AppendedOrder struct {
	OrderNumber    int
	CustomerNumber int
	Lines          int
	Status         string
	Total          decimal.Decimal
	CheckNumber    string
	PaymentAmount  decimal.Decimal
}

var appendStatuses = []string{"In Process", "On Hold", "Shipped"}

// AppendOrder synthesizes exactly one new order against an already-populated
// store: a header, 1..4 distinct-product line items, and one payment, all
// committed as their own transaction. Each invocation is independent; a
// failure rolls back only this order.
func (s *Sequencer) AppendOrder(ctx context.Context) (*AppendedOrder, error) {
	g := s.gen

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	customers, err := s.loadCustomerNumbers(ctx, tx)
	if err != nil {
		return nil, err
	}
	products, err := s.loadProductRefs(ctx, tx)
	if err != nil {
		return nil, err
	}
	if len(customers) == 0 || len(products) == 0 {
		return nil, fmt.Errorf("store has no customers or products to reference; run a full seed first")
	}
	number, err := s.nextOrderNumber(ctx, tx)
	if err != nil {
		return nil, err
	}

	orderDate := midnight(s.now())
	customer := gen.Pick(g, customers)
	order := Order{
		Number:         number,
		OrderDate:      orderDate,
		RequiredDate:   orderDate.AddDate(0, 0, g.IntRange(7, 21)),
		Status:         gen.Pick(g, appendStatuses),
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

	sum := &Summary{}
	if err := s.insertOrder(ctx, tx, sum, order); err != nil {
		return nil, err
	}

	payment := Payment{
		CustomerNumber: customer,
		CheckNumber:    fmt.Sprintf("PY%d", g.IntRange(100000, 999999)),
		PaymentDate:    orderDate.AddDate(0, 0, g.IntRange(0, 3)),
		Amount:         g.RatioOf(total, 0.8, 1.1),
	}
	n, err := s.insert(ctx, tx, schema.TablePayments,
		[]string{"customerNumber", "checkNumber", "paymentDate", "amount"},
		[]any{payment.CustomerNumber, payment.CheckNumber, payment.PaymentDate, payment.Amount},
		"customerNumber")
	if err != nil {
		return nil, fmt.Errorf("payment %s (customer %d): %w", payment.CheckNumber, payment.CustomerNumber, err)
	}
	s.count(sum, n)

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	color.Green("  ✅ order %d for customer %d: %d lines, total %s, payment %s (%s)",
		order.Number, customer, len(order.Details), total.StringFixed(2), payment.CheckNumber, payment.Amount.StringFixed(2))

	return &AppendedOrder{
		OrderNumber:    order.Number,
		CustomerNumber: customer,
		Lines:          len(order.Details),
		Status:         order.Status,
		Total:          total,
		CheckNumber:    payment.CheckNumber,
		PaymentAmount:  payment.Amount,
	}, nil
}
