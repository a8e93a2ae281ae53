package seeder

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"classicseed/internal/gen"
)

func testNow() time.Time {
	return time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
}

func TestGenerateProductLines(t *testing.T) {
	lines := GenerateProductLines(3)
	require.Len(t, lines, 3)
	assert.Equal(t, "Motorcycles", lines[0].Name)
	assert.Equal(t, "Classic Cars", lines[1].Name)

	// The catalog caps the count.
	assert.Len(t, GenerateProductLines(10), 6)
}

func TestGenerateOffices(t *testing.T) {
	g := gen.New(42)
	offices := GenerateOffices(g, 6)
	require.Len(t, offices, 6)

	for i, o := range offices {
		assert.Equal(t, []string{"101", "102", "103", "104", "105", "106"}[i], o.Code)
		assert.NotEmpty(t, o.City)
		assert.NotEmpty(t, o.Country)
		assert.Len(t, o.Territory, 3)
		assert.Equal(t, byte('T'), o.Territory[0])
	}
}

func TestGenerateEmployeesHierarchy(t *testing.T) {
	g := gen.New(42)
	officeCodes := []string{"101", "102"}
	employees := GenerateEmployees(g, 30, officeCodes)
	require.Len(t, employees, 30)

	managers := map[int]bool{1001: true, 1002: true, 1003: true, 1004: true, 1005: true}
	for i, e := range employees {
		assert.Equal(t, 1001+i, e.Number)
		assert.Contains(t, officeCodes, e.OfficeCode)
		if i < 5 {
			assert.Nil(t, e.ReportsTo, "employee %d should be management", e.Number)
		} else {
			require.NotNil(t, e.ReportsTo, "employee %d should have a manager", e.Number)
			assert.True(t, managers[*e.ReportsTo], "employee %d reports to non-manager %d", e.Number, *e.ReportsTo)
		}
	}
}

func TestGenerateProducts(t *testing.T) {
	g := gen.New(42)
	lines := []string{"Motorcycles", "Classic Cars"}
	products := GenerateProducts(g, 120, lines)
	require.Len(t, products, 120)

	assert.Equal(t, "P2001", products[0].Code)
	assert.Equal(t, "P2120", products[119].Code)

	for _, p := range products {
		assert.Contains(t, lines, p.Line)
		assert.True(t, p.ListPrice.GreaterThan(p.BuyPrice), "product %s list %s not above buy %s", p.Code, p.ListPrice, p.BuyPrice)
		assert.True(t, p.BuyPrice.GreaterThanOrEqual(decimal.NewFromInt(10)))
		assert.GreaterOrEqual(t, p.QuantityInStock, 0)
		assert.LessOrEqual(t, p.QuantityInStock, 1000)
	}
}

func TestGenerateCustomers(t *testing.T) {
	g := gen.New(42)
	employeeNumbers := []int{1001, 1002, 1003}
	customers := GenerateCustomers(g, 150, employeeNumbers)
	require.Len(t, customers, 150)

	withRep := 0
	for i, c := range customers {
		assert.Equal(t, 3001+i, c.Number)
		if c.SalesRepEmployeeNumber != nil {
			withRep++
			assert.Contains(t, employeeNumbers, *c.SalesRepEmployeeNumber)
		}
		assert.True(t, c.CreditLimit.GreaterThanOrEqual(decimal.NewFromInt(1000)))
		assert.True(t, c.CreditLimit.LessThanOrEqual(decimal.NewFromInt(50000)))
	}
	// Some customers have a rep, some do not.
	assert.Greater(t, withRep, 0)
	assert.Less(t, withRep, 150)
}

func TestGenerateOrders(t *testing.T) {
	g := gen.New(42)
	customers := []int{3001, 3002, 3003}
	products := []ProductRef{
		{Code: "P2001", ListPrice: decimal.NewFromInt(100)},
		{Code: "P2002", ListPrice: decimal.NewFromInt(200)},
	}
	now := testNow()

	orders := GenerateOrders(g, 400, customers, products, now)
	require.Len(t, orders, 400)

	statuses := map[string]bool{"Shipped": true, "Resolved": true, "In Process": true, "On Hold": true}
	shipped := 0
	for i, o := range orders {
		assert.Equal(t, 5001+i, o.Number)
		assert.Contains(t, customers, o.CustomerNumber)
		assert.True(t, statuses[o.Status], "unexpected status %q", o.Status)

		assert.False(t, o.OrderDate.Before(now.AddDate(-2, 0, 0)))
		assert.False(t, o.OrderDate.After(now))
		assert.True(t, o.RequiredDate.After(o.OrderDate))

		if o.ShippedDate != nil {
			shipped++
			assert.True(t, o.ShippedDate.After(o.OrderDate))
		}

		require.GreaterOrEqual(t, len(o.Details), 1)
		require.LessOrEqual(t, len(o.Details), 5)
		for j, d := range o.Details {
			assert.Equal(t, o.Number, d.OrderNumber)
			assert.Equal(t, j+1, d.OrderLineNumber)
			assert.GreaterOrEqual(t, d.QuantityOrdered, 1)
			assert.LessOrEqual(t, d.QuantityOrdered, 50)

			var list decimal.Decimal
			for _, p := range products {
				if p.Code == d.ProductCode {
					list = p.ListPrice
				}
			}
			require.False(t, list.IsZero(), "line references unknown product %s", d.ProductCode)
			assert.True(t, d.PriceEach.LessThanOrEqual(list))
			assert.True(t, d.PriceEach.GreaterThanOrEqual(list.Mul(decimal.NewFromFloat(0.7)).Sub(decimal.New(1, -2))))
		}
	}
	// 90% shipping probability should leave both populations non-empty at n=400.
	assert.Greater(t, shipped, 0)
	assert.Less(t, shipped, 400)
}

func TestGeneratePayments(t *testing.T) {
	g := gen.New(42)
	customers := []int{3001, 3002, 3003, 3004, 3005}
	payments := GeneratePayments(g, customers, testNow())

	assert.LessOrEqual(t, len(payments), 3*len(customers))

	perCustomer := map[int]int{}
	checks := map[string]bool{}
	for _, p := range payments {
		assert.Contains(t, customers, p.CustomerNumber)
		perCustomer[p.CustomerNumber]++
		assert.LessOrEqual(t, perCustomer[p.CustomerNumber], 3)

		require.False(t, checks[p.CheckNumber], "duplicate check number %s", p.CheckNumber)
		checks[p.CheckNumber] = true
		assert.Regexp(t, `^CHK\d{6}$`, p.CheckNumber)

		assert.True(t, p.Amount.GreaterThanOrEqual(decimal.NewFromInt(50)))
		assert.True(t, p.Amount.LessThanOrEqual(decimal.NewFromInt(20000)))
	}
}

func TestGenerationIsReproducible(t *testing.T) {
	now := testNow()
	a := GenerateOrders(gen.New(7), 20, []int{3001}, []ProductRef{{Code: "P2001", ListPrice: decimal.NewFromInt(50)}}, now)
	b := GenerateOrders(gen.New(7), 20, []int{3001}, []ProductRef{{Code: "P2001", ListPrice: decimal.NewFromInt(50)}}, now)
	require.Equal(t, len(a), len(b))
	for i := range a {
		assert.Equal(t, a[i].Number, b[i].Number)
		assert.Equal(t, a[i].Status, b[i].Status)
		assert.True(t, a[i].OrderDate.Equal(b[i].OrderDate))
		require.Equal(t, len(a[i].Details), len(b[i].Details))
		for j := range a[i].Details {
			assert.True(t, a[i].Details[j].PriceEach.Equal(b[i].Details[j].PriceEach))
		}
	}
}
