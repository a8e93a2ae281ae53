package seeder

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"classicseed/internal/gen"
)

// The fixed product line catalog; cardinality selects a prefix of it.
var productLineCatalog = []ProductLine{
	{"Motorcycles", "Two-wheeled motor vehicles"},
	{"Classic Cars", "Classic and antique cars"},
	{"Trucks and Buses", "Heavier vehicles"},
	{"Vintage Cars", "Collectible old models"},
	{"Planes", "Model aircraft"},
	{"Ships", "Model ships"},
}

var (
	jobTitles      = []string{"Sales Rep", "Manager", "VP", "Engineer", "Clerk"}
	productVendors = []string{"Min Lin Diecast", "Highway 66", "AutoArt Studio", "ClassicVendor", "VendorCo"}
	productKinds   = []string{"Model", "Replica", "Series", "Edition"}
	productScales  = []string{"1:10", "1:12", "1:18", "1:24"}
	orderStatuses  = []string{"Shipped", "Resolved", "In Process", "On Hold"}
)

func GenerateProductLines(n int) []ProductLine {
	if n > len(productLineCatalog) {
		n = len(productLineCatalog)
	}
	lines := make([]ProductLine, n)
	copy(lines, productLineCatalog[:n])
	return lines
}

func GenerateOffices(g *gen.Generator, n int) []Office {
	offices := make([]Office, 0, n)
	for i := 1; i <= n; i++ {
		offices = append(offices, Office{
			Code:         g.Clip("officeCode", strconv.Itoa(officeBase+i)),
			City:         g.Clip("city", g.City()),
			Phone:        g.Clip("phone", g.Phone()),
			AddressLine1: g.Clip("addressLine1", g.StreetAddress()),
			Country:      g.Clip("country", g.Country()),
			PostalCode:   g.Clip("postalCode", g.PostalCode()),
			Territory:    g.Clip("territory", territory(g)),
		})
	}
	return offices
}

func territory(g *gen.Generator) string {
	return string([]byte{'T', byte('A' + g.IntRange(0, 25)), byte('A' + g.IntRange(0, 25))})
}

// GenerateEmployees assigns every employee to one of the given office codes.
// The first five employees form the management tier; everyone after reports
// to one of them, so reportsTo only ever references a number generated
// earlier in the run.
func GenerateEmployees(g *gen.Generator, n int, officeCodes []string) []Employee {
	employees := make([]Employee, 0, n)
	for i := 1; i <= n; i++ {
		first := g.Clip("firstName", g.FirstName())
		last := g.Clip("lastName", g.LastName())
		e := Employee{
			Number:     employeeBase + i,
			FirstName:  first,
			LastName:   last,
			Extension:  g.Clip("extension", fmt.Sprintf("x%d", g.IntRange(100, 999))),
			Email:      g.Clip("email", fmt.Sprintf("%s.%s@example.com", strings.ToLower(first), strings.ToLower(last))),
			OfficeCode: gen.Pick(g, officeCodes),
			JobTitle:   g.Clip("jobTitle", gen.Pick(g, jobTitles)),
		}
		if i > 5 {
			manager := employeeBase + 1 + g.IntRange(0, min(4, n-1))
			e.ReportsTo = &manager
		}
		employees = append(employees, e)
	}
	return employees
}

func GenerateProducts(g *gen.Generator, n int, lines []string) []Product {
	products := make([]Product, 0, n)
	for i := 1; i <= n; i++ {
		buy := g.Money(10, 500)
		word := g.Word()
		name := strings.ToUpper(word[:1]) + word[1:] + " " + gen.Pick(g, productKinds)
		products = append(products, Product{
			Code:            g.Clip("productCode", fmt.Sprintf("P%d", productBase+i)),
			Name:            g.Clip("productName", name),
			Line:            g.Clip("productLine", gen.Pick(g, lines)),
			Scale:           g.Clip("productScale", gen.Pick(g, productScales)),
			Vendor:          g.Clip("productVendor", gen.Pick(g, productVendors)),
			Description:     g.Sentence(12),
			QuantityInStock: gen.ClampSmallint(g.IntRange(0, 1000)),
			BuyPrice:        buy,
			ListPrice:       g.MarkupPrice(buy),
		})
	}
	return products
}

// GenerateCustomers leaves roughly 5 in employees+5 customers without a sales
// rep; the rest reference one of the given employee numbers.
func GenerateCustomers(g *gen.Generator, n int, employeeNumbers []int) []Customer {
	customers := make([]Customer, 0, n)
	for i := 1; i <= n; i++ {
		c := Customer{
			Number:           customerBase + i,
			Name:             g.Clip("customerName", g.Company()),
			ContactLastName:  g.Clip("contactLastName", g.LastName()),
			ContactFirstName: g.Clip("contactFirstName", g.FirstName()),
			Phone:            g.Clip("phone", g.Phone()),
			AddressLine1:     g.Clip("addressLine1", g.StreetAddress()),
			City:             g.Clip("city", g.City()),
			Country:          g.Clip("country", g.Country()),
			CreditLimit:      g.Money(1000, 50000),
		}
		if pick := g.IntRange(0, len(employeeNumbers)+4); pick < len(employeeNumbers) {
			rep := employeeNumbers[pick]
			c.SalesRepEmployeeNumber = &rep
		}
		customers = append(customers, c)
	}
	return customers
}

// GenerateOrders produces order headers with 1..5 line items each. Line
// numbers are contiguous starting at 1; the unit price stays within 70-100%
// of the product's list price.
func GenerateOrders(g *gen.Generator, n int, customerNumbers []int, products []ProductRef, now time.Time) []Order {
	orders := make([]Order, 0, n)
	for i := 1; i <= n; i++ {
		number := orderBase + i
		orderDate := g.DateBetween(now.AddDate(-2, 0, 0), now)
		o := Order{
			Number:         number,
			OrderDate:      orderDate,
			RequiredDate:   orderDate.AddDate(0, 0, g.IntRange(7, 30)),
			Status:         gen.Pick(g, orderStatuses),
			CustomerNumber: gen.Pick(g, customerNumbers),
		}
		if g.Chance(0.9) {
			shipped := orderDate.AddDate(0, 0, g.IntRange(1, 10))
			o.ShippedDate = &shipped
		}
		lines := g.IntRange(1, 5)
		for lineNo := 1; lineNo <= lines; lineNo++ {
			p := gen.Pick(g, products)
			o.Details = append(o.Details, OrderDetail{
				OrderNumber:     number,
				ProductCode:     p.Code,
				QuantityOrdered: g.IntRange(1, 50),
				PriceEach:       g.RatioOf(p.ListPrice, 0.7, 1.0),
				OrderLineNumber: lineNo,
			})
		}
		orders = append(orders, o)
	}
	return orders
}

// GeneratePayments produces 0..3 payments per customer. Check numbers are
// unique across the run.
func GeneratePayments(g *gen.Generator, customerNumbers []int, now time.Time) []Payment {
	var payments []Payment
	used := make(map[string]bool)
	for _, cust := range customerNumbers {
		for range g.IntRange(0, 3) {
			check := checkNumber(g, "CHK", used)
			payments = append(payments, Payment{
				CustomerNumber: cust,
				CheckNumber:    check,
				PaymentDate:    g.DateBetween(now.AddDate(-2, 0, 0), now),
				Amount:         g.Money(50, 20000),
			})
		}
	}
	return payments
}

func checkNumber(g *gen.Generator, prefix string, used map[string]bool) string {
	for {
		check := fmt.Sprintf("%s%d", prefix, g.IntRange(100000, 999999))
		if !used[check] {
			used[check] = true
			return check
		}
	}
}
