package seeder

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Counts are the target cardinalities for one full generation run. Each count
// produces exactly that many top-level entities; orders additionally carry
// 1..5 line items and customers 0..3 payments, drawn per entity.
type Counts struct {
	ProductLines int
	Offices      int
	Employees    int
	Products     int
	Customers    int
	Orders       int
}

// Validate rejects cardinalities the generator cannot honor. Product lines
// draw from a fixed catalog of six, so more than six cannot stay unique, and
// every stage that draws references needs a non-empty stage to draw from.
func (c Counts) Validate() error {
	if c.ProductLines < 1 || c.ProductLines > 6 {
		return fmt.Errorf("product lines must be between 1 and 6, got %d", c.ProductLines)
	}
	for _, n := range []struct {
		name  string
		count int
	}{
		{"offices", c.Offices},
		{"employees", c.Employees},
		{"products", c.Products},
		{"customers", c.Customers},
		{"orders", c.Orders},
	} {
		if n.count < 0 {
			return fmt.Errorf("%s count cannot be negative, got %d", n.name, n.count)
		}
	}
	if c.Employees > 0 && c.Offices == 0 {
		return fmt.Errorf("cannot generate %d employees with no offices to assign them to", c.Employees)
	}
	if c.Orders > 0 && c.Customers == 0 {
		return fmt.Errorf("cannot generate %d orders with no customers to place them", c.Orders)
	}
	if c.Orders > 0 && c.Products == 0 {
		return fmt.Errorf("cannot generate %d orders with no products to order", c.Orders)
	}
	return nil
}

// Identifier bases keep the generated keys in the same ranges across reruns,
// which is what makes skip-on-conflict reruns a no-op.
const (
	officeBase   = 100
	employeeBase = 1000
	productBase  = 2000
	customerBase = 3000
	orderBase    = 5000
)

type ProductLine struct {
	Name        string
	Description string
}

type Office struct {
	Code         string
	City         string
	Phone        string
	AddressLine1 string
	Country      string
	PostalCode   string
	Territory    string
}

type Employee struct {
	Number     int
	LastName   string
	FirstName  string
	Extension  string
	Email      string
	OfficeCode string
	// ReportsTo references an employee number generated earlier in the same
	// run, or nil for the top of the hierarchy.
	ReportsTo *int
	JobTitle  string
}

type Product struct {
	Code            string
	Name            string
	Line            string
	Scale           string
	Vendor          string
	Description     string
	QuantityInStock int
	BuyPrice        decimal.Decimal
	// ListPrice (MSRP) is derived from BuyPrice via a random markup > 1.
	ListPrice decimal.Decimal
}

// ProductRef is the (code, list price) pair the order stages need; line item
// prices are derived from the list price, never generated independently.
type ProductRef struct {
	Code      string
	ListPrice decimal.Decimal
}

func (p Product) Ref() ProductRef {
	return ProductRef{Code: p.Code, ListPrice: p.ListPrice}
}

type Customer struct {
	Number                 int
	Name                   string
	ContactLastName        string
	ContactFirstName       string
	Phone                  string
	AddressLine1           string
	City                   string
	Country                string
	SalesRepEmployeeNumber *int
	CreditLimit            decimal.Decimal
}

type Order struct {
	Number         int
	OrderDate      time.Time
	RequiredDate   time.Time
	ShippedDate    *time.Time
	Status         string
	CustomerNumber int
	Details        []OrderDetail
}

type OrderDetail struct {
	OrderNumber     int
	ProductCode     string
	QuantityOrdered int
	PriceEach       decimal.Decimal
	OrderLineNumber int
}

type Payment struct {
	CustomerNumber int
	CheckNumber    string
	PaymentDate    time.Time
	Amount         decimal.Decimal
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// Summary reports what one sequencer invocation did. Inserted counts rows the
// database actually wrote; reruns against a populated store report zero.
type Summary struct {
	Inserted       int64
	Skipped        int64
	PaymentsFailed int
	Truncations    int
}
