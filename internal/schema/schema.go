// Package schema describes the classicmodels sample schema the generator
// writes into. The tables are assumed to exist already; nothing in this
// package creates or migrates them.
package schema

// Table names, in referential insert order. Product lines and offices have no
// dependencies; everything below them references rows produced by an earlier
// table.
const (
	TableProductLines = "productlines"
	TableOffices      = "offices"
	TableEmployees    = "employees"
	TableProducts     = "products"
	TableCustomers    = "customers"
	TableOrders       = "orders"
	TableOrderDetails = "orderdetails"
	TablePayments     = "payments"
)

// columnLimits holds the declared VARCHAR lengths per logical column name,
// taken from the schema's CREATE TABLE statements. Columns absent from the
// map carry no length contract (TEXT, numeric, date).
var columnLimits = map[string]int{
	"customerName":     50,
	"contactLastName":  50,
	"contactFirstName": 50,
	"lastName":         50,
	"firstName":        50,
	"phone":            50,
	"addressLine1":     50,
	"addressLine2":     50,
	"city":             50,
	"state":            50,
	"postalCode":       15,
	"country":          50,
	"extension":        10,
	"email":            100,
	"officeCode":       10,
	"jobTitle":         50,
	"territory":        10,
	"productCode":      15,
	"productName":      70,
	"productLine":      50,
	"productScale":     10,
	"productVendor":    50,
	"status":           15,
	"checkNumber":      50,
}

// Limit returns the maximum declared length for a logical column name, or 0
// when the column is unbounded.
func Limit(column string) int {
	return columnLimits[column]
}

// SmallintMax is the upper bound of the 16-bit signed range that
// quantityInStock is stored in.
const SmallintMax = 32767
