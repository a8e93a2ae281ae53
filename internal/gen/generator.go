// Package gen produces plausible random field values for the classicmodels
// generator: fake text drawn from gofakeit, bounded integers, and fixed-point
// currency amounts. All randomness flows through one explicitly seeded source
// so runs are reproducible under test.
package gen

import (
	"math/rand"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/shopspring/decimal"

	"classicseed/internal/schema"
)

// Truncation records a generated text value that exceeded its column's length
// contract and was cut down to fit. It is an observable side effect, not an
// error.
type Truncation struct {
	Column string
	Length int
	Limit  int
	Value  string
}

type Generator struct {
	faker        *gofakeit.Faker
	rand         *rand.Rand
	truncations  []Truncation
	onTruncation func(Truncation)
}

// New returns a generator seeded with the given value. A zero seed picks one
// from the clock.
func New(seed uint64) *Generator {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return &Generator{
		faker: gofakeit.New(seed),
		rand:  rand.New(rand.NewSource(int64(seed))),
	}
}

// OnTruncation registers a callback fired for every truncation event, in
// addition to the recorded list.
func (g *Generator) OnTruncation(fn func(Truncation)) {
	g.onTruncation = fn
}

// Truncations returns all truncation events recorded so far.
func (g *Generator) Truncations() []Truncation {
	return g.truncations
}

// Clip enforces the column's length contract on a generated value. Values
// within the limit pass through untouched; longer ones are cut to exactly the
// limit and the event is recorded.
func (g *Generator) Clip(column, value string) string {
	limit := schema.Limit(column)
	if limit == 0 || len(value) <= limit {
		return value
	}
	ev := Truncation{Column: column, Length: len(value), Limit: limit, Value: value}
	g.truncations = append(g.truncations, ev)
	if g.onTruncation != nil {
		g.onTruncation(ev)
	}
	return value[:limit]
}

func (g *Generator) Company() string       { return g.faker.Company() }
func (g *Generator) FirstName() string     { return g.faker.FirstName() }
func (g *Generator) LastName() string      { return g.faker.LastName() }
func (g *Generator) City() string          { return g.faker.City() }
func (g *Generator) Country() string       { return g.faker.Country() }
func (g *Generator) StreetAddress() string { return g.faker.Street() }
func (g *Generator) PostalCode() string    { return g.faker.Zip() }
func (g *Generator) Phone() string         { return g.faker.Phone() }

func (g *Generator) Sentence(words int) string { return g.faker.Sentence(words) }
func (g *Generator) Word() string              { return g.faker.Word() }

// IntRange returns a uniform integer in [lo, hi].
func (g *Generator) IntRange(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + g.rand.Intn(hi-lo+1)
}

// Chance reports true with probability p.
func (g *Generator) Chance(p float64) bool {
	return g.rand.Float64() < p
}

// ClampSmallint bounds n into the non-negative half of the 16-bit signed
// range the stock column is stored in.
func ClampSmallint(n int) int {
	if n < 0 {
		return 0
	}
	if n > schema.SmallintMax {
		return schema.SmallintMax
	}
	return n
}

// Money returns a fixed-point amount drawn uniformly from [lo, hi], rounded
// to 2 fractional digits. Stored amounts are always decimals, never floats.
func (g *Generator) Money(lo, hi float64) decimal.Decimal {
	v := lo + g.rand.Float64()*(hi-lo)
	return decimal.NewFromFloat(v).Round(2)
}

// MarkupPrice derives a list price from a buy price via a random
// multiplicative markup in [1.1, 2.5], so the list price always exceeds the
// buy price.
func (g *Generator) MarkupPrice(buy decimal.Decimal) decimal.Decimal {
	markup := 1.1 + g.rand.Float64()*(2.5-1.1)
	return buy.Mul(decimal.NewFromFloat(markup)).Round(2)
}

// RatioOf scales a base amount by a random ratio in [lo, hi], rounded to 2
// fractional digits. Derived prices stay correlated with their source entity
// instead of being generated independently.
func (g *Generator) RatioOf(base decimal.Decimal, lo, hi float64) decimal.Decimal {
	ratio := lo + g.rand.Float64()*(hi-lo)
	return base.Mul(decimal.NewFromFloat(ratio)).Round(2)
}

// DateBetween returns a uniform date in [start, end], truncated to midnight.
func (g *Generator) DateBetween(start, end time.Time) time.Time {
	if !end.After(start) {
		return start
	}
	days := int(end.Sub(start).Hours() / 24)
	d := start.AddDate(0, 0, g.rand.Intn(days+1))
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, d.Location())
}

// Pick returns a uniformly chosen element of s.
func Pick[T any](g *Generator, s []T) T {
	return s[g.rand.Intn(len(s))]
}

// SampleIndexes returns k distinct indexes into a collection of size n, in
// random order. k is capped at n.
func (g *Generator) SampleIndexes(n, k int) []int {
	if k > n {
		k = n
	}
	idx := g.rand.Perm(n)
	return idx[:k]
}
