package report

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadCatalog(t *testing.T) {
	c, err := LoadCatalog()
	require.NoError(t, err)
	require.Len(t, c.Queries, 10)

	names := map[string]bool{}
	for _, q := range c.Queries {
		assert.NotEmpty(t, q.Name)
		assert.NotEmpty(t, q.Title)
		assert.NotEmpty(t, q.SQL)
		assert.False(t, names[q.Name], "duplicate query name %s", q.Name)
		names[q.Name] = true
	}

	assert.Equal(t, "1_total_revenue_by_country", c.Queries[0].Name)
	assert.Equal(t, "10_avg_items_and_lines_per_order", c.Queries[9].Name)
}

func TestQualifyRewritesSchema(t *testing.T) {
	c, err := LoadCatalog()
	require.NoError(t, err)

	c.Qualify("sales")
	for _, q := range c.Queries {
		assert.NotContains(t, q.SQL, "classicmodels.")
		assert.Contains(t, q.SQL, "sales.")
	}
}

func TestQualifyStripsSchema(t *testing.T) {
	c, err := LoadCatalog()
	require.NoError(t, err)

	c.Qualify("")
	for _, q := range c.Queries {
		assert.NotContains(t, q.SQL, "classicmodels.")
		// Table references survive, just unqualified.
		assert.True(t,
			strings.Contains(q.SQL, "orders") || strings.Contains(q.SQL, "products") || strings.Contains(q.SQL, "payments"),
			"query %s lost its table references", q.Name)
	}
}

func TestQualifyDefaultIsNoOp(t *testing.T) {
	a, err := LoadCatalog()
	require.NoError(t, err)
	b, err := LoadCatalog()
	require.NoError(t, err)

	b.Qualify("classicmodels")
	for i := range a.Queries {
		assert.Equal(t, a.Queries[i].SQL, b.Queries[i].SQL)
	}
}
