package seeder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCountsValidate(t *testing.T) {
	valid := Counts{ProductLines: 6, Offices: 6, Employees: 30, Products: 120, Customers: 150, Orders: 400}
	require.NoError(t, valid.Validate())

	// Downstream-only shapes are fine: empty stages with nothing drawing
	// from them validate.
	require.NoError(t, Counts{ProductLines: 1, Offices: 2, Employees: 0, Products: 3, Customers: 0, Orders: 0}.Validate())
	require.NoError(t, Counts{ProductLines: 1}.Validate())

	tests := []struct {
		name   string
		counts Counts
		want   string
	}{
		{
			name:   "too many product lines",
			counts: Counts{ProductLines: 7},
			want:   "between 1 and 6",
		},
		{
			name:   "zero product lines",
			counts: Counts{ProductLines: 0},
			want:   "between 1 and 6",
		},
		{
			name:   "negative count",
			counts: Counts{ProductLines: 1, Customers: -1},
			want:   "cannot be negative",
		},
		{
			name:   "employees without offices",
			counts: Counts{ProductLines: 1, Offices: 0, Employees: 5},
			want:   "no offices",
		},
		{
			name:   "orders without customers",
			counts: Counts{ProductLines: 1, Offices: 1, Products: 5, Customers: 0, Orders: 5},
			want:   "no customers",
		},
		{
			name:   "orders without products",
			counts: Counts{ProductLines: 1, Offices: 1, Products: 0, Customers: 5, Orders: 5},
			want:   "no products",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.counts.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
