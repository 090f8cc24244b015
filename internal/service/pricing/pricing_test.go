package pricing

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/clearmart/oms/order/internal/service/errs"
)

func TestComputeTotals(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		lines    []Line
		shipping int64
		tax      int64
		discount int64
		want     Totals
	}{
		{
			name:     "single line with shipping and tax",
			lines:    []Line{{UnitPriceCents: 1000, Quantity: 2}},
			shipping: 500,
			tax:      300,
			want: Totals{
				SubtotalCents: 2000,
				ShippingCents: 500,
				TaxCents:      300,
				TotalCents:    2800,
			},
		},
		{
			name: "multiple lines with discount",
			lines: []Line{
				{UnitPriceCents: 1999, Quantity: 3},
				{UnitPriceCents: 250, Quantity: 1},
			},
			shipping: 0,
			tax:      0,
			discount: 247,
			want: Totals{
				SubtotalCents: 6247,
				DiscountCents: 247,
				TotalCents:    6000,
			},
		},
		{
			name:     "discount equal to total is allowed",
			lines:    []Line{{UnitPriceCents: 100, Quantity: 1}},
			discount: 100,
			want: Totals{
				SubtotalCents: 100,
				DiscountCents: 100,
				TotalCents:    0,
			},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := Compute(tt.lines, tt.shipping, tt.tax, tt.discount)
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
			require.Equal(t,
				got.SubtotalCents+got.ShippingCents+got.TaxCents-got.DiscountCents,
				got.TotalCents,
			)
		})
	}
}

func TestComputeRejectsExcessiveDiscount(t *testing.T) {
	t.Parallel()

	_, err := Compute([]Line{{UnitPriceCents: 1000, Quantity: 1}}, 200, 100, 1400)
	require.Error(t, err)
	require.Equal(t, errs.CodeDiscountExceedsTotal, errs.CodeOf(err))
}

func TestComputeValidation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		lines    []Line
		shipping int64
		tax      int64
		discount int64
	}{
		{name: "empty lines", lines: nil},
		{name: "zero quantity", lines: []Line{{UnitPriceCents: 100, Quantity: 0}}},
		{name: "negative quantity", lines: []Line{{UnitPriceCents: 100, Quantity: -1}}},
		{name: "negative unit price", lines: []Line{{UnitPriceCents: -100, Quantity: 1}}},
		{name: "negative shipping", lines: []Line{{UnitPriceCents: 100, Quantity: 1}}, shipping: -1},
		{name: "negative discount", lines: []Line{{UnitPriceCents: 100, Quantity: 1}}, discount: -1},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := Compute(tt.lines, tt.shipping, tt.tax, tt.discount)
			require.Error(t, err)
			require.Equal(t, errs.CodeValidation, errs.CodeOf(err))
		})
	}
}
