package pricing

import (
	"math/rand"
	"reflect"
	"testing"
	"testing/quick"

	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestComputeTotal(t *testing.T) {
	tests := []struct {
		name        string
		lines       []Line
		discount    decimal.Decimal
		deliveryFee decimal.Decimal
		want        string
	}{
		{
			name:        "single line with discount and fee",
			lines:       []Line{{UnitPrice: dec("50"), Quantity: 2}},
			discount:    dec("10"),
			deliveryFee: dec("20"),
			want:        "110",
		},
		{
			name:        "no lines",
			discount:    decimal.Zero,
			deliveryFee: decimal.Zero,
			want:        "0",
		},
		{
			name: "fractional prices stay exact",
			lines: []Line{
				{UnitPrice: dec("0.10"), Quantity: 3},
				{UnitPrice: dec("0.20"), Quantity: 1},
			},
			discount:    decimal.Zero,
			deliveryFee: decimal.Zero,
			want:        "0.5",
		},
		{
			name:        "discount larger than subtotal goes negative",
			lines:       []Line{{UnitPrice: dec("40"), Quantity: 1}},
			discount:    dec("50"),
			deliveryFee: decimal.Zero,
			want:        "-10",
		},
		{
			name:        "negative fee propagates",
			lines:       []Line{{UnitPrice: dec("40"), Quantity: 1}},
			discount:    decimal.Zero,
			deliveryFee: dec("-5"),
			want:        "35",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeTotal(tt.lines, tt.discount, tt.deliveryFee)
			if !got.Equal(dec(tt.want)) {
				t.Errorf("ComputeTotal() = %s, want %s", got, tt.want)
			}
		})
	}
}

type randomOrder struct {
	Lines       []Line
	Discount    decimal.Decimal
	DeliveryFee decimal.Decimal
}

// cents builds a non-negative amount with two decimal places.
func cents(r *rand.Rand, limit int64) decimal.Decimal {
	return decimal.New(r.Int63n(limit), -2)
}

func (randomOrder) Generate(r *rand.Rand, _ int) reflect.Value {
	n := r.Intn(12)
	o := randomOrder{
		Lines:       make([]Line, n),
		Discount:    cents(r, 50_000),
		DeliveryFee: cents(r, 10_000),
	}
	for i := range o.Lines {
		o.Lines[i] = Line{UnitPrice: cents(r, 100_000), Quantity: 1 + r.Intn(20)}
	}
	return reflect.ValueOf(o)
}

func TestComputeTotalMatchesClosedForm(t *testing.T) {
	property := func(o randomOrder) bool {
		want := decimal.Zero
		for _, l := range o.Lines {
			for i := 0; i < l.Quantity; i++ {
				want = want.Add(l.UnitPrice)
			}
		}
		want = want.Sub(o.Discount).Add(o.DeliveryFee)
		return ComputeTotal(o.Lines, o.Discount, o.DeliveryFee).Equal(want)
	}

	if err := quick.Check(property, &quick.Config{MaxCount: 500}); err != nil {
		t.Error(err)
	}
}

func TestOrZero(t *testing.T) {
	if !OrZero(nil).IsZero() {
		t.Error("OrZero(nil) should be zero")
	}
	v := dec("12.5")
	if !OrZero(&v).Equal(v) {
		t.Error("OrZero should return the pointed-to value")
	}
}
