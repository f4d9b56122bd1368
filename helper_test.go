package costbasis

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

// EUR is a helper for test to create euro money from const
func EUR[T float64 | int | string](v T) Money { return M(v, "EUR") }

// NO is a helper for test to create money from const with no currency set
func NO[T float64 | int | string](v T) Money { return M(v, "") }

// exact compares quantities and money by value.
var exact = cmp.Options{
	cmp.Comparer(func(a, b Quantity) bool { return a.Equal(b) }),
	cmp.Comparer(func(a, b Money) bool { return a.Equal(b) }),
}

func newTestCalculator(t *testing.T, opts ...Option) *Calculator {
	t.Helper()
	c, err := NewCalculator("EUR", opts...)
	if err != nil {
		t.Fatalf("NewCalculator() error = %v", err)
	}
	return c
}

// acquire records an acquisition of BTC-like test lots, failing the test on error.
func acquire(t *testing.T, c *Calculator, ts Timestamp, asset Asset, amount Quantity, rate, fee Money) {
	t.Helper()
	if err := c.RecordAcquisition(Kraken, ts, "", asset, amount, rate, fee); err != nil {
		t.Fatalf("RecordAcquisition(%s %s at %d) error = %v", amount, asset, ts, err)
	}
}

// amounts returns the remaining amounts of lots, in order.
func amounts(lots []*AcquisitionEvent) []string {
	var got []string
	for _, lot := range lots {
		got = append(got, lot.RemainingAmount.String())
	}
	return got
}

func period(seconds int64) *int64 { return &seconds }
