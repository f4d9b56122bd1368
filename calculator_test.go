package costbasis

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

const (
	t2015 Timestamp = 1446979735 // 08/11/2015, 10:48:55
	t2016 Timestamp = 1467378304 // 01/07/2016
)

func TestCalculateSpendCostBasis_FullDisposal(t *testing.T) {
	c := newTestCalculator(t)
	acquire(t, c, t2015, "BTC", Q(5), NO(268.1), NO("0.0005"))

	info := c.CalculateSpendCostBasis(Q(5), "BTC", t2016)

	if !info.IsComplete {
		t.Errorf("IsComplete = false, want true")
	}
	if want := Q(5); !info.TaxableAmount.Equal(want) {
		t.Errorf("TaxableAmount = %s, want %s", info.TaxableAmount, want)
	}
	if want := EUR("1340.5005"); !info.TaxableBoughtCost.Equal(want) {
		t.Errorf("TaxableBoughtCost = %s, want %s", info.TaxableBoughtCost.Exact(), want.Exact())
	}
	if !info.TaxfreeBoughtCost.IsZero() {
		t.Errorf("TaxfreeBoughtCost = %s, want 0", info.TaxfreeBoughtCost.Exact())
	}
	if len(info.MatchedAcquisitions) != 1 || !info.MatchedAcquisitions[0].Amount.Equal(Q(5)) {
		t.Errorf("MatchedAcquisitions = %v, want a single match of 5", info.MatchedAcquisitions)
	}
	if lots := c.Acquisitions("BTC"); len(lots) != 0 {
		t.Errorf("open lots = %v, want none", amounts(lots))
	}
	if used := c.UsedAcquisitions("BTC"); len(used) != 1 {
		t.Errorf("got %d used lots, want 1", len(used))
	}
}

func TestCalculateSpendCostBasis_PartialThenRest(t *testing.T) {
	c := newTestCalculator(t)
	acquire(t, c, t2015, "BTC", Q(5), NO(268.1), NO("0.0005"))

	first := c.CalculateSpendCostBasis(Q(3), "BTC", t2016)
	if !first.IsComplete || len(first.MatchedAcquisitions) != 1 || !first.MatchedAcquisitions[0].Amount.Equal(Q(3)) {
		t.Fatalf("first disposal = %+v, want a complete single match of 3", first)
	}
	if got, want := amounts(c.Acquisitions("BTC")), []string{"2"}; !cmp.Equal(got, want) {
		t.Errorf("remaining after first disposal = %v, want %v", got, want)
	}
	if len(c.UsedAcquisitions("BTC")) != 0 {
		t.Errorf("a partially used lot must stay open")
	}

	second := c.CalculateSpendCostBasis(Q(2), "BTC", t2016+100)
	if !second.IsComplete || len(second.MatchedAcquisitions) != 1 || !second.MatchedAcquisitions[0].Amount.Equal(Q(2)) {
		t.Fatalf("second disposal = %+v, want a complete single match of 2", second)
	}
	if lots := c.Acquisitions("BTC"); len(lots) != 0 {
		t.Errorf("open lots = %v, want none", amounts(lots))
	}
	used := c.UsedAcquisitions("BTC")
	if len(used) != 1 || !used[0].RemainingAmount.IsZero() {
		t.Errorf("used lots = %v, want the exhausted lot", amounts(used))
	}
}

func TestCalculateSpendCostBasis_TaxFree(t *testing.T) {
	c := newTestCalculator(t)
	if err := c.SetTaxFreeAfterPeriod(period(YearInSeconds)); err != nil {
		t.Fatal(err)
	}
	acquire(t, c, t2015, "BTC", Q(5), NO(268.1), NO("0.0005"))

	info := c.CalculateSpendCostBasis(Q(3), "BTC", 1480683904) // 02/12/2016

	want := CostBasisInfo{
		TaxableAmount:     Q(0),
		TaxableBoughtCost: EUR(0),
		TaxfreeBoughtCost: EUR("804.3003"),
		IsComplete:        true,
	}
	if diff := cmp.Diff(want, info, exact, cmp.FilterPath(func(p cmp.Path) bool {
		return p.Last().String() == ".MatchedAcquisitions"
	}, cmp.Ignore())); diff != "" {
		t.Errorf("CalculateSpendCostBasis() mismatch (-want +got):\n%s", diff)
	}
	if m := info.MatchedAcquisitions; len(m) != 1 || m[0].Taxable {
		t.Errorf("MatchedAcquisitions = %v, want one tax-free match", m)
	}
}

func TestCalculateSpendCostBasis_ExemptionBoundary(t *testing.T) {
	tests := []struct {
		name    string
		at      Timestamp
		taxable Quantity
	}{
		{"exactly the period", t2015.Add(YearInSeconds), Q(1)},
		{"one second later", t2015.Add(YearInSeconds + 1), Q(0)},
		{"one second before", t2015.Add(YearInSeconds - 1), Q(1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestCalculator(t)
			c.SetTaxFreeAfterPeriod(period(YearInSeconds))
			acquire(t, c, t2015, "BTC", Q(1), NO(100), NO(0))

			info := c.CalculateSpendCostBasis(Q(1), "BTC", tt.at)
			if !info.TaxableAmount.Equal(tt.taxable) {
				t.Errorf("TaxableAmount = %s, want %s", info.TaxableAmount, tt.taxable)
			}
		})
	}
}

func TestCalculateSpendCostBasis_HugePeriod(t *testing.T) {
	c := newTestCalculator(t)
	if err := c.SetTaxFreeAfterPeriod(period(math.MaxInt64)); err != nil {
		t.Fatal(err)
	}
	acquire(t, c, t2015, "BTC", Q(5), NO(268.1), NO(0))

	info := c.CalculateSpendCostBasis(Q(1), "BTC", t2016)
	if !info.TaxableAmount.Equal(Q(1)) {
		t.Errorf("TaxableAmount = %s, want 1", info.TaxableAmount)
	}
	if !info.TaxfreeBoughtCost.IsZero() {
		t.Errorf("TaxfreeBoughtCost = %s, want 0", info.TaxfreeBoughtCost.Exact())
	}
}

func TestCalculateSpendCostBasis_Insufficient(t *testing.T) {
	c := newTestCalculator(t)
	acquire(t, c, t2015, "BTC", Q(1), NO(100), NO(0))
	acquire(t, c, t2016, "BTC", Q(1), NO(200), NO(0))

	info := c.CalculateSpendCostBasis(Q(3), "BTC", 1467478304)

	if info.IsComplete {
		t.Errorf("IsComplete = true, want false")
	}
	if want := Q(3); !info.TaxableAmount.Equal(want) {
		t.Errorf("TaxableAmount = %s, want %s", info.TaxableAmount, want)
	}
	if want := EUR(300); !info.TaxableBoughtCost.Equal(want) {
		t.Errorf("TaxableBoughtCost = %s, want %s", info.TaxableBoughtCost.Exact(), want.Exact())
	}
	if got := len(info.MatchedAcquisitions); got != 2 {
		t.Fatalf("got %d matches, want 2", got)
	}
	for i, m := range info.MatchedAcquisitions {
		if !m.Amount.Equal(Q(1)) {
			t.Errorf("match %d amount = %s, want 1", i, m.Amount)
		}
	}
	missing := c.MissingAcquisitions()
	want := []MissingAcquisition{{Asset: "BTC", Time: 1467478304, FoundAmount: Q(2), MissingAmount: Q(1)}}
	if diff := cmp.Diff(want, missing, exact); diff != "" {
		t.Errorf("MissingAcquisitions() mismatch (-want +got):\n%s", diff)
	}
}

func TestCalculateSpendCostBasis_InsufficientKeepsTaxFreePart(t *testing.T) {
	c := newTestCalculator(t)
	c.SetTaxFreeAfterPeriod(period(YearInSeconds))
	acquire(t, c, t2015, "BTC", Q(1), NO(100), NO(0))
	acquire(t, c, t2016, "BTC", Q(1), NO(200), NO(0))

	info := c.CalculateSpendCostBasis(Q(3), "BTC", t2015.Add(YearInSeconds+10))

	// the 2015 lot is tax-free, everything else is taxed.
	if want := Q(2); !info.TaxableAmount.Equal(want) {
		t.Errorf("TaxableAmount = %s, want %s", info.TaxableAmount, want)
	}
	if want := Q(1); !info.TaxfreeAmount().Equal(want) {
		t.Errorf("TaxfreeAmount() = %s, want %s", info.TaxfreeAmount(), want)
	}
	if info.IsComplete {
		t.Errorf("IsComplete = true, want false")
	}
}

func TestCalculateSpendCostBasis_NoAcquisition(t *testing.T) {
	c := newTestCalculator(t)

	info := c.CalculateSpendCostBasis(Q("2.5"), "ETH", t2016)

	want := CostBasisInfo{
		TaxableAmount:     Q("2.5"),
		TaxableBoughtCost: EUR(0),
		TaxfreeBoughtCost: EUR(0),
		IsComplete:        false,
	}
	if diff := cmp.Diff(want, info, exact); diff != "" {
		t.Errorf("CalculateSpendCostBasis() mismatch (-want +got):\n%s", diff)
	}
	if got := len(c.MissingAcquisitions()); got != 1 {
		t.Errorf("got %d missing acquisitions, want 1", got)
	}
}

func TestCalculateSpendCostBasis_ZeroAmount(t *testing.T) {
	c := newTestCalculator(t)
	acquire(t, c, t2015, "BTC", Q(1), NO(100), NO(0))

	info := c.CalculateSpendCostBasis(Q(0), "BTC", t2016)
	if !info.IsComplete || len(info.MatchedAcquisitions) != 0 {
		t.Errorf("zero disposal = %+v, want complete and empty", info)
	}
	if got := amounts(c.Acquisitions("BTC")); !cmp.Equal(got, []string{"1"}) {
		t.Errorf("open lots = %v, want untouched", got)
	}
}

func TestCalculateSpendCostBasis_Conservation(t *testing.T) {
	for _, amount := range []string{"0.1", "1", "1.5", "3.25", "6"} {
		c := newTestCalculator(t)
		acquire(t, c, 1, "BTC", Q("1.5"), NO(10), NO(0))
		acquire(t, c, 2, "BTC", Q("0.75"), NO(20), NO("0.3"))
		acquire(t, c, 3, "BTC", Q("3.75"), NO(30), NO(1))

		info := c.CalculateSpendCostBasis(Q(amount), "BTC", 10)

		if !info.IsComplete {
			t.Errorf("%s: IsComplete = false, want true", amount)
		}
		if got := info.MatchedAmount(); !got.Equal(Q(amount)) {
			t.Errorf("%s: matched %s", amount, got)
		}
		// matches follow acquisition order.
		for i := 1; i < len(info.MatchedAcquisitions); i++ {
			if info.MatchedAcquisitions[i-1].Event.Timestamp > info.MatchedAcquisitions[i].Event.Timestamp {
				t.Errorf("%s: match %d is older than match %d", amount, i, i-1)
			}
		}
		open, _ := c.CalculatedAssetAmount("BTC")
		if want := Q(6).Sub(Q(amount)); !open.Equal(want) {
			t.Errorf("%s: open amount = %s, want %s", amount, open, want)
		}
	}
}

func TestCalculateSpendCostBasis_LotSplit(t *testing.T) {
	c := newTestCalculator(t)
	acquire(t, c, 1, "BTC", Q(1), NO(10), NO(0))
	acquire(t, c, 2, "BTC", Q(2), NO(20), NO(0))
	acquire(t, c, 3, "BTC", Q(3), NO(30), NO(0))

	c.CalculateSpendCostBasis(Q("1.5"), "BTC", 10)

	if got, want := amounts(c.Acquisitions("BTC")), []string{"1.5", "3"}; !cmp.Equal(got, want) {
		t.Errorf("open lots = %v, want %v", got, want)
	}
	if got, want := amounts(c.UsedAcquisitions("BTC")), []string{"0"}; !cmp.Equal(got, want) {
		t.Errorf("used lots = %v, want %v", got, want)
	}

	// archived lots never match again.
	info := c.CalculateSpendCostBasis(Q(2), "BTC", 11)
	for _, m := range info.MatchedAcquisitions {
		if m.Event.Timestamp == 1 {
			t.Errorf("an archived lot was matched: %v", m.Event)
		}
	}
}

func TestCalculateSpendCostBasis_Methods(t *testing.T) {
	tests := []struct {
		method CostBasisMethod
		cost   Money
		open   []string
	}{
		{FIFO, EUR(20), []string{"2", "1"}},        // 2 at 10
		{LIFO, EUR(45), []string{"1", "2"}},        // 1 at 15 and 1 at 30
		{HIFO, EUR(60), []string{"1", "2"}},        // 2 at 30
		{AverageCost, EUR(38), []string{"2", "1"}}, // 2 at (20+60+15)/5
	}
	for _, tt := range tests {
		t.Run(tt.method.String(), func(t *testing.T) {
			c := newTestCalculator(t, WithMethod(tt.method))
			acquire(t, c, 1, "BTC", Q(2), NO(10), NO(0))
			acquire(t, c, 2, "BTC", Q(2), NO(30), NO(0))
			acquire(t, c, 3, "BTC", Q(1), NO(15), NO(0))

			info := c.CalculateSpendCostBasis(Q(2), "BTC", 10)

			if !info.TaxableBoughtCost.Equal(tt.cost) {
				t.Errorf("TaxableBoughtCost = %s, want %s", info.TaxableBoughtCost.Exact(), tt.cost.Exact())
			}
			if got := amounts(c.Acquisitions("BTC")); !cmp.Equal(got, tt.open) {
				t.Errorf("open lots = %v, want %v", got, tt.open)
			}
		})
	}
}

func TestRecordAcquisition_OrderingViolation(t *testing.T) {
	c := newTestCalculator(t)
	acquire(t, c, t2016, "BTC", Q(1), NO(100), NO(0))

	err := c.RecordAcquisition(Kraken, t2015, "", "BTC", Q(1), NO(100), NO(0))
	if !errors.Is(err, ErrOrderingViolation) {
		t.Errorf("RecordAcquisition() error = %v, want %v", err, ErrOrderingViolation)
	}
	// other assets have their own order.
	if err := c.RecordAcquisition(Kraken, t2015, "", "ETH", Q(1), NO(5), NO(0)); err != nil {
		t.Errorf("RecordAcquisition(ETH) error = %v", err)
	}
	// same timestamp is fine.
	if err := c.RecordAcquisition(Kraken, t2016, "", "BTC", Q(1), NO(100), NO(0)); err != nil {
		t.Errorf("RecordAcquisition(same timestamp) error = %v", err)
	}
}

func TestRecordAcquisition_ZeroAmount(t *testing.T) {
	c := newTestCalculator(t)
	if err := c.RecordAcquisition(Kraken, t2015, "", "BTC", Q(0), NO(100), NO(5)); err != nil {
		t.Fatalf("RecordAcquisition() error = %v", err)
	}
	if lots := c.Acquisitions("BTC"); len(lots) != 0 {
		t.Errorf("a zero amount created lots %v", amounts(lots))
	}
	if err := c.RecordAcquisition(Kraken, t2015, "", "BTC", Q(-1), NO(100), NO(0)); err == nil {
		t.Errorf("RecordAcquisition(negative) error = nil, want an error")
	}
}

func TestRecordAcquisition_Currency(t *testing.T) {
	c := newTestCalculator(t)
	if err := c.RecordAcquisition(Kraken, t2015, "", "BTC", Q(1), M(100, "USD"), NO(0)); !errors.Is(err, ErrUnsupportedCurrency) {
		t.Errorf("RecordAcquisition(USD rate) error = %v, want %v", err, ErrUnsupportedCurrency)
	}
	if err := c.RecordAcquisition(Kraken, t2015, "", "BTC", Q(1), EUR(100), EUR(1)); err != nil {
		t.Errorf("RecordAcquisition(EUR rate) error = %v", err)
	}
	lot := c.Acquisitions("BTC")[0]
	if lot.Rate.Currency() != "EUR" || lot.FeeRate.Currency() != "EUR" {
		t.Errorf("lot currencies = %q, %q, want EUR", lot.Rate.Currency(), lot.FeeRate.Currency())
	}
}

func TestWETHSharesETHLots(t *testing.T) {
	c := newTestCalculator(t)
	acquire(t, c, 1, "ETH", Q(2), NO(100), NO(0))

	info := c.CalculateSpendCostBasis(Q(1), "WETH", 2)
	if !info.IsComplete || !info.TaxableBoughtCost.Equal(EUR(100)) {
		t.Errorf("WETH disposal = %+v, want matched against ETH lots", info)
	}
	if got, _ := c.CalculatedAssetAmount("ETH"); !got.Equal(Q(1)) {
		t.Errorf("ETH amount = %s, want 1", got)
	}
	if got := c.Assets(); !cmp.Equal(got, []Asset{"ETH"}) {
		t.Errorf("Assets() = %v, want [ETH]", got)
	}
}

func TestReduceAssetAmount(t *testing.T) {
	t.Run("zero on unknown asset", func(t *testing.T) {
		c := newTestCalculator(t)
		if !c.ReduceAssetAmount("BTC", Q(0), t2015) {
			t.Errorf("ReduceAssetAmount(0) = false, want true")
		}
		if got := len(c.MissingAcquisitions()); got != 0 {
			t.Errorf("got %d missing acquisitions, want 0", got)
		}
	})

	t.Run("sufficient", func(t *testing.T) {
		c := newTestCalculator(t)
		acquire(t, c, 1, "BTC", Q(1), NO(10), NO(0))
		acquire(t, c, 2, "BTC", Q(2), NO(20), NO(0))
		if !c.ReduceAssetAmount("BTC", Q("1.5"), 3) {
			t.Fatalf("ReduceAssetAmount() = false, want true")
		}
		if got, want := amounts(c.Acquisitions("BTC")), []string{"1.5"}; !cmp.Equal(got, want) {
			t.Errorf("open lots = %v, want %v", got, want)
		}
		if got := len(c.UsedAcquisitions("BTC")); got != 1 {
			t.Errorf("got %d used lots, want 1", got)
		}
	})

	t.Run("insufficient is atomic", func(t *testing.T) {
		c := newTestCalculator(t)
		acquire(t, c, 1, "BTC", Q(1), NO(10), NO(0))
		acquire(t, c, 2, "BTC", Q(2), NO(20), NO(0))
		if c.ReduceAssetAmount("BTC", Q(4), 3) {
			t.Fatalf("ReduceAssetAmount() = true, want false")
		}
		if got, want := amounts(c.Acquisitions("BTC")), []string{"1", "2"}; !cmp.Equal(got, want) {
			t.Errorf("open lots = %v, want %v", got, want)
		}
		want := []MissingAcquisition{{Asset: "BTC", Time: 3, FoundAmount: Q(3), MissingAmount: Q(1)}}
		if diff := cmp.Diff(want, c.MissingAcquisitions(), exact); diff != "" {
			t.Errorf("MissingAcquisitions() mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("fiat is not reported", func(t *testing.T) {
		c := newTestCalculator(t)
		if c.ReduceAssetAmount("USD", Q(10), 3) {
			t.Errorf("ReduceAssetAmount() = true, want false")
		}
		if got := len(c.MissingAcquisitions()); got != 0 {
			t.Errorf("got %d missing acquisitions, want 0", got)
		}
	})
}

func TestSpendAsset(t *testing.T) {
	c := newTestCalculator(t)
	acquire(t, c, 1, "BTC", Q(2), NO(10), NO(0))

	info, err := c.SpendAsset(Kraken, 2, "BTC", Q(1), NO(50), NO(1), NO(49), true)
	if err != nil {
		t.Fatalf("SpendAsset() error = %v", err)
	}
	if info == nil || !info.TaxableBoughtCost.Equal(EUR(10)) {
		t.Errorf("SpendAsset() = %+v, want a cost basis of 10", info)
	}

	info, err = c.SpendAsset(Kraken, 3, "BTC", Q("0.5"), NO(0), NO(0), NO(0), false)
	if err != nil || info != nil {
		t.Errorf("non taxable SpendAsset() = %v, %v, want nil, nil", info, err)
	}
	if got, _ := c.CalculatedAssetAmount("BTC"); !got.Equal(Q("0.5")) {
		t.Errorf("BTC amount = %s, want 0.5", got)
	}

	spends := c.Spends("BTC")
	if len(spends) != 2 {
		t.Fatalf("got %d spends, want 2", len(spends))
	}
	want := SpendEvent{Timestamp: 2, Location: Kraken, Amount: Q(1), Rate: EUR(50), FeeRate: EUR(1), Gain: EUR(49)}
	if diff := cmp.Diff(want, spends[0], exact); diff != "" {
		t.Errorf("Spends()[0] mismatch (-want +got):\n%s", diff)
	}
}

func TestSetTaxFreeAfterPeriod(t *testing.T) {
	c := newTestCalculator(t)
	if err := c.SetTaxFreeAfterPeriod(period(-1)); !errors.Is(err, ErrInvalidTaxFreePeriod) {
		t.Errorf("SetTaxFreeAfterPeriod(-1) error = %v, want %v", err, ErrInvalidTaxFreePeriod)
	}
	p := int64(10)
	if err := c.SetTaxFreeAfterPeriod(&p); err != nil {
		t.Fatal(err)
	}
	p = 20 // the calculator keeps its own copy.
	if got := *c.TaxFreeAfterPeriod(); got != 10 {
		t.Errorf("TaxFreeAfterPeriod() = %d, want 10", got)
	}
	if err := c.SetTaxFreeAfterPeriod(nil); err != nil || c.TaxFreeAfterPeriod() != nil {
		t.Errorf("SetTaxFreeAfterPeriod(nil) did not disable the exemption")
	}
}

func TestSetTaxFreeAfterPeriod_NotRetroactive(t *testing.T) {
	c := newTestCalculator(t)
	acquire(t, c, 1, "BTC", Q(2), NO(10), NO(0))

	first := c.CalculateSpendCostBasis(Q(1), "BTC", 100)
	c.SetTaxFreeAfterPeriod(period(10))
	second := c.CalculateSpendCostBasis(Q(1), "BTC", 100)

	if !first.TaxableAmount.Equal(Q(1)) {
		t.Errorf("first TaxableAmount = %s, want 1", first.TaxableAmount)
	}
	if !second.TaxableAmount.IsZero() {
		t.Errorf("second TaxableAmount = %s, want 0", second.TaxableAmount)
	}
}

func TestNewCalculator_Currency(t *testing.T) {
	for _, cur := range []Asset{"", "eur", "BTC"} {
		if _, err := NewCalculator(cur); !errors.Is(err, ErrUnsupportedCurrency) {
			t.Errorf("NewCalculator(%q) error = %v, want %v", cur, err, ErrUnsupportedCurrency)
		}
	}
}

func TestReset(t *testing.T) {
	c := newTestCalculator(t, WithMethod(LIFO))
	c.SetTaxFreeAfterPeriod(period(5))
	acquire(t, c, 1, "BTC", Q(2), NO(10), NO(0))
	c.CalculateSpendCostBasis(Q(3), "BTC", 2)

	if err := c.Reset("USD"); err != nil {
		t.Fatal(err)
	}
	if len(c.Assets()) != 0 || len(c.MissingAcquisitions()) != 0 {
		t.Errorf("Reset() kept state: assets %v, missing %v", c.Assets(), c.MissingAcquisitions())
	}
	if _, ok := c.CalculatedAssetAmount("BTC"); ok {
		t.Errorf("CalculatedAssetAmount(BTC) found an asset after Reset()")
	}
	if c.ReferenceCurrency() != "USD" || c.Method() != LIFO || *c.TaxFreeAfterPeriod() != 5 {
		t.Errorf("Reset() changed the configuration")
	}
}

func TestCalculateAssetDetails(t *testing.T) {
	now := time.Unix(1000, 0)
	c := newTestCalculator(t, WithClock(func() time.Time { return now }))
	acquire(t, c, 100, "BTC", Q(1), NO(10), NO(0))
	acquire(t, c, 900, "BTC", Q(3), NO(30), NO(0))
	acquire(t, c, 100, "ETH", Q(1), NO(5), NO(0))
	c.CalculateSpendCostBasis(Q(1), "ETH", 200)

	got := c.CalculateAssetDetails(period(500))
	want := map[Asset]AssetDetails{
		"BTC": {TaxFreeAmountLeft: Q(1), AverageRate: EUR(25)},
		"ETH": {TaxFreeAmountLeft: Q(0), AverageRate: EUR(0)},
	}
	if diff := cmp.Diff(want, got, exact); diff != "" {
		t.Errorf("CalculateAssetDetails() mismatch (-want +got):\n%s", diff)
	}

	if got := c.CalculateAssetDetails(nil)["BTC"].TaxFreeAmountLeft; !got.IsZero() {
		t.Errorf("tax-free amount without period = %s, want 0", got)
	}
	if got := c.CalculateAssetDetails(period(math.MaxInt64))["BTC"].TaxFreeAmountLeft; !got.IsZero() {
		t.Errorf("tax-free amount with an endless period = %s, want 0", got)
	}
}

func TestCalculatedAssetAmount(t *testing.T) {
	c := newTestCalculator(t)
	if _, ok := c.CalculatedAssetAmount("BTC"); ok {
		t.Errorf("CalculatedAssetAmount() found an unknown asset")
	}
	acquire(t, c, 1, "BTC", Q("0.25"), NO(10), NO(0))
	acquire(t, c, 2, "BTC", Q("0.5"), NO(10), NO(0))
	got, ok := c.CalculatedAssetAmount("BTC")
	if !ok || !got.Equal(Q("0.75")) {
		t.Errorf("CalculatedAssetAmount() = %s, %v, want 0.75, true", got, ok)
	}
}
