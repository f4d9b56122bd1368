package costbasis

import (
	"slices"
	"strconv"

	"github.com/samber/lo"
)

// DisposalReport is the outcome of one taxable disposal.
type DisposalReport struct {
	Action    Action
	CostBasis CostBasisInfo
	// GeneralPnL is the proceeds minus the whole cost basis.
	GeneralPnL Money
	// TaxableGain is the share of the proceeds attributed to the taxable amount.
	TaxableGain Money
	// TaxablePnL is TaxableGain minus the taxable cost basis.
	TaxablePnL Money
}

func (d DisposalReport) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("action", d.Action)
	w.Append("costBasis", d.CostBasis)
	w.Append("generalPnl", d.GeneralPnL)
	w.Append("taxableGain", d.TaxableGain)
	w.Append("taxablePnl", d.TaxablePnL)
	return w.MarshalJSON()
}

// Totals aggregates disposal reports.
type Totals struct {
	Disposals  int
	Incomplete int // disposals without a complete cost basis
	GeneralPnL Money
	TaxablePnL Money
}

func (t Totals) add(d DisposalReport) Totals {
	t.Disposals++
	if !d.CostBasis.IsComplete {
		t.Incomplete++
	}
	t.GeneralPnL = t.GeneralPnL.Add(d.GeneralPnL)
	t.TaxablePnL = t.TaxablePnL.Add(d.TaxablePnL)
	return t
}

func (t Totals) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("disposals", t.Disposals)
	w.Append("incomplete", t.Incomplete)
	w.Append("generalPnl", t.GeneralPnL)
	w.Append("taxablePnl", t.TaxablePnL)
	return w.MarshalJSON()
}

// Report is the result of processing a history.
type Report struct {
	Settings  Settings
	Disposals []DisposalReport
	Total     Totals
	// Yearly holds totals per calendar year of the disposals.
	Yearly   map[int]Totals
	Details  map[Asset]AssetDetails
	Missing  []MissingAcquisition
	Balances map[Asset]Quantity
}

// totals computes the overall and the yearly totals of disposals.
func totals(zero Money, disposals []DisposalReport) (Totals, map[int]Totals) {
	sum := func(agg Totals, d DisposalReport, _ int) Totals { return agg.add(d) }
	initial := Totals{GeneralPnL: zero, TaxablePnL: zero}

	byYear := lo.GroupBy(disposals, func(d DisposalReport) int { return d.Action.Timestamp.Year() })
	yearly := lo.MapValues(byYear, func(ds []DisposalReport, _ int) Totals {
		return lo.Reduce(ds, sum, initial)
	})
	return lo.Reduce(disposals, sum, initial), yearly
}

// Years returns the years with disposals, in increasing order.
func (r *Report) Years() []int {
	years := lo.Keys(r.Yearly)
	slices.Sort(years)
	return years
}

// Assets returns the assets with details, sorted.
func (r *Report) Assets() []Asset {
	assets := lo.Keys(r.Details)
	slices.Sort(assets)
	return assets
}

// IsComplete reports whether every disposal had a complete cost basis.
func (r *Report) IsComplete() bool {
	return r.Total.Incomplete == 0 && len(r.Missing) == 0
}

func (r *Report) MarshalJSON() ([]byte, error) {
	var settings jsonObjectWriter
	settings.Append("referenceCurrency", r.Settings.ReferenceCurrency)
	settings.Append("costBasisMethod", r.Settings.Method)
	settings.Append("taxfreeAfterPeriod", r.Settings.TaxFreeAfterPeriod)

	disposals := r.Disposals
	if disposals == nil {
		disposals = []DisposalReport{}
	}
	missing := r.Missing
	if missing == nil {
		missing = []MissingAcquisition{}
	}

	// maps are written in key order.
	var yearly jsonObjectWriter
	for _, y := range r.Years() {
		yearly.Append(strconv.Itoa(y), r.Yearly[y])
	}
	var details, balances jsonObjectWriter
	for _, a := range r.Assets() {
		details.Append(string(a), r.Details[a])
	}
	balanceAssets := lo.Keys(r.Balances)
	slices.Sort(balanceAssets)
	for _, a := range balanceAssets {
		balances.Append(string(a), r.Balances[a])
	}

	var w jsonObjectWriter
	w.Append("settings", &settings)
	w.Append("isComplete", r.IsComplete())
	w.Append("total", r.Total)
	w.Append("yearly", &yearly)
	w.Append("disposals", disposals)
	w.Append("assetDetails", &details)
	w.Append("balances", &balances)
	w.Append("missingAcquisitions", missing)
	return w.MarshalJSON()
}
