package costbasis

import (
	"fmt"
	"slices"
	"time"

	"github.com/golang/glog"
	"github.com/samber/lo"
)

// Calculator is the lot ledger of one accounting run.
//
// It keeps, per asset, the open acquisition lots, the lots already consumed
// and the disposals, and matches every disposal against open lots.
//
// Callers must feed events in chronological order. A Calculator is not safe
// for concurrent use: one run owns one Calculator.
type Calculator struct {
	referenceCurrency  Asset
	taxFreeAfterPeriod *int64 // nil disables the exemption
	method             CostBasisMethod
	clock              func() time.Time

	events  map[Asset]*assetEvents
	missing []MissingAcquisition
	count   int // acquisitions recorded so far, used as lot index
}

// Option configures a Calculator.
type Option func(*Calculator)

// WithMethod selects the cost basis method. The default is FIFO.
func WithMethod(m CostBasisMethod) Option {
	return func(c *Calculator) { c.method = m }
}

// WithClock replaces the wall clock used by CalculateAssetDetails.
func WithClock(clock func() time.Time) Option {
	return func(c *Calculator) { c.clock = clock }
}

// NewCalculator returns an empty Calculator reporting in referenceCurrency.
func NewCalculator(referenceCurrency Asset, opts ...Option) (*Calculator, error) {
	c := &Calculator{
		method: FIFO,
		clock:  time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	if err := c.Reset(referenceCurrency); err != nil {
		return nil, err
	}
	return c, nil
}

// Reset clears every lot, disposal and missing acquisition, and switches to
// referenceCurrency. Method, clock and tax-free period are kept.
func (c *Calculator) Reset(referenceCurrency Asset) error {
	if err := ValidateCurrency(referenceCurrency); err != nil {
		return err
	}
	c.referenceCurrency = referenceCurrency
	c.events = make(map[Asset]*assetEvents)
	c.missing = nil
	c.count = 0
	return nil
}

// ReferenceCurrency returns the currency all monetary values are expressed in.
func (c *Calculator) ReferenceCurrency() Asset { return c.referenceCurrency }

// Method returns the cost basis method.
func (c *Calculator) Method() CostBasisMethod { return c.method }

// TaxFreeAfterPeriod returns the exemption period in seconds, nil when disabled.
func (c *Calculator) TaxFreeAfterPeriod() *int64 { return c.taxFreeAfterPeriod }

// SetTaxFreeAfterPeriod sets the holding period, in seconds, after which a
// disposal is tax-free. nil disables the exemption. It only affects later
// disposals.
func (c *Calculator) SetTaxFreeAfterPeriod(period *int64) error {
	if period == nil {
		c.taxFreeAfterPeriod = nil
		return nil
	}
	if *period < 0 {
		return fmt.Errorf("%w: %d is negative", ErrInvalidTaxFreePeriod, *period)
	}
	p := *period
	c.taxFreeAfterPeriod = &p
	return nil
}

// assetEvents returns the state of asset, creating it on first use.
func (c *Calculator) assetEvents(asset Asset) *assetEvents {
	asset = asset.CostBasisAsset()
	ev, ok := c.events[asset]
	if !ok {
		ev = &assetEvents{currentCost: c.zero()}
		c.events[asset] = ev
	}
	return ev
}

func (c *Calculator) zero() Money { return M(0, string(c.referenceCurrency)) }

// inReference tags m with the reference currency, or fails if it carries another one.
func (c *Calculator) inReference(m Money) (Money, error) {
	switch m.cur {
	case "":
		m.cur = string(c.referenceCurrency)
	case string(c.referenceCurrency):
	default:
		return m, fmt.Errorf("%w: %s value in a %s calculator", ErrUnsupportedCurrency, m.cur, c.referenceCurrency)
	}
	return m, nil
}

// RecordAcquisition adds a lot of amount asset bought at rate per unit.
// feeTotal is the whole fee, in the reference currency; it is spread over the
// lot as a per unit fee rate.
//
// Acquisitions of an asset must be recorded in non-decreasing timestamp
// order; an older one is rejected with ErrOrderingViolation. Zero amounts are
// accepted and ignored.
func (c *Calculator) RecordAcquisition(location Location, ts Timestamp, description string, asset Asset, amount Quantity, rate, feeTotal Money) error {
	if amount.IsNegative() {
		return fmt.Errorf("acquisition of %s %s at %s: negative amount", amount, asset, ts)
	}
	rate, err := c.inReference(rate)
	if err != nil {
		return err
	}
	feeTotal, err = c.inReference(feeTotal)
	if err != nil {
		return err
	}
	ev := c.assetEvents(asset)
	if ev.acquired && ts < ev.lastAcquired {
		return fmt.Errorf("%w: %s acquired at %s after an acquisition at %s", ErrOrderingViolation, asset, ts, ev.lastAcquired)
	}
	if amount.IsZero() {
		return nil
	}
	lot := newAcquisitionEvent(location, ts, description, amount, rate, feeTotal, c.count)
	c.count++
	ev.insert(lot, c.method)
	glog.V(2).Infof("Acquired %s %s at %s for %s %s per unit (fee rate %s)",
		amount, asset, ts, rate.Exact(), c.referenceCurrency, lot.FeeRate.Exact())
	return nil
}

// RecordDisposal appends a disposal to the audit log of asset. It does not
// match lots: see CalculateSpendCostBasis.
func (c *Calculator) RecordDisposal(location Location, ts Timestamp, asset Asset, amount Quantity, rate, feeTotal, gain Money) error {
	rate, err := c.inReference(rate)
	if err != nil {
		return err
	}
	if feeTotal, err = c.inReference(feeTotal); err != nil {
		return err
	}
	if gain, err = c.inReference(gain); err != nil {
		return err
	}
	ev := c.assetEvents(asset)
	ev.spends = append(ev.spends, SpendEvent{
		Timestamp: ts,
		Location:  location,
		Amount:    amount,
		Rate:      rate,
		FeeRate:   feeTotal.Div(amount),
		Gain:      gain,
	})
	return nil
}

// isTaxFree reports whether lot was held strictly longer than the tax-free period at ts.
func (c *Calculator) isTaxFree(lot *AcquisitionEvent, ts Timestamp) bool {
	if c.taxFreeAfterPeriod == nil {
		return false
	}
	return heldLongerThan(lot.Timestamp, ts, *c.taxFreeAfterPeriod)
}

// heldLongerThan reports whether something acquired at acquired and still
// held at ts was held strictly longer than period seconds. It never
// overflows, whatever the period.
func heldLongerThan(acquired, ts Timestamp, period int64) bool {
	return ts > acquired && int64(ts-acquired) > period
}

// CalculateSpendCostBasis consumes amount of asset from the open lots for a
// disposal at ts, and splits it into its taxable and tax-free parts.
//
// When the open lots cannot cover amount, whatever could not be matched is
// taxed in full: the result is incomplete, its TaxableAmount is everything
// but the tax-free matches, and a MissingAcquisition is recorded.
func (c *Calculator) CalculateSpendCostBasis(amount Quantity, asset Asset, ts Timestamp) CostBasisInfo {
	info := CostBasisInfo{
		TaxableBoughtCost: c.zero(),
		TaxfreeBoughtCost: c.zero(),
		IsComplete:        true,
	}
	if amount.IsZero() {
		return info
	}

	ev := c.assetEvents(asset)
	if len(ev.acquisitions) == 0 {
		glog.V(1).Infof("No documented acquisition found for %s before %s", asset, ts)
		c.missing = append(c.missing, MissingAcquisition{Asset: asset, Time: ts, MissingAmount: amount})
		info.TaxableAmount = amount
		info.IsComplete = false
		return info
	}

	var average *Money
	if c.method == AverageCost {
		avg := ev.averageCost()
		average = &avg
	}

	var taxfreeAmount Quantity
	remaining := ev.take(amount, func(lot *AcquisitionEvent, used Quantity) {
		cost := lot.CostOf(used)
		if average != nil {
			cost = average.Mul(used)
		}
		taxFree := c.isTaxFree(lot, ts)
		if taxFree {
			taxfreeAmount = taxfreeAmount.Add(used)
			info.TaxfreeBoughtCost = info.TaxfreeBoughtCost.Add(cost)
		} else {
			info.TaxableAmount = info.TaxableAmount.Add(used)
			info.TaxableBoughtCost = info.TaxableBoughtCost.Add(cost)
		}
		info.MatchedAcquisitions = append(info.MatchedAcquisitions, MatchedAcquisition{
			Amount:  used,
			Event:   lot,
			Taxable: !taxFree,
		})
		if glog.V(2) {
			status, usage := "TAXABLE", "entire"
			if taxFree {
				status = "TAX-FREE"
			}
			if used.LessThan(lot.RemainingAmount) {
				usage = "part of"
			}
			glog.Infof("[%s] Spend of %s %s uses up %s historical acquisition of %s at %s for %s %s per unit",
				status, used, asset, usage, lot.Amount, lot.Timestamp, lot.Rate.Exact(), c.referenceCurrency)
		}
	})

	if remaining.IsPositive() {
		c.missing = append(c.missing, MissingAcquisition{
			Asset:         asset,
			Time:          ts,
			FoundAmount:   amount.Sub(remaining),
			MissingAmount: remaining,
		})
		glog.V(1).Infof("Only found acquisitions for %s of %s %s disposed at %s", amount.Sub(remaining), amount, asset, ts)
		info.TaxableAmount = amount.Sub(taxfreeAmount)
		info.IsComplete = false
	}
	return info
}

// ReduceAssetAmount consumes amount of asset from the open lots without any
// cost computation, for assets leaving the tracked scope without a taxable
// disposal.
//
// It is all or nothing: when the open lots cannot cover amount, no lot is
// touched, a MissingAcquisition is recorded for non fiat assets, and it
// returns false. A zero amount always succeeds.
func (c *Calculator) ReduceAssetAmount(asset Asset, amount Quantity, ts Timestamp) bool {
	if amount.IsZero() {
		return true
	}
	var available Quantity
	ev, ok := c.events[asset.CostBasisAsset()]
	if ok {
		available = ev.openAmount()
	}
	if available.LessThan(amount) {
		if !asset.IsFiat() {
			c.missing = append(c.missing, MissingAcquisition{
				Asset:         asset,
				Time:          ts,
				FoundAmount:   available,
				MissingAmount: amount.Sub(available),
			})
		}
		return false
	}
	ev.take(amount, nil)
	return true
}

// SpendAsset records a disposal and, for taxable spends of non fiat assets,
// computes its cost basis. Other spends only reduce the open lots and return
// a nil CostBasisInfo.
func (c *Calculator) SpendAsset(location Location, ts Timestamp, asset Asset, amount Quantity, rate, feeTotal, gain Money, taxable bool) (*CostBasisInfo, error) {
	if err := c.RecordDisposal(location, ts, asset, amount, rate, feeTotal, gain); err != nil {
		return nil, err
	}
	if !asset.IsFiat() && taxable {
		info := c.CalculateSpendCostBasis(amount, asset, ts)
		return &info, nil
	}
	c.ReduceAssetAmount(asset, amount, ts)
	return nil, nil
}

// CalculateAssetDetails summarizes the open lots of every asset as of now:
// the amount held longer than period (nil counts nothing as tax-free) and the
// amount weighted average acquisition rate.
func (c *Calculator) CalculateAssetDetails(period *int64) map[Asset]AssetDetails {
	now := TimestampOf(c.clock())
	details := make(map[Asset]AssetDetails, len(c.events))
	for asset, ev := range c.events {
		var taxFree, total Quantity
		weighted := c.zero()
		for _, lot := range ev.acquisitions {
			if period != nil && heldLongerThan(lot.Timestamp, now, *period) {
				taxFree = taxFree.Add(lot.RemainingAmount)
			}
			total = total.Add(lot.RemainingAmount)
			weighted = weighted.Add(lot.Rate.Mul(lot.RemainingAmount))
		}
		if total.IsZero() {
			details[asset] = AssetDetails{AverageRate: c.zero()}
			continue
		}
		details[asset] = AssetDetails{
			TaxFreeAmountLeft: taxFree,
			AverageRate:       weighted.Div(total),
		}
	}
	return details
}

// CalculatedAssetAmount returns the remaining amount of all open lots of
// asset, and false if the asset was never seen.
func (c *Calculator) CalculatedAssetAmount(asset Asset) (Quantity, bool) {
	ev, ok := c.events[asset.CostBasisAsset()]
	if !ok {
		return Quantity{}, false
	}
	return ev.openAmount(), true
}

// Assets returns every asset seen so far, sorted.
func (c *Calculator) Assets() []Asset {
	assets := lo.Keys(c.events)
	slices.Sort(assets)
	return assets
}

// Acquisitions returns the open lots of asset in consumption order.
func (c *Calculator) Acquisitions(asset Asset) []*AcquisitionEvent {
	if ev, ok := c.events[asset.CostBasisAsset()]; ok {
		return slices.Clone(ev.acquisitions)
	}
	return nil
}

// UsedAcquisitions returns the fully consumed lots of asset.
func (c *Calculator) UsedAcquisitions(asset Asset) []*AcquisitionEvent {
	if ev, ok := c.events[asset.CostBasisAsset()]; ok {
		return slices.Clone(ev.used)
	}
	return nil
}

// Spends returns the disposal log of asset.
func (c *Calculator) Spends(asset Asset) []SpendEvent {
	if ev, ok := c.events[asset.CostBasisAsset()]; ok {
		return slices.Clone(ev.spends)
	}
	return nil
}

// MissingAcquisitions returns every disposal or reduction that open lots
// could not fully cover, in processing order.
func (c *Calculator) MissingAcquisitions() []MissingAcquisition {
	return slices.Clone(c.missing)
}
