package costbasis

import (
	"fmt"

	"github.com/golang/glog"
	"github.com/samber/lo"
)

// Accountant processes histories into reports.
type Accountant struct {
	settings Settings
	calc     *Calculator
}

// NewAccountant returns an Accountant using settings.
func NewAccountant(settings Settings, opts ...Option) (*Accountant, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	calc, err := NewCalculator(settings.ReferenceCurrency, append([]Option{WithMethod(settings.Method)}, opts...)...)
	if err != nil {
		return nil, err
	}
	if err := calc.SetTaxFreeAfterPeriod(settings.TaxFreeAfterPeriod); err != nil {
		return nil, err
	}
	return &Accountant{settings: settings, calc: calc}, nil
}

// Calculator returns the lot ledger of the last processed history.
func (a *Accountant) Calculator() *Calculator { return a.calc }

// Process replays every action of h, in chronological order, on a fresh lot
// ledger and returns the resulting report.
func (a *Accountant) Process(h *History) (*Report, error) {
	if err := a.calc.Reset(a.settings.ReferenceCurrency); err != nil {
		return nil, err
	}
	h.stableSort()

	report := &Report{Settings: a.settings}
	for _, action := range h.actions {
		if err := action.Validate(); err != nil {
			return nil, err
		}
		disposals, err := a.apply(action)
		if err != nil {
			return nil, fmt.Errorf("%s of %s at %s: %w", action.Kind, action.Asset, action.Timestamp, err)
		}
		report.Disposals = append(report.Disposals, disposals...)
	}

	report.Total, report.Yearly = totals(a.calc.zero(), report.Disposals)
	report.Details = a.calc.CalculateAssetDetails(a.settings.TaxFreeAfterPeriod)
	report.Missing = a.calc.MissingAcquisitions()
	report.Balances = lo.Associate(a.calc.Assets(), func(asset Asset) (Asset, Quantity) {
		q, _ := a.calc.CalculatedAssetAmount(asset)
		return asset, q
	})
	glog.V(1).Infof("Processed %d actions of %s: %d disposals, %d missing acquisitions",
		h.Len(), h.Name(), len(report.Disposals), len(report.Missing))
	return report, nil
}

// apply feeds one action to the calculator.
func (a *Accountant) apply(action Action) ([]DisposalReport, error) {
	c := a.calc
	switch action.Kind {
	case KindAcquisition:
		if action.Asset.IsFiat() {
			return nil, nil
		}
		return nil, c.RecordAcquisition(action.Location, action.Timestamp, action.Description, action.Asset, action.Amount, action.Rate, action.Fee)

	case KindDisposal:
		d, err := a.dispose(action)
		if d == nil || err != nil {
			return nil, err
		}
		return []DisposalReport{*d}, nil

	case KindSpend:
		_, err := c.SpendAsset(action.Location, action.Timestamp, action.Asset, action.Amount, action.Rate, action.Fee, lo.FromPtr(action.Gain), false)
		return nil, err

	case KindSwap:
		// the sold side is worth what was received, the fee goes with the bought side.
		worth := action.ToRate.Mul(action.ToAmount)
		sold := action
		sold.Kind = KindDisposal
		sold.Rate = worth.Div(action.Amount)
		sold.Fee = Money{}
		sold.Gain = &worth
		d, err := a.dispose(sold)
		if err != nil {
			return nil, err
		}
		if !action.ToAsset.IsFiat() {
			err = c.RecordAcquisition(action.Location, action.Timestamp, action.Description, action.ToAsset, action.ToAmount, action.ToRate, action.Fee)
			if err != nil {
				return nil, err
			}
		}
		if d == nil {
			return nil, nil
		}
		return []DisposalReport{*d}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownAction, action.Kind)
}

// dispose records a taxable disposal and computes its profit and loss. Fiat
// disposals only reduce lots and return nil.
func (a *Accountant) dispose(action Action) (*DisposalReport, error) {
	c := a.calc
	proceeds, err := c.inReference(action.Proceeds())
	if err != nil {
		return nil, err
	}
	info, err := c.SpendAsset(action.Location, action.Timestamp, action.Asset, action.Amount, action.Rate, action.Fee, proceeds, true)
	if info == nil || err != nil {
		return nil, err
	}

	// proceeds are shared between the taxable and the tax-free amounts pro rata.
	taxableGain := c.zero()
	if !action.Amount.IsZero() {
		taxableGain = proceeds.Mul(info.TaxableAmount).Div(action.Amount)
	}
	d := &DisposalReport{
		Action:      action,
		CostBasis:   *info,
		GeneralPnL:  proceeds.Sub(info.TaxfreeBoughtCost).Sub(info.TaxableBoughtCost),
		TaxableGain: taxableGain,
		TaxablePnL:  taxableGain.Sub(info.TaxableBoughtCost),
	}
	glog.V(1).Infof("Disposal of %s %s at %s: general pnl %s, taxable pnl %s",
		action.Amount, action.Asset, action.Timestamp, d.GeneralPnL.Exact(), d.TaxablePnL.Exact())
	return d, nil
}
