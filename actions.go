package costbasis

import (
	"errors"
	"fmt"
)

// ActionKind is a typed string identifying what an Action does.
type ActionKind string

// Action kinds, as written in history files.
const (
	// KindAcquisition adds a lot.
	KindAcquisition ActionKind = "acquisition"
	// KindDisposal disposes of an asset, a taxable event.
	KindDisposal ActionKind = "disposal"
	// KindSpend removes an asset from the tracked scope without taxable event.
	KindSpend ActionKind = "spend"
	// KindSwap disposes of an asset in exchange for another one.
	KindSwap ActionKind = "swap"
)

// Action is one normalized event of a user's history, as produced by the
// upstream pipeline. Monetary fields are in the reference currency.
type Action struct {
	Kind        ActionKind
	Timestamp   Timestamp
	Location    Location
	Description string

	Asset  Asset
	Amount Quantity
	Rate   Money // per unit of Asset; for a swap it is derived from the received side
	Fee    Money // total fee
	Gain   *Money // disposal proceeds, fees excluded; nil means Rate x Amount - Fee

	// received side of a swap.
	ToAsset  Asset
	ToAmount Quantity
	ToRate   Money
}

// NewAcquisition returns an acquisition of amount asset at rate per unit, with a total fee.
func NewAcquisition(ts Timestamp, location Location, description string, asset Asset, amount Quantity, rate, fee Money) Action {
	return Action{Kind: KindAcquisition, Timestamp: ts, Location: location, Description: description, Asset: asset, Amount: amount, Rate: rate, Fee: fee}
}

// NewDisposal returns a taxable disposal of amount asset at rate per unit, with a total fee.
func NewDisposal(ts Timestamp, location Location, asset Asset, amount Quantity, rate, fee Money) Action {
	return Action{Kind: KindDisposal, Timestamp: ts, Location: location, Asset: asset, Amount: amount, Rate: rate, Fee: fee}
}

// NewSpend returns a non taxable removal of amount asset.
func NewSpend(ts Timestamp, location Location, description string, asset Asset, amount Quantity) Action {
	return Action{Kind: KindSpend, Timestamp: ts, Location: location, Description: description, Asset: asset, Amount: amount}
}

// NewSwap returns the exchange of amount asset for toAmount toAsset, the
// latter being worth toRate per unit. fee is charged on the received side.
func NewSwap(ts Timestamp, location Location, asset Asset, amount Quantity, toAsset Asset, toAmount Quantity, toRate, fee Money) Action {
	return Action{Kind: KindSwap, Timestamp: ts, Location: location, Asset: asset, Amount: amount, ToAsset: toAsset, ToAmount: toAmount, ToRate: toRate, Fee: fee}
}

// Proceeds returns the gain of a disposal: Gain when set, otherwise Rate x Amount - Fee.
func (a Action) Proceeds() Money {
	if a.Gain != nil {
		return *a.Gain
	}
	return a.Rate.Mul(a.Amount).Sub(a.Fee)
}

// Validate checks that the action is complete.
func (a Action) Validate() error {
	var errs []error
	switch a.Kind {
	case KindAcquisition, KindDisposal, KindSpend, KindSwap:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownAction, a.Kind)
	}
	if a.Asset == "" {
		errs = append(errs, errors.New("asset is missing"))
	}
	if a.Amount.IsNegative() {
		errs = append(errs, fmt.Errorf("amount %s is negative", a.Amount))
	}
	if a.Rate.IsNegative() || a.Fee.IsNegative() {
		errs = append(errs, errors.New("rate and fee must not be negative"))
	}
	if a.Kind == KindSwap {
		if a.ToAsset == "" {
			errs = append(errs, errors.New("received asset is missing"))
		}
		if !a.ToAmount.IsPositive() {
			errs = append(errs, fmt.Errorf("received amount %s must be positive", a.ToAmount))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid %s at %s: %w", a.Kind, a.Timestamp, errors.Join(errs...))
	}
	return nil
}

// MarshalJSON writes the canonical history line of the action.
func (a Action) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("kind", a.Kind)
	w.Append("timestamp", a.Timestamp)
	w.Append("location", a.Location)
	w.Optional("description", a.Description)
	w.Append("asset", a.Asset)
	w.Append("amount", a.Amount)
	if !a.Rate.IsZero() {
		w.Append("rate", a.Rate.Decimal())
	}
	if !a.Fee.IsZero() {
		w.Append("fee", a.Fee.Decimal())
	}
	if a.Gain != nil {
		w.Append("gain", a.Gain.Decimal())
	}
	if a.Kind == KindSwap {
		w.Append("toAsset", a.ToAsset)
		w.Append("toAmount", a.ToAmount)
		w.Append("toRate", a.ToRate.Decimal())
	}
	return w.MarshalJSON()
}
