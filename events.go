package costbasis

import "fmt"

// AcquisitionEvent is a lot: an amount of an asset acquired at a given rate.
//
// Everything but RemainingAmount is fixed at creation. RemainingAmount only
// decreases, when disposals consume the lot, and stays within [0, Amount].
type AcquisitionEvent struct {
	Timestamp       Timestamp
	Location        Location
	Description     string
	Amount          Quantity
	RemainingAmount Quantity
	Rate            Money // per unit, in the reference currency
	FeeRate         Money // fee per unit, in the reference currency
	Index           int   // insertion counter, unique per calculator run
}

// newAcquisitionEvent spreads feeTotal over amount. A zero amount gets a zero fee rate.
func newAcquisitionEvent(location Location, ts Timestamp, description string, amount Quantity, rate, feeTotal Money, index int) *AcquisitionEvent {
	return &AcquisitionEvent{
		Timestamp:       ts,
		Location:        location,
		Description:     description,
		Amount:          amount,
		RemainingAmount: amount,
		Rate:            rate,
		FeeRate:         feeTotal.Div(amount),
		Index:           index,
	}
}

// CostOf returns what it cost to acquire q units of this lot, fees included.
func (e *AcquisitionEvent) CostOf(q Quantity) Money {
	return e.Rate.Mul(q).Add(e.FeeRate.Mul(q))
}

// Cost returns the acquisition cost of the remaining amount.
func (e *AcquisitionEvent) Cost() Money { return e.CostOf(e.RemainingAmount) }

// IsExhausted reports whether nothing is left in the lot.
func (e *AcquisitionEvent) IsExhausted() bool { return e.RemainingAmount.IsZero() }

func (e *AcquisitionEvent) String() string {
	return fmt.Sprintf("AcquisitionEvent in %s @ %d. amount: %s remaining: %s rate: %s fee_rate: %s",
		e.Location, e.Timestamp, e.Amount, e.RemainingAmount, e.Rate.Exact(), e.FeeRate.Exact())
}

// SpendEvent records a disposal for the audit trail. It never changes once recorded.
type SpendEvent struct {
	Timestamp Timestamp
	Location  Location
	Amount    Quantity // amount of the asset disposed of
	Rate      Money    // per unit received, in the reference currency
	FeeRate   Money    // fee per unit, in the reference currency
	Gain      Money    // proceeds in the reference currency, fees excluded
}

func (e SpendEvent) String() string {
	return fmt.Sprintf("SpendEvent in %s @ %d. amount: %s rate: %s",
		e.Location, e.Timestamp, e.Amount, e.Rate.Exact())
}
