package costbasis

import (
	"slices"
)

// assetEvents holds everything a calculator run knows about one asset.
type assetEvents struct {
	// acquisitions are the open lots. Disposals consume them from the head;
	// the cost basis method decides where new lots are inserted.
	acquisitions []*AcquisitionEvent
	// used holds fully consumed lots, in consumption order. Append only.
	used []*AcquisitionEvent
	// spends is the disposal audit log.
	spends []SpendEvent

	lastAcquired Timestamp
	acquired     bool

	// running totals of the open lots, the average cost is their ratio.
	currentAmount Quantity
	currentCost   Money
}

// insert adds lot to the open lots at the position method dictates.
func (a *assetEvents) insert(lot *AcquisitionEvent, method CostBasisMethod) {
	switch method {
	case LIFO:
		a.acquisitions = slices.Insert(a.acquisitions, 0, lot)
	case HIFO:
		// keep rates descending, a new lot goes after lots with the same rate.
		i := slices.IndexFunc(a.acquisitions, func(open *AcquisitionEvent) bool {
			return open.Rate.LessThan(lot.Rate)
		})
		if i < 0 {
			i = len(a.acquisitions)
		}
		a.acquisitions = slices.Insert(a.acquisitions, i, lot)
	default:
		a.acquisitions = append(a.acquisitions, lot)
	}
	a.currentAmount = a.currentAmount.Add(lot.Amount)
	a.currentCost = a.currentCost.Add(lot.CostOf(lot.Amount))
	a.lastAcquired = lot.Timestamp
	a.acquired = true
}

// openAmount sums the remaining amount of the open lots.
func (a *assetEvents) openAmount() Quantity {
	var total Quantity
	for _, lot := range a.acquisitions {
		total = total.Add(lot.RemainingAmount)
	}
	return total
}

// averageCost returns the cost of one unit at the running average, fees included.
func (a *assetEvents) averageCost() Money {
	return a.currentCost.Div(a.currentAmount)
}

// take consumes amount from the head of the open lots, calling visit with
// every lot touched and the amount taken from it before the lot is reduced.
// Exhausted lots move to the used archive. It returns the amount that the open
// lots could not cover.
func (a *assetEvents) take(amount Quantity, visit func(lot *AcquisitionEvent, used Quantity)) Quantity {
	remaining := amount
	exhausted := 0
	for _, lot := range a.acquisitions {
		if !remaining.IsPositive() {
			break
		}
		used := lot.RemainingAmount
		if remaining.LessThan(used) {
			used = remaining
		}
		if visit != nil {
			visit(lot, used)
		}
		a.reduceTotals(used)
		lot.RemainingAmount = lot.RemainingAmount.Sub(used)
		remaining = remaining.Sub(used)
		if lot.IsExhausted() {
			exhausted++
		}
	}
	// exhausted lots are always a prefix: only the last lot touched can be partial.
	a.used = append(a.used, a.acquisitions[:exhausted]...)
	a.acquisitions = slices.Delete(a.acquisitions, 0, exhausted)
	return remaining
}

// reduceTotals removes used units, valued at the average cost, from the running totals.
func (a *assetEvents) reduceTotals(used Quantity) {
	if used.GreaterThanOrEqual(a.currentAmount) {
		a.currentAmount = Quantity{}
		a.currentCost = Money{cur: a.currentCost.cur}
		return
	}
	a.currentCost = a.currentCost.Sub(a.averageCost().Mul(used))
	a.currentAmount = a.currentAmount.Sub(used)
}
