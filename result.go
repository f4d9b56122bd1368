package costbasis

import (
	"fmt"
	"strings"
)

// MatchedAcquisition is the part of a lot consumed by one disposal.
type MatchedAcquisition struct {
	Amount  Quantity          // amount used from the lot
	Event   *AcquisitionEvent // the lot
	Taxable bool              // whether it counted on the taxable side
}

// String renders the match for audit trails, using converter to print dates.
func (m MatchedAcquisition) String(converter func(Timestamp) string) string {
	return fmt.Sprintf("%s / %s acquired at %s for price: %s",
		m.Amount, m.Event.Amount, converter(m.Event.Timestamp), m.Event.Rate.Exact())
}

func (m MatchedAcquisition) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("amount", m.Amount)
	w.Append("taxable", m.Taxable)
	w.Append("timestamp", m.Event.Timestamp)
	w.Append("location", m.Event.Location)
	w.Append("fullAmount", m.Event.Amount)
	w.Append("rate", m.Event.Rate)
	w.Append("feeRate", m.Event.FeeRate)
	w.Append("index", m.Event.Index)
	return w.MarshalJSON()
}

// CostBasisInfo is the result of matching one disposal against open lots.
type CostBasisInfo struct {
	// TaxableAmount is the part of the disposal subject to tax.
	TaxableAmount Quantity
	// TaxableBoughtCost is what the taxable part cost to acquire.
	TaxableBoughtCost Money
	// TaxfreeBoughtCost is what the tax-free part cost to acquire.
	TaxfreeBoughtCost Money
	// MatchedAcquisitions lists the consumed lots, in consumption order.
	MatchedAcquisitions []MatchedAcquisition
	// IsComplete is false when open lots could not cover the whole disposal.
	IsComplete bool
}

// MatchedAmount sums the amounts of all matched acquisitions.
func (c CostBasisInfo) MatchedAmount() Quantity {
	var total Quantity
	for _, m := range c.MatchedAcquisitions {
		total = total.Add(m.Amount)
	}
	return total
}

// TaxfreeAmount sums the amounts matched on the tax-free side.
func (c CostBasisInfo) TaxfreeAmount() Quantity {
	var total Quantity
	for _, m := range c.MatchedAcquisitions {
		if !m.Taxable {
			total = total.Add(m.Amount)
		}
	}
	return total
}

// ToStrings renders the taxable and the tax-free matches, as found in exports.
func (c CostBasisInfo) ToStrings(converter func(Timestamp) string) (taxable, free string) {
	var t, f []string
	if !c.IsComplete {
		t = append(t, "Incomplete cost basis information for spend.")
		f = append(f, "Incomplete cost basis information for spend.")
	}
	for _, m := range c.MatchedAcquisitions {
		if m.Taxable {
			t = append(t, m.String(converter))
		} else {
			f = append(f, m.String(converter))
		}
	}
	return strings.Join(t, " "), strings.Join(f, " ")
}

func (c CostBasisInfo) MarshalJSON() ([]byte, error) {
	matched := c.MatchedAcquisitions
	if matched == nil {
		matched = []MatchedAcquisition{}
	}
	var w jsonObjectWriter
	w.Append("isComplete", c.IsComplete)
	w.Append("taxableAmount", c.TaxableAmount)
	w.Append("taxableBoughtCost", c.TaxableBoughtCost)
	w.Append("taxfreeBoughtCost", c.TaxfreeBoughtCost)
	w.Append("matchedAcquisitions", matched)
	return w.MarshalJSON()
}

// MissingAcquisition records a disposal or a reduction that open lots could
// not fully cover.
type MissingAcquisition struct {
	Asset         Asset
	Time          Timestamp
	FoundAmount   Quantity
	MissingAmount Quantity
}

func (m MissingAcquisition) String() string {
	return fmt.Sprintf("could not find cost basis for %s %s disposed at %s (found %s)",
		m.MissingAmount, m.Asset, m.Time, m.FoundAmount)
}

func (m MissingAcquisition) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("asset", m.Asset)
	w.Append("time", m.Time)
	w.Append("foundAmount", m.FoundAmount)
	w.Append("missingAmount", m.MissingAmount)
	return w.MarshalJSON()
}

// AssetDetails summarizes the open lots of an asset.
type AssetDetails struct {
	// TaxFreeAmountLeft is the open amount already held longer than the tax-free period.
	TaxFreeAmountLeft Quantity
	// AverageRate is the amount weighted average acquisition rate of open lots.
	AverageRate Money
}

func (d AssetDetails) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("taxFreeAmountLeft", d.TaxFreeAmountLeft)
	w.Append("averageRate", d.AverageRate)
	return w.MarshalJSON()
}
