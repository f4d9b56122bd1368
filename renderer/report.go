package renderer

import (
	"fmt"
	"io"
	"strings"

	"github.com/etnz/costbasis"
)

// Markdown renders a cost basis report.
func Markdown(r *costbasis.Report) string {
	var b strings.Builder
	s := r.Settings

	fmt.Fprintf(&b, "# Cost Basis Report\n\n")
	fmt.Fprintf(&b, "Reference currency: %s\n\n", s.ReferenceCurrency)
	fmt.Fprintf(&b, "Method: %s\n\n", s.Method)
	if s.TaxFreeAfterPeriod != nil {
		fmt.Fprintf(&b, "Tax-free after: %s\n\n", period(*s.TaxFreeAfterPeriod))
	} else {
		fmt.Fprint(&b, "Tax-free after: never\n\n")
	}
	if !r.IsComplete() {
		fmt.Fprint(&b, "> **Warning**: some disposals have no documented acquisition, their cost basis is incomplete.\n\n")
	}

	ConditionalBlock(&b, func(w io.Writer) bool {
		fmt.Fprint(w, "## Disposals\n\n")
		fmt.Fprintln(w, "| Date | Asset | Amount | Taxable | Rate | Cost Basis | PnL | Taxable PnL |")
		fmt.Fprintln(w, "|:---|:---|---:|---:|---:|---:|---:|---:|")
		for _, d := range r.Disposals {
			cost := d.CostBasis.TaxableBoughtCost.Add(d.CostBasis.TaxfreeBoughtCost)
			taxable := d.CostBasis.TaxableAmount.String()
			if !d.CostBasis.IsComplete {
				taxable += " ⚠"
			}
			fmt.Fprintf(w, "| %s | %s | %s | %s | %s | %s | %s | %s |\n",
				d.Action.Timestamp.Date(),
				d.Action.Asset,
				d.Action.Amount,
				taxable,
				d.Action.Rate.Exact(),
				cost,
				d.GeneralPnL.SignedString(),
				d.TaxablePnL.SignedString(),
			)
		}
		fmt.Fprintf(w, "| **%s** | | | | | | **%s** | **%s** |\n\n",
			"Total", r.Total.GeneralPnL.SignedString(), r.Total.TaxablePnL.SignedString())
		return len(r.Disposals) > 0
	})

	ConditionalBlock(&b, func(w io.Writer) bool {
		fmt.Fprint(w, "## Yearly Totals\n\n")
		fmt.Fprintln(w, "| Year | Disposals | PnL | Taxable PnL |")
		fmt.Fprintln(w, "|:---|---:|---:|---:|")
		for _, y := range r.Years() {
			t := r.Yearly[y]
			fmt.Fprintf(w, "| %d | %d | %s | %s |\n", y, t.Disposals, t.GeneralPnL.SignedString(), t.TaxablePnL.SignedString())
		}
		fmt.Fprintln(w)
		return len(r.Yearly) > 0
	})

	ConditionalBlock(&b, func(w io.Writer) bool {
		fmt.Fprint(w, "## Open Positions\n\n")
		fmt.Fprintln(w, "| Asset | Amount | Tax-free Amount | Average Rate |")
		fmt.Fprintln(w, "|:---|---:|---:|---:|")
		n := 0
		for _, asset := range r.Assets() {
			amount := r.Balances[asset]
			if amount.IsZero() {
				continue
			}
			n++
			details := r.Details[asset]
			fmt.Fprintf(w, "| %s | %s | %s | %s |\n", asset, amount, details.TaxFreeAmountLeft, details.AverageRate)
		}
		fmt.Fprintln(w)
		return n > 0
	})

	ConditionalBlock(&b, func(w io.Writer) bool {
		fmt.Fprint(w, "## Missing Acquisitions\n\n")
		fmt.Fprintln(w, "| Date | Asset | Found | Missing |")
		fmt.Fprintln(w, "|:---|:---|---:|---:|")
		for _, m := range r.Missing {
			fmt.Fprintf(w, "| %s | %s | %s | %s |\n", m.Time.Date(), m.Asset, m.FoundAmount, m.MissingAmount)
		}
		fmt.Fprintln(w)
		return len(r.Missing) > 0
	})

	return b.String()
}

// period prints a duration in seconds the way humans think about holding periods.
func period(seconds int64) string {
	const day = 24 * 60 * 60
	switch {
	case seconds > 0 && seconds%costbasis.YearInSeconds == 0:
		if n := seconds / costbasis.YearInSeconds; n > 1 {
			return fmt.Sprintf("%d years", n)
		}
		return "1 year"
	case seconds > 0 && seconds%day == 0:
		return fmt.Sprintf("%d days", seconds/day)
	default:
		return fmt.Sprintf("%d seconds", seconds)
	}
}
