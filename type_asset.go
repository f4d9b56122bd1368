package costbasis

import (
	"fmt"
	"strings"

	"github.com/Rhymond/go-money"
)

// Asset is a canonical asset identifier like "BTC", "ETH" or "EUR".
type Asset string

func (a Asset) String() string { return string(a) }

// IsFiat reports whether a is an ISO 4217 currency.
func (a Asset) IsFiat() bool {
	return money.GetCurrency(string(a)) != nil
}

// sharedCostBasis maps assets that are accounted together with another one.
// Wrapping ETH does not dispose of it, so both share the same lots.
var sharedCostBasis = map[Asset]Asset{
	"WETH": "ETH",
}

// CostBasisAsset returns the asset whose lots a is accounted against.
func (a Asset) CostBasisAsset() Asset {
	if b, ok := sharedCostBasis[a]; ok {
		return b
	}
	return a
}

// ValidateCurrency checks that a is usable as a reference currency.
func ValidateCurrency(a Asset) error {
	if a == "" {
		return fmt.Errorf("%w: empty currency", ErrUnsupportedCurrency)
	}
	if strings.ToUpper(string(a)) != string(a) {
		return fmt.Errorf("%w: %q must be upper case", ErrUnsupportedCurrency, a)
	}
	if !a.IsFiat() {
		return fmt.Errorf("%w: %q is not a fiat currency", ErrUnsupportedCurrency, a)
	}
	return nil
}
