package costbasis

import "errors"

var (
	// ErrInvalidTaxFreePeriod is returned for a negative tax-free period.
	ErrInvalidTaxFreePeriod = errors.New("invalid tax-free period")
	// ErrOrderingViolation is returned when an acquisition is older than a
	// previously recorded acquisition of the same asset.
	ErrOrderingViolation = errors.New("acquisition out of chronological order")
	// ErrUnsupportedCurrency is returned for a reference currency that is not fiat.
	ErrUnsupportedCurrency = errors.New("unsupported reference currency")
	// ErrUnknownAction is returned when decoding an action of unknown kind.
	ErrUnknownAction = errors.New("unknown action kind")
)
