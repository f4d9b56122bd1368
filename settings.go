package costbasis

import (
	"strings"

	"github.com/go-ini/ini"
	"github.com/pkg/errors"
)

// Settings are the accounting parameters of a run.
type Settings struct {
	ReferenceCurrency  Asset
	TaxFreeAfterPeriod *int64 // seconds, nil disables the exemption
	Method             CostBasisMethod

	// Mappings are the import mappings, by name.
	Mappings map[string]Mapping
}

// DefaultSettings reports in EUR, with FIFO and no tax-free period.
func DefaultSettings() Settings {
	return Settings{
		ReferenceCurrency: "EUR",
		Method:            FIFO,
		Mappings:          make(map[string]Mapping),
	}
}

// Validate checks the settings values.
func (s Settings) Validate() error {
	if err := ValidateCurrency(s.ReferenceCurrency); err != nil {
		return err
	}
	if s.TaxFreeAfterPeriod != nil && *s.TaxFreeAfterPeriod < 0 {
		return errors.Wrapf(ErrInvalidTaxFreePeriod, "%d is negative", *s.TaxFreeAfterPeriod)
	}
	return nil
}

// LoadSettings reads an INI settings file on top of DefaultSettings. Missing
// keys keep their default value.
//
//	reference_currency = EUR
//	cost_basis_method = fifo
//	taxfree_after_period = 31536000
//
//	[import.kraken]
//	items = $.trades[*]
//	kind = $.type
//	kind.buy = acquisition
//	timestamp = $.time
//	...
func LoadSettings(source any) (Settings, error) {
	s := DefaultSettings()
	cfg, err := ini.Load(source)
	if err != nil {
		return s, errors.Wrap(err, "failed to load settings")
	}

	root := cfg.Section("")
	if root.HasKey("reference_currency") {
		s.ReferenceCurrency = Asset(strings.ToUpper(root.Key("reference_currency").String()))
	}
	if root.HasKey("cost_basis_method") {
		m, err := ParseCostBasisMethod(root.Key("cost_basis_method").String())
		if err != nil {
			return s, errors.Wrap(err, "settings cost_basis_method")
		}
		s.Method = m
	}
	if root.HasKey("taxfree_after_period") && root.Key("taxfree_after_period").String() != "" {
		p, err := root.Key("taxfree_after_period").Int64()
		if err != nil {
			return s, errors.Wrapf(ErrInvalidTaxFreePeriod, "%q is not an integer", root.Key("taxfree_after_period").String())
		}
		s.TaxFreeAfterPeriod = &p
	}

	for _, section := range cfg.Sections() {
		name, ok := strings.CutPrefix(section.Name(), "import.")
		if !ok {
			continue
		}
		s.Mappings[name] = mappingOf(name, section)
	}

	return s, s.Validate()
}

// mappingOf reads an [import.<name>] section.
func mappingOf(name string, section *ini.Section) Mapping {
	m := Mapping{
		Name:        name,
		Items:       section.Key("items").MustString("$[*]"),
		Kind:        section.Key("kind").String(),
		Timestamp:   section.Key("timestamp").String(),
		Location:    section.Key("location").String(),
		Description: section.Key("description").String(),
		Asset:       section.Key("asset").String(),
		Amount:      section.Key("amount").String(),
		Rate:        section.Key("rate").String(),
		Fee:         section.Key("fee").String(),
		Kinds:       make(map[string]ActionKind),
	}
	for _, key := range section.Keys() {
		if value, ok := strings.CutPrefix(key.Name(), "kind."); ok {
			m.Kinds[value] = ActionKind(key.String())
		}
	}
	return m
}
