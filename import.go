package costbasis

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/PaesslerAG/jsonpath"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// Mapping describes how to turn a JSON export, from an exchange for instance,
// into actions.
//
// Items selects the list of records. Every other field is either a JSONPath
// expression, starting with "$", evaluated against one record, or a literal
// value used for all records.
type Mapping struct {
	Name        string
	Items       string
	Kind        string
	Timestamp   string
	Location    string
	Description string
	Asset       string
	Amount      string
	Rate        string
	Fee         string

	// Kinds maps the values found by Kind to action kinds, like "buy" to
	// acquisition. Values already naming an action kind need no entry.
	Kinds map[string]ActionKind
}

// Import reads the JSON document from r and returns the history of all its records.
func (m Mapping) Import(r io.Reader) (*History, error) {
	var doc any
	// numbers are kept as their literal text, they become decimals later.
	dec := json.NewDecoder(r)
	dec.UseNumber()
	if err := dec.Decode(&doc); err != nil {
		return nil, errors.Wrapf(err, "import %s: invalid JSON", m.Name)
	}
	items, err := jsonpath.Get(m.Items, doc)
	if err != nil {
		return nil, errors.Wrapf(err, "import %s: items %q", m.Name, m.Items)
	}
	list, ok := items.([]any)
	if !ok {
		list = []any{items}
	}

	history := NewHistory(m.Name)
	for i, item := range list {
		a, err := m.action(item)
		if err != nil {
			return nil, errors.Wrapf(err, "import %s: record %d", m.Name, i)
		}
		history.actions = append(history.actions, a)
	}
	history.stableSort()
	return history, nil
}

// action maps a single record.
func (m Mapping) action(item any) (Action, error) {
	var a Action

	kind, err := m.text(m.Kind, item)
	if err != nil {
		return a, err
	}
	if k, ok := m.Kinds[kind]; ok {
		a.Kind = k
	} else {
		a.Kind = ActionKind(kind)
	}

	ts, err := m.text(m.Timestamp, item)
	if err != nil {
		return a, err
	}
	if a.Timestamp, err = ParseTimestamp(ts); err != nil {
		return a, errors.Wrapf(err, "timestamp %q", ts)
	}

	loc, err := m.text(m.Location, item)
	if err != nil {
		return a, err
	}
	if loc != "" {
		if a.Location, err = ParseLocation(loc); err != nil {
			return a, err
		}
	}

	if a.Description, err = m.text(m.Description, item); err != nil {
		return a, err
	}
	asset, err := m.text(m.Asset, item)
	if err != nil {
		return a, err
	}
	a.Asset = Asset(strings.ToUpper(asset))

	amount, err := m.decimal(m.Amount, item)
	if err != nil {
		return a, err
	}
	// exports often sign amounts by direction.
	a.Amount = Q(amount.Abs())

	rate, err := m.decimal(m.Rate, item)
	if err != nil {
		return a, err
	}
	a.Rate = M(rate, "")
	fee, err := m.decimal(m.Fee, item)
	if err != nil {
		return a, err
	}
	a.Fee = M(fee.Abs(), "")

	return a, a.Validate()
}

// text evaluates expr against item and returns the result as a string. An
// empty expr yields an empty string.
func (m Mapping) text(expr string, item any) (string, error) {
	if expr == "" {
		return "", nil
	}
	if !strings.HasPrefix(expr, "$") {
		return expr, nil
	}
	val, err := jsonpath.Get(expr, item)
	if err != nil {
		// records may omit optional fields.
		if strings.HasPrefix(err.Error(), "unknown key") {
			return "", nil
		}
		return "", errors.Wrapf(err, "field %q", expr)
	}
	// jsonpath may return a list of one answer or the answer itself: keep the first.
	if list, ok := val.([]any); ok {
		if len(list) == 0 {
			return "", nil
		}
		val = list[0]
	}
	switch v := val.(type) {
	case nil:
		return "", nil
	case string:
		return v, nil
	case fmt.Stringer: // json.Number
		return v.String(), nil
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), nil
	default:
		return fmt.Sprint(v), nil
	}
}

// decimal evaluates expr as a decimal number, zero when empty.
func (m Mapping) decimal(expr string, item any) (decimal.Decimal, error) {
	s, err := m.text(expr, item)
	if err != nil || s == "" {
		return decimal.Zero, err
	}
	d, err := decimal.NewFromString(strings.ReplaceAll(s, ",", ""))
	if err != nil {
		return decimal.Zero, errors.Wrapf(err, "field %q is not a number", expr)
	}
	return d, nil
}
