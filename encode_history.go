package costbasis

import (
	"bufio"
	"io"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// json is a drop in replacement of encoding/json.
var json = jsoniter.ConfigCompatibleWithStandardLibrary

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// actionLine has every field any action kind can carry.
type actionLine struct {
	Kind        ActionKind       `json:"kind"`
	Timestamp   Timestamp        `json:"timestamp"`
	Location    Location         `json:"location"`
	Description string           `json:"description"`
	Asset       Asset            `json:"asset"`
	Amount      Quantity         `json:"amount"`
	Rate        decimal.Decimal  `json:"rate"`
	Fee         decimal.Decimal  `json:"fee"`
	Gain        *decimal.Decimal `json:"gain"`
	ToAsset     Asset            `json:"toAsset"`
	ToAmount    Quantity         `json:"toAmount"`
	ToRate      decimal.Decimal  `json:"toRate"`
}

// action returns the Action of the line. Monetary values carry no currency:
// they are in whatever reference currency the history is processed with.
func (l actionLine) action() Action {
	a := Action{
		Kind:        l.Kind,
		Timestamp:   l.Timestamp,
		Location:    l.Location,
		Description: l.Description,
		Asset:       l.Asset,
		Amount:      l.Amount,
		Rate:        M(l.Rate, ""),
		Fee:         M(l.Fee, ""),
		ToAsset:     l.ToAsset,
		ToAmount:    l.ToAmount,
		ToRate:      M(l.ToRate, ""),
	}
	if l.Gain != nil {
		gain := M(*l.Gain, "")
		a.Gain = &gain
	}
	return a
}

// DecodeHistory decodes actions from a stream of JSONL data, one action per
// line, and returns a sorted History. Errors report the faulty line number.
func DecodeHistory(name string, r io.Reader) (*History, error) {
	history := NewHistory(name)
	scanner := bufio.NewScanner(r)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		lineBytes := scanner.Bytes()
		if len(lineBytes) == 0 {
			continue // Skip empty lines
		}

		var line actionLine
		if err := json.Unmarshal(lineBytes, &line); err != nil {
			return nil, errors.Wrapf(err, "%s:%d: could not decode action", name, lineNo)
		}
		action := line.action()
		if err := action.Validate(); err != nil {
			return nil, errors.Wrapf(err, "%s:%d", name, lineNo)
		}
		history.actions = append(history.actions, action)
	}

	if err := scanner.Err(); err != nil {
		return nil, errors.Wrapf(err, "error reading %s", name)
	}

	history.stableSort()
	return history, nil
}

// EncodeAction writes a single action as a JSON line.
func EncodeAction(w io.Writer, a Action) error {
	data, err := json.Marshal(a)
	if err != nil {
		return errors.Wrap(err, "failed to marshal action")
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return errors.Wrap(err, "failed to write action")
	}
	return nil
}

// EncodeHistory writes every action of history in chronological order, in JSONL format.
func EncodeHistory(w io.Writer, history *History) error {
	history.stableSort()
	for _, a := range history.actions {
		if err := EncodeAction(w, a); err != nil {
			return err
		}
	}
	return nil
}
