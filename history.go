package costbasis

import (
	"iter"
	"slices"
	"sort"
)

// History is the list of actions of one source, an exchange export or a
// wallet for instance.
//
// In a History actions are always in chronological order.
type History struct {
	name    string
	actions []Action
}

// NewHistory creates an empty history.
func NewHistory(name string) *History {
	return &History{name: name, actions: make([]Action, 0)}
}

// Name returns the history name, usually the file it was read from.
func (h *History) Name() string { return h.name }

// Len returns the number of actions.
func (h *History) Len() int { return len(h.actions) }

// Append adds actions to the history, keeping it sorted.
func (h *History) Append(actions ...Action) {
	h.actions = append(h.actions, actions...)
	h.stableSort()
}

// Actions iterates over actions in chronological order.
func (h *History) Actions() iter.Seq2[int, Action] {
	return slices.All(h.actions)
}

// Assets returns every asset moved by the history, sorted.
func (h *History) Assets() []Asset {
	seen := make(map[Asset]struct{})
	for _, a := range h.actions {
		seen[a.Asset] = struct{}{}
		if a.Kind == KindSwap {
			seen[a.ToAsset] = struct{}{}
		}
	}
	assets := make([]Asset, 0, len(seen))
	for a := range seen {
		assets = append(assets, a)
	}
	slices.Sort(assets)
	return assets
}

// Merge returns a new history holding all actions of histories. Actions with
// the same timestamp keep the order of the histories.
func Merge(name string, histories ...*History) *History {
	merged := NewHistory(name)
	for _, h := range histories {
		merged.actions = append(merged.actions, h.actions...)
	}
	merged.stableSort()
	return merged
}

// stableSort sorts actions by timestamp, keeping the original order of
// actions happening at the same time.
func (h *History) stableSort() {
	sort.SliceStable(h.actions, func(i, j int) bool {
		return h.actions[i].Timestamp < h.actions[j].Timestamp
	})
}
