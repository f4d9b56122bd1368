package costbasis

import "fmt"

// CostBasisMethod defines which open lot a disposal consumes first.
//
// The method only decides where a new lot is inserted in the open lot list;
// disposals always consume the list from its head.
type CostBasisMethod int

const (
	// FIFO (First-In, First-Out) consumes the oldest lot first.
	FIFO CostBasisMethod = iota
	// LIFO (Last-In, First-Out) consumes the most recent lot first.
	LIFO
	// HIFO (Highest-In, First-Out) consumes the lot with the highest rate first.
	HIFO
	// AverageCost consumes lots in FIFO order but values every consumed unit at
	// the running average cost of the holding.
	AverageCost
)

func (m CostBasisMethod) String() string {
	switch m {
	case FIFO:
		return "fifo"
	case LIFO:
		return "lifo"
	case HIFO:
		return "hifo"
	case AverageCost:
		return "average"
	default:
		return "unknown"
	}
}

// ParseCostBasisMethod parses a string into a CostBasisMethod.
func ParseCostBasisMethod(s string) (CostBasisMethod, error) {
	switch s {
	case "fifo":
		return FIFO, nil
	case "lifo":
		return LIFO, nil
	case "hifo":
		return HIFO, nil
	case "average", "acb":
		return AverageCost, nil
	default:
		return 0, fmt.Errorf("unknown cost basis method: %q", s)
	}
}

func (m CostBasisMethod) MarshalText() ([]byte, error) { return []byte(m.String()), nil }

func (m *CostBasisMethod) UnmarshalText(text []byte) (err error) {
	*m, err = ParseCostBasisMethod(string(text))
	return err
}
