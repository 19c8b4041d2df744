package grid

import "fmt"

// Hint is the sizing request of a cell along one axis.
type Hint struct {
	// Min is the smallest size in pixels the cell accepts.
	Min float64
	// Extra is the cell's weight when leftover space is shared out.
	Extra float64
}

// Kind is the kind of element occupying a cell.
type Kind uint8

const (
	KindGroup Kind = iota
	KindChart
	KindLeftAxis
	KindRightAxis
	KindBottomAxis
)

const (
	// AxisWidth is the space reserved for the labels of a vertical axis.
	AxisWidth = 65
	// AxisHeight is the space reserved for the labels of a horizontal axis.
	AxisHeight = 45
)

// Sizing returns the horizontal and vertical hints of the kind.
func (k Kind) Sizing() (x, y Hint) {
	switch k {
	case KindChart:
		return Hint{Extra: 1}, Hint{Extra: 1}
	case KindLeftAxis, KindRightAxis:
		return Hint{Min: AxisWidth}, Hint{}
	case KindBottomAxis:
		return Hint{}, Hint{Min: AxisHeight}
	default:
		return Hint{}, Hint{}
	}
}

func (k Kind) String() string {
	switch k {
	case KindGroup:
		return "group"
	case KindChart:
		return "chart"
	case KindLeftAxis:
		return "left-axis"
	case KindRightAxis:
		return "right-axis"
	case KindBottomAxis:
		return "bottom-axis"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// Participant is an element drawn into a named cell.
type Participant struct {
	Cell string
	Kind Kind
}
