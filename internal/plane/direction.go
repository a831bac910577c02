package plane

// Direction is a navigation direction on the complex plane.
type Direction int

// Navigation directions. Up points along +i, Right along +1.
const (
	Up Direction = iota
	Down
	Left
	Right
)

// Unit returns the unit vector of the direction.
func (d Direction) Unit() Complex {
	switch d {
	case Up:
		return Complex{Im: 1}
	case Down:
		return Complex{Im: -1}
	case Left:
		return Complex{Re: -1}
	case Right:
		return Complex{Re: 1}
	default:
		return Complex{}
	}
}

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return "unknown"
	}
}
