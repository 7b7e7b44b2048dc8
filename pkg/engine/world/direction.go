package world

// Direction represents one of the eight grid moves
type Direction int

// Direction constants, in expansion order: the four cardinal moves first
// (right, down, left, up), then the diagonals.
const (
	East Direction = iota
	South
	West
	North
	NorthWest
	SouthEast
	NorthEast
	SouthWest
)

// CardinalDirections returns the 4-connected move set
func CardinalDirections() []Direction {
	return []Direction{East, South, West, North}
}

// AllDirections returns the 8-connected move set
func AllDirections() []Direction {
	return []Direction{East, South, West, North, NorthWest, SouthEast, NorthEast, SouthWest}
}

// String returns the string representation of a direction
func (d Direction) String() string {
	switch d {
	case North:
		return "North"
	case East:
		return "East"
	case South:
		return "South"
	case West:
		return "West"
	case NorthWest:
		return "NorthWest"
	case SouthEast:
		return "SouthEast"
	case NorthEast:
		return "NorthEast"
	case SouthWest:
		return "SouthWest"
	default:
		return "Unknown"
	}
}

// IsDiagonal returns true for the four diagonal moves
func (d Direction) IsDiagonal() bool {
	return d >= NorthWest && d <= SouthWest
}

// Delta returns the row and column offsets for this direction
func (d Direction) Delta() (rowDelta, colDelta int) {
	switch d {
	case North:
		return -1, 0
	case East:
		return 0, 1
	case South:
		return 1, 0
	case West:
		return 0, -1
	case NorthWest:
		return -1, -1
	case SouthEast:
		return 1, 1
	case NorthEast:
		return -1, 1
	case SouthWest:
		return 1, -1
	default:
		return 0, 0
	}
}

// DirectionBetween returns the direction that moves from a to an adjacent cell b.
// ok is false when b is not one move away from a.
func DirectionBetween(a, b Cell) (dir Direction, ok bool) {
	dr, dc := b.Row-a.Row, b.Col-a.Col
	for _, d := range AllDirections() {
		r, c := d.Delta()
		if r == dr && c == dc {
			return d, true
		}
	}
	return 0, false
}
