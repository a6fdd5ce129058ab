package maze

// Direction identifies one side of a cell. Directions double as bits in a
// cell's open-edge mask, so a cell's full connectivity fits in one byte.
type Direction uint8

const (
	North Direction = 1 << iota
	South
	East
	West
)

// Directions lists all four directions in a fixed order. Generation and
// traversal must enumerate neighbors through this slice, never a map, so the
// same seed always walks cells in the same order.
var Directions = []Direction{North, South, East, West}

// directionNames maps each direction to its display name.
var directionNames = map[Direction]string{
	North: "North",
	South: "South",
	East:  "East",
	West:  "West",
}

// String returns the direction's display name.
func (d Direction) String() string {
	if name, ok := directionNames[d]; ok {
		return name
	}
	return "Unknown"
}

// Opposite returns the direction pointing back across the same edge.
func (d Direction) Opposite() Direction {
	switch d {
	case North:
		return South
	case South:
		return North
	case East:
		return West
	case West:
		return East
	}
	return 0
}

// Delta returns the row and column offsets of a one-cell step in the direction.
func (d Direction) Delta() (row, col int) {
	switch d {
	case North:
		return -1, 0
	case South:
		return 1, 0
	case East:
		return 0, 1
	case West:
		return 0, -1
	}
	return 0, 0
}

// CellPosition represents the position of a cell in the maze grid.
type CellPosition struct {
	Row int `json:"row"` // Row index of the cell
	Col int `json:"col"` // Column index of the cell
}

// Step returns the position one cell away in the given direction.
func (cp CellPosition) Step(d Direction) CellPosition {
	dr, dc := d.Delta()
	return CellPosition{Row: cp.Row + dr, Col: cp.Col + dc}
}

// Move represents a movement from one cell to an adjacent cell in a specific direction.
type Move struct {
	From      CellPosition // Starting cell
	To        CellPosition // Destination cell
	Direction Direction    // Direction of the move
}
