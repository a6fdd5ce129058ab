/*
Package maze provides generation and inspection of rectangular mazes.

A maze is a grid of cells connected by open edges. Generation carves a
spanning tree over the grid with a randomized depth-first walk, so every cell
is reachable from the start through exactly one simple path. Randomness comes
from an explicit seeded Rand, which makes generation fully reproducible.

The package also selects a goal cell (a farthest cell from the start by graph
distance) and offers an ASCII visualization of the maze for logs and tests.
*/
package maze

import (
	"errors"
	"fmt"
	"strings"
)

const (
	minMazeDimension = 2
	maxMazeDimension = 64
)

// ErrInvalidDimensions reports maze dimensions outside the supported range.
var ErrInvalidDimensions = errors.New("invalid maze dimensions")

// Maze is a rectangular maze carved as a spanning tree over a grid of cells.
// Immutable once generated; regeneration means constructing a new Maze.
type Maze struct {
	width    int           // Width of the maze (number of columns)
	height   int           // Height of the maze (number of rows)
	open     [][]Direction // Per-cell open-edge bitmask
	start    CellPosition  // Carve origin; spawn cell
	goal     CellPosition  // Farthest cell from start
	goalDist int           // Graph distance from start to goal
}

// New generates a maze of the given dimensions using the provided Rand.
// Both dimensions must be at least 2 and at most 64; a single-cell or
// single-lane grid has no meaningful maze and is rejected with
// ErrInvalidDimensions before any generation work.
func New(width, height int, rng Rand) (*Maze, error) {
	if min(width, height) < minMazeDimension || max(width, height) > maxMazeDimension {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}

	open := make([][]Direction, height)
	for i := range open {
		open[i] = make([]Direction, width)
	}

	m := &Maze{
		width:  width,
		height: height,
		open:   open,
		start:  CellPosition{Row: 0, Col: 0},
	}
	m.carve(rng)
	m.goal, m.goalDist = m.farthestFrom(m.start)
	return m, nil
}

// Width returns the number of columns.
func (m *Maze) Width() int { return m.width }

// Height returns the number of rows.
func (m *Maze) Height() int { return m.height }

// Start returns the carve origin, the cell the player spawns in.
func (m *Maze) Start() CellPosition { return m.start }

// Goal returns the goal cell.
func (m *Maze) Goal() CellPosition { return m.goal }

// GoalDistance returns the graph distance from start to goal.
func (m *Maze) GoalDistance() int { return m.goalDist }

// InBound reports whether the given coordinates fall inside the grid.
func (m *Maze) InBound(row, col int) bool {
	return row >= 0 && row < m.height && col >= 0 && col < m.width
}

// Open reports whether the edge on the given side of the cell is open.
// Edges out of the grid, including the whole perimeter, are always closed.
func (m *Maze) Open(pos CellPosition, d Direction) bool {
	if !m.InBound(pos.Row, pos.Col) {
		return false
	}
	return m.open[pos.Row][pos.Col]&d != 0
}

// OpenEdgeCount returns the number of open edges in the maze. Each edge is
// recorded on both adjacent cells, so the bit count is halved. A spanning
// tree over width*height cells always yields width*height - 1.
func (m *Maze) OpenEdgeCount() int {
	bits := 0
	for _, row := range m.open {
		for _, mask := range row {
			for _, d := range Directions {
				if mask&d != 0 {
					bits++
				}
			}
		}
	}
	return bits / 2
}

// neighbors returns the in-bound moves from a cell, in fixed direction order.
func (m *Maze) neighbors(pos CellPosition) []Move {
	result := make([]Move, 0, 4)
	for _, d := range Directions {
		to := pos.Step(d)
		if m.InBound(to.Row, to.Col) {
			result = append(result, Move{From: pos, To: to, Direction: d})
		}
	}
	return result
}

// openEdge removes the wall between two adjacent cells, recording the open
// edge on both sides.
func (m *Maze) openEdge(move Move) {
	m.open[move.From.Row][move.From.Col] |= move.Direction
	m.open[move.To.Row][move.To.Col] |= move.Direction.Opposite()
}

// carve builds the spanning tree with a randomized depth-first walk from the
// start cell. Each iteration either advances into a random unvisited neighbor
// of the stack top, opening the edge crossed, or backtracks. Every cell is
// pushed exactly once, so the walk is linear in cell count.
func (m *Maze) carve(rng Rand) {
	visited := make([][]bool, m.height)
	for i := range visited {
		visited[i] = make([]bool, m.width)
	}

	stack := []CellPosition{m.start}
	visited[m.start.Row][m.start.Col] = true

	for len(stack) > 0 {
		top := stack[len(stack)-1]

		var candidates []Move
		for _, move := range m.neighbors(top) {
			if !visited[move.To.Row][move.To.Col] {
				candidates = append(candidates, move)
			}
		}

		if len(candidates) == 0 {
			stack = stack[:len(stack)-1]
			continue
		}

		move := candidates[rng.IntRange(0, len(candidates))]
		m.openEdge(move)
		visited[move.To.Row][move.To.Col] = true
		stack = append(stack, move.To)
	}
}

// farthestFrom runs a breadth-first distance computation over open edges and
// returns a cell at maximum distance from the origin. Ties are broken by the
// lowest (row, col) pair, keeping goal selection deterministic.
func (m *Maze) farthestFrom(origin CellPosition) (CellPosition, int) {
	dist := make([][]int, m.height)
	for i := range dist {
		dist[i] = make([]int, m.width)
		for j := range dist[i] {
			dist[i][j] = -1
		}
	}

	queue := []CellPosition{origin}
	dist[origin.Row][origin.Col] = 0

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, d := range Directions {
			if !m.Open(cur, d) {
				continue
			}
			next := cur.Step(d)
			if dist[next.Row][next.Col] != -1 {
				continue
			}
			dist[next.Row][next.Col] = dist[cur.Row][cur.Col] + 1
			queue = append(queue, next)
		}
	}

	best := origin
	bestDist := 0
	for row := 0; row < m.height; row++ {
		for col := 0; col < m.width; col++ {
			if dist[row][col] > bestDist {
				best = CellPosition{Row: row, Col: col}
				bestDist = dist[row][col]
			}
		}
	}
	return best, bestDist
}

// String provides a textual representation of the maze, marking the start
// cell with S and the goal cell with G.
func (m *Maze) String() string {
	var output strings.Builder

	// Top boundary
	output.WriteString("+" + strings.Repeat("---+", m.width) + "\n")

	for row := 0; row < m.height; row++ {
		// Cell rows
		cellRow := "|"
		for col := 0; col < m.width; col++ {
			pos := CellPosition{Row: row, Col: col}

			switch pos {
			case m.start:
				cellRow += " S "
			case m.goal:
				cellRow += " G "
			default:
				cellRow += "   "
			}

			// Add east wall or space
			if m.Open(pos, East) {
				cellRow += " "
			} else {
				cellRow += "|"
			}
		}
		output.WriteString(cellRow + "\n")

		// Wall rows
		wallRow := "+"
		for col := 0; col < m.width; col++ {
			// Add south wall or space
			if m.Open(CellPosition{Row: row, Col: col}, South) {
				wallRow += "   +"
			} else {
				wallRow += "---+"
			}
		}
		output.WriteString(wallRow + "\n")
	}

	return output.String()
}
