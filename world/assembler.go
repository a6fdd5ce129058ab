/*
Package world translates an abstract maze graph into a concrete 3D layout:
wall segments on every closed edge, floor and ceiling panels per cell, a spawn
transform in the start cell and a goal marker in the goal cell.

Cells map onto the XZ plane: the cell at (row, col) spans
[col*cellSize, (col+1)*cellSize) on X and [row*cellSize, (row+1)*cellSize)
on Z, so north (row-1) is -Z and east (col+1) is +X. Walls sit centered on
the shared cell boundary and each boundary is emitted exactly once: a cell
owns its north and west edges, while the last row and column contribute the
remaining perimeter.
*/
package world

import (
	"errors"
	"fmt"
	"math"

	"github.com/beka-birhanu/maze3d/maze"
)

var (
	// ErrAssemblyInconsistency reports a maze graph that is not a single
	// connected spanning tree. Generation guarantees the invariant, so
	// hitting this means a logic bug upstream, not a recoverable condition.
	ErrAssemblyInconsistency = errors.New("maze graph is not a connected spanning tree")

	// ErrInvalidWorldConfig reports non-positive or mutually impossible
	// world sizing constants.
	ErrInvalidWorldConfig = errors.New("invalid world configuration")
)

// Config holds the sizing constants the assembler scales the maze by.
type Config struct {
	CellSize         float64 // World units per grid cell
	WallHeight       float64 // Wall height in world units
	WallThickness    float64 // Wall thickness in world units
	PlayerHalfHeight float64 // Spawn lift above the floor
	GoalRadius       float64 // Radius of the goal trigger volume
}

// validate rejects configurations that would degenerate into zero-thickness
// colliders or walls wider than the cells they separate.
func (c Config) validate() error {
	if c.CellSize <= 0 || c.WallHeight <= 0 || c.WallThickness <= 0 ||
		c.PlayerHalfHeight <= 0 || c.GoalRadius <= 0 {
		return fmt.Errorf("%w: all sizes must be positive", ErrInvalidWorldConfig)
	}
	if c.WallThickness >= c.CellSize {
		return fmt.Errorf("%w: wall thickness %v must be below cell size %v",
			ErrInvalidWorldConfig, c.WallThickness, c.CellSize)
	}
	return nil
}

// Assemble converts a generated maze into world geometry. The maze is
// re-checked against the spanning-tree invariant first and
// ErrAssemblyInconsistency is returned before any geometry is emitted when
// the check fails.
func Assemble(m *maze.Maze, cfg Config) (*Geometry, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if err := checkTree(m); err != nil {
		return nil, err
	}

	geo := &Geometry{
		Walls:    make([]WallSegment, 0, m.Width()*m.Height()*2+m.Width()+m.Height()),
		Floors:   make([]Panel, 0, m.Width()*m.Height()),
		Ceilings: make([]Panel, 0, m.Width()*m.Height()),
	}

	for row := 0; row < m.Height(); row++ {
		for col := 0; col < m.Width(); col++ {
			pos := maze.CellPosition{Row: row, Col: col}
			center := cellCenter(pos, cfg.CellSize)

			geo.Floors = append(geo.Floors, Panel{
				Center: Vec3{X: center.X, Y: 0, Z: center.Z},
				Size:   cfg.CellSize,
			})
			geo.Ceilings = append(geo.Ceilings, Panel{
				Center: Vec3{X: center.X, Y: cfg.WallHeight, Z: center.Z},
				Size:   cfg.CellSize,
			})

			// Each cell owns its north and west edges; south and east
			// walls are only emitted on the perimeter. This keeps every
			// shared boundary down to a single segment.
			if !m.Open(pos, maze.North) {
				geo.Walls = append(geo.Walls, edgeWall(pos, maze.North, cfg))
			}
			if !m.Open(pos, maze.West) {
				geo.Walls = append(geo.Walls, edgeWall(pos, maze.West, cfg))
			}
			if row == m.Height()-1 {
				geo.Walls = append(geo.Walls, edgeWall(pos, maze.South, cfg))
			}
			if col == m.Width()-1 {
				geo.Walls = append(geo.Walls, edgeWall(pos, maze.East, cfg))
			}
		}
	}

	geo.Spawn = spawnTransform(m, cfg)
	goalCenter := cellCenter(m.Goal(), cfg.CellSize)
	geo.Goal = GoalMarker{
		Center: Vec3{X: goalCenter.X, Y: cfg.PlayerHalfHeight, Z: goalCenter.Z},
		Radius: cfg.GoalRadius,
	}

	return geo, nil
}

// checkTree verifies the spanning-tree invariant: exact edge count and full
// reachability from the start.
func checkTree(m *maze.Maze) error {
	cells := m.Width() * m.Height()
	if got := m.OpenEdgeCount(); got != cells-1 {
		return fmt.Errorf("%w: %d open edges for %d cells", ErrAssemblyInconsistency, got, cells)
	}

	visited := map[maze.CellPosition]struct{}{m.Start(): {}}
	queue := []maze.CellPosition{m.Start()}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, d := range maze.Directions {
			if !m.Open(cur, d) {
				continue
			}
			next := cur.Step(d)
			if _, ok := visited[next]; ok {
				continue
			}
			visited[next] = struct{}{}
			queue = append(queue, next)
		}
	}
	if len(visited) != cells {
		return fmt.Errorf("%w: %d of %d cells reachable", ErrAssemblyInconsistency, len(visited), cells)
	}
	return nil
}

// cellCenter returns the world-space center of a cell at floor level.
func cellCenter(pos maze.CellPosition, cellSize float64) Vec3 {
	return Vec3{
		X: (float64(pos.Col) + 0.5) * cellSize,
		Y: 0,
		Z: (float64(pos.Row) + 0.5) * cellSize,
	}
}

// edgeWall builds the wall segment centered on the given edge of a cell.
// North/south edges run along X (yaw 0), east/west edges along Z (yaw pi/2).
func edgeWall(pos maze.CellPosition, d maze.Direction, cfg Config) WallSegment {
	center := cellCenter(pos, cfg.CellSize)
	seg := WallSegment{
		Length:    cfg.CellSize,
		Thickness: cfg.WallThickness,
		Height:    cfg.WallHeight,
	}

	half := cfg.CellSize / 2
	switch d {
	case maze.North:
		seg.Center = Vec3{X: center.X, Y: cfg.WallHeight / 2, Z: center.Z - half}
	case maze.South:
		seg.Center = Vec3{X: center.X, Y: cfg.WallHeight / 2, Z: center.Z + half}
	case maze.East:
		seg.Center = Vec3{X: center.X + half, Y: cfg.WallHeight / 2, Z: center.Z}
		seg.Yaw = math.Pi / 2
	case maze.West:
		seg.Center = Vec3{X: center.X - half, Y: cfg.WallHeight / 2, Z: center.Z}
		seg.Yaw = math.Pi / 2
	}
	return seg
}

// spawnTransform places the player at the start cell's center, lifted by half
// the player height, facing the first open direction so the player never
// spawns staring into a wall.
func spawnTransform(m *maze.Maze, cfg Config) Transform {
	center := cellCenter(m.Start(), cfg.CellSize)
	t := Transform{
		Position: Vec3{X: center.X, Y: cfg.PlayerHalfHeight, Z: center.Z},
	}

	for _, d := range maze.Directions {
		if m.Open(m.Start(), d) {
			t.Yaw = yawFacing(d)
			break
		}
	}
	return t
}

// yawFacing returns the heading that looks straight down the given direction.
func yawFacing(d maze.Direction) float64 {
	switch d {
	case maze.South:
		return 0
	case maze.East:
		return math.Pi / 2
	case maze.North:
		return math.Pi
	case maze.West:
		return -math.Pi / 2
	}
	return 0
}
