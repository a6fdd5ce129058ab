package maze

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRejectsInvalidDimensions(t *testing.T) {
	cases := []struct {
		name   string
		width  int
		height int
	}{
		{name: "single lane wide", width: 1, height: 5},
		{name: "single lane tall", width: 5, height: 1},
		{name: "single cell", width: 1, height: 1},
		{name: "zero", width: 0, height: 0},
		{name: "too large", width: maxMazeDimension + 1, height: 5},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m, err := New(tc.width, tc.height, NewRand(1))
			assert.Nil(t, m)
			assert.ErrorIs(t, err, ErrInvalidDimensions)
		})
	}
}

func TestGenerateProducesSpanningTree(t *testing.T) {
	dims := []struct{ width, height int }{
		{2, 2}, {3, 3}, {5, 4}, {4, 9}, {10, 10}, {20, 20},
	}
	seeds := []int64{0, 1, 42, 1337, -7}

	for _, d := range dims {
		for _, seed := range seeds {
			m, err := New(d.width, d.height, NewRand(seed))
			require.NoError(t, err)

			// A spanning tree over N cells has exactly N-1 edges.
			assert.Equal(t, d.width*d.height-1, m.OpenEdgeCount())

			// Every cell is reachable from the start through open edges.
			assert.Equal(t, d.width*d.height, reachableFromStart(m))

			// Open edges are recorded symmetrically on both cells.
			for row := 0; row < d.height; row++ {
				for col := 0; col < d.width; col++ {
					pos := CellPosition{Row: row, Col: col}
					for _, dir := range Directions {
						to := pos.Step(dir)
						if !m.InBound(to.Row, to.Col) {
							assert.False(t, m.Open(pos, dir), "perimeter edge must stay closed")
							continue
						}
						assert.Equal(t, m.Open(pos, dir), m.Open(to, dir.Opposite()))
					}
				}
			}
		}
	}
}

func TestGenerateIsDeterministic(t *testing.T) {
	for _, seed := range []int64{3, 99, 2025} {
		first, err := New(8, 6, NewRand(seed))
		require.NoError(t, err)
		second, err := New(8, 6, NewRand(seed))
		require.NoError(t, err)

		assert.Equal(t, first.String(), second.String())
		assert.Equal(t, first.Start(), second.Start())
		assert.Equal(t, first.Goal(), second.Goal())
		assert.Equal(t, first.GoalDistance(), second.GoalDistance())
	}
}

func TestGoalSelectionOnSmallMaze(t *testing.T) {
	m, err := New(3, 3, NewRand(1))
	require.NoError(t, err)

	assert.Equal(t, 8, m.OpenEdgeCount())
	assert.Equal(t, CellPosition{Row: 0, Col: 0}, m.Start())

	// Any tree path to the far corner walks at least the Manhattan distance,
	// so the farthest cell is never fewer than four steps away on a 3x3 grid.
	assert.GreaterOrEqual(t, m.GoalDistance(), 4)
	assert.NotEqual(t, m.Start(), m.Goal())
}

func TestRandIntRange(t *testing.T) {
	t.Run("values stay in range", func(t *testing.T) {
		rng := NewRand(7)
		for i := 0; i < 1000; i++ {
			v := rng.IntRange(2, 5)
			assert.GreaterOrEqual(t, v, 2)
			assert.Less(t, v, 5)
		}
	})

	t.Run("same seed reproduces the sequence", func(t *testing.T) {
		a, b := NewRand(123), NewRand(123)
		for i := 0; i < 100; i++ {
			assert.Equal(t, a.IntRange(0, 1000), b.IntRange(0, 1000))
		}
	})

	t.Run("empty range panics", func(t *testing.T) {
		rng := NewRand(1)
		assert.PanicsWithValue(t, ErrInvalidRange, func() { rng.IntRange(5, 5) })
		assert.PanicsWithValue(t, ErrInvalidRange, func() { rng.IntRange(6, 5) })
	})
}

// reachableFromStart floods the maze over open edges and counts visited cells.
func reachableFromStart(m *Maze) int {
	visited := map[CellPosition]struct{}{m.Start(): {}}
	queue := []CellPosition{m.Start()}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, d := range Directions {
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
	return len(visited)
}
