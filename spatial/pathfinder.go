package spatial

import (
	"container/heap"
	"math"
)

// Cell is a quantized grid coordinate, CellSize meters per cell.
type Cell struct {
	Col, Row int
}

// Quantize maps a continuous point to the grid cell whose center is
// nearest to it.
func Quantize(p Point) Cell {
	return Cell{
		Col: int(math.Round(p.X / CellSize)),
		Row: int(math.Round(p.Y / CellSize)),
	}
}

// WorldOf returns the world-space center of a grid cell.
func WorldOf(c Cell) Point {
	return Point{X: float64(c.Col) * CellSize, Y: float64(c.Row) * CellSize}
}

// octileNeighbors are the eight grid offsets, cardinals first then
// diagonals, so callers can special-case the no-corner-cutting rule.
var octileNeighbors = []Cell{
	{1, 0}, {-1, 0}, {0, 1}, {0, -1}, // cardinal
	{1, 1}, {1, -1}, {-1, 1}, {-1, -1}, // diagonal
}

func isDiagonal(offset Cell) bool {
	return offset.Col != 0 && offset.Row != 0
}

// BuildBlockedSet rasterizes blockers onto the grid covering bounds: a
// cell is blocked if its center lies inside any blocker.
func BuildBlockedSet(bounds Bounds, blockers []Blocker) map[Cell]bool {
	blocked := make(map[Cell]bool)
	minCol := int(math.Floor(-bounds.Width / 2 / CellSize))
	maxCol := int(math.Ceil(bounds.Width / 2 / CellSize))
	minRow := int(math.Floor(-bounds.Height / 2 / CellSize))
	maxRow := int(math.Ceil(bounds.Height / 2 / CellSize))

	for col := minCol; col <= maxCol; col++ {
		for row := minRow; row <= maxRow; row++ {
			c := Cell{col, row}
			if AnyContains(WorldOf(c), blockers) {
				blocked[c] = true
			}
		}
	}
	return blocked
}

// nearestUnblocked expands rings outward from c until it finds a cell not
// in blocked, searching up to maxRing rings.
func nearestUnblocked(c Cell, blocked map[Cell]bool, maxRing int) Cell {
	if !blocked[c] {
		return c
	}
	for ring := 1; ring <= maxRing; ring++ {
		for dc := -ring; dc <= ring; dc++ {
			for dr := -ring; dr <= ring; dr++ {
				if abs(dc) != ring && abs(dr) != ring {
					continue // only the ring's perimeter
				}
				cand := Cell{c.Col + dc, c.Row + dr}
				if !blocked[cand] {
					return cand
				}
			}
		}
	}
	return c
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// octileHeuristic is the admissible distance estimate for 8-connected
// grids with diagonal cost sqrt(2) and cardinal cost 1.
func octileHeuristic(a, b Cell) float64 {
	dx := math.Abs(float64(a.Col - b.Col))
	dy := math.Abs(float64(a.Row - b.Row))
	if dx < dy {
		dx, dy = dy, dx
	}
	return dx + (math.Sqrt2-1)*dy
}

type pqItem struct {
	cell     Cell
	f        float64
	index    int
}

type priorityQueue []*pqItem

func (pq priorityQueue) Len() int            { return len(pq) }
func (pq priorityQueue) Less(i, j int) bool  { return pq[i].f < pq[j].f }
func (pq priorityQueue) Swap(i, j int)       { pq[i], pq[j] = pq[j], pq[i]; pq[i].index = i; pq[j].index = j }
func (pq *priorityQueue) Push(x any) {
	item := x.(*pqItem)
	item.index = len(*pq)
	*pq = append(*pq, item)
}
func (pq *priorityQueue) Pop() any {
	old := *pq
	n := len(old)
	item := old[n-1]
	*pq = old[:n-1]
	return item
}

// astar runs octile A* from start to goal over the blocked set, rejecting
// diagonal moves that would cut a corner (either adjacent cardinal cell
// blocked). Returns the cell path including start and goal, or nil if no
// path exists.
func astar(start, goal Cell, blocked map[Cell]bool) []Cell {
	if blocked[goal] {
		return nil
	}

	gScore := map[Cell]float64{start: 0}
	cameFrom := map[Cell]Cell{}
	open := &priorityQueue{{cell: start, f: octileHeuristic(start, goal)}}
	heap.Init(open)
	visited := map[Cell]bool{}

	for open.Len() > 0 {
		current := heap.Pop(open).(*pqItem).cell
		if visited[current] {
			continue
		}
		visited[current] = true

		if current == goal {
			return reconstructCells(cameFrom, current)
		}

		for _, offset := range octileNeighbors {
			neighbor := Cell{current.Col + offset.Col, current.Row + offset.Row}
			if blocked[neighbor] {
				continue
			}
			if isDiagonal(offset) {
				c1 := Cell{current.Col + offset.Col, current.Row}
				c2 := Cell{current.Col, current.Row + offset.Row}
				if blocked[c1] || blocked[c2] {
					continue // no corner cutting
				}
			}

			stepCost := 1.0
			if isDiagonal(offset) {
				stepCost = math.Sqrt2
			}
			tentative := gScore[current] + stepCost
			if existing, ok := gScore[neighbor]; !ok || tentative < existing {
				gScore[neighbor] = tentative
				cameFrom[neighbor] = current
				f := tentative + octileHeuristic(neighbor, goal)
				heap.Push(open, &pqItem{cell: neighbor, f: f})
			}
		}
	}
	return nil
}

func reconstructCells(cameFrom map[Cell]Cell, goal Cell) []Cell {
	path := []Cell{goal}
	current := goal
	for {
		prev, ok := cameFrom[current]
		if !ok {
			break
		}
		path = append(path, prev)
		current = prev
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

// FindPath returns a path from A to B avoiding blockers. If the straight
// segment is already clear it is returned directly ([A, B]). Otherwise it
// quantizes to the grid, runs octile A* with no corner-cutting, converts
// back to world coordinates (with exact endpoints), and string-pulls the
// result.
func FindPath(a, b Point, blockers []Blocker, bounds Bounds) []Point {
	if !AnyIntersects(a, b, blockers) {
		return []Point{a, b}
	}

	blocked := BuildBlockedSet(bounds, blockers)
	startCell := nearestUnblocked(Quantize(a), blocked, 10)
	goalCell := nearestUnblocked(Quantize(b), blocked, 10)

	cells := astar(startCell, goalCell, blocked)
	if cells == nil {
		return nil
	}

	world := make([]Point, len(cells))
	for i, c := range cells {
		world[i] = WorldOf(c)
	}
	world[0] = a
	world[len(world)-1] = b

	return stringPull(world, blockers)
}

// stringPull greedily skips waypoints whose segment to a farther waypoint
// is unobstructed, shortening the path without revisiting the grid.
func stringPull(path []Point, blockers []Blocker) []Point {
	if len(path) <= 2 {
		return path
	}
	out := []Point{path[0]}
	anchor := 0
	for i := 1; i < len(path); i++ {
		if i == len(path)-1 {
			out = append(out, path[i])
			continue
		}
		if AnyIntersects(path[anchor], path[i+1], blockers) {
			out = append(out, path[i])
			anchor = i
		}
	}
	return out
}

// PathLength returns the total length of a path's segments.
func PathLength(path []Point) float64 {
	total := 0.0
	for i := 1; i < len(path); i++ {
		total += path[i-1].Distance(path[i])
	}
	return total
}

// TruncatePath returns the prefix of path reached after traveling
// budget meters, ending with the exact interpolated stopping point
// (path is returned unchanged if budget covers its full length).
func TruncatePath(path []Point, budget float64) []Point {
	if len(path) == 0 {
		return nil
	}
	if budget <= 0 {
		return []Point{path[0]}
	}
	remaining := budget
	out := []Point{path[0]}
	for i := 1; i < len(path); i++ {
		segLen := path[i-1].Distance(path[i])
		if segLen >= remaining {
			t := 0.0
			if segLen > 0 {
				t = remaining / segLen
			}
			out = append(out, path[i-1].Add(path[i].Sub(path[i-1]).Scale(t)))
			return out
		}
		remaining -= segLen
		out = append(out, path[i])
	}
	return out
}

// PositionAlongPath walks path and returns the point reached after
// traveling budget meters, truncating at the path's end if budget exceeds
// its total length.
func PositionAlongPath(path []Point, budget float64) Point {
	if len(path) == 0 {
		return Point{}
	}
	if budget <= 0 {
		return path[0]
	}
	remaining := budget
	for i := 1; i < len(path); i++ {
		segLen := path[i-1].Distance(path[i])
		if segLen >= remaining {
			t := remaining / segLen
			return path[i-1].Add(path[i].Sub(path[i-1]).Scale(t))
		}
		remaining -= segLen
	}
	return path[len(path)-1]
}
