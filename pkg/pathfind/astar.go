// Package pathfind implements grid A* for the AI system: 4-directional,
// unit edge cost, Manhattan heuristic.
package pathfind

import (
	"container/heap"

	"github.com/ESikich/TopDownRPG/internal/domain"
	"github.com/ESikich/TopDownRPG/pkg/dungeon"
)

// BlockCheck reports whether a walkable tile is dynamically blocked (by a
// live entity). It is consulted fresh on every search: occupancy changes
// between calls.
type BlockCheck func(x, y int) bool

type node struct {
	point domain.Point
	f     int
	seq   int // insertion sequence; ties on f resolve deterministically
	index int
}

type openQueue []*node

func (q openQueue) Len() int { return len(q) }

func (q openQueue) Less(i, j int) bool {
	if q[i].f != q[j].f {
		return q[i].f < q[j].f
	}
	return q[i].seq < q[j].seq
}

func (q openQueue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].index = i
	q[j].index = j
}

func (q *openQueue) Push(x any) {
	n := x.(*node)
	n.index = len(*q)
	*q = append(*q, n)
}

func (q *openQueue) Pop() any {
	old := *q
	n := old[len(old)-1]
	old[len(old)-1] = nil
	*q = old[:len(old)-1]
	return n
}

var neighborOffsets = [4]domain.Point{
	{X: 0, Y: 1},
	{X: 0, Y: -1},
	{X: 1, Y: 0},
	{X: -1, Y: 0},
}

// FindPath returns the cell sequence from start to goal, both inclusive, or
// ok=false when the goal is unreachable. Callers wanting the next step use
// index 1. A nil blocked predicate means only tile walkability applies.
func FindPath(start, goal domain.Point, grid dungeon.Grid, blocked BlockCheck) ([]domain.Point, bool) {
	heuristic := func(p domain.Point) int {
		return absInt(p.X-goal.X) + absInt(p.Y-goal.Y)
	}

	passable := func(p domain.Point) bool {
		if !dungeon.Walkable(grid, p.X, p.Y) {
			return false
		}
		if blocked != nil && blocked(p.X, p.Y) {
			return false
		}
		return true
	}

	open := &openQueue{}
	heap.Init(open)
	seq := 0
	heap.Push(open, &node{point: start, f: heuristic(start), seq: seq})

	cameFrom := make(map[domain.Point]domain.Point)
	gScore := map[domain.Point]int{start: 0}

	for open.Len() > 0 {
		current := heap.Pop(open).(*node).point

		if current == goal {
			path := []domain.Point{current}
			for {
				prev, ok := cameFrom[current]
				if !ok {
					break
				}
				current = prev
				path = append(path, current)
			}
			// Reverse: reconstruction walks goal -> start.
			for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
				path[i], path[j] = path[j], path[i]
			}
			return path, true
		}

		for _, off := range neighborOffsets {
			neighbor := domain.Point{X: current.X + off.X, Y: current.Y + off.Y}
			if !passable(neighbor) {
				continue
			}

			tentative := gScore[current] + 1
			if old, seen := gScore[neighbor]; !seen || tentative < old {
				cameFrom[neighbor] = current
				gScore[neighbor] = tentative
				seq++
				heap.Push(open, &node{
					point: neighbor,
					f:     tentative + heuristic(neighbor),
					seq:   seq,
				})
			}
		}
	}

	return nil, false
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
