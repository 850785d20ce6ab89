// Package los provides line-of-sight checks and A* pathfinding over the
// grid, used by shoot resolution (spec §4.4 SHOOT) and by the AI's move
// candidate scoring (spec §4.5).
package los

import (
	"container/heap"

	"crab.casa/tactics-engine/grid"
)

// Clear reports whether a and b have a straight or diagonal trajectory
// unobstructed by any wall cell. Diagonal trajectories are never blocked by
// walls (spec §4.4: only straight shots check interposed walls); arc/lob
// weapons additionally ignore walls entirely via overWalls.
func Clear(walls []grid.Cell, a, b grid.Cell, overWalls bool) bool {
	if overWalls {
		return true
	}
	if grid.IsDiagonal(a, b) {
		return true
	}
	if grid.IsStraight(a, b) {
		return !grid.WallBlocksLine(walls, a, b)
	}
	return false
}

// TrajectoryValid applies SHOOT's per-weaponClass trajectory rule (spec
// §4.4): straight requires a shared row/column, blocked by an interposed
// wall unless overWalls; diag requires a shared diagonal; lob ignores
// walls and range shape entirely; arc requires distance in [2,range]; melee
// requires distance exactly 1. Shared by the SHOOT resolver and the AI's
// SHOOT candidate enumeration so both apply the identical rule.
func TrajectoryValid(class string, from, to grid.Cell, dist, rangeMax int, overWalls bool, walls []grid.Cell) bool {
	switch class {
	case "straight":
		if !grid.IsStraight(from, to) {
			return false
		}
		return overWalls || !grid.WallBlocksLine(walls, from, to)
	case "diag":
		return grid.IsDiagonal(from, to)
	case "lob":
		return true
	case "arc":
		return dist >= 2 && dist <= rangeMax
	case "melee":
		return dist == 1
	default:
		return false
	}
}

type node struct {
	cell     grid.Cell
	g        int
	f        int
	seq      int // LIFO tie-break: higher seq (more recently pushed) wins
	index    int
}

type openSet []*node

func (o openSet) Len() int { return len(o) }
func (o openSet) Less(i, j int) bool {
	if o[i].f != o[j].f {
		return o[i].f < o[j].f
	}
	// LIFO on ties: the most recently pushed node is preferred.
	return o[i].seq > o[j].seq
}
func (o openSet) Swap(i, j int) {
	o[i], o[j] = o[j], o[i]
	o[i].index = i
	o[j].index = j
}
func (o *openSet) Push(x any) {
	n := x.(*node)
	n.index = len(*o)
	*o = append(*o, n)
}
func (o *openSet) Pop() any {
	old := *o
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	item.index = -1
	*o = old[:n-1]
	return item
}

var dirs = [4]grid.Cell{{X: 1, Y: 0}, {X: -1, Y: 0}, {X: 0, Y: 1}, {X: 0, Y: -1}}

// AStar finds a shortest 4-directional path from start to goal, treating
// blocked as impassable. Returns nil if no path exists. Equal-f-score ties
// break LIFO (the node pushed most recently wins), matching the reference
// implementation's tie-break rule (spec §9 design note).
func AStar(size grid.Size, blocked map[grid.Cell]bool, start, goal grid.Cell) []grid.Cell {
	if start == goal {
		return []grid.Cell{start}
	}

	open := &openSet{}
	heap.Init(open)
	seq := 0
	push := func(n *node) {
		n.seq = seq
		seq++
		heap.Push(open, n)
	}

	cameFrom := map[grid.Cell]grid.Cell{}
	gScore := map[grid.Cell]int{start: 0}
	push(&node{cell: start, g: 0, f: grid.Manhattan(start, goal)})

	for open.Len() > 0 {
		cur := heap.Pop(open).(*node)
		if cur.cell == goal {
			return reconstruct(cameFrom, start, goal)
		}
		if g, ok := gScore[cur.cell]; ok && cur.g > g {
			continue // stale entry
		}
		for _, d := range dirs {
			next := grid.Cell{X: cur.cell.X + d.X, Y: cur.cell.Y + d.Y}
			if !size.InBounds(next) || blocked[next] {
				continue
			}
			tentativeG := cur.g + 1
			if g, ok := gScore[next]; ok && tentativeG >= g {
				continue
			}
			cameFrom[next] = cur.cell
			gScore[next] = tentativeG
			push(&node{cell: next, g: tentativeG, f: tentativeG + grid.Manhattan(next, goal)})
		}
	}
	return nil
}

func reconstruct(cameFrom map[grid.Cell]grid.Cell, start, goal grid.Cell) []grid.Cell {
	path := []grid.Cell{goal}
	cur := goal
	for cur != start {
		prev, ok := cameFrom[cur]
		if !ok {
			return nil
		}
		path = append(path, prev)
		cur = prev
	}
	// reverse in place
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}
