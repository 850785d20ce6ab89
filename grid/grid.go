// Package grid implements coordinate primitives, bounds checks, and the
// geometric predicates shared by world generation, action resolution, and
// the AI's line-of-sight/pathfinding checks (spec §4.3).
package grid

import (
	"encoding/json"
	"fmt"
	"sort"
)

// Cell is an ordered (x, y) pair, non-negative and below the grid's bounds.
// It marshals as a two-element [x,y] JSON array to match the wire shape
// spec.md §3 describes for Cell.
type Cell struct {
	X, Y int
}

func (c Cell) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]int{c.X, c.Y})
}

func (c *Cell) UnmarshalJSON(data []byte) error {
	var pair [2]int
	if err := json.Unmarshal(data, &pair); err != nil {
		return fmt.Errorf("cell: %w", err)
	}
	c.X, c.Y = pair[0], pair[1]
	return nil
}

// Size is a grid's width/height in cells.
type Size struct {
	W, H int
}

// InBounds reports whether c lies within [0,W) x [0,H).
func (sz Size) InBounds(c Cell) bool {
	return c.X >= 0 && c.Y >= 0 && c.X < sz.W && c.Y < sz.H
}

// Manhattan returns the L1 distance between two cells.
func Manhattan(a, b Cell) int {
	return abs(a.X-b.X) + abs(a.Y-b.Y)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// IsStraight reports whether a and b share a row or column.
func IsStraight(a, b Cell) bool {
	return a.X == b.X || a.Y == b.Y
}

// IsDiagonal reports whether a and b lie on a 45-degree diagonal.
func IsDiagonal(a, b Cell) bool {
	return abs(a.X-b.X) == abs(a.Y-b.Y)
}

// WallBlocksLine reports whether any wall cell lies strictly between a and b
// on their shared row/column. a and b must satisfy IsStraight; callers are
// expected to check that first (per spec §4.3).
func WallBlocksLine(walls []Cell, a, b Cell) bool {
	if a.X == b.X {
		lo, hi := a.Y, b.Y
		if lo > hi {
			lo, hi = hi, lo
		}
		for _, w := range walls {
			if w.X == a.X && w.Y > lo && w.Y < hi {
				return true
			}
		}
		return false
	}
	if a.Y == b.Y {
		lo, hi := a.X, b.X
		if lo > hi {
			lo, hi = hi, lo
		}
		for _, w := range walls {
			if w.Y == a.Y && w.X > lo && w.X < hi {
				return true
			}
		}
		return false
	}
	return false
}

// Occupied reports whether cell equals a non-ignored entity's position or
// any wall's position.
func Occupied(cell, playerPos, aiPos Cell, walls []Cell, ignorePlayer, ignoreAI bool) bool {
	if !ignorePlayer && cell == playerPos {
		return true
	}
	if !ignoreAI && cell == aiPos {
		return true
	}
	for _, w := range walls {
		if w == cell {
			return true
		}
	}
	return false
}

// Ring enumerates cells at Manhattan distance in [rMin, rMax] from center,
// clipped to size, sorted for deterministic iteration (row-major).
func Ring(size Size, center Cell, rMin, rMax int) []Cell {
	var out []Cell
	for dx := -rMax; dx <= rMax; dx++ {
		for dy := -rMax; dy <= rMax; dy++ {
			d := abs(dx) + abs(dy)
			if d < rMin || d > rMax {
				continue
			}
			c := Cell{X: center.X + dx, Y: center.Y + dy}
			if size.InBounds(c) {
				out = append(out, c)
			}
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Y != out[j].Y {
			return out[i].Y < out[j].Y
		}
		return out[i].X < out[j].X
	})
	return out
}

// Centrality is min(x, w-1-x) + min(y, h-1-y): higher means closer to the
// map's center, used by spawn selection (spec §4.2).
func Centrality(size Size, c Cell) int {
	return minInt(c.X, size.W-1-c.X) + minInt(c.Y, size.H-1-c.Y)
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// InteriorCells returns every cell with 1 <= x <= w-2, 1 <= y <= h-2.
func InteriorCells(size Size) []Cell {
	var out []Cell
	for x := 1; x <= size.W-2; x++ {
		for y := 1; y <= size.H-2; y++ {
			out = append(out, Cell{X: x, Y: y})
		}
	}
	return out
}

// AllCells returns every cell in the grid in row-major order.
func AllCells(size Size) []Cell {
	out := make([]Cell, 0, size.W*size.H)
	for y := 0; y < size.H; y++ {
		for x := 0; x < size.W; x++ {
			out = append(out, Cell{X: x, Y: y})
		}
	}
	return out
}

// PlaceWithSpacing greedily accepts candidates whose Manhattan distance to
// every already-placed cell of any kind — both taken (spawns and cells
// placed by earlier calls) and accepted so far in this call — is at least
// minSep, stopping once count cells are accepted or candidates run out.
// Used for the "blue noise" resource/loot placement in spec §4.2.
func PlaceWithSpacing(candidates []Cell, taken map[Cell]bool, minSep, count int) []Cell {
	takenCells := make([]Cell, 0, len(taken))
	for c := range taken {
		takenCells = append(takenCells, c)
	}

	accepted := make([]Cell, 0, count)
	for _, c := range candidates {
		if len(accepted) >= count {
			break
		}
		if taken[c] {
			continue
		}
		ok := true
		for _, t := range takenCells {
			if Manhattan(t, c) < minSep {
				ok = false
				break
			}
		}
		if ok {
			for _, a := range accepted {
				if Manhattan(a, c) < minSep {
					ok = false
					break
				}
			}
		}
		if ok {
			accepted = append(accepted, c)
		}
	}
	return accepted
}
