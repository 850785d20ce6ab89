package los

import (
	"testing"

	"crab.casa/tactics-engine/grid"
)

func TestClearStraightBlockedByWall(t *testing.T) {
	walls := []grid.Cell{{X: 5, Y: 3}}
	if Clear(walls, grid.Cell{X: 0, Y: 3}, grid.Cell{X: 10, Y: 3}, false) {
		t.Fatal("expected wall to block straight shot")
	}
	if !Clear(walls, grid.Cell{X: 0, Y: 3}, grid.Cell{X: 4, Y: 3}, false) {
		t.Fatal("expected clear shot short of the wall")
	}
}

func TestClearDiagonalIgnoresWalls(t *testing.T) {
	walls := []grid.Cell{{X: 2, Y: 2}}
	if !Clear(walls, grid.Cell{X: 0, Y: 0}, grid.Cell{X: 4, Y: 4}, false) {
		t.Fatal("diagonal trajectories should never be wall-blocked")
	}
}

func TestClearOverWallsIgnoresObstruction(t *testing.T) {
	walls := []grid.Cell{{X: 5, Y: 3}}
	if !Clear(walls, grid.Cell{X: 0, Y: 3}, grid.Cell{X: 10, Y: 3}, true) {
		t.Fatal("overWalls weapons should ignore wall obstruction")
	}
}

func TestAStarFindsShortestPath(t *testing.T) {
	size := grid.Size{W: 5, H: 5}
	path := AStar(size, map[grid.Cell]bool{}, grid.Cell{X: 0, Y: 0}, grid.Cell{X: 4, Y: 0})
	if len(path) != 5 {
		t.Fatalf("expected a 5-cell path, got %d: %v", len(path), path)
	}
}

func TestAStarRoutesAroundWall(t *testing.T) {
	size := grid.Size{W: 5, H: 5}
	blocked := map[grid.Cell]bool{
		{X: 2, Y: 0}: true,
		{X: 2, Y: 1}: true,
		{X: 2, Y: 2}: true,
		{X: 2, Y: 3}: true,
	}
	path := AStar(size, blocked, grid.Cell{X: 0, Y: 0}, grid.Cell{X: 4, Y: 0})
	if path == nil {
		t.Fatal("expected a path around the partial wall")
	}
	for _, c := range path {
		if blocked[c] {
			t.Fatalf("path crosses blocked cell %v", c)
		}
	}
}

func TestAStarNoPath(t *testing.T) {
	size := grid.Size{W: 3, H: 3}
	blocked := map[grid.Cell]bool{
		{X: 1, Y: 0}: true,
		{X: 1, Y: 1}: true,
		{X: 1, Y: 2}: true,
	}
	if path := AStar(size, blocked, grid.Cell{X: 0, Y: 0}, grid.Cell{X: 2, Y: 0}); path != nil {
		t.Fatalf("expected no path, got %v", path)
	}
}

func TestAStarSameCell(t *testing.T) {
	size := grid.Size{W: 3, H: 3}
	path := AStar(size, map[grid.Cell]bool{}, grid.Cell{X: 1, Y: 1}, grid.Cell{X: 1, Y: 1})
	if len(path) != 1 {
		t.Fatalf("expected single-cell path, got %v", path)
	}
}
