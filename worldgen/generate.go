package worldgen

import (
	"fmt"
	"math"
	"sort"

	"crab.casa/tactics-engine/grid"
	"crab.casa/tactics-engine/match"
	"crab.casa/tactics-engine/rng"
)

const (
	totalLoot  = 4
	maxWeapons = 2
)

// Input parameterizes one world generation call (spec §4.2).
type Input struct {
	Seed           string
	W, H           int
	ELO            int
	SeedingVersion string
}

// Output is the generated world, ready to seed a new match.
type Output struct {
	SeedKey     string
	Resources   match.Resources
	Loot        []match.Loot
	Spawn       match.Spawn
	Constraints match.Constraints
}

// SeedKey builds the durable identity of a generation call's inputs (spec
// §4.1, §6 "the durable identity of world generation inputs").
func SeedKey(in Input) string {
	return fmt.Sprintf("S:%s|W:%d|H:%d|V:%s", in.Seed, in.W, in.H, in.SeedingVersion)
}

// Generate produces spawn, resource, and loot placements deterministically
// from in. Given identical inputs it returns byte-identical output.
func Generate(in Input) (Output, error) {
	if err := loadTables(); err != nil {
		return Output{}, fmt.Errorf("worldgen: load tables: %w", err)
	}
	size := grid.Size{W: in.W, H: in.H}
	seedKey := SeedKey(in)

	spawnStream := rng.DeriveStream(seedKey, "spawn")
	resourcesStream := rng.DeriveStream(seedKey, "resources")
	lootStream := rng.DeriveStream(seedKey, "loot")

	spawn, constraints := generateSpawn(spawnStream, size, in.ELO)
	resources := generateResources(resourcesStream, size, spawn)
	loot := generateLoot(lootStream, size, spawn, in.ELO, resources)

	return Output{
		SeedKey:     seedKey,
		Resources:   resources,
		Loot:        loot,
		Spawn:       spawn,
		Constraints: constraints,
	}, nil
}

func sortByCentralityDesc(size grid.Size, cells []grid.Cell) {
	sort.SliceStable(cells, func(i, j int) bool {
		ci, cj := grid.Centrality(size, cells[i]), grid.Centrality(size, cells[j])
		if ci != cj {
			return ci > cj
		}
		if cells[i].Y != cells[j].Y {
			return cells[i].Y < cells[j].Y
		}
		return cells[i].X < cells[j].X
	})
}

func generateSpawn(stream *rng.Stream, size grid.Size, elo int) (match.Spawn, match.Constraints) {
	candidates := grid.InteriorCells(size)
	sortByCentralityDesc(size, candidates)

	p := tables.SpawnCentralityPercent[eloBucket(elo)]
	topCount := int(math.Ceil(float64(len(candidates)) * float64(p) / 100.0))
	if topCount < 1 {
		topCount = 1
	}
	if topCount > len(candidates) {
		topCount = len(candidates)
	}
	playerCell := rng.Choice(stream, candidates[:topCount])

	var aiCandidates []grid.Cell
	for _, c := range candidates {
		if abs(c.X-playerCell.X) >= 10 && c.Y != playerCell.Y {
			aiCandidates = append(aiCandidates, c)
		}
	}
	constraints := match.Constraints{ColumnSeparationOK: true}
	if len(aiCandidates) == 0 {
		aiCandidates = candidates
		constraints.ColumnSeparationOK = false
		constraints.Notes = append(constraints.Notes, "no candidate satisfied the AI spawn separation constraint; fell back to any interior cell")
	}
	aiCell := rng.Choice(stream, aiCandidates)

	return match.Spawn{Player: playerCell, AI: aiCell}, constraints
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func generateResources(stream *rng.Stream, size grid.Size, spawn match.Spawn) match.Resources {
	wh := size.W * size.H
	treeCount := roundAtLeastOne(0.18 * float64(wh))
	stoneCount := roundAtLeastOne(0.14 * float64(wh))
	hayCount := roundAtLeastOne(0.08 * float64(wh))

	taken := map[grid.Cell]bool{spawn.Player: true, spawn.AI: true}

	place := func(count, minSep int) []grid.Cell {
		all := grid.AllCells(size)
		rng.ShuffleInPlace(stream, all)
		placed := grid.PlaceWithSpacing(all, taken, minSep, count)
		for _, c := range placed {
			taken[c] = true
		}
		return placed
	}

	trees := place(treeCount, 1)
	stones := place(stoneCount, 2)
	hay := place(hayCount, 1)

	return match.Resources{Trees: trees, Stones: stones, Hay: hay}
}

func roundAtLeastOne(v float64) int {
	r := int(math.Round(v))
	if r < 1 {
		return 1
	}
	return r
}

type lootTarget struct {
	mode   string // "player", "ai", "neutral"
	center grid.Cell
}

func generateLoot(stream *rng.Stream, size grid.Size, spawn match.Spawn, elo int, res match.Resources) []match.Loot {
	target := lootTarget{mode: "neutral", center: grid.Cell{X: size.W / 2, Y: size.H / 2}}
	switch {
	case elo <= 800:
		target = lootTarget{mode: "player", center: spawn.Player}
	case elo >= 1800:
		target = lootTarget{mode: "ai", center: spawn.AI}
	}

	rMin, rMax := 2, 4
	if target.mode == "neutral" {
		rMin, rMax = 4, 6
	}

	taken := map[grid.Cell]bool{spawn.Player: true, spawn.AI: true}
	for _, c := range res.Trees {
		taken[c] = true
	}
	for _, c := range res.Stones {
		taken[c] = true
	}
	for _, c := range res.Hay {
		taken[c] = true
	}

	bucket := eloBucket(elo)

	var loot []match.Loot
	weaponsPlaced := 0
	healingPlaced := false

	for i := 0; i < totalLoot; i++ {
		key := pickLootKey(stream, bucket, elo, &weaponsPlaced)
		if key == "" {
			continue
		}
		if len(key) >= 4 && key[:4] == "heal" {
			healingPlaced = true
		}

		pos, ok := placeLootCell(stream, size, target.center, rMin, rMax, taken)
		if !ok {
			continue
		}
		taken[pos] = true
		loot = append(loot, match.Loot{Pos: pos, Key: key})
	}

	if !healingPlaced {
		if pos, ok := anyFreeCell(size, taken); ok {
			taken[pos] = true
			loot = append(loot, match.Loot{Pos: pos, Key: "heal.small"})
		}
	}

	return loot
}

// Reference table orders (spec GLOSSARY "Reference weight tables"). Weighted
// choice is order-dependent (rng.WeightedChoice walks the cumulative weight
// in iteration order), so the order here must match the GLOSSARY's listing
// verbatim rather than, say, sorting keys alphabetically.
var (
	typeOrder       = []string{"weapon", "healing"}
	classOrder      = []string{"straight", "diag", "arc", "lob", "melee"}
	gradeOrder      = []string{"1", "2", "3"}
	healingSubOrder = []string{"heal.small", "heal.medium", "heal.large", "heal.major"}
)

// pickLootKey performs the nested weighted choice (spec §4.2). weaponsPlaced
// is incremented in place when a weapon key is chosen.
func pickLootKey(stream *rng.Stream, bucket string, elo int, weaponsPlaced *int) string {
	kind := rng.WeightedChoice(stream, weightedPairs(tables.TypeWeights[bucket], typeOrder))
	if kind != "weapon" {
		return pickHealingKey(stream)
	}
	if *weaponsPlaced >= maxWeapons {
		return "heal.small"
	}
	class := rng.WeightedChoice(stream, weightedPairs(tables.ClassWeights[bucket], classOrder))

	gradeBucket := bucket
	if elo == 1200 {
		gradeBucket = "elo1200"
	}
	gradeStr := rng.WeightedChoice(stream, weightedPairs(tables.GradeWeights[gradeBucket], gradeOrder))

	*weaponsPlaced++
	return fmt.Sprintf("weapon.%s.t%s", class, gradeStr)
}

func pickHealingKey(stream *rng.Stream) string {
	return rng.WeightedChoice(stream, weightedPairs(tables.HealingSubWeights, healingSubOrder))
}

// weightedPairs builds the weighted-choice list in order's sequence,
// skipping any key order names that aren't present in wt (e.g. the
// "elo1200" grade bucket only carries "1").
func weightedPairs(wt weightTable, order []string) []rng.Weighted[string] {
	out := make([]rng.Weighted[string], 0, len(order))
	for _, k := range order {
		w, ok := wt[k]
		if !ok {
			continue
		}
		out = append(out, rng.Weighted[string]{Value: k, Weight: w})
	}
	return out
}

func placeLootCell(stream *rng.Stream, size grid.Size, center grid.Cell, rMin, rMax int, taken map[grid.Cell]bool) (grid.Cell, bool) {
	for r := rMin; r <= rMax; r++ {
		ring := grid.Ring(size, center, r, r)
		var free []grid.Cell
		for _, c := range ring {
			if taken[c] {
				continue
			}
			ok := true
			for t := range taken {
				if grid.Manhattan(t, c) < 2 {
					ok = false
					break
				}
			}
			if ok {
				free = append(free, c)
			}
		}
		if len(free) > 0 {
			return rng.Choice(stream, free), true
		}
	}
	return anyFreeCell(size, taken)
}

func anyFreeCell(size grid.Size, taken map[grid.Cell]bool) (grid.Cell, bool) {
	for _, c := range grid.AllCells(size) {
		if !taken[c] {
			return c, true
		}
	}
	return grid.Cell{}, false
}
