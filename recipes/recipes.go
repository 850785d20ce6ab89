// Package recipes is the read-only recipe catalog: weapon, wall, and
// healing crafting definitions looked up by key (spec §3, §4). It is loaded
// once from an embedded JSON asset the way the teacher's items/game.go loads
// items.json — recipe balance is a data change, not a code change.
package recipes

import (
	_ "embed"
	"encoding/json"
	"sort"
	"sync"

	"crab.casa/tactics-engine/matcherr"
)

//go:embed recipes.json
var recipesJSON []byte

// Costs are paid in the three raw resources the world generator scatters.
type Costs struct {
	Wood  int `json:"wood"`
	Stone int `json:"stone"`
	Food  int `json:"food"`
}

// WallOutput describes the wall a wall recipe places.
type WallOutput struct {
	HP               int `json:"hp"`
	MaxPlaceDistance int `json:"maxPlaceDistance"`
}

// Output is a union of the three recipe kinds' results; only the fields
// relevant to Kind are populated.
type Output struct {
	WeaponClass     string      `json:"weaponClass,omitempty"`
	Grade           int         `json:"grade,omitempty"`
	Damage          int         `json:"damage,omitempty"`
	Range           int         `json:"range,omitempty"`
	ShootsOverWalls bool        `json:"shootsOverWalls,omitempty"`
	Wall            *WallOutput `json:"wall,omitempty"`
	Heal            int         `json:"heal,omitempty"`
}

// Recipe is a single catalog entry.
type Recipe struct {
	Key           string   `json:"key"`
	Kind          string   `json:"kind"` // weapon, wall, healing
	Enabled       bool     `json:"enabled"`
	Costs         Costs    `json:"costs"`
	Prerequisites []string `json:"prerequisites"`
	Output        Output   `json:"output"`
}

type catalogFile struct {
	Recipes []Recipe `json:"recipes"`
}

var (
	once    sync.Once
	byKey   map[string]Recipe
	loadErr error
)

func load() {
	once.Do(func() {
		var f catalogFile
		if err := json.Unmarshal(recipesJSON, &f); err != nil {
			loadErr = err
			return
		}
		byKey = make(map[string]Recipe, len(f.Recipes))
		for _, r := range f.Recipes {
			byKey[r.Key] = r
		}
	})
}

// Load forces catalog initialization and surfaces any parse error; callers
// that want startup-time failure (e.g. InitModule) should call this once.
func Load() error {
	load()
	return loadErr
}

// Get looks up a single recipe by key.
func Get(key string) (Recipe, bool) {
	load()
	r, ok := byKey[key]
	return r, ok
}

// MustGet looks up key for the resolvers, returning
// matcherr.ErrUnknownRecipe when the catalog has no such recipe.
func MustGet(key string) (Recipe, error) {
	r, ok := Get(key)
	if !ok {
		return Recipe{}, matcherr.ErrUnknownRecipe
	}
	return r, nil
}

// Filter narrows List's results; zero-value fields are wildcards except
// EnabledSet, which must be true for Enabled to be applied.
type Filter struct {
	Kind        string
	WeaponClass string
	MinGrade    int
	MaxGrade    int
	Enabled     bool
	EnabledSet  bool
}

// List returns every recipe matching filter, sorted by key for a stable
// response across calls (spec §6, GET /recipes).
func List(filter Filter) []Recipe {
	load()
	out := make([]Recipe, 0, len(byKey))
	for _, r := range byKey {
		if filter.Kind != "" && r.Kind != filter.Kind {
			continue
		}
		if filter.WeaponClass != "" && r.Output.WeaponClass != filter.WeaponClass {
			continue
		}
		if filter.MinGrade > 0 && r.Output.Grade < filter.MinGrade {
			continue
		}
		if filter.MaxGrade > 0 && r.Output.Grade > filter.MaxGrade {
			continue
		}
		if filter.EnabledSet && r.Enabled != filter.Enabled {
			continue
		}
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}
