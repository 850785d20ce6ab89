// Package report formats match and policy state as terminal tables using
// tablewriter, grounded on the teacher pack's internal/report formatting
// (pableeee-go-cs-metrics) but applied to match/AIPolicy documents instead
// of demo stats.
package report

import (
	"fmt"
	"io"
	"sort"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"crab.casa/tactics-engine/match"
	"crab.casa/tactics-engine/recipes"
)

func newTable(w io.Writer) *tablewriter.Table {
	return tablewriter.NewTable(w, tablewriter.WithConfig(tablewriter.Config{
		Row: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignLeft},
		},
		Header: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignLeft},
		},
	}))
}

// PrintMatchSummary prints a one-line header for the match.
func PrintMatchSummary(w io.Writer, m *match.Match) {
	fmt.Fprintf(w, "\nMatch %s  |  status=%s  |  turn=%d  |  actor=%s  |  winner=%s\n\n",
		m.ID, m.Status, m.TurnIndex, m.CurrentActor, m.Winner)
}

// PrintActionHistogram prints how many times each actor took each action
// kind — the "actionsHistogram" spec §8 testable property describes.
func PrintActionHistogram(w io.Writer, m *match.Match) {
	counts := map[[2]string]int{}
	for _, e := range m.ActionHistory {
		counts[[2]string{e.Actor, e.Action}]++
	}

	var keys [][2]string
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i][0] != keys[j][0] {
			return keys[i][0] < keys[j][0]
		}
		return keys[i][1] < keys[j][1]
	})

	table := newTable(w)
	table.Header("ACTOR", "ACTION", "COUNT")
	for _, k := range keys {
		table.Append(k[0], k[1], fmt.Sprintf("%d", counts[k]))
	}
	table.Render()
}

// PrintPolicy prints a policy's per-action weight vectors.
func PrintPolicy(w io.Writer, p *match.AIPolicy) {
	fmt.Fprintf(w, "\nPolicy scope=%s user=%s games=%d wins=%d epsilon=%.2f\n\n",
		p.Scope, p.UserID, p.GamesPlayed, p.Wins, p.Epsilon)

	var keys []string
	for k := range p.Actions {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	table := newTable(w)
	table.Header("ACTION", "WEIGHTS")
	for _, k := range keys {
		table.Append(k, fmt.Sprintf("%v", p.Actions[k].Weights))
	}
	table.Render()
}

// PrintRecipes prints the recipe catalog.
func PrintRecipes(w io.Writer, recs []recipes.Recipe) {
	table := newTable(w)
	table.Header("KEY", "KIND", "ENABLED", "WOOD", "STONE", "FOOD")
	for _, r := range recs {
		table.Append(r.Key, r.Kind, fmt.Sprintf("%t", r.Enabled),
			fmt.Sprintf("%d", r.Costs.Wood), fmt.Sprintf("%d", r.Costs.Stone), fmt.Sprintf("%d", r.Costs.Food))
	}
	table.Render()
}

// PrintLoot prints a match's unclaimed loot table.
func PrintLoot(w io.Writer, m *match.Match) {
	table := newTable(w)
	table.Header("KEY", "X", "Y")
	for _, l := range m.Loot {
		table.Append(l.Key, fmt.Sprintf("%d", l.Pos.X), fmt.Sprintf("%d", l.Pos.Y))
	}
	table.Render()
}
