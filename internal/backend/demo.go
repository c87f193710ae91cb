package backend

import (
	"context"
	"fmt"
	"math/rand/v2"

	"github.com/Akashdeep-Patra/modpanel/internal/rows"
)

var (
	demoGroups = []string{"Weapon", "Armor", "Potion", "Scroll", "Ingredient", "Misc"}
	demoNames  = []string{
		"Iron", "Steel", "Elven", "Glass", "Ebony", "Daedric", "Dwarven", "Orcish",
		"Ancient", "Frost", "Ember", "Shadow", "Silver", "Moon", "Storm", "Hunter's",
	}
	demoKinds = map[string][]string{
		"Weapon":     {"Sword", "Dagger", "Mace", "Bow", "War Axe", "Greatsword"},
		"Armor":      {"Shield", "Helmet", "Gauntlets", "Boots", "Cuirass"},
		"Potion":     {"Potion of Healing", "Potion of Stamina", "Elixir", "Draught"},
		"Scroll":     {"Scroll of Fire", "Scroll of Calm", "Scroll of Light"},
		"Ingredient": {"Root", "Salts", "Petal", "Wing", "Dust"},
		"Misc":       {"Gem", "Ingot", "Pelt", "Lantern", "Key"},
	}
	demoRewards = []string{"Health", "Magicka", "Stamina", "Carry Weight", "Speed"}
)

// DemoService synthesizes a large, deterministic catalogue. It is used when
// no feed is configured.
type DemoService struct {
	items   int
	history int
	seed    uint64
}

// Compile-time check.
var _ Service = (*DemoService)(nil)

// NewDemoService returns a catalogue of the given sizes. The same seed
// always yields the same rows.
func NewDemoService(items, history int, seed uint64) *DemoService {
	return &DemoService{items: max(0, items), history: max(0, history), seed: seed}
}

// Source implements Service.
func (d *DemoService) Source() string { return "demo" }

// Snapshot implements Service.
func (d *DemoService) Snapshot(ctx context.Context) (*Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	rng := rand.New(rand.NewPCG(d.seed, d.seed^0x9e3779b97f4a7c15))
	snap := &Snapshot{
		Items:   make([]rows.Record, 0, d.items),
		History: make([]rows.Record, 0, d.history),
	}
	for i := 0; i < d.items; i++ {
		snap.Items = append(snap.Items, demoRecord(rng, i))
	}
	for i := 0; i < d.history; i++ {
		r := demoRecord(rng, d.items+i)
		r.Detail = fmt.Sprintf("registered #%d", d.history-i)
		snap.History = append(snap.History, r)
	}
	for _, name := range demoRewards {
		snap.Totals = append(snap.Totals, Reward{Name: name, Value: float64(rng.IntN(40))})
	}
	return snap, nil
}

func demoRecord(rng *rand.Rand, i int) rows.Record {
	group := demoGroups[rng.IntN(len(demoGroups))]
	kinds := demoKinds[group]
	total := 1 + rng.IntN(9)
	return rows.Record{
		ID:     fmt.Sprintf("0x%08X", 0x00012000+i),
		Title:  demoNames[rng.IntN(len(demoNames))] + " " + kinds[rng.IntN(len(kinds))],
		Detail: fmt.Sprintf("%d/%d", rng.IntN(total+1), total),
		Badge:  group,
	}
}
