package gacha

import (
	"errors"
	"reflect"
	"testing"
	"time"
)

var testNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func baseProgression() Progression {
	return Progression{UserID: "100", Credits: 100, Level: 1}
}

func TestResolveCatchSuccess(t *testing.T) {
	// Rarity roll 0.6 → Common (Pac-Man Ghost, power 10), success roll
	// 0.25 beats the level-1 rate of 0.35.
	rng := &scriptRNG{floats: []float64{0.6, 0.25}, ints: []int{0}}
	r := NewResolver(testCatalog(t), rng)

	got, out, err := r.ResolveCatch(baseProgression(), GuildContext{}, GlobalEvent{}, testNow)
	if err != nil {
		t.Fatalf("ResolveCatch() error = %v", err)
	}

	if !out.Success {
		t.Fatal("expected success")
	}
	if out.Tier != RarityCommon || out.Spawned.Name != "Pac-Man Ghost" {
		t.Errorf("spawned %s (%v), want Pac-Man Ghost (Common)", out.Spawned.Name, out.Tier)
	}
	if out.SuccessRate != 0.35 {
		t.Errorf("success rate = %v, want 0.35", out.SuccessRate)
	}
	if out.CreditsAwarded != 2 { // floor(10/5) * 1
		t.Errorf("credits awarded = %d, want 2", out.CreditsAwarded)
	}
	if got.Credits != 102 {
		t.Errorf("credits = %d, want 102", got.Credits)
	}
	if len(got.Collection) != 1 || got.Collection[0].Name != "Pac-Man Ghost" {
		t.Errorf("collection = %v, want [Pac-Man Ghost]", got.Collection)
	}
	if got.Pity != 0 || out.PityAfter != 0 || out.PityBreak {
		t.Errorf("pity after success = %d (break=%v), want 0 (false)", got.Pity, out.PityBreak)
	}
	if out.LeveledUp || got.Level != 1 {
		t.Errorf("level = %d (up=%v), want 1 (false)", got.Level, out.LeveledUp)
	}
}

func TestResolveCatchFailure(t *testing.T) {
	rng := &scriptRNG{floats: []float64{0.6, 0.95}, ints: []int{0}}
	r := NewResolver(testCatalog(t), rng)

	got, out, err := r.ResolveCatch(baseProgression(), GuildContext{}, GlobalEvent{}, testNow)
	if err != nil {
		t.Fatalf("ResolveCatch() error = %v", err)
	}

	if out.Success {
		t.Fatal("expected failure")
	}
	if out.Spawned.Name == "" {
		t.Error("failure must still report a spawned entity")
	}
	if out.CreditsAwarded != 0 || got.Credits != 100 {
		t.Errorf("credits = %d (awarded %d), want unchanged 100 (0)", got.Credits, out.CreditsAwarded)
	}
	if len(got.Collection) != 0 {
		t.Errorf("collection grew on failure: %v", got.Collection)
	}
	if got.Pity != 1 || out.PityAfter != 1 {
		t.Errorf("pity = %d, want 1", got.Pity)
	}
}

func TestResolveCatchPityBreakArmsFloor(t *testing.T) {
	catalog := testCatalog(t)

	// Ninth consecutive failure breaks the bar...
	p := baseProgression()
	p.Pity = 9
	rng := &scriptRNG{floats: []float64{0.6, 0.95}, ints: []int{0}}
	p, out, err := NewResolver(catalog, rng).ResolveCatch(p, GuildContext{}, GlobalEvent{}, testNow)
	if err != nil {
		t.Fatalf("ResolveCatch() error = %v", err)
	}
	if !out.PityBreak || out.PityAfter != 0 {
		t.Fatalf("outcome = (break=%v, pity=%d), want (true, 0)", out.PityBreak, out.PityAfter)
	}
	if !p.PityBreakPending {
		t.Fatal("break must arm the floor for the next encounter")
	}

	// ...and the next spawn is floored to Rare+ even though the raw roll
	// says Common.
	rng = &scriptRNG{floats: []float64{0.6, 0.95}, ints: []int{0}}
	p, out, err = NewResolver(catalog, rng).ResolveCatch(p, GuildContext{}, GlobalEvent{}, testNow)
	if err != nil {
		t.Fatalf("ResolveCatch() error = %v", err)
	}
	if !out.FloorApplied {
		t.Error("expected the armed floor to apply")
	}
	if out.Tier < RarityRare {
		t.Errorf("floored spawn tier = %v, want Rare or better", out.Tier)
	}
	if p.PityBreakPending {
		t.Error("floor must be consumed by the spawn")
	}
}

func TestResolveCatchLevelUp(t *testing.T) {
	p := baseProgression()
	for i := 0; i < 4; i++ {
		p.Collection = append(p.Collection, testEntities[0])
	}

	rng := &scriptRNG{floats: []float64{0.6, 0.25}, ints: []int{0}}
	p, out, err := NewResolver(testCatalog(t), rng).ResolveCatch(p, GuildContext{}, GlobalEvent{}, testNow)
	if err != nil {
		t.Fatalf("ResolveCatch() error = %v", err)
	}
	if !out.LeveledUp || p.Level != 2 {
		t.Errorf("level = %d (up=%v), want 2 (true)", p.Level, out.LeveledUp)
	}
}

func TestResolveCatchPremiumBoosts(t *testing.T) {
	p := baseProgression()
	p.PremiumUntil = testNow.Add(24 * time.Hour)

	// The 1.5x boost widens the Rare band to 0.75, so the 0.6 roll lands
	// Rare; success rate 0.30 + 0.05 + 0.20 = 0.55; credits double.
	rng := &scriptRNG{floats: []float64{0.6, 0.5}, ints: []int{0}}
	p, out, err := NewResolver(testCatalog(t), rng).ResolveCatch(p, GuildContext{}, GlobalEvent{}, testNow)
	if err != nil {
		t.Fatalf("ResolveCatch() error = %v", err)
	}
	if !out.Success {
		t.Fatal("roll 0.5 must beat premium rate 0.55")
	}
	if out.SuccessRate != 0.55 {
		t.Errorf("success rate = %v, want 0.55", out.SuccessRate)
	}
	if out.Tier != RarityRare {
		t.Errorf("boosted tier = %v, want Rare", out.Tier)
	}
	if out.CreditsAwarded != 20 { // floor(50/5) * 2
		t.Errorf("credits awarded = %d, want 20", out.CreditsAwarded)
	}
}

func TestResolveCatchSuccessRateCap(t *testing.T) {
	p := baseProgression()
	p.Level = 40
	p.PremiumUntil = testNow.Add(time.Hour)

	rng := &scriptRNG{floats: []float64{0.6, 0.95}, ints: []int{0}}
	_, out, err := NewResolver(testCatalog(t), rng).ResolveCatch(p, GuildContext{Official: true}, GlobalEvent{Type: EventDoubleSpawn}, testNow)
	if err != nil {
		t.Fatalf("ResolveCatch() error = %v", err)
	}
	if out.SuccessRate != 0.90 {
		t.Errorf("success rate = %v, want cap 0.90", out.SuccessRate)
	}
}

func TestResolveCatchRejectsInvalidState(t *testing.T) {
	rng := &scriptRNG{floats: []float64{0.6, 0.25}, ints: []int{0}}
	r := NewResolver(testCatalog(t), rng)

	p := baseProgression()
	p.Pity = -1
	if _, _, err := r.ResolveCatch(p, GuildContext{}, GlobalEvent{}, testNow); !errors.Is(err, ErrInvalidProgression) {
		t.Errorf("error = %v, want ErrInvalidProgression", err)
	}
}

func TestResolveCatchDeterministic(t *testing.T) {
	catalog := testCatalog(t)

	run := func() (Progression, []EncounterOutcome) {
		r := NewResolver(catalog, NewSeededRNG(42))
		p := baseProgression()
		var outs []EncounterOutcome
		for i := 0; i < 25; i++ {
			var out EncounterOutcome
			var err error
			p, out, err = r.ResolveCatch(p, GuildContext{Official: true}, GlobalEvent{}, testNow)
			if err != nil {
				t.Fatalf("ResolveCatch() error = %v", err)
			}
			outs = append(outs, out)
		}
		return p, outs
	}

	p1, outs1 := run()
	p2, outs2 := run()
	if !reflect.DeepEqual(p1, p2) {
		t.Errorf("progressions diverged:\n%+v\n%+v", p1, p2)
	}
	if !reflect.DeepEqual(outs1, outs2) {
		t.Error("outcome sequences diverged for identical seeds")
	}
}

func TestResolvePull(t *testing.T) {
	// IntN(3) = 1 → two entities; both rarity rolls land Common.
	rng := &scriptRNG{floats: []float64{0.6, 0.7}, ints: []int{1, 0, 0}}
	p, out, err := NewResolver(testCatalog(t), rng).ResolvePull(baseProgression(), GuildContext{}, GlobalEvent{}, testNow)
	if err != nil {
		t.Fatalf("ResolvePull() error = %v", err)
	}

	if len(out.Entities) != 2 {
		t.Fatalf("pulled %d entities, want 2", len(out.Entities))
	}
	if out.CreditsSpent != PullCost || p.Credits != 50 {
		t.Errorf("credits = %d (spent %d), want 50 (%d)", p.Credits, out.CreditsSpent, PullCost)
	}
	if len(p.Collection) != 2 {
		t.Errorf("collection size = %d, want 2", len(p.Collection))
	}
	if p.Level != 1 {
		t.Errorf("level changed on pull: %d", p.Level)
	}
	if p.Pity != 1 || out.PityAfter != 1 {
		t.Errorf("pity = %d, want 1", p.Pity)
	}
}

func TestResolvePullInsufficientCredits(t *testing.T) {
	p := baseProgression()
	p.Credits = 49
	rng := &scriptRNG{}
	if _, _, err := NewResolver(testCatalog(t), rng).ResolvePull(p, GuildContext{}, GlobalEvent{}, testNow); !errors.Is(err, ErrInsufficientCredits) {
		t.Errorf("error = %v, want ErrInsufficientCredits", err)
	}
}

func TestResolvePullHonorsArmedFloor(t *testing.T) {
	p := baseProgression()
	p.PityBreakPending = true

	// One entity, raw roll Common → floored to Rare.
	rng := &scriptRNG{floats: []float64{0.6}, ints: []int{0, 0}}
	p, out, err := NewResolver(testCatalog(t), rng).ResolvePull(p, GuildContext{}, GlobalEvent{}, testNow)
	if err != nil {
		t.Fatalf("ResolvePull() error = %v", err)
	}
	if !out.FloorApplied {
		t.Error("expected armed floor to apply")
	}
	if out.Entities[0].Rarity < RarityRare {
		t.Errorf("first pull rarity = %v, want Rare or better", out.Entities[0].Rarity)
	}
	if p.PityBreakPending {
		t.Error("floor must be consumed")
	}
}

func TestResolvePullBreaksPity(t *testing.T) {
	p := baseProgression()
	p.Pity = 9

	rng := &scriptRNG{floats: []float64{0.6}, ints: []int{0, 0}}
	p, out, err := NewResolver(testCatalog(t), rng).ResolvePull(p, GuildContext{}, GlobalEvent{}, testNow)
	if err != nil {
		t.Fatalf("ResolvePull() error = %v", err)
	}
	if !out.PityBreak || out.PityAfter != 0 {
		t.Errorf("outcome = (break=%v, pity=%d), want (true, 0)", out.PityBreak, out.PityAfter)
	}
	if !p.PityBreakPending {
		t.Error("pull break must arm the floor")
	}
}
