package services

import (
	"testing"

	"github.com/nexusverse/nexusverse-bot/nexusverse/gacha"
)

func dexCatalog(t *testing.T) *gacha.Catalog {
	t.Helper()
	c, err := gacha.NewCatalog([]gacha.Entity{
		{Name: "Pac-Man Ghost", Rarity: gacha.RarityCommon, Power: 10},
		{Name: "SpongeBob SquarePants", Rarity: gacha.RarityRare, Power: 50},
		{Name: "Shrek Ogre", Rarity: gacha.RarityEpic, Power: 100},
		{Name: "Super Mario", Rarity: gacha.RarityLegendary, Power: 200},
		{Name: "Pikachu", Rarity: gacha.RarityMythic, Power: 500},
	})
	if err != nil {
		t.Fatalf("failed to build catalog: %v", err)
	}
	return c
}

func TestDexSearch(t *testing.T) {
	dex := NewDexService(dexCatalog(t))

	results := dex.Search("pika", 5)
	if len(results) == 0 || results[0].Name != "Pikachu" {
		t.Errorf("Search(pika) = %v, want Pikachu first", results)
	}

	results = dex.Search("sponge", 5)
	if len(results) == 0 || results[0].Name != "SpongeBob SquarePants" {
		t.Errorf("Search(sponge) = %v, want SpongeBob first", results)
	}

	if results := dex.Search("zzzzqqqq", 5); len(results) != 0 {
		t.Errorf("Search(zzzzqqqq) = %v, want no matches", results)
	}
}

func TestDexSearchEmptyQuery(t *testing.T) {
	dex := NewDexService(dexCatalog(t))

	results := dex.Search("", 3)
	if len(results) != 3 {
		t.Fatalf("Search(\"\", 3) returned %d entities, want 3", len(results))
	}
	if results[0].Name != "Pac-Man Ghost" {
		t.Errorf("empty query must keep file order, got %q first", results[0].Name)
	}

	if results := dex.Search("", 0); results != nil {
		t.Errorf("Search with limit 0 = %v, want nil", results)
	}
}

func TestDexFind(t *testing.T) {
	dex := NewDexService(dexCatalog(t))

	if e, ok := dex.Find("Pikachu"); !ok || e.Power != 500 {
		t.Errorf("Find(Pikachu) = (%+v, %v)", e, ok)
	}
	// Inexact name falls back to fuzzy.
	if e, ok := dex.Find("pikachu"); !ok || e.Name != "Pikachu" {
		t.Errorf("Find(pikachu) = (%+v, %v), want fuzzy fallback", e, ok)
	}
	if _, ok := dex.Find("Missingno"); ok {
		t.Error("Find matched a name not in the catalog")
	}
}
