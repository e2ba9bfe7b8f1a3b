package gacha

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestNewCatalogValidation(t *testing.T) {
	tests := []struct {
		name     string
		entities []Entity
	}{
		{name: "empty table", entities: nil},
		{
			name: "missing tier",
			entities: []Entity{
				{Name: "Pac-Man Ghost", Rarity: RarityCommon, Power: 10},
				{Name: "SpongeBob SquarePants", Rarity: RarityRare, Power: 50},
				{Name: "Super Mario", Rarity: RarityLegendary, Power: 200},
				{Name: "Pikachu", Rarity: RarityMythic, Power: 500},
			},
		},
		{
			name: "duplicate name",
			entities: append([]Entity{
				{Name: "Pikachu", Rarity: RarityCommon, Power: 10},
			}, testEntities...),
		},
		{
			name: "non-positive power",
			entities: append([]Entity{
				{Name: "Glass Cannon", Rarity: RarityCommon, Power: 0},
			}, testEntities...),
		},
		{
			name: "empty name",
			entities: append([]Entity{
				{Name: "", Rarity: RarityCommon, Power: 10},
			}, testEntities...),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewCatalog(tt.entities); !errors.Is(err, ErrInvalidCatalog) {
				t.Errorf("NewCatalog() error = %v, want ErrInvalidCatalog", err)
			}
		})
	}
}

func TestCatalogLookups(t *testing.T) {
	c := testCatalog(t)

	if c.Size() != len(testEntities) {
		t.Errorf("Size() = %d, want %d", c.Size(), len(testEntities))
	}

	e, ok := c.Find("Pikachu")
	if !ok || e.Rarity != RarityMythic {
		t.Errorf("Find(Pikachu) = (%+v, %v), want Mythic entity", e, ok)
	}
	if _, ok := c.Find("Missingno"); ok {
		t.Error("Find() matched an unknown name")
	}

	rares := c.ByRarity(RarityRare)
	if len(rares) != 1 || rares[0].Name != "SpongeBob SquarePants" {
		t.Errorf("ByRarity(Rare) = %v", rares)
	}
}

func TestCatalogCopiesAreIndependent(t *testing.T) {
	c := testCatalog(t)

	got := c.Entities()
	got[0].Name = "mutated"
	if e, _ := c.Find("Pac-Man Ghost"); e.Name != "Pac-Man Ghost" {
		t.Error("Entities() exposed internal storage")
	}

	tier := c.ByRarity(RarityCommon)
	tier[0].Power = 9999
	if again := c.ByRarity(RarityCommon); again[0].Power != 10 {
		t.Error("ByRarity() exposed internal storage")
	}
}

func TestLoadCatalog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "entities.toml")
	data := `
[[entities]]
name = "Pac-Man Ghost"
rarity = "common"
emoji = "👻"
power = 10
description = "Classic maze chaser."

[[entities]]
name = "SpongeBob SquarePants"
rarity = "rare"
power = 50

[[entities]]
name = "Shrek Ogre"
rarity = "epic"
power = 100

[[entities]]
name = "Super Mario"
rarity = "legendary"
power = 200

[[entities]]
name = "Pikachu"
rarity = "mythic"
power = 500
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("failed to write catalog file: %v", err)
	}

	c, err := LoadCatalog(path)
	if err != nil {
		t.Fatalf("LoadCatalog() error = %v", err)
	}
	if c.Size() != 5 {
		t.Errorf("Size() = %d, want 5", c.Size())
	}
	e, ok := c.Find("Pac-Man Ghost")
	if !ok || e.Rarity != RarityCommon || e.Emoji != "👻" {
		t.Errorf("Find(Pac-Man Ghost) = (%+v, %v)", e, ok)
	}
}

func TestLoadCatalogErrors(t *testing.T) {
	if _, err := LoadCatalog(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Error("expected error for missing file")
	}

	path := filepath.Join(t.TempDir(), "bad.toml")
	if err := os.WriteFile(path, []byte("entities = not-toml"), 0o644); err != nil {
		t.Fatalf("failed to write catalog file: %v", err)
	}
	if _, err := LoadCatalog(path); err == nil {
		t.Error("expected error for malformed TOML")
	}
}
