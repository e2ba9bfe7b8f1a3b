package gacha

import (
	"errors"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

var (
	// ErrEmptyCatalog means no tier at or above the requested one has any
	// entries. Catalog validation refuses such files at startup, so seeing
	// this at runtime points at a broken deployment.
	ErrEmptyCatalog = errors.New("catalog has no entities for tier or above")

	// ErrInvalidCatalog covers malformed catalog files: duplicate names,
	// non-positive power, or a rarity tier with no entities.
	ErrInvalidCatalog = errors.New("invalid catalog")
)

// Entity is one immutable catalog entry. The catalog is loaded once at
// startup and never mutated afterwards.
type Entity struct {
	Name        string `toml:"name"`
	Rarity      Rarity `toml:"rarity"`
	Emoji       string `toml:"emoji"`
	Power       int    `toml:"power"`
	Description string `toml:"description"`
	ImageURL    string `toml:"image_url"`
}

// Catalog indexes the entity table by rarity tier.
type Catalog struct {
	entities []Entity
	byRarity map[Rarity][]Entity
	byName   map[string]Entity
}

// NewCatalog validates and indexes a set of entities. Every rarity tier
// must have at least one entry, names must be unique, and power must be
// positive; anything else is a configuration error that should abort
// startup.
func NewCatalog(entities []Entity) (*Catalog, error) {
	if len(entities) == 0 {
		return nil, fmt.Errorf("%w: no entities", ErrInvalidCatalog)
	}

	c := &Catalog{
		entities: make([]Entity, len(entities)),
		byRarity: make(map[Rarity][]Entity),
		byName:   make(map[string]Entity, len(entities)),
	}
	copy(c.entities, entities)

	for _, e := range c.entities {
		if e.Name == "" {
			return nil, fmt.Errorf("%w: entity with empty name", ErrInvalidCatalog)
		}
		if e.Power <= 0 {
			return nil, fmt.Errorf("%w: entity %q has non-positive power %d", ErrInvalidCatalog, e.Name, e.Power)
		}
		if _, dup := c.byName[e.Name]; dup {
			return nil, fmt.Errorf("%w: duplicate entity name %q", ErrInvalidCatalog, e.Name)
		}
		c.byName[e.Name] = e
		c.byRarity[e.Rarity] = append(c.byRarity[e.Rarity], e)
	}

	for _, r := range Rarities {
		if len(c.byRarity[r]) == 0 {
			return nil, fmt.Errorf("%w: no entities with rarity %s", ErrInvalidCatalog, r)
		}
	}
	return c, nil
}

type catalogFile struct {
	Entities []Entity `toml:"entities"`
}

// LoadCatalog reads the entity table from a TOML file.
func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}

	var file catalogFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}
	return NewCatalog(file.Entities)
}

// Entities returns the full table in file order.
func (c *Catalog) Entities() []Entity {
	out := make([]Entity, len(c.entities))
	copy(out, c.entities)
	return out
}

// ByRarity returns the entities of one tier.
func (c *Catalog) ByRarity(r Rarity) []Entity {
	tier := c.byRarity[r]
	out := make([]Entity, len(tier))
	copy(out, tier)
	return out
}

// Find looks an entity up by its unique display name.
func (c *Catalog) Find(name string) (Entity, bool) {
	e, ok := c.byName[name]
	return e, ok
}

// Size reports the number of catalog entries.
func (c *Catalog) Size() int {
	return len(c.entities)
}

// PickRandom draws uniformly among entities of the given tier. If the tier
// is empty it falls back to the next rarer tier with at least one entry;
// ok is false only when the tier and everything above it are empty.
func (c *Catalog) PickRandom(tier Rarity, rng RandomSource) (Entity, bool) {
	for r := tier; r <= RarityMythic; r++ {
		pool := c.byRarity[r]
		if len(pool) == 0 {
			continue
		}
		return pool[rng.IntN(len(pool))], true
	}
	return Entity{}, false
}
