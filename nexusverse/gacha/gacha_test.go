package gacha

// Shared fixtures for the package tests: a catalog with one entity per
// tier and a scripted RandomSource that replays fixed rolls.

var testEntities = []Entity{
	{Name: "Pac-Man Ghost", Rarity: RarityCommon, Emoji: "👻", Power: 10, Description: "Classic maze chaser."},
	{Name: "SpongeBob SquarePants", Rarity: RarityRare, Emoji: "🧽", Power: 50, Description: "Bikini Bottom hero."},
	{Name: "Shrek Ogre", Rarity: RarityEpic, Emoji: "🧅", Power: 100, Description: "Swamp king."},
	{Name: "Super Mario", Rarity: RarityLegendary, Emoji: "🍄", Power: 200, Description: "Plumber legend."},
	{Name: "Pikachu", Rarity: RarityMythic, Emoji: "⚡", Power: 500, Description: "Electric mouse master."},
}

func testCatalog(t interface{ Fatalf(string, ...any) }) *Catalog {
	c, err := NewCatalog(testEntities)
	if err != nil {
		t.Fatalf("failed to build test catalog: %v", err)
	}
	return c
}

// scriptRNG replays queued rolls; it loops when a queue runs dry so
// fixed-point scenarios stay short.
type scriptRNG struct {
	floats []float64
	ints   []int
	fi, ii int
}

func (s *scriptRNG) Float64() float64 {
	if len(s.floats) == 0 {
		return 0.5
	}
	v := s.floats[s.fi%len(s.floats)]
	s.fi++
	return v
}

func (s *scriptRNG) IntN(n int) int {
	if len(s.ints) == 0 || n <= 0 {
		return 0
	}
	v := s.ints[s.ii%len(s.ints)] % n
	s.ii++
	return v
}
