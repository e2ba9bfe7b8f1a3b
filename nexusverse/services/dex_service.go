package services

import (
	"strings"

	"github.com/nexusverse/nexusverse-bot/nexusverse/gacha"
	"github.com/sahilm/fuzzy"
)

// entitySource implements fuzzy.Source over the catalog.
type entitySource []gacha.Entity

func (s entitySource) String(i int) string { return strings.ToLower(s[i].Name) }
func (s entitySource) Len() int            { return len(s) }

// DexService serves catalog lookups for the /dex command and its
// autocomplete. The catalog is immutable, so the source is built once.
type DexService struct {
	catalog *gacha.Catalog
	source  entitySource
}

func NewDexService(catalog *gacha.Catalog) *DexService {
	return &DexService{
		catalog: catalog,
		source:  entitySource(catalog.Entities()),
	}
}

// Search fuzzy-matches entity names, best matches first. An empty query
// returns the catalog in file order, truncated to limit.
func (s *DexService) Search(query string, limit int) []gacha.Entity {
	if limit <= 0 {
		return nil
	}

	query = strings.TrimSpace(strings.ToLower(query))
	if query == "" {
		if len(s.source) <= limit {
			return append([]gacha.Entity(nil), s.source...)
		}
		return append([]gacha.Entity(nil), s.source[:limit]...)
	}

	matches := fuzzy.FindFrom(query, s.source)
	if len(matches) > limit {
		matches = matches[:limit]
	}

	results := make([]gacha.Entity, len(matches))
	for i, match := range matches {
		results[i] = s.source[match.Index]
	}
	return results
}

// Find looks an entity up by exact name, falling back to the top fuzzy
// match so "/dex pikachu" resolves to "Pikachu".
func (s *DexService) Find(name string) (gacha.Entity, bool) {
	if e, ok := s.catalog.Find(name); ok {
		return e, true
	}
	if results := s.Search(name, 1); len(results) == 1 {
		return results[0], true
	}
	return gacha.Entity{}, false
}
