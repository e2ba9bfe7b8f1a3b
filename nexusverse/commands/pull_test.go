package commands

import (
	"testing"

	"github.com/nexusverse/nexusverse-bot/nexusverse/gacha"
)

func TestPullEncounterLogsSumToSpend(t *testing.T) {
	out := gacha.PullOutcome{
		Entities: []gacha.Entity{
			{Name: "Pac-Man Ghost", Rarity: gacha.RarityCommon, Power: 10},
			{Name: "SpongeBob SquarePants", Rarity: gacha.RarityRare, Power: 50},
			{Name: "Shrek Ogre", Rarity: gacha.RarityEpic, Power: 100},
		},
		CreditsSpent: gacha.PullCost,
		PityAfter:    3,
	}

	logs := pullEncounterLogs("100", "200", out)
	if len(logs) != len(out.Entities) {
		t.Fatalf("got %d log rows, want %d", len(logs), len(out.Entities))
	}

	var total int64
	for i, log := range logs {
		total += log.CreditsDelta
		if log.EntityName != out.Entities[i].Name || log.Tier != out.Entities[i].Rarity {
			t.Errorf("row %d = %s (%v), want %s (%v)",
				i, log.EntityName, log.Tier, out.Entities[i].Name, out.Entities[i].Rarity)
		}
	}
	if total != -out.CreditsSpent {
		t.Errorf("credit deltas sum to %d, want %d", total, -out.CreditsSpent)
	}
}
