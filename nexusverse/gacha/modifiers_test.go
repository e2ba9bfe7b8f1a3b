package gacha

import (
	"reflect"
	"testing"
)

func TestComposeModifiers(t *testing.T) {
	tests := []struct {
		name    string
		premium bool
		guild   GuildContext
		event   GlobalEvent
		want    RateModifiers
	}{
		{
			name: "no boosts",
			want: RateModifiers{RarityMult: 1.0, SuccessBonus: 0, CreditMult: 1.0},
		},
		{
			name:    "premium only",
			premium: true,
			want:    RateModifiers{RarityMult: 1.5, SuccessBonus: 0.20, CreditMult: 2.0},
		},
		{
			name:  "official guild default multiplier",
			guild: GuildContext{Official: true},
			want:  RateModifiers{RarityMult: 3.0, SuccessBonus: 0.10, CreditMult: 1.0},
		},
		{
			name:  "official guild custom multiplier",
			guild: GuildContext{Official: true, SpawnMultiplier: 5.0},
			want:  RateModifiers{RarityMult: 5.0, SuccessBonus: 0.10, CreditMult: 1.0},
		},
		{
			name:  "non-official guild ignores multiplier",
			guild: GuildContext{Official: false, SpawnMultiplier: 5.0},
			want:  RateModifiers{RarityMult: 1.0, SuccessBonus: 0, CreditMult: 1.0},
		},
		{
			name:  "double spawn event",
			event: GlobalEvent{Type: EventDoubleSpawn},
			want:  RateModifiers{RarityMult: 2.0, SuccessBonus: 0.10, CreditMult: 2.0},
		},
		{
			name:  "unknown event is display only",
			event: GlobalEvent{Type: "mythic_madness"},
			want:  RateModifiers{RarityMult: 1.0, SuccessBonus: 0, CreditMult: 1.0},
		},
		{
			name:    "all boosts stack",
			premium: true,
			guild:   GuildContext{Official: true, SpawnMultiplier: 3.0},
			event:   GlobalEvent{Type: EventDoubleSpawn},
			want:    RateModifiers{RarityMult: 9.0, SuccessBonus: 0.40, CreditMult: 4.0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComposeModifiers(tt.premium, tt.guild, tt.event)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ComposeModifiers() = %+v, want %+v", got, tt.want)
			}
		})
	}
}
