package cards

import (
	"math/rand"
	"testing"
)

func TestChestDeckRotates(t *testing.T) {
	d := NewChestDeck()
	if d.Len() != 4 {
		t.Fatalf("chest deck size = %d, want 4", d.Len())
	}
	wantOrder := []EffectKind{
		EffectCapNextRoll, EffectRemoveHouse, EffectCoinFlip, EffectWindfall,
	}
	// Two full cycles: the rotation is deterministic, never reshuffled.
	for cycle := 0; cycle < 2; cycle++ {
		for i, want := range wantOrder {
			card := d.Draw()
			if card.Effect != want {
				t.Fatalf("cycle %d draw %d = %v, want %v", cycle, i, card.Effect, want)
			}
		}
	}
}

func TestChanceDrawCoversCategories(t *testing.T) {
	rng := rand.New(rand.NewSource(99))
	counts := map[EffectKind]int{}
	for i := 0; i < 3000; i++ {
		counts[DrawChance(rng).Effect]++
	}

	market := counts[EffectMarket]
	money := counts[EffectBankTransfer] + counts[EffectCollectFromEach] + counts[EffectPayToEach]
	special := counts[EffectPickDestination] + counts[EffectEvaporate] +
		counts[EffectCoinFlip] + counts[EffectWindfall]

	if market == 0 || money == 0 || special == 0 {
		t.Fatalf("all categories should appear: market=%d money=%d special=%d", market, money, special)
	}
	// 35/35/30 weighting, loose bounds for a seeded sample of 3000.
	for name, n := range map[string]int{"market": market, "money": money, "special": special} {
		if n < 700 || n > 1400 {
			t.Errorf("%s category drawn %d times, outside plausible range", name, n)
		}
	}
}

func TestMarketCardsCarryBoundedParameters(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	seen := 0
	for i := 0; i < 2000 && seen < 100; i++ {
		card := DrawChance(rng)
		if card.Effect != EffectMarket {
			continue
		}
		seen++
		if card.Turns < 2 || card.Turns > 4 {
			t.Fatalf("market card turns = %d, want 2-4", card.Turns)
		}
		if card.Inflation {
			if card.Percent < 50 || card.Percent > 100 {
				t.Fatalf("inflation percent = %d, want 50-100", card.Percent)
			}
		} else if card.Percent < 25 || card.Percent > 50 {
			t.Fatalf("drop percent = %d, want 25-50", card.Percent)
		}
	}
	if seen == 0 {
		t.Fatal("no market cards drawn")
	}
}
