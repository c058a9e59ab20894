// Package cards implements the two card systems: the item chest (a
// deterministic rotating deck) and the chance pile (a weighted two-level
// random draw). Cards resolve to closed Effect variants; the engine owns
// their application.
package cards

import "math/rand"

// EffectKind is the closed set of card effects.
type EffectKind int

const (
	// EffectCapNextRoll caps the player's next roll result at 1.
	EffectCapNextRoll EffectKind = iota
	// EffectRemoveHouse is the chest evaporator placeholder (no effect).
	EffectRemoveHouse
	// EffectCoinFlip grants an extra turn on heads, loses one on tails.
	EffectCoinFlip
	// EffectWindfall pays the player 10% of their cash.
	EffectWindfall
	// EffectMarket registers a market effect (inflation or drop).
	EffectMarket
	// EffectBankTransfer moves a fixed amount between player and bank.
	EffectBankTransfer
	// EffectCollectFromEach collects a fixed amount from every other player.
	EffectCollectFromEach
	// EffectPayToEach pays a fixed amount to every other player.
	EffectPayToEach
	// EffectPickDestination suspends the turn for a 1-12 destination pick.
	EffectPickDestination
	// EffectEvaporate suspends the turn for an on-board building removal.
	EffectEvaporate
)

// Card is a drawn card ready for resolution.
type Card struct {
	Name        string
	Description string
	Effect      EffectKind

	// Amount is the fixed sum for transfer cards; transfers are clamped
	// to the payer's cash by the engine.
	Amount int
	// Inflation distinguishes the two market card flavors.
	Inflation bool
	// Percent and Turns parameterize a drawn market effect.
	Percent int
	Turns   int
}

// ChestDeck is a finite ordered deck cycled front-to-back; drawing never
// reshuffles.
type ChestDeck struct {
	cards []Card
}

// NewChestDeck builds the reference chest deck in its canonical order.
func NewChestDeck() *ChestDeck {
	return &ChestDeck{cards: []Card{
		{Name: "Outlier Clamp", Description: "Force your next outcome to be at most 1", Effect: EffectCapNextRoll},
		{Name: "Variance Eraser", Description: "Delete one house placed on someone's property", Effect: EffectRemoveHouse},
		{Name: "Bernoulli Trial", Description: "Flip a fair coin: Heads = extra turn, Tails = lose turn", Effect: EffectCoinFlip},
		{Name: "Compound Growth", Description: "Gain a 10% wealth boost", Effect: EffectWindfall},
	}}
}

// Draw pops the front card and pushes it to the back.
func (d *ChestDeck) Draw() Card {
	card := d.cards[0]
	d.cards = append(d.cards[1:], card)
	return card
}

// Len reports the deck size.
func (d *ChestDeck) Len() int {
	return len(d.cards)
}

type chanceCategory struct {
	weight int
	cards  []Card
}

// Chance draw: 35% market, 35% money transfer, 30% special action.
var chanceCategories = []chanceCategory{
	{weight: 35, cards: []Card{
		{Name: "Inflation", Description: "Housing prices increase +50% to +100% for 2-4 turns!", Effect: EffectMarket, Inflation: true},
		{Name: "Market Drop", Description: "Housing prices decrease -25% to -50% for 2-4 turns!", Effect: EffectMarket},
	}},
	{weight: 35, cards: []Card{
		{Name: "Canada Wins Gold!", Description: "Gain $100.", Effect: EffectBankTransfer, Amount: 100},
		{Name: "Your Friend Needs Money", Description: "Lose $25.", Effect: EffectBankTransfer, Amount: -25},
		{Name: "School Bake Sale", Description: "Your school hosted a bake sale. Gain $10.", Effect: EffectBankTransfer, Amount: 10},
		{Name: "Jackpot!", Description: "You hit the jackpot! Gain $200.", Effect: EffectBankTransfer, Amount: 200},
		{Name: "Mr. Monopoly's Tax", Description: "Mr. Monopoly is taxing you. Lose $100.", Effect: EffectBankTransfer, Amount: -100},
		{Name: "Wheel of Fortune", Description: "You spun the wheel of fortune! Gain $50.", Effect: EffectBankTransfer, Amount: 50},
		{Name: "Concert Tickets", Description: "You bought concert tickets. Lose $50.", Effect: EffectBankTransfer, Amount: -50},
		{Name: "Spare Change", Description: "Collect $10 from each player.", Effect: EffectCollectFromEach, Amount: 10},
		{Name: "Party Host", Description: "Collect $25 from each player.", Effect: EffectCollectFromEach, Amount: 25},
		{Name: "Huge Apology", Description: "Pay $50 to each player.", Effect: EffectPayToEach, Amount: 50},
	}},
	{weight: 30, cards: []Card{
		{Name: "Hackathon Laptop", Description: "Pick a roll number between 1 and 12. Move to that space!", Effect: EffectPickDestination},
		{Name: "Evaporator", Description: "Delete one house from any property on the board!", Effect: EffectEvaporate},
		{Name: "Coin Flip", Description: "Flip a coin: Heads = extra turn, Tails = lose a turn.", Effect: EffectCoinFlip},
		{Name: "Coin Bag", Description: "Gives you 10% more money!", Effect: EffectWindfall},
	}},
}

// DrawChance picks a category by weight, then a uniform card within it.
// Market cards leave with their magnitude and duration already rolled.
func DrawChance(rng *rand.Rand) Card {
	totalWeight := 0
	for _, cat := range chanceCategories {
		totalWeight += cat.weight
	}
	pick := rng.Intn(totalWeight)
	var chosen chanceCategory
	for _, cat := range chanceCategories {
		if pick < cat.weight {
			chosen = cat
			break
		}
		pick -= cat.weight
	}

	card := chosen.cards[rng.Intn(len(chosen.cards))]
	if card.Effect == EffectMarket {
		if card.Inflation {
			card.Percent = 50 + rng.Intn(51) // +50..100
		} else {
			card.Percent = 25 + rng.Intn(26) // -25..50
		}
		card.Turns = 2 + rng.Intn(3) // 2..4
	}
	return card
}
