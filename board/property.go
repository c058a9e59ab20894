package board

import "math"

// NoOwner marks a bank-held property.
const NoOwner = -1

// Property is the mutable ledger entry for one ownable space.
type Property struct {
	Position int
	Name     string
	Kind     SpaceKind
	Group    Group
	Price    int
	BaseRent int

	OwnerSeat  int
	Houses     int // 0-4, exclusive with Hotel
	Hotel      bool
	Mortgaged  bool
	StockValue int // never below MinStockValue
}

// MinStockValue is the floor every stock value is clamped to.
const MinStockValue = 10

// Owned reports whether any player holds the property.
func (p *Property) Owned() bool {
	return p.OwnerSeat != NoOwner
}

// BuildLevel collapses houses/hotel into one ordering: 0-4 houses, 5 hotel.
func (p *Property) BuildLevel() int {
	if p.Hotel {
		return 5
	}
	return p.Houses
}

// HasBuildings reports whether any house or hotel stands on the property.
func (p *Property) HasBuildings() bool {
	return p.Houses > 0 || p.Hotel
}

// BaseBuildCost anchors the escalating house cost ladder.
func (p *Property) BaseBuildCost() int {
	if cost := p.Price / 4; cost > 50 {
		return cost
	}
	return 50
}

// HouseCost prices the next house. ok is false when no house may be added
// (wrong kind, hotel present, or already at four houses).
func (p *Property) HouseCost() (cost int, ok bool) {
	if p.Kind != KindProperty || p.Hotel || p.Houses >= 4 {
		return 0, false
	}
	base := float64(p.BaseBuildCost())
	return int(math.Round(base * math.Pow(1.3, float64(p.Houses)))), true
}

// HotelCost prices the hotel upgrade. Requires exactly four houses.
func (p *Property) HotelCost() (cost int, ok bool) {
	if p.Kind != KindProperty || p.Hotel || p.Houses != 4 {
		return 0, false
	}
	base := float64(p.BaseBuildCost())
	return int(math.Round(base * math.Pow(1.3, 4) * 2)), true
}

// incomeMultiplier scales untiered rent by build level.
func (p *Property) incomeMultiplier() float64 {
	m := math.Pow(1.3, float64(p.Houses))
	if p.Hotel {
		m *= 2
	}
	return m
}

// MortgageValue is what the bank pays out on mortgage.
func (p *Property) MortgageValue() int {
	return p.Price / 2
}

// UnmortgageCost is the redemption price (mortgage value plus 10%).
func (p *Property) UnmortgageCost() int {
	return int(math.Round(float64(p.MortgageValue()) * 1.10))
}

// UpdateStockValue applies a percentage change, clamped to the floor.
func (p *Property) UpdateStockValue(percent float64) {
	p.StockValue = int(float64(p.StockValue) * (1 + percent/100))
	if p.StockValue < MinStockValue {
		p.StockValue = MinStockValue
	}
}

// Rent computes the rent due when a visitor lands on p. diceTotal only
// matters for utilities.
func (b *Board) Rent(p *Property, diceTotal int) int {
	if p.Mortgaged {
		return 0
	}

	switch p.Kind {
	case KindTrainStation:
		owned := b.OwnedCountInGroup(p.OwnerSeat, GroupStation)
		if owned < 1 {
			owned = 1
		}
		return 25 * (1 << (owned - 1))

	case KindUtility:
		multiplier := 4
		if b.OwnedCountInGroup(p.OwnerSeat, GroupUtility) == 2 {
			multiplier = 10
		}
		if diceTotal < 1 {
			diceTotal = 1
		}
		return multiplier * diceTotal

	default:
		tiers := rentTiers[p.Position]
		stockRatio := float64(p.StockValue) / float64(max(1, p.Price))

		if tiers == nil {
			base := int(math.Round(float64(p.BaseRent) * stockRatio))
			if base < 1 {
				base = 1
			}
			return int(math.Round(float64(base) * p.incomeMultiplier()))
		}

		var tier int
		switch {
		case p.Hotel:
			tier = tiers[len(tiers)-1]
		case p.Houses > 0:
			tier = tiers[min(p.Houses, len(tiers)-1)]
		default:
			tier = tiers[0]
		}

		rent := int(math.Round(float64(tier) * stockRatio))
		if rent < 0 {
			rent = 0
		}
		return rent
	}
}
