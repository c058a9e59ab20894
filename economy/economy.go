package economy

import (
	"errors"
	"math"
	"math/rand"

	"github.com/wfunc/tycoon/board"
)

// EffectKind tags a market effect.
type EffectKind int

const (
	Inflation EffectKind = iota
	Drop
)

func (k EffectKind) String() string {
	if k == Drop {
		return "market_drop"
	}
	return "inflation"
}

// MarketEffect is a timed percentage multiplier on every stock value.
type MarketEffect struct {
	Kind      EffectKind `json:"kind"`
	Percent   int        `json:"percent"`
	TurnsLeft int        `json:"turns_left"`
}

const (
	HousePoolCap = 32
	HotelPoolCap = 12
)

var (
	ErrNoHousesInBank   = errors.New("no houses available in the bank")
	ErrNoHotelsInBank   = errors.New("no hotels available in the bank")
	ErrNotBuildable     = errors.New("space cannot hold buildings")
	ErrHousesRequired   = errors.New("four houses required before a hotel")
	ErrNothingToSell    = errors.New("no houses or hotel to sell")
	ErrHousePoolDrained = errors.New("not enough houses in the bank to break up the hotel")
)

// Economy owns the shared building pools and the active market effects.
// All pool mutation goes through its methods; pools never go negative.
type Economy struct {
	housePool int
	hotelPool int
	effects   []MarketEffect
	rng       *rand.Rand
}

func New(rng *rand.Rand) *Economy {
	return &Economy{
		housePool: HousePoolCap,
		hotelPool: HotelPoolCap,
		rng:       rng,
	}
}

func (e *Economy) HousePool() int { return e.housePool }
func (e *Economy) HotelPool() int { return e.hotelPool }

// Effects returns a copy of the active market effects.
func (e *Economy) Effects() []MarketEffect {
	out := make([]MarketEffect, len(e.effects))
	copy(out, e.effects)
	return out
}

// AddEffect registers a market effect for the coming turns.
func (e *Economy) AddEffect(kind EffectKind, percent, turns int) {
	e.effects = append(e.effects, MarketEffect{Kind: kind, Percent: percent, TurnsLeft: turns})
}

// ApplyEffectNow pushes one effect's adjustment through every property
// without touching its timer. Used when a drawn card takes hold in the
// turn it appears.
func ApplyEffectNow(kind EffectKind, percent int, props []*board.Property) {
	signed := float64(percent)
	if kind == Drop {
		signed = -signed
	}
	for _, p := range props {
		p.UpdateStockValue(signed)
	}
}

// ApplyTurn runs the once-per-turn market pass: every active effect
// adjusts every stock value, timers decrement and expired effects drop
// out; then each property takes an independent ±5% drift. Both clamp to
// the stock floor.
func (e *Economy) ApplyTurn(props []*board.Property) {
	kept := e.effects[:0]
	for _, eff := range e.effects {
		ApplyEffectNow(eff.Kind, eff.Percent, props)
		eff.TurnsLeft--
		if eff.TurnsLeft > 0 {
			kept = append(kept, eff)
		}
	}
	e.effects = kept

	for _, p := range props {
		multiplier := 0.95 + e.rng.Float64()*0.10
		value := int(math.Round(float64(p.StockValue) * multiplier))
		if value < board.MinStockValue {
			value = board.MinStockValue
		}
		p.StockValue = value
	}
}

// BuildHouse places one house on p, consuming a unit from the pool.
func (e *Economy) BuildHouse(p *board.Property) error {
	if p.Kind != board.KindProperty || p.Hotel || p.Houses >= 4 {
		return ErrNotBuildable
	}
	if e.housePool <= 0 {
		return ErrNoHousesInBank
	}
	p.Houses++
	e.housePool--
	return nil
}

// BuildHotel upgrades four houses into a hotel. The houses return to the
// pool, the hotel comes out of its own pool.
func (e *Economy) BuildHotel(p *board.Property) error {
	if p.Kind != board.KindProperty || p.Hotel {
		return ErrNotBuildable
	}
	if p.Houses != 4 {
		return ErrHousesRequired
	}
	if e.hotelPool <= 0 {
		return ErrNoHotelsInBank
	}
	p.Hotel = true
	p.Houses = 0
	e.hotelPool--
	e.housePool += 4
	return nil
}

// SellUnit removes the top building from p and reports the refund: half
// the cost of the last house built, or half the hotel cost. Selling a
// hotel converts it back into four houses and needs four spare units in
// the house pool.
func (e *Economy) SellUnit(p *board.Property) (refund int, err error) {
	if p.Houses > 0 {
		lastCost := int(math.Round(float64(p.BaseBuildCost()) * math.Pow(1.3, float64(p.Houses-1))))
		p.Houses--
		e.housePool++
		return lastCost / 2, nil
	}
	if p.Hotel {
		if e.housePool < 4 {
			return 0, ErrHousePoolDrained
		}
		hotelCost := int(math.Round(float64(p.BaseBuildCost()) * math.Pow(1.3, 4) * 2))
		p.Hotel = false
		p.Houses = 4
		e.hotelPool++
		e.housePool -= 4
		return hotelCost / 2, nil
	}
	return 0, ErrNothingToSell
}

// RemoveBuilding destroys one building outright (card effect, no refund).
// A hotel is removed whole.
func (e *Economy) RemoveBuilding(p *board.Property) bool {
	if p.Hotel {
		p.Hotel = false
		p.Houses = 0
		e.hotelPool++
		return true
	}
	if p.Houses > 0 {
		p.Houses--
		e.housePool++
		return true
	}
	return false
}

// ReclaimBuildings strips every building from p back into the pools.
// Used when a bankrupt player's holdings revert to the bank.
func (e *Economy) ReclaimBuildings(p *board.Property) {
	if p.Hotel {
		p.Hotel = false
		e.hotelPool++
	}
	if p.Houses > 0 {
		e.housePool += p.Houses
		p.Houses = 0
	}
}

// Reset restores full pools and clears effects for a fresh game.
func (e *Economy) Reset() {
	e.housePool = HousePoolCap
	e.hotelPool = HotelPoolCap
	e.effects = nil
}
