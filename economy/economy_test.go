package economy

import (
	"math/rand"
	"testing"

	"github.com/wfunc/tycoon/board"
)

func newEconomy() (*Economy, *board.Board) {
	return New(rand.New(rand.NewSource(7))), board.New()
}

func TestHousePoolConservation(t *testing.T) {
	e, b := newEconomy()
	p := b.PropertyAt(39)
	p.OwnerSeat = 0

	for i := 0; i < 4; i++ {
		if err := e.BuildHouse(p); err != nil {
			t.Fatalf("build house %d: %v", i+1, err)
		}
	}
	if e.HousePool() != HousePoolCap-4 {
		t.Errorf("house pool = %d, want %d", e.HousePool(), HousePoolCap-4)
	}

	if err := e.BuildHotel(p); err != nil {
		t.Fatalf("build hotel: %v", err)
	}
	// The hotel returns four houses to the bank and takes one hotel.
	if e.HousePool() != HousePoolCap {
		t.Errorf("house pool after hotel = %d, want %d", e.HousePool(), HousePoolCap)
	}
	if e.HotelPool() != HotelPoolCap-1 {
		t.Errorf("hotel pool = %d, want %d", e.HotelPool(), HotelPoolCap-1)
	}
	if p.Houses != 0 || !p.Hotel {
		t.Errorf("property should hold a hotel only: %+v", p)
	}
}

func TestHotelRequiresFourHouses(t *testing.T) {
	e, b := newEconomy()
	p := b.PropertyAt(39)
	p.Houses = 3
	if err := e.BuildHotel(p); err != ErrHousesRequired {
		t.Errorf("got %v, want ErrHousesRequired", err)
	}
}

func TestSellHouseRefundsHalfLastCost(t *testing.T) {
	e, b := newEconomy()
	p := b.PropertyAt(39) // base build cost 100
	for i := 0; i < 3; i++ {
		if err := e.BuildHouse(p); err != nil {
			t.Fatal(err)
		}
	}
	refund, err := e.SellUnit(p)
	if err != nil {
		t.Fatal(err)
	}
	// Third house cost round(100*1.3^2)=169, refund half.
	if refund != 84 {
		t.Errorf("refund = %d, want 84", refund)
	}
	if p.Houses != 2 || e.HousePool() != HousePoolCap-2 {
		t.Errorf("houses=%d pool=%d after sale", p.Houses, e.HousePool())
	}
}

func TestSellHotelNeedsHousesInBank(t *testing.T) {
	e, b := newEconomy()
	p := b.PropertyAt(39)
	p.Houses = 4
	if err := e.BuildHotel(p); err != nil {
		t.Fatal(err)
	}

	e.housePool = 3
	if _, err := e.SellUnit(p); err != ErrHousePoolDrained {
		t.Fatalf("got %v, want ErrHousePoolDrained", err)
	}
	if !p.Hotel {
		t.Error("failed hotel sale must not change the property")
	}

	e.housePool = 4
	refund, err := e.SellUnit(p)
	if err != nil {
		t.Fatal(err)
	}
	if refund != 285 { // round(100*1.3^4*2)=571, half rounded down
		t.Errorf("hotel refund = %d, want 285", refund)
	}
	if p.Hotel || p.Houses != 4 {
		t.Errorf("hotel should convert back to 4 houses: %+v", p)
	}
	if e.housePool != 0 || e.hotelPool != HotelPoolCap {
		t.Errorf("pools house=%d hotel=%d after hotel sale", e.housePool, e.hotelPool)
	}
}

func TestPoolExhaustion(t *testing.T) {
	e, b := newEconomy()
	e.housePool = 0
	p := b.PropertyAt(1)
	if err := e.BuildHouse(p); err != ErrNoHousesInBank {
		t.Errorf("got %v, want ErrNoHousesInBank", err)
	}
	if p.Houses != 0 {
		t.Error("failed build must not place a house")
	}
}

func TestMarketEffectLifecycle(t *testing.T) {
	e, b := newEconomy()
	props := b.Properties()
	p := b.PropertyAt(1)
	start := p.StockValue

	e.AddEffect(Inflation, 100, 2)
	e.ApplyTurn(props)
	// +100% then drift within ±5%; value must be near double.
	if p.StockValue < int(float64(start)*2*0.95) || p.StockValue > int(float64(start)*2*1.05)+1 {
		t.Errorf("stock value after inflation = %d, start %d", p.StockValue, start)
	}
	if got := len(e.Effects()); got != 1 {
		t.Fatalf("effect should survive first turn, have %d", got)
	}
	e.ApplyTurn(props)
	if got := len(e.Effects()); got != 0 {
		t.Errorf("effect should expire after two turns, have %d", got)
	}
}

func TestDriftRespectsFloor(t *testing.T) {
	e, b := newEconomy()
	props := b.Properties()
	e.AddEffect(Drop, 50, 10)
	for i := 0; i < 30; i++ {
		e.ApplyTurn(props)
	}
	for _, p := range props {
		if p.StockValue < board.MinStockValue {
			t.Fatalf("%s stock value %d below floor", p.Name, p.StockValue)
		}
	}
}

func TestRemoveBuilding(t *testing.T) {
	e, b := newEconomy()
	p := b.PropertyAt(1)
	if e.RemoveBuilding(p) {
		t.Error("nothing to remove on a bare property")
	}
	p.Houses = 2
	e.housePool = HousePoolCap - 2
	if !e.RemoveBuilding(p) || p.Houses != 1 || e.housePool != HousePoolCap-1 {
		t.Errorf("house removal wrong: houses=%d pool=%d", p.Houses, e.housePool)
	}
}
