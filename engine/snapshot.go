package engine

import (
	"sort"

	"github.com/wfunc/tycoon/board"
	"github.com/wfunc/tycoon/dice"
	"github.com/wfunc/tycoon/economy"
)

// Snapshot is a render-ready view of the whole game, safe to marshal
// and ship to clients. It copies everything; clients never alias engine
// state.
type Snapshot struct {
	Phase       string `json:"phase"`
	CurrentSeat int    `json:"current_seat"`
	Message     string `json:"message,omitempty"`
	WinnerSeat  int    `json:"winner_seat"` // board.NoOwner while running

	Dice       DiceView       `json:"dice"`
	Players    []PlayerView   `json:"players"`
	Properties []PropertyView `json:"properties"`

	HousePool int                    `json:"house_pool"`
	HotelPool int                    `json:"hotel_pool"`
	Effects   []economy.MarketEffect `json:"effects,omitempty"`

	Auction *AuctionView `json:"auction,omitempty"`
	Trade   *TradeView   `json:"trade,omitempty"`

	Stats StatsView `json:"stats"`
}

// DiceView pairs the selected distribution with its analytic figures.
type DiceView struct {
	Kind          string  `json:"kind"`
	LastTotal     int     `json:"last_total"`
	LastDouble    bool    `json:"last_double"`
	ExpectedTotal float64 `json:"expected_total"`
	Variance      float64 `json:"variance"`
	DoublesProb   float64 `json:"doubles_prob"`
}

type PlayerView struct {
	Seat       int    `json:"seat"`
	Name       string `json:"name"`
	Token      string `json:"token"`
	Position   int    `json:"position"`
	Cash       int    `json:"cash"`
	InJail     bool   `json:"in_jail"`
	Eliminated bool   `json:"eliminated"`
}

type PropertyView struct {
	Position   int    `json:"position"`
	Name       string `json:"name"`
	Group      string `json:"group"`
	Price      int    `json:"price"`
	OwnerSeat  int    `json:"owner_seat"`
	Houses     int    `json:"houses"`
	Hotel      bool   `json:"hotel"`
	Mortgaged  bool   `json:"mortgaged"`
	StockValue int    `json:"stock_value"`
}

type AuctionView struct {
	Position      int   `json:"position"`
	CurrentBid    int   `json:"current_bid"`
	HighestBidder int   `json:"highest_bidder"`
	CurrentBidder int   `json:"current_bidder"`
	Bidders       []int `json:"bidders"`
	TicksLeft     int   `json:"ticks_left"`
}

type TradeView struct {
	Initiator    int    `json:"initiator"`
	Partner      int    `json:"partner"`
	Stage        string `json:"stage"`
	OfferProps   []int  `json:"offer_props"`
	RequestProps []int  `json:"request_props"`
	OfferCash    int    `json:"offer_cash"`
	RequestCash  int    `json:"request_cash"`
}

type StatsView struct {
	RollCount     int     `json:"roll_count"`
	Mean          float64 `json:"mean"`
	DoublesCount  int     `json:"doubles_count"`
	TotalCounts   []int   `json:"total_counts"`
	LastRolls     []int   `json:"last_rolls"`
	VisitCounts   []int   `json:"visit_counts"`
	AuctionsHeld  int     `json:"auctions_held"`
	TradesSettled int     `json:"trades_settled"`
}

// Snapshot captures the current game state.
func (g *Game) Snapshot() Snapshot {
	snap := Snapshot{
		Phase:       g.phase.String(),
		CurrentSeat: g.current,
		Message:     g.message,
		WinnerSeat:  board.NoOwner,
		Dice: DiceView{
			Kind:          g.dice.Kind.String(),
			LastTotal:     g.rollTotal,
			LastDouble:    g.rollDouble,
			ExpectedTotal: dice.ExpectedTotal(g.dice.Kind),
			Variance:      dice.Variance(g.dice.Kind),
			DoublesProb:   dice.DoublesProbability(g.dice.Kind),
		},
		HousePool: g.econ.HousePool(),
		HotelPool: g.econ.HotelPool(),
		Effects:   g.econ.Effects(),
	}
	if g.winner != nil {
		snap.WinnerSeat = g.winner.Seat
	}

	for _, p := range g.players {
		snap.Players = append(snap.Players, PlayerView{
			Seat:       p.Seat,
			Name:       p.Name,
			Token:      p.Token,
			Position:   p.Position,
			Cash:       p.Cash,
			InJail:     p.InJail,
			Eliminated: p.Eliminated,
		})
	}
	for _, prop := range g.board.Properties() {
		snap.Properties = append(snap.Properties, PropertyView{
			Position:   prop.Position,
			Name:       prop.Name,
			Group:      string(prop.Group),
			Price:      prop.Price,
			OwnerSeat:  prop.OwnerSeat,
			Houses:     prop.Houses,
			Hotel:      prop.Hotel,
			Mortgaged:  prop.Mortgaged,
			StockValue: prop.StockValue,
		})
	}

	if a := g.auction; a != nil {
		snap.Auction = &AuctionView{
			Position:      a.Property.Position,
			CurrentBid:    a.CurrentBid,
			HighestBidder: a.HighestBidder,
			CurrentBidder: a.CurrentBidder(),
			Bidders:       append([]int(nil), a.Bidders...),
			TicksLeft:     a.BidTicksLeft(),
		}
	}
	if t := g.trade; t != nil {
		snap.Trade = &TradeView{
			Initiator:    t.Initiator,
			Partner:      t.Partner,
			Stage:        t.Stage.String(),
			OfferProps:   sortedKeys(t.OfferProps),
			RequestProps: sortedKeys(t.RequestProps),
			OfferCash:    t.OfferCash,
			RequestCash:  t.RequestCash,
		}
	}

	snap.Stats = StatsView{
		RollCount:     g.stats.RollCount,
		Mean:          g.stats.Mean(),
		DoublesCount:  g.stats.DoublesCount,
		TotalCounts:   append([]int(nil), g.stats.TotalCounts[:]...),
		LastRolls:     append([]int(nil), g.stats.LastRolls...),
		VisitCounts:   append([]int(nil), g.stats.VisitCounts[:]...),
		AuctionsHeld:  g.stats.AuctionsHeld,
		TradesSettled: g.stats.TradesSettled,
	}
	return snap
}

func sortedKeys(m map[int]bool) []int {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}
