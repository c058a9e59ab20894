package engine

import (
	"fmt"

	"github.com/wfunc/tycoon/board"
	"github.com/wfunc/tycoon/logger"
	"github.com/wfunc/tycoon/timer"
)

// Auction is the live state of one property auction. Bidders act in
// round-robin order; each gets a tick budget per turn and an expired
// budget counts as an implicit pass.
type Auction struct {
	Property      *board.Property
	CurrentBid    int
	HighestBidder int // seat, or board.NoOwner before the first raise
	Bidders       []int
	TurnIdx       int

	passStreak int
	countdown  timer.Countdown
}

// OpeningBid is the auction floor for a property.
func OpeningBid(price int) int {
	if bid := price / 2; bid > 1 {
		return bid
	}
	return 1
}

// CurrentBidder is the seat whose bid window is open.
func (a *Auction) CurrentBidder() int {
	return a.Bidders[a.TurnIdx]
}

// BidTicksLeft is the remaining tick budget of the current bidder.
func (a *Auction) BidTicksLeft() int {
	return a.countdown.Remaining()
}

// startAuction opens bidding among every active player who can put up
// at least one dollar.
func (g *Game) startAuction(prop *board.Property) {
	var bidders []int
	for _, p := range g.activePlayers() {
		if p.Cash > 0 {
			bidders = append(bidders, p.Seat)
		}
	}
	if len(bidders) == 0 {
		g.setMessage(fmt.Sprintf("Nobody can bid; %s stays with the bank.", prop.Name))
		g.finishTurn()
		return
	}

	g.auction = &Auction{
		Property:      prop,
		CurrentBid:    OpeningBid(prop.Price),
		HighestBidder: board.NoOwner,
		Bidders:       bidders,
	}
	g.auction.countdown.Start(g.auctionBudget())
	g.phase = PhaseAuction
	g.stats.AuctionsHeld++
}

func (g *Game) auctionBudget() int {
	return g.cfg.AuctionTurnSeconds * g.cfg.TicksPerSecond
}

// auctionTick burns the current bidder's budget; expiry is an implicit
// pass that advances the rotation without touching the bid.
func (g *Game) auctionTick() {
	a := g.auction
	if a == nil {
		return
	}
	if !a.countdown.Advance() {
		return
	}
	a.passStreak++
	if a.passStreak >= len(a.Bidders) {
		g.closeAuction()
		return
	}
	a.TurnIdx = (a.TurnIdx + 1) % len(a.Bidders)
	a.countdown.Start(g.auctionBudget())
}

// auctionRaise accepts a bid from the current bidder. The new bid must
// beat the standing one and stay within the bidder's cash.
func (g *Game) auctionRaise(seat, amount int) {
	a := g.auction
	if g.phase != PhaseAuction || a == nil || a.CurrentBidder() != seat {
		return
	}
	p := g.players[seat]

	minBid := a.CurrentBid
	if a.HighestBidder != board.NoOwner {
		minBid++
	}
	if amount < minBid {
		g.setMessage(fmt.Sprintf("Bid at least $%d.", minBid))
		return
	}
	if amount > p.Cash {
		g.setMessage(fmt.Sprintf("%s cannot cover a $%d bid.", p.Name, amount))
		return
	}

	a.CurrentBid = amount
	a.HighestBidder = seat
	a.passStreak = 0
	a.TurnIdx = (a.TurnIdx + 1) % len(a.Bidders)
	a.countdown.Start(g.auctionBudget())
	g.setMessage(fmt.Sprintf("%s bids $%d for %s.", p.Name, amount, a.Property.Name))
}

// auctionLeave drops a bidder out of the rotation for good.
func (g *Game) auctionLeave(seat int) {
	a := g.auction
	if g.phase != PhaseAuction || a == nil {
		return
	}
	g.auctionRemoveSeat(seat)
}

// auctionRemoveSeat removes seat from the bidder rotation, fixing up
// the turn index and closing the auction once at most one bidder is
// left.
func (g *Game) auctionRemoveSeat(seat int) {
	a := g.auction
	idx := -1
	for i, s := range a.Bidders {
		if s == seat {
			idx = i
			break
		}
	}
	if idx < 0 {
		return
	}

	a.Bidders = append(a.Bidders[:idx], a.Bidders[idx+1:]...)
	if len(a.Bidders) <= 1 {
		g.closeAuction()
		return
	}
	if idx < a.TurnIdx {
		a.TurnIdx--
	}
	if a.TurnIdx >= len(a.Bidders) {
		a.TurnIdx = 0
	}
	if idx <= a.TurnIdx {
		// The bid window belongs to whoever inherited the slot.
		a.countdown.Start(g.auctionBudget())
	}
	if a.passStreak >= len(a.Bidders) {
		g.closeAuction()
	}
}

// closeAuction settles with the leader, or returns the property to the
// bank when nobody bid.
func (g *Game) closeAuction() {
	a := g.auction
	g.auction = nil

	sold := false
	if a.HighestBidder != board.NoOwner {
		winner := g.players[a.HighestBidder]
		if winner.Pay(a.CurrentBid) {
			a.Property.OwnerSeat = winner.Seat
			sold = true
			g.setMessage(fmt.Sprintf("%s won %s at auction for $%d!", winner.Name, a.Property.Name, a.CurrentBid))
		} else {
			// The leader's cash moved under them (rent settled
			// mid-auction). Bid void, property stays banked.
			logger.Log.Infof("auction leader seat %d could not settle $%d for %s", winner.Seat, a.CurrentBid, a.Property.Name)
			g.setMessage(fmt.Sprintf("%s could not pay; %s returns to the bank.", winner.Name, a.Property.Name))
		}
	} else {
		g.setMessage(fmt.Sprintf("No bids; %s stays with the bank.", a.Property.Name))
	}

	if g.observer != nil {
		g.observer.AuctionClosed(sold)
	}
	g.finishTurn()
}
