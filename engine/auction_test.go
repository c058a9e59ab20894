package engine

import (
	"testing"

	"github.com/wfunc/tycoon/board"
)

// openAuction drops seat 0 onto York University with too little cash,
// forcing the automatic auction among three seats.
func openAuction(t *testing.T) *Game {
	t.Helper()
	g := newTestGame(t, 3)
	g.players[0].Cash = 150
	g.resolveRoll(5, false)
	if g.phase != PhaseAuction {
		t.Fatalf("phase = %v, want auction", g.phase)
	}
	return g
}

func TestOpeningBid(t *testing.T) {
	if got := OpeningBid(200); got != 100 {
		t.Fatalf("OpeningBid(200) = %d, want 100", got)
	}
	if got := OpeningBid(1); got != 1 {
		t.Fatalf("OpeningBid(1) = %d, want 1", got)
	}
}

func TestAuctionRaiseAndSettle(t *testing.T) {
	g := openAuction(t)
	a := g.auction

	g.auctionRaise(0, 100) // first raise may match the floor
	if a.HighestBidder != 0 || a.CurrentBid != 100 {
		t.Fatalf("leader=%d bid=%d, want 0/100", a.HighestBidder, a.CurrentBid)
	}
	g.auctionRaise(1, 120)
	if a.HighestBidder != 1 || a.CurrentBid != 120 {
		t.Fatalf("leader=%d bid=%d, want 1/120", a.HighestBidder, a.CurrentBid)
	}

	g.auctionLeave(2)
	g.auctionLeave(0)

	prop := g.board.PropertyAt(5)
	if prop.OwnerSeat != 1 {
		t.Fatalf("owner = %d, want 1", prop.OwnerSeat)
	}
	if g.players[1].Cash != 380 {
		t.Fatalf("winner cash = %d, want 380", g.players[1].Cash)
	}
	if g.auction != nil || g.phase != PhaseTurnResolved {
		t.Fatal("auction should be closed and the turn resolved")
	}
}

func TestAuctionRejectsBadRaises(t *testing.T) {
	g := openAuction(t)
	a := g.auction

	g.auctionRaise(1, 150) // not the current bidder
	if a.HighestBidder != board.NoOwner {
		t.Fatal("out-of-turn raise must be ignored")
	}
	g.auctionRaise(0, 99) // below the floor
	if a.HighestBidder != board.NoOwner {
		t.Fatal("sub-floor raise must be ignored")
	}
	g.auctionRaise(0, 9999) // beyond the bidder's cash
	if a.HighestBidder != board.NoOwner {
		t.Fatal("unaffordable raise must be ignored")
	}

	g.auctionRaise(0, 100)
	g.auctionRaise(1, 100) // must beat a standing bid
	if a.HighestBidder != 0 || a.CurrentBid != 100 {
		t.Fatal("matching a standing bid must be rejected")
	}
}

func TestAuctionTimeoutAdvancesBidder(t *testing.T) {
	g := openAuction(t)
	a := g.auction
	budget := g.auctionBudget()

	first := a.CurrentBidder()
	for i := 0; i < budget; i++ {
		g.Tick()
	}
	if a.CurrentBidder() == first {
		t.Fatal("expired budget should pass to the next bidder")
	}
	if a.CurrentBid != 100 || a.HighestBidder != board.NoOwner {
		t.Fatal("an implicit pass must leave the bid untouched")
	}
}

func TestAuctionFullRotationOfPassesCloses(t *testing.T) {
	g := openAuction(t)
	budget := g.auctionBudget()

	for i := 0; i < budget*3; i++ {
		g.Tick()
	}
	if g.auction != nil {
		t.Fatal("a full silent rotation should close the auction")
	}
	if g.board.PropertyAt(5).Owned() {
		t.Fatal("an unsold property stays with the bank")
	}
	if g.phase != PhaseTurnResolved {
		t.Fatalf("phase = %v, want turn_resolved", g.phase)
	}
}

func TestAuctionRaiseResetsPassStreak(t *testing.T) {
	g := openAuction(t)
	budget := g.auctionBudget()

	// Two implicit passes, then a raise; the close needs a fresh
	// rotation of silence afterwards.
	for i := 0; i < budget*2; i++ {
		g.Tick()
	}
	g.auctionRaise(g.auction.CurrentBidder(), 110)

	for i := 0; i < budget*3-1; i++ {
		g.Tick()
	}
	if g.auction == nil {
		t.Fatal("auction closed before a full post-raise rotation")
	}
	g.Tick()
	if g.auction != nil {
		t.Fatal("auction should close after the rotation completes")
	}
	if g.board.PropertyAt(5).OwnerSeat == board.NoOwner {
		t.Fatal("the standing raise should win at close")
	}
}

func TestAuctionLastBidderWins(t *testing.T) {
	g := openAuction(t)

	g.auctionRaise(0, 100)
	g.auctionLeave(1)
	g.auctionLeave(2)

	if g.board.PropertyAt(5).OwnerSeat != 0 {
		t.Fatal("the sole remaining leader should take the property")
	}
	if g.players[0].Cash != 50 {
		t.Fatalf("winner cash = %d, want 50", g.players[0].Cash)
	}
}

func TestAuctionSkipsBrokePlayers(t *testing.T) {
	g := newTestGame(t, 3)
	g.players[0].Cash = 150
	g.players[2].Cash = 0
	g.resolveRoll(5, false)

	for _, seat := range g.auction.Bidders {
		if seat == 2 {
			t.Fatal("a player with no cash cannot bid")
		}
	}
}
