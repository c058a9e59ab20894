package engine

import (
	"testing"

	"github.com/wfunc/tycoon/board"
)

// negotiatedTrade sets up seat 0 offering STC plus $50 for seat 1's
// Distillery District plus $20, proposed and awaiting confirmation.
func negotiatedTrade(t *testing.T) *Game {
	t.Helper()
	g := newTestGame(t, 2)
	g.board.PropertyAt(1).OwnerSeat = 0
	g.board.PropertyAt(14).OwnerSeat = 1

	g.openTrade(0)
	g.tradeSelectPartner(0, 1)
	g.tradeToggleProperty(0, 1, true)
	g.tradeToggleProperty(0, 14, false)
	g.tradeSetCash(0, 50, true)
	g.tradeSetCash(0, 20, false)
	g.tradePropose(0)

	if g.trade == nil || g.trade.Stage != StageConfirming {
		t.Fatal("trade should be awaiting confirmation")
	}
	return g
}

func TestTradeSettlesAtomically(t *testing.T) {
	g := negotiatedTrade(t)

	g.tradeAccept(1)

	if g.board.PropertyAt(1).OwnerSeat != 1 || g.board.PropertyAt(14).OwnerSeat != 0 {
		t.Fatal("ownership should swap")
	}
	if g.players[0].Cash != 470 || g.players[1].Cash != 530 {
		t.Fatalf("cash = %d/%d, want 470/530", g.players[0].Cash, g.players[1].Cash)
	}
	if g.trade != nil || g.phase != PhaseAwaitingRoll {
		t.Fatal("settled trade should clear and resume the turn")
	}
}

func TestTradeRevalidationFailureLeavesNoPartialEffect(t *testing.T) {
	g := negotiatedTrade(t)

	// Ownership moves under the proposal before confirmation.
	g.board.PropertyAt(1).OwnerSeat = board.NoOwner

	g.tradeAccept(1)

	if g.board.PropertyAt(14).OwnerSeat != 1 {
		t.Fatal("requested property must stay put when the trade voids")
	}
	if g.players[0].Cash != 500 || g.players[1].Cash != 500 {
		t.Fatal("no cash may move when the trade voids")
	}
	if g.trade != nil {
		t.Fatal("voided trade should clear")
	}
}

func TestTradeRevalidatesCash(t *testing.T) {
	g := negotiatedTrade(t)
	g.players[0].Cash = 10 // can no longer cover the offered $50

	g.tradeAccept(1)

	if g.board.PropertyAt(1).OwnerSeat != 0 {
		t.Fatal("trade must void on unaffordable cash")
	}
}

func TestTradeDecline(t *testing.T) {
	g := negotiatedTrade(t)

	g.tradeDecline(1)

	if g.board.PropertyAt(1).OwnerSeat != 0 || g.players[0].Cash != 500 {
		t.Fatal("declined trade must leave everything untouched")
	}
	if g.trade != nil || g.phase != PhaseAwaitingRoll {
		t.Fatal("declined trade should clear")
	}
}

func TestTradeCancelByInitiator(t *testing.T) {
	g := negotiatedTrade(t)

	g.tradeCancel(1) // only the initiator may cancel
	if g.trade == nil {
		t.Fatal("partner cannot cancel")
	}
	g.tradeCancel(0)
	if g.trade != nil {
		t.Fatal("initiator cancel should clear the trade")
	}
}

func TestTradeOnlyPartnerAccepts(t *testing.T) {
	g := negotiatedTrade(t)

	g.tradeAccept(0)
	if g.trade == nil {
		t.Fatal("the initiator cannot accept their own proposal")
	}
}

func TestTradeRejectsBuiltProperties(t *testing.T) {
	g := newTestGame(t, 2)
	prop := g.board.PropertyAt(1)
	prop.OwnerSeat = 0
	prop.Houses = 1

	g.openTrade(0)
	g.tradeSelectPartner(0, 1)
	g.tradeToggleProperty(0, 1, true)

	if g.trade.OfferProps[1] {
		t.Fatal("built properties are not tradeable")
	}
}

func TestTradeRejectsForeignProperty(t *testing.T) {
	g := newTestGame(t, 2)
	g.board.PropertyAt(1).OwnerSeat = 1

	g.openTrade(0)
	g.tradeSelectPartner(0, 1)
	g.tradeToggleProperty(0, 1, true) // offered, but owned by the partner

	if g.trade.OfferProps[1] {
		t.Fatal("only the initiator's holdings can be offered")
	}
}

func TestEmptyProposalRejected(t *testing.T) {
	g := newTestGame(t, 2)
	g.openTrade(0)
	g.tradeSelectPartner(0, 1)

	g.tradePropose(0)
	if g.trade.Stage != StageNegotiating {
		t.Fatal("an empty proposal must not reach confirmation")
	}
}

func TestTradeCashBounds(t *testing.T) {
	g := newTestGame(t, 2)
	g.openTrade(0)
	g.tradeSelectPartner(0, 1)

	g.tradeSetCash(0, 9999, true)
	if g.trade.OfferCash != 0 {
		t.Fatal("offer cash beyond the balance must be rejected")
	}
	g.tradeSetCash(0, -5, false)
	if g.trade.RequestCash != 0 {
		t.Fatal("negative cash should clamp to zero")
	}
}
