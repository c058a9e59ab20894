package engine

import (
	"fmt"

	"github.com/wfunc/tycoon/board"
)

// TradeStage tracks the two-party trade protocol.
type TradeStage int

const (
	StageSelectingPartner TradeStage = iota
	StageNegotiating
	StageConfirming
)

func (s TradeStage) String() string {
	switch s {
	case StageSelectingPartner:
		return "selecting_partner"
	case StageNegotiating:
		return "negotiating"
	case StageConfirming:
		return "confirming"
	}
	return "unknown"
}

// Trade is a proposal under construction. The initiator assembles both
// sides; the partner only answers the final proposal. Settlement is
// all-or-nothing.
type Trade struct {
	Initiator int
	Partner   int // board.NoOwner until selected

	OfferProps   map[int]bool // positions offered by the initiator
	RequestProps map[int]bool // positions requested from the partner
	OfferCash    int
	RequestCash  int

	Stage TradeStage
}

// openTrade starts a trade on the initiator's pre-roll turn.
func (g *Game) openTrade(seat int) {
	if !g.requireTurn(seat, PhaseAwaitingRoll) {
		return
	}
	if len(g.activePlayers()) < 2 {
		g.setMessage("Nobody to trade with.")
		return
	}
	g.trade = &Trade{
		Initiator:    seat,
		Partner:      board.NoOwner,
		OfferProps:   make(map[int]bool),
		RequestProps: make(map[int]bool),
	}
	g.phase = PhaseTrade
}

func (g *Game) tradeSelectPartner(seat, partner int) {
	t := g.trade
	if g.phase != PhaseTrade || t == nil || t.Stage != StageSelectingPartner || seat != t.Initiator {
		return
	}
	if partner < 0 || partner >= len(g.players) || partner == seat || g.players[partner].Eliminated {
		g.setMessage("Pick another player to trade with.")
		return
	}
	t.Partner = partner
	t.Stage = StageNegotiating
	g.setMessage(fmt.Sprintf("%s opens negotiations with %s.", g.players[seat].Name, g.players[partner].Name))
}

// tradeToggleProperty adds or removes one property from the proposal.
// Only building-free holdings are tradeable.
func (g *Game) tradeToggleProperty(seat, pos int, offerSide bool) {
	t := g.trade
	if g.phase != PhaseTrade || t == nil || t.Stage != StageNegotiating || seat != t.Initiator {
		return
	}
	if pos < 0 || pos >= board.Size {
		return
	}
	prop := g.board.PropertyAt(pos)
	if prop == nil {
		return
	}

	side, requiredOwner := t.OfferProps, t.Initiator
	if !offerSide {
		side, requiredOwner = t.RequestProps, t.Partner
	}

	if side[pos] {
		delete(side, pos)
		return
	}
	if prop.OwnerSeat != requiredOwner {
		g.setMessage(fmt.Sprintf("%s does not belong to that side.", prop.Name))
		return
	}
	if prop.HasBuildings() {
		g.setMessage(fmt.Sprintf("%s has buildings and cannot be traded.", prop.Name))
		return
	}
	side[pos] = true
}

func (g *Game) tradeSetCash(seat, amount int, offerSide bool) {
	t := g.trade
	if g.phase != PhaseTrade || t == nil || t.Stage != StageNegotiating || seat != t.Initiator {
		return
	}
	if amount < 0 {
		amount = 0
	}
	if offerSide {
		if amount > g.players[t.Initiator].Cash {
			g.setMessage("You cannot offer more cash than you hold.")
			return
		}
		t.OfferCash = amount
	} else {
		if amount > g.players[t.Partner].Cash {
			g.setMessage("They cannot pay that much.")
			return
		}
		t.RequestCash = amount
	}
}

func (g *Game) tradePropose(seat int) {
	t := g.trade
	if g.phase != PhaseTrade || t == nil || t.Stage != StageNegotiating || seat != t.Initiator {
		return
	}
	if len(t.OfferProps) == 0 && len(t.RequestProps) == 0 && t.OfferCash == 0 && t.RequestCash == 0 {
		g.setMessage("The proposal is empty.")
		return
	}
	t.Stage = StageConfirming
	g.setMessage(fmt.Sprintf("%s, do you accept the trade?", g.players[t.Partner].Name))
}

// tradeAccept settles the proposal. Conditions are revalidated at
// acceptance time; any failure voids the trade with no partial effect.
func (g *Game) tradeAccept(seat int) {
	t := g.trade
	if g.phase != PhaseTrade || t == nil || t.Stage != StageConfirming || seat != t.Partner {
		return
	}
	initiator := g.players[t.Initiator]
	partner := g.players[t.Partner]

	if err := g.validateTrade(t); err != nil {
		g.trade = nil
		g.phase = PhaseAwaitingRoll
		g.setMessage(fmt.Sprintf("Trade fell through: %v.", err))
		return
	}

	for pos := range t.OfferProps {
		g.board.PropertyAt(pos).OwnerSeat = partner.Seat
	}
	for pos := range t.RequestProps {
		g.board.PropertyAt(pos).OwnerSeat = initiator.Seat
	}
	initiator.Pay(t.OfferCash)
	partner.Receive(t.OfferCash)
	partner.Pay(t.RequestCash)
	initiator.Receive(t.RequestCash)

	g.trade = nil
	g.phase = PhaseAwaitingRoll
	g.stats.TradesSettled++
	if g.observer != nil {
		g.observer.TradeSettled()
	}
	g.setMessage(fmt.Sprintf("Trade settled between %s and %s.", initiator.Name, partner.Name))
}

// validateTrade re-checks every condition of the proposal against the
// current board and balances.
func (g *Game) validateTrade(t *Trade) error {
	for pos := range t.OfferProps {
		prop := g.board.PropertyAt(pos)
		if prop.OwnerSeat != t.Initiator || prop.HasBuildings() {
			return fmt.Errorf("%s is no longer available", prop.Name)
		}
	}
	for pos := range t.RequestProps {
		prop := g.board.PropertyAt(pos)
		if prop.OwnerSeat != t.Partner || prop.HasBuildings() {
			return fmt.Errorf("%s is no longer available", prop.Name)
		}
	}
	if t.OfferCash > g.players[t.Initiator].Cash {
		return fmt.Errorf("%s cannot cover the offered cash", g.players[t.Initiator].Name)
	}
	if t.RequestCash > g.players[t.Partner].Cash {
		return fmt.Errorf("%s cannot cover the requested cash", g.players[t.Partner].Name)
	}
	return nil
}

func (g *Game) tradeDecline(seat int) {
	t := g.trade
	if g.phase != PhaseTrade || t == nil || t.Stage != StageConfirming || seat != t.Partner {
		return
	}
	g.trade = nil
	g.phase = PhaseAwaitingRoll
	g.setMessage(fmt.Sprintf("%s declined the trade.", g.players[seat].Name))
}

func (g *Game) tradeCancel(seat int) {
	t := g.trade
	if g.phase != PhaseTrade || t == nil || seat != t.Initiator {
		return
	}
	g.trade = nil
	g.phase = PhaseAwaitingRoll
	g.setMessage("Trade cancelled.")
}
