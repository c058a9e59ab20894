// Package engine implements the game-state machine and economic engine:
// the turn sequencer, landing resolution, card effects, the auction and
// trade protocols and bankruptcy handling. A Game is owned by exactly
// one goroutine; the room loop calls Tick once per frame and routes
// decoded client events into HandleEvent.
package engine

import (
	"fmt"
	"math/rand"

	"github.com/wfunc/tycoon/board"
	"github.com/wfunc/tycoon/cards"
	"github.com/wfunc/tycoon/config"
	"github.com/wfunc/tycoon/dice"
	"github.com/wfunc/tycoon/economy"
	"github.com/wfunc/tycoon/timer"
)

// Phase is the turn sequencer state.
type Phase int

const (
	PhaseAwaitingRoll Phase = iota
	PhaseAwaitingPurchase
	PhaseAuction
	PhaseCardPending
	PhaseTrade
	PhaseTurnResolved
	PhaseGameOver
)

func (p Phase) String() string {
	switch p {
	case PhaseAwaitingRoll:
		return "awaiting_roll"
	case PhaseAwaitingPurchase:
		return "awaiting_purchase"
	case PhaseAuction:
		return "auction"
	case PhaseCardPending:
		return "card_pending"
	case PhaseTrade:
		return "trade"
	case PhaseTurnResolved:
		return "turn_resolved"
	case PhaseGameOver:
		return "game_over"
	}
	return "unknown"
}

// PendingCard is the sub-state while a card awaits a follow-up choice.
type PendingCard int

const (
	PendingNone PendingCard = iota
	PendingDestination
	PendingEvaporate
)

// Observer receives engine milestones. All methods are called from the
// engine goroutine; implementations must not block.
type Observer interface {
	RollObserved(total int, isDouble bool)
	AuctionClosed(sold bool)
	TradeSettled()
	PlayerBankrupted(seat int)
	GameEnded(winnerSeat int)
}

// Game is the complete state of one match.
type Game struct {
	cfg   config.GameConfig
	rng   *rand.Rand
	board *board.Board
	econ  *economy.Economy
	dice  dice.Pair
	chest *cards.ChestDeck

	players []*Player
	current int

	phase        Phase
	rolled       bool
	rollTotal    int
	rollDouble   bool
	justPassedGo bool

	pendingPurchase *board.Property
	pendingCard     PendingCard
	auction         *Auction
	trade           *Trade

	message  string
	msgTimer timer.Countdown

	winner   *Player
	stats    Stats
	observer Observer
}

// New seats numPlayers players and deals out a fresh board.
func New(cfg config.GameConfig, numPlayers int, rng *rand.Rand) (*Game, error) {
	if err := cfg.ValidatePlayerCount(numPlayers); err != nil {
		return nil, err
	}
	g := &Game{
		cfg:   cfg,
		rng:   rng,
		board: board.New(),
		econ:  economy.New(rng),
		chest: cards.NewChestDeck(),
		stats: newStats(),
	}
	for i := 0; i < numPlayers; i++ {
		g.players = append(g.players, &Player{
			Seat:  i,
			Name:  fmt.Sprintf("Player %d", i+1),
			Token: playerTokens[i%len(playerTokens)],
			Cash:  cfg.StartingCash,
		})
	}
	return g, nil
}

func (g *Game) Board() *board.Board      { return g.board }
func (g *Game) Economy() *economy.Economy { return g.econ }
func (g *Game) Phase() Phase             { return g.phase }
func (g *Game) CurrentSeat() int         { return g.current }
func (g *Game) Players() []*Player       { return g.players }
func (g *Game) Winner() *Player          { return g.winner }

// SetObserver wires metric/telemetry callbacks. Pass nil to detach.
func (g *Game) SetObserver(o Observer) { g.observer = o }

// SetDiceKind selects the initial distribution (matches are free to
// switch mid-game through EventChangeDice).
func (g *Game) SetDiceKind(k dice.Kind) { g.dice.Kind = k }

func (g *Game) currentPlayer() *Player {
	return g.players[g.current]
}

func (g *Game) setMessage(text string) {
	g.message = text
	g.msgTimer.Start(g.cfg.MessageSeconds * g.cfg.TicksPerSecond)
}

// Tick advances the frame countdowns: message decay, the auction bid
// budget, and the turn handover once the resolved turn's message fades.
func (g *Game) Tick() {
	if g.phase == PhaseGameOver {
		return
	}
	g.enforceSolvency()

	if g.msgTimer.Advance() {
		g.message = ""
	}

	switch g.phase {
	case PhaseAuction:
		g.auctionTick()
	case PhaseTurnResolved:
		if !g.msgTimer.Active() {
			g.nextTurn()
		}
	}
}

// HandleEvent routes one external input. Unknown types are errors;
// rule violations are absorbed into status messages.
func (g *Game) HandleEvent(e Event) error {
	if g.phase == PhaseGameOver {
		return nil
	}
	if e.Seat < 0 || e.Seat >= len(g.players) || g.players[e.Seat].Eliminated {
		return fmt.Errorf("invalid seat %d", e.Seat)
	}

	switch e.Type {
	case EventRoll:
		g.handleRollRequest(e.Seat)
	case EventChangeDice:
		if g.requireTurn(e.Seat, PhaseAwaitingRoll) {
			g.dice.Kind = g.dice.Kind.Next()
			g.setMessage(fmt.Sprintf("Dice changed to: %s", g.dice.Kind))
		}
	case EventBuy:
		g.handleBuy(e.Seat)
	case EventSkip:
		if g.requireTurn(e.Seat, PhaseAwaitingPurchase) {
			g.pendingPurchase = nil
			g.setMessage("Skipped property purchase.")
			g.finishTurn()
		}
	case EventStartAuction:
		if g.requireTurn(e.Seat, PhaseAwaitingPurchase) {
			prop := g.pendingPurchase
			g.pendingPurchase = nil
			g.setMessage(fmt.Sprintf("Starting auction for %s.", prop.Name))
			g.startAuction(prop)
		}
	case EventRaiseBid:
		g.auctionRaise(e.Seat, e.Amount)
	case EventLeaveAuction:
		g.auctionLeave(e.Seat)

	case EventOpenTrade:
		g.openTrade(e.Seat)
	case EventSelectPartner:
		g.tradeSelectPartner(e.Seat, e.N)
	case EventToggleOffer:
		g.tradeToggleProperty(e.Seat, e.Pos, true)
	case EventToggleRequest:
		g.tradeToggleProperty(e.Seat, e.Pos, false)
	case EventSetOfferCash:
		g.tradeSetCash(e.Seat, e.Amount, true)
	case EventSetRequestCash:
		g.tradeSetCash(e.Seat, e.Amount, false)
	case EventProposeTrade:
		g.tradePropose(e.Seat)
	case EventAcceptTrade:
		g.tradeAccept(e.Seat)
	case EventDeclineTrade:
		g.tradeDecline(e.Seat)
	case EventCancelTrade:
		g.tradeCancel(e.Seat)

	case EventBuildHouse:
		g.handleBuildHouse(e.Seat, e.Pos)
	case EventBuildHotel:
		g.handleBuildHotel(e.Seat, e.Pos)
	case EventSellBuilding:
		g.handleSellBuilding(e.Seat, e.Pos)
	case EventSellProperty:
		g.handleSellProperty(e.Seat, e.Pos)
	case EventMortgage:
		g.handleMortgageToggle(e.Seat, e.Pos)

	case EventChooseDestination:
		g.handleChooseDestination(e.Seat, e.N)
	case EventEvaporate:
		g.handleEvaporate(e.Seat, e.Pos)

	case EventDeclareBankruptcy:
		if g.requireTurn(e.Seat, PhaseAwaitingRoll) {
			p := g.currentPlayer()
			g.setMessage(fmt.Sprintf("%s declared bankruptcy.", p.Name))
			g.bankrupt(p)
			if g.phase != PhaseGameOver {
				g.finishTurn()
			}
		}

	default:
		return &ErrUnknownEvent{Type: e.Type}
	}
	return nil
}

// requireTurn admits only the current player in the given phase;
// anything else becomes a status message.
func (g *Game) requireTurn(seat int, phase Phase) bool {
	if g.phase != phase {
		return false
	}
	if seat != g.current {
		g.setMessage("Not your turn.")
		return false
	}
	return true
}

// finishTurn parks the sequencer until the status message decays, then
// Tick hands over to the next player.
func (g *Game) finishTurn() {
	g.pendingCard = PendingNone
	g.phase = PhaseTurnResolved
}

// nextTurn runs the per-turn market pass and picks the next player,
// honoring one-shot modifiers and the doubles repeat rule.
func (g *Game) nextTurn() {
	g.econ.ApplyTurn(g.board.Properties())

	p := g.currentPlayer()
	if p.InJail {
		p.JailTurns++
	}

	switch {
	case p.ExtraTurn && !p.Eliminated:
		p.ExtraTurn = false
		g.setMessage(fmt.Sprintf("%s takes an extra turn!", p.Name))
	case p.LoseTurn:
		p.LoseTurn = false
		g.advancePlayer()
		skipped := g.currentPlayer()
		g.advancePlayer()
		g.setMessage(fmt.Sprintf("%s loses a turn.", skipped.Name))
	case g.rollDouble && !p.Eliminated:
		g.setMessage(fmt.Sprintf("Doubles! %s rolls again.", p.Name))
	default:
		g.advancePlayer()
	}

	g.rolled = false
	g.rollTotal = 0
	g.rollDouble = false
	g.justPassedGo = false
	g.pendingPurchase = nil
	g.phase = PhaseAwaitingRoll
}

// advancePlayer moves to the next non-eliminated seat.
func (g *Game) advancePlayer() {
	for i := 0; i < len(g.players); i++ {
		g.current = (g.current + 1) % len(g.players)
		if !g.players[g.current].Eliminated {
			return
		}
	}
}

// enforceSolvency eliminates the acting player once their balance goes
// negative with no way to recover it.
func (g *Game) enforceSolvency() {
	p := g.currentPlayer()
	if !p.Eliminated && p.Cash < 0 {
		p.Cash = 0
		g.setMessage(fmt.Sprintf("%s went bankrupt!", p.Name))
		g.bankrupt(p)
		if g.phase != PhaseGameOver {
			g.finishTurn()
		}
	}
}

// bankrupt removes a player: their properties revert to the bank with
// buildings credited back to the pools, and the win condition is
// checked.
func (g *Game) bankrupt(p *Player) {
	p.Eliminated = true
	for _, prop := range g.board.Properties() {
		if prop.OwnerSeat == p.Seat {
			g.econ.ReclaimBuildings(prop)
			prop.Mortgaged = false
			prop.OwnerSeat = board.NoOwner
		}
	}
	if g.observer != nil {
		g.observer.PlayerBankrupted(p.Seat)
	}

	// An open auction or trade involving the departed player cannot
	// settle against them.
	if g.auction != nil {
		g.auctionRemoveSeat(p.Seat)
	}
	if g.trade != nil && (g.trade.Initiator == p.Seat || g.trade.Partner == p.Seat) {
		g.trade = nil
		if g.phase == PhaseTrade {
			g.phase = PhaseAwaitingRoll
		}
	}

	active := g.activePlayers()
	if len(active) == 1 {
		g.winner = active[0]
		g.phase = PhaseGameOver
		g.setMessage(fmt.Sprintf("%s wins!", g.winner.Name))
		if g.observer != nil {
			g.observer.GameEnded(g.winner.Seat)
		}
	}
}
