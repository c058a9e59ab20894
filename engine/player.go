package engine

// Player is one seated participant. Seats are stable for the whole game;
// elimination sets the Eliminated flag instead of reslicing.
type Player struct {
	Seat     int
	Name     string
	Token    string
	Position int
	Cash     int

	InJail             bool
	JailTurns          int
	ConsecutiveDoubles int
	Eliminated         bool

	// One-shot modifiers, each consumed exactly once by the sequencer.
	CapNextRoll bool
	ExtraTurn   bool
	LoseTurn    bool
}

var playerTokens = []string{"▲", "●", "■", "♦"}

// Receive credits amount to the player.
func (p *Player) Receive(amount int) {
	p.Cash += amount
}

// Pay debits amount when affordable and reports whether it happened.
func (p *Player) Pay(amount int) bool {
	if p.Cash < amount {
		return false
	}
	p.Cash -= amount
	return true
}

// PayUpTo debits as much of amount as the player can cover and returns
// the sum actually paid. Used for transfers with partial-payment
// semantics (taxes, card payments).
func (p *Player) PayUpTo(amount int) int {
	paid := amount
	if paid > p.Cash {
		paid = p.Cash
	}
	if paid < 0 {
		paid = 0
	}
	p.Cash -= paid
	return paid
}

// OwnedPositions lists the board positions of properties held by seat.
func (g *Game) OwnedPositions(seat int) []int {
	var positions []int
	for _, prop := range g.board.Properties() {
		if prop.OwnerSeat == seat {
			positions = append(positions, prop.Position)
		}
	}
	return positions
}

// activePlayers lists the players still in the game, seat order.
func (g *Game) activePlayers() []*Player {
	var active []*Player
	for _, p := range g.players {
		if !p.Eliminated {
			active = append(active, p)
		}
	}
	return active
}
