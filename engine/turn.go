package engine

import (
	"fmt"

	"github.com/wfunc/tycoon/board"
	"github.com/wfunc/tycoon/cards"
	"github.com/wfunc/tycoon/economy"
	"github.com/wfunc/tycoon/logger"
)

// handleRollRequest is the roll-phase entry point. A jailed player's
// roll request pays the release fee instead of rolling.
func (g *Game) handleRollRequest(seat int) {
	if !g.requireTurn(seat, PhaseAwaitingRoll) {
		return
	}
	p := g.currentPlayer()

	if p.InJail {
		if !p.Pay(g.cfg.JailFee) {
			g.setMessage(fmt.Sprintf("%s cannot afford the $%d release fee.", p.Name, g.cfg.JailFee))
			return
		}
		p.InJail = false
		p.JailTurns = 0
		g.setMessage(fmt.Sprintf("%s paid $%d and left jail.", p.Name, g.cfg.JailFee))
		return
	}
	if g.rolled {
		return
	}

	total, isDouble := g.dice.Roll(g.rng)
	if p.CapNextRoll {
		p.CapNextRoll = false
		if total > 1 {
			total = 1
		}
		isDouble = false
		g.setMessage(fmt.Sprintf("%s's roll was clamped to %d!", p.Name, total))
	}
	g.resolveRoll(total, isDouble)
}

// resolveRoll applies one roll outcome: doubles bookkeeping, movement
// with the GO wrap bonus, then landing resolution. Split out from
// handleRollRequest so deterministic outcomes are testable.
func (g *Game) resolveRoll(total int, isDouble bool) {
	p := g.currentPlayer()
	g.rolled = true
	g.rollTotal = total
	g.rollDouble = isDouble
	g.stats.recordRoll(total, isDouble)
	if g.observer != nil {
		g.observer.RollObserved(total, isDouble)
	}

	if isDouble {
		p.ConsecutiveDoubles++
		if p.ConsecutiveDoubles >= 3 {
			g.setMessage(fmt.Sprintf("%s rolled three doubles and was sent to jail!", p.Name))
			g.sendToJail(p)
			g.finishTurn()
			return
		}
	} else {
		p.ConsecutiveDoubles = 0
	}

	g.moveBy(p, total)
	g.handleLanding(p)
	if g.phase == PhaseAwaitingRoll {
		g.finishTurn()
	}
}

// moveBy advances the token total spaces around the cyclic board,
// crediting the GO bonus on wrap.
func (g *Game) moveBy(p *Player, total int) {
	newPos := (p.Position + total) % board.Size
	if newPos < p.Position || total >= board.Size {
		p.Receive(g.cfg.PassGoBonus)
		g.justPassedGo = true
		g.setMessage(fmt.Sprintf("%s passed GO and collected $%d!", p.Name, g.cfg.PassGoBonus))
	}
	p.Position = newPos
	g.stats.recordVisit(newPos)
}

func (g *Game) sendToJail(p *Player) {
	p.Position = board.JailPosition
	p.InJail = true
	p.JailTurns = 0
	p.ConsecutiveDoubles = 0
	g.rollDouble = false
	g.stats.recordVisit(board.JailPosition)
}

// handleLanding resolves the space the current player stopped on.
func (g *Game) handleLanding(p *Player) {
	sp := g.board.Space(p.Position)

	switch sp.Kind {
	case board.KindGo:
		if !g.justPassedGo {
			p.Receive(g.cfg.LandGoBonus)
			g.setMessage(fmt.Sprintf("%s landed on GO and collected $%d!", p.Name, g.cfg.LandGoBonus))
		}

	case board.KindProperty, board.KindTrainStation, board.KindUtility:
		g.landOnOwnable(p, sp.Prop)

	case board.KindChest:
		card := g.chest.Draw()
		g.setMessage(fmt.Sprintf("Item Chest: %s — %s", card.Name, card.Description))
		g.applyCard(p, card)

	case board.KindChance:
		card := cards.DrawChance(g.rng)
		g.setMessage(fmt.Sprintf("Chance: %s — %s", card.Name, card.Description))
		g.applyCard(p, card)

	case board.KindGoToJail:
		g.setMessage(fmt.Sprintf("%s was sent to jail!", p.Name))
		g.sendToJail(p)

	case board.KindTax:
		paid := p.PayUpTo(sp.Tax)
		g.setMessage(fmt.Sprintf("%s paid $%d in %s.", p.Name, paid, sp.Name))

	case board.KindJail:
		g.setMessage(fmt.Sprintf("%s is just visiting jail.", p.Name))

	case board.KindFreeParking:
		g.setMessage(fmt.Sprintf("%s rests at Free Parking.", p.Name))
	}
}

// landOnOwnable handles purchase decisions and rent collection.
func (g *Game) landOnOwnable(p *Player, prop *board.Property) {
	switch {
	case !prop.Owned():
		if p.Cash >= prop.Price {
			g.pendingPurchase = prop
			g.phase = PhaseAwaitingPurchase
			g.setMessage(fmt.Sprintf("%s is for sale at $%d.", prop.Name, prop.Price))
			return
		}
		g.setMessage(fmt.Sprintf("%s cannot afford %s; it goes to auction.", p.Name, prop.Name))
		g.startAuction(prop)

	case prop.OwnerSeat == p.Seat:
		g.setMessage(fmt.Sprintf("%s visits their own %s.", p.Name, prop.Name))

	default:
		owner := g.players[prop.OwnerSeat]
		rent := g.board.Rent(prop, g.rollTotal)
		if rent == 0 {
			g.setMessage(fmt.Sprintf("%s is mortgaged; no rent due.", prop.Name))
			return
		}
		paid := p.PayUpTo(rent)
		owner.Receive(paid)
		if paid < rent {
			g.setMessage(fmt.Sprintf("%s cannot cover $%d rent and went bankrupt!", p.Name, rent))
			logger.Log.Infof("seat %d bankrupted by rent on %s (owed %d, paid %d)", p.Seat, prop.Name, rent, paid)
			g.bankrupt(p)
			return
		}
		g.setMessage(fmt.Sprintf("%s paid $%d rent to %s.", p.Name, rent, owner.Name))
	}
}

// applyCard resolves a drawn card. Cards with a follow-up choice park
// the sequencer in PhaseCardPending.
func (g *Game) applyCard(p *Player, card cards.Card) {
	switch card.Effect {
	case cards.EffectCapNextRoll:
		p.CapNextRoll = true

	case cards.EffectRemoveHouse:
		// The chest deck's eraser is informational only; the chance
		// Evaporator is the live variant.

	case cards.EffectCoinFlip:
		if g.rng.Intn(2) == 0 {
			p.ExtraTurn = true
			g.setMessage(fmt.Sprintf("Heads! %s earns an extra turn.", p.Name))
		} else {
			p.LoseTurn = true
			g.setMessage(fmt.Sprintf("Tails! %s loses a turn.", p.Name))
		}

	case cards.EffectWindfall:
		bonus := p.Cash / 10
		p.Receive(bonus)
		g.setMessage(fmt.Sprintf("%s gained a $%d windfall!", p.Name, bonus))

	case cards.EffectMarket:
		kind := economy.Drop
		if card.Inflation {
			kind = economy.Inflation
		}
		economy.ApplyEffectNow(kind, card.Percent, g.board.Properties())
		g.econ.AddEffect(kind, card.Percent, card.Turns)

	case cards.EffectBankTransfer:
		if card.Amount >= 0 {
			p.Receive(card.Amount)
		} else {
			p.PayUpTo(-card.Amount)
		}

	case cards.EffectCollectFromEach:
		collected := 0
		for _, other := range g.activePlayers() {
			if other.Seat == p.Seat {
				continue
			}
			collected += other.PayUpTo(card.Amount)
		}
		p.Receive(collected)
		g.setMessage(fmt.Sprintf("%s collected $%d from the table.", p.Name, collected))

	case cards.EffectPayToEach:
		for _, other := range g.activePlayers() {
			if other.Seat == p.Seat {
				continue
			}
			other.Receive(p.PayUpTo(card.Amount))
		}

	case cards.EffectPickDestination:
		g.pendingCard = PendingDestination
		g.phase = PhaseCardPending

	case cards.EffectEvaporate:
		if !g.anyBuildingsOnBoard() {
			g.setMessage("No buildings on the board to evaporate.")
			return
		}
		g.pendingCard = PendingEvaporate
		g.phase = PhaseCardPending
	}
}

func (g *Game) anyBuildingsOnBoard() bool {
	for _, prop := range g.board.Properties() {
		if prop.HasBuildings() {
			return true
		}
	}
	return false
}

// handleChooseDestination completes a PickDestination card: the player
// jumps straight to space n (1-12). The jump never credits the GO
// bonus; the landing itself resolves normally.
func (g *Game) handleChooseDestination(seat, n int) {
	if g.pendingCard != PendingDestination || !g.requireTurn(seat, PhaseCardPending) {
		return
	}
	if n < 1 || n > 12 {
		g.setMessage("Pick a number between 1 and 12.")
		return
	}
	g.pendingCard = PendingNone
	g.phase = PhaseAwaitingRoll

	p := g.currentPlayer()
	p.Position = n
	g.stats.recordVisit(n)
	g.handleLanding(p)
	if g.phase == PhaseAwaitingRoll {
		g.finishTurn()
	}
}

// handleEvaporate completes an Evaporator card: one building on the
// chosen property is destroyed with no refund to its owner.
func (g *Game) handleEvaporate(seat, pos int) {
	if g.pendingCard != PendingEvaporate || !g.requireTurn(seat, PhaseCardPending) {
		return
	}
	if pos < 0 || pos >= board.Size {
		return
	}
	prop := g.board.PropertyAt(pos)
	if prop == nil || !prop.HasBuildings() {
		g.setMessage("No building there to evaporate.")
		return
	}
	g.econ.RemoveBuilding(prop)
	g.setMessage(fmt.Sprintf("A building on %s evaporated!", prop.Name))
	g.finishTurn()
}

// handleBuy settles the face-price purchase decision.
func (g *Game) handleBuy(seat int) {
	if !g.requireTurn(seat, PhaseAwaitingPurchase) {
		return
	}
	p := g.currentPlayer()
	prop := g.pendingPurchase
	if !p.Pay(prop.Price) {
		g.setMessage(fmt.Sprintf("%s cannot afford %s.", p.Name, prop.Name))
		return
	}
	prop.OwnerSeat = p.Seat
	g.pendingPurchase = nil
	g.setMessage(fmt.Sprintf("%s bought %s for $%d.", p.Name, prop.Name, prop.Price))
	g.finishTurn()
}

// ownedBuildable validates the common preconditions of the management
// actions: the acting player's turn, pre-roll, and a property they own.
func (g *Game) ownedBuildable(seat, pos int) *board.Property {
	if !g.requireTurn(seat, PhaseAwaitingRoll) {
		return nil
	}
	if pos < 0 || pos >= board.Size {
		return nil
	}
	prop := g.board.PropertyAt(pos)
	if prop == nil || prop.OwnerSeat != seat {
		g.setMessage("You do not own that property.")
		return nil
	}
	return prop
}

func (g *Game) handleBuildHouse(seat, pos int) {
	prop := g.ownedBuildable(seat, pos)
	if prop == nil {
		return
	}
	p := g.currentPlayer()

	cost, ok := prop.HouseCost()
	if !ok {
		g.setMessage(fmt.Sprintf("No more houses can go on %s.", prop.Name))
		return
	}
	switch {
	case !g.board.OwnsFullGroup(seat, prop):
		g.setMessage("You need the full color group to build.")
	case g.board.GroupHasMortgage(prop):
		g.setMessage("A mortgaged property in the group blocks building.")
	case prop.BuildLevel() > g.board.MinGroupBuildLevel(prop):
		g.setMessage("Build evenly across the group.")
	case p.Cash < cost:
		g.setMessage(fmt.Sprintf("A house on %s costs $%d.", prop.Name, cost))
	default:
		if err := g.econ.BuildHouse(prop); err != nil {
			g.setMessage(err.Error())
			return
		}
		p.Pay(cost)
		g.setMessage(fmt.Sprintf("%s built a house on %s for $%d.", p.Name, prop.Name, cost))
	}
}

func (g *Game) handleBuildHotel(seat, pos int) {
	prop := g.ownedBuildable(seat, pos)
	if prop == nil {
		return
	}
	p := g.currentPlayer()

	cost, ok := prop.HotelCost()
	if !ok {
		g.setMessage("A hotel needs four houses first.")
		return
	}
	switch {
	case !g.board.OwnsFullGroup(seat, prop):
		g.setMessage("You need the full color group to build.")
	case g.board.GroupHasMortgage(prop):
		g.setMessage("A mortgaged property in the group blocks building.")
	case p.Cash < cost:
		g.setMessage(fmt.Sprintf("The hotel on %s costs $%d.", prop.Name, cost))
	default:
		if err := g.econ.BuildHotel(prop); err != nil {
			g.setMessage(err.Error())
			return
		}
		p.Pay(cost)
		g.setMessage(fmt.Sprintf("%s upgraded %s to a hotel for $%d.", p.Name, prop.Name, cost))
	}
}

func (g *Game) handleSellBuilding(seat, pos int) {
	prop := g.ownedBuildable(seat, pos)
	if prop == nil {
		return
	}
	refund, err := g.econ.SellUnit(prop)
	if err != nil {
		g.setMessage(err.Error())
		return
	}
	p := g.currentPlayer()
	p.Receive(refund)
	g.setMessage(fmt.Sprintf("%s sold a building on %s for $%d.", p.Name, prop.Name, refund))
}

// handleSellProperty returns an unbuilt, unmortgaged property to the
// bank for half its face price.
func (g *Game) handleSellProperty(seat, pos int) {
	prop := g.ownedBuildable(seat, pos)
	if prop == nil {
		return
	}
	if prop.HasBuildings() {
		g.setMessage("Sell the buildings first.")
		return
	}
	if prop.Mortgaged {
		g.setMessage("Redeem the mortgage first.")
		return
	}
	p := g.currentPlayer()
	payout := prop.Price / 2
	prop.OwnerSeat = board.NoOwner
	prop.StockValue = prop.Price
	p.Receive(payout)
	g.setMessage(fmt.Sprintf("%s sold %s back to the bank for $%d.", p.Name, prop.Name, payout))
}

// handleMortgageToggle mortgages an unencumbered property or redeems an
// existing mortgage.
func (g *Game) handleMortgageToggle(seat, pos int) {
	prop := g.ownedBuildable(seat, pos)
	if prop == nil {
		return
	}
	p := g.currentPlayer()

	if prop.Mortgaged {
		cost := prop.UnmortgageCost()
		if !p.Pay(cost) {
			g.setMessage(fmt.Sprintf("Redeeming %s costs $%d.", prop.Name, cost))
			return
		}
		prop.Mortgaged = false
		g.setMessage(fmt.Sprintf("%s redeemed %s for $%d.", p.Name, prop.Name, cost))
		return
	}

	if prop.HasBuildings() {
		g.setMessage("Sell the buildings before mortgaging.")
		return
	}
	prop.Mortgaged = true
	p.Receive(prop.MortgageValue())
	g.setMessage(fmt.Sprintf("%s mortgaged %s for $%d.", p.Name, prop.Name, prop.MortgageValue()))
}
