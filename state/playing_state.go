package state

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"time"

	"github.com/wfunc/tycoon/engine"
	"github.com/wfunc/tycoon/logger"
	"github.com/wfunc/tycoon/network"
)

// PlayingState owns the running game. The room tick drives the engine;
// player packets become engine events with the seat rewritten from the
// session, so a client can never act for another seat.
type PlayingState struct {
	RoomStateBase
	playerCount int
	game        *engine.Game
	syncTimer   int
}

func NewPlayingState(room RoomContext, playerCount int) *PlayingState {
	return &PlayingState{
		RoomStateBase: RoomStateBase{
			ID:   "playing",
			Room: room,
		},
		playerCount: playerCount,
	}
}

// Game exposes the running game, for tests and the settlement state.
func (s *PlayingState) Game() *engine.Game { return s.game }

func (s *PlayingState) OnEnter() {
	rules := s.Room.Rules()
	game, err := engine.New(rules, s.playerCount, rand.New(rand.NewSource(time.Now().UnixNano())))
	if err != nil {
		// OnEnter runs inside the machine's transition; the recovery
		// transition happens on the next tick instead.
		logger.Log.Errorf("room %s could not seat %d players: %v", s.Room.GetID(), s.playerCount, err)
		return
	}
	for _, p := range game.Players() {
		if name := s.Room.SeatName(p.Seat); name != "" {
			p.Name = name
		}
	}
	game.SetObserver(s.Room.Observer())
	s.game = game

	logger.Log.Infof("room %s started with %d players", s.Room.GetID(), s.playerCount)
	s.broadcast(network.MsgTypeGameStart)
}

func (s *PlayingState) OnExit() {
	logger.Log.Infof("room %s game finished", s.Room.GetID())
}

func (s *PlayingState) OnUpdate() {
	if s.game == nil {
		s.Room.ChangeState(NewWaitingState(s.Room))
		return
	}
	s.game.Tick()

	if s.game.Phase() == engine.PhaseGameOver {
		snap := s.game.Snapshot()
		s.Room.RecordResult(snap)
		s.Room.ChangeState(NewSettlementState(s.Room, snap))
		return
	}

	// Clients get a fresh snapshot once a second between actions.
	s.syncTimer--
	if s.syncTimer <= 0 {
		s.syncTimer = s.Room.Rules().TicksPerSecond
		s.broadcast(network.MsgTypeGameSync)
	}
}

func (s *PlayingState) HandleAction(player Player, actionData []byte) error {
	if s.game == nil {
		return nil
	}
	seat, ok := s.Room.SeatOf(player.GetID())
	if !ok {
		return fmt.Errorf("session %s has no seat in room %s", player.GetID(), s.Room.GetID())
	}

	var event engine.Event
	if err := json.Unmarshal(actionData, &event); err != nil {
		return fmt.Errorf("malformed action: %w", err)
	}
	event.Seat = seat

	if err := s.game.HandleEvent(event); err != nil {
		return err
	}
	s.broadcast(network.MsgTypeGameSync)
	return nil
}

func (s *PlayingState) broadcast(msgID uint16) {
	data, err := json.Marshal(s.game.Snapshot())
	if err != nil {
		logger.Log.Errorf("room %s snapshot marshal failed: %v", s.Room.GetID(), err)
		return
	}
	s.Room.Broadcast(msgID, data)
}

// SettlementState shows the final standings for a few seconds, then
// reopens the room for a fresh lobby.
type SettlementState struct {
	RoomStateBase
	final engine.Snapshot
	timer int
}

const settlementSeconds = 5

func NewSettlementState(room RoomContext, final engine.Snapshot) *SettlementState {
	return &SettlementState{
		RoomStateBase: RoomStateBase{
			ID:   "settlement",
			Room: room,
		},
		final: final,
	}
}

func (s *SettlementState) OnEnter() {
	s.timer = settlementSeconds * s.Room.Rules().TicksPerSecond

	data, err := json.Marshal(s.final)
	if err != nil {
		logger.Log.Errorf("room %s settlement marshal failed: %v", s.Room.GetID(), err)
		return
	}
	s.Room.Broadcast(network.MsgTypeGameEnd, data)
}

func (s *SettlementState) OnUpdate() {
	s.timer--
	if s.timer <= 0 {
		s.Room.ChangeState(NewWaitingState(s.Room))
	}
}
