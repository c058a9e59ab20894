// Package state implements the room lifecycle as a state machine:
// waiting for players, the running game, and settlement. Each state is
// driven by the room's tick loop through OnUpdate and receives decoded
// player packets through HandleAction.
package state

import (
	"encoding/json"
	"errors"
	"sync"

	"github.com/wfunc/tycoon/logger"
	"github.com/wfunc/tycoon/network"
)

type StateMachine interface {
	ChangeState(state State) error
	GetCurrentState() State
	AddTransition(from State, to State, condition func() bool) error
}

type State interface {
	OnEnter()
	OnExit()
	OnUpdate()
	GetID() string
	HandleAction(player Player, actionData []byte) error
}

// ErrTransitionNotAllowed is returned when a registered transition
// condition rejects the change.
var ErrTransitionNotAllowed = errors.New("state transition not allowed")

type BaseStateMachine struct {
	currentState State
	transitions  map[string]map[string]func() bool // from -> to -> condition
	mutex        sync.RWMutex
}

func NewBaseStateMachine(initialState State) *BaseStateMachine {
	machine := &BaseStateMachine{
		currentState: initialState,
		transitions:  make(map[string]map[string]func() bool),
	}
	initialState.OnEnter()
	return machine
}

func (sm *BaseStateMachine) ChangeState(newState State) error {
	sm.mutex.Lock()
	defer sm.mutex.Unlock()

	currentID := sm.currentState.GetID()
	newID := newState.GetID()

	if conditions, exists := sm.transitions[currentID]; exists {
		if condition, exists := conditions[newID]; exists {
			if condition != nil && !condition() {
				return ErrTransitionNotAllowed
			}
		}
	}

	sm.currentState.OnExit()
	sm.currentState = newState
	sm.currentState.OnEnter()
	return nil
}

func (sm *BaseStateMachine) GetCurrentState() State {
	sm.mutex.RLock()
	defer sm.mutex.RUnlock()
	return sm.currentState
}

func (sm *BaseStateMachine) AddTransition(from State, to State, condition func() bool) error {
	sm.mutex.Lock()
	defer sm.mutex.Unlock()

	fromID := from.GetID()
	toID := to.GetID()
	if _, exists := sm.transitions[fromID]; !exists {
		sm.transitions[fromID] = make(map[string]func() bool)
	}
	sm.transitions[fromID][toID] = condition
	return nil
}

// RoomStateBase carries the shared fields and default no-op hooks.
type RoomStateBase struct {
	ID   string
	Room RoomContext
}

func (s *RoomStateBase) GetID() string { return s.ID }
func (s *RoomStateBase) OnEnter()      {}
func (s *RoomStateBase) OnExit()       {}
func (s *RoomStateBase) OnUpdate()     {}

func (s *RoomStateBase) HandleAction(player Player, actionData []byte) error {
	return nil
}

// WaitingState holds the room open until enough players arrive. The
// game starts when the room fills, when any player asks for an early
// start, or when the lobby countdown lapses with a legal player count.
type WaitingState struct {
	RoomStateBase
	timer int
}

const lobbySeconds = 10

func NewWaitingState(room RoomContext) *WaitingState {
	return &WaitingState{
		RoomStateBase: RoomStateBase{
			ID:   "waiting",
			Room: room,
		},
	}
}

func (s *WaitingState) OnEnter() {
	s.timer = lobbySeconds * s.Room.Rules().TicksPerSecond
	s.broadcastRoster()
}

func (s *WaitingState) OnUpdate() {
	if len(s.Room.GetPlayers()) >= s.Room.GetMaxPlayers() {
		s.startGame()
		return
	}

	s.timer--
	if s.timer <= 0 {
		if !s.startGame() {
			s.timer = lobbySeconds * s.Room.Rules().TicksPerSecond
		}
	}
}

// HandleAction accepts an early start request from any seated player.
func (s *WaitingState) HandleAction(player Player, actionData []byte) error {
	var action struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(actionData, &action); err != nil {
		return err
	}
	if action.Type == "start" {
		s.startGame()
	}
	return nil
}

func (s *WaitingState) startGame() bool {
	count := len(s.Room.GetPlayers())
	if err := s.Room.Rules().ValidatePlayerCount(count); err != nil {
		logger.Log.Infof("room %s cannot start: %v", s.Room.GetID(), err)
		return false
	}
	count = s.Room.AssignSeats()
	if err := s.Room.ChangeState(NewPlayingState(s.Room, count)); err != nil {
		logger.Log.Errorf("room %s failed to start: %v", s.Room.GetID(), err)
		return false
	}
	return true
}

func (s *WaitingState) broadcastRoster() {
	roster := map[string]interface{}{
		"state":       s.ID,
		"players":     len(s.Room.GetPlayers()),
		"max_players": s.Room.GetMaxPlayers(),
	}
	data, _ := json.Marshal(roster)
	s.Room.Broadcast(network.MsgTypeRoomState, data)
}
