package state

import (
	"testing"

	"github.com/wfunc/tycoon/config"
	"github.com/wfunc/tycoon/engine"
)

// MockState tracks which lifecycle hooks have been called.
type MockState struct {
	ID             string
	OnEnterCalled  bool
	OnExitCalled   bool
	OnUpdateCalled bool
}

func (m *MockState) OnEnter()      { m.OnEnterCalled = true }
func (m *MockState) OnExit()       { m.OnExitCalled = true }
func (m *MockState) OnUpdate()     { m.OnUpdateCalled = true }
func (m *MockState) GetID() string { return m.ID }

func (m *MockState) HandleAction(player Player, actionData []byte) error {
	return nil
}

func (m *MockState) reset() {
	m.OnEnterCalled = false
	m.OnExitCalled = false
	m.OnUpdateCalled = false
}

func TestStateMachine_InitialState(t *testing.T) {
	initialState := &MockState{ID: "initial"}
	sm := NewBaseStateMachine(initialState)

	if !initialState.OnEnterCalled {
		t.Error("Expected OnEnter to be called on the initial state")
	}
	if sm.GetCurrentState() != initialState {
		t.Error("GetCurrentState should return the initial state")
	}
}

func TestStateMachine_ChangeState(t *testing.T) {
	initialState := &MockState{ID: "initial"}
	nextState := &MockState{ID: "next"}

	sm := NewBaseStateMachine(initialState)
	initialState.reset()

	if err := sm.ChangeState(nextState); err != nil {
		t.Fatalf("ChangeState should not return an error, but got: %v", err)
	}
	if !initialState.OnExitCalled {
		t.Error("Expected OnExit to be called on the old state")
	}
	if !nextState.OnEnterCalled {
		t.Error("Expected OnEnter to be called on the new state")
	}
	if sm.GetCurrentState() != nextState {
		t.Error("GetCurrentState should return the new state")
	}
}

func TestStateMachine_AddAndUseTransition(t *testing.T) {
	stateA := &MockState{ID: "A"}
	stateB := &MockState{ID: "B"}
	stateC := &MockState{ID: "C"}

	sm := NewBaseStateMachine(stateA)

	if err := sm.AddTransition(stateA, stateB, func() bool { return true }); err != nil {
		t.Fatalf("AddTransition failed: %v", err)
	}
	if err := sm.AddTransition(stateB, stateC, func() bool { return false }); err != nil {
		t.Fatalf("AddTransition failed: %v", err)
	}

	stateA.reset()
	if err := sm.ChangeState(stateB); err != nil {
		t.Errorf("Expected transition from A to B to be allowed, but got error: %v", err)
	}
	if sm.GetCurrentState().GetID() != "B" {
		t.Errorf("Expected current state to be B, but got %s", sm.GetCurrentState().GetID())
	}

	stateB.reset()
	if err := sm.ChangeState(stateC); err != ErrTransitionNotAllowed {
		t.Errorf("Expected ErrTransitionNotAllowed, but got: %v", err)
	}
	if sm.GetCurrentState().GetID() != "B" {
		t.Errorf("Expected current state to remain B, but got %s", sm.GetCurrentState().GetID())
	}
	if stateB.OnExitCalled {
		t.Error("OnExit should not run when the transition is blocked")
	}
	if stateC.OnEnterCalled {
		t.Error("OnEnter should not run when the transition is blocked")
	}
}

// --- room lifecycle ---

type mockPlayer struct{ id string }

func (p *mockPlayer) GetID() string { return p.id }

// mockRoom is a minimal RoomContext driving a real state machine.
type mockRoom struct {
	sm        StateMachine
	players   map[string]Player
	seats     map[string]int
	max       int
	rules     config.GameConfig
	broadcast []uint16
	recorded  *engine.Snapshot
}

func newMockRoom(playerCount, max int) *mockRoom {
	r := &mockRoom{
		players: make(map[string]Player),
		seats:   make(map[string]int),
		max:     max,
		rules:   config.Defaults(),
	}
	for i := 0; i < playerCount; i++ {
		id := string(rune('a' + i))
		r.players[id] = &mockPlayer{id: id}
		r.seats[id] = i
	}
	return r
}

func (r *mockRoom) GetID() string                  { return "room-under-test" }
func (r *mockRoom) GetPlayers() map[string]Player  { return r.players }
func (r *mockRoom) GetMaxPlayers() int             { return r.max }
func (r *mockRoom) Rules() config.GameConfig       { return r.rules }
func (r *mockRoom) AssignSeats() int               { return len(r.players) }
func (r *mockRoom) SeatName(seat int) string       { return "" }
func (r *mockRoom) Observer() engine.Observer      { return nil }
func (r *mockRoom) RecordResult(s engine.Snapshot) { r.recorded = &s }

func (r *mockRoom) SeatOf(sessionID string) (int, bool) {
	seat, ok := r.seats[sessionID]
	return seat, ok
}

func (r *mockRoom) ChangeState(newState State) error {
	return r.sm.ChangeState(newState)
}

func (r *mockRoom) Broadcast(msgID uint16, data []byte) error {
	r.broadcast = append(r.broadcast, msgID)
	return nil
}

func startWaiting(r *mockRoom) *WaitingState {
	waiting := NewWaitingState(r)
	r.sm = NewBaseStateMachine(waiting)
	return waiting
}

func TestWaitingStartsWhenRoomFills(t *testing.T) {
	room := newMockRoom(2, 2)
	startWaiting(room)

	room.sm.GetCurrentState().OnUpdate()

	playing, ok := room.sm.GetCurrentState().(*PlayingState)
	if !ok {
		t.Fatalf("state = %T, want PlayingState", room.sm.GetCurrentState())
	}
	if playing.Game() == nil {
		t.Fatal("playing state should own a game")
	}
	if len(playing.Game().Players()) != 2 {
		t.Fatalf("game seats = %d, want 2", len(playing.Game().Players()))
	}
}

func TestWaitingHoldsShortRoom(t *testing.T) {
	room := newMockRoom(2, 4)
	waiting := startWaiting(room)

	waiting.OnUpdate()
	if room.sm.GetCurrentState().GetID() != "waiting" {
		t.Fatal("a short lobby must keep waiting before the countdown lapses")
	}
}

func TestWaitingCountdownStartsLegalLobby(t *testing.T) {
	room := newMockRoom(2, 4)
	startWaiting(room)

	ticks := lobbySeconds * room.rules.TicksPerSecond
	for i := 0; i < ticks; i++ {
		room.sm.GetCurrentState().OnUpdate()
	}
	if room.sm.GetCurrentState().GetID() != "playing" {
		t.Fatalf("state = %s, want playing after the lobby countdown", room.sm.GetCurrentState().GetID())
	}
}

func TestWaitingEarlyStartAction(t *testing.T) {
	room := newMockRoom(1, 4)
	waiting := startWaiting(room)

	if err := waiting.HandleAction(room.players["a"], []byte(`{"type":"start"}`)); err != nil {
		t.Fatalf("start action: %v", err)
	}
	if room.sm.GetCurrentState().GetID() != "playing" {
		t.Fatal("an explicit start should begin a single-player game")
	}
}

func TestPlayingRoutesActionsBySessionSeat(t *testing.T) {
	room := newMockRoom(2, 2)
	startWaiting(room)
	room.sm.GetCurrentState().OnUpdate()

	playing := room.sm.GetCurrentState().(*PlayingState)
	game := playing.Game()

	// Seat is taken from the session, so a spoofed seat is ignored.
	if err := playing.HandleAction(room.players["b"], []byte(`{"type":"change_dice","seat":0}`)); err != nil {
		t.Fatalf("action: %v", err)
	}
	if game.Phase() != engine.PhaseAwaitingRoll {
		t.Fatal("an out-of-turn action must not move the game")
	}

	if err := playing.HandleAction(room.players["a"], []byte(`{"type":"roll"}`)); err != nil {
		t.Fatalf("roll: %v", err)
	}
	if game.Stats().RollCount != 1 {
		t.Fatal("the seated player's roll should register")
	}
}

func TestPlayingRejectsUnseatedSession(t *testing.T) {
	room := newMockRoom(2, 2)
	startWaiting(room)
	room.sm.GetCurrentState().OnUpdate()

	playing := room.sm.GetCurrentState().(*PlayingState)
	if err := playing.HandleAction(&mockPlayer{id: "ghost"}, []byte(`{"type":"roll"}`)); err == nil {
		t.Fatal("an unseated session must be rejected")
	}
}

func TestSettlementReopensLobby(t *testing.T) {
	room := newMockRoom(2, 2)
	startWaiting(room)
	room.sm.GetCurrentState().OnUpdate()
	playing := room.sm.GetCurrentState().(*PlayingState)

	snap := playing.Game().Snapshot()
	if err := room.ChangeState(NewSettlementState(room, snap)); err != nil {
		t.Fatalf("settle: %v", err)
	}

	ticks := settlementSeconds * room.rules.TicksPerSecond
	for i := 0; i < ticks; i++ {
		room.sm.GetCurrentState().OnUpdate()
	}
	if room.sm.GetCurrentState().GetID() != "waiting" {
		t.Fatalf("state = %s, want waiting after settlement", room.sm.GetCurrentState().GetID())
	}
}
