// Package room hosts one game table per room: the seated sessions, the
// lifecycle state machine and the 100ms tick loop that drives it.
package room

import (
	"sync"
	"time"

	"github.com/wfunc/tycoon/config"
	"github.com/wfunc/tycoon/engine"
	"github.com/wfunc/tycoon/logger"
	"github.com/wfunc/tycoon/session"
	"github.com/wfunc/tycoon/state"
)

// RoomStatus is the coarse business status mirrored off the state
// machine for lobby listings.
type RoomStatus int

const (
	StatusIdle RoomStatus = iota
	StatusWaiting
	StatusPlaying
	StatusSettlement
)

// Room is one game table.
type Room struct {
	ID         string
	Name       string
	MaxPlayers int
	Status     RoomStatus
	CreatedAt  time.Time

	Players      map[string]*session.Session // sessionID -> session
	joinOrder    []string
	seats        map[string]int // assigned when the game starts
	StateMachine state.StateMachine

	rules       config.GameConfig
	broadcaster Broadcaster
	recorder    Recorder
	observer    engine.Observer

	statusMutex sync.RWMutex
	playerMutex sync.RWMutex
	ticker      *time.Ticker
	closeChan   chan bool
	closeOnce   sync.Once
}

// NewRoom creates a room and starts its tick loop.
func NewRoom(id, name string, maxPlayers int, rules config.GameConfig, broadcaster Broadcaster, recorder Recorder, observer engine.Observer) *Room {
	room := &Room{
		ID:          id,
		Name:        name,
		MaxPlayers:  maxPlayers,
		Status:      StatusIdle,
		CreatedAt:   time.Now(),
		Players:     make(map[string]*session.Session),
		seats:       make(map[string]int),
		rules:       rules,
		broadcaster: broadcaster,
		recorder:    recorder,
		observer:    observer,
		closeChan:   make(chan bool),
	}

	room.StateMachine = state.NewBaseStateMachine(state.NewWaitingState(room))
	room.SetStatus(StatusWaiting)

	room.ticker = time.NewTicker(time.Second / time.Duration(rules.TicksPerSecond))
	go room.loop()

	return room
}

// --- state.RoomContext ---

func (r *Room) GetID() string            { return r.ID }
func (r *Room) GetMaxPlayers() int       { return r.MaxPlayers }
func (r *Room) Rules() config.GameConfig { return r.rules }

func (r *Room) GetPlayers() map[string]state.Player {
	r.playerMutex.RLock()
	defer r.playerMutex.RUnlock()

	players := make(map[string]state.Player)
	for k, v := range r.Players {
		players[k] = v
	}
	return players
}

// AssignSeats freezes the roster into seats in join order.
func (r *Room) AssignSeats() int {
	r.playerMutex.Lock()
	defer r.playerMutex.Unlock()

	r.seats = make(map[string]int)
	seat := 0
	for _, id := range r.joinOrder {
		s, exists := r.Players[id]
		if !exists {
			continue
		}
		r.seats[id] = seat
		s.SetSeat(seat)
		seat++
	}
	return seat
}

func (r *Room) SeatOf(sessionID string) (int, bool) {
	r.playerMutex.RLock()
	defer r.playerMutex.RUnlock()
	seat, ok := r.seats[sessionID]
	return seat, ok
}

func (r *Room) SeatName(seat int) string {
	r.playerMutex.RLock()
	defer r.playerMutex.RUnlock()
	for id, s := range r.seats {
		if s == seat {
			return r.Players[id].Name
		}
	}
	return ""
}

func (r *Room) Observer() engine.Observer { return r.observer }

// RecordResult hands the final snapshot to the recorder, off the tick
// loop so a slow database never stalls the room.
func (r *Room) RecordResult(snap engine.Snapshot) {
	if r.recorder == nil {
		return
	}
	names := make([]string, len(snap.Players))
	for i, p := range snap.Players {
		names[i] = p.Name
	}
	go func() {
		if err := r.recorder.RecordGame(r.ID, snap, names); err != nil {
			logger.Log.Errorf("room %s: record game: %v", r.ID, err)
		}
	}()
}

func (r *Room) ChangeState(newState state.State) error {
	if err := r.StateMachine.ChangeState(newState); err != nil {
		return err
	}
	switch newState.GetID() {
	case "waiting":
		r.SetStatus(StatusWaiting)
	case "playing":
		r.SetStatus(StatusPlaying)
	case "settlement":
		r.SetStatus(StatusSettlement)
	}
	return nil
}

func (r *Room) Broadcast(msgID uint16, data []byte) error {
	return r.broadcaster.BroadcastToRoom(r.ID, msgID, data)
}

// --- roster ---

// AddPlayer seats a session in the lobby. Fails once the room is full
// or a game is already running.
func (r *Room) AddPlayer(s *session.Session) bool {
	if r.GetStatus() != StatusWaiting {
		return false
	}

	r.playerMutex.Lock()
	defer r.playerMutex.Unlock()

	if len(r.Players) >= r.MaxPlayers {
		return false
	}
	r.Players[s.ID] = s
	r.joinOrder = append(r.joinOrder, s.ID)
	s.RoomID = r.ID
	return true
}

func (r *Room) RemovePlayer(sessionID string) {
	r.playerMutex.Lock()
	defer r.playerMutex.Unlock()

	if player, exists := r.Players[sessionID]; exists {
		player.RoomID = ""
		player.SetSeat(session.NoSeat)
		delete(r.Players, sessionID)
		delete(r.seats, sessionID)
		for i, id := range r.joinOrder {
			if id == sessionID {
				r.joinOrder = append(r.joinOrder[:i], r.joinOrder[i+1:]...)
				break
			}
		}
	}
}

func (r *Room) GetPlayer(sessionID string) (*session.Session, bool) {
	r.playerMutex.RLock()
	defer r.playerMutex.RUnlock()
	player, exists := r.Players[sessionID]
	return player, exists
}

// GetSessions returns a snapshot of the seated sessions.
func (r *Room) GetSessions() []*session.Session {
	r.playerMutex.RLock()
	defer r.playerMutex.RUnlock()

	sessions := make([]*session.Session, 0, len(r.Players))
	for _, s := range r.Players {
		sessions = append(sessions, s)
	}
	return sessions
}

func (r *Room) SetStatus(status RoomStatus) {
	r.statusMutex.Lock()
	defer r.statusMutex.Unlock()
	r.Status = status
}

func (r *Room) GetStatus() RoomStatus {
	r.statusMutex.RLock()
	defer r.statusMutex.RUnlock()
	return r.Status
}

func (r *Room) loop() {
	for {
		select {
		case <-r.ticker.C:
			r.Update()
		case <-r.closeChan:
			r.ticker.Stop()
			return
		}
	}
}

// Update drives one frame of the current state.
func (r *Room) Update() {
	if r.StateMachine != nil {
		if currentState := r.StateMachine.GetCurrentState(); currentState != nil {
			currentState.OnUpdate()
		}
	}
}

// Close stops the tick loop. Safe to call more than once.
func (r *Room) Close() {
	r.closeOnce.Do(func() {
		close(r.closeChan)
	})
}

// --- manager ---

// Manager owns every live room.
type Manager struct {
	rooms map[string]*Room
	mutex sync.RWMutex
}

func NewRoomManager() *Manager {
	return &Manager{
		rooms: make(map[string]*Room),
	}
}

func (m *Manager) CreateRoom(id, name string, maxPlayers int, rules config.GameConfig, broadcaster Broadcaster, recorder Recorder, observer engine.Observer) *Room {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	room := NewRoom(id, name, maxPlayers, rules, broadcaster, recorder, observer)
	m.rooms[id] = room
	return room
}

func (m *Manager) RemoveRoom(id string) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if room, exists := m.rooms[id]; exists {
		room.Close()
		delete(m.rooms, id)
	}
}

func (m *Manager) GetRoom(id string) (*Room, bool) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	room, exists := m.rooms[id]
	return room, exists
}

func (m *Manager) Count() int {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return len(m.rooms)
}

// FindAvailableRoom returns any lobby with a free seat.
func (m *Manager) FindAvailableRoom() *Room {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	for _, room := range m.rooms {
		if room.GetStatus() == StatusWaiting && len(room.Players) < room.MaxPlayers {
			return room
		}
	}
	return nil
}
