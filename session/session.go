// Package session tracks one connected player across rooms: their
// connection, display name and the seat a room assigned them.
package session

import (
	"sync"
	"time"

	"github.com/wfunc/tycoon/network"
)

const NoSeat = -1

type Session struct {
	ID         string
	Conn       network.Connection
	Name       string
	RoomID     string
	Seat       int
	CreatedAt  time.Time
	LastActive time.Time
	mutex      sync.RWMutex
}

func NewSession(id string, conn network.Connection) *Session {
	now := time.Now()
	return &Session{
		ID:         id,
		Conn:       conn,
		Seat:       NoSeat,
		CreatedAt:  now,
		LastActive: now,
	}
}

func (s *Session) GetID() string {
	return s.ID
}

func (s *Session) Send(msgID uint16, data []byte) error {
	s.LastActive = time.Now()
	return s.Conn.Send(msgID, data)
}

// SetSeat records the seat a room handed out; NoSeat clears it.
func (s *Session) SetSeat(seat int) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.Seat = seat
}

func (s *Session) GetSeat() int {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.Seat
}

func (s *Session) Close() error {
	return s.Conn.Close()
}

// Manager indexes live sessions by ID.
type Manager struct {
	sessions map[string]*Session
	mutex    sync.RWMutex
}

func NewManager() *Manager {
	return &Manager{
		sessions: make(map[string]*Session),
	}
}

func (m *Manager) Add(session *Session) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.sessions[session.ID] = session
}

func (m *Manager) Remove(sessionID string) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	delete(m.sessions, sessionID)
}

func (m *Manager) Get(sessionID string) (*Session, bool) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	session, exists := m.sessions[sessionID]
	return session, exists
}

func (m *Manager) Count() int {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return len(m.sessions)
}
