package broadcast

import (
	"errors"

	"github.com/wfunc/tycoon/room"
	"github.com/wfunc/tycoon/session"
)

var ErrRoomNotFound = errors.New("room not found")

// Broadcaster fans packets out to rooms, everyone, or single sessions.
type Broadcaster interface {
	BroadcastToRoom(roomID string, msgID uint16, data []byte) error
	BroadcastToAll(msgID uint16, data []byte) error
	BroadcastToSession(sessionID string, msgID uint16, data []byte) error
}

// RoomBroadcaster resolves recipients through the room and session
// managers. Send failures are skipped; the reader loop notices dead
// connections on its own.
type RoomBroadcaster struct {
	roomManager    *room.Manager
	sessionManager *session.Manager
}

func NewRoomBroadcaster(roomManager *room.Manager, sessionManager *session.Manager) *RoomBroadcaster {
	return &RoomBroadcaster{
		roomManager:    roomManager,
		sessionManager: sessionManager,
	}
}

func (b *RoomBroadcaster) BroadcastToRoom(roomID string, msgID uint16, data []byte) error {
	r, exists := b.roomManager.GetRoom(roomID)
	if !exists {
		return ErrRoomNotFound
	}

	for _, s := range r.GetSessions() {
		_ = s.Send(msgID, data)
	}
	return nil
}

func (b *RoomBroadcaster) BroadcastToSession(sessionID string, msgID uint16, data []byte) error {
	s, exists := b.sessionManager.Get(sessionID)
	if !exists {
		return nil
	}
	return s.Send(msgID, data)
}

func (b *RoomBroadcaster) BroadcastToAll(msgID uint16, data []byte) error {
	// Room-scoped messaging covers the game flow; a lobby-wide channel
	// is not part of the protocol yet.
	return nil
}
