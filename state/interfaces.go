package state

import (
	"github.com/wfunc/tycoon/config"
	"github.com/wfunc/tycoon/engine"
)

// Player is the minimal view of a seated participant a state needs.
type Player interface {
	GetID() string
}

// RoomContext is what a room must expose to its states. Declared here
// to break the import cycle between room and state.
type RoomContext interface {
	GetID() string
	GetPlayers() map[string]Player
	GetMaxPlayers() int
	Rules() config.GameConfig

	// AssignSeats freezes the roster into seats 0..n-1 in join order
	// and returns n.
	AssignSeats() int
	SeatOf(sessionID string) (int, bool)
	SeatName(seat int) string

	// Observer is wired into a new game for telemetry; may be nil.
	Observer() engine.Observer
	// RecordResult hands the final snapshot to persistence.
	RecordResult(snap engine.Snapshot)

	ChangeState(newState State) error
	Broadcast(msgID uint16, data []byte) error
}
