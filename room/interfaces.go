package room

import "github.com/wfunc/tycoon/engine"

// Broadcaster fans a packet out to every session in a room. Defined
// here to break the import cycle with the broadcast package.
type Broadcaster interface {
	BroadcastToRoom(roomID string, msgID uint16, data []byte) error
}

// Recorder persists a finished game. Defined here so the room does not
// depend on the services package directly.
type Recorder interface {
	RecordGame(roomID string, snap engine.Snapshot, names []string) error
}
