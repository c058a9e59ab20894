package network

// Message IDs of the wire protocol. 1xx is room management, 2xx is
// gameplay input, 3xx is server-to-client state.
const (
	MsgTypeHeartbeat = 1

	MsgTypeJoinRoom   = 101
	MsgTypeLeaveRoom  = 102
	MsgTypeCreateRoom = 103

	MsgTypePlayerAction = 202

	MsgTypeRoomState = 301
	MsgTypeError     = 302
	MsgTypeGameStart = 303
	MsgTypeGameSync  = 304
	MsgTypeGameEnd   = 305
)
