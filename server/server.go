package server

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/wfunc/tycoon/broadcast"
	"github.com/wfunc/tycoon/config"
	"github.com/wfunc/tycoon/engine"
	"github.com/wfunc/tycoon/logger"
	"github.com/wfunc/tycoon/monitor"
	"github.com/wfunc/tycoon/network"
	"github.com/wfunc/tycoon/room"
	tycoonrpc "github.com/wfunc/tycoon/rpc"
	"github.com/wfunc/tycoon/services"
	"github.com/wfunc/tycoon/session"
)

type GameServer struct {
	cfg            *config.Config
	upgrader       websocket.Upgrader
	roomManager    *room.Manager
	sessionManager *session.Manager
	recordService  *services.RecordService
	broadcaster    broadcast.Broadcaster
	monitor        *monitor.Monitor
	rpcServer      *tycoonrpc.Server
	mutex          sync.Mutex
	shutdownChan   chan struct{}
}

// NewGameServer wires the managers together. records may be nil when the
// server runs without a database; mon may be nil when metrics are off.
func NewGameServer(cfg *config.Config, records *services.RecordService, mon *monitor.Monitor) *GameServer {
	s := &GameServer{
		cfg:            cfg,
		roomManager:    room.NewRoomManager(),
		sessionManager: session.NewManager(),
		recordService:  records,
		monitor:        mon,
		shutdownChan:   make(chan struct{}),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true // allow all origins
			},
		},
	}

	s.broadcaster = broadcast.NewRoomBroadcaster(s.roomManager, s.sessionManager)

	rpcServer, err := tycoonrpc.NewServer(cfg.Server.RPCAddress)
	if err != nil {
		logger.Log.Fatalf("Failed to create RPC server: %v", err)
	}
	s.rpcServer = rpcServer

	if records != nil {
		if err := tycoonrpc.NewTycoonService(records).Register(); err != nil {
			logger.Log.Fatalf("Failed to register RPC service: %v", err)
		}
	}

	return s
}

func (s *GameServer) Start() error {
	go s.rpcServer.Start()

	http.HandleFunc("/ws", s.handleWebSocket)
	logger.Log.Infof("Game server listening on %s", s.cfg.Server.HTTPAddress)
	return http.ListenAndServe(s.cfg.Server.HTTPAddress, nil)
}

func (s *GameServer) Shutdown() {
	close(s.shutdownChan)
	s.rpcServer.Stop()
}

func (s *GameServer) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Log.Infof("Failed to upgrade connection: %v", err)
		return
	}
	s.handleConnection(conn)
}

func (s *GameServer) handleConnection(conn *websocket.Conn) {
	wsConn := network.NewWSConnection(conn)
	sess := session.NewSession(uuid.New().String(), wsConn)
	s.sessionManager.Add(sess)
	if s.monitor != nil {
		s.monitor.IncOnlinePlayers()
	}

	logger.Log.Infof("New connection from %s, session ID: %s", wsConn.RemoteAddr(), sess.GetID())

	defer func() {
		logger.Log.Infof("Connection closed from %s, session ID: %s", wsConn.RemoteAddr(), sess.GetID())
		s.sessionManager.Remove(sess.GetID())
		s.leaveCurrentRoom(sess)
		if s.monitor != nil {
			s.monitor.DecOnlinePlayers()
		}
		wsConn.Close()
	}()

	for {
		select {
		case <-s.shutdownChan:
			return
		default:
			packet, err := wsConn.ReadPacket()
			if err != nil {
				return
			}
			s.handlePacket(sess, packet)
		}
	}
}

func (s *GameServer) handlePacket(sess *session.Session, packet *network.Packet) {
	start := time.Now()
	if s.monitor != nil {
		s.monitor.IncMessagesReceived()
		defer func() { s.monitor.ObserveMessageLatency(time.Since(start)) }()
	}

	switch packet.MsgID {
	case network.MsgTypeHeartbeat:
		sess.LastActive = time.Now()
	case network.MsgTypeCreateRoom:
		s.handleCreateRoom(sess, packet)
	case network.MsgTypeJoinRoom:
		s.handleJoinRoom(sess, packet)
	case network.MsgTypeLeaveRoom:
		s.handleLeaveRoom(sess)
	case network.MsgTypePlayerAction:
		s.handleGameAction(sess, packet)
	default:
		logger.Log.Infof("Unknown message type: %d", packet.MsgID)
	}
}

type createRoomRequest struct {
	Name       string `json:"name"`
	MaxPlayers int    `json:"max_players"`
}

func (s *GameServer) handleCreateRoom(sess *session.Session, packet *network.Packet) {
	req := createRoomRequest{Name: "New Room", MaxPlayers: s.cfg.Game.MaxPlayers}
	if len(packet.Data) > 0 {
		if err := json.Unmarshal(packet.Data, &req); err != nil {
			s.sendError(sess, "bad create_room payload")
			return
		}
	}
	if err := s.cfg.Game.ValidatePlayerCount(req.MaxPlayers); err != nil {
		s.sendError(sess, err.Error())
		return
	}

	s.leaveCurrentRoom(sess)

	roomID := uuid.New().String()
	var recorder room.Recorder
	if s.recordService != nil {
		recorder = s.recordService
	}
	newRoom := s.roomManager.CreateRoom(roomID, req.Name, req.MaxPlayers, s.cfg.Game, s.broadcaster, recorder, s.gameObserver())
	newRoom.AddPlayer(sess)
	if s.monitor != nil {
		s.monitor.SetActiveRooms(s.roomManager.Count())
	}

	logger.Log.Infof("Session %s created room %s", sess.GetID(), roomID)

	resp := map[string]string{"room_id": roomID}
	data, _ := json.Marshal(resp)
	sess.Send(network.MsgTypeCreateRoom, data)
}

func (s *GameServer) handleJoinRoom(sess *session.Session, packet *network.Packet) {
	var req map[string]string
	if err := json.Unmarshal(packet.Data, &req); err != nil {
		s.sendError(sess, "bad join_room payload")
		return
	}
	roomID := req["room_id"]

	target, exists := s.roomManager.GetRoom(roomID)
	if roomID == "" {
		// Empty room_id means "seat me anywhere".
		target = s.roomManager.FindAvailableRoom()
		exists = target != nil
	}
	if !exists {
		s.sendError(sess, "room not found")
		return
	}

	s.leaveCurrentRoom(sess)
	if target.AddPlayer(sess) {
		logger.Log.Infof("Session %s joined room %s", sess.GetID(), target.GetID())
	} else {
		s.sendError(sess, "room is full or already playing")
	}
}

func (s *GameServer) handleLeaveRoom(sess *session.Session) {
	s.leaveCurrentRoom(sess)
}

// leaveCurrentRoom unseats the session and tears the room down once it
// empties.
func (s *GameServer) leaveCurrentRoom(sess *session.Session) {
	if sess.RoomID == "" {
		return
	}
	current, exists := s.roomManager.GetRoom(sess.RoomID)
	if !exists {
		sess.RoomID = ""
		return
	}

	current.RemovePlayer(sess.GetID())
	if len(current.GetSessions()) == 0 {
		s.roomManager.RemoveRoom(current.GetID())
		if s.monitor != nil {
			s.monitor.SetActiveRooms(s.roomManager.Count())
		}
	}
}

func (s *GameServer) handleGameAction(sess *session.Session, packet *network.Packet) {
	if sess.RoomID == "" {
		logger.Log.Warnf("Session %s sent game action but is not in a room", sess.GetID())
		return
	}

	current, exists := s.roomManager.GetRoom(sess.RoomID)
	if !exists {
		logger.Log.Errorf("Room %s not found for session %s", sess.RoomID, sess.GetID())
		return
	}

	currentState := current.StateMachine.GetCurrentState()
	if currentState == nil {
		logger.Log.Errorf("Room %s has a nil state", current.GetID())
		return
	}

	if err := currentState.HandleAction(sess, packet.Data); err != nil {
		logger.Log.Errorf("Error handling action in room %s: %v", current.GetID(), err)
		s.sendError(sess, err.Error())
	}
}

// gameObserver returns the monitor as an engine observer, or a nil
// interface when metrics are off. A typed-nil *Monitor would slip past
// the engine's nil checks.
func (s *GameServer) gameObserver() engine.Observer {
	if s.monitor == nil {
		return nil
	}
	return s.monitor
}

func (s *GameServer) sendError(sess *session.Session, msg string) {
	data, _ := json.Marshal(map[string]string{"error": msg})
	sess.Send(network.MsgTypeError, data)
}
