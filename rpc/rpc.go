package rpc

import (
	"net"
	"net/rpc"

	"github.com/wfunc/tycoon/logger"
	"github.com/wfunc/tycoon/models"
	"github.com/wfunc/tycoon/services"
)

// Server manages the RPC listener.
type Server struct {
	listener net.Listener
	address  string
}

// NewServer creates a new RPC server.
func NewServer(addr string) (*Server, error) {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, err
	}
	return &Server{
		listener: listener,
		address:  addr,
	}, nil
}

// Start begins listening for RPC requests.
func (s *Server) Start() {
	logger.Log.Infof("RPC server listening on %s", s.address)
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			// Check if the error is due to the listener being closed.
			if _, ok := err.(*net.OpError); ok {
				logger.Log.Info("RPC server listener closed.")
				return
			}
			logger.Log.Errorf("RPC server accept error: %v", err)
			continue
		}
		go rpc.ServeConn(conn)
	}
}

// Stop closes the RPC listener.
func (s *Server) Stop() {
	if s.listener != nil {
		logger.Log.Info("Stopping RPC server.")
		s.listener.Close()
	}
}

// TycoonService exposes leaderboard queries over net/rpc. Methods follow
// the net/rpc signature rules: exported method, exported arguments,
// second argument is a pointer, return type is error.
type TycoonService struct {
	records *services.RecordService
}

func NewTycoonService(records *services.RecordService) *TycoonService {
	return &TycoonService{records: records}
}

// Register binds the service into the default rpc server.
func (ts *TycoonService) Register() error {
	return rpc.RegisterName("TycoonService", ts)
}

type LeaderboardArgs struct {
	Limit int
}

type LeaderboardReply struct {
	Entries []models.LeaderboardEntry
}

func (ts *TycoonService) Leaderboard(args *LeaderboardArgs, reply *LeaderboardReply) error {
	entries, err := ts.records.Leaderboard(args.Limit)
	if err != nil {
		return err
	}
	reply.Entries = entries
	return nil
}

type PlayerEntryArgs struct {
	Name string
}

type PlayerEntryReply struct {
	Entry *models.LeaderboardEntry
}

func (ts *TycoonService) PlayerEntry(args *PlayerEntryArgs, reply *PlayerEntryReply) error {
	entry, err := ts.records.PlayerEntry(args.Name)
	if err != nil {
		return err
	}
	reply.Entry = entry
	return nil
}
