// Package services bridges game results to persistence.
package services

import (
	"time"

	"github.com/wfunc/tycoon/engine"
	"github.com/wfunc/tycoon/models"
	"github.com/wfunc/tycoon/persistence"
)

// RecordService turns final snapshots into stored game records.
type RecordService struct {
	db persistence.Database
}

func NewRecordService(db persistence.Database) *RecordService {
	return &RecordService{db: db}
}

// RecordGame persists the outcome of one finished game. Satisfies the
// room.Recorder interface.
func (s *RecordService) RecordGame(roomID string, snap engine.Snapshot, names []string) error {
	record := &models.GameRecord{
		RoomID:     roomID,
		WinnerSeat: snap.WinnerSeat,
		RollCount:  snap.Stats.RollCount,
		Doubles:    snap.Stats.DoublesCount,
		Auctions:   snap.Stats.AuctionsHeld,
		Trades:     snap.Stats.TradesSettled,
		CreatedAt:  time.Now(),
	}

	for _, p := range snap.Players {
		name := p.Name
		if p.Seat < len(names) && names[p.Seat] != "" {
			name = names[p.Seat]
		}
		outcome := "lose"
		if p.Seat == snap.WinnerSeat {
			outcome = "win"
			record.WinnerName = name
		}
		record.Players = append(record.Players, models.PlayerResult{
			Seat:    p.Seat,
			Name:    name,
			Cash:    p.Cash,
			Outcome: outcome,
		})
	}

	return s.db.SaveGameRecord(record)
}

// Leaderboard lists the all-time standings.
func (s *RecordService) Leaderboard(limit int) ([]models.LeaderboardEntry, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.db.TopPlayers(limit)
}

// PlayerEntry loads one player's standing.
func (s *RecordService) PlayerEntry(name string) (*models.LeaderboardEntry, error) {
	return s.db.PlayerEntry(name)
}
