package services

import (
	"math/rand"
	"testing"

	"github.com/wfunc/tycoon/config"
	"github.com/wfunc/tycoon/engine"
	"github.com/wfunc/tycoon/models"
)

// fakeDatabase captures saved records in memory.
type fakeDatabase struct {
	saved []*models.GameRecord
}

func (f *fakeDatabase) SaveGameRecord(record *models.GameRecord) error {
	f.saved = append(f.saved, record)
	return nil
}

func (f *fakeDatabase) TopPlayers(limit int) ([]models.LeaderboardEntry, error) {
	return []models.LeaderboardEntry{{Name: "Maple", Wins: 3}}, nil
}

func (f *fakeDatabase) PlayerEntry(name string) (*models.LeaderboardEntry, error) {
	return &models.LeaderboardEntry{Name: name}, nil
}

func (f *fakeDatabase) Close() error { return nil }

func finishedSnapshot(t *testing.T) engine.Snapshot {
	t.Helper()
	g, err := engine.New(config.Defaults(), 2, rand.New(rand.NewSource(3)))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := g.HandleEvent(engine.Event{Type: engine.EventDeclareBankruptcy, Seat: 0}); err != nil {
		t.Fatalf("bankrupt: %v", err)
	}
	snap := g.Snapshot()
	if snap.WinnerSeat != 1 {
		t.Fatalf("winner seat = %d, want 1", snap.WinnerSeat)
	}
	return snap
}

func TestRecordGame(t *testing.T) {
	db := &fakeDatabase{}
	svc := NewRecordService(db)

	snap := finishedSnapshot(t)
	names := []string{"Maple", "Birch"}
	if err := svc.RecordGame("room-1", snap, names); err != nil {
		t.Fatalf("RecordGame: %v", err)
	}

	if len(db.saved) != 1 {
		t.Fatalf("saved %d records, want 1", len(db.saved))
	}
	record := db.saved[0]
	if record.RoomID != "room-1" || record.WinnerName != "Birch" {
		t.Fatalf("record = %+v", record)
	}
	if len(record.Players) != 2 {
		t.Fatalf("players = %d, want 2", len(record.Players))
	}
	if record.Players[0].Outcome != "lose" || record.Players[1].Outcome != "win" {
		t.Fatalf("outcomes = %s/%s", record.Players[0].Outcome, record.Players[1].Outcome)
	}
}

func TestLeaderboardDefaultsLimit(t *testing.T) {
	svc := NewRecordService(&fakeDatabase{})

	entries, err := svc.Leaderboard(0)
	if err != nil {
		t.Fatalf("Leaderboard: %v", err)
	}
	if len(entries) != 1 || entries[0].Name != "Maple" {
		t.Fatalf("entries = %+v", entries)
	}
}
