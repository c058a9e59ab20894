// Package persistence stores finished games and the leaderboard. Two
// interchangeable PostgreSQL implementations exist: one on GORM and one
// on database/sql with lib/pq; config selects the driver.
package persistence

import (
	"errors"

	"github.com/wfunc/tycoon/models"
)

// Database is the storage surface the rest of the server talks to.
type Database interface {
	// SaveGameRecord appends one finished-game summary and folds each
	// player's outcome into the leaderboard.
	SaveGameRecord(record *models.GameRecord) error
	// TopPlayers lists the leaderboard ordered by wins.
	TopPlayers(limit int) ([]models.LeaderboardEntry, error)
	// PlayerEntry loads one leaderboard row by name.
	PlayerEntry(name string) (*models.LeaderboardEntry, error)
	Close() error
}

var ErrRecordNotFound = errors.New("record not found")
