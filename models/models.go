// Package models holds the shared data shapes: wire DTOs in models.go
// and the GORM table models in gorm_models.go.
package models

import (
	"time"
)

// GameRecord is the durable summary of one finished game.
type GameRecord struct {
	RoomID     string         `json:"room_id"`
	WinnerSeat int            `json:"winner_seat"`
	WinnerName string         `json:"winner_name"`
	Players    []PlayerResult `json:"players"`
	RollCount  int            `json:"roll_count"`
	Doubles    int            `json:"doubles"`
	Auctions   int            `json:"auctions"`
	Trades     int            `json:"trades"`
	CreatedAt  time.Time      `json:"created_at"`
}

// PlayerResult is one seat's final standing.
type PlayerResult struct {
	Seat    int    `json:"seat"`
	Name    string `json:"name"`
	Cash    int    `json:"cash"`
	Outcome string `json:"outcome"` // win/lose
}

// LeaderboardEntry is one row of the all-time standings.
type LeaderboardEntry struct {
	Name     string `json:"name"`
	Games    int    `json:"games"`
	Wins     int    `json:"wins"`
	Winnings int64  `json:"winnings"`
}
