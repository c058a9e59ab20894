package persistence

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/lib/pq" // PostgreSQL driver

	"github.com/wfunc/tycoon/models"
)

// PostgreSQL is the database/sql-backed store.
type PostgreSQL struct {
	db *sql.DB
}

const queryTimeout = 5 * time.Second

func NewPostgreSQL(host string, port int, user, password, dbname string) (*PostgreSQL, error) {
	connStr := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		host, port, user, password, dbname)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := initTables(db); err != nil {
		return nil, err
	}
	return &PostgreSQL{db: db}, nil
}

func initTables(db *sql.DB) error {
	_, err := db.Exec(`
        CREATE TABLE IF NOT EXISTS leaderboard (
            id SERIAL PRIMARY KEY,
            name VARCHAR(255) UNIQUE NOT NULL,
            games INT NOT NULL DEFAULT 0,
            wins INT NOT NULL DEFAULT 0,
            winnings BIGINT NOT NULL DEFAULT 0,
            created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
            updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
        )
    `)
	if err != nil {
		return err
	}

	_, err = db.Exec(`
        CREATE TABLE IF NOT EXISTS game_records (
            id SERIAL PRIMARY KEY,
            room_id VARCHAR(255) NOT NULL,
            winner_name VARCHAR(255) NOT NULL,
            players JSONB NOT NULL,
            roll_count INT NOT NULL DEFAULT 0,
            doubles INT NOT NULL DEFAULT 0,
            auctions INT NOT NULL DEFAULT 0,
            trades INT NOT NULL DEFAULT 0,
            created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
        )
    `)
	if err != nil {
		return err
	}

	_, err = db.Exec(`
        CREATE INDEX IF NOT EXISTS idx_game_records_room_id ON game_records(room_id);
        CREATE INDEX IF NOT EXISTS idx_game_records_created_at ON game_records(created_at);
        CREATE INDEX IF NOT EXISTS idx_leaderboard_wins ON leaderboard(wins);
    `)
	return err
}

func (p *PostgreSQL) SaveGameRecord(record *models.GameRecord) error {
	playersJSON, err := json.Marshal(record.Players)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	tx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
        INSERT INTO game_records (room_id, winner_name, players, roll_count, doubles, auctions, trades)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
    `, record.RoomID, record.WinnerName, playersJSON,
		record.RollCount, record.Doubles, record.Auctions, record.Trades)
	if err != nil {
		return err
	}

	for _, pr := range record.Players {
		wins, winnings := 0, 0
		if pr.Outcome == "win" {
			wins, winnings = 1, pr.Cash
		}
		_, err = tx.ExecContext(ctx, `
            INSERT INTO leaderboard (name, games, wins, winnings)
            VALUES ($1, 1, $2, $3)
            ON CONFLICT (name)
            DO UPDATE SET games = leaderboard.games + 1,
                          wins = leaderboard.wins + $2,
                          winnings = leaderboard.winnings + $3,
                          updated_at = CURRENT_TIMESTAMP
        `, pr.Name, wins, winnings)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (p *PostgreSQL) TopPlayers(limit int) ([]models.LeaderboardEntry, error) {
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	rows, err := p.db.QueryContext(ctx, `
        SELECT name, games, wins, winnings FROM leaderboard
        ORDER BY wins DESC, winnings DESC LIMIT $1
    `, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []models.LeaderboardEntry
	for rows.Next() {
		var entry models.LeaderboardEntry
		if err := rows.Scan(&entry.Name, &entry.Games, &entry.Wins, &entry.Winnings); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

func (p *PostgreSQL) PlayerEntry(name string) (*models.LeaderboardEntry, error) {
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	var entry models.LeaderboardEntry
	err := p.db.QueryRowContext(ctx, `
        SELECT name, games, wins, winnings FROM leaderboard WHERE name = $1
    `, name).Scan(&entry.Name, &entry.Games, &entry.Wins, &entry.Winnings)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}
	return &entry, nil
}

func (p *PostgreSQL) Close() error {
	return p.db.Close()
}
