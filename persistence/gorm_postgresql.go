package persistence

import (
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/wfunc/tycoon/models"
)

// GormPostgreSQL is the GORM-backed store.
type GormPostgreSQL struct {
	db *gorm.DB
}

func NewGormPostgreSQL(host string, port int, user, password, dbname string) (*GormPostgreSQL, error) {
	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		host, port, user, password, dbname)

	dbLogger := gormlogger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		gormlogger.Config{
			SlowThreshold: time.Second,
			LogLevel:      gormlogger.Silent,
			Colorful:      false,
		},
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: dbLogger,
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := db.AutoMigrate(&models.GormPlayer{}, &models.GormGameRecord{}); err != nil {
		return nil, err
	}

	return &GormPostgreSQL{db: db}, nil
}

// SaveGameRecord writes the record and the per-player leaderboard rows
// in one transaction.
func (p *GormPostgreSQL) SaveGameRecord(record *models.GameRecord) error {
	return p.db.Transaction(func(tx *gorm.DB) error {
		players := make(map[string]interface{}, len(record.Players))
		for _, pr := range record.Players {
			players[fmt.Sprintf("%d", pr.Seat)] = map[string]interface{}{
				"name":    pr.Name,
				"cash":    pr.Cash,
				"outcome": pr.Outcome,
			}
		}

		row := models.GormGameRecord{
			RoomID:     record.RoomID,
			WinnerName: record.WinnerName,
			Players:    players,
			RollCount:  record.RollCount,
			Doubles:    record.Doubles,
			Auctions:   record.Auctions,
			Trades:     record.Trades,
		}
		if err := tx.Create(&row).Error; err != nil {
			return err
		}

		for _, pr := range record.Players {
			if err := upsertPlayer(tx, pr); err != nil {
				return err
			}
		}
		return nil
	})
}

func upsertPlayer(tx *gorm.DB, pr models.PlayerResult) error {
	var player models.GormPlayer
	result := tx.Where("name = ?", pr.Name).First(&player)

	if result.Error == gorm.ErrRecordNotFound {
		player = models.GormPlayer{Name: pr.Name}
	} else if result.Error != nil {
		return result.Error
	}

	player.Games++
	if pr.Outcome == "win" {
		player.Wins++
		player.Winnings += int64(pr.Cash)
	}
	return tx.Save(&player).Error
}

func (p *GormPostgreSQL) TopPlayers(limit int) ([]models.LeaderboardEntry, error) {
	var rows []models.GormPlayer
	if err := p.db.Order("wins DESC, winnings DESC").Limit(limit).Find(&rows).Error; err != nil {
		return nil, err
	}

	entries := make([]models.LeaderboardEntry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, models.LeaderboardEntry{
			Name:     row.Name,
			Games:    row.Games,
			Wins:     row.Wins,
			Winnings: row.Winnings,
		})
	}
	return entries, nil
}

func (p *GormPostgreSQL) PlayerEntry(name string) (*models.LeaderboardEntry, error) {
	var row models.GormPlayer
	if err := p.db.Where("name = ?", name).First(&row).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}
	return &models.LeaderboardEntry{
		Name:     row.Name,
		Games:    row.Games,
		Wins:     row.Wins,
		Winnings: row.Winnings,
	}, nil
}

func (p *GormPostgreSQL) Close() error {
	sqlDB, err := p.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
