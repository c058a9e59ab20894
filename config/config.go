package config

import (
	"fmt"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Game     GameConfig     `mapstructure:"game"`
	Database DatabaseConfig `mapstructure:"database"`
}

type ServerConfig struct {
	HTTPAddress    string `mapstructure:"http_address"`
	RPCAddress     string `mapstructure:"rpc_address"`
	MetricsAddress string `mapstructure:"metrics_address"`
}

// GameConfig carries the tunable rules of a game. Everything here has a
// default matching the reference rule set; see Defaults.
type GameConfig struct {
	TicksPerSecond     int `mapstructure:"ticks_per_second"`
	StartingCash       int `mapstructure:"starting_cash"`
	PassGoBonus        int `mapstructure:"pass_go_bonus"`
	LandGoBonus        int `mapstructure:"land_go_bonus"`
	JailFee            int `mapstructure:"jail_fee"`
	AuctionTurnSeconds int `mapstructure:"auction_turn_seconds"`
	MessageSeconds     int `mapstructure:"message_seconds"`
	MinPlayers         int `mapstructure:"min_players"`
	MaxPlayers         int `mapstructure:"max_players"`
}

type DatabaseConfig struct {
	Enabled  bool           `mapstructure:"enabled"`
	Postgres PostgresConfig `mapstructure:"postgres"`
}

type PostgresConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
}

// Defaults returns the game rules used when no config file overrides them.
func Defaults() GameConfig {
	return GameConfig{
		TicksPerSecond:     10,
		StartingCash:       500,
		PassGoBonus:        200,
		LandGoBonus:        300,
		JailFee:            50,
		AuctionTurnSeconds: 5,
		MessageSeconds:     3,
		MinPlayers:         1,
		MaxPlayers:         4,
	}
}

// ValidatePlayerCount rejects out-of-range player counts so the caller can
// re-prompt.
func (g GameConfig) ValidatePlayerCount(n int) error {
	if n < g.MinPlayers || n > g.MaxPlayers {
		return fmt.Errorf("player count %d out of range %d-%d", n, g.MinPlayers, g.MaxPlayers)
	}
	return nil
}

func LoadConfig(path string) (config *Config, err error) {
	viper.AddConfigPath(path)
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	viper.SetDefault("server.http_address", ":8080")
	viper.SetDefault("server.rpc_address", ":8081")
	viper.SetDefault("server.metrics_address", ":9100")
	defaults := Defaults()
	viper.SetDefault("game.ticks_per_second", defaults.TicksPerSecond)
	viper.SetDefault("game.starting_cash", defaults.StartingCash)
	viper.SetDefault("game.pass_go_bonus", defaults.PassGoBonus)
	viper.SetDefault("game.land_go_bonus", defaults.LandGoBonus)
	viper.SetDefault("game.jail_fee", defaults.JailFee)
	viper.SetDefault("game.auction_turn_seconds", defaults.AuctionTurnSeconds)
	viper.SetDefault("game.message_seconds", defaults.MessageSeconds)
	viper.SetDefault("game.min_players", defaults.MinPlayers)
	viper.SetDefault("game.max_players", defaults.MaxPlayers)

	viper.AutomaticEnv()

	if err = viper.ReadInConfig(); err != nil {
		// A missing file is fine, defaults apply.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	err = viper.Unmarshal(&config)
	return
}
