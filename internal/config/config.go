package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	LogLevel          string        `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	HTTPPort          string        `yaml:"http-port" env:"HTTP_PORT" env-default:"9090"`
	SocketPort        string        `yaml:"socket-port" env:"SOCKET_PORT" env-default:"7777"`
	SessionTTL        time.Duration `yaml:"session-ttl" env:"SESSION_TTL" env-default:"24h"`
	SweepInterval     time.Duration `yaml:"sweep-interval" env:"SESSION_SWEEP_INTERVAL" env-default:"10m"`
	SQLiteStoragePath string        `yaml:"sqlite-storage-path" env:"SQLITE_STORAGE_PATH"`
	Seed              uint64        `yaml:"seed" env:"RANDOM_SEED" env-default:"0"`
	Redis             Redis         `yaml:"redis"`
	Games             Games         `yaml:"games"`
}

type Redis struct {
	Host     string `yaml:"host" env:"REDIS_HOST" env-default:"localhost"`
	Port     string `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
	Password string `yaml:"password" env:"REDIS_PASSWORD"`
	DB       int    `yaml:"db" env:"REDIS_DB" env-default:"0"`
}

type Games struct {
	TicTacToe  TicTacToe  `yaml:"tictactoe"`
	Battleship Battleship `yaml:"battleship"`
	WordSearch WordSearch `yaml:"wordsearch"`
}

type TicTacToe struct {
	BestMoveChance float64       `yaml:"best-move-chance" env:"TICTACTOE_BEST_MOVE_CHANCE" env-default:"0.75"`
	ThinkMin       time.Duration `yaml:"think-min" env:"TICTACTOE_THINK_MIN" env-default:"300ms"`
	ThinkMax       time.Duration `yaml:"think-max" env:"TICTACTOE_THINK_MAX" env-default:"700ms"`
}

type Battleship struct {
	ReplyDelay time.Duration `yaml:"reply-delay" env:"BATTLESHIP_REPLY_DELAY" env-default:"1s"`
}

type WordSearch struct {
	HighlightDuration time.Duration `yaml:"highlight-duration" env:"WORDSEARCH_HIGHLIGHT_DURATION" env-default:"1s"`
}

// MustLoad - load all configurations in config.yml file, environment variables take precedence.
func MustLoad(path string) *Config {
	config := &Config{}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		panic(fmt.Errorf("unable to load config file: %w", err))
	}

	if err := config.Validate(); err != nil {
		panic(fmt.Errorf("invalid config: %w", err))
	}

	return config
}

func (that *Config) Validate() error {
	if that.SweepInterval <= 0 {
		return fmt.Errorf("sweep-interval must be positive, got %s", that.SweepInterval)
	}

	if that.Games.TicTacToe.BestMoveChance < 0 || that.Games.TicTacToe.BestMoveChance > 1 {
		return fmt.Errorf("tictactoe best-move-chance must be within [0, 1], got %v", that.Games.TicTacToe.BestMoveChance)
	}

	if that.Games.TicTacToe.ThinkMin > that.Games.TicTacToe.ThinkMax {
		return fmt.Errorf("tictactoe think-min %s exceeds think-max %s", that.Games.TicTacToe.ThinkMin, that.Games.TicTacToe.ThinkMax)
	}

	return nil
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}
