// internal/config/config.go
//
// Environment-driven configuration for the puzzle server.
// main loads .env (godotenv) first, so values from the file and the real
// environment are read the same way here.
//
// Environment variables:
//   PORT, LOG_LEVEL, DB_PATH, CLIENT_ORIGIN, APP_ENV,
//   JWT_SECRET, JWT_EXPIRES_DAYS, COOKIE_NAME, DAILY_SALT,
//   PUZZLE_GRID_SIZE, PUZZLE_ALLOW_DIAGONAL, PUZZLE_WORDS, PUZZLE_WORD_COUNT

package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordsearch/internal/game"
)

// Config holds every tunable the server reads at startup.
type Config struct {
	Port         string
	LogLevel     string
	DBPath       string
	ClientOrigin string
	Production   bool // APP_ENV=production: Secure + SameSite=None cookies

	JWTSecret  string
	JWTExpiry  time.Duration
	CookieName string
	DailySalt  string

	Puzzle Puzzle
}

// Puzzle is the default puzzle shape for new games.
type Puzzle struct {
	Size          int
	AllowDiagonal bool
	Words         []string // fixed list; empty means pick from the word bank
	WordCount     int      // words picked per puzzle when Words is empty
}

// Load reads the configuration from the environment, applying defaults for
// unset or malformed values.
func Load() Config {
	return Config{
		Port:         getEnv("PORT", "5175"),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
		DBPath:       getEnv("DB_PATH", "./data/app.db"),
		ClientOrigin: getEnv("CLIENT_ORIGIN", "http://localhost:5173"),
		Production:   os.Getenv("APP_ENV") == "production",

		JWTSecret:  getEnv("JWT_SECRET", "dev_secret_change_me"),
		JWTExpiry:  time.Duration(getInt("JWT_EXPIRES_DAYS", 14)) * 24 * time.Hour,
		CookieName: getEnv("COOKIE_NAME", "wordsearch_token"),
		DailySalt:  getEnv("DAILY_SALT", "local_dev_salt"),

		Puzzle: Puzzle{
			Size:          getInt("PUZZLE_GRID_SIZE", game.DefaultSize),
			AllowDiagonal: getBool("PUZZLE_ALLOW_DIAGONAL", false),
			Words:         splitList(os.Getenv("PUZZLE_WORDS")),
			WordCount:     getInt("PUZZLE_WORD_COUNT", 6),
		},
	}
}

// getEnv returns the value of k or def if unset/empty.
func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getInt(k string, def int) int {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		log.Warn().Str("key", k).Str("value", v).Int("default", def).Msg("invalid integer, using default")
		return def
	}
	return n
}

func getBool(k string, def bool) bool {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		log.Warn().Str("key", k).Str("value", v).Bool("default", def).Msg("invalid boolean, using default")
		return def
	}
	return b
}

// splitList splits a comma-separated list, trimming blanks.
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
