// Package config loads scanner configuration from the environment.
// Credentials are env-only on purpose: the scanner runs from CI schedules
// where secrets arrive as environment variables, never flags.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// RunMode controls whether a "no new updates" notice is worth sending.
type RunMode string

// Run modes. Scheduled runs stay quiet when nothing changed; manual runs
// always answer.
const (
	RunModeScheduled RunMode = "scheduled"
	RunModeManual    RunMode = "manual"
)

// Config is the immutable process configuration, constructed once at
// startup and passed into the scanner. No component reads the environment
// after this point.
type Config struct {
	GeminiAPIKey   string
	TelegramToken  string
	TelegramChatID string

	DBPath      string
	SourcesFile string // optional JSON catalog override
	GeminiModel string
	RunMode     RunMode

	MinScore       float64
	MaxConcurrent  int
	MaxPerSource   int
	RequestTimeout time.Duration
}

// Defaults for the tunables.
const (
	DefaultDBPath         = "payroll_radar.db"
	DefaultMinScore       = 0.25
	DefaultMaxConcurrent  = 8
	DefaultMaxPerSource   = 30
	DefaultRequestTimeout = 45 * time.Second
)

// MissingEnvError lists every required environment variable that was not
// set, so a misconfigured deployment fails with one complete message.
type MissingEnvError struct {
	Vars []string
}

func (e *MissingEnvError) Error() string {
	return fmt.Sprintf("missing required environment variables: %s", strings.Join(e.Vars, ", "))
}

// FromEnv builds a Config from the process environment. It returns a
// *MissingEnvError naming every absent required variable.
func FromEnv() (*Config, error) {
	cfg := &Config{
		GeminiAPIKey:   os.Getenv("GEMINI_API_KEY"),
		TelegramToken:  os.Getenv("TELEGRAM_BOT_TOKEN"),
		TelegramChatID: os.Getenv("TELEGRAM_CHAT_ID"),
		DBPath:         envOr("RADAR_DB_PATH", DefaultDBPath),
		SourcesFile:    os.Getenv("RADAR_SOURCES_FILE"),
		GeminiModel:    os.Getenv("GEMINI_MODEL"),
		RunMode:        RunModeScheduled,
		MinScore:       DefaultMinScore,
		MaxConcurrent:  DefaultMaxConcurrent,
		MaxPerSource:   DefaultMaxPerSource,
		RequestTimeout: DefaultRequestTimeout,
	}

	if mode := os.Getenv("RADAR_RUN_MODE"); mode != "" {
		switch RunMode(strings.ToLower(mode)) {
		case RunModeManual:
			cfg.RunMode = RunModeManual
		case RunModeScheduled:
			cfg.RunMode = RunModeScheduled
		default:
			return nil, fmt.Errorf("invalid RADAR_RUN_MODE %q (want manual or scheduled)", mode)
		}
	}

	if raw := os.Getenv("RADAR_MIN_SCORE"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || v < 0 || v > 1 {
			return nil, fmt.Errorf("invalid RADAR_MIN_SCORE %q (want a value in [0,1])", raw)
		}
		cfg.MinScore = v
	}

	if raw := os.Getenv("RADAR_MAX_CONCURRENT"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 1 {
			return nil, fmt.Errorf("invalid RADAR_MAX_CONCURRENT %q (want a positive integer)", raw)
		}
		cfg.MaxConcurrent = v
	}

	var missing []string
	if cfg.GeminiAPIKey == "" {
		missing = append(missing, "GEMINI_API_KEY")
	}
	if cfg.TelegramToken == "" {
		missing = append(missing, "TELEGRAM_BOT_TOKEN")
	}
	if cfg.TelegramChatID == "" {
		missing = append(missing, "TELEGRAM_CHAT_ID")
	}
	if len(missing) > 0 {
		return nil, &MissingEnvError{Vars: missing}
	}

	return cfg, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
