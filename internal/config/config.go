package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// ModelVersion identifies this forecaster build. It feeds the submission
// content hash, so bumping it forces a resubmission for every question.
const ModelVersion = "metacbot-1"

// Settings holds the full run configuration. Values come from the TOML config
// file layered over DefaultSettings, then from environment variables.
type Settings struct {
	MetaculusToken   string `toml:"-"`
	ExaAPIKey        string `toml:"-"`
	OpenRouterAPIKey string `toml:"-"`

	LiveMode         bool   `toml:"live_mode"`
	StrictOpenWindow bool   `toml:"strict_open_window"`
	TournamentID     string `toml:"tournament_id"`
	MaxQuestions     int    `toml:"max_questions"`
	TimeoutSeconds   int    `toml:"timeout_seconds"`
	Retries          int    `toml:"retries"`
	CooldownMinutes  int    `toml:"cooldown_minutes"`

	MinProb float64 `toml:"min_prob"`
	MaxProb float64 `toml:"max_prob"`

	Model       string  `toml:"model"`
	Temperature float64 `toml:"temperature"`

	DataDir  string `toml:"data_dir"`
	LogLevel string `toml:"log_level"`
}

func DefaultSettings() *Settings {
	return &Settings{
		LiveMode:         false,
		StrictOpenWindow: false,
		TournamentID:     "32916",
		MaxQuestions:     10,
		TimeoutSeconds:   30,
		Retries:          3,
		CooldownMinutes:  360,
		MinProb:          0.01,
		MaxProb:          0.99,
		Model:            "openai/gpt-4o-mini",
		Temperature:      0.3,
		DataDir:          "./data",
		LogLevel:         "info",
	}
}

// Load reads the TOML config file (if present) over the defaults, then applies
// environment variable overrides. A missing file is not an error; credentials
// only ever come from the environment.
func Load(path string) (*Settings, error) {
	cfg := DefaultSettings()

	if data, err := os.ReadFile(path); err == nil {
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config: %w", err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	cfg.applyEnv()
	return cfg, nil
}

func (s *Settings) applyEnv() {
	s.MetaculusToken = getEnv("METACULUS_TOKEN", s.MetaculusToken)
	s.ExaAPIKey = getEnv("EXA_API_KEY", s.ExaAPIKey)
	s.OpenRouterAPIKey = getEnv("OPENROUTER_API_KEY", s.OpenRouterAPIKey)

	s.LiveMode = getEnvBool("LIVE_MODE", s.LiveMode)
	s.StrictOpenWindow = getEnvBool("STRICT_OPEN_WINDOW", s.StrictOpenWindow)
	s.TournamentID = getEnv("TOURNAMENT_ID", s.TournamentID)
	s.MaxQuestions = getEnvInt("MAX_QUESTIONS", s.MaxQuestions)
	s.TimeoutSeconds = getEnvInt("TIMEOUT_SECONDS", s.TimeoutSeconds)
	s.Retries = getEnvInt("RETRIES", s.Retries)
	s.CooldownMinutes = getEnvInt("COOLDOWN_MINUTES", s.CooldownMinutes)
	s.MinProb = getEnvFloat("MIN_PROB", s.MinProb)
	s.MaxProb = getEnvFloat("MAX_PROB", s.MaxProb)
	s.Model = getEnv("LLM_MODEL", s.Model)
	s.DataDir = getEnv("DATA_DIR", s.DataDir)
	s.LogLevel = getEnv("LOG_LEVEL", s.LogLevel)
}

// DryRun reports whether the run simulates submissions instead of
// transmitting them.
func (s *Settings) DryRun() bool {
	return !s.LiveMode
}

// Preflight returns the configuration errors that must abort the run before
// any work starts. Credentials are only required in live mode; a dry run
// exercises the full pipeline against offline fallbacks.
func (s *Settings) Preflight() []string {
	if !s.LiveMode {
		return nil
	}
	var errs []string
	if s.MetaculusToken == "" {
		errs = append(errs, "METACULUS_TOKEN is required in live mode")
	}
	if s.ExaAPIKey == "" {
		errs = append(errs, "EXA_API_KEY is required in live mode")
	}
	if s.OpenRouterAPIKey == "" {
		errs = append(errs, "OPENROUTER_API_KEY is required in live mode")
	}
	return errs
}
