// Package config provides configuration for the company match engine.
// It defines decision thresholds, signal weights, and collaborator settings,
// all validated once at load time and immutable afterwards.
package config

import (
	"math"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/dcoelho/company-match/internal/errors"
)

// Weight tolerance when checking that signal weights sum to 1, to absorb
// floating-point representation error in values like 0.5+0.2+0.3.
const weightSumTolerance = 1e-9

// Default configuration values. Callers may override any of them per
// deployment through the environment; see Load.
const (
	DefaultAcceptThreshold = 0.85
	DefaultReviewThreshold = 0.60
	DefaultStringWeight    = 0.50
	DefaultPhoneticWeight  = 0.20
	DefaultDominanceWeight = 0.30
	DefaultAuditSinkPath   = "logs/company_match_audit.jsonl"
	DefaultBackendEndpoint = "http://localhost:9200/company_index/_search"
	DefaultBackendTopN     = 10
	DefaultServerPort      = 8080
	DefaultLogLevel        = "info"
)

// Weights holds the relative contribution of each similarity signal to the
// composite confidence score. The three weights must sum to 1.
type Weights struct {
	String    float64 `json:"string"`    // lexical similarity weight
	Phonetic  float64 `json:"phonetic"`  // phonetic similarity weight
	Dominance float64 `json:"dominance"` // backend score dominance weight
}

// Config contains all configuration options for the match engine and its
// collaborators. Construct it with Load (environment) or start from
// Default() and adjust fields before calling Validate.
type Config struct {
	AcceptThreshold float64 `json:"accept_threshold"` // composite score at or above which a match is accepted
	ReviewThreshold float64 `json:"review_threshold"` // composite score at or above which a match goes to review
	Weights         Weights `json:"weights"`          // signal weights, summing to 1
	AuditSinkPath   string  `json:"audit_sink_path"`  // append-only JSONL destination for audit records
	BackendEndpoint string  `json:"backend_endpoint"` // search backend _search URL
	BackendTopN     int     `json:"backend_top_n"`    // number of candidates requested from the backend
	ServerPort      int     `json:"server_port"`      // HTTP API listen port
	LogLevel        string  `json:"log_level"`        // application log level (zerolog levels)
}

// Default returns a Config populated with the documented default values.
func Default() Config {
	return Config{
		AcceptThreshold: DefaultAcceptThreshold,
		ReviewThreshold: DefaultReviewThreshold,
		Weights: Weights{
			String:    DefaultStringWeight,
			Phonetic:  DefaultPhoneticWeight,
			Dominance: DefaultDominanceWeight,
		},
		AuditSinkPath:   DefaultAuditSinkPath,
		BackendEndpoint: DefaultBackendEndpoint,
		BackendTopN:     DefaultBackendTopN,
		ServerPort:      DefaultServerPort,
		LogLevel:        DefaultLogLevel,
	}
}

// ApplyDefaults fills zero-valued fields with the documented defaults.
// A zero weight triple is replaced wholesale; individual zero weights inside
// a non-zero triple are left alone so Validate can reject them.
func (c *Config) ApplyDefaults() {
	if c.AcceptThreshold == 0 {
		c.AcceptThreshold = DefaultAcceptThreshold
	}
	if c.ReviewThreshold == 0 {
		c.ReviewThreshold = DefaultReviewThreshold
	}
	if c.Weights == (Weights{}) {
		c.Weights = Weights{
			String:    DefaultStringWeight,
			Phonetic:  DefaultPhoneticWeight,
			Dominance: DefaultDominanceWeight,
		}
	}
	if c.AuditSinkPath == "" {
		c.AuditSinkPath = DefaultAuditSinkPath
	}
	if c.BackendEndpoint == "" {
		c.BackendEndpoint = DefaultBackendEndpoint
	}
	if c.BackendTopN == 0 {
		c.BackendTopN = DefaultBackendTopN
	}
	if c.ServerPort == 0 {
		c.ServerPort = DefaultServerPort
	}
	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}
}

// Validate checks the configuration and returns a ConfigError describing the
// first violation found. A Config that passes Validate never causes an error
// inside the engine afterwards.
func (c *Config) Validate() error {
	if c.AcceptThreshold < 0 || c.AcceptThreshold > 1 {
		return errors.NewConfigError("accept_threshold", "must be in [0,1]")
	}
	if c.ReviewThreshold < 0 || c.ReviewThreshold > 1 {
		return errors.NewConfigError("review_threshold", "must be in [0,1]")
	}
	if c.ReviewThreshold > c.AcceptThreshold {
		return errors.NewConfigError("review_threshold", "must not exceed accept_threshold")
	}
	if c.Weights.String < 0 || c.Weights.Phonetic < 0 || c.Weights.Dominance < 0 {
		return errors.NewConfigError("weights", "must be non-negative")
	}
	sum := c.Weights.String + c.Weights.Phonetic + c.Weights.Dominance
	if math.Abs(sum-1) > weightSumTolerance {
		return errors.NewConfigError("weights", "must sum to 1")
	}
	if c.BackendTopN < 1 {
		return errors.NewConfigError("backend_top_n", "must be at least 1")
	}
	if c.ServerPort < 1 || c.ServerPort > 65535 {
		return errors.NewConfigError("server_port", "must be a valid port number")
	}
	return nil
}

// Load builds a Config from the environment, filling unset variables with the
// documented defaults, and validates it. A variable that is set but cannot be
// parsed is a ConfigError: misconfiguration is fatal at load time, never
// silently replaced. A .env file in the working directory is honored when
// present.
func Load() (Config, error) {
	// Missing .env is fine; real environments set variables directly.
	_ = godotenv.Load()

	env := &envReader{}
	cfg := Config{
		AcceptThreshold: env.float("ACCEPT_THRESHOLD"),
		ReviewThreshold: env.float("REVIEW_THRESHOLD"),
		Weights: Weights{
			String:    env.float("WEIGHT_STRING"),
			Phonetic:  env.float("WEIGHT_PHONETIC"),
			Dominance: env.float("WEIGHT_DOMINANCE"),
		},
		AuditSinkPath:   os.Getenv("AUDIT_SINK_PATH"),
		BackendEndpoint: os.Getenv("BACKEND_ENDPOINT"),
		BackendTopN:     env.int("BACKEND_TOP_N"),
		ServerPort:      env.int("SERVER_PORT"),
		LogLevel:        os.Getenv("LOG_LEVEL"),
	}
	if env.err != nil {
		return Config{}, env.err
	}

	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// envReader parses typed environment variables, keeping the first parse
// failure so Load can reject a misconfigured environment.
type envReader struct {
	err error
}

func (r *envReader) float(key string) float64 {
	value := os.Getenv(key)
	if value == "" {
		return 0
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		r.fail(key, "must be a number")
		return 0
	}
	return f
}

func (r *envReader) int(key string) int {
	value := os.Getenv(key)
	if value == "" {
		return 0
	}
	i, err := strconv.Atoi(value)
	if err != nil {
		r.fail(key, "must be an integer")
		return 0
	}
	return i
}

func (r *envReader) fail(key, message string) {
	if r.err == nil {
		r.err = errors.NewConfigError(key, message)
	}
}
