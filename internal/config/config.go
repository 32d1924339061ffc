package config

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// Config holds all application configuration. The API key and organization
// id are read once here and threaded explicitly; nothing else reads the
// process environment.
type Config struct {
	APIKey  string
	BaseURL string
	OrgID   string

	Addr   string
	DBPath string

	MetaTimeout time.Duration // short metadata lookups
	ListTimeout time.Duration // large listing calls
	MaxRetries  int
	FanoutLimit int // max in-flight parent calls during fan-out

	APITokenHash string // bcrypt hash of the web API bearer token; empty disables auth

	MockMode bool
	Debug    bool
}

// Load parses command line flags and environment variables to populate Config.
// Flags take precedence over environment variables.
func Load() *Config {
	cfg := &Config{}

	// Defaults and Environment Variables
	cfg.APIKey = getEnv("MERAKI_API_KEY", "")
	cfg.BaseURL = getEnv("MERAKI_BASE_URL", "https://api.meraki.com/api/v1")
	cfg.OrgID = getEnv("MERAKI_ORG_ID", "")
	cfg.Addr = getEnv("MERAKID_ADDR", ":8080")
	cfg.DBPath = getEnv("MERAKID_DB", getDefaultDBPath())
	cfg.APITokenHash = getEnv("MERAKID_TOKEN_HASH", "")
	cfg.MockMode = getEnvBool("MERAKID_MOCK", false)
	cfg.MetaTimeout = getEnvDuration("MERAKID_META_TIMEOUT", 30*time.Second)
	cfg.ListTimeout = getEnvDuration("MERAKID_LIST_TIMEOUT", 90*time.Second)
	cfg.MaxRetries = getEnvInt("MERAKID_MAX_RETRIES", 3)
	cfg.FanoutLimit = getEnvInt("MERAKID_FANOUT_LIMIT", 10)

	// Command Line Flags (Override Env)
	flag.StringVar(&cfg.APIKey, "api-key", cfg.APIKey, "Dashboard API key")
	flag.StringVar(&cfg.BaseURL, "base-url", cfg.BaseURL, "Dashboard API base URL")
	flag.StringVar(&cfg.OrgID, "org", cfg.OrgID, "Organization ID to report on")
	flag.StringVar(&cfg.Addr, "addr", cfg.Addr, "HTTP server address")
	flag.StringVar(&cfg.DBPath, "db", cfg.DBPath, "Path to SQLite report archive")
	flag.BoolVar(&cfg.MockMode, "mock", cfg.MockMode, "Run against the built-in mock dashboard")
	flag.BoolVar(&cfg.Debug, "debug", false, "Enable verbose debug logging")
	flag.DurationVar(&cfg.MetaTimeout, "meta-timeout", cfg.MetaTimeout, "Timeout for short metadata calls")
	flag.DurationVar(&cfg.ListTimeout, "list-timeout", cfg.ListTimeout, "Timeout for large listing calls")
	flag.IntVar(&cfg.MaxRetries, "max-retries", cfg.MaxRetries, "Max retry attempts for transient API failures")
	flag.IntVar(&cfg.FanoutLimit, "fanout", cfg.FanoutLimit, "Max concurrent per-network API calls")

	flag.Parse()

	return cfg
}

// Validate checks the fields a real (non-mock) run cannot do without.
func (c *Config) Validate() error {
	if c.MockMode {
		return nil
	}
	if c.APIKey == "" {
		return fmt.Errorf("missing API key (set MERAKI_API_KEY or -api-key)")
	}
	if c.OrgID == "" {
		return fmt.Errorf("missing organization id (set MERAKI_ORG_ID or -org)")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}

// getDefaultDBPath returns the default archive path in user's home directory.
// Creates the directory if it doesn't exist.
func getDefaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		log.Printf("Warning: Could not get user home directory, using current dir: %v", err)
		return "merakid.db"
	}

	dir := filepath.Join(home, ".merakid")
	if err := os.MkdirAll(dir, 0755); err != nil {
		log.Printf("Warning: Could not create .merakid directory, using current dir: %v", err)
		return "merakid.db"
	}

	return filepath.Join(dir, "merakid.db")
}
