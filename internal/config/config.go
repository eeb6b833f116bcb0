package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/multierr"

	"ewastewatch/internal/hotspots"
)

type Config struct {
	Env         string
	ListenAddr  string
	DatabaseURL string

	VerifyWorkers      int
	VerifyPollInterval time.Duration
	VerifyTimeout      time.Duration
	VerifyThreshold    float64
	// VerifierURL selects the HTTP classifier; empty means the simulated one.
	VerifierURL          string
	SimulatedVerifyDelay time.Duration

	LocationTimeout time.Duration

	Hotspots               hotspots.Params
	HotspotRefreshInterval time.Duration
	RecentReportsLimit     int

	CloudinaryURL    string
	CloudinaryFolder string

	AllowedOriginDomains []string
}

// Load reads the environment, after merging a .env file from the working
// directory when one exists. Variables already set win over the file.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Printf("config: ignoring .env: %v", err)
	}

	cfg := Config{
		Env:         getenv("APP_ENV", "development"),
		ListenAddr:  getenv("LISTEN_ADDR", ":8080"),
		DatabaseURL: os.Getenv("DATABASE_URL"),

		VerifyWorkers:        getenvInt("VERIFY_WORKERS", 2),
		VerifyPollInterval:   getenvDuration("VERIFY_POLL_INTERVAL", 500*time.Millisecond),
		VerifyTimeout:        getenvDuration("VERIFY_TIMEOUT", 10*time.Second),
		VerifyThreshold:      getenvFloat("VERIFY_THRESHOLD", 0.75),
		VerifierURL:          os.Getenv("VERIFIER_URL"),
		SimulatedVerifyDelay: getenvDuration("SIMULATED_VERIFY_DELAY", 2*time.Second),

		LocationTimeout: getenvDuration("LOCATION_TIMEOUT", 10*time.Second),

		Hotspots: hotspots.Params{
			RadiusMeters:      getenvFloat("HOTSPOT_RADIUS_METERS", 500),
			HighThreshold:     getenvInt("HOTSPOT_HIGH_THRESHOLD", 10),
			ModerateThreshold: getenvInt("HOTSPOT_MODERATE_THRESHOLD", 4),
		},
		HotspotRefreshInterval: getenvDuration("HOTSPOT_REFRESH_INTERVAL", 5*time.Minute),
		RecentReportsLimit:     getenvInt("RECENT_REPORTS_LIMIT", 10),

		CloudinaryURL:    os.Getenv("CLOUDINARY_URL"),
		CloudinaryFolder: os.Getenv("CLOUDINARY_FOLDER"),

		AllowedOriginDomains: getenvList("ALLOWED_ORIGIN_DOMAINS"),
	}
	return cfg, cfg.Validate()
}

// Validate reports every invalid setting at once.
func (c Config) Validate() error {
	var err error
	if c.VerifyWorkers < 0 {
		err = multierr.Append(err, fmt.Errorf("VERIFY_WORKERS must not be negative, got %d", c.VerifyWorkers))
	}
	if c.VerifyPollInterval <= 0 {
		err = multierr.Append(err, fmt.Errorf("VERIFY_POLL_INTERVAL must be positive"))
	}
	if c.VerifyTimeout <= 0 {
		err = multierr.Append(err, fmt.Errorf("VERIFY_TIMEOUT must be positive"))
	}
	if c.VerifyThreshold < 0 || c.VerifyThreshold > 1 {
		err = multierr.Append(err, fmt.Errorf("VERIFY_THRESHOLD must be within [0,1], got %v", c.VerifyThreshold))
	}
	if c.LocationTimeout <= 0 {
		err = multierr.Append(err, fmt.Errorf("LOCATION_TIMEOUT must be positive"))
	}
	if c.HotspotRefreshInterval <= 0 {
		err = multierr.Append(err, fmt.Errorf("HOTSPOT_REFRESH_INTERVAL must be positive"))
	}
	if c.RecentReportsLimit < 1 {
		err = multierr.Append(err, fmt.Errorf("RECENT_REPORTS_LIMIT must be at least 1"))
	}
	return multierr.Append(err, c.Hotspots.Validate())
}

// Development is true outside production; it relaxes websocket origin
// checks to allow localhost.
func (c Config) Development() bool { return c.Env != "production" }

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		out, err := strconv.Atoi(strings.TrimSpace(v))
		if err == nil {
			return out
		}
		log.Printf("config: %s=%q is not an integer, using %d", key, v, def)
	}
	return def
}

func getenvFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		out, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err == nil {
			return out
		}
		log.Printf("config: %s=%q is not a number, using %v", key, v, def)
	}
	return def
}

func getenvDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		out, err := time.ParseDuration(strings.TrimSpace(v))
		if err == nil {
			return out
		}
		log.Printf("config: %s=%q is not a duration, using %s", key, v, def)
	}
	return def
}

func getenvList(key string) []string {
	var out []string
	for _, part := range strings.Split(os.Getenv(key), ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
