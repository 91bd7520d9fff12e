// Package config reads the server settings from the environment and the
// dot-grid viewer settings from YAML.
package config

import (
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/Zachkp/neural-glass/internal/dotgrid"
)

const (
	DefaultPort             = "8080"
	DefaultDatabasePath     = "portfolio.db"
	DefaultAssistantURL     = "http://localhost:8000"
	DefaultAssistantTimeout = 20 * time.Second
	DefaultHealthInterval   = 30 * time.Second
	DefaultSMTPHost         = "smtp.gmail.com"
	DefaultSMTPPort         = "587"
	DefaultCountryHeader    = "CF-IPCountry"
)

type SMTP struct {
	Host string
	Port string
	User string
	Pass string
	To   string
}

// Server is everything the portfolio server needs at startup.
type Server struct {
	Port             string
	DatabasePath     string
	AssistantURL     string
	AssistantTimeout time.Duration
	HealthInterval   time.Duration
	CountryHeader    string
	AdminUsername    string
	AdminPassword    string
	SMTP             SMTP
}

// FromEnv reads the server settings, falling back to development defaults.
func FromEnv() Server {
	return Server{
		Port:             getenv("PORT", DefaultPort),
		DatabasePath:     getenv("DATABASE_PATH", DefaultDatabasePath),
		AssistantURL:     getenv("ASSISTANT_URL", DefaultAssistantURL),
		AssistantTimeout: getDuration("ASSISTANT_TIMEOUT", DefaultAssistantTimeout),
		HealthInterval:   getDuration("HEALTH_INTERVAL", DefaultHealthInterval),
		CountryHeader:    getenv("COUNTRY_HEADER", DefaultCountryHeader),
		AdminUsername:    os.Getenv("ADMIN_USERNAME"),
		AdminPassword:    os.Getenv("ADMIN_PASSWORD"),
		SMTP: SMTP{
			Host: getenv("SMTP_HOST", DefaultSMTPHost),
			Port: getenv("SMTP_PORT", DefaultSMTPPort),
			User: os.Getenv("SMTP_USER"),
			Pass: os.Getenv("SMTP_PASS"),
			To:   os.Getenv("TO_EMAIL"),
		},
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// getDuration accepts Go durations ("45s") or plain seconds ("45").
func getDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	if d, err := time.ParseDuration(v); err == nil && d > 0 {
		return d
	}
	if secs, err := strconv.ParseFloat(v, 64); err == nil && secs > 0 {
		return time.Duration(secs * float64(time.Second))
	}
	return fallback
}

// Viewer configures the desktop dot-grid window.
type Viewer struct {
	Width  int            `yaml:"width"`
	Height int            `yaml:"height"`
	Title  string         `yaml:"title"`
	Grid   dotgrid.Config `yaml:"grid"`
}

func DefaultViewer() *Viewer {
	return &Viewer{
		Width:  1024,
		Height: 640,
		Title:  "Neural Glass",
		Grid:   dotgrid.DefaultConfig(),
	}
}

// LoadViewer reads a YAML file over the defaults; fields missing from the
// file keep their default values.
func LoadViewer(path string) (*Viewer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultViewer()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func SaveViewer(path string, cfg *Viewer) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
