package model

import (
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	DefaultConnectionsFile = "connections.csv"
	DefaultMessagesFile    = "messages.csv"
)

// Config holds the settings of one ingestion run
type Config struct {
	SourceFolder    string   `json:"source_folder"`
	ConnectionsFile string   `json:"connections_file"`
	MessagesFile    string   `json:"messages_file"`
	TimeZone        string   `json:"time_zone,omitempty"` // IANA name, empty for the process local zone
	IgnoredBodies   []string `json:"ignored_bodies,omitempty"`
}

// DefaultConfig returns a configuration reading the export from the working directory
func DefaultConfig() Config {
	return Config{
		SourceFolder:    ".",
		ConnectionsFile: DefaultConnectionsFile,
		MessagesFile:    DefaultMessagesFile,
	}
}

// NewConfig returns the default configuration overridden by
// LINKER_SOURCE_FOLDER, LINKER_CONNECTIONS_FILE, LINKER_MESSAGES_FILE,
// LINKER_TIMEZONE and LINKER_IGNORED_BODIES (separated by "|").
func NewConfig() (*Config, error) {
	config := DefaultConfig()

	if v := os.Getenv("LINKER_SOURCE_FOLDER"); v != "" {
		config.SourceFolder = v
	}
	if v := os.Getenv("LINKER_CONNECTIONS_FILE"); v != "" {
		config.ConnectionsFile = v
	}
	if v := os.Getenv("LINKER_MESSAGES_FILE"); v != "" {
		config.MessagesFile = v
	}
	if v := os.Getenv("LINKER_TIMEZONE"); v != "" {
		config.TimeZone = v
	}
	if v := os.Getenv("LINKER_IGNORED_BODIES"); v != "" {
		for _, body := range strings.Split(v, "|") {
			if body = strings.TrimSpace(body); body != "" {
				config.IgnoredBodies = append(config.IgnoredBodies, body)
			}
		}
	}

	if _, err := config.Location(); err != nil {
		return nil, err
	}

	return &config, nil
}

// Location returns the time zone messages are converted to
func (c *Config) Location() (*time.Location, error) {
	if c.TimeZone == "" || strings.EqualFold(c.TimeZone, "local") {
		return time.Local, nil
	}
	return time.LoadLocation(c.TimeZone)
}

// ConnectionsPath returns the full path of the connections export
func (c *Config) ConnectionsPath() string {
	return filepath.Join(c.SourceFolder, c.ConnectionsFile)
}

// MessagesPath returns the full path of the messages export
func (c *Config) MessagesPath() string {
	return filepath.Join(c.SourceFolder, c.MessagesFile)
}
