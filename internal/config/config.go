// Package config loads the nilo viewer configuration from a JSON file.
package config

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"
)

// Version is the viewer release reported in the welcome banner and -version.
const Version = "0.0.1"

// Tab stop limits accepted in configuration.
const (
	DefaultTabStop = 8
	MaxTabStop     = 32
)

// Supported source encodings for the file import.
const (
	EncodingUTF8   = "utf8"
	EncodingCP437  = "cp437"
	EncodingLatin1 = "latin1"
)

// Config holds the viewer settings.
type Config struct {
	TabStop        int    `json:"tabStop"`
	WelcomeMessage string `json:"welcomeMessage"`
	Encoding       string `json:"encoding"`
	LogFile        string `json:"logFile"`
	Debug          bool   `json:"debug"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		TabStop:        DefaultTabStop,
		WelcomeMessage: fmt.Sprintf("Nilo Editor -- version %s", Version),
		Encoding:       EncodingUTF8,
	}
}

// Load reads the configuration file at path over the defaults. A missing file
// is not an error.
func Load(path string) (Config, error) {
	defaultConfig := Default()
	if path == "" {
		return defaultConfig, nil
	}
	log.Printf("INFO: Loading configuration from %s", path)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			log.Printf("WARN: %s not found. Using default settings.", path)
			return defaultConfig, nil
		}
		return defaultConfig, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	config := defaultConfig
	if err := json.Unmarshal(data, &config); err != nil {
		return defaultConfig, fmt.Errorf("failed to parse config JSON from %s: %w", path, err)
	}
	config.Encoding = NormalizeEncoding(config.Encoding)
	if err := config.Validate(); err != nil {
		return defaultConfig, fmt.Errorf("invalid config %s: %w", path, err)
	}

	log.Printf("INFO: Successfully loaded configuration from %s", path)
	return config, nil
}

// Validate reports the first setting outside its accepted range.
func (c Config) Validate() error {
	if c.TabStop < 1 || c.TabStop > MaxTabStop {
		return fmt.Errorf("tabStop %d out of range 1..%d", c.TabStop, MaxTabStop)
	}
	switch NormalizeEncoding(c.Encoding) {
	case EncodingUTF8, EncodingCP437, EncodingLatin1:
	default:
		return fmt.Errorf("unknown encoding %q (want utf8, cp437 or latin1)", c.Encoding)
	}
	return nil
}

// NormalizeEncoding maps common spellings onto the names Config uses.
func NormalizeEncoding(name string) string {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "utf8", "utf-8":
		return EncodingUTF8
	case "cp437", "ibm437", "dos":
		return EncodingCP437
	case "latin1", "latin-1", "iso-8859-1", "iso8859-1":
		return EncodingLatin1
	default:
		return name
	}
}
