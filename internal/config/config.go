package config

import (
	"os"
	"path/filepath"
)

const (
	AppName        = "splitpane"
	LayoutFileName = "layout.yaml"
)

// DataDir returns the path to the splitpane data directory (~/.splitpane/)
// Creates the directory if it doesn't exist
// Can be overridden with SPLITPANE_DATA_DIR environment variable (primarily for testing)
func DataDir() (string, error) {
	if dataDir := os.Getenv("SPLITPANE_DATA_DIR"); dataDir != "" {
		if err := os.MkdirAll(dataDir, 0755); err != nil {
			return "", err
		}
		return dataDir, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	dataDir := filepath.Join(home, "."+AppName)
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return "", err
	}

	return dataDir, nil
}

// LayoutPath returns the path of the default layout file (~/.splitpane/layout.yaml)
func LayoutPath() (string, error) {
	dataDir, err := DataDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(dataDir, LayoutFileName), nil
}

// LogDir returns the path to the log directory (~/.splitpane/logs/)
// Creates the directory if it doesn't exist
func LogDir() (string, error) {
	dataDir, err := DataDir()
	if err != nil {
		return "", err
	}

	logDir := filepath.Join(dataDir, "logs")
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return "", err
	}

	return logDir, nil
}
