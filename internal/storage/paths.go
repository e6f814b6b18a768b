// Package storage persists engine preferences and analysis records.
package storage

import (
	"os"
	"path/filepath"
	"runtime"
)

const (
	appName = "chessfork"

	// DataDirEnv overrides the platform data directory when set.
	DataDirEnv = "CHESSFORK_DATA"
)

// GetDataDir returns the data directory, creating it:
//   - $CHESSFORK_DATA if set
//   - macOS: ~/Library/Application Support/chessfork
//   - Windows: %APPDATA%\chessfork
//   - elsewhere: $XDG_DATA_HOME/chessfork or ~/.local/share/chessfork
func GetDataDir() (string, error) {
	if dir := os.Getenv(DataDirEnv); dir != "" {
		return ensureDir(dir)
	}

	var base string
	var err error
	switch runtime.GOOS {
	case "darwin":
		base, err = homeJoin("Library", "Application Support")
	case "windows":
		base, err = envOrHome("APPDATA", "AppData", "Roaming")
	default:
		base, err = envOrHome("XDG_DATA_HOME", ".local", "share")
	}
	if err != nil {
		return "", err
	}
	return ensureDir(filepath.Join(base, appName))
}

// GetDatabaseDir returns the BadgerDB directory under dataDir, creating it.
// An empty dataDir selects GetDataDir.
func GetDatabaseDir(dataDir string) (string, error) {
	if dataDir == "" {
		var err error
		if dataDir, err = GetDataDir(); err != nil {
			return "", err
		}
	}
	return ensureDir(filepath.Join(dataDir, "db"))
}

func envOrHome(key string, rel ...string) (string, error) {
	if v := os.Getenv(key); v != "" {
		return v, nil
	}
	return homeJoin(rel...)
}

func homeJoin(rel ...string) (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(append([]string{home}, rel...)...), nil
}

func ensureDir(dir string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}
	return dir, nil
}
