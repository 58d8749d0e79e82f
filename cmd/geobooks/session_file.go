package main

import (
	"os"
	"path/filepath"
	"strings"
)

// The session token is persisted so a new process restores the previous
// session, like a browser reopening with its cookie intact.

func sessionPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "geobooks", "session")
}

func loadSession() string {
	path := sessionPath()
	if path == "" {
		return ""
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

func saveSession(token string) error {
	path := sessionPath()
	if path == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(token), 0o600)
}

func clearSession() {
	if path := sessionPath(); path != "" {
		_ = os.Remove(path)
	}
}
