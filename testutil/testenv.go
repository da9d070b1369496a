// Package testutil provides shared environment helpers for E2E tests. It
// depends only on stdlib so that E2E tests (which cannot import internal/)
// can use it.
package testutil

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"
)

// LoadDotEnv reads KEY=VALUE pairs from a .env file at the given path.
// Missing file is not an error (CI sets env vars directly).
// Existing env vars take precedence over .env values.
func LoadDotEnv(envPath string) {
	f, err := os.Open(envPath)
	if err != nil {
		return
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}

		key = strings.TrimSpace(strings.TrimPrefix(key, "export "))
		value = strings.Trim(strings.TrimSpace(value), "\"'")

		if os.Getenv(key) == "" {
			os.Setenv(key, value)
		}
	}
}

// FindModuleRoot walks up from the current directory to find go.mod.
// Returns the fallback if the root is not found.
func FindModuleRoot(fallback string) string {
	dir, err := os.Getwd()
	if err != nil {
		return fallback
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return fallback
		}

		dir = parent
	}
}

// LiveTarget names a real file to resolve in live E2E runs. All three
// values come from the environment; ok is false if any is missing.
type LiveTarget struct {
	Token    string
	Path     string
	FileName string
}

// Environment variables read by LiveTargetFromEnv.
const (
	EnvLiveToken = "ONEDRIVE_REST_API_TOKEN"
	EnvLivePath  = "ONEDRIVE_REST_API_E2E_PATH"
	EnvLiveFile  = "ONEDRIVE_REST_API_E2E_FILE"
)

// LiveTargetFromEnv returns the live lookup target, if configured.
func LiveTargetFromEnv() (LiveTarget, bool) {
	t := LiveTarget{
		Token:    os.Getenv(EnvLiveToken),
		Path:     os.Getenv(EnvLivePath),
		FileName: os.Getenv(EnvLiveFile),
	}

	return t, t.Token != "" && t.Path != "" && t.FileName != ""
}
