package project

import (
	"errors"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/piwi3910/timbercalc/internal/model"
)

// Environment variables that override the config file.
const (
	EnvConfigPath = "TIMBERCALC_CONFIG"
	EnvOutputDir  = "TIMBERCALC_OUTPUT_DIR"
	EnvCompany    = "TIMBERCALC_COMPANY"
)

// LoadEnv loads variables from the given .env files (".env" when none are
// given) without overriding variables already set. Missing files are not an
// error.
func LoadEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}
	}
	return nil
}

// ConfigPath returns the config file location, honouring TIMBERCALC_CONFIG.
func ConfigPath() string {
	if p := strings.TrimSpace(os.Getenv(EnvConfigPath)); p != "" {
		return p
	}
	return DefaultConfigPath()
}

// ApplyEnv overrides config values with any set environment variables.
func ApplyEnv(cfg *model.AppConfig) {
	if v := strings.TrimSpace(os.Getenv(EnvOutputDir)); v != "" {
		cfg.OutputDir = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvCompany)); v != "" {
		cfg.CompanyName = v
	}
}

// LoadConfig reads the config file from ConfigPath and applies environment
// overrides. It returns the path so callers can save changes back.
func LoadConfig() (model.AppConfig, string, error) {
	path := ConfigPath()
	cfg, err := LoadAppConfig(path)
	if err != nil {
		return model.AppConfig{}, path, err
	}
	ApplyEnv(&cfg)
	return cfg, path, nil
}
