package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/danmuck/shippoctl/internal/config"
)

const envToken = "SHIPPO_TOKEN"

var ErrNoToken = errors.New("no api token: set token in the config, a credentials profile, or " + envToken)

type credentialsEntry struct {
	Token   string `toml:"token"`
	BaseURL string `toml:"base_url"`
}

// loadClientConfig reads path. An empty path falls back to the default
// config file when it exists, and to the built-in defaults otherwise.
func loadClientConfig(path string) (config.ClientConfig, error) {
	if strings.TrimSpace(path) == "" {
		path = config.ExpandHome(config.DefaultClientPath)
		if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
			return config.DefaultClientConfig(), nil
		}
	}
	return config.LoadClientConfig(path)
}

// applyCredentials overlays the selected profile from the credentials file.
// A missing file is not an error; a missing profile in an existing file is.
func applyCredentials(cfg config.ClientConfig) (config.ClientConfig, error) {
	path := config.ExpandHome(cfg.CredentialsFile)
	if path == "" {
		return cfg, nil
	}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}

	var raw map[string]credentialsEntry
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return cfg, fmt.Errorf("load credentials: %w", err)
	}
	profile := strings.TrimSpace(cfg.Profile)
	if profile == "" {
		profile = config.DefaultProfile
	}
	if !meta.IsDefined(profile) {
		return cfg, fmt.Errorf("credentials profile %q not found in %s", profile, path)
	}
	entry := raw[profile]
	if cfg.Token == "" && meta.IsDefined(profile, "token") {
		cfg.Token = strings.TrimSpace(entry.Token)
	}
	if meta.IsDefined(profile, "base_url") {
		cfg.BaseURL = strings.TrimSpace(entry.BaseURL)
	}
	return cfg, nil
}

// resolveToken picks the config token, then the credentials profile, then
// the environment.
func resolveToken(cfg config.ClientConfig, getenv func(string) string) (config.ClientConfig, error) {
	cfg, err := applyCredentials(cfg)
	if err != nil {
		return cfg, err
	}
	if cfg.Token == "" {
		cfg.Token = strings.TrimSpace(getenv(envToken))
	}
	if cfg.Token == "" {
		return cfg, ErrNoToken
	}
	return cfg, nil
}
