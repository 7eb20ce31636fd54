package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

const (
	DefaultBaseURL  = "https://api.goshippo.com/v1"
	DefaultTimeout  = "30s"
	DefaultOutput   = "json"
	DefaultProfile  = "default"
	DefaultMockAddr = ":8089"
	DefaultBasePath = "/v1"

	// DefaultClientPath is where shippoctl looks for its config when no
	// -config flag is given, and where configgen writes the client template.
	DefaultClientPath      = "~/.shippo/shippoctl.toml"
	DefaultCredentialsFile = "~/.shippo/credentials.toml"
)

var ErrInvalidConfig = errors.New("config: invalid")

// ClientConfig configures shippoctl. Token may be left empty and supplied
// by a credentials profile or the environment.
type ClientConfig struct {
	BaseURL         string `toml:"base_url"`
	Token           string `toml:"token"`
	Timeout         string `toml:"timeout"`
	UserAgent       string `toml:"user_agent"`
	Output          string `toml:"output"`
	CredentialsFile string `toml:"credentials_file"`
	Profile         string `toml:"profile"`
}

// MockConfig configures shippo-mock.
type MockConfig struct {
	Addr        string   `toml:"addr"`
	BasePath    string   `toml:"base_path"`
	Token       string   `toml:"token"`
	Tokens      []string `toml:"tokens"`
	Owner       string   `toml:"owner"`
	CorsOrigins []string `toml:"cors_origins"`
}

func DefaultClientConfig() ClientConfig {
	return ClientConfig{
		BaseURL:         DefaultBaseURL,
		Timeout:         DefaultTimeout,
		Output:          DefaultOutput,
		CredentialsFile: DefaultCredentialsFile,
		Profile:         DefaultProfile,
	}
}

func DefaultMockConfig() MockConfig {
	return MockConfig{
		Addr:     DefaultMockAddr,
		BasePath: DefaultBasePath,
	}
}

func LoadClientConfig(path string) (ClientConfig, error) {
	var cfg ClientConfig
	if err := loadToml(path, &cfg); err != nil {
		return ClientConfig{}, err
	}
	cfg = cfg.withDefaults()
	if err := ValidateClientConfig(cfg); err != nil {
		return ClientConfig{}, err
	}
	return cfg, nil
}

func LoadMockConfig(path string) (MockConfig, error) {
	var cfg MockConfig
	if err := loadToml(path, &cfg); err != nil {
		return MockConfig{}, err
	}
	if cfg.Addr == "" {
		cfg.Addr = DefaultMockAddr
	}
	if cfg.BasePath == "" {
		cfg.BasePath = DefaultBasePath
	}
	if err := ValidateMockConfig(cfg); err != nil {
		return MockConfig{}, err
	}
	return cfg, nil
}

func (c ClientConfig) withDefaults() ClientConfig {
	def := DefaultClientConfig()
	if c.BaseURL == "" {
		c.BaseURL = def.BaseURL
	}
	if c.Timeout == "" {
		c.Timeout = def.Timeout
	}
	if c.Output == "" {
		c.Output = def.Output
	}
	if c.CredentialsFile == "" {
		c.CredentialsFile = def.CredentialsFile
	}
	if c.Profile == "" {
		c.Profile = def.Profile
	}
	return c
}

func loadToml(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config load failed (%s): %w", path, err)
	}
	if err := toml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("config parse failed (%s): %w", path, err)
	}
	return nil
}

func ValidateClientConfig(cfg ClientConfig) error {
	u, err := url.Parse(strings.TrimSpace(cfg.BaseURL))
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: base_url must be an http(s) url, got %q", ErrInvalidConfig, cfg.BaseURL)
	}
	if _, err := cfg.TimeoutDuration(); err != nil {
		return err
	}
	switch cfg.Output {
	case "json", "yaml":
	default:
		return fmt.Errorf("%w: output must be json or yaml, got %q", ErrInvalidConfig, cfg.Output)
	}
	return nil
}

func ValidateMockConfig(cfg MockConfig) error {
	if strings.TrimSpace(cfg.Addr) == "" {
		return fmt.Errorf("%w: mock config missing addr", ErrInvalidConfig)
	}
	if strings.TrimSpace(cfg.Token) == "" && len(cfg.Tokens) == 0 {
		return fmt.Errorf("%w: mock config missing token", ErrInvalidConfig)
	}
	for _, token := range cfg.Tokens {
		if strings.TrimSpace(token) == "" {
			return fmt.Errorf("%w: mock config has a blank entry in tokens", ErrInvalidConfig)
		}
	}
	if !strings.HasPrefix(cfg.BasePath, "/") {
		return fmt.Errorf("%w: base_path must start with /, got %q", ErrInvalidConfig, cfg.BasePath)
	}
	return nil
}

// TimeoutDuration parses Timeout; empty means the default.
func (c ClientConfig) TimeoutDuration() (time.Duration, error) {
	raw := strings.TrimSpace(c.Timeout)
	if raw == "" {
		raw = DefaultTimeout
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("%w: timeout must be a positive duration, got %q", ErrInvalidConfig, c.Timeout)
	}
	return d, nil
}

// ExpandHome replaces a leading ~ with the user's home directory.
func ExpandHome(path string) string {
	path = strings.TrimSpace(path)
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, strings.TrimPrefix(path, "~"))
	}
	return path
}
