package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

func Template(kind string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case "client":
		return clientTemplate, nil
	case "mock":
		return mockTemplate, nil
	default:
		return "", fmt.Errorf("unknown config kind: %s", kind)
	}
}

func WriteTemplate(path, kind string, overwrite bool) error {
	template, err := Template(kind)
	if err != nil {
		return err
	}
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config already exists: %s", path)
		}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	return os.WriteFile(path, []byte(template), 0o600)
}

const clientTemplate = `base_url = "https://api.goshippo.com/v1"
# token = "shippo_test_..."
timeout = "30s"
output = "json"
credentials_file = "~/.shippo/credentials.toml"
profile = "default"
`

const mockTemplate = `addr = ":8089"
base_path = "/v1"
token = "shippo_test_mock"
# tokens = ["shippo_test_other"]
owner = "mock@shippoctl.local"
cors_origins = ["http://localhost:3000"]
`
