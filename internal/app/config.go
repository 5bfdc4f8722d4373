package app

import (
	"errors"
	"os"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/memetcircus/whisper-core/internal/policy"
)

// Config holds runtime wiring options for building the app.
type Config struct {
	Home       string // config directory, e.g. $HOME/.whisper
	Passphrase string // protects identity key material at rest
	Policy     policy.Config
	Logger     zerolog.Logger
}

// fileConfig is the YAML shape of the optional config file.
type fileConfig struct {
	Policy policy.Config `yaml:"policy"`
}

// LoadPolicyFile reads the policy booleans from a YAML file. A missing file
// yields the zero configuration (every policy off).
func LoadPolicyFile(path string) (policy.Config, error) {
	b, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return policy.Config{}, nil
	}
	if err != nil {
		return policy.Config{}, err
	}
	var fc fileConfig
	if err := yaml.Unmarshal(b, &fc); err != nil {
		return policy.Config{}, err
	}
	return fc.Policy, nil
}
