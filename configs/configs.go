package configs

import (
	_ "embed"
	"errors"
	"fmt"

	"codeberg.org/iklabib/metriccull/rlimit"
	"github.com/elastic/go-seccomp-bpf"
	"github.com/elastic/go-ucfg"
	"github.com/elastic/go-ucfg/yaml"
)

// the zero seccomp action kills the process
var ErrNoDefaultAction = errors.New("seccomp syscalls need an explicit default_action")

//go:embed default.yml
var defaultProfile []byte

// Sandbox is the set of restrictions the analyser puts on itself.
type Sandbox struct {
	// failures are fatal instead of logged
	Mandatory bool            `config:"mandatory" json:"mandatory" yaml:"mandatory"`
	User      string          `config:"user" json:"user" yaml:"user"` // only used when started as root
	Rlimits   []rlimit.Rlimit `config:"rlimits" json:"rlimits" yaml:"rlimits"`
	Files     []string        `config:"files" json:"files" yaml:"files"` // f or d:rwxc:/path
	Seccomp   seccomp.Policy  `config:"seccomp" json:"seccomp" yaml:"seccomp"`
}

func Default() (Sandbox, error) {
	cfg, err := yaml.NewConfig(defaultProfile)
	if err != nil {
		return Sandbox{}, fmt.Errorf("default sandbox profile: %w", err)
	}

	return unpack(cfg)
}

// LoadConfig reads a profile from path. It replaces the default profile
// entirely, fields it leaves out are empty.
func LoadConfig(path string) (Sandbox, error) {
	if path == "" {
		return Default()
	}

	cfg, err := yaml.NewConfigWithFile(path)
	if err != nil {
		return Sandbox{}, fmt.Errorf("failed to load sandbox profile %s: %w", path, err)
	}

	return unpack(cfg)
}

func unpack(cfg *ucfg.Config) (Sandbox, error) {
	if cfg.HasField("seccomp") {
		policy, err := cfg.Child("seccomp", -1)
		if err != nil {
			return Sandbox{}, fmt.Errorf("invalid sandbox profile: %w", err)
		}
		if policy.HasField("syscalls") && !policy.HasField("default_action") {
			return Sandbox{}, fmt.Errorf("invalid sandbox profile: %w", ErrNoDefaultAction)
		}
	}

	var sandbox Sandbox
	if err := cfg.Unpack(&sandbox); err != nil {
		return Sandbox{}, fmt.Errorf("invalid sandbox profile: %w", err)
	}

	for _, rl := range sandbox.Rlimits {
		if err := rl.Validate(); err != nil {
			return Sandbox{}, fmt.Errorf("invalid sandbox profile: %w", err)
		}
	}

	return sandbox, nil
}
