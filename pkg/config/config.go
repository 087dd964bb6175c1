// Package config holds the tunable knobs of the migration engine: the
// language detection table, the privileged-port offset, and the static
// runtime image used for compiled Go binaries. All of them have compiled-in
// defaults; a YAML file can override any subset.
package config

import (
	"fmt"
	"os"

	"sigs.k8s.io/yaml"

	mgrerrors "dhi-migrate/pkg/domain/errors"
)

// LanguageMapping maps a base-image substring to a detected language.
// Order matters: the first matching entry wins.
type LanguageMapping struct {
	Match    string `json:"match"`
	Language string `json:"language"`
}

// Config controls the migration engine behavior.
type Config struct {
	// PortOffset is added to privileged ports (< 1024) when remapping.
	PortOffset int `json:"portOffset,omitempty"`
	// StaticRuntimeImage is the runtime image forced for compiled Go builds.
	StaticRuntimeImage string `json:"staticRuntimeImage,omitempty"`
	// Languages overrides the base-image language detection table.
	Languages []LanguageMapping `json:"languages,omitempty"`
}

// Default returns the compiled-in configuration.
func Default() *Config {
	return &Config{
		PortOffset:         8000,
		StaticRuntimeImage: "docker/dhi-static:20241121",
		Languages: []LanguageMapping{
			{Match: "node", Language: "javascript"},
			{Match: "python", Language: "python"},
			{Match: "golang", Language: "go"},
			{Match: "openjdk", Language: "java"},
			{Match: "nginx", Language: "web"},
			{Match: "alpine", Language: "generic"},
		},
	}
}

// Load reads a YAML config file and overlays it on the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, mgrerrors.New(mgrerrors.CodeFileNotFound, "config",
				fmt.Sprintf("config file not found: %s", path), err)
		}
		return nil, mgrerrors.New(mgrerrors.CodeIoError, "config",
			fmt.Sprintf("reading config file %q", path), err)
	}

	overlay := &Config{}
	if err := yaml.UnmarshalStrict(data, overlay); err != nil {
		return nil, mgrerrors.New(mgrerrors.CodeConfigurationInvalid, "config",
			fmt.Sprintf("parsing config file %q", path), err)
	}

	cfg := Default()
	if overlay.PortOffset != 0 {
		cfg.PortOffset = overlay.PortOffset
	}
	if overlay.StaticRuntimeImage != "" {
		cfg.StaticRuntimeImage = overlay.StaticRuntimeImage
	}
	if len(overlay.Languages) > 0 {
		cfg.Languages = overlay.Languages
	}
	return cfg, nil
}
