package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	mgrerrors "dhi-migrate/pkg/domain/errors"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, 8000, cfg.PortOffset)
	assert.Equal(t, "docker/dhi-static:20241121", cfg.StaticRuntimeImage)
	require.NotEmpty(t, cfg.Languages)
	assert.Equal(t, LanguageMapping{Match: "node", Language: "javascript"}, cfg.Languages[0])
}

func TestLoadOverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := []byte("portOffset: 9000\nstaticRuntimeImage: org/static:1\n")
	require.NoError(t, os.WriteFile(path, data, 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.PortOffset)
	assert.Equal(t, "org/static:1", cfg.StaticRuntimeImage)
	// Unset fields keep their defaults.
	assert.Equal(t, Default().Languages, cfg.Languages)
}

func TestLoadLanguageTableOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := []byte("languages:\n  - match: distroless\n    language: generic\n")
	require.NoError(t, os.WriteFile(path, data, 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []LanguageMapping{{Match: "distroless", Language: "generic"}}, cfg.Languages)
}

func TestLoadNotFound(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.True(t, mgrerrors.IsCode(err, mgrerrors.CodeFileNotFound))
}

func TestLoadInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("portOffset: [not a number\n"), 0644))

	_, err := Load(path)
	require.Error(t, err)
	assert.True(t, mgrerrors.IsCode(err, mgrerrors.CodeConfigurationInvalid))
}

func TestLoadUnknownFieldRejected(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("portOfset: 9000\n"), 0644))

	_, err := Load(path)
	require.Error(t, err)
	assert.True(t, mgrerrors.IsCode(err, mgrerrors.CodeConfigurationInvalid))
}
