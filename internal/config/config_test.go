package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/alexanderramin/promptcraft/internal/prompt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultsWhenNoFile(t *testing.T) {
	home := t.TempDir()

	cfg, err := Load(home)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "history.db"), cfg.DBPath)
	assert.Equal(t, filepath.Join(home, "prompts"), cfg.OutputDir)
	assert.Equal(t, filepath.Join(home, "catalogs"), cfg.CatalogDir)
	assert.Equal(t, 50, cfg.HistoryLimit)
	assert.Equal(t, prompt.MissingOmitLine, cfg.MissingPolicy())
	assert.Equal(t, "info", cfg.LogLevel)
	assert.False(t, cfg.CopyWithMetadata)
	assert.Equal(t, home, cfg.HomeDir())
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	home := t.TempDir()
	content := `
output_dir = "/tmp/prompts"
history_limit = 10
missing_answer = "empty"
copy_with_metadata = true
log_file = ""
`
	require.NoError(t, os.WriteFile(filepath.Join(home, "config.toml"), []byte(content), 0o644))

	cfg, err := Load(home)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/prompts", cfg.OutputDir)
	assert.Equal(t, 10, cfg.HistoryLimit)
	assert.Equal(t, prompt.MissingEmpty, cfg.MissingPolicy())
	assert.True(t, cfg.CopyWithMetadata)
	assert.Empty(t, cfg.LogFile)
	assert.Equal(t, filepath.Join(home, "history.db"), cfg.DBPath)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	home := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(home, "config.toml"), []byte("history_limit = 10\n"), 0o644))

	t.Setenv(EnvHistoryLimit, "7")
	t.Setenv(EnvMissing, "empty")
	t.Setenv(EnvDB, "/tmp/other.db")
	t.Setenv(EnvLogLevel, "debug")

	cfg, err := Load(home)
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.HistoryLimit)
	assert.Equal(t, prompt.MissingEmpty, cfg.MissingPolicy())
	assert.Equal(t, "/tmp/other.db", cfg.DBPath)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoad_HomeFromEnv(t *testing.T) {
	home := t.TempDir()
	t.Setenv(EnvHome, home)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "history.db"), cfg.DBPath)
}

func TestLoad_ExpandsTilde(t *testing.T) {
	userHome, err := os.UserHomeDir()
	require.NoError(t, err)
	home := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(home, "config.toml"), []byte(`output_dir = "~/my-prompts"`), 0o644))

	cfg, err := Load(home)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(userHome, "my-prompts"), cfg.OutputDir)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		env     map[string]string
		wantErr string
	}{
		{name: "bad toml", file: "history_limit = [", wantErr: "parsing"},
		{name: "zero limit", file: "history_limit = 0", wantErr: "history_limit must be positive"},
		{name: "bad policy", file: `missing_answer = "drop"`, wantErr: "missing_answer"},
		{name: "bad env limit", env: map[string]string{EnvHistoryLimit: "many"}, wantErr: EnvHistoryLimit},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			home := t.TempDir()
			if tt.file != "" {
				require.NoError(t, os.WriteFile(filepath.Join(home, "config.toml"), []byte(tt.file), 0o644))
			}
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load(home)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestSave_RoundTrip(t *testing.T) {
	home := filepath.Join(t.TempDir(), "nested")
	cfg := Default(home)
	cfg.HistoryLimit = 12
	cfg.CopyWithMetadata = true
	require.NoError(t, cfg.Save())

	loaded, err := Load(home)
	require.NoError(t, err)
	assert.Equal(t, 12, loaded.HistoryLimit)
	assert.True(t, loaded.CopyWithMetadata)
	assert.Equal(t, cfg.OutputDir, loaded.OutputDir)
}
