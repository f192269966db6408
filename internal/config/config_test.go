package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
app:
  name: "rentadmin-test"
store:
  base_url: "http://localhost:9000"
ui:
  currency_glyph: "$"
`
	require.NoError(t, os.WriteFile(configPath, []byte(yamlContent), 0o644))

	cfg, err := Load(configPath)
	require.NoError(t, err)

	assert.Equal(t, "rentadmin-test", cfg.App.Name)
	assert.Equal(t, "http://localhost:9000", cfg.Store.BaseURL)
	assert.Equal(t, "$", cfg.UI.CurrencyGlyph)

	// Defaults fill in everything the file left out.
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 10, cfg.Store.TimeoutSeconds)
	assert.Equal(t, "x-api-key", cfg.Server.Auth.HeaderAPIKey)
	assert.Equal(t, "Rental Admin", cfg.UI.Title)
	assert.True(t, cfg.ConfirmDeletes())
}

func TestLoadConfigExpandsEnv(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	t.Setenv("RENTADMIN_STORE_URL", "http://store.internal:8000")

	yamlContent := `
store:
  base_url: "${RENTADMIN_STORE_URL}"
`
	require.NoError(t, os.WriteFile(configPath, []byte(yamlContent), 0o644))

	cfg, err := Load(configPath)
	require.NoError(t, err)
	assert.Equal(t, "http://store.internal:8000", cfg.Store.BaseURL)
}

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{
			name:    "valid config",
			cfg:     Config{Store: StoreConfig{BaseURL: "http://localhost:8000"}},
			wantErr: false,
		},
		{
			name:    "missing store url",
			cfg:     Config{},
			wantErr: true,
		},
		{
			name:    "malformed store url",
			cfg:     Config{Store: StoreConfig{BaseURL: "::not-a-url"}},
			wantErr: true,
		},
		{
			name: "auth enabled without keys",
			cfg: Config{
				Store:  StoreConfig{BaseURL: "http://localhost:8000"},
				Server: ServerConfig{Auth: AuthConfig{Enabled: true}},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestConfirmDeletes(t *testing.T) {
	var cfg Config
	assert.True(t, cfg.ConfirmDeletes(), "unset defaults to confirm")

	off := false
	cfg.UI.ConfirmDestructiveActions = &off
	assert.False(t, cfg.ConfirmDeletes())

	on := true
	cfg.UI.ConfirmDestructiveActions = &on
	assert.True(t, cfg.ConfirmDeletes())
}
