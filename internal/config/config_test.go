package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/zhubert/scholar/internal/errors"
)

var themes = []string{"scholar-blue", "nord", "light"}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	cfg, err := Load(NewViper(path))
	require.NoError(t, err)

	assert.Equal(t, DefaultTheme, cfg.GetTheme())
	assert.False(t, cfg.GetSidebarCollapsed())
	assert.False(t, cfg.GetNotificationsEnabled())
	assert.Empty(t, cfg.SeedFile)
	assert.Equal(t, AssistantPlaceholder, cfg.Assistant.Mode)
	assert.Equal(t, "Here is a concise answer with references.", cfg.Assistant.Reply)
	assert.Equal(t, ReferenceConfig{Title: "Example Paper on Topic", Author: "Doe et al.", Year: 2023, URL: "https://example.com"}, cfg.Assistant.Reference)
	assert.Equal(t, path, cfg.Path())
	assert.NoError(t, cfg.Validate(themes))
}

func TestLoad_ReadsFile(t *testing.T) {
	path := writeFile(t, t.TempDir(), "config.yaml", `
theme: nord
sidebar_collapsed: true
notifications_enabled: true
seed_file: /tmp/library.yaml
assistant:
  mode: Catalog
  reply: "See these papers."
  reference:
    title: Fallback
    year: 1999
`)

	cfg, err := Load(NewViper(path))
	require.NoError(t, err)

	assert.Equal(t, "nord", cfg.GetTheme())
	assert.True(t, cfg.GetSidebarCollapsed())
	assert.True(t, cfg.GetNotificationsEnabled())
	assert.Equal(t, "/tmp/library.yaml", cfg.SeedFile)
	assert.Equal(t, AssistantCatalog, cfg.Assistant.Mode)
	assert.Equal(t, "See these papers.", cfg.Assistant.Reply)
	assert.Equal(t, "Fallback", cfg.Assistant.Reference.Title)
	assert.Equal(t, 1999, cfg.Assistant.Reference.Year)
	// Unset nested keys keep their defaults.
	assert.Equal(t, "Doe et al.", cfg.Assistant.Reference.Author)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("SCHOLAR_THEME", "light")
	t.Setenv("SCHOLAR_ASSISTANT_MODE", "catalog")

	cfg, err := Load(NewViper(filepath.Join(t.TempDir(), "config.yaml")))
	require.NoError(t, err)

	assert.Equal(t, "light", cfg.GetTheme())
	assert.Equal(t, AssistantCatalog, cfg.Assistant.Mode)
}

func TestLoad_MalformedFile(t *testing.T) {
	path := writeFile(t, t.TempDir(), "config.yaml", "theme: [unclosed\n")

	_, err := Load(NewViper(path))
	require.Error(t, err)
	assert.True(t, pkgerrors.Is(err, pkgerrors.KindConfig))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     *Config
		wantErr bool
	}{
		{"defaults", &Config{Theme: DefaultTheme, Assistant: AssistantConfig{Mode: AssistantPlaceholder}}, false},
		{"empty theme allowed", &Config{}, false},
		{"unknown theme", &Config{Theme: "neon"}, true},
		{"unknown mode", &Config{Theme: "nord", Assistant: AssistantConfig{Mode: "llm"}}, true},
		{"negative year", &Config{Assistant: AssistantConfig{Reference: ReferenceConfig{Year: -1}}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate(themes)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, pkgerrors.Is(err, pkgerrors.KindInvalid))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg, err := Load(NewViper(path))
	require.NoError(t, err)

	cfg.SetTheme("nord")
	cfg.SetNotificationsEnabled(true)
	cfg.SetSidebarCollapsed(true)
	require.NoError(t, cfg.Save())

	reloaded, err := Load(NewViper(path))
	require.NoError(t, err)
	assert.Equal(t, "nord", reloaded.GetTheme())
	assert.True(t, reloaded.GetNotificationsEnabled())
	assert.True(t, reloaded.GetSidebarCollapsed())
	assert.Equal(t, cfg.Assistant, reloaded.Assistant)
}

func TestSave_NoPath(t *testing.T) {
	err := (&Config{}).Save()
	assert.True(t, pkgerrors.Is(err, pkgerrors.KindConfig))
}
