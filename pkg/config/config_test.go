package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	viper.Reset()
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format)

	assert.Contains(t, cfg.Keywords.WebProducts, "apache")
	assert.Contains(t, cfg.Keywords.VulnClasses, "sql injection")
	assert.Contains(t, cfg.Keywords.GatedVulnClasses, "remote code execution")
	assert.Contains(t, cfg.Keywords.WebCWEs, "CWE-79")
	assert.NotEmpty(t, cfg.Keywords.WebHints)
}

func TestLoadFileOverridesKeywords(t *testing.T) {
	viper.Reset()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(
		"keywords:\n  webProducts:\n    - customserver\nlogging:\n  level: debug\n"), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"customserver"}, cfg.Keywords.WebProducts)
	assert.Equal(t, "debug", cfg.Logging.Level)
	// Untouched sections keep their defaults.
	assert.Contains(t, cfg.Keywords.VulnClasses, "xss")
}
