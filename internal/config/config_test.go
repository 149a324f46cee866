package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.Store.Driver)
	assert.Equal(t, "leadgen.db", cfg.Store.Path)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, 10, cfg.Pipeline.MaxSeeds)
	assert.Equal(t, 25, cfg.Pipeline.MaxCompanies)
	assert.Equal(t, time.Second, cfg.Pipeline.SearchInterval())
	assert.Equal(t, 500*time.Millisecond, cfg.Pipeline.LookupInterval())
	assert.True(t, cfg.Anthropic.CachePrompt)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("LEADGEN_SERPER_KEY", "env-serper-key")
	t.Setenv("LEADGEN_STORE_DRIVER", "postgres")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "env-serper-key", cfg.Serper.Key)
	assert.Equal(t, "postgres", cfg.Store.Driver)
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		return &Config{
			Store:     StoreConfig{Driver: "sqlite"},
			Serper:    SerperConfig{Key: "sk"},
			Anthropic: AnthropicConfig{Key: "ak"},
		}
	}

	assert.NoError(t, base().Validate())

	c := base()
	c.Serper.Key = ""
	assert.ErrorContains(t, c.Validate(), "serper.key")

	c = base()
	c.Anthropic.Key = ""
	assert.ErrorContains(t, c.Validate(), "anthropic.key")

	c = base()
	c.Store.Driver = "mysql"
	assert.ErrorContains(t, c.Validate(), "unknown store driver")

	c = base()
	c.Store.Driver = "postgres"
	assert.ErrorContains(t, c.Validate(), "database_url")

	c.Store.DatabaseURL = "postgres://localhost/leadgen"
	assert.NoError(t, c.Validate())
}
