package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "openai", cfg.Model.Provider)
	assert.Equal(t, "gpt-4o-mini", cfg.Model.Name)
	assert.Equal(t, 20, cfg.Model.MaxTurns)
	assert.Equal(t, 10, cfg.Search.LeadCount)
	assert.Equal(t, 2005, cfg.Search.YearThreshold)
	assert.Equal(t, 25, cfg.Search.RadiusMiles)
	assert.Equal(t, "output", cfg.Output.Dir)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("MODEL_PROVIDER", "dummy")
	t.Setenv("MODEL_NAME", "test-model")
	t.Setenv("OUTPUT_DIR", "/tmp/leads")
	t.Setenv("SKIP_TRACE_PROVIDER", "reiskip")
	t.Setenv("REISKIP_API_KEY", "rei-123")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "dummy", cfg.Model.Provider)
	assert.Equal(t, "test-model", cfg.Model.Name)
	assert.Equal(t, "/tmp/leads", cfg.Output.Dir)
	assert.Equal(t, "reiskip", cfg.SkipTrace.Provider)
	assert.Equal(t, "rei-123", cfg.SkipTrace.REISkipKey)
}

func TestValidateProviders(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("OPENAI_KEY", "")
	t.Setenv("ANTHROPIC_API_KEY", "")

	openai := &Config{Model: ModelConfig{Provider: "openai"}}
	assert.Error(t, openai.Validate())

	t.Setenv("OPENAI_API_KEY", "sk-test")
	assert.NoError(t, openai.Validate())

	anthropic := &Config{Model: ModelConfig{Provider: "anthropic"}}
	assert.Error(t, anthropic.Validate())
	t.Setenv("ANTHROPIC_API_KEY", "sk-ant")
	assert.NoError(t, anthropic.Validate())

	// no credentials needed
	assert.NoError(t, (&Config{Model: ModelConfig{Provider: "ollama"}}).Validate())
	assert.NoError(t, (&Config{Model: ModelConfig{Provider: "dummy"}}).Validate())

	assert.Error(t, (&Config{Model: ModelConfig{Provider: "martian"}}).Validate())
}
