package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestViper() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	return v
}

func TestFromViper_Defaults(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "env-key")

	cfg, err := fromViper(newTestViper())
	require.NoError(t, err)

	assert.Equal(t, 8090, cfg.Server.Port)
	assert.Equal(t, 120*time.Second, cfg.Server.WriteTimeout)
	assert.Equal(t, ProviderGemini, cfg.LLM.Provider)
	assert.Equal(t, time.Duration(0), cfg.LLM.Timeout, "no upstream timeout unless configured")
	assert.Equal(t, 10, cfg.LLM.QuizQuestions)
	assert.Equal(t, "env-key", cfg.LLM.Gemini.APIKey)
	assert.Equal(t, StorageFile, cfg.Storage.Backend)
	assert.Equal(t, "edugen", cfg.Storage.KeyPrefix)
}

func TestFromViper_Overrides(t *testing.T) {
	v := newTestViper()
	v.Set("llm.provider", "OLLAMA")
	v.Set("llm.timeout", 45)
	v.Set("storage.backend", "redis")
	v.Set("llm.gemini.api_key", "explicit")

	cfg, err := fromViper(v)
	require.NoError(t, err)

	assert.Equal(t, ProviderOllama, cfg.LLM.Provider)
	assert.Equal(t, 45*time.Second, cfg.LLM.Timeout)
	assert.Equal(t, StorageRedis, cfg.Storage.Backend)
	assert.Equal(t, "explicit", cfg.LLM.Gemini.APIKey)
}

func TestFromViper_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		value   interface{}
		errText string
	}{
		{"provider", "llm.provider", "claude", "unsupported llm.provider"},
		{"backend", "storage.backend", "localstorage", "unsupported storage.backend"},
		{"quiz questions", "llm.quiz_questions", 0, "llm.quiz_questions"},
		{"timeout", "llm.timeout", -1, "llm.timeout"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := newTestViper()
			v.Set(tt.key, tt.value)
			_, err := fromViper(v)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errText)
		})
	}
}

func TestGetDSN(t *testing.T) {
	cfg := &Config{DB: DBConfig{Host: "db", Port: 1521, User: "edu", Password: "secret", DBName: "XEPDB1"}}
	assert.Equal(t, "oracle://edu:secret@db:1521/XEPDB1", cfg.GetDSN())
}
