package main

import (
	"testing"
	"time"

	"github.com/Seednode/quizbox/trivia"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseConfig(t *testing.T, args ...string) *Config {
	t.Helper()

	cfg := &Config{}
	cmd := newCmd(cfg)
	require.NoError(t, cmd.Flags().Parse(args))

	return cfg
}

func TestDefaultsMatchGameSettings(t *testing.T) {
	cfg := parseConfig(t)

	require.NoError(t, cfg.validate())
	assert.Equal(t, trivia.DefaultSettings(), cfg.settings())
	assert.Equal(t, "http", cfg.scheme())
	assert.Equal(t, 8080, cfg.port)
}

func TestFlagsOverrideSettings(t *testing.T) {
	cfg := parseConfig(t,
		"--question-time", "20",
		"--question-count", "5",
		"--start-delay", "1s",
		"--max-players", "0",
		"--reconnect-grace", "0s",
		"--rate-limit", "2.5",
	)

	require.NoError(t, cfg.validate())

	s := cfg.settings()
	assert.Equal(t, 20, s.QuestionTime)
	assert.Equal(t, 5, s.QuestionCount)
	assert.Equal(t, time.Second, s.StartDelay)
	assert.Zero(t, s.MaxPlayers)
	assert.Zero(t, s.ReconnectGrace)
	assert.Equal(t, 2.5, s.MessageRate)
}

func TestEnvironmentOverridesDefaults(t *testing.T) {
	t.Setenv("QUIZBOX_QUESTION_TIME", "45")
	t.Setenv("QUIZBOX_SESSION_TIMEOUT", "5m")
	t.Setenv("QUIZBOX_VERBOSE", "true")

	cfg := parseConfig(t)

	assert.Equal(t, 45, cfg.questionTime)
	assert.Equal(t, 5*time.Minute, cfg.sessionTimeout)
	assert.True(t, cfg.verbose)
}

func TestFlagsWinOverEnvironment(t *testing.T) {
	t.Setenv("QUIZBOX_PORT", "9000")

	cfg := parseConfig(t, "--port", "9100")

	assert.Equal(t, 9100, cfg.port)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{name: "tls cert without key", args: []string{"--tls-cert", "cert.pem"}},
		{name: "port out of range", args: []string{"--port", "70000"}},
		{name: "zero question time", args: []string{"--question-time", "0"}},
		{name: "zero question count", args: []string{"--question-count", "0"}},
		{name: "single player games", args: []string{"--min-players", "1"}},
		{name: "max below min", args: []string{"--min-players", "4", "--max-players", "3"}},
		{name: "negative delay", args: []string{"--question-delay=-1s"}},
		{name: "negative score", args: []string{"--base-score=-5"}},
		{name: "bonus floor beyond question time", args: []string{"--question-time", "10", "--bonus-floor", "11"}},
		{name: "negative rate", args: []string{"--rate-limit=-1"}},
		{name: "zero burst", args: []string{"--rate-burst", "0"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := parseConfig(t, tt.args...)

			assert.Error(t, cfg.validate())
		})
	}
}

func TestTLSScheme(t *testing.T) {
	cfg := parseConfig(t, "--tls-cert", "cert.pem", "--tls-key", "key.pem")

	require.NoError(t, cfg.validate())
	assert.Equal(t, "https", cfg.scheme())
}
