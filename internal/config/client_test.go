package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadClient_Defaults(t *testing.T) {
	unsetForTest(t, "FLOWBOARD_API", "FLOWBOARD_EMAIL", "FLOWBOARD_PASSWORD", "FLOWBOARD_INTERVAL")

	cfg, err := LoadClient()
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:4000/api", cfg.APIURL)
	assert.Equal(t, 5*time.Second, cfg.Interval)
	assert.Empty(t, cfg.Email)
	assert.Error(t, cfg.Validate(), "credentials are required")
}

func TestLoadClient_Overrides(t *testing.T) {
	t.Setenv("FLOWBOARD_API", "https://boards.example.com/api/")
	t.Setenv("FLOWBOARD_EMAIL", " alice@example.com ")
	t.Setenv("FLOWBOARD_PASSWORD", "pw")
	t.Setenv("FLOWBOARD_INTERVAL", "30s")

	cfg, err := LoadClient()
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "https://boards.example.com/api", cfg.APIURL)
	assert.Equal(t, "alice@example.com", cfg.Email)
	assert.Equal(t, 30*time.Second, cfg.Interval)
}

func TestClientConfig_RejectsBadInterval(t *testing.T) {
	cfg := ClientConfig{APIURL: "http://localhost:4000/api", Email: "a@example.com", Password: "pw", Interval: 0}
	assert.Error(t, cfg.Validate())
}
