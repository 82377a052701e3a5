package providers

import (
	"grailhunter/internal/structures"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

const minimalConfig = `
webServer:
  host: 127.0.0.1
  port: 9090
persistence:
  filePath: /tmp/grailhunter-usage.dat
  saveInterval: 30s
logger:
  level: debug
  mode: 0644
  dir: /tmp
rateLimit:
  endpoints:
    /api/scan: 5
security:
  allowedOrigins:
    - https://grailhunter.app
`

func TestNewConfigProvider_LoadsFileAndDefaults(t *testing.T) {
	path := writeConfig(t, minimalConfig)

	conf, err := NewConfigProvider(&structures.CliFlags{ConfigPath: path, DebugMode: true})
	require.NoError(t, err)

	assert.Equal(t, AppName, conf.AppName)
	assert.True(t, conf.Debug)
	assert.Equal(t, path, conf.Path)
	assert.Equal(t, "127.0.0.1", conf.WebServer.Host)
	assert.Equal(t, 9090, conf.WebServer.Port)
	assert.Equal(t, 30*time.Second, conf.Persistence.SaveInterval)
	assert.Equal(t, 5, conf.RateLimit.Endpoints["/api/scan"])
	assert.Equal(t, []string{"https://grailhunter.app"}, conf.Security.AllowedOrigins)

	assert.Equal(t, 60*time.Second, conf.RateLimit.Window)
	assert.Equal(t, 1000, conf.RateLimit.SweepThreshold)
	assert.Equal(t, 30, conf.RateLimit.Default)
	assert.Equal(t, 45*time.Second, conf.GenAI.Timeout)
	assert.Equal(t, int32(-1), conf.GenAI.ThinkingBudget)
}

func TestNewConfigProvider_EnvOverrides(t *testing.T) {
	path := writeConfig(t, minimalConfig)
	t.Setenv("GEMINI_API_KEY", "test-key")
	t.Setenv("GRAIL_RATE_DEFAULT", "12")
	t.Setenv("GRAIL_LOG_LEVEL", "warn")

	conf, err := NewConfigProvider(&structures.CliFlags{ConfigPath: path})
	require.NoError(t, err)

	assert.Equal(t, "test-key", conf.GenAI.ApiKey)
	assert.Equal(t, 12, conf.RateLimit.Default)
	assert.Equal(t, "warn", conf.Logger.Level)
}

func TestNewConfigProvider_MissingFile(t *testing.T) {
	_, err := NewConfigProvider(&structures.CliFlags{ConfigPath: filepath.Join(t.TempDir(), "absent.yaml")})
	assert.Error(t, err)
}

func TestNewConfigProvider_InvalidConfig(t *testing.T) {
	path := writeConfig(t, `
webServer:
  host: 127.0.0.1
  port: 9090
persistence:
  filePath: /tmp/usage.dat
  saveInterval: 30s
logger:
  level: shout
  dir: /tmp
`)
	_, err := NewConfigProvider(&structures.CliFlags{ConfigPath: path})
	assert.Error(t, err)
}
