package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chdirTemp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "xdg"))
	return dir
}

func TestLoad_Defaults(t *testing.T) {
	chdirTemp(t)

	v, err := New("")
	require.NoError(t, err)
	cfg, err := Load(v)
	require.NoError(t, err)

	assert.Equal(t, Default(), cfg)
}

func TestLoad_FileAndEnv(t *testing.T) {
	dir := chdirTemp(t)
	content := `
story: tales/
start: prologue
messages:
  ended: "Fin."
http:
  addr: ":9000"
mcp:
  transport: sse
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "lotka.yaml"), []byte(content), 0o644))
	t.Setenv("LOTKA_HTTP_ADDR", ":9100")
	t.Setenv("LOTKA_REDIS_DB", "3")
	t.Setenv("LOTKA_DEBUG", "true")
	t.Setenv("LOTKA_HTTP_SESSION_TTL", "5m")

	v, err := New("")
	require.NoError(t, err)
	cfg, err := Load(v)
	require.NoError(t, err)

	assert.Equal(t, "tales/", cfg.Story)
	assert.Equal(t, "prologue", cfg.Start)
	assert.Equal(t, "Fin.", cfg.Messages.Ended)
	assert.Equal(t, ":9100", cfg.HTTP.Addr)
	assert.Equal(t, 3, cfg.Redis.DB)
	assert.True(t, cfg.Debug)
	assert.Equal(t, "sse", cfg.MCP.Transport)
	assert.Equal(t, 8081, cfg.MCP.Port)
	assert.Equal(t, 5*time.Minute, cfg.HTTP.SessionTTL)
}

func TestNew_ExplicitFileMissing(t *testing.T) {
	chdirTemp(t)

	_, err := New("does-not-exist.yaml")
	assert.Error(t, err)
}

func TestLoad_Invalid(t *testing.T) {
	chdirTemp(t)
	t.Setenv("LOTKA_FORMAT", "xml")
	t.Setenv("LOTKA_MCP_PORT", "0")

	v, err := New("")
	require.NoError(t, err)
	_, err = Load(v)

	var verrs ValidationErrors
	require.ErrorAs(t, err, &verrs)
	require.Len(t, verrs, 2)
	assert.Equal(t, "format", verrs[0].Field)
	assert.Equal(t, "mcp.port", verrs[1].Field)
	assert.Contains(t, err.Error(), "2 validation errors")
}

func TestValidate_NegativeSessionTTL(t *testing.T) {
	cfg := Default()
	cfg.HTTP.SessionTTL = -time.Second

	errs := cfg.Validate()
	require.Len(t, errs, 1)
	assert.Equal(t, "http.session_ttl", errs[0].Field)
}
