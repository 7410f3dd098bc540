package config

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isolate(t *testing.T) {
	t.Helper()
	for _, k := range []string{"CHECKLIST_BACKEND", "CHECKLIST_DATA_DIR", "CHECKLIST_LOG_LEVEL", "CHECKLIST_S3_BUCKET", "CHECKLIST_PERSIST_DEBOUNCE"} {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}
	t.Setenv("XDG_DATA_HOME", filepath.Join(t.TempDir(), "data"))
}

func TestLoadWritesDefaultFile(t *testing.T) {
	isolate(t)
	dir := filepath.Join(t.TempDir(), "cfg")

	cfg, err := Load(dir, nil)
	require.NoError(t, err)

	assert.Equal(t, BackendJSON, cfg.Backend)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, time.Duration(0), cfg.Debounce)
	assert.Equal(t, 5*time.Second, cfg.WriteTimeout)
	assert.FileExists(t, filepath.Join(dir, "config.yaml"))
	if runtime.GOOS == "linux" {
		assert.Equal(t, filepath.Join(os.Getenv("XDG_DATA_HOME"), "checklist"), cfg.DataDir)
	}
}

func TestLoadPrecedence(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(`
backend: sqlite
log_level: info
persist:
  debounce: 250ms
s3:
  bucket: from-file
`), 0o644))

	cfg, err := Load(dir, nil)
	require.NoError(t, err)
	assert.Equal(t, BackendSQLite, cfg.Backend)
	assert.Equal(t, 250*time.Millisecond, cfg.Debounce)
	assert.Equal(t, "from-file", cfg.S3.Bucket)

	t.Setenv("CHECKLIST_BACKEND", "memory")
	t.Setenv("CHECKLIST_S3_BUCKET", "from-env")
	cfg, err = Load(dir, nil)
	require.NoError(t, err)
	assert.Equal(t, BackendMemory, cfg.Backend, "env beats file")
	assert.Equal(t, "from-env", cfg.S3.Bucket)

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.String("backend", "", "")
	fs.String("log-level", "", "")
	require.NoError(t, fs.Parse([]string{"--backend", "json"}))
	cfg, err = Load(dir, fs)
	require.NoError(t, err)
	assert.Equal(t, BackendJSON, cfg.Backend, "flag beats env")
	assert.Equal(t, "info", cfg.LogLevel, "unset flags do not override")
}

func TestLoadRejectsBadBackend(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("backend: floppy\n"), 0o644))

	_, err := Load(dir, nil)
	assert.ErrorIs(t, err, ErrUnknownBackend)
}

func TestValidateS3NeedsBucket(t *testing.T) {
	c := &Config{Backend: BackendS3}
	assert.Error(t, c.Validate())
	c.S3.Bucket = "b"
	assert.NoError(t, c.Validate())
}

func TestResolveConfigDir(t *testing.T) {
	tests := []struct {
		name    string
		flag    string
		envVal  string
		wantSub string
	}{
		{name: "flag wins over env", flag: "/explicit/config", envVal: "/env/config", wantSub: "/explicit/config"},
		{name: "env wins when flag empty", envVal: "/env/config", wantSub: "/env/config"},
		{name: "platform default when both empty", wantSub: "checklist"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(EnvConfigDir, tt.envVal)
			got, err := ResolveConfigDir(tt.flag)
			require.NoError(t, err)
			assert.Contains(t, got, tt.wantSub)
		})
	}
}

func TestDefaultDirsLinux(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("linux-only test")
	}
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg-config")
	t.Setenv("XDG_DATA_HOME", "")

	got, err := DefaultConfigDir()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/xdg-config/checklist", got)

	orig := platformDir.homeDir
	t.Cleanup(func() { platformDir.homeDir = orig })
	platformDir.homeDir = func() (string, error) { return "/home/cook", nil }

	got, err = DefaultDataDir()
	require.NoError(t, err)
	assert.Equal(t, "/home/cook/.local/share/checklist", got)
}
