package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ensureFiles(t *testing.T, rootDir string, files ...string) {
	t.Helper()
	for _, f := range files {
		p := rootify(f, rootDir)
		_, err := os.Stat(p)
		assert.NoError(t, err, p)
	}
}

func TestEnsureRoot(t *testing.T) {
	tmpDir := t.TempDir()

	// create root dir
	EnsureRoot(tmpDir)
	require.NoError(t, WriteConfigFile(tmpDir, DefaultConfig()))

	// make sure config is set properly
	data, err := os.ReadFile(ConfigFilePath(tmpDir))
	require.NoError(t, err)
	checkConfig(t, string(data))

	ensureFiles(t, tmpDir, "data", "config")
}

func checkConfig(t *testing.T, configFile string) {
	t.Helper()

	// list of keys we expect in the written config
	elems := []string{
		"db_backend",
		"db_dir",
		"seed_file",
		"log_level",
		"log_format",
		"[federation]",
		"address",
		"timeout",
		"poll_interval",
		"[sync]",
		"concurrency",
		"recovery_gap",
		"[attestation]",
		"events_file",
		"[instrumentation]",
		"prometheus",
		"namespace",
	}
	for _, e := range elems {
		assert.Contains(t, configFile, e)
	}
}

// The written file must read back into the exact config it was rendered
// from, or the template and the mapstructure tags have drifted apart.
func TestWrittenConfigReadsBack(t *testing.T) {
	tmpDir := t.TempDir()
	EnsureRoot(tmpDir)

	want := DefaultConfig()
	want.DBBackend = "memdb"
	want.Federation.Address = "http://guardian.example:26657"
	want.Federation.Timeout = 3 * time.Second
	want.Federation.PollInterval = 250 * time.Millisecond
	want.Sync.Concurrency = 7
	want.Sync.RecoveryGap = 40
	want.Attestation.EventsFile = "events.json"
	want.Instrumentation.Prometheus = true
	require.NoError(t, WriteConfigFile(tmpDir, want))

	v := viper.New()
	v.SetConfigFile(filepath.Join(tmpDir, defaultConfigFilePath))
	require.NoError(t, v.ReadInConfig())

	got := DefaultConfig()
	require.NoError(t, v.Unmarshal(got))
	require.Equal(t, want, got)
}
