package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDefaultConfig(t *testing.T) {
	assert := assert.New(t)

	// set up some defaults
	cfg := DefaultConfig()
	assert.NotNil(cfg.Federation)
	assert.NotNil(cfg.Sync)
	assert.NotNil(cfg.Attestation)
	assert.NotNil(cfg.Instrumentation)

	// check the root dir stuff...
	cfg.SetRoot("/foo")
	cfg.Seed = "bar"
	cfg.DBPath = "/opt/data"
	cfg.Attestation.EventsFile = "events.json"

	assert.Equal("/foo/bar", cfg.SeedFile())
	assert.Equal("/opt/data", cfg.DBDir())
	assert.Equal("/foo/events.json", cfg.Attestation.EventsFilePath(cfg.RootDir))

	cfg.Attestation.EventsFile = ""
	assert.Equal("", cfg.Attestation.EventsFilePath(cfg.RootDir))
}

func TestConfigValidateBasic(t *testing.T) {
	cfg := DefaultConfig()
	assert.NoError(t, cfg.ValidateBasic())

	// tamper with poll_interval
	cfg.Federation.PollInterval = -10 * time.Second
	assert.Error(t, cfg.ValidateBasic())
}

func TestBaseConfigValidateBasic(t *testing.T) {
	cfg := TestBaseConfig()
	assert.NoError(t, cfg.ValidateBasic())

	// tamper with log format
	cfg.LogFormat = "invalid"
	assert.Error(t, cfg.ValidateBasic())

	cfg = TestBaseConfig()
	cfg.Seed = ""
	assert.Error(t, cfg.ValidateBasic())
}

func TestFederationConfigValidateBasic(t *testing.T) {
	cfg := TestFederationConfig()
	assert.NoError(t, cfg.ValidateBasic())

	cfg.Address = ""
	assert.Error(t, cfg.ValidateBasic())

	cfg = TestFederationConfig()
	cfg.Timeout = -time.Second
	assert.Error(t, cfg.ValidateBasic())

	cfg = TestFederationConfig()
	cfg.PollInterval = 0
	assert.Error(t, cfg.ValidateBasic())
}

func TestSyncConfigValidateBasic(t *testing.T) {
	cfg := DefaultSyncConfig()
	assert.NoError(t, cfg.ValidateBasic())

	cfg.Concurrency = 0
	assert.Error(t, cfg.ValidateBasic())

	cfg = DefaultSyncConfig()
	cfg.RecoveryGap = -1
	assert.Error(t, cfg.ValidateBasic())
}

func TestInstrumentationConfigValidateBasic(t *testing.T) {
	cfg := DefaultInstrumentationConfig()
	assert.NoError(t, cfg.ValidateBasic())

	// namespace only matters once prometheus is on
	cfg.Namespace = ""
	assert.NoError(t, cfg.ValidateBasic())

	cfg.Prometheus = true
	assert.Error(t, cfg.ValidateBasic())
}
