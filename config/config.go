package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"time"
)

const (
	// LogFormatPlain is a format for colored text
	LogFormatPlain = "plain"
	// LogFormatJSON is a format for json output
	LogFormatJSON = "json"
)

// NOTE: Most of the structs & relevant comments + the
// default configuration options were used to manually
// generate the config.toml. Please reflect any changes
// made here in the defaultConfigTemplate constant in
// config/toml.go
var (
	// DefaultWindvaneDir is the home directory under $HOME unless overridden.
	DefaultWindvaneDir = ".windvane"

	defaultConfigDir = "config"
	defaultDataDir   = "data"

	defaultConfigFileName = "config.toml"
	defaultSeedName       = "seed.hex"

	defaultConfigFilePath = filepath.Join(defaultConfigDir, defaultConfigFileName)
	defaultSeedPath       = filepath.Join(defaultConfigDir, defaultSeedName)
)

// Config defines the top level configuration for a windvane client.
type Config struct {
	// Top level options use an anonymous struct
	BaseConfig `mapstructure:",squash"`

	Federation      *FederationConfig      `mapstructure:"federation"`
	Sync            *SyncConfig            `mapstructure:"sync"`
	Attestation     *AttestationConfig     `mapstructure:"attestation"`
	Instrumentation *InstrumentationConfig `mapstructure:"instrumentation"`
}

// DefaultConfig returns a default configuration for a windvane client.
func DefaultConfig() *Config {
	return &Config{
		BaseConfig:      DefaultBaseConfig(),
		Federation:      DefaultFederationConfig(),
		Sync:            DefaultSyncConfig(),
		Attestation:     DefaultAttestationConfig(),
		Instrumentation: DefaultInstrumentationConfig(),
	}
}

// TestConfig returns a configuration that can be used for testing.
func TestConfig() *Config {
	return &Config{
		BaseConfig:      TestBaseConfig(),
		Federation:      TestFederationConfig(),
		Sync:            DefaultSyncConfig(),
		Attestation:     DefaultAttestationConfig(),
		Instrumentation: DefaultInstrumentationConfig(),
	}
}

// SetRoot sets the RootDir for all Config structs.
func (cfg *Config) SetRoot(root string) *Config {
	cfg.BaseConfig.RootDir = root
	return cfg
}

// ValidateBasic performs basic validation (checking param bounds, etc.) and
// returns an error if any check fails.
func (cfg *Config) ValidateBasic() error {
	if err := cfg.BaseConfig.ValidateBasic(); err != nil {
		return err
	}
	if err := cfg.Federation.ValidateBasic(); err != nil {
		return fmt.Errorf("error in [federation] section: %w", err)
	}
	if err := cfg.Sync.ValidateBasic(); err != nil {
		return fmt.Errorf("error in [sync] section: %w", err)
	}
	if err := cfg.Instrumentation.ValidateBasic(); err != nil {
		return fmt.Errorf("error in [instrumentation] section: %w", err)
	}
	return nil
}

//-----------------------------------------------------------------------------
// BaseConfig

// BaseConfig defines the base configuration for a windvane client.
type BaseConfig struct {
	// The root directory for all data.
	// This should be set in viper so it can unmarshal into this struct
	RootDir string `mapstructure:"home"`

	// Database backend: goleveldb | cleveldb | boltdb | rocksdb | badgerdb
	DBBackend string `mapstructure:"db_backend"`

	// Database directory
	DBPath string `mapstructure:"db_dir"`

	// Path to the hex-encoded seed the keychain derives every keypair from
	Seed string `mapstructure:"seed_file"`

	// Output level for logging
	LogLevel string `mapstructure:"log_level"`

	// Output format: 'plain' (colored text) or 'json'
	LogFormat string `mapstructure:"log_format"`
}

// DefaultBaseConfig returns a default base configuration for a windvane
// client.
func DefaultBaseConfig() BaseConfig {
	return BaseConfig{
		DBBackend: "goleveldb",
		DBPath:    defaultDataDir,
		Seed:      defaultSeedPath,
		LogLevel:  "info",
		LogFormat: LogFormatPlain,
	}
}

// TestBaseConfig returns a base configuration for testing a windvane client.
func TestBaseConfig() BaseConfig {
	cfg := DefaultBaseConfig()
	cfg.DBBackend = "memdb"
	return cfg
}

// SeedFile returns the full path to the keychain seed.
func (cfg BaseConfig) SeedFile() string {
	return rootify(cfg.Seed, cfg.RootDir)
}

// DBDir returns the full path to the database directory.
func (cfg BaseConfig) DBDir() string {
	return rootify(cfg.DBPath, cfg.RootDir)
}

// ValidateBasic performs basic validation (checking param bounds, etc.) and
// returns an error if any check fails.
func (cfg BaseConfig) ValidateBasic() error {
	switch cfg.LogFormat {
	case LogFormatPlain, LogFormatJSON:
	default:
		return errors.New("unknown log format (must be 'plain' or 'json')")
	}
	if cfg.Seed == "" {
		return errors.New("seed_file cannot be empty")
	}
	return nil
}

//-----------------------------------------------------------------------------
// FederationConfig

// FederationConfig defines how to reach the federation guardian.
type FederationConfig struct {
	// Address of the guardian JSON-RPC endpoint
	Address string `mapstructure:"address"`

	// How long a single request may take. 0 means no timeout.
	Timeout time.Duration `mapstructure:"timeout"`

	// Delay between finality polls of a submitted transaction
	PollInterval time.Duration `mapstructure:"poll_interval"`
}

// DefaultFederationConfig returns a default federation configuration.
func DefaultFederationConfig() *FederationConfig {
	return &FederationConfig{
		Address:      "http://127.0.0.1:26657",
		Timeout:      10 * time.Second,
		PollInterval: time.Second,
	}
}

// TestFederationConfig returns a federation configuration for testing.
func TestFederationConfig() *FederationConfig {
	cfg := DefaultFederationConfig()
	cfg.Address = "http://127.0.0.1:36657"
	cfg.PollInterval = 10 * time.Millisecond
	return cfg
}

// ValidateBasic performs basic validation (checking param bounds, etc.) and
// returns an error if any check fails.
func (cfg *FederationConfig) ValidateBasic() error {
	if cfg.Address == "" {
		return errors.New("address cannot be empty")
	}
	if cfg.Timeout < 0 {
		return errors.New("timeout cannot be negative")
	}
	if cfg.PollInterval <= 0 {
		return errors.New("poll_interval must be positive")
	}
	return nil
}

//-----------------------------------------------------------------------------
// SyncConfig

// SyncConfig tunes order reconciliation and recovery.
type SyncConfig struct {
	// Number of orders fetched concurrently during a sync
	Concurrency int `mapstructure:"concurrency"`

	// Consecutive unknown order ids before a recovery scan stops
	RecoveryGap int `mapstructure:"recovery_gap"`
}

// DefaultSyncConfig returns a default sync configuration.
func DefaultSyncConfig() *SyncConfig {
	return &SyncConfig{
		Concurrency: 16,
		RecoveryGap: 25,
	}
}

// ValidateBasic performs basic validation (checking param bounds, etc.) and
// returns an error if any check fails.
func (cfg *SyncConfig) ValidateBasic() error {
	if cfg.Concurrency <= 0 {
		return errors.New("concurrency must be positive")
	}
	if cfg.RecoveryGap <= 0 {
		return errors.New("recovery_gap must be positive")
	}
	return nil
}

//-----------------------------------------------------------------------------
// AttestationConfig

// AttestationConfig defines where payout attestations are read from.
type AttestationConfig struct {
	// Path to a JSON file of signed attestation events. Relative paths are
	// rooted at the home directory. Empty disables payout aggregation.
	EventsFile string `mapstructure:"events_file"`
}

// DefaultAttestationConfig returns a default attestation configuration.
func DefaultAttestationConfig() *AttestationConfig {
	return &AttestationConfig{}
}

// EventsFilePath returns the full path to the attestation events file, or ""
// when none is configured.
func (cfg *AttestationConfig) EventsFilePath(rootDir string) string {
	if cfg.EventsFile == "" {
		return ""
	}
	return rootify(cfg.EventsFile, rootDir)
}

//-----------------------------------------------------------------------------
// InstrumentationConfig

// InstrumentationConfig defines the configuration for metrics reporting.
type InstrumentationConfig struct {
	// When true, Prometheus metrics are collected under Namespace.
	Prometheus bool `mapstructure:"prometheus"`

	// Instrumentation namespace.
	Namespace string `mapstructure:"namespace"`
}

// DefaultInstrumentationConfig returns a default configuration for metrics
// reporting.
func DefaultInstrumentationConfig() *InstrumentationConfig {
	return &InstrumentationConfig{
		Prometheus: false,
		Namespace:  "windvane",
	}
}

// ValidateBasic performs basic validation (checking param bounds, etc.) and
// returns an error if any check fails.
func (cfg *InstrumentationConfig) ValidateBasic() error {
	if cfg.Prometheus && cfg.Namespace == "" {
		return errors.New("namespace cannot be empty")
	}
	return nil
}

//-----------------------------------------------------------------------------
// Utils

// helper function to make config creation independent of root dir
func rootify(path, root string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(root, path)
}
