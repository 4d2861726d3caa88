package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"text/template"

	"github.com/creachadair/atomicfile"

	wvos "github.com/windvane/windvane/libs/os"
)

// defaultDirPerm is the default permissions used when creating directories.
const defaultDirPerm = 0700

var configTemplate *template.Template

func init() {
	var err error
	tmpl := template.New("configFileTemplate")
	if configTemplate, err = tmpl.Parse(defaultConfigTemplate); err != nil {
		panic(err)
	}
}

/****** these are for production settings ***********/

// EnsureRoot creates the root, config, and data directories if they don't exist,
// and panics if it fails.
func EnsureRoot(rootDir string) {
	if err := wvos.EnsureDir(rootDir, defaultDirPerm); err != nil {
		panic(err.Error())
	}
	if err := wvos.EnsureDir(filepath.Join(rootDir, defaultConfigDir), defaultDirPerm); err != nil {
		panic(err.Error())
	}
	if err := wvos.EnsureDir(filepath.Join(rootDir, defaultDataDir), defaultDirPerm); err != nil {
		panic(err.Error())
	}
}

// ConfigFilePath returns the path the config file is written to under
// rootDir.
func ConfigFilePath(rootDir string) string {
	return filepath.Join(rootDir, defaultConfigFilePath)
}

// WriteConfigFile renders config using the template and writes it to
// the config file path under rootDir.
// This function is called by cmd/windvane/commands/init.go
func WriteConfigFile(rootDir string, config *Config) error {
	return config.WriteToTemplate(ConfigFilePath(rootDir))
}

// WriteToTemplate writes the config to the exact file specified by
// the path, in the default toml template and does not mangle the path
// or filename at all.
func (cfg *Config) WriteToTemplate(path string) error {
	var buffer bytes.Buffer

	if err := configTemplate.Execute(&buffer, cfg); err != nil {
		return err
	}

	return writeFile(path, buffer.Bytes(), 0644)
}

func writeFile(filePath string, contents []byte, mode os.FileMode) error {
	if _, err := atomicfile.WriteAll(filePath, bytes.NewReader(contents), mode); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	return nil
}

// Note: any changes to the comments/variables/mapstructure
// must be reflected in the appropriate struct in config/config.go
const defaultConfigTemplate = `# This is a TOML config file.
# For more information, see https://github.com/toml-lang/toml

# NOTE: Any path below can be absolute (e.g. "/var/windvane/data") or
# relative to the home directory (e.g. "data"). The home directory is
# "$HOME/.windvane" by default, but could be changed via $WVHOME env variable
# or --home cmd flag.

#######################################################################
###                   Main Base Config Options                      ###
#######################################################################

# Database backend: goleveldb | cleveldb | boltdb | rocksdb | badgerdb
# * goleveldb (github.com/syndtr/goleveldb - most popular implementation)
#   - pure go
#   - stable
# * cleveldb (uses levigo wrapper)
#   - fast
#   - requires gcc
#   - use cleveldb build tag (go build -tags cleveldb)
# * boltdb (uses etcd's fork of bolt - github.com/etcd-io/bbolt)
#   - EXPERIMENTAL
#   - may be faster is some use-cases (random reads - indexer)
#   - use boltdb build tag (go build -tags boltdb)
# * rocksdb (uses github.com/tecbot/gorocksdb)
#   - EXPERIMENTAL
#   - requires gcc
#   - use rocksdb build tag (go build -tags rocksdb)
# * badgerdb (uses github.com/dgraph-io/badger)
#   - EXPERIMENTAL
#   - use badgerdb build tag (go build -tags badgerdb)
db_backend = "{{ .BaseConfig.DBBackend }}"

# Database directory
db_dir = "{{ .BaseConfig.DBPath }}"

# Path to the hex-encoded seed the keychain derives every keypair from.
# Anyone holding this file controls all orders and balances of this client.
seed_file = "{{ .BaseConfig.Seed }}"

# Output level for logging
log_level = "{{ .BaseConfig.LogLevel }}"

# Output format: 'plain' (colored text) or 'json'
log_format = "{{ .BaseConfig.LogFormat }}"

#######################################################################
###                 Advanced Configuration Options                  ###
#######################################################################

#######################################################
###        Federation Configuration Options         ###
#######################################################
[federation]

# Address of the guardian JSON-RPC endpoint
address = "{{ .Federation.Address }}"

# How long a single request may take. 0 means no timeout.
timeout = "{{ .Federation.Timeout }}"

# Delay between finality polls of a submitted transaction
poll_interval = "{{ .Federation.PollInterval }}"

#######################################################
###           Sync Configuration Options            ###
#######################################################
[sync]

# Number of orders fetched concurrently during a sync
concurrency = {{ .Sync.Concurrency }}

# Consecutive unknown order ids before a recovery scan stops
recovery_gap = {{ .Sync.RecoveryGap }}

#######################################################
###        Attestation Configuration Options        ###
#######################################################
[attestation]

# Path to a JSON file of signed attestation events. Relative paths are
# rooted at the home directory. Empty disables payout aggregation.
events_file = "{{ .Attestation.EventsFile }}"

#######################################################
###       Instrumentation Configuration Options     ###
#######################################################
[instrumentation]

# When true, Prometheus metrics are collected under the namespace below.
prometheus = {{ .Instrumentation.Prometheus }}

# Instrumentation namespace
namespace = "{{ .Instrumentation.Namespace }}"
`
