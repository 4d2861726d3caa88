package commands

import (
	"bytes"
	"crypto/rand"
	"encoding/hex"
	"fmt"

	"github.com/creachadair/atomicfile"
	"github.com/spf13/cobra"

	cfg "github.com/windvane/windvane/config"
	wvos "github.com/windvane/windvane/libs/os"
)

// InitFilesCmd initialises a fresh windvane home directory.
var InitFilesCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a windvane home directory",
	RunE:  initFiles,
}

// seedSize is the entropy written to fresh seed files. Anything in the
// accepted keychain range works; we always generate the maximum the
// derivation path benefits from.
const seedSize = 32

func initFiles(cmd *cobra.Command, args []string) error {
	return initFilesWithConfig(config)
}

func initFilesWithConfig(config *cfg.Config) error {
	seedFile := config.SeedFile()
	if wvos.FileExists(seedFile) {
		logger.Info("Found seed file", "path", seedFile)
	} else {
		seed := make([]byte, seedSize)
		if _, err := rand.Read(seed); err != nil {
			return fmt.Errorf("generating seed: %w", err)
		}
		encoded := make([]byte, hex.EncodedLen(len(seed)))
		hex.Encode(encoded, seed)
		encoded = append(encoded, '\n')
		if _, err := atomicfile.WriteAll(seedFile, bytes.NewReader(encoded), 0600); err != nil {
			return fmt.Errorf("writing seed file: %w", err)
		}
		logger.Info("Generated seed file", "path", seedFile)
	}

	configFile := cfg.ConfigFilePath(config.RootDir)
	if wvos.FileExists(configFile) {
		logger.Info("Found config file", "path", configFile)
	} else {
		if err := cfg.WriteConfigFile(config.RootDir, config); err != nil {
			return fmt.Errorf("writing config file: %w", err)
		}
		logger.Info("Generated config file", "path", configFile)
	}

	return nil
}
