package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	cfg "github.com/windvane/windvane/config"
	"github.com/windvane/windvane/libs/log"
)

var (
	config = cfg.DefaultConfig()
	logger = log.NewNopLogger()
)

func init() {
	registerFlagsRootCmd(RootCmd)
}

func registerFlagsRootCmd(cmd *cobra.Command) {
	cmd.PersistentFlags().String("log_level", config.LogLevel, "log level")
	cmd.PersistentFlags().String("log_format", config.LogFormat, "log format (plain|json)")
}

// ParseConfig retrieves the default environment configuration,
// sets up the windvane root and ensures that the root exists.
func ParseConfig() (*cfg.Config, error) {
	conf := cfg.DefaultConfig()
	err := viper.Unmarshal(conf)
	if err != nil {
		return nil, err
	}
	conf.SetRoot(conf.RootDir)
	cfg.EnsureRoot(conf.RootDir)
	if err := conf.ValidateBasic(); err != nil {
		return nil, fmt.Errorf("error in config file: %w", err)
	}
	return conf, nil
}

// RootCmd is the root command for windvane.
var RootCmd = &cobra.Command{
	Use:   "windvane",
	Short: "Prediction market client for a windvane federation",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) (err error) {
		if cmd.Name() == VersionCmd.Name() {
			return nil
		}

		config, err = ParseConfig()
		if err != nil {
			return err
		}

		logger, err = log.NewDefaultLogger(config.LogFormat, config.LogLevel)
		if err != nil {
			return err
		}

		return nil
	},
}
