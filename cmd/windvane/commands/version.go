package commands

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/windvane/windvane/version"
)

var verbose bool

// VersionCmd ...
var VersionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version info",
	Run: func(cmd *cobra.Command, args []string) {
		if verbose {
			values, _ := json.MarshalIndent(struct {
				Version   string `json:"version"`
				GitCommit string `json:"git_commit"`
			}{
				Version:   version.WindvaneSemVer,
				GitCommit: version.GitCommit,
			}, "", "  ")
			fmt.Println(string(values))
		} else {
			fmt.Println(version.Version)
		}
	},
}

func init() {
	VersionCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Show build details")
}
