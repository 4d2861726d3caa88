package commands

import (
	"github.com/spf13/cobra"
)

var recoverOrdersGap int

func init() {
	RecoverOrdersCmd.Flags().IntVar(&recoverOrdersGap, "gap", 0,
		"stop after this many consecutive unknown ids (0 uses the configured default)")
}

// RecoverOrdersCmd rebuilds the order cache from the seed alone by scanning
// derived order identities against the federation. Used after restoring a
// wallet on a fresh machine.
var RecoverOrdersCmd = &cobra.Command{
	Use:   "recover_orders",
	Short: "Recover orders from the seed",
	Args:  cobra.NoArgs,
	RunE:  recoverOrders,
}

func recoverOrders(cmd *cobra.Command, args []string) error {
	gap := recoverOrdersGap
	if gap == 0 {
		gap = config.Sync.RecoveryGap
	}

	c, closer, err := loadClient()
	if err != nil {
		return err
	}
	defer closer()

	ctx, cancel := commandContext(cmd)
	defer cancel()

	recovered, err := c.RecoverOrders(ctx, gap)
	if err != nil {
		return err
	}
	return printJSON(struct {
		Recovered int `json:"recovered"`
		Gap       int `json:"gap"`
	}{Recovered: recovered, Gap: gap})
}
