package commands

import (
	"github.com/spf13/cobra"
)

// NamePayoutControlCmd assigns a local alias to a payout-control identity.
var NamePayoutControlCmd = &cobra.Command{
	Use:   "name_payout_control [control] [name]",
	Short: "Assign a local name to a payout control",
	Long: `Assign a local name to a payout-control identity. The identity may be
given in x-only hex, npub or compressed-key form; names are local to this
wallet and never leave it.`,
	Args: cobra.ExactArgs(2),
	RunE: namePayoutControl,
}

// UnnamePayoutControlCmd drops a payout-control alias.
var UnnamePayoutControlCmd = &cobra.Command{
	Use:   "unname_payout_control [control]",
	Short: "Remove a payout control's local name",
	Args:  cobra.ExactArgs(1),
	RunE:  unnamePayoutControl,
}

// PayoutControlNamesCmd lists all local payout-control aliases.
var PayoutControlNamesCmd = &cobra.Command{
	Use:   "payout_control_names",
	Short: "List local payout control names",
	Args:  cobra.NoArgs,
	RunE:  payoutControlNames,
}

func namePayoutControl(cmd *cobra.Command, args []string) error {
	c, closer, err := loadClient()
	if err != nil {
		return err
	}
	defer closer()

	return c.NamePayoutControl(args[0], args[1])
}

func unnamePayoutControl(cmd *cobra.Command, args []string) error {
	c, closer, err := loadClient()
	if err != nil {
		return err
	}
	defer closer()

	return c.UnnamePayoutControl(args[0])
}

func payoutControlNames(cmd *cobra.Command, args []string) error {
	c, closer, err := loadClient()
	if err != nil {
		return err
	}
	defer closer()

	names, err := c.PayoutControlNames()
	if err != nil {
		return err
	}
	return printJSON(names)
}
