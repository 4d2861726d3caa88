package commands

import (
	"github.com/spf13/cobra"

	"github.com/windvane/windvane/types"
)

// ShowPayoutControlCmd prints the payout control identity derived from the
// seed file, in every encoding the federation and attesters use.
var ShowPayoutControlCmd = &cobra.Command{
	Use:   "show_payout_control",
	Short: "Show this wallet's payout control identity",
	RunE:  showPayoutControl,
}

func showPayoutControl(cmd *cobra.Command, args []string) error {
	keys, err := loadKeychain()
	if err != nil {
		return err
	}

	pub := keys.PayoutControlKeyPair().PublicKey()
	npub, err := types.EncodeNpub(pub.XOnly())
	if err != nil {
		return err
	}

	return printJSON(struct {
		PublicKey string `json:"public_key"`
		Identity  string `json:"identity"`
		Npub      string `json:"npub"`
	}{
		PublicKey: string(pub),
		Identity:  pub.XOnly(),
		Npub:      npub,
	})
}
