package main

import (
	"os"
	"path/filepath"

	cmd "github.com/windvane/windvane/cmd/windvane/commands"
	cfg "github.com/windvane/windvane/config"
	"github.com/windvane/windvane/libs/cli"
)

func main() {
	rootCmd := cmd.RootCmd
	rootCmd.AddCommand(
		cmd.InitFilesCmd,
		cmd.ShowPayoutControlCmd,
		cmd.NewMarketCmd,
		cmd.GetMarketCmd,
		cmd.BookmarkMarketCmd,
		cmd.UnbookmarkMarketCmd,
		cmd.ListBookmarksCmd,
		cmd.NamePayoutControlCmd,
		cmd.UnnamePayoutControlCmd,
		cmd.PayoutControlNamesCmd,
		cmd.PayoutControlMarketsCmd,
		cmd.MarketProposalsCmd,
		cmd.ProposePayoutCmd,
		cmd.PayoutMarketCmd,
		cmd.NewOrderCmd,
		cmd.GetOrderCmd,
		cmd.CancelOrderCmd,
		cmd.ListOrdersCmd,
		cmd.SyncOrdersCmd,
		cmd.RecoverOrdersCmd,
		cmd.WithdrawOrdersCmd,
		cmd.WithdrawPayoutControlCmd,
		cmd.CandlesticksCmd,
		cmd.VersionCmd,
	)

	baseCmd := cli.PrepareBaseCmd(rootCmd, "WV",
		os.ExpandEnv(filepath.Join("$HOME", cfg.DefaultWindvaneDir)))
	if err := baseCmd.Execute(); err != nil {
		os.Exit(2)
	}
}
