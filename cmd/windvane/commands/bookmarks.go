package commands

import (
	"github.com/spf13/cobra"

	"github.com/windvane/windvane/types"
)

// BookmarkMarketCmd saves a market reference locally so it can be found again
// without remembering the outpoint.
var BookmarkMarketCmd = &cobra.Command{
	Use:   "bookmark_market [market]",
	Short: "Save a market reference locally",
	Args:  cobra.ExactArgs(1),
	RunE:  bookmarkMarket,
}

// UnbookmarkMarketCmd removes a saved market reference.
var UnbookmarkMarketCmd = &cobra.Command{
	Use:   "unbookmark_market [market]",
	Short: "Remove a saved market reference",
	Args:  cobra.ExactArgs(1),
	RunE:  unbookmarkMarket,
}

// ListBookmarksCmd lists the saved market references.
var ListBookmarksCmd = &cobra.Command{
	Use:   "bookmarks",
	Short: "List saved market references",
	Args:  cobra.NoArgs,
	RunE:  listBookmarks,
}

func bookmarkMarket(cmd *cobra.Command, args []string) error {
	ref, err := types.ParseOutPoint(args[0])
	if err != nil {
		return err
	}

	c, closer, err := loadClient()
	if err != nil {
		return err
	}
	defer closer()

	return c.BookmarkMarket(ref)
}

func unbookmarkMarket(cmd *cobra.Command, args []string) error {
	ref, err := types.ParseOutPoint(args[0])
	if err != nil {
		return err
	}

	c, closer, err := loadClient()
	if err != nil {
		return err
	}
	defer closer()

	return c.UnbookmarkMarket(ref)
}

func listBookmarks(cmd *cobra.Command, args []string) error {
	c, closer, err := loadClient()
	if err != nil {
		return err
	}
	defer closer()

	bookmarks, err := c.MarketBookmarks()
	if err != nil {
		return err
	}
	return printJSON(bookmarks)
}
