package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var browseCmd = &cobra.Command{
	Use:   "browse <collection-mbid>",
	Short: "List the contents of a collection",
	Args:  cobra.ExactArgs(1),
	RunE:  runBrowse,
}

func init() {
	browseCmd.Flags().String("of", "release", "content kind the collection holds")
	browseCmd.Flags().Int("limit", 0, "page size")
	browseCmd.Flags().Int("offset", 0, "page offset")

	rootCmd.AddCommand(browseCmd)
}

func runBrowse(cmd *cobra.Command, args []string) error {
	c, log, err := buildClient(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	of, _ := cmd.Flags().GetString("of")
	limit, _ := cmd.Flags().GetInt("limit")
	offset, _ := cmd.Flags().GetInt("offset")

	body, err := c.BrowseCollection(cmd.Context(), args[0], of, limit, offset)
	if err != nil {
		return fmt.Errorf("browse: %w", err)
	}
	return printJSON(body)
}
