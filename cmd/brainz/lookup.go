package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ellipsora/brainz"
)

var lookupCmd = &cobra.Command{
	Use:   "lookup <kind> <mbid>",
	Short: "Look up one entity by MBID",
	Args:  cobra.ExactArgs(2),
	RunE:  runLookup,
}

func init() {
	lookupCmd.Flags().StringSlice("inc", nil, "include parameters (comma-separated)")
	lookupCmd.Flags().StringSlice("status", nil, "restrict nested releases by status")
	lookupCmd.Flags().StringSlice("type", nil, "restrict nested release groups by type")
	lookupCmd.Flags().Int("limit", 0, "limit for nested sub-query lists")
	lookupCmd.Flags().Int("offset", 0, "offset for nested sub-query lists")

	rootCmd.AddCommand(lookupCmd)
}

func runLookup(cmd *cobra.Command, args []string) error {
	c, log, err := buildClient(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	incs, _ := cmd.Flags().GetStringSlice("inc")
	status, _ := cmd.Flags().GetStringSlice("status")
	types, _ := cmd.Flags().GetStringSlice("type")
	limit, _ := cmd.Flags().GetInt("limit")
	offset, _ := cmd.Flags().GetInt("offset")

	req := c.Entity(args[0]).ID(args[1]).
		Status(status...).
		Type(types...).
		Limit(limit).
		Offset(offset)
	for _, inc := range incs {
		req = req.Include(brainz.Include(inc))
	}

	doc, err := req.Do(cmd.Context())
	if err != nil {
		return fmt.Errorf("lookup: %w", err)
	}
	return printJSON(doc)
}
