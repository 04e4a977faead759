package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ellipsora/brainz"
)

var includesCmd = &cobra.Command{
	Use:   "includes <kind>",
	Short: "List every include parameter that affects an entity kind",
	Long:  "Lists the include parameters that can change the response shape of a lookup, including ones that act on entities nested inside sub-queries.",
	Args:  cobra.ExactArgs(1),
	RunE:  runIncludes,
}

var kindsCmd = &cobra.Command{
	Use:   "kinds",
	Short: "List the lookupable entity kinds",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		for _, kind := range brainz.Kinds() {
			fmt.Fprintln(cmd.OutOrStdout(), kind)
		}
		return nil
	},
}

func init() {
	includesCmd.Flags().Bool("json", false, "emit JSON instead of one token per line")

	rootCmd.AddCommand(includesCmd)
	rootCmd.AddCommand(kindsCmd)
}

func runIncludes(cmd *cobra.Command, args []string) error {
	c, log, err := buildClient(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	incs, err := c.CollectIncludes(args[0])
	if err != nil {
		return fmt.Errorf("includes: %w", err)
	}

	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		return printJSON(incs)
	}
	for _, inc := range incs {
		fmt.Fprintln(cmd.OutOrStdout(), string(inc))
	}
	return nil
}
