package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"playerlink/internal/resolve"
)

func newMatchCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "match",
		Short: "Run the quick resolution pass (exact plus blocked fuzzy)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withResolver(cmd.Context(), func(res *resolve.Resolver) error {
				sum, err := res.QuickPass(cmd.Context())
				if err != nil {
					return err
				}
				printSummary(cmd.OutOrStdout(), "Quick pass", sum)
				return nil
			})
		},
	}
}

func newFullFuzzyCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "fullfuzzy",
		Short: "Re-score review and unmatched rows with the wider candidate pool",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withResolver(cmd.Context(), func(res *resolve.Resolver) error {
				sum, err := res.FullFuzzyPass(cmd.Context())
				if err != nil {
					return err
				}
				printSummary(cmd.OutOrStdout(), "Full-fuzzy pass", sum)
				return nil
			})
		},
	}
}

func newPositionsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "positions",
		Short: "Promote borderline candidates corroborated by positional groups",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withResolver(cmd.Context(), func(res *resolve.Resolver) error {
				sum, err := res.PositionPass(cmd.Context())
				if err != nil {
					return err
				}
				printSummary(cmd.OutOrStdout(), "Position pass", sum)
				return nil
			})
		},
	}
}

func printSummary(out io.Writer, label string, sum resolve.Summary) {
	rows := [][]string{
		{"Processed", fmt.Sprint(sum.Processed)},
		{"Accepted", fmt.Sprint(sum.Accepted)},
		{"Review", fmt.Sprint(sum.Review)},
		{"Unmatched", fmt.Sprint(sum.Unmatched)},
		{"Retained", fmt.Sprint(sum.Retained)},
		{"Skipped", fmt.Sprint(sum.Skipped)},
	}
	fmt.Fprintf(out, "%s (run %s)\n", label, sum.RunID)
	fmt.Fprintln(out, renderTable([]string{"Counter", "Value"}, rows))
}
