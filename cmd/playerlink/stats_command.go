package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"playerlink/internal/catalog"
	"playerlink/internal/config"
	"playerlink/internal/mapstore"
	"playerlink/internal/report"
)

func newStatsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show mapping coverage and threshold what-ifs",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStores(func(cfg *config.Config, logger *slog.Logger, cat *catalog.Store, maps *mapstore.Store) error {
				stats, err := report.Collect(cmd.Context(), cat, maps)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()

				overview := [][]string{
					{"Reference players", fmt.Sprint(stats.ReferencePlayers)},
					{"Query players", fmt.Sprint(stats.QueryPlayers)},
					{"Matches", fmt.Sprint(stats.Matches)},
					{"Accepted mappings", fmt.Sprint(stats.AcceptedRows)},
					{"Coverage", fmt.Sprintf("%.1f%%", stats.CoveragePercent())},
					{"Fully mapped matches", fmt.Sprint(stats.FullyMappedMatches)},
				}
				fmt.Fprintln(out, renderTable([]string{"Metric", "Value"}, overview))

				statusRows := make([][]string, 0, len(stats.ByStatus))
				for _, sc := range stats.ByStatus {
					statusRows = append(statusRows, []string{string(sc.Status), fmt.Sprint(sc.Count)})
				}
				fmt.Fprintln(out, renderTable([]string{"Status", "Rows"}, statusRows))

				if len(stats.ByMethod) > 0 {
					methodRows := make([][]string, 0, len(stats.ByMethod))
					for _, mc := range stats.ByMethod {
						methodRows = append(methodRows, []string{string(mc.Method), fmt.Sprint(mc.Count)})
					}
					fmt.Fprintln(out, renderTable([]string{"Method", "Accepted"}, methodRows))
				}

				bandRows := make([][]string, 0, len(stats.Thresholds))
				for _, band := range stats.Thresholds {
					bandRows = append(bandRows, []string{fmt.Sprint(band.Threshold), fmt.Sprint(band.WouldAccept)})
				}
				fmt.Fprintln(out, renderTable([]string{"Auto-accept at", "Rows clearing"}, bandRows))
				return nil
			})
		},
	}
}
