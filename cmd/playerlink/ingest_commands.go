package main

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"playerlink/internal/catalog"
	"playerlink/internal/config"
	"playerlink/internal/ingest"
	"playerlink/internal/logging"
	"playerlink/internal/mapstore"
)

func newIngestCommand(ctx *commandContext) *cobra.Command {
	ingestCmd := &cobra.Command{
		Use:   "ingest",
		Short: "Load raw datasets into the catalog",
	}

	ingestCmd.AddCommand(newIngestReferenceCommand(ctx))
	ingestCmd.AddCommand(newIngestMatchesCommand(ctx))

	return ingestCmd
}

func newIngestReferenceCommand(ctx *commandContext) *cobra.Command {
	var csvPath string

	cmd := &cobra.Command{
		Use:   "reference",
		Short: "Load the reference player dataset from CSV",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStores(func(cfg *config.Config, logger *slog.Logger, cat *catalog.Store, maps *mapstore.Store) error {
				source := strings.TrimSpace(csvPath)
				if source == "" {
					source = cfg.Sources.ReferenceCSV
				}
				if source == "" {
					return fmt.Errorf("no reference CSV given; pass --csv or set sources.reference_csv")
				}

				players, err := ingest.ReadReferenceCSV(source)
				if err != nil {
					return err
				}
				if err := cat.ReplaceReferencePlayers(cmd.Context(), players); err != nil {
					return fmt.Errorf("store reference players: %w", err)
				}

				logger.Info("reference dataset loaded", logging.Args(
					logging.String("source", source),
					logging.Int("players", len(players)),
				)...)
				fmt.Fprintf(cmd.OutOrStdout(), "Loaded %d reference players from %s\n", len(players), source)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&csvPath, "csv", "", "Path to the reference player CSV")
	return cmd
}

func newIngestMatchesCommand(ctx *commandContext) *cobra.Command {
	var dataDir string

	cmd := &cobra.Command{
		Use:   "matches",
		Short: "Load competitions, matches, and starting lineups",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStores(func(cfg *config.Config, logger *slog.Logger, cat *catalog.Store, maps *mapstore.Store) error {
				source := strings.TrimSpace(dataDir)
				if source == "" {
					source = cfg.Sources.MatchesDir
				}
				if source == "" {
					return fmt.Errorf("no match dataset given; pass --data or set sources.matches_dir")
				}

				compIDs, err := ingest.ReadCompetitions(source)
				if err != nil {
					return err
				}
				matches, err := ingest.ReadMatches(source, compIDs)
				if err != nil {
					return err
				}
				if err := cat.ReplaceMatches(cmd.Context(), matches); err != nil {
					return fmt.Errorf("store matches: %w", err)
				}

				matchIDs := make([]int64, 0, len(matches))
				for _, m := range matches {
					matchIDs = append(matchIDs, m.MatchID)
				}
				appearances, err := ingest.ReadAllLineups(source, matchIDs)
				if err != nil {
					return err
				}
				if err := cat.ReplaceAppearances(cmd.Context(), appearances); err != nil {
					return fmt.Errorf("store appearances: %w", err)
				}

				logger.Info("match dataset loaded", logging.Args(
					logging.String("source", source),
					logging.Int("competitions", len(compIDs)),
					logging.Int("matches", len(matches)),
					logging.Int("appearances", len(appearances)),
				)...)
				fmt.Fprintf(cmd.OutOrStdout(), "Loaded %d matches across %d competitions (%d lineup slots)\n",
					len(matches), len(compIDs), len(appearances))
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&dataDir, "data", "", "Root directory of the match-event dataset")
	return cmd
}
