package resolve

import (
	"context"
	"fmt"
	"log/slog"

	"playerlink/internal/catalog"
	"playerlink/internal/classify"
	"playerlink/internal/config"
	"playerlink/internal/logging"
	"playerlink/internal/mapstore"
	"playerlink/internal/nameutil"
	"playerlink/internal/position"
	"playerlink/internal/refindex"
	"playerlink/internal/scoring"
)

// Pass names recorded in the catalog audit trail.
const (
	PassQuick     = "match"
	PassFullFuzzy = "fullfuzzy"
	PassPositions = "positions"
)

// Options bound the candidate generation and carry the tier thresholds.
type Options struct {
	Thresholds         classify.Thresholds
	QuickMaxCandidates int
	FullMaxCandidates  int
	TokenCeiling       int
}

// OptionsFromConfig lifts the matching section into pass options.
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		Thresholds: classify.Thresholds{
			AutoAccept:         cfg.Matching.AutoAccept,
			ReviewLow:          cfg.Matching.ReviewLow,
			PositionMin:        cfg.Matching.PositionMin,
			PositionUnknownMin: cfg.Matching.PositionUnknownMin,
		},
		QuickMaxCandidates: cfg.Matching.QuickMaxCandidates,
		FullMaxCandidates:  cfg.Matching.FullMaxCandidates,
		TokenCeiling:       cfg.Matching.TokenCeiling,
	}
}

// Summary reports what one pass did. Retained counts rows the position pass
// evaluated but left at their current status.
type Summary struct {
	RunID     string
	Processed int
	Accepted  int
	Review    int
	Unmatched int
	Retained  int
	Skipped   int
}

// Resolver runs the resolution passes. It does not own the catalog or
// mapping store; the caller opens and closes both.
type Resolver struct {
	catalog *catalog.Store
	maps    *mapstore.Store
	index   *refindex.Index
	opts    Options
	logger  *slog.Logger
}

// New builds a resolver over an already-built reference index.
func New(cat *catalog.Store, maps *mapstore.Store, index *refindex.Index, opts Options, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Resolver{catalog: cat, maps: maps, index: index, opts: opts, logger: logger}
}

// BuildIndex constructs the blocking index from the reference table. Both
// name variants of each record contribute tokens; the short name doubles as
// the display name.
func BuildIndex(players []catalog.ReferencePlayer) *refindex.Index {
	entries := make([]refindex.Entry, 0, len(players))
	for _, p := range players {
		name := p.ShortName
		if name == "" {
			name = p.LongName
		}
		// Identical short and long names collapse to one variant so the
		// combined string stays exact-matchable.
		var variants []string
		for _, v := range []string{p.ShortName, p.LongName} {
			if v == "" || (len(variants) > 0 && v == variants[len(variants)-1]) {
				continue
			}
			variants = append(variants, v)
		}
		entries = append(entries, refindex.Entry{
			ID:       p.ReferenceID,
			Name:     name,
			Variants: variants,
		})
	}
	return refindex.Build(entries)
}

// QuickPass resolves every query player once: an exact hit on the combined
// normalized string is accepted outright, otherwise the bounded candidate
// pool is scored with the token-sort ratio and the best score is classified.
// Query ids already holding an accepted mapping are skipped, which makes the
// pass safe to re-run.
func (r *Resolver) QuickPass(ctx context.Context) (Summary, error) {
	runID, err := r.catalog.BeginPassRun(ctx, PassQuick)
	if err != nil {
		return Summary{}, err
	}
	sum := Summary{RunID: runID}

	queries, err := r.catalog.QueryPlayers(ctx)
	if err != nil {
		return sum, fmt.Errorf("load query players: %w", err)
	}

	for _, q := range queries {
		if r.skipResolved(q.QueryID) {
			sum.Skipped++
			continue
		}
		sum.Processed++

		norm := nameutil.Normalize(q.Name)
		if pos, ok := r.index.Exact(norm); ok {
			r.accept(q.QueryID, q.Name, pos, 100, mapstore.MethodExact, mapstore.StatusAccepted)
			sum.Accepted++
			continue
		}

		candidates := r.index.Candidates(norm, refindex.CandidateOptions{
			TokenCeiling:  r.opts.TokenCeiling,
			MaxCandidates: r.opts.QuickMaxCandidates,
		})
		best, found := scoring.BestCandidate(norm, candidates, r.index.Norms(), scoring.TokenSortRatio, 0)

		switch r.opts.Thresholds.Classify(best.Score, found) {
		case mapstore.StatusAcceptedFuzzy:
			r.accept(q.QueryID, q.Name, best.Index, best.Score, mapstore.MethodFuzzy, mapstore.StatusAcceptedFuzzy)
			sum.Accepted++
		case mapstore.StatusReview:
			r.record(q.QueryID, q.Name, best, found, mapstore.MethodFuzzy, mapstore.StatusReview)
			sum.Review++
		default:
			r.record(q.QueryID, q.Name, best, found, mapstore.MethodFuzzy, mapstore.StatusUnmatched)
			sum.Unmatched++
		}
	}

	if err := r.finish(ctx, sum); err != nil {
		return sum, err
	}
	r.logger.Info("quick pass complete", logging.Args(
		logging.String("run_id", sum.RunID),
		logging.Int("processed", sum.Processed),
		logging.Int("accepted", sum.Accepted),
		logging.Int("review", sum.Review),
		logging.Int("unmatched", sum.Unmatched),
		logging.Int("skipped", sum.Skipped),
	)...)
	return sum, nil
}

// FullFuzzyPass re-scores the review and unmatched leftovers against a wider
// candidate pool. The token-sort ratio is tried first; when it stays below
// the review floor the token-set ratio gets a second look, which rescues
// subset names like "L. Messi" inside "Lionel Andrés Messi Cuccittini".
func (r *Resolver) FullFuzzyPass(ctx context.Context) (Summary, error) {
	runID, err := r.catalog.BeginPassRun(ctx, PassFullFuzzy)
	if err != nil {
		return Summary{}, err
	}
	sum := Summary{RunID: runID}

	rows := append([]mapstore.ReviewRow(nil), r.maps.Review()...)
	for _, row := range rows {
		if row.Status.Terminal() || r.maps.HasAccepted(row.QueryID) {
			sum.Skipped++
			continue
		}
		sum.Processed++

		norm := nameutil.Normalize(row.RawName)
		candidates := r.index.Candidates(norm, refindex.CandidateOptions{
			TokenCeiling:  r.opts.TokenCeiling,
			MaxCandidates: r.opts.FullMaxCandidates,
		})

		best, found := scoring.BestCandidate(norm, candidates, r.index.Norms(), scoring.TokenSortRatio, r.opts.Thresholds.ReviewLow)
		if !found {
			best, found = scoring.BestCandidate(norm, candidates, r.index.Norms(), scoring.TokenSetRatio, r.opts.Thresholds.ReviewLow)
		}
		if !found {
			sum.Unmatched++
			continue
		}

		if best.Score >= r.opts.Thresholds.AutoAccept {
			r.accept(row.QueryID, row.RawName, best.Index, best.Score, mapstore.MethodFullFuzzy, mapstore.StatusAcceptedFuzzy)
			sum.Accepted++
			continue
		}
		r.record(row.QueryID, row.RawName, best, true, mapstore.MethodFullFuzzy, mapstore.StatusReview)
		sum.Review++
	}

	if err := r.finish(ctx, sum); err != nil {
		return sum, err
	}
	r.logger.Info("full-fuzzy pass complete", logging.Args(
		logging.String("run_id", sum.RunID),
		logging.Int("processed", sum.Processed),
		logging.Int("accepted", sum.Accepted),
		logging.Int("review", sum.Review),
		logging.Int("unmatched", sum.Unmatched),
		logging.Int("skipped", sum.Skipped),
	)...)
	return sum, nil
}

// PositionPass promotes borderline review rows whose positional groups
// corroborate the recorded candidate. It touches only rows that already
// carry a candidate and a score at or above the position floor; it never
// rescores names.
func (r *Resolver) PositionPass(ctx context.Context) (Summary, error) {
	runID, err := r.catalog.BeginPassRun(ctx, PassPositions)
	if err != nil {
		return Summary{}, err
	}
	sum := Summary{RunID: runID}

	queryRoles, err := r.catalog.QueryPositions(ctx)
	if err != nil {
		return sum, fmt.Errorf("load query positions: %w", err)
	}
	refGroups, err := r.referenceGroups(ctx)
	if err != nil {
		return sum, err
	}

	rows := append([]mapstore.ReviewRow(nil), r.maps.Review()...)
	for _, row := range rows {
		if row.Status.Terminal() || r.maps.HasAccepted(row.QueryID) {
			sum.Skipped++
			continue
		}
		if row.CandidateID == "" || row.Score == nil {
			sum.Skipped++
			continue
		}
		sum.Processed++

		candidateGroup, ok := refGroups[row.CandidateID]
		if !ok {
			// Candidate id not in the current reference table; the index
			// and the review file are out of step.
			sum.Retained++
			continue
		}
		queryGroup := position.FromMatchRole(queryRoles[row.QueryID])

		if !r.opts.Thresholds.Promote(*row.Score, queryGroup, candidateGroup) {
			sum.Retained++
			continue
		}

		r.maps.Append(mapstore.AcceptedRow{
			QueryID:     row.QueryID,
			RawName:     row.RawName,
			ReferenceID: row.CandidateID,
			Score:       *row.Score,
			Method:      mapstore.MethodPosFuzzy,
		})
		row.Method = mapstore.MethodPosFuzzy
		row.Status = mapstore.StatusAcceptedFuzzyPos
		r.maps.Upsert(row)
		sum.Accepted++
	}

	if err := r.finish(ctx, sum); err != nil {
		return sum, err
	}
	r.logger.Info("position pass complete", logging.Args(
		logging.String("run_id", sum.RunID),
		logging.Int("processed", sum.Processed),
		logging.Int("promoted", sum.Accepted),
		logging.Int("retained", sum.Retained),
		logging.Int("skipped", sum.Skipped),
	)...)
	return sum, nil
}

// skipResolved reports whether a query id has already reached a terminal
// tier in either table.
func (r *Resolver) skipResolved(queryID string) bool {
	if r.maps.HasAccepted(queryID) {
		return true
	}
	row, ok := r.maps.Get(queryID)
	return ok && row.Status.Terminal()
}

func (r *Resolver) accept(queryID, rawName string, pos, score int, method mapstore.Method, status mapstore.Status) {
	r.maps.Append(mapstore.AcceptedRow{
		QueryID:     queryID,
		RawName:     rawName,
		ReferenceID: r.index.ID(pos),
		Score:       score,
		Method:      method,
	})
	s := score
	r.maps.Upsert(mapstore.ReviewRow{
		QueryID:       queryID,
		RawName:       rawName,
		CandidateID:   r.index.ID(pos),
		CandidateName: r.index.Name(pos),
		Score:         &s,
		Method:        method,
		Status:        status,
	})
}

// record writes the review row for a non-accepted outcome. The best
// candidate is kept even below the review floor so later passes and humans
// can see what the scorer found.
func (r *Resolver) record(queryID, rawName string, best scoring.Best, found bool, method mapstore.Method, status mapstore.Status) {
	row := mapstore.ReviewRow{
		QueryID: queryID,
		RawName: rawName,
		Method:  mapstore.MethodNone,
		Status:  status,
	}
	if found {
		score := best.Score
		row.CandidateID = r.index.ID(best.Index)
		row.CandidateName = r.index.Name(best.Index)
		row.Score = &score
		row.Method = method
	}
	r.maps.Upsert(row)
}

func (r *Resolver) finish(ctx context.Context, sum Summary) error {
	if err := r.maps.Save(); err != nil {
		return fmt.Errorf("save mapping tables: %w", err)
	}
	if err := r.catalog.FinishPassRun(ctx, sum.RunID, sum.Processed, sum.Accepted); err != nil {
		return err
	}
	return nil
}

func (r *Resolver) referenceGroups(ctx context.Context) (map[string]position.Group, error) {
	players, err := r.catalog.ReferencePlayers(ctx)
	if err != nil {
		return nil, fmt.Errorf("load reference players: %w", err)
	}
	groups := make(map[string]position.Group, len(players))
	for _, p := range players {
		groups[p.ReferenceID] = position.FromAttributeRoles(p.Positions)
	}
	return groups, nil
}
