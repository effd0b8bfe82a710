// Package position derives coarse positional groups from each dataset's own
// role vocabulary. Match-event data carries free-text positions ("Right Back",
// "Center Forward"); attribute data carries comma-separated position codes
// ("ST, CF"). Both sides collapse into the same five groups so an uncertain
// name match can be corroborated by playing position.
//
// Categorization is keyword-based and heuristic. Both categorizers satisfy the
// Categorizer func type so a stricter implementation can be swapped in without
// touching the promotion logic that consumes the groups.
package position
