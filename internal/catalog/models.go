package catalog

// ReferencePlayer is one record of the attribute dataset, keyed by its
// stable external identifier.
type ReferencePlayer struct {
	ReferenceID string
	ShortName   string
	LongName    string
	Positions   string // comma-separated position codes, e.g. "ST, CF"
	Nationality string
	Club        string
	Overall     int
	Age         int
}

// Match is one canonical match row from the event dataset.
type Match struct {
	MatchID       int64
	CompetitionID int64
	SeasonName    string
	MatchDate     string
	HomeTeamID    int64
	HomeTeamName  string
	AwayTeamID    int64
	AwayTeamName  string
	HomeScore     int
	AwayScore     int
}

// Appearance is one starting-lineup slot: a query-side player in a match.
type Appearance struct {
	MatchID   int64
	TeamID    int64
	TeamName  string
	QueryID   string
	QueryName string
	Jersey    int
	Position  string
	Country   string
}

// QueryPlayer is a distinct query-side identity to be resolved.
type QueryPlayer struct {
	QueryID string
	Name    string
}

// PassRun is one audit row recording a resolution pass invocation.
type PassRun struct {
	RunID      string
	Pass       string
	StartedAt  string
	FinishedAt string
	Processed  int
	Promoted   int
}
