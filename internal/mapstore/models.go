package mapstore

// Status is the confidence tier assigned to a query record.
type Status string

const (
	StatusAccepted         Status = "accepted"
	StatusAcceptedFuzzy    Status = "accepted_fuzzy"
	StatusAcceptedFuzzyPos Status = "accepted_fuzzy_pos"
	StatusReview           Status = "review"
	StatusUnmatched        Status = "unmatched"
)

// Terminal reports whether a status is an accepted tier. Later passes never
// re-evaluate or downgrade terminal rows.
func (s Status) Terminal() bool {
	switch s {
	case StatusAccepted, StatusAcceptedFuzzy, StatusAcceptedFuzzyPos:
		return true
	}
	return false
}

// Method tags which scoring stage produced a candidate.
type Method string

const (
	MethodExact     Method = "exact"
	MethodFuzzy     Method = "fuzzy"
	MethodFullFuzzy Method = "full_fuzzy"
	MethodPosFuzzy  Method = "pos_fuzzy"
	MethodNone      Method = "none"
)

// AcceptedRow is one confirmed mapping. The accepted table is append-only
// and holds at most one row per query id.
type AcceptedRow struct {
	QueryID     string
	RawName     string
	ReferenceID string
	Score       int
	Method      Method
}

// ReviewRow tracks the current classification of one query record. Candidate
// fields are empty and Score is nil when no candidate has been recorded.
type ReviewRow struct {
	QueryID       string
	RawName       string
	CandidateID   string
	CandidateName string
	Score         *int
	Method        Method
	Status        Status
}
