package position

import "strings"

// Group is a coarse positional role shared by both datasets.
type Group string

const (
	Goalkeeper Group = "GK"
	Defender   Group = "DEF"
	Midfielder Group = "MID"
	Forward    Group = "FWD"
	Unknown    Group = "UNK"
)

// Categorizer maps a free-text role description to a positional group.
type Categorizer func(role string) Group

// Keyword sets checked in fixed precedence order: goalkeeper first, then
// defender, midfielder, forward. The first matching set wins.
var (
	defenderKeywords   = []string{"back", "defend", "centre back", "left back", "right back", "cb", "rb", "lb", "lwb", "rwb"}
	midfielderKeywords = []string{"mid", "centre", "cm", "dm", "am", "lm", "rm"}
	forwardKeywords    = []string{"forward", "att", "st", "cf", "lw", "rw", "wing", "fw"}

	attrDefenderKeywords   = []string{"cb", "rb", "lb", "lwb", "rwb", "back", "def"}
	attrMidfielderKeywords = []string{"cm", "cdm", "cam", "mid", "central"}
	attrForwardKeywords    = []string{"st", "cf", "lw", "rw", "lf", "rf", "fw", "att"}
)

// FromMatchRole categorizes a free-text position from the match-event
// dataset, e.g. "Goalkeeper", "Left Center Back", "Right Wing".
func FromMatchRole(role string) Group {
	p := strings.ToLower(strings.TrimSpace(role))
	if p == "" {
		return Unknown
	}
	if strings.Contains(p, "goal") || strings.Contains(p, "keeper") || strings.HasPrefix(p, "g") {
		return Goalkeeper
	}
	if containsAny(p, defenderKeywords) {
		return Defender
	}
	if containsAny(p, midfielderKeywords) {
		return Midfielder
	}
	if containsAny(p, forwardKeywords) {
		return Forward
	}
	return Unknown
}

// FromAttributeRoles categorizes a comma-separated position code list from
// the attribute dataset, e.g. "ST, CF" or "GK". Each precedence tier scans
// all codes before falling through to the next.
func FromAttributeRoles(roles string) Group {
	if strings.TrimSpace(roles) == "" {
		return Unknown
	}
	codes := strings.Split(roles, ",")
	for i, code := range codes {
		codes[i] = strings.ToLower(strings.TrimSpace(code))
	}
	for _, code := range codes {
		if code == "gk" || code == "goalkeeper" {
			return Goalkeeper
		}
	}
	for _, code := range codes {
		if containsAny(code, attrDefenderKeywords) {
			return Defender
		}
	}
	for _, code := range codes {
		if containsAny(code, attrMidfielderKeywords) {
			return Midfielder
		}
	}
	for _, code := range codes {
		if containsAny(code, attrForwardKeywords) {
			return Forward
		}
	}
	return Unknown
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}
