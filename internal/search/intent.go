package search

import "strings"

// QueryIntent is the closed set of question framings the summary generator
// distinguishes between.
type QueryIntent int

const (
	IntentGeneric QueryIntent = iota
	IntentProcedural
	IntentDefinitional
	IntentTroubleshooting
)

// String returns a human-readable name for logging.
func (i QueryIntent) String() string {
	switch i {
	case IntentProcedural:
		return "procedural"
	case IntentDefinitional:
		return "definitional"
	case IntentTroubleshooting:
		return "troubleshooting"
	default:
		return "generic"
	}
}

// ClassifyQueryIntent buckets a query by case-insensitive substring tests,
// evaluated in priority order with the first match winning:
// "how" beats "what" beats "error"/"issue" beats everything else.
func ClassifyQueryIntent(query string) QueryIntent {
	q := strings.ToLower(query)
	switch {
	case strings.Contains(q, "how"):
		return IntentProcedural
	case strings.Contains(q, "what"):
		return IntentDefinitional
	case strings.Contains(q, "error") || strings.Contains(q, "issue"):
		return IntentTroubleshooting
	default:
		return IntentGeneric
	}
}
