package services

import "strings"

// ScopeDecision is the disposition the classifier assigns to a message.
type ScopeDecision int

const (
	DecisionEmpty ScopeDecision = iota
	DecisionAuthorship
	DecisionSoils
	DecisionInScope
	DecisionOutOfScope
)

func (d ScopeDecision) String() string {
	switch d {
	case DecisionEmpty:
		return "empty"
	case DecisionAuthorship:
		return "authorship"
	case DecisionSoils:
		return "soils"
	case DecisionInScope:
		return "in_scope"
	case DecisionOutOfScope:
		return "out_of_scope"
	default:
		return "unknown"
	}
}

// topicalHitThreshold is the number of vocabulary matches required for a
// message to be in scope. A single hit suffices; naming the region also
// suffices on its own.
const topicalHitThreshold = 1

// Classify inspects a chat message and decides how it should be routed.
// It is a pure function of the message text and the vocabulary table;
// it always returns exactly one decision.
func Classify(message string) ScopeDecision {
	if strings.TrimSpace(message) == "" {
		return DecisionEmpty
	}
	lower := strings.ToLower(message)

	if matchesAny(lower, authorshipTerms) {
		return DecisionAuthorship
	}
	if matchesAny(lower, soilsTerms) {
		return DecisionSoils
	}
	if strings.Contains(lower, regionName) {
		return DecisionInScope
	}
	if countMatches(lower, topicalTerms) >= topicalHitThreshold {
		return DecisionInScope
	}
	return DecisionOutOfScope
}
