package services

import (
	"encoding/json"
	"strings"
)

// RelevanceVerdict is the outcome of the retrieval-sufficiency pre-check.
// There are only two observable values: an unparsable judgment is folded into
// VerdictNotRelevant so the gate fails closed.
type RelevanceVerdict int

const (
	VerdictNotRelevant RelevanceVerdict = iota
	VerdictRelevant
)

func (v RelevanceVerdict) String() string {
	if v == VerdictRelevant {
		return "relevant"
	}
	return "not_relevant"
}

type relevanceJudgment struct {
	Relevant bool `json:"relevant"`
}

// ParseRelevanceVerdict interprets the model's structured judgment. The model
// is asked for {"relevant": bool} but may wrap it in markdown fences or return
// junk; any response that cannot be parsed yields VerdictNotRelevant.
func ParseRelevanceVerdict(raw string) RelevanceVerdict {
	cleaned := strings.TrimSpace(raw)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	cleaned = strings.TrimSpace(cleaned)

	var judgment relevanceJudgment
	if err := json.Unmarshal([]byte(cleaned), &judgment); err != nil {
		return VerdictNotRelevant
	}
	if judgment.Relevant {
		return VerdictRelevant
	}
	return VerdictNotRelevant
}
