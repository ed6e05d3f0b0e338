package services

import (
	"regexp"
	"strings"
)

// VocabularyVersion identifies the keyword table below. Earlier revisions of
// the assistant carried several divergent regex sets; this table is the single
// source of truth for scope matching.
const VocabularyVersion = "v1"

// MatchRule says how a vocabulary term is matched against the lowercased message.
type MatchRule int

const (
	// MatchSubstring matches the term anywhere in the message.
	MatchSubstring MatchRule = iota
	// MatchWord matches the term as a standalone word, singular or plural,
	// so "amp" hits "AMPs" but not "lamp" or "camping".
	MatchWord
)

// VocabTerm is one entry in the scope vocabulary.
type VocabTerm struct {
	Term string
	Rule MatchRule
	re   *regexp.Regexp
}

func word(term string) VocabTerm {
	return VocabTerm{
		Term: term,
		Rule: MatchWord,
		re:   regexp.MustCompile(`\b` + regexp.QuoteMeta(term) + `s?\b`),
	}
}

func substr(term string) VocabTerm {
	return VocabTerm{Term: term, Rule: MatchSubstring}
}

// Matches reports whether the term occurs in the lowercased message.
func (t VocabTerm) Matches(lower string) bool {
	if t.Rule == MatchWord {
		return t.re.MatchString(lower)
	}
	return strings.Contains(lower, t.Term)
}

// regionName alone puts a message in scope regardless of other vocabulary.
const regionName = "vermont"

// authorshipTerms signal a request for developer identity or a feedback channel.
var authorshipTerms = []VocabTerm{
	substr("who wrote"),
	substr("who made"),
	substr("who built"),
	substr("who created"),
	substr("who developed"),
	substr("feedback"),
	substr("contact"),
	substr("developer"),
	substr("report a bug"),
}

// soilsTerms route mapping and drainage questions to the Web Soil Survey
// instead of the document store, which has no soils coverage.
var soilsTerms = []VocabTerm{
	word("soil"),
	substr("drainage class"),
	substr("web soil survey"),
}

// topicalTerms is the in-scope vocabulary: forestry operations, water quality
// and erosion control, and the forest products industry. Short acronyms and
// common words use the word rule to avoid accidental substring hits.
var topicalTerms = []VocabTerm{
	// forestry operations
	substr("logging"),
	substr("logger"),
	substr("skidder"),
	substr("forwarder"),
	substr("feller"),
	substr("harvest"),
	substr("timber"),
	substr("skid trail"),
	substr("truck road"),
	word("landing"),
	substr("clearcut"),
	substr("thinning"),
	substr("silvicultur"),
	substr("forest"),
	substr("chainsaw"),
	// water quality and erosion control
	word("amp"),
	word("bmp"),
	word("stream"),
	word("brook"),
	word("culvert"),
	word("wetland"),
	word("buffer"),
	substr("stream crossing"),
	substr("water bar"),
	substr("waterbar"),
	substr("portable bridge"),
	substr("erosion"),
	substr("sediment"),
	substr("stormwater"),
	substr("riparian"),
	substr("turbidity"),
	substr("water quality"),
	// forest products industry
	substr("sawmill"),
	substr("firewood"),
	substr("pulpwood"),
	substr("veneer"),
	substr("biomass"),
	substr("lumber"),
	substr("sugarbush"),
	substr("sugaring"),
}

func matchesAny(lower string, terms []VocabTerm) bool {
	for _, t := range terms {
		if t.Matches(lower) {
			return true
		}
	}
	return false
}

func countMatches(lower string, terms []VocabTerm) int {
	n := 0
	for _, t := range terms {
		if t.Matches(lower) {
			n++
		}
	}
	return n
}
