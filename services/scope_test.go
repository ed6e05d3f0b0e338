package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyEmpty(t *testing.T) {
	for _, msg := range []string{"", "   ", "\t\n  \n"} {
		assert.Equal(t, DecisionEmpty, Classify(msg), "message %q", msg)
	}
}

func TestClassifyAuthorship(t *testing.T) {
	messages := []string{
		"who wrote this",
		"Who Wrote This?",
		"WHO WROTE THIS",
		"who made this chatbot",
		"I'd like to give some feedback",
		"How do I contact the developer?",
		"who built this thing",
	}
	for _, msg := range messages {
		assert.Equal(t, DecisionAuthorship, Classify(msg), "message %q", msg)
	}
}

func TestClassifySoils(t *testing.T) {
	messages := []string{
		"What soil do I have on my land?",
		"Tell me about the soils near my sugarbush",
		"SOIL types please",
		"what is the drainage class of my field",
		"how do I use the web soil survey",
	}
	for _, msg := range messages {
		assert.Equal(t, DecisionSoils, Classify(msg), "message %q", msg)
	}
}

func TestClassifySoilsRequiresStandaloneWord(t *testing.T) {
	// "topsoil" must not trip the word-boundary soils rule.
	assert.NotEqual(t, DecisionSoils, Classify("how deep is topsoil usually"))
}

func TestClassifyInScope(t *testing.T) {
	messages := []string{
		"What are the AMPs for stream crossings on a logging job?",
		"How wide should a buffer be along a brook?",
		"Do I need a culvert on my skid trail?",
		"best practices for erosion control on a landing",
		"Where can I sell firewood?",
		// Naming the region alone is enough.
		"What rules apply in Vermont?",
	}
	for _, msg := range messages {
		assert.Equal(t, DecisionInScope, Classify(msg), "message %q", msg)
	}
}

func TestClassifyOutOfScope(t *testing.T) {
	messages := []string{
		"What's a good recipe for apple pie?",
		"Who won the game last night?",
		"Tell me a joke",
	}
	for _, msg := range messages {
		assert.Equal(t, DecisionOutOfScope, Classify(msg), "message %q", msg)
	}
}

func TestWordRuleBoundaries(t *testing.T) {
	amp := word("amp")
	assert.True(t, amp.Matches("what are the amps for this job"))
	assert.True(t, amp.Matches("is there an amp requirement"))
	assert.False(t, amp.Matches("we went camping last week"))
	assert.False(t, amp.Matches("the lamp is broken"))

	landing := word("landing")
	assert.True(t, landing.Matches("mud on the landing"))
	assert.False(t, landing.Matches("an outstanding question"))
}

func TestScopeDecisionString(t *testing.T) {
	assert.Equal(t, "empty", DecisionEmpty.String())
	assert.Equal(t, "authorship", DecisionAuthorship.String())
	assert.Equal(t, "soils", DecisionSoils.String())
	assert.Equal(t, "in_scope", DecisionInScope.String())
	assert.Equal(t, "out_of_scope", DecisionOutOfScope.String())
}
