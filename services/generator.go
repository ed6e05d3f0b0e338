package services

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/vtforestry/ampchat/models"

	"google.golang.org/genai"
)

const generationModel = "gemini-2.5-flash"

// AnswerGenerator is the hosted-model collaborator: it either returns grounded
// text or fails. The chat service treats it as opaque.
type AnswerGenerator interface {
	Generate(ctx context.Context, message string, excerpts []models.Excerpt) (string, error)
	JudgeRelevance(ctx context.Context, message string, excerpts []models.Excerpt) (RelevanceVerdict, error)
}

// geminiGenerator implements AnswerGenerator over the Gemini API.
type geminiGenerator struct {
	client *genai.Client
}

// NewAnswerGenerator wraps a Gemini client as an AnswerGenerator.
func NewAnswerGenerator(client *genai.Client) AnswerGenerator {
	return &geminiGenerator{client: client}
}

// Generate sends the grounded prompt to Gemini and collects the reply text.
func (g *geminiGenerator) Generate(ctx context.Context, message string, excerpts []models.Excerpt) (string, error) {
	log.Printf("GENERATOR: Sending grounded prompt to Gemini with %d excerpts...", len(excerpts))

	result, err := g.client.Models.GenerateContent(ctx, generationModel,
		genai.Text(groundedPrompt(message, excerpts)),
		&genai.GenerateContentConfig{
			SystemInstruction: GetSystemPrompt(),
		})
	if err != nil {
		return "", fmt.Errorf("gemini api call failed: %w", err)
	}

	answer := responseText(result)
	if answer == "" {
		return "I'm sorry, I couldn't generate a response.", nil
	}
	return answer, nil
}

// JudgeRelevance asks the model whether the retrieved excerpts ground the
// question. Transport errors surface to the caller; an unparsable judgment
// fails closed to VerdictNotRelevant.
func (g *geminiGenerator) JudgeRelevance(ctx context.Context, message string, excerpts []models.Excerpt) (RelevanceVerdict, error) {
	result, err := g.client.Models.GenerateContent(ctx, generationModel,
		genai.Text(groundedPrompt(message, excerpts)),
		&genai.GenerateContentConfig{
			SystemInstruction: textContent(relevancePrompt),
			ResponseMIMEType:  "application/json",
		})
	if err != nil {
		return VerdictNotRelevant, fmt.Errorf("gemini relevance call failed: %w", err)
	}
	return ParseRelevanceVerdict(responseText(result)), nil
}

// groundedPrompt inlines the retrieved excerpts above the question so the
// model answers from them rather than from its own weights.
func groundedPrompt(message string, excerpts []models.Excerpt) string {
	var b strings.Builder
	b.WriteString("Reference excerpts:\n\n")
	if len(excerpts) == 0 {
		b.WriteString("(none found)\n\n")
	}
	for i, ex := range excerpts {
		fmt.Fprintf(&b, "[%d] (%s)\n%s\n\n", i+1, ex.Locator(), ex.Text)
	}
	b.WriteString("Question: ")
	b.WriteString(message)
	return b.String()
}

// responseText flattens the text parts of the first candidate.
func responseText(result *genai.GenerateContentResponse) string {
	if result == nil || len(result.Candidates) == 0 || result.Candidates[0].Content == nil {
		return ""
	}
	var text strings.Builder
	for _, p := range result.Candidates[0].Content.Parts {
		if p.Text != "" {
			text.WriteString(p.Text)
		}
	}
	return text.String()
}
