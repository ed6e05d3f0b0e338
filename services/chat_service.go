package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/vtforestry/ampchat/config"
	"github.com/vtforestry/ampchat/models"
)

// retrievalDepth is how many guidance excerpts are pulled in to ground an answer.
const retrievalDepth = 4

// ErrConfigurationMissing is returned when the model credential or document
// store identifier was absent at startup. It fails the request, not the process.
var ErrConfigurationMissing = errors.New(ConfigurationErrorReply)

// ChatService answers a single chat message. Implementations hold no
// per-request state, so concurrent requests are independent.
type ChatService interface {
	Chat(ctx context.Context, req models.ChatRequest) (*models.ChatResponse, error)
}

type chatServiceImpl struct {
	cfg       config.Config
	generator AnswerGenerator
	store     DocumentStore
}

// NewChatService creates the chat service. generator and store may be nil when
// the configuration is incomplete; the service then reports the configuration
// error on every in-scope request.
func NewChatService(cfg config.Config, generator AnswerGenerator, store DocumentStore) ChatService {
	return &chatServiceImpl{
		cfg:       cfg,
		generator: generator,
		store:     store,
	}
}

// fixedReply builds the response for the deterministic branches. These are
// byte-identical across calls and never carry citations.
func fixedReply(text string) *models.ChatResponse {
	return &models.ChatResponse{Success: true, Answer: text}
}

// Chat classifies the message and routes it to a fixed reply or the grounded
// generation path.
func (s *chatServiceImpl) Chat(ctx context.Context, req models.ChatRequest) (*models.ChatResponse, error) {
	decision := Classify(req.Message)
	log.Printf("SERVICE: Classified message as %s", decision)

	switch decision {
	case DecisionEmpty:
		return fixedReply(EmptyPromptReply), nil
	case DecisionAuthorship:
		return fixedReply(AuthorshipReply), nil
	case DecisionSoils:
		return fixedReply(SoilsRedirectReply), nil
	case DecisionOutOfScope:
		return fixedReply(OutOfScopeReply), nil
	}

	// In scope: the answer comes from the model, grounded in retrieved excerpts.
	if !s.cfg.Complete() || s.generator == nil || s.store == nil {
		return nil, ErrConfigurationMissing
	}

	excerpts, err := s.store.Retrieve(ctx, req.Message, retrievalDepth)
	if err != nil {
		return nil, fmt.Errorf("could not retrieve reference excerpts: %w", err)
	}

	if s.cfg.RelevanceCheck {
		verdict := VerdictNotRelevant
		if len(excerpts) > 0 {
			verdict, err = s.generator.JudgeRelevance(ctx, req.Message, excerpts)
			if err != nil {
				return nil, fmt.Errorf("relevance check failed: %w", err)
			}
		}
		if verdict == VerdictNotRelevant {
			log.Printf("SERVICE: Relevance gate rejected the question, returning refusal")
			return fixedReply(OutOfScopeReply), nil
		}
	}

	answer, err := s.generator.Generate(ctx, req.Message, excerpts)
	if err != nil {
		return nil, fmt.Errorf("could not generate response from gemini: %w", err)
	}

	response := &models.ChatResponse{Success: true, Answer: answer}
	if req.Citations {
		response.Citations = citationLocators(excerpts)
	}
	return response, nil
}

// citationLocators maps excerpts to their locator strings, dropping duplicates
// while keeping retrieval order.
func citationLocators(excerpts []models.Excerpt) []string {
	var locators []string
	seen := make(map[string]bool)
	for _, ex := range excerpts {
		loc := ex.Locator()
		if !seen[loc] {
			seen[loc] = true
			locators = append(locators, loc)
		}
	}
	return locators
}
