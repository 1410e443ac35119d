package services

import (
	"context"
	"errors"
	"log/slog"
	"math/rand"
	"time"

	"github.com/yourlovestory/story-gateway/pkg/parser"
	"github.com/yourlovestory/story-gateway/pkg/prompts"
	"github.com/yourlovestory/story-gateway/pkg/story"
)

// Generator produces a story continuation for a request. It never fails:
// when every provider is exhausted it returns the deterministic fallback
// scene instead of an error.
type Generator interface {
	Generate(ctx context.Context, req *story.StoryRequest) *story.GenerationResult
}

// Failure classes recorded per attempt.
const (
	failRateLimited   = "rate_limited"
	failProviderError = "provider_error"
	failParseError    = "parse_error"
	failInvalidResult = "invalid_result"
)

// Orchestrator walks the provider chain in order. Credentialed providers
// get one attempt per valid key in random order; a rate limit rotates to
// the next key while any other failure moves to the next provider. The
// keyless tail provider gets a fixed number of delayed attempts.
type Orchestrator struct {
	providers       []Provider
	credentials     map[string][]Credential
	logger          *slog.Logger
	keylessAttempts int
	retryDelay      time.Duration

	// sleep is swapped in tests.
	sleep func(time.Duration)
}

// NewOrchestrator builds the fallback chain over the given providers and
// key pool.
func NewOrchestrator(providers []Provider, creds []Credential, logger *slog.Logger, keylessAttempts int, retryDelay time.Duration) *Orchestrator {
	byProvider := make(map[string][]Credential)
	for _, c := range creds {
		byProvider[c.Provider] = append(byProvider[c.Provider], c)
	}
	if keylessAttempts < 1 {
		keylessAttempts = 1
	}
	return &Orchestrator{
		providers:       providers,
		credentials:     byProvider,
		logger:          logger,
		keylessAttempts: keylessAttempts,
		retryDelay:      retryDelay,
		sleep:           time.Sleep,
	}
}

func (o *Orchestrator) Generate(ctx context.Context, req *story.StoryRequest) *story.GenerationResult {
	systemPrompt := prompts.SystemPrompt
	userPrompt := prompts.BuildUserPrompt(req)

	for _, p := range o.providers {
		if ctx.Err() != nil {
			break
		}

		var result *story.GenerationResult
		if p.NeedsCredential() {
			result = o.tryKeyed(ctx, p, systemPrompt, userPrompt)
		} else {
			result = o.tryKeyless(ctx, p, systemPrompt, userPrompt)
		}

		if result != nil {
			o.finalize(p, result)
			return result
		}
	}

	o.logger.Warn("all providers exhausted, serving fallback scene")
	return story.FallbackResult()
}

// tryKeyed runs the per-key loop for a credentialed provider. Keys are
// shuffled so load spreads across the pool between requests.
func (o *Orchestrator) tryKeyed(ctx context.Context, p Provider, systemPrompt, userPrompt string) *story.GenerationResult {
	pool := make([]Credential, 0)
	for _, c := range o.credentials[p.Kind()] {
		if p.ValidCredential(c.Key) {
			pool = append(pool, c)
		}
	}
	if len(pool) == 0 {
		o.logger.Debug("no usable credentials for provider", "provider", p.Kind())
		return nil
	}

	rand.Shuffle(len(pool), func(i, j int) {
		pool[i], pool[j] = pool[j], pool[i]
	})

	// Failure class is diagnostic only. Every key gets its attempt, since a
	// rejected key says nothing certain about the next one.
	for _, cred := range pool {
		if ctx.Err() != nil {
			return nil
		}

		result, _ := o.attempt(ctx, p, cred.Key, systemPrompt, userPrompt)
		if result != nil {
			return result
		}
	}

	return nil
}

func (o *Orchestrator) tryKeyless(ctx context.Context, p Provider, systemPrompt, userPrompt string) *story.GenerationResult {
	for i := 0; i < o.keylessAttempts; i++ {
		if ctx.Err() != nil {
			return nil
		}
		if i > 0 {
			o.sleep(o.retryDelay)
		}

		result, _ := o.attempt(ctx, p, "", systemPrompt, userPrompt)
		if result != nil {
			return result
		}
	}
	return nil
}

// attempt performs one provider call end to end and classifies any failure.
func (o *Orchestrator) attempt(ctx context.Context, p Provider, key, systemPrompt, userPrompt string) (*story.GenerationResult, string) {
	raw, err := p.Generate(ctx, key, systemPrompt, userPrompt)
	if err != nil {
		class := failProviderError
		var pe *ProviderError
		if errors.As(err, &pe) && pe.RateLimited() {
			class = failRateLimited
		}
		o.logger.Warn("provider attempt failed",
			"provider", p.Kind(), "class", class, "error", err)
		return nil, class
	}

	result, err := parser.ParseGeneration(raw)
	if err != nil {
		o.logger.Warn("provider attempt failed",
			"provider", p.Kind(), "class", failParseError, "error", err)
		return nil, failParseError
	}

	if err := result.Validate(); err != nil {
		o.logger.Warn("provider attempt failed",
			"provider", p.Kind(), "class", failInvalidResult, "error", err)
		return nil, failInvalidResult
	}

	return result, ""
}

// finalize normalizes a successful generation before it is served.
func (o *Orchestrator) finalize(p Provider, result *story.GenerationResult) {
	result.ClampStats()
	if !result.Conformant() {
		o.logger.Warn("generation has non-standard option count",
			"provider", p.Kind(), "options", len(result.Options))
	}
	o.logger.Info("generation served", "provider", p.Kind())
}
