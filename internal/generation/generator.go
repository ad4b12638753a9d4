package generation

import "context"

// Generator defines the interface for generating tutoring responses.
// It is the boundary between the application core and external LLM
// services; the orchestrator depends only on this interface.
type Generator interface {
	// Generate produces a response for the given prompt. Implementations
	// are responsible for timeouts and bounded retries; after retries are
	// exhausted they return an error wrapping one of this package's
	// sentinel errors, and the caller substitutes ApologyText.
	Generate(ctx context.Context, prompt string) (string, error)
}

// ApologyText is the fixed reply surfaced when generation fails after
// all retries. The wording is deliberately stable so clients can rely
// on it.
const ApologyText = "I'm sorry, I'm having trouble putting together a good answer right now. Please try again in a moment."

// GeneratorFunc adapts a plain function to the Generator interface.
type GeneratorFunc func(ctx context.Context, prompt string) (string, error)

// Generate implements Generator.
func (f GeneratorFunc) Generate(ctx context.Context, prompt string) (string, error) {
	return f(ctx, prompt)
}
