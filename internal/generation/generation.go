package generation

import "context"

// TextGenerator is the boundary between the task handlers and the external
// chat-completion service. Implementations send a system+user prompt pair
// requesting a strict-JSON response and return the raw JSON bytes.
//
// Every call site must have a local fallback path: errors from this
// interface are recovered by deterministic heuristics, never propagated as
// task failures.
type TextGenerator interface {
	// GenerateJSON requests a JSON document matching the shape described
	// in the prompts. The returned bytes are unvalidated; callers parse
	// and normalize them against their own schema.
	GenerateJSON(ctx context.Context, systemPrompt, userPrompt string) ([]byte, error)
}

// Embedder produces vector embeddings for similarity scoring.
type Embedder interface {
	// Embed returns the embedding vector for the given text.
	Embed(ctx context.Context, text string) ([]float64, error)
}

// Backend combines the two generative capabilities a handler may need.
type Backend interface {
	TextGenerator
	Embedder
}
