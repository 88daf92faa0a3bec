// Package generation provides the interfaces for interacting with the
// external generative backend used by the task handlers: structured
// chat-completion calls returning strict JSON, and text embeddings for
// similarity scoring. It abstracts the details of the LLM API integration
// (Gemini), allowing handlers to degrade to their deterministic fallback
// paths without coupling to a specific external service.
package generation
