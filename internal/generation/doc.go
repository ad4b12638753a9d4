// Package generation provides the interface for interacting with
// external AI/LLM services. It abstracts the details of LLM API
// integration (Gemini), allowing the tutoring engine to generate
// responses without coupling to a specific external service.
package generation
