package translate

import "google.golang.org/genai"

// GlosserBuilderOption is a functional option for configuring a Glosser.
// Use the With* functions to create options that are applied directly to the
// glosser instance.
type GlosserBuilderOption func(*glosser)

// WithAPIKey sets the Gemini API key. An empty key leaves the glosser in
// mock mode.
//
// Parameters:
//   - key: the API key
//
// Returns:
//   - GlosserBuilderOption: option function to apply
func WithAPIKey(key string) GlosserBuilderOption {
	return func(g *glosser) {
		g.apiKey = key
	}
}

// WithModel overrides the Gemini model used for translation.
//
// Parameters:
//   - model: the model name
//
// Returns:
//   - GlosserBuilderOption: option function to apply
func WithModel(model string) GlosserBuilderOption {
	return func(g *glosser) {
		if model != "" {
			g.model = model
		}
	}
}

// WithClient installs a pre-built API client, taking precedence over
// WithAPIKey.
//
// Parameters:
//   - client: the genai client
//
// Returns:
//   - GlosserBuilderOption: option function to apply
func WithClient(client *genai.Client) GlosserBuilderOption {
	return func(g *glosser) {
		g.client = client
	}
}
