package translate

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

// defaultModel is the Gemini model used for text-to-gloss translation.
const defaultModel = "gemini-2.0-flash"

// Gloss is a validated text-to-gloss translation result. Every token in
// Gloss is guaranteed to exist in the vocabulary; words the model could not
// map land in Unmatched.
type Gloss struct {
	Gloss     []string `json:"gloss"`
	Unmatched []string `json:"unmatched"`
	Notes     string   `json:"notes,omitempty"`
}

// Glosser translates free text into vocabulary-constrained gloss tokens.
type Glosser interface {
	// TextToGloss translates text into gloss tokens drawn from the
	// vocabulary. Without an API client it degrades to word-by-word
	// vocabulary matching.
	//
	// Parameters:
	//   - ctx: cancels the model call
	//   - text: the input text
	//
	// Returns:
	//   - Gloss: the validated translation
	//   - error: an error if the model call or response parsing fails
	TextToGloss(ctx context.Context, text string) (Gloss, error)
}

type glosser struct {
	vocab  *Vocab
	client *genai.Client
	model  string
	apiKey string
}

var _ Glosser = &glosser{}

// NewGlosser creates a Glosser over the given vocabulary. With neither an
// API key nor a pre-built client the glosser runs in mock mode, matching
// input words directly against the vocabulary.
//
// Parameters:
//   - ctx: used to initialize the API client, if a key is configured
//   - vocab: the sign vocabulary constraining the output
//   - options: functional options for the API key, model, or client
//
// Returns:
//   - Glosser: the configured glosser
//   - error: an error if the API client could not be created
func NewGlosser(ctx context.Context, vocab *Vocab, options ...GlosserBuilderOption) (Glosser, error) {
	g := &glosser{
		vocab: vocab,
		model: defaultModel,
	}
	for _, opt := range options {
		opt(g)
	}

	if g.client == nil && g.apiKey != "" {
		client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: g.apiKey})
		if err != nil {
			return nil, fmt.Errorf("genai client: %w", err)
		}
		g.client = client
	}
	return g, nil
}

func (g *glosser) TextToGloss(ctx context.Context, text string) (Gloss, error) {
	if g.client == nil {
		return g.mockGloss(text), nil
	}

	prompt := glossPrompt(text, g.vocab.Tokens())
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
	})
	if err != nil {
		return Gloss{}, fmt.Errorf("generate gloss: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return Gloss{}, fmt.Errorf("generate gloss: no candidates")
	}

	var sb strings.Builder
	for _, p := range resp.Candidates[0].Content.Parts {
		if p.Text != "" {
			sb.WriteString(p.Text)
		}
	}

	var raw Gloss
	if err := unmarshalJSON([]byte(sb.String()), &raw); err != nil {
		return Gloss{}, fmt.Errorf("parse gloss response: %w", err)
	}
	return g.validate(raw), nil
}

// validate keeps only tokens the vocabulary knows, pushing the rest into
// Unmatched. The model is asked for vocabulary tokens but is not trusted to
// comply.
func (g *glosser) validate(raw Gloss) Gloss {
	out := Gloss{Unmatched: raw.Unmatched, Notes: raw.Notes}
	for _, token := range raw.Gloss {
		resolved := g.vocab.Resolve(token)
		if g.vocab.Contains(resolved) {
			out.Gloss = append(out.Gloss, resolved)
		} else {
			out.Unmatched = append(out.Unmatched, token)
		}
	}
	return out
}

// mockGloss is the no-API-key fallback: each input word is cleaned,
// alias-resolved, and kept only if it is in the vocabulary.
func (g *glosser) mockGloss(text string) Gloss {
	out := Gloss{Notes: "mock translation (no API key)"}
	for _, word := range strings.Fields(text) {
		clean := cleanWord(word)
		resolved := g.vocab.Resolve(clean)
		if clean != "" && g.vocab.Contains(resolved) {
			out.Gloss = append(out.Gloss, resolved)
		} else {
			out.Unmatched = append(out.Unmatched, word)
		}
	}
	return out
}

// cleanWord strips everything except letters, digits, and underscores.
func cleanWord(word string) string {
	var sb strings.Builder
	for _, r := range word {
		if r == '_' ||
			(r >= 'a' && r <= 'z') ||
			(r >= 'A' && r <= 'Z') ||
			(r >= '0' && r <= '9') {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

// glossPrompt builds the constrained-vocabulary translation prompt.
func glossPrompt(text string, tokens []string) string {
	return fmt.Sprintf(`You are a Singapore Sign Language (SGSL) translator.
Translate the following English text into SGSL Gloss.

Constraint: SGSL often uses Subject-Object-Verb or Topic-Comment structure.
Constraint: You MUST use ONLY words from the provided vocabulary list below.
If a concept is not in the vocabulary, try to find a synonym in the vocabulary (e.g., "MUM" -> "MOTHER").
If you cannot translate key parts, put the original word in 'unmatched'.

Vocabulary:
[%s]

Input Text: %q

Output JSON format strictly:
{
  "gloss": ["TOKEN1", "TOKEN2", ...],
  "unmatched": ["word1", ...],
  "notes": "explanation"
}`, strings.Join(tokens, ", "), text)
}
