// Package translate turns spoken or typed text into an ordered render plan
// of sign-language gloss tokens, constrained to a fixed sign vocabulary.
package translate

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
)

// Vocab maps gloss tokens to sign recording names and resolves aliases.
// Tokens are canonical uppercase strings; sign names identify the recorded
// clips a landmark source can serve.
type Vocab struct {
	tokenToSign map[string]string
	signToToken map[string]string
	aliases     map[string]string
	tokens      []string
}

// vocabFile is the on-disk shape of vocab.json. Older exports store the
// token map directly at the top level, newer ones nest it.
type vocabFile struct {
	TokenToSign map[string]string `json:"token_to_sign"`
}

// NewVocab creates a vocabulary from in-memory maps.
//
// Parameters:
//   - tokenToSign: gloss token to sign recording name
//   - aliases: alternate spellings resolved before lookup (may be nil)
//
// Returns:
//   - *Vocab: the vocabulary
func NewVocab(tokenToSign, aliases map[string]string) *Vocab {
	v := &Vocab{
		tokenToSign: make(map[string]string, len(tokenToSign)),
		signToToken: make(map[string]string, len(tokenToSign)),
		aliases:     make(map[string]string, len(aliases)),
	}
	for token, name := range tokenToSign {
		token = canon(token)
		v.tokenToSign[token] = name
		v.signToToken[name] = token
		v.tokens = append(v.tokens, token)
	}
	for alias, target := range aliases {
		v.aliases[canon(alias)] = canon(target)
	}
	// Deterministic order keeps prompts and dumps stable across runs.
	sort.Strings(v.tokens)
	return v
}

// LoadVocab reads vocab.json and an optional aliases.json from disk.
//
// Parameters:
//   - vocabPath: path to the token_to_sign JSON file
//   - aliasesPath: path to the alias JSON file ("" or missing file = no aliases)
//
// Returns:
//   - *Vocab: the loaded vocabulary
//   - error: an error if either file is unreadable or malformed
func LoadVocab(vocabPath, aliasesPath string) (*Vocab, error) {
	data, err := os.ReadFile(vocabPath)
	if err != nil {
		return nil, fmt.Errorf("read vocab: %w", err)
	}

	var file vocabFile
	if err := json.Unmarshal(data, &file); err != nil || file.TokenToSign == nil {
		// Fall back to the flat layout.
		var flat map[string]string
		if err := json.Unmarshal(data, &flat); err != nil {
			return nil, fmt.Errorf("parse vocab %s: %w", vocabPath, err)
		}
		file.TokenToSign = flat
	}

	aliases := map[string]string{}
	if aliasesPath != "" {
		data, err := os.ReadFile(aliasesPath)
		switch {
		case os.IsNotExist(err):
			// Aliases are optional.
		case err != nil:
			return nil, fmt.Errorf("read aliases: %w", err)
		default:
			if err := json.Unmarshal(data, &aliases); err != nil {
				return nil, fmt.Errorf("parse aliases %s: %w", aliasesPath, err)
			}
		}
	}

	return NewVocab(file.TokenToSign, aliases), nil
}

// canon normalizes free text into token form.
func canon(text string) string {
	return strings.ToUpper(strings.TrimSpace(text))
}

// Canon normalizes free text into canonical token form (uppercase, trimmed).
//
// Parameters:
//   - text: the raw text
//
// Returns:
//   - string: the canonical token
func (v *Vocab) Canon(text string) string {
	return canon(text)
}

// Resolve canonicalizes a token and follows its alias, if any.
//
// Parameters:
//   - token: the raw token
//
// Returns:
//   - string: the canonical, alias-resolved token
func (v *Vocab) Resolve(token string) string {
	token = canon(token)
	if target, ok := v.aliases[token]; ok {
		return target
	}
	return token
}

// Contains reports whether the token (after alias resolution) is in the
// vocabulary.
//
// Parameters:
//   - token: the raw token
//
// Returns:
//   - bool: true if the token resolves to a known sign
func (v *Vocab) Contains(token string) bool {
	_, ok := v.tokenToSign[v.Resolve(token)]
	return ok
}

// SignName returns the sign recording name for a token.
//
// Parameters:
//   - token: the raw token
//
// Returns:
//   - string: the sign recording name
//   - bool: false if the token is not in the vocabulary
func (v *Vocab) SignName(token string) (string, bool) {
	name, ok := v.tokenToSign[v.Resolve(token)]
	return name, ok
}

// Token returns the gloss token for a sign recording name.
//
// Parameters:
//   - signName: the recording name
//
// Returns:
//   - string: the gloss token
//   - bool: false if the name is unknown
func (v *Vocab) Token(signName string) (string, bool) {
	token, ok := v.signToToken[signName]
	return token, ok
}

// Tokens returns all canonical tokens in sorted order.
//
// Returns:
//   - []string: the token list (shared; do not mutate)
func (v *Vocab) Tokens() []string {
	return v.tokens
}

// Len returns the number of tokens in the vocabulary.
func (v *Vocab) Len() int {
	return len(v.tokenToSign)
}
