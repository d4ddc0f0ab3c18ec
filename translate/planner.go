package translate

import (
	"fmt"

	"github.com/unmute-ai/signplay/sign"
)

// BuildPlan converts gloss tokens into an ordered render plan. Tokens with a
// known sign recording become sign items with their reference clip URL;
// anything else falls back to a text item shown as-is.
//
// Parameters:
//   - vocab: the sign vocabulary resolving tokens to recordings
//   - gloss: the gloss tokens, in output order
//   - assetBaseURL: prefix for reference clip URLs ("" = no clips)
//
// Returns:
//   - sign.Plan: the render plan
func BuildPlan(vocab *Vocab, gloss []string, assetBaseURL string) sign.Plan {
	plan := make(sign.Plan, 0, len(gloss))
	for _, token := range gloss {
		item := sign.PlanItem{Kind: sign.KindText, Token: token}
		if name, ok := vocab.SignName(token); ok {
			item.Kind = sign.KindSign
			item.SignName = name
			if assetBaseURL != "" {
				item.Assets.Gif = fmt.Sprintf("%s/sgsl_dataset/%s/%s.gif", assetBaseURL, name, name)
			}
		}
		plan = append(plan, item)
	}
	return plan
}
