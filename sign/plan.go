package sign

// ItemKind discriminates render plan entries.
type ItemKind string

const (
	// KindSign is a token backed by a recorded sign: it has a sign name and
	// usually a reference clip asset.
	KindSign ItemKind = "sign"

	// KindText is a fallback token with no matching sign; it is displayed as
	// text only and never animated.
	KindText ItemKind = "text"
)

// Assets holds the static asset references attached to a plan item by the
// translation collaborator.
type Assets struct {
	// Gif is the URL of the reference clip for a sign item, if one exists.
	Gif string `json:"gif,omitempty"`
}

// PlanItem is one entry of a render plan. Items are produced externally and
// treated as immutable once received.
type PlanItem struct {
	Kind     ItemKind `json:"type"`
	Token    string   `json:"token"`
	SignName string   `json:"sign_name,omitempty"`
	Assets   Assets   `json:"assets"`
}

// IsSign reports whether the item is backed by a recorded sign.
func (i PlanItem) IsSign() bool {
	return i.Kind == KindSign && i.SignName != ""
}

// Plan is an ordered sequence of plan items.
type Plan []PlanItem

// Collapse drops sign items whose sign name equals the immediately preceding
// emitted sign item's name. Non-sign items are never collapsed and reset the
// "last sign" memory, so [I, WANT, WANT, APPLE] collapses to [I, WANT, APPLE]
// while [WANT, text, WANT] stays three items.
func Collapse(p Plan) Plan {
	out := make(Plan, 0, len(p))
	lastSign := ""
	for _, item := range p {
		if item.IsSign() {
			if item.SignName == lastSign {
				continue
			}
			lastSign = item.SignName
		} else {
			lastSign = ""
		}
		out = append(out, item)
	}
	return out
}

// SignNames returns the sign names of all sign items in order, with
// duplicates preserved. Used for prefetching.
func (p Plan) SignNames() []string {
	names := make([]string, 0, len(p))
	for _, item := range p {
		if item.IsSign() {
			names = append(names, item.SignName)
		}
	}
	return names
}
