package templates

// TemplateID identifies one message template in the library.
type TemplateID string

const (
	TemplateShort  TemplateID = "short"
	TemplateMedium TemplateID = "medium"
	TemplateValue  TemplateID = "value_prop"
)

// Template is a message template. The first line of Text is the subject
// ("Subject: ..."), the rest is the body. Placeholders use {name} syntax.
type Template struct {
	ID   TemplateID
	Text string
}

// Band maps a fit-score range and an optional company-size set to a
// template. Score ranges are half-open [Min, Max) except when Max is 1.0,
// which is inclusive. An empty Sizes set matches any company size.
type Band struct {
	Template TemplateID
	MinScore float64
	MaxScore float64
	Sizes    []string
}

// Covers reports whether the band matches the given score and size.
func (b Band) Covers(score float64, size string) bool {
	if score < b.MinScore {
		return false
	}
	if score > b.MaxScore || (score == b.MaxScore && b.MaxScore != 1.0) {
		return false
	}
	if len(b.Sizes) == 0 {
		return true
	}
	for _, s := range b.Sizes {
		if matchSize(size, s) {
			return true
		}
	}
	return false
}

// width is used for narrowest-band tie-breaking; size-specific bands are
// treated as narrower than any-size bands of the same score range.
func (b Band) width() float64 {
	w := b.MaxScore - b.MinScore
	if len(b.Sizes) > 0 {
		w /= 2
	}
	return w
}
