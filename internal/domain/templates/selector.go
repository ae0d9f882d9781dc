package templates

import "strings"

// Select picks a template by mapping the fit score and company size onto
// the band table. When several bands cover the input the narrowest one
// wins. Returns ErrNoTemplateMatch when no band covers the input.
func (l *Library) Select(score float64, companySize string) (TemplateID, error) {
	var best *Band
	for i := range l.Bands {
		b := &l.Bands[i]
		if !b.Covers(score, companySize) {
			continue
		}
		if best == nil || b.width() < best.width() {
			best = b
		}
	}
	if best == nil {
		return "", ErrNoTemplateMatch
	}
	return best.Template, nil
}

// matchSize matches a band size token against a contact's company size,
// case-insensitively and by substring ("250" matches token "200"-style
// thresholds only on exact containment).
func matchSize(size, token string) bool {
	return strings.Contains(strings.ToLower(size), strings.ToLower(token))
}
