package templates

import "sort"

// Library bundles the template set and the band table used to pick from it.
type Library struct {
	Templates map[TemplateID]Template
	Bands     []Band
}

// DefaultLibrary returns the built-in outreach templates and banding:
// high-fit contacts get the short note, mid-fit contacts at larger
// companies get the medium note, and everyone else gets the value pitch.
func DefaultLibrary() *Library {
	return &Library{
		Templates: map[TemplateID]Template{
			TemplateShort: {
				ID: TemplateShort,
				Text: `Subject: Quick question for {first_name}
Hi {first_name},

Noticed {company} on our radar and wanted to reach out directly.
Would a short call this week make sense?

Best,
{brand_voice}`,
			},
			TemplateMedium: {
				ID: TemplateMedium,
				Text: `Subject: An idea for {company}
Hi {first_name},

Teams the size of {company} usually hit the same wall with their CRM
data: stale records, uneven owner load, missed follow-ups. We audit
exactly that and hand back a prioritized cleanup plan.

Worth fifteen minutes?

Best,
{brand_voice}`,
			},
			TemplateValue: {
				ID: TemplateValue,
				Text: `Subject: A resource for {first_name}
Hi {first_name},

I wanted to share something I think will help your team get more out
of the contacts you already have. No strings attached.

Best,
{brand_voice}`,
			},
		},
		Bands: []Band{
			{Template: TemplateShort, MinScore: 0.8, MaxScore: 1.0},
			{Template: TemplateMedium, MinScore: 0.5, MaxScore: 0.8, Sizes: []string{"200", "500", "1000", "enterprise", "large"}},
			{Template: TemplateShort, MinScore: 0.5, MaxScore: 0.8},
			{Template: TemplateValue, MinScore: 0, MaxScore: 0.5},
		},
	}
}

// Variants lists the library's templates in a stable order for
// epsilon-greedy selection.
func (l *Library) Variants() []Template {
	ids := []TemplateID{TemplateShort, TemplateMedium, TemplateValue}
	var out []Template
	for _, id := range ids {
		if t, ok := l.Templates[id]; ok {
			out = append(out, t)
		}
	}
	// custom templates follow in lexical order so selection stays stable
	var custom []string
	for id := range l.Templates {
		if id != TemplateShort && id != TemplateMedium && id != TemplateValue {
			custom = append(custom, string(id))
		}
	}
	sort.Strings(custom)
	for _, id := range custom {
		out = append(out, l.Templates[TemplateID(id)])
	}
	return out
}
