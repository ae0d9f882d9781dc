package templates

import (
	"fmt"
	"strings"

	"github.com/brademus/ada-lab/internal/domain/contact"
)

// Rendered is a template bound to one contact.
type Rendered struct {
	Template TemplateID
	Subject  string
	Body     string
}

// Render binds a template to a contact. Pure string substitution: no
// network or disk I/O. An unresolved placeholder fails with
// ErrTemplateRender and is a per-contact failure only.
func (l *Library) Render(id TemplateID, c contact.Contact, brandVoice string) (Rendered, error) {
	tpl, ok := l.Templates[id]
	if !ok {
		return Rendered{}, fmt.Errorf("%w: %s", ErrUnknownTemplate, id)
	}

	ctx := renderContext(c, brandVoice)
	lines := strings.SplitN(tpl.Text, "\n", 2)
	subjectLine := strings.TrimPrefix(lines[0], "Subject:")
	subject, err := expand(strings.TrimSpace(subjectLine), ctx)
	if err != nil {
		return Rendered{}, err
	}
	body := ""
	if len(lines) > 1 {
		body, err = expand(lines[1], ctx)
		if err != nil {
			return Rendered{}, err
		}
	}
	return Rendered{Template: id, Subject: subject, Body: strings.TrimLeft(body, "\n")}, nil
}

func renderContext(c contact.Contact, brandVoice string) map[string]string {
	name := c.FirstName
	if name == "" {
		name = c.Email
	}
	if name == "" {
		name = "there"
	}
	company := c.Company
	if company == "" {
		company = "your team"
	}
	if brandVoice == "" {
		brandVoice = "Your team"
	}
	return map[string]string{
		"first_name":  name,
		"last_name":   c.LastName,
		"email":       c.Email,
		"company":     company,
		"brand_voice": brandVoice,
	}
}

// expand substitutes {name} placeholders from ctx. Unknown placeholders
// fail; literal braces are not supported in template text.
func expand(text string, ctx map[string]string) (string, error) {
	var out strings.Builder
	for {
		open := strings.IndexByte(text, '{')
		if open < 0 {
			out.WriteString(text)
			return out.String(), nil
		}
		out.WriteString(text[:open])
		end := strings.IndexByte(text[open:], '}')
		if end < 0 {
			return "", fmt.Errorf("%w: unterminated placeholder", ErrTemplateRender)
		}
		key := text[open+1 : open+end]
		val, ok := ctx[key]
		if !ok {
			return "", fmt.Errorf("%w: unresolved placeholder {%s}", ErrTemplateRender, key)
		}
		out.WriteString(val)
		text = text[open+end+1:]
	}
}
