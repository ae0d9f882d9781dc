package templates

import "errors"

var (
	// ErrNoTemplateMatch indicates no band covers the score/size input.
	// A configuration error, not a contact error: the draft is skipped,
	// the client run continues.
	ErrNoTemplateMatch = errors.New("no template band matches")
	// ErrTemplateRender indicates a placeholder could not be resolved.
	ErrTemplateRender = errors.New("template render failed")
	// ErrUnknownTemplate indicates a band references a template that is
	// not in the library.
	ErrUnknownTemplate = errors.New("unknown template")
)
