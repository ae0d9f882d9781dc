package contact

import "errors"

// ErrSourceUnavailable indicates the configured contact source could not
// be read. Fatal for the client run, caught by the orchestrator.
var ErrSourceUnavailable = errors.New("contact source unavailable")
