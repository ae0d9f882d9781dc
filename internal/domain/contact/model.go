package contact

import (
	"strings"
	"time"
)

// Contact is one CRM record being audited or targeted for outreach.
// Contacts are produced fresh each run by a Source and are not persisted
// by the core beyond the current run.
type Contact struct {
	ID           string     `json:"id"`
	Email        string     `json:"email"`
	FirstName    string     `json:"first_name"`
	LastName     string     `json:"last_name"`
	Company      string     `json:"company"`
	CompanySize  string     `json:"company_size"`
	OwnerID      string     `json:"owner_id"`
	Lifecycle    string     `json:"lifecycle"`
	LastModified *time.Time `json:"last_modified,omitempty"`
}

// Domain returns the lowercase email domain, or the whole email lowered
// when it carries no '@'.
func (c Contact) Domain() string {
	if i := strings.LastIndex(c.Email, "@"); i >= 0 {
		return strings.ToLower(c.Email[i+1:])
	}
	return strings.ToLower(c.Email)
}
