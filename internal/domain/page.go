package domain

import "strings"

const (
	DefaultPageLimit = 10
	MaxPageLimit     = 100
)

// Page holds pagination and search arguments for collection queries.
type Page struct {
	Limit  int
	Offset int
	Search string
}

// Normalize clamps limit and offset and trims the search term.
func (p Page) Normalize() Page {
	if p.Limit <= 0 {
		p.Limit = DefaultPageLimit
	}
	if p.Limit > MaxPageLimit {
		p.Limit = MaxPageLimit
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
	p.Search = strings.TrimSpace(p.Search)
	return p
}
