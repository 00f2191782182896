package domain

import "slices"

// Authority names granted to callers
const (
	AuthorityAdmin             = "ROLE_ADMIN"
	AuthorityUser              = "ROLE_USER"
	AuthorityDirectionStage    = "ROLE_DIRECTION_STAGE"
	AuthorityEncadrantReferent = "ROLE_ENCADRANT_REFERENT"
)

// Caller is the authenticated principal behind a request
type Caller struct {
	Login       string
	Authorities []string
}

// HasAnyAuthority reports whether the caller holds at least one of the given authorities.
func (c Caller) HasAnyAuthority(authorities ...string) bool {
	for _, a := range authorities {
		if slices.Contains(c.Authorities, a) {
			return true
		}
	}
	return false
}
