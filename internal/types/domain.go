package types

import "strings"

// Domain is the visibility scope of a WorkItem or Quote.
type Domain string

const (
	DomainPublic  Domain = "PUBLIC"
	DomainPrivate Domain = "PRIVATE"
)

// ParseDomain is lenient: anything that is not PRIVATE, including blank or
// garbage input, falls back to PUBLIC.
func ParseDomain(s string) Domain {
	if strings.ToUpper(strings.TrimSpace(s)) == string(DomainPrivate) {
		return DomainPrivate
	}
	return DomainPublic
}
