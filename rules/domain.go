package rules

import (
	"fmt"
	"slices"
	"strings"

	"github.com/AdguardTeam/golibs/errors"
)

// maskSubdomain is the prefix that marks a domain entry as matching the
// domain itself and all of its subdomains.
const maskSubdomain = "*"

// DomainSet is a set of domains used by the if-domain and unless-domain trigger
// fields.  It consists of the exact-match entries and the subdomain entries.
// DomainSet is immutable and safe for concurrent use.
type DomainSet struct {
	// exact is the sorted list of domains which are only matched verbatim.
	exact []string

	// subdomain is the list of domains which match themselves and all of
	// their subdomains.
	subdomain []string
}

// NewDomainSet returns a new domain set built from the raw domain strings.  An
// entry starting with "*" is a subdomain entry, the marker is stripped, all
// other entries are exact entries.  Entries are lowercased, since request
// hostnames are.
func NewDomainSet(domains []string) (s *DomainSet) {
	s = &DomainSet{}
	for _, d := range domains {
		d = strings.ToLower(d)
		if sub, ok := strings.CutPrefix(d, maskSubdomain); ok {
			s.subdomain = append(s.subdomain, sub)
		} else {
			s.exact = append(s.exact, d)
		}
	}

	slices.Sort(s.exact)

	return s
}

// Exact returns a copy of the exact-match entries of s in sorted order.
func (s *DomainSet) Exact() (domains []string) {
	return slices.Clone(s.exact)
}

// Subdomains returns a copy of the subdomain entries of s in the original
// order and without the "*" marker.
func (s *DomainSet) Subdomains() (domains []string) {
	return slices.Clone(s.subdomain)
}

// Len returns the total number of entries in s.
func (s *DomainSet) Len() (n int) {
	if s == nil {
		return 0
	}

	return len(s.exact) + len(s.subdomain)
}

// Contains returns true if host is one of the exact entries, is equal to one of
// the subdomain entries, or is a subdomain of one of them.  An empty host is
// never contained in any set.
func (s *DomainSet) Contains(host string) (ok bool) {
	if s == nil || host == "" {
		return false
	}

	if _, ok = slices.BinarySearch(s.exact, host); ok {
		return true
	}

	for _, suffix := range s.subdomain {
		if isDomainOrSubdomain(host, suffix) {
			return true
		}
	}

	return false
}

// isDomainOrSubdomain returns true if host is equal to domain or is a strict
// subdomain of it, that is it ends with domain and the preceding character is
// a label separator.  So "evil.com" is not a subdomain of "notevil.com".
func isDomainOrSubdomain(host, domain string) (ok bool) {
	switch hl, dl := len(host), len(domain); {
	case hl == dl:
		return host == domain
	case hl > dl:
		return host[hl-dl-1] == '.' && strings.HasSuffix(host, domain)
	default:
		return false
	}
}

// DomainConstraintType is the kind of a domain constraint.
type DomainConstraintType uint8

const (
	// DomainConstraintNone means that the trigger has no domain constraint.
	DomainConstraintNone DomainConstraintType = iota
	// DomainConstraintIf means that the trigger only fires for hosts in the
	// set, the if-domain field.
	DomainConstraintIf
	// DomainConstraintUnless means that the trigger only fires for hosts not
	// in the set, the unless-domain field.
	DomainConstraintUnless
)

// DomainConstraint narrows the matches of a trigger by the request host.  The
// zero value is no constraint.  A constraint is either an if-domain or an
// unless-domain one, never both.
type DomainConstraint struct {
	// Domains is the set of domains.  It must not be nil unless Type is
	// [DomainConstraintNone].
	Domains *DomainSet

	// Type is the kind of the constraint.
	Type DomainConstraintType
}

// IfDomain returns a constraint that only allows hosts from s.
func IfDomain(s *DomainSet) (c DomainConstraint) {
	return DomainConstraint{
		Domains: s,
		Type:    DomainConstraintIf,
	}
}

// UnlessDomain returns a constraint that allows all hosts except the ones
// from s.
func UnlessDomain(s *DomainSet) (c DomainConstraint) {
	return DomainConstraint{
		Domains: s,
		Type:    DomainConstraintUnless,
	}
}

// Allows returns true if the constraint lets a request to host through.
func (c DomainConstraint) Allows(host string) (ok bool) {
	switch c.Type {
	case DomainConstraintNone:
		return true
	case DomainConstraintIf:
		return c.Domains.Contains(host)
	case DomainConstraintUnless:
		return !c.Domains.Contains(host)
	default:
		panic(fmt.Errorf("domain constraint type: %w: %d", errors.ErrBadEnumValue, c.Type))
	}
}

// String implements the [fmt.Stringer] interface for DomainConstraintType.
func (t DomainConstraintType) String() (s string) {
	switch t {
	case DomainConstraintNone:
		return "none"
	case DomainConstraintIf:
		return "if-domain"
	case DomainConstraintUnless:
		return "unless-domain"
	default:
		return fmt.Sprintf("!bad_domain_constraint_%d", uint8(t))
	}
}
