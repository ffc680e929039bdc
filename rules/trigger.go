package rules

import (
	"fmt"
	"regexp"
)

// TriggerConfig is the configuration structure for a trigger.
type TriggerConfig struct {
	// URLFilter is the regular expression matched against the full request
	// URL.
	URLFilter string

	// DomainConstraint is the optional if-domain or unless-domain constraint.
	DomainConstraint DomainConstraint

	// ResourceTypes is the set of resource types the trigger applies to.
	ResourceTypes ResourceTypeSet

	// LoadType is the type of loads the trigger applies to.  [LoadTypeAny]
	// means all loads.
	LoadType LoadType

	// URLFilterIsCaseSensitive makes the URL filter case-sensitive.  By
	// default, the URL filter ignores case.
	URLFilterIsCaseSensitive bool
}

// Trigger is the condition part of a rule.  It is immutable and safe for
// concurrent use.
type Trigger struct {
	// urlFilter is the compiled URL filter.  The case sensitivity is already
	// baked into it.
	urlFilter *regexp.Regexp

	// domainConstraint is the optional constraint on the request host.
	domainConstraint DomainConstraint

	// resourceTypes is the set of resource types this trigger matches.
	resourceTypes ResourceTypeSet

	// loadType is the type of loads this trigger matches.
	loadType LoadType
}

// NewTrigger compiles the URL filter and returns a new trigger.  c must not be
// nil.  err is ErrBadURLFilter wrapping the compilation error if the URL filter
// is not a valid regular expression.
func NewTrigger(c *TriggerConfig) (t *Trigger, err error) {
	pattern := c.URLFilter
	if !c.URLFilterIsCaseSensitive {
		pattern = "(?i)" + pattern
	}

	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBadURLFilter, err)
	}

	return &Trigger{
		urlFilter:        re,
		domainConstraint: c.DomainConstraint,
		resourceTypes:    c.ResourceTypes,
		loadType:         c.LoadType,
	}, nil
}

// Match returns true if the trigger fires for r.  The checks are performed in
// a fixed order: resource type, load type, URL filter, and only then the domain
// constraint.
func (t *Trigger) Match(r *Request) (ok bool) {
	switch {
	case
		!t.resourceTypes.Has(r.ResourceType),
		t.loadType != LoadTypeAny && t.loadType != r.LoadType,
		!t.urlFilter.MatchString(r.URL):
		return false
	default:
		return t.domainConstraint.Allows(r.Hostname)
	}
}

// URLFilter returns the source of the compiled URL filter, including the
// case-insensitivity flag, if any.
func (t *Trigger) URLFilter() (s string) {
	return t.urlFilter.String()
}

// ResourceTypes returns the set of resource types the trigger matches.
func (t *Trigger) ResourceTypes() (s ResourceTypeSet) {
	return t.resourceTypes
}

// LoadType returns the type of loads the trigger matches.
func (t *Trigger) LoadType() (lt LoadType) {
	return t.loadType
}

// DomainConstraint returns the domain constraint of the trigger.
func (t *Trigger) DomainConstraint() (c DomainConstraint) {
	return t.domainConstraint
}
