// Package rules contains the content blocker rule representation: triggers,
// actions, and the requests they are matched against.
package rules

import (
	"fmt"

	"github.com/AdguardTeam/golibs/errors"
)

// Errors describing why a rule list entry could not be turned into a rule.
const (
	// ErrNotAnObject is returned when a rule list entry is not a JSON object.
	ErrNotAnObject errors.Error = "entry is not an object"

	// ErrNoTrigger is returned when the trigger object is missing.
	ErrNoTrigger errors.Error = "no trigger object"

	// ErrNoAction is returned when the action object is missing.
	ErrNoAction errors.Error = "no action object"

	// ErrNoURLFilter is returned when the trigger has no string url-filter.
	ErrNoURLFilter errors.Error = "no url-filter string"

	// ErrBadURLFilter is returned when url-filter is not a valid regular
	// expression.
	ErrBadURLFilter errors.Error = "bad url-filter"

	// ErrBadActionType is returned when the action type is missing, is not a
	// string, or is not known.
	ErrBadActionType errors.Error = "bad action type"

	// ErrNoSelector is returned when a css-display-none action has no string
	// selector.
	ErrNoSelector errors.Error = "no selector string"

	// ErrConflictingDomains is returned when a trigger has both if-domain and
	// unless-domain.
	ErrConflictingDomains errors.Error = "both if-domain and unless-domain are set"
)

// SyntaxError is returned when an entry of a rule list cannot be turned into a
// rule.
type SyntaxError struct {
	// Err is the underlying error.
	Err error

	// Index is the index of the entry in the rule list.
	Index int
}

// type check
var _ error = (*SyntaxError)(nil)

// Error implements the error interface for *SyntaxError.
func (e *SyntaxError) Error() (msg string) {
	return fmt.Sprintf("syntax error: rule at index %d: %s", e.Index, e.Err)
}

// type check
var _ errors.Wrapper = (*SyntaxError)(nil)

// Unwrap implements the [errors.Wrapper] interface for *SyntaxError.
func (e *SyntaxError) Unwrap() (unwrapped error) {
	return e.Err
}

// Rule is a single content blocker rule: a trigger that decides when the rule
// fires and an action that decides what it does.  Rules are immutable.
type Rule struct {
	// Trigger is the condition of the rule.  It must not be nil.
	Trigger *Trigger

	// Action is the effect of the rule.
	Action Action
}

// Match returns true if the rule fires for r.
func (r Rule) Match(req *Request) (ok bool) {
	return r.Trigger.Match(req)
}
