package filterlist

import (
	"github.com/AdguardTeam/contentblocker/rules"
)

// Rule list keys.
const (
	keyTrigger = "trigger"
	keyAction  = "action"

	keyURLFilter              = "url-filter"
	keyURLFilterCaseSensitive = "url-filter-is-case-sensitive"
	keyResourceType           = "resource-type"
	keyLoadType               = "load-type"
	keyIfDomain               = "if-domain"
	keyUnlessDomain           = "unless-domain"

	keyType     = "type"
	keySelector = "selector"
)

// newRule converts the decoded rule list entry with the given index into a
// rule.  err is a *rules.SyntaxError.
func newRule(idx int, v any) (r rules.Rule, err error) {
	defer func() {
		if err != nil {
			err = &rules.SyntaxError{Index: idx, Err: err}
		}
	}()

	obj, ok := v.(map[string]any)
	if !ok {
		return r, rules.ErrNotAnObject
	}

	triggerObj, ok := obj[keyTrigger].(map[string]any)
	if !ok {
		return r, rules.ErrNoTrigger
	}

	actionObj, ok := obj[keyAction].(map[string]any)
	if !ok {
		return r, rules.ErrNoAction
	}

	t, err := newTrigger(triggerObj)
	if err != nil {
		// Don't wrap the error, because it's wrapped in the deferred function.
		return r, err
	}

	a, err := newAction(actionObj)
	if err != nil {
		// Don't wrap the error, because it's wrapped in the deferred function.
		return r, err
	}

	return rules.Rule{
		Trigger: t,
		Action:  a,
	}, nil
}

// newTrigger converts the decoded trigger object into a trigger.
func newTrigger(obj map[string]any) (t *rules.Trigger, err error) {
	urlFilter, ok := obj[keyURLFilter].(string)
	if !ok {
		return nil, rules.ErrNoURLFilter
	}

	dc, err := newDomainConstraint(obj)
	if err != nil {
		return nil, err
	}

	// Any non-boolean value means the default.
	caseSensitive, _ := obj[keyURLFilterCaseSensitive].(bool)

	return rules.NewTrigger(&rules.TriggerConfig{
		URLFilter:                urlFilter,
		DomainConstraint:         dc,
		ResourceTypes:            newResourceTypeSet(obj[keyResourceType]),
		LoadType:                 newLoadType(obj[keyLoadType]),
		URLFilterIsCaseSensitive: caseSensitive,
	})
}

// newResourceTypeSet returns the set of the known resource types in v.  If v
// is not an array or contains no known types, it returns
// [rules.AllResourceTypes].
func newResourceTypeSet(v any) (s rules.ResourceTypeSet) {
	for _, name := range stringElems(v) {
		if rt, ok := rules.ParseResourceType(name); ok {
			s |= rules.NewResourceTypeSet(rt)
		}
	}

	return s
}

// newLoadType returns the first known load type in v or [rules.LoadTypeAny].
func newLoadType(v any) (lt rules.LoadType) {
	for _, name := range stringElems(v) {
		if t, ok := rules.ParseLoadType(name); ok {
			return t
		}
	}

	return rules.LoadTypeAny
}

// newDomainConstraint returns the domain constraint of the trigger object.
// Having both domain keys is an error even if their values are not arrays.
func newDomainConstraint(obj map[string]any) (dc rules.DomainConstraint, err error) {
	ifVal, hasIf := obj[keyIfDomain]
	unlessVal, hasUnless := obj[keyUnlessDomain]
	if hasIf && hasUnless {
		return dc, rules.ErrConflictingDomains
	}

	if domains, ok := ifVal.([]any); ok {
		return rules.IfDomain(rules.NewDomainSet(stringElems(domains))), nil
	} else if domains, ok = unlessVal.([]any); ok {
		return rules.UnlessDomain(rules.NewDomainSet(stringElems(domains))), nil
	}

	return dc, nil
}

// newAction converts the decoded action object into an action.
func newAction(obj map[string]any) (a rules.Action, err error) {
	typeName, ok := obj[keyType].(string)
	if !ok {
		return a, rules.ErrBadActionType
	}

	a.Type, ok = rules.ParseActionType(typeName)
	if !ok {
		return a, rules.ErrBadActionType
	}

	if a.Type == rules.ActionCSSDisplayNone {
		a.Selector, ok = obj[keySelector].(string)
		if !ok {
			return a, rules.ErrNoSelector
		}
	}

	return a, nil
}

// stringElems returns the string elements of v if v is a JSON array.  Other
// elements are skipped.
func stringElems(v any) (ss []string) {
	arr, _ := v.([]any)
	for _, elem := range arr {
		if s, ok := elem.(string); ok {
			ss = append(ss, s)
		}
	}

	return ss
}
