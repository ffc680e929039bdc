package rules

import (
	"fmt"

	"github.com/AdguardTeam/golibs/errors"
)

// ActionType is the enumeration of the actions a rule can perform.
type ActionType uint8

// ActionType values.
const (
	// ActionBlock prevents the request from starting, "block".
	ActionBlock ActionType = iota + 1

	// ActionBlockCookies strips the cookies from the request,
	// "block-cookies".
	ActionBlockCookies

	// ActionCSSDisplayNone hides the elements of the requesting document
	// matching a CSS selector, "css-display-none".
	ActionCSSDisplayNone

	// ActionIgnorePreviousRules discards the reactions of all previously
	// matched rules, "ignore-previous-rules".
	ActionIgnorePreviousRules
)

// ParseActionType returns the action type with the given rule list name.  ok
// is false if the name is not known.
func ParseActionType(name string) (t ActionType, ok bool) {
	switch name {
	case "block":
		return ActionBlock, true
	case "block-cookies":
		return ActionBlockCookies, true
	case "css-display-none":
		return ActionCSSDisplayNone, true
	case "ignore-previous-rules":
		return ActionIgnorePreviousRules, true
	default:
		return 0, false
	}
}

// String implements the [fmt.Stringer] interface for ActionType.
func (t ActionType) String() (s string) {
	switch t {
	case ActionBlock:
		return "block"
	case ActionBlockCookies:
		return "block-cookies"
	case ActionCSSDisplayNone:
		return "css-display-none"
	case ActionIgnorePreviousRules:
		return "ignore-previous-rules"
	default:
		return fmt.Sprintf("!bad_action_type_%d", uint8(t))
	}
}

// Action is the effect of a matched rule.
type Action struct {
	// Selector is the CSS selector of the elements to hide.  It is only used
	// with [ActionCSSDisplayNone] and is never validated.
	Selector string

	// Type is the type of the action.
	Type ActionType
}

// Apply performs the action on the reactions accumulated so far and returns
// the updated accumulator.  [ActionIgnorePreviousRules] empties it, all other
// actions append a reaction.
func (a Action) Apply(reactions []Reaction) (res []Reaction) {
	switch a.Type {
	case ActionBlock:
		return append(reactions, Reaction{Type: ReactionBlock})
	case ActionBlockCookies:
		return append(reactions, Reaction{Type: ReactionBlockCookies})
	case ActionCSSDisplayNone:
		return append(reactions, Reaction{
			Selector: a.Selector,
			Type:     ReactionHideMatchingElements,
		})
	case ActionIgnorePreviousRules:
		return reactions[:0]
	default:
		panic(fmt.Errorf("action type: %w: %d", errors.ErrBadEnumValue, a.Type))
	}
}

// ReactionType is the enumeration of the effects a caller must perform for a
// request.
type ReactionType uint8

// ReactionType values.
const (
	// ReactionBlock means that the request must not be started.
	ReactionBlock ReactionType = iota + 1

	// ReactionBlockCookies means that the HTTP cookies must be removed from
	// the request.
	ReactionBlockCookies

	// ReactionHideMatchingElements means that the elements of the originating
	// document matching the selector must be hidden.
	ReactionHideMatchingElements
)

// String implements the [fmt.Stringer] interface for ReactionType.
func (t ReactionType) String() (s string) {
	switch t {
	case ReactionBlock:
		return "block"
	case ReactionBlockCookies:
		return "block-cookies"
	case ReactionHideMatchingElements:
		return "hide-matching-elements"
	default:
		return fmt.Sprintf("!bad_reaction_type_%d", uint8(t))
	}
}

// Reaction is a single effect produced for a request by a matched rule.
type Reaction struct {
	// Selector is the CSS selector of the elements to hide.  It is only set
	// for [ReactionHideMatchingElements].
	Selector string

	// Type is the type of the reaction.
	Type ReactionType
}

// String implements the [fmt.Stringer] interface for Reaction.
func (r Reaction) String() (s string) {
	if r.Type == ReactionHideMatchingElements {
		return fmt.Sprintf("%s(%s)", r.Type, r.Selector)
	}

	return r.Type.String()
}
