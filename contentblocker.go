// Package contentblocker matches resource requests against content blocker
// rule sets and returns the reactions the caller must perform.
package contentblocker

import (
	"github.com/AdguardTeam/contentblocker/filterlist"
	"github.com/AdguardTeam/contentblocker/rules"
)

// Evaluate matches r against every rule of rs in order and returns the
// accumulated reactions.  An ignore-previous-rules action discards the
// reactions accumulated before it.  An empty result means that the request
// should proceed as normal.  rs is not modified.
func Evaluate(rs *filterlist.RuleSet, r *rules.Request) (reactions []rules.Reaction) {
	for _, rule := range rs.All() {
		if rule.Match(r) {
			reactions = rule.Action.Apply(reactions)
		}
	}

	return reactions
}
