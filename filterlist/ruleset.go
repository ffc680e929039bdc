package filterlist

import (
	"iter"
	"slices"

	"github.com/AdguardTeam/contentblocker/rules"
)

// RuleSet is an ordered immutable collection of rules.  It is safe for
// concurrent use.  A nil *RuleSet is an empty set.
type RuleSet struct {
	rules []rules.Rule
}

// NewRuleSet returns a rule set containing a copy of rs.
func NewRuleSet(rs []rules.Rule) (s *RuleSet) {
	return &RuleSet{
		rules: slices.Clone(rs),
	}
}

// Concat returns a new rule set with the rules of all sets in the argument
// order.  The sets are not modified; nil sets are skipped.
func Concat(sets ...*RuleSet) (s *RuleSet) {
	n := 0
	for _, set := range sets {
		n += set.Len()
	}

	s = &RuleSet{
		rules: make([]rules.Rule, 0, n),
	}

	for _, set := range sets {
		if set != nil {
			s.rules = append(s.rules, set.rules...)
		}
	}

	return s
}

// Len returns the number of rules in s.
func (s *RuleSet) Len() (n int) {
	if s == nil {
		return 0
	}

	return len(s.rules)
}

// At returns the rule with the index i.  i must be in [0, s.Len()).
func (s *RuleSet) At(i int) (r rules.Rule) {
	return s.rules[i]
}

// All returns an iterator over the indexes and rules of s in order.
func (s *RuleSet) All() (seq iter.Seq2[int, rules.Rule]) {
	return func(yield func(int, rules.Rule) bool) {
		if s == nil {
			return
		}

		for i, r := range s.rules {
			if !yield(i, r) {
				return
			}
		}
	}
}
