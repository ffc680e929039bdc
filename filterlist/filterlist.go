// Package filterlist contains the loader that turns a JSON content blocker
// rule list into an immutable [RuleSet].
package filterlist

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/AdguardTeam/contentblocker/rules"
	"github.com/AdguardTeam/golibs/errors"
	"github.com/AdguardTeam/golibs/logutil/slogutil"
)

const (
	// ErrMalformed is returned when the rule list is not valid JSON.
	ErrMalformed errors.Error = "malformed rule list"

	// ErrNotAList is returned when the rule list is valid JSON but its root is
	// not an array.
	ErrNotAList errors.Error = "rule list is not an array"
)

// Parse parses the JSON rule list in text.  Entries that cannot be turned into
// a rule are skipped, so rs contains the rules of all the valid entries in
// their original order.  err is only returned when the whole document is
// unusable, see [ErrMalformed] and [ErrNotAList].
func Parse(text string) (rs *RuleSet, err error) {
	return ParseWithLogger(text, nil)
}

// ParseWithLogger is like [Parse] but reports each skipped entry to l at debug
// level.  If l is nil, nothing is reported.
func ParseWithLogger(text string, l *slog.Logger) (rs *RuleSet, err error) {
	if l == nil {
		l = slogutil.NewDiscardLogger()
	}

	var doc any
	err = json.Unmarshal([]byte(text), &doc)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}

	entries, ok := doc.([]any)
	if !ok {
		return nil, fmt.Errorf("%w: got %T", ErrNotAList, doc)
	}

	rulesList := make([]rules.Rule, 0, len(entries))
	for i, v := range entries {
		r, ruleErr := newRule(i, v)
		if ruleErr != nil {
			l.Debug("skipping rule", "idx", i, slogutil.KeyError, ruleErr)

			continue
		}

		rulesList = append(rulesList, r)
	}

	l.Debug("parsed rule list", "entries", len(entries), "rules", len(rulesList))

	return &RuleSet{rules: rulesList}, nil
}
