package contentblocker_test

import (
	"testing"

	"github.com/AdguardTeam/contentblocker"
	"github.com/AdguardTeam/contentblocker/filterlist"
	"github.com/AdguardTeam/contentblocker/rules"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Common reactions for tests.
var (
	reactBlock   = rules.Reaction{Type: rules.ReactionBlock}
	reactCookies = rules.Reaction{Type: rules.ReactionBlockCookies}
)

// testRuleList is a rule list that exercises every action type.
const testRuleList = `[
	{"trigger":{"url-filter":"http://domain.org"},"action":{"type":"block"}},
	{"trigger":{"url-filter":"http://domain.org/nocookies.sjs"},"action":{"type":"ignore-previous-rules"}},
	{"trigger":{"url-filter":"http://domain.org/nocookies.sjs"},"action":{"type":"block-cookies"}},
	{"trigger":{"url-filter":"http://domain.org/hideme.jpg"},"action":{"type":"css-display-none","selector":"#adblock"}},
	{"trigger":{"url-filter":"http://domain.org/ok.html"},"action":{"type":"ignore-previous-rules"}},
	{"trigger":{"url-filter":"http://domain.org/ok.html\\?except_this=1"},"action":{"type":"block-cookies"}}
]`

// newTestRuleSet is a helper that parses text and fails the test on error.
func newTestRuleSet(tb testing.TB, text string) (rs *filterlist.RuleSet) {
	tb.Helper()

	rs, err := filterlist.Parse(text)
	require.NoError(tb, err)

	return rs
}

// assertReactions is a helper that checks the reactions, treating nil and
// empty slices as equal.
func assertReactions(tb testing.TB, want, got []rules.Reaction) {
	tb.Helper()

	if len(want) == 0 {
		assert.Empty(tb, got)
	} else {
		assert.Equal(tb, want, got)
	}
}

func TestEvaluate(t *testing.T) {
	t.Parallel()

	rs := newTestRuleSet(t, testRuleList)
	require.Equal(t, 6, rs.Len())

	testCases := []struct {
		name string
		url  string
		want []rules.Reaction
	}{{
		name: "block",
		url:  "http://domain.org/test/page1.html",
		want: []rules.Reaction{reactBlock},
	}, {
		name: "ignore_then_cookies",
		url:  "http://domain.org/nocookies.sjs",
		want: []rules.Reaction{reactCookies},
	}, {
		name: "block_and_hide",
		url:  "http://domain.org/hideme.jpg",
		want: []rules.Reaction{reactBlock, {
			Selector: "#adblock",
			Type:     rules.ReactionHideMatchingElements,
		}},
	}, {
		name: "ignore_all",
		url:  "http://domain.org/ok.html",
		want: nil,
	}, {
		name: "ignore_then_exception",
		url:  "http://domain.org/ok.html?except_this=1",
		want: []rules.Reaction{reactCookies},
	}, {
		name: "no_match",
		url:  "http://other.org/",
		want: nil,
	}}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			r := rules.NewRequest(tc.url, rules.TypeDocument, rules.LoadTypeFirstParty)
			assertReactions(t, tc.want, contentblocker.Evaluate(rs, r))
		})
	}
}

func TestEvaluate_override(t *testing.T) {
	t.Parallel()

	rs := newTestRuleSet(t, `[
		{"trigger":{"url-filter":"/x"},"action":{"type":"block"}},
		{"trigger":{"url-filter":"/x/sub"},"action":{"type":"ignore-previous-rules"}},
		{"trigger":{"url-filter":"/x/sub"},"action":{"type":"block-cookies"}}
	]`)

	r := rules.NewRequest("/x/sub", rules.TypeRaw, rules.LoadTypeFirstParty)
	assert.Equal(t, []rules.Reaction{reactCookies}, contentblocker.Evaluate(rs, r))

	r = rules.NewRequest("/x/other", rules.TypeRaw, rules.LoadTypeFirstParty)
	assert.Equal(t, []rules.Reaction{reactBlock}, contentblocker.Evaluate(rs, r))
}

func TestEvaluate_domains(t *testing.T) {
	t.Parallel()

	rs := newTestRuleSet(t, `[
		{"trigger":{"url-filter":"ad.html","if-domain":["bad.org","*verybad.org"]},"action":{"type":"block"}},
		{"trigger":{"url-filter":"ad.html","if-domain":["a.org"],"unless-domain":["b.org"]},"action":{"type":"block-cookies"}}
	]`)
	require.Equal(t, 1, rs.Len())

	testCases := []struct {
		url  string
		want []rules.Reaction
	}{{
		url:  "http://good.org/ad.html",
		want: nil,
	}, {
		url:  "http://bad.org/ad.html",
		want: []rules.Reaction{reactBlock},
	}, {
		url:  "http://ok.bad.org/ad.html",
		want: nil,
	}, {
		url:  "http://verybad.org/ad.html",
		want: []rules.Reaction{reactBlock},
	}, {
		url:  "http://notok.verybad.org/ad.html",
		want: []rules.Reaction{reactBlock},
	}, {
		url:  "http://BAD.org/ad.html",
		want: []rules.Reaction{reactBlock},
	}}

	for _, tc := range testCases {
		t.Run(tc.url, func(t *testing.T) {
			t.Parallel()

			r := rules.NewRequest(tc.url, rules.TypeDocument, rules.LoadTypeFirstParty)
			assertReactions(t, tc.want, contentblocker.Evaluate(rs, r))
		})
	}
}

func TestEvaluate_filters(t *testing.T) {
	t.Parallel()

	rs := newTestRuleSet(t, `[
		{"trigger":{"url-filter":"http://domain.org","resource-type":["media","raw"]},"action":{"type":"block"}},
		{"trigger":{"url-filter":"http://domain.org","load-type":["third-party"]},"action":{"type":"block-cookies"}}
	]`)

	const u = "http://domain.org/test/page1.html"

	testCases := []struct {
		name string
		want []rules.Reaction
		rt   rules.ResourceType
		lt   rules.LoadType
	}{{
		name: "document_first_party",
		want: nil,
		rt:   rules.TypeDocument,
		lt:   rules.LoadTypeFirstParty,
	}, {
		name: "media_first_party",
		want: []rules.Reaction{reactBlock},
		rt:   rules.TypeMedia,
		lt:   rules.LoadTypeFirstParty,
	}, {
		name: "raw_third_party",
		want: []rules.Reaction{reactBlock, reactCookies},
		rt:   rules.TypeRaw,
		lt:   rules.LoadTypeThirdParty,
	}, {
		name: "document_third_party",
		want: []rules.Reaction{reactCookies},
		rt:   rules.TypeDocument,
		lt:   rules.LoadTypeThirdParty,
	}}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			r := rules.NewRequest(u, tc.rt, tc.lt)
			assertReactions(t, tc.want, contentblocker.Evaluate(rs, r))
		})
	}
}

func TestEvaluate_deterministic(t *testing.T) {
	t.Parallel()

	rs := newTestRuleSet(t, testRuleList)
	r := rules.NewRequest("http://domain.org/hideme.jpg", rules.TypeImage, rules.LoadTypeFirstParty)

	first := contentblocker.Evaluate(rs, r)
	first[0].Type = rules.ReactionBlockCookies

	second := contentblocker.Evaluate(rs, r)
	require.Len(t, second, 2)
	assert.Equal(t, reactBlock, second[0])
	assert.Equal(t, 6, rs.Len())

	assert.Empty(t, contentblocker.Evaluate(nil, r))
}

func TestEvaluate_noAuthority(t *testing.T) {
	t.Parallel()

	rs := newTestRuleSet(t, `[
		{"trigger":{"url-filter":".*","if-domain":["evil.com"]},"action":{"type":"block"}},
		{"trigger":{"url-filter":".*","unless-domain":["evil.com"]},"action":{"type":"block-cookies"}}
	]`)
	require.Equal(t, 2, rs.Len())

	for _, u := range []string{
		"data:text/html,<a href=//evil.com/x>",
		"about:blank#//evil.com",
		"blob:http://evil.com/uuid",
	} {
		t.Run(u, func(t *testing.T) {
			t.Parallel()

			r := rules.NewRequest(u, rules.TypeDocument, rules.LoadTypeFirstParty)
			assert.Empty(t, r.Hostname)
			assert.Equal(t, []rules.Reaction{reactCookies}, contentblocker.Evaluate(rs, r))
		})
	}

	r := rules.NewRequest("http://evil.com/x", rules.TypeDocument, rules.LoadTypeFirstParty)
	assert.Equal(t, []rules.Reaction{reactBlock}, contentblocker.Evaluate(rs, r))
}
