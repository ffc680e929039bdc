package contentblocker

import (
	"log/slog"
	"slices"

	"github.com/AdguardTeam/contentblocker/filterlist"
	"github.com/AdguardTeam/contentblocker/internal/resultcache"
	"github.com/AdguardTeam/contentblocker/rules"
	"github.com/AdguardTeam/golibs/logutil/slogutil"
	"golang.org/x/sync/singleflight"
)

// Config is the configuration structure for an [Engine].
type Config struct {
	// Logger is used to log the evaluation results.  If nil, nothing is
	// logged.
	Logger *slog.Logger

	// RuleSet is the rule set to match requests against.  A nil rule set is
	// empty.
	RuleSet *filterlist.RuleSet

	// CacheSize is the maximum number of results to cache.  If it is zero or
	// negative, results are not cached.
	CacheSize int
}

// Engine matches requests against a rule set and optionally caches the
// results.  It is safe for concurrent use.
type Engine struct {
	logger  *slog.Logger
	ruleSet *filterlist.RuleSet

	// cache is nil if caching is disabled.
	cache *resultcache.Cache

	// flight deduplicates concurrent evaluations of requests with the same
	// cache key.  It is only used when caching is enabled.
	flight *singleflight.Group
}

// NewEngine returns a new properly initialized *Engine.  c must not be nil.
func NewEngine(c *Config) (e *Engine) {
	e = &Engine{
		logger:  c.Logger,
		ruleSet: c.RuleSet,
	}

	if e.logger == nil {
		e.logger = slogutil.NewDiscardLogger()
	}

	if c.CacheSize > 0 {
		e.cache = resultcache.New(c.CacheSize)
		e.flight = &singleflight.Group{}
	}

	return e
}

// Match returns the reactions for r.  The result is the same as the one of
// [Evaluate], and the returned slice is owned by the caller.
func (e *Engine) Match(r *rules.Request) (reactions []rules.Reaction) {
	if e.cache == nil {
		reactions = Evaluate(e.ruleSet, r)
		e.logResult(r, reactions)

		return reactions
	}

	k := resultcache.NewKey(r)
	if cached, ok := e.cache.Get(k); ok {
		e.logger.Debug("cache hit", "url", r.URL)

		return cached
	}

	v, _, shared := e.flight.Do(k.String(), func() (v any, err error) {
		res := Evaluate(e.ruleSet, r)
		e.cache.Set(k, res)
		e.logResult(r, res)

		return res, nil
	})

	reactions = v.([]rules.Reaction)
	if shared {
		reactions = slices.Clone(reactions)
	}

	return reactions
}

// logResult logs the result of evaluating r.
func (e *Engine) logResult(r *rules.Request, reactions []rules.Reaction) {
	e.logger.Debug(
		"evaluated request",
		"url", r.URL,
		"type", r.ResourceType,
		"load", r.LoadType,
		"reactions", len(reactions),
	)
}

// RulesCount returns the number of rules in the engine.
func (e *Engine) RulesCount() (n int) {
	return e.ruleSet.Len()
}

// CacheLen returns the number of cached results.
func (e *Engine) CacheLen() (n int) {
	return e.cache.ItemCount()
}

// ClearCache removes all cached results.
func (e *Engine) ClearCache() {
	e.cache.Clear()
}
