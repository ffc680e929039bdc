// Command contentblocker loads content blocker rule lists and prints the
// reactions for the given request URLs.
package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/AdguardTeam/contentblocker"
	"github.com/AdguardTeam/contentblocker/filterlist"
	"github.com/AdguardTeam/contentblocker/rules"
	"github.com/AdguardTeam/golibs/errors"
	"github.com/AdguardTeam/golibs/logutil/slogutil"
	goFlags "github.com/jessevdk/go-flags"
)

// Options are the command-line options.  Most of them can also be set using
// environment variables.
type Options struct {
	// ConfigPath is the path to the optional YAML configuration file.
	ConfigPath string `short:"c" long:"config" env:"CONTENTBLOCKER_CONFIG" description:"Path to the YAML configuration file (optional)."`

	// LogOutput is the path to the log file.
	LogOutput string `short:"o" long:"output" env:"CONTENTBLOCKER_LOG_OUTPUT" description:"Path to the log file. If not set, it writes to stderr."`

	// SourceURL is the URL of the document that makes the requests.
	SourceURL string `short:"s" long:"source" description:"URL of the document making the requests. If set, the load type is derived from it."`

	// ResourceType is the resource type of all requests.
	ResourceType string `short:"t" long:"type" description:"Resource type of the requests." default:"document"`

	// LoadType is the load type of all requests.
	LoadType string `short:"l" long:"load" description:"Load type of the requests. Ignored if --source is set." default:"first-party"`

	// FilterLists are the paths to the JSON rule lists.
	FilterLists []string `short:"f" long:"filter" env:"CONTENTBLOCKER_FILTERS" env-delim:"," description:"Path to a JSON rule list. Can be specified multiple times."`

	// Args are the positional arguments.
	Args struct {
		// URLs are the URLs of the requests to check.
		URLs []string `positional-arg-name:"URL"`
	} `positional-args:"yes"`

	// CacheSize is the size of the result cache.
	CacheSize int `long:"cache-size" env:"CONTENTBLOCKER_CACHE_SIZE" description:"Size of the result cache. Zero means the value from the configuration file."`

	// Verbose enables debug logging.
	Verbose bool `short:"v" long:"verbose" env:"CONTENTBLOCKER_VERBOSE" description:"Verbose output (optional)." optional:"yes" optional-value:"true"`
}

func main() {
	opts := &Options{}
	parser := goFlags.NewParser(opts, goFlags.Default)
	parser.Usage = "[OPTIONS] [URL...]\n\nIf no URLs are given, they are read from stdin, one per line."

	_, err := parser.Parse()
	if err != nil {
		var flagsErr *goFlags.Error
		if errors.As(err, &flagsErr) && flagsErr.Type == goFlags.ErrHelp {
			os.Exit(0)
		}

		os.Exit(1)
	}

	err = run(opts, os.Stdin, os.Stdout)
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "contentblocker: %s\n", err)

		os.Exit(1)
	}
}

// run loads the rule lists and writes the reactions for every request URL
// from opts or in to out.
func run(opts *Options, in io.Reader, out io.Writer) (err error) {
	conf, err := loadConfig(opts)
	if err != nil {
		// Don't wrap the error, because it's informative enough as is.
		return err
	}

	logOutput := io.Writer(os.Stderr)
	if opts.LogOutput != "" {
		// #nosec G302 G304 -- Trust the path given by the user.
		f, fileErr := os.OpenFile(opts.LogOutput, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
		if fileErr != nil {
			return fmt.Errorf("opening log file: %w", fileErr)
		}
		defer func() { err = errors.WithDeferred(err, f.Close()) }()

		logOutput = f
	}

	baseLogger := newLogger(logOutput, conf.Verbose)

	rs, err := loadRuleLists(baseLogger.With(slogutil.KeyPrefix, "filterlist"), conf.FilterLists)
	if err != nil {
		return fmt.Errorf("loading rule lists: %w", err)
	}

	engine := contentblocker.NewEngine(&contentblocker.Config{
		Logger:    baseLogger.With(slogutil.KeyPrefix, "engine"),
		RuleSet:   rs,
		CacheSize: conf.CacheSize,
	})

	c := &checker{
		engine: engine,
		enc:    json.NewEncoder(out),
		source: opts.SourceURL,
	}

	c.resourceType, c.loadType, err = parseRequestTypes(opts)
	if err != nil {
		return err
	}

	n, err := c.checkAll(opts.Args.URLs, in)

	baseLogger.Debug(
		"finished",
		"requests", n,
		"rules", engine.RulesCount(),
		"cached", engine.CacheLen(),
	)

	return err
}

// newLogger returns a text logger writing to output.
func newLogger(output io.Writer, verbose bool) (l *slog.Logger) {
	lvl := slog.LevelInfo
	if verbose {
		lvl = slog.LevelDebug
	}

	return slogutil.New(&slogutil.Config{
		Output:       output,
		Format:       slogutil.FormatText,
		AddTimestamp: true,
		Level:        lvl,
	})
}

// loadRuleLists parses the rule lists at paths and combines them in order.
func loadRuleLists(l *slog.Logger, paths []string) (rs *filterlist.RuleSet, err error) {
	sets := make([]*filterlist.RuleSet, 0, len(paths))
	for _, p := range paths {
		// #nosec G304 -- Trust the path given by the user.
		b, readErr := os.ReadFile(p)
		if readErr != nil {
			return nil, fmt.Errorf("reading %q: %w", p, readErr)
		}

		set, parseErr := filterlist.ParseWithLogger(string(b), l.With("path", p))
		if parseErr != nil {
			return nil, fmt.Errorf("parsing %q: %w", p, parseErr)
		}

		l.Info("loaded rule list", "path", p, "rules", set.Len())

		sets = append(sets, set)
	}

	return filterlist.Concat(sets...), nil
}

// parseRequestTypes returns the request resource and load types from opts.
func parseRequestTypes(opts *Options) (rt rules.ResourceType, lt rules.LoadType, err error) {
	rt, ok := rules.ParseResourceType(opts.ResourceType)
	if !ok {
		return 0, 0, fmt.Errorf("resource type: %w: %q", errors.ErrBadEnumValue, opts.ResourceType)
	}

	lt, ok = rules.ParseLoadType(opts.LoadType)
	if !ok {
		return 0, 0, fmt.Errorf("load type: %w: %q", errors.ErrBadEnumValue, opts.LoadType)
	}

	return rt, lt, nil
}

// checker matches request URLs and writes the results.
type checker struct {
	engine       *contentblocker.Engine
	enc          *json.Encoder
	source       string
	resourceType rules.ResourceType
	loadType     rules.LoadType
}

// checkAll checks urls or, if there are none, every non-empty line of in.
func (c *checker) checkAll(urls []string, in io.Reader) (n int, err error) {
	if len(urls) > 0 {
		for _, u := range urls {
			err = c.check(u)
			if err != nil {
				return n, err
			}

			n++
		}

		return n, nil
	}

	s := bufio.NewScanner(in)
	for s.Scan() {
		u := strings.TrimSpace(s.Text())
		if u == "" {
			continue
		}

		err = c.check(u)
		if err != nil {
			return n, err
		}

		n++
	}

	err = s.Err()
	if err != nil {
		return n, fmt.Errorf("reading urls: %w", err)
	}

	return n, nil
}

// result is the JSON representation of the reactions for a single request.
type result struct {
	URL       string         `json:"url"`
	Reactions []jsonReaction `json:"reactions"`
}

// jsonReaction is the JSON representation of a reaction.
type jsonReaction struct {
	Type     string `json:"type"`
	Selector string `json:"selector,omitempty"`
}

// check matches a single URL and writes the result.
func (c *checker) check(u string) (err error) {
	var r *rules.Request
	if c.source != "" {
		r = rules.NewRequestFromSource(u, c.source, c.resourceType)
	} else {
		r = rules.NewRequest(u, c.resourceType, c.loadType)
	}

	reactions := c.engine.Match(r)
	res := &result{
		URL:       u,
		Reactions: make([]jsonReaction, 0, len(reactions)),
	}

	for _, re := range reactions {
		res.Reactions = append(res.Reactions, jsonReaction{
			Type:     re.Type.String(),
			Selector: re.Selector,
		})
	}

	err = c.enc.Encode(res)
	if err != nil {
		return fmt.Errorf("writing result for %q: %w", u, err)
	}

	return nil
}
