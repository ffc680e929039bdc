package main

import (
	"fmt"
	"os"

	"github.com/AdguardTeam/golibs/errors"
	"github.com/AdguardTeam/golibs/validate"
	"gopkg.in/yaml.v3"
)

// configuration is the on-disk configuration of the check tool.
type configuration struct {
	// FilterLists are the paths to the JSON rule lists.
	FilterLists []string `yaml:"filter_lists"`

	// CacheSize is the size of the result cache.  Zero disables the cache.
	CacheSize int `yaml:"cache_size"`

	// Verbose enables debug logging.
	Verbose bool `yaml:"verbose"`
}

// parseConfig parses the YAML configuration file at confPath.
func parseConfig(confPath string) (c *configuration, err error) {
	// #nosec G304 -- Trust the path to the configuration file that is given
	// from the command line.
	yamlFile, err := os.ReadFile(confPath)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	c = &configuration{}
	err = yaml.Unmarshal(yamlFile, c)
	if err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	return c, nil
}

// loadConfig returns the configuration from the file in opts, if any, with
// the command-line options applied on top of it.
func loadConfig(opts *Options) (c *configuration, err error) {
	c = &configuration{}
	if opts.ConfigPath != "" {
		c, err = parseConfig(opts.ConfigPath)
		if err != nil {
			// Don't wrap the error, because it's informative enough as is.
			return nil, err
		}
	}

	c.applyOptions(opts)

	err = c.Validate()
	if err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return c, nil
}

// applyOptions overrides the values in c with the ones set in opts.
func (c *configuration) applyOptions(opts *Options) {
	if len(opts.FilterLists) > 0 {
		c.FilterLists = opts.FilterLists
	}

	if opts.CacheSize != 0 {
		c.CacheSize = opts.CacheSize
	}

	c.Verbose = c.Verbose || opts.Verbose
}

// type check
var _ validate.Interface = (*configuration)(nil)

// Validate implements the [validate.Interface] interface for *configuration.
func (c *configuration) Validate() (err error) {
	if c == nil {
		return errors.ErrNoValue
	}

	errs := []error{
		validate.NotEmptySlice("filter_lists", c.FilterLists),
		validate.NotNegative("cache_size", c.CacheSize),
	}

	for i, p := range c.FilterLists {
		errs = append(errs, validate.NotEmpty(fmt.Sprintf("filter_lists: at index %d", i), p))
	}

	return errors.Join(errs...)
}
