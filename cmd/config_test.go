package main

import (
	"testing"

	"github.com/AdguardTeam/golibs/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseConfig(t *testing.T) {
	t.Parallel()

	path := writeTestFile(t, "config.yaml", `
filter_lists:
  - 'first.json'
  - 'second.json'
cache_size: 100
verbose: true
`)

	c, err := parseConfig(path)
	require.NoError(t, err)

	assert.Equal(t, &configuration{
		FilterLists: []string{"first.json", "second.json"},
		CacheSize:   100,
		Verbose:     true,
	}, c)
	assert.NoError(t, c.Validate())

	_, err = parseConfig(writeTestFile(t, "bad.yaml", "cache_size: [1"))
	assert.Error(t, err)

	_, err = parseConfig(path + ".none")
	assert.Error(t, err)
}

func TestLoadConfig(t *testing.T) {
	t.Parallel()

	path := writeTestFile(t, "config.yaml", "filter_lists: ['file.json']\ncache_size: 100\n")

	c, err := loadConfig(&Options{ConfigPath: path})
	require.NoError(t, err)

	assert.Equal(t, []string{"file.json"}, c.FilterLists)
	assert.Equal(t, 100, c.CacheSize)
	assert.False(t, c.Verbose)

	c, err = loadConfig(&Options{
		ConfigPath:  path,
		FilterLists: []string{"other.json"},
		CacheSize:   5,
		Verbose:     true,
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"other.json"}, c.FilterLists)
	assert.Equal(t, 5, c.CacheSize)
	assert.True(t, c.Verbose)
}

func TestConfiguration_Validate(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		conf    *configuration
		name    string
		wantErr bool
	}{{
		conf: &configuration{
			FilterLists: []string{"list.json"},
		},
		name:    "valid",
		wantErr: false,
	}, {
		conf:    &configuration{},
		name:    "no_lists",
		wantErr: true,
	}, {
		conf: &configuration{
			FilterLists: []string{"list.json"},
			CacheSize:   -1,
		},
		name:    "negative_cache",
		wantErr: true,
	}, {
		conf: &configuration{
			FilterLists: []string{"list.json", ""},
		},
		name:    "empty_path",
		wantErr: true,
	}}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			err := tc.conf.Validate()
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}

	var c *configuration
	assert.ErrorIs(t, c.Validate(), errors.ErrNoValue)
}
