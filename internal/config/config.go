// Package config loads and validates the newsgate settings surface: feeds,
// per-feed filter sets, subscribers, and classification options.
//
// Options resolve in layers - feed override, then server default, then
// built-in default - so the engine only ever receives final values and
// never reads shared configuration state itself.
package config

import (
	"fmt"
	"time"

	"github.com/roach88/newsgate/internal/classify"
	"github.com/roach88/newsgate/internal/filter"
)

// Built-in defaults, used when neither the feed nor the server section
// sets a value.
const (
	defaultCheckTitle  = true
	defaultCheckDate   = false
	defaultStaleCutoff = 24 * time.Hour
)

// Defaults is the server-wide option layer. Nil pointers mean "unset, fall
// through to the built-in default".
type Defaults struct {
	CheckTitle  *bool  `yaml:"check_title,omitempty"`
	CheckDate   *bool  `yaml:"check_date,omitempty"`
	StaleCutoff string `yaml:"stale_cutoff,omitempty"`
}

// Feed is one configured feed with optional option overrides, a filter set,
// and its subscribers.
type Feed struct {
	ID            string                `yaml:"id"`
	Title         string                `yaml:"title,omitempty"`
	CheckTitle    *bool                 `yaml:"check_title,omitempty"`
	CheckDate     *bool                 `yaml:"check_date,omitempty"`
	StaleCutoff   string                `yaml:"stale_cutoff,omitempty"`
	CompareFields []string              `yaml:"compare_fields,omitempty"`
	Filters       map[string][]string   `yaml:"filters,omitempty"`
	Subscribers   []classify.Subscriber `yaml:"subscribers,omitempty"`
}

// Config is the full settings document.
type Config struct {
	Server Defaults `yaml:"server,omitempty"`
	Feeds  []Feed   `yaml:"feeds"`
}

// Feed looks up a configured feed by id.
func (c *Config) Feed(id string) (Feed, bool) {
	for _, f := range c.Feeds {
		if f.ID == id {
			return f, true
		}
	}
	return Feed{}, false
}

// ResolveOptions flattens the option layers for one feed into the final
// classification options: feed override, server default, built-in default.
func (c *Config) ResolveOptions(feed Feed) (classify.Options, error) {
	opts := classify.Options{
		CheckTitle:    resolveBool(feed.CheckTitle, c.Server.CheckTitle, defaultCheckTitle),
		CheckDate:     resolveBool(feed.CheckDate, c.Server.CheckDate, defaultCheckDate),
		StaleCutoff:   defaultStaleCutoff,
		CompareFields: feed.CompareFields,
	}
	if feed.Filters != nil {
		opts.Filters = filter.FilterSet(feed.Filters)
	}

	for _, raw := range []string{c.Server.StaleCutoff, feed.StaleCutoff} {
		if raw == "" {
			continue
		}
		d, err := time.ParseDuration(raw)
		if err != nil {
			return classify.Options{}, fmt.Errorf("feed %s: parse stale_cutoff %q: %w", feed.ID, raw, err)
		}
		opts.StaleCutoff = d
	}

	return opts, nil
}

// resolveBool picks the first set layer.
func resolveBool(override, fallback *bool, builtin bool) bool {
	if override != nil {
		return *override
	}
	if fallback != nil {
		return *fallback
	}
	return builtin
}
