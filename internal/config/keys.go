package config

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"
)

// ErrUnknownKey is returned by Get and Set for keys not in Keys().
var ErrUnknownKey = errors.New("unknown configuration key")

// field reads and writes one dotted config key as text.
type field struct {
	get func(c *Config) string
	set func(c *Config, value string) error
}

//nolint:gochecknoglobals // Fixed lookup table.
var fields = map[string]field{
	"output.default_format": {
		get: func(c *Config) string { return c.Output.DefaultFormat },
		set: func(c *Config, v string) error { c.Output.DefaultFormat = v; return nil },
	},
	"output.page_size": {
		get: func(c *Config) string { return strconv.Itoa(c.Output.PageSize) },
		set: func(c *Config, v string) error {
			n, err := strconv.Atoi(strings.TrimSpace(v))
			if err != nil {
				return fmt.Errorf("page size %q is not a number: %w", v, err)
			}
			c.Output.PageSize = n
			return nil
		},
	},
	"output.page_size_options": {
		get: func(c *Config) string { return joinInts(c.Output.PageSizeOptions) },
		set: func(c *Config, v string) error {
			sizes, err := splitInts(v)
			if err != nil {
				return err
			}
			c.Output.PageSizeOptions = sizes
			return nil
		},
	},
	"table.default_sort": {
		get: func(c *Config) string { return c.Table.DefaultSort },
		set: func(c *Config, v string) error { c.Table.DefaultSort = v; return nil },
	},
	"table.data_files": {
		get: func(c *Config) string { return strings.Join(c.Table.DataFiles, ",") },
		set: func(c *Config, v string) error { c.Table.DataFiles = splitList(v); return nil },
	},
	"logging.level": {
		get: func(c *Config) string { return c.Logging.Level },
		set: func(c *Config, v string) error { c.Logging.Level = v; return nil },
	},
	"logging.format": {
		get: func(c *Config) string { return c.Logging.Format },
		set: func(c *Config, v string) error { c.Logging.Format = v; return nil },
	},
	"logging.file": {
		get: func(c *Config) string { return c.Logging.File },
		set: func(c *Config, v string) error { c.Logging.File = v; return nil },
	},
}

// Keys returns every settable key in sorted order.
func Keys() []string {
	return slices.Sorted(maps.Keys(fields))
}

// Get returns the value of a dotted key such as "output.page_size".
// List values are comma-separated.
func (c *Config) Get(key string) (string, error) {
	f, ok := fields[key]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownKey, key)
	}
	return f.get(c), nil
}

// Set assigns a dotted key and validates the result. On a validation error
// the config is left unchanged.
func (c *Config) Set(key, value string) error {
	f, ok := fields[key]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownKey, key)
	}

	candidate := *c
	candidate.Output.PageSizeOptions = slices.Clone(c.Output.PageSizeOptions)
	candidate.Table.DataFiles = slices.Clone(c.Table.DataFiles)
	if err := f.set(&candidate, value); err != nil {
		return err
	}
	if err := candidate.Validate(); err != nil {
		return err
	}

	*c = candidate
	return nil
}

func joinInts(values []int) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, ",")
}

func splitInts(value string) ([]int, error) {
	parts := splitList(value)
	out := make([]int, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("%q is not a number: %w", p, err)
		}
		out = append(out, n)
	}
	return out, nil
}

func splitList(value string) []string {
	var out []string
	for _, p := range strings.Split(value, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
