// Package config loads environment-backed settings with validation and
// fail-open fallbacks. A bad value never aborts startup: the default is
// kept, the problem is surfaced as a warning, and the fallback shows up
// in metrics. The retention worker is the main consumer; a sweep that
// silently never runs is worse than one running on its default schedule.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Result carries a loaded value together with what happened while
// loading it. FallbackApplied means the environment value was rejected
// and Value holds the default.
type Result[T any] struct {
	Value           T
	Warnings        []string
	FallbackApplied bool
}

// LoadString reads key and validates it. An unset or empty variable
// yields the default without a warning.
func LoadString(key, def string, validate func(string) error) Result[string] {
	return load(key, def, func(raw string) (string, error) { return raw, nil }, validate)
}

// LoadInt reads key as a base-10 integer.
func LoadInt(key string, def int, validate func(int) error) Result[int] {
	return load(key, def, strconv.Atoi, validate)
}

// LoadDuration reads key as a Go duration string such as "5m" or "1h30m".
func LoadDuration(key string, def time.Duration, validate func(time.Duration) error) Result[time.Duration] {
	return load(key, def, time.ParseDuration, validate)
}

func load[T any](key string, def T, parse func(string) (T, error), validate func(T) error) Result[T] {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return Result[T]{Value: def}
	}

	value, err := parse(raw)
	if err != nil {
		return Result[T]{
			Value:           def,
			FallbackApplied: true,
			Warnings: []string{fmt.Sprintf(
				"%s=%q could not be parsed (%v), using default %v", key, raw, err, def)},
		}
	}

	if validate != nil {
		if err := validate(value); err != nil {
			return Result[T]{
				Value:           def,
				FallbackApplied: true,
				Warnings: []string{fmt.Sprintf(
					"%s=%q rejected (%v), using default %v", key, raw, err, def)},
			}
		}
	}

	return Result[T]{Value: value}
}
