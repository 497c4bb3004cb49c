// Package config reads application settings from prefixed environment variables
//
// Must* accessors panic through the root logger when a value is missing or
// malformed, May* accessors fall back to a default and warn on bad input
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"residences/internal/platform/logger"
)

// Conf is a namespaced view over environment variables, e.g. Prefix("CORE_VOICE_")
type Conf struct{ prefix string }

// New creates a root Conf with no prefix
func New() Conf { return Conf{} }

// Prefix returns a child Conf whose keys are prefixed by p
func (c Conf) Prefix(p string) Conf { return Conf{prefix: c.prefix + p} }

func (c Conf) key(k string) string { return c.prefix + k }

// lookup returns the trimmed value of key and whether it was set
func (c Conf) lookup(key string) (string, bool) {
	v := strings.TrimSpace(os.Getenv(c.key(key)))
	return v, v != ""
}

func (c Conf) missing(key string) {
	logger.Get().Panic().Str("key", c.key(key)).Msg("missing required env")
}

func (c Conf) fallback(key, value, kind string) *logger.Event {
	return logger.Get().Warn().Str("key", c.key(key)).Str("value", value).Str("kind", kind)
}

// MustString returns the value of key or panics when it is empty
func (c Conf) MustString(key string) string {
	v, ok := c.lookup(key)
	if !ok {
		c.missing(key)
	}
	return v
}

// MayString returns the value or def
func (c Conf) MayString(key, def string) string {
	if v, ok := c.lookup(key); ok {
		return v
	}
	return def
}

// MayInt returns the value or def, invalid values warn and return def
func (c Conf) MayInt(key string, def int) int {
	s, ok := c.lookup(key)
	if !ok {
		return def
	}
	if v, err := strconv.Atoi(s); err == nil {
		return v
	}
	c.fallback(key, s, "int").Int("default", def).Msg("invalid value, using default")
	return def
}

// MayFloat64 returns the value or def, invalid values warn and return def
func (c Conf) MayFloat64(key string, def float64) float64 {
	s, ok := c.lookup(key)
	if !ok {
		return def
	}
	if v, err := strconv.ParseFloat(s, 64); err == nil {
		return v
	}
	c.fallback(key, s, "float").Float64("default", def).Msg("invalid value, using default")
	return def
}

// MayBool returns the value or def, invalid values warn and return def
func (c Conf) MayBool(key string, def bool) bool {
	s, ok := c.lookup(key)
	if !ok {
		return def
	}
	if v, err := strconv.ParseBool(s); err == nil {
		return v
	}
	c.fallback(key, s, "bool").Bool("default", def).Msg("invalid value, using default")
	return def
}

// MayDuration returns the value or def, invalid values warn and return def
func (c Conf) MayDuration(key string, def time.Duration) time.Duration {
	s, ok := c.lookup(key)
	if !ok {
		return def
	}
	if d, err := time.ParseDuration(s); err == nil {
		return d
	}
	c.fallback(key, s, "duration").Dur("default", def).Msg("invalid value, using default")
	return def
}

// MayCSV splits a comma separated value, blanks are dropped
// def is returned when nothing is left
func (c Conf) MayCSV(key string, def []string) []string {
	s, ok := c.lookup(key)
	if !ok {
		return def
	}
	var out []string
	for _, p := range strings.Split(s, ",") {
		if v := strings.TrimSpace(p); v != "" {
			out = append(out, v)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}

// MayPairs reads a comma separated list of key=value pairs
// entries without '=' or with an empty side are skipped with a warning
func (c Conf) MayPairs(key string) map[string]string {
	out := map[string]string{}
	for _, item := range c.MayCSV(key, nil) {
		k, v, ok := strings.Cut(item, "=")
		k, v = strings.TrimSpace(k), strings.TrimSpace(v)
		if !ok || k == "" || v == "" {
			logger.Get().Warn().Str("key", c.key(key)).Msg("skipping malformed pair")
			continue
		}
		out[k] = v
	}
	return out
}

// MayEnum returns the value when it is one of allowed, def when empty
// any other value panics
func (c Conf) MayEnum(key, def string, allowed ...string) string {
	v := c.MayString(key, def)
	if v == "" {
		return v
	}
	for _, a := range allowed {
		if strings.EqualFold(v, a) {
			return strings.ToLower(a)
		}
	}
	logger.Get().Panic().Str("key", c.key(key)).Str("value", v).Strs("allowed", allowed).Msg("invalid enum value")
	return ""
}
