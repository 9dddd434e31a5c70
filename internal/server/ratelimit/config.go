// Defines rate limit tiers and routing rules.

package ratelimit

import (
	"net/http"
	"time"
)

// Tier is a named rate limit applied per client IP.
type Tier struct {
	Name    string
	Limiter *Limiter
}

// Config holds the limiters of each tier. A nil *Config or a tier with a nil
// Limiter does not limit anything.
type Config struct {
	Write Tier
	Read  Tier
}

// NewConfig creates the write and read tiers from per-minute limits. A limit
// of 0 disables the tier.
func NewConfig(writePerMin, readPerMin int) *Config {
	c := &Config{Write: Tier{Name: "write"}, Read: Tier{Name: "read"}}
	if writePerMin > 0 {
		c.Write.Limiter = NewLimiter(writePerMin, time.Minute, max(writePerMin/6, 1))
	}
	if readPerMin > 0 {
		c.Read.Limiter = NewLimiter(readPerMin, time.Minute, max(readPerMin/6, 1))
	}
	return c
}

// Match returns the tier for a request, or nil for requests that are not
// rate limited.
func (c *Config) Match(method, path string) *Tier {
	if c == nil || path == "/api/health" || path == "/metrics" {
		return nil
	}
	var t *Tier
	switch method {
	case http.MethodGet, http.MethodHead:
		t = &c.Read
	case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		t = &c.Write
	default:
		return nil
	}
	if t.Limiter == nil {
		return nil
	}
	return t
}

// Close stops all limiter cleanup goroutines.
func (c *Config) Close() {
	if c == nil {
		return
	}
	for _, t := range []*Tier{&c.Write, &c.Read} {
		if t.Limiter != nil {
			t.Limiter.Close()
		}
	}
}
