// Package timeouts provides centralized timeout values for handler
// operations, used with context.WithTimeout around database calls so
// every handler bounds its I/O the same way.
//
// Guidelines for choosing a timeout:
//   - Ping: health checks and connectivity verification
//   - Short: simple single-document reads or lookups
//   - Medium: list queries, moderate writes, multi-step reads
package timeouts

import "time"

const (
	ping   = 2 * time.Second
	short  = 5 * time.Second
	medium = 10 * time.Second
)

// Ping returns the timeout for health checks and connectivity
// verification.
func Ping() time.Duration { return ping }

// Short returns the timeout for simple operations like single-document
// reads. Examples: get by ID, lookup by email.
func Short() time.Duration { return short }

// Medium returns the timeout for moderate operations. Examples: list
// queries, filtered reads, creates and updates.
func Medium() time.Duration { return medium }
