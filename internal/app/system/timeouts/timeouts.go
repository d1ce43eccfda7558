// Package timeouts provides centralized timeout values for handler
// operations.
//
// These are used with context.WithTimeout around storage calls so a slow
// database cannot pin a request indefinitely. All operations here are
// request-scoped; aborting simply cancels the pending storage call and the
// single-document write model means no partial state is left behind.
//
// Guidelines for choosing a tier:
//   - Ping: health checks and connectivity verification
//   - Short: single-document reads and writes
//   - Medium: list queries and fan-out reads over a group
package timeouts

import "time"

const (
	ping   = 2 * time.Second
	short  = 5 * time.Second
	medium = 10 * time.Second
)

// Ping returns the timeout for health checks.
func Ping() time.Duration { return ping }

// Short returns the timeout for single-document operations:
// get by id, upsert one module, append one member.
func Short() time.Duration { return short }

// Medium returns the timeout for list and fan-out queries:
// a facilitator's groups, a whole group's progress.
func Medium() time.Duration { return medium }
