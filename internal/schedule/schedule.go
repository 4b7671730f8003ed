// Package schedule runs periodic jobs behind explicit stop handles.
package schedule

import "time"

// Handle stops one periodic job. Stop is idempotent.
type Handle interface {
	Stop()
}

// Runner starts periodic jobs.
type Runner interface {
	Every(interval time.Duration, job func()) (Handle, error)
}
