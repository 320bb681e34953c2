package build

import (
	"time"

	"github.com/sofmeright/crossfreight/src/target"
)

// Result captures the outcome of building one target's plan.
type Result struct {
	Target   target.Target
	Images   []string // images built, in order
	Duration time.Duration
	Err      error
}

// Status is "success", "failed" or "skipped" (nothing to build).
func (r Result) Status() string {
	switch {
	case r.Err != nil:
		return "failed"
	case len(r.Images) == 0:
		return "skipped"
	default:
		return "success"
	}
}
