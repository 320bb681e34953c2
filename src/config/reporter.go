package config

import (
	"strings"

	"github.com/charmbracelet/log"
)

// Reporter receives non-fatal configuration diagnostics.
type Reporter interface {
	// UnusedKeys is called once per source that contained keys with no
	// matching field. keys are dotted paths in sorted order.
	UnusedKeys(source string, keys []string)
}

// ReporterFunc adapts a function to Reporter.
type ReporterFunc func(source string, keys []string)

func (f ReporterFunc) UnusedKeys(source string, keys []string) { f(source, keys) }

// DiscardReporter drops every diagnostic.
var DiscardReporter Reporter = ReporterFunc(func(string, []string) {})

// LogReporter writes diagnostics as warnings to a logger.
type LogReporter struct {
	Logger *log.Logger
}

func (r LogReporter) UnusedKeys(source string, keys []string) {
	r.Logger.Warn("found unused key(s) in configuration",
		"source", source,
		"keys", strings.Join(keys, ", "),
	)
}
