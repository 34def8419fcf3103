package logger

import (
	"github.com/fatih/color"
)

// Package-level printf-style functions, one per log level. Each behaves like
// fmt.Printf but writes in the color assigned to that level, so call sites
// stay as terse as logger.Info("[INFO] created %s\n", dir).

// Info prints informational messages in green.
var Info = color.New(color.FgGreen).PrintfFunc()

// Warn prints warnings in bright magenta.
var Warn = color.New(color.FgHiMagenta).PrintfFunc()

// Error prints errors in red.
var Error = color.New(color.FgRed).PrintfFunc()

// Debug prints diagnostic messages in cyan when debug logging is enabled.
// It is assigned by Init: a real printer when --debug is set, a no-op
// otherwise. Calling it before Init panics, so Init must run first in
// every entry point.
var Debug func(format string, a ...any)

// Init wires up the Debug function based on the --debug flag.
func Init(enableDebug bool) {
	if enableDebug {
		Debug = color.New(color.FgCyan).PrintfFunc()
	} else {
		Debug = func(format string, a ...any) {}
	}
}
