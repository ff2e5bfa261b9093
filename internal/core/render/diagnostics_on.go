//go:build diagnostics

package render

// DiagnosticsBuild is true when built with -tags diagnostics.
const DiagnosticsBuild = true
