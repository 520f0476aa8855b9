//go:build !flashjson_debug

package stage2

// logStart, logLine and logError are no-ops in production builds. See
// logger_debug.go for the flashjson_debug build.
func logStart()                                 {}
func logLine(depth int, sign, kind, detail string) {}
func logError(depth int, detail string)         {}
