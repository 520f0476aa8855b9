//go:build flashjson_debug

package stage2

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
)

// debugOut is stderr wrapped for ANSI passthrough on Windows terminals when
// stderr is a real terminal, matching how the C++ original's built-in
// logger only produces output when compiled with SIMDJSON_VERBOSE_LOGGING;
// here the equivalent gate is the flashjson_debug build tag.
var debugOut = newDebugWriter()

func newDebugWriter() io.Writer {
	if isatty.IsTerminal(os.Stderr.Fd()) {
		return colorable.NewColorableStderr()
	}
	return os.Stderr
}

var logDepth int

func logStart() {
	logDepth = 0
	fmt.Fprintln(debugOut, "\x1b[34m--- structural_parser start ---\x1b[0m")
}

func logLine(depth int, sign, kind, detail string) {
	indent := strings.Repeat("  ", depth)
	fmt.Fprintf(debugOut, "%s\x1b[36m%s%s\x1b[0m %s\n", indent, sign, kind, detail)
}

func logError(depth int, detail string) {
	indent := strings.Repeat("  ", depth)
	fmt.Fprintf(debugOut, "%s\x1b[31mERROR %s\x1b[0m\n", indent, detail)
}
