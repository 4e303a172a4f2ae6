package rotalog

import (
	"bytes"
	"fmt"
	"io"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/valyala/fasttemplate"
)

// timestampLayout renders wall-clock time as "dd-mm-yy HH:MM:SS.mmm",
// local time, millisecond precision.
const timestampLayout = "02-01-06 15:04:05.000"

func timestampString() string {
	return time.Now().Format(timestampLayout)
}

// callSite identifies where a log statement was issued.
type callSite struct {
	file     string
	function string
	line     int
}

// callerInfo captures the call site skip frames above callerInfo itself.
func callerInfo(skip int) callSite {
	pc, file, line, ok := runtime.Caller(skip)
	if !ok {
		return callSite{file: "unknown", function: "unknown"}
	}

	function := "unknown"
	if fn := runtime.FuncForPC(pc); fn != nil {
		fullFunc := fn.Name()
		if lastSlash := strings.LastIndexByte(fullFunc, '/'); lastSlash >= 0 {
			fullFunc = fullFunc[lastSlash+1:]
		}
		if lastDot := strings.LastIndexByte(fullFunc, '.'); lastDot >= 0 {
			function = fullFunc[lastDot+1:]
		} else {
			function = fullFunc
		}
	}

	return callSite{file: shortFileName(file), function: function, line: line}
}

// shortFileName strips the directory component from a call-site path,
// accepting either separator style.
func shortFileName(path string) string {
	if i := strings.LastIndexByte(path, '/'); i >= 0 {
		path = path[i+1:]
	}
	if i := strings.LastIndexByte(path, '\\'); i >= 0 {
		path = path[i+1:]
	}
	return path
}

// goroutineID extracts the numeric goroutine ID from the runtime.Stack
// header line ("goroutine 7 [running]: ...").
func goroutineID() string {
	buf := make([]byte, 64)
	buf = buf[:runtime.Stack(buf, false)]
	if rest, ok := strings.CutPrefix(string(buf), "goroutine "); ok {
		if space := strings.IndexByte(rest, ' '); space > 0 {
			return rest[:space]
		}
	}
	return "unknown"
}

// formatLine composes a single output line into buf:
//
//	<color>[LEVEL]<reset>: timestamp [goroutine: N] file - `func` (line) : message
func (l *Logger) formatLine(buf *bytes.Buffer, level LogLevel, message string, site callSite) {
	if l.colorsEnabled {
		buf.WriteString(level.colorCode())
	}
	buf.WriteString(level.tag())
	if l.colorsEnabled {
		buf.WriteString(colorReset)
	}
	buf.WriteString(": ")
	buf.WriteString(timestampString())
	buf.WriteString(" [goroutine: ")
	buf.WriteString(goroutineID())
	buf.WriteString("] ")
	buf.WriteString(site.file)
	buf.WriteString(" - `")
	buf.WriteString(site.function)
	buf.WriteString("` (")
	buf.WriteString(strconv.Itoa(site.line))
	buf.WriteString(") : ")
	buf.WriteString(message)
	buf.WriteByte('\n')
}

// expandTemplate substitutes args into "{}" placeholders in order. A
// placeholder without an argument, an argument without a placeholder, a
// non-empty placeholder, or an unterminated brace all yield an error
// wrapping ErrFormat.
func expandTemplate(template string, args []interface{}) (string, error) {
	t, err := fasttemplate.NewTemplate(template, "{", "}")
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrFormat, err)
	}

	next := 0
	expanded, err := t.ExecuteFuncStringWithErr(func(w io.Writer, tag string) (int, error) {
		if tag != "" {
			return 0, fmt.Errorf("unsupported placeholder {%s}", tag)
		}
		if next >= len(args) {
			return 0, fmt.Errorf("no argument for placeholder #%d", next+1)
		}
		n, err := fmt.Fprintf(w, "%v", args[next])
		next++
		return n, err
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrFormat, err)
	}
	if next < len(args) {
		return "", fmt.Errorf("%w: %d argument(s) without a placeholder", ErrFormat, len(args)-next)
	}
	return expanded, nil
}
