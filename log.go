// Copyright ©2025 The Gonum Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package qp

import (
	"fmt"
	"io"
	"strings"

	"gonum.org/v1/gonum/blas/blas64"
)

// LogFlags is a bitmask selecting which records a Logger emits.
type LogFlags uint32

const (
	// LogInput selects the problem data received by Solve.
	LogInput LogFlags = 1 << iota
	// LogTermination selects the termination report.
	LogTermination
	// LogIterationBasic selects the per-iteration primal-dual point.
	LogIterationBasic
	// LogIterationAdvanced selects the internal step computation data.
	LogIterationAdvanced
	// LogActiveSet selects activation and deactivation events.
	LogActiveSet
	// LogActiveSetDetails selects the full active set at each iteration.
	LogActiveSetDetails
	// LogInit selects the initial factorization data.
	LogInit

	// LogMisc selects records that fit no other category.
	LogMisc LogFlags = 1 << 30
	// LogNoIter marks a record as belonging to the static header rather
	// than to the current iteration. It is combined with one of the other
	// flags and never selects records on its own.
	LogNoIter LogFlags = 1 << 31
)

// Logger writes named values as a text stream filtered by a flag bitmask.
// Records are formatted so that vector and matrix values can be
// reconstructed post-mortem; the format is MATLAB-compatible assignments
// under a single variable name.
//
// Logging is a side channel: solver results do not depend on the flag set.
type Logger struct {
	flags LogFlags
	w     io.Writer
	name  string
	iter  int
}

func newLogger(name string) Logger {
	return Logger{name: name, iter: -1}
}

// SetFlags replaces the filter bitmask.
func (l *Logger) SetFlags(flags LogFlags) { l.flags = flags }

// SetOutput replaces the output sink. A nil writer disables output.
func (l *Logger) SetOutput(w io.Writer) { l.w = w }

// Reset prepares the logger for a new solve.
func (l *Logger) Reset() { l.iter = -1 }

// StartIter declares that iteration i is starting. Subsequent records
// without the LogNoIter flag are attributed to this iteration.
func (l *Logger) StartIter(i int) {
	l.iter = i
	if l.enabled(^LogFlags(0)) {
		fmt.Fprintf(l.w, "%s.iter(%d).it = %d;\n", l.name, i+1, i)
	}
}

// Comment writes a free-form comment if flags pass the filter.
func (l *Logger) Comment(flags LogFlags, c string) {
	if !l.enabled(flags) {
		return
	}
	fmt.Fprintf(l.w, "%% %s\n", c)
}

// Log writes a sequence of (name, value) pairs if flags pass the filter.
// Supported value types are float64, int, bool, []float64, []int,
// []ActivationStatus, blas64.General and fmt.Stringer.
func (l *Logger) Log(flags LogFlags, args ...interface{}) {
	if !l.enabled(flags) {
		return
	}
	static := flags&LogNoIter != 0 || l.iter < 0
	for i := 0; i+1 < len(args); i += 2 {
		name, ok := args[i].(string)
		if !ok {
			panic("qp: log record name is not a string")
		}
		if static {
			fmt.Fprintf(l.w, "%s.%s = %s;\n", l.name, name, formatValue(args[i+1]))
		} else {
			fmt.Fprintf(l.w, "%s.iter(%d).%s = %s;\n", l.name, l.iter+1, name, formatValue(args[i+1]))
		}
	}
}

func (l *Logger) enabled(flags LogFlags) bool {
	return l.w != nil && l.flags&flags&^LogNoIter != 0
}

func formatValue(v interface{}) string {
	switch v := v.(type) {
	case float64:
		return fmt.Sprintf("%v", v)
	case int:
		return fmt.Sprintf("%d", v)
	case bool:
		if v {
			return "true"
		}
		return "false"
	case []float64:
		var sb strings.Builder
		sb.WriteByte('[')
		for i, e := range v {
			if i > 0 {
				sb.WriteString("; ")
			}
			fmt.Fprintf(&sb, "%v", e)
		}
		sb.WriteByte(']')
		return sb.String()
	case []int:
		var sb strings.Builder
		sb.WriteByte('[')
		for i, e := range v {
			if i > 0 {
				sb.WriteString(", ")
			}
			fmt.Fprintf(&sb, "%d", e)
		}
		sb.WriteByte(']')
		return sb.String()
	case []ActivationStatus:
		var sb strings.Builder
		sb.WriteByte('[')
		for i, e := range v {
			if i > 0 {
				sb.WriteString(", ")
			}
			fmt.Fprintf(&sb, "%d", int(e))
		}
		sb.WriteByte(']')
		return sb.String()
	case blas64.General:
		var sb strings.Builder
		sb.WriteByte('[')
		for i := 0; i < v.Rows; i++ {
			if i > 0 {
				sb.WriteString("; ")
			}
			for j := 0; j < v.Cols; j++ {
				if j > 0 {
					sb.WriteString(", ")
				}
				fmt.Fprintf(&sb, "%v", v.Data[i*v.Stride+j])
			}
		}
		sb.WriteByte(']')
		return sb.String()
	case fmt.Stringer:
		return fmt.Sprintf("%q", v.String())
	default:
		return fmt.Sprintf("%v", v)
	}
}
