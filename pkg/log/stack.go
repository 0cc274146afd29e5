// pkg/log/stack.go
// Copyright(c) 2024 gpxview contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package log

import (
	"path/filepath"
	"runtime"
	"strings"
)

const modulePath = "github.com/trackplot/gpxview/"

type StackFrame struct {
	File     string `json:"file"`
	Line     int    `json:"line"`
	Function string `json:"function"`
}

// Callstack returns the stack of the caller of the logging function,
// reusing fr's storage if it is large enough.
func Callstack(fr []StackFrame) []StackFrame {
	var callers [16]uintptr
	n := runtime.Callers(3, callers[:]) // skip up to function that is doing logging
	frames := runtime.CallersFrames(callers[:n])

	fr = fr[:0]
	for {
		frame, more := frames.Next()
		if frame.Function == "" {
			break
		}
		fr = append(fr, StackFrame{
			File:     filepath.Base(frame.File),
			Line:     frame.Line,
			Function: shortFunctionName(frame.Function),
		})

		// Don't keep going up into go runtime stack frames.
		if !more || frame.Function == "main.main" {
			break
		}
	}
	return fr
}

func shortFunctionName(fn string) string {
	fn = strings.TrimPrefix(fn, modulePath+"pkg/")
	fn = strings.TrimPrefix(fn, modulePath+"cmd/")
	return strings.TrimPrefix(fn, "main.")
}
