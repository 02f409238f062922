// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package logger wraps zerolog for the task manager.
//
// The server logs JSON to stdout; the command-line client logs human-readable
// lines to stderr. Request-scoped loggers travel in the context: transport
// middleware attaches one carrying the trace id with [Logger.WithTraceID],
// and services and repositories pick it up again with [FromContext].
package logger

import (
	"context"
	"net/http"
	"os"
	"runtime"
	"sync"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// TraceIDField is the name of the field that correlates all entries of one
// request or call.
const TraceIDField = "trace_id"

// Logger embeds zerolog.Logger, so the whole zerolog API is available on it.
type Logger struct {
	zerolog.Logger
}

var setupGlobals sync.Once

// NewLogger returns the server logger. Every entry is JSON on stdout with
// the role, a timestamp and the calling function under "func".
// Debug entries are enabled.
func NewLogger(role string) *Logger {
	setupGlobals.Do(func() {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
		zerolog.CallerFieldName = "func"
		zerolog.CallerMarshalFunc = func(pc uintptr, _ string, _ int) string {
			return runtime.FuncForPC(pc).Name()
		}
	})

	return &Logger{
		zerolog.New(os.Stdout).With().
			Str("role", role).
			Timestamp().
			Caller().
			Logger(),
	}
}

// NewClientLogger returns the logger of command-line tools: console lines on
// stderr, Info and above, so stdout stays free for command output.
func NewClientLogger(role string) *Logger {
	out := zerolog.ConsoleWriter{Out: os.Stderr, NoColor: true}

	return &Logger{
		zerolog.New(out).Level(zerolog.InfoLevel).With().
			Str("role", role).
			Timestamp().
			Logger(),
	}
}

// Nop returns a logger that writes nothing. Meant for tests.
func Nop() *Logger {
	return &Logger{zerolog.Nop()}
}

func (l *Logger) GetChildLogger() *Logger {
	return &Logger{l.With().Logger()}
}

// WithTraceID returns a copy of ctx carrying a child of l tagged with
// traceID. Loggers obtained later via [FromContext] include the field.
func (l *Logger) WithTraceID(ctx context.Context, traceID string) context.Context {
	child := l.With().Str(TraceIDField, traceID).Logger()
	return child.WithContext(ctx)
}

// FromContext returns the logger attached to ctx. Without one, zerolog's
// disabled logger is returned, never nil.
func FromContext(ctx context.Context) *Logger {
	return &Logger{*log.Ctx(ctx)}
}

// FromRequest is [FromContext] for r.Context().
func FromRequest(r *http.Request) *Logger {
	return FromContext(r.Context())
}
