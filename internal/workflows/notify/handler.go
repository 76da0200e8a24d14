// SPDX-License-Identifier: Apache-2.0

package notify

import (
	"context"

	"github.com/automa-saga/automa"
	"github.com/automa-saga/logx"
	"github.com/rs/zerolog"
)

type ctxKey string

const traceIdKey ctxKey = "trace_id"

// WithTraceId returns a context carrying the id used to correlate all step events of one invocation.
func WithTraceId(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, traceIdKey, id)
}

// TraceId returns the trace id stored in ctx, or an empty string.
func TraceId(ctx context.Context) string {
	if ctx == nil {
		return ""
	}

	id, _ := ctx.Value(traceIdKey).(string)
	return id
}

func event(ctx context.Context, e *zerolog.Event, stp automa.Step) *zerolog.Event {
	e = e.Str("step_id", stp.Id())
	if id := TraceId(ctx); id != "" {
		e = e.Str("trace_id", id)
	}

	return e
}

// Default handler writes step events to the global logger.
var handler = &Handler{
	StepStart: func(ctx context.Context, stp automa.Step, msg string, args ...interface{}) {
		event(ctx, logx.As().Info(), stp).Msgf(msg, args...)
	},
	StepCompletion: func(ctx context.Context, stp automa.Step, report *automa.Report, msg string, args ...interface{}) {
		e := event(ctx, logx.As().Info(), stp).Str("status", report.Status.String())
		for k, v := range report.Metadata {
			e = e.Str(k, v)
		}
		e.Msgf(msg, args...)
	},
	StepFailure: func(ctx context.Context, stp automa.Step, report *automa.Report, msg string, args ...interface{}) {
		// report the innermost failing step so the operator sees which installer operation broke
		cause := report
		for _, sr := range report.StepReports {
			if sr.HasError() {
				cause = sr
				break
			}
		}

		e := event(ctx, logx.As().Error().Err(report.Error), stp).Str("status", report.Status.String())
		if cause.Id != report.Id {
			e = e.Str("failed_step_id", cause.Id).Str("failed_step_error", cause.Error.Error())
		}

		e.Msgf(msg, args...)
	},
}

// Handler groups the callbacks invoked around workflow and step execution.
type Handler struct {
	StepStart      func(ctx context.Context, stp automa.Step, msg string, args ...interface{})
	StepCompletion func(ctx context.Context, stp automa.Step, report *automa.Report, msg string, args ...interface{})
	StepFailure    func(ctx context.Context, stp automa.Step, report *automa.Report, msg string, args ...interface{})
}

// SetDefault replaces the non-nil callbacks of the default handler.
func SetDefault(h *Handler) {
	if h == nil {
		return
	}

	if h.StepStart != nil {
		handler.StepStart = h.StepStart
	}

	if h.StepCompletion != nil {
		handler.StepCompletion = h.StepCompletion
	}

	if h.StepFailure != nil {
		handler.StepFailure = h.StepFailure
	}
}

// As returns the current handler.
func As() *Handler {
	return handler
}
