// Package tracing records simulation runs into databases and CSV files.
package tracing

import (
	"fmt"
	"reflect"

	"github.com/sarchlab/pagesim/hooking"
	"github.com/sarchlab/pagesim/replacement"
)

// A Tracer receives the events of simulation runs.
type Tracer interface {
	StartRun(info replacement.RunInfo)
	Step(step replacement.Step)
	EndRun(summary replacement.RunSummary)
}

// CollectTrace lets the tracer collect the runs of a simulator.
func CollectTrace(domain hooking.Hookable, tracer Tracer) {
	for _, hook := range domain.Hooks() {
		hook, ok := hook.(*traceHook)
		if ok && hook.t == tracer {
			panic(fmt.Sprintf(
				"domain already has tracer %s", reflect.TypeOf(tracer)))
		}
	}

	domain.AcceptHook(NewTraceHook(tracer))
}

// NewTraceHook wraps a tracer into a hook, for components that attach the
// hooks themselves.
func NewTraceHook(tracer Tracer) hooking.Hook {
	return &traceHook{t: tracer}
}

// A traceHook is a hook that forwards run events to a tracer.
type traceHook struct {
	t Tracer
}

// Func calls the tracer interfaces when the hook is triggered
func (h *traceHook) Func(ctx hooking.HookCtx) {
	switch ctx.Pos {
	case replacement.HookPosRunStart:
		h.t.StartRun(ctx.Item.(replacement.RunInfo))
	case replacement.HookPosStep:
		h.t.Step(ctx.Item.(replacement.Step))
	case replacement.HookPosRunEnd:
		h.t.EndRun(ctx.Item.(replacement.RunSummary))
	}
}
