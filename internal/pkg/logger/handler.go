package logger

import (
	"context"
	"errors"
	log "log/slog"
)

// TeeHandler 将日志分发到多个 Handler，单个下游失败不影响其余下游
type TeeHandler struct {
	handlers []log.Handler
}

func NewTeeHandler(handlers ...log.Handler) *TeeHandler {
	return &TeeHandler{handlers: handlers}
}

func (t *TeeHandler) Enabled(ctx context.Context, level log.Level) bool {
	for _, h := range t.handlers {
		if h.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (t *TeeHandler) Handle(ctx context.Context, r log.Record) error {
	var errs []error
	for _, h := range t.handlers {
		if !h.Enabled(ctx, r.Level) {
			continue
		}
		if err := h.Handle(ctx, r.Clone()); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (t *TeeHandler) WithAttrs(attrs []log.Attr) log.Handler {
	return &TeeHandler{handlers: mapHandlers(t.handlers, func(h log.Handler) log.Handler { return h.WithAttrs(attrs) })}
}

func (t *TeeHandler) WithGroup(name string) log.Handler {
	return &TeeHandler{handlers: mapHandlers(t.handlers, func(h log.Handler) log.Handler { return h.WithGroup(name) })}
}

func mapHandlers(in []log.Handler, fn func(log.Handler) log.Handler) []log.Handler {
	out := make([]log.Handler, len(in))
	for i, h := range in {
		out[i] = fn(h)
	}
	return out
}

// FilterHandler 只把 accept 返回 true 的记录交给下游
type FilterHandler struct {
	next   log.Handler
	accept func(log.Record) bool
}

func NewFilterHandler(next log.Handler, accept func(log.Record) bool) *FilterHandler {
	return &FilterHandler{next: next, accept: accept}
}

// NewRemoteFilterHandler 远程上报只保留带 trace_id 的记录，即请求与任务链路上的日志
func NewRemoteFilterHandler(next log.Handler) *FilterHandler {
	return NewFilterHandler(next, hasTraceID)
}

func (f *FilterHandler) Enabled(ctx context.Context, level log.Level) bool {
	return f.next.Enabled(ctx, level)
}

func (f *FilterHandler) Handle(ctx context.Context, r log.Record) error {
	if !f.accept(r) {
		return nil
	}
	return f.next.Handle(ctx, r)
}

func (f *FilterHandler) WithAttrs(attrs []log.Attr) log.Handler {
	return &FilterHandler{next: f.next.WithAttrs(attrs), accept: f.accept}
}

func (f *FilterHandler) WithGroup(name string) log.Handler {
	return &FilterHandler{next: f.next.WithGroup(name), accept: f.accept}
}

func hasTraceID(r log.Record) bool {
	found := false
	r.Attrs(func(a log.Attr) bool {
		if a.Key == string(TraceIDKey) && a.Value.String() != "" {
			found = true
			return false
		}
		return true
	})
	return found
}
