package api

import (
	"context"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	toolSpanName    = "api.tool.call"
	toolEventName   = "todo.tool.call"
	toolEventDomain = "todo-manager"
)

// toolCallMetrics observes one tool invocation: a span for tracing plus a
// structured log entry carrying the same attributes.
type toolCallMetrics struct {
	logger *log.Logger
	span   trace.Span

	start            time.Time
	authDuration     time.Duration
	dispatchDuration time.Duration
	tool             string
	isError          bool
	errorStage       string
}

func newToolCallMetrics(ctx context.Context, logger *log.Logger) (*toolCallMetrics, context.Context) {
	spanCtx, span := otel.Tracer("todo-manager-api").Start(ctx, toolSpanName)
	return &toolCallMetrics{logger: logger, span: span, start: time.Now()}, spanCtx
}

func (m *toolCallMetrics) SetTool(name string) {
	m.tool = name
}

func (m *toolCallMetrics) ObserveAuth(duration time.Duration) {
	if duration <= 0 {
		return
	}
	m.authDuration = duration
}

func (m *toolCallMetrics) ObserveDispatch(duration time.Duration) {
	if duration <= 0 {
		return
	}
	m.dispatchDuration = duration
}

func (m *toolCallMetrics) SetIsError(isError bool) {
	m.isError = isError
}

func (m *toolCallMetrics) SetErrorStage(stage string) {
	if stage == "" {
		return
	}
	m.errorStage = stage
}

// Log finishes the span and emits the observability event. Call exactly once.
func (m *toolCallMetrics) Log(status int, err error) {
	if m == nil {
		return
	}

	totalMs := durationToMillis(time.Since(m.start))
	severityText, severityNumber := severityForStatus(status, err)

	attrs := []attribute.KeyValue{
		attribute.String("http.route", "/api/tools/:name"),
		attribute.Int("http.status_code", status),
		attribute.String("todo.tool.name", m.tool),
		attribute.Float64("todo.tool.total_ms", totalMs),
		attribute.Bool("todo.tool.is_error", m.isError),
	}
	if m.authDuration > 0 {
		attrs = append(attrs, attribute.Float64("todo.tool.auth_ms", durationToMillis(m.authDuration)))
	}
	if m.dispatchDuration > 0 {
		attrs = append(attrs, attribute.Float64("todo.tool.dispatch_ms", durationToMillis(m.dispatchDuration)))
	}
	if m.errorStage != "" {
		attrs = append(attrs, attribute.String("todo.tool.error_stage", m.errorStage))
	}
	if err != nil {
		attrs = append(attrs, attribute.String("error.message", err.Error()))
	}

	if m.span != nil {
		m.span.SetAttributes(attrs...)
		eventAttrs := append([]attribute.KeyValue{
			attribute.String("event.name", toolEventName),
			attribute.String("event.domain", toolEventDomain),
			attribute.String("severity_text", severityText),
			attribute.Int("severity_number", severityNumber),
		}, attrs...)
		m.span.AddEvent("observability.event", trace.WithAttributes(eventAttrs...))
		if err != nil || status >= http.StatusInternalServerError {
			msg := http.StatusText(status)
			if err != nil {
				msg = err.Error()
			}
			m.span.SetStatus(codes.Error, msg)
		} else {
			m.span.SetStatus(codes.Ok, "")
		}
		m.span.End()
	}

	if m.logger == nil {
		return
	}

	attrMap := make(map[string]any, len(attrs))
	for _, kv := range attrs {
		attrMap[string(kv.Key)] = kv.Value.AsInterface()
	}
	fields := log.Fields{
		"event.name":      toolEventName,
		"event.domain":    toolEventDomain,
		"attributes":      attrMap,
		"severity_text":   severityText,
		"severity_number": severityNumber,
	}
	if m.span != nil {
		if sc := m.span.SpanContext(); sc.HasTraceID() {
			fields["trace_id"] = sc.TraceID().String()
		}
	}
	m.logger.WithFields(fields).Info("observability.event")
}

func severityForStatus(status int, err error) (string, int) {
	switch {
	case err != nil || status >= http.StatusInternalServerError:
		return "ERROR", 17
	case status >= http.StatusBadRequest:
		return "WARN", 13
	default:
		return "INFO", 9
	}
}

func durationToMillis(d time.Duration) float64 {
	if d <= 0 {
		return 0
	}
	return float64(d) / float64(time.Millisecond)
}
