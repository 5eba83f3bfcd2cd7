package middleware

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	otelcodes "go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "lead-crm/backend/internal/server/middleware"

// Telemetry returns a gin middleware that starts a server span per request and
// counts completed requests. Uses the global TracerProvider and MeterProvider,
// so it no-ops when telemetry export is not configured.
func Telemetry() gin.HandlerFunc {
	tracer := otel.Tracer(instrumentationName)
	meter := otel.Meter(instrumentationName)
	counter, _ := meter.Int64Counter("http.server.requests",
		metric.WithDescription("Completed HTTP requests"))

	return func(c *gin.Context) {
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		ctx, span := tracer.Start(c.Request.Context(), c.Request.Method+" "+route,
			trace.WithSpanKind(trace.SpanKindServer))
		c.Request = c.Request.WithContext(ctx)

		c.Next()

		status := c.Writer.Status()
		attrs := []attribute.KeyValue{
			attribute.String("http.request.method", c.Request.Method),
			attribute.String("http.route", route),
			attribute.Int("http.response.status_code", status),
		}
		span.SetAttributes(attrs...)
		if status >= 500 {
			span.SetStatus(otelcodes.Error, "server error")
		}
		span.End()
		if counter != nil {
			counter.Add(ctx, 1, metric.WithAttributes(attrs...))
		}
	}
}
