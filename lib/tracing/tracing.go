package tracing

import (
	"context"
	"fmt"
	"hikelog/lib/environment"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
)

// Tracer delegates to the global provider, so spans become real once InitTracing has run.
var (
	Tracer   trace.Tracer = otel.Tracer("hikelog")
	provider *sdktrace.TracerProvider
)

func newOTLPExporter(ctx context.Context, endpoint string) (sdktrace.SpanExporter, error) {
	return otlptracehttp.New(ctx, otlptracehttp.WithInsecure(), otlptracehttp.WithEndpoint(endpoint))
}

func newTraceProvider(name string, env *environment.EnvironmentService, exp sdktrace.SpanExporter) (*sdktrace.TracerProvider, error) {
	r, err := resource.Merge(
		resource.Default(),
		resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(name),
			semconv.DeploymentEnvironment(env.GetEnv().String()),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("build trace resource: %w", err)
	}

	return sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exp),
		sdktrace.WithResource(r),
	), nil
}

// InitTracing installs a provider for the configured exporter. With no exporter configured the
// global no-op provider stays in place.
func InitTracing(ctx context.Context, name string, env *environment.EnvironmentService) error {
	var (
		exp sdktrace.SpanExporter
		err error
	)

	switch {
	case env.GetOTLPEndpoint() != "":
		exp, err = newOTLPExporter(ctx, env.GetOTLPEndpoint())
	case env.GetTraceStdout():
		exp, err = stdouttrace.New(stdouttrace.WithPrettyPrint())
	default:
		return nil
	}
	if err != nil {
		slog.Error("Failed to create trace exporter", "error", err)
		return err
	}

	provider, err = newTraceProvider(name, env, exp)
	if err != nil {
		return err
	}
	otel.SetTracerProvider(provider)
	otel.SetTextMapPropagator(propagation.TraceContext{})

	return nil
}

func Teardown(ctx context.Context) {
	if provider == nil {
		return
	}
	_ = provider.Shutdown(ctx)
}

type responseWriter struct {
	http.ResponseWriter
	statusCode int
	size       int
}

func (rw *responseWriter) WriteHeader(statusCode int) {
	rw.statusCode = statusCode
	rw.ResponseWriter.WriteHeader(statusCode)
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	size, err := rw.ResponseWriter.Write(b)
	rw.size += size
	return size, err
}

// https://github.com/go-chi/chi/issues/270#issuecomment-479184559
func getRoutePattern(r *http.Request) string {
	rctx := chi.RouteContext(r.Context())
	if rctx == nil {
		return r.URL.Path
	}
	if pattern := rctx.RoutePattern(); pattern != "" {
		return pattern
	}

	routePath := r.URL.Path
	if r.URL.RawPath != "" {
		routePath = r.URL.RawPath
	}

	tctx := chi.NewRouteContext()
	if !rctx.Routes.Match(tctx, r.Method, routePath) {
		return routePath
	}

	// Match mutates tctx
	return tctx.RoutePattern()
}

// requestLevel keeps static asset and track downloads out of the info log.
func requestLevel(path string, status int) slog.Level {
	switch {
	case status >= 500:
		return slog.LevelError
	case status >= 400:
		return slog.LevelWarn
	case strings.HasPrefix(path, "/static/"):
		return slog.LevelDebug
	default:
		return slog.LevelInfo
	}
}

// NewOpenTelemetryMiddleware opens a span per request named after the chi route pattern and
// logs the response. Requests for a single trail carry the track file name as trail.file.
func NewOpenTelemetryMiddleware(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// websocket upgrades need the raw ResponseWriter
			if r.URL.Path == "/ws" {
				next.ServeHTTP(w, r)
				return
			}

			start := time.Now()
			ctx := otel.GetTextMapPropagator().Extract(r.Context(), propagation.HeaderCarrier(r.Header))
			route := getRoutePattern(r)
			name := r.Method + " " + route

			ctx, span := Tracer.Start(ctx, name, trace.WithAttributes(
				semconv.HTTPRequestMethodKey.String(r.Method),
				semconv.HTTPRoute(route),
			))
			defer span.End()

			rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
			r = r.WithContext(ctx)
			next.ServeHTTP(rw, r)

			attrs := []slog.Attr{
				slog.String("url", r.URL.String()),
				slog.Int("status", rw.statusCode),
				slog.Int("responseSize", rw.size),
				slog.Duration("duration", time.Since(start)),
			}
			if file := chi.URLParam(r, "file"); file != "" {
				span.SetAttributes(attribute.String("trail.file", file))
				attrs = append(attrs, slog.String("file", file))
			}
			logger.LogAttrs(ctx, requestLevel(r.URL.Path, rw.statusCode), "Responded to "+name, attrs...)

			if rw.statusCode >= 500 {
				span.SetStatus(codes.Error, fmt.Sprintf("HTTP %d", rw.statusCode))
			}
			span.SetAttributes(
				semconv.HTTPResponseStatusCode(rw.statusCode),
				semconv.HTTPResponseBodySize(rw.size),
			)
		})
	}
}
