package obs

import "context"

type ctxKey int

const routeKey ctxKey = iota

// ContextWithRoute annotates the context with the matched router pattern so
// downstream instrumentation reports per-route instead of per-path.
func ContextWithRoute(ctx context.Context, pattern string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	if pattern == "" {
		return ctx
	}
	return context.WithValue(ctx, routeKey, pattern)
}

// RouteFromContext returns the annotated route pattern, or "" when absent.
func RouteFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	pattern, _ := ctx.Value(routeKey).(string)
	return pattern
}
