package mycontext

import (
	"context"
	"net/http"
	"strings"

	"github.com/MarcGrol/selfcheckout/lib/myuuid"
)

// CtxTraceContext is a context key for the trace context (used by mylog)
type CtxTraceContext struct{}

const (
	requestIDHeader  = "X-Request-ID"
	cloudTraceHeader = "X-Cloud-Trace-Context"
)

func ContextFromHTTPRequest(r *http.Request) context.Context {
	return WithTrace(r.Context(), traceFromRequest(r))
}

func traceFromRequest(r *http.Request) string {
	if requestID := r.Header.Get(requestIDHeader); requestID != "" {
		return requestID
	}

	traceParts := strings.Split(r.Header.Get(cloudTraceHeader), "/")
	if len(traceParts) > 0 && len(traceParts[0]) > 0 {
		return traceParts[0]
	}

	return myuuid.RealUUIDer{}.Create()
}

func WithTrace(c context.Context, trace string) context.Context {
	return context.WithValue(c, CtxTraceContext{}, trace)
}

func TraceFromContext(c context.Context) string {
	if c == nil {
		return ""
	}
	trace, _ := c.Value(CtxTraceContext{}).(string)
	return trace
}
