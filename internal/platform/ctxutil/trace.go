package ctxutil

import "context"

type traceDataKey struct{}

// TraceData identifies one API request. Middleware fills it in as the request
// passes through; services read it back to tag their own logs.
type TraceData struct {
	TraceID   string
	RequestID string
	UserID    uint
}

func WithTraceData(ctx context.Context, td *TraceData) context.Context {
	return context.WithValue(ctx, traceDataKey{}, td)
}

func GetTraceData(ctx context.Context) *TraceData {
	if ctx == nil {
		return nil
	}
	if td, ok := ctx.Value(traceDataKey{}).(*TraceData); ok {
		return td
	}
	return nil
}

// SetTraceUser records the authenticated user on the request's trace data.
// It is a no-op when ctx carries none.
func SetTraceUser(ctx context.Context, userID uint) {
	if td := GetTraceData(ctx); td != nil {
		td.UserID = userID
	}
}

// TraceFields returns the request identifiers in ctx as logger key/value pairs,
// skipping unset ones.
func TraceFields(ctx context.Context) []interface{} {
	td := GetTraceData(ctx)
	if td == nil {
		return nil
	}
	out := make([]interface{}, 0, 6)
	if td.RequestID != "" {
		out = append(out, "request_id", td.RequestID)
	}
	if td.TraceID != "" {
		out = append(out, "trace_id", td.TraceID)
	}
	if td.UserID != 0 {
		out = append(out, "user_id", td.UserID)
	}
	return out
}
