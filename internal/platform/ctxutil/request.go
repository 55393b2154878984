package ctxutil

import "context"

const (
	LanguageHindi   = "hindi"
	LanguageEnglish = "english"
)

type (
	requestDataKey struct{}
	traceDataKey   struct{}
)

// RequestData carries per-request portal state: the resolved UI language and,
// when a bearer token was presented, the verified identity.
type RequestData struct {
	Language string
	UserID   string
	Name     string
	Role     string
}

// TraceData correlates log lines and responses for one request. TraceID is the
// OpenTelemetry trace when one is active, else the request id.
type TraceData struct {
	TraceID   string
	RequestID string
}

func WithRequestData(ctx context.Context, rd *RequestData) context.Context {
	return context.WithValue(ctx, requestDataKey{}, rd)
}

func GetRequestData(ctx context.Context) *RequestData {
	if ctx == nil {
		return nil
	}
	if rd, ok := ctx.Value(requestDataKey{}).(*RequestData); ok {
		return rd
	}
	return nil
}

// Language returns the request language, defaulting to hindi.
func Language(ctx context.Context) string {
	if rd := GetRequestData(ctx); rd != nil && rd.Language != "" {
		return rd.Language
	}
	return LanguageHindi
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

// RequestID is "" outside the trace middleware.
func RequestID(ctx context.Context) string {
	if td := GetTraceData(ctx); td != nil {
		return td.RequestID
	}
	return ""
}
