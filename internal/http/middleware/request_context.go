package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"

	"github.com/yungbote/jeevandwaar-backend/internal/platform/ctxutil"
)

const (
	headerTraceID   = "X-Trace-Id"
	headerRequestID = "X-Request-Id"
	headerLanguage  = "X-Language"
)

// AttachTraceContext records trace and request ids on the context and echoes them back.
// An active otel span wins over a missing X-Trace-Id header.
func AttachTraceContext() gin.HandlerFunc {
	return func(c *gin.Context) {
		reqID := strings.TrimSpace(c.GetHeader(headerRequestID))
		if reqID == "" {
			reqID = uuid.NewString()
		}
		traceID := strings.TrimSpace(c.GetHeader(headerTraceID))
		if traceID == "" {
			if sc := trace.SpanContextFromContext(c.Request.Context()); sc.HasTraceID() {
				traceID = sc.TraceID().String()
			}
		}
		if traceID == "" {
			traceID = reqID
		}
		ctx := ctxutil.WithTraceData(c.Request.Context(), &ctxutil.TraceData{
			TraceID:   traceID,
			RequestID: reqID,
		})
		c.Request = c.Request.WithContext(ctx)
		c.Writer.Header().Set(headerTraceID, traceID)
		c.Writer.Header().Set(headerRequestID, reqID)
		c.Next()
	}
}

// AttachLanguage resolves the portal language for the request: X-Language, then ?lang=, then
// Accept-Language, then hindi.
func AttachLanguage() gin.HandlerFunc {
	return func(c *gin.Context) {
		lang := ResolveLanguage(c.GetHeader(headerLanguage), c.Query("lang"), c.GetHeader("Accept-Language"))
		rd := &ctxutil.RequestData{}
		if prev := ctxutil.GetRequestData(c.Request.Context()); prev != nil {
			*rd = *prev
		}
		rd.Language = lang
		c.Request = c.Request.WithContext(ctxutil.WithRequestData(c.Request.Context(), rd))
		c.Next()
	}
}

func ResolveLanguage(header, query, acceptLanguage string) string {
	for _, v := range []string{header, query} {
		if lang, ok := normalizeLanguage(v); ok {
			return lang
		}
	}
	for _, part := range strings.Split(acceptLanguage, ",") {
		tag := strings.TrimSpace(strings.SplitN(part, ";", 2)[0])
		if lang, ok := normalizeLanguage(tag); ok {
			return lang
		}
	}
	return ctxutil.LanguageHindi
}

func normalizeLanguage(v string) (string, bool) {
	v = strings.ToLower(strings.TrimSpace(v))
	switch {
	case v == "":
		return "", false
	case v == ctxutil.LanguageHindi || v == "hi" || strings.HasPrefix(v, "hi-"):
		return ctxutil.LanguageHindi, true
	case v == ctxutil.LanguageEnglish || v == "en" || strings.HasPrefix(v, "en-"):
		return ctxutil.LanguageEnglish, true
	}
	return "", false
}
