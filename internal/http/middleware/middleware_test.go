package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/jeevandwaar-backend/internal/platform/ctxutil"
)

func TestResolveLanguage(t *testing.T) {
	tests := []struct {
		name, header, query, accept, want string
	}{
		{name: "default", want: "hindi"},
		{name: "header wins", header: "english", query: "hindi", accept: "hi-IN", want: "english"},
		{name: "query", query: "en", want: "english"},
		{name: "bad header falls through", header: "tamil", query: "english", want: "english"},
		{name: "accept language", accept: "fr-FR, en-GB;q=0.8", want: "english"},
		{name: "accept hindi", accept: "hi-IN,hi;q=0.9", want: "hindi"},
		{name: "unknown accept", accept: "de-DE", want: "hindi"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ResolveLanguage(tt.header, tt.query, tt.accept); got != tt.want {
				t.Fatalf("ResolveLanguage: got %q want %q", got, tt.want)
			}
		})
	}
}

func TestRequestContextMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(AttachTraceContext(), AttachLanguage())
	var gotLang, gotReq string
	r.GET("/x", func(c *gin.Context) {
		gotLang = ctxutil.Language(c.Request.Context())
		if td := ctxutil.GetTraceData(c.Request.Context()); td != nil {
			gotReq = td.RequestID
		}
		c.Status(http.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodGet, "/x?lang=english", nil)
	req.Header.Set("X-Request-Id", "req-1")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if gotLang != "english" {
		t.Fatalf("language: got %q", gotLang)
	}
	if gotReq != "req-1" || rec.Header().Get("X-Request-Id") != "req-1" {
		t.Fatalf("request id: ctx=%q header=%q", gotReq, rec.Header().Get("X-Request-Id"))
	}
	if rec.Header().Get("X-Trace-Id") == "" {
		t.Fatalf("expected a trace id header")
	}
}
