package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/jeevandwaar-backend/internal/platform/apierr"
	"github.com/yungbote/jeevandwaar-backend/internal/platform/logger"
	"github.com/yungbote/jeevandwaar-backend/internal/validation"
)

func TestRespondErr(t *testing.T) {
	gin.SetMode(gin.TestMode)
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantError  string
		hasDetails bool
	}{
		{name: "validation", err: &validation.Error{Fields: []validation.FieldError{{Path: "age", Rule: "type", Message: "expected integer"}}}, wantStatus: http.StatusBadRequest, wantError: "Invalid input data", hasDetails: true},
		{name: "not found", err: fmt.Errorf("get: %w", apierr.NotFound("policy")), wantStatus: http.StatusNotFound, wantError: "policy not found"},
		{name: "conflict", err: apierr.Conflict("username already exists"), wantStatus: http.StatusConflict, wantError: "username already exists"},
		{name: "bad gateway", err: apierr.BadGateway("identity provider unavailable"), wantStatus: http.StatusBadGateway, wantError: "identity provider unavailable"},
		{name: "opaque", err: errors.New("pq: connection refused"), wantStatus: http.StatusInternalServerError, wantError: "Failed to fetch policies"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(rec)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
			RespondErr(c, logger.Nop(), tt.err, "Failed to fetch policies")

			if rec.Code != tt.wantStatus {
				t.Fatalf("status: got %d want %d", rec.Code, tt.wantStatus)
			}
			var body map[string]any
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if body["error"] != tt.wantError {
				t.Fatalf("error: got %v want %q", body["error"], tt.wantError)
			}
			if _, ok := body["details"]; ok != tt.hasDetails {
				t.Fatalf("details present=%v want %v (%s)", ok, tt.hasDetails, rec.Body.String())
			}
		})
	}
}
