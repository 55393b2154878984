package apierr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestStatusOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
		is   error
	}{
		{name: "not found", err: NotFound("policy"), want: http.StatusNotFound, is: ErrNotFound},
		{name: "conflict", err: Conflict("username taken"), want: http.StatusConflict, is: ErrConflict},
		{name: "unauthorized", err: Unauthorized("bad token"), want: http.StatusUnauthorized, is: ErrUnauthorized},
		{name: "bad request", err: BadRequest("bad age group"), want: http.StatusBadRequest, is: ErrInvalid},
		{name: "rate limited", err: TooManyRequests("slow down"), want: http.StatusTooManyRequests, is: ErrRateLimited},
		{name: "bad gateway", err: BadGateway("identity down"), want: http.StatusBadGateway, is: ErrUpstream},
		{name: "wrapped", err: fmt.Errorf("outer: %w", NotFound("user")), want: http.StatusNotFound, is: ErrNotFound},
		{name: "plain", err: errors.New("boom"), want: http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StatusOf(tt.err); got != tt.want {
				t.Fatalf("StatusOf: got %d want %d", got, tt.want)
			}
			if tt.is != nil && !errors.Is(tt.err, tt.is) {
				t.Fatalf("errors.Is(%v, %v) = false", tt.err, tt.is)
			}
		})
	}
	if got := NotFound("policy").Error(); got != "policy not found" {
		t.Fatalf("NotFound message: got %q", got)
	}
	if got := BadRequest("q is required").Error(); got != "q is required" {
		t.Fatalf("BadRequest message: got %q", got)
	}
}
