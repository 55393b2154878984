package apierr

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrUnauthorized = errors.New("unauthorized")
	ErrInvalid      = errors.New("invalid argument")
	ErrRateLimited  = errors.New("rate limited")
	ErrUpstream     = errors.New("upstream unavailable")
)

type Error struct {
	Status int
	Code   string
	Err    error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	if e.Code != "" {
		return e.Code
	}
	if e.Status != 0 {
		return fmt.Sprintf("api error (%d)", e.Status)
	}
	return "api error"
}

func (e *Error) Unwrap() error { return e.Err }

// kindErr carries a client-facing message while still matching its sentinel with errors.Is.
type kindErr struct {
	msg  string
	kind error
}

func (k *kindErr) Error() string { return k.msg }
func (k *kindErr) Unwrap() error { return k.kind }

func New(status int, code string, err error) *Error {
	return &Error{Status: status, Code: code, Err: err}
}

func NotFound(what string) *Error {
	return New(http.StatusNotFound, "not_found", &kindErr{msg: what + " not found", kind: ErrNotFound})
}

func Conflict(msg string) *Error {
	return New(http.StatusConflict, "conflict", &kindErr{msg: msg, kind: ErrConflict})
}

func Unauthorized(msg string) *Error {
	return New(http.StatusUnauthorized, "unauthorized", &kindErr{msg: msg, kind: ErrUnauthorized})
}

func BadRequest(msg string) *Error {
	return New(http.StatusBadRequest, "invalid_request", &kindErr{msg: msg, kind: ErrInvalid})
}

func TooManyRequests(msg string) *Error {
	return New(http.StatusTooManyRequests, "rate_limited", &kindErr{msg: msg, kind: ErrRateLimited})
}

func BadGateway(msg string) *Error {
	return New(http.StatusBadGateway, "upstream_unavailable", &kindErr{msg: msg, kind: ErrUpstream})
}

// StatusOf reports the HTTP status carried by err, or 500 when err is not an *Error.
func StatusOf(err error) int {
	var ae *Error
	if errors.As(err, &ae) && ae.Status != 0 {
		return ae.Status
	}
	return http.StatusInternalServerError
}
