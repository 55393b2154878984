// Package validation is the request schema gate. Bodies are decoded strictly (no unknown fields,
// no trailing data, no type coercion) and then checked against `binding` struct tags. The first
// violation rejects the whole request.
package validation

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// FieldError describes one schema violation. Path uses JSON field names joined by dots.
type FieldError struct {
	Path    string `json:"path"`
	Rule    string `json:"rule"`
	Message string `json:"message"`
}

type Error struct {
	Fields []FieldError
}

func (e *Error) Error() string {
	if e == nil || len(e.Fields) == 0 {
		return "invalid input"
	}
	f := e.Fields[0]
	if f.Path == "" {
		return f.Message
	}
	return f.Path + ": " + f.Message
}

func fieldErr(path, rule, msg string) *Error {
	return &Error{Fields: []FieldError{{Path: path, Rule: rule, Message: msg}}}
}

var (
	once     sync.Once
	validate *validator.Validate
)

func engine() *validator.Validate {
	once.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.SetTagName("binding")
		validate.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name == "" {
				return f.Name
			}
			return name
		})
		_ = validate.RegisterValidation("notblank", notBlank)
	})
	return validate
}

// BindJSON decodes the gin request body into dst and validates it.
func BindJSON(c *gin.Context, dst any) error {
	return DecodeJSON(c.Request.Body, dst)
}

// BindOptionalJSON is BindJSON for endpoints whose body may be omitted. It reports
// whether a body was present; an empty or whitespace-only body leaves dst untouched.
func BindOptionalJSON(c *gin.Context, dst any) (bool, error) {
	return DecodeOptionalJSON(c.Request.Body, dst)
}

// DecodeJSON strictly decodes one JSON value from r into dst and validates it.
func DecodeJSON(r io.Reader, dst any) error {
	present, err := DecodeOptionalJSON(r, dst)
	if err != nil {
		return err
	}
	if !present {
		return fieldErr("", "required", "request body is required")
	}
	return nil
}

// DecodeOptionalJSON is DecodeJSON without the required-body rule.
func DecodeOptionalJSON(r io.Reader, dst any) (bool, error) {
	if r == nil {
		return false, nil
	}
	raw, err := io.ReadAll(r)
	if err != nil {
		return false, fieldErr("", "body", "could not read request body")
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return false, nil
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return true, decodeError(err)
	}
	// More() is false before a stray '}' or ']', so decode again and require EOF.
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return true, fieldErr("", "syntax", "request body must contain a single JSON object")
	}
	return true, Struct(dst)
}

// Struct validates v against its binding tags.
func Struct(v any) error {
	err := engine().Struct(v)
	if err == nil {
		return nil
	}
	var ves validator.ValidationErrors
	if errors.As(err, &ves) && len(ves) > 0 {
		fe := ves[0]
		return fieldErr(fieldPath(fe.Namespace()), fe.Tag(), ruleMessage(fe))
	}
	var inv *validator.InvalidValidationError
	if errors.As(err, &inv) {
		return fieldErr("", "body", "request body must be a JSON object")
	}
	return fieldErr("", "invalid", err.Error())
}

func decodeError(err error) *Error {
	var syn *json.SyntaxError
	var typ *json.UnmarshalTypeError
	switch {
	case errors.As(err, &syn):
		return fieldErr("", "syntax", fmt.Sprintf("malformed JSON at offset %d", syn.Offset))
	case errors.As(err, &typ):
		return fieldErr(typ.Field, "type", fmt.Sprintf("expected %s, got %s", jsonKind(typ.Type), typ.Value))
	case errors.Is(err, io.ErrUnexpectedEOF):
		return fieldErr("", "syntax", "malformed JSON: unexpected end of input")
	}
	msg := err.Error()
	if strings.HasPrefix(msg, "json: unknown field ") {
		name := strings.Trim(strings.TrimPrefix(msg, "json: unknown field "), `"`)
		return fieldErr(name, "unknown", "field is not allowed")
	}
	return fieldErr("", "syntax", msg)
}

// fieldPath drops the root struct name from a validator namespace.
func fieldPath(ns string) string {
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

func ruleMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "notblank":
		return "must not be blank"
	case "oneof":
		return "must be one of [" + strings.Join(strings.Fields(fe.Param()), ", ") + "]"
	case "min", "gte":
		if fe.Kind() == reflect.String {
			return "must be at least " + fe.Param() + " characters"
		}
		return "must be greater than or equal to " + fe.Param()
	case "max", "lte":
		if fe.Kind() == reflect.String {
			return "must be at most " + fe.Param() + " characters"
		}
		return "must be less than or equal to " + fe.Param()
	case "email":
		return "must be a valid email address"
	case "latitude", "longitude":
		return "must be a valid " + fe.Tag()
	default:
		return "failed " + fe.Tag() + " validation"
	}
}

func notBlank(fl validator.FieldLevel) bool {
	f := fl.Field()
	if f.Kind() != reflect.String {
		return true
	}
	return strings.TrimSpace(f.String()) != ""
}

func jsonKind(t reflect.Type) string {
	if t == nil {
		return "value"
	}
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return "integer"
	case reflect.Float32, reflect.Float64:
		return "number"
	case reflect.Bool:
		return "boolean"
	case reflect.String:
		return "string"
	case reflect.Slice, reflect.Array:
		return "array"
	default:
		return "object"
	}
}
