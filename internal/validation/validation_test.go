package validation

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

type sampleRequest struct {
	SessionID   string  `json:"sessionId" binding:"required,notblank"`
	Age         *int    `json:"age"`
	IncomeRange *string `json:"incomeRange" binding:"omitempty,oneof=low medium high"`
	Dependents  *int    `json:"dependents" binding:"omitempty,min=0"`
}

func firstField(t *testing.T, err error) FieldError {
	t.Helper()
	var ve *Error
	require.True(t, errors.As(err, &ve), "expected *validation.Error, got %T (%v)", err, err)
	require.NotEmpty(t, ve.Fields)
	return ve.Fields[0]
}

func TestDecodeJSON(t *testing.T) {
	cases := []struct {
		name     string
		body     string
		wantPath string
		wantRule string
	}{
		{name: "missing_session", body: `{"age": 30}`, wantPath: "sessionId", wantRule: "required"},
		{name: "bad_enum", body: `{"sessionId":"s","incomeRange":"rich"}`, wantPath: "incomeRange", wantRule: "oneof"},
		{name: "negative_dependents", body: `{"sessionId":"s","dependents":-5}`, wantPath: "dependents", wantRule: "min"},
		{name: "age_as_string", body: `{"sessionId":"s","age":"thirty"}`, wantPath: "age", wantRule: "type"},
		{name: "age_fractional", body: `{"sessionId":"s","age":30.5}`, wantPath: "age", wantRule: "type"},
		{name: "unknown_field", body: `{"sessionId":"s","recommendedPolicyIds":["x"]}`, wantPath: "recommendedPolicyIds", wantRule: "unknown"},
		{name: "malformed", body: `{"sessionId":`, wantPath: "", wantRule: "syntax"},
		{name: "trailing_data", body: `{"sessionId":"s"} {"sessionId":"t"}`, wantPath: "", wantRule: "syntax"},
		{name: "trailing_brace", body: `{"sessionId":"s","incomeRange":"low"}}`, wantPath: "", wantRule: "syntax"},
		{name: "trailing_bracket", body: `{"sessionId":"s"}]`, wantPath: "", wantRule: "syntax"},
		{name: "trailing_garbage", body: `{"sessionId":"s"} x`, wantPath: "", wantRule: "syntax"},
		{name: "empty_body", body: ``, wantPath: "", wantRule: "required"},
		{name: "whitespace_body", body: " \n\t", wantPath: "", wantRule: "required"},
		{name: "blank_session", body: `{"sessionId":"   "}`, wantPath: "sessionId", wantRule: "notblank"},
		{name: "tab_session", body: `{"sessionId":"\t\n"}`, wantPath: "sessionId", wantRule: "notblank"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var req sampleRequest
			err := DecodeJSON(strings.NewReader(tc.body), &req)
			require.Error(t, err)
			fe := firstField(t, err)
			require.Equal(t, tc.wantPath, fe.Path)
			require.Equal(t, tc.wantRule, fe.Rule)
			require.NotEmpty(t, fe.Message)
		})
	}
}

func TestDecodeJSONAccepts(t *testing.T) {
	var req sampleRequest
	err := DecodeJSON(strings.NewReader(`{"sessionId":"s1","age":25,"incomeRange":"low","dependents":0}`), &req)
	require.NoError(t, err)
	require.Equal(t, "s1", req.SessionID)
	require.NotNil(t, req.Age)
	require.Equal(t, 25, *req.Age)
	require.Equal(t, 0, *req.Dependents)
}

func TestErrorReportsOnlyFirstViolation(t *testing.T) {
	var req sampleRequest
	err := DecodeJSON(strings.NewReader(`{"incomeRange":"rich","dependents":-1}`), &req)
	var ve *Error
	require.True(t, errors.As(err, &ve))
	require.Len(t, ve.Fields, 1)
	require.Contains(t, ve.Error(), ve.Fields[0].Path)
}

func TestDecodeJSONAllowsTrailingWhitespace(t *testing.T) {
	var req sampleRequest
	require.NoError(t, DecodeJSON(strings.NewReader("{\"sessionId\":\"s1\"}\n  \r\n"), &req))
	require.Equal(t, "s1", req.SessionID)
}

func TestDecodeOptionalJSON(t *testing.T) {
	type acceptRequest struct {
		SelectedPolicyID *string `json:"selectedPolicyId" binding:"omitempty,notblank"`
	}

	for _, body := range []string{"", "  \n"} {
		var req acceptRequest
		present, err := DecodeOptionalJSON(strings.NewReader(body), &req)
		require.NoError(t, err)
		require.False(t, present)
		require.Nil(t, req.SelectedPolicyID)
	}

	var req acceptRequest
	present, err := DecodeOptionalJSON(strings.NewReader(`{"selectedPolicyId":"family-plan"}`), &req)
	require.NoError(t, err)
	require.True(t, present)
	require.Equal(t, "family-plan", *req.SelectedPolicyID)

	present, err = DecodeOptionalJSON(strings.NewReader(`{"selectedPolicyId":"x"}}`), &acceptRequest{})
	require.True(t, present)
	require.Equal(t, "syntax", firstField(t, err).Rule)

	_, err = DecodeOptionalJSON(strings.NewReader(`{"selectedPolicyId":" "}`), &acceptRequest{})
	fe := firstField(t, err)
	require.Equal(t, "selectedPolicyId", fe.Path)
	require.Equal(t, "notblank", fe.Rule)
	require.Equal(t, "must not be blank", fe.Message)
}
