package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yungbote/jeevandwaar-backend/internal/content"
	"github.com/yungbote/jeevandwaar-backend/internal/data/repos/testutil"
	"github.com/yungbote/jeevandwaar-backend/internal/identity"
	"github.com/yungbote/jeevandwaar-backend/internal/platform/apierr"
	"github.com/yungbote/jeevandwaar-backend/internal/platform/ctxutil"
)

const testSecret = "test-secret"

func newAuth(t *testing.T) *authService {
	t.Helper()
	c, err := content.Load()
	require.NoError(t, err)
	provider, err := identity.NewDevProvider(identity.DevConfig{Directory: c.Identities, Code: "123456"}, testutil.Logger(t))
	require.NoError(t, err)
	return NewAuthService(testutil.Logger(t), provider, testSecret, time.Minute).(*authService)
}

func TestAuthOTPFlow(t *testing.T) {
	as := newAuth(t)
	ctx := context.Background()

	require.NoError(t, as.SendOTP(ctx, "1234-5678-9012"))

	_, err := as.VerifyOTP(ctx, "123456789012", "000000")
	assert.Equal(t, http.StatusUnauthorized, apierr.StatusOf(err))

	require.NoError(t, as.SendOTP(ctx, "1234 5678 9012"))
	sess, err := as.VerifyOTP(ctx, "123456789012", "123456")
	require.NoError(t, err)
	assert.EqualValues(t, 60, sess.ExpiresIn)
	assert.Equal(t, "XXXX-XXXX-9012", sess.User.Aadhar)
	assert.NotContains(t, sess.Token, "123456789012")

	again, err := newAuth(t).VerifyOTP(ctx, "123456789012", "123456")
	assert.Nil(t, again)
	assert.Equal(t, http.StatusUnauthorized, apierr.StatusOf(err), "a fresh provider has no pending code")

	langCtx := ctxutil.WithRequestData(ctx, &ctxutil.RequestData{Language: ctxutil.LanguageEnglish})
	authed, err := as.SetContextFromToken(langCtx, sess.Token)
	require.NoError(t, err)
	rd := ctxutil.GetRequestData(authed)
	require.NotNil(t, rd)
	assert.Equal(t, sess.User.ID, rd.UserID)
	assert.Equal(t, sess.User.Role, rd.Role)
	assert.Equal(t, ctxutil.LanguageEnglish, rd.Language)
}

func TestAuthRejectsBadInput(t *testing.T) {
	as := newAuth(t)
	ctx := context.Background()

	assert.Equal(t, http.StatusBadRequest, apierr.StatusOf(as.SendOTP(ctx, "12-34")))
	assert.Equal(t, http.StatusNotFound, apierr.StatusOf(as.SendOTP(ctx, "1111-2222-3333")))
}

func TestSetContextFromTokenRejects(t *testing.T) {
	as := newAuth(t)
	require.NoError(t, as.SendOTP(context.Background(), "9999-8888-7777"))
	sess, err := as.VerifyOTP(context.Background(), "999988887777", "123456")
	require.NoError(t, err)
	assert.Equal(t, identity.RoleAdmin, sess.User.Role)

	cases := map[string]string{
		"empty":   "",
		"garbage": "not.a.token",
	}
	for name, tok := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := as.SetContextFromToken(context.Background(), tok)
			assert.Equal(t, http.StatusUnauthorized, apierr.StatusOf(err))
		})
	}

	t.Run("wrong secret", func(t *testing.T) {
		other := NewAuthService(testutil.Logger(t), nil, "another-secret", time.Minute)
		_, err := other.SetContextFromToken(context.Background(), sess.Token)
		assert.Equal(t, http.StatusUnauthorized, apierr.StatusOf(err))
	})

	t.Run("expired", func(t *testing.T) {
		as.now = func() time.Time { return time.Now().Add(2 * time.Minute) }
		t.Cleanup(func() { as.now = time.Now })
		_, err := as.SetContextFromToken(context.Background(), sess.Token)
		assert.Equal(t, http.StatusUnauthorized, apierr.StatusOf(err))
	})
}

func TestMapProviderError(t *testing.T) {
	as := newAuth(t)
	cases := []struct {
		err  error
		want int
	}{
		{identity.ErrInvalidAadhar, http.StatusBadRequest},
		{identity.ErrUnknownIdentity, http.StatusNotFound},
		{identity.ErrInvalidOTP, http.StatusUnauthorized},
		{identity.ErrCooldown, http.StatusTooManyRequests},
		{fmt.Errorf("dial: %w", identity.ErrUnavailable), http.StatusBadGateway},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, apierr.StatusOf(as.mapProviderError(tc.err)), tc.err.Error())
	}
}
