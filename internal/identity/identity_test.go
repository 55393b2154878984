package identity

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yungbote/jeevandwaar-backend/internal/content"
	"github.com/yungbote/jeevandwaar-backend/internal/platform/logger"
)

func TestNormalizeAadhar(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "1234-5678-9012", want: "123456789012"},
		{in: " 1234 5678 9012 ", want: "123456789012"},
		{in: "123456789012", want: "123456789012"},
		{in: "1234-5678-901", wantErr: true},
		{in: "1234-5678-901a", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tt := range tests {
		got, err := NormalizeAadhar(tt.in)
		if tt.wantErr {
			if !errors.Is(err, ErrInvalidAadhar) {
				t.Fatalf("NormalizeAadhar(%q): expected ErrInvalidAadhar, got %v", tt.in, err)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Fatalf("NormalizeAadhar(%q) = %q, %v; want %q", tt.in, got, err, tt.want)
		}
	}
	if got := MaskAadhar("123456789012"); got != "XXXX-XXXX-9012" {
		t.Fatalf("MaskAadhar: got %q", got)
	}
}

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	s := &memoryStore{entries: map[string]memoryEntry{}, now: func() time.Time { return now }}

	require.NoError(t, s.Issue(ctx, "k", "111111", time.Minute, 10*time.Second))
	require.ErrorIs(t, s.Issue(ctx, "k", "222222", time.Minute, 10*time.Second), ErrCooldown)

	ok, err := s.Consume(ctx, "k", "000000")
	require.NoError(t, err)
	assert.False(t, ok, "wrong code must not match")

	ok, err = s.Consume(ctx, "k", "111111")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, _ = s.Consume(ctx, "k", "111111")
	assert.False(t, ok, "code must be single use")

	now = now.Add(11 * time.Second)
	require.NoError(t, s.Issue(ctx, "k", "333333", time.Minute, 10*time.Second))
	now = now.Add(2 * time.Minute)
	ok, _ = s.Consume(ctx, "k", "333333")
	assert.False(t, ok, "expired code must not match")
}

func TestMemoryStoreDiscardsCodeAfterMaxAttempts(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	s := &memoryStore{entries: map[string]memoryEntry{}, now: func() time.Time { return now }}

	require.NoError(t, s.Issue(ctx, "k", "111111", time.Minute, 10*time.Second))
	for i := 0; i < MaxOTPAttempts; i++ {
		ok, err := s.Consume(ctx, "k", "000000")
		require.NoError(t, err)
		require.False(t, ok)
	}
	ok, err := s.Consume(ctx, "k", "111111")
	require.NoError(t, err)
	assert.False(t, ok, "code must be discarded after too many wrong guesses")
	require.ErrorIs(t, s.Issue(ctx, "k", "222222", time.Minute, 10*time.Second), ErrCooldown)

	now = now.Add(11 * time.Second)
	require.NoError(t, s.Issue(ctx, "k", "222222", time.Minute, 10*time.Second))
	ok, _ = s.Consume(ctx, "k", "222222")
	assert.True(t, ok, "reissue must reset the attempt count")
}

func TestMemoryStoreSweepsExpiredOnIssue(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	s := &memoryStore{entries: map[string]memoryEntry{}, now: func() time.Time { return now }}

	for _, k := range []string{"a", "b", "c"} {
		require.NoError(t, s.Issue(ctx, k, "111111", time.Second, 0))
	}
	require.Len(t, s.entries, 3)

	now = now.Add(2 * time.Second)
	require.NoError(t, s.Issue(ctx, "d", "111111", time.Minute, 0))
	assert.Len(t, s.entries, 1, "expired codes must not accumulate")
	_, ok := s.entries["d"]
	assert.True(t, ok)
}

func TestMemoryStoreConcurrentConsume(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	require.NoError(t, s.Issue(ctx, "k", "123456", time.Minute, 0))

	var wg sync.WaitGroup
	var matches atomic.Int32
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if ok, _ := s.Consume(ctx, "k", "123456"); ok {
				matches.Add(1)
			}
		}()
	}
	wg.Wait()
	assert.EqualValues(t, 1, matches.Load())
}

func TestRedisStore(t *testing.T) {
	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("TEST_REDIS_ADDR not set")
	}
	rdb := goredis.NewClient(&goredis.Options{Addr: addr})
	t.Cleanup(func() { _ = rdb.Close() })
	ctx := context.Background()
	prefix := "otp-test-" + time.Now().Format("150405.000000")
	s := NewRedisStore(rdb, prefix)

	require.NoError(t, s.Issue(ctx, "k", "123456", time.Minute, time.Minute))
	require.ErrorIs(t, s.Issue(ctx, "k", "654321", time.Minute, time.Minute), ErrCooldown)
	ok, err := s.Consume(ctx, "k", "000000")
	require.NoError(t, err)
	assert.False(t, ok)
	ok, err = s.Consume(ctx, "k", "123456")
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = s.Consume(ctx, "k", "123456")
	require.NoError(t, err)
	assert.False(t, ok)
	_ = rdb.Del(ctx, prefix+":last:k").Err()

	t.Run("concurrent verifies match once", func(t *testing.T) {
		require.NoError(t, s.Issue(ctx, "c", "123456", time.Minute, 0))
		var wg sync.WaitGroup
		var matches atomic.Int32
		for i := 0; i < 16; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				if ok, _ := s.Consume(ctx, "c", "123456"); ok {
					matches.Add(1)
				}
			}()
		}
		wg.Wait()
		assert.EqualValues(t, 1, matches.Load())
	})

	t.Run("wrong guesses use up the code", func(t *testing.T) {
		require.NoError(t, s.Issue(ctx, "w", "123456", time.Minute, 0))
		for i := 0; i < MaxOTPAttempts; i++ {
			ok, err := s.Consume(ctx, "w", "000000")
			require.NoError(t, err)
			require.False(t, ok)
		}
		ok, err := s.Consume(ctx, "w", "123456")
		require.NoError(t, err)
		assert.False(t, ok)
		n, err := rdb.Exists(ctx, prefix+":code:w", prefix+":tries:w").Result()
		require.NoError(t, err)
		assert.Zero(t, n)
	})
}

func devDirectory() []content.Identity {
	return []content.Identity{
		{AadharID: "1234-5678-9012", Name: "राज कुमार शर्मा", Role: RoleUser},
		{AadharID: "9999-8888-7777", Name: "Admin User", Role: RoleAdmin},
	}
}

func TestDevProvider(t *testing.T) {
	p, err := NewDevProvider(DevConfig{Directory: devDirectory(), Code: "123456"}, logger.Nop())
	require.NoError(t, err)
	ctx := context.Background()

	require.ErrorIs(t, p.SendOTP(ctx, "1111-2222-3333"), ErrUnknownIdentity)
	require.ErrorIs(t, p.SendOTP(ctx, "12"), ErrInvalidAadhar)

	require.NoError(t, p.SendOTP(ctx, "1234 5678 9012"))
	_, err = p.VerifyOTP(ctx, "1234-5678-9012", "000000")
	require.ErrorIs(t, err, ErrInvalidOTP)

	ident, err := p.VerifyOTP(ctx, "123456789012", "123456")
	require.NoError(t, err)
	assert.Equal(t, "राज कुमार शर्मा", ident.Name)
	assert.Equal(t, RoleUser, ident.Role)
	assert.Equal(t, "123456789012", ident.AadharID)

	_, err = p.VerifyOTP(ctx, "1234-5678-9012", "123456")
	require.ErrorIs(t, err, ErrInvalidOTP, "code is consumed on success")
}

func TestDevProviderCooldown(t *testing.T) {
	p, err := NewDevProvider(DevConfig{Directory: devDirectory(), Cooldown: time.Hour}, logger.Nop())
	require.NoError(t, err)
	ctx := context.Background()
	require.NoError(t, p.SendOTP(ctx, "9999-8888-7777"))
	require.ErrorIs(t, p.SendOTP(ctx, "9999-8888-7777"), ErrCooldown)
}

func TestDevProviderDelayHonoursContext(t *testing.T) {
	p, err := NewDevProvider(DevConfig{Directory: devDirectory(), Delay: time.Hour}, logger.Nop())
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.ErrorIs(t, p.SendOTP(ctx, "1234-5678-9012"), context.Canceled)
}

func TestDevProviderRejectsBadDirectory(t *testing.T) {
	_, err := NewDevProvider(DevConfig{Directory: []content.Identity{{AadharID: "x", Name: "bad"}}}, logger.Nop())
	require.Error(t, err)
}

func TestHTTPProvider(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer key" {
			w.WriteHeader(http.StatusForbidden)
			return
		}
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		switch r.URL.Path {
		case "/otp/send":
			switch body["aadharId"] {
			case "123456789012":
				w.WriteHeader(http.StatusAccepted)
			case "999999999999":
				w.WriteHeader(http.StatusTooManyRequests)
			default:
				w.WriteHeader(http.StatusNotFound)
			}
		case "/otp/verify":
			if body["otp"] != "424242" {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			_ = json.NewEncoder(w).Encode(map[string]string{"name": "Priya", "role": "admin"})
		default:
			w.WriteHeader(http.StatusInternalServerError)
		}
	}))
	t.Cleanup(srv.Close)

	p, err := NewHTTPProvider(HTTPConfig{BaseURL: srv.URL + "/", APIKey: "key", Client: srv.Client()}, logger.Nop())
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, p.SendOTP(ctx, "1234-5678-9012"))
	require.ErrorIs(t, p.SendOTP(ctx, "1111-1111-1111"), ErrUnknownIdentity)
	require.ErrorIs(t, p.SendOTP(ctx, "9999-9999-9999"), ErrCooldown)

	_, err = p.VerifyOTP(ctx, "1234-5678-9012", "000000")
	require.ErrorIs(t, err, ErrInvalidOTP)

	ident, err := p.VerifyOTP(ctx, "1234-5678-9012", "424242")
	require.NoError(t, err)
	assert.Equal(t, "Priya", ident.Name)
	assert.Equal(t, RoleAdmin, ident.Role)
	assert.Equal(t, "123456789012", ident.AadharID)
}

func TestHTTPProviderUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	t.Cleanup(srv.Close)
	p, err := NewHTTPProvider(HTTPConfig{BaseURL: srv.URL, Client: srv.Client()}, logger.Nop())
	require.NoError(t, err)
	require.ErrorIs(t, p.SendOTP(context.Background(), "1234-5678-9012"), ErrUnavailable)

	_, err = NewHTTPProvider(HTTPConfig{}, logger.Nop())
	require.Error(t, err)
}
