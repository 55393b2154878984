package identity

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

var (
	ErrUnknownIdentity = errors.New("aadhar number not registered")
	ErrInvalidAadhar   = errors.New("aadhar number must have 12 digits")
	ErrInvalidOTP      = errors.New("invalid or expired otp")
	ErrCooldown        = errors.New("otp requested too recently")
	ErrUnavailable     = errors.New("identity provider unavailable")
)

// Identity is a verified person as reported by the provider.
type Identity struct {
	AadharID string `json:"aadharId"`
	Name     string `json:"name"`
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Role     string `json:"role"`
}

// Provider verifies Aadhar holders through a one-time password.
type Provider interface {
	SendOTP(ctx context.Context, aadharID string) error
	VerifyOTP(ctx context.Context, aadharID, code string) (*Identity, error)
}

// NormalizeAadhar strips spaces and dashes and checks for exactly 12 digits.
func NormalizeAadhar(raw string) (string, error) {
	var b strings.Builder
	for _, r := range raw {
		switch {
		case r == '-' || unicode.IsSpace(r):
			continue
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		default:
			return "", ErrInvalidAadhar
		}
	}
	if b.Len() != 12 {
		return "", ErrInvalidAadhar
	}
	return b.String(), nil
}

// MaskAadhar keeps the last four digits.
func MaskAadhar(normalized string) string {
	if len(normalized) < 4 {
		return "****"
	}
	return "XXXX-XXXX-" + normalized[len(normalized)-4:]
}

// sleep waits d or until ctx is done.
func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
