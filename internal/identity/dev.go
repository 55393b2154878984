package identity

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/yungbote/jeevandwaar-backend/internal/content"
	"github.com/yungbote/jeevandwaar-backend/internal/platform/logger"
)

const (
	DefaultOTPTTL      = 5 * time.Minute
	DefaultOTPCooldown = 30 * time.Second
	otpDigits          = 6
)

// DevConfig configures the demo provider. Code, when set, is issued for every request.
type DevConfig struct {
	Directory []content.Identity
	Code      string
	Delay     time.Duration
	TTL       time.Duration
	Cooldown  time.Duration
	Store     OTPStore
}

type devProvider struct {
	log       *logger.Logger
	directory map[string]Identity
	code      string
	delay     time.Duration
	ttl       time.Duration
	cooldown  time.Duration
	store     OTPStore
}

// NewDevProvider serves a fixed directory for local demos. It never contacts a real provider.
func NewDevProvider(cfg DevConfig, log *logger.Logger) (Provider, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	dir := make(map[string]Identity, len(cfg.Directory))
	for _, e := range cfg.Directory {
		id, err := NormalizeAadhar(e.AadharID)
		if err != nil {
			return nil, fmt.Errorf("dev directory entry %q: %w", e.Name, err)
		}
		role := e.Role
		if role == "" {
			role = RoleUser
		}
		dir[id] = Identity{AadharID: id, Name: e.Name, Email: e.Email, Phone: e.Phone, Role: role}
	}
	store := cfg.Store
	if store == nil {
		store = NewMemoryStore()
	}
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = DefaultOTPTTL
	}
	return &devProvider{
		log:       log.With("provider", "DevIdentityProvider"),
		directory: dir,
		code:      cfg.Code,
		delay:     cfg.Delay,
		ttl:       ttl,
		cooldown:  cfg.Cooldown,
		store:     store,
	}, nil
}

func (p *devProvider) SendOTP(ctx context.Context, aadharID string) error {
	if err := sleep(ctx, p.delay); err != nil {
		return err
	}
	id, err := NormalizeAadhar(aadharID)
	if err != nil {
		return err
	}
	if _, ok := p.directory[id]; !ok {
		return ErrUnknownIdentity
	}
	code := p.code
	if code == "" {
		code, err = randomCode(otpDigits)
		if err != nil {
			return err
		}
	}
	if err := p.store.Issue(ctx, id, code, p.ttl, p.cooldown); err != nil {
		return err
	}
	p.log.Info("Dev OTP issued", "aadhar", MaskAadhar(id), "otp", code)
	return nil
}

func (p *devProvider) VerifyOTP(ctx context.Context, aadharID, code string) (*Identity, error) {
	if err := sleep(ctx, p.delay); err != nil {
		return nil, err
	}
	id, err := NormalizeAadhar(aadharID)
	if err != nil {
		return nil, err
	}
	ident, ok := p.directory[id]
	if !ok {
		return nil, ErrUnknownIdentity
	}
	matched, err := p.store.Consume(ctx, id, code)
	if err != nil {
		return nil, err
	}
	if !matched {
		return nil, ErrInvalidOTP
	}
	out := ident
	return &out, nil
}

func randomCode(digits int) (string, error) {
	max := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(digits)), nil)
	n, err := rand.Int(rand.Reader, max)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%0*d", digits, n.Int64()), nil
}
