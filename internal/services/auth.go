package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/yungbote/jeevandwaar-backend/internal/identity"
	"github.com/yungbote/jeevandwaar-backend/internal/observability"
	"github.com/yungbote/jeevandwaar-backend/internal/platform/apierr"
	"github.com/yungbote/jeevandwaar-backend/internal/platform/ctxutil"
	"github.com/yungbote/jeevandwaar-backend/internal/platform/logger"
)

const tokenIssuer = "jeevandwaar"

// subjectNamespace derives stable subject ids so tokens never carry the Aadhar number.
var subjectNamespace = uuid.MustParse("8f7d4a52-3c1e-4f0b-9a6d-2e5b7c9d1f30")

type JWTClaims struct {
	jwt.RegisteredClaims
	Name   string `json:"name"`
	Role   string `json:"role"`
	Aadhar string `json:"aadhar"`
}

type SessionUser struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Role   string `json:"role"`
	Aadhar string `json:"aadhar"`
	Email  string `json:"email,omitempty"`
	Phone  string `json:"phone,omitempty"`
}

type Session struct {
	Token     string      `json:"token"`
	ExpiresIn int64       `json:"expiresIn"`
	User      SessionUser `json:"user"`
}

type AuthService interface {
	SendOTP(ctx context.Context, aadharID string) error
	VerifyOTP(ctx context.Context, aadharID, code string) (*Session, error)
	SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error)
	GetAccessTTL() time.Duration
}

type authService struct {
	log          *logger.Logger
	provider     identity.Provider
	jwtSecretKey string
	accessTTL    time.Duration
	now          func() time.Time
}

func NewAuthService(log *logger.Logger, provider identity.Provider, jwtSecretKey string, accessTTL time.Duration) AuthService {
	if accessTTL <= 0 {
		accessTTL = time.Hour
	}
	return &authService{
		log:          log.With("service", "AuthService"),
		provider:     provider,
		jwtSecretKey: jwtSecretKey,
		accessTTL:    accessTTL,
		now:          time.Now,
	}
}

func (as *authService) SendOTP(ctx context.Context, aadharID string) error {
	if err := as.provider.SendOTP(ctx, aadharID); err != nil {
		return as.mapProviderError(err)
	}
	observability.Current().IncOTP(observability.OTPSent)
	return nil
}

func (as *authService) VerifyOTP(ctx context.Context, aadharID, code string) (*Session, error) {
	ident, err := as.provider.VerifyOTP(ctx, aadharID, code)
	if err != nil {
		return nil, as.mapProviderError(err)
	}
	user := SessionUser{
		ID:     uuid.NewSHA1(subjectNamespace, []byte(ident.AadharID)).String(),
		Name:   ident.Name,
		Role:   ident.Role,
		Aadhar: identity.MaskAadhar(ident.AadharID),
		Email:  ident.Email,
		Phone:  ident.Phone,
	}
	token, err := as.generateAccessToken(user)
	if err != nil {
		return nil, err
	}
	observability.Current().IncOTP(observability.OTPVerified)
	as.log.Info("Session issued", "user_id", user.ID, "role", user.Role)
	return &Session{Token: token, ExpiresIn: int64(as.accessTTL.Seconds()), User: user}, nil
}

func (as *authService) generateAccessToken(user SessionUser) (string, error) {
	now := as.now()
	claims := JWTClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			Issuer:    tokenIssuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(as.accessTTL)),
		},
		Name:   user.Name,
		Role:   user.Role,
		Aadhar: user.Aadhar,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(as.jwtSecretKey))
	if err != nil {
		return "", fmt.Errorf("sign access token: %w", err)
	}
	return signed, nil
}

// SetContextFromToken validates tokenString and records the identity on the request data,
// keeping any language already resolved for the request.
func (as *authService) SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error) {
	if tokenString == "" {
		return ctx, apierr.Unauthorized("missing bearer token")
	}
	parsed, err := jwt.ParseWithClaims(tokenString, &JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(as.jwtSecretKey), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(tokenIssuer),
		jwt.WithTimeFunc(as.now),
	)
	if err != nil {
		return ctx, apierr.Unauthorized("invalid or expired token")
	}
	claims, ok := parsed.Claims.(*JWTClaims)
	if !ok || !parsed.Valid || claims.Subject == "" {
		return ctx, apierr.Unauthorized("invalid or expired token")
	}

	rd := &ctxutil.RequestData{}
	if prev := ctxutil.GetRequestData(ctx); prev != nil {
		*rd = *prev
	}
	rd.UserID = claims.Subject
	rd.Name = claims.Name
	rd.Role = claims.Role
	return ctxutil.WithRequestData(ctx, rd), nil
}

func (as *authService) GetAccessTTL() time.Duration {
	return as.accessTTL
}

func (as *authService) mapProviderError(err error) error {
	metrics := observability.Current()
	switch {
	case errors.Is(err, identity.ErrInvalidAadhar):
		return apierr.BadRequest(identity.ErrInvalidAadhar.Error())
	case errors.Is(err, identity.ErrUnknownIdentity):
		return apierr.NotFound("aadhar number")
	case errors.Is(err, identity.ErrInvalidOTP):
		metrics.IncOTP(observability.OTPRejected)
		return apierr.Unauthorized(identity.ErrInvalidOTP.Error())
	case errors.Is(err, identity.ErrCooldown):
		metrics.IncOTP(observability.OTPCooldown)
		return apierr.TooManyRequests(identity.ErrCooldown.Error())
	case errors.Is(err, identity.ErrUnavailable):
		metrics.IncOTP(observability.OTPUnavailable)
		as.log.Warn("Identity provider unavailable", "error", err)
		return apierr.BadGateway("identity provider unavailable")
	default:
		return err
	}
}
