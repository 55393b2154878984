package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/yungbote/jeevandwaar-backend/internal/platform/logger"
)

type HTTPConfig struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
	Client  *http.Client
}

type httpProvider struct {
	log     *logger.Logger
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewHTTPProvider talks JSON to an upstream identity service:
// POST {base}/otp/send {aadharId} and POST {base}/otp/verify {aadharId, otp} -> Identity.
func NewHTTPProvider(cfg HTTPConfig, log *logger.Logger) (Provider, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if base == "" {
		return nil, fmt.Errorf("identity base url required")
	}
	client := cfg.Client
	if client == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		client = &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		}
	}
	return &httpProvider{
		log:     log.With("provider", "HTTPIdentityProvider"),
		baseURL: base,
		apiKey:  cfg.APIKey,
		client:  client,
	}, nil
}

type sendRequest struct {
	AadharID string `json:"aadharId"`
}

type verifyRequest struct {
	AadharID string `json:"aadharId"`
	OTP      string `json:"otp"`
}

func (p *httpProvider) SendOTP(ctx context.Context, aadharID string) error {
	id, err := NormalizeAadhar(aadharID)
	if err != nil {
		return err
	}
	_, err = p.post(ctx, "/otp/send", sendRequest{AadharID: id}, nil)
	return err
}

func (p *httpProvider) VerifyOTP(ctx context.Context, aadharID, code string) (*Identity, error) {
	id, err := NormalizeAadhar(aadharID)
	if err != nil {
		return nil, err
	}
	var out Identity
	if _, err := p.post(ctx, "/otp/verify", verifyRequest{AadharID: id, OTP: code}, &out); err != nil {
		return nil, err
	}
	if out.AadharID == "" {
		out.AadharID = id
	}
	if out.Role == "" {
		out.Role = RoleUser
	}
	return &out, nil
}

func (p *httpProvider) post(ctx context.Context, path string, body any, dst any) (int, error) {
	raw, err := json.Marshal(body)
	if err != nil {
		return 0, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+path, bytes.NewReader(raw))
	if err != nil {
		return 0, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if p.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+p.apiKey)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		p.log.Warn("Identity provider request failed", "path", path, "error", err)
		return 0, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()
	payload, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		if dst != nil && len(payload) > 0 {
			if err := json.Unmarshal(payload, dst); err != nil {
				return resp.StatusCode, fmt.Errorf("decode identity response: %w", err)
			}
		}
		return resp.StatusCode, nil
	case resp.StatusCode == http.StatusNotFound:
		return resp.StatusCode, ErrUnknownIdentity
	case resp.StatusCode == http.StatusTooManyRequests:
		return resp.StatusCode, ErrCooldown
	case resp.StatusCode == http.StatusBadRequest, resp.StatusCode == http.StatusUnauthorized:
		return resp.StatusCode, ErrInvalidOTP
	default:
		p.log.Warn("Identity provider returned error", "path", path, "status", resp.StatusCode)
		return resp.StatusCode, fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	}
}
