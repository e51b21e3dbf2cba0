package session

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	appErrors "github.com/noah-isme/course-advising-api/pkg/errors"
)

const (
	EnvironmentTest = "test"
	EnvironmentLive = "live"

	testBaseURL = "https://test.stytch.com"
	liveBaseURL = "https://api.stytch.com"

	authenticatePath = "/v1/sessions/authenticate"

	maxResponseBytes = 1 << 20
)

// RemoteConfig configures the hosted session provider.
type RemoteConfig struct {
	ProjectID       string
	Secret          string
	Environment     string
	BaseURL         string
	SessionDuration time.Duration
	Timeout         time.Duration
}

// BaseURLFor resolves the provider endpoint for an environment. An explicit
// override always wins.
func BaseURLFor(environment, override string) string {
	if override != "" {
		return strings.TrimRight(override, "/")
	}
	if environment == EnvironmentLive {
		return liveBaseURL
	}
	return testBaseURL
}

// RemoteVerifier authenticates sessions against the hosted provider API.
type RemoteVerifier struct {
	cfg     RemoteConfig
	baseURL string
	client  *http.Client
	logger  *zap.Logger
}

// NewRemoteVerifier constructs a RemoteVerifier. A nil client gets one with cfg.Timeout.
func NewRemoteVerifier(cfg RemoteConfig, client *http.Client, logger *zap.Logger) *RemoteVerifier {
	if client == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 5 * time.Second
		}
		client = &http.Client{Timeout: timeout}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RemoteVerifier{cfg: cfg, baseURL: BaseURLFor(cfg.Environment, cfg.BaseURL), client: client, logger: logger}
}

type authenticateRequest struct {
	SessionToken           string `json:"session_token"`
	SessionDurationMinutes int    `json:"session_duration_minutes,omitempty"`
}

type authenticateResponse struct {
	StatusCode   int    `json:"status_code"`
	ErrorType    string `json:"error_type"`
	ErrorMessage string `json:"error_message"`
	Session      struct {
		SessionID string    `json:"session_id"`
		UserID    string    `json:"user_id"`
		ExpiresAt time.Time `json:"expires_at"`
	} `json:"session"`
	User struct {
		UserID string `json:"user_id"`
		Emails []struct {
			Email string `json:"email"`
		} `json:"emails"`
	} `json:"user"`
}

// Verify authenticates token with the provider. Provider rejections keep the
// provider's 4xx status and message; transport failures and 5xx responses
// surface as UPSTREAM_UNAVAILABLE.
func (v *RemoteVerifier) Verify(ctx context.Context, token string) (*Principal, error) {
	payload, err := json.Marshal(authenticateRequest{
		SessionToken:           token,
		SessionDurationMinutes: int(v.cfg.SessionDuration / time.Minute),
	})
	if err != nil {
		return nil, fmt.Errorf("marshal session request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, v.baseURL+authenticatePath, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build session request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(v.cfg.ProjectID, v.cfg.Secret)

	resp, err := v.client.Do(req)
	if err != nil {
		v.logger.Warn("session provider request failed", zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, appErrors.ErrUpstream.Message)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, appErrors.ErrUpstream.Message)
	}

	// Error bodies are best effort: a rejection keeps its status even when the body is not JSON.
	var body authenticateResponse
	decodeErr := json.Unmarshal(raw, &body)

	if resp.StatusCode >= http.StatusInternalServerError {
		v.logger.Warn("session provider error", zap.Int("status", resp.StatusCode), zap.String("message", body.ErrorMessage))
		return nil, appErrors.Clone(appErrors.ErrUpstream, nonEmpty(body.ErrorMessage, appErrors.ErrUpstream.Message))
	}
	if resp.StatusCode >= http.StatusBadRequest {
		return nil, appErrors.New("SESSION_REJECTED", resp.StatusCode, nonEmpty(body.ErrorMessage, "session rejected"))
	}
	if resp.StatusCode >= http.StatusMultipleChoices {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "unexpected session provider response")
	}
	if decodeErr != nil {
		return nil, appErrors.Wrap(decodeErr, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, "malformed session provider response")
	}

	externalID := nonEmpty(body.Session.UserID, body.User.UserID)
	if externalID == "" {
		return nil, appErrors.Clone(appErrors.ErrUpstream, "session provider returned no user")
	}

	principal := &Principal{
		ExternalID: externalID,
		SessionID:  body.Session.SessionID,
		ExpiresAt:  body.Session.ExpiresAt,
	}
	if len(body.User.Emails) > 0 {
		principal.Email = body.User.Emails[0].Email
	}
	return principal, nil
}

func nonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
