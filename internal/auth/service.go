package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"pelada/internal/backend"
	"pelada/internal/metrics"
)

type User struct {
	ID           string         `json:"id"`
	Email        string         `json:"email"`
	Role         string         `json:"role,omitempty"`
	UserMetadata map[string]any `json:"user_metadata,omitempty"`
}

func (u *User) FullName() string {
	if u == nil {
		return ""
	}
	name, _ := u.UserMetadata["full_name"].(string)
	return name
}

// Session is the result of a successful sign-in. After a sign-up that
// still needs e-mail confirmation only User is set.
type Session struct {
	AccessToken  string `json:"access_token,omitempty"`
	RefreshToken string `json:"refresh_token,omitempty"`
	TokenType    string `json:"token_type,omitempty"`
	ExpiresIn    int    `json:"expires_in,omitempty"`
	User         *User  `json:"user"`
}

func (s *Session) Active() bool {
	return s != nil && s.AccessToken != ""
}

// Service calls the hosted identity provider (GoTrue under /auth/v1).
// Every call is attempted once.
type Service struct {
	gate       *backend.Gate
	authURL    string
	httpClient *http.Client
}

func NewService(gate *backend.Gate, httpClient *http.Client) *Service {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &Service{
		gate:       gate,
		authURL:    strings.TrimSuffix(gate.URL(), "/") + "/auth/v1",
		httpClient: httpClient,
	}
}

func (s *Service) Configured() bool {
	return s != nil && s.gate.Configured()
}

func (s *Service) SignIn(ctx context.Context, email, password string) (*Session, error) {
	body := map[string]any{"email": email, "password": password}
	respBody, err := s.call(ctx, "sign_in", http.MethodPost, "/token?grant_type=password", body, "", KindInvalidCredentials)
	if err != nil {
		return nil, err
	}

	var session Session
	if err := json.Unmarshal(respBody, &session); err != nil {
		return nil, fmt.Errorf("unmarshal session: %w", err)
	}
	return &session, nil
}

func (s *Service) SignUp(ctx context.Context, email, password, fullName string) (*Session, error) {
	body := map[string]any{
		"email":    email,
		"password": password,
		"data":     map[string]any{"full_name": fullName},
	}
	respBody, err := s.call(ctx, "sign_up", http.MethodPost, "/signup", body, "", KindRejected)
	if err != nil {
		return nil, err
	}

	var session Session
	if gjson.GetBytes(respBody, "access_token").Exists() {
		if err := json.Unmarshal(respBody, &session); err != nil {
			return nil, fmt.Errorf("unmarshal session: %w", err)
		}
		return &session, nil
	}

	var user User
	if err := json.Unmarshal(respBody, &user); err != nil {
		return nil, fmt.Errorf("unmarshal user: %w", err)
	}
	session.User = &user
	return &session, nil
}

func (s *Service) SignOut(ctx context.Context, accessToken string) error {
	_, err := s.call(ctx, "sign_out", http.MethodPost, "/logout", nil, accessToken, KindNetwork)
	return err
}

// GetUser resolves the user behind an access token.
func (s *Service) GetUser(ctx context.Context, accessToken string) (*User, error) {
	respBody, err := s.call(ctx, "get_user", http.MethodGet, "/user", nil, accessToken, KindRejected)
	if err != nil {
		return nil, err
	}

	var user User
	if err := json.Unmarshal(respBody, &user); err != nil {
		return nil, fmt.Errorf("unmarshal user: %w", err)
	}
	return &user, nil
}

func (s *Service) call(ctx context.Context, op, method, path string, body any, bearer string, fallback Kind) ([]byte, error) {
	if !s.Configured() {
		_ = s.gate.Unavailable("auth:" + op)
		metrics.RecordAuth(op, string(KindUnavailable))
		return nil, unavailable()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, s.authURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("apikey", s.gate.AnonKey())
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		metrics.RecordAuth(op, string(KindNetwork))
		return nil, networkError(err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.RecordAuth(op, string(KindNetwork))
		return nil, networkError(err)
	}

	if resp.StatusCode >= 400 {
		e := classify(resp.StatusCode, respBody, fallback)
		metrics.RecordAuth(op, string(e.Kind))
		return nil, e
	}

	metrics.RecordAuth(op, "ok")
	return respBody, nil
}
