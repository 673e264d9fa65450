package auth

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"

	"pelada/internal/backend"
)

type Kind string

const (
	KindInvalidCredentials Kind = "invalid_credentials"
	KindAlreadyRegistered  Kind = "already_registered"
	KindWeakPassword       Kind = "weak_password"
	KindRejected           Kind = "rejected"
	KindNetwork            Kind = "network"
	KindUnavailable        Kind = "unavailable"
)

// Error is a failed identity operation. Message is the provider's own text
// whenever the provider sent one.
type Error struct {
	Kind    Kind
	Message string
	Status  int
	Err     error
}

var (
	ErrInvalidCredentials = &Error{Kind: KindInvalidCredentials}
	ErrAlreadyRegistered  = &Error{Kind: KindAlreadyRegistered}
	ErrWeakPassword       = &Error{Kind: KindWeakPassword}
	ErrRejected           = &Error{Kind: KindRejected}
	ErrNetwork            = &Error{Kind: KindNetwork}
	ErrUnavailable        = &Error{Kind: KindUnavailable}
)

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	}
	return string(e.Kind)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

func unavailable() *Error {
	return &Error{Kind: KindUnavailable, Message: "authentication backend not configured", Err: backend.ErrUnavailable}
}

func networkError(err error) *Error {
	return &Error{Kind: KindNetwork, Message: err.Error(), Err: err}
}

// classify maps a rejected identity call to an error kind. The provider
// reports machine codes in error_code (newer) or error (OAuth style) and
// prose in msg, message or error_description.
func classify(status int, body []byte, fallback Kind) *Error {
	e := &Error{Kind: fallback, Status: status}

	parsed := gjson.ParseBytes(body)
	for _, key := range []string{"msg", "message", "error_description"} {
		if v := parsed.Get(key).String(); v != "" {
			e.Message = v
			break
		}
	}
	code := parsed.Get("error_code").String()
	if code == "" {
		code = parsed.Get("error").String()
	}
	if e.Message == "" {
		e.Message = code
	}
	if e.Message == "" {
		e.Message = fmt.Sprintf("identity provider returned status %d", status)
	}

	lower := strings.ToLower(e.Message)
	switch {
	case code == "invalid_credentials" || code == "invalid_grant" || strings.Contains(lower, "invalid login credentials"):
		e.Kind = KindInvalidCredentials
	case code == "user_already_exists" || code == "email_exists" || strings.Contains(lower, "already registered"):
		e.Kind = KindAlreadyRegistered
	case code == "weak_password" || strings.Contains(lower, "password should be"):
		e.Kind = KindWeakPassword
	case status >= 500:
		e.Kind = KindNetwork
	}
	return e
}
