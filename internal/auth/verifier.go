package auth

import (
	"context"
	"errors"
)

type Identity struct {
	UserID string
	Email  string
}

type Verifier interface {
	Verify(ctx context.Context, accessToken string) (Identity, error)
}

// TokenVerifier checks tokens locally when the signing secret is known and
// otherwise asks the identity provider.
type TokenVerifier struct {
	secret  string
	service *Service
}

func NewVerifier(secret string, service *Service) *TokenVerifier {
	return &TokenVerifier{secret: secret, service: service}
}

func (v *TokenVerifier) Verify(ctx context.Context, accessToken string) (Identity, error) {
	if accessToken == "" {
		return Identity{}, ErrInvalidToken
	}

	if v.secret != "" {
		claims, err := ValidateToken(accessToken, v.secret)
		if err != nil {
			return Identity{}, err
		}
		return Identity{UserID: claims.Subject, Email: claims.Email}, nil
	}

	if v.service == nil {
		return Identity{}, errors.New("no token verification method configured")
	}
	user, err := v.service.GetUser(ctx, accessToken)
	if err != nil {
		return Identity{}, err
	}
	return Identity{UserID: user.ID, Email: user.Email}, nil
}
