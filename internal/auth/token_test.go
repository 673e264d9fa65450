package auth

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testSecret = "super-secret-jwt-signing-key"
	testUserID = "9b2f4c1e-6a43-4f0e-9d7b-2f1a7c3e5d10"
)

func TestValidateToken(t *testing.T) {
	token, err := SignToken(testUserID, "a@b.com", testSecret, time.Hour)
	require.NoError(t, err)

	claims, err := ValidateToken(token, testSecret)
	require.NoError(t, err)
	assert.Equal(t, testUserID, claims.Subject)
	assert.Equal(t, "a@b.com", claims.Email)
}

func TestValidateTokenRejects(t *testing.T) {
	expired, err := SignToken(testUserID, "a@b.com", testSecret, -time.Minute)
	require.NoError(t, err)

	badSubject, err := SignToken("42", "a@b.com", testSecret, time.Hour)
	require.NoError(t, err)

	wrongAudience, err := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   testUserID,
			Audience:  jwt.ClaimStrings{"anon"},
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)

	noExpiry, err := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:  testUserID,
			Audience: jwt.ClaimStrings{Audience},
		},
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)

	tests := []struct {
		name   string
		token  string
		secret string
		want   error
	}{
		{"expired", expired, testSecret, ErrTokenExpired},
		{"wrong secret", badSubject, "another-secret", ErrInvalidToken},
		{"subject not a uuid", badSubject, testSecret, ErrInvalidToken},
		{"wrong audience", wrongAudience, testSecret, ErrInvalidToken},
		{"missing expiry", noExpiry, testSecret, ErrInvalidToken},
		{"garbage", "not.a.jwt", testSecret, ErrInvalidToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ValidateToken(tt.token, tt.secret)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestVerifierLocalSecret(t *testing.T) {
	token, err := SignToken(testUserID, "a@b.com", testSecret, time.Hour)
	require.NoError(t, err)

	v := NewVerifier(testSecret, nil)
	identity, err := v.Verify(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, Identity{UserID: testUserID, Email: "a@b.com"}, identity)

	_, err = v.Verify(context.Background(), "")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
