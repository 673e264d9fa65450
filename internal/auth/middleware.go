package auth

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"pelada/internal/backend"
)

const (
	CookieName = "pelada-access-token"
	LoginPath  = "/login"

	ctxUserID    = "user_id"
	ctxUserEmail = "user_email"
)

// Middleware rejects API requests without a valid session.
func Middleware(verifier Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := extractToken(c)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			c.Abort()
			return
		}

		identity, err := verifier.Verify(c.Request.Context(), token)
		if err != nil {
			switch {
			case errors.Is(err, ErrTokenExpired):
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Token expired"})
			case errors.Is(err, ErrUnavailable):
				c.JSON(http.StatusServiceUnavailable, gin.H{"error": "authentication backend not configured"})
			default:
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or malformed token"})
			}
			c.Abort()
			return
		}

		setIdentity(c, identity, token)
		c.Next()
	}
}

// RouteGate guards page routes: anonymous visitors go to the login page and
// signed-in visitors skip it. With bypass set every request passes.
func RouteGate(verifier Verifier, bypass bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		if bypass {
			c.Next()
			return
		}

		onLogin := c.Request.URL.Path == LoginPath
		token, err := extractToken(c)
		signedIn := false
		if err == nil {
			if identity, verr := verifier.Verify(c.Request.Context(), token); verr == nil {
				setIdentity(c, identity, token)
				signedIn = true
			}
		}

		switch {
		case signedIn && onLogin:
			c.Redirect(http.StatusFound, "/")
			c.Abort()
		case !signedIn && !onLogin:
			c.Redirect(http.StatusFound, LoginPath)
			c.Abort()
		default:
			c.Next()
		}
	}
}

func extractToken(c *gin.Context) (string, error) {
	authHeader := c.GetHeader("Authorization")
	if authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || strings.TrimSpace(parts[0]) != "Bearer" {
			return "", errors.New("Invalid authorization header format")
		}
		token := strings.TrimSpace(parts[1])
		if token == "" {
			return "", errors.New("Token is empty")
		}
		return token, nil
	}

	if cookie, err := c.Cookie(CookieName); err == nil && cookie != "" {
		return cookie, nil
	}
	return "", errors.New("Authorization required")
}

func setIdentity(c *gin.Context, identity Identity, token string) {
	c.Set(ctxUserID, identity.UserID)
	c.Set(ctxUserEmail, identity.Email)
	c.Request = c.Request.WithContext(backend.WithAccessToken(c.Request.Context(), token))
}

func GetUserID(c *gin.Context) (string, bool) {
	userID, exists := c.Get(ctxUserID)
	if !exists {
		return "", false
	}

	id, ok := userID.(string)
	if !ok || id == "" {
		return "", false
	}

	return id, true
}
