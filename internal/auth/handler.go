package auth

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"pelada/internal/api"
	"pelada/internal/logger"
)

// SessionObserver is told when a user's session starts or ends so per-user
// state can be rebuilt or dropped.
type SessionObserver interface {
	SignedIn(userID string)
	SignedOut(userID string)
}

type Handler struct {
	service      *Service
	verifier     Verifier
	observer     SessionObserver
	secureCookie bool
}

func NewHandler(service *Service, verifier Verifier, observer SessionObserver, secureCookie bool) *Handler {
	return &Handler{service: service, verifier: verifier, observer: observer, secureCookie: secureCookie}
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	FullName string `json:"full_name" validate:"max=120"`
}

type SessionResponse struct {
	Authenticated bool   `json:"authenticated"`
	UserID        string `json:"user_id,omitempty"`
	Email         string `json:"email,omitempty"`
	AccessToken   string `json:"access_token,omitempty"`
	RefreshToken  string `json:"refresh_token,omitempty"`
	ExpiresIn     int    `json:"expires_in,omitempty"`
	// ConfirmationRequired is set after a sign-up that has no session yet.
	ConfirmationRequired bool `json:"confirmation_required,omitempty"`
}

// Login godoc
// @Summary      Sign in with e-mail and password
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request  body      LoginRequest  true  "Credentials"
// @Success      200      {object}  SessionResponse
// @Failure      400      {object}  api.ErrorResponse
// @Failure      401      {object}  api.ErrorResponse
// @Failure      503      {object}  api.ErrorResponse
// @Router       /auth/login [post]
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request body"})
		return
	}
	if errs := api.ValidateStruct(req); len(errs) > 0 {
		api.RespondWithValidationErrors(c, errs)
		return
	}

	session, err := h.service.SignIn(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	h.startSession(c, session)
	c.JSON(http.StatusOK, sessionResponse(session))
}

func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request body"})
		return
	}
	if errs := api.ValidateStruct(req); len(errs) > 0 {
		api.RespondWithValidationErrors(c, errs)
		return
	}

	session, err := h.service.SignUp(c.Request.Context(), req.Email, req.Password, req.FullName)
	if err != nil {
		respondError(c, err)
		return
	}

	if session.Active() {
		h.startSession(c, session)
	}
	c.JSON(http.StatusCreated, sessionResponse(session))
}

func (h *Handler) Logout(c *gin.Context) {
	token, _ := extractToken(c)
	if token != "" {
		if identity, err := h.verifier.Verify(c.Request.Context(), token); err == nil && h.observer != nil {
			h.observer.SignedOut(identity.UserID)
		}
		// The local session ends even when the provider cannot be reached.
		if err := h.service.SignOut(c.Request.Context(), token); err != nil {
			logger.Warn("sign out failed", "error", err)
		}
	}

	h.setCookie(c, "", -1)
	c.JSON(http.StatusOK, api.MessageResponse{Message: "signed out"})
}

func (h *Handler) Session(c *gin.Context) {
	token, err := extractToken(c)
	if err != nil {
		c.JSON(http.StatusOK, SessionResponse{})
		return
	}

	identity, err := h.verifier.Verify(c.Request.Context(), token)
	if err != nil {
		c.JSON(http.StatusOK, SessionResponse{})
		return
	}

	c.JSON(http.StatusOK, SessionResponse{
		Authenticated: true,
		UserID:        identity.UserID,
		Email:         identity.Email,
	})
}

func (h *Handler) startSession(c *gin.Context, session *Session) {
	h.setCookie(c, session.AccessToken, session.ExpiresIn)
	if h.observer != nil && session.User != nil {
		h.observer.SignedIn(session.User.ID)
	}
}

func (h *Handler) setCookie(c *gin.Context, value string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(CookieName, value, maxAge, "/", "", h.secureCookie, true)
}

func sessionResponse(session *Session) SessionResponse {
	resp := SessionResponse{
		Authenticated: session.Active(),
		AccessToken:   session.AccessToken,
		RefreshToken:  session.RefreshToken,
		ExpiresIn:     session.ExpiresIn,
	}
	if session.User != nil {
		resp.UserID = session.User.ID
		resp.Email = session.User.Email
	}
	resp.ConfirmationRequired = !session.Active() && session.User != nil
	return resp
}

func respondError(c *gin.Context, err error) {
	var authErr *Error
	if !errors.As(err, &authErr) {
		if errors.Is(err, context.DeadlineExceeded) {
			c.JSON(http.StatusGatewayTimeout, api.ErrorResponse{Error: err.Error()})
			return
		}
		logger.Error("auth request failed", "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Internal server error"})
		return
	}

	c.JSON(statusFor(authErr), api.ErrorResponse{Error: authErr.Error()})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, ErrAlreadyRegistered):
		return http.StatusConflict
	case errors.Is(err, ErrWeakPassword):
		return http.StatusUnprocessableEntity
	case errors.Is(err, ErrRejected):
		return http.StatusBadRequest
	case errors.Is(err, ErrUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusBadGateway
	}
}
