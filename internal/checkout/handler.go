package checkout

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"pelada/internal/api"
)

type SessionCreator interface {
	CreateSession(ctx context.Context, plan, userID string) (string, error)
}

type Handler struct {
	creator SessionCreator
}

func NewHandler(creator SessionCreator) *Handler {
	return &Handler{creator: creator}
}

type CreateSessionRequest struct {
	Plan   string `json:"plan"`
	UserID string `json:"userId"`
}

type CreateSessionResponse struct {
	URL string `json:"url"`
}

// CreateSession godoc
// @Summary      Create checkout session
// @Description  Creates a hosted checkout session for a paid plan and returns its redirect URL.
// @Tags         checkout
// @Accept       json
// @Produce      json
// @Param        request  body      CreateSessionRequest  true  "Plan and user"
// @Success      200      {object}  CreateSessionResponse
// @Failure      400      {object}  api.ErrorResponse
// @Failure      429      {object}  api.ErrorResponse
// @Failure      500      {object}  api.ErrorResponse
// @Router       /api/create-checkout-session [post]
func (h *Handler) CreateSession(c *gin.Context) {
	var req CreateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: MsgMissingFields})
		return
	}

	url, err := h.creator.CreateSession(c.Request.Context(), req.Plan, req.UserID)
	if err != nil {
		var verr *ValidationError
		if errors.As(err, &verr) {
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: verr.Message})
			return
		}
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, CreateSessionResponse{URL: url})
}
