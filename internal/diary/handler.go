package diary

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"pelada/internal/api"
	"pelada/internal/backend"
)

type HookResolver func(c *gin.Context) (*Hook, bool)

type Handler struct {
	resolve HookResolver
}

func NewHandler(resolve HookResolver) *Handler {
	return &Handler{resolve: resolve}
}

type ListResponse struct {
	Items   []Entry `json:"items"`
	Loading bool    `json:"loading"`
	Error   string  `json:"error,omitempty"`
}

func (h *Handler) List(c *gin.Context) {
	hook, ok := h.resolve(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "unauthorized"})
		return
	}

	_ = hook.Wait(c.Request.Context())

	snap := hook.Snapshot()
	resp := ListResponse{Items: hook.Items(), Loading: snap.Loading}
	if snap.Err != nil {
		resp.Error = "failed to load games"
	}
	c.JSON(http.StatusOK, resp)
}

// Create godoc
// @Summary      Record a game
// @Tags         diary
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      NewEntry  true  "Game"
// @Success      201      {object}  Entry
// @Failure      400      {object}  api.ValidationErrorResponse
// @Failure      401      {object}  api.ErrorResponse
// @Failure      502      {object}  api.ErrorResponse
// @Failure      503      {object}  api.ErrorResponse
// @Router       /api/diary [post]
func (h *Handler) Create(c *gin.Context) {
	hook, ok := h.resolve(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "unauthorized"})
		return
	}

	var req NewEntry
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request body"})
		return
	}
	if errs := api.ValidateStruct(req); len(errs) > 0 {
		api.RespondWithValidationErrors(c, errs)
		return
	}

	entry, err := hook.AddGame(c.Request.Context(), req)
	switch {
	case err == nil:
		c.JSON(http.StatusCreated, entry)
	case errors.Is(err, backend.ErrUnavailable):
		c.JSON(http.StatusServiceUnavailable, api.ErrorResponse{Error: "backend not configured"})
	case errors.Is(err, ErrNoUser):
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "unauthorized"})
	default:
		c.JSON(http.StatusBadGateway, api.ErrorResponse{Error: "failed to save game"})
	}
}
