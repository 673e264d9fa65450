package profile

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"pelada/internal/api"
)

// HookResolver returns the profile hook of the caller's session.
type HookResolver func(c *gin.Context) (*Hook, bool)

type Handler struct {
	resolve HookResolver
}

func NewHandler(resolve HookResolver) *Handler {
	return &Handler{resolve: resolve}
}

type Response struct {
	Profile     *Profile `json:"profile"`
	DisplayName string   `json:"display_name"`
	Level       int      `json:"level"`
	Stats       Stats    `json:"stats"`
	Loading     bool     `json:"loading"`
	Error       string   `json:"error,omitempty"`
}

func (h *Handler) Get(c *gin.Context) {
	hook, ok := h.resolve(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "unauthorized"})
		return
	}

	// A failed read still answers with the last known profile.
	_ = hook.Wait(c.Request.Context())

	snap := hook.Snapshot()
	resp := Response{
		Profile:     snap.Value,
		DisplayName: snap.Value.DisplayName(),
		Level:       snap.Value.DisplayLevel(),
		Stats:       snap.Value.Stats(),
		Loading:     snap.Loading,
	}
	if snap.Err != nil {
		resp.Error = "failed to load profile"
	}
	c.JSON(http.StatusOK, resp)
}
