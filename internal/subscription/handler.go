package subscription

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"pelada/internal/api"
)

type HookResolver func(c *gin.Context) (*Hook, bool)

type Handler struct {
	resolve HookResolver
}

func NewHandler(resolve HookResolver) *Handler {
	return &Handler{resolve: resolve}
}

type Response struct {
	Subscription Subscription `json:"subscription"`
	IsPremium    bool         `json:"is_premium"`
	Loading      bool         `json:"loading"`
	Error        string       `json:"error,omitempty"`
}

func (h *Handler) Get(c *gin.Context) {
	hook, ok := h.resolve(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "unauthorized"})
		return
	}
	_ = hook.Wait(c.Request.Context())

	snap := hook.Snapshot()
	resp := Response{
		Subscription: hook.Subscription(),
		IsPremium:    hook.IsPremium(),
		Loading:      snap.Loading,
	}
	if snap.Err != nil {
		resp.Error = "failed to load subscription"
	}
	c.JSON(http.StatusOK, resp)
}

// @Summary      List paid plans
// @Tags         subscription
// @Produce      json
// @Success      200 {array} PlanInfo
// @Router       /api/plans [get]
func (h *Handler) ListPlans(c *gin.Context) {
	c.JSON(http.StatusOK, Plans())
}
