package shell

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"pelada/internal/api"
	"pelada/internal/auth"
)

type Handler struct {
	registry *Registry
}

func NewHandler(registry *Registry) *Handler {
	return &Handler{registry: registry}
}

// shell resolves the caller's shell. Without a session (gate bypassed)
// each request gets its own anonymous shell with empty data sources.
func (h *Handler) shell(c *gin.Context) *Shell {
	if s, ok := h.registry.Current(c); ok {
		return s
	}
	return h.registry.Anonymous()
}

// Home renders the current screen. After a completed checkout the view
// carries a confirmation notice and the subscription is read again.
func (h *Handler) Home(c *gin.Context) {
	s := h.shell(c)
	success := c.Query("success") == "true"
	if success {
		s.SubscriptionHook(c.Request.Context())
	}

	v := s.View(c.Request.Context())
	if success {
		v.Notice = NoticeCheckoutSuccess
	}
	c.JSON(http.StatusOK, v)
}

func (h *Handler) Navigate(c *gin.Context) {
	screen, ok := ParseScreen(c.Param("screen"))
	if !ok {
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "unknown screen"})
		return
	}

	s := h.shell(c)
	s.Navigate(c.Request.Context(), screen)
	c.JSON(http.StatusOK, s.View(c.Request.Context()))
}

// Upgrade opens the plan screen; processors send canceled checkouts here.
func (h *Handler) Upgrade(c *gin.Context) {
	s := h.shell(c)
	s.Navigate(c.Request.Context(), ScreenUpgrade)

	v := s.View(c.Request.Context())
	if c.Query("canceled") == "true" {
		v.Notice = NoticeCheckoutCanceled
	}
	c.JSON(http.StatusOK, v)
}

type MenuResponse struct {
	MenuOpen bool `json:"menu_open"`
}

func (h *Handler) ToggleMenu(c *gin.Context) {
	c.JSON(http.StatusOK, MenuResponse{MenuOpen: h.shell(c).ToggleMenu()})
}

type LoginPage struct {
	Title    string `json:"title"`
	Login    string `json:"login"`
	Register string `json:"register"`
}

func (h *Handler) Login(c *gin.Context) {
	c.JSON(http.StatusOK, LoginPage{
		Title:    "Craque da Pelada",
		Login:    "/auth/login",
		Register: "/auth/register",
	})
}

var _ auth.SessionObserver = (*Registry)(nil)
