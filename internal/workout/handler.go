package workout

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"pelada/internal/api"
)

type (
	HookResolver        func(c *gin.Context) (*Hook, bool)
	RoutineHookResolver func(c *gin.Context) (*RoutineHook, bool)
)

type Handler struct {
	workouts HookResolver
	routines RoutineHookResolver
}

func NewHandler(workouts HookResolver, routines RoutineHookResolver) *Handler {
	return &Handler{workouts: workouts, routines: routines}
}

type ListResponse[T any] struct {
	Items   []T    `json:"items"`
	Loading bool   `json:"loading"`
	Error   string `json:"error,omitempty"`
}

func (h *Handler) ListWorkouts(c *gin.Context) {
	hook, ok := h.workouts(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "unauthorized"})
		return
	}
	_ = hook.Wait(c.Request.Context())

	snap := hook.Snapshot()
	resp := ListResponse[Workout]{Items: hook.Items(), Loading: snap.Loading}
	if snap.Err != nil {
		resp.Error = "failed to load workouts"
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) ListRoutines(c *gin.Context) {
	hook, ok := h.routines(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "unauthorized"})
		return
	}
	_ = hook.Wait(c.Request.Context())

	snap := hook.Snapshot()
	resp := ListResponse[WarmupRoutine]{Items: hook.Items(), Loading: snap.Loading}
	if snap.Err != nil {
		resp.Error = "failed to load routines"
	}
	c.JSON(http.StatusOK, resp)
}
