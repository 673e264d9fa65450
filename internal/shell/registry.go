package shell

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"pelada/internal/auth"
	"pelada/internal/diary"
	"pelada/internal/logger"
	"pelada/internal/metrics"
	"pelada/internal/profile"
	"pelada/internal/subscription"
	"pelada/internal/workout"
)

const sweepInterval = time.Minute

// Registry keeps one shell per signed-in user and forgets shells that
// have not been used for ttl.
type Registry struct {
	shells   map[string]*entry
	mu       sync.Mutex
	newHooks HooksFactory
	ttl      time.Duration
	now      func() time.Time
}

type entry struct {
	shell    *Shell
	lastSeen time.Time
}

func NewRegistry(newHooks HooksFactory, ttl time.Duration) *Registry {
	return &Registry{
		shells:   make(map[string]*entry),
		newHooks: newHooks,
		ttl:      ttl,
		now:      time.Now,
	}
}

// Anonymous returns a shell that belongs to no one and is never stored.
func (r *Registry) Anonymous() *Shell {
	return New("", r.newHooks(""))
}

// Get returns the user's shell, creating it on first use.
func (r *Registry) Get(userID string) *Shell {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, exists := r.shells[userID]
	if !exists {
		e = &entry{shell: New(userID, r.newHooks(userID))}
		r.shells[userID] = e
		metrics.ActiveShells.Set(float64(len(r.shells)))
	}
	e.lastSeen = r.now()
	return e.shell
}

// SignedIn drops any shell left from an earlier session of the user.
func (r *Registry) SignedIn(userID string) {
	r.remove(userID)
}

func (r *Registry) SignedOut(userID string) {
	r.remove(userID)
}

func (r *Registry) remove(userID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.shells, userID)
	metrics.ActiveShells.Set(float64(len(r.shells)))
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.shells)
}

// Sweep evicts idle shells and returns how many were dropped.
func (r *Registry) Sweep() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	evicted := 0
	now := r.now()
	for userID, e := range r.shells {
		if now.Sub(e.lastSeen) > r.ttl {
			delete(r.shells, userID)
			evicted++
		}
	}
	metrics.ActiveShells.Set(float64(len(r.shells)))
	return evicted
}

// Run sweeps periodically until ctx is done.
func (r *Registry) Run(ctx context.Context) {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := r.Sweep(); n > 0 {
				logger.Debug("evicted idle shells", "count", n)
			}
		}
	}
}

// Current returns the shell of the authenticated caller.
func (r *Registry) Current(c *gin.Context) (*Shell, bool) {
	userID, ok := auth.GetUserID(c)
	if !ok {
		return nil, false
	}
	return r.Get(userID), true
}

func (r *Registry) ProfileHook(c *gin.Context) (*profile.Hook, bool) {
	s, ok := r.Current(c)
	if !ok {
		return nil, false
	}
	return s.ProfileHook(c.Request.Context()), true
}

func (r *Registry) DiaryHook(c *gin.Context) (*diary.Hook, bool) {
	s, ok := r.Current(c)
	if !ok {
		return nil, false
	}
	if c.Request.Method != http.MethodGet {
		return s.DiaryWriter(c.Request.Context()), true
	}
	return s.DiaryHook(c.Request.Context()), true
}

func (r *Registry) WorkoutHook(c *gin.Context) (*workout.Hook, bool) {
	s, ok := r.Current(c)
	if !ok {
		return nil, false
	}
	return s.WorkoutHook(c.Request.Context()), true
}

func (r *Registry) RoutineHook(c *gin.Context) (*workout.RoutineHook, bool) {
	s, ok := r.Current(c)
	if !ok {
		return nil, false
	}
	return s.RoutineHook(c.Request.Context()), true
}

func (r *Registry) SubscriptionHook(c *gin.Context) (*subscription.Hook, bool) {
	s, ok := r.Current(c)
	if !ok {
		return nil, false
	}
	return s.SubscriptionHook(c.Request.Context()), true
}
