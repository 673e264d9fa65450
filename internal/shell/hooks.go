package shell

import (
	"context"

	"pelada/internal/backend"
	"pelada/internal/cache"
	"pelada/internal/diary"
	"pelada/internal/profile"
	"pelada/internal/subscription"
	"pelada/internal/workout"
)

// Hooks are the data sources of one signed-in user. They start idle and
// load again every time a screen or API read opens them.
type Hooks struct {
	Profile      *profile.Hook
	Diary        *diary.Hook
	Workouts     *workout.Hook
	Routines     *workout.RoutineHook
	Subscription *subscription.Hook
}

type HooksFactory func(userID string) *Hooks

func NewHooksFactory(client *backend.Client, catalogCache *cache.Cache) HooksFactory {
	return func(userID string) *Hooks {
		h := &Hooks{
			Profile:      profile.NewHook(client),
			Diary:        diary.NewHook(client),
			Workouts:     workout.NewHook(client, catalogCache),
			Routines:     workout.NewRoutineHook(client, catalogCache),
			Subscription: subscription.NewHook(client),
		}
		ctx := context.Background()
		h.Profile.SetDriver(ctx, userID)
		h.Diary.SetDriver(ctx, userID)
		h.Subscription.SetDriver(ctx, userID)
		return h
	}
}

type source interface {
	Reload(ctx context.Context)
	Wait(ctx context.Context) error
}

// sources lists the hooks a screen reads besides the header profile.
func (h *Hooks) sources(screen Screen) []source {
	switch screen {
	case ScreenDashboard, ScreenProfile, ScreenInsights:
		return []source{h.Profile}
	case ScreenWarmup:
		return []source{h.Profile, h.Routines}
	case ScreenTraining:
		return []source{h.Profile, h.Workouts, h.Subscription}
	case ScreenDiary:
		return []source{h.Profile, h.Diary}
	case ScreenUpgrade:
		return []source{h.Profile, h.Subscription}
	default:
		return []source{h.Profile}
	}
}
