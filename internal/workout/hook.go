package workout

import (
	"context"

	"pelada/internal/backend"
	"pelada/internal/cache"
	"pelada/internal/collection"
)

var (
	WorkoutSpec = collection.Spec{
		Table:   backend.TableWorkouts,
		OrderBy: "created_at",
	}
	RoutineSpec = collection.Spec{
		Table:   backend.TableWarmupRoutines,
		OrderBy: "created_at",
	}
)

type Hook struct {
	*collection.Collection[Workout]
}

type RoutineHook struct {
	*collection.Collection[WarmupRoutine]
}

// cached wraps the table read of a global catalog with the shared cache.
func cached[T any](client *backend.Client, c *cache.Cache, spec collection.Spec) collection.Fetcher[[]T] {
	load := collection.TableFetcher[T](client, spec)
	return func(ctx context.Context, driver string) ([]T, error) {
		return cache.Fetch(ctx, c, spec.Table, func(ctx context.Context) ([]T, error) {
			return load(ctx, driver)
		})
	}
}

// NewHook returns the workout catalog. c may be nil.
func NewHook(client *backend.Client, c *cache.Cache) *Hook {
	return &Hook{collection.NewWithFetcher(client, WorkoutSpec, cached[Workout](client, c, WorkoutSpec))}
}

// NewRoutineHook returns the warm-up/cool-down catalog. c may be nil.
func NewRoutineHook(client *backend.Client, c *cache.Cache) *RoutineHook {
	return &RoutineHook{collection.NewWithFetcher(client, RoutineSpec, cached[WarmupRoutine](client, c, RoutineSpec))}
}
