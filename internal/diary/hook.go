package diary

import (
	"context"
	"errors"

	"pelada/internal/backend"
	"pelada/internal/collection"
	"pelada/internal/logger"
)

var ErrNoUser = errors.New("no signed-in user")

var Spec = collection.Spec{
	Table:        backend.TableGameDiary,
	DriverColumn: "user_id",
	OrderBy:      "game_date",
	Ascending:    false,
	Limit:        RecentLimit,
}

// Hook is the signed-in user's recent matches.
type Hook struct {
	*collection.Collection[Entry]
	writer Writer
}

func NewHook(client *backend.Client) *Hook {
	return NewHookWithWriter(client, NewRepository(client))
}

func NewHookWithWriter(client *backend.Client, writer Writer) *Hook {
	return &Hook{
		Collection: collection.New[Entry](client, Spec),
		writer:     writer,
	}
}

// AddGame stores a match for the current user and puts it at the head of
// the list. Failures leave the list untouched and are returned unchanged.
func (h *Hook) AddGame(ctx context.Context, entry NewEntry) (Entry, error) {
	userID := h.Snapshot().Driver
	if userID == "" {
		return Entry{}, ErrNoUser
	}

	created, err := h.writer.Insert(ctx, userID, entry)
	if err != nil {
		logger.Error("failed to add game", "user_id", userID, "error", err)
		return Entry{}, err
	}

	if !h.Prepend(userID, *created) {
		logger.Debug("session changed while adding game; list not updated", "user_id", userID)
	}
	return *created, nil
}
