package diary

import (
	"fmt"
	"time"

	"pelada/internal/backend"
)

type Result string

const (
	ResultWin  Result = "win"
	ResultLoss Result = "loss"
	ResultDraw Result = "draw"
)

// RecentLimit is how many of the latest matches the diary shows.
const RecentLimit = 10

type Entry struct {
	ID            string       `db:"id" json:"id"`
	UserID        string       `db:"user_id" json:"user_id"`
	OpponentName  string       `db:"opponent_name" json:"opponent_name"`
	Result        Result       `db:"result" json:"result"`
	ScoreUser     int          `db:"score_user" json:"score_user"`
	ScoreOpponent int          `db:"score_opponent" json:"score_opponent"`
	Goals         int          `db:"goals" json:"goals"`
	Assists       int          `db:"assists" json:"assists"`
	Rating        *float64     `db:"rating" json:"rating"`
	Notes         *string      `db:"notes" json:"notes"`
	GameDate      backend.Date `db:"game_date" json:"game_date"`
	CreatedAt     time.Time    `db:"created_at" json:"created_at"`
}

// Summary renders the result line, e.g. "Vitória 3-1".
func (e Entry) Summary() string {
	label := "Empate"
	switch e.Result {
	case ResultWin:
		label = "Vitória"
	case ResultLoss:
		label = "Derrota"
	}
	return fmt.Sprintf("%s %d-%d", label, e.ScoreUser, e.ScoreOpponent)
}

// NewEntry is a match as submitted by the player; the owner is always the
// signed-in user.
type NewEntry struct {
	OpponentName  string   `json:"opponent_name" binding:"required" validate:"required,max=120"`
	Result        Result   `json:"result" binding:"required" validate:"required,oneof=win loss draw"`
	ScoreUser     int      `json:"score_user" validate:"gte=0,lte=99"`
	ScoreOpponent int      `json:"score_opponent" validate:"gte=0,lte=99"`
	Goals         int      `json:"goals" validate:"gte=0,lte=99"`
	Assists       int      `json:"assists" validate:"gte=0,lte=99"`
	Rating        *float64 `json:"rating" validate:"omitempty,gte=0,lte=10"`
	Notes         *string  `json:"notes" validate:"omitempty,max=1000"`
	GameDate      string   `json:"game_date" binding:"required" validate:"required,datetime=2006-01-02"`
}

func (n NewEntry) values(userID string) (map[string]any, error) {
	date, err := backend.ParseDate(n.GameDate)
	if err != nil {
		return nil, err
	}
	return map[string]any{
		"user_id":        userID,
		"opponent_name":  n.OpponentName,
		"result":         n.Result,
		"score_user":     n.ScoreUser,
		"score_opponent": n.ScoreOpponent,
		"goals":          n.Goals,
		"assists":        n.Assists,
		"rating":         n.Rating,
		"notes":          n.Notes,
		"game_date":      date,
	}, nil
}
