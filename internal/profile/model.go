package profile

import (
	"fmt"
	"math"
	"time"
)

const (
	DefaultDisplayName = "Jogador"
	DefaultLevel       = 1
)

type Profile struct {
	ID                  string     `db:"id" json:"id"`
	Username            *string    `db:"username" json:"username"`
	FullName            *string    `db:"full_name" json:"full_name"`
	AvatarURL           *string    `db:"avatar_url" json:"avatar_url"`
	Level               *int       `db:"level" json:"level"`
	IsPremium           bool       `db:"is_premium" json:"is_premium"`
	SubscriptionTier    *string    `db:"subscription_tier" json:"subscription_tier"`
	SubscriptionStatus  *string    `db:"subscription_status" json:"subscription_status"`
	SubscriptionEndDate *time.Time `db:"subscription_end_date" json:"subscription_end_date"`
	TotalGames          int        `db:"total_games" json:"total_games"`
	TotalWins           int        `db:"total_wins" json:"total_wins"`
	TotalGoals          int        `db:"total_goals" json:"total_goals"`
	TotalAssists        int        `db:"total_assists" json:"total_assists"`
	Rating              *float64   `db:"rating" json:"rating"`
	Badges              int        `db:"badges" json:"badges"`
	CreatedAt           time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt           time.Time  `db:"updated_at" json:"updated_at"`
}

func (p *Profile) DisplayName() string {
	if p == nil || p.FullName == nil || *p.FullName == "" {
		return DefaultDisplayName
	}
	return *p.FullName
}

func (p *Profile) DisplayLevel() int {
	if p == nil || p.Level == nil || *p.Level == 0 {
		return DefaultLevel
	}
	return *p.Level
}

// Email returns the contact address stored in username, if any.
func (p *Profile) Email() string {
	if p == nil || p.Username == nil {
		return ""
	}
	return *p.Username
}

// Stats are the aggregate figures shown on the dashboard and insights
// screens. Ratios are rendered with one decimal.
type Stats struct {
	Games          int    `json:"games"`
	Wins           int    `json:"wins"`
	Goals          int    `json:"goals"`
	Assists        int    `json:"assists"`
	Rating         string `json:"rating"`
	WinRate        int    `json:"win_rate"`
	GoalsPerGame   string `json:"goals_per_game"`
	AssistsPerGame string `json:"assists_per_game"`
}

func (p *Profile) Stats() Stats {
	if p == nil {
		p = &Profile{}
	}
	s := Stats{
		Games:          p.TotalGames,
		Wins:           p.TotalWins,
		Goals:          p.TotalGoals,
		Assists:        p.TotalAssists,
		Rating:         "0.0",
		GoalsPerGame:   "0.0",
		AssistsPerGame: "0.0",
	}
	if p.Rating != nil {
		s.Rating = fmt.Sprintf("%.1f", *p.Rating)
	}
	if p.TotalGames > 0 {
		games := float64(p.TotalGames)
		s.WinRate = int(math.Round(float64(p.TotalWins) / games * 100))
		s.GoalsPerGame = fmt.Sprintf("%.1f", float64(p.TotalGoals)/games)
		s.AssistsPerGame = fmt.Sprintf("%.1f", float64(p.TotalAssists)/games)
	}
	return s
}
