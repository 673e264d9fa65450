package shell

import (
	"pelada/internal/diary"
	"pelada/internal/profile"
	"pelada/internal/subscription"
	"pelada/internal/workout"
)

const (
	featuredWorkouts = 6
	defaultUsername  = "usuario"

	NoticeCheckoutSuccess  = "Pagamento confirmado! Bem-vindo ao Premium."
	NoticeCheckoutCanceled = "Pagamento cancelado. Você pode tentar novamente quando quiser."
)

type Header struct {
	DisplayName string `json:"display_name"`
	Level       int    `json:"level"`
}

// View is everything a client needs to draw the current screen.
type View struct {
	Screen     Screen    `json:"screen"`
	Title      string    `json:"title"`
	MenuOpen   bool      `json:"menu_open"`
	Navigation []NavItem `json:"navigation"`
	Header     Header    `json:"header"`
	Loading    bool      `json:"loading"`
	Errors     []string  `json:"errors,omitempty"`
	Notice     string    `json:"notice,omitempty"`

	Dashboard *DashboardView `json:"dashboard,omitempty"`
	Profile   *ProfileView   `json:"profile,omitempty"`
	Warmup    *WarmupView    `json:"warmup,omitempty"`
	Training  *TrainingView  `json:"training,omitempty"`
	Diary     *DiaryView     `json:"diary,omitempty"`
	Insights  *InsightsView  `json:"insights,omitempty"`
	Upgrade   *UpgradeView   `json:"upgrade,omitempty"`
}

type DashboardView struct {
	Stats  profile.Stats `json:"stats"`
	Badges int           `json:"badges"`
	Level  int           `json:"level"`
}

type ProfileView struct {
	DisplayName string        `json:"display_name"`
	Username    string        `json:"username"`
	Level       int           `json:"level"`
	IsPremium   bool          `json:"is_premium"`
	Badges      int           `json:"badges"`
	Stats       profile.Stats `json:"stats"`
}

type WarmupView struct {
	Warmups   []workout.WarmupRoutine `json:"warmups"`
	Cooldowns []workout.WarmupRoutine `json:"cooldowns"`
}

type CategoryCount struct {
	Category workout.Category `json:"category"`
	Label    string           `json:"label"`
	Count    int              `json:"count"`
}

type WorkoutCard struct {
	workout.Workout
	Locked bool `json:"locked"`
}

type TrainingView struct {
	Categories []CategoryCount `json:"categories"`
	Workouts   []WorkoutCard   `json:"workouts"`
}

type DiaryItem struct {
	diary.Entry
	Summary string `json:"summary"`
}

type DiaryView struct {
	Games []DiaryItem `json:"games"`
}

type InsightsView struct {
	Rating         string `json:"rating"`
	WinRate        int    `json:"win_rate"`
	GoalsPerGame   string `json:"goals_per_game"`
	AssistsPerGame string `json:"assists_per_game"`
}

type UpgradeView struct {
	Plans       []subscription.PlanInfo `json:"plans"`
	CurrentPlan subscription.Plan       `json:"current_plan"`
	// Subscribed is set when the user already holds a paid plan.
	Subscribed bool   `json:"subscribed"`
	Message    string `json:"message,omitempty"`
}

var categoryLabels = map[workout.Category]string{
	workout.CategoryResistance: "Resistência",
	workout.CategorySpeed:      "Velocidade",
	workout.CategoryTechnique:  "Técnica",
	workout.CategoryStrength:   "Força",
}

func dashboardView(p *profile.Profile) *DashboardView {
	v := &DashboardView{Stats: p.Stats(), Level: p.DisplayLevel()}
	if p != nil {
		v.Badges = p.Badges
	}
	return v
}

func profileView(p *profile.Profile) *ProfileView {
	v := &ProfileView{
		DisplayName: p.DisplayName(),
		Username:    defaultUsername,
		Level:       p.DisplayLevel(),
		Stats:       p.Stats(),
	}
	if p != nil {
		v.IsPremium = p.IsPremium
		v.Badges = p.Badges
		if p.Username != nil && *p.Username != "" {
			v.Username = *p.Username
		}
	}
	return v
}

func warmupView(routines []workout.WarmupRoutine) *WarmupView {
	warmups, cooldowns := workout.SplitRoutines(routines)
	return &WarmupView{Warmups: warmups, Cooldowns: cooldowns}
}

// trainingView counts the whole catalog and features its first workouts.
// Premium workouts are locked for users without a paid plan.
func trainingView(workouts []workout.Workout, premium bool) *TrainingView {
	counts := workout.CountByCategory(workouts)
	v := &TrainingView{
		Categories: make([]CategoryCount, 0, len(workout.Categories)),
		Workouts:   []WorkoutCard{},
	}
	for _, c := range workout.Categories {
		v.Categories = append(v.Categories, CategoryCount{Category: c, Label: categoryLabels[c], Count: counts[c]})
	}
	for i, w := range workouts {
		if i == featuredWorkouts {
			break
		}
		v.Workouts = append(v.Workouts, WorkoutCard{Workout: w, Locked: w.IsPremium && !premium})
	}
	return v
}

func diaryView(entries []diary.Entry) *DiaryView {
	v := &DiaryView{Games: make([]DiaryItem, 0, len(entries))}
	for _, e := range entries {
		v.Games = append(v.Games, DiaryItem{Entry: e, Summary: e.Summary()})
	}
	return v
}

func insightsView(p *profile.Profile) *InsightsView {
	s := p.Stats()
	return &InsightsView{
		Rating:         s.Rating,
		WinRate:        s.WinRate,
		GoalsPerGame:   s.GoalsPerGame,
		AssistsPerGame: s.AssistsPerGame,
	}
}

func upgradeView(sub subscription.Subscription) *UpgradeView {
	v := &UpgradeView{
		Plans:       subscription.Plans(),
		CurrentPlan: sub.Plan,
		Subscribed:  sub.IsPremium(),
	}
	if v.Subscribed {
		if info, err := subscription.FindPlan(string(sub.Plan)); err == nil {
			v.Message = "Você possui o plano " + info.Name + "."
		}
	}
	return v
}
