package shell

import (
	"context"
	"sync"

	"pelada/internal/diary"
	"pelada/internal/profile"
	"pelada/internal/subscription"
	"pelada/internal/workout"
)

// Shell is the navigation state of one signed-in user.
type Shell struct {
	userID string
	hooks  *Hooks

	mu       sync.Mutex
	screen   Screen
	menuOpen bool
}

func New(userID string, hooks *Hooks) *Shell {
	return &Shell{userID: userID, hooks: hooks, screen: DefaultScreen}
}

func (s *Shell) UserID() string {
	return s.userID
}

func (s *Shell) Hooks() *Hooks {
	return s.hooks
}

func (s *Shell) Screen() Screen {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.screen
}

func (s *Shell) MenuOpen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.menuOpen
}

// Navigate switches screens, closes the mobile menu and starts loading the
// data sources the new screen reads.
func (s *Shell) Navigate(ctx context.Context, screen Screen) {
	s.mu.Lock()
	s.screen = screen
	s.menuOpen = false
	s.mu.Unlock()

	for _, src := range s.hooks.sources(screen) {
		src.Reload(ctx)
	}
}

// ToggleMenu flips the mobile menu and returns the new state.
func (s *Shell) ToggleMenu() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.menuOpen = !s.menuOpen
	return s.menuOpen
}

// View reloads the current screen's sources, waits for them and renders
// them. A ctx that ends first yields a view that is still loading.
func (s *Shell) View(ctx context.Context) View {
	s.mu.Lock()
	screen, menuOpen := s.screen, s.menuOpen
	s.mu.Unlock()

	sources := s.hooks.sources(screen)
	for _, src := range sources {
		src.Reload(ctx)
	}
	for _, src := range sources {
		_ = src.Wait(ctx)
	}

	h := s.hooks
	profileSnap := h.Profile.Snapshot()
	p := profileSnap.Value

	v := View{
		Screen:     screen,
		Title:      screen.Label(),
		MenuOpen:   menuOpen,
		Navigation: Navigation(screen),
		Header:     Header{DisplayName: p.DisplayName(), Level: p.DisplayLevel()},
		Loading:    profileSnap.Loading,
	}
	if profileSnap.Err != nil {
		v.Errors = append(v.Errors, "failed to load profile")
	}

	switch screen {
	case ScreenDashboard:
		v.Dashboard = dashboardView(p)
	case ScreenProfile:
		v.Profile = profileView(p)
	case ScreenInsights:
		v.Insights = insightsView(p)
	case ScreenWarmup:
		v.Warmup = warmupView(h.Routines.Items())
		v.collect(h.Routines.Snapshot().Loading, h.Routines.Snapshot().Err, "failed to load routines")
	case ScreenTraining:
		v.Training = trainingView(h.Workouts.Items(), h.Subscription.IsPremium())
		v.collect(h.Workouts.Snapshot().Loading, h.Workouts.Snapshot().Err, "failed to load workouts")
		v.collect(h.Subscription.Snapshot().Loading, h.Subscription.Snapshot().Err, "failed to load subscription")
	case ScreenDiary:
		v.Diary = diaryView(h.Diary.Items())
		v.collect(h.Diary.Snapshot().Loading, h.Diary.Snapshot().Err, "failed to load games")
	case ScreenUpgrade:
		v.Upgrade = upgradeView(h.Subscription.Subscription())
		v.collect(h.Subscription.Snapshot().Loading, h.Subscription.Snapshot().Err, "failed to load subscription")
	}
	return v
}

func (v *View) collect(loading bool, err error, msg string) {
	v.Loading = v.Loading || loading
	if err != nil {
		v.Errors = append(v.Errors, msg)
	}
}

// ProfileHook, DiaryHook and the other accessors start a fresh load before
// handing the source out, so every API read sees current rows.
func (s *Shell) ProfileHook(ctx context.Context) *profile.Hook {
	s.hooks.Profile.Reload(ctx)
	return s.hooks.Profile
}

func (s *Shell) DiaryHook(ctx context.Context) *diary.Hook {
	s.hooks.Diary.Reload(ctx)
	return s.hooks.Diary
}

// DiaryWriter returns the diary source for inserts. It is mounted but not
// reloaded, so a load racing the insert cannot drop the new game.
func (s *Shell) DiaryWriter(ctx context.Context) *diary.Hook {
	s.hooks.Diary.Mount(ctx)
	return s.hooks.Diary
}

func (s *Shell) WorkoutHook(ctx context.Context) *workout.Hook {
	s.hooks.Workouts.Reload(ctx)
	return s.hooks.Workouts
}

func (s *Shell) RoutineHook(ctx context.Context) *workout.RoutineHook {
	s.hooks.Routines.Reload(ctx)
	return s.hooks.Routines
}

func (s *Shell) SubscriptionHook(ctx context.Context) *subscription.Hook {
	s.hooks.Subscription.Reload(ctx)
	return s.hooks.Subscription
}
