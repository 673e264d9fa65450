package shell

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pelada/internal/auth"
	"pelada/internal/backend"
	"pelada/internal/backend/backendtest"
	"pelada/internal/diary"
	"pelada/internal/profile"
	"pelada/internal/subscription"
	"pelada/internal/workout"
)

const userID = "9b2f4c1e-6a43-4f0e-9d7b-2f1a7c3e5d10"

var base = time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

func waitCtx(t *testing.T) context.Context {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	t.Cleanup(cancel)
	return ctx
}

func ptr[T any](v T) *T { return &v }

func seed(store *backendtest.MemoryStore) {
	store.Seed(backend.TableProfiles, profile.Profile{
		ID:         userID,
		FullName:   ptr("Rafael Souza"),
		Username:   ptr("rafa"),
		Level:      ptr(7),
		TotalGames: 10,
		TotalWins:  6,
		TotalGoals: 12,
		Rating:     ptr(8.26),
		Badges:     3,
	})
	for i := 0; i < 8; i++ {
		store.Seed(backend.TableWorkouts, workout.Workout{
			ID:        "w" + string(rune('a'+i)),
			Title:     "Treino",
			Category:  workout.Categories[i%len(workout.Categories)],
			IsPremium: i%2 == 0,
			CreatedAt: base.Add(time.Duration(i) * time.Hour),
		})
	}
	store.Seed(backend.TableWarmupRoutines,
		workout.WarmupRoutine{ID: "r1", RoutineType: workout.RoutineWarmup, CreatedAt: base},
		workout.WarmupRoutine{ID: "r2", RoutineType: workout.RoutineCooldown, CreatedAt: base.Add(time.Hour)},
	)
	store.Seed(backend.TableGameDiary, diary.Entry{
		ID:            "g1",
		UserID:        userID,
		OpponentName:  "Várzea FC",
		Result:        diary.ResultWin,
		ScoreUser:     3,
		ScoreOpponent: 1,
		GameDate:      backend.NewDate(2024, time.March, 2),
	})
}

func newShell(store *backendtest.MemoryStore) *Shell {
	return New(userID, NewHooksFactory(store.Client(), nil)(userID))
}

func TestParseScreen(t *testing.T) {
	for _, item := range Navigation(DefaultScreen) {
		s, ok := ParseScreen(string(item.ID))
		assert.True(t, ok)
		assert.Equal(t, item.ID, s)
	}

	s, ok := ParseScreen("upgrade")
	assert.True(t, ok)
	assert.Equal(t, ScreenUpgrade, s)

	_, ok = ParseScreen("settings")
	assert.False(t, ok)
}

func TestNavigation(t *testing.T) {
	items := Navigation(ScreenDiary)
	require.Len(t, items, 9)
	assert.Equal(t, "Dashboard", items[0].Label)
	assert.Equal(t, "Q&A", items[8].Label)
	for _, item := range items {
		assert.Equal(t, item.ID == ScreenDiary, item.Active, item.ID)
	}
}

func TestShellDefaultsAndMenu(t *testing.T) {
	s := newShell(backendtest.NewMemoryStore())
	assert.Equal(t, ScreenDashboard, s.Screen())
	assert.False(t, s.MenuOpen())

	assert.True(t, s.ToggleMenu())
	s.Navigate(context.Background(), ScreenInsights)
	assert.False(t, s.MenuOpen(), "navigating closes the menu")
	assert.Equal(t, ScreenInsights, s.Screen())
}

func TestViewHeaderFallbacks(t *testing.T) {
	store := backendtest.NewMemoryStore()
	s := newShell(store)

	v := s.View(waitCtx(t))
	assert.Equal(t, "Jogador", v.Header.DisplayName)
	assert.Equal(t, 1, v.Header.Level)
	require.NotNil(t, v.Dashboard)
	assert.Equal(t, "0.0", v.Dashboard.Stats.Rating)
	assert.Empty(t, v.Errors)
}

func TestViewScreens(t *testing.T) {
	store := backendtest.NewMemoryStore()
	seed(store)
	s := newShell(store)
	ctx := waitCtx(t)

	v := s.View(ctx)
	assert.Equal(t, "Rafael Souza", v.Header.DisplayName)
	assert.Equal(t, 7, v.Header.Level)
	assert.Equal(t, 3, v.Dashboard.Badges)

	s.Navigate(ctx, ScreenProfile)
	v = s.View(ctx)
	require.NotNil(t, v.Profile)
	assert.Equal(t, "rafa", v.Profile.Username)
	assert.Equal(t, "8.3", v.Profile.Stats.Rating)

	s.Navigate(ctx, ScreenInsights)
	v = s.View(ctx)
	require.NotNil(t, v.Insights)
	assert.Equal(t, 60, v.Insights.WinRate)
	assert.Equal(t, "1.2", v.Insights.GoalsPerGame)
	assert.Equal(t, "0.0", v.Insights.AssistsPerGame)

	s.Navigate(ctx, ScreenWarmup)
	v = s.View(ctx)
	require.NotNil(t, v.Warmup)
	assert.Len(t, v.Warmup.Warmups, 1)
	assert.Len(t, v.Warmup.Cooldowns, 1)

	s.Navigate(ctx, ScreenDiary)
	v = s.View(ctx)
	require.NotNil(t, v.Diary)
	require.Len(t, v.Diary.Games, 1)
	assert.Equal(t, "Vitória 3-1", v.Diary.Games[0].Summary)

	s.Navigate(ctx, ScreenCommunity)
	v = s.View(ctx)
	assert.Equal(t, "Comunidade", v.Title)
	assert.Nil(t, v.Dashboard)
}

func TestTrainingLocksPremiumWorkouts(t *testing.T) {
	store := backendtest.NewMemoryStore()
	seed(store)
	ctx := waitCtx(t)

	s := newShell(store)
	s.Navigate(ctx, ScreenTraining)
	v := s.View(ctx)
	require.NotNil(t, v.Training)
	require.Len(t, v.Training.Workouts, 6)
	require.Len(t, v.Training.Categories, 4)
	for _, c := range v.Training.Categories {
		assert.Equal(t, 2, c.Count, c.Category)
	}
	assert.Equal(t, "Resistência", v.Training.Categories[0].Label)
	for _, w := range v.Training.Workouts {
		assert.Equal(t, w.IsPremium, w.Locked, w.ID)
	}

	store.Seed(backend.TableUserSubscriptions, subscription.Subscription{
		ID:     "s1",
		UserID: userID,
		Plan:   subscription.PlanMonthly,
		Status: subscription.StatusActive,
	})
	premium := newShell(store)
	premium.Navigate(ctx, ScreenTraining)
	v = premium.View(ctx)
	for _, w := range v.Training.Workouts {
		assert.False(t, w.Locked, w.ID)
	}

	premium.Navigate(ctx, ScreenUpgrade)
	v = premium.View(ctx)
	require.NotNil(t, v.Upgrade)
	assert.True(t, v.Upgrade.Subscribed)
	assert.Equal(t, "Você possui o plano Premium Mensal.", v.Upgrade.Message)
	assert.Len(t, v.Upgrade.Plans, 2)
}

func TestViewUnconfigured(t *testing.T) {
	store := backendtest.NewMemoryStore()
	seed(store)
	s := New(userID, NewHooksFactory(store.UnconfiguredClient(), nil)(userID))
	ctx := waitCtx(t)

	s.Navigate(ctx, ScreenTraining)
	v := s.View(ctx)
	assert.False(t, v.Loading)
	assert.Empty(t, v.Errors)
	assert.Empty(t, v.Training.Workouts)
	assert.Equal(t, 0, store.Calls(backend.TableWorkouts))
}

func TestRegistry(t *testing.T) {
	store := backendtest.NewMemoryStore()
	r := NewRegistry(NewHooksFactory(store.Client(), nil), time.Minute)
	now := base
	r.now = func() time.Time { return now }

	a := r.Get(userID)
	assert.Same(t, a, r.Get(userID))
	r.Get("other")
	assert.Equal(t, 2, r.Len())

	now = now.Add(30 * time.Second)
	r.Get(userID)
	now = now.Add(45 * time.Second)
	assert.Equal(t, 1, r.Sweep(), "only the idle shell is evicted")
	assert.Equal(t, 1, r.Len())

	r.SignedOut(userID)
	assert.Equal(t, 0, r.Len())

	b := r.Get(userID)
	r.SignedIn(userID)
	assert.NotSame(t, b, r.Get(userID))
}

func TestRegistryRunStops(t *testing.T) {
	r := NewRegistry(NewHooksFactory(backendtest.NewMemoryStore().Client(), nil), time.Minute)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		r.Run(ctx)
		close(done)
	}()
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func setupRouter(store *backendtest.MemoryStore, signedIn bool) (*gin.Engine, *Registry) {
	gin.SetMode(gin.TestMode)
	registry := NewRegistry(NewHooksFactory(store.Client(), nil), time.Minute)
	h := NewHandler(registry)

	r := gin.New()
	if signedIn {
		r.Use(func(c *gin.Context) {
			c.Set("user_id", userID)
			c.Next()
		})
	}
	r.GET("/", h.Home)
	r.GET("/login", h.Login)
	r.GET("/upgrade", h.Upgrade)
	r.GET("/app/:screen", h.Navigate)
	r.POST("/app/menu", h.ToggleMenu)
	return r, registry
}

func TestHandlers(t *testing.T) {
	store := backendtest.NewMemoryStore()
	seed(store)
	r, registry := setupRouter(store, true)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/app/diary", nil))
	require.Equal(t, http.StatusOK, w.Code)
	var v View
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v))
	assert.Equal(t, ScreenDiary, v.Screen)
	require.NotNil(t, v.Diary)
	assert.Len(t, v.Diary.Games, 1)
	assert.Equal(t, ScreenDiary, registry.Get(userID).Screen())

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/app/settings", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("POST", "/app/menu", nil))
	assert.JSONEq(t, `{"menu_open":true}`, w.Body.String())

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/?success=true", nil))
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v))
	assert.Equal(t, NoticeCheckoutSuccess, v.Notice)
	assert.Equal(t, ScreenDiary, v.Screen)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/upgrade?canceled=true", nil))
	v = View{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v))
	assert.Equal(t, NoticeCheckoutCanceled, v.Notice)
	require.NotNil(t, v.Upgrade)
	assert.Equal(t, subscription.PlanFree, v.Upgrade.CurrentPlan)
	assert.False(t, v.Upgrade.Subscribed)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/login", nil))
	assert.Contains(t, w.Body.String(), `"login":"/auth/login"`)
}

func TestHandlerAnonymousShell(t *testing.T) {
	store := backendtest.NewMemoryStore()
	seed(store)
	r, registry := setupRouter(store, false)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"display_name":"Jogador"`)
	assert.Equal(t, 0, registry.Len(), "anonymous shells are not kept")
	assert.Equal(t, 0, store.Calls(backend.TableProfiles))

	for i := 0; i < 2; i++ {
		w = httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest("POST", "/app/menu", nil))
		assert.JSONEq(t, `{"menu_open":true}`, w.Body.String(), "visitors do not share menu state")
	}
}

func getView(t *testing.T, r *gin.Engine, target string) View {
	t.Helper()
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", target, nil))
	require.Equal(t, http.StatusOK, w.Code)
	var v View
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v))
	return v
}

func TestHandlersSeeSubscriptionAfterCheckout(t *testing.T) {
	store := backendtest.NewMemoryStore()
	seed(store)
	r, _ := setupRouter(store, true)

	v := getView(t, r, "/upgrade")
	require.NotNil(t, v.Upgrade)
	assert.False(t, v.Upgrade.Subscribed)

	v = getView(t, r, "/app/training")
	locked := 0
	for _, w := range v.Training.Workouts {
		if w.Locked {
			locked++
		}
	}
	assert.Positive(t, locked)

	store.Seed(backend.TableUserSubscriptions, subscription.Subscription{
		ID:     "s1",
		UserID: userID,
		Plan:   subscription.PlanMonthly,
		Status: subscription.StatusActive,
	})

	v = getView(t, r, "/?success=true")
	assert.Equal(t, NoticeCheckoutSuccess, v.Notice)
	for _, w := range v.Training.Workouts {
		assert.False(t, w.Locked, w.ID)
	}

	v = getView(t, r, "/upgrade")
	require.NotNil(t, v.Upgrade)
	assert.True(t, v.Upgrade.Subscribed)
	assert.Equal(t, subscription.PlanMonthly, v.Upgrade.CurrentPlan)
}

func TestHandlersRecoverAfterFailedRead(t *testing.T) {
	store := backendtest.NewMemoryStore()
	seed(store)
	var failing atomic.Bool
	failing.Store(true)
	store.Before = func(ctx context.Context, op, table string) error {
		if table == backend.TableGameDiary && failing.Load() {
			return errors.New("connection reset")
		}
		return nil
	}
	r, _ := setupRouter(store, true)

	v := getView(t, r, "/app/diary")
	assert.Contains(t, v.Errors, "failed to load games")
	assert.Empty(t, v.Diary.Games)

	failing.Store(false)

	v = getView(t, r, "/app/diary")
	assert.Empty(t, v.Errors)
	assert.Len(t, v.Diary.Games, 1)
	assert.Equal(t, 2, store.Calls(backend.TableGameDiary))
}

func TestRegistryResolversReload(t *testing.T) {
	gin.SetMode(gin.TestMode)
	store := backendtest.NewMemoryStore()
	seed(store)
	registry := NewRegistry(NewHooksFactory(store.Client(), nil), time.Minute)

	resolve := func(method string) *diary.Hook {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest(method, "/api/diary", nil)
		c.Set("user_id", userID)
		hook, ok := registry.DiaryHook(c)
		require.True(t, ok)
		require.NoError(t, hook.Wait(waitCtx(t)))
		return hook
	}

	resolve("GET")
	resolve("GET")
	assert.Equal(t, 2, store.Calls(backend.TableGameDiary), "every read loads again")

	resolve("POST")
	assert.Equal(t, 2, store.Calls(backend.TableGameDiary), "writes reuse the mounted list")
}

var _ auth.SessionObserver = (*Registry)(nil)
