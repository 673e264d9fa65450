package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"pelada/internal/auth"
	"pelada/internal/bootstrap"
	"pelada/internal/checkout"
	"pelada/internal/diary"
	"pelada/internal/profile"
	"pelada/internal/shell"
	"pelada/internal/subscription"
	"pelada/internal/workout"
)

type Server struct {
	router  *gin.Engine
	http    *http.Server
	limiter *RateLimiter
	app     *bootstrap.App
}

func New(app *bootstrap.App) *Server {
	cfg := app.Config
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery(), RequestLoggingMiddleware(), MetricsMiddleware(), corsMiddleware())

	limiter := NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst, 3*time.Minute)
	registry := app.Registry

	authHandler := auth.NewHandler(app.Auth, app.Verifier, registry, cfg.IsProduction())
	shellHandler := shell.NewHandler(registry)
	profileHandler := profile.NewHandler(registry.ProfileHook)
	diaryHandler := diary.NewHandler(registry.DiaryHook)
	workoutHandler := workout.NewHandler(registry.WorkoutHook, registry.RoutineHook)
	subscriptionHandler := subscription.NewHandler(registry.SubscriptionHook)
	checkoutHandler := checkout.NewHandler(app.Initiator)

	router.GET("/health", Health(app))
	router.GET("/metrics", Metrics())
	SetupSwagger(router)

	public := router.Group("/auth", limiter.Middleware())
	{
		public.POST("/register", authHandler.Register)
		public.POST("/login", authHandler.Login)
		public.POST("/logout", authHandler.Logout)
		public.GET("/session", authHandler.Session)
	}

	router.POST("/api/create-checkout-session", limiter.Middleware(), checkoutHandler.CreateSession)
	router.GET("/api/plans", subscriptionHandler.ListPlans)

	protected := router.Group("/api")
	protected.Use(auth.Middleware(app.Verifier))
	{
		protected.GET("/profile", profileHandler.Get)
		protected.GET("/diary", diaryHandler.List)
		protected.POST("/diary", diaryHandler.Create)
		protected.GET("/workouts", workoutHandler.ListWorkouts)
		protected.GET("/warmup-routines", workoutHandler.ListRoutines)
		protected.GET("/subscription", subscriptionHandler.Get)
	}

	pages := router.Group("/")
	pages.Use(auth.RouteGate(app.Verifier, cfg.GateBypass(app.BackendConfigured())))
	{
		pages.GET("/", shellHandler.Home)
		pages.GET(auth.LoginPath, shellHandler.Login)
		pages.GET("/upgrade", shellHandler.Upgrade)
		pages.GET("/app", shellHandler.Home)
		pages.GET("/app/:screen", shellHandler.Navigate)
		pages.POST("/app/menu", shellHandler.ToggleMenu)
	}

	return &Server{
		router:  router,
		limiter: limiter,
		app:     app,
		http: &http.Server{
			Addr:              ":" + cfg.Port,
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}
}

func (s *Server) Handler() http.Handler {
	return s.router
}

// Start serves until Shutdown is called. Background sweepers stop with ctx.
func (s *Server) Start(ctx context.Context) error {
	go s.limiter.Run(ctx)
	go s.app.Registry.Run(ctx)

	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
