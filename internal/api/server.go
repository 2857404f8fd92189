package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/albertcheruiyot/recipebox/internal/api/docs"
	"github.com/albertcheruiyot/recipebox/internal/api/dto"
	"github.com/albertcheruiyot/recipebox/internal/api/handler"
	"github.com/albertcheruiyot/recipebox/internal/api/middleware"
	"github.com/albertcheruiyot/recipebox/internal/core/service"
	"github.com/albertcheruiyot/recipebox/pkg/config"
)

type Server struct {
	router *gin.Engine
	srv    *http.Server
	config *config.Config
	log    *slog.Logger
}

// NewServer creates a new API server
func NewServer(
	cfg *config.Config,
	log *slog.Logger,
	authService *service.AuthService,
	sessionService *service.SessionService,
	recipeService *service.RecipeService,
) *Server {
	// Set Gin mode
	if !cfg.IsDevMode() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	cookie := middleware.SessionCookie{
		Name:   cfg.SessionCookieName,
		TTL:    sessionService.TTL(),
		Secure: cfg.CookieSecure,
	}

	// Global middleware
	router.Use(middleware.ErrorHandlerMiddleware(log))
	router.Use(middleware.RequestLogger(log))
	router.Use(middleware.CORSMiddleware(cfg.CORSOrigins))
	router.Use(middleware.SessionMiddleware(sessionService, cookie, log))

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService, sessionService, cookie, log)
	recipeHandler := handler.NewRecipeHandler(authService, recipeService, log)

	// Public routes (no session required)
	router.POST("/signup", authHandler.Signup)
	router.POST("/login", authHandler.Login)

	// Session routes answer 401 themselves
	router.DELETE("/logout", authHandler.Logout)
	router.GET("/check_session", authHandler.CheckSession)

	// Recipes
	recipes := router.Group("/recipes")
	recipes.Use(middleware.RequireSession())
	{
		recipes.GET("", recipeHandler.ListRecipes)
		recipes.POST("", recipeHandler.CreateRecipe)
	}

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, dto.HealthResponse{
			Status: "ok",
			Time:   time.Now().Format(time.RFC3339),
		})
	})

	if cfg.IsDevMode() {
		docs.SwaggerInfo.Host = cfg.Addr()
		router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return &Server{
		router: router,
		config: cfg,
		log:    log,
	}
}

// Router exposes the route table, mainly for tests.
func (s *Server) Router() http.Handler {
	return s.router
}

// Start starts the HTTP server
func (s *Server) Start() error {
	addr := s.config.Addr()

	s.srv = &http.Server{
		Addr:           addr,
		Handler:        s.router,
		ReadTimeout:    15 * time.Second,
		WriteTimeout:   15 * time.Second,
		IdleTimeout:    60 * time.Second,
		MaxHeaderBytes: 1 << 20, // 1 MB
	}

	s.log.Info("starting HTTP server", "addr", addr)
	return s.srv.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.srv != nil {
		return s.srv.Shutdown(ctx)
	}
	return nil
}
