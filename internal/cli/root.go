package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/albertcheruiyot/recipebox/internal/core/repository"
	"github.com/albertcheruiyot/recipebox/internal/core/service"
	"github.com/albertcheruiyot/recipebox/internal/infrastructure/sqlite"
	"github.com/albertcheruiyot/recipebox/internal/logger"
	"github.com/albertcheruiyot/recipebox/pkg/config"
)

var (
	cfgFile string
	cfg     *config.Config
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "recipebox",
	Short: "recipebox - recipe sharing service",
	Long: `recipebox is a small JSON API where users sign up, log in and keep
a private list of recipes.

It provides:
- Cookie based sessions backed by SQLite
- Recipe creation and listing per user
- Administrative commands for users, recipes and sessions`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip config loading for commands that don't need it
		if cmd.Name() == "version" || cmd.Name() == "help" {
			return nil
		}

		var err error
		cfg, err = config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		return nil
	},
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (YAML); RECIPEBOX_* environment variables override it")
}

// initServices opens the database and builds every service
func initServices(_ context.Context) (*Services, error) {
	log := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	})

	db, err := sqlite.New(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	// Initialize repositories
	userRepo := sqlite.NewUserRepository(db)
	recipeRepo := sqlite.NewRecipeRepository(db)
	sessionRepo := sqlite.NewSessionRepository(db)

	// Initialize services
	authService := service.NewAuthService(userRepo)
	sessionService := service.NewSessionService(sessionRepo, cfg.SessionSecret, cfg.SessionTTL)
	recipeService := service.NewRecipeService(recipeRepo)

	return &Services{
		DB:             db,
		Log:            log,
		UserRepo:       userRepo,
		AuthService:    authService,
		SessionService: sessionService,
		RecipeService:  recipeService,
	}, nil
}

// Services holds all initialized services
type Services struct {
	DB             *sqlite.DB
	Log            *slog.Logger
	UserRepo       repository.UserRepository
	AuthService    *service.AuthService
	SessionService *service.SessionService
	RecipeService  *service.RecipeService
}

// Close closes all resources
func (s *Services) Close() {
	if s.DB != nil {
		_ = s.DB.Close()
	}
}
