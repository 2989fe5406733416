package cli

import (
	"fmt"

	"github.com/martijn/taskdeck/internal/core/repository"
	"github.com/martijn/taskdeck/internal/core/service"
	"github.com/martijn/taskdeck/internal/infrastructure/sqlite"
	"github.com/martijn/taskdeck/pkg/config"
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	cfg     *config.Config
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "taskdeck",
	Short: "Taskdeck - Multi-user to-do list web application",
	Long: `Taskdeck is a small multi-user to-do list served as plain HTML pages.

It provides:
- User registration and login with signed session cookies
- Per-user task lists (add, complete, delete)
- A single-file SQLite database, created on first start
- User administration from the command line`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip config loading for commands that don't need it
		if cmd.Name() == "version" || cmd.Name() == "help" {
			return nil
		}

		// Load configuration
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
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is /etc/taskdeck/config.yml)")
}

// initServices initializes all services
func initServices() (*Services, error) {
	// Initialize database
	db, err := sqlite.New(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	// Initialize repositories
	userRepo := sqlite.NewUserRepository(db)
	taskRepo := sqlite.NewTaskRepository(db)

	// Initialize services
	authService := service.NewAuthService(userRepo, cfg.SessionSecretKey, cfg.SessionAlgorithm)
	taskService := service.NewTaskService(taskRepo)

	return &Services{
		DB:          db,
		UserRepo:    userRepo,
		TaskRepo:    taskRepo,
		AuthService: authService,
		TaskService: taskService,
	}, nil
}

// Services holds all initialized services
type Services struct {
	DB          *sqlite.DB
	UserRepo    repository.UserRepository
	TaskRepo    repository.TaskRepository
	AuthService *service.AuthService
	TaskService *service.TaskService
}

// Close closes all resources
func (s *Services) Close() {
	if s.DB != nil {
		s.DB.Close()
	}
}
