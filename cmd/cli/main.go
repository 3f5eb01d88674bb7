package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pinepals/volunteer-cli/internal/config"
	"github.com/pinepals/volunteer-cli/pkg/clients/apiclient"
	"github.com/pinepals/volunteer-cli/pkg/session"
	"github.com/pinepals/volunteer-cli/pkg/utils/logging"
)

// App holds the application dependencies
type App struct {
	cfg     *config.Config
	api     *apiclient.Client
	session *session.Store
	logger  *zap.Logger
	ctx     context.Context
}

var (
	verbose bool
	app     *App
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "pinepals",
		Short: "Pine Pals CLI - volunteer events, tasks and registrations",
		Long:  `A CLI for the Pine Pals volunteer platform: browse and register for events, claim and rate tasks, and manage events as an admin.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initApp()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if app != nil {
				if app.session != nil {
					app.session.Dispose()
				}
				if app.logger != nil {
					app.logger.Sync()
				}
			}
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log API traffic to the console")

	rootCmd.AddCommand(loginCmd())
	rootCmd.AddCommand(signupCmd())
	rootCmd.AddCommand(logoutCmd())
	rootCmd.AddCommand(whoamiCmd())
	rootCmd.AddCommand(skillsCmd())
	rootCmd.AddCommand(eventsCmd())
	rootCmd.AddCommand(registerCmd())
	rootCmd.AddCommand(unregisterCmd())
	rootCmd.AddCommand(tasksCmd())
	rootCmd.AddCommand(claimCmd())
	rootCmd.AddCommand(historyCmd())
	rootCmd.AddCommand(leaderboardCmd())
	rootCmd.AddCommand(notificationsCmd())
	rootCmd.AddCommand(profileCmd())
	rootCmd.AddCommand(attendanceCmd())
	rootCmd.AddCommand(rateCmd())
	rootCmd.AddCommand(matchCmd())
	rootCmd.AddCommand(manageEventsCmd())
	rootCmd.AddCommand(reportCmd())
	rootCmd.AddCommand(interactiveCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// initApp sets up logger, config, API client and session store
func initApp() error {
	var err error
	app = &App{
		ctx: context.Background(),
	}

	app.logger, err = logging.InitLogger(verbose)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	app.cfg, err = config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	app.logger.Debug("Configuration loaded", zap.String("api", app.cfg.APIBaseURL))

	storage, err := session.NewFileStorage(app.cfg.SessionFile)
	if err != nil {
		return fmt.Errorf("failed to open session storage: %w", err)
	}

	httpClient := &http.Client{Timeout: 30 * time.Second}
	if app.cfg.RequestTimeoutSeconds > 0 {
		httpClient.Timeout = time.Duration(app.cfg.RequestTimeoutSeconds) * time.Second
	}

	// the client reads the token through the store, and the store signs in
	// through the client; the closures break the construction cycle
	app.api, err = apiclient.NewClient(apiclient.Options{
		BaseURL:    app.cfg.APIBaseURL,
		HTTPClient: httpClient,
		TokenSource: func() string {
			if app.session == nil {
				return ""
			}
			return app.session.Token()
		},
		OnAuthExpired: func() {
			if app.session != nil {
				app.session.HandleAuthExpired()
			}
		},
		Logger: app.logger,
	})
	if err != nil {
		return fmt.Errorf("failed to create API client: %w", err)
	}

	app.session = session.NewStore(app.api, storage, app.cfg.AdminEmailDomain, app.logger)
	app.session.Init()
	app.logger.Debug("Session initialized", zap.Bool("authenticated", app.session.Authenticated()))

	return nil
}

// guardView runs the route guard before a protected command executes
func guardView(requireAdmin bool) error {
	switch app.session.Guard(requireAdmin) {
	case session.DecisionAllow:
		return nil
	case session.DecisionLogin:
		return fmt.Errorf("you are not logged in - run 'pinepals login <email>' first")
	case session.DecisionHome:
		return fmt.Errorf("this command requires an admin account")
	default:
		return fmt.Errorf("session is still loading, try again")
	}
}

// currentUserID returns the signed-in user's id, or 0 for anonymous viewers
func currentUserID() int {
	if user := app.session.CurrentUser(); user != nil {
		return user.ID
	}
	return 0
}
