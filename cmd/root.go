package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/fatih/color"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"niche/internal/app"
	"niche/internal/catalogsource"
	"niche/internal/config"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "niche",
	Short: "Categorize creators against a keyword catalog",
	Long: `niche scores creator profiles (bio and hashtag counts) against a catalog of
categories and keywords, and keeps the categories of stored creators up to date.`,
	SilenceUsage: true,
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
	// PersistentPreRunE runs before any subcommand's RunE
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "help" || cmd.Name() == "version" || cmd.Name() == "completion" {
			return nil
		}

		cfg, err := config.LoadConfig(cfgFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid config: %w", err)
		}
		if err := setupLogging(cfg.Logging.Level, cfg.Logging.Format); err != nil {
			return err
		}

		appInstance, err := app.NewApp(cmd.Context(), cfg, catalogsource.New())
		if err != nil {
			return fmt.Errorf("failed to initialize app: %w", err)
		}

		ctx := context.WithValue(cmd.Context(), appKey, appInstance)
		cmd.SetContext(ctx)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if appInstance, err := GetAppFromContext(cmd.Context()); err == nil {
			if err := appInstance.Close(); err != nil {
				log.Warnf("Error closing application: %v", err)
			}
		}
	},
}

func Execute() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Define a custom type for the context key to avoid collisions.
type contextKey string

const appKey contextKey = "app"

// GetAppFromContext retrieves the app instance stored by PersistentPreRunE.
func GetAppFromContext(ctx context.Context) (*app.App, error) {
	if ctx == nil {
		return nil, fmt.Errorf("application instance not found in context")
	}
	appInstance, ok := ctx.Value(appKey).(*app.App)
	if !ok || appInstance == nil {
		return nil, fmt.Errorf("application instance not found in context")
	}
	return appInstance, nil
}

func setupLogging(level, format string) error {
	if level == "" {
		level = "info"
	}
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("invalid logging.level: %w", err)
	}
	log.SetLevel(lvl)
	log.SetOutput(os.Stderr)
	if format == "json" {
		log.SetFormatter(&log.JSONFormatter{})
	} else {
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}
	return nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
	rootCmd.AddCommand(doctorCmd)
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check database connectivity and other diagnostics",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		out := cmd.OutOrStdout()

		appInstance, err := GetAppFromContext(ctx)
		if err != nil {
			return fmt.Errorf("failed to get app instance: %w", err)
		}
		cfg := appInstance.Config

		fmt.Fprintf(out, "Checking %s database connectivity...\n", cfg.Database.Driver)
		if err := appInstance.Store.Ping(ctx); err != nil {
			return fmt.Errorf("database ping failed: %w", err)
		}
		fmt.Fprintf(out, "Database: %s\n", color.GreenString("ok"))
		fmt.Fprintf(out, "Catalog: %d categories from %s\n", appInstance.Catalog.Len(), cfg.Catalog.Path)

		if appInstance.JobClient != nil {
			fmt.Fprintf(out, "Background jobs: %s (redis %s)\n", color.GreenString("enabled"), cfg.Redis.Address)
		} else {
			fmt.Fprintf(out, "Background jobs: %s (set redis.address)\n", color.YellowString("disabled"))
		}
		if appInstance.SuggestionService.Enabled() {
			fmt.Fprintf(out, "Keyword suggestions: %s (model %s)\n", color.GreenString("enabled"), cfg.Suggest.Model)
		} else {
			fmt.Fprintf(out, "Keyword suggestions: %s\n", color.YellowString("disabled"))
		}
		return nil
	},
}
