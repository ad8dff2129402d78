package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/calendar-scheduler/internal/config"
	dbpkg "github.com/BruksfildServices01/calendar-scheduler/internal/db"
	"github.com/BruksfildServices01/calendar-scheduler/internal/logger"
)

const serviceName = "calendar-scheduler"

var rootCmd = &cobra.Command{
	Use:   "calendar-scheduler",
	Short: "Multi-tenant appointment calendar API",
	Long: `calendar-scheduler serves the JSON API behind the appointment calendar.

Without a subcommand it runs "serve".`,
	SilenceUsage: true,
}

func Execute() {
	if len(os.Args) == 1 {
		os.Args = append(os.Args, "serve")
	}

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newMigrateCmd())
	rootCmd.AddCommand(newCompanyCmd())
}

// bootstrap loads configuration, installs the global logger and opens the
// database. Every subcommand starts here.
func bootstrap() (*config.Config, *zap.Logger, *gorm.DB, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, nil, err
	}

	log := logger.New(logger.Config{
		Level:       cfg.LogLevel,
		ServiceName: serviceName,
		Development: !cfg.IsProduction(),
	})
	logger.SetGlobal(log)

	db, err := dbpkg.NewDB(cfg)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("open database: %w", err)
	}
	return cfg, log, db, nil
}
