package dietgoals

import (
	"fmt"
	"os"

	"github.com/saadjs/dietgoals/internal/app"
	"github.com/saadjs/dietgoals/internal/logger"
	"github.com/spf13/cobra"
)

var (
	dbPath    string
	debugMode bool
	env       app.Env
)

var rootCmd = &cobra.Command{
	Use:   "dietgoals",
	Short: "dietgoals resolves nutrition goal ranges from your terminal",
	Long: "dietgoals stores diet and meal goal sets (energy, macros and micronutrients) and resolves\n" +
		"them into concrete daily ranges from your body measurements, maintenance energy and workouts.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setup()
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Path to SQLite database (env "+app.EnvDB+")")
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug logging to stderr (env "+app.EnvDebug+")")
}

func setup() error {
	loaded, err := app.LoadEnv()
	if err != nil {
		return err
	}
	env = loaded
	logDir := env.LogDir
	if logDir == "" {
		if logDir, err = app.DefaultLogDir(); err != nil {
			return err
		}
	}
	if err := logger.Init(logger.Config{Debug: debugMode || env.Debug, LogDir: logDir}); err != nil {
		return fmt.Errorf("init logging: %w", err)
	}
	return nil
}

func resolveDBPath() (string, error) {
	if dbPath != "" {
		return dbPath, nil
	}
	if env.DBPath != "" {
		return env.DBPath, nil
	}
	return app.DefaultDBPath()
}
