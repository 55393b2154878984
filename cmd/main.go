package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/yungbote/jeevandwaar-backend/internal/app"
	"github.com/yungbote/jeevandwaar-backend/internal/platform/logger"
)

var log *logger.Logger

var rootCmd = &cobra.Command{
	Use:   "jeevandwaar",
	Short: "Jeevan Dwaar life-insurance portal API",
	Long: `jeevandwaar serves the multilingual insurance portal API: catalog, recommendations,
the FAQ chatbot, the mitra directory, the admin dashboard and Aadhar OTP sign-in.

Configuration is read from the environment, optionally via a .env file.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		l, err := app.NewLogger()
		if err != nil {
			return err
		}
		log = l
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if log != nil {
			log.Sync()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Migrate, seed and run the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run AutoMigrate against the configured database and exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := app.OpenStore(log, app.LoadConfig(log))
		if err != nil {
			return err
		}
		log.Info("Migration complete")
		return store.Close()
	},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Migrate and upsert the embedded policy and mitra catalog, then exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		// New migrates and seeds on the way up.
		a, err := app.New(cmd.Context(), log)
		if err != nil {
			return err
		}
		a.Close()
		return nil
	},
}

func runServe(ctx context.Context) error {
	a, err := app.New(ctx, log)
	if err != nil {
		return err
	}
	defer a.Close()
	return a.Run(ctx)
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(seedCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
