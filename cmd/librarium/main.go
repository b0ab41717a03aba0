package main

import (
	"context"
	"errors"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/yigit/librarium/internal/bootstrap"
	"github.com/yigit/librarium/internal/config"
	"github.com/yigit/librarium/internal/db"
	"github.com/yigit/librarium/internal/pkg/logger"
	"github.com/yigit/librarium/internal/server"
)

// @title Librarium API
// @version 1.0
// @description Library records and admin console API
// @BasePath /api/v1
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT token for the admin console

var (
	configPath string
	username   string
	password   string

	rootCmd = &cobra.Command{
		Use:           "librarium",
		Short:         "Librarium manages library records and serves the admin console",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	serveCmd = &cobra.Command{
		Use:   "serve",
		Short: "Migrate, seed and serve the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, lgr, err := bootstrap.LoadConfigAndSetupLogger(configPath)
			if err != nil {
				return err
			}
			srv, err := server.NewServer(cmd.Context(), cfg, lgr)
			if err != nil {
				return err
			}
			return srv.Run()
		},
	}

	migrateCmd = &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDatabase(cmd.Context(), func(ctx context.Context, cfg *config.Config, database *db.PostgresDB, lgr zerolog.Logger) error {
				return bootstrap.Migrate(ctx, database, lgr)
			})
		},
	}

	seedCmd = &cobra.Command{
		Use:   "seed",
		Short: "Insert default categories and the configured superuser",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDatabase(cmd.Context(), func(ctx context.Context, cfg *config.Config, database *db.PostgresDB, lgr zerolog.Logger) error {
				_, svc, _ := bootstrap.BuildServices(cfg, database, lgr)
				return svc.Seed.Run(ctx, cfg.Admin.Username, cfg.Admin.Password)
			})
		},
	}

	createSuperuserCmd = &cobra.Command{
		Use:   "createsuperuser",
		Short: "Create an admin console account",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDatabase(cmd.Context(), func(ctx context.Context, cfg *config.Config, database *db.PostgresDB, lgr zerolog.Logger) error {
				_, svc, _ := bootstrap.BuildServices(cfg, database, lgr)
				user, err := svc.Auth.CreateSuperuser(ctx, username, password)
				if err != nil {
					return err
				}
				lgr.Info().Int64("id", user.ID).Str("username", user.Username).Msg("Superuser created")
				return nil
			})
		},
	}
)

// withDatabase loads configuration, opens the pool for fn and closes it afterwards.
func withDatabase(ctx context.Context, fn func(ctx context.Context, cfg *config.Config, database *db.PostgresDB, lgr zerolog.Logger) error) error {
	cfg, lgr, err := bootstrap.LoadConfigAndSetupLogger(configPath)
	if err != nil {
		return err
	}
	defer logger.Close()

	database, err := bootstrap.ConnectDatabase(ctx, cfg, lgr)
	if err != nil {
		return err
	}
	defer database.Close()

	return fn(ctx, cfg, database, lgr)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", bootstrap.DefaultConfigPath, "path to the YAML configuration file")

	createSuperuserCmd.Flags().StringVar(&username, "username", "", "login name")
	createSuperuserCmd.Flags().StringVar(&password, "password", "", "password (at least 8 characters)")
	_ = createSuperuserCmd.MarkFlagRequired("username")
	_ = createSuperuserCmd.MarkFlagRequired("password")

	rootCmd.AddCommand(serveCmd, migrateCmd, seedCmd, createSuperuserCmd)
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		if !errors.Is(err, context.Canceled) {
			logger.Error().Err(err).Msg("Command failed")
		}
		os.Exit(1)
	}
}
