package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"gorm.io/gorm"

	"purelife/cmd/fx/account_fx"
	"purelife/cmd/fx/admin_fx"
	"purelife/cmd/fx/config_fx"
	"purelife/cmd/fx/controllers_fx"
	"purelife/cmd/fx/db_fx"
	"purelife/cmd/fx/memcache_fx"
	"purelife/cmd/fx/product_fx"
	"purelife/cmd/fx/shop_fx"
	"purelife/cmd/fx/storage_fx"
	"purelife/internal/api"
	"purelife/internal/config"
	"purelife/internal/infra"
	"purelife/pkg/logger"
	"purelife/pkg/utils"
)

var autoMigrate bool

func newServeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := bootstrap()
			if err != nil {
				return err
			}
			return serve(cfg)
		},
	}
	cmd.Flags().BoolVar(&autoMigrate, "auto-migrate", false, "Migrate the schema and seed the admin before serving")
	return cmd
}

func serve(cfg *config.Config) error {
	gin.SetMode(cfg.Server.Mode)
	if err := utils.RegisterValidators(); err != nil {
		return err
	}

	app := fx.New(
		fx.WithLogger(func() fxevent.Logger {
			return &fxevent.SlogLogger{Logger: logger.WithComponent("fx")}
		}),
		config_fx.Module(cfg),
		db_fx.Module,
		memcache_fx.Module,
		storage_fx.Module,
		account_fx.Module,
		product_fx.Module,
		shop_fx.Module,
		admin_fx.Module,
		controllers_fx.Module,

		fx.Provide(ProvideRouter),
		fx.Invoke(MigrateOnStart),
		fx.Invoke(StartServer),
	)

	app.Run()
	return app.Err()
}

func ProvideRouter(p api.RouterParams, cfg *config.Config) *gin.Engine {
	opts := api.RouterOptions{AllowedOrigins: cfg.Server.AllowedOrigins}
	if cfg.Storage.Driver == "local" {
		opts.UploadDir = cfg.Storage.UploadDir
		opts.UploadPrefix = cfg.Storage.PublicPrefix
	}
	return api.NewRouter(p, opts)
}

func MigrateOnStart(lc fx.Lifecycle, db *gorm.DB, cfg *config.Config) {
	if !autoMigrate {
		return
	}
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return migrate(ctx, db, cfg.Admin)
		},
	})
}

func StartServer(lc fx.Lifecycle, engine *gin.Engine, cfg *config.Config) {
	srv := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				logger.Info("starting HTTP server", "address", srv.Addr, "mode", cfg.Server.Mode)
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					logger.Error("HTTP server stopped", "error", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info("stopping HTTP server")
			shutdownCtx, cancel := context.WithTimeout(ctx, time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

func migrate(ctx context.Context, db *gorm.DB, admin config.AdminConfig) error {
	if err := infra.Migrate(db); err != nil {
		return err
	}
	if admin.Password == "" {
		logger.Warn("admin.password is empty; skipping admin seed")
		return nil
	}
	_, err := infra.SeedAdmin(ctx, db, admin.Account, admin.Password, admin.Name)
	return err
}
