package main

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"voyage/cmd/fx/account_fx"
	"voyage/cmd/fx/activity_fx"
	"voyage/cmd/fx/config_fx"
	"voyage/cmd/fx/controllers_fx"
	"voyage/cmd/fx/db_fx"
	"voyage/cmd/fx/memcache_fx"
	"voyage/cmd/fx/saved_place_fx"
	"voyage/cmd/fx/suggestion_fx"
	"voyage/cmd/fx/trip_fx"
	"voyage/internal/api"
	"voyage/internal/api/controllers"
	"voyage/internal/config"
	"voyage/pkg/middleware"
)

func main() {
	app := fx.New(
		config_fx.Module,
		db_fx.Module,
		memcache_fx.Module,
		account_fx.Module,
		saved_place_fx.Module,
		activity_fx.Module,
		trip_fx.Module,
		suggestion_fx.Module,
		controllers_fx.Module,

		fx.Provide(ProvideRouter),
		fx.Invoke(StartServer),
	)

	app.Run()
}

type routerParams struct {
	fx.In

	Config     config.Config
	Logger     *slog.Logger
	Tokens     middleware.TokenValidator
	Account    *controllers.AccountController
	Trip       *controllers.TripController
	Suggestion *controllers.SuggestionController
	Activity   *controllers.ActivityController
	SavedPlace *controllers.SavedPlaceController
	Health     *controllers.HealthController
}

func ProvideRouter(p routerParams) *gin.Engine {
	if p.Config.SlogLevel() > slog.LevelDebug {
		gin.SetMode(gin.ReleaseMode)
	}

	return api.NewRouter(api.RouterOptions{
		CORSOrigins: p.Config.CORSOrigins,
		Tokens:      p.Tokens,
		Logger:      p.Logger,
	}, api.Handlers{
		Account:    p.Account,
		Trip:       p.Trip,
		Suggestion: p.Suggestion,
		Activity:   p.Activity,
		SavedPlace: p.SavedPlace,
		Health:     p.Health,
	})
}

func StartServer(lc fx.Lifecycle, shutdowner fx.Shutdowner, cfg config.Config, engine *gin.Engine) {
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      engine,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			ln, err := net.Listen("tcp", srv.Addr)
			if err != nil {
				return err
			}
			slog.Info("starting HTTP server", "addr", srv.Addr)
			go func() {
				if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
					slog.Error("HTTP server stopped", "error", err)
					_ = shutdowner.Shutdown(fx.ExitCode(1))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			slog.Info("stopping HTTP server")
			shutdownCtx, cancel := context.WithTimeout(ctx, cfg.ShutdownTimeout)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}
