package db_fx

import (
	"context"
	"log/slog"

	"go.uber.org/fx"
	"gorm.io/gorm"

	"voyage/internal/api/controllers"
	"voyage/internal/config"
	"voyage/internal/infra"
)

var Module = fx.Provide(provideDB, providePinger)

func provideDB(lc fx.Lifecycle, cfg config.Config) (*gorm.DB, error) {
	db, err := infra.InitPostgresql(cfg)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := infra.PingPostgresql(ctx, db); err != nil {
				return err
			}
			slog.Info("connected to postgres")
			if !cfg.RunMigrations {
				return nil
			}
			return infra.RunMigrations(ctx, db)
		},
		OnStop: func(ctx context.Context) error {
			infra.ClosePostgresql(db)
			return nil
		},
	})

	return db, nil
}

func providePinger(db *gorm.DB) (controllers.DBPinger, error) {
	return db.DB()
}
