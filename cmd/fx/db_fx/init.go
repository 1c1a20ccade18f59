package db_fx

import (
	"context"

	"go.uber.org/fx"
	"gorm.io/gorm"

	"purelife/internal/config"
	"purelife/internal/infra"
	"purelife/internal/services"
)

var Module = fx.Provide(
	provideDB,
	provideTxRunner,
)

func provideDB(lc fx.Lifecycle, cfg config.DatabaseConfig) (*gorm.DB, error) {
	db, err := infra.OpenDatabase(cfg)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			infra.CloseDatabase(db)
			return nil
		},
	})
	return db, nil
}

func provideTxRunner(db *gorm.DB) services.TxRunner {
	return infra.NewTransactionManager(db)
}
