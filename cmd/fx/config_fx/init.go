package config_fx

import (
	"go.uber.org/fx"

	"purelife/internal/config"
)

// Module exposes the loaded config and its sections to the graph.
func Module(cfg *config.Config) fx.Option {
	return fx.Options(
		fx.Supply(cfg),
		fx.Provide(
			func(c *config.Config) config.DatabaseConfig { return c.Database },
			func(c *config.Config) config.AuthConfig { return c.Auth },
			func(c *config.Config) config.StorageConfig { return c.Storage },
			func(c *config.Config) config.ShopConfig { return c.Shop },
		),
	)
}
