package db_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"taskly/internal/infra"
)

var Module = fx.Options(
	fx.Provide(provideDB),
	fx.Invoke(infra.AutoMigrate),
)

func provideDB() *gorm.DB {
	return infra.InitPostgresql()
}
