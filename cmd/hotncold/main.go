package main

import (
	"log"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"hotncold-server/pkg/config"
	"hotncold-server/pkg/db"
	"hotncold-server/pkg/health"
	"hotncold-server/pkg/logger"
	"hotncold-server/pkg/redis"
	"hotncold-server/pkg/server"
	"hotncold-server/services/claim"
	"hotncold-server/services/identity"
	"hotncold-server/services/location"
)

func main() {
	opts := []fx.Option{
		config.Module,
		logger.Module,
		db.Module,
		redis.Module,
		fx.Provide(provideTracerProvider),
		fx.Invoke(
			db.Otel,
			migrate,
		),
		server.Module,
		health.Module,
		identity.Module,
		location.Module,
		claim.Module,
		fxLogger,
	}

	if err := fx.ValidateApp(opts...); err != nil {
		log.Fatalf("fx validation failed: %v", err)
	}

	app := fx.New(opts...)

	app.Run()
}

var fxLogger = fx.WithLogger(func(cfg *config.Config, logger *zap.Logger) fxevent.Logger {
	return fxevent.NopLogger
})

func provideTracerProvider() trace.TracerProvider {
	return otel.GetTracerProvider()
}

func migrate(gdb *gorm.DB) error {
	return gdb.AutoMigrate(
		&identity.User{},
		&location.Sponsor{},
		&location.Location{},
		&location.RewardTemplate{},
		&claim.ClaimLog{},
		&claim.Reward{},
	)
}
