// Seeds the database with sample sponsors, locations, and reward templates
// for local development.
package main

import (
	"context"
	"fmt"
	"log"
	"math/rand"

	"github.com/google/uuid"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"hotncold-server/pkg/config"
	"hotncold-server/pkg/db"
	"hotncold-server/pkg/logger"
	"hotncold-server/services/claim"
	"hotncold-server/services/identity"
	"hotncold-server/services/location"
)

type seedLocation struct {
	name    string
	lat     float64
	lng     float64
	address string
}

var istanbulLocations = []seedLocation{
	{"Taksim Square Coffee", 41.0370, 28.9850, "Taksim Square, Beyoğlu"},
	{"Grand Bazaar Treasures", 41.0106, 28.9682, "Grand Bazaar, Fatih"},
	{"Galata Tower View", 41.0256, 28.9741, "Galata Tower, Beyoğlu"},
	{"Istiklal Street Bites", 41.0340, 28.9770, "İstiklal Cd., Beyoğlu"},
	{"Kadıköy Market Walk", 40.9903, 29.0291, "Kadıköy, İstanbul"},
	{"Ortaköy Waffle Stop", 41.0476, 29.0276, "Ortaköy, Beşiktaş"},
	{"Beşiktaş Fitness Hub", 41.0430, 29.0060, "Beşiktaş, İstanbul"},
	{"Sultanahmet Discovery", 41.0054, 28.9768, "Sultanahmet, Fatih"},
	{"Karaköy Brew House", 41.0224, 28.9774, "Karaköy, Beyoğlu"},
	{"Balat Art Corner", 41.0295, 28.9493, "Balat, Fatih"},
	{"Bebek Shoreline Cafe", 41.0764, 29.0435, "Bebek, Beşiktaş"},
	{"Moda Beach Rewards", 40.9823, 29.0327, "Moda, Kadıköy"},
	{"Eminönü Spice Stop", 41.0167, 28.9700, "Eminönü, Fatih"},
	{"Çamlıca Hill Prize", 41.0271, 29.0685, "Çamlıca, Üsküdar"},
	{"Nişantaşı Fashion Drop", 41.0475, 28.9944, "Nişantaşı, Şişli"},
}

var eskisehirLocations = []seedLocation{
	{"Eskişehir Clock Tower", 39.7667, 30.5250, "Saat Kulesi, Odunpazarı"},
	{"Porsuk River Park", 39.7720, 30.5200, "Porsuk Çayı, Tepebaşı"},
	{"Anadolu University", 39.7940, 30.5050, "Anadolu Üniversitesi, Yunusemre"},
	{"Kentpark Shopping", 39.9920, 30.0040, "Kentpark AVM, Tepebaşı"},
	{"Eskişehir Museum", 39.7680, 30.5220, "Eskişehir Müzesi, Odunpazarı"},
}

var ankaraLocations = []seedLocation{
	{"Eryaman Shopping Mall", 39.9825, 32.6580, "Eryaman AVM, Etimesgut"},
	{"Eryaman Park Cafe", 39.9870, 32.6620, "Eryaman Park, Etimesgut"},
	{"Eryaman Stadium Rewards", 39.9790, 32.6550, "Eryaman Stadyumu Yanı, Etimesgut"},
	{"Eryaman Metro Station", 39.9812, 32.6595, "Eryaman Metro İstasyonu, Etimesgut"},
	{"Eryaman Central Market", 39.9840, 32.6600, "Eryaman Merkez Pazar, Etimesgut"},
}

func main() {
	opts := []fx.Option{
		config.Module,
		logger.Module,
		db.Module,
		fx.Invoke(seed),
		fx.WithLogger(func(cfg *config.Config, logger *zap.Logger) fxevent.Logger {
			return fxevent.NopLogger
		}),
	}

	if err := fx.ValidateApp(opts...); err != nil {
		log.Fatalf("fx validation failed: %v", err)
	}

	app := fx.New(opts...)

	if err := app.Start(context.Background()); err != nil {
		log.Fatalf("seed failed: %v", err)
	}
	_ = app.Stop(context.Background())
}

func seed(gdb *gorm.DB) error {
	if err := gdb.AutoMigrate(
		&identity.User{},
		&location.Sponsor{},
		&location.Location{},
		&location.RewardTemplate{},
		&claim.ClaimLog{},
		&claim.Reward{},
	); err != nil {
		return err
	}

	var existing int64
	if err := gdb.Model(&location.Location{}).Count(&existing).Error; err != nil {
		return err
	}
	if existing > 0 {
		zap.L().Info("locations already present, skipping seed", zap.Int64("count", existing))
		return nil
	}

	sponsor := &location.Sponsor{
		ID:           uuid.NewString(),
		Name:         "HotNCold Pilot Sponsor",
		ContactEmail: "sponsor@hotncold.com",
		IsActive:     true,
	}
	if err := gdb.Create(sponsor).Error; err != nil {
		return err
	}

	cities := []struct {
		name      string
		locations []seedLocation
	}{
		{"Istanbul", istanbulLocations},
		{"Eskisehir", eskisehirLocations},
		{"Ankara", ankaraLocations},
	}

	total := 0
	for _, city := range cities {
		for _, data := range city.locations {
			loc := &location.Location{
				ID:          uuid.NewString(),
				SponsorID:   &sponsor.ID,
				Name:        data.name,
				Description: fmt.Sprintf("Visit %s to claim your reward!", data.name),
				Latitude:    data.lat,
				Longitude:   data.lng,
				Address:     data.address,
				RadiusM:     100,
				City:        city.name,
				IsActive:    true,
			}
			if err := gdb.Create(loc).Error; err != nil {
				return err
			}

			tmpl := &location.RewardTemplate{
				ID:                uuid.NewString(),
				LocationID:        loc.ID,
				RewardType:        location.RewardPoints,
				RewardValue:       10,
				RewardDescription: fmt.Sprintf("+10 points at %s", data.name),
				BearingDegrees:    rand.Float64() * 360,
				ElevationDegrees:  0,
				IsActive:          true,
			}
			if err := gdb.Create(tmpl).Error; err != nil {
				return err
			}

			total++
		}
	}

	zap.L().Info("seed complete",
		zap.Int("locations", total),
		zap.Int("cities", len(cities)),
	)

	return nil
}
