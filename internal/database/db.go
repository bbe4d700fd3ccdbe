package database

import (
	"log"

	"fuelpos-backend/internal/config"
	"fuelpos-backend/internal/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Init opens the station's local sqlite database. It holds only what must
// survive a restart with the head office unreachable: user accounts and the
// cached active shift.
func Init(cfg *config.Config) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(cfg.DatabasePath), &gorm.Config{})
	if err != nil {
		log.Fatalf("Could not open local database: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.CachedActiveShift{},
	)
	if err != nil {
		log.Fatalf("AutoMigrate failed: %v", err)
	}

	log.Println("Local database ready. Migration complete.")
	return db
}
