package database

import (
	"fmt"

	"github.com/glebarez/sqlite"
	"github.com/teamup/backend/internal/config"
	"github.com/teamup/backend/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Connect opens the reference-data database (regions and localities) and
// seeds it on first run. The social core never writes here.
func Connect(cfg config.RefDataConfig) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.Driver {
	case "postgres":
		dialector = postgres.Open(cfg.DSN)
	case "sqlite", "":
		dialector = sqlite.Open(cfg.DSN)
	default:
		return nil, fmt.Errorf("unsupported refdata driver %q", cfg.Driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return nil, err
	}

	if err := migrate(db); err != nil {
		return nil, err
	}

	if err := Seed(db); err != nil {
		return nil, err
	}

	return db, nil
}

func migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Region{},
		&models.Locality{},
	)
}

// Seed loads the locality tables once; subsequent startups leave them alone.
func Seed(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Region{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	regions := []models.Region{
		{ID: 1, Name: "Cairo"},
		{ID: 2, Name: "Giza"},
		{ID: 3, Name: "Alexandria"},
	}
	if err := db.Create(&regions).Error; err != nil {
		return err
	}

	localities := []models.Locality{
		{ID: 1, RegionID: 1, Name: "Nasr City", NameAr: "مدينة نصر", Slug: "nasr-city"},
		{ID: 2, RegionID: 1, Name: "Maadi", NameAr: "المعادي", Slug: "maadi"},
		{ID: 3, RegionID: 1, Name: "Zamalek", NameAr: "الزمالك", Slug: "zamalek"},
		{ID: 4, RegionID: 2, Name: "Dokki", NameAr: "الدقي", Slug: "dokki"},
		{ID: 5, RegionID: 2, Name: "Mohandessin", NameAr: "المهندسين", Slug: "mohandessin"},
		{ID: 6, RegionID: 2, Name: "6th of October", NameAr: "السادس من أكتوبر", Slug: "october"},
		{ID: 7, RegionID: 3, Name: "Smouha", NameAr: "سموحة", Slug: "smouha"},
		{ID: 8, RegionID: 3, Name: "Stanley", NameAr: "ستانلي", Slug: "stanley"},
	}
	return db.Create(&localities).Error
}
