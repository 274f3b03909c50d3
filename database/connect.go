package database

import (
	"fmt"
	"log"
	"strconv"
	"time"

	"seminar_manager/config"
	"seminar_manager/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

// ConnectDB opens the Postgres connection. A failure to reach the store is a
// startup warning, not a fatal error: DB stays nil and the server keeps
// serving non-store-dependent routes.
func ConnectDB() {
	p := config.ConfigOr("DB_PORT", "5432")
	port, err := strconv.ParseUint(p, 10, 32)
	if err != nil {
		log.Printf("failed to parse database port %q: %v", p, err)
		return
	}

	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable connect_timeout=5",
		config.ConfigOr("DB_HOST", "localhost"), port, config.Config("DB_USER"),
		config.Config("DB_PASSWORD"), config.ConfigOr("DB_NAME", "seminar_manager"))

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Printf("database connection failed, starting without database: %v", err)
		return
	}

	sqlDB, err := db.DB()
	if err == nil {
		sqlDB.SetConnMaxIdleTime(5 * time.Minute)
		sqlDB.SetMaxOpenConns(20)
	}

	DB = db
	log.Println("Connection Opened to Database")

	Migrate(DB)
	SeedData(DB)
}

// Migrate keeps the schema in sync. Shared with the test setup.
func Migrate(db *gorm.DB) {
	if err := db.AutoMigrate(
		&model.User{},
		&model.Speaker{},
		&model.Seminar{},
		&model.Schedule{},
		&model.Registration{},
		&model.Feedback{},
		&model.Certificate{},
		&model.SeminarArchive{},
		&model.ArchiveMaterial{},
	); err != nil {
		log.Printf("database migration failed: %v", err)
		return
	}
	log.Println("Database Migrated")
}
