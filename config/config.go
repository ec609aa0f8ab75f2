package config

import (
	"log"
	"os"

	"github.com/glebarez/sqlite"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"journeatz-api/models"
)

// Config holds everything read from the environment at startup.
type Config struct {
	Port        string
	DatabaseURL string // postgres DSN; empty means local sqlite file
	SQLitePath  string
	JWTSecret   []byte
	LogLevel    string
	// DemoSeed provisions the demo accounts as real database rows. This is
	// the only sanctioned demo mode: there is no code path that fabricates
	// a session at runtime.
	DemoSeed bool
	// RequireEmailConfirm makes new signups unconfirmed until verified, and
	// login reports them as such instead of succeeding.
	RequireEmailConfirm bool
}

// Load reads .env (if present) and the environment.
func Load() *Config {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("notice: .env not found, using environment: %v", err)
	}
	return &Config{
		Port:                getEnv("PORT", "8080"),
		DatabaseURL:         os.Getenv("DATABASE_URL"),
		SQLitePath:          getEnv("SQLITE_PATH", "journeatz.db"),
		JWTSecret:           []byte(getEnv("JWT_SECRET", "journeatz_super_secret_2024")),
		LogLevel:            getEnv("LOG_LEVEL", "info"),
		DemoSeed:            os.Getenv("DEMO_SEED") == "true",
		RequireEmailConfirm: os.Getenv("REQUIRE_EMAIL_CONFIRMATION") == "true",
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// OpenDB connects to postgres when DATABASE_URL is set, otherwise to a local
// sqlite file, and migrates the schema.
func (c *Config) OpenDB() (*gorm.DB, error) {
	var dialector gorm.Dialector
	if c.DatabaseURL != "" {
		dialector = postgres.Open(c.DatabaseURL)
	} else {
		dialector = sqlite.Open(c.SQLitePath)
	}
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, err
	}
	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

// Migrate runs schema auto-migration for all models.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Driver{},
		&models.Kitchen{},
		&models.MenuItem{},
		&models.Customer{},
		&models.Order{},
		&models.OrderItem{},
		&models.OrderStatusHistory{},
	)
}
