// Command createtable creates the sessions table used by SESSION_STORE=gorm.
package main

import (
	"log"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"medisupply.com/portal/internal/auth"
	"medisupply.com/portal/internal/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if cfg.Session.DSN == "" {
		log.Fatal("DB_DSN environment variable is required")
	}

	db, err := gorm.Open(mysql.Open(cfg.Session.DSN), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := db.AutoMigrate(&auth.Session{}); err != nil {
		log.Fatalf("Failed to migrate sessions: %v", err)
	}
	log.Println("sessions table is up to date")
}
