package main

import (
	"log"
	"os"

	"notefiber-editor/internal/model"
	"notefiber-editor/pkg/database"

	"github.com/joho/godotenv"
)

func main() {
	// 1. Environment
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	// 2. Connect
	db, err := database.NewGormDBFromDSN(dsn, false)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	// 3. Schema
	log.Println("Running AutoMigrate for notes...")
	if err := db.AutoMigrate(&model.Note{}); err != nil {
		log.Fatalf("Error: AutoMigrate failed: %v", err)
	}

	// 4. Post-migration: keep updated_at current for writes that bypass GORM
	postMigrationSQL := []string{
		`CREATE OR REPLACE FUNCTION set_current_timestamp_updated_at() RETURNS trigger LANGUAGE plpgsql AS $$
		BEGIN
		  NEW.updated_at = now();
		  RETURN NEW;
		END;
		$$;`,
		`DROP TRIGGER IF EXISTS set_notes_updated_at ON notes;`,
		`CREATE TRIGGER set_notes_updated_at BEFORE UPDATE ON notes FOR EACH ROW EXECUTE FUNCTION set_current_timestamp_updated_at();`,
	}
	for _, sql := range postMigrationSQL {
		if err := db.Exec(sql).Error; err != nil {
			log.Printf("Warn: Failed to execute post-migration SQL: %v. Continuing...", err)
		}
	}

	log.Println("Migration complete")
}
