package main

import (
	"context"
	"log"
	"os"

	"github.com/joho/godotenv"

	"news-events-api/internal/auth"
	"news-events-api/internal/config"
	"news-events-api/internal/db"
	errs "news-events-api/internal/errors"
	"news-events-api/internal/model"
	"news-events-api/internal/repository"
)

// Seed bootstraps a first admin account and a starter set of categories so a
// fresh deployment is usable immediately. Existing rows are left untouched.
func main() {
	log.Println("Starting seed...")

	if err := godotenv.Load(); err == nil {
		log.Println("Loaded .env")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	pool, err := db.NewMySQL(cfg.MySQLDSN, cfg.DBMaxOpenConns, cfg.DBMaxIdleConns)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	if err := db.Migrate(pool); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	ctx := context.Background()

	if err := seedAdmin(ctx, repository.NewAdminRepository(pool)); err != nil {
		log.Fatalf("Failed to seed admin: %v", err)
	}
	if err := seedCategories(ctx, repository.NewCategoryRepository(pool)); err != nil {
		log.Fatalf("Failed to seed categories: %v", err)
	}

	log.Println("Seed completed")
}

func seedAdmin(ctx context.Context, admins repository.AdminRepository) error {
	email := getEnv("SEED_ADMIN_EMAIL", "admin@example.com")
	password := getEnv("SEED_ADMIN_PASSWORD", "admin123")
	name := getEnv("SEED_ADMIN_NAME", "Administrator")

	if _, err := admins.FindByEmail(ctx, email); err == nil {
		log.Printf("Admin %s already exists, skipping", email)
		return nil
	} else if !errs.Is(err, errs.KindNotFound) {
		return err
	}

	hashed, err := auth.HashPassword(password)
	if err != nil {
		return err
	}
	admin := &model.Admin{Email: email, Password: hashed, Name: name}
	if err := admins.Create(ctx, admin); err != nil {
		return err
	}
	log.Printf("Created admin %s (id %d)", email, admin.ID)
	return nil
}

func seedCategories(ctx context.Context, categories repository.CategoryRepository) error {
	existing, err := categories.FindAll(ctx, "")
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		log.Printf("Found %d categories, skipping starter set", len(existing))
		return nil
	}

	starters := []model.Category{
		{Name: "News", Slug: "news", Description: "General announcements", Status: model.StatusActive},
		{Name: "Events", Slug: "events", Description: "Scheduled events", Status: model.StatusActive},
		{Name: "Press Releases", Slug: "press-releases", Description: "Official statements", Status: model.StatusActive},
	}
	for i := range starters {
		if err := categories.Create(ctx, &starters[i]); err != nil {
			return err
		}
		log.Printf("Created category %q (id %d)", starters[i].Name, starters[i].ID)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
