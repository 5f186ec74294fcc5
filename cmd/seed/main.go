// Command main runs the database seeder for Medialane.
package main

import (
	"context"
	"flag"
	"log"

	"medialane/internal/config"
	"medialane/internal/database"
	"medialane/internal/seed"
)

func main() {
	numUsers := flag.Int("users", 30, "Number of demo users to create")
	articles := flag.Int("articles", 3, "Articles per demo user")
	videos := flag.Int("videos", 3, "Videos per demo video client")
	seedValue := flag.Int64("seed", 0, "Random seed (0 picks one)")
	catalogOnly := flag.Bool("catalog-only", false, "Only load categories and promotion plans")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if cfg.IsProduction() && !*catalogOnly {
		log.Fatal("Refusing to create demo content in production; use -catalog-only")
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	ctx := context.Background()

	if err := seed.Catalog(ctx, db); err != nil {
		log.Fatalf("Catalog seeding failed: %v", err)
	}
	log.Println("Catalog loaded")
	if *catalogOnly {
		return
	}

	summary, err := seed.Demo(ctx, db, seed.Options{
		Users:            *numUsers,
		ArticlesPerUser:  *articles,
		VideosPerCreator: *videos,
		Seed:             *seedValue,
	})
	if err != nil {
		log.Fatalf("Demo seeding failed: %v", err)
	}

	log.Printf("Created %d users, %d articles, %d videos", summary.Users, summary.Articles, summary.Videos)
	log.Printf("All demo users have the password: %s", seed.DemoPassword)
}
