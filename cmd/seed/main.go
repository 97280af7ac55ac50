// Command main runs the database seeder for Mayz.
package main

import (
	"flag"
	"log"

	"mayz/internal/config"
	"mayz/internal/database"
	"mayz/internal/seed"
)

func main() {
	numUsers := flag.Int("users", 25, "Number of users to create")
	numMayz := flag.Int("mayz", 100, "Number of mayz to create")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	flag.Parse()

	log.Println("🌱 Database Seeder")
	log.Printf("Target: %d users, %d mayz, clean=%v\n", *numUsers, *numMayz, *shouldClean)

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	s, err := seed.NewSeeder(db)
	if err != nil {
		log.Fatalf("Failed to create seeder: %v", err)
	}

	if err := s.Run(seed.Options{Users: *numUsers, Mayz: *numMayz, Clean: *shouldClean}); err != nil {
		log.Fatalf("❌ Seeding failed: %v", err)
	}

	log.Println("✨ All done! Your database is now populated with demo data.")
	log.Printf("📧 All seeded users have the password: %s", seed.DefaultPassword)
}
