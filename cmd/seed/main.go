// Command main runs the database seeder for Children.lk.
package main

import (
	"context"
	"flag"
	"log"

	"childrenlk/internal/bootstrap"
	"childrenlk/internal/config"
	"childrenlk/internal/database"
	"childrenlk/internal/models"
	"childrenlk/internal/seed"
)

func main() {
	defaults := seed.DefaultOptions()
	numOrgs := flag.Int("orgs", defaults.Organizations, "Number of organizations to create")
	perOrg := flag.Int("requests", defaults.RequestsPerOrg, "Requests submitted per organization")
	numParents := flag.Int("parents", defaults.Parents, "Number of parent accounts to create")
	adminEmail := flag.String("admin", defaults.AdminEmail, "Admin account email")
	shouldClean := flag.Bool("clean", defaults.ShouldClean, "Clean database before seeding")
	randomSeed := flag.Int64("seed", 0, "Random seed for reproducible data (0 = random)")
	flag.Parse()

	log.Println("Database Seeder")
	log.Printf("Target: %d organizations x %d requests, %d parents, clean=%v\n", *numOrgs, *perOrg, *numParents, *shouldClean)

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx := context.Background()
	db, err := bootstrap.InitDatabase(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer func() { _ = database.Close(db) }()

	s := seed.NewSeeder(db, seed.Options{
		Organizations:  *numOrgs,
		RequestsPerOrg: *perOrg,
		Parents:        *numParents,
		AdminEmail:     *adminEmail,
		Password:       seed.DefaultPassword,
		ShouldClean:    *shouldClean,
		RandomSeed:     *randomSeed,
	})
	sum, err := s.Run(ctx)
	if err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	log.Printf("Seeded %d organizations, %d parents, %d approved, %d denied, %d pending requests\n",
		sum.Organizations, sum.Parents,
		sum.Requests[models.RequestStatusApproved], sum.Requests[models.RequestStatusDenied], sum.Requests[models.RequestStatusPending])
	log.Printf("All seeded accounts use the password: %s\n", seed.DefaultPassword)
}
