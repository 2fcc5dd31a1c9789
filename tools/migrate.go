package main

import (
	"context"
	"fmt"
	"os"

	"msc-booking/config"
	"msc-booking/database"
	"msc-booking/database/seeders"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage:")
		fmt.Println("  go run tools/migrate.go migrate     - Run migrations against the configured backend")
		fmt.Println("  go run tools/migrate.go seed-admin  - Provision the default admin account")
		return
	}

	cfg := config.Load()

	// Opening the store runs migrations, index creation and sequence seeding.
	store, err := database.InitStorage(cfg)
	if err != nil {
		fmt.Printf("❌ Failed to open storage: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	switch os.Args[1] {
	case "migrate":
		fmt.Println("✅ Migration completed successfully!")

	case "seed-admin":
		if err := seeders.SeedDefaultAdmin(context.Background(), store, cfg); err != nil {
			fmt.Printf("❌ Failed to seed admin: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("✅ Admin seeding completed!")

	default:
		fmt.Printf("Unknown command: %s\n", os.Args[1])
		os.Exit(1)
	}
}
