package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"golang.org/x/crypto/bcrypt"

	"github.com/emintt/coffee-shop-backend-23/internal/models"
	"github.com/emintt/coffee-shop-backend-23/internal/store"
)

func main() {
	addAdminCmd := flag.NewFlagSet("add-admin", flag.ExitOnError)
	adminEmail := addAdminCmd.String("email", "", "Email for the new admin")
	adminPassword := addAdminCmd.String("password", "", "Password for the new admin")
	super := addAdminCmd.Bool("super", false, "Grant the superadmin role instead of admin")

	addUserCmd := flag.NewFlagSet("add-user", flag.ExitOnError)
	userEmail := addUserCmd.String("email", "", "Email for the new member")
	userPassword := addUserCmd.String("password", "", "Password for the new member")

	if len(os.Args) < 2 {
		fmt.Println("expected 'add-admin' or 'add-user' subcommand")
		os.Exit(1)
	}

	switch os.Args[1] {
	case "add-admin":
		addAdminCmd.Parse(os.Args[2:])
		if *adminEmail == "" || *adminPassword == "" {
			fmt.Println("email and password are required")
			addAdminCmd.PrintDefaults()
			os.Exit(1)
		}
		role := models.RoleAdmin
		if *super {
			role = models.RoleSuperAdmin
		}
		createUser(*adminEmail, *adminPassword, role)
	case "add-user":
		addUserCmd.Parse(os.Args[2:])
		if *userEmail == "" || *userPassword == "" {
			fmt.Println("email and password are required")
			addUserCmd.PrintDefaults()
			os.Exit(1)
		}
		createUser(*userEmail, *userPassword, models.RoleMember)
	default:
		fmt.Println("expected 'add-admin' or 'add-user' subcommand")
		os.Exit(1)
	}
}

func createUser(email, password string, role int) {
	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		dbPath = "./coffeeshop.db"
	}
	migrationsDir := os.Getenv("MIGRATIONS_DIR")
	if migrationsDir == "" {
		migrationsDir = "migrations"
	}

	db, err := store.NewStore(dbPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	// Ensure the schema exists if running the cli before the server
	if err := db.Migrate(migrationsDir); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	id, err := db.CreateUser(context.Background(), email, string(hashedPassword), role)
	if err != nil {
		log.Fatalf("Failed to create user: %v", err)
	}

	fmt.Printf("User '%s' created with id %d.\n", email, id)
}
