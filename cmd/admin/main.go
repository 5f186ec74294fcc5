// Package main provides admin account utilities for Medialane.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"medialane/internal/auth"
	"medialane/internal/bootstrap"
	"medialane/internal/config"
	"medialane/internal/database"
	"medialane/internal/models"
	"medialane/internal/repository"
	"medialane/internal/service"

	"gorm.io/gorm"
)

func usage() {
	fmt.Println("Usage:")
	fmt.Println("  go run ./cmd/admin create <userName> <email> <password>  - Create an ADMIN account")
	fmt.Println("  go run ./cmd/admin promote <user_id>                     - Promote a client to ADMIN")
	fmt.Println("  go run ./cmd/admin demote <user_id>                      - Demote an ADMIN to VIEWER_CLIENT")
	fmt.Println("  go run ./cmd/admin ensure-super-admin                    - Create the configured SUPER_ADMIN")
	fmt.Println("  go run ./cmd/admin list-admins                           - List admin accounts")
	os.Exit(1)
}

func main() {
	if len(os.Args) < 2 {
		usage()
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	ctx := context.Background()

	switch command := os.Args[1]; command {
	case "create":
		if len(os.Args) < 5 {
			usage()
		}
		users := service.NewUserService(repository.NewUserRepository(db), auth.NewTokenManager(cfg.JWTSecret))
		user, err := users.CreateAdmin(ctx, service.CreateAdminInput{
			UserName: os.Args[2],
			Email:    os.Args[3],
			Password: os.Args[4],
		})
		if err != nil {
			log.Fatalf("Failed to create admin: %v", err)
		}
		fmt.Printf("Created admin %s (ID: %d)\n", user.UserName, user.ID)

	case "promote":
		if len(os.Args) < 3 {
			usage()
		}
		setRole(db, os.Args[2], models.RoleAdmin)

	case "demote":
		if len(os.Args) < 3 {
			usage()
		}
		setRole(db, os.Args[2], models.RoleViewerClient)

	case "ensure-super-admin":
		if err := bootstrap.EnsureSuperAdmin(ctx, cfg, db); err != nil {
			log.Fatalf("Failed to ensure super admin: %v", err)
		}
		fmt.Println("Super admin is in place")

	case "list-admins":
		listAdmins(db)

	default:
		fmt.Printf("Unknown command: %s\n", command)
		usage()
	}
}

func setRole(db *gorm.DB, userID string, role models.Role) {
	var user models.User
	if err := db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			fmt.Printf("User with ID %s not found\n", userID)
		} else {
			log.Fatalf("Database error: %v", err)
		}
		os.Exit(1)
	}

	if user.Role == models.RoleSuperAdmin {
		fmt.Println("The super admin role cannot be changed here")
		os.Exit(1)
	}
	if user.Role == role {
		fmt.Printf("User %s (ID: %d) is already %s\n", user.UserName, user.ID, role)
		return
	}

	// Role changes end the current session; the token carries the old role.
	if err := db.Model(&user).Updates(map[string]any{"role": role, "is_logged_in": false}).Error; err != nil {
		log.Fatalf("Failed to update role: %v", err)
	}
	fmt.Printf("User %s (ID: %d) is now %s\n", user.UserName, user.ID, role)
}

func listAdmins(db *gorm.DB) {
	var admins []models.User
	if err := db.Where("role IN ?", models.AdminRoles).Order("id").Find(&admins).Error; err != nil {
		log.Fatalf("Failed to fetch admins: %v", err)
	}

	if len(admins) == 0 {
		fmt.Println("No admins found in the system")
		return
	}

	fmt.Println("Current admins:")
	for _, admin := range admins {
		email := ""
		if admin.Email != nil {
			email = *admin.Email
		}
		fmt.Printf("ID: %d | UserName: %s | Email: %s | Role: %s\n", admin.ID, admin.UserName, email, admin.Role)
	}
}
