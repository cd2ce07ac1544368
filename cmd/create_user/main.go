package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"fintrack/models"

	"github.com/glebarez/sqlite"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if err == flag.ErrHelp {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("create_user", flag.ContinueOnError)
	fs.SetOutput(stderr)

	username := fs.String("user", "", "Username")
	password := fs.String("password", "", "Password")
	dbPath := fs.String("db", "database.db", "Path to SQLite database file (ignored when DB_DSN is set)")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if *username == "" || *password == "" {
		fmt.Fprintln(stdout, "Usage: create_user -user <username> -password <password> [-db <db_path>]")
		fs.PrintDefaults()
		return fmt.Errorf("missing required flags: user, password")
	}

	db, err := open(*dbPath)
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	if err := db.AutoMigrate(&models.User{}); err != nil {
		return fmt.Errorf("migrate users: %w", err)
	}

	var existing models.User
	if err := db.Where("username = ?", *username).First(&existing).Error; err == nil {
		return fmt.Errorf("user %s already exists (id=%d)", *username, existing.ID)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(*password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("bcrypt failed: %w", err)
	}
	user := models.User{Username: *username, HashedPassword: hashed}
	if err := db.Create(&user).Error; err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	fmt.Fprintf(stdout, "created user %s id=%d\n", user.Username, user.ID)
	return nil
}

func open(path string) (*gorm.DB, error) {
	if dsn := os.Getenv("DB_DSN"); dsn != "" {
		return gorm.Open(postgres.Open(dsn), &gorm.Config{})
	}
	return gorm.Open(sqlite.Open(path), &gorm.Config{})
}
