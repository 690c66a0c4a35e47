package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/stemsi/qbank-backend/internal/config"
	"github.com/stemsi/qbank-backend/internal/database"
	"github.com/stemsi/qbank-backend/internal/logger"
	"github.com/stemsi/qbank-backend/internal/repository"
	"github.com/stemsi/qbank-backend/internal/service"
	"golang.org/x/term"
)

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)

	ctx := context.Background()

	// ─── Connect to PostgreSQL ─────────────────────────────────────────
	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	// ─── Initialize Service ────────────────────────────────────────────
	// Registration never touches Redis, so no client is needed here.
	authService := service.NewAuthService(cfg, nil, repository.NewUserRepository(pool), log)

	// ─── CLI Input ─────────────────────────────────────────────────────
	reader := bufio.NewReader(os.Stdin)

	fmt.Println("=== Create New Lecturer Account ===")

	fmt.Print("Enter Name: ")
	name, _ := reader.ReadString('\n')

	fmt.Print("Enter Email: ")
	email, _ := reader.ReadString('\n')

	fmt.Print("Enter Password: ")
	password, err := readPassword(reader)
	if err != nil {
		fmt.Println("\nError reading password")
		os.Exit(1)
	}

	// ─── Logic ─────────────────────────────────────────────────────────
	user, err := authService.Register(ctx, name, email, password)
	if err != nil {
		var ve *service.ValidationError
		var ce *service.ConflictError
		if errors.As(err, &ve) || errors.As(err, &ce) {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
		log.Fatal().Err(err).Msg("Failed to create lecturer")
	}

	fmt.Printf("\nSuccess! Lecturer '%s' (%s) created with ID: %d\n", user.Name, user.Email, user.ID)
}

// readPassword hides input on a terminal and falls back to a plain line for piped stdin.
func readPassword(reader *bufio.Reader) (string, error) {
	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		b, err := term.ReadPassword(fd)
		fmt.Println() // Newline after password input
		return string(b), err
	}
	line, err := reader.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}
