package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/youssefkhaled23/factory-system-backend/internal/platform/config"
	"github.com/youssefkhaled23/factory-system-backend/internal/platform/validation"
	"github.com/youssefkhaled23/factory-system-backend/internal/repositories/database/pgsql"
	"github.com/youssefkhaled23/factory-system-backend/internal/seeder"
	"github.com/youssefkhaled23/factory-system-backend/internal/utils"
	"github.com/youssefkhaled23/factory-system-backend/pkg/database"
	"golang.org/x/term"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx := context.Background()

	dbPool, err := database.NewPgxPool(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer database.ClosePgxPool(dbPool)

	if err := database.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath, logger); err != nil {
		logger.Error("Failed to run migrations", slog.String("error", err.Error()))
		os.Exit(1)
	}

	password, err := adminPassword(cfg.SeedAdminPassword)
	if err != nil {
		logger.Error("Failed to read admin password", slog.String("error", err.Error()))
		os.Exit(1)
	}

	repos := pgsql.NewRepositoryProvider(dbPool)
	hasher := utils.NewArgon2Hasher(utils.Argon2Params{
		Memory:      cfg.Argon2.MemoryKiB,
		Iterations:  cfg.Argon2.Iterations,
		Parallelism: cfg.Argon2.Parallelism,
		SaltLength:  cfg.Argon2.SaltLength,
		KeyLength:   cfg.Argon2.KeyLength,
	})

	s := seeder.New(repos.RoleRepo, repos.UserRepo, hasher, logger)
	if err := s.Run(ctx, seeder.AdminAccount{
		Email:    cfg.SeedAdminEmail,
		Name:     cfg.SeedAdminName,
		Password: password,
	}); err != nil {
		logger.Error("Seeding failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger.Info("Seeding completed")
}

// adminPassword prefers the configured value, then an interactive prompt.
// Without a terminal a random password is generated and printed once.
func adminPassword(configured string) (string, error) {
	if configured != "" {
		if !validation.IsStrongPassword(configured) {
			return "", fmt.Errorf("SEED_ADMIN_PASSWORD does not meet the password rules")
		}
		return configured, nil
	}

	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		generated, err := seeder.GeneratePassword()
		if err != nil {
			return "", err
		}
		fmt.Fprintf(os.Stderr, "Generated admin password: %s\n", generated)
		return generated, nil
	}

	fmt.Fprint(os.Stderr, "Admin password: ")
	raw, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	password := strings.TrimSpace(string(raw))
	if !validation.IsStrongPassword(password) {
		return "", fmt.Errorf("password must be 8-20 characters with an uppercase letter, a digit and one of !@#$%%^&*")
	}
	return password, nil
}
