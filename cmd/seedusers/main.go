// Command seedusers provisions the users table for the postgres credential
// source. It hashes every configured credential with bcrypt and inserts it.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"auth-service/internal/audit"
	"auth-service/internal/config"
	"auth-service/internal/domain/user"
	"auth-service/internal/rbac"
	"auth-service/internal/rbac/presets"
	"auth-service/internal/repository"
	"auth-service/internal/repository/postgres"
	"auth-service/pkg/password"
	"auth-service/pkg/validator"

	"github.com/joho/godotenv"
)

const (
	envFilePath    = ".env"
	seedTimeout    = 2 * time.Minute
	logOutputFlags = log.LstdFlags | log.Lshortfile
)

func main() {
	update := flag.Bool("update", false, "overwrite password and role of existing users")
	allowDev := flag.Bool("allow-dev-users", false, "seed the built-in development users when none are configured")
	cost := flag.Int("cost", password.DefaultCost, "bcrypt cost")
	flag.Parse()

	if err := godotenv.Load(envFilePath); err != nil {
		log.Printf("Warning: Error loading .env file: %v", err)
	}

	log.SetOutput(os.Stderr)
	log.SetFlags(logOutputFlags)

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if cfg.Credentials.DevFallback && !*allowDev {
		log.Fatalf("No credentials configured; refusing to seed development users without -allow-dev-users")
	}

	inputs, err := hashCredentials(rbac.MustNew(presets.Default()), cfg.Credentials.Users, *cost)
	if err != nil {
		log.Fatalf("Failed to prepare users: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), seedTimeout)
	defer cancel()

	db, err := postgres.New(ctx, &cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := audit.NewPostgresSink(db.Pool).EnsureSchema(ctx); err != nil {
		log.Fatalf("Failed to ensure audit schema: %v", err)
	}

	result, err := seed(ctx, db, inputs, *update)
	if err != nil {
		log.Fatalf("Failed to seed users: %v", err)
	}

	var stale []string
	if !*update {
		stale, err = staleHashes(ctx, postgres.NewUserRepository(db), result.Skipped, *cost)
		if err != nil {
			log.Fatalf("Failed to inspect existing users: %v", err)
		}
	}

	report(os.Stdout, result, stale)
}

func seed(ctx context.Context, store repository.SchemaManager, inputs []user.UpsertUserInput, update bool) (repository.SeedResult, error) {
	if err := store.EnsureSchema(ctx); err != nil {
		return repository.SeedResult{}, err
	}
	return store.SeedUsers(ctx, inputs, update)
}

// staleHashes returns the skipped users whose stored hash is below cost.
func staleHashes(ctx context.Context, users repository.UserRepository, names []string, cost int) ([]string, error) {
	var stale []string
	for _, name := range names {
		u, err := users.GetByUsername(ctx, name)
		if err != nil {
			return nil, fmt.Errorf("user %q: %w", name, err)
		}
		// An unreadable hash needs replacing as well.
		if needs, err := password.NeedsRehash(u.PasswordHash, cost); err != nil || needs {
			stale = append(stale, name)
		}
	}
	return stale, nil
}

func report(w io.Writer, result repository.SeedResult, stale []string) {
	for _, name := range result.Created {
		fmt.Fprintf(w, "created %s\n", name)
	}
	for _, name := range result.Updated {
		fmt.Fprintf(w, "updated %s\n", name)
	}
	for _, name := range result.Skipped {
		fmt.Fprintf(w, "skipped %s (exists; use -update to overwrite)\n", name)
	}
	for _, name := range stale {
		fmt.Fprintf(w, "stale %s (stored hash is weaker than the requested cost; use -update to rehash)\n", name)
	}
	fmt.Fprintf(w, "created=%d updated=%d skipped=%d stale=%d\n", len(result.Created), len(result.Updated), len(result.Skipped), len(stale))
}

func hashCredentials(checker *rbac.Checker, users []config.UserCredential, cost int) ([]user.UpsertUserInput, error) {
	inputs := make([]user.UpsertUserInput, 0, len(users))
	for _, u := range users {
		if err := validator.Username(u.Username); err != nil {
			return nil, fmt.Errorf("user %q: %w", u.Username, err)
		}
		if err := validator.Password(u.Password); err != nil {
			return nil, fmt.Errorf("user %q: %w", u.Username, err)
		}
		role, err := checker.ValidateRole(u.Role)
		if err != nil {
			return nil, fmt.Errorf("user %q: %w", u.Username, err)
		}
		hash, err := password.HashWithCost(u.Password, cost)
		if err != nil {
			return nil, fmt.Errorf("user %q: %w", u.Username, err)
		}
		inputs = append(inputs, user.UpsertUserInput{
			Username:     u.Username,
			PasswordHash: hash,
			Role:         role,
		})
	}
	return inputs, nil
}
