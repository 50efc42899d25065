package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"auth-service/internal/audit"
	"auth-service/internal/auth"
	"auth-service/internal/config"
	"auth-service/internal/credentials"
	"auth-service/internal/http"
	"auth-service/internal/rbac"
	"auth-service/internal/rbac/presets"
	"auth-service/internal/repository/postgres"

	"github.com/joho/godotenv"
)

const (
	envFilePath      = ".env"
	serverAddrPrefix = ":"
	signalBufferSize = 1
	logOutputFlags   = log.LstdFlags | log.Lshortfile
)

var shutdownSignals = []os.Signal{
	syscall.SIGINT,
	syscall.SIGTERM,
}

func main() {
	if err := godotenv.Load(envFilePath); err != nil {
		log.Println("Warning: .env file not found, using environment variables")
	}

	log.SetOutput(os.Stderr)
	log.SetFlags(logOutputFlags)

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Println("Configuration loaded successfully")

	checker := rbac.MustNew(presets.Default())

	src, err := newBackend(context.Background(), cfg, checker)
	if err != nil {
		log.Fatalf("Failed to initialize credential source: %v", err)
	}
	defer src.close()

	tokens := auth.NewTokenService(cfg.JWT.Secret, cfg.JWT.TTL)
	auditLogger := audit.NewLogger(src.auditSink)

	serverDeps := &http.ServerDependencies{
		Config:         cfg,
		Credentials:    src.source,
		Tokens:         tokens,
		AuthMiddleware: auth.NewMiddleware(tokens),
		RoleGuard:      auth.NewRoleGuard(checker),
		AuditLogger:    auditLogger,
	}

	server := http.NewServer(serverDeps)

	go func() {
		log.Printf("Starting HTTP server on port %s", cfg.Server.Port)
		if err := server.Start(serverAddrPrefix + cfg.Server.Port); err != nil {
			log.Printf("Server stopped: %v", err)
		}
	}()

	quit := make(chan os.Signal, signalBufferSize)
	signal.Notify(quit, shutdownSignals...)
	<-quit

	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}

	auditLogger.Wait()

	log.Println("Server exited gracefully")
}

type backend struct {
	source    credentials.Source
	auditSink audit.Sink
	close     func()
}

// newBackend selects the one credential source for this process and the
// audit sink that goes with it. close releases whatever they hold.
func newBackend(ctx context.Context, cfg *config.Config, checker *rbac.Checker) (*backend, error) {
	switch cfg.Credentials.Source {
	case config.CredentialSourcePostgres:
		db, err := postgres.New(ctx, &cfg.Database)
		if err != nil {
			return nil, fmt.Errorf("connect to database: %w", err)
		}
		auditSink := audit.NewPostgresSink(db.Pool)
		if err := ensureSchemas(ctx, db, auditSink); err != nil {
			db.Close()
			return nil, fmt.Errorf("prepare database schema: %w", err)
		}
		log.Println("Database connection established, using postgres credential source")
		return &backend{
			source:    credentials.NewStoreSource(postgres.NewUserRepository(db), checker),
			auditSink: auditSink,
			close:     db.Close,
		}, nil

	default:
		if cfg.Credentials.DevFallback {
			log.Println("Warning: no credentials configured, registering development users admin/admin-secret and user/user-secret")
		}
		source, err := credentials.NewStaticSourceFromConfig(checker, &cfg.Credentials)
		if err != nil {
			return nil, err
		}
		log.Printf("Using static credential source with %d user(s)", source.Len())
		return &backend{
			source:    source,
			auditSink: audit.NewLogSink(os.Stdout),
			close:     func() {},
		}, nil
	}
}

type schemaEnsurer interface {
	EnsureSchema(ctx context.Context) error
}

// ensureSchemas creates the tables the postgres backend reads and writes.
// The statements are idempotent, so this runs on every start.
func ensureSchemas(ctx context.Context, stores ...schemaEnsurer) error {
	for _, store := range stores {
		if err := store.EnsureSchema(ctx); err != nil {
			return err
		}
	}
	return nil
}
