package config

import (
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	envConfigFile            = "CONFIG_FILE"
	envPort                  = "PORT"
	envServerReadTimeout     = "SERVER_READ_TIMEOUT"
	envServerWriteTimeout    = "SERVER_WRITE_TIMEOUT"
	envServerShutdownTimeout = "SERVER_SHUTDOWN_TIMEOUT"
	envLogLevel              = "LOG_LEVEL"
	envEnableProfiling       = "ENABLE_PROFILING"
	envDBHost                = "DB_HOST"
	envDBPort                = "DB_PORT"
	envDBName                = "DB_NAME"
	envDBUser                = "DB_USER"
	envDBPassword            = "DB_PASSWORD"
	envDBSSLMode             = "DB_SSL_MODE"
	envDBMaxConns            = "DB_MAX_CONNS"
	envDBMinConns            = "DB_MIN_CONNS"
	envJWTSecret             = "JWT_SECRET"
	envTokenTTL              = "TOKEN_TTL"
	envCredentialSource      = "CREDENTIAL_SOURCE"
	envAuthAdminUsername     = "AUTH_ADMIN_USERNAME"
	envAuthAdminPassword     = "AUTH_ADMIN_PASSWORD"
	envAuthUserUsername      = "AUTH_USER_USERNAME"
	envAuthUserPassword      = "AUTH_USER_PASSWORD"
	envAuthUsername          = "AUTH_USERNAME"
	envAuthPassword          = "AUTH_PASSWORD"
	envAuthRole              = "AUTH_ROLE"
)

const (
	defaultServerPort         = "3000"
	defaultServerReadTimeout  = 10 * time.Second
	defaultServerWriteTimeout = 10 * time.Second
	defaultServerShutdown     = 10 * time.Second
	defaultLogLevel           = "info"
	defaultDBHost             = "localhost"
	defaultDBPort             = 5432
	defaultDBName             = "authservice"
	defaultDBUser             = "authservice_app"
	defaultDBSSLMode          = "disable"
	defaultDBMaxConns         = 10
	defaultDBMinConns         = 1
	defaultTokenTTL           = time.Hour
	maxTokenTTLSeconds        = math.MaxInt64 / int64(time.Second)
	defaultAuthRole           = "admin"
	roleAdmin                 = "admin"
	roleUser                  = "user"
	minJWTSecretLength        = 32
	minUniqueCharsInSecret    = 16
	minRepeatedCharThreshold  = 4
	maxRepeatedChars          = 2
)

const (
	errPortRequiredFmt         = "PORT must be set"
	errDBPasswordRequiredFmt   = "DB_PASSWORD must be set when CREDENTIAL_SOURCE=postgres"
	errJWTSecretRequiredFmt    = "JWT_SECRET must be set"
	errJWTSecretMinLengthFmt   = "JWT_SECRET must be at least %d characters"
	errJWTSecretLowEntropyFmt  = "JWT_SECRET has insufficient entropy (appears non-random). Use a cryptographically secure random string."
	errTokenTTLInvalidFmt      = "TOKEN_TTL must be a positive duration or number of seconds, got %q"
	errUnknownSourceFmt        = "CREDENTIAL_SOURCE must be one of %q or %q, got %q"
	errInvalidConfigurationFmt = "invalid configuration: %w"
	errLoadConfigFileFmt       = "loading %s: %w"
)

type CredentialSource string

const (
	CredentialSourceStatic   CredentialSource = "static"
	CredentialSourcePostgres CredentialSource = "postgres"
)

type Config struct {
	Server      ServerConfig
	Database    DatabaseConfig
	JWT         JWTConfig
	Credentials CredentialsConfig
	Log         LogConfig
}

type ServerConfig struct {
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
	// EnableProfiling exposes pprof and memory stats to admins.
	EnableProfiling bool
}

type DatabaseConfig struct {
	Host     string
	Port     int
	Database string
	User     string
	Password string
	SSLMode  string
	MaxConns int
	MinConns int
}

type JWTConfig struct {
	Secret string
	TTL    time.Duration
}

type CredentialsConfig struct {
	Source CredentialSource
	// Users is ordered by precedence: environment entries first, then file
	// entries. A username appears at most once.
	Users []UserCredential
	// DevFallback is set when no credentials were configured and the
	// built-in development users were registered instead.
	DevFallback bool
}

type UserCredential struct {
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	Role     string `yaml:"role"`
}

type LogConfig struct {
	Level string
}

// devFallbackUsers are registered when neither the environment nor a config
// file supplies credentials. Never use them outside local development.
var devFallbackUsers = []UserCredential{
	{Username: "admin", Password: "admin-secret", Role: roleAdmin},
	{Username: "user", Password: "user-secret", Role: roleUser},
}

// Load builds the configuration from the optional CONFIG_FILE and the
// environment. Environment variables win over file values.
func Load() (*Config, error) {
	var file fileConfig
	if path := os.Getenv(envConfigFile); path != "" {
		loaded, err := loadFile(path)
		if err != nil {
			return nil, fmt.Errorf(errLoadConfigFileFmt, path, err)
		}
		file = *loaded
	}

	ttl, err := parseTTL(firstNonEmpty(os.Getenv(envTokenTTL), file.JWT.TTL))
	if err != nil {
		return nil, fmt.Errorf(errInvalidConfigurationFmt, err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:            firstNonEmpty(os.Getenv(envPort), file.Server.Port, defaultServerPort),
			ReadTimeout:     durationValue(envServerReadTimeout, file.Server.ReadTimeout, defaultServerReadTimeout),
			WriteTimeout:    durationValue(envServerWriteTimeout, file.Server.WriteTimeout, defaultServerWriteTimeout),
			ShutdownTimeout: durationValue(envServerShutdownTimeout, file.Server.ShutdownTimeout, defaultServerShutdown),
			EnableProfiling: boolValue(envEnableProfiling, file.Server.EnableProfiling),
		},
		Database: DatabaseConfig{
			Host:     firstNonEmpty(os.Getenv(envDBHost), file.Database.Host, defaultDBHost),
			Port:     intValue(envDBPort, file.Database.Port, defaultDBPort),
			Database: firstNonEmpty(os.Getenv(envDBName), file.Database.Name, defaultDBName),
			User:     firstNonEmpty(os.Getenv(envDBUser), file.Database.User, defaultDBUser),
			Password: firstNonEmpty(os.Getenv(envDBPassword), file.Database.Password),
			SSLMode:  firstNonEmpty(os.Getenv(envDBSSLMode), file.Database.SSLMode, defaultDBSSLMode),
			MaxConns: intValue(envDBMaxConns, file.Database.MaxConns, defaultDBMaxConns),
			MinConns: intValue(envDBMinConns, file.Database.MinConns, defaultDBMinConns),
		},
		JWT: JWTConfig{
			Secret: firstNonEmpty(os.Getenv(envJWTSecret), file.JWT.Secret),
			TTL:    ttl,
		},
		Credentials: CredentialsConfig{
			Source: CredentialSource(strings.ToLower(firstNonEmpty(os.Getenv(envCredentialSource), file.Credentials.Source, string(CredentialSourceStatic)))),
		},
		Log: LogConfig{
			Level: strings.ToLower(firstNonEmpty(os.Getenv(envLogLevel), file.Log.Level, defaultLogLevel)),
		},
	}

	cfg.Credentials.Users = mergeCredentials(envCredentials(), file.Credentials.Users)
	if len(cfg.Credentials.Users) == 0 {
		cfg.Credentials.Users = append([]UserCredential(nil), devFallbackUsers...)
		cfg.Credentials.DevFallback = true
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf(errInvalidConfigurationFmt, err)
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf(errPortRequiredFmt)
	}

	switch c.Credentials.Source {
	case CredentialSourceStatic:
	case CredentialSourcePostgres:
		if c.Database.Password == "" {
			return fmt.Errorf(errDBPasswordRequiredFmt)
		}
	default:
		return fmt.Errorf(errUnknownSourceFmt, CredentialSourceStatic, CredentialSourcePostgres, c.Credentials.Source)
	}

	if c.JWT.Secret == "" {
		return fmt.Errorf(errJWTSecretRequiredFmt)
	}

	if len(c.JWT.Secret) < minJWTSecretLength {
		return fmt.Errorf(errJWTSecretMinLengthFmt, minJWTSecretLength)
	}

	if !hasMinimumEntropy(c.JWT.Secret) {
		return fmt.Errorf(errJWTSecretLowEntropyFmt)
	}

	return nil
}

func hasMinimumEntropy(secret string) bool {
	if len(secret) < minJWTSecretLength {
		return false
	}

	charCounts := make(map[rune]int)
	for _, char := range secret {
		charCounts[char]++
	}

	uniqueChars := len(charCounts)
	if uniqueChars < minUniqueCharsInSecret {
		return false
	}

	repeatedChars := 0
	for _, count := range charCounts {
		if count > len(secret)/minRepeatedCharThreshold {
			repeatedChars++
		}
	}

	return repeatedChars <= maxRepeatedChars
}

func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Database, c.SSLMode,
	)
}

// envCredentials collects credential triples from the environment in
// precedence order.
func envCredentials() []UserCredential {
	var creds []UserCredential
	add := func(username, password, role string) {
		if username != "" && password != "" {
			creds = append(creds, UserCredential{Username: username, Password: password, Role: role})
		}
	}

	add(os.Getenv(envAuthAdminUsername), os.Getenv(envAuthAdminPassword), roleAdmin)
	add(os.Getenv(envAuthUserUsername), os.Getenv(envAuthUserPassword), roleUser)
	add(os.Getenv(envAuthUsername), os.Getenv(envAuthPassword), firstNonEmpty(os.Getenv(envAuthRole), defaultAuthRole))

	return creds
}

// mergeCredentials concatenates the lists, keeping the first entry for each
// username.
func mergeCredentials(lists ...[]UserCredential) []UserCredential {
	seen := make(map[string]bool)
	var merged []UserCredential
	for _, list := range lists {
		for _, cred := range list {
			if cred.Username == "" || seen[cred.Username] {
				continue
			}
			seen[cred.Username] = true
			merged = append(merged, cred)
		}
	}
	return merged
}

func parseTTL(value string) (time.Duration, error) {
	if value == "" {
		return defaultTokenTTL, nil
	}
	if seconds, err := strconv.ParseInt(value, 10, 64); err == nil {
		if seconds <= 0 || seconds > maxTokenTTLSeconds {
			return 0, fmt.Errorf(errTokenTTLInvalidFmt, value)
		}
		return time.Duration(seconds) * time.Second, nil
	}
	if d, err := time.ParseDuration(value); err == nil && d >= time.Second {
		return d, nil
	}
	return 0, fmt.Errorf(errTokenTTLInvalidFmt, value)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func intValue(key string, fileValue, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	if fileValue != 0 {
		return fileValue
	}
	return defaultValue
}

func durationValue(key, fileValue string, defaultValue time.Duration) time.Duration {
	for _, value := range []string{os.Getenv(key), fileValue} {
		if value == "" {
			continue
		}
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
		if seconds, err := strconv.Atoi(value); err == nil {
			return time.Duration(seconds) * time.Second
		}
	}
	return defaultValue
}

func boolValue(key string, fileValue bool) bool {
	switch strings.ToLower(os.Getenv(key)) {
	case "true", "1", "yes":
		return true
	case "false", "0", "no":
		return false
	default:
		return fileValue
	}
}
