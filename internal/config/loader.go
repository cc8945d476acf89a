package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

// Backend names a storage implementation.
type Backend string

const (
	// BackendMemory keeps records in copy-on-write slices.
	BackendMemory Backend = "memory"
	// BackendSQLite keeps records in an in-process in-memory SQLite database.
	BackendSQLite Backend = "sqlite"
)

// LogFormat selects the slog handler.
type LogFormat string

// Supported log formats.
const (
	LogFormatJSON LogFormat = "json"
	LogFormatText LogFormat = "text"
)

// DefaultSQLiteDSN names a shared in-memory database.
const DefaultSQLiteDSN = "file:hrdirectory?mode=memory&cache=shared"

// Config captures environment driven configuration values for the HR directory service.
type Config struct {
	HTTPPort        int
	Backend         Backend
	SQLiteDSN       string
	SeedFile        string
	LogLevel        slog.Level
	LogFormat       LogFormat
	Location        *time.Location
	ShutdownTimeout time.Duration
}

// Load parses configuration values from the current process environment.
func Load() (Config, error) {
	return LoadFrom(os.Getenv)
}

// LoadFrom parses configuration values using getenv for lookups.
//
// Optional fields fall back to defaults. Every invalid entry is reported in a
// single error.
func LoadFrom(getenv func(string) string) (Config, error) {
	cfg := Config{
		HTTPPort:        8080,
		Backend:         BackendMemory,
		SQLiteDSN:       DefaultSQLiteDSN,
		LogLevel:        slog.LevelInfo,
		LogFormat:       LogFormatJSON,
		Location:        time.Local,
		ShutdownTimeout: 10 * time.Second,
	}

	invalid := make([]string, 0, 2)
	value := func(key string) string {
		return strings.TrimSpace(getenv(key))
	}

	if portValue := value("HR_HTTP_PORT"); portValue != "" {
		port, err := strconv.Atoi(portValue)
		if err != nil || port <= 0 || port > 65535 {
			invalid = append(invalid, "HR_HTTP_PORT")
		} else {
			cfg.HTTPPort = port
		}
	}

	if backendValue := value("HR_STORE_BACKEND"); backendValue != "" {
		switch Backend(strings.ToLower(backendValue)) {
		case BackendMemory:
			cfg.Backend = BackendMemory
		case BackendSQLite:
			cfg.Backend = BackendSQLite
		default:
			invalid = append(invalid, "HR_STORE_BACKEND")
		}
	}

	if dsn := value("HR_SQLITE_DSN"); dsn != "" {
		if !IsInMemoryDSN(dsn) {
			invalid = append(invalid, "HR_SQLITE_DSN")
		} else {
			cfg.SQLiteDSN = dsn
		}
	}

	cfg.SeedFile = value("HR_SEED_FILE")

	if levelValue := value("HR_LOG_LEVEL"); levelValue != "" {
		var level slog.Level
		if err := level.UnmarshalText([]byte(levelValue)); err != nil {
			invalid = append(invalid, "HR_LOG_LEVEL")
		} else {
			cfg.LogLevel = level
		}
	}

	if formatValue := value("HR_LOG_FORMAT"); formatValue != "" {
		switch LogFormat(strings.ToLower(formatValue)) {
		case LogFormatJSON:
			cfg.LogFormat = LogFormatJSON
		case LogFormatText:
			cfg.LogFormat = LogFormatText
		default:
			invalid = append(invalid, "HR_LOG_FORMAT")
		}
	}

	if tz := value("HR_TIMEZONE"); tz != "" && !strings.EqualFold(tz, "local") {
		loc, err := time.LoadLocation(tz)
		if err != nil {
			invalid = append(invalid, "HR_TIMEZONE")
		} else {
			cfg.Location = loc
		}
	}

	if timeoutValue := value("HR_SHUTDOWN_TIMEOUT"); timeoutValue != "" {
		timeout, err := time.ParseDuration(timeoutValue)
		if err != nil || timeout <= 0 {
			invalid = append(invalid, "HR_SHUTDOWN_TIMEOUT")
		} else {
			cfg.ShutdownTimeout = timeout
		}
	}

	if len(invalid) > 0 {
		return Config{}, fmt.Errorf("invalid environment variables: %s", strings.Join(invalid, ", "))
	}

	return cfg, nil
}

// IsInMemoryDSN reports whether dsn names an in-memory SQLite database.
func IsInMemoryDSN(dsn string) bool {
	if dsn == ":memory:" || strings.HasPrefix(dsn, "file::memory:") {
		return true
	}
	if !strings.HasPrefix(dsn, "file:") {
		return false
	}
	_, query, found := strings.Cut(dsn, "?")
	if !found {
		return false
	}
	for _, param := range strings.Split(query, "&") {
		if param == "mode=memory" {
			return true
		}
	}
	return false
}
