package config

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"gopkg.in/yaml.v3"
)

const (
	DriverMemory   = "memory"
	DriverPostgres = "postgres"
	DriverMongoDB  = "mongodb"
)

// Config es la configuración completa del servicio.
// Precedencia: valores por defecto < archivo YAML (CONFIG_FILE) < variables de entorno.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Storage  StorageConfig  `yaml:"storage"`
	Postgres PostgresConfig `yaml:"postgres"`
	MongoDB  MongoDBConfig  `yaml:"mongodb"`
	Log      LogConfig      `yaml:"log"`
	Digest   DigestConfig   `yaml:"digest"`
}

type ServerConfig struct {
	Port string `yaml:"port"`
}

type StorageConfig struct {
	// Driver vacío se resuelve en Load: postgres si hay DSN, si no memory.
	Driver      string `yaml:"driver"`
	AutoMigrate bool   `yaml:"auto_migrate"`
}

type PostgresConfig struct {
	DSN      string `yaml:"dsn"`
	Host     string `yaml:"host"`
	Port     string `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
	SSLMode  string `yaml:"sslmode"`
}

type MongoDBConfig struct {
	URI    string `yaml:"uri"`
	DBName string `yaml:"db_name"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	App    string `yaml:"app"`
}

// DigestConfig controla el resumen diario del semáforo de vacunas.
type DigestConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Cron     string `yaml:"cron"`
	Timezone string `yaml:"timezone"`
}

func Default() *Config {
	return &Config{
		Server:   ServerConfig{Port: "8080"},
		Postgres: PostgresConfig{Port: "5432", SSLMode: "disable"},
		MongoDB:  MongoDBConfig{DBName: "livestock"},
		Log:      LogConfig{Level: "info", Format: "json", App: "livestock-records"},
		Digest: DigestConfig{
			Enabled:  true,
			Cron:     "0 6 * * *",
			Timezone: "America/Guayaquil",
		},
	}
}

// Load lee el .env (opcional), el YAML de CONFIG_FILE si existe y las variables de entorno.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed loading env file %s: %w", envFile, err)
		}
	} else {
		_ = godotenv.Load()
	}

	cfg := Default()
	if path := strings.TrimSpace(os.Getenv("CONFIG_FILE")); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}
	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}
	cfg.resolveDriver()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config: %w", err)
	}
	return nil
}

func (c *Config) applyEnvOverrides() error {
	setString(&c.Server.Port, "PORT")
	setString(&c.Server.Port, "APP_PORT")

	setString(&c.Storage.Driver, "STORAGE_DRIVER")
	if err := setBool(&c.Storage.AutoMigrate, "DB_AUTO_MIGRATE"); err != nil {
		return err
	}

	setString(&c.Postgres.DSN, "DB_DSN")
	setString(&c.Postgres.Host, "PGHOST")
	setString(&c.Postgres.Port, "PGPORT")
	setString(&c.Postgres.User, "PGUSER")
	setString(&c.Postgres.Password, "PGPASSWORD")
	setString(&c.Postgres.Database, "PGDATABASE")
	setString(&c.Postgres.SSLMode, "PGSSLMODE")

	setString(&c.MongoDB.URI, "MONGODB_URI")
	setString(&c.MongoDB.DBName, "MONGODB_DB_NAME")

	setString(&c.Log.Level, "LOG_LEVEL")
	setString(&c.Log.Format, "LOG_FORMAT")
	setString(&c.Log.App, "APP_NAME")

	setString(&c.Digest.Cron, "DIGEST_CRON")
	setString(&c.Digest.Timezone, "TIMEZONE")
	return setBool(&c.Digest.Enabled, "DIGEST_ENABLED")
}

func (c *Config) resolveDriver() {
	c.Storage.Driver = strings.ToLower(strings.TrimSpace(c.Storage.Driver))
	if c.Storage.Driver != "" {
		return
	}
	if c.Postgres.ConnString() != "" {
		c.Storage.Driver = DriverPostgres
		return
	}
	c.Storage.Driver = DriverMemory
}

func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}

	if c.Server.Port == "" {
		return errors.New("APP_PORT must be provided")
	}
	if _, err := strconv.Atoi(c.Server.Port); err != nil {
		return fmt.Errorf("APP_PORT must be numeric, got %q", c.Server.Port)
	}

	switch c.Storage.Driver {
	case DriverMemory:
	case DriverPostgres:
		if c.Postgres.ConnString() == "" {
			return errors.New("DB_DSN or PGHOST/PGDATABASE must be provided for the postgres driver")
		}
	case DriverMongoDB:
		if c.MongoDB.URI == "" {
			return errors.New("MONGODB_URI must be provided for the mongodb driver")
		}
		if c.MongoDB.DBName == "" {
			return errors.New("MONGODB_DB_NAME must not be empty")
		}
	default:
		return fmt.Errorf("STORAGE_DRIVER must be one of memory|postgres|mongodb, got %q", c.Storage.Driver)
	}

	// TIMEZONE también fija el "hoy" de la API, no solo el del cron.
	if _, err := c.Digest.Location(); err != nil {
		return err
	}
	if c.Digest.Enabled {
		if _, err := cron.ParseStandard(c.Digest.Cron); err != nil {
			return fmt.Errorf("DIGEST_CRON is invalid: %w", err)
		}
	}
	return nil
}

// ConnString devuelve DB_DSN o, si falta, una URL armada con las variables PG*.
// Sin host ni base devuelve "".
func (p PostgresConfig) ConnString() string {
	if p.DSN != "" {
		return p.DSN
	}
	if p.Host == "" || p.Database == "" {
		return ""
	}

	u := url.URL{
		Scheme: "postgres",
		Host:   net.JoinHostPort(p.Host, p.Port),
		Path:   "/" + p.Database,
	}
	if p.User != "" {
		if p.Password != "" {
			u.User = url.UserPassword(p.User, p.Password)
		} else {
			u.User = url.User(p.User)
		}
	}
	if p.SSLMode != "" {
		u.RawQuery = url.Values{"sslmode": {p.SSLMode}}.Encode()
	}
	return u.String()
}

func (d DigestConfig) Location() (*time.Location, error) {
	if d.Timezone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(d.Timezone)
	if err != nil {
		return nil, fmt.Errorf("TIMEZONE is invalid: %w", err)
	}
	return loc, nil
}

func setString(dst *string, key string) {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		*dst = v
	}
}

func setBool(dst *bool, key string) error {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fmt.Errorf("%s must be a boolean, got %q", key, v)
	}
	*dst = b
	return nil
}
