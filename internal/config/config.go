package config

import (
	"errors"
	"fmt"
	"time"
	_ "time/tzdata"

	"github.com/BurntSushi/toml"
	"github.com/kelseyhightower/envconfig"

	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
)

// EnvPrefix префикс переменных окружения, например COURTS_DATABASE_PASSWORD
const EnvPrefix = "COURTS"

// Config конфигурация сервиса
type Config struct {
	Server      ServerConfig      `toml:"server" envconfig:"SERVER"`
	Database    DatabaseConfig    `toml:"database" envconfig:"DATABASE"`
	Logs        LogsConfig        `toml:"logs" envconfig:"LOGS"`
	Metrics     MetricsConfig     `toml:"metrics" envconfig:"METRICS"`
	UserService UserServiceConfig `toml:"user_service" envconfig:"USER_SERVICE"`
	Booking     BookingConfig     `toml:"booking" envconfig:"BOOKING"`
	Admin       AdminConfig       `toml:"admin" envconfig:"ADMIN"`
	Events      EventsConfig      `toml:"events" envconfig:"EVENTS"`
}

// ServerConfig параметры HTTP сервера (таймауты в секундах)
type ServerConfig struct {
	HTTPPort        int `toml:"http_port" envconfig:"HTTP_PORT"`
	ReadTimeout     int `toml:"read_timeout" envconfig:"READ_TIMEOUT"`
	WriteTimeout    int `toml:"write_timeout" envconfig:"WRITE_TIMEOUT"`
	IdleTimeout     int `toml:"idle_timeout" envconfig:"IDLE_TIMEOUT"`
	ShutdownTimeout int `toml:"shutdown_timeout" envconfig:"SHUTDOWN_TIMEOUT"`
}

// DatabaseConfig параметры подключения к PostgreSQL
type DatabaseConfig struct {
	Host            string `toml:"host" envconfig:"HOST"`
	Port            int    `toml:"port" envconfig:"PORT"`
	User            string `toml:"user" envconfig:"USER"`
	Password        string `toml:"password" envconfig:"PASSWORD"`
	DBName          string `toml:"dbname" envconfig:"DBNAME"`
	SSLMode         string `toml:"sslmode" envconfig:"SSLMODE"`
	MaxOpenConns    int    `toml:"max_open_conns" envconfig:"MAX_OPEN_CONNS"`
	MaxIdleConns    int    `toml:"max_idle_conns" envconfig:"MAX_IDLE_CONNS"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime" envconfig:"CONN_MAX_LIFETIME"`
}

// DSN строка подключения для lib/pq
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// LogsConfig параметры логирования
type LogsConfig struct {
	Level string `toml:"level" envconfig:"LEVEL"`
	File  string `toml:"file" envconfig:"FILE"`
}

// MetricsConfig параметры Prometheus метрик
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled" envconfig:"ENABLED"`
	Path        string `toml:"path" envconfig:"PATH"`
	ServiceName string `toml:"service_name" envconfig:"SERVICE_NAME"`
}

// UserServiceConfig параметры клиента сервиса пользователей
type UserServiceConfig struct {
	URL     string `toml:"url" envconfig:"URL"`
	Timeout int    `toml:"timeout" envconfig:"TIMEOUT"` // секунды
}

// BookingConfig параметры бронирования
type BookingConfig struct {
	Timezone                  string `toml:"timezone" envconfig:"TIMEZONE"`
	CancellationCutoffMinutes int    `toml:"cancellation_cutoff_minutes" envconfig:"CANCELLATION_CUTOFF_MINUTES"`
}

// AdminConfig ограничения администрирования каталога
type AdminConfig struct {
	MaxLocationsPerAdmin int `toml:"max_locations_per_admin" envconfig:"MAX_LOCATIONS_PER_ADMIN"`
	MinCourts            int `toml:"min_courts" envconfig:"MIN_COURTS"`
	MaxCourts            int `toml:"max_courts" envconfig:"MAX_COURTS"`
}

// EventsConfig параметры публикации событий в RabbitMQ
type EventsConfig struct {
	Enabled  bool   `toml:"enabled" envconfig:"ENABLED"`
	URL      string `toml:"url" envconfig:"URL"`
	Exchange string `toml:"exchange" envconfig:"EXCHANGE"`
}

// Default значения по умолчанию, поверх которых читается файл
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     10,
			WriteTimeout:    10,
			IdleTimeout:     60,
			ShutdownTimeout: 15,
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Logs: LogsConfig{Level: "info"},
		Metrics: MetricsConfig{
			Path:        "/metrics",
			ServiceName: "court_booking_service",
		},
		UserService: UserServiceConfig{Timeout: 5},
		Booking: BookingConfig{
			Timezone:                  "UTC",
			CancellationCutoffMinutes: int(domain.DefaultCancellationCutoff / time.Minute),
		},
		Admin: AdminConfig{
			MaxLocationsPerAdmin: domain.DefaultMaxLocationsPerAdmin,
			MinCourts:            domain.DefaultMinCourtsPerLocation,
			MaxCourts:            domain.DefaultMaxCourtsPerLocation,
		},
		Events: EventsConfig{Exchange: "court.bookings"},
	}
}

// Load читает конфигурацию из TOML файла и применяет переменные окружения
func Load(path string) (*Config, error) {
	cfg := Default()

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config file %s: %w", path, err)
	}

	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("failed to apply env overrides: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// Validate проверяет обязательные поля и диапазоны
func (c *Config) Validate() error {
	var errs []error

	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		errs = append(errs, fmt.Errorf("server.http_port out of range: %d", c.Server.HTTPPort))
	}
	if c.Database.Host == "" || c.Database.DBName == "" || c.Database.User == "" {
		errs = append(errs, errors.New("database.host, database.dbname and database.user are required"))
	}
	if c.UserService.URL == "" {
		errs = append(errs, errors.New("user_service.url is required"))
	}
	if _, err := time.LoadLocation(c.Booking.Timezone); err != nil {
		errs = append(errs, fmt.Errorf("booking.timezone: %w", err))
	}
	if c.Booking.CancellationCutoffMinutes < 0 {
		errs = append(errs, errors.New("booking.cancellation_cutoff_minutes must not be negative"))
	}
	if c.Admin.MaxLocationsPerAdmin <= 0 {
		errs = append(errs, errors.New("admin.max_locations_per_admin must be positive"))
	}
	if c.Admin.MinCourts <= 0 || c.Admin.MinCourts > c.Admin.MaxCourts {
		errs = append(errs, fmt.Errorf("admin court range invalid: [%d, %d]", c.Admin.MinCourts, c.Admin.MaxCourts))
	}
	if c.Events.Enabled && (c.Events.URL == "" || c.Events.Exchange == "") {
		errs = append(errs, errors.New("events.url and events.exchange are required when events are enabled"))
	}

	return errors.Join(errs...)
}

// Location часовой пояс, в котором интерпретируются дата и время слотов
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Booking.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// CancellationCutoff минимальный запас времени до начала для отмены
func (c *Config) CancellationCutoff() time.Duration {
	return time.Duration(c.Booking.CancellationCutoffMinutes) * time.Minute
}
