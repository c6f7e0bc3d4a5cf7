package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"

	"github.com/m04kA/SMC-BookingEngine/internal/ratelimit"
	"github.com/m04kA/SMC-BookingEngine/internal/schedule"
)

var (
	ErrReadConfig    = errors.New("config: failed to read config file")
	ErrInvalidConfig = errors.New("config: invalid configuration")
)

// Config конфигурация сервиса
type Config struct {
	Server    ServerConfig    `toml:"server"`
	Database  DatabaseConfig  `toml:"database"`
	Logs      LogsConfig      `toml:"logs"`
	Metrics   MetricsConfig   `toml:"metrics"`
	Redis     RedisConfig     `toml:"redis"`
	RateLimit RateLimitConfig `toml:"rate_limit"`
	Booking   BookingConfig   `toml:"booking"`
}

// ServerConfig настройки HTTP сервера, таймауты в секундах.
// X-Forwarded-For и X-Real-IP учитываются только от адресов из TrustedProxies.
type ServerConfig struct {
	HTTPPort        int      `toml:"http_port" validate:"required,min=1,max=65535"`
	ReadTimeout     int      `toml:"read_timeout" validate:"min=1"`
	WriteTimeout    int      `toml:"write_timeout" validate:"min=1"`
	IdleTimeout     int      `toml:"idle_timeout" validate:"min=1"`
	ShutdownTimeout int      `toml:"shutdown_timeout" validate:"min=1"`
	TrustedProxies  []string `toml:"trusted_proxies" validate:"dive,cidr"`
}

// DatabaseConfig настройки подключения к PostgreSQL
type DatabaseConfig struct {
	Host            string `toml:"host" validate:"required"`
	Port            int    `toml:"port" validate:"required,min=1,max=65535"`
	User            string `toml:"user" validate:"required"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname" validate:"required"`
	SSLMode         string `toml:"sslmode" validate:"oneof=disable require verify-ca verify-full"`
	MaxOpenConns    int    `toml:"max_open_conns" validate:"min=1"`
	MaxIdleConns    int    `toml:"max_idle_conns" validate:"min=0"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime" validate:"min=0"` // секунды
}

// DSN возвращает строку подключения для lib/pq
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

type LogsConfig struct {
	File  string `toml:"file" validate:"required"`
	Level string `toml:"level" validate:"oneof=debug info warn error"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path" validate:"required_if=Enabled true"`
	ServiceName string `toml:"service_name" validate:"required_if=Enabled true"`
}

// RedisConfig хранилище счётчиков лимита; без Redis используется память процесса
type RedisConfig struct {
	Enabled  bool   `toml:"enabled"`
	Addr     string `toml:"addr" validate:"required_if=Enabled true"`
	Password string `toml:"password"`
	DB       int    `toml:"db" validate:"min=0"`
}

// TierConfig лимит одного уровня
type TierConfig struct {
	Max           int64 `toml:"max" validate:"min=1"`
	WindowMinutes int   `toml:"window_minutes" validate:"min=1"`
}

type RateLimitConfig struct {
	Strict   TierConfig `toml:"strict"`
	Standard TierConfig `toml:"standard"`
	Lenient  TierConfig `toml:"lenient"`
	// SweepIntervalSeconds период очистки просроченных окон в памяти
	SweepIntervalSeconds int `toml:"sweep_interval_seconds" validate:"min=1"`
}

// Limits возвращает лимиты для ratelimit.NewLimiter
func (c RateLimitConfig) Limits() map[ratelimit.Tier]ratelimit.Limit {
	return map[ratelimit.Tier]ratelimit.Limit{
		ratelimit.TierStrict:   c.Strict.limit(),
		ratelimit.TierStandard: c.Standard.limit(),
		ratelimit.TierLenient:  c.Lenient.limit(),
	}
}

func (c TierConfig) limit() ratelimit.Limit {
	return ratelimit.Limit{Max: c.Max, Window: time.Duration(c.WindowMinutes) * time.Minute}
}

// BookingConfig окно допустимого scheduledAt, в минутах
type BookingConfig struct {
	SkewBufferMinutes int `toml:"skew_buffer_minutes" validate:"min=0"`
	MinLeadMinutes    int `toml:"min_lead_minutes" validate:"min=0"`
	MaxHorizonDays    int `toml:"max_horizon_days" validate:"min=1"`
}

// Policy возвращает политику временного окна
func (c BookingConfig) Policy() schedule.Policy {
	return schedule.Policy{
		SkewBuffer: time.Duration(c.SkewBufferMinutes) * time.Minute,
		MinLead:    time.Duration(c.MinLeadMinutes) * time.Minute,
		MaxHorizon: time.Duration(c.MaxHorizonDays) * 24 * time.Hour,
	}
}

// Default возвращает конфигурацию со значениями по умолчанию
func Default() *Config {
	defaults := ratelimit.DefaultLimits()
	policy := schedule.DefaultPolicy()

	tier := func(t ratelimit.Tier) TierConfig {
		l := defaults[t]
		return TierConfig{Max: l.Max, WindowMinutes: int(l.Window / time.Minute)}
	}

	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     15,
			WriteTimeout:    15,
			IdleTimeout:     60,
			ShutdownTimeout: 10,
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			User:            "postgres",
			DBName:          "bookings",
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Logs: LogsConfig{
			File:  "logs/booking-engine.log",
			Level: "info",
		},
		Metrics: MetricsConfig{
			Enabled:     true,
			Path:        "/metrics",
			ServiceName: "booking-engine",
		},
		RateLimit: RateLimitConfig{
			Strict:               tier(ratelimit.TierStrict),
			Standard:             tier(ratelimit.TierStandard),
			Lenient:              tier(ratelimit.TierLenient),
			SweepIntervalSeconds: 60,
		},
		Booking: BookingConfig{
			SkewBufferMinutes: int(policy.SkewBuffer / time.Minute),
			MinLeadMinutes:    int(policy.MinLead / time.Minute),
			MaxHorizonDays:    int(policy.MaxHorizon / (24 * time.Hour)),
		},
	}
}

// Load читает конфигурацию из TOML файла поверх значений по умолчанию и валидирует её
func Load(path string) (*Config, error) {
	cfg := Default()

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrReadConfig, path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate проверяет значения по тегам validate
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}
