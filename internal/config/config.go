package config

import (
	"errors"
	"fmt"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/BurntSushi/toml"
	"github.com/kelseyhightower/envconfig"
	"github.com/shopspring/decimal"

	"github.com/m04kA/HomeHair-BookingService/internal/domain"
	"github.com/m04kA/HomeHair-BookingService/pkg/types"
)

// EnvPrefix префикс переменных окружения, переопределяющих секреты
const EnvPrefix = "HAIRBOOKING"

const (
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// ErrInvalidConfig возвращается при некорректных значениях конфигурации
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config конфигурация сервиса
type Config struct {
	Server      ServerConfig      `toml:"server"`
	Database    DatabaseConfig    `toml:"database"`
	Logs        LogsConfig        `toml:"logs"`
	Metrics     MetricsConfig     `toml:"metrics"`
	App         AppConfig         `toml:"app"`
	Booking     BookingConfig     `toml:"booking"`
	Sync        SyncConfig        `toml:"sync"`
	Admin       AdminConfig       `toml:"admin"`
	Brevo       BrevoConfig       `toml:"brevo"`
	RateLimit   RateLimitConfig   `toml:"ratelimit"`
	Maintenance MaintenanceConfig `toml:"maintenance"`
	Services    []ServiceConfig   `toml:"services"`
}

type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

type DatabaseConfig struct {
	Driver          string `toml:"driver"` // postgres | memory
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"` // секунды
	AutoMigrate     bool   `toml:"auto_migrate"`
}

// DSN строка подключения для lib/pq
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

type AppConfig struct {
	Timezone string `toml:"timezone"`

	location *time.Location
}

// Location часовой пояс, в котором считается "сегодня"
func (a AppConfig) Location() *time.Location {
	if a.location == nil {
		return time.UTC
	}
	return a.location
}

type BookingConfig struct {
	TimeLabels              []types.TimeString `toml:"time_labels"`
	ExcludedWeekdays        []int              `toml:"excluded_weekdays"` // 0 = воскресенье
	HorizonMonths           int                `toml:"horizon_months"`
	MinBookingNoticeMinutes int                `toml:"min_booking_notice_minutes"`
	HoldSlotOnCreate        bool               `toml:"hold_slot_on_create"`
	AutoSeedEmptyDates      bool               `toml:"auto_seed_empty_dates"`
}

// Weekdays исключённые дни недели
func (b BookingConfig) Weekdays() []time.Weekday {
	out := make([]time.Weekday, 0, len(b.ExcludedWeekdays))
	for _, d := range b.ExcludedWeekdays {
		out = append(out, time.Weekday(d))
	}
	return out
}

type SyncConfig struct {
	RebuildOnTransition bool `toml:"rebuild_on_transition"`
	Workers             int  `toml:"workers"`
}

type AdminConfig struct {
	Email           string `toml:"email"`
	PasswordHash    string `toml:"password_hash"`
	JWTSecret       string `toml:"jwt_secret"`
	TokenTTLMinutes int    `toml:"token_ttl_minutes"`
	Issuer          string `toml:"issuer"`
}

type BrevoConfig struct {
	Enabled     bool   `toml:"enabled"`
	APIKey      string `toml:"api_key"`
	Endpoint    string `toml:"endpoint"`
	SenderEmail string `toml:"sender_email"`
	SenderName  string `toml:"sender_name"`
	Sandbox     bool   `toml:"sandbox"`
	Timeout     int    `toml:"timeout"` // секунды
	MaxRetries  uint   `toml:"max_retries"`
	// NotifyTimeout общий бюджет письма с повторами, секунды; меньше server.write_timeout
	NotifyTimeout int `toml:"notify_timeout"`
}

type RateLimitConfig struct {
	Enabled           bool     `toml:"enabled"`
	RequestsPerMinute int      `toml:"requests_per_minute"`
	Burst             int      `toml:"burst"`
	TrustedProxies    []string `toml:"trusted_proxies"` // IP или CIDR обратных прокси
}

type MaintenanceConfig struct {
	Enabled  bool   `toml:"enabled"`
	Schedule string `toml:"schedule"` // cron-выражение
}

type ServiceConfig struct {
	ID       string           `toml:"id"`
	Name     string           `toml:"name"`
	Price    *decimal.Decimal `toml:"price"` // пусто = на заказ
	Duration string           `toml:"duration"`
}

// secretsEnv секреты, которые можно передать через окружение
type secretsEnv struct {
	DBPassword        string `envconfig:"DB_PASSWORD"`
	AdminPasswordHash string `envconfig:"ADMIN_PASSWORD_HASH"`
	JWTSecret         string `envconfig:"JWT_SECRET"`
	BrevoAPIKey       string `envconfig:"BREVO_API_KEY"`
}

// Load читает конфигурацию из TOML файла и применяет переменные окружения
func Load(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return finalize(&cfg)
}

// Parse разбирает конфигурацию из строки (используется в тестах)
func Parse(data string) (*Config, error) {
	var cfg Config
	if _, err := toml.Decode(data, &cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	return finalize(&cfg)
}

func finalize(cfg *Config) (*Config, error) {
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	var env secretsEnv
	if err := envconfig.Process(EnvPrefix, &env); err != nil {
		return fmt.Errorf("process env: %w", err)
	}
	if env.DBPassword != "" {
		c.Database.Password = env.DBPassword
	}
	if env.AdminPasswordHash != "" {
		c.Admin.PasswordHash = env.AdminPasswordHash
	}
	if env.JWTSecret != "" {
		c.Admin.JWTSecret = env.JWTSecret
	}
	if env.BrevoAPIKey != "" {
		c.Brevo.APIKey = env.BrevoAPIKey
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.Server.HTTPPort == 0 {
		c.Server.HTTPPort = 8080
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 10
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = 10
	}
	if c.Server.IdleTimeout == 0 {
		c.Server.IdleTimeout = 60
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = 15
	}
	if c.Database.Driver == "" {
		c.Database.Driver = DriverPostgres
	}
	if c.Database.SSLMode == "" {
		c.Database.SSLMode = "disable"
	}
	if c.Logs.Level == "" {
		c.Logs.Level = "info"
	}
	if c.Metrics.Path == "" {
		c.Metrics.Path = "/metrics"
	}
	if c.Metrics.ServiceName == "" {
		c.Metrics.ServiceName = "homehair_booking"
	}
	if c.App.Timezone == "" {
		c.App.Timezone = domain.DefaultTimezone
	}
	if len(c.Booking.TimeLabels) == 0 {
		for _, l := range domain.DefaultTimeLabels {
			c.Booking.TimeLabels = append(c.Booking.TimeLabels, types.MustTimeString(l))
		}
	}
	if c.Booking.ExcludedWeekdays == nil {
		for _, d := range domain.DefaultExcludedWeekdays {
			c.Booking.ExcludedWeekdays = append(c.Booking.ExcludedWeekdays, int(d))
		}
	}
	if c.Booking.HorizonMonths == 0 {
		c.Booking.HorizonMonths = domain.DefaultHorizonMonths
	}
	if c.Sync.Workers == 0 {
		c.Sync.Workers = domain.DefaultSyncWorkers
	}
	if c.Admin.TokenTTLMinutes == 0 {
		c.Admin.TokenTTLMinutes = 12 * 60
	}
	if c.Admin.Issuer == "" {
		c.Admin.Issuer = "homehair-booking"
	}
	if c.Brevo.Timeout == 0 {
		c.Brevo.Timeout = 8
	}
	if c.Brevo.NotifyTimeout == 0 {
		c.Brevo.NotifyTimeout = c.Server.WriteTimeout / 2
	}
	if c.Brevo.MaxRetries == 0 {
		c.Brevo.MaxRetries = 3
	}
	if c.RateLimit.RequestsPerMinute == 0 {
		c.RateLimit.RequestsPerMinute = 20
	}
	if c.RateLimit.Burst == 0 {
		c.RateLimit.Burst = 5
	}
	if c.Maintenance.Schedule == "" {
		c.Maintenance.Schedule = "0 3 * * *"
	}
}

// Validate проверяет значения конфигурации и загружает часовой пояс
func (c *Config) Validate() error {
	var problems []string

	switch c.Database.Driver {
	case DriverPostgres, DriverMemory:
	default:
		problems = append(problems, fmt.Sprintf("database.driver %q is not supported", c.Database.Driver))
	}

	loc, err := time.LoadLocation(c.App.Timezone)
	if err != nil {
		problems = append(problems, fmt.Sprintf("app.timezone %q: %v", c.App.Timezone, err))
	} else {
		c.App.location = loc
	}

	for _, l := range c.Booking.TimeLabels {
		if err := l.Validate(); err != nil {
			problems = append(problems, fmt.Sprintf("booking.time_labels: %v", err))
		}
	}
	for _, d := range c.Booking.ExcludedWeekdays {
		if d < 0 || d > 6 {
			problems = append(problems, fmt.Sprintf("booking.excluded_weekdays: %d is not a weekday", d))
		}
	}
	if c.Booking.HorizonMonths < 0 || c.Booking.HorizonMonths > domain.MaxHorizonMonths {
		problems = append(problems, fmt.Sprintf("booking.horizon_months must be within 0..%d", domain.MaxHorizonMonths))
	}
	if c.Booking.MinBookingNoticeMinutes < 0 {
		problems = append(problems, "booking.min_booking_notice_minutes must not be negative")
	}

	if c.Brevo.NotifyTimeout < 1 || c.Brevo.NotifyTimeout >= c.Server.WriteTimeout {
		problems = append(problems, fmt.Sprintf("brevo.notify_timeout must be within 1..%d (below server.write_timeout)", c.Server.WriteTimeout-1))
	}

	seen := make(map[string]struct{}, len(c.Services))
	for _, s := range c.Services {
		if s.ID == "" || s.Name == "" {
			problems = append(problems, "services: id and name are required")
			continue
		}
		if _, dup := seen[s.ID]; dup {
			problems = append(problems, fmt.Sprintf("services: duplicate id %q", s.ID))
		}
		seen[s.ID] = struct{}{}
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(problems, "; "))
	}
	return nil
}

// Catalog каталог услуг из конфигурации или каталог по умолчанию
func (c *Config) Catalog() domain.Catalog {
	if len(c.Services) == 0 {
		return domain.DefaultCatalog()
	}
	catalog := make(domain.Catalog, 0, len(c.Services))
	for _, s := range c.Services {
		catalog = append(catalog, domain.Service{
			ID:       s.ID,
			Name:     s.Name,
			Price:    s.Price,
			Duration: s.Duration,
		})
	}
	return catalog
}

// NotificationsConfigured возвращает true, если заданы ключ и отправитель Brevo
func (c *Config) NotificationsConfigured() bool {
	return c.Brevo.Enabled && c.Brevo.APIKey != "" && c.Brevo.SenderEmail != ""
}
