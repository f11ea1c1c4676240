package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type AppConfig struct {
	App      AppSettings      `mapstructure:"app"`
	Storage  StorageSettings  `mapstructure:"storage"`
	Redis    RedisSettings    `mapstructure:"redis"`
	Postgres PostgresSettings `mapstructure:"postgres"`
	Admin    AdminSettings    `mapstructure:"admin"`
	SOS      SOSSettings      `mapstructure:"sos"`
	Password PasswordSettings `mapstructure:"password"`
}

type AppSettings struct {
	Name           string   `mapstructure:"name"`
	Env            string   `mapstructure:"env"`
	Host           string   `mapstructure:"host"`
	Port           int      `mapstructure:"port"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// StorageSettings selects the Store backend: memory, redis, or postgres.
type StorageSettings struct {
	Backend string `mapstructure:"backend"`
}

// RedisSettings configures the Redis-backed Store.
type RedisSettings struct {
	Host       string `mapstructure:"host"`
	Port       int    `mapstructure:"port"`
	DB         int    `mapstructure:"db"`
	Password   string `mapstructure:"password"`
	TLSEnabled bool   `mapstructure:"tls_enabled"`
	KeyPrefix  string `mapstructure:"key_prefix"`
}

// PostgresSettings configures the Postgres-backed Store.
type PostgresSettings struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Database string `mapstructure:"database"`
	SSLMode  string `mapstructure:"ssl_mode"`
	MaxConns int32  `mapstructure:"max_conns"`
	MinConns int32  `mapstructure:"min_conns"`
}

// AdminSettings describes the fixed administrator record seeded into the
// account directory at startup.
type AdminSettings struct {
	Name       string `mapstructure:"name"`
	Email      string `mapstructure:"email"`
	Password   string `mapstructure:"password"`
	Department string `mapstructure:"department"`
}

// SOSSettings tunes the SOS activation flow.
type SOSSettings struct {
	HoldDuration   time.Duration `mapstructure:"hold_duration"`
	GeocodeBaseURL string        `mapstructure:"geocode_base_url"`
	GeocodeTimeout time.Duration `mapstructure:"geocode_timeout"`
}

// PasswordSettings tunes the registration password policy.
type PasswordSettings struct {
	MinLength int `mapstructure:"min_length"`
	MinScore  int `mapstructure:"min_score"`
}

func Load() (*AppConfig, error) {
	v := viper.New()

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.SetEnvPrefix("SHEHELP")

	setDefaults(v)

	if err := bindEnvs(v, []string{
		"app.name",
		"app.env",
		"app.host",
		"app.port",
		"app.allowed_origins",
		"storage.backend",
		"redis.host",
		"redis.port",
		"redis.db",
		"redis.password",
		"redis.tls_enabled",
		"redis.key_prefix",
		"postgres.host",
		"postgres.port",
		"postgres.user",
		"postgres.password",
		"postgres.database",
		"postgres.ssl_mode",
		"postgres.max_conns",
		"postgres.min_conns",
		"admin.name",
		"admin.email",
		"admin.password",
		"admin.department",
		"sos.hold_duration",
		"sos.geocode_base_url",
		"sos.geocode_timeout",
		"password.min_length",
		"password.min_score",
	}); err != nil {
		return nil, err
	}

	v.AutomaticEnv()

	var cfg AppConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "she-help-srm-safe")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.host", "0.0.0.0")
	v.SetDefault("app.port", 8080)
	v.SetDefault("app.allowed_origins", []string{"*"})

	v.SetDefault("storage.backend", "memory")

	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.tls_enabled", false)
	v.SetDefault("redis.key_prefix", "shehelp")

	v.SetDefault("postgres.host", "localhost")
	v.SetDefault("postgres.port", 5432)
	v.SetDefault("postgres.user", "shehelp")
	v.SetDefault("postgres.password", "shehelp_password")
	v.SetDefault("postgres.database", "shehelp")
	v.SetDefault("postgres.ssl_mode", "disable")
	v.SetDefault("postgres.max_conns", 10)
	v.SetDefault("postgres.min_conns", 2)

	// The fixed campus administrator account.
	v.SetDefault("admin.name", "Dr. Amanda Williams")
	v.SetDefault("admin.email", "amanda.williams@srmuniversity.edu.in")
	v.SetDefault("admin.password", "ChangeMe!2024")
	v.SetDefault("admin.department", "Student Affairs")

	// Hold-to-activate gesture threshold and best-effort geocoding bounds.
	v.SetDefault("sos.hold_duration", "2s")
	v.SetDefault("sos.geocode_base_url", "https://nominatim.openstreetmap.org")
	v.SetDefault("sos.geocode_timeout", "5s")

	v.SetDefault("password.min_length", 8)
	v.SetDefault("password.min_score", 0)
}

func bindEnvs(v *viper.Viper, keys []string) error {
	for _, key := range keys {
		envKey := strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
		if err := v.BindEnv(key, "SHEHELP_"+envKey, envKey); err != nil {
			return fmt.Errorf("bind env for %s: %w", key, err)
		}
	}
	return nil
}
