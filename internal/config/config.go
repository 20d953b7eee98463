package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

type Config struct {
	Env      string         `yaml:"env" env:"ENV" env-default:"local"`
	App      AppConfig      `yaml:"app"`
	Log      LogConfig      `yaml:"log"`
	DB       DBConfig       `yaml:"db"`
	Redis    RedisConfig    `yaml:"redis"`
	Search   SearchConfig   `yaml:"search"`
	Currency CurrencyConfig `yaml:"currency"`
	CORS     CORSConfig     `yaml:"cors"`
}

type AppConfig struct {
	Addr            string        `yaml:"addr" env:"APP_ADDR" env-default:":8080" validate:"required"`
	GinMode         string        `yaml:"gin_mode" env:"GIN_MODE" validate:"omitempty,oneof=debug release test"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"APP_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

type LogConfig struct {
	Level string `yaml:"level" env:"LOG_LEVEL" env-default:"info"`
}

type DBConfig struct {
	Host            string        `yaml:"host" env:"DB_HOST" env-default:"127.0.0.1" validate:"required"`
	Port            int           `yaml:"port" env:"DB_PORT" env-default:"3306" validate:"gt=0"`
	User            string        `yaml:"user" env:"DB_USER" env-default:"root" validate:"required"`
	Password        string        `yaml:"password" env:"DB_PASSWORD"`
	Name            string        `yaml:"name" env:"DB_NAME" env-default:"austria_express" validate:"required"`
	MaxOpenConns    int           `yaml:"max_open_conns" env:"DB_MAX_OPEN_CONNS" env-default:"25" validate:"gte=1"`
	MaxIdleConns    int           `yaml:"max_idle_conns" env:"DB_MAX_IDLE_CONNS" env-default:"25" validate:"gte=0"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime" env:"DB_CONN_MAX_LIFETIME" env-default:"10m"`
	ConnMaxIdleTime time.Duration `yaml:"conn_max_idle_time" env:"DB_CONN_MAX_IDLE_TIME" env-default:"5m"`
}

// RedisConfig enables the exchange-rate cache when Addr is set.
type RedisConfig struct {
	Addr     string        `yaml:"addr" env:"REDIS_ADDR"`
	Password string        `yaml:"password" env:"REDIS_PASSWORD"`
	DB       int           `yaml:"db" env:"REDIS_DB" env-default:"0"`
	RateTTL  time.Duration `yaml:"rate_ttl" env:"REDIS_RATE_TTL" env-default:"10m"`
}

type SearchConfig struct {
	Timezone      string `yaml:"timezone" env:"SEARCH_TIMEZONE" env-default:"Europe/Vienna" validate:"required"`
	Workers       int    `yaml:"workers" env:"SEARCH_WORKERS" env-default:"8" validate:"gte=1"`
	LookaheadDays int    `yaml:"lookahead_days" env:"SEARCH_LOOKAHEAD_DAYS" env-default:"2" validate:"gte=0,lte=31"`
	MaxResults    int    `yaml:"max_results" env:"SEARCH_MAX_RESULTS" env-default:"3" validate:"gte=0"`
}

type CurrencyConfig struct {
	From string `yaml:"from" env:"CURRENCY_FROM" env-default:"EUR" validate:"required,len=3"`
	To   string `yaml:"to" env:"CURRENCY_TO" env-default:"UAH" validate:"required,len=3"`
}

type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowed_origins" env:"CORS_ALLOWED_ORIGINS" env-separator:","`
}

func (c DBConfig) DSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true&loc=Local&charset=utf8mb4&timeout=5s&readTimeout=30s&writeTimeout=30s",
		c.User, c.Password, c.Host, c.Port, c.Name)
}

// Location resolves the search timezone.
func (c SearchConfig) Location() (*time.Location, error) {
	return time.LoadLocation(c.Timezone)
}

func MustLoad() *Config {
	_ = godotenv.Load(".env")

	cfg, err := Load(fetchConfigPath())
	if err != nil {
		panic("cannot read the config: " + err.Error())
	}
	return cfg
}

// Load reads the YAML file at path (environment overrides it). A missing file
// falls back to the environment alone.
func Load(path string) (*Config, error) {
	var cfg Config

	if _, err := os.Stat(path); err == nil {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, err
		}
	} else if errors.Is(err, os.ErrNotExist) {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, err
		}
	} else {
		return nil, err
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if _, err := cfg.Search.Location(); err != nil {
		return nil, fmt.Errorf("invalid search timezone: %w", err)
	}
	return &cfg, nil
}

func fetchConfigPath() string {
	var res string

	flag.StringVar(&res, "config", "", "path to config file")
	flag.Parse()

	if res == "" {
		res = os.Getenv("CONFIG_PATH")
	}

	if res == "" {
		res = "config/local.yaml"
	}

	return res
}
