package internal

import (
	"fmt"
	"strings"
	"time"

	"github.com/Netflix/go-env"
	"github.com/joho/godotenv"
)

type Config struct {
	Host            string        `env:"HOST,default=localhost"`
	Port            int           `env:"PORT,default=8080"`
	LogLevel        string        `env:"LOG_LEVEL,default=INFO"`
	StoreBackend    string        `env:"STORE_BACKEND,default=memory"`
	SeedDemoData    bool          `env:"SEED_DEMO_DATA,default=true"`
	Timezone        string        `env:"TIMEZONE,default=UTC"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT,default=5s"`
	AllowedOrigins  string        `env:"ALLOWED_ORIGINS,default=*"`
}

// LoadConfig reads the environment, after the optional .env files.
func LoadConfig(files ...string) (Config, error) {
	// A missing .env is not an error.
	_ = godotenv.Load(files...)

	var config Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return Config{}, fmt.Errorf("config error: %w", err)
	}
	if config.Port <= 0 || config.Port > 65535 {
		return Config{}, fmt.Errorf("PORT must be in 1..65535, got %d", config.Port)
	}
	if config.ShutdownTimeout <= 0 {
		return Config{}, fmt.Errorf("SHUTDOWN_TIMEOUT must be positive, got %s", config.ShutdownTimeout)
	}
	return config, nil
}

func (c Config) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Location is the zone events are stamped in and dates are parsed in.
func (c Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("TIMEZONE %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// Origins splits ALLOWED_ORIGINS on commas.
func (c Config) Origins() []string {
	var origins []string
	for _, origin := range strings.Split(c.AllowedOrigins, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			origins = append(origins, origin)
		}
	}
	return origins
}
