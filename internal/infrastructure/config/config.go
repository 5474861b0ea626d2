package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// Config is the console's runtime configuration.
type Config struct {
	// APIBaseURL points at the ERP backend the console talks to.
	APIBaseURL string `env:"ERP_API_URL,    default=http://localhost:8000"`
	// SessionFile overrides where the remembered session token is stored.
	// Empty means the platform default under the user config directory.
	SessionFile string `env:"ERP_SESSION_FILE"`
	LogLevel    string `env:"LOG_LEVEL,      default=info"`
	LogPretty   bool   `env:"LOG_PRETTY,     default=true"`
}

// StubConfig configures the development stub backend. ADMIN_EMAIL and
// ADMIN_PASSWORD are the two variables the launch script sets to bootstrap
// the seeded administrator account.
type StubConfig struct {
	Port          string        `env:"STUB_PORT,      default=8000"`
	JWTSecret     string        `env:"JWT_SECRET,     default=dev-only-secret"`
	TokenTTL      time.Duration `env:"TOKEN_TTL,      default=24h"`
	AdminEmail    string        `env:"ADMIN_EMAIL,    default=admin@hollpacas.test"`
	AdminPassword string        `env:"ADMIN_PASSWORD, default=020416"`
	LogLevel      string        `env:"LOG_LEVEL,      default=info"`
}

// Load reads the console configuration from environment variables.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}

// LoadStub reads the stub backend configuration from environment variables.
func LoadStub() *StubConfig {
	var cfg StubConfig
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
