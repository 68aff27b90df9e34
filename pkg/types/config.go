package types

type Config struct {
	Environment     string `envconfig:"ENVIRONMENT" default:"development"`
	ServerPort      uint   `envconfig:"SERVER_PORT" default:"8080"`
	ReadTimeoutSec  uint   `envconfig:"READ_TIMEOUT_SEC" default:"10"`
	WriteTimeoutSec uint   `envconfig:"WRITE_TIMEOUT_SEC" default:"15"`
	LogLevel        string `envconfig:"LOG_LEVEL" default:"info"`

	// Postgres. An empty DatabaseURL runs the service on the in-memory stores only.
	DatabaseURL            string `envconfig:"DATABASE_URL"`
	DatabaseSchema         string `envconfig:"DATABASE_SCHEMA" default:"bloodlink"`
	HealthCheckIntervalSec uint   `envconfig:"HEALTH_CHECK_INTERVAL_SEC" default:"30"` // 0 disables the probe

	DefaultSearchRadiusKm float64 `envconfig:"DEFAULT_SEARCH_RADIUS_KM" default:"10"`
}

func (c *Config) DurableStorageEnabled() bool {
	return c.DatabaseURL != ""
}
