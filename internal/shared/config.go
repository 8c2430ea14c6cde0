package shared

import (
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/rs/zerolog/log"
)

type Config struct {
	AppEnv        string        `env:"APP_ENV"            envDefault:"prod"`
	HTTPAddr      string        `env:"HTTP_ADDR"          envDefault:":8080"`
	MetricsAddr   string        `env:"METRICS_ADDR"`
	MySQLDSN      string        `env:"MYSQL_DSN"          envDefault:"root:root@tcp(localhost:3306)/hotel?parseTime=true&charset=utf8mb4,utf8&loc=UTC"`
	RedisAddr     string        `env:"REDIS_ADDR"         envDefault:"localhost:6379"`
	RedisPass     string        `env:"REDIS_PASSWORD"`
	RedisDB       int           `env:"REDIS_DB"           envDefault:"0"`
	InventoryBase string        `env:"INVENTORY_BASE_URL" envDefault:"https://inventory.example.com/v1"`
	InventoryKey  string        `env:"INVENTORY_API_KEY"`
	InventoryRPS  int           `env:"INVENTORY_RPS"      envDefault:"5"`
	Workers       int           `env:"SEED_WORKERS"       envDefault:"8"`
	CacheTTL      time.Duration `env:"CACHE_TTL"          envDefault:"30s"`
	HTTPRPS       float64       `env:"HTTP_RPS"           envDefault:"50"`
	HTTPBurst     int           `env:"HTTP_BURST"         envDefault:"100"`
}

func defaults() Config {
	return Config{
		AppEnv:        "prod",
		HTTPAddr:      ":8080",
		MySQLDSN:      "root:root@tcp(localhost:3306)/hotel?parseTime=true&charset=utf8mb4,utf8&loc=UTC",
		RedisAddr:     "localhost:6379",
		InventoryBase: "https://inventory.example.com/v1",
		InventoryRPS:  5,
		Workers:       8,
		CacheTTL:      30 * time.Second,
		HTTPRPS:       50,
		HTTPBurst:     100,
	}
}

// Load reads the environment. A malformed variable falls back to defaults
// rather than aborting startup.
func Load() Config {
	var c Config
	if err := env.Parse(&c); err != nil {
		log.Warn().Err(err).Msg("config parse failed, using defaults")
		c = defaults()
	}
	if c.Workers <= 0 {
		c.Workers = 1
	}
	return c
}

// HotelIDs is the default set of remote inventory ids the seeder imports.
var HotelIDs = []int64{
	1001, 1002, 1003, 1004, 1005,
	2001, 2002, 2003,
	3001, 3002,
}
