package config

import (
	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// Config defines the app configuration.
type Config struct {
	Server struct {
		Port int    `yaml:"port" env:"PORT" env-default:"4000"`
		Env  string `yaml:"env" env:"ENV" env-default:"development"`
	} `yaml:"server"`
	Database struct {
		DSN          string `yaml:"dsn" env:"DSN"`
		MaxOpenConns int    `yaml:"max_open_conns" env:"MAXOPENCONNS" env-default:"25"`
		MaxIdleConns int    `yaml:"max_idle_conns" env:"MAXIDLECONNS" env-default:"25"`
		MaxIdleTime  string `yaml:"max_idle_time" env:"MAXIDLETIME" env-default:"15m"`
	} `yaml:"database"`
	Limiter struct {
		RPS     float64 `yaml:"rps" env:"LIMITERRPS" env-default:"4"`
		Burst   int     `yaml:"burst" env:"LIMITERBURST" env-default:"8"`
		Enabled bool    `yaml:"enabled" env:"LIMITERENABLED" env-default:"true"`
	} `yaml:"limiter"`
	Cors struct {
		TrustedOrigins []string `yaml:"trusted_origins" env:"TRUSTEDORIGINS"`
	} `yaml:"cors"`
	Metrics struct {
		Enabled bool `yaml:"enabled" env:"METRICSENABLED" env-default:"true"`
	} `yaml:"metrics"`
	BasicAuth struct {
		Username string `yaml:"username" env:"BASICAUTHUSERNAME"`
		Password string `yaml:"password" env:"BASICAUTHPASSWORD"`
	} `yaml:"basic_auth"`
}

// Load populates a Config from an optional YAML file and the environment.
// Environment variables take precedence over file values. A missing .env
// file is not an error.
func Load(path string) (Config, error) {
	_ = godotenv.Load()
	var cfg Config
	if path != "" {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return Config{}, err
		}
		return cfg, nil
	}
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
