package config

import (
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	JWT      JWTConfig      `yaml:"jwt"`
	FastAPI  FastAPIConfig  `yaml:"fastapi"`
	CORS     CORSConfig     `yaml:"cors"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port string `yaml:"port"`
	Mode string `yaml:"mode"` // debug, release, test
}

type DatabaseConfig struct {
	Driver string `yaml:"driver"` // sqlite, mysql, postgres
	DSN    string `yaml:"dsn"`
}

type JWTConfig struct {
	Secret               string `yaml:"secret"`
	AccessExpireMinutes  int    `yaml:"access_expire_minutes"`
	RefreshExpireDays    int    `yaml:"refresh_expire_days"`
	RefreshExpireDaysExt int    `yaml:"refresh_expire_days_ext"` // keep-logged-in sessions
}

// FastAPIConfig points at the external document-generation service.
type FastAPIConfig struct {
	BaseURL string `yaml:"base_url"`
}

type CORSConfig struct {
	Origins []string `yaml:"origins"`
}

func Load(configPath string) (*Config, error) {
	if configPath == "" {
		configPath = "config.yaml"
	}

	var cfg *Config

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		cfg = DefaultConfig()
	} else {
		data, err := os.ReadFile(configPath)
		if err != nil {
			return nil, err
		}

		var fileCfg Config
		if err := yaml.Unmarshal(data, &fileCfg); err != nil {
			return nil, err
		}
		cfg = &fileCfg
	}

	cfg.overrideFromEnv()
	return cfg, nil
}

func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: "3100",
			Mode: "debug",
		},
		Database: DatabaseConfig{
			Driver: "postgres",
			DSN:    "host=localhost port=5432 user=postgres dbname=docgen_db sslmode=disable",
		},
		JWT: JWTConfig{
			Secret:               "docgen-secret-key-change-in-production",
			AccessExpireMinutes:  10,
			RefreshExpireDays:    7,
			RefreshExpireDaysExt: 30,
		},
		FastAPI: FastAPIConfig{
			BaseURL: "http://localhost:8000",
		},
		CORS: CORSConfig{
			Origins: []string{"http://localhost:5173", "http://localhost:3100"},
		},
	}
}

func (c *Config) overrideFromEnv() {
	if host := os.Getenv("SERVER_HOST"); host != "" {
		c.Server.Host = host
	}
	if port := os.Getenv("APP_PORT"); port != "" {
		c.Server.Port = port
	}
	if mode := os.Getenv("SERVER_MODE"); mode != "" {
		c.Server.Mode = mode
	}
	if driver := os.Getenv("DB_DRIVER"); driver != "" {
		c.Database.Driver = driver
	}
	if dsn := os.Getenv("DB_DSN"); dsn != "" {
		c.Database.DSN = dsn
	}
	if secret := os.Getenv("JWT_SECRET"); secret != "" {
		c.JWT.Secret = secret
	}
	if minutes := os.Getenv("JWT_ACCESS_EXPIRE_MINUTES"); minutes != "" {
		if v, err := strconv.Atoi(minutes); err == nil && v > 0 {
			c.JWT.AccessExpireMinutes = v
		}
	}
	if baseURL := os.Getenv("FASTAPI_URL"); baseURL != "" {
		c.FastAPI.BaseURL = baseURL
	}
	if origins := os.Getenv("CORS_ORIGINS"); origins != "" {
		parts := strings.Split(origins, ",")
		c.CORS.Origins = c.CORS.Origins[:0]
		for _, p := range parts {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				c.CORS.Origins = append(c.CORS.Origins, trimmed)
			}
		}
	}
}
