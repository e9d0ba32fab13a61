package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"homefinder-listings/pkg/cache"

	"gopkg.in/yaml.v3"
)

const (
	DriverMemory = "memory"
	DriverMongo  = "mongo"
	DriverMySQL  = "mysql"
)

type Config struct {
	Server struct {
		Port            int           `yaml:"port"`
		Env             string        `yaml:"env"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
		AllowedOrigins  []string      `yaml:"allowed_origins"`
	} `yaml:"server"`
	Storage struct {
		Driver       string `yaml:"driver"`
		FixturesPath string `yaml:"fixtures_path"`
	} `yaml:"storage"`
	Database struct {
		URI    string `yaml:"uri"`
		DBName string `yaml:"dbname"`
	} `yaml:"database"`
	MySQL struct {
		DSN string `yaml:"dsn"`
	} `yaml:"mysql"`
	Redis struct {
		Enabled     bool   `yaml:"enabled"`
		Host        string `yaml:"host"`
		Port        int    `yaml:"port"`
		Password    string `yaml:"password"`
		DB          int    `yaml:"db"`
		TLSEnabled  bool   `yaml:"tls_enabled"`
		TLSCertFile string `yaml:"tls_cert_file"`
		KeyPrefix   string `yaml:"key_prefix"`
	} `yaml:"redis"`
	Cache struct {
		FeaturedTTL time.Duration `yaml:"featured_ttl"`
	} `yaml:"cache"`
	JWT struct {
		Secret string        `yaml:"secret"`
		Expiry time.Duration `yaml:"expiry"`
	} `yaml:"jwt"`
	Admin struct {
		Name     string `yaml:"name"`
		Email    string `yaml:"email"`
		Password string `yaml:"password"`
	} `yaml:"admin"`
	Uploads struct {
		Dir       string `yaml:"dir"`
		Route     string `yaml:"route"`
		MaxSizeMB int    `yaml:"max_size_mb"`
	} `yaml:"uploads"`
	RabbitMQ struct {
		Enabled  bool   `yaml:"enabled"`
		URL      string `yaml:"url"`
		Exchange string `yaml:"exchange"`
	} `yaml:"rabbitmq"`
	Fluent struct {
		Enabled bool   `yaml:"enabled"`
		Host    string `yaml:"host"`
		Port    int    `yaml:"port"`
		Tag     string `yaml:"tag"`
	} `yaml:"fluent"`
	Log struct {
		Level string `yaml:"level"`
	} `yaml:"log"`
	Client struct {
		APIURL  string        `yaml:"api_url"`
		Timeout time.Duration `yaml:"timeout"`
	} `yaml:"client"`
	RateLimit struct {
		RequestsPerMinute int `yaml:"requests_per_minute"`
		Burst             int `yaml:"burst"`
	} `yaml:"rate_limit"`
}

// Default returns a configuration that runs entirely in memory.
func Default() *Config {
	var cfg Config
	cfg.applyDefaults()
	return &cfg
}

// LoadConfig reads the YAML file at path, applies environment overrides and
// defaults, then validates the result. A missing file is not an error when
// path is empty.
func LoadConfig(path string) (*Config, error) {
	var cfg Config
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to unmarshal config: %w", err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyEnv() error {
	setString := func(key string, dst *string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}
	setInt := func(key string, dst *int) error {
		if v := os.Getenv(key); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				return fmt.Errorf("invalid %s value: %w", key, err)
			}
			*dst = n
		}
		return nil
	}
	setBool := func(key string, dst *bool) {
		if v := os.Getenv(key); v != "" {
			*dst = v == "true"
		}
	}
	setDuration := func(key string, dst *time.Duration) error {
		if v := os.Getenv(key); v != "" {
			d, err := time.ParseDuration(v)
			if err != nil {
				return fmt.Errorf("invalid %s value: %w", key, err)
			}
			*dst = d
		}
		return nil
	}

	setString("APP_ENV", &c.Server.Env)
	setString("STORAGE_DRIVER", &c.Storage.Driver)
	setString("FIXTURES_PATH", &c.Storage.FixturesPath)
	setString("MONGO_URI", &c.Database.URI)
	setString("DB_NAME", &c.Database.DBName)
	setString("MYSQL_DSN", &c.MySQL.DSN)
	setBool("REDIS_ENABLED", &c.Redis.Enabled)
	setString("REDIS_HOST", &c.Redis.Host)
	setString("REDIS_PASSWORD", &c.Redis.Password)
	setBool("REDIS_TLS_ENABLED", &c.Redis.TLSEnabled)
	setString("REDIS_TLS_CERT_FILE", &c.Redis.TLSCertFile)
	setString("JWT_SECRET", &c.JWT.Secret)
	setString("ADMIN_EMAIL", &c.Admin.Email)
	setString("ADMIN_PASSWORD", &c.Admin.Password)
	setString("UPLOADS_DIR", &c.Uploads.Dir)
	setString("UPLOADS_ROUTE", &c.Uploads.Route)
	setBool("RABBITMQ_ENABLED", &c.RabbitMQ.Enabled)
	setString("RABBITMQ_URL", &c.RabbitMQ.URL)
	setBool("FLUENT_ENABLED", &c.Fluent.Enabled)
	setString("FLUENT_HOST", &c.Fluent.Host)
	setString("LOG_LEVEL", &c.Log.Level)
	setString("API_URL", &c.Client.APIURL)
	if v := os.Getenv("CORS_ALLOWED_ORIGINS"); v != "" {
		c.Server.AllowedOrigins = strings.Split(v, ",")
	}

	for key, dst := range map[string]*int{
		"PORT":        &c.Server.Port,
		"REDIS_PORT":  &c.Redis.Port,
		"REDIS_DB":    &c.Redis.DB,
		"FLUENT_PORT": &c.Fluent.Port,
	} {
		if err := setInt(key, dst); err != nil {
			return err
		}
	}
	if err := setDuration("FEATURED_CACHE_TTL", &c.Cache.FeaturedTTL); err != nil {
		return err
	}
	return setDuration("API_TIMEOUT", &c.Client.Timeout)
}

func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 3000
	}
	if c.Server.Env == "" {
		c.Server.Env = "development"
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = 5 * time.Second
	}
	if len(c.Server.AllowedOrigins) == 0 {
		c.Server.AllowedOrigins = []string{"http://localhost:4200"}
	}
	if c.Storage.Driver == "" {
		c.Storage.Driver = DriverMemory
	}
	c.Storage.Driver = strings.ToLower(c.Storage.Driver)
	if c.Database.DBName == "" {
		c.Database.DBName = "homefinder"
	}
	if c.Redis.Host == "" {
		c.Redis.Host = "localhost"
	}
	if c.Redis.Port == 0 {
		c.Redis.Port = 6379
	}
	if c.Redis.KeyPrefix == "" {
		c.Redis.KeyPrefix = "listings:"
	}
	if c.Cache.FeaturedTTL == 0 {
		c.Cache.FeaturedTTL = 5 * time.Minute
	}
	if c.JWT.Expiry == 0 {
		c.JWT.Expiry = 24 * time.Hour
	}
	if c.Admin.Name == "" {
		c.Admin.Name = "Admin User"
	}
	if c.Admin.Email == "" {
		c.Admin.Email = "admin@example.com"
	}
	if c.Admin.Password == "" {
		c.Admin.Password = "password"
	}
	if c.Uploads.Dir == "" {
		c.Uploads.Dir = "uploads"
	}
	if c.Uploads.Route == "" {
		c.Uploads.Route = "/api/files"
	}
	if c.Uploads.MaxSizeMB == 0 {
		c.Uploads.MaxSizeMB = 5
	}
	if c.RabbitMQ.Exchange == "" {
		c.RabbitMQ.Exchange = "listings.events"
	}
	if c.Fluent.Host == "" {
		c.Fluent.Host = "localhost"
	}
	if c.Fluent.Port == 0 {
		c.Fluent.Port = 24224
	}
	if c.Fluent.Tag == "" {
		c.Fluent.Tag = "homefinder.api"
	}
	if c.Log.Level == "" {
		c.Log.Level = "INFO"
	}
	if c.Client.APIURL == "" {
		c.Client.APIURL = fmt.Sprintf("http://localhost:%d/api", c.Server.Port)
	}
	if c.Client.Timeout == 0 {
		c.Client.Timeout = 10 * time.Second
	}
	if c.RateLimit.RequestsPerMinute == 0 {
		c.RateLimit.RequestsPerMinute = 100
	}
	if c.RateLimit.Burst == 0 {
		c.RateLimit.Burst = 10
	}
}

// Validate rejects settings the server cannot start with.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server port must be between 1 and 65535")
	}
	switch c.Storage.Driver {
	case DriverMemory:
	case DriverMongo:
		if c.Database.URI == "" {
			return fmt.Errorf("MONGO_URI is required for the mongo storage driver")
		}
	case DriverMySQL:
		if c.MySQL.DSN == "" {
			return fmt.Errorf("MYSQL_DSN is required for the mysql storage driver")
		}
	default:
		return fmt.Errorf("unknown storage driver %q", c.Storage.Driver)
	}
	if c.Redis.Enabled {
		if err := c.RedisConfig().Validate(); err != nil {
			return err
		}
	}
	if c.RabbitMQ.Enabled && c.RabbitMQ.URL == "" {
		return fmt.Errorf("RABBITMQ_URL is required when rabbitmq is enabled")
	}
	if c.Server.Env == "production" && c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET is required in production")
	}
	if c.Cache.FeaturedTTL < 0 {
		return fmt.Errorf("featured cache ttl must not be negative")
	}
	if c.Uploads.MaxSizeMB < 0 {
		return fmt.Errorf("upload size limit must not be negative")
	}
	return nil
}

// RedisConfig converts the redis section for pkg/cache.
func (c *Config) RedisConfig() *cache.RedisConfig {
	return &cache.RedisConfig{
		Host:        c.Redis.Host,
		Port:        c.Redis.Port,
		Password:    c.Redis.Password,
		DB:          c.Redis.DB,
		TLSEnabled:  c.Redis.TLSEnabled,
		TLSCertFile: c.Redis.TLSCertFile,
		KeyPrefix:   c.Redis.KeyPrefix,
	}
}

// MaxUploadBytes is the per-image upload limit.
func (c *Config) MaxUploadBytes() int64 {
	return int64(c.Uploads.MaxSizeMB) << 20
}

func (c *Config) IsProduction() bool {
	return c.Server.Env == "production"
}
