package cache

import (
	"fmt"
	"os"
)

// configuration settings for connecting to a Redis instance.
type RedisConfig struct {
	Host        string
	Port        int
	Password    string
	DB          int
	TLSEnabled  bool
	TLSCertFile string
	KeyPrefix   string
}

// Validate checks the settings before a connection is attempted.
func (c *RedisConfig) Validate() error {
	if c.Host == "" {
		return fmt.Errorf("redis host is required")
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("redis port must be between 1 and 65535")
	}
	if c.DB < 0 {
		return fmt.Errorf("redis db must be non-negative")
	}
	if c.TLSEnabled && c.TLSCertFile != "" {
		if _, err := os.Stat(c.TLSCertFile); os.IsNotExist(err) {
			return fmt.Errorf("TLS certificate file does not exist: %s", c.TLSCertFile)
		}
	}
	return nil
}

func (c *RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
