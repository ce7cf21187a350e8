package config

import (
	"fmt"
	"time"
)

// RedisConfig представляет конфигурацию хранилища отзыва токенов.
type RedisConfig struct {
	Host            string        `yaml:"host" env:"USERHUB_REDIS_HOST" env-default:"localhost"`
	Port            int           `yaml:"port" env:"USERHUB_REDIS_PORT" env-default:"6379"`
	Password        string        `yaml:"password" env:"USERHUB_REDIS_PASSWORD" env-default:""`
	DB              int           `yaml:"db" env:"USERHUB_REDIS_DB" env-default:"0"`
	ConnectTimeout  time.Duration `yaml:"connect_timeout" env:"USERHUB_REDIS_CONNECT_TIMEOUT" env-default:"5s"`
	ReadTimeout     time.Duration `yaml:"read_timeout" env:"USERHUB_REDIS_READ_TIMEOUT" env-default:"3s"`
	WriteTimeout    time.Duration `yaml:"write_timeout" env:"USERHUB_REDIS_WRITE_TIMEOUT" env-default:"3s"`
	PoolSize        int           `yaml:"pool_size" env:"USERHUB_REDIS_POOL_SIZE" env-default:"10"`
	MinIdle         int           `yaml:"min_idle" env:"USERHUB_REDIS_MIN_IDLE" env-default:"2"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" env:"USERHUB_REDIS_IDLE_TIMEOUT" env-default:"5m"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime" env:"USERHUB_REDIS_MAX_CONN_LIFETIME" env-default:"1h"`
}

// GetAddress возвращает адрес Redis.
func (c *RedisConfig) GetAddress() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
