package config

import (
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	AppPort string `envconfig:"APP_PORT" default:"8080"`

	DatabaseDSN string `envconfig:"DATABASE_DSN" required:"true"`

	RedisAddr     string `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	RedisPassword string `envconfig:"REDIS_PASSWORD"`

	WechatAppID     string `envconfig:"WECHAT_APP_ID" required:"true"`
	WechatAppSecret string `envconfig:"WECHAT_APP_SECRET" required:"true"`

	// WechatAPIBase overrides the WeChat endpoint, mainly so local
	// development can point at a stub server.
	WechatAPIBase string `envconfig:"WECHAT_API_BASE" default:"https://api.weixin.qq.com"`
}

// Load reads configuration from the environment. Missing required
// variables abort startup.
func Load() (Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
