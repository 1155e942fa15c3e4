package config

import (
	"errors"
	"strings"

	"handin/model"

	"github.com/spf13/viper"
)

// ErrMissingToken is returned by Validate when no bot token is configured.
var ErrMissingToken = errors.New("bot token is not set")

// Cfg holds the configuration loaded by LoadConfig.
var Cfg model.Config

// LoadConfig reads config.yaml from dir (or the working directory when dir is
// empty). Environment variables override file values, e.g. REVIEW_CHANNEL_ID.
// A missing config file is not an error: defaults and environment still apply.
func LoadConfig(dir string) (err error) {
	cfg, err := Load(dir)
	if err != nil {
		return
	}
	Cfg = cfg
	return
}

// Load is LoadConfig without touching the package-level Cfg.
func Load(dir string) (model.Config, error) {
	var cfg model.Config

	v := viper.New()
	if dir == "" {
		dir = "."
	}
	v.AddConfigPath(dir)
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	// 环境变量只会覆盖已知的键，显式绑定一遍
	for _, key := range []string{"TOKEN", "review.channel_id", "review.reviewer_id", "storage.path", "health.addr"} {
		if err := v.BindEnv(key); err != nil {
			return cfg, err
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return cfg, err
		}
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("storage.path", "./data/handin.db")
	v.SetDefault("log.servicename", "handin")
	v.SetDefault("log.mode", "console")
	v.SetDefault("log.encoding", "plain")
	v.SetDefault("log.level", "info")
}

// Validate checks the settings required to connect to the gateway.
func Validate(cfg model.Config) error {
	if strings.TrimSpace(cfg.Token) == "" {
		return ErrMissingToken
	}
	return nil
}

// ReviewChannelConfigured reports whether submissions can be delivered for review.
func ReviewChannelConfigured(cfg model.Review) bool {
	id := strings.TrimSpace(cfg.ChannelID)
	return id != "" && id != "0"
}
