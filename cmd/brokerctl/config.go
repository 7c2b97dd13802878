package main

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/spf13/viper"
)

const defaultRateLimit = 10

// config is the CLI's view of the client configuration. Precedence: flags
// over environment over config file. Zero values mean "use the default",
// which keeps the three layers composable.
type config struct {
	BaseURL         string        `env:"BROKER_BASE_URL"`
	AccessToken     string        `env:"BROKER_ACCESS_TOKEN"`
	TrustedIPRanges []string      `env:"BROKER_TRUSTED_IP_RANGES" envSeparator:","`
	SkipIPCheck     bool          `env:"BROKER_SKIP_IP_CHECK"`
	Timeout         time.Duration `env:"BROKER_TIMEOUT"`
	RateLim         int           `env:"BROKER_RATE_LIMIT"`
}

// loadConfig merges the environment, the optional config file and the
// command-line flags into one config.
func loadConfig() (config, error) {
	var cfg config
	if err := env.Parse(&cfg); err != nil {
		return cfg, err
	}

	if configFile != "" {
		v := viper.New()
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return cfg, fmt.Errorf("reading config file: %w", err)
		}

		if cfg.BaseURL == "" {
			cfg.BaseURL = v.GetString("base_url")
		}
		if cfg.AccessToken == "" {
			cfg.AccessToken = v.GetString("access_token")
		}
		if len(cfg.TrustedIPRanges) == 0 {
			cfg.TrustedIPRanges = v.GetStringSlice("trusted_ip_ranges")
		}
		if !cfg.SkipIPCheck && v.IsSet("assert_valid_broker_ip") {
			cfg.SkipIPCheck = !v.GetBool("assert_valid_broker_ip")
		}
		if cfg.Timeout == 0 {
			cfg.Timeout = v.GetDuration("timeout")
		}
		if cfg.RateLim == 0 {
			cfg.RateLim = v.GetInt("rate_limit")
		}
	}

	applyFlagOverrides(&cfg)

	if cfg.RateLim <= 0 {
		cfg.RateLim = defaultRateLimit
	}

	return cfg, nil
}
