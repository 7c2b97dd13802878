package main

import (
	"time"

	"github.com/spf13/pflag"
)

var (
	configFile  string
	baseURL     string
	accessToken string
	ranges      []string
	skipIPCheck bool
	timeout     time.Duration
	rateLim     int
	verbose     bool
)

func parseFlags() {
	pflag.StringVarP(&configFile, "config", "c", "", "Path to a JSON or YAML config file")
	pflag.StringVar(&baseURL, "base-url", "", "Broker base URL")
	pflag.StringVar(&accessToken, "token", "", "Broker access token")
	pflag.StringSliceVar(&ranges, "trusted-range", nil, "Trusted CIDR range, repeatable")
	pflag.BoolVar(&skipIPCheck, "insecure-skip-ip-check", false, "Disable the broker IP verification")
	pflag.DurationVar(&timeout, "timeout", 0, "Per-request timeout")
	pflag.IntVar(&rateLim, "rate", 0, "Requests per second for bulk operations")
	pflag.BoolVarP(&verbose, "verbose", "v", false, "Log requests and responses")
	pflag.Parse()
}

func applyFlagOverrides(cfg *config) {
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	if accessToken != "" {
		cfg.AccessToken = accessToken
	}
	if len(ranges) > 0 {
		cfg.TrustedIPRanges = ranges
	}
	if skipIPCheck {
		cfg.SkipIPCheck = true
	}
	if timeout > 0 {
		cfg.Timeout = timeout
	}
	if rateLim > 0 {
		cfg.RateLim = rateLim
	}
}
