// Package config provides environment-driven configuration for the demo
// harness. The SDK itself is configured programmatically; this package only
// wires the pieces a developer wants to vary between runs.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// init loads environment variables from .env files during package
// initialization. godotenv.Load() does not override already-set environment
// variables, preserving OS env > .env precedence.
func init() {
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			fmt.Fprintf(os.Stderr, "warning: failed to load .env file: %v\n", err)
		}
	}

	if _, err := os.Stat(".env.local"); err == nil {
		if err := godotenv.Load(".env.local"); err != nil {
			fmt.Fprintf(os.Stderr, "warning: failed to load .env.local file: %v\n", err)
		}
	}
}

// Config captures environment-driven settings for the demo harness.
type Config struct {
	ClientID     string // PayPal client ID the message is fetched for
	MerchantID   string // Optional merchant ID for partner integrations
	Env          string // Target environment (production, sandbox, stage, local)
	StageHost    string // Stage host when Env is "stage"
	Amount       string // Optional transaction amount
	BuyerCountry string // Optional buyer country override

	ProfileCachePath string // File path for the merchant profile cache
	RedisAddr        string // Redis address for a shared profile cache

	DevTouchpoint bool // Request development content
	LogDebug      bool // Enable debug-level logging
}

// Default configuration values used when environment variables are not set
const (
	defaultEnv = "sandbox"
)

// Load reads environment variables and produces a Config suitable for wiring
// the demo. Returns an error if required parameters are missing.
func Load() (Config, error) {
	cfg := Config{}

	if clientID, exists := os.LookupEnv("PPM_CLIENT_ID"); exists {
		cfg.ClientID = clientID
	}

	if merchantID, exists := os.LookupEnv("PPM_MERCHANT_ID"); exists {
		cfg.MerchantID = merchantID
	}

	if env, exists := os.LookupEnv("PPM_ENV"); exists {
		cfg.Env = env
	} else {
		cfg.Env = defaultEnv
	}

	if stageHost, exists := os.LookupEnv("PPM_STAGE_HOST"); exists {
		cfg.StageHost = stageHost
	}

	if amount, exists := os.LookupEnv("PPM_AMOUNT"); exists {
		cfg.Amount = amount
	}

	if buyerCountry, exists := os.LookupEnv("PPM_BUYER_COUNTRY"); exists {
		cfg.BuyerCountry = buyerCountry
	}

	if cachePath, exists := os.LookupEnv("PPM_PROFILE_CACHE_PATH"); exists {
		cfg.ProfileCachePath = cachePath
	}

	if redisAddr, exists := os.LookupEnv("PPM_REDIS_ADDR"); exists {
		cfg.RedisAddr = redisAddr
	}

	if devTouchpoint, exists := os.LookupEnv("PPM_DEV_TOUCHPOINT"); exists {
		cfg.DevTouchpoint = parseBool(devTouchpoint)
	}

	if logDebug, exists := os.LookupEnv("PPM_LOG_DEBUG"); exists {
		cfg.LogDebug = parseBool(logDebug)
	}

	// Validate required parameters
	if cfg.ClientID == "" {
		return cfg, fmt.Errorf("PPM_CLIENT_ID is required")
	}

	if cfg.Env == "stage" && cfg.StageHost == "" {
		return cfg, fmt.Errorf("PPM_STAGE_HOST is required when PPM_ENV is stage")
	}

	return cfg, nil
}

// parseBool converts a string to a boolean value, returning false if parsing
// fails
func parseBool(v string) bool {
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false
	}
	return b
}
