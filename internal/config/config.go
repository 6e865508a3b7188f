// Package config loads driver configuration from the environment, with an
// optional .env file for local runs.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config carries everything the negotiate driver needs to run a session.
type Config struct {
	// Database
	DBPath string

	// Product under negotiation
	ProductName string
	Category    string
	Quantity    int
	Grade       string
	Origin      string
	MarketPrice float64

	// Session shape
	Scenario  string // named preset; empty = explicit budget below
	Budget    float64
	MaxRounds int

	// Tone signals fed to the counterpart's tone adapter each round:
	// "neutral", "emotional", or "logical".
	BuyerTone  string
	SellerTone string

	// Opening-offer ratio ranges; the driver draws inside them.
	BuyerOpenLow   float64
	BuyerOpenHigh  float64
	SellerOpenLow  float64
	SellerOpenHigh float64

	// Entropy
	RandomOrgKey string

	// Logging
	LogLevel string
}

// Load reads configuration from the environment. A .env file is applied
// first when present (non-fatal if missing).
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		DBPath:       getEnvDefault("HAGGLE_DB_PATH", "data/haggle.db"),
		ProductName:  getEnvDefault("HAGGLE_PRODUCT", "Alphonso Mangoes"),
		Category:     getEnvDefault("HAGGLE_CATEGORY", "Mangoes"),
		Grade:        getEnvDefault("HAGGLE_GRADE", "A"),
		Origin:       getEnvDefault("HAGGLE_ORIGIN", "Ratnagiri"),
		Scenario:     os.Getenv("HAGGLE_SCENARIO"),
		BuyerTone:    getEnvDefault("HAGGLE_BUYER_TONE", "neutral"),
		SellerTone:   getEnvDefault("HAGGLE_SELLER_TONE", "neutral"),
		RandomOrgKey: os.Getenv("RANDOM_ORG_KEY"),
		LogLevel:     getEnvDefault("HAGGLE_LOG_LEVEL", "info"),
	}

	var err error
	if cfg.Quantity, err = getEnvInt("HAGGLE_QUANTITY", 100); err != nil {
		return nil, err
	}
	if cfg.MarketPrice, err = getEnvFloat("HAGGLE_MARKET_PRICE", 180000); err != nil {
		return nil, err
	}
	if cfg.Budget, err = getEnvFloat("HAGGLE_BUDGET", 0); err != nil {
		return nil, err
	}
	if cfg.MaxRounds, err = getEnvInt("HAGGLE_MAX_ROUNDS", 10); err != nil {
		return nil, err
	}
	if cfg.BuyerOpenLow, err = getEnvFloat("HAGGLE_BUYER_OPEN_LOW", 0.72); err != nil {
		return nil, err
	}
	if cfg.BuyerOpenHigh, err = getEnvFloat("HAGGLE_BUYER_OPEN_HIGH", 0.78); err != nil {
		return nil, err
	}
	if cfg.SellerOpenLow, err = getEnvFloat("HAGGLE_SELLER_OPEN_LOW", 1.15); err != nil {
		return nil, err
	}
	if cfg.SellerOpenHigh, err = getEnvFloat("HAGGLE_SELLER_OPEN_HIGH", 1.25); err != nil {
		return nil, err
	}

	if cfg.MarketPrice <= 0 {
		return nil, fmt.Errorf("HAGGLE_MARKET_PRICE must be positive, got %.2f", cfg.MarketPrice)
	}
	if cfg.MaxRounds < 2 {
		return nil, fmt.Errorf("HAGGLE_MAX_ROUNDS must be at least 2, got %d", cfg.MaxRounds)
	}
	if cfg.BuyerOpenLow > cfg.BuyerOpenHigh {
		return nil, fmt.Errorf("buyer opening range [%.2f, %.2f] is inverted",
			cfg.BuyerOpenLow, cfg.BuyerOpenHigh)
	}
	if cfg.SellerOpenLow > cfg.SellerOpenHigh {
		return nil, fmt.Errorf("seller opening range [%.2f, %.2f] is inverted",
			cfg.SellerOpenLow, cfg.SellerOpenHigh)
	}

	return cfg, nil
}

func getEnvDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}

func getEnvFloat(key string, defaultValue float64) (float64, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return f, nil
}
