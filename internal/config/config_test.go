package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, "data/haggle.db", cfg.DBPath)
	require.Equal(t, "Alphonso Mangoes", cfg.ProductName)
	require.Equal(t, 180000.0, cfg.MarketPrice)
	require.Equal(t, 10, cfg.MaxRounds)
	require.Equal(t, "neutral", cfg.BuyerTone)
	require.Equal(t, 0.72, cfg.BuyerOpenLow)
	require.Equal(t, 0.78, cfg.BuyerOpenHigh)
	require.Equal(t, 1.15, cfg.SellerOpenLow)
	require.Equal(t, 1.25, cfg.SellerOpenHigh)
	require.Empty(t, cfg.Scenario)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("HAGGLE_MARKET_PRICE", "1000")
	t.Setenv("HAGGLE_BUDGET", "860")
	t.Setenv("HAGGLE_SCENARIO", "very_hard")
	t.Setenv("HAGGLE_SELLER_TONE", "logical")
	t.Setenv("HAGGLE_MAX_ROUNDS", "12")

	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, 1000.0, cfg.MarketPrice)
	require.Equal(t, 860.0, cfg.Budget)
	require.Equal(t, "very_hard", cfg.Scenario)
	require.Equal(t, "logical", cfg.SellerTone)
	require.Equal(t, 12, cfg.MaxRounds)
}

func TestLoadRejectsBadValues(t *testing.T) {
	t.Run("non-numeric market price", func(t *testing.T) {
		t.Setenv("HAGGLE_MARKET_PRICE", "lots")
		_, err := Load()
		require.Error(t, err)
		require.Contains(t, err.Error(), "HAGGLE_MARKET_PRICE")
	})

	t.Run("non-positive market price", func(t *testing.T) {
		t.Setenv("HAGGLE_MARKET_PRICE", "-5")
		_, err := Load()
		require.Error(t, err)
	})

	t.Run("too few rounds", func(t *testing.T) {
		t.Setenv("HAGGLE_MAX_ROUNDS", "1")
		_, err := Load()
		require.Error(t, err)
		require.Contains(t, err.Error(), "HAGGLE_MAX_ROUNDS")
	})

	t.Run("inverted opening range", func(t *testing.T) {
		t.Setenv("HAGGLE_BUYER_OPEN_LOW", "0.80")
		t.Setenv("HAGGLE_BUYER_OPEN_HIGH", "0.70")
		_, err := Load()
		require.Error(t, err)
		require.Contains(t, err.Error(), "inverted")
	})
}
