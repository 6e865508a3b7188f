// Command negotiate runs one automated buyer/seller price negotiation end to
// end: it builds a session from the environment, plays rounds until a
// terminal status, and stores the structured result.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-isatty"

	"github.com/talgya/haggle/internal/agents"
	"github.com/talgya/haggle/internal/config"
	"github.com/talgya/haggle/internal/economy"
	"github.com/talgya/haggle/internal/engine"
	"github.com/talgya/haggle/internal/entropy"
	"github.com/talgya/haggle/internal/persistence"
	"github.com/talgya/haggle/internal/scenario"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}

	setupLogging(cfg.LogLevel)

	// ── Database ──────────────────────────────────────────────────────
	os.MkdirAll(filepath.Dir(cfg.DBPath), 0755)
	db, err := persistence.Open(cfg.DBPath)
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	slog.Info("database opened", "path", cfg.DBPath)

	// ── Session setup ─────────────────────────────────────────────────
	product := economy.Product{
		Name:      cfg.ProductName,
		Category:  cfg.Category,
		Quantity:  cfg.Quantity,
		Grade:     economy.QualityGrade(cfg.Grade),
		Origin:    cfg.Origin,
		BasePrice: cfg.MarketPrice,
	}

	sessionCfg := engine.Config{Product: product, BuyerBudget: cfg.Budget}
	if cfg.Scenario != "" {
		sc, err := scenario.Lookup(cfg.Scenario)
		if err != nil {
			slog.Error("unknown scenario", "scenario", cfg.Scenario, "available", scenario.Names())
			os.Exit(1)
		}
		sessionCfg = sc.SessionConfig(product)
		slog.Info("scenario applied", "name", sc.Name,
			"budget_ratio", sc.BudgetRatio, "seller_floor_ratio", sc.SellerFloorRatio)
	}
	sessionCfg.MaxRounds = cfg.MaxRounds

	// Draw the opening ratios inside the configured ranges.
	rng := entropy.NewClient(cfg.RandomOrgKey)
	buyerProfile := agents.BuyerProfile()
	if sessionCfg.BuyerProfile != nil {
		buyerProfile = *sessionCfg.BuyerProfile
	}
	buyerProfile.OpeningRatio = rng.Range(cfg.BuyerOpenLow, cfg.BuyerOpenHigh)
	sessionCfg.BuyerProfile = &buyerProfile

	sellerProfile := agents.SellerProfile()
	if sessionCfg.SellerProfile != nil {
		sellerProfile = *sessionCfg.SellerProfile
	}
	sellerProfile.OpeningRatio = rng.Range(cfg.SellerOpenLow, cfg.SellerOpenHigh)
	sessionCfg.SellerProfile = &sellerProfile

	sess, err := engine.NewSession(sessionCfg)
	if err != nil {
		slog.Error("failed to create session", "error", err)
		os.Exit(1)
	}

	slog.Info("session created",
		"session", sess.ID,
		"product", product.Name,
		"quantity", product.Quantity,
		"grade", string(product.Grade),
		"market_price", money(sess.Market.Price),
		"fair_value", money(product.FairValue()),
		"max_rounds", sess.MaxRounds,
	)

	// ── Negotiation loop ──────────────────────────────────────────────
	buyerTone := parseTone(cfg.BuyerTone)
	sellerTone := parseTone(cfg.SellerTone)

	for sess.Status == engine.StatusOngoing || sess.Status == engine.StatusFinalOfferIssued {
		res, err := sess.NextRound(buyerTone, sellerTone)
		if err != nil {
			slog.Error("round failed", "error", err)
			os.Exit(1)
		}
		logRound(res)
	}

	// ── Result ────────────────────────────────────────────────────────
	if err := db.SaveSession(sess); err != nil {
		slog.Error("save failed", "error", err)
	}

	outcome := sess.Outcome()
	switch outcome.Status {
	case engine.StatusAccepted:
		fmt.Printf("\nDeal closed at %s in %d rounds (%.1f%% below market).\n",
			money(outcome.Price), outcome.Rounds, sess.Savings()*100)
		if outcome.Demand != agents.DemandNone {
			fmt.Printf("Attached commitment: %s\n", outcome.Demand)
		}
	default:
		fmt.Printf("\nNo deal after %d rounds; both sides walked away.\n", outcome.Rounds)
	}
}

func logRound(res engine.RoundResult) {
	attrs := []any{"round", res.Round, "status", res.Status.String()}
	if res.BuyerOffer != nil {
		attrs = append(attrs, "buyer", money(res.BuyerOffer.Price), "buyer_demand", res.BuyerOffer.Demand.String())
	}
	if res.SellerOffer != nil {
		attrs = append(attrs, "seller", money(res.SellerOffer.Price), "seller_demand", res.SellerOffer.Demand.String())
	}
	slog.Info("round", attrs...)
}

func money(v float64) string {
	return "₹" + humanize.CommafWithDigits(v, 2)
}

func parseTone(name string) agents.Tone {
	switch name {
	case "emotional":
		return agents.ToneEmotional
	case "logical":
		return agents.ToneLogical
	default:
		return agents.ToneNeutral
	}
}

func setupLogging(level string) {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: lvl}
	var handler slog.Handler
	if isatty.IsTerminal(os.Stdout.Fd()) {
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}
	slog.SetDefault(slog.New(handler))
}
