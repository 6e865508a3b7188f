// Package scenario provides named negotiation setups of varying difficulty,
// fixing the buyer's budget and the seller's floor as ratios of market.
package scenario

import (
	"fmt"
	"sort"

	"github.com/talgya/haggle/internal/agents"
	"github.com/talgya/haggle/internal/economy"
	"github.com/talgya/haggle/internal/engine"
)

// Scenario shapes a session's hidden parameters relative to market price.
type Scenario struct {
	Name             string
	BudgetRatio      float64 // buyer budget = market × ratio
	SellerFloorRatio float64 // seller walkaway floor = market × ratio
}

var presets = map[string]Scenario{
	"easy":          {Name: "easy", BudgetRatio: 1.20, SellerFloorRatio: 0.80},
	"medium":        {Name: "medium", BudgetRatio: 1.00, SellerFloorRatio: 0.85},
	"hard":          {Name: "hard", BudgetRatio: 0.90, SellerFloorRatio: 0.82},
	"very_hard":     {Name: "very_hard", BudgetRatio: 0.85, SellerFloorRatio: 0.90},
	"budget_tight":  {Name: "budget_tight", BudgetRatio: 0.80, SellerFloorRatio: 0.75},
	"seller_strong": {Name: "seller_strong", BudgetRatio: 1.05, SellerFloorRatio: 0.95},
}

// Lookup returns a preset by name.
func Lookup(name string) (Scenario, error) {
	sc, ok := presets[name]
	if !ok {
		return Scenario{}, fmt.Errorf("unknown scenario %q", name)
	}
	return sc, nil
}

// Names lists the available presets in stable order.
func Names() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// SessionConfig builds an engine config for the product under this scenario.
func (sc Scenario) SessionConfig(product economy.Product) engine.Config {
	seller := agents.SellerProfile()
	if sc.SellerFloorRatio > 0 {
		seller.WalkawayRatio = sc.SellerFloorRatio
	}
	return engine.Config{
		Product:       product,
		BuyerBudget:   product.BasePrice * sc.BudgetRatio,
		SellerProfile: &seller,
	}
}
