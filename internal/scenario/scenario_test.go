package scenario

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/talgya/haggle/internal/agents"
	"github.com/talgya/haggle/internal/economy"
	"github.com/talgya/haggle/internal/engine"
)

func TestLookup(t *testing.T) {
	sc, err := Lookup("very_hard")
	require.NoError(t, err)
	require.Equal(t, "very_hard", sc.Name)
	require.Equal(t, 0.85, sc.BudgetRatio)
	require.Equal(t, 0.90, sc.SellerFloorRatio)

	_, err = Lookup("impossible")
	require.Error(t, err)
	require.Contains(t, err.Error(), "unknown scenario")
}

func TestNamesSortedAndComplete(t *testing.T) {
	names := Names()
	require.Equal(t, []string{
		"budget_tight", "easy", "hard", "medium", "seller_strong", "very_hard",
	}, names)

	for _, name := range names {
		_, err := Lookup(name)
		require.NoError(t, err)
	}
}

func TestSessionConfigAppliesRatios(t *testing.T) {
	product := economy.Product{Name: "Alphonso Mangoes", Grade: economy.GradeA, BasePrice: 1000}

	sc, err := Lookup("seller_strong")
	require.NoError(t, err)

	cfg := sc.SessionConfig(product)
	require.InDelta(t, 1050, cfg.BuyerBudget, 1e-9)
	require.NotNil(t, cfg.SellerProfile)
	require.InDelta(t, 0.95, cfg.SellerProfile.WalkawayRatio, 1e-9)
	require.Equal(t, agents.RoleSeller, cfg.SellerProfile.Role)
}

func TestEasyScenarioEndsInDeal(t *testing.T) {
	product := economy.Product{Name: "Alphonso Mangoes", Grade: economy.GradeA, BasePrice: 1000}

	sc, err := Lookup("easy")
	require.NoError(t, err)

	s, err := engine.NewSession(sc.SessionConfig(product))
	require.NoError(t, err)

	for s.Status == engine.StatusOngoing || s.Status == engine.StatusFinalOfferIssued {
		_, err := s.NextRound(agents.ToneNeutral, agents.ToneNeutral)
		require.NoError(t, err)
	}

	require.Equal(t, engine.StatusAccepted, s.Status)
	require.GreaterOrEqual(t, s.FinalPrice, 800.0)
}
