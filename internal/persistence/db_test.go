package persistence

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/talgya/haggle/internal/agents"
	"github.com/talgya/haggle/internal/economy"
	"github.com/talgya/haggle/internal/engine"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "haggle.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func playedSession(t *testing.T, budget float64) *engine.Session {
	t.Helper()
	s, err := engine.NewSession(engine.Config{
		Product: economy.Product{
			Name:      "Alphonso Mangoes",
			Category:  "Mangoes",
			Quantity:  100,
			Grade:     economy.GradeA,
			Origin:    "Ratnagiri",
			BasePrice: 1000,
		},
		BuyerBudget: budget,
	})
	require.NoError(t, err)
	for s.Status == engine.StatusOngoing || s.Status == engine.StatusFinalOfferIssued {
		_, err := s.NextRound(agents.ToneNeutral, agents.ToneNeutral)
		require.NoError(t, err)
	}
	return s
}

func TestSaveAndLoadSession(t *testing.T) {
	db := openTestDB(t)
	s := playedSession(t, 0)

	require.NoError(t, db.SaveSession(s))

	rows, err := db.RecentSessions(10)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, s.ID.String(), rows[0].ID)
	require.Equal(t, "Alphonso Mangoes", rows[0].Product)
	require.Equal(t, s.Status.String(), rows[0].Status)
	require.InDelta(t, s.FinalPrice, rows[0].FinalPrice, 1e-9)
}

func TestSaveSessionIsIdempotent(t *testing.T) {
	db := openTestDB(t)
	s := playedSession(t, 0)

	require.NoError(t, db.SaveSession(s))
	require.NoError(t, db.SaveSession(s))

	rows, err := db.RecentSessions(10)
	require.NoError(t, err)
	require.Len(t, rows, 1)

	offers, err := db.SessionOffers(s.ID.String())
	require.NoError(t, err)
	require.Len(t, offers, len(s.OfferHistory()))
}

func TestStoredOffersReplayToSameConcessionTotals(t *testing.T) {
	db := openTestDB(t)
	s := playedSession(t, 860)
	require.NoError(t, db.SaveSession(s))

	stored, err := db.SessionOffers(s.ID.String())
	require.NoError(t, err)
	require.Equal(t, s.OfferHistory(), stored)

	buyer := agents.NewLedger(agents.RoleBuyer)
	seller := agents.NewLedger(agents.RoleSeller)
	for _, o := range stored {
		buyer.Record(o)
		seller.Record(o)
	}

	require.InDelta(t, s.Buyer.Ledger.OwnConcession(), buyer.OwnConcession(), 1e-9)
	require.InDelta(t, s.Seller.Ledger.OwnConcession(), seller.OwnConcession(), 1e-9)
	require.InDelta(t, s.Buyer.Ledger.Imbalance(), buyer.Imbalance(), 1e-9)
}

func TestSessionEvents(t *testing.T) {
	db := openTestDB(t)
	s := playedSession(t, 0)
	require.NoError(t, db.SaveSession(s))

	events, err := db.SessionEvents(s.ID.String())
	require.NoError(t, err)
	require.Equal(t, s.Events, events)
}

func TestRecentSessionsOrdering(t *testing.T) {
	db := openTestDB(t)

	first := playedSession(t, 0)
	second := playedSession(t, 860)
	require.NoError(t, db.SaveSession(first))
	require.NoError(t, db.SaveSession(second))

	rows, err := db.RecentSessions(1)
	require.NoError(t, err)
	require.Len(t, rows, 1)
}
