package agents

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/talgya/haggle/internal/economy"
)

func mustRef(t *testing.T, price float64) economy.Reference {
	t.Helper()
	ref, err := economy.NewReference(price)
	require.NoError(t, err)
	return ref
}

func newBuyer(t *testing.T, market float64, budget float64) *Agent {
	t.Helper()
	a, err := New(BuyerProfile(), mustRef(t, market), budget)
	require.NoError(t, err)
	return a
}

func newSeller(t *testing.T, market float64) *Agent {
	t.Helper()
	a, err := New(SellerProfile(), mustRef(t, market), 0)
	require.NoError(t, err)
	return a
}

func TestOpeningOffers(t *testing.T) {
	buyer := newBuyer(t, 1000, 0)
	seller := newSeller(t, 1000)

	bo := buyer.ProposeOffer(1, 10, 9, ToneNeutral)
	require.InDelta(t, 750, bo.Price, 1e-9)
	require.Equal(t, DemandNone, bo.Demand)
	require.False(t, bo.Final)

	so := seller.ProposeOffer(1, 10, 9, ToneNeutral)
	require.InDelta(t, 1200, so.Price, 1e-9)
}

func TestBuyerOpeningRespectsBudget(t *testing.T) {
	buyer := newBuyer(t, 1000, 700)
	bo := buyer.ProposeOffer(1, 10, 9, ToneNeutral)
	require.LessOrEqual(t, bo.Price, 700.0)
}

func TestConcessionStepGapProportional(t *testing.T) {
	buyer := newBuyer(t, 1000, 0)

	wide := buyer.ConcessionStep(400, 2)
	narrow := buyer.ConcessionStep(50, 2)
	require.Greater(t, wide, narrow, "larger gap must produce a larger step")

	// Steps never fall below the minimum market fraction.
	tiny := buyer.ConcessionStep(1, 2)
	require.InDelta(t, 1000*buyer.Profile.MinStepRatio, tiny, 1e-9)

	// Closed gap means no movement.
	require.Zero(t, buyer.ConcessionStep(0, 2))
	require.Zero(t, buyer.ConcessionStep(-10, 2))
}

func TestSellerStepAcceleratesAfterRound5(t *testing.T) {
	seller := newSeller(t, 1000)

	before := seller.ConcessionStep(200, 5)
	after := seller.ConcessionStep(200, 6)
	require.InDelta(t, before*seller.Profile.AccelMult, after, 1e-9)

	// The buyer's step is round-independent.
	buyer := newBuyer(t, 1000, 0)
	require.Equal(t, buyer.ConcessionStep(200, 2), buyer.ConcessionStep(200, 8))
}

func TestClampSnapsToBound(t *testing.T) {
	buyer := newBuyer(t, 1000, 0)
	require.InDelta(t, 960, buyer.clamp(2000), 1e-9, "buyer cap is 0.96 x market")

	seller := newSeller(t, 1000)
	require.InDelta(t, 900, seller.clamp(100), 1e-9, "seller floor is 0.90 x market")
}

func TestOfferSequencesAreMonotone(t *testing.T) {
	buyer := newBuyer(t, 1000, 0)
	seller := newSeller(t, 1000)

	var lastBuyer, lastSeller float64
	for round := 1; round <= 10; round++ {
		bo := buyer.ProposeOffer(round, 10, 9, ToneNeutral)
		buyer.Ledger.Record(bo)
		seller.Observe(bo)

		so := seller.ProposeOffer(round, 10, 9, ToneNeutral)
		seller.Ledger.Record(so)
		buyer.Observe(so)

		if round > 1 {
			require.GreaterOrEqual(t, bo.Price, lastBuyer, "buyer offers never decrease")
			require.LessOrEqual(t, so.Price, lastSeller, "seller offers never increase")
		}
		require.LessOrEqual(t, bo.Price, 960.0)
		require.GreaterOrEqual(t, so.Price, 900.0)

		lastBuyer, lastSeller = bo.Price, so.Price
	}
}

func TestFinalOfferCarriesMandatoryDemand(t *testing.T) {
	buyer := newBuyer(t, 1000, 0)
	seller := newSeller(t, 1000)

	// Play a few rounds so final offers have history behind them.
	for round := 1; round <= 8; round++ {
		bo := buyer.ProposeOffer(round, 10, 9, ToneNeutral)
		buyer.Ledger.Record(bo)
		seller.Observe(bo)
		so := seller.ProposeOffer(round, 10, 9, ToneNeutral)
		seller.Ledger.Record(so)
		buyer.Observe(so)
	}

	bf := buyer.ProposeOffer(9, 10, 9, ToneNeutral)
	require.True(t, bf.Final)
	require.NotEqual(t, DemandNone, bf.Demand)
	require.LessOrEqual(t, bf.Price, 960.0)

	sf := seller.ProposeOffer(9, 10, 9, ToneNeutral)
	require.True(t, sf.Final)
	require.NotEqual(t, DemandNone, sf.Demand)
	require.GreaterOrEqual(t, sf.Price, 900.0)
}

func TestReciprocityDemandOnImbalance(t *testing.T) {
	buyer := newBuyer(t, 1000, 0)

	// Buyer has conceded 100; the seller has not moved at all.
	buyer.Ledger.Record(Offer{Agent: RoleBuyer, Round: 1, Price: 750})
	buyer.Observe(Offer{Agent: RoleSeller, Round: 1, Price: 1200})
	buyer.Ledger.Record(Offer{Agent: RoleBuyer, Round: 2, Price: 850})
	buyer.Observe(Offer{Agent: RoleSeller, Round: 2, Price: 1200})

	require.Positive(t, buyer.Ledger.Imbalance())
	o := buyer.ProposeOffer(3, 10, 9, ToneNeutral)
	require.NotEqual(t, DemandNone, o.Demand,
		"an agent that has conceded more must demand reciprocity")
}

func TestBalancedLedgerCarriesNoDemand(t *testing.T) {
	buyer := newBuyer(t, 1000, 0)

	buyer.Ledger.Record(Offer{Agent: RoleBuyer, Round: 1, Price: 750})
	buyer.Observe(Offer{Agent: RoleSeller, Round: 1, Price: 1200})
	buyer.Ledger.Record(Offer{Agent: RoleBuyer, Round: 2, Price: 800})
	buyer.Observe(Offer{Agent: RoleSeller, Round: 2, Price: 1150})

	require.Zero(t, buyer.Ledger.Imbalance())
	o := buyer.ProposeOffer(3, 10, 9, ToneNeutral)
	require.Equal(t, DemandNone, o.Demand)
}

func TestToneNeverChangesThePrice(t *testing.T) {
	run := func(tones []Tone) []float64 {
		buyer := newBuyer(t, 1000, 0)
		seller := newSeller(t, 1000)
		var prices []float64
		for round := 1; round <= 8; round++ {
			tone := tones[(round-1)%len(tones)]
			bo := buyer.ProposeOffer(round, 10, 9, tone)
			buyer.Ledger.Record(bo)
			seller.Observe(bo)
			so := seller.ProposeOffer(round, 10, 9, tone)
			seller.Ledger.Record(so)
			buyer.Observe(so)
			prices = append(prices, bo.Price, so.Price)
		}
		return prices
	}

	steady := run([]Tone{ToneLogical})
	flipped := run([]Tone{ToneLogical, ToneLogical, ToneLogical, ToneEmotional})
	require.Equal(t, steady, flipped, "tone affects framing only, never the price math")
}

func TestToneChangesFraming(t *testing.T) {
	buyer := newBuyer(t, 1000, 0)

	o := buyer.ProposeOffer(1, 10, 9, ToneLogical)
	require.Equal(t, FramingAppeal, o.Framing)

	buyer.Ledger.Record(o)
	buyer.Observe(Offer{Agent: RoleSeller, Round: 1, Price: 1200})

	o = buyer.ProposeOffer(2, 10, 9, ToneEmotional)
	require.Equal(t, FramingData, o.Framing, "an emotional counterpart is met with data-first framing")
}
