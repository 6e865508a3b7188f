package agents

import (
	"fmt"

	"github.com/talgya/haggle/internal/economy"
)

// Agent is one side of the negotiation. Both personas share this type; the
// profile carries everything that distinguishes them.
type Agent struct {
	Role    Role
	Profile Profile

	Ledger   *ConcessionLedger
	Estimate *CounterpartEstimate

	// Bound is the absolute walkaway price: the seller's floor or the
	// buyer's cap, derived from the profile ratio at session start.
	Bound float64

	// Budget is the buyer's hard spending ceiling. Defaults to the market
	// price. Ignored by the seller.
	Budget float64

	// Opening is the absolute opening price; Target drifts from it toward
	// the bound as rounds pass.
	Opening float64
	Target  float64

	// Framing is the stylistic mode adopted on the most recent offer.
	Framing Framing

	market economy.Reference
}

// New builds an agent from a profile and the session's market reference.
// A zero budget means "market price" for the buyer.
func New(profile Profile, market economy.Reference, budget float64) (*Agent, error) {
	if err := profile.Validate(); err != nil {
		return nil, fmt.Errorf("%s profile: %w", profile.Role, err)
	}

	opening := market.Price * profile.OpeningRatio
	bound := market.Price * profile.WalkawayRatio
	if budget <= 0 {
		budget = market.Price
	}

	a := &Agent{
		Role:     profile.Role,
		Profile:  profile,
		Ledger:   NewLedger(profile.Role),
		Estimate: NewEstimate(profile.Role, profile.EstimateDecay),
		Bound:    bound,
		Budget:   budget,
		Opening:  opening,
		Target:   opening,
		market:   market,
	}

	// A buyer never opens above what it can spend.
	if a.Role == RoleBuyer && a.Opening > a.spendCeiling() {
		a.Opening = a.spendCeiling()
		a.Target = a.Opening
	}
	return a, nil
}

// spendCeiling is the highest price the buyer will ever put on the table:
// the walkaway cap or the budget, whichever binds first.
func (a *Agent) spendCeiling() float64 {
	if a.Budget < a.Bound {
		return a.Budget
	}
	return a.Bound
}

// Observe records a counterpart offer into the ledger and the bound estimate.
func (a *Agent) Observe(o Offer) {
	a.Ledger.Record(o)
	a.Estimate.Observe(o.Price)
}
