package agents

import "fmt"

// Profile is the parameter set that differentiates the two negotiation
// personas. Buyer and Seller share all mechanics; only these numbers and the
// acceptance predicate direction differ.
type Profile struct {
	Role Role

	// OpeningRatio scales the market price into the opening offer.
	// Buyer default 0.75 (range 0.72–0.78); seller 1.20 (range 1.15–1.25).
	OpeningRatio float64

	// WalkawayRatio scales the market price into the agent's bound:
	// the buyer's cap (default 0.96) or the seller's floor (default 0.90).
	WalkawayRatio float64

	// SavingsThreshold is the minimum discount vs. market the buyer requires
	// before accepting (default 0.10). Unused by the seller.
	SavingsThreshold float64

	// StepRate scales the remaining gap into a concession step.
	StepRate float64

	// MinStepRatio floors the step at this fraction of market so offers keep
	// moving even when the gap is tiny.
	MinStepRatio float64

	// AccelAfterRound and AccelMult speed up concessions late in the session.
	// The seller accelerates after round 5; the buyer does not (AccelMult 1).
	AccelAfterRound int
	AccelMult       float64

	// TargetEase shapes the target anchor's drift from opening toward the
	// bound: eased progress = progress^TargetEase.
	TargetEase float64

	// EstimateDecay is the EWMA decay for the counterpart floor/cap estimate.
	EstimateDecay float64

	// ImbalanceTolRatio: reciprocity demands attach once the concession
	// imbalance exceeds this fraction of market.
	ImbalanceTolRatio float64

	// DemandPool is the ordered set of reciprocity demands for this role,
	// indexed by how many concessions the agent has already made.
	DemandPool []Demand
}

// BuyerProfile returns the tactical, reciprocity-enforcing buyer parameters.
func BuyerProfile() Profile {
	return Profile{
		Role:              RoleBuyer,
		OpeningRatio:      0.75,
		WalkawayRatio:     0.96,
		SavingsThreshold:  0.10,
		StepRate:          0.45,
		MinStepRatio:      0.01,
		AccelAfterRound:   0,
		AccelMult:         1.0,
		TargetEase:        0.9,
		EstimateDecay:     0.6,
		ImbalanceTolRatio: 0.005,
		DemandPool: []Demand{
			DemandFreeDelivery,
			DemandWarranty,
			DemandPriorityDispatch,
			DemandFasterPayment,
		},
	}
}

// SellerProfile returns the persuasive, margin-protecting seller parameters.
func SellerProfile() Profile {
	return Profile{
		Role:              RoleSeller,
		OpeningRatio:      1.20,
		WalkawayRatio:     0.90,
		StepRate:          0.35,
		MinStepRatio:      0.01,
		AccelAfterRound:   5,
		AccelMult:         1.5,
		TargetEase:        0.9,
		EstimateDecay:     0.6,
		ImbalanceTolRatio: 0.005,
		DemandPool: []Demand{
			DemandMultiOrderContract,
			DemandFasterPayment,
			DemandExclusivity,
			DemandPriorityDispatch,
		},
	}
}

// Validate checks a profile's ratios are coherent for its role.
func (p Profile) Validate() error {
	switch p.Role {
	case RoleBuyer:
		if p.OpeningRatio <= 0 || p.OpeningRatio >= 1 {
			return fmt.Errorf("buyer opening ratio %.2f must be in (0, 1)", p.OpeningRatio)
		}
		if p.WalkawayRatio <= p.OpeningRatio {
			return fmt.Errorf("buyer walkaway cap %.2f must exceed opening ratio %.2f",
				p.WalkawayRatio, p.OpeningRatio)
		}
		if p.SavingsThreshold < 0 || p.SavingsThreshold >= 1 {
			return fmt.Errorf("savings threshold %.2f must be in [0, 1)", p.SavingsThreshold)
		}
	case RoleSeller:
		if p.OpeningRatio <= 1 {
			return fmt.Errorf("seller opening ratio %.2f must exceed 1", p.OpeningRatio)
		}
		if p.WalkawayRatio <= 0 || p.WalkawayRatio >= p.OpeningRatio {
			return fmt.Errorf("seller floor ratio %.2f must be in (0, opening %.2f)",
				p.WalkawayRatio, p.OpeningRatio)
		}
	}
	if p.StepRate <= 0 || p.StepRate >= 1 {
		return fmt.Errorf("step rate %.2f must be in (0, 1)", p.StepRate)
	}
	if p.AccelMult < 1 {
		return fmt.Errorf("acceleration multiplier %.2f must be >= 1", p.AccelMult)
	}
	if len(p.DemandPool) == 0 {
		return fmt.Errorf("demand pool must not be empty")
	}
	return nil
}

// demandFor picks a reciprocity demand keyed to how many concessions the
// agent has made so far: deeper into the session, bigger asks.
func (p Profile) demandFor(concessions int) Demand {
	idx := concessions - 1
	if idx < 0 {
		idx = 0
	}
	if idx >= len(p.DemandPool) {
		idx = len(p.DemandPool) - 1
	}
	return p.DemandPool[idx]
}
