package agents

import "math"

// ProposeOffer computes the agent's next offer for the given round. The
// session orchestrator records the returned offer in both ledgers; this
// method only reads state and updates the drifting target anchor.
//
// Rounds at or past finalRound produce a final offer: the agent's best
// sustainable price with a mandatory reciprocity demand.
func (a *Agent) ProposeOffer(round, maxRounds, finalRound int, counterpartTone Tone) Offer {
	a.Framing = AdaptFraming(counterpartTone)
	a.driftTarget(round, maxRounds)

	if round >= finalRound {
		return a.finalOffer(round)
	}

	last, opened := a.Ledger.LastOwn()
	if !opened {
		return Offer{
			Agent:   a.Role,
			Round:   round,
			Price:   a.Opening,
			Demand:  DemandNone,
			Framing: a.Framing,
		}
	}

	price := a.clamp(a.nextPrice(last.Price, round))
	return Offer{
		Agent:   a.Role,
		Round:   round,
		Price:   price,
		Demand:  a.reciprocityDemand(false),
		Framing: a.Framing,
	}
}

// driftTarget moves the target anchor from the opening price toward the
// walkaway bound along an eased progress curve.
func (a *Agent) driftTarget(round, maxRounds int) {
	if maxRounds < 2 {
		return
	}
	progress := float64(round-1) / float64(maxRounds-1)
	if progress < 0 {
		progress = 0
	}
	if progress > 1 {
		progress = 1
	}
	eased := math.Pow(progress, a.Profile.TargetEase)

	bound := a.Bound
	if a.Role == RoleBuyer {
		bound = a.spendCeiling()
	}
	a.Target = a.Opening + (bound-a.Opening)*eased
}

// ConcessionStep returns the price distance the agent is willing to move for
// the given remaining gap and round: a fixed fraction of the gap, floored at
// a fraction of market so offers keep moving, with the seller's late-round
// acceleration applied. Steps are large when far from the deal and shrink as
// the gap narrows.
func (a *Agent) ConcessionStep(gap float64, round int) float64 {
	if gap <= 0 {
		return 0
	}

	rate := a.Profile.StepRate
	if a.Profile.AccelAfterRound > 0 && round > a.Profile.AccelAfterRound {
		rate *= a.Profile.AccelMult
	}

	step := gap * rate
	if min := a.market.Price * a.Profile.MinStepRatio; step < min {
		step = min
	}
	return step
}

// nextPrice moves from the last own offer toward the counterpart's last
// offer by the concession step, but never concedes past the current target
// anchor. The anchor paces the session so ground is given gradually rather
// than all at once.
func (a *Agent) nextPrice(lastOwn float64, round int) float64 {
	counter, ok := a.Ledger.LastCounterpart()
	if !ok {
		return lastOwn // nothing to react to yet
	}

	if a.Role == RoleBuyer {
		gap := counter.Price - lastOwn
		price := lastOwn + a.ConcessionStep(gap, round)
		if anchor := math.Max(a.Target, lastOwn); price > anchor {
			price = anchor
		}
		return price
	}

	gap := lastOwn - counter.Price
	price := lastOwn - a.ConcessionStep(gap, round)
	if anchor := math.Min(a.Target, lastOwn); price < anchor {
		price = anchor
	}
	return price
}

// clamp snaps a proposed price inside the agent's own bounds and keeps the
// offer sequence monotone: buyer offers never decrease, seller offers never
// increase. A proposal that would cross the walkaway bound snaps to the
// bound instead of refusing to move.
func (a *Agent) clamp(price float64) float64 {
	last, opened := a.Ledger.LastOwn()

	if a.Role == RoleBuyer {
		if ceiling := a.spendCeiling(); price > ceiling {
			price = ceiling
		}
		if opened && price < last.Price {
			price = last.Price
		}
		return price
	}

	if price < a.Bound {
		price = a.Bound
	}
	if opened && price > last.Price {
		price = last.Price
	}
	return price
}

// finalOffer emits the agent's best sustainable price (the walkaway bound
// or the drifted target, whichever favors the agent) with a mandatory
// reciprocity demand. The counterpart estimate tightens the price when it
// suggests the counterpart can meet a better one.
func (a *Agent) finalOffer(round int) Offer {
	var price float64
	if a.Role == RoleBuyer {
		price = math.Min(a.Target, a.spendCeiling())
		// Do not overshoot the modeled seller floor plus a closing margin.
		if best, ok := a.Estimate.BestSeen(); ok {
			if est := best * 0.98 * 1.10; est < price {
				price = est
			}
		}
	} else {
		price = math.Max(a.Target, a.Bound)
		// Hold out for the modeled buyer cap when it is higher.
		if best, ok := a.Estimate.BestSeen(); ok {
			if est := best * 1.02; est > price {
				price = est
			}
		}
	}

	return Offer{
		Agent:   a.Role,
		Round:   round,
		Price:   a.clamp(price),
		Demand:  a.reciprocityDemand(true),
		Framing: a.Framing,
		Final:   true,
	}
}

// reciprocityDemand returns a non-price demand when this agent has conceded
// more than the counterpart beyond tolerance, or always on a final offer.
func (a *Agent) reciprocityDemand(final bool) Demand {
	tol := a.market.Price * a.Profile.ImbalanceTolRatio
	if !final && a.Ledger.Imbalance() <= tol {
		return DemandNone
	}
	return a.Profile.demandFor(a.Ledger.OwnMoves())
}
