package agents

// Accepts reports whether the agent takes the counterpart's offer as-is.
//
// The buyer accepts when the price fits the budget and delivers at least the
// configured discount vs. market. The seller accepts any price at or above
// its walkaway floor.
func (a *Agent) Accepts(counter Offer) bool {
	if a.Role == RoleBuyer {
		if counter.Price > a.Budget {
			return false
		}
		discount := (a.market.Price - counter.Price) / a.market.Price
		return discount >= a.Profile.SavingsThreshold
	}
	return counter.Price >= a.Bound
}

// AcceptsFinal is the binary response to a counterpart's final offer: take
// it if doing so does not cross this agent's own walkaway bound, otherwise
// walk away. No further counter is possible at this point.
func (a *Agent) AcceptsFinal(counter Offer) bool {
	if a.Role == RoleBuyer {
		return counter.Price <= a.spendCeiling()
	}
	return counter.Price >= a.Bound
}
