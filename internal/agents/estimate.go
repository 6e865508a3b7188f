package agents

// CounterpartEstimate maintains a rough model of the counterpart's hidden
// bound: the seller's floor as seen by the buyer, or the buyer's cap as seen
// by the seller. Updated as an exponentially-weighted moving average of a
// fixed fraction of each observed price.
type CounterpartEstimate struct {
	role     Role // role of the estimating agent
	decay    float64
	bestSeen float64 // lowest seller price seen / highest buyer price seen
	estimate float64
	observed bool
}

// NewEstimate creates an estimate tracker for the given observing role.
func NewEstimate(role Role, decay float64) *CounterpartEstimate {
	return &CounterpartEstimate{role: role, decay: decay}
}

// Observe folds a counterpart price into the estimate.
func (e *CounterpartEstimate) Observe(price float64) {
	var rough float64
	if e.role == RoleBuyer {
		// Seller floors usually sit well under the asking price.
		rough = price * 0.85
	} else {
		// Buyer caps usually sit somewhat above the bid.
		rough = price * 1.10
	}

	if !e.observed {
		e.bestSeen = price
		e.estimate = rough
		e.observed = true
		return
	}

	if e.role == RoleBuyer && price < e.bestSeen {
		e.bestSeen = price
	}
	if e.role == RoleSeller && price > e.bestSeen {
		e.bestSeen = price
	}
	e.estimate = e.decay*e.estimate + (1-e.decay)*rough
}

// Estimate returns the modeled counterpart bound, or false before any observation.
func (e *CounterpartEstimate) Estimate() (float64, bool) {
	return e.estimate, e.observed
}

// BestSeen returns the most favorable counterpart price observed so far,
// or false before any observation.
func (e *CounterpartEstimate) BestSeen() (float64, bool) {
	return e.bestSeen, e.observed
}
