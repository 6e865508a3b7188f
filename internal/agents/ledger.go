package agents

import "math"

// ConcessionLedger is an agent's running record of offer history and
// cumulative concessions. Each agent owns one; only the session orchestrator
// mutates it, by recording offers as they are produced.
type ConcessionLedger struct {
	owner            Role
	ownOffers        []Offer
	counterpartOffer []Offer

	cumulativeOwn         float64
	cumulativeCounterpart float64
}

// NewLedger creates an empty ledger owned by the given role.
func NewLedger(owner Role) *ConcessionLedger {
	return &ConcessionLedger{owner: owner}
}

// Record appends an offer to the matching side and adds the absolute price
// delta from the previous same-side offer to the cumulative total. Any finite
// positive price is accepted here; business bounds are the pricing policy's job.
func (l *ConcessionLedger) Record(o Offer) {
	if o.Agent == l.owner {
		if n := len(l.ownOffers); n > 0 {
			l.cumulativeOwn += math.Abs(o.Price - l.ownOffers[n-1].Price)
		}
		l.ownOffers = append(l.ownOffers, o)
		return
	}
	if n := len(l.counterpartOffer); n > 0 {
		l.cumulativeCounterpart += math.Abs(o.Price - l.counterpartOffer[n-1].Price)
	}
	l.counterpartOffer = append(l.counterpartOffer, o)
}

// Imbalance returns cumulative own concession minus cumulative counterpart
// concession. Positive means this agent has given more ground than the
// counterpart, which triggers a reciprocity demand on the next offer.
func (l *ConcessionLedger) Imbalance() float64 {
	return l.cumulativeOwn - l.cumulativeCounterpart
}

// OwnConcession returns the cumulative distance this agent's offers have moved.
func (l *ConcessionLedger) OwnConcession() float64 { return l.cumulativeOwn }

// CounterpartConcession returns the cumulative distance the counterpart's
// offers have moved.
func (l *ConcessionLedger) CounterpartConcession() float64 { return l.cumulativeCounterpart }

// LastOwn returns the agent's most recent offer, or false if none yet.
func (l *ConcessionLedger) LastOwn() (Offer, bool) {
	if len(l.ownOffers) == 0 {
		return Offer{}, false
	}
	return l.ownOffers[len(l.ownOffers)-1], true
}

// LastCounterpart returns the counterpart's most recent offer, or false if none yet.
func (l *ConcessionLedger) LastCounterpart() (Offer, bool) {
	if len(l.counterpartOffer) == 0 {
		return Offer{}, false
	}
	return l.counterpartOffer[len(l.counterpartOffer)-1], true
}

// OwnMoves returns how many offers this agent has made.
func (l *ConcessionLedger) OwnMoves() int { return len(l.ownOffers) }

// CounterpartMoves returns how many offers the counterpart has made.
func (l *ConcessionLedger) CounterpartMoves() int { return len(l.counterpartOffer) }

// OwnHistory returns a copy of the agent's offer sequence, oldest first.
func (l *ConcessionLedger) OwnHistory() []Offer {
	out := make([]Offer, len(l.ownOffers))
	copy(out, l.ownOffers)
	return out
}

// CounterpartHistory returns a copy of the counterpart's offer sequence.
func (l *ConcessionLedger) CounterpartHistory() []Offer {
	out := make([]Offer, len(l.counterpartOffer))
	copy(out, l.counterpartOffer)
	return out
}
