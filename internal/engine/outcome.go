package engine

import "github.com/talgya/haggle/internal/agents"

// Outcome is the tagged result of a session.
//
// Accepted carries the final deal price. FinalOfferIssued carries the price
// and demand of the final offer standing on the table. WalkedAway carries
// neither. Ongoing means the session still has rounds to play.
type Outcome struct {
	Status Status        `json:"status"`
	Price  float64       `json:"price,omitempty"`
	Demand agents.Demand `json:"demand,omitempty"`
	Rounds int           `json:"rounds"`
}

// Outcome summarizes the session's current terminal (or pending) state.
func (s *Session) Outcome() Outcome {
	out := Outcome{Status: s.Status, Rounds: s.Round}

	switch s.Status {
	case StatusAccepted:
		out.Price = s.FinalPrice
		out.Demand = s.FinalDemand
	case StatusFinalOfferIssued:
		if s.sellerFinal != nil {
			out.Price = s.sellerFinal.Price
			out.Demand = s.sellerFinal.Demand
		}
	}
	return out
}

// Savings returns the discount vs. market achieved by an accepted deal, as a
// fraction of the market price. Zero unless the session was accepted.
func (s *Session) Savings() float64 {
	if s.Status != StatusAccepted || s.Market.Price <= 0 {
		return 0
	}
	return (s.Market.Price - s.FinalPrice) / s.Market.Price
}
