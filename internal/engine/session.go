// Package engine orchestrates the negotiation: it owns the session state,
// drives the alternating rounds, applies both agents' pricing and closing
// policies, and produces the outcome. All state mutation happens here; the
// agents only read and propose, which keeps every round deterministic and
// replayable.
package engine

import (
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/talgya/haggle/internal/agents"
	"github.com/talgya/haggle/internal/economy"
)

// Status is the session lifecycle state. Every state except Ongoing and
// FinalOfferIssued is terminal; FinalOfferIssued resolves to Accepted or
// WalkedAway on the next round call.
type Status uint8

const (
	StatusOngoing Status = iota
	StatusAccepted
	StatusFinalOfferIssued
	StatusWalkedAway
)

var statusNames = [...]string{"ongoing", "accepted", "final_offer_issued", "walked_away"}

// String returns the status name for logging and storage.
func (s Status) String() string {
	if int(s) < len(statusNames) {
		return statusNames[s]
	}
	return "unknown"
}

// Config describes a session to create. Zero values take the defaults the
// two persona profiles carry.
type Config struct {
	Product economy.Product

	// BuyerBudget caps the buyer's spending; zero means the market price.
	BuyerBudget float64

	// MaxRounds defaults to 10; FinalOfferRound defaults to MaxRounds-1.
	MaxRounds       int
	FinalOfferRound int

	// Profile overrides, nil for the role defaults.
	BuyerProfile  *agents.Profile
	SellerProfile *agents.Profile
}

// Event is a notable occurrence during the session.
type Event struct {
	Round       int    `json:"round" db:"round"`
	Description string `json:"description" db:"description"`
	Category    string `json:"category" db:"category"` // "offer", "acceptance", "final_offer", "walkaway"
}

// Session holds the complete negotiation state for one product between one
// buyer and one seller. Strictly turn-based: exactly one offer per agent per
// round, buyer first, fixed for the session lifetime.
type Session struct {
	ID      uuid.UUID
	Product economy.Product
	Market  economy.Reference

	Buyer  *agents.Agent
	Seller *agents.Agent

	Round           int // next round to play, starts at 1
	MaxRounds       int
	FinalOfferRound int

	Status      Status
	FinalPrice  float64       // set once Accepted
	FinalDemand agents.Demand // demand attached to the standing final offer

	Events []Event

	// Final offers on the table once StatusFinalOfferIssued.
	buyerFinal  *agents.Offer
	sellerFinal *agents.Offer
}

// RoundResult is what one NextRound call produced. Offers are nil on the
// phases that produced none (acceptance, final-offer resolution).
type RoundResult struct {
	Round       int
	BuyerOffer  *agents.Offer
	SellerOffer *agents.Offer
	Status      Status
}

// NewSession validates the market reference and builds both agents.
func NewSession(cfg Config) (*Session, error) {
	market, err := cfg.Product.Reference()
	if err != nil {
		return nil, err
	}

	buyerProfile := agents.BuyerProfile()
	if cfg.BuyerProfile != nil {
		buyerProfile = *cfg.BuyerProfile
	}
	sellerProfile := agents.SellerProfile()
	if cfg.SellerProfile != nil {
		sellerProfile = *cfg.SellerProfile
	}

	buyer, err := agents.New(buyerProfile, market, cfg.BuyerBudget)
	if err != nil {
		return nil, fmt.Errorf("build buyer: %w", err)
	}
	seller, err := agents.New(sellerProfile, market, 0)
	if err != nil {
		return nil, fmt.Errorf("build seller: %w", err)
	}

	maxRounds := cfg.MaxRounds
	if maxRounds <= 0 {
		maxRounds = 10
	}
	finalRound := cfg.FinalOfferRound
	if finalRound <= 0 {
		finalRound = maxRounds - 1
	}

	return &Session{
		ID:              uuid.New(),
		Product:         cfg.Product,
		Market:          market,
		Buyer:           buyer,
		Seller:          seller,
		Round:           1,
		MaxRounds:       maxRounds,
		FinalOfferRound: finalRound,
	}, nil
}

// NextRound advances the negotiation by one round: the buyer evaluates the
// seller's standing offer and accepts or counters, then the seller does the
// same against the buyer's fresh offer. The supplied tones describe each
// agent's own latest message and are consumed by the counterpart's tone
// adapter; they never touch the price math.
//
// On a FinalOfferIssued session the call performs the binary accept/walkaway
// resolution instead. On Accepted or WalkedAway it returns ErrSessionTerminal.
func (s *Session) NextRound(buyerTone, sellerTone agents.Tone) (RoundResult, error) {
	switch s.Status {
	case StatusAccepted, StatusWalkedAway:
		return RoundResult{Status: s.Status}, fmt.Errorf("%w: %s", ErrSessionTerminal, s.Status)
	case StatusFinalOfferIssued:
		return s.resolveFinalOffers()
	}
	if s.Round > s.MaxRounds {
		return RoundResult{Status: s.Status}, fmt.Errorf("%w: round %d exceeds limit %d",
			ErrInvalidRound, s.Round, s.MaxRounds)
	}

	round := s.Round
	result := RoundResult{Round: round}

	// Buyer phase: respond to the seller's standing offer, if any.
	if standing, ok := s.Buyer.Ledger.LastCounterpart(); ok && s.Buyer.Accepts(standing) {
		s.accept(standing, s.Buyer.Role)
		result.Status = s.Status
		return result, nil
	}
	buyerOffer := s.Buyer.ProposeOffer(round, s.MaxRounds, s.FinalOfferRound, sellerTone)
	s.recordOffer(buyerOffer)
	result.BuyerOffer = &buyerOffer

	// Seller phase: respond to the fresh buyer offer.
	if s.Seller.Accepts(buyerOffer) {
		s.accept(buyerOffer, s.Seller.Role)
		result.Status = s.Status
		return result, nil
	}
	sellerOffer := s.Seller.ProposeOffer(round, s.MaxRounds, s.FinalOfferRound, buyerTone)
	s.recordOffer(sellerOffer)
	result.SellerOffer = &sellerOffer

	if round >= s.FinalOfferRound {
		s.buyerFinal = &buyerOffer
		s.sellerFinal = &sellerOffer
		s.FinalDemand = sellerOffer.Demand
		s.Status = StatusFinalOfferIssued
		s.record(round, "final_offer", fmt.Sprintf(
			"final offers on the table: buyer %.2f (%s), seller %.2f (%s)",
			buyerOffer.Price, buyerOffer.Demand, sellerOffer.Price, sellerOffer.Demand))
		slog.Info("final offers issued",
			"session", s.ID,
			"round", round,
			"buyer_price", buyerOffer.Price,
			"seller_price", sellerOffer.Price,
			"seller_demand", sellerOffer.Demand.String(),
		)
	}

	attrs := []any{
		"session", s.ID,
		"round", round,
		"buyer_price", buyerOffer.Price,
		"seller_price", sellerOffer.Price,
		"status", s.Status.String(),
	}
	if est, ok := s.Buyer.Estimate.Estimate(); ok {
		attrs = append(attrs, "modeled_seller_floor", est)
	}
	if est, ok := s.Seller.Estimate.Estimate(); ok {
		attrs = append(attrs, "modeled_buyer_cap", est)
	}
	slog.Debug("round complete", attrs...)

	s.Round++
	result.Status = s.Status
	return result, nil
}

// resolveFinalOffers applies the binary accept/walkaway response to the
// standing final offers. Accepting is only possible without crossing the
// responder's own walkaway bound; otherwise the session ends with no deal.
func (s *Session) resolveFinalOffers() (RoundResult, error) {
	result := RoundResult{Round: s.Round}

	switch {
	case s.sellerFinal != nil && s.Buyer.AcceptsFinal(*s.sellerFinal):
		s.accept(*s.sellerFinal, s.Buyer.Role)
	case s.buyerFinal != nil && s.Seller.AcceptsFinal(*s.buyerFinal):
		s.accept(*s.buyerFinal, s.Seller.Role)
	default:
		s.Status = StatusWalkedAway
		s.record(s.Round, "walkaway", "final offers rejected on both sides, no deal")
		slog.Info("walked away", "session", s.ID, "round", s.Round)
	}

	result.Status = s.Status
	return result, nil
}

// accept finalizes the session at the given offer's price.
func (s *Session) accept(o agents.Offer, by agents.Role) {
	s.Status = StatusAccepted
	s.FinalPrice = o.Price
	s.FinalDemand = o.Demand
	s.record(s.Round, "acceptance", fmt.Sprintf("%s accepted %.2f offered by %s", by, o.Price, o.Agent))
	slog.Info("deal accepted",
		"session", s.ID,
		"round", s.Round,
		"accepted_by", by.String(),
		"price", o.Price,
		"discount_vs_market", fmt.Sprintf("%.1f%%", (s.Market.Price-o.Price)/s.Market.Price*100),
	)
}

// recordOffer appends an offer to both agents' ledgers and the event log.
// The proposer records it as its own; the counterpart observes it, which
// also feeds the bound estimate.
func (s *Session) recordOffer(o agents.Offer) {
	if o.Agent == agents.RoleBuyer {
		s.Buyer.Ledger.Record(o)
		s.Seller.Observe(o)
	} else {
		s.Seller.Ledger.Record(o)
		s.Buyer.Observe(o)
	}
	s.record(o.Round, "offer", fmt.Sprintf("%s offered %.2f (demand: %s)", o.Agent, o.Price, o.Demand))
}

func (s *Session) record(round int, category, description string) {
	s.Events = append(s.Events, Event{Round: round, Description: description, Category: category})
}

// OfferHistory returns every offer made so far in play order: ascending
// rounds, buyer before seller within a round.
func (s *Session) OfferHistory() []agents.Offer {
	buyer := s.Buyer.Ledger.OwnHistory()
	seller := s.Seller.Ledger.OwnHistory()

	offers := make([]agents.Offer, 0, len(buyer)+len(seller))
	for len(buyer) > 0 || len(seller) > 0 {
		switch {
		case len(seller) == 0, len(buyer) > 0 && buyer[0].Round <= seller[0].Round:
			offers = append(offers, buyer[0])
			buyer = buyer[1:]
		default:
			offers = append(offers, seller[0])
			seller = seller[1:]
		}
	}
	return offers
}
