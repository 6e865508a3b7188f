// Package agents provides the negotiation agent model: roles, offers,
// concession ledgers, and the pricing and closing policies.
// Buyer and Seller are one agent type with two parameter profiles.
package agents

// Role identifies which side of the table an agent sits on.
type Role uint8

const (
	RoleBuyer  Role = 0
	RoleSeller Role = 1
)

// String returns the role name for logging and storage.
func (r Role) String() string {
	if r == RoleSeller {
		return "seller"
	}
	return "buyer"
}

// Opposite returns the counterpart role.
func (r Role) Opposite() Role {
	if r == RoleBuyer {
		return RoleSeller
	}
	return RoleBuyer
}

// Tone is the coarse signal describing the counterpart's last message.
// Supplied by the caller each round; the core never parses text.
type Tone uint8

const (
	ToneNeutral   Tone = 0
	ToneEmotional Tone = 1
	ToneLogical   Tone = 2 // cold / data-driven
)

// Framing is the stylistic mode an agent adopts for its outgoing offer.
// It shapes demand selection and message rendering only, never the price.
type Framing uint8

const (
	FramingData   Framing = 0 // calm, numbers-first
	FramingAppeal Framing = 1 // cooperative / partnership framing
)

// String returns the framing name for storage.
func (f Framing) String() string {
	if f == FramingAppeal {
		return "appeal"
	}
	return "data"
}

// Demand is a non-price reciprocity commitment requested alongside an offer.
type Demand uint8

const (
	DemandNone Demand = iota
	DemandFreeDelivery
	DemandWarranty
	DemandPriorityDispatch
	DemandFasterPayment
	DemandExclusivity
	DemandMultiOrderContract
)

var demandNames = [...]string{
	DemandNone:               "none",
	DemandFreeDelivery:       "free_delivery",
	DemandWarranty:           "warranty",
	DemandPriorityDispatch:   "priority_dispatch",
	DemandFasterPayment:      "faster_payment",
	DemandExclusivity:        "exclusivity",
	DemandMultiOrderContract: "multi_order_contract",
}

// String returns the demand name for storage.
func (d Demand) String() string {
	if int(d) < len(demandNames) {
		return demandNames[d]
	}
	return "none"
}

// Offer is a single priced proposal. Immutable once produced; appended to
// both agents' ledgers by the session orchestrator.
type Offer struct {
	Agent   Role    `json:"agent"`
	Round   int     `json:"round"`
	Price   float64 `json:"price"`
	Demand  Demand  `json:"demand"`
	Framing Framing `json:"framing"`
	Final   bool    `json:"final"` // Non-negotiable closing offer
}
