package agents

// AdaptFraming maps the counterpart's tone signal to the framing mode for the
// next outgoing offer. An emotional counterpart is met with calm, data-first
// framing; a cold, logical counterpart gets a cooperative appeal instead.
// This affects demand phrasing and message rendering only; the pricing math
// never reads it.
func AdaptFraming(counterpartTone Tone) Framing {
	switch counterpartTone {
	case ToneLogical:
		return FramingAppeal
	default: // neutral, emotional
		return FramingData
	}
}
