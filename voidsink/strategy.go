package voidsink

// Strategy selects the disposition behavior for an event payload. The set
// is closed: dispatch is an exhaustive switch, not open subclassing.
type Strategy int

const (
	// StrategyDiscard passes the payload straight to the null sink
	StrategyDiscard Strategy = iota
	// StrategyEncodeAndDiscard extracts a feature summary before discarding
	StrategyEncodeAndDiscard
	// StrategyBackground defers the payload to background handling
	StrategyBackground
	// StrategyImmuneAuto discards automatically under immune suppression
	StrategyImmuneAuto
	// StrategyTraumaShield shields the payload from further processing
	StrategyTraumaShield
	// StrategySignalExtract extracts the signal before discarding the noise
	StrategySignalExtract
)

// String returns the lowercase strategy name.
func (s Strategy) String() string {
	switch s {
	case StrategyDiscard:
		return "discard"
	case StrategyEncodeAndDiscard:
		return "encode_and_discard"
	case StrategyBackground:
		return "background"
	case StrategyImmuneAuto:
		return "immune_auto"
	case StrategyTraumaShield:
		return "trauma_shield"
	case StrategySignalExtract:
		return "signal_extract"
	default:
		return "unknown"
	}
}
