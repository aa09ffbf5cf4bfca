// Theory configuration. These are plain values read once at theory
// construction; the CLI/option layer that produces them is outside this
// package.
package strtheory

// LengthMode controls whether length reasoning participates in the
// theory.
type LengthMode int

const (
	// LengthAuto engages length reasoning on demand, when length atoms
	// actually occur. For support classification it counts as enabled.
	LengthAuto LengthMode = iota
	// LengthOn always engages length reasoning.
	LengthOn
	// LengthOff disables length reasoning; length atoms become
	// unsupported and downgrade completeness.
	LengthOff
)

// String returns a human-readable mode name.
func (m LengthMode) String() string {
	switch m {
	case LengthAuto:
		return "auto"
	case LengthOn:
		return "on"
	case LengthOff:
		return "off"
	default:
		return "unknown"
	}
}

// Enabled reports whether length reasoning participates under this mode.
func (m LengthMode) Enabled() bool { return m != LengthOff }

// Config carries the three independent theory toggles. A Config is read
// once at theory construction and never consulted again.
type Config struct {
	// EagerAutomata forces operator materialization (including
	// transducer compilation) at theory construction rather than on the
	// first decision, surfacing compilation failures early.
	EagerAutomata bool

	// Length selects the length-reasoning mode.
	Length LengthMode

	// ForwardApprox permits forward-approximating searchers to choose
	// witness words when propagation alone does not determine a model.
	ForwardApprox bool
}

// DefaultConfig returns the default theory configuration: lazy automata
// evaluation, automatic length reasoning, forward approximation on.
func DefaultConfig() Config {
	return Config{
		EagerAutomata: false,
		Length:        LengthAuto,
		ForwardApprox: true,
	}
}
