package cost

// DefaultThresholdCents is the cost boundary above which the gate asks for
// explicit confirmation.
const DefaultThresholdCents = 5.0

// Decision is the gate's verdict for an estimated invocation.
type Decision int

const (
	Proceed Decision = iota
	PromptUser
	Abort
)

func (d Decision) String() string {
	switch d {
	case Proceed:
		return "proceed"
	case PromptUser:
		return "prompt"
	case Abort:
		return "abort"
	default:
		return "unknown"
	}
}

// Decide maps an estimate to a gate decision. Dry runs always abort so the
// paid collaborator is never reached; force always proceeds; otherwise the
// estimate is compared against the threshold. Pure: the interactive prompt
// implied by PromptUser is the orchestrator's side effect.
func Decide(est Estimate, thresholdCents float64, force, dryRun bool) Decision {
	if dryRun {
		return Abort
	}
	if force {
		return Proceed
	}
	if est.CostCents <= thresholdCents {
		return Proceed
	}
	return PromptUser
}
