package engine

// Outcome is how a Run or Repair action ended at the controller boundary.
type Outcome int

const (
	OutcomeSuccess Outcome = iota
	// OutcomeServiceFailure: the service answered with success=false.
	OutcomeServiceFailure
	// OutcomeTransportFailure: the request did not complete.
	OutcomeTransportFailure
	// OutcomeMalformed: the service answered with a body that failed validation.
	OutcomeMalformed
	// OutcomeBusy: another action held the gate; nothing was done.
	OutcomeBusy
	// OutcomeCancelled: the executor was shut down before the replay could start.
	OutcomeCancelled
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSuccess:
		return "success"
	case OutcomeServiceFailure:
		return "service_failure"
	case OutcomeTransportFailure:
		return "transport_failure"
	case OutcomeMalformed:
		return "malformed"
	case OutcomeBusy:
		return "busy"
	case OutcomeCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// User-facing log text.
const (
	msgRunStart        = "Running code..."
	msgRepairStart     = "Starting Autonomous Repair Loop..."
	msgConnectFailed   = "Failed to connect to backend."
	msgRepairFailed    = "Repair failed."
	msgMalformed       = "Malformed response from backend."
	msgNoPatchFound    = "No patch found for this issue."
	msgReplayCancelled = "Repair replay cancelled."
)
