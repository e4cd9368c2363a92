package entity

type OutcomeStatus string

const (
	OutcomeSuccess   OutcomeStatus = "success"
	OutcomeError     OutcomeStatus = "error"
	OutcomeCancelled OutcomeStatus = "cancelled"
)

// Outcome is the structured result of running one intent. Executor failures
// are absorbed into an error outcome so the reasoning service can observe
// them; they never unwind past the executor.
type Outcome struct {
	Status  OutcomeStatus
	Payload map[string]any
	Error   string
}

func (o Outcome) Failed() bool {
	return o.Status == OutcomeError || o.Status == OutcomeCancelled
}

func SuccessOutcome(payload map[string]any) Outcome {
	return Outcome{Status: OutcomeSuccess, Payload: payload}
}

func ErrorOutcome(err error) Outcome {
	return Outcome{Status: OutcomeError, Error: err.Error()}
}

// CancelledOutcome records a declined confirmation. The gate's reason travels
// in the payload so the service sees why nothing happened.
func CancelledOutcome(reason string) Outcome {
	return Outcome{
		Status:  OutcomeCancelled,
		Payload: map[string]any{"reason": reason},
	}
}

// IntentResult pairs a dispatched intent with its outcome for the
// observation builder. Every dispatched intent produces exactly one.
type IntentResult struct {
	Intent  Intent
	Outcome Outcome
}
