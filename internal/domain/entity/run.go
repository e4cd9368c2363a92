package entity

import "time"

// TurnSummary is the per-turn record kept on the run result.
type TurnSummary struct {
	Turn      int
	Intents   []string
	Statuses  []OutcomeStatus
	Error     string
	Timestamp time.Time
}

// RunResult is the terminal record of one agent run. It is created at loop
// start, mutated once per turn, and never reused across runs.
type RunResult struct {
	Task        string
	InitialURL  string
	Success     bool
	Reason      string
	FinalAnswer string
	FinalURL    string
	Turns       []TurnSummary
	Elapsed     time.Duration
}
