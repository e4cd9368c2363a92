package agent

import (
	"context"
	"fmt"
	"time"

	"computer-use-agent/internal/application/port/input"
	"computer-use-agent/internal/application/port/output"
	"computer-use-agent/internal/domain/entity"
)

var _ input.AgentRunner = (*Loop)(nil)

// strictExcludedActions are removed from the vocabulary offered to the
// reasoning service when strict safety is on.
var strictExcludedActions = []string{"key_combination", "drag_and_drop"}

// Loop drives a bounded sequence of turns: reasoning-service call, safety
// gating, intent execution, observation feedback. It owns the conversation
// state exclusively and is strictly sequential; one Loop instance owns one
// browser session.
type Loop struct {
	cfg      entity.AgentConfig
	reasoner output.ReasonerPort
	browser  output.BrowserPort
	ui       output.UserInteractionPort
	logger   output.LoggerPort

	gate     *SafetyGate
	executor *Executor
	observer *ObservationBuilder
}

func NewLoop(
	cfg entity.AgentConfig,
	reasoner output.ReasonerPort,
	browser output.BrowserPort,
	ui output.UserInteractionPort,
	logger output.LoggerPort,
) *Loop {
	return &Loop{
		cfg:      cfg,
		reasoner: reasoner,
		browser:  browser,
		ui:       ui,
		logger:   logger,
		gate:     NewSafetyGate(),
		executor: NewExecutor(browser, logger, cfg),
		observer: NewObservationBuilder(browser, logger),
	}
}

// Run executes the task until the service produces a final answer, the turn
// budget runs out, a whole turn fails, or the context is cancelled. The
// returned RunResult is always non-nil; the error is non-nil only for
// service-level faults and cancellation.
func (l *Loop) Run(ctx context.Context, task, startURL string) (*entity.RunResult, error) {
	start := time.Now()
	result := &entity.RunResult{Task: task, InitialURL: startURL}
	defer func() {
		result.Elapsed = time.Since(start)
		result.FinalURL = l.browser.CurrentURL()
	}()

	l.logger.Info("Agent run started", "task", task, "startURL", startURL, "maxTurns", l.cfg.MaxTurns)

	conv, err := l.seedConversation(ctx, task, startURL)
	if err != nil {
		result.Reason = fmt.Sprintf("initialization failed: %v", err)
		return result, err
	}

	var excluded []string
	if l.cfg.SafetyStrict {
		excluded = strictExcludedActions
	}

	for turn := 1; turn <= l.cfg.MaxTurns; turn++ {
		if err := ctx.Err(); err != nil {
			result.Reason = "cancelled: " + err.Error()
			return result, err
		}

		l.ui.ShowTurn(turn, l.cfg.MaxTurns)
		l.logger.Debug("Starting turn", "turn", turn)

		resp, err := l.generate(ctx, conv, excluded)
		if err != nil {
			result.Turns = append(result.Turns, entity.TurnSummary{
				Turn:      turn,
				Error:     err.Error(),
				Timestamp: time.Now(),
			})
			result.Reason = fmt.Sprintf("reasoning service fault: %v", err)
			l.logger.Error("Reasoning service fault, terminating run", "turn", turn, "error", err)
			return result, fmt.Errorf("reasoning service: %w", err)
		}

		if err := conv.Append(resp.Message); err != nil {
			result.Reason = fmt.Sprintf("reasoning service fault: %v", err)
			return result, fmt.Errorf("reasoning service: %w", err)
		}

		l.ui.ShowThinking(resp.Text)

		if len(resp.Intents) == 0 {
			result.Success = true
			result.FinalAnswer = resp.Text
			result.Reason = "task completed"
			l.logger.Info("Agent completed task", "turns", turn, "answer", resp.Text)
			return result, nil
		}

		results := l.dispatch(ctx, resp.Intents)

		observation := l.observer.Build(ctx, results)
		if err := conv.Append(observation); err != nil {
			result.Reason = fmt.Sprintf("conversation state fault: %v", err)
			return result, err
		}

		result.Turns = append(result.Turns, summarize(turn, results))

		if allFailed(results) {
			result.Reason = "no progress: every intent failed or was cancelled"
			l.logger.Warn("All intents in turn failed or were cancelled, terminating run", "turn", turn)
			return result, nil
		}
	}

	result.Reason = "turn budget exhausted"
	l.logger.Warn("Turn budget exhausted", "maxTurns", l.cfg.MaxTurns)
	return result, nil
}

// seedConversation performs the INIT state: optional starting navigation,
// initial screenshot, and the first user message.
func (l *Loop) seedConversation(ctx context.Context, task, startURL string) (*entity.Conversation, error) {
	if startURL != "" {
		navCtx, cancel := context.WithTimeout(ctx, l.cfg.Timeout)
		err := l.browser.Navigate(navCtx, startURL)
		cancel()
		if err != nil {
			return nil, fmt.Errorf("navigate to starting url: %w", err)
		}
	}

	parts := []entity.Part{{Text: task}}
	shot, err := l.browser.Screenshot(ctx)
	if err != nil {
		l.logger.Warn("Initial screenshot failed, seeding with task text only", "error", err)
	} else {
		parts = append(parts, entity.Part{Blob: shot.ToBlob()})
	}

	conv := entity.NewConversation()
	if err := conv.Append(entity.Message{Role: entity.RoleUser, Parts: parts}); err != nil {
		return nil, err
	}
	return conv, nil
}

func (l *Loop) generate(ctx context.Context, conv *entity.Conversation, excluded []string) (*output.GenerateResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, l.cfg.Timeout)
	defer cancel()

	return l.reasoner.Generate(ctx, output.GenerateRequest{
		Messages:        conv.Messages(),
		ExcludedActions: excluded,
		IncludeThoughts: true,
	})
}

// dispatch runs each intent in service order through the safety gate and,
// unless declined, the executor. Every intent yields exactly one result.
func (l *Loop) dispatch(ctx context.Context, intents []entity.Intent) []entity.IntentResult {
	results := make([]entity.IntentResult, 0, len(intents))

	for _, intent := range intents {
		if err := ctx.Err(); err != nil {
			results = append(results, entity.IntentResult{
				Intent:  intent,
				Outcome: entity.CancelledOutcome("run cancelled: " + err.Error()),
			})
			continue
		}

		l.ui.ShowIntent(intent)

		outcome := l.gateAndExecute(ctx, intent)
		results = append(results, entity.IntentResult{Intent: intent, Outcome: outcome})
		l.ui.ShowOutcome(intent, outcome)
	}

	return results
}

func (l *Loop) gateAndExecute(ctx context.Context, intent entity.Intent) entity.Outcome {
	required, reason := l.gate.Evaluate(intent)
	if required && l.cfg.Confirmations {
		confirmed, err := l.ui.Confirm(ctx, intent, reason)
		if err != nil {
			l.logger.Warn("Confirmation unavailable, declining intent", "intent", intent.Name, "error", err)
			return entity.CancelledOutcome(reason)
		}
		if !confirmed {
			l.logger.Info("User declined intent", "intent", intent.Name, "reason", reason)
			return entity.CancelledOutcome(reason)
		}
		intent = intent.WithArg("safety_acknowledged", "true")
	}

	return l.executor.Execute(ctx, intent)
}

func summarize(turn int, results []entity.IntentResult) entity.TurnSummary {
	summary := entity.TurnSummary{Turn: turn, Timestamp: time.Now()}
	for _, r := range results {
		summary.Intents = append(summary.Intents, r.Intent.Name)
		summary.Statuses = append(summary.Statuses, r.Outcome.Status)
	}
	return summary
}

func allFailed(results []entity.IntentResult) bool {
	for _, r := range results {
		if !r.Outcome.Failed() {
			return false
		}
	}
	return len(results) > 0
}
