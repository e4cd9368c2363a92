package agent

import (
	"encoding/json"
	"fmt"
	"strings"

	"computer-use-agent/internal/domain/entity"
)

// highRiskTerms is the fixed vocabulary of terms that flag an intent for
// confirmation when they appear in its name or arguments.
var highRiskTerms = []string{
	"password", "credit card", "bank", "financial", "money",
	"delete", "remove", "install", "download", "file",
}

// SafetyGate decides whether an intent needs explicit user confirmation
// before execution. Evaluation is pure inspection with no side effects.
type SafetyGate struct {
	terms []string
}

func NewSafetyGate() *SafetyGate {
	return &SafetyGate{terms: highRiskTerms}
}

// Evaluate applies the decision order: explicit service risk metadata first,
// then high-risk terms in the intent name, then in the serialized argument
// values. First match wins.
func (g *SafetyGate) Evaluate(intent entity.Intent) (bool, string) {
	if intent.RequiresConfirmation() {
		reason := intent.Safety.Explanation
		if reason == "" {
			reason = "action requires confirmation"
		}
		return true, reason
	}

	name := strings.ToLower(intent.Name)
	for _, term := range g.terms {
		if strings.Contains(name, term) {
			return true, fmt.Sprintf("action %q involves high-risk operations", intent.Name)
		}
	}

	args := strings.ToLower(serializeArgs(intent.Args))
	for _, term := range g.terms {
		if strings.Contains(args, term) {
			return true, "action involves sensitive data or operations"
		}
	}

	return false, ""
}

func serializeArgs(args map[string]any) string {
	if len(args) == 0 {
		return ""
	}
	data, err := json.Marshal(args)
	if err != nil {
		return fmt.Sprint(args)
	}
	return string(data)
}
