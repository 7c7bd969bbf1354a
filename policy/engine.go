// Package policy decides the escalation verdict for a completion outcome.
// The decision table lives in a Rego policy evaluated by OPA so the product
// rules (trigger phrase, suggested actions) can change without touching the
// orchestration code.
package policy

import (
	"context"
	"fmt"

	"github.com/open-policy-agent/opa/v1/rego"
)

// Input describes one completion outcome. Exactly one of the three cases
// applies: not configured, call failed, or a reply was produced.
type Input struct {
	Configured bool
	CallFailed bool
	Reply      string
}

// Decision is the escalation verdict with the next actions to suggest.
type Decision struct {
	Escalate         bool
	SuggestedActions []string
}

// Engine is the OPA policy engine.
type Engine struct {
	query rego.PreparedEvalQuery
}

// NewEngine creates a new policy engine with the given policy content.
func NewEngine(ctx context.Context, policyContent string) (*Engine, error) {
	r := rego.New(
		rego.Query("data.escalation.decision"),
		rego.Module("escalation.rego", policyContent),
	)

	query, err := r.PrepareForEval(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare rego: %w", err)
	}

	return &Engine{query: query}, nil
}

// Evaluate runs the escalation policy over a completion outcome.
func (e *Engine) Evaluate(ctx context.Context, input Input) (Decision, error) {
	results, err := e.query.Eval(ctx, rego.EvalInput(map[string]interface{}{
		"configured":  input.Configured,
		"call_failed": input.CallFailed,
		"reply":       input.Reply,
	}))
	if err != nil {
		return Decision{}, fmt.Errorf("failed to evaluate policy: %w", err)
	}

	if len(results) == 0 || len(results[0].Expressions) == 0 {
		return Decision{}, fmt.Errorf("policy produced no decision")
	}

	obj, ok := results[0].Expressions[0].Value.(map[string]interface{})
	if !ok {
		return Decision{}, fmt.Errorf("unexpected policy result type %T", results[0].Expressions[0].Value)
	}

	var decision Decision
	decision.Escalate, _ = obj["escalate"].(bool)
	actions, _ := obj["suggested_actions"].([]interface{})
	for _, a := range actions {
		if s, ok := a.(string); ok {
			decision.SuggestedActions = append(decision.SuggestedActions, s)
		}
	}
	return decision, nil
}

// DefaultPolicy is the escalation decision table.
//
// A missing configuration is not a conversational failure, so it never
// escalates. A failed call always escalates. A successful reply escalates
// only when it equals the trigger sentence exactly (trimmed, case-folded);
// substring mentions of escalation must not trip it.
const DefaultPolicy = `
package escalation

default decision := {
	"escalate": false,
	"suggested_actions": ["Ask another question", "Request human agent"]
}

decision := {
	"escalate": false,
	"suggested_actions": ["Set up the completion credentials and retry", "Contact support"]
} if {
	not input.configured
}

decision := {
	"escalate": true,
	"suggested_actions": ["End chat"]
} if {
	input.configured
	input.call_failed
}

decision := {
	"escalate": true,
	"suggested_actions": ["Provide contact information", "End chat"]
} if {
	input.configured
	not input.call_failed
	lower(trim_space(input.reply)) == "i will now escalate this to a human agent"
}
`
