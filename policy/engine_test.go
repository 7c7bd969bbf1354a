package policy_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quickdesk/relay/policy"
)

func TestEvaluateDecisionTable(t *testing.T) {
	ctx := context.Background()
	engine, err := policy.NewEngine(ctx, policy.DefaultPolicy)
	require.NoError(t, err)

	tests := []struct {
		name        string
		input       policy.Input
		wantVerdict bool
		wantActions []string
	}{
		{
			name:        "unconfigured gateway never escalates",
			input:       policy.Input{Configured: false},
			wantVerdict: false,
			wantActions: []string{"Set up the completion credentials and retry", "Contact support"},
		},
		{
			name:        "failed call always escalates",
			input:       policy.Input{Configured: true, CallFailed: true},
			wantVerdict: true,
			wantActions: []string{"End chat"},
		},
		{
			name:        "exact trigger phrase escalates",
			input:       policy.Input{Configured: true, Reply: "I will now escalate this to a human agent"},
			wantVerdict: true,
			wantActions: []string{"Provide contact information", "End chat"},
		},
		{
			name:        "trigger phrase is matched case-insensitively with surrounding whitespace",
			input:       policy.Input{Configured: true, Reply: "  I Will Now Escalate This To A Human Agent \n"},
			wantVerdict: true,
			wantActions: []string{"Provide contact information", "End chat"},
		},
		{
			name:        "substring mention does not escalate",
			input:       policy.Input{Configured: true, Reply: "I will now escalate this to a human agent, please wait"},
			wantVerdict: false,
			wantActions: []string{"Ask another question", "Request human agent"},
		},
		{
			name:        "ordinary reply does not escalate",
			input:       policy.Input{Configured: true, Reply: "Your refund will arrive within 5 business days."},
			wantVerdict: false,
			wantActions: []string{"Ask another question", "Request human agent"},
		},
		{
			name:        "empty reply does not escalate",
			input:       policy.Input{Configured: true, Reply: ""},
			wantVerdict: false,
			wantActions: []string{"Ask another question", "Request human agent"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decision, err := engine.Evaluate(ctx, tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.wantVerdict, decision.Escalate)
			assert.Equal(t, tt.wantActions, decision.SuggestedActions)
		})
	}
}

// At most one conditional rule body may hold for any outcome; if two fire
// at once OPA aborts the query with a rule conflict instead of a verdict.
func TestEvaluateNeverConflicts(t *testing.T) {
	ctx := context.Background()
	engine, err := policy.NewEngine(ctx, policy.DefaultPolicy)
	require.NoError(t, err)

	replies := []string{"", "I will now escalate this to a human agent", "ordinary reply"}
	for _, configured := range []bool{false, true} {
		for _, failed := range []bool{false, true} {
			for _, reply := range replies {
				_, err := engine.Evaluate(ctx, policy.Input{
					Configured: configured,
					CallFailed: failed,
					Reply:      reply,
				})
				require.NoError(t, err)
			}
		}
	}
}

func TestNewEngineRejectsBrokenPolicy(t *testing.T) {
	_, err := policy.NewEngine(context.Background(), "package escalation\n\ndecision := {")
	assert.Error(t, err)
}
