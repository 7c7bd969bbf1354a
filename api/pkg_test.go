package api_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/quickdesk/relay/api"
	"github.com/quickdesk/relay/gateway"
	"github.com/quickdesk/relay/policy"
	"github.com/quickdesk/relay/service"
	"github.com/quickdesk/relay/store"
	"github.com/quickdesk/relay/tests/helpers"
)

// cannedGateway replies with a fixed text or error.
type cannedGateway struct {
	reply string
	err   error
}

func (g *cannedGateway) Configured() bool { return true }

func (g *cannedGateway) Complete(context.Context, string, []string) (string, error) {
	if g.err != nil {
		return "", g.err
	}
	return g.reply, nil
}

func newTestHandler(t *testing.T, gw gateway.Gateway) (*api.Handler, store.Store) {
	t.Helper()
	st := helpers.NewTestSQLiteStore(t)
	engine, err := policy.NewEngine(context.Background(), policy.DefaultPolicy)
	require.NoError(t, err)
	svc := service.New(st, gw, engine, "persona instruction")
	return api.NewHandler(svc, ":memory:", "static"), st
}
