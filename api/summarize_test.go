package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quickdesk/relay/domain"
	"github.com/quickdesk/relay/service"
)

func TestSummarizeEndpointMissingSessionID(t *testing.T) {
	h, _ := newTestHandler(t, &cannedGateway{reply: "unused"})
	e := echo.New()

	rec, c := postJSON(t, e, "/summarize", `{}`)
	require.NoError(t, h.Summarize(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSummarizeEndpointNoConversation(t *testing.T) {
	h, _ := newTestHandler(t, &cannedGateway{reply: "unused"})
	e := echo.New()

	rec, c := postJSON(t, e, "/summarize", `{"session_id":"s1"}`)
	require.NoError(t, h.Summarize(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp domain.SummarizeResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, service.NoConversationSummary, resp.Summary)
}

func TestSummarizeEndpointSuccess(t *testing.T) {
	h, st := newTestHandler(t, &cannedGateway{reply: "- short summary"})
	e := echo.New()
	ctx := context.Background()

	_, err := st.CreateSession(ctx, "s1")
	require.NoError(t, err)
	_, err = st.AppendTurn(ctx, "s1", domain.SpeakerUser, "hello")
	require.NoError(t, err)

	rec, c := postJSON(t, e, "/summarize", `{"session_id":"s1"}`)
	require.NoError(t, h.Summarize(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp domain.SummarizeResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "- short summary", resp.Summary)
}

func TestSummarizeEndpointGatewayFailure(t *testing.T) {
	h, st := newTestHandler(t, &cannedGateway{err: assert.AnError})
	e := echo.New()
	ctx := context.Background()

	_, err := st.CreateSession(ctx, "s1")
	require.NoError(t, err)
	_, err = st.AppendTurn(ctx, "s1", domain.SpeakerUser, "hello")
	require.NoError(t, err)

	rec, c := postJSON(t, e, "/summarize", `{"session_id":"s1"}`)
	require.NoError(t, h.Summarize(c))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Contains(t, resp["error"], "failed to summarize")
}
