package assistant

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"psiagenda/internal/schedule"
)

func TestNewClientRequiresAPIKey(t *testing.T) {
	_, err := NewClient(ClientConfig{})
	assert.Error(t, err)
}

func TestAsk(t *testing.T) {
	var gotPath, gotKey string
	var gotBody generateRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.URL.Query().Get("key")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"Your next free slot is "},{"text":"Tuesday at 10:00."}]}}]}`))
	}))
	defer srv.Close()

	c, err := NewClient(ClientConfig{
		APIKey:   "test-key",
		Endpoint: srv.URL,
	})
	require.NoError(t, err)

	appointments := []schedule.Appointment{
		{
			PatientName: "Ana García",
			Phone:       "1145678901",
			Email:       "ana@example.com",
			Date:        "2024-04-02",
			StartTime:   "15:00",
			Notes:       "first consultation",
		},
	}

	answer, err := c.Ask(context.Background(), "when is my next free slot?", appointments)
	require.NoError(t, err)
	assert.Equal(t, "Your next free slot is Tuesday at 10:00.", answer)

	assert.Equal(t, "/models/gemini-2.0-flash:generateContent", gotPath)
	assert.Equal(t, "test-key", gotKey)

	require.Len(t, gotBody.Contents, 1)
	prompt := gotBody.Contents[0].Parts[0].Text
	assert.Contains(t, prompt, "when is my next free slot?")
	assert.Contains(t, prompt, "Ana García")
	assert.Contains(t, prompt, "02/04/2024", "dates are DD/MM/YYYY in the prompt")
	assert.NotContains(t, prompt, "1145678901", "phone numbers stay out of the prompt")
	assert.NotContains(t, prompt, "ana@example.com", "emails stay out of the prompt")
}

func TestAskEmptyQuestion(t *testing.T) {
	c, err := NewClient(ClientConfig{APIKey: "k"})
	require.NoError(t, err)

	_, err = c.Ask(context.Background(), "   ", nil)
	var qe *QueryError
	require.ErrorAs(t, err, &qe)
	assert.Equal(t, "ask", qe.Op)
}

func TestAskAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"API key not valid"}}`, http.StatusBadRequest)
	}))
	defer srv.Close()

	c, err := NewClient(ClientConfig{APIKey: "bad", Endpoint: srv.URL})
	require.NoError(t, err)

	_, err = c.Ask(context.Background(), "hello?", nil)
	var qe *QueryError
	require.ErrorAs(t, err, &qe)
	assert.Contains(t, qe.Error(), "HTTP 400")
	assert.Contains(t, qe.Error(), "API key not valid")
}

func TestAskEmptyResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"candidates":[]}`))
	}))
	defer srv.Close()

	c, err := NewClient(ClientConfig{APIKey: "k", Endpoint: srv.URL})
	require.NoError(t, err)

	_, err = c.Ask(context.Background(), "anyone there?", nil)
	assert.Error(t, err)
}

func TestQueryErrorUnwrap(t *testing.T) {
	inner := errors.New("boom")
	err := &QueryError{Op: "ask", Err: inner}
	assert.ErrorIs(t, err, inner)
	assert.Contains(t, err.Error(), "assistant ask")
}
