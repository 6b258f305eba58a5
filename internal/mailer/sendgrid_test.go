package mailer

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSendGridMailerSend(t *testing.T) {
	var got sgPayload
	var auth string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	m := &SendGridMailer{
		APIKey:      "sg-test-key",
		FromEmail:   "noreply@summitlog.dev",
		FromName:    "SummitLog",
		Client:      srv.Client(),
		OverrideURL: srv.URL,
	}

	err := m.Send(context.Background(), Message{
		To:      "alice@example.com",
		Subject: "Your verification code",
		Body:    "123456",
	})
	require.NoError(t, err)

	assert.Equal(t, "Bearer sg-test-key", auth)
	require.Len(t, got.Personalizations, 1)
	assert.Equal(t, "alice@example.com", got.Personalizations[0].To[0].Email)
	assert.Equal(t, "Your verification code", got.Subject)
	require.Len(t, got.Content, 1)
	assert.Equal(t, "123456", got.Content[0].Value)
}

func TestSendGridMailerRejectsErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	m := &SendGridMailer{Client: srv.Client(), OverrideURL: srv.URL}
	err := m.Send(context.Background(), Message{To: "a@b.c"})
	assert.Error(t, err)
}
