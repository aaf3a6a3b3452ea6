package identity

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestProvider(t *testing.T, handler http.HandlerFunc) *HTTPProvider {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewHTTPProvider(server.URL, "test-key")
}

func TestVerifiedEmailOK(t *testing.T) {
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/users/auth0%7Cu1/email", r.URL.RequestURI())
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		w.Write([]byte(`{"email":"ada@example.com","verified":true}`))
	})

	email, err := p.VerifiedEmail(context.Background(), "auth0|u1")
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", email)
}

func TestVerifiedEmailUnverified(t *testing.T) {
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"email":"ada@example.com","verified":false}`))
	})

	email, err := p.VerifiedEmail(context.Background(), "u1")
	require.NoError(t, err)
	assert.Empty(t, email)
}

func TestVerifiedEmailNotFound(t *testing.T) {
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	email, err := p.VerifiedEmail(context.Background(), "u1")
	require.NoError(t, err)
	assert.Empty(t, email)
}

func TestVerifiedEmailServerError(t *testing.T) {
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := p.VerifiedEmail(context.Background(), "u1")
	assert.Error(t, err)
}
