package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marcus/campaign-compliance/internal/fetch"
)

func newServerFromConfig(t *testing.T, cfg Config) *Server {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret")

	srv, err := New(cfg)
	require.NoError(t, err)
	return srv
}

func TestNew_FetchOptionsCarryDefaults(t *testing.T) {
	srv := newServerFromConfig(t, Config{Port: 0, UseBrowser: true})

	require.NotNil(t, srv.fetchOpts)
	assert.Equal(t, fetch.DefaultTimeout, srv.fetchOpts.Timeout)
	assert.Equal(t, fetch.DefaultUserAgent, srv.fetchOpts.UserAgent)
	assert.True(t, srv.fetchOpts.UseBrowser)
}

func TestHandleScrapeWebsite_SendsUserAgent(t *testing.T) {
	var gotUserAgent string
	target := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserAgent = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(`<html><head><title>Acme</title></head><body><p>Appointment reminders for dental patients.</p></body></html>`))
	}))
	defer target.Close()

	srv := newServerFromConfig(t, Config{Port: 0})
	rec := doJSON(t, srv, http.MethodPost, "/api/scrape-website", `{"url": "`+target.URL+`"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, fetch.DefaultUserAgent, gotUserAgent)
}
