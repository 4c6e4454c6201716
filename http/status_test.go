package http_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fwojciec/blocklib"
	blocklibhttp "github.com/fwojciec/blocklib/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// adminServer fakes the admin status API. The job reports "running" for
// the given number of polls before stopping.
func adminServer(t *testing.T, runningPolls int32, resources []map[string]string) (*httptest.Server, *atomic.Int32) {
	t.Helper()

	var polls atomic.Int32
	mux := http.NewServeMux()
	var server *httptest.Server

	mux.HandleFunc("POST /status/acme/site/main/{rest...}", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "token secret", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "*", r.PathValue("rest"))

		var body map[string][]string
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, []string{"/*"}, body["paths"])

		w.WriteHeader(http.StatusAccepted)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"state": "created",
			"links": map[string]string{"self": server.URL + "/job/acme/site/main/status/job-1"},
		})
	})
	mux.HandleFunc("GET /job/acme/site/main/status/job-1", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "token secret", r.Header.Get("Authorization"))
		state := "running"
		if polls.Add(1) > runningPolls {
			state = "stopped"
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"state": state})
	})
	mux.HandleFunc("GET /job/acme/site/main/status/job-1/details", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"state": "stopped",
			"data":  map[string]any{"resources": resources},
		})
	})

	server = httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server, &polls
}

func newStatusService(server *httptest.Server, site string) *blocklibhttp.StatusService {
	return blocklibhttp.NewStatusService("acme", "site", site, "secret",
		blocklibhttp.WithAdminURL(server.URL),
		blocklibhttp.WithClient(server.Client()),
		blocklibhttp.WithPolling(time.Millisecond, 5),
	)
}

func TestStatusService_DiscoverURLs(t *testing.T) {
	t.Parallel()

	published := "2024-05-01T10:00:00Z"

	t.Run("returns published document pages", func(t *testing.T) {
		t.Parallel()

		server, polls := adminServer(t, 2, []map[string]string{
			{"path": "/", "publishLastModified": published},
			{"path": "/about", "publishLastModified": published},
			{"path": "/drafts/new", "publishLastModified": published},
			{"path": "/tools/sidekick/library", "publishLastModified": published},
			{"path": "/unpublished"},
			{"path": "/old", "publishLastModified": published, "publishConfigRedirectLocation": "/new"},
			{"path": "/icons/logo.svg", "publishLastModified": published},
			{"path": "/query-index.json", "publishLastModified": published},
			{"path": "/media/intro.mp4", "publishLastModified": published},
		})

		urls, err := newStatusService(server, "https://main--site--acme.aem.page/").DiscoverURLs(context.Background())

		require.NoError(t, err)
		assert.Equal(t, []string{
			"https://main--site--acme.aem.page/",
			"https://main--site--acme.aem.page/about",
		}, urls)
		assert.Equal(t, int32(3), polls.Load())
	})

	t.Run("fails when the job never stops", func(t *testing.T) {
		t.Parallel()

		server, polls := adminServer(t, 100, nil)

		_, err := newStatusService(server, "https://example.com").DiscoverURLs(context.Background())

		require.Error(t, err)
		assert.Contains(t, err.Error(), "5 attempts")
		assert.Equal(t, int32(5), polls.Load())
	})

	t.Run("reports a rejected key as unauthorized", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		}))
		defer server.Close()

		_, err := newStatusService(server, "https://example.com").DiscoverURLs(context.Background())

		require.Error(t, err)
		assert.Equal(t, blocklib.EUNAUTHORIZED, blocklib.ErrorCode(err))
	})

	t.Run("requires an API key", func(t *testing.T) {
		t.Parallel()

		s := blocklibhttp.NewStatusService("acme", "site", "https://example.com", "")

		_, err := s.DiscoverURLs(context.Background())

		require.Error(t, err)
		assert.Equal(t, blocklib.EUNAUTHORIZED, blocklib.ErrorCode(err))
	})

	t.Run("requires the site coordinates", func(t *testing.T) {
		t.Parallel()

		s := blocklibhttp.NewStatusService("", "site", "https://example.com", "secret")

		_, err := s.DiscoverURLs(context.Background())

		require.Error(t, err)
		assert.Equal(t, blocklib.EINVALID, blocklib.ErrorCode(err))
	})

	t.Run("stops polling when the context is canceled", func(t *testing.T) {
		t.Parallel()

		server, _ := adminServer(t, 100, nil)
		s := blocklibhttp.NewStatusService("acme", "site", "https://example.com", "secret",
			blocklibhttp.WithAdminURL(server.URL),
			blocklibhttp.WithPolling(time.Hour, 3),
		)

		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()

		_, err := s.DiscoverURLs(ctx)

		require.ErrorIs(t, err, context.DeadlineExceeded)
	})
}
