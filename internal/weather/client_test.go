package weather

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newServer(t *testing.T, status int, body string, calls *atomic.Int32) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		if r.Method != http.MethodGet {
			t.Errorf("expected GET, got %s", r.Method)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestFetchReturnsBodyVerbatim(t *testing.T) {
	var calls atomic.Int32
	srv := newServer(t, http.StatusOK, `{"weather":"clear"}`, &calls)

	resp, err := NewClient().Fetch(context.Background(), NewRequest(srv.URL, DefaultLocation, "key"))
	require.NoError(t, err)

	assert.Equal(t, int32(1), calls.Load())
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, resp.OK())
	assert.Equal(t, `{"weather":"clear"}`, string(resp.Body))
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
}

func TestFetchPassesThroughRemoteErrors(t *testing.T) {
	var calls atomic.Int32
	srv := newServer(t, http.StatusUnauthorized, `{"cod":401,"message":"Invalid API key"}`, &calls)

	resp, err := NewClient().Fetch(context.Background(), NewRequest(srv.URL, DefaultLocation, "bad"))
	require.NoError(t, err)

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.False(t, resp.OK())
	assert.Equal(t, `{"cod":401,"message":"Invalid API key"}`, string(resp.Body))
}

func TestFetchSendsQueryParameters(t *testing.T) {
	var query map[string][]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query = r.URL.Query()
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	_, err := NewClient().Fetch(context.Background(), NewRequest(srv.URL+"/data/2.5/weather", DefaultLocation, "abc123"))
	require.NoError(t, err)

	assert.Equal(t, map[string][]string{"q": {"Waltham,MA,US"}, "appid": {"abc123"}}, query)
}

func TestFetchTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	endpoint := srv.URL
	srv.Close()

	resp, err := NewClient().Fetch(context.Background(), NewRequest(endpoint, DefaultLocation, "key"))
	assert.Nil(t, resp)
	assert.ErrorIs(t, err, ErrTransport)
}

func TestFetchHonoursTimeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	client := NewClient(WithTimeout(20 * time.Millisecond))
	_, err := client.Fetch(context.Background(), NewRequest(srv.URL, DefaultLocation, "key"))
	assert.ErrorIs(t, err, ErrTransport)
}

func TestFetchHonoursCancellation(t *testing.T) {
	var calls atomic.Int32
	srv := newServer(t, http.StatusOK, "{}", &calls)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewClient().Fetch(ctx, NewRequest(srv.URL, DefaultLocation, "key"))
	assert.ErrorIs(t, err, ErrTransport)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, int32(0), calls.Load())
}

func TestFetchInvalidEndpointMakesNoCall(t *testing.T) {
	_, err := NewClient().Fetch(context.Background(), NewRequest("not a url", DefaultLocation, "key"))
	assert.ErrorIs(t, err, ErrInvalidEndpoint)
}

func TestNewClientDoesNotMutateProvidedHTTPClient(t *testing.T) {
	hc := &http.Client{}
	c := NewClient(WithHTTPClient(hc), WithTimeout(time.Second))

	assert.Zero(t, hc.Timeout)
	assert.Equal(t, time.Second, c.httpClient.Timeout)
}
