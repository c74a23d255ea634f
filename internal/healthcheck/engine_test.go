package healthcheck

import (
	"context"
	"net"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrz1836/calcifer/internal/clock"
	"github.com/mrz1836/calcifer/internal/domain"
)

var probeNow = time.Date(2026, 8, 31, 16, 0, 0, 0, time.UTC)

func newTestEngine() *Engine {
	return New(Config{
		Timeout: 2 * time.Second,
		Clock:   clock.Fixed{T: probeNow},
		Logger:  zerolog.Nop(),
	})
}

// endpointForURL builds an HTTP endpoint from an httptest server URL.
func endpointForURL(t *testing.T, rawURL string) *domain.Endpoint {
	t.Helper()

	u, err := url.Parse(rawURL)
	require.NoError(t, err)
	port, err := strconv.Atoi(u.Port())
	require.NoError(t, err)

	return &domain.Endpoint{
		Name:   "web",
		Type:   domain.EndpointHTTP,
		Target: u.Hostname(),
		Port:   &port,
	}
}

func TestProbeUnknownTypeFailsClosed(t *testing.T) {
	e := newTestEngine()

	up, detail := e.Probe(context.Background(), &domain.Endpoint{
		Name:   "mystery",
		Type:   "snmp",
		Target: "10.0.0.5",
	})
	assert.False(t, up)
	assert.Equal(t, "Unknown endpoint type: snmp", detail)
}

func TestProbeTCP(t *testing.T) {
	e := newTestEngine()

	t.Run("open port is up", func(t *testing.T) {
		ln, err := net.Listen("tcp", "127.0.0.1:0")
		require.NoError(t, err)
		defer func() { _ = ln.Close() }()

		port := ln.Addr().(*net.TCPAddr).Port
		up, detail := e.Probe(context.Background(), &domain.Endpoint{
			Type: domain.EndpointTCP, Target: "127.0.0.1", Port: &port,
		})
		assert.True(t, up)
		assert.Empty(t, detail)
	})

	t.Run("closed port is down", func(t *testing.T) {
		// Bind and release a port so nothing is listening on it.
		ln, err := net.Listen("tcp", "127.0.0.1:0")
		require.NoError(t, err)
		port := ln.Addr().(*net.TCPAddr).Port
		require.NoError(t, ln.Close())

		up, detail := e.Probe(context.Background(), &domain.Endpoint{
			Type: domain.EndpointTCP, Target: "127.0.0.1", Port: &port,
		})
		assert.False(t, up)
		assert.Contains(t, detail, "closed or filtered")
	})

	t.Run("missing port is down", func(t *testing.T) {
		up, detail := e.Probe(context.Background(), &domain.Endpoint{
			Type: domain.EndpointTCP, Target: "127.0.0.1",
		})
		assert.False(t, up)
		assert.Equal(t, "TCP check requires a port", detail)
	})
}

func TestProbeHTTP(t *testing.T) {
	e := newTestEngine()

	t.Run("2xx is up", func(t *testing.T) {
		var gotUA string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotUA = r.Header.Get("User-Agent")
			w.WriteHeader(http.StatusOK)
		}))
		defer srv.Close()

		up, detail := e.Probe(context.Background(), endpointForURL(t, srv.URL))
		assert.True(t, up)
		assert.Empty(t, detail)
		assert.Equal(t, "Calcifer-Monitor/1.0", gotUA)
	})

	t.Run("redirect status is up", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusNotModified)
		}))
		defer srv.Close()

		up, _ := e.Probe(context.Background(), endpointForURL(t, srv.URL))
		assert.True(t, up, "status below 400 counts as up")
	})

	t.Run("5xx is down", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer srv.Close()

		up, detail := e.Probe(context.Background(), endpointForURL(t, srv.URL))
		assert.False(t, up)
		assert.Equal(t, "HTTP 500", detail)
	})

	t.Run("unreachable server is down", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusOK)
		}))
		ep := endpointForURL(t, srv.URL)
		srv.Close()

		up, detail := e.Probe(context.Background(), ep)
		assert.False(t, up)
		assert.Contains(t, detail, "URL error")
	})
}

func TestPingArgs(t *testing.T) {
	assert.Equal(t, []string{"-c", "1", "-W", "5", "10.0.0.5"}, pingArgs("10.0.0.5", 5*time.Second))
	assert.Equal(t, []string{"-c", "1", "-W", "1", "host"}, pingArgs("host", 100*time.Millisecond), "sub-second timeouts round up")
}

func TestCheckRecordsObservation(t *testing.T) {
	e := newTestEngine()
	ctx := context.Background()

	ep := &domain.Endpoint{
		Name:                "mystery",
		Type:                "snmp",
		Target:              "10.0.0.5",
		Status:              domain.EndpointStatusUnknown,
		ConsecutiveFailures: 2,
	}

	up := e.Check(ctx, ep)
	assert.False(t, up)
	assert.Equal(t, domain.EndpointStatusDown, ep.Status)
	require.NotNil(t, ep.LastCheck)
	assert.True(t, probeNow.Equal(*ep.LastCheck))
	require.NotNil(t, ep.LastDown)
	assert.Nil(t, ep.LastUp)
	assert.Equal(t, 3, ep.ConsecutiveFailures)
	assert.Equal(t, "Unknown endpoint type: snmp", ep.LastError)
}

func TestCheckResetsFailuresOnRecovery(t *testing.T) {
	e := newTestEngine()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer func() { _ = ln.Close() }()
	port := ln.Addr().(*net.TCPAddr).Port

	ep := &domain.Endpoint{
		Name:                "api",
		Type:                domain.EndpointTCP,
		Target:              "127.0.0.1",
		Port:                &port,
		Status:              domain.EndpointStatusDown,
		ConsecutiveFailures: 4,
		LastError:           "Port closed or filtered",
	}

	up := e.Check(context.Background(), ep)
	assert.True(t, up)
	assert.Equal(t, domain.EndpointStatusUp, ep.Status)
	assert.Zero(t, ep.ConsecutiveFailures)
	assert.Empty(t, ep.LastError)
	require.NotNil(t, ep.LastUp)
}

func TestCheckAll(t *testing.T) {
	e := newTestEngine()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer func() { _ = ln.Close() }()
	port := ln.Addr().(*net.TCPAddr).Port

	endpoints := []*domain.Endpoint{
		{Name: "api", Type: domain.EndpointTCP, Target: "127.0.0.1", Port: &port},
		{Name: "mystery", Type: "snmp", Target: "10.0.0.5"},
	}

	require.NoError(t, e.CheckAll(context.Background(), endpoints))
	assert.Equal(t, domain.EndpointStatusUp, endpoints[0].Status)
	assert.Equal(t, domain.EndpointStatusDown, endpoints[1].Status)
	for _, ep := range endpoints {
		assert.NotNil(t, ep.LastCheck)
	}
}
