// Package healthcheck probes monitored endpoints over ICMP, TCP, and HTTP(S)
// and tracks the observed availability on the endpoint record.
package healthcheck

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os/exec"
	"strconv"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/mrz1836/calcifer/internal/clock"
	"github.com/mrz1836/calcifer/internal/constants"
	"github.com/mrz1836/calcifer/internal/domain"
)

// probeConcurrency caps parallel probes in CheckAll.
const probeConcurrency = 8

// Config collects the knobs for an Engine.
type Config struct {
	// Timeout bounds each probe. Defaults to 5 seconds.
	Timeout time.Duration

	// UserAgent is sent on HTTP(S) probes.
	UserAgent string

	// Clock is the time source for observation timestamps.
	Clock clock.Clock

	// Logger receives per-probe results.
	Logger zerolog.Logger
}

// Engine performs health checks against endpoints.
type Engine struct {
	timeout   time.Duration
	userAgent string
	clk       clock.Clock
	client    *http.Client
	logger    zerolog.Logger
}

// New creates an Engine, applying defaults for unset fields.
func New(cfg Config) *Engine {
	if cfg.Timeout <= 0 {
		cfg.Timeout = constants.DefaultProbeTimeout
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = constants.DefaultProbeUserAgent
	}
	if cfg.Clock == nil {
		cfg.Clock = clock.RealClock{}
	}

	return &Engine{
		timeout:   cfg.Timeout,
		userAgent: cfg.UserAgent,
		clk:       cfg.Clock,
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
		logger: cfg.Logger,
	}
}

// Probe checks a single endpoint and reports whether it is up, with a short
// failure detail when it is not. Unknown endpoint types fail closed.
func (e *Engine) Probe(ctx context.Context, ep *domain.Endpoint) (bool, string) {
	switch ep.Type {
	case domain.EndpointNetwork:
		return e.probePing(ctx, ep)
	case domain.EndpointTCP:
		return e.probeTCP(ctx, ep)
	case domain.EndpointHTTP:
		return e.probeWeb(ctx, ep, "http")
	case domain.EndpointHTTPS:
		return e.probeWeb(ctx, ep, "https")
	default:
		return false, fmt.Sprintf("Unknown endpoint type: %s", ep.Type)
	}
}

// probePing runs a single ICMP echo via the system ping binary.
func (e *Engine) probePing(ctx context.Context, ep *domain.Endpoint) (bool, string) {
	ctx, cancel := context.WithTimeout(ctx, e.timeout+time.Second)
	defer cancel()

	cmd := exec.CommandContext(ctx, "ping", pingArgs(ep.Target, e.timeout)...) //#nosec G204 -- fixed binary, target validated upstream
	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return false, "Ping timeout"
		}
		return false, "Host unreachable"
	}
	return true, ""
}

// pingArgs builds the ping invocation for one echo with a bounded wait.
func pingArgs(target string, timeout time.Duration) []string {
	secs := int(timeout.Seconds())
	if secs < 1 {
		secs = 1
	}
	return []string{"-c", "1", "-W", strconv.Itoa(secs), target}
}

// probeTCP attempts a plain TCP connect to target:port.
func (e *Engine) probeTCP(_ context.Context, ep *domain.Endpoint) (bool, string) {
	if ep.Port == nil {
		return false, "TCP check requires a port"
	}

	addr := net.JoinHostPort(ep.Target, strconv.Itoa(*ep.Port))
	conn, err := net.DialTimeout("tcp", addr, e.timeout)
	if err != nil {
		if nErr, ok := err.(net.Error); ok && nErr.Timeout() {
			return false, fmt.Sprintf("Connection timeout to port %d", *ep.Port)
		}
		return false, fmt.Sprintf("Port %d closed or filtered", *ep.Port)
	}
	_ = conn.Close()
	return true, ""
}

// probeWeb issues a GET against the endpoint and treats any status below 400
// as up.
func (e *Engine) probeWeb(ctx context.Context, ep *domain.Endpoint, scheme string) (bool, string) {
	host := ep.Target
	if ep.Port != nil {
		host = net.JoinHostPort(ep.Target, strconv.Itoa(*ep.Port))
	}
	url := fmt.Sprintf("%s://%s", scheme, host)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return false, fmt.Sprintf("Web check error: %v", err)
	}
	req.Header.Set("User-Agent", e.userAgent)

	resp, err := e.client.Do(req)
	if err != nil {
		return false, fmt.Sprintf("URL error: %v", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 400 {
		return true, ""
	}
	return false, fmt.Sprintf("HTTP %d", resp.StatusCode)
}

// Check probes an endpoint and records the observation on it: status, check
// timestamps, the consecutive failure counter, and the last error detail.
// The caller persists the mutated endpoint.
func (e *Engine) Check(ctx context.Context, ep *domain.Endpoint) bool {
	up, detail := e.Probe(ctx, ep)
	now := e.clk.Now()

	ep.LastCheck = &now
	if up {
		ep.Status = domain.EndpointStatusUp
		ep.LastUp = &now
		ep.ConsecutiveFailures = 0
		ep.LastError = ""
	} else {
		ep.Status = domain.EndpointStatusDown
		ep.LastDown = &now
		ep.ConsecutiveFailures++
		ep.LastError = detail
	}
	ep.UpdatedAt = now

	e.logger.Debug().
		Str("endpoint", ep.Name).
		Str("type", string(ep.Type)).
		Bool("up", up).
		Str("detail", detail).
		Msg("endpoint probed")

	return up
}

// CheckAll probes every endpoint concurrently and records the observations.
// Probes fail closed rather than erroring, so the only error is context
// cancellation.
func (e *Engine) CheckAll(ctx context.Context, endpoints []*domain.Endpoint) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(probeConcurrency)

	for _, ep := range endpoints {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			e.Check(ctx, ep)
			return nil
		})
	}

	return g.Wait()
}
