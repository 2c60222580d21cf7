package ftcscout

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"regexp"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/ftc-team-stats/internal/platform/logging"
	"github.com/riskibarqy/ftc-team-stats/internal/platform/resilience"
	"github.com/valyala/bytebufferpool"
)

const (
	DefaultEndpoint = "https://api.ftcscout.org/graphql"

	TransportHTTP     = "http"
	TransportFastHTTP = "fasthttp"

	outcomeOK = "ok"
)

var operationNameRegex = regexp.MustCompile(`^\s*(?:query|mutation)\s+([A-Za-z_][A-Za-z0-9_]*)`)

// RequestObserver receives per-request telemetry. *observability.Metrics
// satisfies it.
type RequestObserver interface {
	ObserveProviderRequest(operation, outcome string, elapsed time.Duration)
	ObserveCircuitTransition(state string)
}

type ClientConfig struct {
	HTTPClient     *http.Client
	Endpoint       string
	Timeout        time.Duration
	Transport      string
	Logger         *logging.Logger
	Observer       RequestObserver
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client executes GraphQL operations against FTCScout. Each Execute sends at
// most one request; identical in-flight operations share it.
type Client struct {
	poster         poster
	endpoint       string
	logger         *logging.Logger
	observer       RequestObserver
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
	flight         resilience.SingleFlight[[]byte]
}

type graphQLRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

type graphQLResponse struct {
	Data   json.RawMessage    `json:"data"`
	Errors []graphQLErrorItem `json:"errors"`
}

type graphQLErrorItem struct {
	Message string `json:"message"`
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 20 * time.Second
	}

	endpoint := strings.TrimSpace(cfg.Endpoint)
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}

	var p poster
	switch strings.ToLower(strings.TrimSpace(cfg.Transport)) {
	case TransportFastHTTP:
		p = newFastPoster(timeout)
	default:
		p = newHTTPPoster(cfg.HTTPClient, timeout)
	}

	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)
	breaker := resilience.NewCircuitBreakerFromConfig(breakerCfg)
	c := &Client{
		poster:         p,
		endpoint:       endpoint,
		logger:         logger.Named("ftcscout"),
		observer:       cfg.Observer,
		breaker:        breaker,
		circuitEnabled: breakerCfg.Enabled,
	}
	breaker.OnStateChange(func(from, to resilience.CircuitState) {
		c.logger.Warn("ftcscout circuit breaker state changed", "from", from, "to", to)
		if c.observer != nil {
			c.observer.ObserveCircuitTransition(string(to))
		}
	})
	return c
}

// Execute sends one GraphQL operation and returns its data payload verbatim.
// Failures are *QueryError values.
func (c *Client) Execute(ctx context.Context, query string, variables map[string]any) (json.RawMessage, error) {
	operation := operationName(query)
	started := time.Now()

	data, err := c.execute(ctx, operation, query, variables)
	c.observe(operation, err, time.Since(started))
	if err != nil {
		c.logger.WarnContext(ctx, "ftcscout graphql request failed", "operation", operation, "variables", variables, "error", err)
		return nil, err
	}
	return data, nil
}

func (c *Client) execute(ctx context.Context, operation, query string, variables map[string]any) (json.RawMessage, error) {
	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "ftcscout circuit breaker rejected request", "state", c.breaker.State(), "operation", operation)
			return nil, transportError(operation, 0, nil, err, false)
		}
	}

	body, err := encodeRequest(query, variables)
	if err != nil {
		return nil, transportError(operation, 0, nil, err, false)
	}

	raw, err, shared := c.flight.Do(string(body), func() ([]byte, error) {
		raw, postErr := c.send(ctx, operation, body)
		if c.circuitEnabled {
			c.breaker.Record(postErr, isCircuitFailure)
		}
		return raw, postErr
	})
	if shared {
		c.logger.DebugContext(ctx, "ftcscout request shared with in-flight call", "operation", operation)
	}
	if err != nil {
		return nil, err
	}

	var envelope graphQLResponse
	if err := sonic.Unmarshal(raw, &envelope); err != nil {
		return nil, transportError(operation, http.StatusOK, raw, err, false)
	}
	if len(envelope.Errors) > 0 {
		return nil, graphQLError(operation, envelope.Errors)
	}
	return envelope.Data, nil
}

func (c *Client) send(ctx context.Context, operation string, body []byte) ([]byte, error) {
	status, raw, err := c.poster.post(ctx, c.endpoint, body)
	if err != nil {
		return nil, transportError(operation, status, raw, err, ctx.Err() == nil)
	}
	if status < 200 || status >= 300 {
		return nil, transportError(operation, status, raw, nil, isTransientStatus(status))
	}
	return raw, nil
}

func (c *Client) observe(operation string, err error, elapsed time.Duration) {
	if c.observer == nil {
		return
	}
	outcome := outcomeOK
	if err != nil {
		outcome = string(KindTransport)
		var qe *QueryError
		if errors.As(err, &qe) {
			outcome = string(qe.Kind)
		}
	}
	c.observer.ObserveProviderRequest(operation, outcome, elapsed)
}

func encodeRequest(query string, variables map[string]any) ([]byte, error) {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	if err := sonic.ConfigDefault.NewEncoder(buf).Encode(graphQLRequest{Query: query, Variables: variables}); err != nil {
		return nil, err
	}
	return append([]byte(nil), buf.B...), nil
}

func operationName(query string) string {
	if m := operationNameRegex.FindStringSubmatch(query); len(m) == 2 {
		return m[1]
	}
	return "anonymous"
}
