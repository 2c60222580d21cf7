package ftcscout

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/ftc-team-stats/internal/platform/logging"
	"github.com/riskibarqy/ftc-team-stats/internal/platform/resilience"
	"github.com/riskibarqy/ftc-team-stats/internal/usecase"
)

type recordingObserver struct {
	mu       sync.Mutex
	outcomes []string
	states   []string
}

func (o *recordingObserver) ObserveProviderRequest(operation, outcome string, _ time.Duration) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.outcomes = append(o.outcomes, operation+":"+outcome)
}

func (o *recordingObserver) ObserveCircuitTransition(state string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.states = append(o.states, state)
}

func newTestClient(t *testing.T, endpoint, transport string, breaker resilience.CircuitBreakerConfig, observer RequestObserver) *Client {
	t.Helper()
	return NewClient(ClientConfig{
		Endpoint:       endpoint,
		Timeout:        2 * time.Second,
		Transport:      transport,
		Logger:         logging.NewNop(),
		Observer:       observer,
		CircuitBreaker: breaker,
	})
}

func TestClientExecute_ReturnsDataVerbatim(t *testing.T) {
	t.Parallel()

	for _, transport := range []string{TransportHTTP, TransportFastHTTP} {
		transport := transport
		t.Run(transport, func(t *testing.T) {
			t.Parallel()

			bodies := make(chan graphQLRequest, 1)
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.Method != http.MethodPost {
					t.Errorf("unexpected method: %s", r.Method)
				}
				raw, _ := io.ReadAll(r.Body)
				var body graphQLRequest
				if err := sonic.Unmarshal(raw, &body); err != nil {
					t.Errorf("decode request body: %v", err)
				}
				bodies <- body
				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write([]byte(`{"data":{"teamByNumber":{"number":23954}}}`))
			}))
			defer server.Close()

			observer := &recordingObserver{}
			client := newTestClient(t, server.URL, transport, resilience.CircuitBreakerConfig{}, observer)

			data, err := client.Execute(context.Background(), teamAwardsQuery, teamSeasonVariables(23954, 2025))
			if err != nil {
				t.Fatalf("execute: %v", err)
			}
			if string(data) != `{"teamByNumber":{"number":23954}}` {
				t.Fatalf("unexpected data: %s", data)
			}
			gotBody := <-bodies
			if gotBody.Query != teamAwardsQuery {
				t.Fatalf("query was not sent verbatim")
			}
			if gotBody.Variables["teamNumber"] != float64(23954) || gotBody.Variables["season"] != float64(2025) {
				t.Fatalf("unexpected variables: %+v", gotBody.Variables)
			}
			if len(observer.outcomes) != 1 || observer.outcomes[0] != "TeamAwards:ok" {
				t.Fatalf("unexpected observed outcomes: %+v", observer.outcomes)
			}
		})
	}
}

func TestClientExecute_GraphQLErrorUsesFirstMessage(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"data":null,"errors":[{"message":"Unknown team"},{"message":"second"}]}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, TransportHTTP, resilience.CircuitBreakerConfig{}, nil)
	_, err := client.Execute(context.Background(), teamEventsQuery, teamSeasonVariables(1, 2025))

	var qe *QueryError
	if !errors.As(err, &qe) {
		t.Fatalf("expected QueryError, got %v", err)
	}
	if qe.Kind != KindGraphQL || qe.Message != "Unknown team" {
		t.Fatalf("unexpected error: kind=%s message=%q", qe.Kind, qe.Message)
	}
	if !errors.Is(err, usecase.ErrDependencyUnavailable) {
		t.Fatalf("expected dependency unavailable sentinel in chain")
	}
}

func TestClientExecute_GraphQLErrorFallbackMessage(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"errors":[{}]}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, TransportHTTP, resilience.CircuitBreakerConfig{}, nil)
	_, err := client.Execute(context.Background(), teamEventsQuery, nil)

	var qe *QueryError
	if !errors.As(err, &qe) || qe.Message != defaultGraphQLMessage {
		t.Fatalf("expected fallback graphql message, got %v", err)
	}
}

func TestClientExecute_NonSuccessStatusIsTransportError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("upstream down"))
	}))
	defer server.Close()

	observer := &recordingObserver{}
	client := newTestClient(t, server.URL, TransportHTTP, resilience.CircuitBreakerConfig{}, observer)
	_, err := client.Execute(context.Background(), teamMatchesQuery, nil)

	var qe *QueryError
	if !errors.As(err, &qe) {
		t.Fatalf("expected QueryError, got %v", err)
	}
	if qe.Kind != KindTransport || qe.Status != http.StatusBadGateway || qe.Body != "upstream down" {
		t.Fatalf("unexpected transport error: %+v", qe)
	}
	if len(observer.outcomes) != 1 || observer.outcomes[0] != "TeamMatches:transport" {
		t.Fatalf("unexpected observed outcomes: %+v", observer.outcomes)
	}
}

func TestClientExecute_CircuitOpensOnTransientFailures(t *testing.T) {
	t.Parallel()

	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	observer := &recordingObserver{}
	client := newTestClient(t, server.URL, TransportHTTP, resilience.CircuitBreakerConfig{
		Enabled:          true,
		FailureThreshold: 2,
		OpenTimeout:      time.Minute,
		HalfOpenMaxReq:   1,
	}, observer)

	for i := 0; i < 2; i++ {
		if _, err := client.Execute(context.Background(), teamMatchesQuery, nil); err == nil {
			t.Fatalf("expected failure on attempt %d", i)
		}
	}

	_, err := client.Execute(context.Background(), teamMatchesQuery, nil)
	if !errors.Is(err, resilience.ErrCircuitOpen) {
		t.Fatalf("expected circuit open error, got %v", err)
	}
	if !IsKind(err, KindTransport) {
		t.Fatalf("expected transport kind for rejected call")
	}
	if got := hits.Load(); got != 2 {
		t.Fatalf("unexpected upstream hits: got=%d want=2", got)
	}
	if len(observer.states) != 1 || observer.states[0] != string(resilience.CircuitStateOpen) {
		t.Fatalf("unexpected circuit transitions: %+v", observer.states)
	}
}

func TestClientExecute_ClientErrorsDoNotTripCircuit(t *testing.T) {
	t.Parallel()

	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, TransportHTTP, resilience.CircuitBreakerConfig{
		Enabled:          true,
		FailureThreshold: 1,
		OpenTimeout:      time.Minute,
		HalfOpenMaxReq:   1,
	}, nil)

	for i := 0; i < 3; i++ {
		_, err := client.Execute(context.Background(), teamMatchesQuery, nil)
		if errors.Is(err, resilience.ErrCircuitOpen) {
			t.Fatalf("circuit opened on a client error at attempt %d", i)
		}
	}
	if got := hits.Load(); got != 3 {
		t.Fatalf("unexpected upstream hits: got=%d want=3", got)
	}
}

func TestClientTeamAwards_PartialDataWhenTeamMissing(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"data":{"teamByNumber":null}}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, TransportHTTP, resilience.CircuitBreakerConfig{}, nil)
	_, err := client.TeamAwards(context.Background(), 99999, 2025)
	if !IsKind(err, KindPartialData) {
		t.Fatalf("expected partial data error, got %v", err)
	}
}

func TestOperationName(t *testing.T) {
	t.Parallel()

	cases := []struct {
		query string
		want  string
	}{
		{query: teamEventsQuery, want: "TeamEvents"},
		{query: eventMatchesQuery, want: "EventMatches"},
		{query: "{ teamByNumber { name } }", want: "anonymous"},
	}
	for _, tc := range cases {
		if got := operationName(tc.query); got != tc.want {
			t.Fatalf("unexpected operation name: got=%s want=%s", got, tc.want)
		}
	}
}
